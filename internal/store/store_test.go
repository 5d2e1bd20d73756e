package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/storage"
)

var fixedNow = time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(t *testing.T, kv storage.KV) *Store {
	t.Helper()
	return New(kv,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(sequentialIDs()),
		WithLogger(quietLogger()),
	)
}

func TestAddAppliesDefaultsAndPrepends(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	ctx := context.Background()

	first, err := s.Add(ctx, "  first  ", "", "", "")
	require.NoError(t, err)
	second, err := s.Add(ctx, "second", model.PriorityMedium, "2025-07-04", "18:15")
	require.NoError(t, err)

	assert.Equal(t, "first", first.Text)
	assert.Equal(t, model.PriorityLow, first.Priority)
	assert.Equal(t, "2025-06-01", first.DueDate)
	assert.Equal(t, "09:00", first.DueTime)
	assert.False(t, first.Completed)
	assert.False(t, first.IsImportant)
	assert.Equal(t, fixedNow.UnixMilli(), first.CreatedAt)

	tasks := s.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, second.ID, tasks[0].ID)
	assert.Equal(t, first.ID, tasks[1].ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAddRejectsBlankText(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := newTestStore(t, kv)
	ctx := context.Background()

	for _, text := range []string{"", "   "} {
		_, err := s.Add(ctx, text, model.PriorityHigh, "", "")
		assert.ErrorIs(t, err, model.ErrEmptyText)
	}
	assert.Empty(t, s.Tasks())
	_, err := kv.Get(ctx, storage.KeyTodos)
	assert.ErrorIs(t, err, storage.ErrNotFound, "rejected add must not persist")
}

func TestAddRejectsMalformedSchedule(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	ctx := context.Background()

	_, err := s.Add(ctx, "x", model.PriorityLow, "06/01/2025", "")
	assert.ErrorIs(t, err, model.ErrInvalidDate)
	_, err = s.Add(ctx, "x", model.PriorityLow, "", "25:00")
	assert.ErrorIs(t, err, model.ErrInvalidTime)
	_, err = s.Add(ctx, "x", model.Priority("urgent"), "", "")
	assert.ErrorIs(t, err, model.ErrInvalidPriority)
	assert.Empty(t, s.Tasks())
}

func TestAddNeverReusesAnExistingID(t *testing.T) {
	ids := []string{"dup", "dup", "fresh"}
	s := New(storage.NewMemoryKV(), WithLogger(quietLogger()), WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))
	ctx := context.Background()

	a, err := s.Add(ctx, "a", "", "", "")
	require.NoError(t, err)
	b, err := s.Add(ctx, "b", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, model.TaskID("dup"), a.ID)
	assert.Equal(t, model.TaskID("fresh"), b.ID)
}

func TestUpdateKeepsScheduleWhenBlank(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	ctx := context.Background()
	task, err := s.Add(ctx, "draft", model.PriorityLow, "2025-06-02", "07:45")
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, task.ID, "final", model.PriorityHigh, "", ""))
	got, ok := s.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, "final", got.Text)
	assert.Equal(t, model.PriorityHigh, got.Priority)
	assert.Equal(t, "2025-06-02", got.DueDate)
	assert.Equal(t, "07:45", got.DueTime)

	require.NoError(t, s.Update(ctx, task.ID, "final", model.PriorityHigh, "2025-06-03", "12:00"))
	got, _ = s.Get(task.ID)
	assert.Equal(t, "2025-06-03", got.DueDate)
	assert.Equal(t, "12:00", got.DueTime)
	assert.Equal(t, task.CreatedAt, got.CreatedAt)
}

func TestUpdateUnknownIDIsIgnored(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	ctx := context.Background()
	_, err := s.Add(ctx, "only", "", "", "")
	require.NoError(t, err)
	before := s.Tasks()

	require.NoError(t, s.Update(ctx, "missing", "changed", model.PriorityHigh, "", ""))
	assert.Equal(t, before, s.Tasks())
}

func TestRemoveIsIdempotent(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := newTestStore(t, kv)
	ctx := context.Background()
	task, err := s.Add(ctx, "gone soon", "", "", "")
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, task.ID))
	require.NoError(t, s.Remove(ctx, task.ID))
	assert.Empty(t, s.Tasks())

	raw, err := kv.Get(ctx, storage.KeyTodos)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestTogglesAreInvolutions(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	ctx := context.Background()
	task, err := s.Add(ctx, "flip", "", "", "")
	require.NoError(t, err)

	require.NoError(t, s.ToggleCompleted(ctx, task.ID))
	got, _ := s.Get(task.ID)
	assert.True(t, got.Completed)
	require.NoError(t, s.ToggleCompleted(ctx, task.ID))
	got, _ = s.Get(task.ID)
	assert.False(t, got.Completed)

	require.NoError(t, s.ToggleImportant(ctx, task.ID))
	got, _ = s.Get(task.ID)
	assert.True(t, got.IsImportant)
	require.NoError(t, s.ToggleImportant(ctx, task.ID))
	got, _ = s.Get(task.ID)
	assert.False(t, got.IsImportant)

	require.NoError(t, s.ToggleCompleted(ctx, "missing"))
}

func TestClearCompletedKeepsPending(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	ctx := context.Background()
	a, _ := s.Add(ctx, "a", "", "", "")
	b, _ := s.Add(ctx, "b", "", "", "")
	c, _ := s.Add(ctx, "c", "", "", "")
	require.NoError(t, s.ToggleCompleted(ctx, a.ID))
	require.NoError(t, s.ToggleCompleted(ctx, c.ID))

	require.NoError(t, s.ClearCompleted(ctx))
	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, b.ID, tasks[0].ID)

	require.NoError(t, s.ClearAll(ctx))
	assert.Empty(t, s.Tasks())
}

func TestPersistAndReloadRoundTrip(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := newTestStore(t, kv)
	ctx := context.Background()
	a, _ := s.Add(ctx, "a", model.PriorityHigh, "2025-06-01", "10:00")
	_, _ = s.Add(ctx, "b", model.PriorityMedium, "2025-06-02", "11:00")
	require.NoError(t, s.ToggleImportant(ctx, a.ID))
	require.NoError(t, s.SaveProfile(ctx, model.Profile{Name: "Ada", Email: "ada@example.com", Image: "img", Bio: "hi"}))

	reloaded := newTestStore(t, kv)
	reloaded.Load(ctx)
	assert.Equal(t, s.Tasks(), reloaded.Tasks())
	assert.Equal(t, s.Profile(), reloaded.Profile())
}

func TestLoadRecoversFromMalformedData(t *testing.T) {
	kv := storage.NewMemoryKV()
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, storage.KeyTodos, []byte(`{"broken":`)))
	require.NoError(t, kv.Put(ctx, storage.KeyProfile, []byte(`42`)))

	s := newTestStore(t, kv)
	s.Load(ctx)
	assert.Empty(t, s.Tasks())
	assert.Equal(t, model.DefaultProfile(), s.Profile())
}

func TestLoadFillsMissingOptionalFields(t *testing.T) {
	kv := storage.NewMemoryKV()
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, storage.KeyTodos, []byte(`[
		{"id": 1717171717171, "text": "legacy", "completed": true},
		{"id": "", "text": "no id"}
	]`)))

	s := newTestStore(t, kv)
	s.Load(ctx)
	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, model.TaskID("1717171717171"), tasks[0].ID)
	assert.Equal(t, model.PriorityLow, tasks[0].Priority)
	assert.Equal(t, "2025-06-01", tasks[0].DueDate)
	assert.Equal(t, "09:00", tasks[0].DueTime)
	assert.True(t, tasks[0].Completed)
	assert.Equal(t, model.DefaultProfile(), s.Profile())
}

func TestLoadSkipsOnlyUndecodableTasks(t *testing.T) {
	kv := storage.NewMemoryKV()
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, storage.KeyTodos, []byte(`[
		{"id": "a", "text": "good", "createdAt": 1717200000000},
		{"id": "b", "text": "bad", "createdAt": "2025-06-01T00:00:00.000Z"}
	]`)))

	s := newTestStore(t, kv)
	s.Load(ctx)
	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, model.TaskID("a"), tasks[0].ID)
	assert.Equal(t, int64(1717200000000), tasks[0].CreatedAt)
}

type failingKV struct {
	*storage.MemoryKV
}

var errDiskFull = errors.New("disk full")

func (failingKV) Put(context.Context, string, []byte) error {
	return errDiskFull
}

func TestPersistFailureIsReported(t *testing.T) {
	s := newTestStore(t, failingKV{storage.NewMemoryKV()})
	_, err := s.Add(context.Background(), "x", "", "", "")
	assert.ErrorIs(t, err, errDiskFull)
	assert.Len(t, s.Tasks(), 1)
}

func TestBuyMilkScenario(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	ctx := context.Background()

	task, err := s.Add(ctx, "Buy milk", model.PriorityHigh, "2025-06-01", "10:00")
	require.NoError(t, err)
	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, model.PriorityHigh, tasks[0].Priority)
	assert.Equal(t, "2025-06-01", tasks[0].DueDate)
	assert.Equal(t, "10:00", tasks[0].DueTime)
	assert.False(t, tasks[0].Completed)

	require.NoError(t, s.ToggleCompleted(ctx, task.ID))
	got, _ := s.Get(task.ID)
	assert.True(t, got.Completed)
}

func TestVersionAdvancesOnMutation(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	v0 := s.Version()
	_, err := s.Add(context.Background(), "x", "", "", "")
	require.NoError(t, err)
	assert.Greater(t, s.Version(), v0)
}
