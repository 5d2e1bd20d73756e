package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/taskboard/internal/model"
)

func sample() []model.Task {
	return []model.Task{
		{ID: "1", Text: "Buy MILK", Completed: false, Priority: model.PriorityHigh, DueDate: "2025-06-01", DueTime: "10:00", IsImportant: true},
		{ID: "2", Text: "Call mom", Completed: true, Priority: model.PriorityLow, DueDate: "2025-06-01", DueTime: "08:00"},
		{ID: "3", Text: "milkshake", Completed: false, Priority: model.PriorityMedium, DueDate: "2025-06-02", DueTime: "09:00"},
		{ID: "4", Text: "Gym", Completed: false, Priority: model.PriorityLow, DueDate: "2025-06-01", DueTime: "07:30", IsImportant: true},
		{ID: "5", Text: "Dentist", Completed: true, Priority: model.PriorityHigh, DueDate: "2025-06-02", DueTime: "15:00"},
	}
}

func ids(tasks []model.Task) []model.TaskID {
	out := make([]model.TaskID, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestFilterTasksStatus(t *testing.T) {
	tasks := sample()
	assert.Equal(t, tasks, FilterTasks(tasks, model.StatusAll, "", ""))
	assert.Equal(t, []model.TaskID{"2", "5"}, ids(FilterTasks(tasks, model.StatusCompleted, "", "")))
	assert.Equal(t, []model.TaskID{"1", "3", "4"}, ids(FilterTasks(tasks, model.StatusPending, "", "")))
	assert.Equal(t, tasks, FilterTasks(tasks, model.StatusFilter("bogus"), "", ""))
}

func TestFilterTasksSearchAndDateAreANDed(t *testing.T) {
	tasks := sample()
	assert.Equal(t, []model.TaskID{"1", "3"}, ids(FilterTasks(tasks, model.StatusAll, "milk", "")))
	assert.Equal(t, []model.TaskID{"1"}, ids(FilterTasks(tasks, model.StatusAll, "MiLk", "2025-06-01")))
	assert.Empty(t, FilterTasks(tasks, model.StatusCompleted, "milk", ""))
	assert.Empty(t, FilterTasks(nil, model.StatusAll, "", ""))
}

func TestTasksForDateExcludesCompleted(t *testing.T) {
	assert.Equal(t, []model.TaskID{"1", "4"}, ids(TasksForDate(sample(), "2025-06-01")))
	assert.Equal(t, 2, CountForDate(sample(), "2025-06-01"))
	assert.Empty(t, TasksForDate(sample(), "2030-01-01"))
}

func TestImportantTasksPreservesOrder(t *testing.T) {
	assert.Equal(t, []model.TaskID{"1", "4"}, ids(ImportantTasks(sample())))
}

func TestSortByScheduleIsStable(t *testing.T) {
	in := []model.Task{
		{ID: "a", DueTime: "10:00"},
		{ID: "b", DueTime: "08:00"},
		{ID: "c", DueTime: "10:00"},
		{ID: "d", DueTime: "09:59"},
	}
	got := SortBySchedule(in)
	assert.Equal(t, []model.TaskID{"b", "d", "a", "c"}, ids(got))
	assert.Equal(t, model.TaskID("a"), in[0].ID, "input must not be reordered")

	assert.Equal(t, []model.TaskID{"4", "1"}, ids(ScheduleForDate(sample(), "2025-06-01")))
}

func TestAlertsFlagOverdue(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	alerts := Alerts(sample(), now, time.UTC)
	require.Len(t, alerts, 3)
	assert.Equal(t, model.TaskID("1"), alerts[0].Task.ID)
	assert.False(t, alerts[0].Overdue)
	assert.Equal(t, model.TaskID("4"), alerts[2].Task.ID)
	assert.True(t, alerts[2].Overdue)

	upcoming := Upcoming(sample(), now, time.UTC)
	require.Len(t, upcoming, 2)
	assert.Equal(t, model.TaskID("1"), upcoming[0].Task.ID)
	assert.Equal(t, model.TaskID("3"), upcoming[1].Task.ID)
}

func TestAlertsSkipUnparseableSchedules(t *testing.T) {
	tasks := []model.Task{{ID: "x", DueDate: "", DueTime: "09:00"}}
	assert.Empty(t, Alerts(tasks, time.Now(), time.UTC))
}
