// Package store owns the task collection and the profile record and keeps
// both mirrored to the key-value storage after every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/storage"
)

type Store struct {
	mu      sync.RWMutex
	kv      storage.KV
	log     logrus.FieldLogger
	now     func() time.Time
	newID   func() string
	tasks   []model.Task
	profile model.Profile
	version uint64
}

type Option func(*Store)

// WithClock replaces time.Now; "today" for default due dates is derived from it.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) { s.log = log }
}

func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:      kv,
		log:     logrus.StandardLogger(),
		now:     time.Now,
		newID:   uuid.NewString,
		tasks:   []model.Task{},
		profile: model.DefaultProfile(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Today() string {
	return model.FormatDate(s.now())
}

// Load replaces the in-memory state with what is persisted. Missing or
// malformed data falls back to an empty collection and the default profile;
// a single undecodable task is skipped without dropping the rest.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.Today()
	var records []json.RawMessage
	if err := storage.GetJSON(ctx, s.kv, storage.KeyTodos, &records); err != nil {
		s.logLoadFailure(storage.KeyTodos, err)
		records = nil
	}
	s.tasks = make([]model.Task, 0, len(records))
	for i, raw := range records {
		var t model.Task
		if err := json.Unmarshal(raw, &t); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{"key": storage.KeyTodos, "index": i}).Warn("skipping undecodable stored task")
			continue
		}
		if strings.TrimSpace(string(t.ID)) == "" || strings.TrimSpace(t.Text) == "" {
			s.log.WithField("key", storage.KeyTodos).Warn("skipping stored task without id or text")
			continue
		}
		s.tasks = append(s.tasks, t.WithDefaults(today))
	}

	profile := model.DefaultProfile()
	if err := storage.GetJSON(ctx, s.kv, storage.KeyProfile, &profile); err != nil {
		s.logLoadFailure(storage.KeyProfile, err)
		profile = model.DefaultProfile()
	}
	s.profile = profile
	s.version++
}

func (s *Store) logLoadFailure(key string, err error) {
	entry := s.log.WithField("key", key)
	if errors.Is(err, storage.ErrNotFound) {
		entry.Debug("no stored value; using defaults")
		return
	}
	entry.WithError(err).Warn("stored value unreadable; using defaults")
}

// Tasks returns a copy of the collection, newest first.
func (s *Store) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

func (s *Store) Get(id model.TaskID) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, false
	}
	return s.tasks[idx], true
}

func (s *Store) Profile() model.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Version increases on every load and mutation.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Add validates and prepends a new task. Empty priority, date and time take
// their defaults.
func (s *Store) Add(ctx context.Context, text string, priority model.Priority, dueDate, dueTime string) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, model.ErrEmptyText
	}
	if priority == "" {
		priority = model.PriorityLow
	}
	if !priority.IsValid() {
		return model.Task{}, fmt.Errorf("%w: %q", model.ErrInvalidPriority, priority)
	}
	dueDate, dueTime, err := normalizeSchedule(dueDate, dueTime)
	if err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if dueDate == "" {
		dueDate = model.FormatDate(now)
	}
	if dueTime == "" {
		dueTime = model.DefaultDueTime
	}
	task := model.Task{
		ID:        s.uniqueID(),
		Text:      text,
		Priority:  priority,
		DueDate:   dueDate,
		DueTime:   dueTime,
		CreatedAt: now.UnixMilli(),
	}
	s.tasks = slices.Insert(s.tasks, 0, task)
	s.version++
	return task, s.persistTasks(ctx)
}

// Update edits a task in place. An unknown id is ignored. Empty dueDate or
// dueTime keeps the current value.
func (s *Store) Update(ctx context.Context, id model.TaskID, text string, priority model.Priority, dueDate, dueTime string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.ErrEmptyText
	}
	if !priority.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidPriority, priority)
	}
	dueDate, dueTime, err := normalizeSchedule(dueDate, dueTime)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.log.WithField("id", id).Debug("update of unknown task ignored")
		return nil
	}
	t := &s.tasks[idx]
	t.Text = text
	t.Priority = priority
	if dueDate != "" {
		t.DueDate = dueDate
	}
	if dueTime != "" {
		t.DueTime = dueTime
	}
	s.version++
	return s.persistTasks(ctx)
}

// Remove deletes the task if present and persists either way.
func (s *Store) Remove(ctx context.Context, id model.TaskID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = slices.DeleteFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
	s.version++
	return s.persistTasks(ctx)
}

func (s *Store) ToggleCompleted(ctx context.Context, id model.TaskID) error {
	return s.mutate(ctx, id, func(t *model.Task) { t.Completed = !t.Completed })
}

func (s *Store) ToggleImportant(ctx context.Context, id model.TaskID) error {
	return s.mutate(ctx, id, func(t *model.Task) { t.IsImportant = !t.IsImportant })
}

func (s *Store) ClearCompleted(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = slices.DeleteFunc(s.tasks, func(t model.Task) bool { return t.Completed })
	s.version++
	return s.persistTasks(ctx)
}

// ClearAll empties the collection. Callers confirm with the user first.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = []model.Task{}
	s.version++
	return s.persistTasks(ctx)
}

// SaveProfile replaces the profile wholesale.
func (s *Store) SaveProfile(ctx context.Context, p model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
	s.version++
	if err := storage.PutJSON(ctx, s.kv, storage.KeyProfile, p); err != nil {
		return fmt.Errorf("store: persist profile: %w", err)
	}
	return nil
}

func (s *Store) mutate(ctx context.Context, id model.TaskID, fn func(*model.Task)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(id); idx >= 0 {
		fn(&s.tasks[idx])
	}
	s.version++
	return s.persistTasks(ctx)
}

func (s *Store) persistTasks(ctx context.Context) error {
	if err := storage.PutJSON(ctx, s.kv, storage.KeyTodos, s.tasks); err != nil {
		s.log.WithError(err).Error("persist todos failed")
		return fmt.Errorf("store: persist todos: %w", err)
	}
	return nil
}

func (s *Store) indexOf(id model.TaskID) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

func (s *Store) uniqueID() model.TaskID {
	for {
		id := model.TaskID(s.newID())
		if s.indexOf(id) < 0 {
			return id
		}
	}
}

func normalizeSchedule(dueDate, dueTime string) (string, string, error) {
	dueDate = strings.TrimSpace(dueDate)
	dueTime = strings.TrimSpace(dueTime)
	if dueDate != "" && !model.ValidDate(dueDate) {
		return "", "", fmt.Errorf("%w: %q", model.ErrInvalidDate, dueDate)
	}
	if dueTime != "" && !model.ValidTime(dueTime) {
		return "", "", fmt.Errorf("%w: %q", model.ErrInvalidTime, dueTime)
	}
	return dueDate, dueTime, nil
}
