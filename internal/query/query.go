// Package query derives filtered and ordered views of a task collection.
// Every function returns a new slice and leaves its input untouched.
package query

import (
	"slices"
	"strings"
	"time"

	"github.com/sandeepkv93/taskboard/internal/model"
)

// FilterTasks ANDs the status, search and date predicates. An empty search
// or date disables that predicate. Input order is preserved.
func FilterTasks(tasks []model.Task, status model.StatusFilter, search, date string) []model.Task {
	needle := strings.ToLower(search)
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if !matchesStatus(t, status) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(t.Text), needle) {
			continue
		}
		if date != "" && t.DueDate != date {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesStatus(t model.Task, status model.StatusFilter) bool {
	switch status {
	case model.StatusCompleted:
		return t.Completed
	case model.StatusPending:
		return !t.Completed
	default:
		return true
	}
}

// TasksForDate keeps pending tasks due on date.
func TasksForDate(tasks []model.Task, date string) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if t.DueDate == date && !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

func ImportantTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if t.IsImportant {
			out = append(out, t)
		}
	}
	return out
}

// SortBySchedule orders by DueTime. HH:MM is fixed width, so string order
// is time order; ties keep input order.
func SortBySchedule(tasks []model.Task) []model.Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b model.Task) int {
		return strings.Compare(a.DueTime, b.DueTime)
	})
	return out
}

// ScheduleForDate is the daily timetable: pending tasks due on date, by time.
func ScheduleForDate(tasks []model.Task, date string) []model.Task {
	return SortBySchedule(TasksForDate(tasks, date))
}

// CountForDate is the number of pending tasks due on date.
func CountForDate(tasks []model.Task, date string) int {
	n := 0
	for _, t := range tasks {
		if t.DueDate == date && !t.Completed {
			n++
		}
	}
	return n
}

// Alerts lists every pending task with its due instant in loc. Tasks whose
// date or time does not parse are skipped.
func Alerts(tasks []model.Task, now time.Time, loc *time.Location) []model.Alert {
	out := make([]model.Alert, 0)
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		due, ok := t.Due(loc)
		if !ok {
			continue
		}
		out = append(out, model.Alert{Task: t, DueAt: due, Overdue: due.Before(now)})
	}
	return out
}

// Upcoming returns the pending tasks that fall due after now, soonest first.
func Upcoming(tasks []model.Task, now time.Time, loc *time.Location) []model.Alert {
	out := make([]model.Alert, 0)
	for _, a := range Alerts(tasks, now, loc) {
		if a.DueAt.After(now) {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Alert) int {
		return a.DueAt.Compare(b.DueAt)
	})
	return out
}
