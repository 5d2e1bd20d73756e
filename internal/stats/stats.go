// Package stats computes completion and priority aggregates over a task
// collection. All functions are pure and cheap enough to run per render.
package stats

import (
	"math"
	"slices"

	"github.com/sandeepkv93/taskboard/internal/model"
)

// ForDate counts every task due on date, completed or not.
func ForDate(tasks []model.Task, date string) model.DayStats {
	var out model.DayStats
	for _, t := range tasks {
		if t.DueDate != date {
			continue
		}
		out.Total++
		if t.Completed {
			out.Completed++
		}
	}
	out.Remaining = out.Total - out.Completed
	out.ProgressPercent = Percent(out.Completed, out.Total)
	return out
}

// Percent is round(100*part/whole), or 0 when whole is 0.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}

func Priorities(tasks []model.Task) model.PriorityCounts {
	var out model.PriorityCounts
	for _, t := range tasks {
		switch t.Priority {
		case model.PriorityLow:
			out.Low++
		case model.PriorityMedium:
			out.Medium++
		case model.PriorityHigh:
			out.High++
		}
	}
	return out
}

// PriorityBreakdown lists non-empty priority buckets, most urgent first.
func PriorityBreakdown(tasks []model.Task) []model.PrioritySlice {
	counts := Priorities(tasks)
	out := make([]model.PrioritySlice, 0, 3)
	for _, p := range []model.Priority{model.PriorityHigh, model.PriorityMedium, model.PriorityLow} {
		if n := counts.Get(p); n > 0 {
			out = append(out, model.PrioritySlice{Priority: p, Count: n})
		}
	}
	return out
}

func Global(tasks []model.Task) model.GlobalStats {
	out := model.GlobalStats{TotalCount: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			out.CompletedCount++
		}
	}
	return out
}

// GlobalPercent is the overall completion percentage.
func GlobalPercent(g model.GlobalStats) int {
	return Percent(g.CompletedCount, g.TotalCount)
}

// DueDates returns the distinct due dates in ascending order. A task with
// no due date is counted under today.
func DueDates(tasks []model.Task, today string) []string {
	seen := make(map[string]struct{}, len(tasks))
	out := make([]string, 0)
	for _, t := range tasks {
		d := t.DueDate
		if d == "" {
			d = today
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}

// DayTable is one row per due date for the day-wise statistics table.
func DayTable(tasks []model.Task, today string) []model.DayRow {
	dates := DueDates(tasks, today)
	out := make([]model.DayRow, 0, len(dates))
	for _, d := range dates {
		out = append(out, model.DayRow{Date: d, Stats: ForDate(tasks, d)})
	}
	return out
}
