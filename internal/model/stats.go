package model

import "time"

type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusCompleted StatusFilter = "completed"
	StatusPending   StatusFilter = "pending"
)

func (s StatusFilter) IsValid() bool {
	switch s {
	case StatusAll, StatusCompleted, StatusPending:
		return true
	default:
		return false
	}
}

// Next cycles all -> completed -> pending -> all.
func (s StatusFilter) Next() StatusFilter {
	switch s {
	case StatusAll:
		return StatusCompleted
	case StatusCompleted:
		return StatusPending
	default:
		return StatusAll
	}
}

// DayStats is the completion summary for one due date.
type DayStats struct {
	Total           int
	Completed       int
	Remaining       int
	ProgressPercent int
}

type DayRow struct {
	Date  string
	Stats DayStats
}

type PriorityCounts struct {
	Low    int
	Medium int
	High   int
}

func (c PriorityCounts) Get(p Priority) int {
	switch p {
	case PriorityLow:
		return c.Low
	case PriorityMedium:
		return c.Medium
	case PriorityHigh:
		return c.High
	default:
		return 0
	}
}

type PrioritySlice struct {
	Priority Priority
	Count    int
}

type GlobalStats struct {
	TotalCount     int
	CompletedCount int
}

func (g GlobalStats) Pending() int {
	return g.TotalCount - g.CompletedCount
}

// Alert is a pending task paired with its due instant.
type Alert struct {
	Task    Task
	DueAt   time.Time
	Overdue bool
}
