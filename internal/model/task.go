package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DefaultDueTime = "09:00"
)

var (
	ErrEmptyText       = errors.New("model: task text is required")
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidDate     = errors.New("model: invalid due date")
	ErrInvalidTime     = errors.New("model: invalid due time")
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every priority from least to most urgent.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Label returns the capitalized form used in charts and tables.
func (p Priority) Label() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// Next cycles low -> medium -> high -> low.
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

// ParsePriority is case-insensitive; an empty string yields PriorityLow.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if p == "" {
		return PriorityLow, nil
	}
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
	return p, nil
}

// TaskID is kept as a string. Stored collections written by older clients
// used numeric millisecond ids, so decoding accepts either form.
type TaskID string

func (id *TaskID) UnmarshalJSON(data []byte) error {
	s, err := decodeID(data)
	if err != nil {
		return fmt.Errorf("model: task id: %w", err)
	}
	*id = TaskID(s)
	return nil
}

// decodeID reads an id written either as a JSON string or as a number.
func decodeID(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", fmt.Errorf("must be a string or number: %w", err)
	}
	return n.String(), nil
}

type Task struct {
	ID          TaskID   `json:"id"`
	Text        string   `json:"text"`
	Completed   bool     `json:"completed"`
	Priority    Priority `json:"priority"`
	DueDate     string   `json:"dueDate"`
	DueTime     string   `json:"dueTime"`
	IsImportant bool     `json:"isImportant"`
	CreatedAt   int64    `json:"createdAt"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(string(t.ID)) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if !ValidDate(t.DueDate) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, t.DueDate)
	}
	if !ValidTime(t.DueTime) {
		return fmt.Errorf("%w: %q", ErrInvalidTime, t.DueTime)
	}
	return nil
}

// Due combines DueDate and DueTime in loc. ok is false when either part
// does not parse.
func (t Task) Due(loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	due, err := time.ParseInLocation(DateLayout+" "+TimeLayout, t.DueDate+" "+t.DueTime, loc)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}

func (t Task) Created() time.Time {
	return time.UnixMilli(t.CreatedAt)
}

// WithDefaults fills the optional fields a stored record may omit.
func (t Task) WithDefaults(today string) Task {
	if !t.Priority.IsValid() {
		t.Priority = PriorityLow
	}
	if strings.TrimSpace(t.DueDate) == "" {
		t.DueDate = today
	}
	if strings.TrimSpace(t.DueTime) == "" {
		t.DueTime = DefaultDueTime
	}
	return t
}

func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidTime accepts the fixed-width 24h HH:MM form only, so that string
// ordering matches chronological ordering.
func ValidTime(s string) bool {
	if len(s) != len(TimeLayout) {
		return false
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
