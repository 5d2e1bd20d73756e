package update

import (
	"context"
	"errors"
	"time"

	"github.com/sandeepkv93/taskboard/internal/model"
)

const storeTimeout = 5 * time.Second

func storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

// shiftDate moves a YYYY-MM-DD date by whole days and months. An unparsable
// date is treated as fallback.
func shiftDate(date, fallback string, months, days int) string {
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		d, err = time.Parse(model.DateLayout, fallback)
		if err != nil {
			return fallback
		}
	}
	return model.FormatDate(d.AddDate(0, months, days))
}

func clampCursor(cursor, n int) int {
	if n <= 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

// formError turns a validation failure into the inline form message.
func formError(err error) string {
	switch {
	case errors.Is(err, model.ErrEmptyText):
		return "Task cannot be empty"
	case errors.Is(err, model.ErrInvalidDate):
		return "Date must be YYYY-MM-DD"
	case errors.Is(err, model.ErrInvalidTime):
		return "Time must be HH:MM"
	case errors.Is(err, model.ErrInvalidPriority):
		return "Priority must be low, medium or high"
	default:
		return err.Error()
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, model.ErrEmptyText) ||
		errors.Is(err, model.ErrInvalidDate) ||
		errors.Is(err, model.ErrInvalidTime) ||
		errors.Is(err, model.ErrInvalidPriority)
}

func (m *Model) notify(level, body string) {
	m.Notifications = append(m.Notifications, Notification{Level: level, Body: body, At: m.now()})
	if len(m.Notifications) > 5 {
		m.Notifications = m.Notifications[len(m.Notifications)-5:]
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.Status = StatusBar{Text: text, IsError: isErr}
}

// reportStoreError shows a persistence failure. The in-memory change has
// already been applied by the store.
func (m *Model) reportStoreError(op string, err error) {
	m.LastError = err
	m.log.WithError(err).WithField("op", op).Error("store operation failed")
	m.setStatus(op+": "+err.Error(), true)
	m.notify("error", err.Error())
}
