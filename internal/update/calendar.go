package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/query"
	"github.com/sandeepkv93/taskboard/internal/views"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	if next, ok := m.handleListKey(msg); ok {
		return next
	}
	switch msg.String() {
	case "h", "left":
		m.shiftSelectedDate(0, -1)
	case "l", "right":
		m.shiftSelectedDate(0, 1)
	case "p":
		m.shiftSelectedDate(0, -7)
	case "n":
		m.shiftSelectedDate(0, 7)
	case "[":
		m.shiftSelectedDate(-1, 0)
	case "]":
		m.shiftSelectedDate(1, 0)
	case "t":
		m.SelectedDate = m.today()
		m.Cursors[PageCalendar] = 0
	case m.Keys.Add:
		m.openTaskForm(formAdd, model.Task{})
		m.Form.date.SetValue(m.SelectedDate)
	}
	return m
}

// monthGrid lays out the month containing selected as Sunday-first weeks.
// Cells outside the month have Day 0.
func monthGrid(tasks []model.Task, selected, today string) (time.Time, [][]views.CalendarCell) {
	sel, err := time.Parse(model.DateLayout, selected)
	if err != nil {
		sel, _ = time.Parse(model.DateLayout, today)
	}
	first := time.Date(sel.Year(), sel.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	weeks := make([][]views.CalendarCell, 0, 6)
	week := make([]views.CalendarCell, int(first.Weekday()), 7)
	for day := 1; day <= days; day++ {
		date := model.FormatDate(first.AddDate(0, 0, day-1))
		week = append(week, views.CalendarCell{
			Day:      day,
			Count:    query.CountForDate(tasks, date),
			Selected: date == selected,
			Today:    date == today,
		})
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]views.CalendarCell, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, views.CalendarCell{})
		}
		weeks = append(weeks, week)
	}
	return first, weeks
}

func (m Model) renderCalendar() string {
	month, weeks := monthGrid(m.allTasks(), m.SelectedDate, m.today())
	dayTitle := "Tasks for " + m.SelectedDate
	if d, err := time.Parse(model.DateLayout, m.SelectedDate); err == nil {
		dayTitle = "Tasks for " + d.Format("Monday, January 2, 2006")
	}
	return views.RenderCalendarPanel(views.CalendarPanelData{
		MonthTitle: month.Format("January 2006"),
		Weeks:      weeks,
		DayTitle:   dayTitle,
		ListView:   m.taskList.View(),
		Empty:      len(m.pageTasks()) == 0,
		FormView:   m.renderTaskForm(),
	})
}
