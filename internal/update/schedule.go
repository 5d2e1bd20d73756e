package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/stats"
	"github.com/sandeepkv93/taskboard/internal/views"
)

func (m Model) handleScheduleKey(msg tea.KeyMsg) Model {
	if next, ok := m.handleListKey(msg); ok {
		return next
	}
	switch msg.String() {
	case "h", "left":
		m.shiftSelectedDate(0, -1)
	case "l", "right":
		m.shiftSelectedDate(0, 1)
	case "t":
		m.SelectedDate = m.today()
		m.Cursors[PageSchedule] = 0
	case m.Keys.Add:
		m.openTaskForm(formSchedule, model.Task{})
	}
	return m
}

func (m Model) renderSchedule() string {
	tasks := m.pageTasks()
	title := m.SelectedDate
	if d, err := time.Parse(model.DateLayout, m.SelectedDate); err == nil {
		title = d.Format("Monday, January 2, 2006")
	}
	return views.RenderSchedulePanel(views.SchedulePanelData{
		DateTitle: title,
		FormView:  m.renderTaskForm(),
		Chart:     priorityBars(stats.PriorityBreakdown(tasks)),
		TableView: m.scheduleTable.View(),
		Empty:     len(tasks) == 0,
	})
}
