package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/stats"
)

type taskItem struct {
	task model.Task
}

func (i taskItem) Title() string {
	check := "[ ]"
	if i.task.Completed {
		check = "[x]"
	}
	star := ""
	if i.task.IsImportant {
		star = "★ "
	}
	return fmt.Sprintf("%s %s%s", check, star, i.task.Text)
}

func (i taskItem) Description() string {
	return fmt.Sprintf("%s · %s %s", i.task.Priority.Label(), i.task.DueDate, i.task.DueTime)
}

func (i taskItem) FilterValue() string { return i.task.Text }

func (m *Model) initBubbleComponents() {
	m.taskList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 14)
	m.taskList.SetShowHelp(false)
	m.taskList.SetFilteringEnabled(false)
	m.taskList.SetShowStatusBar(false)
	m.taskList.SetShowTitle(false)

	m.scheduleTable = table.New(
		table.WithColumns([]table.Column{
			{Title: "Time", Width: 6},
			{Title: "Task", Width: 30},
			{Title: "Priority", Width: 8},
		}),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	m.dayTable = table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 10},
			{Title: "Total", Width: 5},
			{Title: "Done", Width: 5},
			{Title: "Left", Width: 5},
			{Title: "Progress", Width: 8},
		}),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	m.overallBar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(24))
	m.dayBar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(24))

	m.searchInput = textinput.New()
	m.searchInput.Prompt = "search> "
	m.searchInput.Placeholder = "text to match"
	m.searchInput.CharLimit = 120
	m.searchInput.Width = 40

	m.commandInput = textinput.New()
	m.commandInput.Prompt = ":"
	m.commandInput.Placeholder = "add Buy milk !high @2025-06-01 10:00"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.helpViewport = viewport.New(54, 12)
}

// syncBubbleData copies the page state into the bubble components. It runs
// on the copy View renders from.
func (m *Model) syncBubbleData() {
	switch m.Page {
	case PageTasks, PageCalendar, PageImportant:
		tasks := m.pageTasks()
		items := make([]list.Item, 0, len(tasks))
		for _, t := range tasks {
			items = append(items, taskItem{task: t})
		}
		m.taskList.SetItems(items)
		if len(items) > 0 {
			m.taskList.Select(clampCursor(m.Cursors[m.Page], len(items)))
		}
	case PageSchedule:
		tasks := m.pageTasks()
		rows := make([]table.Row, 0, len(tasks))
		for _, t := range tasks {
			rows = append(rows, table.Row{t.DueTime, t.Text, t.Priority.Label()})
		}
		m.scheduleTable.SetRows(rows)
		if len(rows) > 0 {
			m.scheduleTable.SetCursor(clampCursor(m.Cursors[PageSchedule], len(rows)))
		}
	case PageDashboard:
		days := m.derived().days
		rows := make([]table.Row, 0, len(days))
		for _, d := range days {
			rows = append(rows, table.Row{
				d.Date,
				fmt.Sprint(d.Stats.Total),
				fmt.Sprint(d.Stats.Completed),
				fmt.Sprint(d.Stats.Remaining),
				fmt.Sprintf("%d%%", d.Stats.ProgressPercent),
			})
		}
		m.dayTable.SetRows(rows)
		if len(rows) > 0 {
			m.dayTable.SetCursor(clampCursor(m.Cursors[PageDashboard], len(rows)))
		}
	}
	m.searchInput.SetValue(m.Search)
	if m.Palette.Active {
		m.commandInput.SetValue(m.Palette.Input)
	}
}

func (m Model) percentBar(bar progress.Model, percent int) string {
	return bar.ViewAs(float64(percent) / 100)
}

func (m Model) dayStats() model.DayStats {
	return stats.ForDate(m.allTasks(), m.SelectedDate)
}
