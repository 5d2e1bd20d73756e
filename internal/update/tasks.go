package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/stats"
	"github.com/sandeepkv93/taskboard/internal/views"
)

// handleListKey covers the actions every task list shares. It reports
// whether the key was consumed.
func (m Model) handleListKey(msg tea.KeyMsg) (Model, bool) {
	tasks := m.pageTasks()
	cursor := clampCursor(m.Cursors[m.Page], len(tasks))

	switch msg.String() {
	case "down", "j":
		m.Cursors[m.Page] = clampCursor(cursor+1, len(tasks))
		return m, true
	case "up", "k":
		m.Cursors[m.Page] = clampCursor(cursor-1, len(tasks))
		return m, true
	case "g", "home":
		m.Cursors[m.Page] = 0
		return m, true
	case "G", "end":
		m.Cursors[m.Page] = clampCursor(len(tasks)-1, len(tasks))
		return m, true
	}

	task, ok := m.selectedTask()
	if !ok {
		return m, false
	}
	ctx, cancel := storeContext()
	defer cancel()

	switch msg.String() {
	case m.Keys.Toggle, "x", "enter":
		if err := m.store.ToggleCompleted(ctx, task.ID); err != nil {
			m.reportStoreError("toggle", err)
		} else if task.Completed {
			m.setStatus(fmt.Sprintf("reopened %q", task.Text), false)
		} else {
			m.setStatus(fmt.Sprintf("completed %q", task.Text), false)
		}
	case m.Keys.Star:
		if err := m.store.ToggleImportant(ctx, task.ID); err != nil {
			m.reportStoreError("star", err)
		} else if task.IsImportant {
			m.setStatus(fmt.Sprintf("unstarred %q", task.Text), false)
		} else {
			m.setStatus(fmt.Sprintf("starred %q", task.Text), false)
		}
	case m.Keys.Delete:
		if err := m.store.Remove(ctx, task.ID); err != nil {
			m.reportStoreError("delete", err)
		} else {
			m.setStatus(fmt.Sprintf("deleted %q", task.Text), false)
		}
	case m.Keys.Edit:
		m.openTaskForm(formEdit, task)
		return m, true
	default:
		return m, false
	}
	m.Cursors[m.Page] = clampCursor(cursor, len(m.pageTasks()))
	return m, true
}

func (m Model) handleTasksKey(msg tea.KeyMsg) Model {
	if next, ok := m.handleListKey(msg); ok {
		return next
	}
	switch msg.String() {
	case m.Keys.Add:
		m.openTaskForm(formAdd, model.Task{})
	case m.Keys.Filter:
		m.Filter = m.Filter.Next()
		m.Cursors[PageTasks] = 0
		m.setStatus("filter: "+string(m.Filter), false)
	case m.Keys.Search:
		m.Searching = true
		m.searchInput.SetValue(m.Search)
		m.searchInput.Focus()
	case "D":
		m.DateFilter = !m.DateFilter
		m.Cursors[PageTasks] = 0
		if m.DateFilter {
			m.setStatus("showing tasks due "+m.SelectedDate, false)
		} else {
			m.setStatus("showing tasks for all dates", false)
		}
	case "h", "left":
		m.shiftSelectedDate(0, -1)
	case "l", "right":
		m.shiftSelectedDate(0, 1)
	case "t":
		m.SelectedDate = m.today()
	case "c":
		ctx, cancel := storeContext()
		defer cancel()
		if err := m.store.ClearCompleted(ctx); err != nil {
			m.reportStoreError("clear completed", err)
			return m
		}
		m.Cursors[PageTasks] = 0
		m.setStatus("cleared completed tasks", false)
	case "C":
		m.ConfirmClearAll = true
	}
	return m
}

func (m Model) handleSearchKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "enter":
		m.Searching = false
		m.searchInput.Blur()
	case "esc":
		m.Searching = false
		m.Search = ""
		m.searchInput.SetValue("")
		m.searchInput.Blur()
	default:
		m.searchInput, _ = m.searchInput.Update(msg)
		m.Search = m.searchInput.Value()
	}
	m.Cursors[PageTasks] = 0
	return m
}

func (m Model) handleConfirmClearKey(msg tea.KeyMsg) Model {
	m.ConfirmClearAll = false
	switch msg.String() {
	case "y", "Y":
		ctx, cancel := storeContext()
		defer cancel()
		if err := m.store.ClearAll(ctx); err != nil {
			m.reportStoreError("clear all", err)
			return m
		}
		m.Cursors[PageTasks] = 0
		m.setStatus("all tasks deleted", false)
	default:
		m.setStatus("clear all cancelled", false)
	}
	return m
}

func (m *Model) shiftSelectedDate(months, days int) {
	m.SelectedDate = shiftDate(m.SelectedDate, m.today(), months, days)
	m.Cursors[m.Page] = 0
}

func (m Model) renderTasks() string {
	tasks := m.pageTasks()
	summary := ""
	summaryBar := ""
	if g := m.derived().global; g.TotalCount > 0 {
		summary = fmt.Sprintf("%d of %d completed", g.CompletedCount, g.TotalCount)
		summaryBar = m.percentBar(m.overallBar, stats.GlobalPercent(g))
	}
	dateLabel := "all"
	if m.DateFilter {
		dateLabel = m.SelectedDate
	}
	empty := ""
	if len(tasks) == 0 {
		empty = emptyTasksMessage(m.Filter, m.Search)
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		Filter:       string(m.Filter),
		Search:       m.Search,
		SearchView:   m.searchInput.View(),
		Searching:    m.Searching,
		DateFilter:   dateLabel,
		Summary:      summary,
		SummaryBar:   summaryBar,
		ListView:     m.taskList.View(),
		Empty:        empty,
		FormView:     m.renderTaskForm(),
		ConfirmClear: m.ConfirmClearAll,
	})
}

func emptyTasksMessage(filter model.StatusFilter, search string) string {
	switch {
	case search != "":
		return fmt.Sprintf("No tasks match %q", search)
	case filter == model.StatusCompleted:
		return "No completed tasks"
	case filter == model.StatusPending:
		return "No pending tasks"
	default:
		return "No tasks yet. Press [a] to add one."
	}
}

func (m Model) handleImportantKey(msg tea.KeyMsg) Model {
	next, _ := m.handleListKey(msg)
	return next
}

func (m Model) renderImportant() string {
	return views.RenderImportantPanel(views.ImportantPanelData{
		ListView: m.taskList.View(),
		Empty:    len(m.pageTasks()) == 0,
		FormView: m.renderTaskForm(),
	})
}
