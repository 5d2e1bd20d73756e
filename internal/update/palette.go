package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.setStatus("command palette closed", false)
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		m.commandInput, _ = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) closePalette() {
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.setStatus(err.Error(), true)
		return m
	}

	ctx, cancel := storeContext()
	defer cancel()

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, err := m.store.Add(ctx, a.Text, a.Priority, a.DueDate, a.DueTime)
			if err != nil && isValidationError(err) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: formError(err)}
			}
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added %q due %s %s", task.Text, task.DueDate, task.DueTime)}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			m.goToPage(PageTasks)
			m.Filter = f.Status
			m.Cursors[PageTasks] = 0
			return commands.Result{Message: "filter: " + string(f.Status)}, nil
		},
		Search: func(s commands.SearchArgs) (commands.Result, error) {
			m.goToPage(PageTasks)
			m.Search = s.Text
			m.Cursors[PageTasks] = 0
			if s.Text == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("search: %q", s.Text)}, nil
		},
		Date: func(d commands.DateArgs) (commands.Result, error) {
			switch {
			case d.Clear:
				m.DateFilter = false
				return commands.Result{Message: "showing tasks for all dates"}, nil
			case d.Today:
				m.SelectedDate = m.today()
			default:
				m.SelectedDate = d.Date
			}
			m.DateFilter = true
			return commands.Result{Message: "selected date: " + m.SelectedDate}, nil
		},
		Go: func(g commands.GoArgs) (commands.Result, error) {
			page, ok := ParsePage(g.Page)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown page %q", g.Page)}
			}
			m.goToPage(page)
			return commands.Result{Message: "page: " + string(page)}, nil
		},
		Clear: func(c commands.ClearArgs) (commands.Result, error) {
			if c.All {
				m.goToPage(PageTasks)
				m.ConfirmClearAll = true
				return commands.Result{Message: "confirm to delete every task"}, nil
			}
			if err := m.store.ClearCompleted(ctx); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "cleared completed tasks"}, nil
		},
	})
	if err != nil {
		m.LastError = err
		m.setStatus(err.Error(), true)
		m.notify("error", err.Error())
		m.log.WithError(err).WithField("command", raw).Warn("command failed")
		return m
	}
	m.setStatus(res.Message, false)
	m.notify("info", res.Message)
	return m
}
