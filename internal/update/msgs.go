package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/scheduler"
)

type SwitchPageMsg struct {
	Page Page
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// DueMsg carries a task whose due instant has arrived.
type DueMsg struct {
	Event scheduler.DueEvent
}

// alertsClosedMsg reports that the scheduler channel was closed.
type alertsClosedMsg struct{}

func waitForDueCmd(ch <-chan scheduler.DueEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return alertsClosedMsg{}
		}
		return DueMsg{Event: ev}
	}
}
