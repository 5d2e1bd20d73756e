package update

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.engine != nil {
		return waitForDueCmd(m.engine.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.rearmAlertsIfStale()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.Width = typed.Width
		m.Height = typed.Height
		return m, nil
	case SwitchPageMsg:
		if _, ok := ParsePage(string(typed.Page)); ok {
			m.goToPage(typed.Page)
		}
		return m, nil
	case SetStatusMsg:
		m.setStatus(typed.Text, typed.IsError)
		m.notify(levelFromError(typed.IsError), typed.Text)
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.setStatus(typed.Err.Error(), true)
			m.notify("error", typed.Err.Error())
		}
		return m, nil
	case DueMsg:
		m.onDue(typed)
		if m.engine == nil {
			return m, nil
		}
		return m, waitForDueCmd(m.engine.C())
	case alertsClosedMsg:
		m.log.Debug("alert channel closed")
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	switch {
	case m.Palette.Active:
		return m.handlePaletteKey(msg), nil
	case m.Form.Active:
		return m.handleTaskFormKey(msg), nil
	case m.ProfileForm.Active:
		return m.handleProfileFormKey(msg), nil
	case m.Page == PageAuth:
		return m.handleAuthKey(msg), nil
	case m.Searching:
		return m.handleSearchKey(msg), nil
	case m.ConfirmClearAll:
		return m.handleConfirmClearKey(msg), nil
	}

	switch keyStr {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Palette:
		m.Palette = CommandPaletteState{Active: true}
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.setStatus("command palette active", false)
		return m, nil
	case m.Keys.NextPage:
		m.goToPage(m.relativePage(1))
		return m, nil
	case m.Keys.PrevPage:
		m.goToPage(m.relativePage(-1))
		return m, nil
	case "L":
		m.goToPage(PageAuth)
		return m, nil
	case "1", "2", "3", "4", "5", "6", "7":
		m.goToPage(Pages[int(keyStr[0]-'1')])
		return m, nil
	}

	switch m.Page {
	case PageDashboard:
		return m.handleDashboardKey(msg), nil
	case PageTasks:
		return m.handleTasksKey(msg), nil
	case PageCalendar:
		return m.handleCalendarKey(msg), nil
	case PageSchedule:
		return m.handleScheduleKey(msg), nil
	case PageImportant:
		return m.handleImportantKey(msg), nil
	case PageProfile:
		return m.handleProfileKey(msg), nil
	}
	return m, nil
}

func (m Model) relativePage(delta int) Page {
	idx := slices.Index(Pages, m.Page)
	if idx < 0 {
		return PageDashboard
	}
	n := len(Pages)
	return Pages[((idx+delta)%n+n)%n]
}

func (m *Model) goToPage(p Page) {
	if p == PageAuth && m.Page != PageAuth {
		m.Auth = newAuthForm(false)
	}
	m.Page = p
	m.Form = TaskFormState{}
	m.ProfileForm = ProfileFormState{}
	m.Searching = false
	m.ConfirmClearAll = false
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	m.syncBubbleData()

	left := ""
	switch m.Page {
	case PageDashboard:
		left = m.renderDashboard()
	case PageTasks:
		left = m.renderTasks()
	case PageCalendar:
		left = m.renderCalendar()
	case PageSchedule:
		left = m.renderSchedule()
	case PageAlerts:
		left = m.renderAlerts()
	case PageImportant:
		left = m.renderImportant()
	case PageProfile:
		left = m.renderProfile()
	case PageAuth:
		left = views.RenderAuthPanel(views.AuthPanelData{SignUp: m.Auth.SignUp, FormView: m.renderAuthForm()})
	}

	right := views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
	if m.HelpVisible {
		right = joinNonEmpty(right, m.renderHelpView())
	}

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	notification := ""
	if n := len(m.Notifications); n > 0 {
		last := m.Notifications[n-1]
		notification = views.RenderNotification(last.Level, last.Body)
	}

	profile := m.store.Profile()
	g := m.derived().global
	pageNames := make([]string, len(Pages))
	for i, p := range Pages {
		pageNames[i] = string(p)
	}
	return views.RenderApp(views.AppData{
		Header:        fmt.Sprintf("taskboard | %s | %s <%s>", m.Page, profile.Name, profile.Email),
		Nav:           views.RenderNav(views.NavData{Pages: pageNames, Current: string(m.Page)}),
		LeftPane:      left,
		RightPane:     right,
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Notification:  notification,
		PaneWidth:     m.paneWidth(right != ""),
		Footer: fmt.Sprintf("%d tasks · %d done · %d pending | %s/%s page | %s cmd | %s help | %s quit",
			g.TotalCount, g.CompletedCount, g.Pending(), m.Keys.NextPage, m.Keys.PrevPage, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) paneWidth(split bool) int {
	if m.Width <= 0 {
		return 0
	}
	w := m.Width - 4
	if split {
		w = m.Width/2 - 4
	}
	return max(w, 40)
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "\n\n" + b
	}
}
