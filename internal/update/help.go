package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/taskboard/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const commandGuide = `## Commands

Open the palette with **:** and type one of:

- ` + "`add <text> [!low|!medium|!high] [@YYYY-MM-DD] [HH:MM]`" + `
- ` + "`filter all|completed|pending`" + `
- ` + "`search <text>`" + `
- ` + "`date YYYY-MM-DD|today|clear`" + `
- ` + "`go <page>`" + `
- ` + "`clear completed|all`" + `
`

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.pageBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", displayKey(kb.Key), kb.Action))
	}
	m.helpViewport.SetContent(views.RenderMarkdown(commandGuide, m.glamourStyle))
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.Page),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
		Body: m.helpViewport.View(),
	})
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.NextPage, Action: "next page"},
		{Key: m.Keys.PrevPage, Action: "previous page"},
		{Key: "1-7", Action: "jump to page"},
		{Key: m.Keys.Palette, Action: "command palette"},
		{Key: "L", Action: "sign in"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) listBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "j/k", Action: "move cursor"},
		{Key: m.Keys.Toggle, Action: "toggle completed"},
		{Key: m.Keys.Star, Action: "toggle important"},
		{Key: m.Keys.Edit, Action: "edit task"},
		{Key: m.Keys.Delete, Action: "delete task"},
	}
}

func (m Model) pageBindings() []KeyBinding {
	switch m.Page {
	case PageDashboard:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next day"},
			{Key: "t", Action: "today"},
			{Key: "j/k", Action: "move table cursor"},
			{Key: "enter", Action: "select row date"},
		}
	case PageTasks:
		return append(m.listBindings(),
			KeyBinding{Key: m.Keys.Add, Action: "add task"},
			KeyBinding{Key: m.Keys.Filter, Action: "cycle status filter"},
			KeyBinding{Key: m.Keys.Search, Action: "search"},
			KeyBinding{Key: "D", Action: "toggle date filter"},
			KeyBinding{Key: "h/l", Action: "previous/next day"},
			KeyBinding{Key: "c", Action: "clear completed"},
			KeyBinding{Key: "C", Action: "clear all"},
		)
	case PageCalendar:
		return append(m.listBindings(),
			KeyBinding{Key: "h/l", Action: "previous/next day"},
			KeyBinding{Key: "p/n", Action: "previous/next week"},
			KeyBinding{Key: "[/]", Action: "previous/next month"},
			KeyBinding{Key: m.Keys.Add, Action: "add task on day"},
		)
	case PageSchedule:
		return append(m.listBindings(),
			KeyBinding{Key: "h/l", Action: "previous/next day"},
			KeyBinding{Key: m.Keys.Add, Action: "add to schedule"},
		)
	case PageImportant:
		return m.listBindings()
	case PageProfile:
		return []KeyBinding{{Key: m.Keys.Edit, Action: "edit profile"}}
	default:
		return []KeyBinding{{Key: "-", Action: "no page bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	all := append(m.globalBindings(), m.pageBindings()...)
	out := make([]key.Binding, 0, len(all))
	for _, kb := range all {
		k := displayKey(kb.Key)
		out = append(out, key.NewBinding(key.WithKeys(strings.Split(k, "/")...), key.WithHelp(k, kb.Action)))
	}
	return out
}
