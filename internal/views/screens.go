package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type NavData struct {
	Pages   []string
	Current string
}

type StatCardData struct {
	Label string
	Value string
}

type BarData struct {
	Label    string
	Priority string
	Count    int
}

type DashboardPanelData struct {
	Cards        []StatCardData
	OverallBar   string
	SelectedDate string
	DayTotal     int
	DayCompleted int
	DayRemaining int
	DayPercent   int
	DayBar       string
	Chart        []BarData
	TableView    string
	HasDates     bool
}

type FormFieldData struct {
	Label   string
	View    string
	Focused bool
}

type FormData struct {
	Title  string
	Fields []FormFieldData
	Error  string
	Hint   string
}

type TasksPanelData struct {
	Filter       string
	Search       string
	SearchView   string
	Searching    bool
	DateFilter   string
	Summary      string
	SummaryBar   string
	ListView     string
	Empty        string
	FormView     string
	ConfirmClear bool
}

type CalendarCell struct {
	Day      int
	Count    int
	Selected bool
	Today    bool
}

type CalendarPanelData struct {
	MonthTitle string
	Weeks      [][]CalendarCell
	DayTitle   string
	ListView   string
	Empty      bool
	FormView   string
}

type SchedulePanelData struct {
	DateTitle string
	FormView  string
	Chart     []BarData
	TableView string
	Empty     bool
}

type AlertItemData struct {
	Text     string
	Priority string
	When     string
	Relative string
	Overdue  bool
}

type AlertsPanelData struct {
	Items  []AlertItemData
	Recent []string
}

type ImportantPanelData struct {
	ListView string
	Empty    bool
	FormView string
}

type ProfilePanelData struct {
	Name     string
	Email    string
	Image    string
	Bio      string
	FormView string
}

type AuthPanelData struct {
	SignUp   bool
	FormView string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
	Body        string
}

func RenderNav(data NavData) string {
	parts := make([]string, 0, len(data.Pages))
	for i, p := range data.Pages {
		label := fmt.Sprintf("%d %s", i+1, p)
		if p == data.Current {
			parts = append(parts, activeStyle.Render(label))
			continue
		}
		parts = append(parts, mutedStyle.Render(label))
	}
	return strings.Join(parts, "  ")
}

func RenderDashboardPanel(data DashboardPanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("dashboard") + "\n")

	cards := make([]string, 0, len(data.Cards))
	for _, c := range data.Cards {
		cards = append(cards, cardStyle.Render(c.Label+"\n"+titleStyle.Render(c.Value)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n")
	b.WriteString("overall: " + data.OverallBar + "\n\n")

	b.WriteString(fmt.Sprintf("day %s  [h/l] change  [t] today\n", data.SelectedDate))
	b.WriteString(fmt.Sprintf("total: %d  completed: %d  remaining: %d  progress: %d%%\n",
		data.DayTotal, data.DayCompleted, data.DayRemaining, data.DayPercent))
	b.WriteString(data.DayBar + "\n\n")

	b.WriteString("priority breakdown:\n")
	b.WriteString(RenderBarChart(data.Chart, 24) + "\n\n")

	b.WriteString("day-wise statistics:\n")
	if !data.HasDates {
		b.WriteString(mutedStyle.Render("(no tasks yet)"))
	} else {
		b.WriteString(data.TableView)
	}
	return strings.TrimSpace(b.String())
}

// RenderBarChart draws one horizontal bar per entry, scaled to the largest.
func RenderBarChart(bars []BarData, width int) string {
	if len(bars) == 0 {
		return mutedStyle.Render("(no tasks)")
	}
	maxCount := 0
	labelWidth := 0
	for _, bar := range bars {
		maxCount = max(maxCount, bar.Count)
		labelWidth = max(labelWidth, len(bar.Label))
	}
	lines := make([]string, 0, len(bars))
	for _, bar := range bars {
		n := 0
		if maxCount > 0 {
			n = bar.Count * width / maxCount
		}
		if bar.Count > 0 && n == 0 {
			n = 1
		}
		fill := PriorityStyle(bar.Priority).Render(strings.Repeat("█", n))
		lines = append(lines, fmt.Sprintf("%-*s %s %d", labelWidth, bar.Label, fill, bar.Count))
	}
	return strings.Join(lines, "\n")
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("tasks manager") + "\n")
	if data.FormView != "" {
		b.WriteString(data.FormView + "\n\n")
	}
	if data.Summary != "" {
		b.WriteString(data.Summary + " " + data.SummaryBar + "\n")
	}
	b.WriteString(fmt.Sprintf("filter: %s | date: %s\n", data.Filter, data.DateFilter))
	if data.Searching {
		b.WriteString(data.SearchView + "\n")
	} else if data.Search != "" {
		b.WriteString(fmt.Sprintf("search: %q\n", data.Search))
	}
	b.WriteString("actions: [a]add [e]edit [space]done [s]star [d]delete [f]filter [/]search [D]dates [c]clear done [C]clear all\n")
	if data.ConfirmClear {
		b.WriteString(errorStyle.Render("delete ALL tasks? [y/n]") + "\n")
	}
	if data.Empty != "" {
		b.WriteString("\n" + mutedStyle.Render(data.Empty))
		return strings.TrimSpace(b.String())
	}
	b.WriteString(data.ListView)
	return strings.TrimSpace(b.String())
}

func RenderCalendarPanel(data CalendarPanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("calendar") + "\n")
	b.WriteString(fmt.Sprintf("< %s >   [[/]] month  [p/n] week  [h/l] day  [a] add\n", data.MonthTitle))
	b.WriteString(" Sun  Mon  Tue  Wed  Thu  Fri  Sat\n")
	for _, week := range data.Weeks {
		cells := make([]string, 0, 7)
		for _, c := range week {
			cells = append(cells, renderCalendarCell(c))
		}
		b.WriteString(strings.Join(cells, "") + "\n")
	}
	b.WriteString("\n" + data.DayTitle + "\n")
	if data.FormView != "" {
		b.WriteString(data.FormView + "\n")
	}
	if data.Empty {
		b.WriteString(mutedStyle.Render("No tasks for this date"))
	} else {
		b.WriteString(data.ListView)
	}
	return strings.TrimSpace(b.String())
}

func renderCalendarCell(c CalendarCell) string {
	if c.Day == 0 {
		return "     "
	}
	marker := " "
	if c.Count > 0 {
		marker = "•"
	}
	label := fmt.Sprintf("%3d%s", c.Day, marker)
	switch {
	case c.Selected:
		label = selectedStyle.Render(label)
	case c.Today:
		label = todayStyle.Render(label)
	}
	return label + " "
}

func RenderSchedulePanel(data SchedulePanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("daily schedule") + "\n")
	b.WriteString(data.DateTitle + "  [h/l] change day  [a] add to schedule\n")
	if data.FormView != "" {
		b.WriteString(data.FormView + "\n")
	}
	if data.Empty {
		b.WriteString("\n" + mutedStyle.Render("No tasks scheduled yet"))
		return strings.TrimSpace(b.String())
	}
	b.WriteString("\ntask distribution by priority:\n")
	b.WriteString(RenderBarChart(data.Chart, 24) + "\n\n")
	b.WriteString(data.TableView)
	return strings.TrimSpace(b.String())
}

func RenderAlertsPanel(data AlertsPanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("notification center") + "\n")
	if len(data.Items) == 0 {
		b.WriteString(mutedStyle.Render("No active notifications"))
	}
	for _, item := range data.Items {
		badge := "[upcoming]"
		if item.Overdue {
			badge = overdueStyle.Render("[overdue]")
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", badge, PriorityStyle(item.Priority).Render(item.Priority), item.Text))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("    due %s (%s)", item.When, item.Relative)) + "\n")
	}
	if len(data.Recent) > 0 {
		b.WriteString("\nfired this session:\n")
		for _, r := range data.Recent {
			b.WriteString("- " + r + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderImportantPanel(data ImportantPanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("important") + "\n")
	if data.FormView != "" {
		b.WriteString(data.FormView + "\n")
	}
	if data.Empty {
		b.WriteString(mutedStyle.Render("No important tasks. Press [s] on a task to star it."))
		return strings.TrimSpace(b.String())
	}
	b.WriteString(data.ListView)
	return strings.TrimSpace(b.String())
}

func RenderProfilePanel(data ProfilePanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("profile") + "\n")
	if data.FormView != "" {
		b.WriteString(data.FormView)
		return strings.TrimSpace(b.String())
	}
	b.WriteString(fmt.Sprintf("name:   %s\n", data.Name))
	b.WriteString(fmt.Sprintf("email:  %s\n", data.Email))
	b.WriteString(fmt.Sprintf("avatar: %s\n", data.Image))
	bio := data.Bio
	if bio == "" {
		bio = mutedStyle.Render("(no bio)")
	}
	b.WriteString(fmt.Sprintf("bio:    %s\n", bio))
	b.WriteString("\nactions: [e]edit profile [L]sign in as someone else")
	return strings.TrimSpace(b.String())
}

func RenderAuthPanel(data AuthPanelData) string {
	var b strings.Builder
	title := "sign in"
	toggle := "no account? [ctrl+t] sign up"
	if data.SignUp {
		title = "sign up"
		toggle = "have an account? [ctrl+t] sign in"
	}
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(data.FormView + "\n\n")
	b.WriteString(mutedStyle.Render(toggle))
	return strings.TrimSpace(b.String())
}

func RenderForm(data FormData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Title) + "\n")
	for _, f := range data.Fields {
		cursor := " "
		if f.Focused {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-9s %s\n", cursor, f.Label+":", f.View))
	}
	if data.Error != "" {
		b.WriteString(errorStyle.Render(data.Error) + "\n")
	}
	if data.Hint != "" {
		b.WriteString(mutedStyle.Render(data.Hint))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return "command:\n" + input
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("help: %s\n", strings.ToLower(data.CurrentView)))
	b.WriteString(strings.Join(data.Bindings, "\n") + "\n")
	if data.HelpView != "" {
		b.WriteString("\n" + data.HelpView + "\n")
	}
	if data.Body != "" {
		b.WriteString("\n" + data.Body)
	}
	return strings.TrimSpace(b.String())
}
