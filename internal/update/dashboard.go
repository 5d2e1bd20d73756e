package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/stats"
	"github.com/sandeepkv93/taskboard/internal/views"
)

func (m Model) handleDashboardKey(msg tea.KeyMsg) Model {
	rows := len(m.derived().days)
	cursor := clampCursor(m.Cursors[PageDashboard], rows)
	switch msg.String() {
	case "h", "left":
		m.SelectedDate = shiftDate(m.SelectedDate, m.today(), 0, -1)
	case "l", "right":
		m.SelectedDate = shiftDate(m.SelectedDate, m.today(), 0, 1)
	case "t":
		m.SelectedDate = m.today()
	case "down", "j":
		m.Cursors[PageDashboard] = clampCursor(cursor+1, rows)
	case "up", "k":
		m.Cursors[PageDashboard] = clampCursor(cursor-1, rows)
	case "enter":
		if rows > 0 {
			m.SelectedDate = m.derived().days[cursor].Date
		}
	}
	return m
}

func priorityBars(parts []model.PrioritySlice) []views.BarData {
	out := make([]views.BarData, 0, len(parts))
	for _, s := range parts {
		out = append(out, views.BarData{Label: s.Priority.Label(), Priority: string(s.Priority), Count: s.Count})
	}
	return out
}

func (m Model) renderDashboard() string {
	d := m.derived()
	day := m.dayStats()
	percent := stats.GlobalPercent(d.global)
	cards := []views.StatCardData{
		{Label: "Total", Value: humanize.Comma(int64(d.global.TotalCount))},
		{Label: "Completed", Value: humanize.Comma(int64(d.global.CompletedCount))},
		{Label: "Remaining", Value: humanize.Comma(int64(d.global.Pending()))},
		{Label: "Progress", Value: fmt.Sprintf("%d%%", percent)},
	}
	counts := stats.Priorities(d.tasks)
	return views.RenderDashboardPanel(views.DashboardPanelData{
		Cards:        cards,
		OverallBar:   fmt.Sprintf("%s %d%% · %d high priority", m.percentBar(m.overallBar, percent), percent, counts.High),
		SelectedDate: m.SelectedDate,
		DayTotal:     day.Total,
		DayCompleted: day.Completed,
		DayRemaining: day.Remaining,
		DayPercent:   day.ProgressPercent,
		DayBar:       m.percentBar(m.dayBar, day.ProgressPercent),
		Chart:        priorityBars(d.priorities),
		TableView:    m.dayTable.View(),
		HasDates:     len(d.days) > 0,
	})
}
