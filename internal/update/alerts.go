package update

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/query"
	"github.com/sandeepkv93/taskboard/internal/views"
)

const maxFired = 20

// onDue records a fired alert. Tasks completed or removed since the alert
// was armed are ignored.
func (m *Model) onDue(msg DueMsg) {
	task, ok := m.store.Get(model.TaskID(msg.Event.TaskID))
	if !ok || task.Completed {
		m.log.WithField("task", msg.Event.TaskID).Debug("stale alert skipped")
		return
	}
	m.Fired = append(m.Fired, msg.Event)
	if len(m.Fired) > maxFired {
		m.Fired = m.Fired[len(m.Fired)-maxFired:]
	}
	body := fmt.Sprintf("due now: %s", task.Text)
	m.setStatus(body, false)
	m.notify("alert", body)
	m.log.WithField("task", task.ID).Info("task due")
}

func (m Model) renderAlerts() string {
	now := m.now()
	alerts := query.Alerts(m.allTasks(), now, m.location())
	items := make([]views.AlertItemData, 0, len(alerts))
	for _, a := range alerts {
		items = append(items, views.AlertItemData{
			Text:     a.Task.Text,
			Priority: string(a.Task.Priority),
			When:     a.DueAt.Format("Jan 2 15:04"),
			Relative: humanize.RelTime(a.DueAt, now, "ago", "from now"),
			Overdue:  a.Overdue,
		})
	}
	recent := make([]string, 0, len(m.Fired))
	for i := len(m.Fired) - 1; i >= 0; i-- {
		ev := m.Fired[i]
		recent = append(recent, fmt.Sprintf("%s at %s", ev.Text, ev.DueAt.Format("15:04")))
	}
	return views.RenderAlertsPanel(views.AlertsPanelData{Items: items, Recent: recent})
}
