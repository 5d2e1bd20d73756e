package update

import (
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/query"
	"github.com/sandeepkv93/taskboard/internal/scheduler"
	"github.com/sandeepkv93/taskboard/internal/stats"
)

// derivedCache holds values computed from the whole task collection. It is
// shared by every copy of the Model and rebuilt when the store version moves.
type derivedCache struct {
	valid      bool
	version    uint64
	today      string
	tasks      []model.Task
	global     model.GlobalStats
	priorities []model.PrioritySlice
	days       []model.DayRow
}

func (m Model) derived() *derivedCache {
	c := m.cache
	if c == nil {
		c = &derivedCache{}
	}
	version := m.store.Version()
	today := m.today()
	if c.valid && c.version == version && c.today == today {
		return c
	}
	tasks := m.store.Tasks()
	c.valid = true
	c.version = version
	c.today = today
	c.tasks = tasks
	c.global = stats.Global(tasks)
	c.priorities = stats.PriorityBreakdown(tasks)
	c.days = stats.DayTable(tasks, today)
	return c
}

func (m Model) allTasks() []model.Task {
	return m.derived().tasks
}

// pageTasks is what the list on the current page shows, in display order.
func (m Model) pageTasks() []model.Task {
	tasks := m.allTasks()
	switch m.Page {
	case PageTasks:
		date := ""
		if m.DateFilter {
			date = m.SelectedDate
		}
		return query.FilterTasks(tasks, m.Filter, m.Search, date)
	case PageCalendar:
		return query.TasksForDate(tasks, m.SelectedDate)
	case PageSchedule:
		return query.ScheduleForDate(tasks, m.SelectedDate)
	case PageImportant:
		return query.ImportantTasks(tasks)
	default:
		return nil
	}
}

func (m Model) selectedTask() (model.Task, bool) {
	tasks := m.pageTasks()
	if len(tasks) == 0 {
		return model.Task{}, false
	}
	return tasks[clampCursor(m.Cursors[m.Page], len(tasks))], true
}

// rearmAlerts hands the scheduler every pending task still due in the future.
func (m *Model) rearmAlerts() {
	if m.store == nil {
		return
	}
	version := m.store.Version()
	if m.engine == nil {
		m.armedVersion = version
		return
	}
	upcoming := query.Upcoming(m.store.Tasks(), m.now(), m.location())
	events := make([]scheduler.DueEvent, 0, len(upcoming))
	for _, a := range upcoming {
		events = append(events, scheduler.DueEvent{TaskID: string(a.Task.ID), Text: a.Task.Text, DueAt: a.DueAt})
	}
	if err := m.engine.Replace(events); err != nil {
		m.log.WithError(err).Warn("re-arming alerts failed")
	}
	m.armedVersion = version
	m.log.WithField("count", len(events)).Debug("alerts armed")
}

func (m *Model) rearmAlertsIfStale() {
	if m.store != nil && m.store.Version() != m.armedVersion {
		m.rearmAlerts()
	}
}
