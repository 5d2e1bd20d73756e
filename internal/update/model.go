package update

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sirupsen/logrus"

	"github.com/sandeepkv93/taskboard/internal/config"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/scheduler"
)

type Page string

const (
	PageDashboard Page = "dashboard"
	PageTasks     Page = "tasks"
	PageCalendar  Page = "calendar"
	PageSchedule  Page = "schedule"
	PageAlerts    Page = "alerts"
	PageImportant Page = "important"
	PageProfile   Page = "profile"
	PageAuth      Page = "auth"
)

// Pages is the navigation order. The auth page is reached from the profile.
var Pages = []Page{PageDashboard, PageTasks, PageCalendar, PageSchedule, PageAlerts, PageImportant, PageProfile}

func ParsePage(raw string) (Page, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "dashboard", "home":
		return PageDashboard, true
	case "tasks", "tasks-manager", "manager":
		return PageTasks, true
	case "calendar", "cal":
		return PageCalendar, true
	case "schedule", "timetable":
		return PageSchedule, true
	case "alerts", "notifications":
		return PageAlerts, true
	case "important", "starred":
		return PageImportant, true
	case "profile":
		return PageProfile, true
	case "auth", "login", "signin":
		return PageAuth, true
	default:
		return "", false
	}
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Quit     string
	Help     string
	Palette  string
	NextPage string
	PrevPage string
	Add      string
	Edit     string
	Delete   string
	Toggle   string
	Star     string
	Search   string
	Filter   string
}

func keyMapFromConfig(k config.Keymap) GlobalKeyMap {
	return GlobalKeyMap{
		Quit:     k.Quit,
		Help:     k.Help,
		Palette:  k.Palette,
		NextPage: k.NextPage,
		PrevPage: k.PrevPage,
		Add:      k.Add,
		Edit:     k.Edit,
		Delete:   k.Delete,
		Toggle:   k.Toggle,
		Star:     k.Star,
		Search:   k.Search,
		Filter:   k.Filter,
	}
}

// TaskStore is the subset of the task store the UI drives.
type TaskStore interface {
	Tasks() []model.Task
	Get(id model.TaskID) (model.Task, bool)
	Profile() model.Profile
	Version() uint64
	Add(ctx context.Context, text string, priority model.Priority, dueDate, dueTime string) (model.Task, error)
	Update(ctx context.Context, id model.TaskID, text string, priority model.Priority, dueDate, dueTime string) error
	Remove(ctx context.Context, id model.TaskID) error
	ToggleCompleted(ctx context.Context, id model.TaskID) error
	ToggleImportant(ctx context.Context, id model.TaskID) error
	ClearCompleted(ctx context.Context) error
	ClearAll(ctx context.Context) error
	SaveProfile(ctx context.Context, p model.Profile) error
}

type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (model.Profile, error)
	SignUp(ctx context.Context, email, password, confirm string) (model.Profile, error)
}

type Deps struct {
	Store     TaskStore
	Auth      Authenticator
	Scheduler *scheduler.Engine
	Log       logrus.FieldLogger
	Config    config.Config
	Now       func() time.Time
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Level string
	Body  string
	At    time.Time
}

type Model struct {
	Page            Page
	SelectedDate    string
	Filter          model.StatusFilter
	Search          string
	Searching       bool
	DateFilter      bool
	ConfirmClearAll bool
	Cursors         map[Page]int
	Form            TaskFormState
	ProfileForm     ProfileFormState
	Auth            AuthFormState
	Palette         CommandPaletteState
	Fired           []scheduler.DueEvent
	Notifications   []Notification
	HelpVisible     bool
	Status          StatusBar
	Keys            GlobalKeyMap
	Quitting        bool
	LastError       error
	Width           int
	Height          int

	store        TaskStore
	auth         Authenticator
	engine       *scheduler.Engine
	log          logrus.FieldLogger
	now          func() time.Time
	glamourStyle string
	cache        *derivedCache
	armedVersion uint64

	// Bubble components; contents are refreshed from state before each render.
	taskList      list.Model
	scheduleTable table.Model
	dayTable      table.Model
	overallBar    progress.Model
	dayBar        progress.Model
	searchInput   textinput.Model
	commandInput  textinput.Model
	helpModel     help.Model
	helpViewport  viewport.Model
}

func NewModel(deps Deps) Model {
	cfg := deps.Config
	if cfg.Keys == (config.Keymap{}) {
		cfg = config.Default()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	log := deps.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	start, ok := ParsePage(cfg.StartPage)
	if !ok {
		start = PageDashboard
	}
	filter := model.StatusFilter(cfg.DefaultFilter)
	if !filter.IsValid() {
		filter = model.StatusAll
	}

	m := Model{
		Page:         start,
		SelectedDate: model.FormatDate(now()),
		Filter:       filter,
		DateFilter:   true,
		Cursors:      make(map[Page]int),
		Keys:         keyMapFromConfig(cfg.Keys),
		store:        deps.Store,
		auth:         deps.Auth,
		engine:       deps.Scheduler,
		log:          log,
		now:          now,
		glamourStyle: cfg.GlamourStyle,
		cache:        &derivedCache{},
	}
	m.initBubbleComponents()
	m.rearmAlerts()
	return m
}

func (m Model) today() string {
	return model.FormatDate(m.now())
}

func (m Model) location() *time.Location {
	return m.now().Location()
}
