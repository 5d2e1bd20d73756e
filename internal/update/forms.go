package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/views"
)

type formMode string

const (
	formAdd      formMode = "add"
	formEdit     formMode = "edit"
	formSchedule formMode = "schedule"
)

type formField int

const (
	fieldText formField = iota
	fieldPriority
	fieldDate
	fieldTime
)

// TaskFormState backs the add, edit and add-to-schedule forms.
type TaskFormState struct {
	Active   bool
	Mode     formMode
	EditID   model.TaskID
	Priority model.Priority
	Focus    int
	Error    string

	text  textinput.Model
	date  textinput.Model
	clock textinput.Model
}

func newInput(prompt, placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	return in
}

func newTaskForm() TaskFormState {
	return TaskFormState{
		Priority: model.PriorityLow,
		text:     newInput("", "What needs to be done?", 200),
		date:     newInput("", "YYYY-MM-DD (today)", 10),
		clock:    newInput("", "HH:MM (09:00)", 5),
	}
}

// fields lists the form's inputs in tab order. The schedule form takes its
// date from the selected day and always uses low priority.
func (f TaskFormState) fields() []formField {
	if f.Mode == formSchedule {
		return []formField{fieldText, fieldTime}
	}
	return []formField{fieldText, fieldPriority, fieldDate, fieldTime}
}

func (f TaskFormState) focused() formField {
	fields := f.fields()
	return fields[clampCursor(f.Focus, len(fields))]
}

func (f *TaskFormState) input(field formField) *textinput.Model {
	switch field {
	case fieldText:
		return &f.text
	case fieldDate:
		return &f.date
	case fieldTime:
		return &f.clock
	default:
		return nil
	}
}

func (f *TaskFormState) refocus() {
	f.text.Blur()
	f.date.Blur()
	f.clock.Blur()
	if in := f.input(f.focused()); in != nil {
		in.Focus()
	}
}

func (f *TaskFormState) moveFocus(delta int) {
	n := len(f.fields())
	f.Focus = ((f.Focus+delta)%n + n) % n
	f.refocus()
}

func (m *Model) openTaskForm(mode formMode, task model.Task) {
	form := newTaskForm()
	form.Active = true
	form.Mode = mode
	switch mode {
	case formEdit:
		form.EditID = task.ID
		form.Priority = task.Priority
		form.text.SetValue(task.Text)
		form.date.SetValue(task.DueDate)
		form.clock.SetValue(task.DueTime)
	case formSchedule:
		form.clock.SetValue(model.DefaultDueTime)
	}
	form.refocus()
	m.Form = form
}

func (m *Model) closeTaskForm() {
	m.Form = TaskFormState{}
}

func (m Model) handleTaskFormKey(msg tea.KeyMsg) Model {
	f := &m.Form
	switch msg.String() {
	case "esc":
		m.closeTaskForm()
		m.setStatus("cancelled", false)
		return m
	case "tab", "down":
		f.moveFocus(1)
		return m
	case "shift+tab", "up":
		f.moveFocus(-1)
		return m
	case "enter":
		return m.submitTaskForm()
	}

	if f.focused() == fieldPriority {
		switch msg.String() {
		case "left", "right", " ", "h", "l":
			f.Priority = f.Priority.Next()
		case "1":
			f.Priority = model.PriorityLow
		case "2":
			f.Priority = model.PriorityMedium
		case "3":
			f.Priority = model.PriorityHigh
		}
		return m
	}
	if in := f.input(f.focused()); in != nil {
		*in, _ = in.Update(msg)
		f.Error = ""
	}
	return m
}

func (m Model) submitTaskForm() Model {
	f := m.Form
	text := f.text.Value()
	date := strings.TrimSpace(f.date.Value())
	clock := strings.TrimSpace(f.clock.Value())

	ctx, cancel := storeContext()
	defer cancel()

	var err error
	status := ""
	switch f.Mode {
	case formEdit:
		err = m.store.Update(ctx, f.EditID, text, f.Priority, date, clock)
		status = "task updated"
	case formSchedule:
		var task model.Task
		task, err = m.store.Add(ctx, text, model.PriorityLow, m.SelectedDate, clock)
		status = fmt.Sprintf("scheduled %q at %s", task.Text, task.DueTime)
	default:
		var task model.Task
		task, err = m.store.Add(ctx, text, f.Priority, date, clock)
		status = fmt.Sprintf("added %q", task.Text)
	}

	if err != nil && isValidationError(err) {
		m.Form.Error = formError(err)
		return m
	}
	m.closeTaskForm()
	if err != nil {
		m.reportStoreError(string(f.Mode), err)
		return m
	}
	m.setStatus(status, false)
	return m
}

func (m Model) renderTaskForm() string {
	f := m.Form
	if !f.Active {
		return ""
	}
	title := "new task"
	hint := "[tab] next field  [enter] save  [esc] cancel"
	switch f.Mode {
	case formEdit:
		title = "edit task"
	case formSchedule:
		title = "add to schedule on " + m.SelectedDate
	}
	fields := make([]views.FormFieldData, 0, 4)
	for i, field := range f.fields() {
		data := views.FormFieldData{Focused: i == clampCursor(f.Focus, len(f.fields()))}
		switch field {
		case fieldText:
			data.Label, data.View = "task", f.text.View()
		case fieldPriority:
			data.Label = "priority"
			data.View = views.PriorityStyle(string(f.Priority)).Render("< " + f.Priority.Label() + " >")
		case fieldDate:
			data.Label, data.View = "date", f.date.View()
		case fieldTime:
			data.Label, data.View = "time", f.clock.View()
		}
		fields = append(fields, data)
	}
	return views.RenderForm(views.FormData{Title: title, Fields: fields, Error: f.Error, Hint: hint})
}

// ProfileFormState edits the four profile fields.
type ProfileFormState struct {
	Active bool
	Focus  int
	inputs []textinput.Model
}

var profileLabels = []string{"name", "email", "avatar", "bio"}

func (m *Model) openProfileForm() {
	p := m.store.Profile()
	inputs := []textinput.Model{
		newInput("", "Your name", 80),
		newInput("", "you@example.com", 120),
		newInput("", "https://...", 300),
		newInput("", "A line about you", 300),
	}
	for i, v := range []string{p.Name, p.Email, p.Image, p.Bio} {
		inputs[i].SetValue(v)
	}
	inputs[0].Focus()
	m.ProfileForm = ProfileFormState{Active: true, inputs: inputs}
}

func (f *ProfileFormState) moveFocus(delta int) {
	n := len(f.inputs)
	f.inputs[f.Focus].Blur()
	f.Focus = ((f.Focus+delta)%n + n) % n
	f.inputs[f.Focus].Focus()
}

func (m Model) handleProfileFormKey(msg tea.KeyMsg) Model {
	f := &m.ProfileForm
	switch msg.String() {
	case "esc":
		m.ProfileForm = ProfileFormState{}
		m.setStatus("profile unchanged", false)
	case "tab", "down":
		f.moveFocus(1)
	case "shift+tab", "up":
		f.moveFocus(-1)
	case "enter":
		p := model.Profile{
			Name:  strings.TrimSpace(f.inputs[0].Value()),
			Email: strings.TrimSpace(f.inputs[1].Value()),
			Image: strings.TrimSpace(f.inputs[2].Value()),
			Bio:   strings.TrimSpace(f.inputs[3].Value()),
		}
		m.ProfileForm = ProfileFormState{}
		ctx, cancel := storeContext()
		defer cancel()
		if err := m.store.SaveProfile(ctx, p); err != nil {
			m.reportStoreError("save profile", err)
			return m
		}
		m.setStatus("profile saved", false)
	default:
		f.inputs[f.Focus], _ = f.inputs[f.Focus].Update(msg)
	}
	return m
}

func (m Model) renderProfileForm() string {
	f := m.ProfileForm
	if !f.Active {
		return ""
	}
	fields := make([]views.FormFieldData, len(f.inputs))
	for i, in := range f.inputs {
		fields[i] = views.FormFieldData{Label: profileLabels[i], View: in.View(), Focused: i == f.Focus}
	}
	return views.RenderForm(views.FormData{
		Title:  "edit profile",
		Fields: fields,
		Hint:   "[tab] next field  [enter] save  [esc] cancel",
	})
}

// AuthFormState is the sign-in / sign-up form. It lives only while the auth
// page is open.
type AuthFormState struct {
	SignUp bool
	Focus  int
	Error  string

	email    textinput.Model
	password textinput.Model
	confirm  textinput.Model
}

func newAuthForm(signUp bool) AuthFormState {
	f := AuthFormState{
		SignUp:   signUp,
		email:    newInput("", "you@example.com", 120),
		password: newInput("", "password", 120),
		confirm:  newInput("", "repeat password", 120),
	}
	f.password.EchoMode = textinput.EchoPassword
	f.confirm.EchoMode = textinput.EchoPassword
	f.email.Focus()
	return f
}

func (f *AuthFormState) inputs() []*textinput.Model {
	if f.SignUp {
		return []*textinput.Model{&f.email, &f.password, &f.confirm}
	}
	return []*textinput.Model{&f.email, &f.password}
}

func (f *AuthFormState) moveFocus(delta int) {
	inputs := f.inputs()
	n := len(inputs)
	for _, in := range inputs {
		in.Blur()
	}
	f.Focus = ((f.Focus+delta)%n + n) % n
	inputs[f.Focus].Focus()
}

func (m Model) handleAuthKey(msg tea.KeyMsg) Model {
	f := &m.Auth
	switch msg.String() {
	case "esc":
		m.Auth = AuthFormState{}
		m.Page = PageProfile
		return m
	case "ctrl+t":
		m.Auth = newAuthForm(!f.SignUp)
		return m
	case "tab", "down":
		f.moveFocus(1)
		return m
	case "shift+tab", "up":
		f.moveFocus(-1)
		return m
	case "enter":
		if f.Focus < len(f.inputs())-1 {
			f.moveFocus(1)
			return m
		}
		return m.submitAuth()
	}
	in := f.inputs()[clampCursor(f.Focus, len(f.inputs()))]
	*in, _ = in.Update(msg)
	return m
}

func (m Model) submitAuth() Model {
	if m.auth == nil {
		m.Auth.Error = "sign-in is not available"
		return m
	}
	f := m.Auth
	ctx, cancel := storeContext()
	defer cancel()

	if f.SignUp {
		p, err := m.auth.SignUp(ctx, f.email.Value(), f.password.Value(), f.confirm.Value())
		if err != nil {
			m.Auth.Error = err.Error()
			return m
		}
		m.Auth = newAuthForm(false)
		m.setStatus(fmt.Sprintf("account created for %s", p.Email), false)
		m.notify("info", "account created; sign in to continue")
		return m
	}

	p, err := m.auth.SignIn(ctx, f.email.Value(), f.password.Value())
	if err != nil {
		m.Auth.Error = err.Error()
		return m
	}
	m.Auth = AuthFormState{}
	m.Page = PageDashboard
	m.setStatus(fmt.Sprintf("signed in as %s", p.Email), false)
	return m
}

func (m Model) renderAuthForm() string {
	f := m.Auth
	labels := []string{"email", "password", "confirm"}
	inputs := f.inputs()
	fields := make([]views.FormFieldData, len(inputs))
	for i, in := range inputs {
		fields[i] = views.FormFieldData{Label: labels[i], View: in.View(), Focused: i == f.Focus}
	}
	title := "Welcome back"
	if f.SignUp {
		title = "Create an account"
	}
	return views.RenderForm(views.FormData{
		Title:  title,
		Fields: fields,
		Error:  f.Error,
		Hint:   "[enter] next / submit  [esc] back",
	})
}
