package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/views"
)

func (m Model) handleProfileKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case m.Keys.Edit:
		m.openProfileForm()
	}
	return m
}

func (m Model) renderProfile() string {
	p := m.store.Profile()
	return views.RenderProfilePanel(views.ProfilePanelData{
		Name:     p.Name,
		Email:    p.Email,
		Image:    p.Image,
		Bio:      p.Bio,
		FormView: m.renderProfileForm(),
	})
}
