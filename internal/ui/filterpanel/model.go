package filterpanel

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"notifeed/internal/model"
	"notifeed/internal/theme"
)

// AppliedMsg is sent when the user confirms a manager selection. The
// manager axis is only ever committed through this explicit apply.
type AppliedMsg struct {
	Manager string
}

// CancelledMsg is sent when the user leaves the panel without applying.
type CancelledMsg struct{}

// Model is the manager filter panel, a single-select form over the
// managers observed in the currently loaded feed.
type Model struct {
	form     *huh.Form
	selected *string
	width    int
	height   int
}

// New creates an inactive filter panel.
func New(width, height int) Model {
	return Model{
		selected: new(string),
		width:    width,
		height:   height,
	}
}

// Start builds the form from the given manager options, preselecting
// the current axis value, and returns the form's init command.
func (m *Model) Start(options []model.ManagerOption, current string) tea.Cmd {
	*m.selected = current

	opts := make([]huh.Option[string], 0, len(options)+1)
	opts = append(opts, huh.NewOption("All managers", model.FilterAll))
	for _, o := range options {
		opts = append(opts, huh.NewOption(o.UserName, o.UserID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Manager").
				Description("Show notifications from one manager").
				Options(opts...).
				Value(m.selected),
		),
	).WithWidth(m.formWidth())

	return m.form.Init()
}

// Update handles messages for the filter panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		manager := *m.selected
		m.form = nil
		return m, func() tea.Msg {
			return AppliedMsg{Manager: manager}
		}
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		return m, func() tea.Msg {
			return CancelledMsg{}
		}
	}

	return m, cmd
}

// View renders the filter panel.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBorder).
		Padding(1, 2).
		Width(m.formWidth())

	return panel.Render(m.form.View())
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil {
		m.form = m.form.WithWidth(m.formWidth())
	}
}

func (m Model) formWidth() int {
	w := m.width - 8
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}
