package feedlist

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"notifeed/internal/keys"
	"notifeed/internal/model"
	"notifeed/internal/theme"
	"notifeed/internal/view"
)

// MarkRequestedMsg is sent when the user asks to mark the selected
// notification read.
type MarkRequestedMsg struct {
	ID string
}

// maxTags bounds how many detail tags are rendered per entry.
const maxTags = 3

// Model is the scrolling feed view. It renders a projection; it owns no
// authoritative state. Acting on an entry always goes back through the
// controller to mutate the store, never the rendered line.
type Model struct {
	keys       *keys.KeyMap
	projection view.Projection
	flat       []model.Notification
	filtered   bool
	cursor     int
	offset     int
	loading    bool
	spinner    spinner.Model
	now        time.Time
	width      int
	height     int
}

// New creates a feed list model.
func New(k *keys.KeyMap, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	return Model{
		keys:    k,
		spinner: sp,
		loading: true,
		now:     time.Now(),
		width:   width,
		height:  height,
	}
}

// Init starts the loading spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// SetProjection replaces the rendered view. The filtered flag controls
// the empty-state hint; now anchors relative timestamps.
func (m *Model) SetProjection(p view.Projection, filtered bool, now time.Time) {
	m.projection = p
	m.flat = p.Flatten()
	m.filtered = filtered
	m.now = now
	m.loading = false

	if m.cursor >= len(m.flat) {
		m.cursor = len(m.flat) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// SetLoading toggles the loading spinner.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// SelectedID returns the ID of the entry under the cursor, or "".
func (m Model) SelectedID() string {
	if m.cursor < 0 || m.cursor >= len(m.flat) {
		return ""
	}
	return m.flat[m.cursor].ID
}

// Update handles messages for the feed list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.loading {
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.flat)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.MarkRead):
			id := m.SelectedID()
			if id == "" {
				return m, nil
			}
			return m, func() tea.Msg {
				return MarkRequestedMsg{ID: id}
			}
		}
	}

	return m, nil
}

// View renders the grouped feed.
func (m Model) View() string {
	if m.loading {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(m.spinner.View() + " loading notifications...")
	}

	if len(m.flat) == 0 {
		return m.renderEmptyState()
	}

	lines, cursorStart, cursorEnd := m.renderLines()

	// Keep the cursor's lines inside the visible window.
	offset := m.offset
	if cursorStart < offset {
		offset = cursorStart
	}
	if cursorEnd >= offset+m.height {
		offset = cursorEnd - m.height + 1
	}
	if offset < 0 {
		offset = 0
	}

	end := offset + m.height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[offset:end], "\n")
}

// renderLines builds every display line plus the line span occupied by
// the entry under the cursor.
func (m Model) renderLines() (lines []string, cursorStart, cursorEnd int) {
	idx := 0
	for _, group := range m.projection.Groups {
		lines = append(lines, theme.GroupTitleStyle.Render(group.Bucket.Title()))

		for _, n := range group.Records {
			selected := idx == m.cursor
			entry := m.renderEntry(n, selected)
			if selected {
				cursorStart = len(lines)
				cursorEnd = len(lines) + strings.Count(entry, "\n")
			}
			lines = append(lines, strings.Split(entry, "\n")...)
			idx++
		}
	}
	return lines, cursorStart, cursorEnd
}

// renderEntry renders one notification as a small multi-line card.
func (m Model) renderEntry(n model.Notification, selected bool) string {
	icon := theme.TypeStyle(n.Type).Render(theme.TypeIcon(n.Type))

	badge := " "
	if !n.Read {
		badge = theme.UnreadBadgeStyle().Render("●")
	}

	title := n.Title
	if selected {
		title = lipgloss.NewStyle().Bold(true).Render(title)
	}

	header := badge + " " + icon + " " + title + "  " +
		theme.TimeStyle.Render(view.RelativeTime(m.now, n.Timestamp))

	body := n.UserName + " · " + n.Description

	rows := []string{header, body}
	if len(n.Details) > 0 {
		tags := n.Details
		if len(tags) > maxTags {
			tags = tags[:maxTags]
		}
		rendered := make([]string, len(tags))
		for i, t := range tags {
			rendered[i] = theme.TagStyle.Render(t)
		}
		rows = append(rows, strings.Join(rendered, " "))
	}

	style := theme.ItemStyle
	if selected {
		style = theme.SelectedItemStyle()
	}
	return style.Width(m.width - 2).Render(strings.Join(rows, "\n"))
}

// renderEmptyState shows guidance text when no notifications match.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.filtered {
		return style.Render("No matching notifications.\nTry adjusting your filters.")
	}
	return style.Render("No notifications yet.\n\nPress r to refresh.")
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
