package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"notifeed/internal/feed"
	"notifeed/internal/model"
)

// noticeDuration is how long a transient status-bar notice stays up.
const noticeDuration = 5 * time.Second

// ReloadDoneMsg carries the outcome of a reload command.
type ReloadDoneMsg struct {
	Result feed.ReloadResult
}

// StatsMsg carries a fresh aggregate snapshot.
type StatsMsg struct {
	Stats model.Stats
}

// MarkDoneMsg reports a finished mark-read operation. Err is only the
// remote confirmation outcome; the local flag is already set either way.
type MarkDoneMsg struct {
	ID  string
	Err error
}

// ConfigReloadedMsg is injected by the config watcher when the file on
// disk changes.
type ConfigReloadedMsg struct {
	Config *model.AppConfig
}

// noticeExpiredMsg clears a transient notice once its time is up.
type noticeExpiredMsg struct {
	seq int
}

// reloadCmd fetches the feed for the current filter off the UI loop.
func (m Model) reloadCmd() tea.Cmd {
	engine := m.engine
	filter := m.filter
	return func() tea.Msg {
		return ReloadDoneMsg{Result: engine.Reload(context.Background(), filter)}
	}
}

// statsCmd fetches the aggregate snapshot for the current filter.
func (m Model) statsCmd() tea.Cmd {
	engine := m.engine
	filter := m.filter
	return func() tea.Msg {
		return StatsMsg{Stats: engine.FetchStats(context.Background(), filter)}
	}
}

// markReadCmd marks a notification read and confirms it to the backend.
func (m Model) markReadCmd(id string) tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		return MarkDoneMsg{ID: id, Err: engine.MarkRead(context.Background(), id)}
	}
}

// showNotice puts a transient message in the status bar and schedules
// its expiry.
func (m *Model) showNotice(text string) tea.Cmd {
	m.notice = text
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}
