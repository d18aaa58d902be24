package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"notifeed/internal/api"
	"notifeed/internal/feed"
	"notifeed/internal/host"
	"notifeed/internal/model"
	"notifeed/internal/theme"
	"notifeed/internal/ui"
	"notifeed/internal/ui/feedlist"
	"notifeed/internal/ui/filterpanel"
	helpview "notifeed/internal/ui/help"
	"notifeed/internal/view"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewFeed ViewState = iota
	ViewFilter
	ViewHelp
)

// typeChips are the type filter values cycled by the chip key, starting
// with the open axis.
var typeChips = buildTypeChips()

func buildTypeChips() []string {
	chips := []string{model.FilterAll}
	for _, t := range model.FilterableTypes {
		chips = append(chips, string(t))
	}
	return chips
}

// Model is the root Bubble Tea model. It owns the application state the
// widget needs: the notification store, the sync engine, and the filter
// selection. All mutations flow through its Update method; there are no
// ambient globals.
type Model struct {
	cfg    *model.AppConfig
	keys   *KeyMap
	layout ui.Layout
	log    zerolog.Logger
	hst    host.Host

	store  *feed.Store
	engine *feed.Engine
	filter model.Filter

	feedList    feedlist.Model
	filterPanel filterpanel.Model
	helpView    helpview.Model

	currentView  ViewState
	previousView ViewState

	stats     model.Stats
	typeIndex int
	notice    string
	noticeSeq int
	limiter   *rate.Limiter
	ready     bool
}

// New creates the root application model. It resolves the backend base
// URL from configuration and wires the store and engine.
func New(cfg *model.AppConfig, h host.Host, log zerolog.Logger) (Model, error) {
	baseURL, err := cfg.API.ResolveBaseURL()
	if err != nil {
		return Model{}, fmt.Errorf("resolving API base URL: %w", err)
	}

	keys := DefaultKeyMap()
	store := feed.NewStore()
	engine := feed.NewEngine(
		api.NewClient(baseURL), store, cfg.API.PageLimit, log,
	)

	theme.SetAccent(cfg.Display.Accent)
	theme.SetAccent(h.ThemeAccent())

	return Model{
		cfg:         cfg,
		keys:        keys,
		log:         log,
		hst:         h,
		store:       store,
		engine:      engine,
		filter:      model.DefaultFilter(),
		feedList:    feedlist.New(keys, 80, 24),
		filterPanel: filterpanel.New(80, 24),
		helpView:    helpview.New(keys, 80, 24),
		currentView: ViewFeed,
		// One manual refresh every two seconds is plenty; a held key
		// must not hammer the backend.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}, nil
}

// Init loads the first page and starts the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.feedList.Init(), m.reloadCmd())
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.feedList.SetSize(contentWidth, contentHeight)
		m.filterPanel.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		return m, nil

	case ReloadDoneMsg:
		return m.handleReloadDone(msg)

	case StatsMsg:
		m.stats = msg.Stats
		return m, nil

	case MarkDoneMsg:
		// The read flag is already flipped locally whatever happened
		// remotely; re-derive the view so the badge disappears.
		m.reproject()
		if msg.Err != nil {
			// Remote confirmation failed: recompute counts locally so
			// the unread figure still moves. Remote and local counts
			// are never mixed; this replaces the whole snapshot.
			m.stats = m.engine.LocalStats(m.filter)
			return m, nil
		}
		return m, m.statsCmd()

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case feedlist.MarkRequestedMsg:
		return m, m.markReadCmd(msg.ID)

	case filterpanel.AppliedMsg:
		m.currentView = ViewFeed
		if m.filter.Manager == msg.Manager {
			return m, nil
		}
		// The manager axis is a backend query parameter, so applying
		// it triggers a full reload.
		m.filter.Manager = msg.Manager
		m.feedList.SetLoading(true)
		return m, tea.Batch(m.feedList.Init(), m.reloadCmd())

	case filterpanel.CancelledMsg:
		m.currentView = ViewFeed
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m.updateActiveView(msg)
}

// handleReloadDone applies a finished reload to the view.
func (m Model) handleReloadDone(msg ReloadDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Result.Stale {
		// A newer reload is in flight; its result will arrive shortly.
		return m, nil
	}

	m.reproject()

	var cmds []tea.Cmd
	if msg.Result.Err != nil {
		if msg.Result.FromFallback {
			cmds = append(cmds, m.showNotice(
				"Backend unreachable. Showing sample data.",
			))
		} else {
			cmds = append(cmds, m.showNotice(
				"Refresh failed. Showing previously loaded data.",
			))
		}
		// Counts must match what is actually on screen, so the remote
		// snapshot is skipped for this cycle.
		m.stats = m.engine.LocalStats(m.filter)
	} else {
		cmds = append(cmds, m.statsCmd())
	}

	return m, tea.Batch(cmds...)
}

// handleConfigReloaded swaps in a fresh configuration from the watcher.
func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	baseURL, err := msg.Config.API.ResolveBaseURL()
	if err != nil {
		m.log.Error().Err(err).Msg("ignoring config change")
		return m, m.showNotice("Config change ignored: " + err.Error())
	}

	m.cfg = msg.Config
	m.engine = feed.NewEngine(
		api.NewClient(baseURL), m.store, msg.Config.API.PageLimit, m.log,
	)
	theme.SetAccent(msg.Config.Display.Accent)
	theme.SetAccent(m.hst.ThemeAccent())

	m.log.Info().Str("base_url", baseURL).Msg("config reloaded")
	return m, m.reloadCmd()
}

// handleKeys processes global keys and routes the rest to the active view.
func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "q":
		if m.currentView == ViewFeed {
			return m, tea.Quit
		}

	case "?":
		if m.currentView == ViewFilter {
			break
		}
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil

	case "esc":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil
		}

	case "r":
		if m.currentView == ViewFeed {
			if !m.limiter.Allow() {
				return m, m.showNotice("Refreshing too fast; hold on.")
			}
			m.feedList.SetLoading(true)
			return m, tea.Batch(m.feedList.Init(), m.reloadCmd())
		}

	case "tab":
		if m.currentView == ViewFeed {
			// Type chips are presentation-only: they narrow the page
			// already loaded and never refetch.
			m.typeIndex = (m.typeIndex + 1) % len(typeChips)
			m.filter.Type = typeChips[m.typeIndex]
			m.reproject()
			m.stats = m.engine.LocalStats(m.filter)
			return m, nil
		}

	case "f":
		if m.currentView == ViewFeed {
			m.previousView = m.currentView
			m.currentView = ViewFilter
			return m, m.filterPanel.Start(
				m.store.ManagerOptions(), m.filter.Manager,
			)
		}

	case "x":
		if m.currentView == ViewFeed {
			// Clearing re-derives the projection from cached data; it
			// does not refetch.
			m.filter = model.DefaultFilter()
			m.typeIndex = 0
			m.reproject()
			m.stats = m.engine.LocalStats(m.filter)
			return m, nil
		}
	}

	return m.updateActiveView(msg)
}

// updateActiveView forwards a message to whichever view is active.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewFeed:
		m.feedList, cmd = m.feedList.Update(msg)
	case ViewFilter:
		m.filterPanel, cmd = m.filterPanel.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}
	return m, cmd
}

// reproject re-derives the rendered view from the store and filter.
func (m *Model) reproject() {
	now := time.Now()
	p := view.Project(m.store.Records(), m.filter, now)
	m.feedList.SetProjection(p, !m.filter.IsAll(), now)
}

// View renders the full application frame.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := m.layout.RenderHeader("Notifications", m.statsLine())

	var content string
	switch m.currentView {
	case ViewFilter:
		content = m.filterPanel.View()
	case ViewHelp:
		content = m.helpView.View()
	default:
		content = m.feedList.View()
	}

	statusBar := m.layout.RenderStatusBar(m.statusLine())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// statsLine formats the aggregate counters for the header.
func (m Model) statsLine() string {
	line := fmt.Sprintf(
		"%d total · %d unread · %d today",
		m.stats.Total, m.stats.Unread, m.stats.Today,
	)
	if m.stats.Origin == model.StatsLocal {
		line += " (local)"
	}
	return line
}

// statusLine shows the transient notice when present, otherwise the
// active filter and key hints.
func (m Model) statusLine() string {
	if m.notice != "" {
		return theme.ErrorStyle.Render(m.notice)
	}

	line := "r refresh · tab type · f manager · x clear · ? help · q quit"
	if !m.filter.IsAll() {
		line = fmt.Sprintf(
			"filter: type=%s manager=%s · %s",
			m.filter.Type, m.filter.Manager, line,
		)
	}
	return line
}
