package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "studylog/internal/modules/session/dto"
	statsdto "studylog/internal/modules/stats/dto"
	"studylog/internal/platform/timefmt"
	"studylog/internal/ui/components"
	"studylog/internal/ui/theme"
	sessionsview "studylog/internal/ui/views/sessions"
	statsview "studylog/internal/ui/views/stats"
	timerview "studylog/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type sessionPort interface {
	List(ctx context.Context) ([]sessiondto.SessionOutput, error)
	Add(ctx context.Context, input sessiondto.AddInput) (sessiondto.SessionOutput, error)
	Edit(ctx context.Context, input sessiondto.EditInput) (sessiondto.SessionOutput, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context) (sessiondto.ExportOutput, error)
	Sync(ctx context.Context) error
}

type statsPort interface {
	Report(ctx context.Context, input statsdto.ReportInput) (statsdto.ReportOutput, error)
	NextRange(ctx context.Context, current string) string
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTimer tabID = iota
	tabSessions
	tabStats
	tabCount
)

var tabLabels = [tabCount]string{"Timer", "Sessions", "Stats"}

// ─── async messages ───────────────────────────────────────────────────────────

// mutatedMsg reports a finished session change. Lists and stats reload on it.
type mutatedMsg struct {
	status string
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Stop    key.Binding
	Delete  key.Binding
	Range   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause/resume")),
		Stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop and save")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete session")),
		Range:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "next range")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Toggle, k.Stop},
		{k.Delete, k.Range},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay
// and the command palette; everything else lives in the sub-views.
type Model struct {
	loc      *time.Location
	sessions sessionPort
	stats    statsPort

	timerView    timerview.Model
	sessionsView sessionsview.Model
	statsView    statsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(loc *time.Location, defaultRange string, timer timerview.TimerPort, sessions sessionPort, stats statsPort) Model {
	return Model{
		loc:          loc,
		sessions:     sessions,
		stats:        stats,
		timerView:    timerview.New(timer),
		sessionsView: sessionsview.New(sessions, loc),
		statsView:    statsview.New(stats, defaultRange),
		activeTab:    tabTimer,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.timerView.Init(), m.sessionsView.Init(), m.statsView.Init())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case timerview.StatusMsg:
		if msg.Err != nil {
			m.status = "timer: " + msg.Err.Error()
		}
		m.timerView, _ = m.timerView.Update(msg)
		return m, nil

	case timerview.StoppedMsg:
		m.timerView, _ = m.timerView.Update(msg)
		if msg.Err != nil {
			m.status = "stop failed: " + msg.Err.Error()
			return m, nil
		}
		m.status = timerview.Describe(msg.Out)
		if !msg.Out.Recorded {
			return m, nil
		}
		return m, tea.Batch(m.sessionsView.Reload(), m.statsView.Reload())

	case sessionsview.LoadedMsg:
		m.sessionsView, _ = m.sessionsView.Update(msg)
		return m, nil

	case statsview.ReportMsg:
		m.statsView, _ = m.statsView.Update(msg)
		return m, nil

	case mutatedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		return m, tea.Batch(m.sessionsView.Reload(), m.statsView.Reload())

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the session list while its search filter is open.
		if m.activeTab == tabSessions && m.sessionsView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case " ":
			if m.activeTab == tabTimer {
				return m, m.timerView.Toggle()
			}
		case "x":
			if m.activeTab == tabTimer {
				return m, m.timerView.StopCmd()
			}
		case "d":
			if m.activeTab == tabSessions {
				if s, ok := m.sessionsView.Selected(); ok {
					return m, m.deleteCmd(s.ID)
				}
			}
		case "r":
			if m.activeTab == tabStats {
				m.statsView.Range = m.stats.NextRange(context.Background(), m.statsView.Range)
				return m, m.statsView.Reload()
			}
		}
	}

	// The stopwatch tick must keep flowing whichever tab is visible.
	var timerCmd tea.Cmd
	m.timerView, timerCmd = m.timerView.Update(msg)
	cmds = append(cmds, timerCmd)

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabSessions:
		m.sessionsView, tabCmd = m.sessionsView.Update(msg)
	case tabStats:
		m.statsView, tabCmd = m.statsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTimer:
		return m.timerView.View()
	case tabSessions:
		return m.sessionsView.View()
	case tabStats:
		return m.statsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	bar := "studylog  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.timerView.Running() {
		left = theme.Hot.Render("● "+timefmt.FormatDuration(m.timerView.Elapsed())) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
	selected, hasSelected := m.sessionsView.Selected()

	switch parts[0] {
	case "topic":
		m.timerView.Topic = rest
		m.status = "topic set"
	case "notes":
		m.timerView.Notes = rest
		m.status = "notes set"
	case "tags":
		m.timerView.Tags = splitTags(rest)
		m.status = "tags set"
	case "stop":
		return m, m.timerView.StopCmd()

	case "add":
		if len(parts) < 3 {
			m.status = "usage: add <start> <end> [topic]"
			return m, nil
		}
		topic := strings.TrimSpace(strings.TrimPrefix(rest, parts[1]+" "+parts[2]))
		return m, m.addCmd(sessiondto.AddInput{Start: parts[1], End: parts[2], Topic: topic})

	case "edit:time", "edit:topic", "edit:notes", "edit:tags":
		if !hasSelected {
			m.status = "no session selected"
			return m, nil
		}
		edit, err := m.editFor(selected, parts[0], parts[1:], rest)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.editCmd(edit)

	case "delete":
		if !hasSelected {
			m.status = "no session selected"
			return m, nil
		}
		return m, m.deleteCmd(selected.ID)

	case "range":
		if len(parts) < 2 {
			m.status = "usage: range <name>"
			return m, nil
		}
		m.statsView.Range = parts[1]
		m.activeTab = tabStats
		return m, m.statsView.Reload()
	case "filter":
		m.statsView.Tags = splitTags(rest)
		m.activeTab = tabStats
		return m, m.statsView.Reload()
	case "filter:clear":
		m.statsView.Tags = nil
		return m, m.statsView.Reload()

	case "export":
		return m, m.exportCmd(rest)
	case "sync":
		return m, m.syncCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// editFor builds a full edit from the selected session, replacing the one
// field the palette command names.
func (m Model) editFor(s sessiondto.SessionOutput, command string, args []string, rest string) (sessiondto.EditInput, error) {
	edit := sessiondto.EditInput{
		ID:      s.ID,
		StartAt: s.StartAt,
		EndAt:   s.EndAt,
		Topic:   s.Topic,
		Notes:   s.Notes,
		Tags:    s.Tags,
	}
	switch command {
	case "edit:time":
		if len(args) < 2 {
			return edit, fmt.Errorf("usage: edit:time <start> <end>")
		}
		edit.Start, edit.End = args[0], args[1]
	case "edit:topic":
		edit.Topic = rest
	case "edit:notes":
		edit.Notes = rest
	case "edit:tags":
		edit.Tags = splitTags(rest)
	}
	return edit, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.timerView, _ = m.timerView.Update(sz)
	m.sessionsView, _ = m.sessionsView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
}

func splitTags(s string) []string {
	var tags []string
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) addCmd(input sessiondto.AddInput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.sessions.Add(context.Background(), input)
		if err != nil {
			return mutatedMsg{err: err}
		}
		return mutatedMsg{status: "added " + out.Topic}
	}
}

func (m Model) editCmd(input sessiondto.EditInput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.sessions.Edit(context.Background(), input)
		if err != nil {
			return mutatedMsg{err: err}
		}
		return mutatedMsg{status: "updated " + out.Topic}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.sessions.Delete(context.Background(), id); err != nil {
			return mutatedMsg{err: err}
		}
		return mutatedMsg{status: "session deleted"}
	}
}

func (m Model) exportCmd(path string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.sessions.Export(context.Background())
		if err != nil {
			return mutatedMsg{err: err}
		}
		if path == "" {
			path = out.FileName
		}
		if err := os.WriteFile(path, out.Data, 0o644); err != nil {
			return mutatedMsg{err: fmt.Errorf("write export: %w", err)}
		}
		return mutatedMsg{status: fmt.Sprintf("exported %d sessions to %s", out.Count, path)}
	}
}

func (m Model) syncCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.sessions.Sync(context.Background()); err != nil {
			return mutatedMsg{err: err}
		}
		return mutatedMsg{status: "sessions saved"}
	}
}
