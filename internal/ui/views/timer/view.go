package timer

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	timerdto "studylog/internal/modules/timer/dto"
	"studylog/internal/platform/timefmt"
	"studylog/internal/ui/theme"
)

// TickInterval is how often the elapsed display refreshes.
const TickInterval = 500 * time.Millisecond

type TimerPort interface {
	Start(ctx context.Context) (timerdto.StatusOutput, error)
	Pause(ctx context.Context) (timerdto.StatusOutput, error)
	Resume(ctx context.Context) (timerdto.StatusOutput, error)
	Status(ctx context.Context) (timerdto.StatusOutput, error)
	Stop(ctx context.Context, input timerdto.StopInput) (timerdto.StopOutput, error)
}

// StatusMsg carries a fresh stopwatch sample.
type StatusMsg struct {
	Status timerdto.StatusOutput
	Err    error
}

// StoppedMsg is emitted after a stop. The app refreshes its lists on it.
type StoppedMsg struct {
	Out timerdto.StopOutput
	Err error
}

type tickMsg time.Time

var clockStyle = lipgloss.NewStyle().Foreground(theme.Lavender).Bold(true).Padding(1, 4).
	BorderStyle(lipgloss.RoundedBorder()).BorderForeground(theme.Surface1)

type Model struct {
	port      TimerPort
	status    timerdto.StatusOutput
	sampledAt time.Time
	now       func() time.Time

	// metadata attached to the session on the next stop
	Topic string
	Notes string
	Tags  []string

	width  int
	height int
}

func New(port TimerPort) Model {
	return Model{port: port, status: timerdto.StatusOutput{Status: "idle"}, now: time.Now}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.statusCmd(), tick())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		if msg.Err == nil {
			m.status = msg.Status
			m.sampledAt = m.now()
		}
	case StoppedMsg:
		if msg.Err == nil {
			m.status = timerdto.StatusOutput{Status: "idle"}
			m.sampledAt = m.now()
			m.Topic, m.Notes, m.Tags = "", "", nil
		}
	case tickMsg:
		return m, tick()
	}
	return m, nil
}

// Elapsed extrapolates from the last sample so the display advances between
// store reads.
func (m Model) Elapsed() int64 {
	elapsed := m.status.ElapsedMs
	if m.status.Status == "running" && !m.sampledAt.IsZero() {
		elapsed += m.now().Sub(m.sampledAt).Milliseconds()
	}
	return elapsed
}

func (m Model) Running() bool { return m.status.Status == "running" }

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(clockStyle.Render(timefmt.FormatDuration(m.Elapsed())) + "\n\n")
	sb.WriteString(theme.Muted.Render("status: ") + m.renderStatus() + "\n")
	sb.WriteString(theme.Muted.Render("topic:  ") + orDash(m.Topic) + "\n")
	sb.WriteString(theme.Muted.Render("notes:  ") + orDash(m.Notes) + "\n")
	sb.WriteString(theme.Muted.Render("tags:   ") + orDash(strings.Join(m.Tags, ", ")) + "\n\n")
	sb.WriteString(theme.Muted.Render("space: start/pause  x: stop and save  :topic / :notes / :tags"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}

// Toggle starts, pauses or resumes depending on the current status.
func (m Model) Toggle() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var out timerdto.StatusOutput
		var err error
		switch m.status.Status {
		case "running":
			out, err = m.port.Pause(ctx)
		case "paused":
			out, err = m.port.Resume(ctx)
		default:
			out, err = m.port.Start(ctx)
		}
		return StatusMsg{Status: out, Err: err}
	}
}

func (m Model) StopCmd() tea.Cmd {
	input := timerdto.StopInput{Topic: m.Topic, Notes: m.Notes, Tags: m.Tags}
	return func() tea.Msg {
		out, err := m.port.Stop(context.Background(), input)
		return StoppedMsg{Out: out, Err: err}
	}
}

func (m Model) statusCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Status(context.Background())
		return StatusMsg{Status: out, Err: err}
	}
}

func (m Model) renderStatus() string {
	switch m.status.Status {
	case "running":
		return theme.Hot.Render("● running")
	case "paused":
		return lipgloss.NewStyle().Foreground(theme.Yellow).Render("❚❚ paused")
	default:
		return theme.Muted.Render("idle")
	}
}

func tick() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func orDash(s string) string {
	if s == "" {
		return theme.Muted.Render("—")
	}
	return s
}

// Describe summarizes a stop result for the status bar.
func Describe(out timerdto.StopOutput) string {
	if !out.Recorded {
		return "nothing recorded"
	}
	return fmt.Sprintf("saved %s of %s", timefmt.FormatDuration(out.Session.DurationMs), out.Session.Topic)
}
