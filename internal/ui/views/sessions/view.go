package sessions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	sessiondto "studylog/internal/modules/session/dto"
	"studylog/internal/platform/timefmt"
	"studylog/internal/ui/theme"
)

type SessionPort interface {
	List(ctx context.Context) ([]sessiondto.SessionOutput, error)
}

type LoadedMsg struct {
	Sessions []sessiondto.SessionOutput
	Err      error
}

type sessionItem struct {
	session sessiondto.SessionOutput
	loc     *time.Location
}

func (i sessionItem) Title() string { return i.session.Topic }
func (i sessionItem) Description() string {
	desc := fmt.Sprintf("%s  %s", timefmt.LocalDatetimeString(i.session.StartAt, i.loc), timefmt.FormatDuration(i.session.DurationMs))
	if len(i.session.Tags) > 0 {
		desc += "  #" + strings.Join(i.session.Tags, " #")
	}
	return desc
}
func (i sessionItem) FilterValue() string {
	return i.session.Topic + " " + strings.Join(i.session.Tags, " ")
}

type Model struct {
	port    SessionPort
	loc     *time.Location
	list    list.Model
	preview viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port SessionPort, loc *time.Location) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Sessions"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	if loc == nil {
		loc = time.Local
	}
	return Model{port: port, loc: loc, list: l, preview: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Sessions: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = fmt.Sprintf("Sessions (%d)", len(msg.Sessions))
		items := make([]list.Item, len(msg.Sessions))
		for i, s := range msg.Sessions {
			items[i] = sessionItem{session: s, loc: m.loc}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.preview.SetContent(m.renderDetail())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.preview.SetContent(m.renderDetail())
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading sessions…")
	}

	listW := m.width * 5 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Selected returns the highlighted session, if any.
func (m Model) Selected() (sessiondto.SessionOutput, bool) {
	if item, ok := m.list.SelectedItem().(sessionItem); ok {
		return item.session, true
	}
	return sessiondto.SessionOutput{}, false
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		sessions, err := m.port.List(context.Background())
		return LoadedMsg{Sessions: sessions, Err: err}
	}
}

func (m *Model) resize() {
	listW := m.width * 5 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	s, ok := m.Selected()
	if !ok {
		return theme.Muted.Render("No sessions yet. Start the stopwatch on the Timer tab.")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(s.Topic) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:       ") + s.ID + "\n")
	sb.WriteString(theme.Muted.Render("start:    ") + timefmt.LocalDatetimeString(s.StartAt, m.loc) + "\n")
	sb.WriteString(theme.Muted.Render("end:      ") + timefmt.LocalDatetimeString(s.EndAt, m.loc) + "\n")
	sb.WriteString(theme.Muted.Render("duration: ") + timefmt.FormatDuration(s.DurationMs) + "\n")
	sb.WriteString(theme.Muted.Render("ended:    ") + humanize.Time(timefmt.ToTime(s.EndAt, m.loc)) + "\n")
	if len(s.Tags) > 0 {
		sb.WriteString(theme.Muted.Render("tags:     ") + strings.Join(s.Tags, ", ") + "\n")
	}
	if s.Notes != "" {
		sb.WriteString("\n" + s.Notes + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("d: delete  :edit:time / :edit:topic / :edit:tags / :edit:notes"))
	return sb.String()
}
