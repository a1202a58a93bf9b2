package stats

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "studylog/internal/modules/stats/dto"
	"studylog/internal/platform/timefmt"
	"studylog/internal/ui/theme"
)

type StatsPort interface {
	Report(ctx context.Context, input statsdto.ReportInput) (statsdto.ReportOutput, error)
}

type ReportMsg struct {
	Report statsdto.ReportOutput
	Err    error
}

const cellWidth = 2

var weekdayLabels = [7]string{"Sun", "", "Tue", "", "Thu", "", "Sat"}

type Model struct {
	port   StatsPort
	Range  string
	Tags   []string
	report statsdto.ReportOutput
	err    error
	width  int
	height int
}

func New(port StatsPort, defaultRange string) Model {
	return Model{port: port, Range: defaultRange}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case ReportMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.report = msg.Report
			m.Range = msg.Report.Range
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Error.Render("stats: " + m.err.Error())
	}
	r := m.report
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(r.RangeLabel))
	if len(r.Tags) > 0 {
		sb.WriteString(theme.Muted.Render("  tags: ") + strings.Join(r.Tags, ", "))
	}
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("%s%s   %s%d   %s%s   %s%d\n\n",
		theme.Muted.Render("total "), theme.Hot.Render(timefmt.FormatSeconds(r.TotalSeconds)),
		theme.Muted.Render("days "), r.DaysStudied,
		theme.Muted.Render("avg/day "), timefmt.FormatSeconds(r.AveragePerStudyDay),
		theme.Muted.Render("sessions "), r.SessionCount))

	maxWeeks := (m.width - 6) / cellWidth
	sb.WriteString(RenderHeatmap(r.Heatmap, maxWeeks))
	sb.WriteString("\n" + Legend() + "\n\n")
	sb.WriteString(theme.Muted.Render("r: next range  :range <name>  :filter <tags>  :filter:clear"))
	return theme.Pane.Width(max(m.width-2, 0)).Render(sb.String())
}

func (m Model) Reload() tea.Cmd {
	input := statsdto.ReportInput{Range: m.Range, Tags: m.Tags, Heatmap: true}
	return func() tea.Msg {
		report, err := m.port.Report(context.Background(), input)
		return ReportMsg{Report: report, Err: err}
	}
}

// RenderHeatmap draws one row per weekday and one column per week, keeping
// the most recent maxWeeks columns. maxWeeks <= 0 draws every week.
func RenderHeatmap(h *statsdto.HeatmapOutput, maxWeeks int) string {
	if h == nil || len(h.Weeks) == 0 {
		return theme.Muted.Render("no heatmap")
	}
	weeks := h.Weeks
	if maxWeeks > 0 && len(weeks) > maxWeeks {
		weeks = weeks[len(weeks)-maxWeeks:]
	}
	var rows [7]strings.Builder
	for weekday := range rows {
		rows[weekday].WriteString(fmt.Sprintf("%-4s", weekdayLabels[weekday]))
	}
	for _, week := range weeks {
		filled := [7]bool{}
		for _, cell := range week {
			rows[cell.Weekday].WriteString(theme.Tier(cell.Tier).Render("■") + " ")
			filled[cell.Weekday] = true
		}
		for weekday, ok := range filled {
			if !ok {
				rows[weekday].WriteString(strings.Repeat(" ", cellWidth))
			}
		}
	}
	lines := make([]string, 0, len(rows))
	for i := range rows {
		lines = append(lines, strings.TrimRight(rows[i].String(), " "))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func Legend() string {
	var sb strings.Builder
	sb.WriteString(theme.Muted.Render("less "))
	for tier := 0; tier < 10; tier++ {
		sb.WriteString(theme.Tier(tier).Render("■"))
	}
	sb.WriteString(theme.Muted.Render(" more"))
	return sb.String()
}
