package stats

import (
	"strings"
	"testing"

	statsdto "studylog/internal/modules/stats/dto"
)

func TestRenderHeatmapKeepsRecentWeeks(t *testing.T) {
	t.Parallel()
	full := func(day string) []statsdto.CellOutput {
		week := make([]statsdto.CellOutput, 0, 7)
		for wd := 0; wd < 7; wd++ {
			week = append(week, statsdto.CellOutput{Day: day, Weekday: wd})
		}
		return week
	}
	h := &statsdto.HeatmapOutput{Weeks: [][]statsdto.CellOutput{
		full("2026-09-27"),
		full("2026-10-04"),
		{{Day: "2026-10-11", Weekday: 0, Seconds: 3600, Tier: 4}, {Day: "2026-10-12", Weekday: 1}},
	}}

	out := RenderHeatmap(h, 2)
	if got := strings.Count(out, "■"); got != 9 {
		t.Fatalf("expected 9 cells from the last two weeks, got %d\n%s", got, out)
	}
	if lines := strings.Split(out, "\n"); len(lines) != 7 {
		t.Fatalf("expected one row per weekday, got %d", len(lines))
	}
	if got := strings.Count(RenderHeatmap(h, 0), "■"); got != 16 {
		t.Fatalf("maxWeeks 0 should draw every cell, got %d", got)
	}
	if !strings.Contains(RenderHeatmap(nil, 10), "no heatmap") {
		t.Fatalf("nil heatmap should render placeholder")
	}
}
