package statsui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typetest/internal/model"
)

type fakeSource struct {
	records []model.Record
	boards  map[string][]model.LeaderboardEntry
	order   []string
	err     error
	lastCfg model.StatsConfig
}

func (f *fakeSource) ListResults(_ context.Context, cfg model.StatsConfig) ([]model.Record, error) {
	f.lastCfg = cfg
	return f.records, f.err
}

func (f *fakeSource) Categories(context.Context) ([]string, error) {
	return f.order, nil
}

func (f *fakeSource) Leaderboard(_ context.Context, category string, _ int) ([]model.LeaderboardEntry, error) {
	return f.boards[category], nil
}

func newSource() *fakeSource {
	end := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	return &fakeSource{
		records: []model.Record{
			{ID: "1", EndedAt: end, Mode: model.ModeTime, Target: "30", Result: model.Result{WPM: 50, Accuracy: 90, Elapsed: 30}},
			{ID: "2", EndedAt: end.Add(time.Hour), Mode: model.ModeWords, Target: "10", Result: model.Result{WPM: 70, Accuracy: 100, Elapsed: 9}},
		},
		order: []string{"time_30", "words_10"},
		boards: map[string][]model.LeaderboardEntry{
			"time_30":  {{Rank: 1, Category: "time_30", WPM: 50, Accuracy: 90, EndedAt: end}},
			"words_10": {{Rank: 1, Category: "words_10", WPM: 70, Accuracy: 100, EndedAt: end.Add(time.Hour)}},
		},
	}
}

func sized(m *Model) *Model {
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func TestOverviewShowsSummary(t *testing.T) {
	m := sized(NewModel(newSource(), model.StatsConfig{CurveWindow: 5}))
	view := m.View()
	for _, want := range []string{"Overview", "Best WPM", "70", "Level 5 Proficient", "WPM trend"} {
		if !strings.Contains(view, want) {
			t.Fatalf("overview missing %q:\n%s", want, view)
		}
	}
}

func TestTabsAndCategories(t *testing.T) {
	m := sized(NewModel(newSource(), model.StatsConfig{CurveWindow: 5}))

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabHistory {
		t.Fatalf("expected history tab, got %d", m.activeTab)
	}
	if view := m.View(); !strings.Contains(view, "words 10") {
		t.Fatalf("history missing record:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if view := m.View(); !strings.Contains(view, "Category: time_30 (1/2)") {
		t.Fatalf("leaderboard missing category line:\n%s", view)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("]")})
	if got := m.currentCategory(); got != "words_10" {
		t.Fatalf("expected words_10, got %s", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("]")})
	if got := m.currentCategory(); got != "time_30" {
		t.Fatalf("expected wrap to time_30, got %s", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabOverview {
		t.Fatalf("expected wrap to overview, got %d", m.activeTab)
	}
}

func TestCurveWindowKeys(t *testing.T) {
	m := sized(NewModel(newSource(), model.StatsConfig{CurveWindow: 5}))
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("=")})
	if m.cfg.CurveWindow != 10 {
		t.Fatalf("expected window 10, got %d", m.cfg.CurveWindow)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")})
	if m.cfg.CurveWindow != 1 {
		t.Fatalf("expected window 1, got %d", m.cfg.CurveWindow)
	}
}

func TestApplyFilter(t *testing.T) {
	src := newSource()
	m := sized(NewModel(src, model.StatsConfig{CurveWindow: 5}))
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	if !m.filterMode {
		t.Fatalf("expected filter mode")
	}

	m.filterInputs[0].SetValue("bogus")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.filterMode || m.filterError == "" {
		t.Fatalf("expected invalid mode error")
	}

	m.filterInputs[0].SetValue("time")
	m.filterInputs[1].SetValue("2024-01-15")
	m.filterInputs[2].SetValue("3")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.filterMode {
		t.Fatalf("expected filter applied: %s", m.filterError)
	}
	if src.lastCfg.Mode != "time" || src.lastCfg.Last != 3 || src.lastCfg.Since == nil {
		t.Fatalf("unexpected config: %+v", src.lastCfg)
	}
	if len(m.report.Categories) != 1 {
		t.Fatalf("expected categories filtered by mode, got %v", m.report.Categories)
	}
}

func TestLoadErrorShown(t *testing.T) {
	src := newSource()
	src.err = errors.New("database is locked")
	m := sized(NewModel(src, model.StatsConfig{}))
	if view := m.View(); !strings.Contains(view, "database is locked") {
		t.Fatalf("expected error in footer:\n%s", view)
	}
}

func TestWrapIndex(t *testing.T) {
	cases := []struct{ i, d, n, want int }{
		{0, -1, 3, 2},
		{2, 1, 3, 0},
		{1, 0, 3, 1},
		{0, 1, 0, 0},
	}
	for _, tc := range cases {
		if got := wrapIndex(tc.i, tc.d, tc.n); got != tc.want {
			t.Fatalf("wrapIndex(%d,%d,%d)=%d want %d", tc.i, tc.d, tc.n, got, tc.want)
		}
	}
}
