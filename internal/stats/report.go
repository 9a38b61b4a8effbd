package stats

import (
	"context"
	"io"
	"strings"

	"github.com/verte-zerg/typetest/internal/model"
)

// LeaderboardSize is the number of entries kept per category.
const LeaderboardSize = 10

// Source is the read side of the result store.
type Source interface {
	ListResults(ctx context.Context, cfg model.StatsConfig) ([]model.Record, error)
	Categories(ctx context.Context) ([]string, error)
	Leaderboard(ctx context.Context, category string, limit int) ([]model.LeaderboardEntry, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Records      []model.Record
	Summary      Summary
	Categories   []string
	Leaderboards map[string][]model.LeaderboardEntry
}

// BuildReport loads and prepares data for stats rendering. Leaderboards
// ignore the history filters and always rank the whole category.
func BuildReport(ctx context.Context, src Source, cfg model.StatsConfig) (Report, error) {
	records, err := src.ListResults(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	categories, err := src.Categories(ctx)
	if err != nil {
		return Report{}, err
	}
	if cfg.Mode != "" {
		categories = filterCategories(categories, cfg.Mode)
	}

	boards := make(map[string][]model.LeaderboardEntry, len(categories))
	for _, c := range categories {
		entries, err := src.Leaderboard(ctx, c, LeaderboardSize)
		if err != nil {
			return Report{}, err
		}
		boards[c] = entries
	}

	return Report{
		Records:      records,
		Summary:      Summarize(records),
		Categories:   categories,
		Leaderboards: boards,
	}, nil
}

func filterCategories(categories []string, mode string) []string {
	out := categories[:0:0]
	for _, c := range categories {
		if strings.HasPrefix(c, mode+"_") {
			out = append(out, c)
		}
	}
	return out
}

// Render prints the full plain-text report.
func (r Report) Render(w io.Writer, cfg model.StatsConfig, width int) error {
	if err := RenderSummary(w, r.Summary); err != nil {
		return err
	}
	if err := RenderCurve(w, r.Records, cfg.CurveWindow, width); err != nil {
		return err
	}
	for _, c := range r.Categories {
		if err := RenderLeaderboard(w, c, r.Leaderboards[c]); err != nil {
			return err
		}
	}
	return nil
}
