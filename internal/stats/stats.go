// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/verte-zerg/typetest/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates stored results.
type Summary struct {
	Tests          int
	BestWPM        int
	AvgWPM         int
	AvgAccuracy    int
	AvgConsistency int
	TotalSeconds   int
	XP             int
	Level          Level
}

// Summarize folds results into a Summary. Averages are rounded; an empty
// input yields 100% accuracy like an untouched session.
func Summarize(records []model.Record) Summary {
	s := Summary{AvgAccuracy: 100, AvgConsistency: 100}
	if len(records) == 0 {
		s.Level = LevelFor(0)
		return s
	}
	var wpm, acc, cons int
	for _, r := range records {
		wpm += r.WPM
		acc += r.Accuracy
		cons += r.Consistency
		s.TotalSeconds += r.Elapsed
		s.XP += XPFor(r.WPM, r.Accuracy)
		if r.WPM > s.BestWPM {
			s.BestWPM = r.WPM
		}
	}
	n := float64(len(records))
	s.Tests = len(records)
	s.AvgWPM = int(math.Round(float64(wpm) / n))
	s.AvgAccuracy = int(math.Round(float64(acc) / n))
	s.AvgConsistency = int(math.Round(float64(cons) / n))
	s.Level = LevelFor(s.XP)
	return s
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Floats converts integer samples for plotting.
func Floats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

// Resample squeezes or stretches values to width points by nearest index.
func Resample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		return append([]float64(nil), values...)
	}
	out := make([]float64, width)
	step := float64(len(values)-1) / float64(width-1)
	for i := range out {
		out[i] = values[int(math.Round(float64(i)*step))]
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = min(max(idx, 0), len(sparkChars)-1)
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the profile summary.
func RenderSummary(w io.Writer, s Summary) error {
	if s.Tests == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Tests: %d", s.Tests),
		fmt.Sprintf("Best WPM: %d", s.BestWPM),
		fmt.Sprintf("Avg WPM: %d", s.AvgWPM),
		fmt.Sprintf("Avg Accuracy: %d%%", s.AvgAccuracy),
		fmt.Sprintf("Avg Consistency: %d%%", s.AvgConsistency),
		fmt.Sprintf("Time typed: %s", FormatSeconds(s.TotalSeconds)),
		fmt.Sprintf("Level %d %s (%d XP)%s", s.Level.Number, s.Level.Name, s.XP, nextLevelNote(s)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func nextLevelNote(s Summary) string {
	next, ok := s.Level.Next()
	if !ok {
		return ", max level"
	}
	return fmt.Sprintf(", %d XP to %s", next.MinXP-s.XP, next.Name)
}

// RenderCurve prints a WPM sparkline over sessions, smoothed by window and
// squeezed to width columns.
func RenderCurve(w io.Writer, records []model.Record, window, width int) error {
	if len(records) == 0 {
		return nil
	}
	wpms := make([]float64, len(records))
	for i, r := range records {
		wpms[i] = float64(r.WPM)
	}
	smoothed := Resample(MovingAverage(wpms, window), width)
	if _, err := fmt.Fprintf(w, "WPM trend (window %d)\n%s\n\n", window, Sparkline(smoothed)); err != nil {
		return err
	}
	return nil
}

// RenderLeaderboard prints personal bests for one category.
func RenderLeaderboard(w io.Writer, category string, entries []model.LeaderboardEntry) error {
	if _, err := fmt.Fprintf(w, "Leaderboard %s\n", category); err != nil {
		return err
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No scores yet.")
		return err
	}
	headers := []string{"#", "WPM", "Accuracy", "Date"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(e.Rank),
			strconv.Itoa(e.WPM),
			fmt.Sprintf("%d%%", e.Accuracy),
			e.EndedAt.Local().Format("2006-01-02"),
		})
	}
	for _, line := range formatTable(headers, rows, 0, 1, 2) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// HistoryRows formats records as table rows, newest first.
func HistoryRows(records []model.Record) (headers []string, rows [][]string) {
	headers = []string{"Date", "Test", "WPM", "Raw", "Acc", "Cons", "Time"}
	rows = make([][]string, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			TestLabel(r),
			strconv.Itoa(r.WPM),
			strconv.Itoa(r.RawWPM),
			fmt.Sprintf("%d%%", r.Accuracy),
			fmt.Sprintf("%d%%", r.Consistency),
			FormatSeconds(r.Elapsed),
		})
	}
	return headers, rows
}

// TestLabel describes a record's settings, e.g. "time 60 +punct".
func TestLabel(r model.Record) string {
	label := string(r.Mode) + " " + r.Target
	if r.Mode == model.ModeCustom {
		label = string(r.Mode)
	}
	if r.Punctuation {
		label += " +punct"
	}
	if r.Numbers {
		label += " +num"
	}
	return label
}

// FormatSeconds renders seconds as "42s", "3m05s" or "1h02m".
func FormatSeconds(total int) string {
	switch {
	case total < 60:
		return fmt.Sprintf("%ds", total)
	case total < 3600:
		return fmt.Sprintf("%dm%02ds", total/60, total%60)
	default:
		return fmt.Sprintf("%dh%02dm", total/3600, (total%3600)/60)
	}
}
