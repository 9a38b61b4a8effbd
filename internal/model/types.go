// Package model defines shared data structures.
package model

import (
	"strconv"
	"strings"
	"time"
)

// Mode is the session completion criterion and text-sizing policy.
type Mode string

// Supported modes.
const (
	ModeTime   Mode = "time"
	ModeWords  Mode = "words"
	ModeQuote  Mode = "quote"
	ModeCustom Mode = "custom"
)

// Modes lists every supported mode in display order.
var Modes = []Mode{ModeTime, ModeWords, ModeQuote, ModeCustom}

// ParseMode maps a name to a Mode. Unknown names fall back to ModeWords.
func ParseMode(name string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case ModeTime:
		return ModeTime
	case ModeQuote:
		return ModeQuote
	case ModeCustom:
		return ModeCustom
	default:
		return ModeWords
	}
}

// QuoteSize selects how much quote text is generated.
type QuoteSize string

// Quote size tiers.
const (
	QuoteShort  QuoteSize = "short"
	QuoteMedium QuoteSize = "medium"
	QuoteLong   QuoteSize = "long"
)

// ParseQuoteSize maps a name to a QuoteSize. Unknown names fall back to QuoteMedium.
func ParseQuoteSize(name string) QuoteSize {
	switch QuoteSize(strings.ToLower(strings.TrimSpace(name))) {
	case QuoteShort:
		return QuoteShort
	case QuoteLong:
		return QuoteLong
	default:
		return QuoteMedium
	}
}

// Target is the mode-dependent session size.
type Target struct {
	Duration  int // seconds, time mode
	Count     int // words, words mode
	QuoteSize QuoteSize
}

// Options controls text post-processing.
type Options struct {
	Punctuation bool
	Numbers     bool
	CustomText  string
}

// Config defines practice settings.
type Config struct {
	Mode         Mode
	Target       Target
	Options      Options
	WordListPath string
	Save         bool
}

// Label returns the mode-dependent target as shown in categories.
func (c Config) Label() string {
	return TargetLabel(c.Mode, c.Target)
}

// TargetLabel formats a target for the given mode, e.g. "60" or "medium".
func TargetLabel(mode Mode, target Target) string {
	switch mode {
	case ModeTime:
		return strconv.Itoa(target.Duration)
	case ModeWords:
		return strconv.Itoa(target.Count)
	case ModeQuote:
		return string(ParseQuoteSize(string(target.QuoteSize)))
	default:
		return string(ModeCustom)
	}
}

// Result is the final statistics bundle of one session.
type Result struct {
	WPM          int   `json:"wpm" yaml:"wpm"`
	RawWPM       int   `json:"raw_wpm" yaml:"raw_wpm"`
	Accuracy     int   `json:"accuracy" yaml:"accuracy"`
	CorrectChars int   `json:"correct_chars" yaml:"correct_chars"`
	TotalChars   int   `json:"total_chars" yaml:"total_chars"`
	Errors       int   `json:"errors" yaml:"errors"`
	Elapsed      int   `json:"elapsed" yaml:"elapsed"`
	Consistency  int   `json:"consistency" yaml:"consistency"`
	WPMHistory   []int `json:"wpm_history" yaml:"wpm_history"`
}

// Record is a stored session result.
type Record struct {
	ID          string    `json:"id" yaml:"id"`
	StartedAt   time.Time `json:"started_at" yaml:"started_at"`
	EndedAt     time.Time `json:"ended_at" yaml:"ended_at"`
	Mode        Mode      `json:"mode" yaml:"mode"`
	Target      string    `json:"target" yaml:"target"`
	Punctuation bool      `json:"punctuation" yaml:"punctuation"`
	Numbers     bool      `json:"numbers" yaml:"numbers"`
	Result      `json:",inline" yaml:",inline"`
}

// Category returns the leaderboard category, e.g. "time_60".
func (r Record) Category() string {
	return Category(r.Mode, r.Target)
}

// Category joins a mode and a target label.
func Category(mode Mode, target string) string {
	return string(mode) + "_" + target
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Mode        string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// LeaderboardEntry is a personal best within one category.
type LeaderboardEntry struct {
	Rank     int
	Category string
	WPM      int
	Accuracy int
	EndedAt  time.Time
}
