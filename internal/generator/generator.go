// Package generator builds typing text sequences.
package generator

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/typetest/internal/model"
)

const (
	defaultWordCount = 50
	defaultDuration  = 60
	minTimeWords     = 200
	wordsPerSecond   = 4

	numberPct     = 0.15
	maxNumber     = 1000
	commaPct      = 0.1
	minSentence   = 5
	sentenceRange = 6

	// CustomPlaceholder is returned in custom mode when no text was supplied.
	CustomPlaceholder = "type your custom text here and press restart to begin"
)

var quoteThresholds = map[model.QuoteSize]int{
	model.QuoteShort:  80,
	model.QuoteMedium: 150,
	model.QuoteLong:   300,
}

// Generator produces randomized typing text.
type Generator struct {
	rnd   *rand.Rand
	vocab []string
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source.
func WithRand(rnd *rand.Rand) Option {
	return func(g *Generator) {
		if rnd != nil {
			g.rnd = rnd
		}
	}
}

// WithVocabulary replaces the built-in vocabulary. An empty list is ignored.
func WithVocabulary(words []string) Option {
	return func(g *Generator) {
		if len(words) > 0 {
			g.vocab = append([]string(nil), words...)
		}
	}
}

// New returns a Generator seeded with the current time.
func New(opts ...Option) *Generator {
	g := &Generator{
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		vocab: defaultVocabulary,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Vocabulary returns a copy of the active vocabulary.
func (g *Generator) Vocabulary() []string {
	return append([]string(nil), g.vocab...)
}

// Quotes returns a copy of the quote corpus.
func Quotes() []Quote {
	return append([]Quote(nil), quotes...)
}

// Generate returns space-separated text for the given mode.
func (g *Generator) Generate(mode model.Mode, target model.Target, opts model.Options) string {
	switch mode {
	case model.ModeCustom:
		text := strings.TrimSpace(opts.CustomText)
		if text == "" {
			return CustomPlaceholder
		}
		return text
	case model.ModeQuote:
		return g.quoteText(model.ParseQuoteSize(string(target.QuoteSize)))
	}

	count := target.Count
	if count <= 0 {
		count = defaultWordCount
	}
	if mode == model.ModeTime {
		duration := target.Duration
		if duration <= 0 {
			duration = defaultDuration
		}
		count = max(minTimeWords, duration*wordsPerSecond)
	}

	words := g.drawWords(count)
	if opts.Numbers {
		words = applyNumbers(g.rnd, words)
	}
	if opts.Punctuation {
		words = applyPunct(g.rnd, words)
	}
	return strings.Join(words, " ")
}

// drawWords concatenates shuffled copies of the vocabulary until count
// words are available.
func (g *Generator) drawWords(count int) []string {
	result := make([]string, 0, count+len(g.vocab))
	for len(result) < count {
		result = append(result, shuffled(g.rnd, g.vocab)...)
	}
	return result[:count]
}

func (g *Generator) quoteText(size model.QuoteSize) string {
	threshold := quoteThresholds[size]
	parts := make([]string, 0, len(quotes))
	wordCount := 0
	for _, q := range shuffled(g.rnd, quotes) {
		parts = append(parts, q.Text)
		wordCount += len(strings.Fields(q.Text))
		if wordCount >= threshold {
			break
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func shuffled[T any](rnd *rand.Rand, items []T) []T {
	out := append([]T(nil), items...)
	rnd.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func applyNumbers(rnd *rand.Rand, words []string) []string {
	out := make([]string, len(words))
	for i, word := range words {
		if rnd.Float64() < numberPct {
			word = strconv.Itoa(rnd.Intn(maxNumber))
		}
		out[i] = word
	}
	return out
}

func applyPunct(rnd *rand.Rand, words []string) []string {
	out := make([]string, len(words))
	sentenceLen := 0
	target := rnd.Intn(sentenceRange) + minSentence
	for i, word := range words {
		sentenceLen++
		switch {
		case sentenceLen >= target && i < len(words)-1:
			word += sentenceMark(rnd.Float64())
			sentenceLen = 0
		case rnd.Float64() < commaPct && sentenceLen > 2:
			word += ","
			sentenceLen = 0
		}
		out[i] = word
	}
	return out
}

// sentenceMark picks a mark for r in [0,1) with weights
// '.' 50%, ',' 20%, '!' 10%, ';' 10%, ':' 10%.
func sentenceMark(r float64) string {
	switch {
	case r < 0.5:
		return "."
	case r < 0.7:
		return ","
	case r < 0.8:
		return "!"
	case r < 0.9:
		return ";"
	default:
		return ":"
	}
}
