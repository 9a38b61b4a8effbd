//go:build property
// +build property

package engine

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/verte-zerg/typetest/internal/model"
)

const propertyText = "cab abc ca bca"

func keyGen() gopter.Gen {
	return gen.OneConstOf("a", "b", "c", "x", KeySpace, KeyBackspace, KeyBackspace, "Shift")
}

func replay(keys []string) (*Engine, bool) {
	clock := newFakeClock()
	e := New(WithClock(clock.Now))
	if err := e.Init(propertyText, model.ModeWords, 0); err != nil {
		return nil, false
	}
	for _, k := range keys {
		clock.Advance(150 * time.Millisecond)
		e.HandleKey(k)
		e.Tick()
	}
	return e, true
}

func countersValid(c Counters) bool {
	if c.Correct < 0 || c.Incorrect < 0 || c.Total < 0 || c.Errors < 0 {
		return false
	}
	return c.Correct+c.Incorrect <= c.Total && c.Errors == c.Incorrect+c.Extra
}

// TestSessionProperties checks engine invariants over random key streams.
func TestSessionProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("counters stay consistent after every key", prop.ForAll(
		func(keys []string) bool {
			clock := newFakeClock()
			e := New(WithClock(clock.Now))
			if err := e.Init(propertyText, model.ModeWords, 0); err != nil {
				return false
			}
			for _, k := range keys {
				clock.Advance(90 * time.Millisecond)
				e.HandleKey(k)
				e.Tick()
				if !countersValid(e.Counters()) {
					return false
				}
				live := e.Live()
				if live.Accuracy < 0 || live.Accuracy > 100 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(keyGen()),
	))

	properties.Property("backspace undoes the previous character", prop.ForAll(
		func(keys []string, ch string) bool {
			e, ok := replay(keys)
			if !ok {
				return false
			}
			if e.State() == StateFinished {
				return true
			}
			wi, ci := e.Cursor()
			before := e.Counters()
			e.HandleKey(ch)
			e.HandleKey(KeyBackspace)
			wi2, ci2 := e.Cursor()
			return wi == wi2 && ci == ci2 && before == e.Counters()
		},
		gen.SliceOf(keyGen()),
		gen.OneConstOf("a", "b", "c", "x"),
	))

	properties.Property("commit marks match stored classifications", prop.ForAll(
		func(keys []string) bool {
			e, ok := replay(keys)
			if !ok {
				return false
			}
			for _, w := range e.Words() {
				if w.Mark == WordPending {
					continue
				}
				if w.Mark != w.DerivedMark() {
					return false
				}
			}
			return true
		},
		gen.SliceOf(keyGen()),
	))

	properties.Property("final result is bounded", prop.ForAll(
		func(keys []string) bool {
			e, ok := replay(keys)
			if !ok {
				return false
			}
			e.Finish()
			res, ok := e.Result()
			if !ok {
				return false
			}
			return res.Accuracy >= 0 && res.Accuracy <= 100 &&
				res.Consistency >= 0 && res.Consistency <= 100 &&
				res.WPM >= 0 && res.RawWPM >= res.WPM && res.Elapsed >= 1
		},
		gen.SliceOf(keyGen()),
	))

	properties.Property("consistency is bounded", prop.ForAll(
		func(history []int, wpm int) bool {
			c := Consistency(history, wpm)
			return c >= 0 && c <= 100
		},
		gen.SliceOf(gen.IntRange(0, 250)),
		gen.IntRange(0, 250),
	))

	properties.Property("constant history is fully consistent", prop.ForAll(
		func(v, n int) bool {
			history := make([]int, n)
			for i := range history {
				history[i] = v
			}
			return Consistency(history, v) == 100
		},
		gen.IntRange(0, 250),
		gen.IntRange(1, 120),
	))

	properties.TestingRun(t)
}
