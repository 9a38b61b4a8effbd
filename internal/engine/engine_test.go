package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typetest/internal/model"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEngine(t *testing.T, text string, mode model.Mode, duration time.Duration, opts ...Option) (*Engine, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	e := New(append([]Option{WithClock(clock.Now)}, opts...)...)
	require.NoError(t, e.Init(text, mode, duration))
	return e, clock
}

func typeString(e *Engine, s string) {
	for _, r := range s {
		e.HandleKey(string(r))
	}
}

func TestCatDogScenario(t *testing.T) {
	e, clock := newTestEngine(t, "cat dog", model.ModeTime, 60*time.Second)

	typeString(e, "cat")
	assert.Equal(t, StateRunning, e.State())
	c := e.Counters()
	assert.Equal(t, 3, c.Correct)
	assert.Equal(t, 3, c.Total)

	e.HandleKey(KeySpace)
	assert.Equal(t, WordCorrect, e.Words()[0].Mark)
	c = e.Counters()
	assert.Equal(t, 3, c.Correct)
	assert.Equal(t, 3, c.Total)

	typeString(e, "dx")
	c = e.Counters()
	assert.Equal(t, 4, c.Correct)
	assert.Equal(t, 1, c.Errors)
	assert.Equal(t, 5, c.Total)

	e.HandleKey(KeyBackspace)
	wi, ci := e.Cursor()
	assert.Equal(t, 1, wi)
	assert.Equal(t, 1, ci)
	c = e.Counters()
	assert.Equal(t, 4, c.Total)
	assert.Equal(t, 0, c.Errors)

	clock.Advance(12 * time.Second)
	typeString(e, "og")
	e.HandleKey(KeySpace)
	require.Equal(t, StateFinished, e.State())
	wi, _ = e.Cursor()
	assert.Equal(t, 2, wi)

	res, ok := e.Result()
	require.True(t, ok)
	assert.Equal(t, 100, res.Accuracy)
	assert.Equal(t, 6, res.CorrectChars)
	assert.Equal(t, 6, res.TotalChars)
	assert.Equal(t, 0, res.Errors)
	assert.Equal(t, 12, res.Elapsed)
	assert.Equal(t, 6, res.WPM)
	assert.Equal(t, 6, res.RawWPM)
	assert.Equal(t, 100, res.Consistency)
	assert.Empty(t, res.WPMHistory)
}

func TestExtrasAreSymmetric(t *testing.T) {
	e, _ := newTestEngine(t, "cat dog", model.ModeWords, 0)

	typeString(e, "cat")
	before := e.Counters()

	typeString(e, "xyz")
	c := e.Counters()
	assert.Equal(t, before.Errors+3, c.Errors)
	assert.Equal(t, before.Total+3, c.Total)
	assert.Equal(t, 3, c.Extra)
	assert.Equal(t, []rune("xyz"), e.Words()[0].Extras)

	for i := 0; i < 3; i++ {
		e.HandleKey(KeyBackspace)
	}
	c = e.Counters()
	assert.Equal(t, before, c)
	assert.Empty(t, e.Words()[0].Extras)
	_, ci := e.Cursor()
	assert.Equal(t, 3, ci)

	e.HandleKey(KeyBackspace)
	assert.Equal(t, CharUntyped, e.Words()[0].Classes[2])
	assert.Equal(t, 2, e.Counters().Correct)
}

func TestBackspaceUndoesKeystroke(t *testing.T) {
	e, _ := newTestEngine(t, "ab cd", model.ModeWords, 0)
	typeString(e, "a")

	for _, key := range []string{"b", "q", "b"} {
		beforeW, beforeC := e.Cursor()
		before := e.Counters()
		e.HandleKey(key)
		e.HandleKey(KeyBackspace)
		afterW, afterC := e.Cursor()
		assert.Equal(t, beforeW, afterW)
		assert.Equal(t, beforeC, afterC)
		assert.Equal(t, before, e.Counters(), "key %q", key)
	}
}

func TestBackspaceAtWordStartIsNoop(t *testing.T) {
	e, _ := newTestEngine(t, "ab cd", model.ModeWords, 0)
	e.HandleKey(KeyBackspace)
	assert.Equal(t, StateIdle, e.State())

	typeString(e, "ab ")
	before := e.Counters()
	e.HandleKey(KeyBackspace)
	wi, ci := e.Cursor()
	assert.Equal(t, 1, wi)
	assert.Equal(t, 0, ci)
	assert.Equal(t, before, e.Counters())
}

func TestIdleIgnoresSpaceAndControlKeys(t *testing.T) {
	e, _ := newTestEngine(t, "ab", model.ModeWords, 0)
	for _, key := range []string{KeySpace, "Shift", "F1", "ArrowLeft", "\t", "", "\x1b"} {
		e.HandleKey(key)
	}
	assert.Equal(t, StateIdle, e.State())
	assert.True(t, e.StartedAt().IsZero())
	assert.Equal(t, Counters{}, e.Counters())

	e.HandleKey("a")
	assert.Equal(t, StateRunning, e.State())
	assert.False(t, e.StartedAt().IsZero())

	e.HandleKey("Control")
	_, ci := e.Cursor()
	assert.Equal(t, 1, ci)
}

func TestSpaceAtWordStartIsNoop(t *testing.T) {
	e, _ := newTestEngine(t, "ab cd", model.ModeWords, 0)
	typeString(e, "a")
	e.HandleKey(KeyBackspace)
	e.HandleKey(KeySpace)
	wi, _ := e.Cursor()
	assert.Equal(t, 0, wi)
	assert.Equal(t, WordPending, e.Words()[0].Mark)
}

func TestWordCommitMarks(t *testing.T) {
	cases := []struct {
		typed string
		want  WordMark
	}{
		{"cat", WordCorrect},
		{"cax", WordError},
		{"ca", WordError},
		{"catt", WordError},
		{"xat", WordError},
	}
	for _, tc := range cases {
		e, _ := newTestEngine(t, "cat end", model.ModeWords, 0)
		typeString(e, tc.typed)
		e.HandleKey(KeySpace)
		w := e.Words()[0]
		assert.Equal(t, tc.want, w.Mark, "typed %q", tc.typed)
		assert.Equal(t, w.Mark, w.DerivedMark(), "typed %q", tc.typed)
	}
}

func TestFinishedIgnoresInput(t *testing.T) {
	e, _ := newTestEngine(t, "a", model.ModeWords, 0)
	typeString(e, "a ")
	require.Equal(t, StateFinished, e.State())
	before := e.Counters()
	typeString(e, "bcd")
	e.HandleKey(KeyBackspace)
	e.Tick()
	assert.Equal(t, before, e.Counters())
	assert.Equal(t, StateFinished, e.State())
}

func TestTickRecordsOncePerSecond(t *testing.T) {
	e, clock := newTestEngine(t, "abcdefghij klm", model.ModeWords, 0)
	typeString(e, "abcdefghij")

	clock.Advance(500 * time.Millisecond)
	e.Tick()
	assert.Empty(t, e.WPMHistory())

	clock.Advance(600 * time.Millisecond)
	e.Tick()
	require.Len(t, e.WPMHistory(), 1)
	assert.Equal(t, WPM(10, 1.1), e.WPMHistory()[0])

	clock.Advance(100 * time.Millisecond)
	e.Tick()
	assert.Len(t, e.WPMHistory(), 1)

	// Skipped seconds are not backfilled.
	clock.Advance(2200 * time.Millisecond)
	e.Tick()
	assert.Len(t, e.WPMHistory(), 2)
	assert.Equal(t, WPM(10, 3.4), e.WPMHistory()[1])
}

func TestTickBeforeStartDoesNothing(t *testing.T) {
	e, clock := newTestEngine(t, "abc", model.ModeTime, time.Second)
	clock.Advance(5 * time.Second)
	e.Tick()
	assert.Equal(t, StateIdle, e.State())
	assert.Empty(t, e.WPMHistory())
}

func TestTimeModeExpires(t *testing.T) {
	finished := 0
	var got model.Result
	e, clock := newTestEngine(t, "abc def", model.ModeTime, 2*time.Second, WithHooks(Hooks{
		OnFinish: func(r model.Result) {
			finished++
			got = r
		},
	}))
	typeString(e, "abc")
	clock.Advance(1 * time.Second)
	e.Tick()
	assert.Equal(t, StateRunning, e.State())

	clock.Advance(1 * time.Second)
	e.Tick()
	require.Equal(t, StateFinished, e.State())
	assert.Equal(t, 1, finished)
	assert.Equal(t, 2, got.Elapsed)
	assert.Equal(t, WPM(3, 2), got.WPM)
	assert.Len(t, got.WPMHistory, 2)

	e.Finish()
	e.Tick()
	assert.Equal(t, 1, finished)
}

func TestTimeModeFinishesWhenTextRunsOut(t *testing.T) {
	e, _ := newTestEngine(t, "ab", model.ModeTime, time.Minute)
	typeString(e, "ab ")
	assert.Equal(t, StateFinished, e.State())
}

func TestElapsedFlooredAtOneSecond(t *testing.T) {
	e, clock := newTestEngine(t, "abcde", model.ModeWords, 0)
	typeString(e, "abcde")
	clock.Advance(200 * time.Millisecond)
	e.HandleKey(KeySpace)
	res, ok := e.Result()
	require.True(t, ok)
	assert.Equal(t, 1, res.Elapsed)
	assert.Equal(t, 60, res.WPM)
	assert.Equal(t, 60, res.RawWPM)
}

func TestLiveSnapshot(t *testing.T) {
	e, clock := newTestEngine(t, "ab cd ef gh", model.ModeWords, 0)
	live := e.Live()
	assert.Equal(t, 4, live.Remaining)
	assert.Equal(t, 100, live.Accuracy)
	assert.Zero(t, live.Progress)

	typeString(e, "ab ")
	clock.Advance(30 * time.Second)
	live = e.Live()
	assert.Equal(t, 3, live.Remaining)
	assert.InDelta(t, 0.25, live.Progress, 1e-9)
	assert.Equal(t, 1, live.WPM)

	te, tclock := newTestEngine(t, "ab cd", model.ModeTime, 10*time.Second)
	typeString(te, "a")
	tclock.Advance(2500 * time.Millisecond)
	live = te.Live()
	assert.Equal(t, 8, live.Remaining)
	assert.InDelta(t, 0.25, live.Progress, 1e-9)
}

func TestHooksFireOnChanges(t *testing.T) {
	updates := 0
	finishes := 0
	e, _ := newTestEngine(t, "ab", model.ModeWords, 0, WithHooks(Hooks{
		OnUpdate: func(Live) { updates++ },
		OnFinish: func(model.Result) { finishes++ },
	}))
	e.HandleKey(KeySpace)
	e.HandleKey("Shift")
	e.HandleKey(KeyBackspace)
	assert.Zero(t, updates)

	typeString(e, "ab")
	assert.Equal(t, 2, updates)
	e.HandleKey(KeyBackspace)
	assert.Equal(t, 3, updates)
	typeString(e, "b ")
	assert.Equal(t, 4, updates)
	assert.Equal(t, 1, finishes)
}

func TestFinishFromIdleSkipsHook(t *testing.T) {
	finishes := 0
	e, _ := newTestEngine(t, "ab", model.ModeWords, 0, WithHooks(Hooks{
		OnFinish: func(model.Result) { finishes++ },
	}))
	e.Finish()
	assert.Equal(t, StateFinished, e.State())
	assert.Zero(t, finishes)
	res, ok := e.Result()
	require.True(t, ok)
	assert.Zero(t, res.WPM)
	assert.Zero(t, res.TotalChars)
	assert.Equal(t, 100, res.Accuracy)

	e.Reset()
	typeString(e, "a")
	e.Finish()
	assert.Equal(t, 1, finishes)
}

func TestInitRejectsEmptyText(t *testing.T) {
	e := New()
	assert.ErrorIs(t, e.Init("  \n\t ", model.ModeWords, 0), ErrEmptyText)
	assert.Panics(t, func() { e.HandleKey("a") })
	assert.Panics(t, func() { New().Tick() })
}

func TestInitAndResetInvalidateSchedule(t *testing.T) {
	e, _ := newTestEngine(t, "ab cd", model.ModeWords, 0)
	gen := e.Generation()
	typeString(e, "ab c")

	e.Reset()
	assert.NotEqual(t, gen, e.Generation())
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, Counters{}, e.Counters())
	assert.Equal(t, 2, e.WordCount())
	for _, w := range e.Words() {
		assert.Equal(t, WordPending, w.Mark)
		for _, c := range w.Classes {
			assert.Equal(t, CharUntyped, c)
		}
	}

	gen = e.Generation()
	require.NoError(t, e.Init("xy", model.ModeWords, 0))
	assert.NotEqual(t, gen, e.Generation())
	assert.Equal(t, 1, e.WordCount())
}

func TestUnicodeWords(t *testing.T) {
	e, _ := newTestEngine(t, "café naïve", model.ModeWords, 0)
	typeString(e, "café ")
	assert.Equal(t, WordCorrect, e.Words()[0].Mark)
	assert.Equal(t, 4, e.Counters().Correct)
}
