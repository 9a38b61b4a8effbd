// Package engine implements the typing session state machine.
package engine

import (
	"errors"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/typetest/internal/model"
)

// Key names understood by HandleKey besides single printable characters.
const (
	KeyBackspace = "Backspace"
	KeySpace     = " "
)

// TickInterval is how often a host should call Tick while running.
const TickInterval = 100 * time.Millisecond

const defaultDuration = 60 * time.Second

// ErrEmptyText is returned by Init when the text holds no words.
var ErrEmptyText = errors.New("engine: text has no words")

// State is the lifecycle stage of a session.
type State int

// Session states.
const (
	StateIdle State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Live is the snapshot published after every keystroke and tick.
type Live struct {
	WPM      int
	Accuracy int
	// Remaining is whole seconds left in time mode, words left otherwise.
	Remaining int
	Progress  float64
	Elapsed   time.Duration
}

// Hooks receive engine updates. Nil funcs are skipped.
type Hooks struct {
	OnUpdate func(Live)
	OnFinish func(model.Result)
}

// Counters exposes the running character counters.
type Counters struct {
	Correct   int
	Incorrect int
	Extra     int
	Total     int
	Errors    int
}

type word struct {
	runes   []rune
	classes []CharClass
	extras  []rune
	mark    WordMark
}

// Engine drives one typing attempt. It is not safe for concurrent use; a
// host feeds keys and ticks from a single goroutine.
type Engine struct {
	now   func() time.Time
	hooks Hooks

	words    []*word
	mode     model.Mode
	duration time.Duration

	wordIndex int
	charIndex int

	correctChars int
	totalChars   int
	errors       int

	wpmHistory []int
	lastSecond int

	state      State
	startTime  time.Time
	endTime    time.Time
	generation uint64
	result     *model.Result
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithHooks registers update and finish callbacks.
func WithHooks(h Hooks) Option {
	return func(e *Engine) {
		e.hooks = h
	}
}

// New constructs an engine. Init must be called before any key is handled.
func New(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Init loads text for a new session and resets all state. Any tick
// scheduled for the previous session is invalidated.
func (e *Engine) Init(text string, mode model.Mode, duration time.Duration) error {
	e.generation++
	fields := strings.Fields(text)
	if len(fields) == 0 {
		e.words = nil
		return ErrEmptyText
	}
	if mode == model.ModeTime && duration <= 0 {
		duration = defaultDuration
	}
	e.mode = mode
	e.duration = duration
	e.words = make([]*word, len(fields))
	for i, f := range fields {
		runes := []rune(f)
		e.words[i] = &word{runes: runes, classes: make([]CharClass, len(runes))}
	}
	e.resetProgress()
	return nil
}

// Reset restarts the session on the current word list.
func (e *Engine) Reset() {
	e.mustInit("Reset")
	e.generation++
	for _, w := range e.words {
		w.classes = make([]CharClass, len(w.runes))
		w.extras = nil
		w.mark = WordPending
	}
	e.resetProgress()
}

func (e *Engine) resetProgress() {
	e.wordIndex = 0
	e.charIndex = 0
	e.correctChars = 0
	e.totalChars = 0
	e.errors = 0
	e.wpmHistory = nil
	e.lastSecond = 0
	e.state = StateIdle
	e.startTime = time.Time{}
	e.endTime = time.Time{}
	e.result = nil
}

// HandleKey dispatches one key event. Unsupported keys are ignored.
func (e *Engine) HandleKey(key string) {
	e.mustInit("HandleKey")
	if e.state == StateFinished {
		return
	}
	if key == KeyBackspace {
		if e.backspace() {
			e.notify()
		}
		return
	}
	if key == KeySpace {
		if e.state == StateRunning && e.commitWord() && e.state == StateRunning {
			e.notify()
		}
		return
	}
	r, ok := printableRune(key)
	if !ok {
		return
	}
	if e.state == StateIdle {
		e.start()
	}
	e.typeRune(r)
	e.notify()
}

func printableRune(key string) (rune, bool) {
	if utf8.RuneCountInString(key) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError || !unicode.IsPrint(r) || unicode.IsSpace(r) {
		return 0, false
	}
	return r, true
}

func (e *Engine) start() {
	e.state = StateRunning
	e.startTime = e.now()
}

func (e *Engine) typeRune(r rune) {
	w := e.words[e.wordIndex]
	e.totalChars++
	if e.charIndex < len(w.runes) {
		if r == w.runes[e.charIndex] {
			w.classes[e.charIndex] = CharCorrect
			e.correctChars++
		} else {
			w.classes[e.charIndex] = CharIncorrect
			e.errors++
		}
	} else {
		w.extras = append(w.extras, r)
		e.errors++
	}
	e.charIndex++
}

func (e *Engine) backspace() bool {
	if e.charIndex == 0 {
		return false
	}
	w := e.words[e.wordIndex]
	e.charIndex--
	e.totalChars = max(0, e.totalChars-1)
	if e.charIndex >= len(w.runes) && len(w.extras) > 0 {
		w.extras = w.extras[:len(w.extras)-1]
		e.errors = max(0, e.errors-1)
		return true
	}
	if e.charIndex < len(w.runes) {
		switch w.classes[e.charIndex] {
		case CharCorrect:
			e.correctChars = max(0, e.correctChars-1)
		case CharIncorrect:
			e.errors = max(0, e.errors-1)
		}
		w.classes[e.charIndex] = CharUntyped
	}
	return true
}

// commitWord marks the current word and advances. It reports whether
// anything changed; a space at the start of a word is ignored.
func (e *Engine) commitWord() bool {
	if e.charIndex == 0 {
		return false
	}
	w := e.words[e.wordIndex]
	if e.charIndex == len(w.runes) && len(w.extras) == 0 && allCorrect(w.classes) {
		w.mark = WordCorrect
	} else {
		w.mark = WordError
	}
	e.wordIndex++
	e.charIndex = 0
	if e.wordIndex >= len(e.words) {
		e.Finish()
	}
	return true
}

func allCorrect(classes []CharClass) bool {
	for _, c := range classes {
		if c != CharCorrect {
			return false
		}
	}
	return true
}

// Tick samples the timer. It records one WPM entry per newly crossed whole
// second and ends time-mode sessions once the duration has elapsed.
func (e *Engine) Tick() {
	e.mustInit("Tick")
	if e.state != StateRunning {
		return
	}
	elapsed := e.elapsed().Seconds()
	if sec := int(math.Floor(elapsed)); sec > e.lastSecond {
		e.wpmHistory = append(e.wpmHistory, WPM(e.correctChars, elapsed))
		e.lastSecond = sec
	}
	if e.mode == model.ModeTime && elapsed >= e.duration.Seconds() {
		e.Finish()
		return
	}
	e.notify()
}

// Finish ends the session and computes the final result. Calling it again
// is a no-op. OnFinish fires only when a running session ends; finishing an
// idle session leaves an empty result for Result without the callback.
func (e *Engine) Finish() {
	e.mustInit("Finish")
	if e.state == StateFinished {
		return
	}
	wasRunning := e.state == StateRunning
	e.endTime = e.now()
	e.state = StateFinished
	e.generation++
	res := e.computeResult()
	e.result = &res
	if wasRunning && e.hooks.OnFinish != nil {
		e.hooks.OnFinish(res)
	}
}

func (e *Engine) computeResult() model.Result {
	elapsed := math.Max(1, e.elapsed().Seconds())
	wpm := WPM(e.correctChars, elapsed)
	return model.Result{
		WPM:          wpm,
		RawWPM:       WPM(e.totalChars, elapsed),
		Accuracy:     Accuracy(e.correctChars, e.totalChars),
		CorrectChars: e.correctChars,
		TotalChars:   e.totalChars,
		Errors:       e.errors,
		Elapsed:      int(math.Round(elapsed)),
		Consistency:  Consistency(e.wpmHistory, wpm),
		WPMHistory:   append([]int(nil), e.wpmHistory...),
	}
}

func (e *Engine) elapsed() time.Duration {
	if e.startTime.IsZero() {
		return 0
	}
	end := e.endTime
	if end.IsZero() {
		end = e.now()
	}
	if d := end.Sub(e.startTime); d > 0 {
		return d
	}
	return 0
}

func (e *Engine) notify() {
	if e.hooks.OnUpdate != nil {
		e.hooks.OnUpdate(e.Live())
	}
}

func (e *Engine) mustInit(op string) {
	if e.words == nil {
		panic("engine: " + op + " called before Init")
	}
}

// Live returns the current live metrics.
func (e *Engine) Live() Live {
	elapsed := e.elapsed()
	secs := elapsed.Seconds()
	l := Live{
		WPM:      WPM(e.correctChars, secs),
		Accuracy: Accuracy(e.correctChars, e.totalChars),
		Elapsed:  elapsed,
	}
	if len(e.words) == 0 {
		return l
	}
	if e.mode == model.ModeTime {
		total := e.duration.Seconds()
		l.Remaining = int(math.Ceil(math.Max(0, total-secs)))
		l.Progress = math.Min(1, secs/total)
		return l
	}
	l.Remaining = len(e.words) - e.wordIndex
	l.Progress = float64(e.wordIndex) / float64(len(e.words))
	return l
}

// Result returns the final statistics once the session has finished.
func (e *Engine) Result() (model.Result, bool) {
	if e.result == nil {
		return model.Result{}, false
	}
	res := *e.result
	res.WPMHistory = append([]int(nil), e.result.WPMHistory...)
	return res, true
}

// State returns the lifecycle stage.
func (e *Engine) State() State {
	return e.state
}

// Mode returns the session mode.
func (e *Engine) Mode() model.Mode {
	return e.mode
}

// Duration returns the time-mode duration.
func (e *Engine) Duration() time.Duration {
	return e.duration
}

// Generation identifies the current timer schedule. It changes on Init,
// Reset and Finish, so a tick scheduled under an older value is stale.
func (e *Engine) Generation() uint64 {
	return e.generation
}

// StartedAt returns when the first key was typed, or the zero time.
func (e *Engine) StartedAt() time.Time {
	return e.startTime
}

// Cursor returns the current word and character position.
func (e *Engine) Cursor() (wordIndex, charIndex int) {
	return e.wordIndex, e.charIndex
}

// WordCount returns the number of words in the session text.
func (e *Engine) WordCount() int {
	return len(e.words)
}

// WPMHistory returns a copy of the per-second WPM samples.
func (e *Engine) WPMHistory() []int {
	return append([]int(nil), e.wpmHistory...)
}

// Counters returns the running counters plus the classified breakdown.
func (e *Engine) Counters() Counters {
	c := Counters{Correct: e.correctChars, Total: e.totalChars, Errors: e.errors}
	for _, w := range e.words {
		for _, cl := range w.classes {
			if cl == CharIncorrect {
				c.Incorrect++
			}
		}
		c.Extra += len(w.extras)
	}
	return c
}
