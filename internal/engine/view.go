package engine

// CharClass is the classification of one expected character.
type CharClass uint8

// Character classifications.
const (
	CharUntyped CharClass = iota
	CharCorrect
	CharIncorrect
)

// WordMark is the display mark set when a word is committed.
type WordMark uint8

// Word marks.
const (
	WordPending WordMark = iota
	WordCorrect
	WordError
)

// WordView is a read-only copy of one word's state for rendering.
type WordView struct {
	Runes   []rune
	Classes []CharClass
	Extras  []rune
	Mark    WordMark
	Current bool
	// Cursor is the caret offset within the word, or -1 when not current.
	Cursor int
}

// DerivedMark recomputes the commit mark from the stored classifications.
// For a committed word it matches the mark the engine assigned.
func (w WordView) DerivedMark() WordMark {
	if len(w.Extras) == 0 && allCorrect(w.Classes) {
		return WordCorrect
	}
	return WordError
}

// Words projects the session state into renderable word views.
func (e *Engine) Words() []WordView {
	out := make([]WordView, len(e.words))
	for i, w := range e.words {
		v := WordView{
			Runes:   append([]rune(nil), w.runes...),
			Classes: append([]CharClass(nil), w.classes...),
			Extras:  append([]rune(nil), w.extras...),
			Mark:    w.mark,
			Cursor:  -1,
		}
		if i == e.wordIndex && e.state != StateFinished {
			v.Current = true
			v.Cursor = e.charIndex
		}
		out[i] = v
	}
	return out
}
