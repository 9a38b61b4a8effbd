package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typetest/internal/engine"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledWords projects engine word views into styled cells separated
// by single spaces. The caret underlines the next expected cell.
func buildStyledWords(words []engine.WordView) []styledRune {
	out := make([]styledRune, 0, len(words)*6)
	for wi, w := range words {
		if wi > 0 {
			out = append(out, spaceRune(words[wi-1]))
		}
		for i, r := range w.Runes {
			style := runeStyle(w, w.Classes[i])
			if w.Current && w.Cursor == i {
				style = style.Underline(true)
			}
			out = append(out, newStyledRune(r, style))
		}
		for _, r := range w.Extras {
			out = append(out, newStyledRune(r, extraStyle))
		}
	}
	if n := len(words); n > 0 && words[n-1].Current && words[n-1].Cursor >= len(words[n-1].Runes) {
		out = append(out, spaceRune(words[n-1]))
	}
	return out
}

func runeStyle(w engine.WordView, class engine.CharClass) lipgloss.Style {
	switch class {
	case engine.CharCorrect:
		return correctStyle
	case engine.CharIncorrect:
		return incorrectStyle
	}
	switch {
	case w.Current:
		return currentWordStyle
	case w.Mark == engine.WordError:
		return skippedStyle
	default:
		return pendingStyle
	}
}

// spaceRune renders the gap after w, carrying the caret when the cursor
// sits past the end of w.
func spaceRune(w engine.WordView) styledRune {
	style := pendingStyle
	if w.Current && w.Cursor >= len(w.Runes) {
		style = style.Underline(true)
	}
	r := newStyledRune(' ', style)
	r.isSpace = true
	return r
}

func newStyledRune(r rune, style lipgloss.Style) styledRune {
	return styledRune{
		s:     style.Render(string(r)),
		width: runewidth.RuneWidth(r),
	}
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
