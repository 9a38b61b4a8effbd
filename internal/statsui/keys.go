package statsui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit       key.Binding
	PrevTab    key.Binding
	NextTab    key.Binding
	PrevCat    key.Binding
	NextCat    key.Binding
	WindowUp   key.Binding
	WindowDown key.Binding
	Settings   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Scroll     key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "Quit")),
	PrevTab:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("left/right", "Nav")),
	NextTab:    key.NewBinding(key.WithKeys("right", "l")),
	PrevCat:    key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "Category")),
	NextCat:    key.NewBinding(key.WithKeys("]")),
	WindowUp:   key.NewBinding(key.WithKeys("="), key.WithHelp("-/=", "Window")),
	WindowDown: key.NewBinding(key.WithKeys("-")),
	Settings:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "Settings")),
	Top:        key.NewBinding(key.WithKeys("g", "home")),
	Bottom:     key.NewBinding(key.WithKeys("G", "end")),
	Scroll:     key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("up/down/pgup/pgdn", "Scroll")),
}

// helpLine renders "Desc: keys" pairs for bindings that carry help text.
func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Desc+": "+h.Key)
	}
	return strings.Join(parts, "  ")
}
