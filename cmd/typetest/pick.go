package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/verte-zerg/typetest/internal/model"
)

var (
	timeChoices  = []int{15, 30, 60, 120}
	wordsChoices = []int{10, 25, 50, 100}
)

// pickForm builds the interactive settings form. It edits flags in place.
func pickForm(flags *practiceFlags) *huh.Form {
	modeOptions := make([]huh.Option[string], 0, len(model.Modes))
	for _, m := range model.Modes {
		modeOptions = append(modeOptions, huh.NewOption(string(m), string(m)))
	}
	hideUnless := func(m model.Mode) func() bool {
		return func() bool { return model.Mode(flags.mode) != m }
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Mode").
				Options(modeOptions...).
				Value(&flags.mode),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Seconds").
				Options(intOptions(timeChoices, "%ds")...).
				Value(&flags.time),
		).WithHideFunc(hideUnless(model.ModeTime)),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Words").
				Options(intOptions(wordsChoices, "%d words")...).
				Value(&flags.words),
		).WithHideFunc(hideUnless(model.ModeWords)),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Quote length").
				Options(huh.NewOptions(string(model.QuoteShort), string(model.QuoteMedium), string(model.QuoteLong))...).
				Value(&flags.quote),
		).WithHideFunc(hideUnless(model.ModeQuote)),
		huh.NewGroup(
			huh.NewText().
				Title("Custom text").
				Value(&flags.text).
				Validate(func(s string) error {
					if model.Mode(flags.mode) == model.ModeCustom && s == "" && flags.textFile == "" {
						return errors.New("enter some text to type")
					}
					return nil
				}),
		).WithHideFunc(hideUnless(model.ModeCustom)),
		huh.NewGroup(
			huh.NewConfirm().Title("Punctuation").Value(&flags.punct),
			huh.NewConfirm().Title("Numbers").Value(&flags.numbers),
		).WithHideFunc(func() bool {
			m := model.Mode(flags.mode)
			return m == model.ModeQuote || m == model.ModeCustom
		}),
	).WithShowHelp(false)
}

func intOptions(values []int, format string) []huh.Option[int] {
	out := make([]huh.Option[int], len(values))
	for i, v := range values {
		out[i] = huh.NewOption(fmt.Sprintf(format, v), v)
	}
	return out
}

func runPicker(flags *practiceFlags) error {
	if err := pickForm(flags).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return fmt.Errorf("setup cancelled")
		}
		return fmt.Errorf("failed to run setup form: %w", err)
	}
	applyPick(flags)
	return nil
}

// applyPick drops custom text carried in from flags or the config file when
// another mode was picked, so the choice is not turned back into custom.
func applyPick(flags *practiceFlags) {
	if model.Mode(flags.mode) == model.ModeCustom {
		return
	}
	flags.text = ""
	flags.textFile = ""
}
