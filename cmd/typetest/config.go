package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/verte-zerg/typetest/internal/config"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// ensureConfigFile writes the commented template unless a config exists.
func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

// applyFileConfig copies file values into flags the user did not set.
func applyFileConfig(fs *pflag.FlagSet, flags *practiceFlags, fileCfg config.FileConfig) {
	p := fileCfg.Practice
	applyConfig(fs, "mode", &flags.mode, p.Mode)
	applyConfig(fs, "time", &flags.time, p.Time)
	applyConfig(fs, "words", &flags.words, p.Words)
	applyConfig(fs, "quote", &flags.quote, p.Quote)
	applyConfig(fs, "punct", &flags.punct, p.Punctuation)
	applyConfig(fs, "numbers", &flags.numbers, p.Numbers)
	applyConfig(fs, "text", &flags.text, p.Text)
	applyConfig(fs, "text-file", &flags.textFile, p.TextFile)
	applyConfig(fs, "wordlist", &flags.wordList, p.WordList)
	applyConfig(fs, "filter", &flags.filter, p.Filter)
	applyConfig(fs, "log-level", &flags.logLevel, fileCfg.Log.Level)
	if p.Save != nil && !fs.Changed("no-save") {
		flags.noSave = !*p.Save
	}
}

func applyConfig[T any](fs *pflag.FlagSet, name string, target, value *T) {
	if value == nil {
		return
	}
	if fs.Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typetest configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# mode = %q           # time, words, quote or custom
# time = %d             # Seconds per test in time mode
# words = %d            # Words per test in words mode
# quote = %q        # short, medium or long
# punct = false         # Add punctuation
# numbers = false       # Mix numbers into the text
# text = ""             # Custom text (implies custom mode)
# text-file = ""        # File with custom text
# wordlist = ""         # Vocabulary file
# filter = %q          # Word list filter: ascii or any
# save = true           # Store results

[log]
# level = %q         # debug, info, warn or error
`,
		defaultMode,
		defaultTime,
		defaultWords,
		defaultQuote,
		defaultFilter,
		defaultLogLevel,
	)
}
