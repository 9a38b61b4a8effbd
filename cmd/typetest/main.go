// Package main provides the CLI entrypoint for typetest.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/verte-zerg/typetest/internal/config"
	"github.com/verte-zerg/typetest/internal/generator"
	"github.com/verte-zerg/typetest/internal/logging"
	"github.com/verte-zerg/typetest/internal/model"
	"github.com/verte-zerg/typetest/internal/stats"
	"github.com/verte-zerg/typetest/internal/store"
	"github.com/verte-zerg/typetest/internal/tui"
	"github.com/verte-zerg/typetest/internal/wordlist"
)

const (
	defaultMode     = "time"
	defaultTime     = 30
	defaultWords    = 25
	defaultQuote    = "medium"
	defaultFilter   = "any"
	defaultLogLevel = "info"
)

var errNotTerminal = errors.New("typetest needs an interactive terminal")

type practiceFlags struct {
	mode     string
	time     int
	words    int
	quote    string
	punct    bool
	numbers  bool
	text     string
	textFile string
	wordList string
	filter   string
	noSave   bool
	pick     bool
	logLevel string
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &practiceFlags{}
	rootCmd := &cobra.Command{
		Use:           "typetest",
		Short:         "Terminal typing speed test",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPractice(cmd, flags)
		},
	}
	bindPracticeFlags(rootCmd.Flags(), flags)

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func bindPracticeFlags(fs *pflag.FlagSet, flags *practiceFlags) {
	fs.StringVar(&flags.mode, "mode", defaultMode, "test mode: time, words, quote or custom")
	fs.IntVar(&flags.time, "time", defaultTime, "seconds per test in time mode")
	fs.IntVar(&flags.words, "words", defaultWords, "words per test in words mode")
	fs.StringVar(&flags.quote, "quote", defaultQuote, "quote length: short, medium or long")
	fs.BoolVar(&flags.punct, "punct", false, "add punctuation")
	fs.BoolVar(&flags.numbers, "numbers", false, "mix numbers into the text")
	fs.StringVar(&flags.text, "text", "", "custom text to type (implies --mode custom)")
	fs.StringVar(&flags.textFile, "text-file", "", "file with custom text (implies --mode custom)")
	fs.StringVar(&flags.wordList, "wordlist", "", "vocabulary file, one or more words per line")
	fs.StringVar(&flags.filter, "filter", defaultFilter, "word list filter: ascii or any")
	fs.BoolVar(&flags.noSave, "no-save", false, "do not store results")
	fs.BoolVar(&flags.pick, "pick", false, "choose the test settings interactively")
	fs.StringVar(&flags.logLevel, "log-level", defaultLogLevel, "log level: debug, info, warn or error")
}

func runPractice(cmd *cobra.Command, flags *practiceFlags) error {
	if !isInteractive() {
		return errNotTerminal
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFileConfig(cmd.Flags(), flags, fileCfg)

	if flags.pick {
		if err := runPicker(flags); err != nil {
			return err
		}
	}

	cfg, err := buildConfig(flags)
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	genOpts := []generator.Option{}
	if cfg.WordListPath != "" {
		words, err := wordlist.LoadWords(cfg.WordListPath, wordlist.FilterForName(flags.filter))
		if err != nil {
			return fmt.Errorf("failed to load word list %s: %w", cfg.WordListPath, err)
		}
		genOpts = append(genOpts, generator.WithVocabulary(words))
	}

	level, err := logging.ParseLevel(flags.logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger, logFile, err := logging.OpenFile(config.DefaultLogPath(), level)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logFile.Close(); cerr != nil {
			// Best-effort close of the log file.
			_ = cerr
		}
	}()

	opts := tui.Options{
		Config:    cfg,
		Generator: generator.New(genOpts...),
		Logger:    logger,
	}
	if cfg.Save {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logger.Error("failed to close db", "err", cerr)
			}
		}()
		opts.Saver = st
		opts.TotalXP = loadTotalXP(cmd.Context(), st, logger)
	}

	logger.Info("practice started", "mode", cfg.Mode, "target", cfg.Label(),
		"punct", cfg.Options.Punctuation, "numbers", cfg.Options.Numbers)
	m, err := tui.NewModel(opts)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func loadTotalXP(ctx context.Context, st *store.Store, logger *slog.Logger) int {
	records, err := st.ListResults(ctx, model.StatsConfig{})
	if err != nil {
		logger.Warn("failed to load previous results", "err", err)
		return 0
	}
	return stats.Summarize(records).XP
}

// buildConfig turns merged flag values into a practice config. Custom text
// switches the mode to custom.
func buildConfig(flags *practiceFlags) (model.Config, error) {
	text := flags.text
	if flags.textFile != "" {
		loaded, err := wordlist.LoadText(flags.textFile)
		if err != nil {
			return model.Config{}, fmt.Errorf("failed to load --text-file: %w", err)
		}
		text = loaded
	}
	mode := model.Mode(strings.ToLower(strings.TrimSpace(flags.mode)))
	if strings.TrimSpace(text) != "" {
		mode = model.ModeCustom
	}
	return model.Config{
		Mode: mode,
		Target: model.Target{
			Duration:  flags.time,
			Count:     flags.words,
			QuoteSize: model.QuoteSize(strings.ToLower(strings.TrimSpace(flags.quote))),
		},
		Options: model.Options{
			Punctuation: flags.punct,
			Numbers:     flags.numbers,
			CustomText:  text,
		},
		WordListPath: flags.wordList,
		Save:         !flags.noSave,
	}, nil
}

func validateConfig(cfg model.Config) error {
	if !slices.Contains(model.Modes, cfg.Mode) {
		return fmt.Errorf("--mode must be one of time, words, quote, custom")
	}
	if cfg.Mode == model.ModeTime && cfg.Target.Duration <= 0 {
		return fmt.Errorf("--time must be > 0")
	}
	if cfg.Mode == model.ModeWords && cfg.Target.Count <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	switch cfg.Target.QuoteSize {
	case model.QuoteShort, model.QuoteMedium, model.QuoteLong:
	default:
		return fmt.Errorf("--quote must be one of short, medium, long")
	}
	return nil
}

func isInteractive() bool {
	return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}
