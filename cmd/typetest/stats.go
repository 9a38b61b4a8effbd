package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typetest/internal/config"
	"github.com/verte-zerg/typetest/internal/logging"
	"github.com/verte-zerg/typetest/internal/model"
	"github.com/verte-zerg/typetest/internal/stats"
	"github.com/verte-zerg/typetest/internal/statsui"
	"github.com/verte-zerg/typetest/internal/store"
)

const (
	defaultCurveWindow = 10
	defaultPlotWidth   = 80
)

type statsFlags struct {
	mode        string
	since       string
	last        int
	curveWindow int
	plain       bool
	format      string
	logLevel    string
}

func newStatsCmd() *cobra.Command {
	flags := &statsFlags{}
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats, level and leaderboards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatsCmd(cmd, flags)
		},
	}
	cmd.Flags().StringVar(&flags.mode, "mode", "", "mode filter")
	cmd.Flags().StringVar(&flags.since, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&flags.last, "last", 0, "limit to last N results")
	cmd.Flags().IntVar(&flags.curveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&flags.plain, "plain", false, "print a text report instead of the browser")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", defaultLogLevel, "log level: debug, info, warn or error")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	flags := &statsFlags{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print stored results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryCmd(cmd, flags)
		},
	}
	cmd.Flags().StringVar(&flags.mode, "mode", "", "mode filter")
	cmd.Flags().StringVar(&flags.since, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&flags.last, "last", 0, "limit to last N results")
	cmd.Flags().StringVar(&flags.format, "format", stats.FormatTable, "output format: table, json or yaml")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", defaultLogLevel, "log level: debug, info, warn or error")
	return cmd
}

func (f *statsFlags) statsConfig() (model.StatsConfig, error) {
	var sinceTime *time.Time
	if f.since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", f.since, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if f.last < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	window := f.curveWindow
	if window < 1 {
		window = 1
	}
	return model.StatsConfig{
		Mode:        f.mode,
		Since:       sinceTime,
		Last:        f.last,
		CurveWindow: window,
	}, nil
}

// logger returns a stderr logger for the subcommand.
func (f *statsFlags) logger(cmd *cobra.Command) (*slog.Logger, error) {
	level, err := logging.ParseLevel(f.logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return logging.New(cmd.ErrOrStderr(), level), nil
}

func openStore(logger *slog.Logger) (*store.Store, func(), error) {
	path := config.DefaultDBPath()
	st, err := store.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	logger.Debug("store opened", "path", path)
	return st, func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error("failed to close db", "err", cerr)
		}
	}, nil
}

func runStatsCmd(cmd *cobra.Command, flags *statsFlags) error {
	cfg, err := flags.statsConfig()
	if err != nil {
		return err
	}
	logger, err := flags.logger(cmd)
	if err != nil {
		return err
	}
	st, closeStore, err := openStore(logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if flags.plain || !isInteractive() {
		report, err := stats.BuildReport(cmd.Context(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		if err := report.Render(cmd.OutOrStdout(), cfg, plotWidth()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func runHistoryCmd(cmd *cobra.Command, flags *statsFlags) error {
	cfg, err := flags.statsConfig()
	if err != nil {
		return err
	}
	logger, err := flags.logger(cmd)
	if err != nil {
		return err
	}
	st, closeStore, err := openStore(logger)
	if err != nil {
		return err
	}
	defer closeStore()

	records, err := st.ListResults(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}
	logger.Debug("results loaded", "count", len(records))
	return stats.WriteHistory(cmd.OutOrStdout(), records, flags.format)
}

func plotWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultPlotWidth
	}
	return width
}
