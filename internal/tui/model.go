// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typetest/internal/engine"
	"github.com/verte-zerg/typetest/internal/generator"
	"github.com/verte-zerg/typetest/internal/logging"
	"github.com/verte-zerg/typetest/internal/model"
	"github.com/verte-zerg/typetest/internal/stats"
)

const timerWarnSeconds = 10

// Saver persists finished sessions.
type Saver interface {
	InsertResult(ctx context.Context, rec model.Record) (string, error)
}

// Options configures a Model.
type Options struct {
	Config    model.Config
	Generator *generator.Generator
	// Saver may be nil, in which case results are not stored.
	Saver   Saver
	Logger  *slog.Logger
	TotalXP int
	Now     func() time.Time
}

type tickMsg struct {
	gen uint64
}

// savedMsg reports a finished save for the attempt it was taken from.
type savedMsg struct {
	attempt uint64
	id      string
	xp      int
	err     error
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	config model.Config
	gen    *generator.Generator
	saver  Saver
	logger *slog.Logger
	now    func() time.Time

	engine *engine.Engine
	live   engine.Live

	width  int
	height int

	attempt  uint64
	result   *model.Result
	pending  *model.Record
	saved    bool
	saveErr  error
	gainedXP int
	totalXP  int
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	extraStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C1D1F"))
	skippedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Underline(true)
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	timerWarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	headlineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	cardStyle        = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#6E6E6E")).
				Padding(1, 3)
)

// NewModel constructs a typing TUI model and loads the first text.
func NewModel(opts Options) (*Model, error) {
	if opts.Generator == nil {
		return nil, errors.New("tui: generator is required")
	}
	m := &Model{
		config:  opts.Config,
		gen:     opts.Generator,
		saver:   opts.Saver,
		logger:  opts.Logger,
		now:     opts.Now,
		totalXP: opts.TotalXP,
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.engine = engine.New(
		engine.WithClock(m.now),
		engine.WithHooks(engine.Hooks{
			OnUpdate: func(l engine.Live) { m.live = l },
			OnFinish: m.onFinish,
		}),
	)
	if err := m.newText(); err != nil {
		return nil, err
	}
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if msg.gen != m.engine.Generation() {
			return m, nil
		}
		m.engine.Tick()
		if cmd := m.takePending(); cmd != nil {
			return m, cmd
		}
		if m.engine.State() == engine.StateRunning {
			return m, m.tickCmd()
		}
		return m, nil
	case savedMsg:
		m.handleSaved(msg)
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyTab:
		m.restart(true)
		return nil
	case tea.KeyEsc:
		m.restart(false)
		return nil
	}
	if m.engine.State() == engine.StateFinished {
		if msg.Type == tea.KeyRunes && string(msg.Runes) == "q" {
			return tea.Quit
		}
		return nil
	}

	keys := engineKeys(msg)
	if len(keys) == 0 {
		return nil
	}
	wasIdle := m.engine.State() == engine.StateIdle
	for _, k := range keys {
		m.engine.HandleKey(k)
	}
	if cmd := m.takePending(); cmd != nil {
		return cmd
	}
	if wasIdle && m.engine.State() == engine.StateRunning {
		return m.tickCmd()
	}
	return nil
}

// engineKeys translates a terminal key event into engine key names.
// Modified keys, function keys and pastes are not forwarded.
func engineKeys(msg tea.KeyMsg) []string {
	if msg.Alt || msg.Paste {
		return nil
	}
	switch msg.Type {
	case tea.KeyBackspace:
		return []string{engine.KeyBackspace}
	case tea.KeySpace:
		return []string{engine.KeySpace}
	case tea.KeyRunes:
		keys := make([]string, len(msg.Runes))
		for i, r := range msg.Runes {
			keys[i] = string(r)
		}
		return keys
	default:
		return nil
	}
}

func (m *Model) tickCmd() tea.Cmd {
	gen := m.engine.Generation()
	return tea.Tick(engine.TickInterval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// restart begins a new attempt. With fresh set a new text is generated,
// otherwise the current words are retyped.
func (m *Model) restart(fresh bool) {
	if fresh {
		if err := m.newText(); err != nil {
			m.logger.Error("failed to generate text", "err", err)
		}
		return
	}
	m.engine.Reset()
	m.clearResult()
}

func (m *Model) newText() error {
	text := m.gen.Generate(m.config.Mode, m.config.Target, m.config.Options)
	duration := time.Duration(m.config.Target.Duration) * time.Second
	if err := m.engine.Init(text, m.config.Mode, duration); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	m.clearResult()
	return nil
}

func (m *Model) clearResult() {
	m.attempt++
	m.result = nil
	m.pending = nil
	m.saved = false
	m.saveErr = nil
	m.gainedXP = 0
	m.live = m.engine.Live()
}

func (m *Model) onFinish(res model.Result) {
	m.result = &res
	m.logger.Info("session finished",
		"mode", m.config.Mode,
		"target", m.config.Label(),
		"wpm", res.WPM,
		"accuracy", res.Accuracy,
		"elapsed", res.Elapsed,
	)
	if m.saver == nil || !m.config.Save {
		return
	}
	m.pending = &model.Record{
		StartedAt:   m.engine.StartedAt(),
		EndedAt:     m.now(),
		Mode:        m.config.Mode,
		Target:      m.config.Label(),
		Punctuation: m.config.Options.Punctuation,
		Numbers:     m.config.Options.Numbers,
		Result:      res,
	}
}

func (m *Model) takePending() tea.Cmd {
	if m.pending == nil {
		return nil
	}
	rec := *m.pending
	m.pending = nil
	saver := m.saver
	attempt := m.attempt
	return func() tea.Msg {
		id, err := saver.InsertResult(context.Background(), rec)
		return savedMsg{attempt: attempt, id: id, xp: stats.XPFor(rec.WPM, rec.Accuracy), err: err}
	}
}

// handleSaved credits XP for every stored result but only updates the
// results card when the reply belongs to the attempt on screen.
func (m *Model) handleSaved(msg savedMsg) {
	current := msg.attempt == m.attempt
	if msg.err != nil {
		m.logger.Error("failed to save result", "err", msg.err)
		if current {
			m.saveErr = msg.err
		}
		return
	}
	m.logger.Debug("result saved", "id", msg.id)
	m.totalXP += msg.xp
	if current {
		m.saved = true
		m.gainedXP = msg.xp
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.result != nil {
		return m.place(m.renderResult(), "")
	}
	styled := buildStyledWords(m.engine.Words())
	footer := renderFooter(m.config.Mode, m.engine.State(), m.live, m.engine.WordCount())
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styled) + "\n" + footer
	}
	contentWidth := max(int(float64(m.width)*0.70), 1)
	wrapped := wrapStyledRunes(styled, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	return m.place(content, footer)
}

func (m *Model) place(content, footer string) string {
	if m.width == 0 || m.height == 0 {
		if footer == "" {
			return content
		}
		return content + "\n" + footer
	}
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func renderFooter(mode model.Mode, state engine.State, live engine.Live, words int) string {
	var segments []string
	if mode == model.ModeTime {
		timer := fmt.Sprintf("%ds", live.Remaining)
		if state == engine.StateRunning && live.Remaining <= timerWarnSeconds {
			timer = timerWarnStyle.Render(timer)
		}
		segments = append(segments, timer)
	} else {
		segments = append(segments, fmt.Sprintf("%d/%d", words-live.Remaining, words))
	}
	segments = append(segments,
		fmt.Sprintf("%d wpm", live.WPM),
		fmt.Sprintf("%d%% acc", live.Accuracy),
		fmt.Sprintf("Progress %d%%", int(live.Progress*100)),
	)
	if state == engine.StateIdle {
		segments = append(segments, "tab new text · esc restart · ctrl+c quit")
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) renderResult() string {
	res := m.result
	lines := []string{
		headlineStyle.Render(fmt.Sprintf("%d wpm", res.WPM)),
		"",
		fmt.Sprintf("raw          %d", res.RawWPM),
		fmt.Sprintf("accuracy     %d%%", res.Accuracy),
		fmt.Sprintf("consistency  %d%%", res.Consistency),
		fmt.Sprintf("characters   %d/%d (%d errors)", res.CorrectChars, res.TotalChars, res.Errors),
		fmt.Sprintf("time         %s", stats.FormatSeconds(res.Elapsed)),
		fmt.Sprintf("test         %s", stats.TestLabel(model.Record{
			Mode:        m.config.Mode,
			Target:      m.config.Label(),
			Punctuation: m.config.Options.Punctuation,
			Numbers:     m.config.Options.Numbers,
		})),
	}
	if spark := stats.Sparkline(stats.Floats(res.WPMHistory)); spark != "" {
		lines = append(lines, "", "wpm over time", spark)
	}
	lines = append(lines, "")
	switch {
	case m.saveErr != nil:
		lines = append(lines, incorrectStyle.Render("result not saved: "+m.saveErr.Error()))
	case m.saved:
		level := stats.LevelFor(m.totalXP)
		lines = append(lines,
			fmt.Sprintf("+%d XP", m.gainedXP),
			fmt.Sprintf("Level %d %s · %d%%", level.Number, level.Name, level.Progress(m.totalXP)),
		)
	case m.saver == nil || !m.config.Save:
		lines = append(lines, footerStyle.Render("not saved"))
	}
	lines = append(lines, "", footerStyle.Render("tab next test · esc retry · q quit"))
	return cardStyle.Render(strings.Join(lines, "\n"))
}
