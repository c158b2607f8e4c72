package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/f3rmion/mindvault/internal/audio"
	"github.com/f3rmion/mindvault/internal/game"
	"github.com/f3rmion/mindvault/internal/tui/bigchar"
	"github.com/f3rmion/mindvault/internal/vault"
)

const (
	clockCols  = 30
	clockRows  = 4
	bannerRows = 8
	maxWidth   = 100
)

// Player plays narration clips.
type Player interface {
	Play(ctx context.Context, clip []byte) error
}

// Recorder stores finished runs.
type Recorder interface {
	Record(ctx context.Context, run vault.RunSummary) error
}

// Options configures the game screen. Every field is optional.
type Options struct {
	Planner  *audio.Planner
	Player   Player
	History  Recorder
	Logger   *zap.Logger
	Theme    vault.Theme // Selected on start when valid
	Backdrop bool        // Draw the generated background
}

// tickMsg drives the countdown
type tickMsg time.Time

// themeReadyMsg is sent when adventure generation finished
type themeReadyMsg struct {
	theme vault.Theme
	err   error
}

// recordedMsg is sent when a finished run was written to history
type recordedMsg struct {
	err error
}

// renderCache holds expensive render results between frames.
type renderCache struct {
	storyKey string
	story    string

	backdropID string
	backdrop   *Backdrop
}

// AppModel is the game screen.
type AppModel struct {
	ctx     context.Context
	session *game.Session
	opts    Options
	logger  *zap.Logger

	// Layout state
	width  int
	height int
	ready  bool

	snap         game.Snapshot
	busy         bool // A session event is running in a command
	loadingTheme vault.Theme
	choosing     bool // Theme menu shown over a running game
	menuIndex    int
	recordedKey  string
	status       string

	input    textinput.Model
	spinner  spinner.Model
	progress progress.Model

	cache *renderCache
}

// NewApp creates the game screen for session.
func NewApp(ctx context.Context, session *game.Session, opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "Enter your answer here and press Enter..."
	ti.CharLimit = 120
	ti.Width = 50
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = LoadingStyle

	pr := progress.New(
		progress.WithSolidFill(string(ColorProgress)),
		progress.WithoutPercentage(),
		progress.WithWidth(40),
	)

	m := AppModel{
		ctx:      ctx,
		session:  session,
		opts:     opts,
		logger:   logger,
		snap:     session.Snapshot(),
		input:    ti,
		spinner:  sp,
		progress: pr,
		cache:    &renderCache{},
	}
	if opts.Theme.Valid() {
		m.busy = true
		m.loadingTheme = opts.Theme
	}
	return m
}

// Init starts the countdown ticker and any requested theme.
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, tick()}
	if m.busy {
		cmds = append(cmds, m.spinner.Tick, selectThemeCmd(m.ctx, m.session, m.loadingTheme))
	}
	return tea.Batch(cmds...)
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// selectThemeCmd runs theme selection, which calls the generative services,
// off the update loop.
func selectThemeCmd(ctx context.Context, session *game.Session, theme vault.Theme) tea.Cmd {
	return func() tea.Msg {
		err := session.SelectTheme(ctx, theme)
		return themeReadyMsg{theme: theme, err: err}
	}
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		w := m.contentWidth()
		m.input.Width = w - 6
		m.progress.Width = w - 16
		return m, nil

	case tickMsg:
		// While a command owns the session only the ticker is rescheduled
		if m.busy {
			return m, tick()
		}
		_ = m.session.Tick()
		return m, tea.Batch(tick(), m.afterEvent())

	case themeReadyMsg:
		m.busy = false
		if msg.err != nil {
			m.logger.Debug("theme selection ignored", zap.String("theme", string(msg.theme)), zap.Error(msg.err))
		}
		m.input.Reset()
		m.input.Focus()
		return m, m.afterEvent()

	case recordedMsg:
		if msg.err != nil {
			m.logger.Warn("recording run failed", zap.Error(msg.err))
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.choosing {
			m.choosing = false
			return m, nil
		}
		return m, tea.Quit
	}

	if m.busy {
		return m, nil
	}

	if m.snap.Phase == vault.PhaseNoThemeSelected || m.choosing {
		return m.updateMenu(msg)
	}

	switch msg.String() {
	case "ctrl+r":
		m.session.Reset()
		m.input.Reset()
		m.status = ""
		return m, m.afterEvent()
	case "ctrl+a":
		if m.session.ToggleAudio() {
			m.status = "Narration on"
		} else {
			m.status = "Narration off"
		}
		return m, m.afterEvent()
	case "ctrl+n":
		m.choosing = true
		m.menuIndex = themeIndex(m.snap.Theme)
		return m, nil
	}

	switch m.snap.Phase {
	case vault.PhaseTimedOut:
		if msg.String() == "ctrl+t" {
			if err := m.session.Retry(); err != nil {
				return m, nil
			}
			m.input.Reset()
			return m, m.afterEvent()
		}
		return m, nil

	case vault.PhaseCompleted:
		if msg.String() == "enter" {
			m.session.Reset()
			m.input.Reset()
			return m, m.afterEvent()
		}
		return m, nil

	case vault.PhaseInProgress:
		if msg.String() == "enter" {
			solved := m.snap.Solved
			if err := m.session.SubmitAnswer(m.input.Value()); err != nil && !errors.Is(err, game.ErrInvalidEvent) {
				m.logger.Warn("submit failed", zap.Error(err))
			}
			cmd := m.afterEvent()
			if m.snap.Solved != solved {
				m.input.Reset()
			}
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m AppModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	themes := vault.Themes()

	switch key := msg.String(); key {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(themes)-1 {
			m.menuIndex++
		}
	case "enter":
		return m.startTheme(themes[m.menuIndex])
	default:
		if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(themes) {
			return m.startTheme(themes[key[0]-'1'])
		}
	}
	return m, nil
}

func (m AppModel) startTheme(theme vault.Theme) (tea.Model, tea.Cmd) {
	m.choosing = false
	// Picking the running theme again just closes the menu
	if m.snap.Phase != vault.PhaseNoThemeSelected && theme == m.snap.Theme && m.snap.Total > 0 {
		return m, nil
	}

	m.busy = true
	m.loadingTheme = theme
	m.status = ""
	m.input.Reset()
	return m, tea.Batch(m.spinner.Tick, selectThemeCmd(m.ctx, m.session, theme))
}

// afterEvent refreshes the snapshot and starts narration and history writes
// for whatever the last event produced.
func (m *AppModel) afterEvent() tea.Cmd {
	m.snap = m.session.Snapshot()

	var cmds []tea.Cmd
	if cues := m.session.DrainCues(); len(cues) > 0 {
		cmds = append(cmds, m.narrate(cues))
	}
	if run, ok := m.session.Summary(); ok {
		key := run.SessionID + "/" + string(run.Outcome)
		if key != m.recordedKey {
			m.recordedKey = key
			cmds = append(cmds, m.record(run))
		}
	}
	return tea.Batch(cmds...)
}

func (m *AppModel) narrate(cues []audio.Request) tea.Cmd {
	planner, player, ctx, logger := m.opts.Planner, m.opts.Player, m.ctx, m.logger
	if planner == nil {
		return nil
	}
	return func() tea.Msg {
		for _, cue := range cues {
			clip, ok := planner.Ensure(ctx, cue.Key, cue.Text)
			if !ok || player == nil {
				continue
			}
			if err := player.Play(ctx, clip); err != nil {
				logger.Debug("playing cue failed", zap.String("cue", string(cue.Key)), zap.Error(err))
			}
		}
		return nil
	}
}

func (m *AppModel) record(run vault.RunSummary) tea.Cmd {
	history, ctx := m.opts.History, m.ctx
	if history == nil {
		return nil
	}
	return func() tea.Msg {
		return recordedMsg{err: history.Record(ctx, run)}
	}
}

func themeIndex(theme vault.Theme) int {
	for i, t := range vault.Themes() {
		if t == theme {
			return i
		}
	}
	return 0
}

func (m AppModel) contentWidth() int {
	w := m.width - 4
	if w > maxWidth {
		w = maxWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	width := m.contentWidth()
	sections := []string{m.renderHeader()}

	switch {
	case m.busy:
		sections = append(sections, m.renderLoading())
	case m.snap.Phase == vault.PhaseNoThemeSelected || m.choosing:
		sections = append(sections, m.renderMenu())
	default:
		sections = append(sections, m.renderGame(width)...)
	}

	sections = append(sections, "", m.renderHelp())
	return ContentStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m AppModel) renderHeader() string {
	return TitleStyle.Render("The Mind Vault") + "\n" +
		SubtitleStyle.Render("A place of mystery and riddles")
}

func (m AppModel) renderLoading() string {
	return "\n" + m.spinner.View() + " " +
		LoadingStyle.Render(fmt.Sprintf("Creating your %s adventure...", m.loadingTheme.Title()))
}

func (m AppModel) renderMenu() string {
	var items []string
	items = append(items, "", RiddleHeaderStyle.Render("Select a theme"), "")
	for i, theme := range vault.Themes() {
		label := fmt.Sprintf("%d. %s", i+1, theme.Title())
		style := MenuItemStyle
		if i == m.menuIndex {
			style = MenuItemActiveStyle
		}
		items = append(items, style.Render(label))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (m AppModel) renderGame(width int) []string {
	snap := m.snap
	var out []string

	if banner := m.renderBackdrop(width); banner != "" {
		out = append(out, banner)
	}
	out = append(out, m.renderTimer(), m.renderProgress())

	switch snap.Phase {
	case vault.PhaseTimedOut:
		out = append(out,
			ErrorBannerStyle.Render("Time's up! You couldn't solve the riddles in time."),
			HelpStyle.Render("Press ctrl+t to try again."))
		return out

	case vault.PhaseCompleted:
		out = append(out,
			"",
			SuccessStyle.Render("Congratulations! You've completed all the riddles!"),
			fmt.Sprintf("Time taken: %s", formatClock(snap.Elapsed)),
			HelpStyle.Render("Press enter to start a new game."))
		return out
	}

	if snap.ShowStory {
		story := m.cache.storyMarkdown(snap.SessionID, snap.MainStory, width-6)
		out = append(out, StoryBoxStyle.Width(width).Render(
			RiddleHeaderStyle.Render("Your Adventure Begins:")+"\n"+story))
	}

	if r := snap.Riddle; r != nil {
		body := LocationStyle.Render(wordWrap(r.Location, width-6)) + "\n\n" +
			RiddleHeaderStyle.Render(fmt.Sprintf("Riddle %d of %d:", r.Number, r.Total)) + "\n" +
			wordWrap(r.Text, width-6)
		out = append(out, RiddleBoxStyle.Width(width).Render(body))

		if snap.HintVisible {
			out = append(out, HintBoxStyle.Width(width).Render(
				HintHeaderStyle.Render("Hint:")+"\n"+wordWrap(snap.Hint, width-6)))
		}

		out = append(out, InputBoxStyle.Width(width).Render(m.input.View()))
	}

	if snap.Error != "" {
		out = append(out, ErrorBannerStyle.Render(wordWrap(snap.Error, width-4)))
	}
	return out
}

func (m AppModel) renderBackdrop(width int) string {
	if !m.opts.Backdrop || m.snap.Background.Empty() {
		return ""
	}
	if m.cache.backdropID != m.snap.SessionID {
		m.cache.backdropID = m.snap.SessionID
		b, err := NewBackdrop(m.snap.Background)
		if err != nil {
			m.logger.Debug("background not drawable", zap.Error(err))
		}
		m.cache.backdrop = b
	}
	return m.cache.backdrop.Render(width, bannerRows)
}

func (m AppModel) renderTimer() string {
	palette := PaletteFor(m.snap.Theme.TimerStyle())
	clock := formatClock(m.snap.Remaining)

	body := "Time Remaining: " + clock
	if big := bigchar.GetCached(clock, clockCols, clockRows); big != "" {
		body = "Time Remaining\n" + big
	}
	return TimerStyle(palette).MarginTop(1).Render(body)
}

func (m AppModel) renderProgress() string {
	label := fmt.Sprintf(" %d/%d Riddles", m.snap.Solved, m.snap.Total)
	return m.progress.ViewAs(m.snap.Progress()) + label
}

func (m AppModel) renderHelp() string {
	var keys []string
	switch {
	case m.busy:
		keys = []string{"esc quit"}
	case m.snap.Phase == vault.PhaseNoThemeSelected || m.choosing:
		keys = []string{"1-4 choose theme", "↑/↓ enter select", "esc quit"}
	default:
		narration := "off"
		if m.snap.AudioEnabled {
			narration = "on"
		}
		keys = []string{"enter submit", "ctrl+n new theme", "ctrl+r reset", "ctrl+a audio: " + narration, "esc quit"}
		if m.snap.Phase == vault.PhaseTimedOut {
			keys = append([]string{"ctrl+t try again"}, keys...)
		}
	}
	help := HelpStyle.Render(strings.Join(keys, " • "))
	if m.status != "" {
		help += "  " + SuccessStyle.Render(m.status)
	}
	return help
}

// storyMarkdown renders the storyline as markdown, cached per session and
// width.
func (c *renderCache) storyMarkdown(sessionID, md string, width int) string {
	key := fmt.Sprintf("%s/%d", sessionID, width)
	if c.storyKey == key {
		return c.story
	}

	out := wordWrap(md, width)
	if r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	); err == nil {
		if rendered, err := r.Render(md); err == nil {
			out = strings.TrimSpace(rendered)
		}
	}

	c.storyKey, c.story = key, out
	return out
}

// Run starts the game screen and blocks until the player quits.
func Run(ctx context.Context, session *game.Session, opts Options) error {
	p := tea.NewProgram(
		NewApp(ctx, session, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
