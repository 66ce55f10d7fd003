package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/justlookingaroundkami/Justice-lens-AI/internal/interaction"
	"github.com/justlookingaroundkami/Justice-lens-AI/internal/models"
	"github.com/justlookingaroundkami/Justice-lens-AI/internal/narration"
)

// ViewMode represents the current view
type ViewMode int

const (
	ViewModeCases ViewMode = iota // Case selection list
	ViewModeCase                  // Case detail, judgment and reveal
)

// narrationDoneMsg is sent when synthesis and playback for a case finish.
// seq identifies the narration run that produced it.
type narrationDoneMsg struct {
	seq   int
	title string
	err   error
}

// caseItem adapts a case record to the list component.
type caseItem struct {
	rec models.CaseRecord
}

func (i caseItem) Title() string       { return i.rec.Title }
func (i caseItem) Description() string { return i.rec.BiasNote }
func (i caseItem) FilterValue() string { return i.rec.Title }

// Model is the root Bubble Tea model
type Model struct {
	// Terminal dimensions
	width  int
	height int

	viewMode ViewMode

	eval   *interaction.Evaluator
	player Player
	logger *slog.Logger

	// Cancelled on quit so a running player process is stopped.
	ctx    context.Context
	cancel context.CancelFunc

	// Interaction
	state  models.State
	view   *models.View
	cursor int // Highlighted option

	// Components
	cases    list.Model
	viewport viewport.Model
	help     help.Model
	renderer *glamour.TermRenderer
	keys     KeyMap

	// Narration in flight. Only the latest run (narrationSeq) is tracked;
	// starting a new one cancels the previous.
	narrating       bool
	narratingTitle  string
	narrationSeq    int
	cancelNarration context.CancelFunc

	// Status line
	status string
	err    error
}

// NewModel creates the root model. player may be nil, which disables
// narration in the terminal. Narration stops when ctx is done or the user
// quits.
func NewModel(ctx context.Context, eval *interaction.Evaluator, player Player, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(ctx)

	records := eval.Catalog().All()
	items := make([]list.Item, len(records))
	for i, rec := range records {
		items[i] = caseItem{rec: rec}
	}

	cases := list.New(items, list.NewDefaultDelegate(), 80, 20)
	cases.Title = "🔎 Case Selection"
	cases.SetShowHelp(false)

	m := Model{
		width:    80,
		height:   24,
		viewMode: ViewModeCases,
		eval:     eval,
		player:   player,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		cases:    cases,
		viewport: viewport.New(80, 16),
		help:     help.New(),
		keys:     DefaultKeyMap(),
	}
	m.renderer = newRenderer(m.viewport.Width)
	return m
}

func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

func (m Model) Init() tea.Cmd {
	return nil
}

// State returns the current interaction state.
func (m Model) State() models.State {
	return m.state
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		bodyHeight := m.height - 4 // Header, status bar and help
		if bodyHeight < 1 {
			bodyHeight = 1
		}
		m.cases.SetSize(m.width, bodyHeight)
		m.viewport.Width = m.width
		m.viewport.Height = bodyHeight
		m.help.Width = m.width
		m.renderer = newRenderer(m.width - 4)
		m.refreshContent()
		return m, nil

	case narrationDoneMsg:
		if msg.seq != m.narrationSeq {
			// Superseded by a later narration.
			return m, nil
		}
		m.narrating = false
		m.narratingTitle = ""
		m.cancelNarration = nil
		if msg.err != nil {
			m.logger.Debug("narration failed", "case", msg.title, "error", msg.err)
			// Results for a case that is no longer open are dropped.
			if msg.title == m.state.SelectedCaseTitle {
				m.status = models.NarrationWarning
			}
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && !m.filtering() {
			m.cancel()
			return m, tea.Quit
		}
		if m.viewMode == ViewModeCases {
			return m.updateCases(msg)
		}
		return m.updateCase(msg)
	}

	if m.viewMode == ViewModeCases {
		var cmd tea.Cmd
		m.cases, cmd = m.cases.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) filtering() bool {
	return m.viewMode == ViewModeCases && m.cases.FilterState() == list.Filtering
}

func (m Model) updateCases(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.filtering() && key.Matches(msg, m.keys.Select) {
		item, ok := m.cases.SelectedItem().(caseItem)
		if !ok {
			return m, nil
		}
		m.selectCase(item.rec.Title)
		return m, nil
	}
	if key.Matches(msg, m.keys.Help) && !m.filtering() {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.cases, cmd = m.cases.Update(msg)
	return m, cmd
}

func (m Model) updateCase(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	judged := m.view != nil && m.view.Revealed

	switch {
	case key.Matches(msg, m.keys.Back):
		m.viewMode = ViewModeCases
		m.status = ""
		return m, nil

	case !judged && key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.refreshContent()
		}
		return m, nil

	case !judged && key.Matches(msg, m.keys.Down):
		if m.cursor < len(models.Options)-1 {
			m.cursor++
			m.refreshContent()
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if judged {
			return m, nil
		}
		cmd := m.judge(models.Options[m.cursor])
		return m, cmd

	case key.Matches(msg, m.keys.Narrate):
		if !judged {
			return m, nil
		}
		cmd := m.narrateCmd()
		return m, cmd

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// selectCase opens a case and clears any earlier judgment.
func (m *Model) selectCase(title string) {
	m.state = interaction.Select(m.state, title)
	m.cursor = 0
	m.status = ""
	m.err = nil

	view, err := m.eval.View(m.state)
	if err != nil {
		m.err = err
		m.view = nil
	} else {
		m.view = view
	}
	m.viewMode = ViewModeCase
	m.refreshContent()
	m.viewport.GotoTop()
}

// judge submits choice, reveals the AI judgment and starts narration.
func (m *Model) judge(choice models.Option) tea.Cmd {
	state, err := interaction.Judge(m.state, string(choice))
	if err != nil {
		m.err = err
		return nil
	}

	view, err := m.eval.View(state)
	if err != nil {
		m.err = err
		return nil
	}

	m.state = state
	m.view = view
	m.status = ""
	m.refreshContent()
	return m.narrateCmd()
}

// narrateCmd synthesizes and plays the AI judgment in the background,
// cancelling narration still running for another case. It returns nil when
// narration is disabled or the open case is already being narrated.
func (m *Model) narrateCmd() tea.Cmd {
	if m.player == nil || m.eval.NarrationProvider() == narration.ProviderNone {
		return nil
	}
	title := m.state.SelectedCaseTitle
	if m.narrating && m.narratingTitle == title {
		return nil
	}
	if m.cancelNarration != nil {
		m.cancelNarration()
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.narrationSeq++
	m.narrating = true
	m.narratingTitle = title
	m.cancelNarration = cancel
	m.status = ""

	eval, player, seq := m.eval, m.player, m.narrationSeq
	return func() tea.Msg {
		defer cancel()
		audio, err := eval.Narrate(ctx, title)
		if err == nil {
			err = player.Play(ctx, audio)
		}
		if errors.Is(err, interaction.ErrNarrationDisabled) {
			err = nil
		}
		return narrationDoneMsg{seq: seq, title: title, err: err}
	}
}

func (m *Model) refreshContent() {
	if m.viewMode != ViewModeCase || m.view == nil {
		return
	}
	m.viewport.SetContent(m.renderCase())
}

func (m Model) markdown(md string) string {
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (m Model) renderCase() string {
	v := m.view
	var b strings.Builder

	var top strings.Builder
	fmt.Fprintf(&top, "# 📂 %s\n\n", v.Case.Title)
	fmt.Fprintf(&top, "### 🔍 Case Facts\n\n%s\n\n", v.Case.Facts)
	fmt.Fprintf(&top, "📌 **Bias Observation:** %s\n\n", v.Case.BiasNote)
	fmt.Fprintf(&top, "### ⏳ Case Timeline\n\n%s\n\n", strings.Join(v.Timeline, " → "))
	top.WriteString("### 🧑‍⚖️ Judge Before the AI\n")
	b.WriteString(m.markdown(top.String()))

	b.WriteString(m.renderOptions())
	b.WriteString("\n")

	if !v.Revealed {
		return b.String()
	}

	b.WriteString(m.markdown(fmt.Sprintf("### 🤖 AI Judge's Recommendation\n\n**%s**\n\n### 📊 Analysis\n", v.Case.AIJudgment)))
	if v.Verdict.Aligned {
		b.WriteString("  " + AlignedStyle.Render(v.Verdict.Message) + "\n")
	} else {
		b.WriteString("  " + MisalignedStyle.Render(v.Verdict.Message) + "\n")
	}

	var reveal strings.Builder
	fmt.Fprintf(&reveal, "### ⚖️ Real Outcome\n\n%s\n\n", v.Case.RealOutcome)
	fmt.Fprintf(&reveal, "### 🧠 AI's Perspective on the Outcome\n\n%s\n\n", v.Case.AIOpinion)
	fmt.Fprintf(&reveal, "### 📚 Educational Note\n\n%s\n\n", v.EducationalNote)
	reveal.WriteString("*Justice Lens AI: understanding bias, one case at a time.*\n")
	b.WriteString(m.markdown(reveal.String()))

	return b.String()
}

func (m Model) renderOptions() string {
	judged := m.view.Revealed
	lines := []string{m.view.Case.HumanPrompt, ""}
	for i, opt := range m.view.Options {
		switch {
		case judged && opt == m.state.UserChoice:
			lines = append(lines, OptionSelectedStyle.Render("◉ "+string(opt)))
		case judged:
			lines = append(lines, OptionLockedStyle.Render("○ "+string(opt)))
		case i == m.cursor:
			lines = append(lines, OptionSelectedStyle.Render("❯ ○ "+string(opt)))
		default:
			lines = append(lines, OptionStyle.Render("○ "+string(opt)))
		}
	}
	return QuizStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) View() string {
	header := HeaderStyle.Render("⚖️ Justice Lens AI")

	var body string
	switch m.viewMode {
	case ViewModeCase:
		if m.err != nil {
			body = ErrorStyle.Render("Error: " + m.err.Error())
		} else {
			body = m.viewport.View()
		}
	default:
		body = m.cases.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		m.renderStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) renderStatus() string {
	switch {
	case m.err != nil:
		return StatusBarStyle.Render(ErrorStyle.Render(m.err.Error()))
	case m.status != "":
		return StatusBarStyle.Render(WarningStyle.Render("⚠ " + m.status))
	case m.narrating:
		return StatusBarStyle.Render("🔊 Narrating AI judgment...")
	default:
		return StatusBarStyle.Render("Explore real criminal cases where bias may have played a role.")
	}
}
