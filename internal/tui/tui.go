// Package tui implements the hotseat terminal client. All players share one
// terminal and the device is passed between turns, so hidden information is
// only shown after an explicit ready prompt.
package tui

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/RetiredDemiurge/love-letter/cards"
	"github.com/RetiredDemiurge/love-letter/internal/game"
)

// phase tracks which prompt the model is currently waiting on.
type phase int

const (
	phaseStartPlayer phase = iota
	phasePass
	phaseCard
	phaseTarget
	phaseGuess
	phaseRoundEnd
	phaseGameOver
)

// Model is the Bubble Tea model for a hotseat game.
type Model struct {
	game      *game.Game
	rng       *rand.Rand
	formatter *game.EventFormatter
	logger    *log.Logger

	// UI components
	logViewport viewport.Model
	choiceInput textinput.Model

	// Prompt state
	phase     phase
	round     *game.Round
	eventMark int
	chosen    cards.Type
	targets   []*game.Player
	targetID  int
	guesses   []cards.Type
	errText   string

	gameLog []string

	// Dimensions
	width       int
	height      int
	initialized bool
	quitting    bool

	// Test mode
	testMode    bool
	capturedLog []string
}

// NewModel creates a hotseat model for the named players.
func NewModel(names []string, rng *rand.Rand, logger *log.Logger) (*Model, error) {
	return NewModelWithOptions(names, rng, logger, false)
}

// NewModelWithOptions creates a hotseat model with test mode option.
func NewModelWithOptions(names []string, rng *rand.Rand, logger *log.Logger, testMode bool) (*Model, error) {
	g, err := game.NewGame(names)
	if err != nil {
		return nil, err
	}

	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		game:        g,
		rng:         rng,
		formatter:   game.NewEventFormatter(g.Players, game.FormatOptions{}),
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		choiceInput: ti,
		phase:       phaseStartPlayer,
		testMode:    testMode,
	}

	m.addLog(HeaderStyle.Render(fmt.Sprintf(" Love Letter — %d players ", len(g.Players))))
	m.addLog(fmt.Sprintf("First to %d tokens wins.", g.TargetTokens))
	m.addLog("")
	m.addLog("Choose the starting player (rule: last on a date or youngest).")
	for i, p := range g.Players {
		m.addLog(fmt.Sprintf("  %d. %s", i+1, p.Name))
	}
	return m, nil
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "enter":
			m.submit(strings.TrimSpace(m.choiceInput.Value()))
			m.choiceInput.SetValue("")
			if m.quitting {
				return m, tea.Sequence(tea.ClearScreen, tea.Quit)
			}
		case "up":
			m.logViewport.ScrollUp(1)
		case "down":
			m.logViewport.ScrollDown(1)
		case "pgup":
			m.logViewport.HalfPageUp()
		case "pgdown":
			m.logViewport.HalfPageDown()
		}
	}

	var cmd tea.Cmd
	m.choiceInput, cmd = m.choiceInput.Update(msg)
	cmds = append(cmds, cmd)
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit advances the prompt state machine with one line of user input.
func (m *Model) submit(input string) {
	m.errText = ""

	switch m.phase {
	case phaseStartPlayer:
		idx, ok := parseChoice(input, len(m.game.Players))
		if !ok {
			m.errText = "Invalid choice."
			return
		}
		id := m.game.Players[idx].ID
		m.game.NextStartPlayerID = &id
		m.beginRound()

	case phasePass:
		m.startTurn()

	case phaseCard:
		m.chooseCard(input)

	case phaseTarget:
		idx, ok := parseChoice(input, len(m.targets))
		if !ok {
			m.errText = "Invalid target."
			return
		}
		targetID := m.targets[idx].ID
		if m.chosen == cards.Guard {
			m.targetID = targetID
			m.phase = phaseGuess
			m.guesses = guessOptions()
			m.addLog(PromptStyle.Render("Guard guess:"))
			for i, c := range m.guesses {
				m.addLog(fmt.Sprintf("  %d. %s (value %d)", i+1, c.Name(), c.Value()))
			}
			return
		}
		m.applyAction(game.Action{PlayerID: m.currentID(), Card: m.chosen, TargetID: &targetID})

	case phaseGuess:
		idx, ok := parseChoice(input, len(m.guesses))
		if !ok {
			m.errText = "Invalid choice."
			return
		}
		targetID := m.targetID
		guess := m.guesses[idx]
		m.applyAction(game.Action{PlayerID: m.currentID(), Card: m.chosen, TargetID: &targetID, Guess: &guess})

	case phaseRoundEnd:
		m.beginRound()

	case phaseGameOver:
		m.quitting = true
	}
}

// beginRound sets up the next round and prompts for the first turn.
func (m *Model) beginRound() {
	round, err := m.game.SetupRound(m.rng)
	if err != nil {
		m.errText = err.Error()
		return
	}
	m.round = round
	m.eventMark = 0
	m.flushEvents()
	m.promptPass()
}

// promptPass asks the next player to take the device.
func (m *Model) promptPass() {
	m.phase = phasePass
	m.addLog("")
	m.addLog(PromptStyle.Render(fmt.Sprintf(
		"%s, press Enter when ready (others look away).", m.round.CurrentPlayer().Name)))
}

// startTurn draws for the current player and prompts for a card.
func (m *Model) startTurn() {
	current := m.round.CurrentPlayer()
	canPlay, err := m.round.StartTurn(current.ID, m.rng)
	if err != nil {
		m.errText = err.Error()
		return
	}
	m.flushEvents()

	if !canPlay {
		m.game.CheckRoundEnd(m.round, m.rng)
		m.flushEvents()
		m.finishRound()
		return
	}

	m.phase = phaseCard
	m.addLog("")
	m.addLog(HandInfoStyle.Render(fmt.Sprintf("%s's hand:", current.Name)))
	for i, c := range current.Hand {
		m.addLog(fmt.Sprintf("  %d. %s (value %d)", i+1, CardStyle(c).Render(c.Name()), c.Value()))
	}
	if legal := game.LegalPlayCards(current.Hand); len(legal) == 1 && len(current.Hand) > 1 {
		m.addLog(ForcedPlayStyle.Render(fmt.Sprintf("Forced play: %s", legal[0].Name())))
	}
}

// chooseCard handles the card selection prompt, then routes to target and
// guess prompts as the card requires.
func (m *Model) chooseCard(input string) {
	current := m.round.CurrentPlayer()
	idx, ok := parseChoice(input, len(current.Hand))
	if !ok {
		m.errText = "That card cannot be played. Try again."
		return
	}
	card := current.Hand[idx]
	if !containsCard(game.LegalPlayCards(current.Hand), card) {
		m.errText = "That card cannot be played. Try again."
		return
	}
	m.chosen = card

	switch card {
	case cards.Guard, cards.Priest, cards.Baron, cards.Prince, cards.King:
		targets, err := m.round.ValidTargets(current.ID, card)
		if err != nil {
			m.errText = err.Error()
			return
		}
		if len(targets) == 0 && card != cards.Prince {
			m.addLog(DimStyle.Render("No valid targets. This card has no effect."))
			m.applyAction(game.Action{PlayerID: current.ID, Card: card})
			return
		}
		m.targets = targets
		m.phase = phaseTarget
		m.addLog(PromptStyle.Render("Targets:"))
		for i, t := range targets {
			m.addLog(fmt.Sprintf("  %d. %s", i+1, t.Name))
		}

	default:
		m.applyAction(game.Action{PlayerID: current.ID, Card: card})
	}
}

// applyAction submits the assembled action and handles round and game end.
func (m *Model) applyAction(action game.Action) {
	if _, err := m.round.ApplyAction(action, m.rng); err != nil {
		m.errText = fmt.Sprintf("Invalid move: %s", err)
		m.phase = phaseCard
		return
	}
	m.flushEvents()

	m.game.CheckRoundEnd(m.round, m.rng)
	m.flushEvents()

	if m.round.RoundOver {
		m.finishRound()
		return
	}

	m.round.AdvanceTurn()
	m.promptPass()
}

// finishRound prints the scoreboard and prompts for the next round or ends
// the game.
func (m *Model) finishRound() {
	m.addLog("")
	m.addLog(HeaderStyle.Render(" Scoreboard "))
	for _, p := range m.game.Players {
		m.addLog(fmt.Sprintf("  %s: %d tokens", p.Name, p.Tokens))
	}

	if m.game.Over() {
		var winners []string
		for _, p := range m.game.Players {
			if p.Tokens >= m.game.TargetTokens {
				winners = append(winners, p.Name)
			}
		}
		m.addLog("")
		m.addLog(SuccessStyle.Render(fmt.Sprintf("Winner(s): %s", strings.Join(winners, ", "))))
		m.addLog(DimStyle.Render("Press Enter to exit."))
		m.phase = phaseGameOver
		return
	}

	m.addLog(DimStyle.Render("Press Enter for the next round."))
	m.phase = phaseRoundEnd
}

// flushEvents formats and logs round events emitted since the last flush.
func (m *Model) flushEvents() {
	for _, ev := range m.round.Events[m.eventMark:] {
		m.addLog(m.formatter.Format(ev))
	}
	m.eventMark = len(m.round.Events)
}

func (m *Model) currentID() int {
	return m.round.CurrentPlayer().ID
}

// View renders the log pane above the prompt pane.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	promptContent := m.renderPromptPane()
	promptHeight := lipgloss.Height(promptContent)

	promptWidth := m.width - 2
	if promptWidth < 1 {
		promptWidth = 1
	}
	promptStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(promptWidth)
	promptPane := promptStyle.Render(promptContent)

	logWidth := m.width - 2
	logHeight := m.height - promptHeight - 4
	if logWidth < 1 {
		logWidth = 1
	}
	if logHeight < 1 {
		logHeight = 1
	}

	m.logViewport.Width = logWidth
	m.logViewport.Height = logHeight
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if !m.initialized && logWidth > 1 && logHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(logHeight)
	logPane := logStyle.Render(m.logViewport.View())

	return lipgloss.JoinVertical(lipgloss.Top, logPane, promptPane)
}

// renderPromptPane renders the input line with context for the active prompt.
func (m *Model) renderPromptPane() string {
	var content strings.Builder

	if m.errText != "" {
		content.WriteString(ErrorStyle.Render(m.errText))
		content.WriteString("\n")
	}

	switch m.phase {
	case phaseStartPlayer:
		m.choiceInput.Placeholder = "Starting player (number)"
	case phasePass:
		m.choiceInput.Placeholder = "Press Enter when ready"
	case phaseCard:
		m.choiceInput.Placeholder = "Choose a card to play (number)"
	case phaseTarget:
		m.choiceInput.Placeholder = "Choose a target (number)"
	case phaseGuess:
		m.choiceInput.Placeholder = "Choose a card (number)"
	case phaseRoundEnd:
		m.choiceInput.Placeholder = "Press Enter for the next round"
	case phaseGameOver:
		m.choiceInput.Placeholder = "Press Enter to exit"
	}

	content.WriteString(m.choiceInput.View())
	content.WriteString("\n")
	content.WriteString(DimStyle.Render("↑↓ scroll log • Enter to submit • Ctrl+C to quit"))

	return content.String()
}

// addLog appends an entry to the game log and keeps the viewport pinned to
// the newest entries.
func (m *Model) addLog(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// CapturedLog returns logged entries (test mode only).
func (m *Model) CapturedLog() []string {
	if !m.testMode {
		return nil
	}
	out := make([]string, len(m.capturedLog))
	copy(out, m.capturedLog)
	return out
}

// Submit drives the prompt state machine directly (test mode only).
func (m *Model) Submit(input string) error {
	if !m.testMode {
		return fmt.Errorf("direct submit only available in test mode")
	}
	m.submit(input)
	return nil
}

// parseChoice parses a 1-based menu choice and returns the 0-based index.
func parseChoice(input string, n int) (int, bool) {
	choice, err := strconv.Atoi(input)
	if err != nil || choice < 1 || choice > n {
		return 0, false
	}
	return choice - 1, true
}

// guessOptions lists every guessable card. Guard cannot guess Guard.
func guessOptions() []cards.Type {
	var options []cards.Type
	for _, c := range cards.All() {
		if c != cards.Guard {
			options = append(options, c)
		}
	}
	return options
}

func containsCard(list []cards.Type, card cards.Type) bool {
	for _, c := range list {
		if c == card {
			return true
		}
	}
	return false
}
