package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack-survival/internal/deck"
	"github.com/lox/blackjack-survival/internal/game"
)

// TUIModel represents the Bubble Tea model for a Blackjack Survival session.
// The session is driven directly from Update, so it is only ever touched by
// the Bubble Tea event loop.
type TUIModel struct {
	session   *game.Session
	snapshot  game.Snapshot
	formatter *game.EventFormatter
	logger    *log.Logger

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog     []string
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Dimensions
	width       int
	height      int
	initialized bool // Track if viewport has been properly sized

	// Test mode
	testMode    bool
	capturedLog []string
}

// NewTUIModel creates a new TUI model playing the given session
func NewTUIModel(session *game.Session, logger *log.Logger) *TUIModel {
	return NewTUIModelWithOptions(session, logger, false)
}

// NewTUIModelWithOptions creates a new TUI model with test mode option
func NewTUIModelWithOptions(session *game.Session, logger *log.Logger, testMode bool) *TUIModel {
	// Sized properly when WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "hit, stand, or help"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &TUIModel{
		session:     session,
		snapshot:    session.Snapshot(),
		formatter:   game.NewEventFormatter(game.FormattingOptions{ShowDeals: true}),
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		actionInput: ti,
		gameLog:     []string{},
		focusedPane: 1, // Start with input focused
		testMode:    testMode,
		capturedLog: []string{},
	}

	session.EventBus().Subscribe(m)
	m.AddBoldLogEntry("Blackjack Survival")
	if m.snapshot.Message != "" {
		m.AddLogEntry(m.snapshot.Message)
	}
	m.AddLogEntry("Dealt " + m.formatCards(m.snapshot.Hand) + ". Type help for commands.")
	return m
}

// OnEvent logs game events as they happen.
func (m *TUIModel) OnEvent(event game.GameEvent) {
	text := m.formatter.Format(event)
	if text == "" {
		return
	}

	switch e := event.(type) {
	case game.HandSettledEvent:
		switch {
		case e.Settlement.Bust:
			text = ErrorStyle.Render(text)
		case e.Settlement.Perfect21:
			text = SuccessStyle.Render(text)
		}
	case game.GameOverEvent:
		text = WarningStyle.Render(text)
	case game.ShopOpenedEvent:
		text = HeaderStyle.Render(" " + text + " ")
	}
	m.AddLogEntry(text)
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				input := m.actionInput.Value()
				m.actionInput.SetValue("")
				if m.Submit(input) {
					return m, tea.Sequence(tea.ClearScreen, tea.Quit)
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd

	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// Submit plays one line of input and reports whether the player asked to
// quit.
func (m *TUIModel) Submit(input string) bool {
	var offers []deck.Card
	if m.snapshot.Shop != nil {
		offers = m.snapshot.Shop.Offers
	}

	cmd, err := ParseCommand(input, m.session.Rules(), offers)
	switch {
	case err != nil:
		m.AddLogEntry(ErrorStyle.Render(err.Error()))
		return false
	case cmd.Quit:
		m.quitting = true
		return true
	case cmd.Help:
		m.AddLogEntry(InfoStyle.Render(HelpText))
		return false
	case cmd.Intent == nil:
		return false
	}

	m.logger.Debug("Dispatching", "intent", cmd.Intent.Name())
	snap, err := m.session.Dispatch(cmd.Intent)
	m.snapshot = snap
	if err != nil {
		m.AddLogEntry(ErrorStyle.Render(snap.Message))
	}
	return false
}

// Snapshot returns the latest snapshot rendered by the model.
func (m *TUIModel) Snapshot() game.Snapshot {
	return m.snapshot
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)

	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1))
	if m.focusedPane == 0 {
		actionStyle = actionStyle.BorderForeground(lipgloss.Color("#626262"))
	}
	actionPane := actionStyle.Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 26)
	paneHeight := max(m.height-actionHeight-4, 1) // borders x 2 and action pane

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(m.renderLogPane())

	// On first proper sizing, jump to the newest entries
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// renderLogPane renders the game log pane content
func (m *TUIModel) renderLogPane() string {
	return strings.Join(m.gameLog, "\n")
}

// renderSidebarPane shows the run and lifetime numbers
func (m *TUIModel) renderSidebarPane() string {
	s := m.snapshot
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(" Run "))
	b.WriteString("\n")
	b.WriteString(m.renderHealth())
	b.WriteString("\n")
	b.WriteString(WarningStyle.Render(fmt.Sprintf("Chips: %d", s.Chips)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Hands: %d\n", s.HandsCompleted)
	if s.Streak > 0 {
		b.WriteString(SuccessStyle.Render(fmt.Sprintf("Perfect streak: %d", s.Streak)))
		b.WriteString("\n")
	}
	if s.Phase == game.Playing {
		fmt.Fprintf(&b, "Shop in %d hands\n", s.NextShopIn)
	}
	fmt.Fprintf(&b, "Deck: %d cards\n", s.DeckSize)

	if len(s.PowerUps) > 0 {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("Power-ups:"))
		b.WriteString("\n")
		for _, p := range s.PowerUps {
			fmt.Fprintf(&b, "  %s\n", p.Name)
		}
	}

	b.WriteString("\n")
	b.WriteString(HeaderStyle.Render(" Lifetime "))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Games: %d\n", s.Stats.GamesPlayed)
	fmt.Fprintf(&b, "Best run: %d hands\n", s.Stats.BestRun)
	fmt.Fprintf(&b, "Most chips: %d\n", s.Stats.MostChips)
	fmt.Fprintf(&b, "Perfect 21s: %d\n", s.Stats.Perfect21Count)

	return b.String()
}

func (m *TUIModel) renderHealth() string {
	s := m.snapshot
	text := fmt.Sprintf("Health: %d/%d", s.Health, s.MaxHealth)
	switch {
	case s.Health*4 <= s.MaxHealth:
		return ErrorStyle.Render(text)
	case s.Health*2 <= s.MaxHealth:
		return WarningStyle.Render(text)
	default:
		return SuccessStyle.Render(text)
	}
}

// renderActionPane renders the hand, the choices and the input field
func (m *TUIModel) renderActionPane() string {
	s := m.snapshot
	var content strings.Builder

	switch s.Phase {
	case game.Playing:
		content.WriteString(m.renderHandInfo())
		content.WriteString("\n")
		content.WriteString(ActionsStyle.Render("Actions: ") +
			SuccessStyle.Render("[hit]") + " " + WarningStyle.Render("[stand]"))
		m.actionInput.Placeholder = "hit, stand, or help"
	case game.Shop:
		content.WriteString(m.renderShop())
		m.actionInput.Placeholder = "buy health 15, buy hearts, remove 1, close"
	case game.Lost:
		content.WriteString(ErrorStyle.Render(fmt.Sprintf("Game over after %d hands with %d chips.", s.HandsCompleted, s.Chips)))
		m.actionInput.Placeholder = "new to play again, quit to exit"
	}
	content.WriteString("\n")

	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	help := "Tab to scroll log • Enter to submit • Ctrl+C to quit"
	if m.focusedPane == 0 {
		help = "Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"
	}
	content.WriteString(InfoStyle.Render(help))

	return content.String()
}

// renderHandInfo renders the current hand and score
func (m *TUIModel) renderHandInfo() string {
	s := m.snapshot
	score := fmt.Sprintf("%d", s.Score)
	if s.Soft {
		score = "soft " + score
	}
	info := HandInfoStyle.Render(fmt.Sprintf("Hand: %s  Score: %s", m.formatCards(s.Hand), score))
	if s.HighStakes {
		info += "  " + ErrorStyle.Render("HIGH STAKES")
	}
	return info
}

// renderShop lists what can be bought and greys out what cannot
func (m *TUIModel) renderShop() string {
	shop := m.snapshot.Shop
	if shop == nil {
		return ""
	}

	item := func(text string, ok bool) string {
		if ok {
			return SuccessStyle.Render(text)
		}
		return InfoStyle.Render(text)
	}

	var parts []string
	for _, p := range shop.HealthPacks {
		parts = append(parts, item(fmt.Sprintf("[health %d: %d]", p.Amount, p.Cost), p.Affordable && p.Eligible))
	}
	for _, p := range shop.PowerUps {
		text := fmt.Sprintf("[%s: %d]", p.Name, p.Cost)
		if p.Owned {
			text = fmt.Sprintf("[%s: owned]", p.Name)
		}
		parts = append(parts, item(text, p.Affordable && !p.Owned))
	}

	var offers []string
	for i, c := range shop.Offers {
		offers = append(offers, fmt.Sprintf("%d:%s", i+1, m.formatCards([]deck.Card{c})))
	}

	return ActionsStyle.Render("Shop: ") + strings.Join(parts, " ") + "\n" +
		ActionsStyle.Render(fmt.Sprintf("Remove (%d chips): ", shop.RemovalCost)) +
		item(strings.Join(offers, " "), shop.CanRemove)
}

// formatCards formats cards with colors
func (m *TUIModel) formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return ""
	}

	var formatted []string
	for _, card := range cards {
		if card.IsRed() {
			formatted = append(formatted, RedCardStyle.Render(card.String()))
		} else {
			formatted = append(formatted, BlackCardStyle.Render(card.String()))
		}
	}

	return "[" + strings.Join(formatted, " ") + "]"
}

// AddLogEntry adds an entry to the game log
func (m *TUIModel) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return // Skip UI updates in test mode
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))

	// Only call GotoBottom if viewport has valid dimensions
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// AddBoldLogEntry adds a bold entry to the game log
func (m *TUIModel) AddBoldLogEntry(entry string) {
	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		m.gameLog = append(m.gameLog, entry)
		return
	}
	m.AddLogEntry(lipgloss.NewStyle().Bold(true).Render(entry))
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}
