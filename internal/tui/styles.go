package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/RetiredDemiurge/love-letter/cards"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	HandInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ForcedPlayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// Per-card border and label colors.
var cardStyles = map[cards.Type]lipgloss.Style{
	cards.Guard:    lipgloss.NewStyle().Foreground(lipgloss.Color("#5F87FF")).Bold(true),
	cards.Priest:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD7FF")).Bold(true),
	cards.Baron:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5FFF")).Bold(true),
	cards.Handmaid: lipgloss.NewStyle().Foreground(lipgloss.Color("#5FFF87")).Bold(true),
	cards.Prince:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF5F")).Bold(true),
	cards.King:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Bold(true),
	cards.Countess: lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true),
	cards.Princess: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true),
}

// CardStyle returns the display style for a card, falling back to plain white.
func CardStyle(card cards.Type) lipgloss.Style {
	if style, ok := cardStyles[card]; ok {
		return style
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
}
