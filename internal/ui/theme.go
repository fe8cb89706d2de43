package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gilleon/book-journal/internal/api"
)

// Theme defines the color palette for the UI.
type Theme struct {
	Name string

	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string

	Border        string
	SelectionBg   string
	SelectionText string
}

// DefaultTheme is a Dracula-flavored palette.
var DefaultTheme = Theme{
	Name:          "Dracula",
	Text:          "#F8F8F2",
	Muted:         "#6272A4",
	Accent:        "#BD93F9",
	Success:       "#50FA7B",
	Warning:       "#F1FA8C",
	Danger:        "#FF5555",
	Border:        "#6272A4",
	SelectionBg:   "#44475A",
	SelectionText: "#F8F8F2",
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Title       lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	Header      lipgloss.Style
	Row         lipgloss.Style
	RowSelected lipgloss.Style
	Muted       lipgloss.Style
	Accent      lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
	Modal       lipgloss.Style
	Label       lipgloss.Style
}

// Styles returns the lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		TabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Background(lipgloss.Color(t.SelectionBg)).
			Bold(true).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Row: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),
		RowSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.SelectionText)).
			Background(lipgloss.Color(t.SelectionBg)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(1, 2),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Bold(true),
	}
}

// statusStyle picks the style for a reading status badge.
func (s Styles) statusStyle(status api.ReadingStatus) lipgloss.Style {
	switch status {
	case api.StatusFinished:
		return s.Success
	case api.StatusInProgress:
		return s.Accent
	default:
		return s.Warning
	}
}
