package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Theme defines the colour palette for verdict output.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Valid marks authentic findings.
	Valid lipgloss.Color

	// Hoax marks negative findings.
	Hoax lipgloss.Color

	// Failed marks items that could not be analysed.
	Failed lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary: lipgloss.Color("#7C3AED"), // Purple
		Muted:   lipgloss.Color("#6C7086"), // Medium gray
		Valid:   lipgloss.Color("#A6E3A1"), // Green
		Hoax:    lipgloss.Color("#F38BA8"), // Red
		Failed:  lipgloss.Color("#F9E2AF"), // Yellow
		Border:  lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Valid  lipgloss.Style
	Hoax   lipgloss.Style
	Failed lipgloss.Style
	Box    lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Valid: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Valid),

		Hoax: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Hoax),

		Failed: lipgloss.NewStyle().
			Foreground(theme.Failed),

		Box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Title:  plain,
		Muted:  plain,
		Valid:  plain,
		Hoax:   plain,
		Failed: plain,
		Box:    plain,
	}
}

// stylesFor picks coloured styles for terminals and plain styles otherwise.
func stylesFor(w io.Writer) *Styles {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return NewStyles(DefaultTheme())
	}
	return PlainStyles()
}
