// Package tui provides the interactive terminal game for Mind Vault.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary  = lipgloss.Color("#ff4b4b") // Red - titles, riddle border
	ColorStory    = lipgloss.Color("#ff444c") // Story border
	ColorHint     = lipgloss.Color("#ffcc00") // Hint border
	ColorProgress = lipgloss.Color("#4CAF50") // Progress fill
	ColorMuted    = lipgloss.Color("#666666") // Gray - help text
	ColorText     = lipgloss.Color("#f1faee") // Light text
	ColorLabel    = lipgloss.Color("#a8dadc") // Label color
	ColorBg       = lipgloss.Color("#1a1a2e") // Dark background
	ColorBgAlt    = lipgloss.Color("#2d3436") // Alt background
	ColorErrorBg  = lipgloss.Color("#FF7F7F") // Error banner background
	ColorErrorFg  = lipgloss.Color("#800000") // Error banner text
	ColorSuccess  = lipgloss.Color("#a8e6cf") // Green - success
)

// TimerPalette colors the countdown for one theme.
type TimerPalette struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Border     lipgloss.Color
}

// timerPalettes is keyed by vault.Theme.TimerStyle.
var timerPalettes = map[string]TimerPalette{
	"mystery": {Background: "#3a163d", Foreground: "#f2ce1b", Border: "#6b2e70"},
	"ruins":   {Background: "#7e6339", Foreground: "#e3dac9", Border: "#594729"},
	"space":   {Background: "#0c164f", Foreground: "#00ffff", Border: "#273c75"},
	"forest":  {Background: "#1e4d2b", Foreground: "#b6ff9c", Border: "#3e7e46"},
}

// PaletteFor returns the timer palette for a style key, defaulting to mystery.
func PaletteFor(style string) TimerPalette {
	if p, ok := timerPalettes[style]; ok {
		return p
	}
	return timerPalettes["mystery"]
}

// TimerStyle returns the box style for a countdown palette.
func TimerStyle(p TimerPalette) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Foreground).
		Background(p.Background).
		Border(lipgloss.ThickBorder()).
		BorderForeground(p.Border).
		Padding(0, 2).
		Align(lipgloss.Center)
}

// Title styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorBg).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorLabel).
			Italic(true)
)

// Theme menu styles
var (
	MenuItemStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	MenuItemActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHint).
				Background(ColorBgAlt).
				Padding(0, 1)
)

// Box styles
var (
	StoryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorStory).
			Padding(0, 2).
			MarginTop(1)

	RiddleBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2).
			MarginTop(1)

	HintBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorHint).
			Padding(0, 2).
			MarginTop(1)

	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorLabel).
			Padding(0, 1).
			MarginTop(1)

	LocationStyle = lipgloss.NewStyle().
			Foreground(ColorLabel).
			Italic(true)

	RiddleHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText)

	HintHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHint)
)

// Status styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorBannerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorErrorFg).
				Background(ColorErrorBg).
				Padding(0, 2).
				MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(ColorHint).
			Bold(true).
			Italic(true)
)

// Content area style
var ContentStyle = lipgloss.NewStyle().
	Padding(1, 2)
