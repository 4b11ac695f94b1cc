package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the wallet screens use.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
)

const (
	colorBrand   = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

var (
	titleStyle     = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)
	headerStyle    = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface0).Padding(0, 1)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorOverlay1)
	labelStyle     = lipgloss.NewStyle().Foreground(colorSubtext0)
	amountStyle    = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	incomingStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	outgoingStyle  = lipgloss.NewStyle().Foreground(colorPeach)
	cursorStyle    = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	statusOKStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorError)
	messageStyle   = lipgloss.NewStyle().Foreground(colorWarning)
	progressStyle  = lipgloss.NewStyle().Foreground(colorInfo)
	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(0, 1)
	footerStyle    = lipgloss.NewStyle().Foreground(colorOverlay1).Padding(0, 1)
)

func txStatusColor(done, failed bool) lipgloss.Style {
	switch {
	case failed:
		return lipgloss.NewStyle().Foreground(colorError)
	case done:
		return lipgloss.NewStyle().Foreground(colorSuccess)
	default:
		return lipgloss.NewStyle().Foreground(colorWarning)
	}
}
