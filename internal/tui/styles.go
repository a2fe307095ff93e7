package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorX      = lipgloss.Color("#E06C75")
	ColorO      = lipgloss.Color("#61AFEF")
	ColorMuted  = lipgloss.Color("#636B78")
	ColorBanner = lipgloss.Color("#E5C07B")
	ColorBorder = lipgloss.Color("#3F4451")
)

var (
	XStyle = lipgloss.NewStyle().Foreground(ColorX).Bold(true)
	OStyle = lipgloss.NewStyle().Foreground(ColorO).Bold(true)

	// EmptyStyle renders the cell number of a free cell.
	EmptyStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	CellStyle = lipgloss.NewStyle().
			Width(5).
			Align(lipgloss.Center).
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder)

	CursorStyle = CellStyle.
			BorderForeground(ColorBanner)

	BannerStyle = lipgloss.NewStyle().
			Foreground(ColorBanner).
			Bold(true)

	StatusStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)
