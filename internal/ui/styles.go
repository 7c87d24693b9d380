package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/davidpaquet/sekai-chart-browser/internal/model"
)

var (
	// Colors
	primaryColor   = lipgloss.Color("#33CCBB")
	secondaryColor = lipgloss.Color("#10B981")
	mutedColor     = lipgloss.Color("#6B7280")
	errorColor     = lipgloss.Color("#EF4444")
	upcomingColor  = lipgloss.Color("#F59E0B")
	bgColor        = lipgloss.Color("#1F2937")
	selectedBg     = lipgloss.Color("#374151")

	// Text styles
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	infoStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	mutedTextStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	upcomingStyle = lipgloss.NewStyle().
			Foreground(upcomingColor)

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5E7EB")).
			Background(lipgloss.Color("#4B5563")).
			Padding(0, 1).
			MarginRight(1)

	// List styles
	songListStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(1).
			MarginTop(1).
			MarginRight(1)

	songItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedItemStyle = lipgloss.NewStyle().
				Background(selectedBg).
				Foreground(primaryColor).
				PaddingLeft(2)

	// Details pane
	detailsStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(1).
			MarginTop(1)

	// Status bar
	statusBarStyle = lipgloss.NewStyle().
			Background(bgColor).
			Padding(0, 1)

	keyHelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	barStyle = lipgloss.NewStyle().
			Foreground(primaryColor)
)

// tierColors follow the in-game difficulty colors
var tierColors = map[model.Tier]lipgloss.Color{
	model.Easy:   lipgloss.Color("#66DD11"),
	model.Normal: lipgloss.Color("#33BBEE"),
	model.Hard:   lipgloss.Color("#FFAA00"),
	model.Expert: lipgloss.Color("#EE4466"),
	model.Master: lipgloss.Color("#BB33EE"),
	model.Append: lipgloss.Color("#FF99CC"),
}

func tierStyle(t model.Tier) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(tierColors[t]).Bold(true)
}

// highlight adapts the variadic Render to search.Highlight
func highlight(s string) string {
	return highlightStyle.Render(s)
}
