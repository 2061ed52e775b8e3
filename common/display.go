// Package common provides shared utilities for configuration, logging,
// terminal display and alarm delivery.
package common

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Default colors for display styles
	PrimaryColor    = lipgloss.Color("#7D56F4") // Purple
	SuccessColor    = lipgloss.Color("#00FF00") // Bright Green
	WarningColor    = lipgloss.Color("#F5B041") // Yellow
	ErrorColor      = lipgloss.Color("#FF0000") // Bright Red
	NormalTextColor = lipgloss.Color("#FFFFFF") // White
)

// DisplayBox creates a nice looking box around content
func DisplayBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Padding(0).
		Width(80)

	titleStyle := lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true).
		PaddingLeft(2)

	output := titleStyle.Render(title) + "\n\n" + content

	return boxStyle.Render(output)
}

// SectionTitle formats a section title
func SectionTitle(title string) string {
	sectionStyle := lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true).
		PaddingLeft(2)

	return sectionStyle.Render(title)
}

// ListItem formats a list item with bullet point and proper spacing
func ListItem(label string, value string) string {
	contentStyle := lipgloss.NewStyle().
		Align(lipgloss.Left).
		PaddingLeft(8)

	itemStyle := lipgloss.NewStyle().
		Foreground(NormalTextColor)

	line := fmt.Sprintf("•  %-14s  %s", label, value)

	return contentStyle.Render(itemStyle.Render(line))
}

// StatusListItem formats a usage line against a limit, colored by whether the
// limit is respected. Example: "• /home  less than 90% (78.9%)"
func StatusListItem(label string, limits string, current string, isSuccess bool) string {
	statusStyle := lipgloss.NewStyle().Foreground(SuccessColor)
	statusText := "less than"

	if !isSuccess {
		statusStyle = lipgloss.NewStyle().Foreground(ErrorColor)
		statusText = "more than"
	}

	contentStyle := lipgloss.NewStyle().
		Align(lipgloss.Left).
		PaddingLeft(8)

	itemStyle := lipgloss.NewStyle().
		Foreground(NormalTextColor)

	line := fmt.Sprintf("•  %-14s  %s %s (%s)",
		label,
		statusStyle.Render(statusText),
		limits,
		current)

	return contentStyle.Render(itemStyle.Render(line))
}

// WarningListItem formats an alert line in the alerts section.
func WarningListItem(message string) string {
	warnStyle := lipgloss.NewStyle().Foreground(WarningColor)

	contentStyle := lipgloss.NewStyle().
		Align(lipgloss.Left).
		PaddingLeft(8)

	return contentStyle.Render("•  " + warnStyle.Render(message))
}
