package log

import (
	"fmt"

	"charm-wallet-connect/styles"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// PanelHeight returns how many log lines fit for a terminal height:
// at most a third of the screen or 12 lines, never fewer than 3.
func PanelHeight(termHeight int) int {
	return max(3, min(termHeight/3, 12))
}

// Render renders the controller log below the main panel
func Render(width int, vp viewport.Model) string {
	title := lipgloss.NewStyle().
		Foreground(styles.CAccent2).
		Bold(true).
		Render("Log")

	if n := vp.TotalLineCount(); n > vp.Height {
		title += lipgloss.NewStyle().
			Foreground(styles.CMuted).
			Render(fmt.Sprintf(" [%d lines, %d%%]", n, int(vp.ScrollPercent()*100)))
	}

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(0, 1).
		Width(max(0, width-2))

	return border.Render(title + "\n" + vp.View())
}
