package send

import (
	"strings"

	"charm-wallet-connect/styles"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

const (
	FieldRecipient = iota
	FieldAmount
)

// NewInputs builds the recipient and amount inputs of the send form
func NewInputs() (recipient, amount textinput.Model) {
	recipient = textinput.New()
	recipient.Placeholder = "0x…"
	recipient.Prompt = "To:     "
	recipient.CharLimit = 42
	recipient.Width = 48

	amount = textinput.New()
	amount.Placeholder = "0.0"
	amount.Prompt = "Amount: "
	amount.CharLimit = 40
	amount.Width = 24

	for _, in := range []*textinput.Model{&recipient, &amount} {
		in.PromptStyle = lipgloss.NewStyle().Foreground(styles.CAccent)
		in.TextStyle = lipgloss.NewStyle().Foreground(styles.CText)
		in.Cursor.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)
		// a static cursor keeps the form from scheduling blink ticks
		in.Cursor.SetMode(cursor.CursorStatic)
	}
	return recipient, amount
}

// Render renders the send form
func Render(recipient, amount textinput.Model, sending bool, spinnerView string) string {
	h := styles.TitleStyle.Render("Send ETH")
	muted := lipgloss.NewStyle().Foreground(styles.CMuted)

	lines := []string{
		h,
		"",
		recipient.View(),
		amount.View() + muted.Render("  ETH"),
		"",
	}
	if sending {
		lines = append(lines, spinnerView+" "+muted.Render("waiting for the wallet and the network…"))
	} else {
		lines = append(lines, styles.ActiveButtonStyle.Render("Confirm Send")+"  "+styles.ButtonStyle.Render("Cancel"))
	}
	return strings.Join(lines, "\n")
}
