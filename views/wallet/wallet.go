package wallet

import (
	"bytes"
	"strings"

	"charm-wallet-connect/helpers"
	"charm-wallet-connect/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/mdp/qrterminal/v3"
)

// Panel is what the wallet view needs to draw itself
type Panel struct {
	Connected   bool
	Connecting  bool
	Address     string // full checksummed address
	Balance     string
	Network     string
	Loading     bool
	UpdatedAt   string
	ProviderURL string
	ShowQR      bool
	SendOpen    bool
	Sending     bool
	Spinner     string
}

// Nav returns the navigation bar for the wallet view
func Nav(width int, p Panel) string {
	var keys []string
	switch {
	case p.SendOpen:
		keys = []string{
			styles.Key("Tab") + " next field",
			styles.Key("Enter") + " confirm send",
			styles.Key("Esc") + " cancel",
		}
	case p.Connected:
		keys = []string{
			styles.Key("r") + " refresh",
			styles.Key("s") + " send",
			styles.Key("c") + " copy address",
			styles.Key("v") + " receive QR",
			styles.Key("d") + " disconnect",
			styles.Key("p") + " providers",
			styles.Key("l") + " logger",
			styles.Key("q") + " quit",
		}
	case p.Connecting:
		keys = []string{
			styles.Key("Esc") + " cancel",
			styles.Key("l") + " logger",
		}
	default:
		keys = []string{
			styles.Key("Enter") + " connect wallet",
			styles.Key("p") + " providers",
			styles.Key("l") + " logger",
			styles.Key("q") + " quit",
		}
	}
	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}

// Render renders the connect button or the connected wallet panel
func Render(p Panel) string {
	h := styles.TitleStyle.Render("Wallet")
	muted := lipgloss.NewStyle().Foreground(styles.CMuted)

	if p.Connecting {
		return h + "\n\n" + p.Spinner + " Waiting for approval in your wallet…\n\n" +
			muted.Render("Provider: "+p.ProviderURL)
	}

	if !p.Connected {
		button := styles.ActiveButtonStyle.Render("Connect Wallet")
		hint := muted.Render("Provider: ")
		if p.ProviderURL == "" {
			hint += lipgloss.NewStyle().Foreground(styles.CWarn).Render("none configured")
		} else {
			hint += lipgloss.NewStyle().Foreground(styles.CText).Render(p.ProviderURL)
		}
		return h + "\n\n" + button + "\n\n" + hint
	}

	text := lipgloss.NewStyle().Foreground(styles.CText)
	balance := text.Render(p.Balance)
	if p.Loading {
		balance = p.Spinner + " " + muted.Render("fetching…")
	}

	lines := []string{
		h,
		"",
		styles.LabelStyle.Render("Address") + text.Render(helpers.FormatAddress(p.Address)),
		styles.LabelStyle.Render("Balance") + balance,
		styles.LabelStyle.Render("Network") + text.Render(p.Network),
		styles.LabelStyle.Render("Updated") + muted.Render(p.UpdatedAt),
	}
	if p.Sending {
		lines = append(lines, "", p.Spinner+" "+muted.Render("transaction in flight…"))
	}
	if p.ShowQR {
		lines = append(lines, "", QRCode("ethereum:"+p.Address), muted.Render(p.Address))
	}
	return strings.Join(lines, "\n")
}

// QRCode renders content as a half-block terminal QR code
func QRCode(content string) string {
	var buf bytes.Buffer
	qrterminal.GenerateHalfBlock(content, qrterminal.L, &buf)
	return strings.TrimRight(buf.String(), "\n")
}
