// Package status implements the transient notice banner.
package status

import (
	"time"

	"charm-wallet-connect/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultTTL is how long a notice stays visible.
const DefaultTTL = 5 * time.Second

// Severity is the banner class of a notice.
type Severity string

const (
	Info    Severity = "info"
	Success Severity = "success"
	Error   Severity = "error"
)

// Kind names what a notice reports. Failure kinds are the controller's
// error taxonomy.
type Kind string

const (
	ProviderUnavailable Kind = "ProviderUnavailable"
	ConnectionFailed    Kind = "ConnectionFailed"
	BalanceFetchFailed  Kind = "BalanceFetchFailed"
	MissingFields       Kind = "MissingFields"
	InvalidRecipient    Kind = "InvalidRecipient"
	TransactionFailed   Kind = "TransactionFailed"

	Connecting        Kind = "Connecting"
	Connected         Kind = "Connected"
	Disconnected      Kind = "Disconnected"
	TransferSending   Kind = "TransferSending"
	TransferSubmitted Kind = "TransferSubmitted"
	TransferConfirmed Kind = "TransferConfirmed"
	TransferInFlight  Kind = "TransferInFlight"
	Copied            Kind = "Copied"
	SettingsSaved     Kind = "SettingsSaved"
)

// Notice is one banner message.
type Notice struct {
	Kind     Kind
	Severity Severity
	Message  string
}

// Failure builds an error notice, appending err's message when present.
func Failure(kind Kind, message string, err error) Notice {
	if err != nil {
		message += ": " + err.Error()
	}
	return Notice{Kind: kind, Severity: Error, Message: message}
}

// ExpiredMsg is delivered when a notice's TTL has elapsed.
type ExpiredMsg struct {
	seq uint64
}

// Banner shows at most one notice. A newer notice replaces the current one
// and restarts the timer; timers of replaced notices are ignored.
type Banner struct {
	TTL     time.Duration
	current *Notice
	seq     uint64
	history []Notice
}

const maxHistory = 32

// NewBanner creates a banner whose notices expire after ttl.
func NewBanner(ttl time.Duration) Banner {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return Banner{TTL: ttl}
}

// Show displays n and returns the command that expires it.
func (b *Banner) Show(n Notice) tea.Cmd {
	b.seq++
	b.current = &n
	b.history = append(b.history, n)
	if len(b.history) > maxHistory {
		b.history = b.history[len(b.history)-maxHistory:]
	}
	seq := b.seq
	return tea.Tick(b.TTL, func(time.Time) tea.Msg {
		return ExpiredMsg{seq: seq}
	})
}

// Update clears the notice when its own timer fires.
func (b *Banner) Update(msg ExpiredMsg) {
	if msg.seq == b.seq {
		b.current = nil
	}
}

// Current returns the visible notice.
func (b Banner) Current() (Notice, bool) {
	if b.current == nil {
		return Notice{}, false
	}
	return *b.current, true
}

// History returns the most recent notices, oldest first.
func (b Banner) History() []Notice {
	return b.history
}

var (
	infoStyle    = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(styles.CAccent).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(styles.CError).Bold(true)
)

// View renders the banner, or an empty line when nothing is shown.
func (b Banner) View(width int) string {
	n, ok := b.Current()
	if !ok {
		return ""
	}
	var st lipgloss.Style
	icon := "ℹ"
	switch n.Severity {
	case Success:
		st, icon = successStyle, "✓"
	case Error:
		st, icon = errorStyle, "✗"
	default:
		st = infoStyle
	}
	return styles.StatusStyle.Width(width).BorderForeground(st.GetForeground()).Render(st.Render(icon + " " + n.Message))
}
