package helpers

import (
	"image/color"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/gamut"
)

var hexAddrRe = regexp.MustCompile("^(0x|0X)?[0-9a-fA-F]{40}$")

// FormatAddress shortens an address for display: the first 6 characters,
// an ellipsis and the last 2 characters.
func FormatAddress(addr string) string {
	if len(addr) < 8 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-2:]
}

// ShortenHash keeps the first 10 characters of a transaction hash.
func ShortenHash(hash string) string {
	if len(hash) <= 10 {
		return hash
	}
	return hash[:10] + "..."
}

// IsValidAddress reports whether s is a usable Ethereum address.
// The 0x prefix is optional. All-lower or all-upper hex is accepted as is,
// mixed case must match the EIP-55 checksum.
func IsValidAddress(s string) bool {
	if !hexAddrRe.MatchString(s) {
		return false
	}
	body := s
	if len(body) == 42 {
		body = body[2:]
	}
	if strings.ToLower(body) == body || strings.ToUpper(body) == body {
		return true
	}
	return common.HexToAddress(body).Hex()[2:] == body
}

// CapitalizeFirst upper-cases the first letter of a network name.
// Empty and already capitalised names are returned unchanged.
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// LoadedAt formats the loaded timestamp
func LoadedAt(t time.Time, loading bool) string {
	if loading {
		return "loading…"
	}
	if t.IsZero() {
		return "never"
	}
	return t.Format("15:04:05")
}

// FadeString creates a gradient colored string
func FadeString(s string, firstColor string, lastColor string) string {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return s
	}
	blends := gamut.Blends(lipgloss.Color(firstColor), lipgloss.Color(lastColor), n)
	return rainbow(lipgloss.NewStyle(), s, blends)
}

func rainbow(baseStyle lipgloss.Style, str string, colors []color.Color) string {
	var b strings.Builder
	i := 0
	for _, c := range str {
		col, _ := colorful.MakeColor(colors[i%len(colors)])
		b.WriteString(baseStyle.Foreground(lipgloss.Color(col.Hex())).Render(string(c)))
		i++
	}
	return b.String()
}
