package helpers

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

const etherDecimals = 18

var (
	ErrEmptyAmount    = errors.New("amount is empty")
	ErrInvalidAmount  = errors.New("invalid decimal amount")
	ErrTooManyDecimal = errors.New("fractional component exceeds decimals")
)

// ParseEther converts a decimal ether string ("1.5", ".25", "3") into wei.
// The conversion is exact; more than 18 fractional digits is an error.
func ParseEther(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyAmount
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !allDigits(whole) || !allDigits(frac) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	frac = strings.TrimRight(frac, "0")
	if len(frac) > etherDecimals {
		return nil, fmt.Errorf("%w: %q", ErrTooManyDecimal, s)
	}

	digits := whole + frac + strings.Repeat("0", etherDecimals-len(frac))
	wei, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return wei, nil
}

// FormatEther renders wei as ether rounded to the given number of decimals.
func FormatEther(wei *big.Int, decimals int) string {
	if wei == nil {
		wei = new(big.Int)
	}
	r := new(big.Rat).SetFrac(wei, big.NewInt(params.Ether))
	return r.FloatString(decimals)
}

// FormatBalance formats a wei balance the way the wallet panel shows it.
func FormatBalance(wei *big.Int) string {
	return FormatEther(wei, 4) + " ETH"
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
