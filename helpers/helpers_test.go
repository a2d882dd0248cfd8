package helpers

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAddress(t *testing.T) {
	t.Run("checksummed address", func(t *testing.T) {
		addr := "0xABCDEF0123456789abcdef0123456789ABCD1234"
		assert.Equal(t, "0xABCD...34", FormatAddress(addr))
	})

	t.Run("forty hex characters", func(t *testing.T) {
		addr := strings.Repeat("a", 38) + "9f"
		got := FormatAddress(addr)
		assert.Equal(t, addr[:6]+"..."+addr[38:], got)
	})

	t.Run("short input untouched", func(t *testing.T) {
		assert.Equal(t, "0x12", FormatAddress("0x12"))
	})
}

func TestShortenHash(t *testing.T) {
	hash := "0x8d2f1c0e9b7a6f5e4d3c2b1a00112233445566778899aabbccddeeff00112233"
	assert.Equal(t, "0x8d2f1c0e...", ShortenHash(hash))
	assert.Equal(t, "0x1", ShortenHash("0x1"))
}

func TestIsValidAddress(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", true},
		{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED", true},
		{"5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", true},
		{"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAeD", false}, // bad checksum
		{"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeA", false},
		{"not-an-address", false},
		{"", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsValidAddress(c.in), c.in)
	}
}

func TestCapitalizeFirst(t *testing.T) {
	assert.Equal(t, "Sepolia", CapitalizeFirst("sepolia"))
	assert.Equal(t, "Homestead", CapitalizeFirst("Homestead"))
	assert.Equal(t, "", CapitalizeFirst(""))
}

func TestParseEther(t *testing.T) {
	oneEther, _ := new(big.Int).SetString("1000000000000000000", 10)

	t.Run("whole", func(t *testing.T) {
		wei, err := ParseEther("1")
		require.NoError(t, err)
		assert.Equal(t, 0, wei.Cmp(oneEther))
	})

	t.Run("fraction is exact", func(t *testing.T) {
		wei, err := ParseEther("0.1")
		require.NoError(t, err)
		assert.Equal(t, "100000000000000000", wei.String())
	})

	t.Run("leading dot", func(t *testing.T) {
		wei, err := ParseEther(".25")
		require.NoError(t, err)
		assert.Equal(t, "250000000000000000", wei.String())
	})

	t.Run("one wei", func(t *testing.T) {
		wei, err := ParseEther("0.000000000000000001")
		require.NoError(t, err)
		assert.Equal(t, "1", wei.String())
	})

	t.Run("zero", func(t *testing.T) {
		wei, err := ParseEther("0")
		require.NoError(t, err)
		assert.Equal(t, 0, wei.Sign())
	})

	t.Run("too many decimals", func(t *testing.T) {
		_, err := ParseEther("0.0000000000000000001")
		assert.ErrorIs(t, err, ErrTooManyDecimal)
	})

	t.Run("garbage", func(t *testing.T) {
		for _, in := range []string{"abc", "-1", "1.2.3", ".", "1e18"} {
			_, err := ParseEther(in)
			assert.ErrorIs(t, err, ErrInvalidAmount, in)
		}
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseEther("  ")
		assert.ErrorIs(t, err, ErrEmptyAmount)
	})
}

func TestFormatBalance(t *testing.T) {
	wei, _ := new(big.Int).SetString("1234567890000000000", 10)
	assert.Equal(t, "1.2346 ETH", FormatBalance(wei))
	assert.Equal(t, "0.0000 ETH", FormatBalance(nil))
	assert.Equal(t, "2.0000 ETH", FormatBalance(new(big.Int).Mul(big.NewInt(2), big.NewInt(1e18))))
}
