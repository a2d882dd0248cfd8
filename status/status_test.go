package status

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailure(t *testing.T) {
	n := Failure(ConnectionFailed, "Failed to connect wallet", errors.New("user rejected"))
	assert.Equal(t, ConnectionFailed, n.Kind)
	assert.Equal(t, Error, n.Severity)
	assert.Equal(t, "Failed to connect wallet: user rejected", n.Message)

	n = Failure(MissingFields, "Please fill in all fields", nil)
	assert.Equal(t, "Please fill in all fields", n.Message)
}

func TestBannerExpiry(t *testing.T) {
	b := NewBanner(time.Millisecond)

	cmd := b.Show(Notice{Kind: Connected, Severity: Success, Message: "Wallet connected successfully!"})
	require.NotNil(t, cmd)
	n, ok := b.Current()
	require.True(t, ok)
	assert.Equal(t, Connected, n.Kind)
	assert.NotEmpty(t, b.View(60))

	msg, ok := cmd().(ExpiredMsg)
	require.True(t, ok)
	b.Update(msg)

	_, ok = b.Current()
	assert.False(t, ok)
	assert.Empty(t, b.View(60))
}

func TestBannerStaleTimerKeepsNewerNotice(t *testing.T) {
	b := NewBanner(time.Millisecond)

	first := b.Show(Notice{Kind: TransferSending, Severity: Info, Message: "Sending transaction..."})
	b.Show(Notice{Kind: TransferSubmitted, Severity: Info, Message: "Transaction submitted!"})

	b.Update(first().(ExpiredMsg))

	n, ok := b.Current()
	require.True(t, ok)
	assert.Equal(t, TransferSubmitted, n.Kind)
	assert.Len(t, b.History(), 2)
}

func TestBannerDefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, NewBanner(0).TTL)
}

func TestBannerHistoryIsBounded(t *testing.T) {
	b := NewBanner(time.Hour)
	for i := 0; i < maxHistory+5; i++ {
		b.Show(Notice{Kind: Copied, Severity: Info, Message: "x"})
	}
	assert.Len(t, b.History(), maxHistory)
}
