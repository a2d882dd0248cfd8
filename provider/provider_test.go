package provider

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainName(t *testing.T) {
	assert.Equal(t, "homestead", ChainName(big.NewInt(1)))
	assert.Equal(t, "sepolia", ChainName(big.NewInt(11155111)))
	assert.Equal(t, "unknown", ChainName(big.NewInt(31337)))
	assert.Equal(t, "unknown", ChainName(nil))
}

func TestPendingTransactionWait(t *testing.T) {
	hash := common.HexToHash("0x01")

	t.Run("successful receipt", func(t *testing.T) {
		p := NewPendingTransaction(hash, func(ctx context.Context, h common.Hash) (*types.Receipt, error) {
			return &types.Receipt{TxHash: h, Status: types.ReceiptStatusSuccessful}, nil
		})
		receipt, err := p.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, hash, receipt.TxHash)
		assert.Equal(t, hash, p.Hash())
	})

	t.Run("reverted receipt", func(t *testing.T) {
		p := NewPendingTransaction(hash, func(ctx context.Context, h common.Hash) (*types.Receipt, error) {
			return &types.Receipt{TxHash: h, Status: types.ReceiptStatusFailed}, nil
		})
		_, err := p.Wait(context.Background())
		assert.ErrorIs(t, err, ErrTransactionReverted)
	})

	t.Run("wait error", func(t *testing.T) {
		boom := errors.New("boom")
		p := NewPendingTransaction(hash, func(ctx context.Context, h common.Hash) (*types.Receipt, error) {
			return nil, boom
		})
		_, err := p.Wait(context.Background())
		assert.ErrorIs(t, err, boom)
	})
}

func TestMockNotifications(t *testing.T) {
	alice := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	m := NewMock(1, alice)

	ch := make(chan []common.Address, 1)
	sub := m.SubscribeAccounts(ch)
	defer sub.Unsubscribe()

	assert.Equal(t, 1, m.EmitAccounts())
	select {
	case got := <-ch:
		assert.Empty(t, got)
	case <-time.After(time.Second):
		t.Fatal("no accounts notification")
	}

	accts, err := m.Accounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accts)

	sub.Unsubscribe()
	assert.Equal(t, 0, m.EmitAccounts(alice))
}

func TestMockSigner(t *testing.T) {
	alice := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob := common.HexToAddress("0x00000000000000000000000000000000000000b0")
	m := NewMock(1, alice)

	pending, err := m.Signer(alice).SendTransaction(context.Background(), bob, big.NewInt(42))
	require.NoError(t, err)
	receipt, err := pending.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pending.Hash(), receipt.TxHash)

	transfers := m.Transfers()
	require.Len(t, transfers, 1)
	assert.Equal(t, alice, transfers[0].From)
	assert.Equal(t, bob, transfers[0].To)
	assert.Equal(t, int64(42), transfers[0].Value.Int64())
	assert.Equal(t, 1, m.SendCalls())
}
