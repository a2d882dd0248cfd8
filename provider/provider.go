// Package provider describes the external wallet the client talks to.
// Everything that needs keys, signing or network access goes through a
// Provider; this module never holds private keys.
package provider

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
)

var (
	// ErrNoProvider is returned when no wallet endpoint is configured or
	// the configured one cannot be dialled.
	ErrNoProvider = errors.New("wallet provider unavailable")
	// ErrNoAccounts is returned when the wallet authorised zero accounts.
	ErrNoAccounts = errors.New("wallet returned no accounts")
	// ErrTransactionReverted is returned when a mined receipt reports failure.
	ErrTransactionReverted = errors.New("transaction reverted")
)

// Provider is a connection to a wallet and the chain it is pointed at.
type Provider interface {
	// RequestAccounts asks the wallet for account access. It blocks until
	// the user approves or rejects in the wallet.
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	// Accounts returns the currently authorised accounts without prompting.
	Accounts(ctx context.Context) ([]common.Address, error)
	BalanceAt(ctx context.Context, addr common.Address) (*big.Int, error)
	Network(ctx context.Context) (Network, error)
	// Signer returns a handle that submits transactions from addr.
	Signer(addr common.Address) Signer

	// SubscribeAccounts delivers the new account list whenever it changes.
	SubscribeAccounts(ch chan<- []common.Address) event.Subscription
	// SubscribeChain delivers the new chain id whenever it changes.
	SubscribeChain(ch chan<- *big.Int) event.Subscription

	Close()
}

// Signer submits transactions on behalf of one account.
type Signer interface {
	Address() common.Address
	// SendTransaction blocks until the wallet approved the transfer and the
	// node accepted it into its pool.
	SendTransaction(ctx context.Context, to common.Address, value *big.Int) (*PendingTransaction, error)
}

// Network identifies the chain a provider is connected to.
type Network struct {
	ChainID *big.Int
	Name    string
}

// WaitFunc blocks until the transaction identified by hash is mined.
type WaitFunc func(ctx context.Context, hash common.Hash) (*types.Receipt, error)

// PendingTransaction is a submitted transaction awaiting confirmation.
type PendingTransaction struct {
	hash common.Hash
	wait WaitFunc
}

// NewPendingTransaction wraps a submitted hash together with the function
// used to wait for its receipt.
func NewPendingTransaction(hash common.Hash, wait WaitFunc) *PendingTransaction {
	return &PendingTransaction{hash: hash, wait: wait}
}

// Hash returns the transaction hash.
func (p *PendingTransaction) Hash() common.Hash { return p.hash }

// Wait blocks until one confirmation is observed or ctx is done.
func (p *PendingTransaction) Wait(ctx context.Context) (*types.Receipt, error) {
	receipt, err := p.wait(ctx, p.hash)
	if err != nil {
		return nil, err
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return receipt, ErrTransactionReverted
	}
	return receipt, nil
}

// chainNames follows the names ethers reports for well known chains.
var chainNames = map[uint64]string{
	1:        "homestead",
	5:        "goerli",
	10:       "optimism",
	56:       "bnb",
	137:      "matic",
	8453:     "base",
	17000:    "holesky",
	42161:    "arbitrum",
	80002:    "matic-amoy",
	11155111: "sepolia",
}

// ChainName maps a chain id to its network name, "unknown" if unlisted.
func ChainName(chainID *big.Int) string {
	if chainID == nil || !chainID.IsUint64() {
		return "unknown"
	}
	if name, ok := chainNames[chainID.Uint64()]; ok {
		return name
	}
	return "unknown"
}
