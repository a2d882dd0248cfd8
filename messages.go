package main

import (
	"math/big"

	"charm-wallet-connect/provider"

	"github.com/ethereum/go-ethereum/common"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture

// walletConnectedMsg is the outcome of a connect attempt
type walletConnectedMsg struct {
	attempt  uint64
	provider provider.Provider
	accounts []common.Address
	network  provider.Network
	err      error
}

// balanceLoadedMsg carries the balance of one account in one session
type balanceLoadedMsg struct {
	session uint64
	address common.Address
	wei     *big.Int
	err     error
}

// accountsChangedMsg is the provider's accountsChanged notification
type accountsChangedMsg struct {
	session  uint64
	accounts []common.Address
}

// chainChangedMsg is the provider's chainChanged notification
type chainChangedMsg struct {
	session uint64
	chainID *big.Int
}

// transferSubmittedMsg reports that the wallet accepted (or refused) a transfer
type transferSubmittedMsg struct {
	session uint64
	pending *provider.PendingTransaction
	err     error
}

// transferConfirmedMsg reports the confirmation of a submitted transfer
type transferConfirmedMsg struct {
	session uint64
	hash    common.Hash
	err     error
}

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct {
	err error
}
