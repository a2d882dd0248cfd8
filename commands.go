package main

import (
	"context"
	"fmt"
	"math/big"

	"charm-wallet-connect/provider"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

// connectWallet dials the provider and asks it for account access. The
// account request blocks until the user answers in the wallet.
func connectWallet(ctx context.Context, attempt uint64, url string, dial dialFunc) tea.Cmd {
	return func() tea.Msg {
		p, err := dial(url)
		if err != nil {
			return walletConnectedMsg{attempt: attempt, err: fmt.Errorf("%w: %v", provider.ErrNoProvider, err)}
		}

		accounts, err := p.RequestAccounts(ctx)
		if err != nil {
			p.Close()
			return walletConnectedMsg{attempt: attempt, err: err}
		}
		if len(accounts) == 0 {
			p.Close()
			return walletConnectedMsg{attempt: attempt, err: provider.ErrNoAccounts}
		}

		network, err := p.Network(ctx)
		if err != nil {
			p.Close()
			return walletConnectedMsg{attempt: attempt, err: fmt.Errorf("failed to read network: %w", err)}
		}

		return walletConnectedMsg{
			attempt:  attempt,
			provider: p,
			accounts: accounts,
			network:  network,
		}
	}
}

// loadBalance fetches the balance of addr
func loadBalance(ctx context.Context, id uint64, p provider.Provider, addr common.Address) tea.Cmd {
	return func() tea.Msg {
		wei, err := p.BalanceAt(ctx, addr)
		return balanceLoadedMsg{session: id, address: addr, wei: wei, err: err}
	}
}

// waitForAccounts delivers the next accountsChanged notification
func waitForAccounts(id uint64, ch <-chan []common.Address, sub event.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case accounts := <-ch:
			return accountsChangedMsg{session: id, accounts: accounts}
		case <-sub.Err():
			return nil
		}
	}
}

// waitForChain delivers the next chainChanged notification
func waitForChain(id uint64, ch <-chan *big.Int, sub event.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case chainID := <-ch:
			return chainChangedMsg{session: id, chainID: chainID}
		case <-sub.Err():
			return nil
		}
	}
}

// sendTransfer asks the wallet to send value to recipient. It returns once
// the wallet approved and the node accepted the transaction.
func sendTransfer(ctx context.Context, id uint64, signer provider.Signer, to common.Address, value *big.Int) tea.Cmd {
	return func() tea.Msg {
		pending, err := signer.SendTransaction(ctx, to, value)
		return transferSubmittedMsg{session: id, pending: pending, err: err}
	}
}

// waitConfirmation blocks until the transfer has one confirmation
func waitConfirmation(ctx context.Context, id uint64, pending *provider.PendingTransaction) tea.Cmd {
	return func() tea.Msg {
		_, err := pending.Wait(ctx)
		return transferConfirmedMsg{session: id, hash: pending.Hash(), err: err}
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardCopiedMsg{err: clipboard.WriteAll(text)}
	}
}
