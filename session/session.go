// Package session holds the state of one wallet connection.
package session

import (
	"context"

	"charm-wallet-connect/provider"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
)

// Session is the in-memory connection to a wallet. The zero value is a
// closed session. It is not safe for concurrent use; the UI loop owns it.
type Session struct {
	id       uint64
	provider provider.Provider
	signer   provider.Signer
	address  common.Address
	open     bool

	ctx    context.Context
	cancel context.CancelFunc
	subs   *event.SubscriptionScope
}

// Open starts a new session on p with addr as the active account. Any
// previous session is closed first. It returns the new session id.
func (s *Session) Open(p provider.Provider, addr common.Address) uint64 {
	s.Close()
	s.id++
	s.provider = p
	s.address = addr
	s.signer = p.Signer(addr)
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.subs = new(event.SubscriptionScope)
	s.open = true
	return s.id
}

// Close tears the session down: cancels work started under Context,
// unsubscribes every tracked subscription and closes the provider.
// Closing a closed session does nothing.
func (s *Session) Close() {
	if !s.open {
		return
	}
	s.cancel()
	s.subs.Close()
	s.provider.Close()

	s.provider = nil
	s.signer = nil
	s.address = common.Address{}
	s.ctx, s.cancel = nil, nil
	s.subs = nil
	s.open = false
}

// ReplaceAccount switches the active account and rebinds the signer.
// It reports whether the address actually changed.
func (s *Session) ReplaceAccount(addr common.Address) bool {
	if !s.open || addr == s.address {
		return false
	}
	s.address = addr
	s.signer = s.provider.Signer(addr)
	return true
}

// Track ties sub to the session lifetime. On a closed session sub is
// unsubscribed immediately and nil is returned.
func (s *Session) Track(sub event.Subscription) event.Subscription {
	if !s.open {
		sub.Unsubscribe()
		return nil
	}
	return s.subs.Track(sub)
}

// Connected reports whether the session has an active address.
func (s *Session) Connected() bool { return s.open }

// ID identifies the current session. It changes on every Open.
func (s *Session) ID() uint64 { return s.id }

// Current reports whether id still names the open session.
func (s *Session) Current(id uint64) bool { return s.open && s.id == id }

// Address returns the active account.
func (s *Session) Address() common.Address { return s.address }

// Provider returns the wallet provider, nil when closed.
func (s *Session) Provider() provider.Provider { return s.provider }

// Signer returns the signer for the active account, nil when closed.
func (s *Session) Signer() provider.Signer { return s.signer }

// Context is cancelled when the session closes.
func (s *Session) Context() context.Context {
	if !s.open {
		return canceledCtx
	}
	return s.ctx
}

var canceledCtx = func() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}()
