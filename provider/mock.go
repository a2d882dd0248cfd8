package provider

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/event"
)

// Transfer is a value transfer recorded by Mock.
type Transfer struct {
	From  common.Address
	To    common.Address
	Value *big.Int
}

// Mock is an in-memory Provider for tests.
type Mock struct {
	mu sync.Mutex

	accounts []common.Address
	balances map[common.Address]*big.Int
	chainID  *big.Int

	requestErr error
	balanceErr error
	networkErr error
	sendErr    error
	waitErr    error
	status     uint64

	requestCalls int
	balanceCalls int
	sendCalls    int
	transfers    []Transfer
	closed       bool

	accountsFeed event.Feed
	chainFeed    event.Feed
}

// NewMock creates a mock wallet exposing accounts on the given chain.
func NewMock(chainID int64, accounts ...common.Address) *Mock {
	return &Mock{
		accounts: accounts,
		balances: make(map[common.Address]*big.Int),
		chainID:  big.NewInt(chainID),
		status:   types.ReceiptStatusSuccessful,
	}
}

// SetBalance sets the balance reported for addr.
func (m *Mock) SetBalance(addr common.Address, wei *big.Int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[addr] = wei
}

// SetAccounts replaces the authorised accounts without notifying.
func (m *Mock) SetAccounts(accounts ...common.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts = accounts
}

// SetRequestError makes RequestAccounts fail.
func (m *Mock) SetRequestError(err error) { m.setErr(&m.requestErr, err) }

// SetBalanceError makes BalanceAt fail.
func (m *Mock) SetBalanceError(err error) { m.setErr(&m.balanceErr, err) }

// SetNetworkError makes Network fail.
func (m *Mock) SetNetworkError(err error) { m.setErr(&m.networkErr, err) }

// SetSendError makes SendTransaction fail.
func (m *Mock) SetSendError(err error) { m.setErr(&m.sendErr, err) }

// SetWaitError makes waiting for a receipt fail.
func (m *Mock) SetWaitError(err error) { m.setErr(&m.waitErr, err) }

// SetReceiptStatus sets the status of receipts returned by Wait.
func (m *Mock) SetReceiptStatus(status uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
}

func (m *Mock) setErr(dst *error, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*dst = err
}

// EmitAccounts notifies subscribers of a new account list.
func (m *Mock) EmitAccounts(accounts ...common.Address) int {
	m.SetAccounts(accounts...)
	return m.accountsFeed.Send(accounts)
}

// EmitChain notifies subscribers of a chain switch.
func (m *Mock) EmitChain(chainID int64) int {
	m.mu.Lock()
	m.chainID = big.NewInt(chainID)
	m.mu.Unlock()
	return m.chainFeed.Send(big.NewInt(chainID))
}

// RequestAccounts implements Provider.
func (m *Mock) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCalls++
	if m.requestErr != nil {
		return nil, m.requestErr
	}
	return append([]common.Address(nil), m.accounts...), nil
}

// Accounts implements Provider.
func (m *Mock) Accounts(ctx context.Context) ([]common.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]common.Address(nil), m.accounts...), nil
}

// BalanceAt implements Provider.
func (m *Mock) BalanceAt(ctx context.Context, addr common.Address) (*big.Int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balanceCalls++
	if m.balanceErr != nil {
		return nil, m.balanceErr
	}
	if b, ok := m.balances[addr]; ok {
		return new(big.Int).Set(b), nil
	}
	return new(big.Int), nil
}

// Network implements Provider.
func (m *Mock) Network(ctx context.Context) (Network, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.networkErr != nil {
		return Network{}, m.networkErr
	}
	return Network{ChainID: new(big.Int).Set(m.chainID), Name: ChainName(m.chainID)}, nil
}

// Signer implements Provider.
func (m *Mock) Signer(addr common.Address) Signer {
	return &mockSigner{mock: m, addr: addr}
}

// SubscribeAccounts implements Provider.
func (m *Mock) SubscribeAccounts(ch chan<- []common.Address) event.Subscription {
	return m.accountsFeed.Subscribe(ch)
}

// SubscribeChain implements Provider.
func (m *Mock) SubscribeChain(ch chan<- *big.Int) event.Subscription {
	return m.chainFeed.Subscribe(ch)
}

// Close implements Provider.
func (m *Mock) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

// RequestCalls returns how often RequestAccounts was called.
func (m *Mock) RequestCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestCalls
}

// BalanceCalls returns how often BalanceAt was called.
func (m *Mock) BalanceCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balanceCalls
}

// SendCalls returns how often SendTransaction was called.
func (m *Mock) SendCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sendCalls
}

// Transfers returns the transfers accepted so far.
func (m *Mock) Transfers() []Transfer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Transfer(nil), m.transfers...)
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

type mockSigner struct {
	mock *Mock
	addr common.Address
}

func (s *mockSigner) Address() common.Address { return s.addr }

func (s *mockSigner) SendTransaction(ctx context.Context, to common.Address, value *big.Int) (*PendingTransaction, error) {
	m := s.mock
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendCalls++
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	m.transfers = append(m.transfers, Transfer{From: s.addr, To: to, Value: new(big.Int).Set(value)})
	hash := crypto.Keccak256Hash(s.addr.Bytes(), to.Bytes(), value.Bytes(), big.NewInt(int64(len(m.transfers))).Bytes())
	return NewPendingTransaction(hash, m.wait), nil
}

func (m *Mock) wait(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.waitErr != nil {
		return nil, m.waitErr
	}
	return &types.Receipt{TxHash: hash, Status: m.status, Logs: []*types.Log{}}, nil
}
