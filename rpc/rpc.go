package rpc

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"charm-wallet-connect/provider"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/event"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

const (
	defaultDialTimeout  = 8 * time.Second
	defaultPollInterval = 2 * time.Second
)

// Client wraps a JSON-RPC connection to a wallet provider. The wallet
// signs; this client only forwards account and transaction requests.
type Client struct {
	*ethclient.Client
	raw          *gethrpc.Client
	URL          string
	PollInterval time.Duration
}

var _ provider.Provider = (*Client)(nil)

// ConnectResult holds the result of an RPC connection attempt
type ConnectResult struct {
	Client *Client
	Error  error
}

// Connect attempts to connect to a wallet provider endpoint
func Connect(url string) ConnectResult {
	return ConnectWithTimeout(url, defaultDialTimeout)
}

// ConnectWithTimeout attempts to connect with a custom timeout
func ConnectWithTimeout(url string, timeout time.Duration) ConnectResult {
	if url == "" {
		return ConnectResult{Error: provider.ErrNoProvider}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	raw, err := gethrpc.DialContext(ctx, url)
	if err != nil {
		return ConnectResult{Error: err}
	}

	// http endpoints dial lazily; make sure something answers
	client := NewClient(raw, url)
	if _, err := client.ChainID(ctx); err != nil {
		raw.Close()
		return ConnectResult{Error: fmt.Errorf("endpoint %s not responding: %w", url, err)}
	}
	return ConnectResult{Client: client}
}

// NewClient wraps an already dialled go-ethereum RPC client.
func NewClient(raw *gethrpc.Client, url string) *Client {
	return &Client{
		Client:       ethclient.NewClient(raw),
		raw:          raw,
		URL:          url,
		PollInterval: defaultPollInterval,
	}
}

// RequestAccounts calls eth_requestAccounts, which makes the wallet prompt
// the user. There is no timeout: the call lasts as long as the prompt.
func (c *Client) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := c.raw.CallContext(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Accounts calls eth_accounts.
func (c *Client) Accounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := c.raw.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

// BalanceAt returns the latest balance of addr in wei.
func (c *Client) BalanceAt(ctx context.Context, addr common.Address) (*big.Int, error) {
	return c.Client.BalanceAt(ctx, addr, nil)
}

// Network reads the chain id and maps it to a network name.
func (c *Client) Network(ctx context.Context) (provider.Network, error) {
	id, err := c.ChainID(ctx)
	if err != nil {
		return provider.Network{}, err
	}
	return provider.Network{ChainID: id, Name: provider.ChainName(id)}, nil
}

// Signer returns a signer that asks the wallet to send from addr.
func (c *Client) Signer(addr common.Address) provider.Signer {
	return &walletSigner{client: c, from: addr}
}

// SubscribeAccounts polls eth_accounts and reports changes.
func (c *Client) SubscribeAccounts(ch chan<- []common.Address) event.Subscription {
	return pollSubscription(c.PollInterval, c.Accounts, sameAccounts, ch)
}

// SubscribeChain polls eth_chainId and reports changes.
func (c *Client) SubscribeChain(ch chan<- *big.Int) event.Subscription {
	return pollSubscription(c.PollInterval, c.ChainID, sameChain, ch)
}

// Close closes the underlying connection.
func (c *Client) Close() {
	c.raw.Close()
}

// pollSubscription runs fetch every interval and delivers the result on ch
// whenever it differs from the previous one. The first result only primes
// the comparison. Fetch errors are skipped; the wallet may be locked.
func pollSubscription[T any](interval time.Duration, fetch func(context.Context) (T, error), same func(a, b T) bool, ch chan<- T) event.Subscription {
	return event.NewSubscription(func(quit <-chan struct{}) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			<-quit
			cancel()
		}()

		var last T
		primed := false
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			cur, err := fetch(ctx)
			if err == nil {
				if primed && !same(last, cur) {
					select {
					case ch <- cur:
					case <-quit:
						return nil
					}
				}
				last, primed = cur, true
			}
			select {
			case <-ticker.C:
			case <-quit:
				return nil
			}
		}
	})
}

func sameAccounts(a, b []common.Address) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameChain(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}

// TransactionArgs is the eth_sendTransaction parameter object. Gas, fees
// and nonce are left to the wallet.
type TransactionArgs struct {
	From  common.Address  `json:"from"`
	To    *common.Address `json:"to"`
	Value *hexutil.Big    `json:"value"`
}

type walletSigner struct {
	client *Client
	from   common.Address
}

func (s *walletSigner) Address() common.Address { return s.from }

func (s *walletSigner) SendTransaction(ctx context.Context, to common.Address, value *big.Int) (*provider.PendingTransaction, error) {
	args := TransactionArgs{
		From:  s.from,
		To:    &to,
		Value: (*hexutil.Big)(value),
	}
	var hash common.Hash
	if err := s.client.raw.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		return nil, err
	}
	return provider.NewPendingTransaction(hash, s.client.waitMined), nil
}

// waitMined polls for the receipt of hash until it shows up.
func (c *Client) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(c.PollInterval)
	defer ticker.Stop()
	for {
		receipt, err := c.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("failed to fetch receipt %s: %w", hash.Hex(), err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
