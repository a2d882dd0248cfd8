package main

import (
	"context"
	"math/big"
	"strings"
	"time"

	"charm-wallet-connect/config"
	"charm-wallet-connect/provider"
	"charm-wallet-connect/rpc"
	"charm-wallet-connect/session"
	"charm-wallet-connect/status"
	"charm-wallet-connect/styles"
	"charm-wallet-connect/views/send"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
)

// -------------------- MODEL --------------------

type page int

const (
	pageWallet page = iota
	pageProviders
)

// dialFunc opens a provider for a configured endpoint URL
type dialFunc func(url string) (provider.Provider, error)

// options are the resolved startup settings (flags > env > config file)
type options struct {
	cfg          config.Config
	configPath   string
	providerURL  string
	noticeTTL    time.Duration
	pollInterval time.Duration
	logEnabled   bool
}

// providerFields backs the add-provider form; huh keeps pointers into it
type providerFields struct {
	name string
	url  string
}

// model is the wallet session controller following The Elm Architecture
type model struct {
	w, h int

	activePage page

	// provider endpoint
	cfg         config.Config
	configPath  string
	providerURL string
	dial        dialFunc

	// session
	session       session.Session
	connecting    bool
	connectSeq    uint64 // bumps on every attempt; stale results are dropped
	cancelConnect context.CancelFunc
	accountsCh    chan []common.Address
	accountsSub   event.Subscription
	chainCh       chan *big.Int
	chainSub      event.Subscription

	// display values
	network        provider.Network
	balance        *big.Int
	balanceLoading bool
	balanceAt      time.Time
	showQR         bool

	// send form
	showSendForm   bool
	recipientInput textinput.Model
	amountInput    textinput.Model
	focusedInput   int
	sending        bool

	// status banner + spinner
	banner status.Banner
	spin   spinner.Model

	// provider settings
	selectedProvider int
	providerForm     *huh.Form
	formFields       *providerFields

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *strings.Builder
	logViewport viewport.Model

	// set once a chain switch asked for a fresh environment
	reloading bool
	reloads   int
}

// -------------------- INIT --------------------

// newModel creates a disconnected controller from the resolved options
func newModel(opts options) model {
	recipient, amount := send.NewInputs()

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	vp := viewport.New(0, 8)
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	buf := &strings.Builder{}
	logger := log.NewWithOptions(buf, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           log.DebugLevel,
	})

	providerURL := opts.providerURL
	if providerURL == "" {
		providerURL = opts.cfg.ActiveURL()
	}

	return model{
		activePage:     pageWallet,
		cfg:            opts.cfg,
		configPath:     opts.configPath,
		providerURL:    providerURL,
		dial:           rpcDial(opts.pollInterval),
		recipientInput: recipient,
		amountInput:    amount,
		banner:         status.NewBanner(opts.noticeTTL),
		spin:           sp,
		formFields:     &providerFields{},
		logEnabled:     opts.logEnabled,
		logger:         logger,
		logBuffer:      buf,
		logViewport:    vp,
	}
}

// rpcDial connects to wallet endpoints over JSON-RPC
func rpcDial(pollInterval time.Duration) dialFunc {
	return func(url string) (provider.Provider, error) {
		res := rpc.Connect(url)
		if res.Error != nil {
			return nil, res.Error
		}
		if pollInterval > 0 {
			res.Client.PollInterval = pollInterval
		}
		return res.Client, nil
	}
}

// Init implements tea.Model interface and returns initial commands
func (m model) Init() tea.Cmd {
	return m.spin.Tick
}

// shutdown releases everything the controller still holds
func (m *model) shutdown() {
	if m.cancelConnect != nil {
		m.cancelConnect()
		m.cancelConnect = nil
	}
	m.session.Close()
}
