package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"

	"charm-wallet-connect/config"
	"charm-wallet-connect/helpers"
	"charm-wallet-connect/provider"
	"charm-wallet-connect/status"
	"charm-wallet-connect/views/send"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- UPDATE --------------------

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// a chain switch ends this environment; nothing runs after it
	if m.reloading {
		return m, nil
	}

	if m.providerForm != nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, m.updateProviderForm(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		m.logViewport.Width = msg.Width - 4
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case status.ExpiredMsg:
		m.banner.Update(msg)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case walletConnectedMsg:
		return m, m.handleConnected(msg)

	case balanceLoadedMsg:
		return m, m.handleBalance(msg)

	case accountsChangedMsg:
		if !m.session.Current(msg.session) {
			return m, nil
		}
		cmd := m.handleAccountsChanged(msg.accounts)
		if m.session.Current(msg.session) {
			cmd = tea.Batch(cmd, waitForAccounts(msg.session, m.accountsCh, m.accountsSub))
		}
		return m, cmd

	case chainChangedMsg:
		if !m.session.Current(msg.session) {
			return m, nil
		}
		return m, m.handleChainChanged(msg.chainID)

	case transferSubmittedMsg:
		return m, m.handleSubmitted(msg)

	case transferConfirmedMsg:
		return m, m.handleConfirmed(msg)

	case clipboardCopiedMsg:
		if msg.err != nil {
			m.addLog("error", fmt.Sprintf("clipboard: %v", msg.err))
			return m, m.notify(status.Failure(status.Copied, "Copy failed", msg.err))
		}
		return m, m.notify(status.Notice{Kind: status.Copied, Severity: status.Success, Message: "Address copied to clipboard"})
	}

	// huh advances fields through its own messages
	if m.providerForm != nil {
		return m, m.updateProviderForm(msg)
	}
	return m, nil
}

// -------------------- KEYS --------------------

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return tea.Quit
	}

	if m.showSendForm {
		return m.handleSendFormKey(msg)
	}

	if key == "l" {
		m.logEnabled = !m.logEnabled
		m.updateLogViewport()
		return nil
	}

	if m.activePage == pageProviders {
		return m.handleProvidersKey(key)
	}

	switch {
	case m.connecting:
		if key == "esc" {
			return m.cancelConnecting()
		}
	case m.session.Connected():
		switch key {
		case "r":
			return m.refreshBalance()
		case "s":
			return m.openSendForm()
		case "d":
			return m.disconnect()
		case "c":
			return copyToClipboard(m.session.Address().Hex())
		case "v":
			m.showQR = !m.showQR
		case "p":
			m.activePage = pageProviders
		case "q", "esc":
			return tea.Quit
		}
	default:
		switch key {
		case "enter", "C":
			return m.connect()
		case "p":
			m.activePage = pageProviders
		case "q", "esc":
			return tea.Quit
		}
	}
	return nil
}

func (m *model) handleSendFormKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.hideSendForm()
		return nil
	case "tab", "shift+tab", "up", "down":
		m.focusInput(1 - m.focusedInput)
		return nil
	case "enter":
		return m.submitTransfer()
	}

	var cmd tea.Cmd
	if m.focusedInput == send.FieldRecipient {
		m.recipientInput, cmd = m.recipientInput.Update(msg)
	} else {
		m.amountInput, cmd = m.amountInput.Update(msg)
	}
	return cmd
}

// -------------------- CONNECT --------------------

// connect asks the configured provider for account access
func (m *model) connect() tea.Cmd {
	if m.connecting || m.session.Connected() {
		return nil
	}
	if m.providerURL == "" {
		m.addLog("error", "connect: no provider endpoint configured")
		return m.notify(status.Notice{
			Kind:     status.ProviderUnavailable,
			Severity: status.Error,
			Message:  "No wallet provider found. Start a wallet that exposes an RPC endpoint (Frame, geth, anvil) and set WALLET_PROVIDER_URL or add it under providers (p)",
		})
	}

	m.connecting = true
	m.connectSeq++
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelConnect = cancel
	m.addLog("info", fmt.Sprintf("Requesting accounts from %s", m.providerURL))

	return tea.Batch(
		m.notify(status.Notice{Kind: status.Connecting, Severity: status.Info, Message: "Connecting to wallet..."}),
		connectWallet(ctx, m.connectSeq, m.providerURL, m.dial),
	)
}

// cancelConnecting abandons a pending account request
func (m *model) cancelConnecting() tea.Cmd {
	if !m.connecting {
		return nil
	}
	m.cancelConnect()
	m.cancelConnect = nil
	m.connecting = false
	m.connectSeq++
	m.addLog("warning", "connect: cancelled by user")
	return m.notify(status.Failure(status.ConnectionFailed, "Failed to connect wallet", context.Canceled))
}

func (m *model) handleConnected(msg walletConnectedMsg) tea.Cmd {
	if msg.attempt != m.connectSeq || !m.connecting {
		// the attempt was cancelled; release what it opened
		if msg.provider != nil {
			msg.provider.Close()
		}
		return nil
	}
	m.connecting = false
	if m.cancelConnect != nil {
		m.cancelConnect()
		m.cancelConnect = nil
	}

	if msg.err != nil {
		m.addLog("error", fmt.Sprintf("connect: %v", msg.err))
		if errors.Is(msg.err, provider.ErrNoProvider) {
			return m.notify(status.Failure(status.ProviderUnavailable, "Wallet provider unavailable", msg.err))
		}
		return m.notify(status.Failure(status.ConnectionFailed, "Failed to connect wallet", msg.err))
	}

	p := msg.provider
	id := m.session.Open(p, msg.accounts[0])
	m.network = msg.network
	m.balance = nil
	m.showQR = false

	m.accountsCh = make(chan []common.Address, 1)
	m.chainCh = make(chan *big.Int, 1)
	m.accountsSub = m.session.Track(p.SubscribeAccounts(m.accountsCh))
	m.chainSub = m.session.Track(p.SubscribeChain(m.chainCh))

	m.addLog("success", fmt.Sprintf("Connected %s on %s", m.session.Address().Hex(), m.networkName()))

	return tea.Batch(
		m.notify(status.Notice{Kind: status.Connected, Severity: status.Success, Message: "Wallet connected successfully!"}),
		m.refreshBalance(),
		waitForAccounts(id, m.accountsCh, m.accountsSub),
		waitForChain(id, m.chainCh, m.chainSub),
	)
}

// networkName is the display name of the connected network
func (m *model) networkName() string {
	return helpers.CapitalizeFirst(m.network.Name)
}

// -------------------- BALANCE --------------------

// refreshBalance reloads the balance of the active account
func (m *model) refreshBalance() tea.Cmd {
	if !m.session.Connected() {
		return nil
	}
	m.balanceLoading = true
	return loadBalance(m.session.Context(), m.session.ID(), m.session.Provider(), m.session.Address())
}

func (m *model) handleBalance(msg balanceLoadedMsg) tea.Cmd {
	if !m.session.Current(msg.session) || msg.address != m.session.Address() {
		return nil
	}
	m.balanceLoading = false
	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return nil
		}
		m.addLog("error", fmt.Sprintf("balance: %v", msg.err))
		return m.notify(status.Notice{Kind: status.BalanceFetchFailed, Severity: status.Error, Message: "Failed to fetch balance"})
	}
	m.balance = msg.wei
	m.balanceAt = time.Now()
	m.addLog("debug", fmt.Sprintf("Balance of %s: %s", helpers.FormatAddress(msg.address.Hex()), helpers.FormatBalance(msg.wei)))
	return nil
}

// -------------------- PROVIDER EVENTS --------------------

// handleAccountsChanged adopts the wallet's new first account, or tears the
// session down when the wallet no longer exposes any.
func (m *model) handleAccountsChanged(accounts []common.Address) tea.Cmd {
	if len(accounts) == 0 {
		m.addLog("warning", "accountsChanged: wallet exposes no accounts")
		return m.disconnect()
	}
	if m.session.ReplaceAccount(accounts[0]) {
		m.addLog("info", fmt.Sprintf("accountsChanged: active account is now %s", accounts[0].Hex()))
		m.balance = nil
	}
	return m.refreshBalance()
}

// handleChainChanged requests a fresh environment. Per-chain state is never
// reconciled in place.
func (m *model) handleChainChanged(chainID *big.Int) tea.Cmd {
	m.addLog("warning", fmt.Sprintf("chainChanged: %v, reloading", chainID))
	m.reloading = true
	m.reloads++
	return tea.Quit
}

// -------------------- DISCONNECT --------------------

// disconnect drops the local session. The wallet keeps its authorisation.
func (m *model) disconnect() tea.Cmd {
	m.session.Close()
	m.accountsCh, m.accountsSub = nil, nil
	m.chainCh, m.chainSub = nil, nil
	m.network = provider.Network{}
	m.balance = nil
	m.balanceLoading = false
	m.balanceAt = time.Time{}
	m.showQR = false
	m.sending = false
	m.hideSendForm()
	m.addLog("info", "Wallet disconnected")
	return m.notify(status.Notice{Kind: status.Disconnected, Severity: status.Info, Message: "Wallet disconnected"})
}

// -------------------- SEND --------------------

func (m *model) openSendForm() tea.Cmd {
	if !m.session.Connected() {
		return nil
	}
	m.showSendForm = true
	m.focusInput(send.FieldRecipient)
	return nil
}

// hideSendForm closes the form and always clears both inputs
func (m *model) hideSendForm() {
	m.showSendForm = false
	m.recipientInput.Reset()
	m.amountInput.Reset()
	m.recipientInput.Blur()
	m.amountInput.Blur()
}

func (m *model) focusInput(field int) {
	m.focusedInput = field
	if field == send.FieldRecipient {
		m.recipientInput.Focus()
		m.amountInput.Blur()
	} else {
		m.amountInput.Focus()
		m.recipientInput.Blur()
	}
}

// submitTransfer validates the form and hands the transfer to the wallet
func (m *model) submitTransfer() tea.Cmd {
	signer := m.session.Signer()
	if signer == nil {
		return nil
	}
	if m.sending {
		return m.notify(status.Notice{Kind: status.TransferInFlight, Severity: status.Info, Message: "A transaction is already pending"})
	}

	recipient := strings.TrimSpace(m.recipientInput.Value())
	amount := strings.TrimSpace(m.amountInput.Value())
	if recipient == "" || amount == "" {
		return m.notify(status.Notice{Kind: status.MissingFields, Severity: status.Error, Message: "Please fill in all fields"})
	}
	if !helpers.IsValidAddress(recipient) {
		return m.notify(status.Notice{Kind: status.InvalidRecipient, Severity: status.Error, Message: "Invalid recipient address"})
	}
	wei, err := helpers.ParseEther(amount)
	if err != nil {
		m.addLog("error", fmt.Sprintf("send: %v", err))
		return m.notify(status.Failure(status.TransactionFailed, "Transaction failed", err))
	}

	to := common.HexToAddress(recipient)
	m.sending = true
	m.addLog("info", fmt.Sprintf("Sending %s ETH to %s", amount, to.Hex()))
	return tea.Batch(
		m.notify(status.Notice{Kind: status.TransferSending, Severity: status.Info, Message: "Sending transaction..."}),
		sendTransfer(m.session.Context(), m.session.ID(), signer, to, wei),
	)
}

func (m *model) handleSubmitted(msg transferSubmittedMsg) tea.Cmd {
	if !m.session.Current(msg.session) {
		return nil
	}
	if msg.err != nil {
		m.sending = false
		m.addLog("error", fmt.Sprintf("send: %v", msg.err))
		return m.notify(status.Failure(status.TransactionFailed, "Transaction failed", msg.err))
	}
	m.addLog("info", fmt.Sprintf("Submitted %s", msg.pending.Hash().Hex()))
	return tea.Batch(
		m.notify(status.Notice{Kind: status.TransferSubmitted, Severity: status.Info, Message: "Transaction submitted! Waiting for confirmation..."}),
		waitConfirmation(m.session.Context(), msg.session, msg.pending),
	)
}

func (m *model) handleConfirmed(msg transferConfirmedMsg) tea.Cmd {
	if !m.session.Current(msg.session) {
		return nil
	}
	m.sending = false
	if msg.err != nil {
		m.addLog("error", fmt.Sprintf("confirm %s: %v", msg.hash.Hex(), msg.err))
		return m.notify(status.Failure(status.TransactionFailed, "Transaction failed", msg.err))
	}
	m.addLog("success", fmt.Sprintf("Confirmed %s", msg.hash.Hex()))
	m.hideSendForm()
	return tea.Batch(
		m.notify(status.Notice{
			Kind:     status.TransferConfirmed,
			Severity: status.Success,
			Message:  "Transaction confirmed! Hash: " + helpers.ShortenHash(msg.hash.Hex()),
		}),
		m.refreshBalance(),
	)
}

// -------------------- PROVIDER SETTINGS --------------------

func (m *model) handleProvidersKey(key string) tea.Cmd {
	switch key {
	case "up", "k":
		if m.selectedProvider > 0 {
			m.selectedProvider--
		}
	case "down", "j":
		if m.selectedProvider < len(m.cfg.Providers)-1 {
			m.selectedProvider++
		}
	case "enter", " ":
		return m.activateProvider(m.selectedProvider)
	case "a":
		m.createAddProviderForm()
	case "d":
		return m.removeProvider(m.selectedProvider)
	case "esc", "w":
		m.activePage = pageWallet
	case "q":
		return tea.Quit
	}
	return nil
}

// activateProvider switches to another wallet endpoint. A live session
// belongs to the old endpoint, so it is dropped first.
func (m *model) activateProvider(idx int) tea.Cmd {
	if !m.cfg.Activate(idx) {
		return nil
	}
	var cmds []tea.Cmd
	endpoint := m.cfg.Providers[idx]
	if m.session.Connected() && endpoint.URL != m.providerURL {
		cmds = append(cmds, m.disconnect())
	}
	m.providerURL = endpoint.URL
	m.addLog("info", fmt.Sprintf("Active provider: %s (%s)", endpoint.Name, endpoint.URL))
	cmds = append(cmds, m.saveConfig("Active provider: "+endpoint.Name))
	m.activePage = pageWallet
	return tea.Batch(cmds...)
}

func (m *model) removeProvider(idx int) tea.Cmd {
	if idx < 0 || idx >= len(m.cfg.Providers) {
		return nil
	}
	removed := m.cfg.Providers[idx]
	m.cfg.Remove(idx)

	var cmds []tea.Cmd
	if removed.URL == m.providerURL {
		// the session talks to the removed endpoint
		if m.session.Connected() || m.connecting {
			cmds = append(cmds, m.cancelConnecting(), m.disconnect())
		}
		m.providerURL = ""
	}
	if m.selectedProvider >= len(m.cfg.Providers) {
		m.selectedProvider = max(0, len(m.cfg.Providers)-1)
	}
	m.addLog("info", fmt.Sprintf("Removed provider %s", removed.Name))
	cmds = append(cmds, m.saveConfig("Removed provider "+removed.Name))
	return tea.Batch(cmds...)
}

func (m *model) createAddProviderForm() {
	m.formFields.name = ""
	m.formFields.url = ""

	m.providerForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Provider Name").
				Description("A friendly name for this wallet endpoint").
				Value(&m.formFields.name).
				Placeholder("Frame").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Provider URL").
				Description("HTTP, WebSocket or IPC endpoint of your wallet").
				Value(&m.formFields.url).
				Placeholder("ws://127.0.0.1:1248").
				Validate(validateProviderURL),
		),
	).WithTheme(huh.ThemeCatppuccin())

	m.providerForm.Init()
}

// validateProviderURL accepts http(s), ws(s) URLs and absolute IPC paths
func validateProviderURL(s string) error {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "/") {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL")
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
		if u.Host == "" {
			return fmt.Errorf("missing host")
		}
		return nil
	}
	return fmt.Errorf("use http://, https://, ws://, wss:// or an IPC path")
}

func (m *model) updateProviderForm(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.providerForm = nil
		return nil
	}

	form, cmd := m.providerForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.providerForm = f
	}

	switch m.providerForm.State {
	case huh.StateCompleted:
		endpoint := config.ProviderEndpoint{
			Name: strings.TrimSpace(m.formFields.name),
			URL:  strings.TrimSpace(m.formFields.url),
		}
		m.cfg.Providers = append(m.cfg.Providers, endpoint)
		m.providerForm = nil
		m.addLog("success", fmt.Sprintf("Added provider %s (%s)", endpoint.Name, endpoint.URL))
		if m.providerURL == "" {
			return m.activateProvider(len(m.cfg.Providers) - 1)
		}
		return m.saveConfig("Added provider " + endpoint.Name)
	case huh.StateAborted:
		m.providerForm = nil
		return nil
	}
	return cmd
}

func (m *model) saveConfig(message string) tea.Cmd {
	if m.configPath == "" {
		return nil
	}
	if err := config.Save(m.configPath, m.cfg); err != nil {
		m.addLog("error", err.Error())
		return m.notify(status.Failure(status.SettingsSaved, "Could not save settings", err))
	}
	return m.notify(status.Notice{Kind: status.SettingsSaved, Severity: status.Success, Message: message})
}

// -------------------- NOTICES + LOG --------------------

// notify shows a notice in the status banner
func (m *model) notify(n status.Notice) tea.Cmd {
	return m.banner.Show(n)
}

// addLog adds a log entry with timestamp and type
func (m *model) addLog(logType, message string) {
	if m.logger == nil {
		return
	}

	switch logType {
	case "info":
		m.logger.Info(message)
	case "success":
		m.logger.Info("✓", "msg", message)
	case "error":
		m.logger.Error(message)
	case "warning":
		m.logger.Warn(message)
	case "debug":
		m.logger.Debug(message)
	default:
		m.logger.Print(message)
	}

	m.updateLogViewport()
}

// updateLogViewport refreshes the viewport content with log output
func (m *model) updateLogViewport() {
	if m.logBuffer == nil {
		return
	}
	m.logViewport.SetContent(m.logBuffer.String())
	m.logViewport.GotoBottom()
}
