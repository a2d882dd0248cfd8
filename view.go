package main

import (
	"strings"

	"charm-wallet-connect/helpers"
	"charm-wallet-connect/styles"
	logview "charm-wallet-connect/views/log"
	"charm-wallet-connect/views/send"
	"charm-wallet-connect/views/settings"
	"charm-wallet-connect/views/wallet"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- VIEW --------------------

func (m *model) globalHeader() string {
	availableWidth := max(0, m.w-8) // Account for panel padding

	// Connected account on the left
	var addrDisplay string
	if m.session.Connected() {
		addrDisplay = lipgloss.NewStyle().
			Foreground(cAccent2).
			Bold(true).
			Render("Account: " + helpers.FadeString(helpers.FormatAddress(m.session.Address().Hex()), "#F25D94", "#EDFF82"))
	} else {
		addrDisplay = lipgloss.NewStyle().
			Foreground(cMuted).
			Render("Account: Not connected")
	}

	// Provider status on the right
	var statusIcon, statusText string
	statusColor := styles.CError

	switch {
	case m.session.Connected():
		statusIcon = "●"
		statusColor = cAccent
		statusText = m.networkName()
	case m.providerURL == "":
		statusIcon = "○"
		statusText = "No provider"
	case m.connecting:
		statusIcon = "○"
		statusColor = cWarn
		statusText = "Connecting..."
	default:
		statusIcon = "○"
		statusText = "Disconnected"
	}

	providerDisplay := lipgloss.NewStyle().
		Foreground(statusColor).
		Bold(true).
		Render(statusIcon + " " + statusText)

	titleText := lipgloss.NewStyle().
		Foreground(cAccent).
		Bold(true).
		Render(helpers.FadeString("wallet connect", "#7EE787", "#82CFFD"))

	addrWidth := lipgloss.Width(addrDisplay)
	providerWidth := lipgloss.Width(providerDisplay)
	titleWidth := lipgloss.Width(titleText)
	totalOtherWidth := addrWidth + providerWidth + titleWidth

	var headerLine string
	if totalOtherWidth+4 > availableWidth {
		// Not enough space, stack vertically
		headerLine = addrDisplay + "\n" + titleText + "\n" + providerDisplay
	} else {
		// Three-column layout: Account | Title (centered) | Provider
		remainingSpace := availableWidth - totalOtherWidth
		leftPadding := remainingSpace / 2
		rightPadding := remainingSpace - leftPadding

		headerLine = addrDisplay +
			strings.Repeat(" ", max(1, leftPadding)) +
			titleText +
			strings.Repeat(" ", max(1, rightPadding)) +
			providerDisplay
	}

	separator := lipgloss.NewStyle().
		Foreground(cBorder).
		Render(strings.Repeat("─", availableWidth))

	return headerLine + "\n" + separator
}

// walletPanel collects what the wallet view draws
func (m *model) walletPanel() wallet.Panel {
	p := wallet.Panel{
		Connected:   m.session.Connected(),
		Connecting:  m.connecting,
		ProviderURL: m.providerURL,
		ShowQR:      m.showQR,
		SendOpen:    m.showSendForm,
		Sending:     m.sending,
		Spinner:     m.spin.View(),
	}
	if !p.Connected {
		return p
	}

	p.Address = m.session.Address().Hex()
	p.Network = m.networkName()
	p.Loading = m.balanceLoading && m.balance == nil
	p.UpdatedAt = helpers.LoadedAt(m.balanceAt, m.balanceLoading)
	if m.balance != nil {
		p.Balance = helpers.FormatBalance(m.balance)
	}
	return p
}

func (m *model) View() string {
	headerPanel := panelStyle.Width(max(0, m.w-2)).Render(m.globalHeader())

	var pageContent, nav string

	switch m.activePage {
	case pageProviders:
		if m.providerForm != nil {
			formBox := panelStyle.
				BorderForeground(cAccent2).
				Width(max(0, m.w-2)).
				Render(titleStyle.Render("Add Provider") + "\n\n" + m.providerForm.View())
			pageContent = formBox
		} else {
			pageContent = panelStyle.Width(max(0, m.w-2)).Render(settings.Render(m.cfg.Providers, m.selectedProvider))
		}
		nav = settings.Nav(max(0, m.w-2), m.providerForm != nil)

	default:
		p := m.walletPanel()
		content := wallet.Render(p)
		if m.showSendForm {
			content += "\n\n" + panelStyle.
				BorderForeground(cAccent2).
				Render(send.Render(m.recipientInput, m.amountInput, m.sending, m.spin.View()))
		}
		pageContent = panelStyle.Width(max(0, m.w-2)).Render(content)
		nav = wallet.Nav(max(0, m.w-2), p)
	}

	sections := []string{headerPanel, pageContent}
	if banner := m.banner.View(max(0, m.w-2)); banner != "" {
		sections = append(sections, banner)
	}
	if m.logEnabled {
		m.logViewport.Width = max(0, m.w-6)
		m.logViewport.Height = logview.PanelHeight(m.h)
		sections = append(sections, logview.Render(max(0, m.w-2), m.logViewport))
	}
	sections = append(sections, nav)

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
