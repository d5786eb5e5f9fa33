package session

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/halvora/aa-wallet-cli/internal/domain"
)

// Card is everything the status view shows: the session itself, the
// chain it runs on, and an in-flight operation when one exists.
type Card struct {
	Session domain.Session
	Chain   domain.Chain
	Pending *domain.UserOperationRecord
}

func renderView(card Card, s styles) string {
	lines := []string{
		s.title.Render("Smart Account Session"),
		statusLine(card.Session.Status, s),
	}

	if card.Session.Status != domain.SessionActive {
		lines = append(lines, s.empty.Render("Connect to provision the smart account."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines,
		detailLine(s, "account", s.address.Render(card.Session.AccountAddress.Hex())),
		detailLine(s, "chain", s.detail.Render(chainLabel(card.Chain, card.Session.ChainID))),
		detailLine(s, "balance", s.detail.Render(balanceLabel(card))),
	)
	if card.Session.DisplayName != "" {
		lines = append(lines, detailLine(s, "signer", s.detail.Render(card.Session.DisplayName)))
	}
	if card.Pending != nil {
		lines = append(lines, detailLine(s, "pending", s.operation.Render(pendingLabel(*card.Pending))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func statusLine(status domain.SessionStatus, s styles) string {
	label := s.label.Render("status:")
	var value string
	switch status {
	case domain.SessionActive:
		value = s.active.Render(string(status))
	case domain.SessionAuthenticating:
		value = s.pending.Render(string(status))
	case domain.SessionFailed:
		value = s.failed.Render(string(status))
	default:
		value = s.inactive.Render(string(status))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", value)
}

func detailLine(s styles, key string, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.label.Render(key+":"), " ", value)
}

func chainLabel(chain domain.Chain, fallbackID uint64) string {
	if chain.Name == "" {
		return fmt.Sprintf("chain id %d", fallbackID)
	}
	return fmt.Sprintf("%s (%d)", chain.Name, chain.ID)
}

func balanceLabel(card Card) string {
	if card.Session.Balance == nil {
		return "unknown"
	}
	decimals := card.Chain.NativeDecimals
	if decimals == 0 {
		decimals = 18
	}
	symbol := card.Chain.NativeSymbol
	if symbol == "" {
		symbol = "ETH"
	}
	return domain.FormatUnits(card.Session.Balance, decimals) + " " + symbol
}

func pendingLabel(record domain.UserOperationRecord) string {
	if record.OperationHash == "" {
		return string(record.State)
	}
	return fmt.Sprintf("%s %s", record.State, record.OperationHash)
}
