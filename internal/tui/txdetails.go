package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/beamwallet/internal/presenter"
	"github.com/jask/beamwallet/internal/screen/txdetails"
	"github.com/jask/beamwallet/internal/wallet"
)

type txDetailsScreen struct {
	chrome
	p  *txdetails.Presenter
	tx wallet.TxDescription
}

var _ txdetails.View = (*txDetailsScreen)(nil)

func newTxDetailsScreen(h *Host, tx wallet.TxDescription) *txDetailsScreen {
	s := &txDetailsScreen{chrome: chrome{host: h}}
	s.p = txdetails.New(h.deps.Bridge, h.deps.Bus, h.deps.Wallets, tx, h.deps.Log)
	s.p.Bind(s, s.p)
	return s
}

func (s *txDetailsScreen) Title() string                    { return "Transaction" }
func (s *txDetailsScreen) Controller() presenter.Controller { return s.p }

func (s *txDetailsScreen) ConfigTransaction(tx wallet.TxDescription) { s.tx = tx }

func (s *txDetailsScreen) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc", "backspace", "q":
			s.host.Pop()
		}
	}
	return nil
}

func (s *txDetailsScreen) View(width, _ int) string {
	ui := s.host.deps.UI
	tx := s.tx
	var b strings.Builder
	field := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-10s", label)), value)
	}
	field("id", ShortID(tx.ID))
	field("direction", tx.Direction().String())
	field("status", tx.Status.String())
	field("amount", amountStyle.Render(FormatAmount(tx.Amount, ui.UnitName)))
	field("fee", FormatAmount(tx.Fee, ui.UnitName))
	if tx.Change != 0 {
		field("change", FormatAmount(tx.Change, ui.UnitName))
	}
	field("height", fmt.Sprint(tx.MinHeight))
	field("peer", ShortID(tx.PeerID))
	field("created", FormatTime(tx.CreateTime, s.host.loc, ui.DateFormat))
	field("modified", FormatTime(tx.ModifyTime, s.host.loc, ui.DateFormat))
	if tx.HasMessage() {
		field("comment", string(tx.Message))
	}
	b.WriteString("\n" + mutedStyle.Render("esc  back"))
	return boxStyle.Width(min(width-2, 72)).Render(b.String())
}
