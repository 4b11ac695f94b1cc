package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/beamwallet/internal/presenter"
	"github.com/jask/beamwallet/internal/screen/walletscreen"
	"github.com/jask/beamwallet/internal/wallet"
)

type walletScreen struct {
	chrome
	p *walletscreen.Presenter

	ready     bool
	txs       []wallet.TxDescription
	available int64
	state     wallet.SystemState
	coins     []wallet.Utxo
	showCoins bool
	syncDone  int
	syncTotal int
	cursor    int
}

var _ walletscreen.View = (*walletScreen)(nil)

func newWalletScreen(h *Host) *walletScreen {
	s := &walletScreen{chrome: chrome{host: h}}
	s.p = walletscreen.New(h.deps.Bridge, h.deps.Bus, h.deps.Wallets, h.deps.Log)
	s.p.Bind(s, s.p)
	return s
}

func (s *walletScreen) Title() string                    { return "Wallet" }
func (s *walletScreen) Controller() presenter.Controller { return s.p }

func (s *walletScreen) Init() { s.ready = true }

func (s *walletScreen) ConfigTxHistory(txs []wallet.TxDescription) {
	s.txs = txs
	s.cursor = min(s.cursor, max(len(txs)-1, 0))
}

func (s *walletScreen) ConfigAvailable(groth int64)             { s.available = groth }
func (s *walletScreen) ConfigSystemState(st wallet.SystemState) { s.state = st }
func (s *walletScreen) ConfigUtxos(utxos []wallet.Utxo)         { s.coins = utxos }

func (s *walletScreen) RenderSyncProgress(done, total int) {
	s.syncDone, s.syncTotal = done, total
}

func (s *walletScreen) ShowTransactionDetails(tx wallet.TxDescription) {
	s.host.Push(newTxDetailsScreen(s.host, tx))
}

func (s *walletScreen) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch km.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.txs)-1 {
			s.cursor++
		}
	case "enter":
		if s.cursor < len(s.txs) {
			s.p.OnTransactionSelected(s.txs[s.cursor])
		}
	case "c":
		s.showCoins = !s.showCoins
	case "q":
		return tea.Quit
	}
	return nil
}

func (s *walletScreen) syncing() bool {
	return s.syncTotal > 0 && s.syncDone < s.syncTotal
}

func (s *walletScreen) View(width, height int) string {
	ui := s.host.deps.UI
	var b strings.Builder

	b.WriteString(labelStyle.Render("Available  "))
	b.WriteString(amountStyle.Render(FormatAmount(s.available, ui.UnitName)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Coins      "))
	fmt.Fprintf(&b, "%d unspent", s.countCoins(wallet.UtxoUnspent))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Height     "))
	fmt.Fprintf(&b, "%d  %s", s.state.Height, mutedStyle.Render(ShortID(s.state.Hash)))
	b.WriteString("\n")
	if s.syncing() {
		b.WriteString(progressStyle.Render(progressBar(s.syncDone, s.syncTotal, 30)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case s.showCoins:
		s.writeCoins(&b, max(height-8, 1))
	case len(s.txs) == 0:
		b.WriteString(mutedStyle.Render("No transactions yet."))
	default:
		rows := max(height-8, 1)
		start := 0
		if s.cursor >= rows {
			start = s.cursor - rows + 1
		}
		for i := start; i < len(s.txs) && i < start+rows; i++ {
			b.WriteString(s.row(i))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n" + mutedStyle.Render("↑/↓ move   enter details   c coins   q quit"))
	return boxStyle.Width(max(width-2, 20)).Render(b.String())
}

func (s *walletScreen) countCoins(status wallet.UtxoStatus) int {
	n := 0
	for _, c := range s.coins {
		if c.Status == status {
			n++
		}
	}
	return n
}

func (s *walletScreen) writeCoins(b *strings.Builder, rows int) {
	if len(s.coins) == 0 {
		b.WriteString(mutedStyle.Render("No coins yet."))
		return
	}
	unit := s.host.deps.UI.UnitName
	for i, c := range s.coins {
		if i == rows {
			break
		}
		fmt.Fprintf(b, "%-12s %-11s %s\n",
			mutedStyle.Render(fmt.Sprintf("#%d", c.ID)),
			c.Status,
			amountStyle.Render(FormatAmount(c.Amount, unit)))
	}
}

func (s *walletScreen) row(i int) string {
	ui := s.host.deps.UI
	tx := s.txs[i]
	marker := "  "
	if i == s.cursor {
		marker = cursorStyle.Render("> ")
	}
	amount := "+" + FormatAmount(tx.Amount, ui.UnitName)
	style := incomingStyle
	if tx.Direction() == wallet.TxSent {
		amount = "-" + FormatAmount(tx.Amount, ui.UnitName)
		style = outgoingStyle
	}
	status := txStatusColor(tx.Status == wallet.TxCompleted, tx.Status == wallet.TxFailed || tx.Status == wallet.TxCancelled).
		Render(fmt.Sprintf("%-11s", tx.Status))
	return fmt.Sprintf("%s%s  %s  %s",
		marker,
		mutedStyle.Render(FormatTime(tx.CreateTime, s.host.loc, ui.DateFormat)),
		status,
		style.Render(amount))
}

func progressBar(done, total, width int) string {
	if total <= 0 {
		return ""
	}
	filled := min(done*width/total, width)
	return fmt.Sprintf("syncing %d/%d [%s%s]", done, total, strings.Repeat("#", filled), strings.Repeat(".", width-filled))
}
