package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/beamwallet/internal/presenter"
	"github.com/jask/beamwallet/internal/screen/openwallet"
)

type openWalletScreen struct {
	chrome
	p *openwallet.Presenter

	heading string
	input   textinput.Model
}

var _ openwallet.View = (*openWalletScreen)(nil)

func newOpenWalletScreen(h *Host, seed string) *openWalletScreen {
	in := textinput.New()
	in.Prompt = "password: "
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '•'
	in.Focus()

	s := &openWalletScreen{chrome: chrome{host: h}, input: in, heading: "Checking wallet..."}
	s.p = openwallet.New(h.deps.Bridge, h.deps.Wallets, seed, h.deps.Log)
	s.p.Bind(s, s.p)
	return s
}

func (s *openWalletScreen) Title() string                    { return "Password" }
func (s *openWalletScreen) Controller() presenter.Controller { return s.p }

func (s *openWalletScreen) ConfigForCreatingWallet() {
	s.heading = "Create a password for the new wallet"
}

func (s *openWalletScreen) ConfigForOpeningWallet() {
	s.heading = "Enter the wallet password"
}

func (s *openWalletScreen) ShowWalletScreen() {
	s.host.Replace(newWalletScreen(s.host))
}

func (s *openWalletScreen) HideInputMethod() {
	s.input.Blur()
}

func (s *openWalletScreen) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			s.p.OnProceedPressed(s.input.Value())
			return nil
		case "esc":
			s.host.Pop()
			return nil
		}
		if !s.input.Focused() {
			s.input.Focus()
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *openWalletScreen) View(width, _ int) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(s.heading) + "\n\n")
	b.WriteString(s.input.View() + "\n\n")
	b.WriteString(mutedStyle.Render("enter  continue   esc  back"))
	return boxStyle.Width(min(width-2, 72)).Render(b.String())
}
