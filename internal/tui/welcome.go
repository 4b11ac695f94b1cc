package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/beamwallet/internal/presenter"
	"github.com/jask/beamwallet/internal/screen/welcome"
)

type welcomeStage int

const (
	stageMain welcomeStage = iota
	stagePhrase
	stageValidation
)

type welcomeScreen struct {
	chrome
	p *welcome.Presenter

	stage   welcomeStage
	words   []string
	indices []int
	inputs  []textinput.Model
	focus   int
}

var _ welcome.View = (*welcomeScreen)(nil)

func newWelcomeScreen(h *Host) *welcomeScreen {
	s := &welcomeScreen{chrome: chrome{host: h}}
	s.p = welcome.New(h.deps.Bridge, h.deps.Wallets, h.deps.Log)
	s.p.Bind(s, s.p)
	return s
}

func (s *welcomeScreen) Title() string                    { return "Welcome" }
func (s *welcomeScreen) Controller() presenter.Controller { return s.p }

func (s *welcomeScreen) ShowWelcomeMain() {
	s.stage = stageMain
}

func (s *welcomeScreen) ShowPhrase(words []string) {
	s.words = words
	s.stage = stagePhrase
}

func (s *welcomeScreen) ShowValidation(indices []int) {
	s.indices = indices
	s.inputs = make([]textinput.Model, len(indices))
	for i, idx := range indices {
		in := textinput.New()
		in.Prompt = fmt.Sprintf("word #%-2d ", idx+1)
		in.CharLimit = 16
		s.inputs[i] = in
	}
	s.focus = 0
	if len(s.inputs) > 0 {
		s.inputs[0].Focus()
	}
	s.stage = stageValidation
}

func (s *welcomeScreen) ShowPasswords(seed string) {
	s.host.Replace(newOpenWalletScreen(s.host, seed))
}

func (s *welcomeScreen) ShowOpenWallet() {
	s.host.Push(newOpenWalletScreen(s.host, ""))
}

func (s *welcomeScreen) HideInputMethod() {
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
}

func (s *welcomeScreen) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s.updateInput(msg)
	}
	switch s.stage {
	case stageMain:
		switch km.String() {
		case "c":
			s.p.OnCreateWallet()
		case "o":
			s.p.OnOpenWallet()
		}
	case stagePhrase:
		switch km.String() {
		case "enter":
			s.p.OnPhraseWritten()
		case "esc":
			s.stage = stageMain
		}
	case stageValidation:
		switch km.String() {
		case "esc":
			s.stage = stagePhrase
		case "tab", "down":
			s.moveFocus(1)
		case "shift+tab", "up":
			s.moveFocus(-1)
		case "enter":
			answers := make(map[int]string, len(s.indices))
			for i, idx := range s.indices {
				answers[idx] = s.inputs[i].Value()
			}
			s.p.OnValidate(answers)
			s.moveFocus(0)
		default:
			return s.updateInput(msg)
		}
	}
	return nil
}

func (s *welcomeScreen) moveFocus(delta int) {
	if len(s.inputs) == 0 {
		return
	}
	s.inputs[s.focus].Blur()
	s.focus = (s.focus + delta + len(s.inputs)) % len(s.inputs)
	s.inputs[s.focus].Focus()
}

func (s *welcomeScreen) updateInput(msg tea.Msg) tea.Cmd {
	if s.stage != stageValidation || len(s.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return cmd
}

func (s *welcomeScreen) View(width, _ int) string {
	var b strings.Builder
	switch s.stage {
	case stageMain:
		b.WriteString("A private, scalable cryptocurrency wallet.\n\n")
		b.WriteString(cursorStyle.Render("c") + "  create a new wallet\n")
		b.WriteString(cursorStyle.Render("o") + "  open an existing wallet\n")
	case stagePhrase:
		b.WriteString(labelStyle.Render("Write these words down in order. They are the only way to restore the wallet.") + "\n\n")
		var grid strings.Builder
		for i, w := range s.words {
			fmt.Fprintf(&grid, "%2d. %-10s", i+1, w)
			if (i+1)%4 == 0 {
				grid.WriteString("\n")
			}
		}
		b.WriteString(boxStyle.Render(strings.TrimRight(grid.String(), "\n")))
		b.WriteString("\n\n" + mutedStyle.Render("enter  I wrote it down   esc  back"))
	case stageValidation:
		b.WriteString(labelStyle.Render("Type the requested words to confirm the phrase.") + "\n\n")
		for _, in := range s.inputs {
			b.WriteString(in.View() + "\n")
		}
		b.WriteString("\n" + mutedStyle.Render("tab  next word   enter  confirm   esc  show phrase"))
	}
	return boxStyle.Width(min(width-2, 72)).Render(b.String())
}
