// Package tui is the terminal front end. Each screen is a view bound to one
// presenter; the host drives presenter lifecycles as screens are pushed and
// popped, and runs UI-thread tasks delivered as uithread.TaskMsg.
package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jask/beamwallet/internal/async"
	"github.com/jask/beamwallet/internal/config"
	"github.com/jask/beamwallet/internal/eventbus"
	"github.com/jask/beamwallet/internal/presenter"
	"github.com/jask/beamwallet/internal/uithread"
	"github.com/jask/beamwallet/internal/wallet"
)

// Screen is one view in the stack.
type Screen interface {
	Title() string
	Controller() presenter.Controller
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
}

// Deps are what screens need to build their presenters.
type Deps struct {
	Bridge  *async.Bridge
	Bus     *eventbus.Bus
	Wallets *wallet.Gateway
	UI      config.UIConfig
	Log     zerolog.Logger
}

type Host struct {
	deps Deps
	loc  *time.Location
	log  zerolog.Logger

	stack ScreenStack
	nav   []func()

	status   string
	statusOK bool
	message  string

	width  int
	height int
}

var _ tea.Model = (*Host)(nil)

func New(deps Deps) (*Host, error) {
	loc, err := deps.UI.Location()
	if err != nil {
		return nil, err
	}
	if deps.UI.UnitName == "" {
		deps.UI.UnitName = "BEAM"
	}
	if deps.UI.DateFormat == "" {
		deps.UI.DateFormat = "02 Jan 2006 15:04"
	}
	return &Host{
		deps:   deps,
		loc:    loc,
		log:    deps.Log.With().Str("component", "tui").Logger(),
		width:  80,
		height: 24,
	}, nil
}

func (h *Host) Init() tea.Cmd {
	if h.stack.Len() == 0 {
		h.push(newWelcomeScreen(h))
	}
	return nil
}

func (h *Host) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m := msg.(type) {
	case uithread.TaskMsg:
		h.runTask(m)
	case tea.WindowSizeMsg:
		h.width, h.height = m.Width, m.Height
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			return h, tea.Quit
		}
		h.message = ""
		if top := h.stack.Top(); top != nil {
			cmd = top.Update(m)
		}
	default:
		if top := h.stack.Top(); top != nil {
			cmd = top.Update(m)
		}
	}
	h.navigate()
	return h, cmd
}

func (h *Host) runTask(m uithread.TaskMsg) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Msg("ui task panicked")
		}
	}()
	m.Run()
}

func (h *Host) View() string {
	var b strings.Builder
	title := "Beam Wallet"
	if top := h.stack.Top(); top != nil {
		title += " / " + top.Title()
	}
	b.WriteString(headerStyle.Width(h.width).Render(titleStyle.Render(title)))
	b.WriteString("\n\n")
	if top := h.stack.Top(); top != nil {
		b.WriteString(top.View(h.width, max(h.height-6, 1)))
	}
	b.WriteString("\n")
	switch {
	case h.message != "":
		b.WriteString(messageStyle.Render(h.message))
	case h.status != "" && h.statusOK:
		b.WriteString(statusOKStyle.Render(h.status))
	case h.status != "":
		b.WriteString(statusErrStyle.Render(h.status))
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("ctrl+c quit"))
	return b.String()
}

// Close pauses and detaches every open screen, top first.
func (h *Host) Close() {
	for h.stack.Len() > 0 {
		s := h.stack.Pop()
		s.Controller().Pause()
		s.Controller().Detach()
	}
}

// Screens is the number of open screens.
func (h *Host) Screens() int { return h.stack.Len() }

// Top is the visible screen.
func (h *Host) Top() Screen { return h.stack.Top() }

// Push opens s over the current screen once the running update finishes.
func (h *Host) Push(s Screen) { h.nav = append(h.nav, func() { h.push(s) }) }

// Pop closes the visible screen once the running update finishes. The last
// screen is never popped.
func (h *Host) Pop() { h.nav = append(h.nav, h.pop) }

// Replace closes every screen and opens s once the running update finishes.
func (h *Host) Replace(s Screen) {
	h.nav = append(h.nav, func() {
		h.Close()
		h.push(s)
	})
}

// navigate applies queued navigation. Presenters request it from inside
// their own callbacks, so it runs only after those callbacks return.
func (h *Host) navigate() {
	for len(h.nav) > 0 {
		next := h.nav[0]
		h.nav = h.nav[1:]
		next()
	}
}

func (h *Host) push(s Screen) {
	if top := h.stack.Top(); top != nil {
		top.Controller().Pause()
	}
	h.stack.Push(s)
	h.message = ""
	s.Controller().Resume()
}

func (h *Host) pop() {
	if h.stack.Len() <= 1 {
		return
	}
	s := h.stack.Pop()
	s.Controller().Pause()
	s.Controller().Detach()
	h.message = ""
	h.stack.Top().Controller().Resume()
}

func (h *Host) setStatus(s wallet.Status) {
	h.statusOK = s == wallet.StatusOK
	if h.statusOK {
		h.status = "done"
	} else {
		h.status = "something went wrong"
	}
}

func (h *Host) setMessage(text string) { h.message = text }

// chrome implements the parts of presenter.MvpView every screen shares.
type chrome struct {
	host *Host
}

func (c chrome) ShowStatus(s wallet.Status) { c.host.setStatus(s) }
func (c chrome) ShowMessage(text string)    { c.host.setMessage(text) }
func (c chrome) HideInputMethod()           {}
