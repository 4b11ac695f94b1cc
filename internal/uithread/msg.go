package uithread

// TaskMsg carries a queued task into a bubbletea program. The program's
// Update must call Run when it receives one.
type TaskMsg struct {
	fn func()
}

// Run executes the task on the calling goroutine, which is the program loop.
func (m TaskMsg) Run() {
	if m.fn != nil {
		m.fn()
	}
}
