package app

import (
	"fmt"
	"time"

	"github.com/byxorna/shelf/pkg/db"
	"github.com/byxorna/shelf/pkg/text"
	"github.com/byxorna/shelf/pkg/ui"
	tea "github.com/charmbracelet/bubbletea"
)

const statusMessageTimeout = time.Second * 3 // how long to show status messages like "created!"

// statusMessageTimeoutMsg expires the status message set as generation gen.
type statusMessageTimeoutMsg struct {
	gen int
}

// statusMessageType adds some context to the status message being sent.
type statusMessageType int

// Types of status messages.
const (
	normalStatusMessage statusMessageType = iota
	subtleStatusMessage
	errorStatusMessage
)

// statusMessage is an ephemeral note displayed in the UI.
type statusMessage struct {
	status  statusMessageType
	message string
}

// String returns a styled version of the status message appropriate for the
// given context.
func (s statusMessage) String() string {
	switch s.status {
	case subtleStatusMessage:
		return ui.DimGreenFg(s.message)
	case errorStatusMessage:
		return ui.RedFg(s.message)
	default:
		return ui.GreenFg(s.message)
	}
}

// statusFromError turns an operation failure into what the user sees. A
// target that vanished is a notice, everything else is an error.
func statusFromError(err error) statusMessage {
	if db.KindOf(err) == db.KindMissing {
		return statusMessage{subtleStatusMessage, fmt.Sprintf("%s %s", text.EmojiWarning, err)}
	}
	return statusMessage{errorStatusMessage, err.Error()}
}

// statusTimer expires one status message. Stopping it releases the command
// waiting on it.
type statusTimer struct {
	gen   int
	timer *time.Timer
	done  chan struct{}
}

func (t *statusTimer) stop() {
	t.timer.Stop()
	close(t.done)
}

func waitForStatusMessageTimeout(t *statusTimer) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-t.timer.C:
		case <-t.done:
		}
		return statusMessageTimeoutMsg{gen: t.gen}
	}
}

func (m *Application) setStatus(s statusMessage) tea.Cmd {
	m.status = s
	gen := 1
	if m.statusTimer != nil {
		gen = m.statusTimer.gen + 1
		m.statusTimer.stop()
	}
	m.statusTimer = &statusTimer{
		gen:   gen,
		timer: time.NewTimer(statusMessageTimeout),
		done:  make(chan struct{}),
	}
	return waitForStatusMessageTimeout(m.statusTimer)
}

// expireStatus clears the status message unless a newer one replaced it.
func (m *Application) expireStatus(msg statusMessageTimeoutMsg) {
	if m.statusTimer == nil || msg.gen != m.statusTimer.gen {
		return
	}
	m.status = statusMessage{}
}
