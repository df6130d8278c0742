package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"alertscope/internal/archive"
)

// NavigateMsg asks the browser to switch to another route. Pages emit it for
// identifier links (e.g. alert -> parent object).
type NavigateMsg struct {
	Route Route
}

func navigateTo(r Route) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Route: r} }
}

// StatusMsg is a transient line for the browser footer.
type StatusMsg struct {
	Text  string
	IsErr bool
}

// Notifier delivers messages into the running program from outside the
// Update loop (debounced callbacks fire on timer goroutines). It is bound to
// tea.Program.Send after the program is constructed; sends before binding
// are dropped.
type Notifier struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

// Bind attaches the program's Send function.
func (n *Notifier) Bind(send func(tea.Msg)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.send = send
}

// Send delivers msg to the program, if bound.
func (n *Notifier) Send(msg tea.Msg) {
	n.mu.RLock()
	send := n.send
	n.mu.RUnlock()
	if send != nil {
		send(msg)
	}
}

// renderFetchError renders a failed fetch with its kind visible, so network
// trouble, archive errors, and decode bugs are distinguishable at a glance.
func renderFetchError(styles Styles, err error) string {
	reqErr, ok := archive.AsRequestError(err)
	if !ok {
		return styles.Error.Render("error: " + err.Error())
	}
	switch reqErr.Kind {
	case archive.KindNetwork:
		return styles.Error.Render("network failure") + "\n" +
			styles.Muted.Render(reqErr.Error())
	case archive.KindStatus:
		label := "archive error"
		if reqErr.Status == 404 {
			label = "not found"
		}
		return styles.Error.Render(label) + "\n" +
			styles.Muted.Render(reqErr.Error())
	default:
		return styles.Error.Render("bad response") + "\n" +
			styles.Muted.Render(reqErr.Error())
	}
}
