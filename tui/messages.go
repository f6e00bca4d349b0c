// messages.go defines Bubble Tea messages used for async communication.
//
// Backend requests run as tea.Cmds and report back through these
// message types, so the UI never blocks on the network.
package tui

// AnswerMsg is sent when a query to the backend completes.
type AnswerMsg struct {
	Query  string
	Answer string
	Err    error
}

// StatusMsg is a transient status message for the status bar.
type StatusMsg string
