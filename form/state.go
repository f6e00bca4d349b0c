package form

// State is the submission phase of the form. Exactly one variant is current
// at a time, so an answer and an error can never be shown together.
type State interface {
	// Loading reports whether a request is in flight.
	Loading() bool
	// Name is a short label used in logs.
	Name() string

	isState()
}

// Idle is the state before the first submit.
type Idle struct{}

// Submitting holds while one request is in flight.
type Submitting struct {
	Query string
}

// Answered holds the backend's answer to the last submit.
type Answered struct {
	Answer string
}

// Failed holds the user-facing message for the last submit along with
// the underlying cause.
type Failed struct {
	Message string
	Err     error
}

func (Idle) Loading() bool       { return false }
func (Submitting) Loading() bool { return true }
func (Answered) Loading() bool   { return false }
func (Failed) Loading() bool     { return false }

func (Idle) Name() string       { return "idle" }
func (Submitting) Name() string { return "submitting" }
func (Answered) Name() string   { return "answered" }
func (Failed) Name() string     { return "failed" }

func (Idle) isState()       {}
func (Submitting) isState() {}
func (Answered) isState()   {}
func (Failed) isState()     {}

// FormState is a flat view of the controller for rendering.
type FormState struct {
	Query     string
	Answer    string
	Error     string
	IsLoading bool
}

func flatten(query string, s State) FormState {
	fs := FormState{Query: query, IsLoading: s.Loading()}
	switch s := s.(type) {
	case Answered:
		fs.Answer = s.Answer
	case Failed:
		fs.Error = s.Message
	}
	return fs
}
