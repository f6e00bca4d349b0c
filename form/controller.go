// Package form holds the query form: the question being typed and the
// outcome of submitting it.
//
// The controller is UI-agnostic. The terminal UI drives it through
// Begin/Resolve so the network call can run off the event loop; the
// headless `ask` command calls Submit directly.
package form

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/DachengChen/ragask/client"
	"go.uber.org/zap"
)

//go:generate mockgen -source=controller.go -destination=mock_asker.go -package=form Asker

// FailureMessage is shown for every failed submit, whatever the cause.
const FailureMessage = "Failed to fetch the answer. Please check if the backend is running."

var (
	// ErrEmptyQuery is returned when the query is blank after trimming.
	ErrEmptyQuery = errors.New("form: query is empty")

	// ErrBusy is returned when a submit is attempted while one is in flight.
	// Concurrent submits are rejected, never queued or cancelled.
	ErrBusy = errors.New("form: a query is already in flight")
)

// Asker sends a question to the backend.
type Asker interface {
	Query(ctx context.Context, query string) (string, error)
}

// Observer is notified after every state transition.
type Observer func(prev, next State)

// Option configures a Controller.
type Option func(*Controller)

// WithObserver registers an observer.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observers = append(c.observers, o) }
}

// WithLogger sets the logger failures are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// Controller owns the form state.
type Controller struct {
	asker     Asker
	log       *zap.Logger
	observers []Observer

	mu    sync.Mutex
	query string
	state State
}

// NewController creates a controller in the Idle state with an empty query.
func NewController(asker Asker, opts ...Option) *Controller {
	c := &Controller{
		asker: asker,
		log:   zap.NewNop(),
		state: Idle{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetQuery replaces the query text. It never touches the backend.
func (c *Controller) SetQuery(text string) {
	c.mu.Lock()
	c.query = text
	c.mu.Unlock()
}

// Query returns the current query text.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// State returns the current state variant.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the flattened form state.
func (c *Controller) Snapshot() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return flatten(c.query, c.state)
}

// Begin moves the form into Submitting and returns the query to send.
// A blank query returns ErrEmptyQuery and a pending request returns ErrBusy;
// in both cases nothing changes.
func (c *Controller) Begin() (string, error) {
	c.mu.Lock()
	if strings.TrimSpace(c.query) == "" {
		c.mu.Unlock()
		return "", ErrEmptyQuery
	}
	if c.state.Loading() {
		c.mu.Unlock()
		return "", ErrBusy
	}
	query := c.query
	prev := c.transition(Submitting{Query: query})
	c.mu.Unlock()

	c.notify(prev, Submitting{Query: query})
	return query, nil
}

// Resolve applies the outcome of the request started by Begin. It returns
// false if no request was in flight, in which case the outcome is dropped.
func (c *Controller) Resolve(answer string, err error) bool {
	var next State
	if err != nil {
		c.logFailure(err)
		next = Failed{Message: FailureMessage, Err: err}
	} else {
		next = Answered{Answer: answer}
	}

	c.mu.Lock()
	if !c.state.Loading() {
		c.mu.Unlock()
		c.log.Debug("dropping result with no query in flight")
		return false
	}
	prev := c.transition(next)
	c.mu.Unlock()

	c.notify(prev, next)
	return true
}

// Submit runs one full cycle: Begin, a single backend call, Resolve.
// The returned error is ErrEmptyQuery, ErrBusy, or the backend failure; the
// user-facing outcome is in State either way.
func (c *Controller) Submit(ctx context.Context) error {
	query, err := c.Begin()
	if err != nil {
		return err
	}
	answer, err := c.asker.Query(ctx, query)
	c.Resolve(answer, err)
	return err
}

// Run performs the backend call for a query returned by Begin without
// touching state. Event-loop hosts call it off the loop and hand the result
// to Resolve.
func (c *Controller) Run(ctx context.Context, query string) (string, error) {
	return c.asker.Query(ctx, query)
}

// transition must be called with mu held.
func (c *Controller) transition(next State) State {
	prev := c.state
	c.state = next
	return prev
}

func (c *Controller) notify(prev, next State) {
	for _, o := range c.observers {
		o(prev, next)
	}
}

func (c *Controller) logFailure(err error) {
	var httpErr *client.HTTPError
	var netErr *client.NetworkError
	switch {
	case errors.As(err, &httpErr):
		c.log.Warn("query failed: backend returned an error status",
			zap.Int("status", httpErr.StatusCode),
			zap.String("url", httpErr.URL),
			zap.String("body", httpErr.Body))
	case errors.As(err, &netErr):
		c.log.Warn("query failed: backend unreachable",
			zap.String("url", netErr.URL),
			zap.Error(netErr.Err))
	default:
		c.log.Error("query failed", zap.Error(err))
	}
}
