// Package controller implements the asynchronous submission state machine shared by
// subject prediction and title recommendation.
//
// A Controller owns one input value and one State. Submit moves it to Loading and
// hands back a Pending request; the caller runs the request wherever it likes (a
// Bubble Tea command, a goroutine, inline) and feeds the Completion back through
// Complete on the goroutine that owns the controller. Run and Complete never race
// because Run does not touch the controller.
package controller

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hyperjump/paperscope/internal/client"
	"go.uber.org/zap"
)

// Phase is the lifecycle position of a controller.
type Phase int

const (
	Idle Phase = iota
	Loading
	Success
	Failure
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// State is the interaction state rendered by views.
// Results is meaningful in Success, Message in Failure.
type State[R any] struct {
	Phase   Phase
	Results []R
	Message string
}

// Call performs the network exchange for input.
type Call[I, R any] func(ctx context.Context, input I) ([]R, error)

// Options configures a Controller.
type Options[I, R any] struct {
	// Name identifies the controller in logs.
	Name string
	// Validate is the input predicate of the submit gate.
	Validate func(I) bool
	// Call performs the request.
	Call Call[I, R]
	// Fallback is the failure message used when an error carries none.
	Fallback string
	Logger   *zap.Logger
}

// Controller is a single-flight submission state machine. It is not safe for
// concurrent use; all methods must be called from the owning goroutine.
type Controller[I, R any] struct {
	opts     Options[I, R]
	logger   *zap.Logger
	input    I
	state    State[R]
	inflight string
}

// New creates a controller in the Idle phase holding initial as its input.
func New[I, R any](initial I, opts Options[I, R]) *Controller[I, R] {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller[I, R]{
		opts:   opts,
		logger: logger.With(zap.String("controller", opts.Name)),
		input:  initial,
	}
}

// Input returns the current input value.
func (c *Controller[I, R]) Input() I { return c.input }

// SetInput replaces the input value. It does not change the state.
func (c *Controller[I, R]) SetInput(in I) { c.input = in }

// State returns a copy of the current state. An empty success keeps a
// non-nil, empty Results slice.
func (c *Controller[I, R]) State() State[R] {
	s := c.state
	if s.Results != nil {
		s.Results = append(make([]R, 0, len(s.Results)), s.Results...)
	}
	return s
}

// Loading reports whether a request is in flight.
func (c *Controller[I, R]) Loading() bool { return c.inflight != "" }

// CanSubmit reports whether Submit would start a request: nothing is in flight
// and the current input passes validation.
func (c *Controller[I, R]) CanSubmit() bool {
	if c.inflight != "" {
		return false
	}
	return c.opts.Validate == nil || c.opts.Validate(c.input)
}

// Pending is a submitted request that has not run yet.
type Pending[R any] struct {
	ID  string
	run func(ctx context.Context) ([]R, error)
}

// Run performs the request and packages the outcome. It does not modify the controller.
func (p Pending[R]) Run(ctx context.Context) Completion[R] {
	results, err := p.run(ctx)
	return Completion[R]{ID: p.ID, Results: results, Err: err}
}

// Completion is the outcome of a Pending request.
type Completion[R any] struct {
	ID      string
	Results []R
	Err     error
}

// Submit starts a request when the gate is open. It clears the previous message
// and results, enters Loading and returns the request to run. When the gate is
// closed it does nothing and returns false.
func (c *Controller[I, R]) Submit() (Pending[R], bool) {
	if !c.CanSubmit() {
		return Pending[R]{}, false
	}
	id := uuid.NewString()
	input := c.input
	call := c.opts.Call
	c.inflight = id
	c.state = State[R]{Phase: Loading}
	c.logger.Debug("submit", zap.String("request_id", id))
	return Pending[R]{
		ID: id,
		run: func(ctx context.Context) ([]R, error) {
			return call(ctx, input)
		},
	}, true
}

// Complete applies a finished request. Completions for anything other than the
// in-flight request are ignored and reported as false.
func (c *Controller[I, R]) Complete(done Completion[R]) bool {
	if c.inflight == "" || done.ID != c.inflight {
		c.logger.Debug("ignoring completion", zap.String("request_id", done.ID))
		return false
	}
	c.inflight = ""
	if done.Err != nil {
		msg := failureMessage(done.Err, c.opts.Fallback)
		c.state = State[R]{Phase: Failure, Message: msg}
		c.logger.Debug("request failed", zap.String("request_id", done.ID), zap.String("message", msg), zap.Error(done.Err))
		return true
	}
	results := done.Results
	if results == nil {
		results = []R{}
	}
	c.state = State[R]{Phase: Success, Results: results}
	c.logger.Debug("request succeeded", zap.String("request_id", done.ID), zap.Int("results", len(results)))
	return true
}

// Run submits, performs and completes a request on the calling goroutine.
// It returns false without doing anything when the gate is closed.
func (c *Controller[I, R]) Run(ctx context.Context) bool {
	p, ok := c.Submit()
	if !ok {
		return false
	}
	c.Complete(p.Run(ctx))
	return true
}

func failureMessage(err error, fallback string) string {
	msg := err.Error()
	var qe *client.Error
	if errors.As(err, &qe) {
		msg = qe.Message
	}
	if msg == "" {
		return fallback
	}
	return msg
}
