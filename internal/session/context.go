// Package session holds the per browser session transcription state.
package session

import (
	"sync"
	"time"

	"github.com/johnathanacortesd/johnascriber-sub000/models"
)

// State is a step of the transcription lifecycle.
type State string

const (
	StateIdle         State = "idle"
	StateUploading    State = "uploading"
	StateTranscribing State = "transcribing"
	StateFormatting   State = "formatting"
	StateReady        State = "ready"
	StateFailed       State = "failed"
)

// InFlight reports whether a request is currently being processed in s.
func (s State) InFlight() bool {
	switch s {
	case StateUploading, StateTranscribing, StateFormatting:
		return true
	}
	return false
}

// Context is the explicit state of one session. It is passed through the
// pipeline stages and is safe for concurrent use.
type Context struct {
	mu         sync.Mutex
	id         string
	state      State
	source     string
	transcript *models.FormattedTranscript
	lastErr    error
	updatedAt  time.Time
	now        func() time.Time
}

// Snapshot is a consistent copy of a Context for rendering.
type Snapshot struct {
	ID         string
	State      State
	Source     string
	Transcript *models.FormattedTranscript
	LastError  error
	UpdatedAt  time.Time
}

// NewContext returns an idle context.
func NewContext(id string) *Context {
	return newContext(id, time.Now)
}

func newContext(id string, now func() time.Time) *Context {
	return &Context{id: id, state: StateIdle, updatedAt: now(), now: now}
}

func (c *Context) ID() string {
	return c.id
}

// Begin starts a new upload. The previous transcript and error are
// discarded. A session only runs one request at a time.
func (c *Context) Begin(source string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.InFlight() {
		return models.ValidationError("A transcription is already in progress for this session")
	}
	c.state = StateUploading
	c.source = source
	c.transcript = nil
	c.lastErr = nil
	c.updatedAt = c.now()
	return nil
}

// Advance moves an in flight request to the next stage.
func (c *Context) Advance(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = s
	c.updatedAt = c.now()
}

// Complete stores t and marks the session ready for export.
func (c *Context) Complete(t *models.FormattedTranscript) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateReady
	c.transcript = t
	c.lastErr = nil
	c.updatedAt = c.now()
}

// Fail records err. No transcript is available after a failure.
func (c *Context) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateFailed
	c.transcript = nil
	c.lastErr = err
	c.updatedAt = c.now()
}

// Reset returns the session to idle unless a request is running.
func (c *Context) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.InFlight() {
		return models.ValidationError("A transcription is already in progress for this session")
	}
	c.state = StateIdle
	c.source = ""
	c.transcript = nil
	c.lastErr = nil
	c.updatedAt = c.now()
	return nil
}

// Transcript returns the completed transcript, or a validation error when
// the session is not ready.
func (c *Context) Transcript() (*models.FormattedTranscript, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReady || c.transcript == nil {
		return nil, models.ValidationError("No completed transcript is available to export")
	}
	return c.transcript, nil
}

func (c *Context) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		ID:         c.id,
		State:      c.state,
		Source:     c.source,
		Transcript: c.transcript,
		LastError:  c.lastErr,
		UpdatedAt:  c.updatedAt,
	}
}

// touch marks the session as seen without changing its state.
func (c *Context) touch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updatedAt = c.now()
}

func (c *Context) idleSince(t time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.state.InFlight() && c.updatedAt.Before(t)
}
