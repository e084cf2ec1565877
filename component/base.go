package component

import (
	"strings"
	"sync"
	"time"

	"github.com/kbukum/pipekit/errors"
)

// Base is the embeddable implementation of Component. Components embed it
// by value and route their configuration setters through CheckSettable and
// their execution entry points through CheckExecutable.
//
// Initialize and Destroy are not safe for concurrent use with each other or
// with setters; the configuration phase of a component is single-threaded
// by contract. Once initialized, the component's own fields are frozen and
// may be read concurrently without locking.
type Base struct {
	mu            sync.Mutex
	id            string
	kind          string
	state         State
	initializedAt time.Time
}

// NewBase creates a Base with the given identifier and component kind. The
// identifier is trimmed; emptiness is diagnosed at initialization.
func NewBase(id, kind string) Base {
	return Base{id: strings.TrimSpace(id), kind: kind}
}

// ID returns the component identifier.
func (b *Base) ID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.id
}

// Type returns the component kind.
func (b *Base) Type() string { return b.kind }

// SetID sets the component identifier, trimming surrounding whitespace.
// Only legal before initialization.
func (b *Base) SetID(id string) error {
	if err := b.CheckSettable(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.id = strings.TrimSpace(id)
	return nil
}

// State returns the current lifecycle state.
func (b *Base) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// IsInitialized reports whether the component is initialized.
func (b *Base) IsInitialized() bool { return b.State() == StateInitialized }

// IsDestroyed reports whether the component is destroyed.
func (b *Base) IsDestroyed() bool { return b.State() == StateDestroyed }

// InitializedAt returns the instant initialization completed, or the zero
// time if the component has not been initialized.
func (b *Base) InitializedAt() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initializedAt
}

// Initialize transitions to Initialized with no extra validation. Components
// with required configuration implement their own Initialize and delegate to
// InitializeWith.
func (b *Base) Initialize() error { return b.InitializeWith(nil) }

// InitializeWith runs the component-specific validation hook and, if it
// succeeds, transitions to Initialized. The hook runs with the component
// still Uninitialized so it may read configuration and initialize children.
func (b *Base) InitializeWith(do func() error) error {
	b.mu.Lock()
	switch b.state {
	case StateDestroyed:
		id := b.id
		b.mu.Unlock()
		return errors.Misuse(id, "component has already been destroyed and can no longer be used")
	case StateInitialized:
		id := b.id
		b.mu.Unlock()
		return errors.Misuse(id, "component has already been initialized")
	}
	if b.id == "" {
		b.mu.Unlock()
		return errors.Initialization("", "component ID may not be empty")
	}
	b.mu.Unlock()

	if do != nil {
		if err := do(); err != nil {
			return err
		}
	}

	b.mu.Lock()
	b.state = StateInitialized
	b.initializedAt = time.Now()
	b.mu.Unlock()
	return nil
}

// Destroy transitions to Destroyed. Idempotent.
func (b *Base) Destroy() { b.DestroyWith(nil) }

// DestroyWith transitions to Destroyed and runs the component-specific
// cleanup hook on the first call only.
func (b *Base) DestroyWith(do func()) {
	b.mu.Lock()
	if b.state == StateDestroyed {
		b.mu.Unlock()
		return
	}
	b.state = StateDestroyed
	b.mu.Unlock()

	if do != nil {
		do()
	}
}

// CheckSettable returns a misuse failure unless the component is still
// accepting configuration.
func (b *Base) CheckSettable() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case StateDestroyed:
		return errors.Misuse(b.id, "component has already been destroyed and can no longer be used")
	case StateInitialized:
		return errors.Misuse(b.id, "component has already been initialized and can no longer be modified")
	}
	return nil
}

// CheckExecutable returns a misuse failure unless the component is
// initialized and not destroyed.
func (b *Base) CheckExecutable() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case StateDestroyed:
		return errors.Misuse(b.id, "component has already been destroyed and can no longer be used")
	case StateUninitialized:
		return errors.Misuse(b.id, "component has not yet been initialized and cannot be used")
	}
	return nil
}
