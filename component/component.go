package component

// State is the lifecycle state of a component.
type State int

const (
	// StateUninitialized is the state of a freshly constructed component.
	// Configuration setters are only legal in this state.
	StateUninitialized State = iota
	// StateInitialized means configuration is frozen and the component may
	// execute.
	StateInitialized
	// StateDestroyed is terminal; no further operations are legal.
	StateDestroyed
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Component is a lifecycle-managed engine component. Stages and pipelines
// all satisfy this contract.
type Component interface {
	// ID returns the component's immutable identifier. Never empty after
	// successful initialization.
	ID() string

	// Type returns a short name for the component's concrete kind, used in
	// provenance records and logs.
	Type() string

	// State returns the current lifecycle state.
	State() State

	// IsInitialized reports whether the component is in the Initialized
	// state.
	IsInitialized() bool

	// IsDestroyed reports whether the component has been destroyed.
	IsDestroyed() bool

	// Initialize transitions the component from Uninitialized to
	// Initialized, validating its configuration. Initializing twice is a
	// misuse failure. A component whose initialization failed part-way is
	// not recoverable; discard and reconstruct it.
	Initialize() error

	// Destroy releases the component. It is idempotent and legal from any
	// state.
	Destroy()
}
