package component

import (
	"testing"

	"github.com/kbukum/pipekit/errors"
)

// configurable is a minimal component with one guarded configuration field.
type configurable struct {
	Base
	limit       int
	initialized bool
	destroyed   bool
}

func newConfigurable(id string) *configurable {
	return &configurable{Base: NewBase(id, "configurable")}
}

func (c *configurable) SetLimit(n int) error {
	if err := c.CheckSettable(); err != nil {
		return err
	}
	c.limit = n
	return nil
}

func (c *configurable) Initialize() error {
	return c.InitializeWith(func() error {
		if c.limit < 0 {
			return errors.Initialization(c.ID(), "limit may not be negative")
		}
		c.initialized = true
		return nil
	})
}

func (c *configurable) Destroy() {
	c.DestroyWith(func() { c.destroyed = true })
}

func TestBase_IDTrimmed(t *testing.T) {
	c := newConfigurable("  test  ")
	if c.ID() != "test" {
		t.Errorf("ID = %q, want %q", c.ID(), "test")
	}
}

func TestBase_Lifecycle(t *testing.T) {
	c := newConfigurable("test")

	if c.State() != StateUninitialized {
		t.Fatalf("State = %v, want uninitialized", c.State())
	}
	if c.IsInitialized() || c.IsDestroyed() {
		t.Fatal("fresh component should be neither initialized nor destroyed")
	}
	if !c.InitializedAt().IsZero() {
		t.Error("InitializedAt should be zero before Initialize")
	}

	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if !c.IsInitialized() || !c.initialized {
		t.Error("component should be initialized and hook run")
	}
	if c.InitializedAt().IsZero() {
		t.Error("InitializedAt should be set after Initialize")
	}

	c.Destroy()
	if !c.IsDestroyed() || !c.destroyed {
		t.Error("component should be destroyed and hook run")
	}
}

func TestBase_DoubleInitialize(t *testing.T) {
	c := newConfigurable("test")
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	err := c.Initialize()
	if !errors.IsMisuse(err) {
		t.Errorf("double initialize should be a misuse failure, got %v", err)
	}
}

func TestBase_EmptyID(t *testing.T) {
	c := newConfigurable("   ")
	err := c.Initialize()
	if !errors.IsInitialization(err) {
		t.Errorf("empty ID should fail initialization, got %v", err)
	}
}

func TestBase_InitializeHookFailure(t *testing.T) {
	c := newConfigurable("test")
	c.limit = -1

	err := c.Initialize()
	if !errors.IsInitialization(err) {
		t.Fatalf("want initialization failure, got %v", err)
	}
	if c.IsInitialized() {
		t.Error("failed initialization should leave the component uninitialized")
	}
}

func TestBase_SetterAfterInitialize(t *testing.T) {
	c := newConfigurable("test")
	if err := c.SetLimit(5); err != nil {
		t.Fatalf("setter before initialize: %v", err)
	}
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	err := c.SetLimit(10)
	if !errors.IsMisuse(err) {
		t.Errorf("setter after initialize should be misuse, got %v", err)
	}
	if c.limit != 5 {
		t.Errorf("limit = %d, want unchanged 5", c.limit)
	}
}

func TestBase_UseAfterDestroy(t *testing.T) {
	c := newConfigurable("test")
	c.Destroy()

	if err := c.SetLimit(1); !errors.IsMisuse(err) {
		t.Errorf("setter after destroy should be misuse, got %v", err)
	}
	if err := c.Initialize(); !errors.IsMisuse(err) {
		t.Errorf("initialize after destroy should be misuse, got %v", err)
	}
	if err := c.CheckExecutable(); !errors.IsMisuse(err) {
		t.Errorf("execute after destroy should be misuse, got %v", err)
	}
}

func TestBase_DestroyIdempotent(t *testing.T) {
	c := newConfigurable("test")
	runs := 0
	for i := 0; i < 3; i++ {
		c.DestroyWith(func() { runs++ })
	}
	if runs != 1 {
		t.Errorf("destroy hook ran %d times, want 1", runs)
	}
}

func TestBase_CheckExecutableBeforeInitialize(t *testing.T) {
	c := newConfigurable("test")
	if err := c.CheckExecutable(); !errors.IsMisuse(err) {
		t.Errorf("execute before initialize should be misuse, got %v", err)
	}
}

func TestRegistry_OrderedLifecycle(t *testing.T) {
	r := NewRegistry()
	a := newConfigurable("a")
	b := newConfigurable("b")

	if err := r.Register(a); err != nil {
		t.Fatalf("Register(a): %v", err)
	}
	if err := r.Register(b); err != nil {
		t.Fatalf("Register(b): %v", err)
	}

	if err := r.InitializeAll(); err != nil {
		t.Fatalf("InitializeAll: %v", err)
	}
	if !a.IsInitialized() || !b.IsInitialized() {
		t.Error("all registered components should be initialized")
	}

	r.DestroyAll()
	if !a.IsDestroyed() || !b.IsDestroyed() {
		t.Error("all registered components should be destroyed")
	}
}

func TestRegistry_DuplicateID(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(newConfigurable("dup")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(newConfigurable("dup")); err == nil {
		t.Error("duplicate ID should fail registration")
	}
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()
	c := newConfigurable("x")
	if err := r.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if got := r.Get("x"); got != Component(c) {
		t.Error("Get should return the registered component")
	}
	if got := r.Get("missing"); got != nil {
		t.Error("Get of unknown ID should return nil")
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateUninitialized, "uninitialized"},
		{StateInitialized, "initialized"},
		{StateDestroyed, "destroyed"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
