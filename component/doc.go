// Package component provides the lifecycle contract shared by every stage
// and pipeline in the engine: a three-state machine (Uninitialized →
// Initialized → Destroyed) that freezes configuration at initialization.
//
// Configuration setters are only legal while Uninitialized; execution is
// only legal while Initialized; destruction is legal from any state and is
// idempotent. Because configuration is frozen by the transition, components
// need no locking on their execution paths.
package component
