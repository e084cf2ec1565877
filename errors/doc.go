// Package errors defines the engine's failure taxonomy: processing failures
// (including deliberate termination), initialization configuration failures,
// and lifecycle misuse failures. All propagate synchronously to the caller;
// nothing in the engine retries automatically.
package errors
