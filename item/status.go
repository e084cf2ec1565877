package item

import "strings"

// Status is diagnostic metadata attached to an item by a component:
// an error, warning, or informational record. Retrieve all statuses with
// Get[item.Status], or a single severity with Get[*item.ErrorStatus] and
// friends.
type Status interface {
	Metadata

	// ComponentID identifies the component that attached the status.
	ComponentID() string

	// StatusMessage returns the diagnostic message.
	StatusMessage() string
}

type status struct {
	component string
	message   string
}

func newStatus(componentID, message string) status {
	return status{
		component: strings.TrimSpace(componentID),
		message:   strings.TrimSpace(message),
	}
}

func (s status) ComponentID() string   { return s.component }
func (s status) StatusMessage() string { return s.message }
func (status) ItemMetadata()           {}

// ErrorStatus records a processing error concerning one item.
type ErrorStatus struct{ status }

// NewErrorStatus creates an error status record.
func NewErrorStatus(componentID, message string) *ErrorStatus {
	return &ErrorStatus{newStatus(componentID, message)}
}

// WarningStatus records a non-fatal problem concerning one item.
type WarningStatus struct{ status }

// NewWarningStatus creates a warning status record.
func NewWarningStatus(componentID, message string) *WarningStatus {
	return &WarningStatus{newStatus(componentID, message)}
}

// InfoStatus records neutral diagnostic information concerning one item.
type InfoStatus struct{ status }

// NewInfoStatus creates an informational status record.
func NewInfoStatus(componentID, message string) *InfoStatus {
	return &InfoStatus{newStatus(componentID, message)}
}
