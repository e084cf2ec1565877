package pipeline

import (
	"fmt"
	"time"
)

// ComponentInfo is an immutable provenance record attached to an item's
// metadata each time a stage or pipeline processes it. The trail is
// append-only; records are never mutated once attached.
type ComponentInfo struct {
	componentID   string
	componentType string
	start         time.Time
	complete      time.Time
}

// NewComponentInfo creates a provenance record for one completed
// execution.
func NewComponentInfo(componentID, componentType string, start, complete time.Time) *ComponentInfo {
	return &ComponentInfo{
		componentID:   componentID,
		componentType: componentType,
		start:         start,
		complete:      complete,
	}
}

// ComponentID returns the identifier of the recording component.
func (ci *ComponentInfo) ComponentID() string { return ci.componentID }

// ComponentType returns the type name of the recording component.
func (ci *ComponentInfo) ComponentType() string { return ci.componentType }

// Start returns the execution start instant.
func (ci *ComponentInfo) Start() time.Time { return ci.start }

// Complete returns the execution completion instant.
func (ci *ComponentInfo) Complete() time.Time { return ci.complete }

// String renders both instants in RFC 3339 with nanosecond precision.
func (ci *ComponentInfo) String() string {
	return fmt.Sprintf("ComponentInfo{component=%s, type=%s, start=%s, complete=%s}",
		ci.componentID, ci.componentType,
		ci.start.Format(time.RFC3339Nano), ci.complete.Format(time.RFC3339Nano))
}

// ItemMetadata marks ComponentInfo as attachable metadata.
func (*ComponentInfo) ItemMetadata() {}
