package item

import "strings"

// ID is a unique identifier for the data carried by an Item. An item may
// carry any number of IDs; merge strategies use them for deduplication.
type ID string

// NewID creates an ID from the given value, trimming surrounding
// whitespace. An ID trimmed to emptiness is treated as absent by consumers.
func NewID(value string) ID {
	return ID(strings.TrimSpace(value))
}

// String returns the identifier value.
func (id ID) String() string { return string(id) }

// ItemMetadata marks ID as attachable metadata.
func (ID) ItemMetadata() {}
