package item

// Metadata is the capability marker for values attachable to an Item.
// Implementations should be immutable; the same value may be attached to
// many items.
type Metadata interface {
	// ItemMetadata marks the implementing type as attachable metadata.
	// The method body is always empty.
	ItemMetadata()
}

// MetadataMap holds the metadata attached to one Item, preserving insertion
// order. Any number of values of the same type may coexist; nothing is
// deduplicated at this layer. Retrieval is by type via the package-level
// Get, which also matches interface types.
//
// A MetadataMap is owned by exactly one Item and is not safe for concurrent
// mutation.
type MetadataMap struct {
	values []Metadata
}

// NewMetadataMap creates an empty metadata collection.
func NewMetadataMap() *MetadataMap {
	return &MetadataMap{}
}

// Put appends a metadata value. Nil values are ignored.
func (m *MetadataMap) Put(v Metadata) {
	if v == nil {
		return
	}
	m.values = append(m.values, v)
}

// PutAll appends all given metadata values in order.
func (m *MetadataMap) PutAll(vs ...Metadata) {
	for _, v := range vs {
		m.Put(v)
	}
}

// Values returns all attached metadata in insertion order. The returned
// slice is a copy.
func (m *MetadataMap) Values() []Metadata {
	out := make([]Metadata, len(m.values))
	copy(out, m.values)
	return out
}

// Len returns the number of attached metadata values.
func (m *MetadataMap) Len() int { return len(m.values) }

// Clone returns an independent MetadataMap holding the same values.
// Metadata values themselves are shared; they are immutable by contract.
func (m *MetadataMap) Clone() *MetadataMap {
	clone := &MetadataMap{values: make([]Metadata, len(m.values))}
	copy(clone.values, m.values)
	return clone
}

// Get returns all metadata values satisfying type M, in insertion order.
// M may be a concrete type or an interface; interface queries return every
// attached value implementing it.
func Get[M Metadata](m *MetadataMap) []M {
	var out []M
	for _, v := range m.values {
		if match, ok := v.(M); ok {
			out = append(out, match)
		}
	}
	return out
}

// Has reports whether at least one metadata value satisfies type M.
func Has[M Metadata](m *MetadataMap) bool {
	for _, v := range m.values {
		if _, ok := v.(M); ok {
			return true
		}
	}
	return false
}
