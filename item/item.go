package item

// Item wraps exactly one payload value of type T and exclusively owns one
// metadata collection. Items are created by source stages, mutated by
// subsequent stages, and discarded when a pipeline run completes; they have
// no destruction step of their own.
type Item[T any] interface {
	// Unwrap returns the wrapped payload.
	Unwrap() T

	// Metadata returns the mutable metadata collection bound to this item.
	Metadata() *MetadataMap

	// Copy returns a new, distinct Item with an independent copy of the
	// metadata collection. Whether the payload itself is deep-copied is
	// payload-defined; mutating the copy's metadata never affects the
	// original's.
	Copy() Item[T]
}

// valueItem is the standard Item implementation.
type valueItem[T any] struct {
	data  T
	md    *MetadataMap
	clone func(T) T
}

// New wraps a payload in an Item. Copies of the item share the payload
// value as-is; use NewWithClone when the payload needs its own copy
// semantics (pointer payloads, mutable structures).
func New[T any](data T) Item[T] {
	return &valueItem[T]{data: data, md: NewMetadataMap()}
}

// NewWithClone wraps a payload in an Item whose Copy duplicates the payload
// through the given clone function.
func NewWithClone[T any](data T, clone func(T) T) Item[T] {
	return &valueItem[T]{data: data, md: NewMetadataMap(), clone: clone}
}

func (i *valueItem[T]) Unwrap() T { return i.data }

func (i *valueItem[T]) Metadata() *MetadataMap { return i.md }

func (i *valueItem[T]) Copy() Item[T] {
	data := i.data
	if i.clone != nil {
		data = i.clone(i.data)
	}
	return &valueItem[T]{data: data, md: i.md.Clone(), clone: i.clone}
}
