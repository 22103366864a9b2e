package directory

import (
	"github.com/patchwork-oss/ldapd/internal/schema"
)

// Entry is a named collection of multi-valued attributes in the
// directory tree. It is generic over the concrete ID
// capability the server is configured with (Int64ID or StringID).
type Entry[T ID] struct {
	id        T
	hasID     bool
	parent    T
	hasParent bool
	children  map[T]struct{}

	ObjectClasses map[string]struct{}            // object class OIDs
	Attributes    map[string]map[string]struct{} // attribute OID -> value set
}

// NewEntry builds an unsaved entry (no ID yet) with the given object
// classes and attributes, linked to parent once saved.
func NewEntry[T ID](objectClasses map[string]struct{}, attributes map[string]map[string]struct{}, parent T) *Entry[T] {
	return &Entry[T]{
		parent:        parent,
		hasParent:     true,
		children:      make(map[T]struct{}),
		ObjectClasses: objectClasses,
		Attributes:    attributes,
	}
}

// ID returns the entry's identifier and whether one has been assigned.
func (e *Entry[T]) ID() (T, bool) {
	return e.id, e.hasID
}

// SetID stamps the entry with an identifier, called once by
// Repository.Save when the entry has none.
func (e *Entry[T]) SetID(id T) {
	e.id = id
	e.hasID = true
}

// Parent returns the entry's parent identifier and whether it has one
// (the root entry has none).
func (e *Entry[T]) Parent() (T, bool) {
	return e.parent, e.hasParent
}

// Children returns the set of this entry's child identifiers.
func (e *Entry[T]) Children() map[T]struct{} {
	return e.children
}

// AddChild links a child identifier under this entry.
func (e *Entry[T]) AddChild(id T) {
	if e.children == nil {
		e.children = make(map[T]struct{})
	}
	e.children[id] = struct{}{}
}

// Matches reports whether any (OID, value) pair in rdn is present among
// this entry's attribute values — OR semantics across the multi-valued
// RDN's pairs, a deliberately-kept deviation from RFC 4511's AND
// semantics.
func (e *Entry[T]) Matches(rdn schema.RDN) bool {
	for _, pair := range rdn {
		values, ok := e.Attributes[pair.OID]
		if !ok {
			continue
		}
		if _, ok := values[pair.Value]; ok {
			return true
		}
	}
	return false
}

// ObjectClassOIDs implements schema.Validatable.
func (e *Entry[T]) ObjectClassOIDs() map[string]struct{} {
	return e.ObjectClasses
}

// AttributeOIDs implements schema.Validatable.
func (e *Entry[T]) AttributeOIDs() map[string]map[string]struct{} {
	return e.Attributes
}

// Identifier implements schema.Validatable, rendering the entry's ID for
// error messages (or "(unsaved)" before its first save).
func (e *Entry[T]) Identifier() string {
	if !e.hasID {
		return "(unsaved)"
	}
	return e.id.String()
}
