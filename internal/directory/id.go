// Package directory implements the in-memory entry repository and the
// DN-resolution / add-entry services that sit on top of it.
package directory

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// ID is the capability a concrete entry identifier must provide: a zero
// value, equality, text rendering, a well-known root identifier, and a
// generator for fresh values handed out on save.
//
// Two concrete instantiations are provided: Int64ID (a monotonic counter)
// and StringID (a short random string). Repository and Service are generic
// over this interface so either can back the same directory logic.
type ID interface {
	comparable
	String() string
}

// IDSpace bundles the non-method capabilities an ID type needs that can't
// be expressed on the value itself: the root identifier and a generator.
// A concrete ID type's package exposes a package-level IDSpace value
// (Int64Space, StringSpace) rather than implementing these as methods,
// since RootIdentifier and FreshRandom don't operate on a receiver.
type IDSpace[T ID] struct {
	Root        T
	FreshRandom func() T
}

// Int64ID is a 64-bit integer identifier. The zero value is the default
// (unsaved) identifier; RootID is the well-known root entry's identifier.
type Int64ID int64

func (i Int64ID) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// RootID is Int64ID's root_identifier().
const RootID Int64ID = 0

var int64Counter atomic.Int64

// NextInt64ID is Int64ID's fresh_random(): in practice a monotonic counter
// starting above RootID, which is simpler to reason about than a random
// 64-bit value and just as adequate for an opaque identifier.
func NextInt64ID() Int64ID {
	return Int64ID(int64Counter.Add(1))
}

// Int64Space is the IDSpace instantiation for Int64ID.
var Int64Space = IDSpace[Int64ID]{
	Root:        RootID,
	FreshRandom: NextInt64ID,
}

// StringID is a short random-string identifier.
type StringID string

func (s StringID) String() string {
	return string(s)
}

// RootStringID is StringID's root_identifier(): a fixed sentinel that can
// never collide with a generated UUID.
const RootStringID StringID = "root"

// NextStringID is StringID's fresh_random(), backed by google/uuid.
func NextStringID() StringID {
	return StringID(uuid.NewString())
}

// StringSpace is the IDSpace instantiation for StringID.
var StringSpace = IDSpace[StringID]{
	Root:        RootStringID,
	FreshRandom: NextStringID,
}
