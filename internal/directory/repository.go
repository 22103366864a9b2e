package directory

import "sync"

// Repository is the entry store: a map keyed by opaque ID, with
// parent/child links stored as IDs rather than object references, which
// sidesteps cyclic ownership between parent and child entries. A single
// RWMutex guards every mutation and the add-entry transaction's
// save-then-link critical section.
type Repository[T ID] struct {
	mu      sync.RWMutex
	space   IDSpace[T]
	entries map[T]*Entry[T]
}

// NewRepository creates an empty repository for the given ID space.
func NewRepository[T ID](space IDSpace[T]) *Repository[T] {
	return &Repository[T]{
		space:   space,
		entries: make(map[T]*Entry[T]),
	}
}

// Root returns the entry at the well-known root identifier, creating a
// default empty one on first access.
func (r *Repository[T]) Root() *Entry[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rootLocked()
}

func (r *Repository[T]) rootLocked() *Entry[T] {
	if root, ok := r.entries[r.space.Root]; ok {
		return root
	}
	root := &Entry[T]{
		hasID:         true,
		id:            r.space.Root,
		children:      make(map[T]struct{}),
		ObjectClasses: make(map[string]struct{}),
		Attributes:    make(map[string]map[string]struct{}),
	}
	r.entries[r.space.Root] = root
	return root
}

// Get looks up an entry by ID.
func (r *Repository[T]) Get(id T) (*Entry[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}

// Save inserts or replaces an entry by ID, assigning a fresh ID first if
// the entry has none. It returns the stored entry.
func (r *Repository[T]) Save(e *Entry[T]) *Entry[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveLocked(e)
}

func (r *Repository[T]) saveLocked(e *Entry[T]) *Entry[T] {
	if _, ok := e.ID(); !ok {
		e.SetID(r.space.FreshRandom())
	}
	id, _ := e.ID()
	r.entries[id] = e
	return e
}

// SaveAndLinkToParent persists e (assigning an ID if it has none) and
// adds e's ID to its parent's children, as a single critical section, so
// a concurrent reader never observes an entry that exists without being
// linked from its parent.
func (r *Repository[T]) SaveAndLinkToParent(e *Entry[T], parent *Entry[T]) *Entry[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := r.saveLocked(e)
	id, _ := saved.ID()
	parent.AddChild(id)
	r.entries[mustID(parent)] = parent
	return saved
}

func mustID[T ID](e *Entry[T]) T {
	id, _ := e.ID()
	return id
}
