package manifest

import "sync/atomic"

// Store holds the current manifest snapshot. Readers never block and always see
// a complete snapshot.
type Store struct {
	current atomic.Pointer[Manifest]
}

// NewStore returns a Store holding m. m may be nil when the first snapshot is
// loaded later.
func NewStore(m *Manifest) *Store {
	s := &Store{}
	if m != nil {
		s.current.Store(m)
	}
	return s
}

// Load returns the current snapshot, or nil if none has been stored.
func (s *Store) Load() *Manifest {
	return s.current.Load()
}

// Swap replaces the snapshot with m and returns the previous one. A nil m is
// rejected and leaves the current snapshot in place.
func (s *Store) Swap(m *Manifest) (*Manifest, error) {
	if m == nil {
		return nil, ErrNoSnapshot
	}
	return s.current.Swap(m), nil
}
