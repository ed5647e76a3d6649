package snapshot

import "sync"

// State is the lifecycle of the wizard seed.
type State int

const (
	NotBuilt State = iota
	Built
)

func (s State) String() string {
	if s == Built {
		return "built"
	}
	return "not-built"
}

// Store is the shared application state holding the wizard seed. Once set,
// the seed is immutable until Reset.
type Store struct {
	mu       sync.RWMutex
	state    State
	snapshot *Snapshot
	gen      uint64 // bumped by Reset
	onChange func(State, *Snapshot)

	// buildMu serializes setIfNotBuilt so a build runs at most once per
	// generation. Readers never wait on it.
	buildMu sync.Mutex
}

// NewStore returns an empty store. onChange, when non-nil, is called after
// every Set and Reset with the new state.
func NewStore(onChange func(State, *Snapshot)) *Store {
	return &Store{onChange: onChange}
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Get returns the seed, or nil while NotBuilt.
func (s *Store) Get() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Set stores the seed and marks the store Built.
func (s *Store) Set(snap *Snapshot) {
	s.mu.Lock()
	s.snapshot = snap
	s.state = Built
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify(Built, snap)
	}
}

// setIfNotBuilt stores the seed only if none is present. build runs
// outside the store lock; its result is discarded if the store was set or
// reset meanwhile. It reports whether the seed was stored.
func (s *Store) setIfNotBuilt(build func() (*Snapshot, error)) (bool, error) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	s.mu.RLock()
	built, gen := s.state == Built, s.gen
	s.mu.RUnlock()
	if built {
		return false, nil
	}

	snap, err := build()
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	if s.state == Built || s.gen != gen {
		s.mu.Unlock()
		return false, nil
	}
	s.snapshot = snap
	s.state = Built
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify(Built, snap)
	}
	return true, nil
}

// Reset clears the seed so the next ready update rebuilds it.
func (s *Store) Reset() {
	s.mu.Lock()
	s.snapshot = nil
	s.state = NotBuilt
	s.gen++
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify(NotBuilt, nil)
	}
}
