package services

import "sync"

// LockSet serializes settlement creation and daily writes per labourer within
// this process. The store re-checks its invariants inside transactions, so the
// locks exist to give concurrent callers deterministic outcomes rather than
// transaction retry errors. The daily ledger and settlement services must
// share one instance.
type LockSet struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLockSet creates an empty per-labourer lock set.
func NewLockSet() *LockSet {
	return &LockSet{locks: make(map[string]*sync.Mutex)}
}

func (s *LockSet) lock(labourerID string) *sync.Mutex {
	s.mu.Lock()
	m, ok := s.locks[labourerID]
	if !ok {
		m = &sync.Mutex{}
		s.locks[labourerID] = m
	}
	s.mu.Unlock()
	m.Lock()
	return m
}
