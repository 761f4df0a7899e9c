package service

import "sync"

// sessionLocks serializes the locate-then-write window per session id, so
// two concurrent submissions for the same session cannot both observe
// "no row yet" and double-insert. Entries are reference-counted and removed
// once the last holder releases.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

func (s *sessionLocks) lock(id string) {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
}

func (s *sessionLocks) unlock(id string) {
	s.mu.Lock()
	l := s.locks[id]
	l.refs--
	if l.refs == 0 {
		delete(s.locks, id)
	}
	s.mu.Unlock()

	l.mu.Unlock()
}
