package service

import "sync"

// gameLocks hands out one mutex per game so mutating operations on the same
// game serialize while different games proceed independently.
type gameLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newGameLocks() gameLocks {
	return gameLocks{
		locks: make(map[uint]*sync.Mutex),
	}
}

// acquire locks the mutex for gameID and returns it so the caller can defer
// the unlock.
func (l *gameLocks) acquire(gameID uint) *sync.Mutex {
	l.mu.Lock()
	m, exists := l.locks[gameID]
	if !exists {
		m = &sync.Mutex{}
		l.locks[gameID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m
}

// forget drops the mutex for a game that no longer exists. Holders of the
// mutex can still unlock it; a later acquire for the same id simply gets a
// fresh one.
func (l *gameLocks) forget(gameID uint) {
	l.mu.Lock()
	delete(l.locks, gameID)
	l.mu.Unlock()
}
