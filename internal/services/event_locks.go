package services

import (
	"sync"

	"github.com/google/uuid"
)

// eventLocks serializes admission operations per event. Capacity checks and
// the writes they guard must observe each other, so every admission takes the
// event's mutex first; operations on different events proceed in parallel.
type eventLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newEventLocks() *eventLocks {
	return &eventLocks{
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

func (l *eventLocks) forEvent(eventID uuid.UUID) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[eventID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[eventID] = lock
	}
	return lock
}
