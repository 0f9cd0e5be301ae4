package streak

import "sync"

// userLocks hands out one mutex per user so concurrent triggers for the same
// user serialize while different users evaluate in parallel. Entries are
// never evicted; the table grows with the active user set, which is small
// relative to the data it guards.
type userLocks struct {
	mu    sync.Mutex
	users map[int64]*sync.Mutex
}

func (l *userLocks) forUser(userID int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.users == nil {
		l.users = make(map[int64]*sync.Mutex)
	}
	m, ok := l.users[userID]
	if !ok {
		m = &sync.Mutex{}
		l.users[userID] = m
	}
	return m
}
