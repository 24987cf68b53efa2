package internal

import "sync"

// orderLocks serialises work per order id. Entries are dropped when no one holds or waits for them.
type orderLocks struct {
	mu    sync.Mutex
	locks map[int64]*orderLock
}

type orderLock struct {
	sync.Mutex
	refs int
}

func newOrderLocks() *orderLocks {
	return &orderLocks{locks: make(map[int64]*orderLock)}
}

func (l *orderLocks) Lock(id int64) (unlock func()) {
	l.mu.Lock()
	ol, ok := l.locks[id]
	if !ok {
		ol = &orderLock{}
		l.locks[id] = ol
	}
	ol.refs++
	l.mu.Unlock()

	ol.Lock()

	return func() {
		ol.Unlock()

		l.mu.Lock()
		ol.refs--
		if ol.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
