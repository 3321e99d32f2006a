package syncutils

import (
	"sync"
)

// RWMutexFake is a RWMutex that hands out exclusive locks to readers as well. It is used to find code that only works
// by accident because readers never run in parallel.
type RWMutexFake struct {
	sync.RWMutex
}

func (m *RWMutexFake) RLock() {
	m.Lock()
}

func (m *RWMutexFake) RUnlock() {
	m.Unlock()
}
