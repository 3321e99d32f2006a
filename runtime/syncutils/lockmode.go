package syncutils

// LockMode determines whether a RWMutex is acquired shared or exclusively.
type LockMode uint8

const (
	// ReadLock acquires the shared (reader) side of a RWMutex.
	ReadLock LockMode = iota

	// WriteLock acquires the exclusive (writer) side of a RWMutex.
	WriteLock
)

// Lock acquires the given mutex in the receiver's mode.
func (l LockMode) Lock(mutex *RWMutex) {
	if l == ReadLock {
		mutex.RLock()

		return
	}

	mutex.Lock()
}

// Unlock releases the given mutex that was previously acquired in the receiver's mode.
func (l LockMode) Unlock(mutex *RWMutex) {
	if l == ReadLock {
		mutex.RUnlock()

		return
	}

	mutex.Unlock()
}

// String returns a human-readable version of the LockMode.
func (l LockMode) String() string {
	switch l {
	case ReadLock:
		return "ReadLock"
	case WriteLock:
		return "WriteLock"
	default:
		return "LockMode(unknown)"
	}
}
