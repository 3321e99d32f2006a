//go:build fake && !deadlock
// +build fake,!deadlock

package syncutils

type Mutex = RWMutexFake
type RWMutex = RWMutexFake
