//go:build !fake

package linkedlist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iotaledger/rwlist/runtime/syncutils"
)

const lockTimeout = 2 * time.Second

func TestLocate_Zero(t *testing.T) {
	testList := newFilledList(t, 3)

	predecessor, err := testList.locate(0, syncutils.WriteLock)
	require.NoError(t, err)
	require.Nil(t, predecessor)

	requireUnlocked(t, testList)
}

func TestLocate_ReturnsLockedPredecessor(t *testing.T) {
	testList := newFilledList(t, 5)

	for n := 1; n <= 5; n++ {
		predecessor, err := testList.locate(n, syncutils.WriteLock)
		require.NoError(t, err)
		require.Equal(t, n-1, predecessor.value)

		acquired := tryReadLockAsync(&predecessor.mutex)
		require.Never(t, func() bool { return len(acquired) > 0 }, 50*time.Millisecond, 5*time.Millisecond, "write locked node must block readers")

		predecessor.mutex.Unlock()
		require.Eventually(t, func() bool { return len(acquired) > 0 }, lockTimeout, time.Millisecond)

		requireUnlocked(t, testList)
	}
}

func TestLocate_ReadLockIsShared(t *testing.T) {
	testList := newFilledList(t, 3)

	first, err := testList.locate(3, syncutils.ReadLock)
	require.NoError(t, err)

	second, err := testList.locate(3, syncutils.ReadLock)
	require.NoError(t, err)
	require.Same(t, first, second)

	first.mutex.RUnlock()
	second.mutex.RUnlock()

	requireUnlocked(t, testList)
}

func TestLocate_NotFoundReleasesLocks(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	testList := newList[int](nil, WithLogger[int](zap.New(core)))
	for i := 0; i < 3; i++ {
		_, err := testList.InsertAt(i, i)
		require.NoError(t, err)
	}

	for _, mode := range []syncutils.LockMode{syncutils.ReadLock, syncutils.WriteLock} {
		predecessor, err := testList.locate(5, mode)
		require.ErrorIs(t, err, ErrNotFound)
		require.Nil(t, predecessor)

		requireUnlocked(t, testList)
	}

	misses := logs.FilterMessage("chain ended before the requested position").All()
	require.Len(t, misses, 2)
	require.EqualValues(t, 4, misses[0].ContextMap()["position"])
	require.EqualValues(t, 3, misses[0].ContextMap()["length"])
}

func TestLocate_EmptyList(t *testing.T) {
	testList := newList[int](nil)

	predecessor, err := testList.locate(1, syncutils.ReadLock)
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, predecessor)
}

func TestLockedHead_ListLockFreeWhileWaiting(t *testing.T) {
	testList := newFilledList(t, 2)

	head := testList.head
	head.mutex.Lock()

	lockedHead := make(chan *node[int], 1)
	go func() {
		lockedHead <- testList.lockedHead(syncutils.ReadLock)
	}()

	// the list lock stays available while the head is contended
	require.Never(t, func() bool { return len(lockedHead) > 0 }, 50*time.Millisecond, 5*time.Millisecond)
	require.Equal(t, 2, testList.Len())
	_, err := testList.InsertAt(-1, 0)
	require.NoError(t, err)

	head.mutex.Unlock()

	var result *node[int]
	require.Eventually(t, func() bool {
		select {
		case result = <-lockedHead:
			return true
		default:
			return false
		}
	}, lockTimeout, time.Millisecond)

	require.Equal(t, -1, result.value)
	result.mutex.RUnlock()

	requireUnlocked(t, testList)
}

func TestPopHead_RetriesAfterConcurrentInsert(t *testing.T) {
	testList := newFilledList(t, 2)

	head := testList.head
	head.mutex.RLock()

	popped := make(chan *node[int], 1)
	go func() {
		removedElement, _ := testList.popHead()
		popped <- removedElement
	}()

	require.Never(t, func() bool { return len(popped) > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	newSize, err := testList.InsertAt(-1, 0)
	require.NoError(t, err)
	require.Equal(t, 3, newSize)

	head.mutex.RUnlock()

	var removedElement *node[int]
	require.Eventually(t, func() bool {
		select {
		case removedElement = <-popped:
			return true
		default:
			return false
		}
	}, lockTimeout, time.Millisecond)

	require.Equal(t, -1, removedElement.value)
	require.Nil(t, removedElement.next)
	require.Equal(t, 2, testList.Len())
	require.Same(t, head, testList.head)

	requireUnlocked(t, testList)
}

func newFilledList(t *testing.T, elementCount int) *list[int] {
	testList := newList[int](nil)
	for i := 0; i < elementCount; i++ {
		_, err := testList.InsertAt(i, i)
		require.NoError(t, err)
	}

	return testList
}

// requireUnlocked checks that no lock of the list or its nodes is left held by write locking all of them.
func requireUnlocked(t *testing.T, testList *list[int]) {
	done := make(chan struct{})
	go func() {
		defer close(done)

		testList.mutex.Lock()
		currentNode := testList.head
		testList.mutex.Unlock()

		for currentNode != nil {
			currentNode.mutex.Lock()
			nextNode := currentNode.next
			currentNode.mutex.Unlock()

			currentNode = nextNode
		}
	}()

	require.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, lockTimeout, time.Millisecond, "a lock was left held")
}

func tryReadLockAsync(mutex *syncutils.RWMutex) chan struct{} {
	acquired := make(chan struct{}, 1)
	go func() {
		mutex.RLock()
		defer mutex.RUnlock()

		acquired <- struct{}{}
	}()

	return acquired
}
