package linkedlist

import (
	"go.uber.org/zap"

	"github.com/iotaledger/rwlist/ierrors"
	"github.com/iotaledger/rwlist/runtime/syncutils"
)

// locate returns the node at position n-1 locked in the given mode. For n == 0 there is no predecessor and nothing is
// locked. If the chain is shorter than n, all locks are released and ErrNotFound is returned. This also happens if a
// concurrent removal shortened the chain during the walk.
//
// The walk couples the locks: the next node is locked before the current one is released. Node locks are only ever
// taken in list order and at most two of them are held at the same time.
func (l *list[T]) locate(n int, mode syncutils.LockMode) (predecessor *node[T], err error) {
	if n == 0 {
		return nil, nil
	}

	if predecessor = l.lockedHead(mode); predecessor == nil {
		return nil, ierrors.Wrap(ErrNotFound, "list is empty")
	}

	for position := 1; position < n; position++ {
		next := predecessor.next
		if next == nil {
			mode.Unlock(&predecessor.mutex)

			l.log.Debug("chain ended before the requested position", zap.Int("position", n-1), zap.Int("length", position), zap.Stringer("mode", mode))

			return nil, ierrors.Wrapf(ErrNotFound, "chain ends after %d elements", position)
		}

		mode.Lock(&next.mutex)
		mode.Unlock(&predecessor.mutex)

		predecessor = next
	}

	return predecessor, nil
}

// lockedHead returns the head locked in the given mode (or nil if the list is empty). The list lock is never held while
// waiting for the node lock: the head is read under the list lock, locked afterwards and then checked to still be the
// head. If a concurrent insert or removal replaced it in the meantime, the lock is released and the lookup repeated.
func (l *list[T]) lockedHead(mode syncutils.LockMode) *node[T] {
	for {
		head := l.currentHead()
		if head == nil {
			return nil
		}

		mode.Lock(&head.mutex)
		if l.currentHead() == head {
			return head
		}
		mode.Unlock(&head.mutex)
	}
}

// currentHead returns the head of the list without locking it.
func (l *list[T]) currentHead() *node[T] {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.head
}
