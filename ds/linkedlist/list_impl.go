package linkedlist

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/iotaledger/rwlist/ierrors"
	"github.com/iotaledger/rwlist/lo"
	"github.com/iotaledger/rwlist/runtime/options"
	"github.com/iotaledger/rwlist/runtime/syncutils"
)

// region list /////////////////////////////////////////////////////////////////////////////////////////////////////////

// list implements the List interface.
type list[T any] struct {
	// head is the first element of the list.
	head *node[T]

	// size is the number of elements of the list.
	size int

	// mutex guards head, size and the defaults.
	mutex syncutils.RWMutex

	// defaultTeardown is used for elements without their own teardown.
	defaultTeardown Teardown[T]

	// defaultDumper is used for elements without their own dumper.
	defaultDumper Dumper[T]

	// output is the writer that Dump writes to.
	output io.Writer

	// outputMutex serializes the writes of concurrent dumps.
	outputMutex syncutils.Mutex

	// log is the logger of the list.
	log *zap.Logger
}

// newList creates a new list instance.
func newList[T any](teardown Teardown[T], opts ...options.Option[Options[T]]) *list[T] {
	listOptions := options.Apply(&Options[T]{
		Output: os.Stdout,
		Logger: zap.NewNop(),
	}, opts)

	return &list[T]{
		defaultTeardown: lo.Cond[Teardown[T]](teardown != nil, teardown, NoOpTeardown[T]),
		defaultDumper:   listOptions.DefaultDumper,
		output:          lo.Cond[io.Writer](listOptions.Output != nil, listOptions.Output, os.Stdout),
		log:             lo.Cond(listOptions.Logger != nil, listOptions.Logger, zap.NewNop()),
	}
}

// InsertAt inserts a new element with the given value so that it becomes the element at the given index and returns
// the new size of the list.
func (l *list[T]) InsertAt(value T, index int, opts ...options.Option[NodeOptions[T]]) (newSize int, err error) {
	if index < 0 {
		return 0, ierrors.Wrapf(ErrNotFound, "failed to insert at negative index %d", index)
	}

	newElement := newNode(value, opts...)
	if index == 0 {
		return l.pushHead(newElement), nil
	}

	predecessor, err := l.locate(index, syncutils.WriteLock)
	if err != nil {
		return 0, ierrors.Wrapf(err, "failed to insert at index %d", index)
	}

	newElement.next = predecessor.next
	predecessor.next = newElement
	predecessor.mutex.Unlock()

	return l.updateSize(1), nil
}

// InsertFirst inserts a new element with the given value at the front of the list.
func (l *list[T]) InsertFirst(value T, opts ...options.Option[NodeOptions[T]]) (newSize int, err error) {
	return l.InsertAt(value, 0, opts...)
}

// InsertLast inserts a new element with the given value at the index that equals the size of the list at the time of
// the call.
func (l *list[T]) InsertLast(value T, opts ...options.Option[NodeOptions[T]]) (newSize int, err error) {
	return l.InsertAt(value, l.Len(), opts...)
}

// RemoveAt removes the element at the given index, runs its teardown and returns the new size of the list.
func (l *list[T]) RemoveAt(index int) (newSize int, err error) {
	if index < 0 {
		return 0, ierrors.Wrapf(ErrNotFound, "failed to remove negative index %d", index)
	}

	var removedElement *node[T]
	if index == 0 {
		if removedElement, newSize = l.popHead(); removedElement == nil {
			return 0, ierrors.Wrap(ErrNotFound, "failed to remove the first element of an empty list")
		}
	} else {
		predecessor, err := l.locate(index, syncutils.WriteLock)
		if err != nil {
			return 0, ierrors.Wrapf(err, "failed to remove index %d", index)
		}

		if removedElement = l.detachSuccessor(predecessor, func(T) bool { return true }); removedElement == nil {
			return 0, ierrors.Wrapf(ErrNotFound, "failed to remove index %d: chain ends after %d elements", index, index)
		}

		newSize = l.updateSize(-1)
	}

	l.teardown(removedElement)

	return newSize, nil
}

// RemoveFirst removes the first element of the list.
func (l *list[T]) RemoveFirst() (newSize int, err error) {
	return l.RemoveAt(0)
}

// RemoveFirstMatching removes the first element (in head to tail order) whose value satisfies the predicate. The
// predicate is evaluated while the candidate and its predecessor are locked exclusively.
func (l *list[T]) RemoveFirstMatching(predicate func(value T) bool) (newSize int, err error) {
	for {
		head := l.lockedHead(syncutils.WriteLock)
		if head == nil {
			return 0, ierrors.Wrap(ErrNotFound, "no element matches the predicate in an empty list")
		}

		if !predicate(head.value) {
			removedElement := l.detachSuccessor(head, predicate)
			if removedElement == nil {
				return 0, ierrors.Wrap(ErrNotFound, "no element matches the predicate")
			}

			newSize = l.updateSize(-1)
			l.teardown(removedElement)

			return newSize, nil
		}

		var detached bool
		newSize, detached = l.detachHead(head)
		head.mutex.Unlock()

		if detached {
			l.teardown(head)

			return newSize, nil
		}
	}
}

// GetAt returns the value of the element at the given index.
func (l *list[T]) GetAt(index int) (value T, err error) {
	if index < 0 {
		return value, ierrors.Wrapf(ErrNotFound, "failed to get negative index %d", index)
	}

	element, err := l.locate(index+1, syncutils.ReadLock)
	if err != nil {
		return value, ierrors.Wrapf(err, "failed to get index %d", index)
	}
	defer element.mutex.RUnlock()

	return element.value, nil
}

// GetFirst returns the value of the first element.
func (l *list[T]) GetFirst() (value T, err error) {
	return l.GetAt(0)
}

// Range executes the given callback for the value of each element in the list.
func (l *list[T]) Range(callback func(value T)) {
	_ = l.forEachNode(func(element *node[T]) error {
		callback(element.value)

		return nil
	})
}

// ForEach executes the given callback for the value of each element in the list. The iteration is aborted if the
// callback returns an error.
func (l *list[T]) ForEach(callback func(value T) error) error {
	return l.forEachNode(func(element *node[T]) error {
		return callback(element.value)
	})
}

// Values returns a slice of all values in the list.
func (l *list[T]) Values() []T {
	values := make([]T, 0)

	l.Range(func(value T) {
		values = append(values, value)
	})

	return values
}

// Dump writes the dumped representation of all elements to the output of the list. Nothing is written if there is no
// element with a dumper.
func (l *list[T]) Dump() {
	l.mutex.RLock()
	defaultDumper := l.defaultDumper
	l.mutex.RUnlock()

	renderedValues := make([]string, 0)
	_ = l.forEachNode(func(element *node[T]) error {
		if dumper := lo.Cond(element.dumper != nil, element.dumper, defaultDumper); dumper != nil {
			renderedValues = append(renderedValues, dumper(element.value))
		}

		return nil
	})

	if len(renderedValues) == 0 {
		return
	}

	l.outputMutex.Lock()
	defer l.outputMutex.Unlock()

	if _, err := fmt.Fprintf(l.output, "(LIST:\n%s), length: %d\n", strings.Join(renderedValues, " "), l.Len()); err != nil {
		l.log.Warn("failed to write list dump", zap.Error(err))
	}
}

// Len returns the number of elements in the list.
func (l *list[T]) Len() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.size
}

// SetDefaultTeardown sets the teardown that is used for elements without their own teardown.
func (l *list[T]) SetDefaultTeardown(teardown Teardown[T]) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.defaultTeardown = teardown
}

// SetDefaultDumper sets the dumper that is used for elements without their own dumper.
func (l *list[T]) SetDefaultDumper(dumper Dumper[T]) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.defaultDumper = dumper
}

// Destroy runs the teardown of every element and clears the list.
func (l *list[T]) Destroy() {
	l.mutex.Lock()
	current, defaultTeardown := l.head, l.defaultTeardown
	l.head = nil
	l.defaultTeardown = nil
	l.defaultDumper = nil
	l.mutex.Unlock()

	var tornDown int
	for ; current != nil; tornDown++ {
		current.mutex.Lock()
		if teardown := lo.Cond(current.teardown != nil, current.teardown, defaultTeardown); teardown != nil {
			teardown(current.value)
		}

		next := current.next
		current.next = nil
		current.mutex.Unlock()

		current = next
	}

	sizeDrift := l.updateSize(-tornDown)

	l.log.Debug("destroyed list", zap.Int("tornDown", tornDown), zap.Int("sizeDrift", sizeDrift))
}

// pushHead makes the given node the new head of the list and returns the new size.
func (l *list[T]) pushHead(element *node[T]) (newSize int) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	element.next = l.head
	l.head = element
	l.size++

	return l.size
}

// popHead detaches the head of the list and returns it together with the new size (nil if the list is empty).
func (l *list[T]) popHead() (removedElement *node[T], newSize int) {
	for {
		if removedElement = l.lockedHead(syncutils.WriteLock); removedElement == nil {
			return nil, 0
		}

		var detached bool
		newSize, detached = l.detachHead(removedElement)
		removedElement.mutex.Unlock()

		if detached {
			return removedElement, newSize
		}
	}
}

// detachHead unlinks the exclusively locked element from the front of the list and returns the new size. It returns
// false if a concurrent insert made another element the head after the element was locked.
func (l *list[T]) detachHead(head *node[T]) (newSize int, detached bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.head != head {
		return 0, false
	}

	l.head = head.next
	head.next = nil
	l.size--

	return l.size, true
}

// detachSuccessor walks the chain behind the exclusively locked predecessor and detaches the first node whose value
// satisfies the predicate. Every candidate is locked exclusively (while its predecessor is still held) before the
// predicate is evaluated. All locks are released when the method returns.
func (l *list[T]) detachSuccessor(predecessor *node[T], predicate func(value T) bool) (detachedElement *node[T]) {
	for {
		candidate := predecessor.next
		if candidate == nil {
			predecessor.mutex.Unlock()

			return nil
		}

		candidate.mutex.Lock()
		if predicate(candidate.value) {
			predecessor.next = candidate.next
			candidate.next = nil

			candidate.mutex.Unlock()
			predecessor.mutex.Unlock()

			return candidate
		}

		predecessor.mutex.Unlock()
		predecessor = candidate
	}
}

// updateSize adds the given delta to the size of the list and returns the new size.
func (l *list[T]) updateSize(delta int) (newSize int) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.size += delta

	return l.size
}

// teardown runs the teardown of a detached node (or the default teardown of the list if it has none).
func (l *list[T]) teardown(detachedElement *node[T]) {
	teardown := detachedElement.teardown
	if teardown == nil {
		l.mutex.RLock()
		teardown = l.defaultTeardown
		l.mutex.RUnlock()
	}

	if teardown != nil {
		teardown(detachedElement.value)
	}
}

// forEachNode executes the callback for every node while holding the node's read lock. The next node is read locked
// before the current one is released. The iteration is aborted if the callback returns an error.
func (l *list[T]) forEachNode(callback func(element *node[T]) error) error {
	for current := l.lockedHead(syncutils.ReadLock); current != nil; {
		if err := callback(current); err != nil {
			current.mutex.RUnlock()

			return err
		}

		next := current.next
		if next != nil {
			next.mutex.RLock()
		}
		current.mutex.RUnlock()

		current = next
	}

	return nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
