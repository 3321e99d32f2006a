package linkedlist

import (
	"github.com/iotaledger/rwlist/ierrors"
	"github.com/iotaledger/rwlist/lo"
	"github.com/iotaledger/rwlist/runtime/options"
)

// ErrNotFound is returned if an index lies beyond the reachable end of a List or if no element matches a predicate.
var ErrNotFound = ierrors.New("element not found")

// region List /////////////////////////////////////////////////////////////////////////////////////////////////////////

// List represents an interface for a singly linked list that can be used concurrently. Every element is guarded by its
// own read-write lock and traversals use hand-over-hand locking, while a list-wide lock guards the head and the size.
//
// Structural changes at an index greater than zero update the size in a separate critical section, so Len can briefly
// disagree with the number of reachable elements while such an operation is in flight.
type List[T any] interface {
	// InsertAt inserts a new element with the given value so that it becomes the element at the given index and returns
	// the new size of the List.
	InsertAt(value T, index int, opts ...options.Option[NodeOptions[T]]) (newSize int, err error)

	// InsertFirst inserts a new element with the given value at the front of the List.
	InsertFirst(value T, opts ...options.Option[NodeOptions[T]]) (newSize int, err error)

	// InsertLast inserts a new element with the given value at the index that equals the size of the List at the time
	// of the call. Concurrent mutations can place the element ahead of or behind the actual end of the List.
	InsertLast(value T, opts ...options.Option[NodeOptions[T]]) (newSize int, err error)

	// RemoveAt removes the element at the given index, runs its teardown and returns the new size of the List.
	RemoveAt(index int) (newSize int, err error)

	// RemoveFirst removes the first element of the List.
	RemoveFirst() (newSize int, err error)

	// RemoveFirstMatching removes the first element (in head to tail order) whose value satisfies the predicate.
	RemoveFirstMatching(predicate func(value T) bool) (newSize int, err error)

	// GetAt returns the value of the element at the given index.
	GetAt(index int) (value T, err error)

	// GetFirst returns the value of the first element.
	GetFirst() (value T, err error)

	// Range executes the given callback for the value of each element in the List. The callback must not modify the
	// List and, since element locks are not reentrant, must not call methods that lock its elements (Len is safe).
	Range(callback func(value T))

	// ForEach executes the given callback for the value of each element in the List. The iteration is aborted if the
	// callback returns an error. The same restrictions as for Range apply to the callback.
	ForEach(callback func(value T) error) error

	// Values returns a slice of all values in the List.
	Values() []T

	// Dump writes the dumped representation of all elements to the output of the List.
	Dump()

	// Len returns the number of elements in the List.
	Len() int

	// SetDefaultTeardown sets the teardown that is used for elements without their own teardown.
	SetDefaultTeardown(teardown Teardown[T])

	// SetDefaultDumper sets the dumper that is used for elements without their own dumper.
	SetDefaultDumper(dumper Dumper[T])

	// Destroy runs the teardown of every element and clears the List. The List must not be used afterward.
	Destroy()
}

// New creates a new List that uses the given teardown for elements that do not specify their own one (nil means
// NoOpTeardown).
func New[T any](teardown Teardown[T], opts ...options.Option[Options[T]]) List[T] {
	return newList(teardown, opts...)
}

// RemoveFirstMatchingFilter removes the first element of the List for which the predicate returns true when it is
// called with the element's value and the given filter.
func RemoveFirstMatchingFilter[T, F any](list List[T], predicate func(value T, filter F) bool, filter F) (newSize int, err error) {
	return list.RemoveFirstMatching(lo.Bind(filter, predicate))
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Teardown & Dumper ////////////////////////////////////////////////////////////////////////////////////////////

// Teardown releases the resources of a value once its element left the List.
type Teardown[T any] func(value T)

// Dumper renders a value for the diagnostic output of Dump.
type Dumper[T any] func(value T) string

// NoOpTeardown is a Teardown that does nothing. It is meant for callers that manage the lifetime of values themselves.
func NoOpTeardown[T any](T) {}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
