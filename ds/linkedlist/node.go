package linkedlist

import (
	"github.com/iotaledger/rwlist/runtime/options"
	"github.com/iotaledger/rwlist/runtime/syncutils"
)

// node is a single element of a list.
type node[T any] struct {
	// value is the caller owned value of the element.
	value T

	// next is the following element (nil for the tail).
	next *node[T]

	// mutex guards next and the removal of the element.
	mutex syncutils.RWMutex

	// teardown and dumper override the defaults of the list if they are set.
	teardown Teardown[T]
	dumper   Dumper[T]
}

// newNode creates a new unlinked node.
func newNode[T any](value T, opts ...options.Option[NodeOptions[T]]) *node[T] {
	nodeOptions := options.Apply(new(NodeOptions[T]), opts)

	return &node[T]{
		value:    value,
		teardown: nodeOptions.Teardown,
		dumper:   nodeOptions.Dumper,
	}
}
