package linkedlist

import (
	"io"

	"go.uber.org/zap"

	"github.com/iotaledger/rwlist/runtime/options"
)

// Options contains the configuration options of a List.
type Options[T any] struct {
	// DefaultDumper is the dumper used for elements without their own one.
	DefaultDumper Dumper[T]

	// Output is the writer that Dump writes to.
	Output io.Writer

	// Logger is the logger that receives debug information about the List.
	Logger *zap.Logger
}

// WithDefaultDumper is an option to set the default dumper of a List.
func WithDefaultDumper[T any](dumper Dumper[T]) options.Option[Options[T]] {
	return func(opts *Options[T]) {
		opts.DefaultDumper = dumper
	}
}

// WithOutput is an option to set the output of a List.
func WithOutput[T any](output io.Writer) options.Option[Options[T]] {
	return func(opts *Options[T]) {
		opts.Output = output
	}
}

// WithLogger is an option to set the logger of a List.
func WithLogger[T any](logger *zap.Logger) options.Option[Options[T]] {
	return func(opts *Options[T]) {
		opts.Logger = logger
	}
}

// NodeOptions contains the per element overrides of the List defaults.
type NodeOptions[T any] struct {
	// Teardown overrides the default teardown of the List.
	Teardown Teardown[T]

	// Dumper overrides the default dumper of the List.
	Dumper Dumper[T]
}

// WithTeardown is an option to give an element its own teardown.
func WithTeardown[T any](teardown Teardown[T]) options.Option[NodeOptions[T]] {
	return func(opts *NodeOptions[T]) {
		opts.Teardown = teardown
	}
}

// WithDumper is an option to give an element its own dumper.
func WithDumper[T any](dumper Dumper[T]) options.Option[NodeOptions[T]] {
	return func(opts *NodeOptions[T]) {
		opts.Dumper = dumper
	}
}
