package options_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/rwlist/runtime/options"
)

type container struct {
	name        string
	workerCount int
	initialized bool
}

func withName(name string) options.Option[container] {
	return func(c *container) {
		c.name = name
	}
}

func withWorkerCount(workerCount int) options.Option[container] {
	return func(c *container) {
		c.workerCount = workerCount
	}
}

func TestApply(t *testing.T) {
	c := options.Apply(&container{workerCount: 1}, []options.Option[container]{
		withName("pool"),
		withWorkerCount(4),
	}, func(c *container) {
		c.initialized = c.workerCount > 0
	})

	require.Equal(t, "pool", c.name)
	require.Equal(t, 4, c.workerCount)
	require.True(t, c.initialized)
}

func TestApplyKeepsDefaults(t *testing.T) {
	c := options.Apply(&container{name: "default", workerCount: 2}, nil)

	require.Equal(t, "default", c.name)
	require.Equal(t, 2, c.workerCount)
	require.False(t, c.initialized)
}
