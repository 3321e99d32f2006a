package main

import (
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/iotaledger/rwlist/ds/linkedlist"
	"github.com/iotaledger/rwlist/ierrors"
	"github.com/iotaledger/rwlist/runtime/options"
)

// ErrScenarioFailed is returned if at least one check of the scenario failed.
var ErrScenarioFailed = ierrors.New("scenario failed")

// checker counts the passed and failed checks of the scenario.
type checker struct {
	log    *zap.Logger
	passed int
	failed int
}

func (c *checker) expectEqual(name string, expected int, actual int, err error) {
	if err != nil || expected != actual {
		c.failed++
		c.log.Error("check failed", zap.String("check", name), zap.Int("expected", expected), zap.Int("actual", actual), zap.Error(err))

		return
	}

	c.passed++
	c.log.Debug("check passed", zap.String("check", name))
}

func (c *checker) expectNotFound(name string, err error) {
	if !ierrors.Is(err, linkedlist.ErrNotFound) {
		c.failed++
		c.log.Error("check failed", zap.String("check", name), zap.NamedError("expectedError", linkedlist.ErrNotFound), zap.Error(err))

		return
	}

	c.passed++
	c.log.Debug("check passed", zap.String("check", name))
}

func (c *checker) result() error {
	if c.failed > 0 {
		return ierrors.Wrapf(ErrScenarioFailed, "%d of %d checks failed", c.failed, c.passed+c.failed)
	}

	c.log.Info("scenario passed", zap.Int("checks", c.passed))

	return nil
}

// negate marks a value as torn down, so that removals can be inspected afterwards.
func negate(value *int) {
	*value = -*value
}

// valueOf returns the value behind the pointer (0 for nil).
func valueOf(value *int) int {
	if value == nil {
		return 0
	}

	return *value
}

func dumpInt(value *int) string {
	return strconv.Itoa(*value)
}

// runScenario builds a list of integers, reads and removes elements by index and by predicate and dumps the list to
// out after every modification.
func runScenario(out io.Writer, log *zap.Logger) error {
	c := &checker{log: log}

	values := []int{0, 1, 2, 3, 4, 5, 6, 3, 3}
	a, b, cc, d, e, f, g, h, i := &values[0], &values[1], &values[2], &values[3], &values[4], &values[5], &values[6], &values[7], &values[8]

	equals3 := func(value *int) bool { return *value == 3 }
	withOverrides := []options.Option[linkedlist.NodeOptions[*int]]{linkedlist.WithTeardown[*int](negate), linkedlist.WithDumper[*int](dumpInt)}

	list := linkedlist.New[*int](negate, linkedlist.WithOutput[*int](out), linkedlist.WithLogger[*int](log.Named("list")))
	list.SetDefaultDumper(dumpInt)

	size, err := list.InsertFirst(cc, withOverrides...)
	c.expectEqual("insert first into empty list", 1, size, err)

	first, err := list.GetFirst()
	c.expectEqual("get first", *cc, valueOf(first), err)
	c.expectEqual("length after first insert", 1, list.Len(), nil)

	_, _ = list.InsertFirst(b, withOverrides...)
	_, _ = list.InsertFirst(a, withOverrides...)
	first, err = list.GetFirst()
	c.expectEqual("get first after prepending", *a, valueOf(first), err)
	c.expectEqual("length after prepending", 3, list.Len(), nil)

	for index, value := range []*int{d, e, f} {
		size, err = list.InsertLast(value, withOverrides...)
		c.expectEqual("insert last", 4+index, size, err)
	}
	fifth, err := list.GetAt(5)
	c.expectEqual("get index 5", *f, valueOf(fifth), err)
	c.expectEqual("length after appending", 6, list.Len(), nil)

	size, err = list.InsertAt(g, 6, withOverrides...)
	c.expectEqual("insert at index 6", 7, size, err)
	for index := 0; index < list.Len(); index++ {
		value, err := list.GetAt(index)
		c.expectEqual("get index "+strconv.Itoa(index), index, valueOf(value), err)
	}
	list.Dump()

	size, err = list.RemoveFirst()
	c.expectEqual("remove first", 6, size, err)
	list.Dump()

	size, err = list.RemoveAt(1)
	c.expectEqual("remove index 1", 5, size, err)
	list.Dump()

	size, err = list.RemoveAt(2)
	c.expectEqual("remove index 2", 4, size, err)
	list.Dump()

	_, err = list.RemoveAt(5)
	c.expectNotFound("remove index 5 of 4 elements", err)
	list.Dump()

	size, err = list.RemoveFirstMatching(equals3)
	c.expectEqual("remove first 3", 3, size, err)
	list.Dump()

	_, err = list.RemoveFirstMatching(equals3)
	c.expectNotFound("remove missing 3", err)
	list.Dump()

	size, err = list.InsertFirst(h)
	c.expectEqual("insert 3 first", 4, size, err)
	list.Dump()

	size, err = list.InsertLast(i)
	c.expectEqual("insert 3 last", 5, size, err)
	list.Dump()

	size, err = list.RemoveFirstMatching(equals3)
	c.expectEqual("remove leading 3", 4, size, err)
	list.Dump()

	size, err = list.RemoveFirstMatching(equals3)
	c.expectEqual("remove trailing 3", 3, size, err)
	list.Dump()

	list.Destroy()

	// every value was torn down exactly once
	for index, expected := range []int{0, -1, -2, -3, -4, -5, -6, -3, -3} {
		c.expectEqual("teardown of value "+strconv.Itoa(index), expected, values[index], nil)
	}

	return c.result()
}
