package stress

import (
	"github.com/iotaledger/rwlist/ds/linkedlist"
)

func newTestList(values ...int) linkedlist.List[int] {
	list := linkedlist.New[int](nil)
	for _, value := range values {
		if _, err := list.InsertLast(value); err != nil {
			panic(err)
		}
	}

	return list
}
