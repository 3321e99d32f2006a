package syncutils_test

import (
	"testing"
	"time"

	"github.com/iotaledger/rwlist/runtime/syncutils"
)

func TestRWMutexFake_ReadersExclude(t *testing.T) {
	var mutex syncutils.RWMutexFake

	mutex.RLock()

	acquired := make(chan struct{})
	go func() {
		mutex.RLock()
		defer mutex.RUnlock()

		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second reader acquired a fake RWMutex that is already held")
	case <-time.After(50 * time.Millisecond):
	}

	mutex.RUnlock()
	<-acquired
}
