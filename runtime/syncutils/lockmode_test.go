//go:build !fake

package syncutils_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/rwlist/runtime/syncutils"
)

func TestLockMode_ReadersShare(t *testing.T) {
	var mutex syncutils.RWMutex

	syncutils.ReadLock.Lock(&mutex)
	defer syncutils.ReadLock.Unlock(&mutex)

	acquired := make(chan struct{})
	go func() {
		syncutils.ReadLock.Lock(&mutex)
		defer syncutils.ReadLock.Unlock(&mutex)

		close(acquired)
	}()

	require.Eventually(t, func() bool {
		select {
		case <-acquired:
			return true
		default:
			return false
		}
	}, 5*time.Second, time.Millisecond)
}

func TestLockMode_WriterExcludes(t *testing.T) {
	var (
		mutex   syncutils.RWMutex
		counter int
		wg      sync.WaitGroup
	)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			syncutils.WriteLock.Lock(&mutex)
			defer syncutils.WriteLock.Unlock(&mutex)

			counter++
		}()
	}

	wg.Wait()

	syncutils.ReadLock.Lock(&mutex)
	defer syncutils.ReadLock.Unlock(&mutex)

	require.Equal(t, 100, counter)
}

func TestLockMode_String(t *testing.T) {
	require.Equal(t, "ReadLock", syncutils.ReadLock.String())
	require.Equal(t, "WriteLock", syncutils.WriteLock.String())
	require.Equal(t, "LockMode(unknown)", syncutils.LockMode(7).String())
}
