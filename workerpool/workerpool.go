package workerpool

import (
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/iotaledger/rwlist/ierrors"
	"github.com/iotaledger/rwlist/lo"
	"github.com/iotaledger/rwlist/runtime/options"
	"github.com/iotaledger/rwlist/runtime/syncutils"
)

var (
	// ErrPoolShutdown is returned if a task is submitted to a pool that was shut down.
	ErrPoolShutdown = ierrors.New("worker pool is shut down")
	// ErrPoolOverloaded is returned by non-blocking pools if all workers are busy.
	ErrPoolOverloaded = ierrors.New("worker pool is overloaded")
)

// WorkerPool executes submitted tasks on a bounded number of goroutines.
type WorkerPool struct {
	// Name is used to identify the pool in logs and errors.
	Name string

	pool           *ants.Pool
	pendingTasks   atomic.Int64
	tasksWaitGroup sync.WaitGroup
	isShutdown     bool
	mutex          syncutils.RWMutex

	optsWorkerCount int
	optsNonBlocking bool
	optsLogger      *zap.Logger
}

// New creates a new WorkerPool that is ready to accept tasks.
func New(name string, opts ...options.Option[WorkerPool]) *WorkerPool {
	return options.Apply(&WorkerPool{
		Name:            name,
		optsWorkerCount: 2 * runtime.NumCPU(),
		optsLogger:      zap.NewNop(),
	}, opts, func(w *WorkerPool) {
		w.optsLogger = w.optsLogger.With(zap.String("workerPool", name))

		w.pool = lo.PanicOnErr(ants.NewPool(lo.Max(w.optsWorkerCount, 1),
			ants.WithNonblocking(w.optsNonBlocking),
			ants.WithLogger(zap.NewStdLog(w.optsLogger)),
		))
	})
}

// Submit hands the task to a worker. Blocking pools wait for a free worker, non-blocking pools return
// ErrPoolOverloaded instead.
func (w *WorkerPool) Submit(task func()) error {
	w.mutex.RLock()
	if w.isShutdown {
		w.mutex.RUnlock()

		return ierrors.Wrapf(ErrPoolShutdown, "failed to submit task to %s", w.Name)
	}
	w.pendingTasks.Inc()
	w.tasksWaitGroup.Add(1)
	w.mutex.RUnlock()

	if err := w.pool.Submit(func() { w.run(task) }); err != nil {
		w.markDone()

		switch {
		case ierrors.Is(err, ants.ErrPoolOverload):
			return ierrors.Wrapf(ErrPoolOverloaded, "failed to submit task to %s", w.Name)
		case ierrors.Is(err, ants.ErrPoolClosed):
			return ierrors.Wrapf(ErrPoolShutdown, "failed to submit task to %s", w.Name)
		default:
			return ierrors.Wrapf(err, "failed to submit task to %s", w.Name)
		}
	}

	return nil
}

// PendingTasks returns the number of submitted tasks that did not finish yet.
func (w *WorkerPool) PendingTasks() int64 {
	return w.pendingTasks.Load()
}

// WorkerCount returns the maximum number of concurrently running tasks.
func (w *WorkerPool) WorkerCount() int {
	return w.pool.Cap()
}

// StopAndWait stops accepting new tasks, waits for all submitted tasks to finish and releases the workers.
func (w *WorkerPool) StopAndWait() {
	if !w.markShutdown() {
		return
	}

	w.tasksWaitGroup.Wait()
	w.pool.Release()

	w.optsLogger.Debug("worker pool stopped")
}

// Shutdown stops accepting new tasks and releases the workers without waiting for running tasks.
func (w *WorkerPool) Shutdown() {
	if !w.markShutdown() {
		return
	}

	w.pool.Release()

	w.optsLogger.Debug("worker pool shut down", zap.Int64("pendingTasks", w.pendingTasks.Load()))
}

func (w *WorkerPool) markShutdown() (wasRunning bool) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.isShutdown {
		return false
	}
	w.isShutdown = true

	return true
}

func (w *WorkerPool) markDone() {
	w.pendingTasks.Dec()
	w.tasksWaitGroup.Done()
}

// run executes the task and marks it as done after a panic was recovered and logged.
func (w *WorkerPool) run(task func()) {
	defer w.markDone()
	defer func() {
		if recovered := recover(); recovered != nil {
			w.optsLogger.Error("recovered from panic in worker pool", zap.Any("panic", recovered), zap.StackSkip("stack", 2))
		}
	}()

	task()
}

// WithWorkerCount sets the maximum number of concurrently running tasks (default: 2 * NumCPU).
func WithWorkerCount(workerCount int) options.Option[WorkerPool] {
	return func(w *WorkerPool) {
		w.optsWorkerCount = workerCount
	}
}

// WithNonBlocking makes Submit fail with ErrPoolOverloaded instead of waiting for a free worker.
func WithNonBlocking(nonBlocking bool) options.Option[WorkerPool] {
	return func(w *WorkerPool) {
		w.optsNonBlocking = nonBlocking
	}
}

// WithLogger sets the logger that is used to report recovered panics.
func WithLogger(logger *zap.Logger) options.Option[WorkerPool] {
	return func(w *WorkerPool) {
		if logger != nil {
			w.optsLogger = logger
		}
	}
}
