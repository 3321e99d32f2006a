package stress

import (
	"context"
	"io"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iotaledger/rwlist/ds/linkedlist"
	"github.com/iotaledger/rwlist/ierrors"
	"github.com/iotaledger/rwlist/workerpool"
)

// ErrInvariantViolated is returned if the list ended up in a state that contradicts its guarantees.
var ErrInvariantViolated = ierrors.New("invariant violated")

// operation is a single kind of list access of the operation mix.
type operation uint8

const (
	insertFirst operation = iota
	insertLast
	insertAt
	removeFirst
	removeAt
	removeFirstMatching
	getAt
	getFirst
	iterate
	dump

	operationCount
)

// Run executes cfg.Operations randomly chosen operations on a shared list using the given worker pool (a pool with
// cfg.Workers workers is created if it is nil). Snapshots of the list are checked in cfg.VerifyInterval while the
// operations are running. Afterwards the list is destroyed and the final state is checked.
func Run(ctx context.Context, cfg Config, pool *workerpool.WorkerPool, log *zap.Logger) (*Report, error) {
	if err := cfg.validate(); err != nil {
		return nil, ierrors.Wrap(err, "invalid stress configuration")
	}

	if log == nil {
		log = zap.NewNop()
	}

	if pool == nil {
		pool = workerpool.New("stress", workerpool.WithWorkerCount(cfg.Workers), workerpool.WithLogger(log))
		defer pool.StopAndWait()
	}

	r := &runner{
		cfg:    cfg,
		pool:   pool,
		log:    log,
		report: new(Report),
	}

	return r.run(ctx)
}

// runner holds the state of a single stress run.
type runner struct {
	cfg    Config
	pool   *workerpool.WorkerPool
	log    *zap.Logger
	report *Report

	list            linkedlist.List[int]
	tasks           sync.WaitGroup
	unexpectedError atomic.Error
}

func (r *runner) run(ctx context.Context) (*Report, error) {
	start := time.Now()

	r.list = linkedlist.New[int](func(int) { r.report.TornDown.Inc() },
		linkedlist.WithDefaultDumper[int](strconv.Itoa),
		linkedlist.WithOutput[int](io.Discard),
		linkedlist.WithLogger[int](r.log.Named("list")),
	)

	r.log.Debug("starting stress run", zap.Int("operations", r.cfg.Operations), zap.Int64("seed", r.cfg.Seed), zap.Int("workers", r.pool.WorkerCount()))

	producerDone := make(chan struct{})
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer close(producerDone)

		return r.produce(groupCtx)
	})
	group.Go(func() error {
		return r.verify(groupCtx, producerDone)
	})

	runErr := group.Wait()
	r.tasks.Wait()

	if err := r.unexpectedError.Load(); err != nil {
		runErr = ierrors.Join(runErr, err)
	}

	r.report.FinalLength = len(r.list.Values())
	expectedLength := int(r.report.Inserts.Load() - r.report.Removes.Load())
	size := r.list.Len()

	r.list.Destroy()
	r.report.Duration = time.Since(start)

	if r.report.FinalLength != size {
		runErr = ierrors.Join(runErr, ierrors.Wrapf(ErrInvariantViolated, "list has %d reachable elements but a size of %d", r.report.FinalLength, size))
	}
	if size != expectedLength {
		runErr = ierrors.Join(runErr, ierrors.Wrapf(ErrInvariantViolated, "list has a size of %d but %d inserts and %d removes succeeded", size, r.report.Inserts.Load(), r.report.Removes.Load()))
	}
	if tornDown, inserts := r.report.TornDown.Load(), r.report.Inserts.Load(); tornDown != inserts {
		runErr = ierrors.Join(runErr, ierrors.Wrapf(ErrInvariantViolated, "%d elements were torn down but %d were inserted", tornDown, inserts))
	}

	return r.report, runErr
}

// produce submits the operations to the worker pool.
func (r *runner) produce(ctx context.Context) error {
	random := rand.New(rand.NewSource(r.cfg.Seed))

	for value := 0; value < r.cfg.Operations; value++ {
		if err := ctx.Err(); err != nil {
			return ierrors.Wrapf(err, "stress run aborted after %d operations", value)
		}

		op, position := operation(random.Intn(int(operationCount))), random.Float64()

		r.tasks.Add(1)
		if err := r.pool.Submit(r.operationTask(op, position, value)); err != nil {
			r.tasks.Done()

			return ierrors.Wrapf(err, "failed to submit operation %d", value)
		}
	}

	return nil
}

// operationTask returns the pool task that executes a single operation and marks it as done.
func (r *runner) operationTask(op operation, position float64, value int) func() {
	return func() {
		defer r.tasks.Done()

		r.execute(op, position, value)
	}
}

// execute runs a single operation. The index of positional operations is derived from the current size of the list.
func (r *runner) execute(op operation, position float64, value int) {
	index := int(position * float64(r.list.Len()+1))

	var err error
	switch op {
	case insertFirst:
		_, err = r.list.InsertFirst(value)
		r.count(err, &r.report.Inserts)
	case insertLast:
		_, err = r.list.InsertLast(value)
		r.count(err, &r.report.Inserts)
	case insertAt:
		_, err = r.list.InsertAt(value, index)
		r.count(err, &r.report.Inserts)
	case removeFirst:
		_, err = r.list.RemoveFirst()
		r.count(err, &r.report.Removes)
	case removeAt:
		_, err = r.list.RemoveAt(index)
		r.count(err, &r.report.Removes)
	case removeFirstMatching:
		_, err = linkedlist.RemoveFirstMatchingFilter(r.list, func(element int, divisor int) bool {
			return element%divisor == 0
		}, 2+value%5)
		r.count(err, &r.report.Removes)
	case getAt:
		_, err = r.list.GetAt(index)
		r.count(err, &r.report.Reads)
	case getFirst:
		_, err = r.list.GetFirst()
		r.count(err, &r.report.Reads)
	case iterate:
		visited := 0
		err = r.list.ForEach(func(int) error {
			if visited++; visited > index {
				return errIterationLimit
			}

			return nil
		})
		if ierrors.Is(err, errIterationLimit) {
			err = nil
		}
		r.count(err, &r.report.Reads)
	case dump:
		r.list.Dump()
		r.count(nil, &r.report.Reads)
	}
}

var errIterationLimit = ierrors.New("iteration limit reached")

// count increases the given counter if the operation succeeded and the miss counter if it failed with
// linkedlist.ErrNotFound. Other errors abort the run.
func (r *runner) count(err error, successCounter *atomic.Int64) {
	switch {
	case err == nil:
		successCounter.Inc()
	case ierrors.Is(err, linkedlist.ErrNotFound):
		r.report.Misses.Inc()
	default:
		r.unexpectedError.Store(ierrors.Wrap(err, "operation failed with an unexpected error"))
	}
}

// verify checks snapshots of the list until the producer is done (and once more afterwards).
func (r *runner) verify(ctx context.Context, producerDone <-chan struct{}) error {
	ticker := time.NewTicker(r.cfg.VerifyInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-producerDone:
			return r.verifySnapshot()
		case <-ticker.C:
			if err := r.verifySnapshot(); err != nil {
				return err
			}
		}
	}
}

// verifySnapshot checks that a traversal of the list never yields an element twice or an element that was never
// inserted.
func (r *runner) verifySnapshot() error {
	seen := make(map[int]struct{})
	for _, value := range r.list.Values() {
		if value < 0 || value >= r.cfg.Operations {
			return ierrors.Wrapf(ErrInvariantViolated, "snapshot contains unknown value %d", value)
		}

		if _, exists := seen[value]; exists {
			return ierrors.Wrapf(ErrInvariantViolated, "snapshot contains value %d twice", value)
		}
		seen[value] = struct{}{}
	}

	r.report.Snapshots.Inc()

	return nil
}
