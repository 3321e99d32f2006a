package stress

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"github.com/iotaledger/rwlist/ierrors"
	"github.com/iotaledger/rwlist/workerpool"
)

func testConfig() Config {
	return Config{
		Workers:        4,
		Operations:     3000,
		Seed:           42,
		VerifyInterval: time.Millisecond,
	}
}

func TestRun(t *testing.T) {
	report, err := Run(context.Background(), testConfig(), nil, zaptest.NewLogger(t, zaptest.Level(zapcore.InfoLevel)))
	require.NoError(t, err)

	require.EqualValues(t, 3000, report.Executed())
	require.EqualValues(t, report.Inserts.Load()-report.Removes.Load(), report.FinalLength)
	require.Equal(t, report.Inserts.Load(), report.TornDown.Load())
	require.Positive(t, report.Inserts.Load())
	require.Positive(t, report.Snapshots.Load())
}

func TestRun_SharedPool(t *testing.T) {
	pool := workerpool.New(t.Name(), workerpool.WithWorkerCount(8))
	defer pool.StopAndWait()

	for seed := int64(0); seed < 3; seed++ {
		cfg := testConfig()
		cfg.Seed = seed

		report, err := Run(context.Background(), cfg, pool, nil)
		require.NoError(t, err)
		require.EqualValues(t, cfg.Operations, report.Executed())
	}

	require.Zero(t, pool.PendingTasks())
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Run(ctx, testConfig(), nil, nil)
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, ierrors.Is(err, ErrInvariantViolated))
	require.Equal(t, report.Inserts.Load(), report.TornDown.Load())
}

func TestRun_ShutdownPool(t *testing.T) {
	pool := workerpool.New(t.Name())
	pool.Shutdown()

	_, err := Run(context.Background(), testConfig(), pool, nil)
	require.True(t, ierrors.Is(err, workerpool.ErrPoolShutdown))
}

func TestRun_InvalidConfig(t *testing.T) {
	for name, cfg := range map[string]Config{
		"workers":        {Workers: 0, Operations: 1, VerifyInterval: time.Millisecond},
		"operations":     {Workers: 1, Operations: -1, VerifyInterval: time.Millisecond},
		"verifyInterval": {Workers: 1, Operations: 1},
	} {
		_, err := Run(context.Background(), cfg, nil, nil)
		require.Error(t, err, name)
	}
}

func TestVerifySnapshot(t *testing.T) {
	r := &runner{cfg: testConfig(), report: new(Report)}
	r.list = newTestList(1, 2, 3)
	require.NoError(t, r.verifySnapshot())
	require.EqualValues(t, 1, r.report.Snapshots.Load())

	r.list = newTestList(1, 2, 1)
	require.True(t, ierrors.Is(r.verifySnapshot(), ErrInvariantViolated))

	r.list = newTestList(1, 5000)
	require.True(t, ierrors.Is(r.verifySnapshot(), ErrInvariantViolated))
}

func TestOperationTask_BindsValue(t *testing.T) {
	r := &runner{cfg: testConfig(), report: new(Report)}
	r.list = newTestList()

	tasks := make([]func(), 0, 10)
	for value := 0; value < 10; value++ {
		r.tasks.Add(1)
		tasks = append(tasks, r.operationTask(insertFirst, 0, value))
	}

	for _, task := range tasks {
		task()
	}
	r.tasks.Wait()

	require.Equal(t, []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}, r.list.Values())
	require.EqualValues(t, 10, r.report.Inserts.Load())
}
