// rwlist is a driver for the concurrent linked list. It either replays a fixed scenario that dumps the list after every
// modification or runs a randomized concurrent stress test.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	flag "github.com/spf13/pflag"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/iotaledger/rwlist/app/configuration"
	"github.com/iotaledger/rwlist/ierrors"
	"github.com/iotaledger/rwlist/logger"
	"github.com/iotaledger/rwlist/stress"
	"github.com/iotaledger/rwlist/workerpool"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "rwlist: %s\n", err)
		cancel()
		os.Exit(1)
	}
}

// run executes the driver with the given command line arguments. Dumps of the scenario are written to out.
func run(ctx context.Context, args []string, out io.Writer) error {
	container, err := newContainer(args)
	if err != nil {
		if ierrors.Is(err, flag.ErrHelp) {
			return nil
		}

		return err
	}

	var params *Parameters
	if err := container.Invoke(func(p *Parameters) { params = p }); err != nil {
		return unwrapDigError(err)
	}

	switch params.Mode {
	case modeScenario:
		return unwrapDigError(container.Invoke(func(log *zap.Logger) error {
			defer func() { _ = log.Sync() }()

			return runScenario(out, log)
		}))

	case modeStress:
		return unwrapDigError(container.Invoke(func(pool *workerpool.WorkerPool, log *zap.Logger) error {
			defer func() { _ = log.Sync() }()
			defer pool.StopAndWait()

			report, err := stress.Run(ctx, params.Stress, pool, log)
			if report != nil {
				log.Info("stress run finished", zap.Object("report", report))
			}

			return err
		}))

	default:
		return ierrors.Errorf("unknown mode %q (expected %q or %q)", params.Mode, modeScenario, modeStress)
	}
}

// newContainer loads the parameters and registers the components of the driver.
func newContainer(args []string) (*dig.Container, error) {
	config, params, err := loadParameters(args)
	if err != nil {
		return nil, err
	}

	container := dig.New()

	if err := container.Provide(func() (*configuration.Configuration, *Parameters) {
		return config, params
	}); err != nil {
		return nil, ierrors.Wrap(err, "failed to provide parameters")
	}

	if err := container.Provide(logger.NewRootLoggerFromConfiguration); err != nil {
		return nil, ierrors.Wrap(err, "failed to provide logger")
	}

	if err := container.Provide(func(params *Parameters, log *zap.Logger) *workerpool.WorkerPool {
		return workerpool.New("stress", workerpool.WithWorkerCount(params.Stress.Workers), workerpool.WithLogger(log.Named("workerpool")))
	}); err != nil {
		return nil, ierrors.Wrap(err, "failed to provide worker pool")
	}

	return container, nil
}

// unwrapDigError returns the error of the invoked function instead of dig's annotated wrapper.
func unwrapDigError(err error) error {
	if err == nil {
		return nil
	}

	return dig.RootCause(err)
}
