package stress

import (
	"time"

	"github.com/iotaledger/rwlist/ierrors"
)

// Config holds the settings of a stress run.
type Config struct {
	// Workers is the number of concurrently executed operations if Run creates its own worker pool.
	Workers int `default:"8" usage:"the number of concurrently executed list operations"`
	// Operations is the number of list operations that are executed.
	Operations int `default:"10000" usage:"the number of list operations of a stress run"`
	// Seed makes the mix of operations reproducible.
	Seed int64 `default:"1" usage:"the seed of the random operation mix"`
	// VerifyInterval is the interval in which snapshots of the list are checked while the run is in progress.
	VerifyInterval time.Duration `default:"10ms" usage:"the interval in which snapshots of the list are verified"`
}

// DefaultConfig returns the default settings of a stress run.
func DefaultConfig() Config {
	return Config{
		Workers:        8,
		Operations:     10000,
		Seed:           1,
		VerifyInterval: 10 * time.Millisecond,
	}
}

func (c Config) validate() error {
	if c.Workers <= 0 {
		return ierrors.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Operations < 0 {
		return ierrors.Errorf("operations must not be negative, got %d", c.Operations)
	}
	if c.VerifyInterval <= 0 {
		return ierrors.Errorf("verify interval must be positive, got %s", c.VerifyInterval)
	}

	return nil
}
