package stress

import (
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap/zapcore"
)

// Report contains the statistics of a stress run.
type Report struct {
	// Inserts is the number of successful insertions.
	Inserts atomic.Int64
	// Removes is the number of successful removals.
	Removes atomic.Int64
	// Reads is the number of successful reads (single elements and full iterations).
	Reads atomic.Int64
	// Misses is the number of operations that failed with linkedlist.ErrNotFound.
	Misses atomic.Int64
	// Snapshots is the number of verified snapshots.
	Snapshots atomic.Int64
	// TornDown is the number of executed teardowns.
	TornDown atomic.Int64

	// FinalLength is the length of the list before it was destroyed.
	FinalLength int
	// Duration is the wall time of the run.
	Duration time.Duration
}

// Executed returns the number of operations that were executed.
func (r *Report) Executed() int64 {
	return r.Inserts.Load() + r.Removes.Load() + r.Reads.Load() + r.Misses.Load()
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (r *Report) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddInt64("inserts", r.Inserts.Load())
	encoder.AddInt64("removes", r.Removes.Load())
	encoder.AddInt64("reads", r.Reads.Load())
	encoder.AddInt64("misses", r.Misses.Load())
	encoder.AddInt64("snapshots", r.Snapshots.Load())
	encoder.AddInt64("tornDown", r.TornDown.Load())
	encoder.AddInt("finalLength", r.FinalLength)
	encoder.AddDuration("duration", r.Duration)

	return nil
}
