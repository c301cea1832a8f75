// Package timing implements the timed-trial primitive: run one operation a
// fixed number of times, sequentially, and report elapsed wall-clock totals
// with sub-millisecond resolution.
package timing

import (
	"context"
	"time"

	"github.com/sdlp-org/sdlp-sub001/pkg/errors"
)

// Operation is a single unit of work under measurement.
type Operation func(ctx context.Context) error

// Measurement holds elapsed times in milliseconds.
type Measurement struct {
	TotalTime   float64
	AverageTime float64
}

// Measure runs op exactly iterations times in sequence. No iteration is
// discarded or reordered; the first error aborts the measurement and
// propagates. Iterations must be >= 1.
func Measure(ctx context.Context, op Operation, iterations int) (Measurement, error) {
	if iterations < 1 {
		return Measurement{}, errors.ErrInvalidConfig("iterations must be >= 1", nil)
	}

	var total time.Duration
	for i := 0; i < iterations; i++ {
		start := time.Now()
		if err := op(ctx); err != nil {
			return Measurement{}, err
		}
		total += time.Since(start)
	}

	totalMs := float64(total) / float64(time.Millisecond)
	return Measurement{
		TotalTime:   totalMs,
		AverageTime: totalMs / float64(iterations),
	}, nil
}

// MeasureWarm runs warmup untimed iterations before measuring. Warm-up work
// is excluded from the reported totals. An error during warm-up aborts the
// same way a measured error does.
func MeasureWarm(ctx context.Context, op Operation, iterations, warmup int) (Measurement, error) {
	for i := 0; i < warmup; i++ {
		if err := op(ctx); err != nil {
			return Measurement{}, err
		}
	}
	return Measure(ctx, op, iterations)
}

// OpsPerSecond derives throughput from an average time in milliseconds.
// A zero average means the operation was too fast to measure; the result is
// the defined sentinel 0, never Inf or NaN.
func OpsPerSecond(averageTimeMs float64) float64 {
	if averageTimeMs <= 0 {
		return 0
	}
	return 1000 / averageTimeMs
}
