// Package runner orchestrates the benchmark scenarios and assembles the
// suite. Scenarios execute strictly in sequence; overlapping timed work would
// contaminate the per-operation measurements.
package runner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/sdlp-org/sdlp-sub001/internal/capacity"
	"github.com/sdlp-org/sdlp-sub001/internal/config"
	"github.com/sdlp-org/sdlp-sub001/internal/logging"
	"github.com/sdlp-org/sdlp-sub001/internal/sdlp"
	"github.com/sdlp-org/sdlp-sub001/internal/timing"
	bencherr "github.com/sdlp-org/sdlp-sub001/pkg/errors"
	"github.com/sdlp-org/sdlp-sub001/pkg/types"
)

// ProgressEvent is published at scenario boundaries, never inside a timed
// region.
type ProgressEvent struct {
	Type      string         `json:"type"` // run_started, scenario, run_complete, run_failed
	RunID     string         `json:"run_id"`
	Scenario  string         `json:"scenario,omitempty"`
	Category  types.Category `json:"category,omitempty"`
	Completed int            `json:"completed"`
	Total     int            `json:"total"`
	Error     string         `json:"error,omitempty"`
}

// ProgressSink receives progress events from a run. Implementations must not
// block for long; they are called between timed scenarios.
type ProgressSink interface {
	Publish(ev ProgressEvent)
}

type Runner struct {
	ops    sdlp.Operations
	cfg    *config.Config
	logger *logging.Logger
	sink   ProgressSink
}

type Option func(*Runner)

// WithSink attaches a progress sink (the stderr digest, the monitor
// broadcaster).
func WithSink(sink ProgressSink) Option {
	return func(r *Runner) { r.sink = sink }
}

func New(ops sdlp.Operations, cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		ops:    ops,
		cfg:    cfg,
		logger: logging.NewLogger("runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every scenario and returns the completed suite. Any protocol
// operation failure aborts the whole run; a suite missing categories is worse
// than no suite.
func (r *Runner) Run(ctx context.Context) (*types.BenchmarkSuite, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, bencherr.ErrInvalidConfig("benchmark config rejected", err)
	}

	runID := uuid.NewString()
	fixtures := BuildFixtures(r.cfg.PayloadSizes)

	// 3 timed scenarios per fixture plus one capacity pass per fixture.
	totalScenarios := len(fixtures) * 4
	completed := 0

	r.logger.Info("benchmark run starting",
		logging.Field{Key: "run_id", Value: runID},
		logging.Field{Key: "fixtures", Value: len(fixtures)},
		logging.Field{Key: "sdlp_version", Value: r.ops.Version()})
	r.publish(ProgressEvent{Type: "run_started", RunID: runID, Total: totalScenarios})

	fail := func(scenario string, err error) (*types.BenchmarkSuite, error) {
		wrapped := bencherr.ErrOperationFailed(scenario, err)
		r.logger.Error("benchmark run aborted",
			logging.Field{Key: "run_id", Value: runID},
			logging.Field{Key: "scenario", Value: scenario},
			logging.Field{Key: "error", Value: err})
		r.publish(ProgressEvent{
			Type:      "run_failed",
			RunID:     runID,
			Scenario:  scenario,
			Completed: completed,
			Total:     totalScenarios,
			Error:     wrapped.Error(),
		})
		return nil, wrapped
	}

	results := make([]types.BenchmarkResult, 0, len(fixtures)*3)

	step := func(name string, cat types.Category, payloadSize, iterations int, op timing.Operation) error {
		m, err := timing.MeasureWarm(ctx, op, iterations, r.cfg.WarmupIterations)
		if err != nil {
			return err
		}
		results = append(results, types.BenchmarkResult{
			Name:                name,
			Category:            cat,
			Iterations:          iterations,
			TotalTime:           m.TotalTime,
			AverageTime:         m.AverageTime,
			OperationsPerSecond: timing.OpsPerSecond(m.AverageTime),
			Metadata:            map[string]any{"payloadSize": payloadSize},
		})
		completed++
		r.publish(ProgressEvent{
			Type:      "scenario",
			RunID:     runID,
			Scenario:  name,
			Category:  cat,
			Completed: completed,
			Total:     totalScenarios,
		})
		return nil
	}

	// Creation: time the full payload-to-link path per fixture.
	for _, f := range fixtures {
		name := fmt.Sprintf("Create link (%s)", f.Description)
		err := step(name, types.CategoryCreation, f.Size, r.cfg.CreationIterations, func(ctx context.Context) error {
			_, err := r.ops.CreateLink(ctx, f.Data)
			return err
		})
		if err != nil {
			return fail(name, err)
		}
	}

	// Verification: each fixture gets one untimed link, verified repeatedly.
	for _, f := range fixtures {
		name := fmt.Sprintf("Verify link (%s)", f.Description)
		link, err := r.ops.CreateLink(ctx, f.Data)
		if err != nil {
			return fail(name, err)
		}
		err = step(name, types.CategoryVerification, f.Size, r.cfg.VerificationIterations, func(ctx context.Context) error {
			_, _, err := r.ops.VerifyLink(ctx, link)
			return err
		})
		if err != nil {
			return fail(name, err)
		}
	}

	// Compression: the encode/compress step in isolation.
	for _, f := range fixtures {
		name := fmt.Sprintf("Compress payload (%s)", f.Description)
		err := step(name, types.CategoryCompression, f.Size, r.cfg.CompressionIterations, func(ctx context.Context) error {
			_, err := r.ops.Compress(f.Data)
			return err
		})
		if err != nil {
			return fail(name, err)
		}
	}

	// Capacity: one untimed encode per fixture, sizes fed to the analyzer.
	capacityTests := make([]types.CapacityTest, 0, len(fixtures))
	for _, f := range fixtures {
		name := fmt.Sprintf("Capacity (%s)", f.Description)
		compressed, err := r.ops.Compress(f.Data)
		if err != nil {
			return fail(name, err)
		}
		link, err := r.ops.CreateLink(ctx, f.Data)
		if err != nil {
			return fail(name, err)
		}
		ct, err := capacity.AnalyzeCompressed(f.Size, len(compressed), len(link))
		if err != nil {
			return fail(name, err)
		}
		capacityTests = append(capacityTests, ct)
		completed++
		r.publish(ProgressEvent{
			Type:      "scenario",
			RunID:     runID,
			Scenario:  name,
			Category:  types.CategoryCapacity,
			Completed: completed,
			Total:     totalScenarios,
		})
	}

	suite := &types.BenchmarkSuite{
		Name:      r.cfg.SuiteName,
		Version:   r.cfg.SuiteVersion,
		Timestamp: time.Now().Format(time.RFC3339),
		Environment: types.Environment{
			Runtime:     runtime.Version(),
			Platform:    runtime.GOOS,
			Arch:        runtime.GOARCH,
			SDLPVersion: r.ops.Version(),
		},
		Results:          results,
		CapacityAnalysis: capacityTests,
		Summary:          Summarize(results),
	}

	r.logger.Info("benchmark run complete",
		logging.Field{Key: "run_id", Value: runID},
		logging.Field{Key: "results", Value: len(results)},
		logging.Field{Key: "total_time_ms", Value: suite.Summary.TotalTime})
	r.publish(ProgressEvent{Type: "run_complete", RunID: runID, Completed: completed, Total: totalScenarios})

	return suite, nil
}

// Summarize reduces results into the suite summary. Category means are 0 when
// a category has no results, never NaN.
func Summarize(results []types.BenchmarkResult) types.Summary {
	s := types.Summary{TotalTests: len(results)}

	var creationSum, verificationSum float64
	var creationCount, verificationCount int
	for _, r := range results {
		s.TotalTime += r.TotalTime
		switch r.Category {
		case types.CategoryCreation:
			creationSum += r.AverageTime
			creationCount++
		case types.CategoryVerification:
			verificationSum += r.AverageTime
			verificationCount++
		}
	}

	if creationCount > 0 {
		s.AverageCreationTime = creationSum / float64(creationCount)
	}
	if verificationCount > 0 {
		s.AverageVerificationTime = verificationSum / float64(verificationCount)
	}
	return s
}

func (r *Runner) publish(ev ProgressEvent) {
	if r.sink != nil {
		r.sink.Publish(ev)
	}
}
