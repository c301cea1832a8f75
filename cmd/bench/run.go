// Package bench implements the `sdlp-bench run` subcommand: execute the full
// benchmark suite and print the formatted output to stdout, with a short
// digest on stderr.
package bench

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/sdlp-org/sdlp-sub001/internal/config"
	"github.com/sdlp-org/sdlp-sub001/internal/format"
	"github.com/sdlp-org/sdlp-sub001/internal/logging"
	"github.com/sdlp-org/sdlp-sub001/internal/monitor"
	"github.com/sdlp-org/sdlp-sub001/internal/runner"
	"github.com/sdlp-org/sdlp-sub001/internal/sdlp"
	"github.com/sdlp-org/sdlp-sub001/pkg/types"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func Run(args []string, version string) int {
	cfg := config.DefaultConfig()

	flagSet := flag.NewFlagSet("sdlp-bench run", flag.ContinueOnError)
	flagSet.SetOutput(os.Stderr)
	formatFlag := flagSet.String("format", "", "Output format: table, json, csv")
	iterations := flagSet.Int("iterations", 0, "Iterations per timed scenario (applies to all categories)")
	warmup := flagSet.Int("warmup", -1, "Warm-up iterations, excluded from results")
	configPath := flagSet.String("config", "", "YAML config file")
	monitorAddr := flagSet.String("monitor", "", "Serve live progress over websocket on this address")
	logLevel := flagSet.String("log-level", "", "Log level: debug, info, warn, error")
	quiet := flagSet.Bool("quiet", false, "Suppress the stderr progress digest")
	flagSet.BoolVar(quiet, "q", false, "Suppress the stderr progress digest (short)")

	if err := flagSet.Parse(args); err != nil {
		return exitUsage
	}

	if *configPath != "" {
		if err := cfg.LoadFromFile(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "sdlp-bench: %v\n", err)
			return exitError
		}
	}
	if err := cfg.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "sdlp-bench: %v\n", err)
		return exitError
	}

	// Flags win over file and environment.
	if *formatFlag != "" {
		cfg.Format = types.OutputFormat(*formatFlag)
	}
	if *iterations > 0 {
		cfg.CreationIterations = *iterations
		cfg.VerificationIterations = *iterations
		cfg.CompressionIterations = *iterations
	}
	if *warmup >= 0 {
		cfg.WarmupIterations = *warmup
	}
	if *monitorAddr != "" {
		cfg.MonitorAddress = *monitorAddr
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "sdlp-bench: invalid config: %v\n", err)
		return exitUsage
	}

	logging.Init(logging.ParseLevel(cfg.LogLevel))

	ops, err := sdlp.NewReferenceOps()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sdlp-bench: %v\n", err)
		return exitError
	}

	var sinks multiSink
	if !*quiet {
		sinks = append(sinks, &digestSink{
			out:   os.Stderr,
			isTTY: term.IsTerminal(int(os.Stderr.Fd())),
		})
	}
	if cfg.MonitorAddress != "" {
		mon := monitor.NewServer()
		if err := mon.Start(cfg.MonitorAddress); err != nil {
			fmt.Fprintf(os.Stderr, "sdlp-bench: start monitor: %v\n", err)
			return exitError
		}
		defer mon.Close()
		sinks = append(sinks, mon)
	}

	r := runner.New(ops, cfg, runner.WithSink(sinks))
	suite, err := r.Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "sdlp-bench: %v\n", err)
		return exitError
	}

	out, err := format.Render(suite, cfg.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sdlp-bench: %v\n", err)
		return exitError
	}
	fmt.Fprint(os.Stdout, out)

	if !*quiet {
		fmt.Fprintf(os.Stderr, "done: %d tests in %.2f ms (avg create %.2f ms, avg verify %.2f ms)\n",
			suite.Summary.TotalTests,
			suite.Summary.TotalTime,
			suite.Summary.AverageCreationTime,
			suite.Summary.AverageVerificationTime)
	}

	return exitOK
}

// multiSink fans progress events out to every attached sink.
type multiSink []runner.ProgressSink

func (m multiSink) Publish(ev runner.ProgressEvent) {
	for _, s := range m {
		s.Publish(ev)
	}
}

// digestSink writes a one-line-per-scenario progress digest to stderr. On a
// TTY it overwrites the line in place.
type digestSink struct {
	out   io.Writer
	isTTY bool
}

func (d *digestSink) Publish(ev runner.ProgressEvent) {
	switch ev.Type {
	case "run_started":
		fmt.Fprintf(d.out, "running %d scenarios...\n", ev.Total)
	case "scenario":
		if d.isTTY {
			fmt.Fprintf(d.out, "\r[%d/%d] %-50s", ev.Completed, ev.Total, ev.Scenario)
			if ev.Completed == ev.Total {
				fmt.Fprintln(d.out)
			}
		} else {
			fmt.Fprintf(d.out, "[%d/%d] %s\n", ev.Completed, ev.Total, ev.Scenario)
		}
	case "run_failed":
		if d.isTTY {
			fmt.Fprintln(d.out)
		}
	}
}
