package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sdlp-org/sdlp-sub001/pkg/types"
)

type Config struct {
	SuiteName    string `yaml:"suite_name,omitempty"`
	SuiteVersion string `yaml:"suite_version,omitempty"`

	CreationIterations     int `yaml:"creation_iterations,omitempty"`
	VerificationIterations int `yaml:"verification_iterations,omitempty"`
	CompressionIterations  int `yaml:"compression_iterations,omitempty"`

	// WarmupIterations run before each timed scenario and are excluded from
	// reported iterations and totals.
	WarmupIterations int `yaml:"warmup_iterations,omitempty"`

	PayloadSizes []int `yaml:"payload_sizes,omitempty"`

	Format types.OutputFormat `yaml:"format,omitempty"`

	// MonitorAddress enables the live-progress websocket server when set,
	// e.g. "127.0.0.1:9090".
	MonitorAddress string `yaml:"monitor_address,omitempty"`

	LogLevel string `yaml:"log_level,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		SuiteName:              "SDLP Benchmark",
		SuiteVersion:           "1.0.0",
		CreationIterations:     100,
		VerificationIterations: 100,
		CompressionIterations:  100,
		WarmupIterations:       0,
		PayloadSizes:           []int{32, 256, 1024, 4096, 16384},
		Format:                 types.FormatTable,
		MonitorAddress:         "",
		LogLevel:               "info",
	}
}

// LoadFromFile overlays settings from a YAML file onto c. A missing file is
// an error; callers skip the call when no path was given.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if file.SuiteName != "" {
		c.SuiteName = file.SuiteName
	}
	if file.SuiteVersion != "" {
		c.SuiteVersion = file.SuiteVersion
	}
	if file.CreationIterations > 0 {
		c.CreationIterations = file.CreationIterations
	}
	if file.VerificationIterations > 0 {
		c.VerificationIterations = file.VerificationIterations
	}
	if file.CompressionIterations > 0 {
		c.CompressionIterations = file.CompressionIterations
	}
	if file.WarmupIterations > 0 {
		c.WarmupIterations = file.WarmupIterations
	}
	if len(file.PayloadSizes) > 0 {
		c.PayloadSizes = file.PayloadSizes
	}
	if file.Format != "" {
		c.Format = file.Format
	}
	if file.MonitorAddress != "" {
		c.MonitorAddress = file.MonitorAddress
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
	return nil
}

func (c *Config) LoadFromEnv() error {
	if name := os.Getenv("SDLP_BENCH_SUITE_NAME"); name != "" {
		c.SuiteName = name
	}
	if version := os.Getenv("SDLP_BENCH_SUITE_VERSION"); version != "" {
		c.SuiteVersion = version
	}

	for env, dst := range map[string]*int{
		"SDLP_BENCH_CREATION_ITERATIONS":     &c.CreationIterations,
		"SDLP_BENCH_VERIFICATION_ITERATIONS": &c.VerificationIterations,
		"SDLP_BENCH_COMPRESSION_ITERATIONS":  &c.CompressionIterations,
	} {
		if v := os.Getenv(env); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return fmt.Errorf("invalid %s %q: must be a positive integer", env, v)
			}
			*dst = n
		}
	}

	if v := os.Getenv("SDLP_BENCH_WARMUP_ITERATIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid SDLP_BENCH_WARMUP_ITERATIONS %q: must be >= 0", v)
		}
		c.WarmupIterations = n
	}

	if v := os.Getenv("SDLP_BENCH_PAYLOAD_SIZES"); v != "" {
		sizes, err := parseSizes(v)
		if err != nil {
			return fmt.Errorf("invalid SDLP_BENCH_PAYLOAD_SIZES %q: %w", v, err)
		}
		c.PayloadSizes = sizes
	}

	if v := os.Getenv("SDLP_BENCH_FORMAT"); v != "" {
		c.Format = types.OutputFormat(v)
	}
	if v := os.Getenv("SDLP_BENCH_MONITOR_ADDR"); v != "" {
		c.MonitorAddress = v
	}
	if v := os.Getenv("SDLP_BENCH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c.SuiteName == "" {
		return fmt.Errorf("suite name must not be empty")
	}
	if c.CreationIterations < 1 || c.VerificationIterations < 1 || c.CompressionIterations < 1 {
		return fmt.Errorf("iteration counts must be >= 1")
	}
	if c.WarmupIterations < 0 {
		return fmt.Errorf("warmup iterations must be >= 0")
	}
	if len(c.PayloadSizes) == 0 {
		return fmt.Errorf("at least one payload size is required")
	}
	for _, size := range c.PayloadSizes {
		if size < 0 {
			return fmt.Errorf("payload size must be >= 0, got %d", size)
		}
	}
	if !c.Format.Valid() {
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	return nil
}

func parseSizes(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	sizes := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("size must be >= 0, got %d", n)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}
