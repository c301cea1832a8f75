// Package types defines the benchmark suite data model. The JSON field names
// are a stable contract for downstream consumers that parse JSON-format output.
package types

type Category string

const (
	CategoryCreation     Category = "creation"
	CategoryVerification Category = "verification"
	CategoryCompression  Category = "compression"
	CategoryCapacity     Category = "capacity"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryCreation, CategoryVerification, CategoryCompression, CategoryCapacity:
		return true
	}
	return false
}

type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatCSV   OutputFormat = "csv"
)

func (f OutputFormat) Valid() bool {
	switch f {
	case FormatTable, FormatJSON, FormatCSV:
		return true
	}
	return false
}

// BenchmarkResult is one measured scenario. Times are in milliseconds.
// OperationsPerSecond is 0 when AverageTime is 0 (too fast to measure),
// never Inf or NaN.
type BenchmarkResult struct {
	Name                string         `json:"name"`
	Category            Category       `json:"category"`
	Iterations          int            `json:"iterations"`
	TotalTime           float64        `json:"totalTime"`
	AverageTime         float64        `json:"averageTime"`
	OperationsPerSecond float64        `json:"operationsPerSecond"`
	Metadata            map[string]any `json:"metadata,omitempty"`
}

// PayloadSizeTest is an input fixture. Data length equals Size for
// generated fixtures.
type PayloadSizeTest struct {
	Size                     int     `json:"size"`
	Description              string  `json:"description"`
	Data                     []byte  `json:"data"`
	ExpectedCompressionRatio float64 `json:"expectedCompressionRatio,omitempty"`
}

// CapacityTest relates payload bytes in to encoded link characters out.
type CapacityTest struct {
	PayloadSize      int     `json:"payloadSize"`
	URLLength        int     `json:"urlLength"`
	Efficiency       float64 `json:"efficiency"`
	CompressionRatio float64 `json:"compressionRatio"`
}

type Summary struct {
	TotalTests              int     `json:"totalTests"`
	TotalTime               float64 `json:"totalTime"`
	AverageCreationTime     float64 `json:"averageCreationTime"`
	AverageVerificationTime float64 `json:"averageVerificationTime"`
}

// Environment identifies the host the suite ran on. All fields are opaque
// strings supplied by the runner.
type Environment struct {
	Runtime     string `json:"runtime"`
	Platform    string `json:"platform"`
	Arch        string `json:"arch"`
	SDLPVersion string `json:"sdlpVersion"`
}

// BenchmarkSuite is one complete run. Results and CapacityAnalysis preserve
// scenario-definition order; the suite is immutable once returned by the
// runner.
type BenchmarkSuite struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	Timestamp        string            `json:"timestamp"`
	Environment      Environment       `json:"environment"`
	Results          []BenchmarkResult `json:"results"`
	CapacityAnalysis []CapacityTest    `json:"capacityAnalysis"`
	Summary          Summary           `json:"summary"`
}
