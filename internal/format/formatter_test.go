package format_test

import (
	"encoding/csv"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/sdlp-org/sdlp-sub001/internal/format"
	bencherr "github.com/sdlp-org/sdlp-sub001/pkg/errors"
	"github.com/sdlp-org/sdlp-sub001/pkg/types"
)

func sampleSuite() *types.BenchmarkSuite {
	return &types.BenchmarkSuite{
		Name:      "SDLP Benchmark",
		Version:   "1.0.0",
		Timestamp: "2026-08-30T12:00:00Z",
		Environment: types.Environment{
			Runtime:     "go1.25.0",
			Platform:    "linux",
			Arch:        "amd64",
			SDLPVersion: "go-sdlp/0.3.1 (reference)",
		},
		Results: []types.BenchmarkResult{
			{
				Name:                "Create link (32 B payload)",
				Category:            types.CategoryCreation,
				Iterations:          100,
				TotalTime:           12.5,
				AverageTime:         0.125,
				OperationsPerSecond: 8000,
			},
			{
				Name:                `Verify link, "quoted" label`,
				Category:            types.CategoryVerification,
				Iterations:          100,
				TotalTime:           25,
				AverageTime:         0.25,
				OperationsPerSecond: 4000,
			},
			{
				Name:                "Compress payload (32 B payload)",
				Category:            types.CategoryCompression,
				Iterations:          100,
				TotalTime:           5,
				AverageTime:         0.05,
				OperationsPerSecond: 20000,
			},
		},
		CapacityAnalysis: []types.CapacityTest{
			{PayloadSize: 100, URLLength: 250, Efficiency: 0.4, CompressionRatio: 0.8},
		},
		Summary: types.Summary{
			TotalTests:              3,
			TotalTime:               42.5,
			AverageCreationTime:     0.125,
			AverageVerificationTime: 0.25,
		},
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	suite := sampleSuite()

	out, err := format.Render(suite, types.FormatJSON)
	if err != nil {
		t.Fatalf("Render(json) error = %v", err)
	}

	var parsed types.BenchmarkSuite
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("output does not parse back: %v", err)
	}
	if !reflect.DeepEqual(&parsed, suite) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", parsed, *suite)
	}
}

func TestRenderJSONFieldNames(t *testing.T) {
	out, err := format.Render(sampleSuite(), types.FormatJSON)
	if err != nil {
		t.Fatalf("Render(json) error = %v", err)
	}

	for _, field := range []string{
		`"name"`, `"category"`, `"iterations"`, `"totalTime"`, `"averageTime"`,
		`"operationsPerSecond"`, `"payloadSize"`, `"urlLength"`, `"efficiency"`,
		`"compressionRatio"`, `"capacityAnalysis"`, `"totalTests"`,
		`"averageCreationTime"`, `"averageVerificationTime"`, `"timestamp"`, `"environment"`,
	} {
		if !strings.Contains(out, field) {
			t.Errorf("json output missing field %s", field)
		}
	}
}

func TestRenderCSV(t *testing.T) {
	suite := sampleSuite()

	out, err := format.Render(suite, types.FormatCSV)
	if err != nil {
		t.Fatalf("Render(csv) error = %v", err)
	}

	blocks := strings.SplitN(out, "\n\n", 2)
	if len(blocks) != 2 {
		t.Fatalf("csv output should contain a results block and a capacity block:\n%s", out)
	}

	rows, err := csv.NewReader(strings.NewReader(blocks[0])).ReadAll()
	if err != nil {
		t.Fatalf("results block does not parse as csv: %v", err)
	}
	wantHeader := []string{"name", "category", "iterations", "totalTime", "averageTime", "operationsPerSecond"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("results header = %v, want %v", rows[0], wantHeader)
	}
	if got, want := len(rows)-1, len(suite.Results); got != want {
		t.Errorf("results data rows = %d, want %d", got, want)
	}
	// The quoted name must survive csv quoting intact.
	if rows[2][0] != `Verify link, "quoted" label` {
		t.Errorf("quoted name mangled: %q", rows[2][0])
	}

	capRows, err := csv.NewReader(strings.NewReader(blocks[1])).ReadAll()
	if err != nil {
		t.Fatalf("capacity block does not parse as csv: %v", err)
	}
	wantCapHeader := []string{"payloadSize", "urlLength", "efficiency", "compressionRatio"}
	if !reflect.DeepEqual(capRows[0], wantCapHeader) {
		t.Errorf("capacity header = %v, want %v", capRows[0], wantCapHeader)
	}
	if got, want := len(capRows)-1, len(suite.CapacityAnalysis); got != want {
		t.Errorf("capacity data rows = %d, want %d", got, want)
	}
}

func TestRenderTable(t *testing.T) {
	out, err := format.Render(sampleSuite(), types.FormatTable)
	if err != nil {
		t.Fatalf("Render(table) error = %v", err)
	}

	for _, want := range []string{
		"SDLP Benchmark v1.0.0",
		"CREATION",
		"VERIFICATION",
		"COMPRESSION",
		"CAPACITY ANALYSIS",
		"SUMMARY",
		"go-sdlp/0.3.1 (reference)",
		"40.00%", // efficiency rendered as a percentage
		"Total tests:          3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q\n%s", want, out)
		}
	}
}

func TestRenderDoesNotMutateSuite(t *testing.T) {
	suite := sampleSuite()
	want := sampleSuite()

	for _, f := range []types.OutputFormat{types.FormatTable, types.FormatJSON, types.FormatCSV} {
		if _, err := format.Render(suite, f); err != nil {
			t.Fatalf("Render(%s) error = %v", f, err)
		}
	}
	if !reflect.DeepEqual(suite, want) {
		t.Error("Render mutated the suite")
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	out, err := format.Render(sampleSuite(), types.OutputFormat("xml"))
	if !bencherr.HasCode(err, bencherr.ErrCodeUnsupportedFormat) {
		t.Fatalf("Render(xml) error = %v, want UNSUPPORTED_FORMAT", err)
	}
	if out != "" {
		t.Errorf("Render(xml) produced output %q, want none", out)
	}
}
