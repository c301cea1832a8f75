package format

import (
	"fmt"
	"strings"

	"github.com/sdlp-org/sdlp-sub001/pkg/types"
)

// categoryOrder fixes the section order of the table. Capacity results live
// in their own section, not here.
var categoryOrder = []types.Category{
	types.CategoryCreation,
	types.CategoryVerification,
	types.CategoryCompression,
	types.CategoryCapacity,
}

func renderTable(suite *types.BenchmarkSuite) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s v%s\n", suite.Name, suite.Version)
	fmt.Fprintf(&b, "Timestamp: %s\n", suite.Timestamp)
	fmt.Fprintf(&b, "Runtime:   %s (%s/%s)\n",
		suite.Environment.Runtime, suite.Environment.Platform, suite.Environment.Arch)
	fmt.Fprintf(&b, "Protocol:  %s\n", suite.Environment.SDLPVersion)
	b.WriteByte('\n')

	for _, cat := range categoryOrder {
		rows := resultsByCategory(suite.Results, cat)
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s\n", strings.ToUpper(string(cat)))
		fmt.Fprintf(&b, "  %-36s %10s %12s %14s\n", "NAME", "ITER", "AVG MS", "OPS/SEC")
		for _, r := range rows {
			fmt.Fprintf(&b, "  %-36s %10d %12.2f %14.2f\n",
				r.Name, r.Iterations, r.AverageTime, r.OperationsPerSecond)
		}
		b.WriteByte('\n')
	}

	if len(suite.CapacityAnalysis) > 0 {
		b.WriteString("CAPACITY ANALYSIS\n")
		fmt.Fprintf(&b, "  %12s %12s %12s %8s\n", "PAYLOAD B", "URL LEN", "EFFICIENCY", "RATIO")
		for _, c := range suite.CapacityAnalysis {
			fmt.Fprintf(&b, "  %12d %12d %11.2f%% %8.2f\n",
				c.PayloadSize, c.URLLength, c.Efficiency*100, c.CompressionRatio)
		}
		b.WriteByte('\n')
	}

	b.WriteString("SUMMARY\n")
	fmt.Fprintf(&b, "  Total tests:          %d\n", suite.Summary.TotalTests)
	fmt.Fprintf(&b, "  Total time:           %.2f ms\n", suite.Summary.TotalTime)
	fmt.Fprintf(&b, "  Avg creation time:    %.2f ms\n", suite.Summary.AverageCreationTime)
	fmt.Fprintf(&b, "  Avg verification time: %.2f ms\n", suite.Summary.AverageVerificationTime)

	return b.String()
}

func resultsByCategory(results []types.BenchmarkResult, cat types.Category) []types.BenchmarkResult {
	var out []types.BenchmarkResult
	for _, r := range results {
		if r.Category == cat {
			out = append(out, r)
		}
	}
	return out
}
