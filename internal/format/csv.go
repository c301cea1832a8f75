package format

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/sdlp-org/sdlp-sub001/pkg/types"
)

// renderCSV writes one row per result under a fixed header, then a separate
// capacity block with its own header. Quoting follows RFC 4180 via
// encoding/csv.
func renderCSV(suite *types.BenchmarkSuite) (string, error) {
	var b strings.Builder

	w := csv.NewWriter(&b)
	if err := w.Write([]string{"name", "category", "iterations", "totalTime", "averageTime", "operationsPerSecond"}); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range suite.Results {
		row := []string{
			r.Name,
			string(r.Category),
			strconv.Itoa(r.Iterations),
			formatFloat(r.TotalTime),
			formatFloat(r.AverageTime),
			formatFloat(r.OperationsPerSecond),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	b.WriteByte('\n')

	cw := csv.NewWriter(&b)
	if err := cw.Write([]string{"payloadSize", "urlLength", "efficiency", "compressionRatio"}); err != nil {
		return "", fmt.Errorf("write capacity header: %w", err)
	}
	for _, c := range suite.CapacityAnalysis {
		row := []string{
			strconv.Itoa(c.PayloadSize),
			strconv.Itoa(c.URLLength),
			formatFloat(c.Efficiency),
			formatFloat(c.CompressionRatio),
		}
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("write capacity row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flush capacity csv: %w", err)
	}

	return b.String(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
