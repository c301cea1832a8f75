// Package format renders a completed benchmark suite as a table, JSON, or
// CSV. Rendering is pure: the suite is read-only and nothing is cached
// between calls.
package format

import (
	"encoding/json"
	"fmt"

	"github.com/sdlp-org/sdlp-sub001/pkg/errors"
	"github.com/sdlp-org/sdlp-sub001/pkg/types"
)

// Render maps (suite, format) to text. An unrecognized format fails with an
// UNSUPPORTED_FORMAT error and produces no output.
func Render(suite *types.BenchmarkSuite, format types.OutputFormat) (string, error) {
	switch format {
	case types.FormatTable:
		return renderTable(suite), nil
	case types.FormatJSON:
		return renderJSON(suite)
	case types.FormatCSV:
		return renderCSV(suite)
	default:
		return "", errors.ErrUnsupportedFormat(string(format))
	}
}

func renderJSON(suite *types.BenchmarkSuite) (string, error) {
	data, err := json.MarshalIndent(suite, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode suite: %w", err)
	}
	return string(data) + "\n", nil
}
