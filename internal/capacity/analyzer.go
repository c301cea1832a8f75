// Package capacity computes payload-to-link size tradeoffs. All functions are
// pure and safe to call concurrently.
package capacity

import (
	"github.com/sdlp-org/sdlp-sub001/pkg/errors"
	"github.com/sdlp-org/sdlp-sub001/pkg/types"
)

// Analyze relates raw payload bytes to the final encoded link length when no
// intermediate compression was applied. URLLength must be positive.
func Analyze(payloadSize, urlLength int) (types.CapacityTest, error) {
	return AnalyzeCompressed(payloadSize, payloadSize, urlLength)
}

// AnalyzeCompressed additionally accounts for a compressed intermediate
// representation. The compression ratio compares compressed to raw bytes and
// falls back to 1.0 for an empty payload. Fails with a DIVISION_BY_ZERO error
// when urlLength is 0; never returns Inf or NaN.
func AnalyzeCompressed(payloadSize, compressedSize, urlLength int) (types.CapacityTest, error) {
	if urlLength == 0 {
		return types.CapacityTest{}, errors.ErrDivisionByZero("url length is zero")
	}

	ratio := 1.0
	if payloadSize > 0 {
		ratio = float64(compressedSize) / float64(payloadSize)
	}

	return types.CapacityTest{
		PayloadSize:      payloadSize,
		URLLength:        urlLength,
		Efficiency:       float64(payloadSize) / float64(urlLength),
		CompressionRatio: ratio,
	}, nil
}
