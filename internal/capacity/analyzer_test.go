package capacity_test

import (
	"math"
	"testing"

	"github.com/sdlp-org/sdlp-sub001/internal/capacity"
	bencherr "github.com/sdlp-org/sdlp-sub001/pkg/errors"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name           string
		payloadSize    int
		urlLength      int
		wantEfficiency float64
	}{
		{name: "typical expansion", payloadSize: 100, urlLength: 250, wantEfficiency: 0.4},
		{name: "expansion above one", payloadSize: 300, urlLength: 200, wantEfficiency: 1.5},
		{name: "empty payload", payloadSize: 0, urlLength: 40, wantEfficiency: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := capacity.Analyze(tt.payloadSize, tt.urlLength)
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if got.Efficiency != tt.wantEfficiency {
				t.Errorf("Efficiency = %v, want %v", got.Efficiency, tt.wantEfficiency)
			}
			if got.PayloadSize != tt.payloadSize || got.URLLength != tt.urlLength {
				t.Errorf("sizes not preserved: got %+v", got)
			}
			if got.CompressionRatio != 1.0 {
				t.Errorf("CompressionRatio = %v, want 1.0 when no compression applied", got.CompressionRatio)
			}
		})
	}
}

func TestAnalyzeCompressed(t *testing.T) {
	got, err := capacity.AnalyzeCompressed(1000, 400, 600)
	if err != nil {
		t.Fatalf("AnalyzeCompressed() error = %v", err)
	}
	if got.CompressionRatio != 0.4 {
		t.Errorf("CompressionRatio = %v, want 0.4", got.CompressionRatio)
	}
	if math.IsInf(got.Efficiency, 0) || math.IsNaN(got.Efficiency) {
		t.Errorf("Efficiency = %v, must be finite", got.Efficiency)
	}
}

func TestAnalyzeZeroURLLength(t *testing.T) {
	_, err := capacity.Analyze(100, 0)
	if !bencherr.HasCode(err, bencherr.ErrCodeDivisionByZero) {
		t.Fatalf("Analyze(urlLength=0) error = %v, want DIVISION_BY_ZERO", err)
	}
}

func TestAnalyzeCompressedEmptyPayloadRatioFallback(t *testing.T) {
	got, err := capacity.AnalyzeCompressed(0, 8, 20)
	if err != nil {
		t.Fatalf("AnalyzeCompressed() error = %v", err)
	}
	if got.CompressionRatio != 1.0 {
		t.Errorf("CompressionRatio = %v, want fallback 1.0 for empty payload", got.CompressionRatio)
	}
}
