package embedding

import (
	"errors"
	"testing"

	"docuhub/internal/errs"
)

func TestValidateDimensionKnownModel(t *testing.T) {
	vec := make([]float32, 1536)
	if err := ValidateDimension(vec, "text-embedding-3-small"); err != nil {
		t.Errorf("1536-length vector should be valid for text-embedding-3-small: %v", err)
	}
}

func TestValidateDimensionMismatch(t *testing.T) {
	vec := make([]float32, 100)
	err := ValidateDimension(vec, "text-embedding-3-small")
	if err == nil {
		t.Fatal("100-length vector should be rejected for text-embedding-3-small")
	}

	var mismatch *errs.DimensionMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected DimensionMismatch, got %T", err)
	}
	if mismatch.Expected != 1536 || mismatch.Actual != 100 {
		t.Errorf("expected=%d actual=%d, want expected=1536 actual=100", mismatch.Expected, mismatch.Actual)
	}
}

func TestValidateDimensionUnknownModelBounds(t *testing.T) {
	if err := ValidateDimension(make([]float32, 768), "some-new-model"); err != nil {
		t.Errorf("768 is within sane bounds for an unknown model: %v", err)
	}
	if err := ValidateDimension(make([]float32, 64), "some-new-model"); err == nil {
		t.Error("64 is below the sane lower bound and should be rejected")
	}
	if err := ValidateDimension(make([]float32, 20000), "some-new-model"); err == nil {
		t.Error("20000 is above the sane upper bound and should be rejected")
	}
}

func TestValidateBatchStopsOnFirstBadVector(t *testing.T) {
	vectors := [][]float32{
		make([]float32, 1536),
		make([]float32, 12),
	}
	if err := ValidateBatch(vectors, "text-embedding-3-small"); err == nil {
		t.Error("batch containing a short vector should fail validation")
	}
}
