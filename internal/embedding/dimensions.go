package embedding

import "docuhub/internal/errs"

// expectedDimensions maps known embedding models to the vector length
// their provider returns. Vectors for these models must match exactly.
var expectedDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
	"text-embedding-004":     768,
	"embedding-001":          768,
	"nomic-embed-text":       768,
	"mxbai-embed-large":      1024,
}

// Sanity bounds for models not in the table. Anything outside this
// range is corrupt regardless of model.
const (
	minSaneDimension = 128
	maxSaneDimension = 12288
)

// ExpectedDimension returns the known dimension for a model, or 0 when
// the model is not in the table.
func ExpectedDimension(model string) int {
	return expectedDimensions[model]
}

// ValidateDimension checks a vector's length against the expected
// dimension for its model. This is the correctness gate that keeps
// silently corrupt vectors out of the store: a mismatch for a known
// model, or a length outside the sane bounds for an unknown one,
// returns an errs.DimensionMismatch.
func ValidateDimension(vector []float32, model string) error {
	actual := len(vector)

	if expected, ok := expectedDimensions[model]; ok {
		if actual != expected {
			return &errs.DimensionMismatch{Model: model, Expected: expected, Actual: actual}
		}
		return nil
	}

	if actual < minSaneDimension || actual > maxSaneDimension {
		return &errs.DimensionMismatch{Model: model, Expected: 0, Actual: actual}
	}
	return nil
}

// ValidateBatch validates every vector in a batch against the model.
func ValidateBatch(vectors [][]float32, model string) error {
	for _, v := range vectors {
		if err := ValidateDimension(v, model); err != nil {
			return err
		}
	}
	return nil
}
