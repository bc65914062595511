package embedding

import (
	"context"
	"time"

	"docuhub/internal/rag/interfaces"
	"docuhub/pkg/circuitbreaker"
)

// ResilientModel wraps an EmbeddingModel with a circuit breaker so a
// dead provider fails fast instead of stalling every pipeline worker
// on its timeout.
type ResilientModel struct {
	inner   interfaces.EmbeddingModel
	breaker circuitbreaker.CircuitBreaker
}

// WithBreaker decorates a model. Five consecutive failures open the
// circuit for thirty seconds; two trial successes close it again.
func WithBreaker(inner interfaces.EmbeddingModel) *ResilientModel {
	return &ResilientModel{
		inner:   inner,
		breaker: circuitbreaker.New(5, 2, 30*time.Second),
	}
}

func (m *ResilientModel) Model() string { return m.inner.Model() }

func (m *ResilientModel) Embed(ctx context.Context, text string) ([]float32, error) {
	var vec []float32
	err := m.breaker.Execute(func() error {
		var err error
		vec, err = m.inner.Embed(ctx, text)
		return err
	})
	if err != nil {
		return nil, err
	}
	return vec, nil
}

func (m *ResilientModel) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var vecs [][]float32
	err := m.breaker.Execute(func() error {
		var err error
		vecs, err = m.inner.EmbedBatch(ctx, texts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return vecs, nil
}

var _ interfaces.EmbeddingModel = (*ResilientModel)(nil)
