package resolver

import (
	"context"
	"sync/atomic"

	"github.com/balisaldo/saldo/internal/model"
)

// mockEmbedder returns canned vectors per text.
type mockEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   atomic.Int64
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	if vec, ok := m.vectors[text]; ok {
		return vec, nil
	}
	return []float32{0, 0, 1}, nil
}

// failingStore errors on every operation.
type failingStore struct {
	err error
}

func (f *failingStore) GetEmbedding(context.Context, string) (*model.EmbeddingRecord, error) {
	return nil, f.err
}

func (f *failingStore) UpsertEmbedding(context.Context, string, model.Category, []float32) error {
	return f.err
}

func (f *failingStore) TopCandidates(context.Context, int) ([]model.EmbeddingRecord, error) {
	return nil, f.err
}

func (f *failingStore) DeduplicateEmbeddings(context.Context) (int64, error) {
	return 0, f.err
}
