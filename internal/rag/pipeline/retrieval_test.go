package pipeline

import (
	"context"
	"testing"
)

func TestRetrievalBlankQuery(t *testing.T) {
	embedder := &fakeEmbedder{dim: 8}
	store := newFakeVectorStore()
	p := NewRetrievalPipeline(embedder, store, testLogger())

	for _, query := range []string{"", "   ", "\n\t"} {
		results, err := p.Run(context.Background(), query, SearchOptions{OrganizationID: "org-1"})
		if err != nil {
			t.Fatalf("blank query %q: unexpected error: %v", query, err)
		}
		if len(results) != 0 {
			t.Fatalf("blank query %q: expected empty results, got %d", query, len(results))
		}
	}
	if embedder.embedCalls != 0 {
		t.Errorf("blank queries must not reach the embedder, got %d calls", embedder.embedCalls)
	}
	if store.searchCalls != 0 {
		t.Errorf("blank queries must not reach the vector store, got %d calls", store.searchCalls)
	}
}

func TestRetrievalThreshold(t *testing.T) {
	embedder := &fakeEmbedder{dim: 8}
	store := newFakeVectorStore()
	store.results = cannedResults(6, 0.95)

	p := NewRetrievalPipeline(embedder, store, testLogger())
	results, err := p.Run(context.Background(), "vacation policy", SearchOptions{
		OrganizationID: "org-1",
		MatchThreshold: 0.85,
		MatchCount:     10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected results above threshold")
	}
	for _, r := range results {
		if r.Similarity < 0.85 {
			t.Errorf("result %s below threshold: %.2f", r.ChunkID, r.Similarity)
		}
	}
}

func TestRetrievalQueryCache(t *testing.T) {
	embedder := &fakeEmbedder{dim: 8}
	store := newFakeVectorStore()
	p := NewRetrievalPipeline(embedder, store, testLogger())

	for i := 0; i < 3; i++ {
		if _, err := p.Run(context.Background(), "expense reports", SearchOptions{OrganizationID: "org-1"}); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if embedder.embedCalls != 1 {
		t.Errorf("expected one provider call for a repeated query, got %d", embedder.embedCalls)
	}
	if store.searchCalls != 3 {
		t.Errorf("every run must still hit the vector store, got %d calls", store.searchCalls)
	}
}

func TestRetrievalPassesScope(t *testing.T) {
	embedder := &fakeEmbedder{dim: 8}
	store := newFakeVectorStore()
	p := NewRetrievalPipeline(embedder, store, testLogger())

	_, err := p.Run(context.Background(), "safety manual", SearchOptions{
		OrganizationID: "org-42",
		DocType:        "manual",
		MatchThreshold: 0.6,
		MatchCount:     3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastSearch.orgID != "org-42" {
		t.Errorf("orgID not forwarded: %q", store.lastSearch.orgID)
	}
	if store.lastSearch.docType != "manual" {
		t.Errorf("docType not forwarded: %q", store.lastSearch.docType)
	}
	if store.lastSearch.threshold != 0.6 {
		t.Errorf("threshold not forwarded: %v", store.lastSearch.threshold)
	}
	if store.lastSearch.topK != 3 {
		t.Errorf("topK not forwarded: %v", store.lastSearch.topK)
	}
}

func TestRetrievalGrouped(t *testing.T) {
	embedder := &fakeEmbedder{dim: 8}
	store := newFakeVectorStore()
	store.results = cannedResults(5, 0.9)

	p := NewRetrievalPipeline(embedder, store, testLogger())
	groups, err := p.RunGrouped(context.Background(), "onboarding", SearchOptions{
		OrganizationID: "org-1",
		MatchCount:     10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 document groups, got %d", len(groups))
	}
	total := 0
	for _, g := range groups {
		if len(g.Results) == 0 {
			t.Errorf("group %s has no results", g.DocumentID)
		}
		prev := 2.0
		for _, r := range g.Results {
			if r.DocumentID != g.DocumentID {
				t.Errorf("result %s placed in group %s", r.DocumentID, g.DocumentID)
			}
			if r.Similarity > prev {
				t.Errorf("group %s ranking not preserved", g.DocumentID)
			}
			prev = r.Similarity
			total++
		}
	}
	if total != 5 {
		t.Errorf("grouping lost results: %d of 5", total)
	}
}
