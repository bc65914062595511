package chunkers

import (
	"strings"
	"testing"
)

func repeatWords(word string, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = word
	}
	return strings.Join(parts, " ")
}

func TestChunkEmptyInput(t *testing.T) {
	c := New(Config{ChunkSize: 100})

	if got := c.Chunk(""); len(got) != 0 {
		t.Errorf("Chunk(\"\") = %d chunks, want 0", len(got))
	}
	if got := c.Chunk("   \n\t  "); len(got) != 0 {
		t.Errorf("Chunk(whitespace) = %d chunks, want 0", len(got))
	}
}

func TestChunkShortContentSingleChunk(t *testing.T) {
	c := New(Config{ChunkSize: 1000})
	text := "A short document.\n\nWith two small paragraphs."

	chunks := c.Chunk(text)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Content != text {
		t.Errorf("single chunk should contain the full content, got %q", chunks[0].Content)
	}
	if chunks[0].Index != 0 {
		t.Errorf("expected index 0, got %d", chunks[0].Index)
	}
	if chunks[0].TokenCount <= 0 {
		t.Errorf("expected positive token count, got %d", chunks[0].TokenCount)
	}
}

func TestChunkOverlapInvariant(t *testing.T) {
	const overlap = 20
	c := New(Config{Strategy: StrategyParagraph, ChunkSize: 60, ChunkOverlap: overlap})

	var paragraphs []string
	for i := 0; i < 6; i++ {
		paragraphs = append(paragraphs, repeatWords("lorem ipsum dolor sit amet", 8))
	}
	text := strings.Join(paragraphs, "\n\n")

	chunks := c.Chunk(text)
	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}

	for i := 0; i < len(chunks)-1; i++ {
		prev := []rune(chunks[i].Content)
		next := []rune(chunks[i+1].Content)

		v := overlap
		if len(prev) < v {
			v = len(prev)
		}
		tail := string(prev[len(prev)-v:])
		head := string(next[:v])
		if tail != head {
			t.Errorf("chunk %d/%d overlap mismatch:\n tail: %q\n head: %q", i, i+1, tail, head)
		}
	}
}

func TestChunkOrdinalsAndOrder(t *testing.T) {
	c := New(Config{ChunkSize: 50})
	text := strings.Repeat("one paragraph of filler text here.\n\n", 10)

	chunks := c.Chunk(text)
	for i, ch := range chunks {
		if ch.Index != i {
			t.Errorf("chunk %d has index %d", i, ch.Index)
		}
	}
}

func TestChunkSentenceStrategy(t *testing.T) {
	c := New(Config{Strategy: StrategySentence, ChunkSize: 15})
	text := "First sentence here. Second sentence follows! Third one asks? Fourth closes it."

	chunks := c.Chunk(text)
	if len(chunks) < 2 {
		t.Fatalf("expected sentence strategy to produce multiple chunks, got %d", len(chunks))
	}
	if !strings.HasPrefix(chunks[0].Content, "First sentence here.") {
		t.Errorf("first chunk should start with the first sentence, got %q", chunks[0].Content)
	}
}

func TestChunkSentenceKeepsDecimals(t *testing.T) {
	got := splitSentences("Use version 1.2 today. It costs 3.14 dollars.")
	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(got), got)
	}
	if got[0] != "Use version 1.2 today." {
		t.Errorf("unexpected first sentence: %q", got[0])
	}
}

func TestChunkPreserveHeaders(t *testing.T) {
	c := New(Config{ChunkSize: 40, PreserveHeaders: true})

	body := repeatWords("installation step detail", 10)
	text := "# Guide\n\n## Install\n\n" + body + "\n\n" + body + "\n\n" + body

	chunks := c.Chunk(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Chunks that fall under the Install section and do not start with
	// the header itself must carry the header trail.
	found := false
	for _, ch := range chunks {
		if strings.HasPrefix(ch.Content, "Guide > Install\n\n") {
			found = true
		}
		if ch.HeaderPath != "" && !strings.Contains(ch.HeaderPath, "Guide") {
			t.Errorf("header path %q should include the enclosing top-level header", ch.HeaderPath)
		}
	}
	if !found {
		t.Errorf("no chunk carried the header prefix; chunks: %d", len(chunks))
	}
}

func TestChunkDeterministic(t *testing.T) {
	c := New(Config{ChunkSize: 64, ChunkOverlap: 16})
	text := strings.Repeat("deterministic paragraph content for chunking.\n\n", 8)

	a := c.Chunk(text)
	b := c.Chunk(text)
	if len(a) != len(b) {
		t.Fatalf("chunk counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Content != b[i].Content {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}
