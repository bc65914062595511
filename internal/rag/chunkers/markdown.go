// Package chunkers splits Markdown document text into ordered,
// overlapping chunks sized by an estimated token budget.
package chunkers

import (
	"regexp"
	"strings"

	"docuhub/internal/rag/interfaces"
	"docuhub/internal/rag/schema"
	"docuhub/internal/rag/tokens"
)

// Strategy selects the boundary the chunker accumulates on.
type Strategy string

const (
	// StrategyParagraph accumulates blank-line separated paragraphs.
	StrategyParagraph Strategy = "paragraph"
	// StrategySentence accumulates sentence-ended spans.
	StrategySentence Strategy = "sentence"
)

// Config controls one chunking run. ChunkSize is a token budget;
// ChunkOverlap is the number of trailing characters carried into the
// next chunk so continuity survives the boundary.
type Config struct {
	Strategy        Strategy
	ChunkSize       int
	ChunkOverlap    int
	PreserveHeaders bool
}

// MarkdownChunker implements interfaces.Chunker for Markdown text.
// It is a pure function of its input and configuration.
type MarkdownChunker struct {
	cfg Config
}

// New creates a MarkdownChunker, applying defaults for zero values.
func New(cfg Config) *MarkdownChunker {
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyParagraph
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 512
	}
	if cfg.ChunkOverlap < 0 {
		cfg.ChunkOverlap = 0
	}
	return &MarkdownChunker{cfg: cfg}
}

var (
	paragraphRe = regexp.MustCompile(`\n[ \t]*\n+`)
	headerRe    = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
)

// unit is one accumulation candidate: a paragraph or a sentence,
// annotated with the header trail it falls under.
type unit struct {
	text       string
	headerPath string
}

// Chunk splits text into chunks. Empty or whitespace-only input yields
// no chunks. Content that fits the token budget yields exactly one
// chunk containing the full content.
//
// With ChunkOverlap = v > 0 and at least two chunks produced, the
// trailing v characters of chunk i equal the leading v characters of
// chunk i+1 (PreserveHeaders prefixes excluded).
func (c *MarkdownChunker) Chunk(text string) []schema.Chunk {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	units := c.split(text)
	if len(units) == 0 {
		return nil
	}

	sep := "\n\n"
	if c.cfg.Strategy == StrategySentence {
		sep = " "
	}

	var chunks []schema.Chunk
	var cur string
	var curHeader string

	flush := func() {
		if cur == "" {
			return
		}
		chunks = append(chunks, schema.Chunk{
			Index:      len(chunks),
			Content:    cur,
			HeaderPath: curHeader,
		})
	}

	for _, u := range units {
		if cur == "" {
			cur = u.text
			curHeader = u.headerPath
			continue
		}

		candidate := cur + sep + u.text
		if tokens.Estimate(candidate) > c.cfg.ChunkSize {
			flush()
			if c.cfg.ChunkOverlap > 0 {
				cur = lastRunes(cur, c.cfg.ChunkOverlap) + sep + u.text
			} else {
				cur = u.text
			}
			curHeader = u.headerPath
		} else {
			cur = candidate
		}
	}
	flush()

	for i := range chunks {
		if c.cfg.PreserveHeaders && chunks[i].HeaderPath != "" && !strings.HasPrefix(chunks[i].Content, "#") {
			chunks[i].Content = chunks[i].HeaderPath + "\n\n" + chunks[i].Content
		}
		chunks[i].TokenCount = tokens.Estimate(chunks[i].Content)
	}

	return chunks
}

// split breaks text into accumulation units and tracks the enclosing
// Markdown header trail for each one.
func (c *MarkdownChunker) split(text string) []unit {
	paragraphs := paragraphRe.Split(text, -1)

	// headerStack holds (level, text) pairs of the currently open
	// headers, innermost last.
	type header struct {
		level int
		text  string
	}
	var stack []header

	trail := func() string {
		if len(stack) == 0 {
			return ""
		}
		parts := make([]string, len(stack))
		for i, h := range stack {
			parts[i] = h.text
		}
		return strings.Join(parts, " > ")
	}

	var units []unit
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if m := headerRe.FindStringSubmatch(p); m != nil && !strings.Contains(p, "\n") {
			level := len(m[1])
			for len(stack) > 0 && stack[len(stack)-1].level >= level {
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, header{level: level, text: strings.TrimSpace(m[2])})
			units = append(units, unit{text: p, headerPath: trail()})
			continue
		}

		path := trail()
		if c.cfg.Strategy == StrategySentence {
			for _, s := range splitSentences(p) {
				units = append(units, unit{text: s, headerPath: path})
			}
		} else {
			units = append(units, unit{text: p, headerPath: path})
		}
	}
	return units
}

// splitSentences splits a paragraph on sentence-ending punctuation.
// The terminator stays attached to its sentence.
func splitSentences(p string) []string {
	var sentences []string
	runes := []rune(p)
	start := 0
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '!', '?':
			// Consume a run of terminators ("?!", "...").
			end := i
			for end+1 < len(runes) && isTerminator(runes[end+1]) {
				end++
			}
			// Only split when followed by whitespace or end of text,
			// so "3.14" and "v1.2" stay intact.
			if end+1 >= len(runes) || runes[end+1] == ' ' || runes[end+1] == '\n' || runes[end+1] == '\t' {
				s := strings.TrimSpace(string(runes[start : end+1]))
				if s != "" {
					sentences = append(sentences, s)
				}
				start = end + 1
			}
			i = end
		}
	}
	if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// lastRunes returns the trailing n runes of s, or s itself when it is
// shorter than n.
func lastRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}

var _ interfaces.Chunker = (*MarkdownChunker)(nil)
