package chunker

import (
	"reflect"
	"testing"

	"carerag/internal/adapter/analyzer"
	"carerag/internal/domain"
)

func newTestChunker() *MarkdownChunker {
	return NewMarkdownChunker(analyzer.NewTokenizer())
}

func TestMarkdownChunkerBasic(t *testing.T) {
	chunks := newTestChunker().Chunk("# Pressure Ulcer\nTurn every 2 hours.\n\n# Diabetes\nControl carbs.")

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Title != "Pressure Ulcer" || chunks[0].Text != "Turn every 2 hours." {
		t.Errorf("unexpected first chunk: %+v", chunks[0])
	}
	if chunks[1].Title != "Diabetes" || chunks[1].Text != "Control carbs." {
		t.Errorf("unexpected second chunk: %+v", chunks[1])
	}

	expected := []string{"pressure", "ulcer", "turn", "every", "2", "hours"}
	if !reflect.DeepEqual(chunks[0].Tokens, expected) {
		t.Errorf("expected tokens %v, got %v", expected, chunks[0].Tokens)
	}
}

func TestMarkdownChunkerNoHeadings(t *testing.T) {
	chunks := newTestChunker().Chunk("first line\n\n  second line  \nthird")

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Title != domain.DefaultChunkTitle {
		t.Errorf("expected title %q, got %q", domain.DefaultChunkTitle, chunks[0].Title)
	}
	if chunks[0].Text != "first line second line third" {
		t.Errorf("unexpected text: %q", chunks[0].Text)
	}
}

func TestMarkdownChunkerEmptyContent(t *testing.T) {
	c := newTestChunker()

	for _, input := range []string{"", "\n\n", "   \n\t\n"} {
		if chunks := c.Chunk(input); len(chunks) != 0 {
			t.Errorf("expected 0 chunks for %q, got %d", input, len(chunks))
		}
	}
}

func TestMarkdownChunkerConsecutiveHeadings(t *testing.T) {
	chunks := newTestChunker().Chunk("# Care\n## Skin\nKeep skin dry.\n### Empty\n")

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d: %+v", len(chunks), chunks)
	}
	if chunks[0].Title != "Skin" {
		t.Errorf("expected title Skin, got %q", chunks[0].Title)
	}
}

func TestMarkdownChunkerPreamble(t *testing.T) {
	chunks := newTestChunker().Chunk("Intro text\n# Falls\nRemove clutter.")

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Title != domain.DefaultChunkTitle || chunks[0].Text != "Intro text" {
		t.Errorf("unexpected preamble chunk: %+v", chunks[0])
	}
}

func TestMarkdownChunkerHeadingRules(t *testing.T) {
	content := "#NoSpace\nbody one\n####### Seven\nbody two\n######   Six  \nbody three\r\n"
	chunks := newTestChunker().Chunk(content)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %+v", len(chunks), chunks)
	}
	// "#NoSpace" and "####### Seven" are not headings.
	if chunks[0].Title != domain.DefaultChunkTitle {
		t.Errorf("expected default title, got %q", chunks[0].Title)
	}
	if chunks[0].Text != "#NoSpace body one ####### Seven body two" {
		t.Errorf("unexpected text: %q", chunks[0].Text)
	}
	if chunks[1].Title != "Six" || chunks[1].Text != "body three" {
		t.Errorf("unexpected chunk: %+v", chunks[1])
	}
}

func TestMarkdownChunkerTokensLowercaseAndStopwordFree(t *testing.T) {
	tok := analyzer.NewTokenizer()
	chunks := NewMarkdownChunker(tok).Chunk("# The Nutrition Plan\nProtein AND fluids for the Patient.")

	for _, token := range chunks[0].Tokens {
		if token == "" || tok.IsStopword(token) {
			t.Errorf("unexpected token %q in %v", token, chunks[0].Tokens)
		}
		for _, r := range token {
			if r >= 'A' && r <= 'Z' {
				t.Errorf("token %q is not lower-cased", token)
			}
		}
	}
}
