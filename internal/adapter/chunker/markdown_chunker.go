package chunker

import (
	"regexp"
	"strings"

	"carerag/internal/adapter/analyzer"
	"carerag/internal/domain"
)

var headingPattern = regexp.MustCompile(`^#{1,6}\s+`)

// MarkdownChunker splits a markdown document into one chunk per heading section.
type MarkdownChunker struct {
	tokenizer *analyzer.Tokenizer
}

func NewMarkdownChunker(tokenizer *analyzer.Tokenizer) *MarkdownChunker {
	return &MarkdownChunker{tokenizer: tokenizer}
}

type section struct {
	title string
	lines []string
}

// Chunk never fails; empty or heading-only input yields no chunks.
// A heading with no body lines before the next heading is dropped.
func (c *MarkdownChunker) Chunk(content string) []domain.KnowledgeChunk {
	if content == "" {
		return nil
	}

	var chunks []domain.KnowledgeChunk
	current := section{title: domain.DefaultChunkTitle}

	for _, line := range splitLines(content) {
		if loc := headingPattern.FindStringIndex(line); loc != nil {
			if len(current.lines) > 0 {
				chunks = append(chunks, c.finalize(current))
			}
			current = section{title: strings.TrimSpace(line[loc[1]:])}
			continue
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			current.lines = append(current.lines, trimmed)
		}
	}
	if len(current.lines) > 0 {
		chunks = append(chunks, c.finalize(current))
	}

	return chunks
}

func (c *MarkdownChunker) finalize(s section) domain.KnowledgeChunk {
	text := strings.Join(s.lines, " ")
	return domain.KnowledgeChunk{
		Title:  s.title,
		Text:   text,
		Tokens: c.tokenizer.Tokenize(strings.ToLower(s.title + " " + text)),
	}
}

// splitLines splits on \n and \r\n.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
