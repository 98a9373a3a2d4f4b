package usecase

import (
	"fmt"
	"strings"

	"carerag/internal/domain"
)

// promptSnippetRunes bounds each retrieved snippet in the generative prompt.
const promptSnippetRunes = 400

// BuildPrompt renders the retrieval-augmented prompt for a generative backend.
// Without hits the knowledge block is omitted.
func BuildPrompt(text string, hits []domain.ScoredHit, opts domain.Options) string {
	opts = opts.Normalized()

	if len(hits) == 0 {
		return fmt.Sprintf(`You are an expert home-care assistant. Provide a %s-length structured answer for a %s caregiver.
Sections: Summary; Initial Assessment; Step-by-step Care; Monitoring; Red Flags; Caregiver Notes.
Question: %s`, opts.Detail, opts.Audience, text)
	}

	return fmt.Sprintf(`You are an expert home-care assistant. Using the retrieved knowledge below, produce a %s-length answer for a %s caregiver. 
Format the response with clear sections: Summary; Initial Assessment; Step-by-step Care; Monitoring; Red Flags; (if detailed) a 120-min sample session; End with "Caregiver Notes".
Retrieved knowledge:
%s

Question: %s`, opts.Detail, opts.Audience, RetrievedBlock(hits), text)
}

// RetrievedBlock renders hits as "- [title] snippet" lines.
func RetrievedBlock(hits []domain.ScoredHit) string {
	lines := make([]string, len(hits))
	for i, h := range hits {
		lines[i] = fmt.Sprintf("- [%s] %s", h.Title, Truncate(h.Text, promptSnippetRunes))
	}
	return strings.Join(lines, "\n")
}
