// Package presenter reshapes composed answers for display. It works on the
// markdown text only; HTML rendering is left to the client.
package presenter

import (
	"regexp"
	"strings"

	"carerag/internal/domain"
)

const (
	evidenceMarker = "## Retrieved Evidence"

	headerSummary    = "## Summary"
	headerStepByStep = "## Step-by-step"
	headerRedFlags   = "## Red Flags"
	headerSession    = "## Sample 120-min"
)

// SplitEvidence separates the main answer from the trailing evidence block.
// Both parts are trimmed; evidence is empty when the marker is absent.
func SplitEvidence(answer string) (main, evidence string) {
	answer = strings.TrimSpace(answer)
	i := strings.Index(answer, evidenceMarker)
	if i < 0 {
		return answer, ""
	}
	return strings.TrimSpace(answer[:i]), strings.TrimSpace(answer[i:])
}

// ExtractSection returns the first section whose header matches the pattern,
// case-insensitively, up to the next "\n## " or the end of md.
// A pattern that does not compile yields "".
func ExtractSection(md, header string) string {
	re, err := regexp.Compile("(?i)" + header)
	if err != nil {
		return ""
	}
	loc := re.FindStringIndex(md)
	if loc == nil {
		return ""
	}
	end := len(md)
	if next := strings.Index(md[loc[1]:], "\n## "); next >= 0 {
		end = loc[1] + next
	}
	return strings.TrimSpace(md[loc[0]:end])
}

// FilterSections keeps the sections relevant to the reader.
//
//	brief, professional:   step-by-step and a session
//	brief, family:         step-by-step and the suggestion block
//	standard/detailed, family:       summary, step-by-step, red flags, suggestion
//	standard/detailed, professional: everything, plus a session if none exists
func FilterSections(md string, opts domain.Options, question string) string {
	if md == "" {
		return ""
	}
	opts = opts.Normalized()

	if opts.Detail == domain.DetailBrief {
		if opts.IsProfessional() {
			return joinNonEmpty(ExtractSection(md, headerStepByStep), EnsureSession(md, question))
		}
		return joinNonEmpty(ExtractSection(md, headerStepByStep), DefaultSuggestion())
	}

	if !opts.IsProfessional() {
		return joinNonEmpty(
			ExtractSection(md, headerSummary),
			ExtractSection(md, headerStepByStep),
			ExtractSection(md, headerRedFlags),
			DefaultSuggestion(),
		)
	}

	if strings.Contains(md, headerSession) {
		return md
	}
	return md + "\n\n" + EnsureSession(md, question)
}

type sessionTemplate struct {
	keywords []string
	text     string
}

// sessionTemplates are tried in order against the lowercased question.
var sessionTemplates = []sessionTemplate{
	{
		keywords: []string{"ulcer", "skin"},
		text: `## Sample 120-min Session (Home Care)
- 0–15 min: Skin inspection and pressure relief setup.
- 15–45 min: Repositioning and hygiene care.
- 45–75 min: Dressing or barrier application.
- 75–105 min: ROM exercises for mobility.
- 105–120 min: Documentation and safety review.`,
	},
	{
		keywords: []string{"nutrition", "feeding"},
		text: `## Sample 120-min Session (Home Care)
- 0–15 min: Assess appetite and hydration.
- 15–45 min: Meal preparation and assisted feeding.
- 45–70 min: Rest and digestion monitoring.
- 70–100 min: Record intake, provide oral hygiene.
- 100–120 min: Nutritional education and cleanup.`,
	},
	{
		keywords: []string{"fall", "rehabilitation"},
		text: `## Sample 120-min Session (Home Care)
- 0–15 min: Check vitals, set exercise goals.
- 15–60 min: Guided mobility or transfer training.
- 60–90 min: Balance and strength exercises.
- 90–110 min: Monitor fatigue, adjust difficulty.
- 110–120 min: Review and feedback.`,
	},
	{
		keywords: []string{"diabetics", "insulin"},
		text: `## Sample 120-min Session (Home Care)
- 0–10 min: Glucose monitoring.
- 10–40 min: Insulin administration and observation.
- 40–80 min: Nutrition management and exercise planning.
- 80–100 min: Recordkeeping and safety check.
- 100–120 min: Education and next-day plan.`,
	},
}

const fallbackSession = `## Sample 120-min Session (Home Care)
Session planning depends on the care task and patient condition.`

// EnsureSession returns the session already present in md, or one chosen by
// keywords in the question.
func EnsureSession(md, question string) string {
	if strings.Contains(md, headerSession) {
		return ExtractSection(md, headerSession)
	}

	q := strings.ToLower(question)
	for _, tmpl := range sessionTemplates {
		for _, kw := range tmpl.keywords {
			if strings.Contains(q, kw) {
				return tmpl.text
			}
		}
	}
	return fallbackSession
}

func DefaultSuggestion() string {
	return `## Suggestion
- Recommended hospital: Community Health Service Center.
- Outpatient Department: Geriatric or Rehabilitation Clinic.
- Hotline: 12320 (Health Advisory).`
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}
