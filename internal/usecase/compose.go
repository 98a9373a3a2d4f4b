package usecase

import (
	"context"
	"fmt"
	"strings"

	"carerag/internal/domain"
)

const (
	// evidenceSnippetRunes bounds each evidence line in the composed answer.
	evidenceSnippetRunes = 220

	SectionSummary    = "## Summary"
	SectionStepByStep = "## Step-by-step"
	SectionRedFlags   = "## Red Flags"
	SectionSession    = "## Sample 120-min"
	SectionEvidence   = "## Retrieved Evidence"
)

// TopicTemplate supplies the topic-specific blocks of a composed answer.
// An empty string means the topic has no such block.
type TopicTemplate interface {
	StepByStep() string
	Session() string
}

type staticTemplate struct {
	steps   string
	session string
}

func (t staticTemplate) StepByStep() string { return t.steps }
func (t staticTemplate) Session() string    { return t.session }

// DefaultTemplates covers the three topics with bespoke content.
// domain.TopicGeneral is intentionally absent.
var DefaultTemplates = map[domain.Topic]TopicTemplate{
	domain.TopicPressureUlcer: staticTemplate{
		steps: `## Step-by-step Daily Care
1. Repositioning: Turn every 2 hours; use 30° lateral tilt; avoid dragging; heels offloaded.
2. Support surfaces: Use pressure-redistributing mattress/foam; keep sheets wrinkle-free.
3. Skin care: Inspect bony prominences twice daily; keep clean & dry; moisture barrier for incontinence.
4. Microclimate: Keep bed dry; change wet linens promptly; avoid overheating.
5. Nutrition & hydration: Ensure adequate protein and fluids; monitor weight weekly.
6. Mobility: Encourage ROM exercises; sit-out with cushion (≤1 hour at a time).
7. Education: Teach family to spot early erythema (non-blanching).`,
		session: `## Sample 120-min Session (Home Care)
- 0–10 min: Brief assessment; skin check of pressure points.
- 10–35 min: Repositioning routine; bed & linens adjustment; heel offloading.
- 35–55 min: Hygiene & moisture care; apply barrier cream if needed.
- 55–80 min: ROM exercises (ankle pumps, hip/knee flexion/extension).
- 80–95 min: Nutritional support—protein snack, hydration.
- 95–110 min: Education & caregiver coaching; update logs.
- 110–120 min: Environment reset; safety check.`,
	},
	domain.TopicDiabetesDiet: staticTemplate{
		steps: `## Step-by-step Daily Care
1. Plate method: 1/2 non-starch veg, 1/4 lean protein, 1/4 whole grains.
2. Carbohydrate control: Prefer low-GI carbs; distribute carbs across meals; avoid sugary drinks.
3. Monitoring: Check fasting/random glucose as instructed; record values.
4. Hypo management: Always have fast-acting carbs available; follow 15–15 rule.
5. Hydration & fiber: ≥1.5–2L water/day unless contraindicated; ≥25–30g fiber/day.`,
	},
	domain.TopicFallPrevention: staticTemplate{
		steps: `## Step-by-step Daily Care
1. Home safety: Remove clutter/cables; non-slip mats; night lights; secure rugs.
2. Footwear & aids: Closed-heel shoes; check cane/walker height.
3. Strength & balance: Chair rises, heel raises, tandem stand; 10–15 reps × 2 sets/day.
4. Medications: Review sedatives, hypotensives; measure orthostatic BP if trained.
5. Vision & hearing: Ensure glasses updated; adequate lighting.`,
	},
}

const (
	assessmentSection = `## Initial Assessment (2–5 min)
- Screen risk factors & baseline: condition, mobility, cognition, nutrition, continence.
- Environment check: bed surface, linens, moisture, clutter, lighting.
- Document baseline status.`

	monitoringSection = `## Monitoring & Documentation
- Track adherence (repositioning log, glucose log, exercise log).
- Record skin changes, pain, appetite, fluid intake.
- Review weekly; adjust plan as needed.`

	redFlagsSection = `## Red Flags (seek medical advice)
- New/worsening pain, fever, spreading redness, foul odor or drainage.
- Rapid weight loss, dehydration, repeated hypoglycemia or hyperglycemia.
- Falls, head injury, acute confusion.`

	caregiverNotesSection = `## Caregiver Notes
- This guide is educational and not a medical diagnosis.
- If unsure, contact your healthcare professional.`
)

// Composer builds the rule-based structured answer.
type Composer struct {
	templates map[domain.Topic]TopicTemplate
}

func NewComposer(templates map[domain.Topic]TopicTemplate) *Composer {
	if templates == nil {
		templates = DefaultTemplates
	}
	return &Composer{templates: templates}
}

// Compose is deterministic: the same query, hits and options give the same text.
func (c *Composer) Compose(query string, hits []domain.ScoredHit, opts domain.Options) string {
	opts = opts.Normalized()
	topic := InferTopic(query)
	tmpl := c.templates[topic]

	sections := []string{
		summarySection(topic, opts),
		assessmentSection,
	}
	if tmpl != nil && tmpl.StepByStep() != "" {
		sections = append(sections, tmpl.StepByStep())
	}
	sections = append(sections, monitoringSection, redFlagsSection)

	if opts.Detail == domain.DetailDetailed && tmpl != nil && tmpl.Session() != "" {
		sections = append(sections, tmpl.Session())
	}
	if len(hits) > 0 {
		sections = append(sections, evidenceSection(hits))
	}
	if !opts.IsProfessional() {
		sections = append(sections, caregiverNotesSection)
	}

	return strings.Join(sections, "\n\n")
}

func summarySection(topic domain.Topic, opts domain.Options) string {
	audience := "Family caregiver"
	if opts.IsProfessional() {
		audience = "Professional caregiver"
	}
	return fmt.Sprintf(`## Summary
- Topic: %s
- Audience: %s
- Goal: Provide a practical, risk-aware home-care guide.`, topic, audience)
}

func evidenceSection(hits []domain.ScoredHit) string {
	lines := make([]string, len(hits))
	for i, h := range hits {
		lines[i] = fmt.Sprintf("• %s: %s", h.Title, Truncate(h.Text, evidenceSnippetRunes))
	}
	return "## Retrieved Evidence (from local knowledge)\n" + strings.Join(lines, "\n")
}

// Truncate returns t unchanged when it has at most n runes; otherwise the
// first n-3 runes followed by "...", exactly n runes in total.
func Truncate(t string, n int) string {
	runes := []rune(t)
	if len(runes) <= n {
		return t
	}
	if n < 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// RuleBasedAnswerer answers with the Composer. It never fails.
type RuleBasedAnswerer struct {
	composer *Composer
}

func NewRuleBasedAnswerer(composer *Composer) *RuleBasedAnswerer {
	return &RuleBasedAnswerer{composer: composer}
}

func (a *RuleBasedAnswerer) Answer(_ context.Context, query domain.Query, hits []domain.ScoredHit) (string, error) {
	return a.composer.Compose(query.Text, hits, query.Options), nil
}
