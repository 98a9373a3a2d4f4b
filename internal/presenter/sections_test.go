package presenter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"carerag/internal/domain"
	"carerag/internal/usecase"
)

const sample = `## Summary
- Topic: Fall prevention

## Step-by-step Daily Care
1. Remove clutter.

## Red Flags (seek medical advice)
- Head injury.

## Caregiver Notes
- Educational only.`

func TestSplitEvidence(t *testing.T) {
	main, evidence := SplitEvidence("  ## Summary\n- x\n\n## Retrieved Evidence (from local knowledge)\n• A: b\n")
	assert.Equal(t, "## Summary\n- x", main)
	assert.Equal(t, "## Retrieved Evidence (from local knowledge)\n• A: b", evidence)

	main, evidence = SplitEvidence("plain answer\n")
	assert.Equal(t, "plain answer", main)
	assert.Empty(t, evidence)
}

func TestExtractSection(t *testing.T) {
	assert.Equal(t, "## Step-by-step Daily Care\n1. Remove clutter.", ExtractSection(sample, "## Step-by-step"))
	assert.Equal(t, "## Caregiver Notes\n- Educational only.", ExtractSection(sample, "## Caregiver Notes"))
	assert.Equal(t, "## Summary\n- Topic: Fall prevention", ExtractSection(sample, "## summary"))
	assert.Empty(t, ExtractSection(sample, "## Sample 120-min"))
	assert.Empty(t, ExtractSection(sample, "## ("))
}

func TestFilterSections_BriefFamily(t *testing.T) {
	got := FilterSections(sample, domain.Options{Detail: domain.DetailBrief, Audience: domain.AudienceFamily}, "falls")
	assert.Equal(t, "## Step-by-step Daily Care\n1. Remove clutter.\n\n"+DefaultSuggestion(), got)
}

func TestFilterSections_BriefProfessional(t *testing.T) {
	got := FilterSections(sample, domain.Options{Detail: domain.DetailBrief, Audience: domain.AudienceProfessional}, "after a fall")
	assert.True(t, strings.HasPrefix(got, "## Step-by-step Daily Care\n1. Remove clutter.\n\n## Sample 120-min Session (Home Care)\n"))
	assert.Contains(t, got, "- 60–90 min: Balance and strength exercises.")
}

func TestFilterSections_StandardFamily(t *testing.T) {
	got := FilterSections(sample, domain.DefaultOptions(), "falls")
	assert.Equal(t, strings.Join([]string{
		"## Summary\n- Topic: Fall prevention",
		"## Step-by-step Daily Care\n1. Remove clutter.",
		"## Red Flags (seek medical advice)\n- Head injury.",
		DefaultSuggestion(),
	}, "\n\n"), got)
}

func TestFilterSections_Professional(t *testing.T) {
	opts := domain.Options{Detail: domain.DetailStandard, Audience: domain.AudienceProfessional}

	got := FilterSections(sample, opts, "how to bathe")
	assert.Equal(t, sample+"\n\n## Sample 120-min Session (Home Care)\nSession planning depends on the care task and patient condition.", got)

	withSession := sample + "\n\n## Sample 120-min Session (Home Care)\n- 0–10 min: Check."
	assert.Equal(t, withSession, FilterSections(withSession, opts, "anything"))
}

func TestFilterSections_Empty(t *testing.T) {
	assert.Empty(t, FilterSections("", domain.DefaultOptions(), "q"))
}

func TestFilterSections_ComposedAnswer(t *testing.T) {
	composer := usecase.NewComposer(nil)
	opts := domain.Options{Detail: domain.DetailDetailed, Audience: domain.AudienceProfessional}
	hits := []domain.ScoredHit{{Title: "Pressure", Text: "Turn often."}}

	main, evidence := SplitEvidence(composer.Compose("pressure ulcer care", hits, opts))
	got := FilterSections(main, opts, "pressure ulcer care")

	assert.Equal(t, 1, strings.Count(got, "## Sample 120-min"))
	assert.Contains(t, got, "- 0–10 min: Brief assessment; skin check of pressure points.")
	assert.True(t, strings.HasPrefix(evidence, "## Retrieved Evidence"))
}

func TestEnsureSession(t *testing.T) {
	tests := []struct {
		question string
		contains string
	}{
		{"skin tears", "Skin inspection and pressure relief setup."},
		{"Feeding schedule", "Meal preparation and assisted feeding."},
		{"Rehabilitation after surgery", "Guided mobility or transfer training."},
		{"insulin timing", "Insulin administration and observation."},
		{"diabetes", "Session planning depends on the care task"},
		{"ulcer and nutrition", "Skin inspection"},
	}

	for _, tt := range tests {
		got := EnsureSession("", tt.question)
		assert.True(t, strings.HasPrefix(got, "## Sample 120-min Session (Home Care)\n"), tt.question)
		assert.Contains(t, got, tt.contains, tt.question)
	}
}

func TestEnsureSession_Existing(t *testing.T) {
	md := "## Red Flags\n- x\n\n## Sample 120-min Session (Home Care)\n- 0–10 min: Check.\n\n## Caregiver Notes\n- y"
	assert.Equal(t, "## Sample 120-min Session (Home Care)\n- 0–10 min: Check.", EnsureSession(md, "skin"))
}
