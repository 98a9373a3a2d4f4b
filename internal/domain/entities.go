package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultChunkTitle is used for body text that appears before any heading.
const DefaultChunkTitle = "General"

// ErrInvalidOption is returned when a detail or audience value is not recognised.
var ErrInvalidOption = errors.New("invalid option")

// KnowledgeChunk is one titled section of the knowledge document.
// Tokens are lower-cased and stopword-free.
type KnowledgeChunk struct {
	Title  string   `json:"title"`
	Text   string   `json:"text"`
	Tokens []string `json:"tokens"`
}

// ScoredHit is a chunk matched by a query. Index is the chunk position in the index.
type ScoredHit struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
	Title string  `json:"title"`
	Text  string  `json:"text"`
}

type Detail string

const (
	DetailBrief    Detail = "brief"
	DetailStandard Detail = "standard"
	DetailDetailed Detail = "detailed"
)

// ParseDetail maps "" to the standard level.
func ParseDetail(s string) (Detail, error) {
	switch d := Detail(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DetailStandard, nil
	case DetailBrief, DetailStandard, DetailDetailed:
		return d, nil
	default:
		return "", fmt.Errorf("%w: detail %q", ErrInvalidOption, s)
	}
}

type Audience string

const (
	AudienceFamily       Audience = "family"
	AudienceProfessional Audience = "professional"
)

// ParseAudience maps "" to the family audience.
func ParseAudience(s string) (Audience, error) {
	switch a := Audience(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return AudienceFamily, nil
	case AudienceFamily, AudienceProfessional:
		return a, nil
	default:
		return "", fmt.Errorf("%w: audience %q", ErrInvalidOption, s)
	}
}

type Options struct {
	Detail   Detail   `json:"detail"`
	Audience Audience `json:"audience"`
}

// DefaultOptions returns standard detail for a family caregiver.
func DefaultOptions() Options {
	return Options{Detail: DetailStandard, Audience: AudienceFamily}
}

// ParseOptions validates raw option strings from a request.
func ParseOptions(detail, audience string) (Options, error) {
	d, err := ParseDetail(detail)
	if err != nil {
		return Options{}, err
	}
	a, err := ParseAudience(audience)
	if err != nil {
		return Options{}, err
	}
	return Options{Detail: d, Audience: a}, nil
}

// Normalized fills zero values with defaults.
func (o Options) Normalized() Options {
	if o.Detail == "" {
		o.Detail = DetailStandard
	}
	if o.Audience == "" {
		o.Audience = AudienceFamily
	}
	return o
}

func (o Options) IsProfessional() bool {
	return o.Audience == AudienceProfessional
}

type Query struct {
	Text    string  `json:"text"`
	Options Options `json:"options"`
}

type Topic string

const (
	TopicPressureUlcer  Topic = "Pressure ulcer prevention"
	TopicDiabetesDiet   Topic = "Diabetes diet"
	TopicFallPrevention Topic = "Fall prevention"
	TopicGeneral        Topic = "General home care"
)

type AnswerSource string

const (
	SourceGenerative AnswerSource = "generative"
	SourceRuleBased  AnswerSource = "rule-based"
)

// Answer is the final text returned to the presentation layer.
type Answer struct {
	Text   string       `json:"answer"`
	Source AnswerSource `json:"source"`
	Hits   []ScoredHit  `json:"hits,omitempty"`
}
