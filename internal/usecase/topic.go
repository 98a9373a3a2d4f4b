package usecase

import (
	"regexp"
	"strings"

	"carerag/internal/domain"
)

type topicRule struct {
	pattern *regexp.Regexp
	topic   domain.Topic
}

// topicRules are checked in order; the first match wins.
var topicRules = []topicRule{
	{regexp.MustCompile(`(pressure|bedsore|ulcer|decubitus|skin breakdown)`), domain.TopicPressureUlcer},
	{regexp.MustCompile(`(diabetes|glucose|blood sugar|diet)`), domain.TopicDiabetesDiet},
	{regexp.MustCompile(`(fall|balance|home safety)`), domain.TopicFallPrevention},
}

// InferTopic maps a free-text question to one care topic.
func InferTopic(query string) domain.Topic {
	s := strings.ToLower(query)
	for _, rule := range topicRules {
		if rule.pattern.MatchString(s) {
			return rule.topic
		}
	}
	return domain.TopicGeneral
}
