package analyzer

import "strings"

// Tokenizer splits lower-cased text into stopword-free tokens.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// NewTokenizer creates a Tokenizer with the default stopword set.
func NewTokenizer() *Tokenizer {
	return NewTokenizerWithStopwords(DefaultStopwords())
}

// NewTokenizerWithStopwords creates a Tokenizer with a custom stopword set.
func NewTokenizerWithStopwords(stopwords []string) *Tokenizer {
	m := make(map[string]struct{}, len(stopwords))
	for _, s := range stopwords {
		m[s] = struct{}{}
	}
	return &Tokenizer{stopwords: m}
}

// Tokenize splits text on every run of characters outside [a-z0-9].
// Case is not folded here; callers lower-case first.
func (t *Tokenizer) Tokenize(text string) []string {
	words := splitWords(text)
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		if _, isStop := t.stopwords[word]; isStop {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// IsStopword reports whether word is in the stopword set.
func (t *Tokenizer) IsStopword(word string) bool {
	_, ok := t.stopwords[word]
	return ok
}

func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

// DefaultStopwords returns the stopword list used for knowledge chunks and queries.
func DefaultStopwords() []string {
	return strings.Fields("a an the and or of in on to for with by from at as is are was were be been being this that these those it its")
}
