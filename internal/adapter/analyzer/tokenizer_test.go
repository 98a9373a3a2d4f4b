package analyzer

import (
	"reflect"
	"testing"
)

func TestTokenizer_Tokenize(t *testing.T) {
	tok := NewTokenizer()

	tokens := tok.Tokenize("turn the patient every 2 hours")
	expected := []string{"turn", "patient", "every", "2", "hours"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("expected %v, got %v", expected, tokens)
	}
}

func TestTokenizer_StopwordRemoval(t *testing.T) {
	tok := NewTokenizer()

	tokens := tok.Tokenize("this is a test of the system and it works")
	for _, token := range tokens {
		if tok.IsStopword(token) {
			t.Errorf("stopword %q should be removed, got %v", token, tokens)
		}
	}
	if len(tokens) != 3 {
		t.Errorf("expected 3 tokens, got %d: %v", len(tokens), tokens)
	}
}

func TestTokenizer_NoEmptyTokens(t *testing.T) {
	tok := NewTokenizer()

	tokens := tok.Tokenize("--skin--care,,,  (30°) tilt!!")
	for _, token := range tokens {
		if token == "" {
			t.Fatalf("empty token in %v", tokens)
		}
	}
	expected := []string{"skin", "care", "30", "tilt"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("expected %v, got %v", expected, tokens)
	}
}

func TestTokenizer_UppercaseIsSeparator(t *testing.T) {
	tok := NewTokenizer()

	// Callers lower-case first; upper-case letters fall outside [a-z0-9].
	tokens := tok.Tokenize("Pressure")
	expected := []string{"ressure"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("expected %v, got %v", expected, tokens)
	}
}

func TestTokenizer_EmptyInput(t *testing.T) {
	tok := NewTokenizer()

	if tokens := tok.Tokenize(""); len(tokens) != 0 {
		t.Errorf("expected 0 tokens for empty input, got %d", len(tokens))
	}
	if tokens := tok.Tokenize("the and of"); len(tokens) != 0 {
		t.Errorf("expected 0 tokens for stopword-only input, got %v", tokens)
	}
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"hello world", 2},
		{"hello_world", 2},
		{"hello-world", 2},
		{"blood sugar (mg/dl)", 4},
		{"123numbers456", 1},
		{"   ", 0},
		{"café", 1},
	}

	for _, tt := range tests {
		words := splitWords(tt.input)
		if len(words) != tt.expected {
			t.Errorf("splitWords(%q) = %d words, want %d: %v", tt.input, len(words), tt.expected, words)
		}
	}
}
