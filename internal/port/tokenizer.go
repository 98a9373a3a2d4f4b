package port

type Tokenizer interface {
	Tokenize(text string) []string
}

// Expander widens a token list with related terms.
type Expander interface {
	Expand(tokens []string) []string
}
