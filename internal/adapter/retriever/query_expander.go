package retriever

// SynonymEntry maps a canonical term to the terms it expands to.
type SynonymEntry struct {
	Term     string
	Synonyms []string
}

// DefaultSynonyms is the caregiving synonym table. Lookups are one-directional:
// "ulcer" expands to "pressure", but "bedsore" expands to nothing.
var DefaultSynonyms = []SynonymEntry{
	{"pressure", []string{"bedsores", "ulcer", "ulcers", "decubitus", "skin breakdown", "pressure sore"}},
	{"ulcer", []string{"pressure", "bedsore", "decubitus"}},
	{"diabetes", []string{"diabetic", "glucose", "blood sugar"}},
	{"mobility", []string{"exercise", "walking", "ambulation", "range of motion"}},
	{"fall", []string{"falls", "falling", "balance", "home safety"}},
	{"nutrition", []string{"diet", "protein", "hydration", "feeding"}},
	{"pain", []string{"analgesia", "discomfort"}},
}

// QueryExpander adds synonyms to query tokens using a static table.
type QueryExpander struct {
	synonyms map[string][]string
}

func NewQueryExpander(entries []SynonymEntry) *QueryExpander {
	m := make(map[string][]string, len(entries))
	for _, e := range entries {
		m[e.Term] = append(m[e.Term], e.Synonyms...)
	}
	return &QueryExpander{synonyms: m}
}

// Expand returns the input tokens plus the listed synonyms of every token that
// is a table key, without duplicates. Synonyms are not expanded again.
func (e *QueryExpander) Expand(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	expanded := make([]string, 0, len(tokens))

	add := func(term string) {
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		expanded = append(expanded, term)
	}

	for _, token := range tokens {
		add(token)
	}
	for _, token := range tokens {
		for _, syn := range e.synonyms[token] {
			add(syn)
		}
	}

	return expanded
}
