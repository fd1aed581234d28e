package search

import "strings"

// Expander generates query variants by substituting single tokens with their
// synonyms. Expansion operates on normalized queries, so both keys and
// synonyms live in the canonical ASCII space.
type Expander struct {
	synonyms map[string][]string
}

// NewExpander builds an Expander from a token synonym table. A nil table uses
// DefaultSynonyms.
func NewExpander(table map[string][]string) *Expander {
	if table == nil {
		table = DefaultSynonyms()
	}
	return &Expander{synonyms: table}
}

// Expand returns the normalized query plus every variant obtained by replacing
// one token with one of its synonyms. The original normalized query is always
// the first element; duplicates are removed.
func (e *Expander) Expand(normalized string) []string {
	variants := []string{normalized}
	if normalized == "" {
		return variants
	}

	seen := map[string]bool{normalized: true}
	tokens := strings.Fields(normalized)
	for i, tok := range tokens {
		for _, syn := range e.synonyms[tok] {
			replaced := make([]string, len(tokens))
			copy(replaced, tokens)
			replaced[i] = syn
			v := strings.Join(replaced, " ")
			if !seen[v] {
				seen[v] = true
				variants = append(variants, v)
			}
		}
	}
	return variants
}

// DefaultSynonyms maps canonical tokens to interchangeable alternatives seen
// in file names across the document tree.
func DefaultSynonyms() map[string][]string {
	return map[string][]string{
		"cable":       {"wire"},
		"wire":        {"cable"},
		"knx":         {"eib"},
		"sensor":      {"detector"},
		"relay":       {"switch"},
		"controller":  {"control"},
		"panel":       {"keypad"},
		"manual":      {"instruction", "guide"},
		"datasheet":   {"passport", "specification"},
		"lock":        {"doorlock"},
		"conditioner": {"hvac", "aircon"},
		"curtain":     {"track"},
		"gateway":     {"interface"},
		"voice":       {"alice"},
		"alice":       {"voice"},
		"connect":     {"integration", "setup"},
		"integration": {"connect"},
	}
}
