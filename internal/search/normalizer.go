// Package search implements the document relevance engine: query
// normalization, synonym expansion, heuristic scoring, redirect rules,
// special cases, and the hybrid orchestrator that ties them together.
package search

import (
	"sort"
	"strings"
	"sync"
	"unicode"
)

// maxCacheEntries bounds the normalization memo; the whole map is dropped when
// exceeded, which is cheaper than tracking recency for short-lived queries.
const maxCacheEntries = 4096

// Normalizer canonicalizes user queries and file names: lowercase, substitute
// known misspellings and Cyrillic transliterations with canonical ASCII tokens,
// strip everything outside [a-z0-9 ], collapse whitespace.
//
// Normalize is pure and idempotent; results are memoized because the same
// query is normalized on every search branch.
type Normalizer struct {
	subs []substitution

	mu    sync.RWMutex
	cache map[string]string
}

type substitution struct {
	from string
	to   string
}

// NewNormalizer builds a Normalizer from a substitution table. Substitutions
// are applied longest-key-first so multi-word triggers are not shadowed by
// shorter ones. A nil table uses DefaultSubstitutions.
func NewNormalizer(table map[string]string) *Normalizer {
	if table == nil {
		table = DefaultSubstitutions()
	}
	subs := make([]substitution, 0, len(table))
	for from, to := range table {
		subs = append(subs, substitution{from: strings.ToLower(from), to: strings.ToLower(to)})
	}
	sort.Slice(subs, func(i, j int) bool {
		if len(subs[i].from) != len(subs[j].from) {
			return len(subs[i].from) > len(subs[j].from)
		}
		return subs[i].from < subs[j].from
	})
	return &Normalizer{
		subs:  subs,
		cache: make(map[string]string),
	}
}

// Normalize returns the canonical form of text. Empty and whitespace-only
// input normalizes to the empty string.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	n.mu.RLock()
	cached, ok := n.cache[text]
	n.mu.RUnlock()
	if ok {
		return cached
	}

	// Punctuation is dropped before substitution so hyphenated or dotted
	// spellings ("easy-cool") still hit their multi-word triggers, and the
	// output of one pass is a fixed point of the next.
	out := strings.ToLower(strings.TrimSpace(text))
	out = stripPunct(out)
	out = strings.Join(strings.Fields(out), " ")
	for _, s := range n.subs {
		out = strings.ReplaceAll(out, s.from, s.to)
	}
	out = stripNonAlnum(out)
	out = strings.Join(strings.Fields(out), " ")

	n.mu.Lock()
	if len(n.cache) >= maxCacheEntries {
		n.cache = make(map[string]string)
	}
	n.cache[text] = out
	n.mu.Unlock()

	return out
}

// stripPunct replaces punctuation and symbols with spaces while keeping
// letters of any script, so Cyrillic substitution keys still match afterwards.
func stripPunct(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// stripNonAlnum replaces every rune outside lowercase ASCII letters and digits
// with a space. Cyrillic that survived substitution is dropped here.
func stripNonAlnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// DefaultSubstitutions maps Cyrillic spellings, transliterations, and common
// misspellings of brand and domain terms to their canonical ASCII tokens.
// Stems are used where Russian inflection varies the ending.
func DefaultSubstitutions() map[string]string {
	return map[string]string{
		// protocols
		"кникс": "knx",
		"кнх":   "knx",
		"дали":  "dali",

		// brands
		"урри":          "urri",
		"юрии":          "urri",
		"хдл":           "hdl",
		"баспро":        "buspro",
		"баспр":         "buspro",
		"матек":         "matech",
		"матеч":         "matech",
		"йилайт":        "yeelight",
		"yee light":     "yeelight",
		"изикул":        "easycool",
		"изи кул":       "easycool",
		"easy cool":     "easycool",
		"кулавтомейшн":  "coolautomation",
		"моорген":       "moorgen",
		"моргэн":        "moorgen",
		"айоти":         "iot",
		"иот":           "iot",

		// hardware categories
		"кабель":      "cable",
		"кабел":       "cable",
		"провод":      "cable",
		"датчик":      "sensor",
		"сенсор":      "sensor",
		"детектор":    "sensor",
		"реле":        "relay",
		"контроллер":  "controller",
		"панел":       "panel",
		"замк":        "lock",
		"замок":       "lock",
		"дверн":       "door",
		"шлюз":        "gateway",
		"кондиционер": "conditioner",
		"штор":        "curtain",
		"карниз":      "track",

		// documentation words
		"инструкци": "manual",
		"руководств": "manual",
		"паспорт":   "datasheet",
		"техничка":  "datasheet",
		"техническ": "datasheet",
		"документаци": "docs",

		// voice assistant and integration vocabulary
		"алис":     "alice",
		"голосов":  "voice",
		"интеграци": "integration",
		"подключ":  "connect",
		"настро":   "setup",
		"связать":  "connect",
		"объединить": "connect",
	}
}
