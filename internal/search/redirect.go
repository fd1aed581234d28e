package search

import (
	"fmt"
	"strings"
)

// RedirectTarget is one curated folder a query can be redirected to.
type RedirectTarget struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// CategoryRule redirects a query to one or more curated folders when any of
// its keywords appears in the normalized query and none of the exclusions do.
// Rules are evaluated in order; the first match wins.
type CategoryRule struct {
	Name     string           `yaml:"name"`
	Keywords []string         `yaml:"keywords"`
	Exclude  []string         `yaml:"exclude"`
	Targets  []RedirectTarget `yaml:"targets"`
}

// RedirectConfig holds the whole-phrase map and the ordered category rules.
type RedirectConfig struct {
	ExactPhrases map[string]string `yaml:"exact_phrases"`
	Categories   []CategoryRule    `yaml:"categories"`
}

// RedirectTable resolves queries against the redirect configuration. Exact
// phrases are matched against the whole normalized query; category rules are
// substring matches in priority order.
type RedirectTable struct {
	norm *Normalizer
	cfg  *RedirectConfig
}

// NewRedirectTable creates a RedirectTable. A nil config uses
// DefaultRedirectConfig.
func NewRedirectTable(norm *Normalizer, cfg *RedirectConfig) *RedirectTable {
	if cfg == nil {
		cfg = DefaultRedirectConfig()
	}
	return &RedirectTable{norm: norm, cfg: cfg}
}

// Check reports whether query should be redirected. When it should, the
// returned targets carry one entry for a single curated folder or two when the
// category covers both vendors.
func (t *RedirectTable) Check(query string) ([]RedirectTarget, bool) {
	normalized := t.norm.Normalize(query)
	if normalized == "" {
		return nil, false
	}

	if url, ok := t.cfg.ExactPhrases[normalized]; ok {
		return []RedirectTarget{{Label: fmt.Sprintf("📁 Папка с документацией: %s", query), URL: url}}, true
	}

	for _, rule := range t.cfg.Categories {
		if !containsAny(normalized, rule.Keywords) {
			continue
		}
		if containsAny(normalized, rule.Exclude) {
			continue
		}
		targets := make([]RedirectTarget, len(rule.Targets))
		copy(targets, rule.Targets)
		if len(targets) == 1 && targets[0].Label == "" {
			targets[0].Label = fmt.Sprintf("📁 Папка с документацией: %s", query)
		}
		return targets, true
	}

	return nil, false
}

// Curated folder URLs inside the public document tree.
const (
	cableFolderURL = "https://disk.360.yandex.ru/d/xJi6eEXBTq01sw/01.%20iOT%20Systems/02.%20iOT%20%D0%9A%D0%B0%D0%B1%D0%B5%D0%BB%D1%8C"
	locksFolderURL = "https://disk.360.yandex.ru/d/xJi6eEXBTq01sw/01.%20iOT%20Systems/04.%20iOT%20%D0%97%D0%B0%D0%BC%D0%BA%D0%B8"
	easyCoolURL    = "https://disk.360.yandex.ru/d/xJi6eEXBTq01sw/06.%20EasyCool"
	coolAutoURL    = "https://disk.360.yandex.ru/d/xJi6eEXBTq01sw/03.%20Coolautomation"
	moorgenURL     = "https://disk.360.yandex.ru/d/xJi6eEXBTq01sw/05.%20Moorgen"
	curtainsURL    = "https://disk.360.yandex.ru/d/xJi6eEXBTq01sw/05.%20Moorgen/01.%20%D0%9A%D0%B0%D1%80%D0%BD%D0%B8%D0%B7%D1%8B"
)

// DefaultRedirectConfig returns the production redirect table. Category order
// is significant: air conditioners first, then curtains, Moorgen, generic
// cable, locks. The cable and lock rules exclude KNX queries because those go
// through the KNX cable special case instead.
func DefaultRedirectConfig() *RedirectConfig {
	return &RedirectConfig{
		ExactPhrases: map[string]string{
			"cable":           cableFolderURL,
			"cable iot":       cableFolderURL,
			"iot cable":       cableFolderURL,
			"datasheet cable": cableFolderURL,
			"lock":            locksFolderURL,
			"door lock":       locksFolderURL,
			"lock iot":        locksFolderURL,
			"iot lock":        locksFolderURL,
			"easycool":        easyCoolURL,
			"coolautomation":  coolAutoURL,
			"moorgen":         moorgenURL,
			"curtain":         curtainsURL,
		},
		Categories: []CategoryRule{
			{
				Name:     "easycool",
				Keywords: []string{"easycool"},
				Targets:  []RedirectTarget{{URL: easyCoolURL}},
			},
			{
				Name:     "coolautomation",
				Keywords: []string{"coolautomation"},
				Targets:  []RedirectTarget{{URL: coolAutoURL}},
			},
			{
				Name:     "conditioners",
				Keywords: []string{"conditioner", "aircon", "hvac"},
				Targets: []RedirectTarget{
					{Label: "📁 EasyCool", URL: easyCoolURL},
					{Label: "📁 CoolAutomation", URL: coolAutoURL},
				},
			},
			{
				Name:     "curtains",
				Keywords: []string{"curtain", "track"},
				Targets:  []RedirectTarget{{URL: curtainsURL}},
			},
			{
				Name:     "moorgen",
				Keywords: []string{"moorgen"},
				Targets:  []RedirectTarget{{URL: moorgenURL}},
			},
			{
				Name:     "cable",
				Keywords: []string{"cable", "wire"},
				Exclude:  []string{"knx", "eib"},
				Targets:  []RedirectTarget{{URL: cableFolderURL}},
			},
			{
				Name:     "locks",
				Keywords: []string{"lock", "doorlock"},
				Exclude:  []string{"knx", "eib"},
				Targets:  []RedirectTarget{{URL: locksFolderURL}},
			},
		},
	}
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(text, n) {
			return true
		}
	}
	return false
}
