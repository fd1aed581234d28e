package search

import "strings"

// RouterConfig drives the decision between document search and the AI
// assistant for an incoming query.
type RouterConfig struct {
	// NeverAIMarkers force document search: brand names, hardware
	// categories we stock documentation for, and explicit document words.
	NeverAIMarkers []string `yaml:"never_ai_markers"`

	// VoiceKeywords and IntegrationKeywords mirror the voice special case:
	// a voice query goes to AI unless it is an integration question, which
	// the curated folder answers better.
	VoiceKeywords       []string `yaml:"voice_keywords"`
	IntegrationKeywords []string `yaml:"integration_keywords"`

	// ComplexMarkers send the query to AI: comparisons, troubleshooting,
	// questions about how something works.
	ComplexMarkers []string `yaml:"complex_markers"`

	// DocRequestVerbs keep long queries in document search when present.
	DocRequestVerbs []string `yaml:"doc_request_verbs"`
}

// DefaultRouterConfig returns the production routing rules.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		NeverAIMarkers: []string{
			"urri", "hdl", "buspro", "matech", "yeelight",
			"easycool", "coolautomation", "moorgen", "iot systems",
			"cable", "кабель", "провод",
			"lock", "замок", "замк",
			"sensor", "датчик",
			"relay", "реле",
			"panel", "панел",
			"curtain", "штор", "карниз",
			"conditioner", "кондиционер",
			"datasheet", "паспорт", "техничк",
			"manual", "инструкци", "руководств",
			"docs", "документаци",
		},
		VoiceKeywords:       []string{"alice", "voice", "алис", "голосов"},
		IntegrationKeywords: []string{"integration", "connect", "setup", "интеграци", "подключ", "настро"},
		ComplexMarkers: []string{
			"или", " vs ", "сравн", "лучше", "разниц", "отлич",
			"не работает", "not working", "почему", "why",
			"принцип работы", "как работает", "что такое", "what is",
			"knx", "dali", "modbus",
		},
		DocRequestVerbs: []string{
			"найди", "найти", "скинь", "пришли", "отправь", "дай",
			"нужн", "send", "find", "give",
		},
	}
}

// AIRouter decides whether a query skips document search and goes straight to
// the AI assistant.
type AIRouter struct {
	norm *Normalizer
	cfg  *RouterConfig
}

// NewAIRouter creates an AIRouter. A nil config uses DefaultRouterConfig.
func NewAIRouter(norm *Normalizer, cfg *RouterConfig) *AIRouter {
	if cfg == nil {
		cfg = DefaultRouterConfig()
	}
	return &AIRouter{norm: norm, cfg: cfg}
}

// ShouldUseAIDirectly applies the routing cascade. The rules fire in order and
// the first one that matches decides:
//
//  1. a marker we have documentation for forces search;
//  2. voice assistant questions go to AI, except integration ones;
//  3. complex technical questions go to AI;
//  4. one or two words look like a product lookup, search;
//  5. a long query without a document-request verb is conversational, AI;
//  6. everything else searches.
func (r *AIRouter) ShouldUseAIDirectly(query string) bool {
	rawLower := strings.ToLower(strings.TrimSpace(query))
	if rawLower == "" {
		return false
	}
	combined := rawLower + " " + r.norm.Normalize(query)

	if containsAny(combined, r.cfg.NeverAIMarkers) {
		return false
	}

	if containsAny(combined, r.cfg.VoiceKeywords) {
		return !containsAny(combined, r.cfg.IntegrationKeywords)
	}

	if containsAny(combined, r.cfg.ComplexMarkers) {
		return true
	}

	tokens := strings.Fields(rawLower)
	if len(tokens) <= 2 {
		return false
	}
	if len(tokens) >= 4 && !containsAny(combined, r.cfg.DocRequestVerbs) {
		return true
	}

	return false
}
