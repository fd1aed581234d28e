package search

import (
	"sort"
	"strings"

	"github.com/iotsystems/hdlbot/internal/models"
)

// SpecialConfig drives the two hard-coded query families that bypass generic
// scoring: voice assistant integration and KNX cable.
type SpecialConfig struct {
	VoiceKeywords       []string `yaml:"voice_keywords"`
	IntegrationKeywords []string `yaml:"integration_keywords"`
	VoiceFolderName     string   `yaml:"voice_folder_name"`
	VoiceFolderURL      string   `yaml:"voice_folder_url"`

	// KNXPhrases short-circuit the token check: any of them anywhere in the
	// query means the user is asking about KNX cable.
	KNXPhrases []string `yaml:"knx_phrases"`

	// KNXMarkers select and rank the cable documents themselves. Higher
	// weight means a more specific marker.
	KNXMarkers []KNXMarker `yaml:"knx_markers"`
}

// KNXMarker is a substring looked up in a document's name and path.
type KNXMarker struct {
	Marker string  `yaml:"marker"`
	Weight float64 `yaml:"weight"`
}

// DefaultSpecialConfig returns the production special case rules.
func DefaultSpecialConfig() *SpecialConfig {
	return &SpecialConfig{
		VoiceKeywords:       []string{"alice", "voice", "алис", "голосов"},
		IntegrationKeywords: []string{"integration", "connect", "setup", "интеграци", "подключ", "настро", "как"},
		VoiceFolderName:     "📁 Интеграция с Яндекс Алисой",
		VoiceFolderURL:      "https://disk.360.yandex.ru/d/xJi6eEXBTq01sw/02.%20HDL/10.%20%D0%98%D0%BD%D1%82%D0%B5%D0%B3%D1%80%D0%B0%D1%86%D0%B8%D1%8F%20%D1%81%20%D0%90%D0%BB%D0%B8%D1%81%D0%BE%D0%B9",
		KNXPhrases: []string{
			"кабель knx", "knx кабель", "cable knx", "knx cable",
			"ye00820", "j-y(st)y", "2x2x0,8", "2х2х0,8",
		},
		KNXMarkers: []KNXMarker{
			{Marker: "ye00820", Weight: 1000},
			{Marker: "j-y(st)y", Weight: 500},
			{Marker: "j-y st y", Weight: 500},
			{Marker: "2x2x0,8", Weight: 300},
			{Marker: "2х2х0,8", Weight: 300},
			{Marker: "knx кабель", Weight: 200},
			{Marker: "кабель knx", Weight: 200},
			{Marker: "knx cable", Weight: 200},
			{Marker: "cable knx", Weight: 200},
		},
	}
}

// SpecialCases answers whether a query belongs to one of the bypass families
// and produces their results.
type SpecialCases struct {
	norm *Normalizer
	cfg  *SpecialConfig
}

// NewSpecialCases creates SpecialCases. A nil config uses
// DefaultSpecialConfig.
func NewSpecialCases(norm *Normalizer, cfg *SpecialConfig) *SpecialCases {
	if cfg == nil {
		cfg = DefaultSpecialConfig()
	}
	return &SpecialCases{norm: norm, cfg: cfg}
}

// MatchVoice reports whether the query asks about voice assistant
// integration: it must mention the assistant and an integration word.
func (s *SpecialCases) MatchVoice(query string) bool {
	combined := s.combined(query)
	return containsAny(combined, s.cfg.VoiceKeywords) &&
		containsAny(combined, s.cfg.IntegrationKeywords)
}

// VoiceResult returns the curated folder link for voice assistant queries.
func (s *SpecialCases) VoiceResult() models.SearchResult {
	return models.FolderResult(s.cfg.VoiceFolderName, s.cfg.VoiceFolderURL)
}

// MatchKNXCable reports whether the query asks for KNX cable, either by a
// known phrase or by mentioning both the protocol and a cable word.
func (s *SpecialCases) MatchKNXCable(query string) bool {
	combined := s.combined(query)
	if containsAny(combined, s.cfg.KNXPhrases) {
		return true
	}
	normalized := s.norm.Normalize(query)
	hasKNX := false
	hasCable := false
	for _, tok := range strings.Fields(normalized) {
		if strings.Contains(tok, "knx") {
			hasKNX = true
		}
		if tok == "cable" || tok == "wire" {
			hasCable = true
		}
	}
	return hasKNX && hasCable
}

// FindKNXCableFiles scans the index for documents carrying KNX cable markers
// and ranks them by marker weight. Returns nil when nothing matches, letting
// the caller fall through to generic search.
func (s *SpecialCases) FindKNXCableFiles(index []models.DocumentRecord) []models.SearchResult {
	var results []models.SearchResult
	for _, doc := range index {
		text := strings.ToLower(doc.SearchText())
		var score float64
		for _, m := range s.cfg.KNXMarkers {
			if strings.Contains(text, m.Marker) {
				score += m.Weight
			}
		}
		if score > 0 {
			results = append(results, models.DocumentResult(doc, score))
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})
	return results
}

// combined joins the raw lowercased query with its normalized form so rules
// can match either Cyrillic or canonical spellings.
func (s *SpecialCases) combined(query string) string {
	return strings.ToLower(query) + " " + s.norm.Normalize(query)
}
