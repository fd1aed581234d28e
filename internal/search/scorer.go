package search

import (
	"strings"

	"github.com/iotsystems/hdlbot/internal/models"
)

// ScoringConfig holds the relevance weights. Values are hand tuned against the
// real document tree; override them from configuration only when retuning.
type ScoringConfig struct {
	ExactNameScore   float64 `yaml:"exact_name_score"`
	AllWordsScore    float64 `yaml:"all_words_score"`
	NormNameScore    float64 `yaml:"norm_name_score"`
	PathScore        float64 `yaml:"path_score"`
	SimilarityWeight float64 `yaml:"similarity_weight"`
	TokenNameScore   float64 `yaml:"token_name_score"`
	TokenNormScore   float64 `yaml:"token_norm_score"`
	TokenPathScore   float64 `yaml:"token_path_score"`

	// Bonuses applied only when the query variant asks for KNX cable.
	KNXPartNumberBonus float64 `yaml:"knx_part_number_bonus"`
	KNXCableTypeBonus  float64 `yaml:"knx_cable_type_bonus"`
	KNXCableSpecBonus  float64 `yaml:"knx_cable_spec_bonus"`
	KNXPhraseBonus     float64 `yaml:"knx_phrase_bonus"`
	KNXSensorPenalty   float64 `yaml:"knx_sensor_penalty"`
}

// DefaultScoringConfig returns the tuned weights.
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		ExactNameScore:   10,
		AllWordsScore:    8,
		NormNameScore:    7,
		PathScore:        6,
		SimilarityWeight: 5,
		TokenNameScore:   2,
		TokenNormScore:   3,
		TokenPathScore:   1,

		KNXPartNumberBonus: 100,
		KNXCableTypeBonus:  80,
		KNXCableSpecBonus:  60,
		KNXPhraseBonus:     40,
		KNXSensorPenalty:   50,
	}
}

// ApplyDefaults fills zero-valued weights from DefaultScoringConfig.
func (c *ScoringConfig) ApplyDefaults() {
	d := DefaultScoringConfig()
	if c.ExactNameScore == 0 {
		c.ExactNameScore = d.ExactNameScore
	}
	if c.AllWordsScore == 0 {
		c.AllWordsScore = d.AllWordsScore
	}
	if c.NormNameScore == 0 {
		c.NormNameScore = d.NormNameScore
	}
	if c.PathScore == 0 {
		c.PathScore = d.PathScore
	}
	if c.SimilarityWeight == 0 {
		c.SimilarityWeight = d.SimilarityWeight
	}
	if c.TokenNameScore == 0 {
		c.TokenNameScore = d.TokenNameScore
	}
	if c.TokenNormScore == 0 {
		c.TokenNormScore = d.TokenNormScore
	}
	if c.TokenPathScore == 0 {
		c.TokenPathScore = d.TokenPathScore
	}
	if c.KNXPartNumberBonus == 0 {
		c.KNXPartNumberBonus = d.KNXPartNumberBonus
	}
	if c.KNXCableTypeBonus == 0 {
		c.KNXCableTypeBonus = d.KNXCableTypeBonus
	}
	if c.KNXCableSpecBonus == 0 {
		c.KNXCableSpecBonus = d.KNXCableSpecBonus
	}
	if c.KNXPhraseBonus == 0 {
		c.KNXPhraseBonus = d.KNXPhraseBonus
	}
	if c.KNXSensorPenalty == 0 {
		c.KNXSensorPenalty = d.KNXSensorPenalty
	}
}

// Scorer computes the relevance of one document against a set of query
// variants. The final relevance is the maximum over all variants, so a synonym
// hit counts as much as a direct one.
type Scorer struct {
	config *ScoringConfig
}

// NewScorer creates a Scorer. A nil config uses DefaultScoringConfig.
func NewScorer(cfg *ScoringConfig) *Scorer {
	if cfg == nil {
		cfg = DefaultScoringConfig()
	}
	return &Scorer{config: cfg}
}

// Score returns the relevance of doc for the given variants. Zero means the
// document matched nothing and should be excluded.
func (s *Scorer) Score(doc models.DocumentRecord, variants []string) float64 {
	name := strings.ToLower(doc.Name)
	path := strings.ToLower(doc.Path)
	norm := strings.ToLower(doc.NormName)
	searchText := name + " " + path + " " + norm
	nameTokens := tokenSet(name)

	var best float64
	for _, v := range variants {
		if v == "" {
			continue
		}
		score := s.scoreVariant(v, name, path, norm, searchText, nameTokens)
		if score > best {
			best = score
		}
	}
	return best
}

func (s *Scorer) scoreVariant(variant, name, path, norm, searchText string, nameTokens map[string]bool) float64 {
	var score float64

	if strings.Contains(name, variant) {
		score += s.config.ExactNameScore
	}

	tokens := strings.Fields(variant)
	if isTokenSubset(tokens, nameTokens) {
		score += s.config.AllWordsScore
	}

	if norm != "" && strings.Contains(norm, variant) {
		score += s.config.NormNameScore
	}
	if strings.Contains(path, variant) {
		score += s.config.PathScore
	}

	sim := Ratio(variant, name)
	if p := Ratio(variant, path); p > sim {
		sim = p
	}
	score += sim * s.config.SimilarityWeight

	for _, tok := range tokens {
		if len(tok) < 2 {
			continue
		}
		if strings.Contains(name, tok) {
			score += s.config.TokenNameScore
		}
		if norm != "" && strings.Contains(norm, tok) {
			score += s.config.TokenNormScore
		}
		if strings.Contains(path, tok) {
			score += s.config.TokenPathScore
		}
	}

	if strings.Contains(variant, "cable") && strings.Contains(variant, "knx") {
		score += s.knxCableBonus(searchText)
	}

	return score
}

// knxCableBonus pulls the actual KNX cable documents above everything else
// when the query asks for them. Marker strings are matched against the raw
// name and path, so both Cyrillic and ASCII spellings are listed.
func (s *Scorer) knxCableBonus(searchText string) float64 {
	var bonus float64
	if strings.Contains(searchText, "ye00820") {
		bonus += s.config.KNXPartNumberBonus
	}
	if strings.Contains(searchText, "j-y(st)y") {
		bonus += s.config.KNXCableTypeBonus
	}
	if strings.Contains(searchText, "2x2x0,8") || strings.Contains(searchText, "2х2х0,8") {
		bonus += s.config.KNXCableSpecBonus
	}
	if strings.Contains(searchText, "knx кабель") || strings.Contains(searchText, "кабель knx") ||
		strings.Contains(searchText, "knx cable") || strings.Contains(searchText, "cable knx") {
		bonus += s.config.KNXPhraseBonus
	}
	if strings.Contains(searchText, "датчик") || strings.Contains(searchText, "sensor") {
		bonus -= s.config.KNXSensorPenalty
	}
	return bonus
}

func containsAllTokens(text string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(text, tok) {
			return false
		}
	}
	return true
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}

// isTokenSubset reports whether every token of the variant is an exact token
// of the name. Partial word overlap does not count.
func isTokenSubset(tokens []string, set map[string]bool) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if !set[tok] {
			return false
		}
	}
	return true
}
