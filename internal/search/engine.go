package search

import (
	"sort"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/iotsystems/hdlbot/internal/index"
	"github.com/iotsystems/hdlbot/internal/models"
)

// Options configures an Engine. Nil sub-configs fall back to the tuned
// defaults, so a zero Options with just IndexPath set is a working engine.
type Options struct {
	IndexPath string
	Limit     int

	Substitutions map[string]string
	Synonyms      map[string][]string
	Scoring       *ScoringConfig
	Redirects     *RedirectConfig
	Specials      *SpecialConfig
	Router        *RouterConfig
}

// Engine answers queries over an in-memory snapshot of the file index. The
// snapshot is swapped atomically on reload, so searches never block behind a
// reload and never see a partially written index.
type Engine struct {
	indexPath string
	limit     int

	norm      *Normalizer
	expander  *Expander
	scorer    *Scorer
	redirects *RedirectTable
	specials  *SpecialCases
	router    *AIRouter

	snapshot atomic.Pointer[[]models.DocumentRecord]
	logger   *zap.Logger
}

// NewEngine builds an Engine and loads the initial index. A missing or
// malformed index file is logged and treated as empty, not fatal: the bot
// still answers with redirects and AI while the crawler catches up.
func NewEngine(opts Options, logger *zap.Logger) *Engine {
	if opts.Limit <= 0 {
		opts.Limit = 3
	}
	norm := NewNormalizer(opts.Substitutions)
	e := &Engine{
		indexPath: opts.IndexPath,
		limit:     opts.Limit,
		norm:      norm,
		expander:  NewExpander(opts.Synonyms),
		scorer:    NewScorer(opts.Scoring),
		redirects: NewRedirectTable(norm, opts.Redirects),
		specials:  NewSpecialCases(norm, opts.Specials),
		router:    NewAIRouter(norm, opts.Router),
		logger:    logger,
	}
	empty := []models.DocumentRecord{}
	e.snapshot.Store(&empty)
	if err := e.ReloadIndex(); err != nil {
		logger.Warn("index unavailable, starting empty",
			zap.String("path", opts.IndexPath),
			zap.Error(err))
	}
	return e
}

// ReloadIndex re-reads the index file and swaps the snapshot. The previous
// snapshot stays live for searches already in flight.
func (e *Engine) ReloadIndex() error {
	records, err := index.Load(e.indexPath)
	if err != nil {
		return err
	}
	e.snapshot.Store(&records)
	e.logger.Info("index loaded",
		zap.String("path", e.indexPath),
		zap.Int("documents", len(records)))
	return nil
}

// Index returns the current snapshot. Callers must not mutate it.
func (e *Engine) Index() []models.DocumentRecord {
	return *e.snapshot.Load()
}

// Normalize exposes the engine's normalizer for collaborators that need the
// same canonical form (the crawler, the bot's logging).
func (e *Engine) Normalize(text string) string {
	return e.norm.Normalize(text)
}

// ShouldUseAIDirectly reports whether the query should skip document search.
func (e *Engine) ShouldUseAIDirectly(query string) bool {
	return e.router.ShouldUseAIDirectly(query)
}

// HybridSearch runs the full pipeline: special cases, redirects, scored
// search with irrelevance filtering, then the legacy keyword fallback. It
// never returns an error; an empty slice means nothing matched.
func (e *Engine) HybridSearch(query string, limit int) []models.SearchResult {
	if limit <= 0 {
		limit = e.limit
	}
	if strings.TrimSpace(query) == "" {
		return nil
	}
	idx := e.Index()

	if e.specials.MatchVoice(query) {
		e.logger.Debug("voice assistant special case", zap.String("query", query))
		return []models.SearchResult{e.specials.VoiceResult()}
	}

	if e.specials.MatchKNXCable(query) {
		if results := e.specials.FindKNXCableFiles(idx); len(results) > 0 {
			e.logger.Debug("knx cable special case",
				zap.String("query", query),
				zap.Int("matches", len(results)))
			return truncate(results, limit)
		}
	}

	if targets, ok := e.redirects.Check(query); ok {
		results := make([]models.SearchResult, 0, len(targets))
		for _, t := range targets {
			results = append(results, models.FolderResult(t.Label, t.URL))
		}
		e.logger.Debug("redirect", zap.String("query", query), zap.Int("targets", len(targets)))
		return results
	}

	results := e.Search(query, limit*2)
	results = e.filterObviouslyIrrelevant(results, query)
	if len(results) > 0 {
		return truncate(results, limit)
	}

	return truncate(e.legacySearch(query), limit)
}

// Search scores every document against the expanded query variants and
// returns the top results with positive relevance, sorted descending.
func (e *Engine) Search(query string, limit int) []models.SearchResult {
	if limit <= 0 {
		limit = e.limit
	}
	normalized := e.norm.Normalize(query)
	if normalized == "" {
		return nil
	}
	variants := e.expander.Expand(normalized)
	e.logger.Debug("scoring",
		zap.String("query", query),
		zap.Strings("variants", variants))

	var results []models.SearchResult
	for _, doc := range e.Index() {
		score := e.scorer.Score(doc, variants)
		if score > 0 {
			results = append(results, models.DocumentResult(doc, score))
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})
	return truncate(results, limit)
}

// filterObviouslyIrrelevant drops results that match the words but not the
// intent: datasheets when the user asks about integration or setup, and
// peripheral hardware when the user asks about a controller.
func (e *Engine) filterObviouslyIrrelevant(results []models.SearchResult, query string) []models.SearchResult {
	combined := strings.ToLower(query) + " " + e.norm.Normalize(query)

	wantsIntegration := containsAny(combined, []string{
		"integration", "интеграци", "connect", "подключ", "setup", "настро", "api", "protocol", "протокол",
	})
	wantsController := containsAny(combined, []string{"controller", "контроллер"})

	if !wantsIntegration && !wantsController {
		return results
	}

	filtered := results[:0:0]
	for _, r := range results {
		name := strings.ToLower(r.Name)
		if wantsIntegration && containsAny(name, []string{"datasheet", "паспорт", "технический паспорт"}) {
			continue
		}
		if wantsController && containsAny(name, []string{"датчик", "sensor", "реле", "relay", "кабель", "cable"}) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// legacySearch is the keyword fallback used when scoring finds nothing. Three
// tiers run in order and the first non-empty one wins. It predates the scored
// path and is deliberately conservative; a panic here must not take the bot
// down, hence the recover.
func (e *Engine) legacySearch(query string) (results []models.SearchResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("legacy search panicked",
				zap.String("query", query),
				zap.Any("panic", r))
			results = nil
		}
	}()

	normalized := e.norm.Normalize(query)
	if normalized == "" {
		return nil
	}
	idx := e.Index()

	keywords := make([]string, 0, 4)
	for _, tok := range strings.Fields(normalized) {
		if len(tok) >= 2 {
			keywords = append(keywords, tok)
		}
	}

	// Tier 1: every keyword present in the normalized name.
	if len(keywords) > 0 {
		for _, doc := range idx {
			norm := strings.ToLower(doc.NormName)
			if norm == "" {
				norm = e.norm.Normalize(doc.Name)
			}
			if containsAllTokens(norm, keywords) {
				results = append(results, models.DocumentResult(doc, float64(len(keywords))))
			}
		}
		if len(results) > 0 {
			return results
		}
	}

	// Tier 2: partial keyword matches, weighted toward the normalized name.
	for _, doc := range idx {
		name := strings.ToLower(doc.Name)
		norm := strings.ToLower(doc.NormName)
		var score float64
		matched := 0
		for _, kw := range keywords {
			if strings.Contains(norm, kw) {
				matched++
				score += 20
			}
			if strings.Contains(name, kw) {
				score += 10
			}
		}
		if strings.Contains(norm, "alice") && strings.Contains(norm, "knx") {
			score += 100
		}
		if matched >= 2 || score >= 100 {
			results = append(results, models.DocumentResult(doc, score))
		}
	}
	if len(results) > 0 {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Relevance > results[j].Relevance
		})
		return results
	}

	// Tier 3: a handful of domain keywords that matter even alone.
	important := []string{"alice", "knx", "integration", "connect", "gateway", "voice", "hdl", "buspro"}
	var present []string
	for _, kw := range important {
		if strings.Contains(normalized, kw) {
			present = append(present, kw)
		}
	}
	if len(present) == 0 {
		return nil
	}
	for _, doc := range idx {
		norm := strings.ToLower(doc.NormName)
		if norm == "" {
			norm = e.norm.Normalize(doc.Name)
		}
		var score float64
		for _, kw := range present {
			if strings.Contains(norm, kw) {
				score += 30
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

// HasOnlyTechnicalFiles reports whether every result looks like a datasheet.
// The bot uses this to nudge the user toward rephrasing an integration
// question.
func (e *Engine) HasOnlyTechnicalFiles(results []models.SearchResult) bool {
	if len(results) == 0 {
		return false
	}
	for _, r := range results {
		if r.IsFolderLink {
			return false
		}
		name := strings.ToLower(r.Name)
		if !containsAny(name, []string{"datasheet", "паспорт", "техническ"}) {
			return false
		}
	}
	return true
}

func truncate(results []models.SearchResult, limit int) []models.SearchResult {
	if len(results) > limit {
		return results[:limit]
	}
	return results
}
