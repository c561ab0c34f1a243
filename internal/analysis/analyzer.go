package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"cleancut/internal/lexicon"
	"cleancut/internal/logging"
	"cleancut/internal/profanity"
	"cleancut/internal/services"
	"cleancut/internal/subtitles"
	"cleancut/internal/timeline"
)

// ErrNoSubtitles reports that the input produced no usable captions. It is a
// normal outcome, never cached, and matches services.ErrNotFound.
var ErrNoSubtitles = fmt.Errorf("%w: no usable subtitles", services.ErrNotFound)

// Request describes one analysis.
type Request struct {
	ContentID   string
	Text        string
	Tier        lexicon.Tier
	CustomWords []string
	Whitelist   []string
	// OffsetMS and SpeedRatio re-time captions before filtering.
	OffsetMS   int64
	SpeedRatio float64
}

// Record is a persisted result plus the signature of the input it came from.
type Record struct {
	Key       Key
	Signature string
	Result    *timeline.Result
	SavedAt   time.Time
}

// Persister stores results across processes. Load returns an error matching
// services.ErrNotFound when nothing is stored for key.
type Persister interface {
	Load(ctx context.Context, key Key) (Record, error)
	Save(ctx context.Context, record Record) error
}

// Option configures an Analyzer.
type Option func(*settings)

type settings struct {
	cache      Cache
	logger     *slog.Logger
	filter     timeline.FilterFunc
	persister  Persister
	thresholds timeline.Thresholds
	dropAds    bool
}

// WithCache replaces the default in-memory cache.
func WithCache(cache Cache) Option {
	return func(s *settings) {
		if cache != nil {
			s.cache = cache
		}
	}
}

// WithLogger sets the logger used for analysis events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFilterFunc replaces the matcher-backed per-caption function. The
// request's custom words and whitelist are ignored when it is set.
func WithFilterFunc(fn timeline.FilterFunc) Option {
	return func(s *settings) {
		s.filter = fn
	}
}

// WithPersister consults p on a cache miss and saves fresh results to it.
func WithPersister(p Persister) Option {
	return func(s *settings) {
		s.persister = p
	}
}

// WithThresholds sets the profanity level bands.
func WithThresholds(t timeline.Thresholds) Option {
	return func(s *settings) {
		s.thresholds = t
	}
}

// WithAdvertisementRemoval drops provider and release-group credit captions
// before filtering.
func WithAdvertisementRemoval(enabled bool) Option {
	return func(s *settings) {
		s.dropAds = enabled
	}
}

// Analyzer runs and memoizes subtitle analyses. It is safe for concurrent use
// and computes each key at most once at a time.
type Analyzer struct {
	matcher  *profanity.Matcher
	settings settings
	group    singleflight.Group
}

// New builds an analyzer around matcher.
func New(matcher *profanity.Matcher, opts ...Option) *Analyzer {
	s := settings{
		cache:      NewMemoryCache(),
		logger:     logging.NewNop(),
		thresholds: timeline.DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "analysis")
	return &Analyzer{matcher: matcher, settings: s}
}

// Cache exposes the result cache.
func (a *Analyzer) Cache() Cache {
	return a.settings.cache
}

// Analyze returns the result for req, computing it at most once per key.
// Concurrent callers for the same key share one computation. Empty input
// yields ErrNoSubtitles and is not cached.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*timeline.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !req.Tier.Valid() {
		return nil, services.Wrap(services.ErrValidation, "analysis", "analyze", fmt.Sprintf("invalid tier %d", int(req.Tier)), nil)
	}
	req.ContentID = normalizeContentID(req.ContentID)
	if req.ContentID == "" {
		req.ContentID = TextContentID(req.Text)
	}
	if req.SpeedRatio < 0 || math.IsNaN(req.SpeedRatio) || math.IsInf(req.SpeedRatio, 0) {
		return nil, services.Wrap(services.ErrValidation, "analysis", "analyze", fmt.Sprintf("invalid speed ratio %v", req.SpeedRatio), nil)
	}
	if req.SpeedRatio == 0 {
		req.SpeedRatio = 1
	}
	key := Key{ContentID: req.ContentID, Tier: req.Tier}

	if result, ok := a.settings.cache.Get(key); ok {
		a.settings.logger.Debug("analysis cache hit",
			logging.String(logging.FieldContentID, key.ContentID),
			logging.String(logging.FieldTier, key.Tier.String()),
			logging.String(logging.FieldEventType, "analysis_cache_hit"),
		)
		return result, nil
	}

	value, err, shared := a.group.Do(key.String(), func() (any, error) {
		if result, ok := a.settings.cache.Get(key); ok {
			return result, nil
		}
		result, err := a.compute(ctx, key, req)
		if err != nil {
			return nil, err
		}
		a.settings.cache.Put(key, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		a.settings.logger.Debug("analysis shared with concurrent caller",
			logging.String(logging.FieldContentID, key.ContentID),
			logging.String(logging.FieldTier, key.Tier.String()),
		)
	}
	return value.(*timeline.Result), nil
}

// AnalyzeTiers analyzes req once per tier concurrently.
func (a *Analyzer) AnalyzeTiers(ctx context.Context, req Request, tiers ...lexicon.Tier) (map[lexicon.Tier]*timeline.Result, error) {
	if len(tiers) == 0 {
		tiers = lexicon.Tiers
	}
	results := make([]*timeline.Result, len(tiers))
	g, gctx := errgroup.WithContext(ctx)
	for i, tier := range tiers {
		g.Go(func() error {
			tierReq := req
			tierReq.Tier = tier
			result, err := a.Analyze(gctx, tierReq)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make(map[lexicon.Tier]*timeline.Result, len(tiers))
	for i, tier := range tiers {
		out[tier] = results[i]
	}
	return out, nil
}

// Invalidate drops every cached tier for contentID. Persisted results are
// left alone; they are only reused when their input signature matches.
func (a *Analyzer) Invalidate(contentID string) {
	contentID = normalizeContentID(contentID)
	for _, tier := range lexicon.Tiers {
		a.settings.cache.Delete(Key{ContentID: contentID, Tier: tier})
	}
}

func (a *Analyzer) compute(ctx context.Context, key Key, req Request) (*timeline.Result, error) {
	ctx = services.WithRequestID(ctx, uuid.NewString())
	ctx = services.WithContentID(ctx, key.ContentID)
	ctx = services.WithTier(ctx, key.Tier.String())
	logger := logging.WithContext(ctx, a.settings.logger)

	overlay := profanity.NewOverlay(req.CustomWords, req.Whitelist)
	sig := signature(req, overlay, a.settings)
	if a.matcher != nil {
		sig += ":" + a.matcher.Lexicon().Fingerprint()
	}

	if result, ok := a.loadPersisted(ctx, logger, key, sig); ok {
		return result, nil
	}

	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: %s has no subtitle text", ErrNoSubtitles, key.ContentID)
	}

	started := time.Now()
	parsed, parseStats := subtitles.ParseWithStats(req.Text)
	if parseStats.SkippedBlocks > 0 {
		logger.Debug("skipped malformed subtitle blocks",
			logging.Int("skipped", parseStats.SkippedBlocks),
			logging.Int("blocks", parseStats.Blocks),
		)
	}
	entries, report := subtitles.RepairWithReport(parsed.Entries)
	if report.Changed() {
		logger.Debug("repaired subtitle timing",
			logging.Int("clamped", report.Clamped),
			logging.Int("extended", report.Extended),
			logging.Int("shifted", report.Shifted),
			logging.Int("dropped", report.Dropped),
			logging.Int("deduplicated", report.Deduplicated),
		)
	}
	if a.settings.dropAds {
		var removed int
		entries, removed = subtitles.DropAdvertisements(entries)
		if removed > 0 {
			logger.Debug("removed advertisement captions", logging.Int("removed", removed))
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s produced zero entries", ErrNoSubtitles, key.ContentID)
	}

	fn := a.settings.filter
	if fn == nil {
		if a.matcher == nil {
			return nil, services.Wrap(services.ErrConfiguration, "analysis", "analyze", "no matcher configured", nil)
		}
		fn = timeline.MatcherFilter(a.matcher, overlay)
	}
	result := timeline.Synthesize(subtitles.ParsedSubtitle{Entries: entries}, key.Tier, fn, timeline.Options{
		OffsetMS:   req.OffsetMS,
		SpeedRatio: req.SpeedRatio,
		Thresholds: a.settings.thresholds,
	})

	logger.Info("subtitle analysis complete",
		logging.String(logging.FieldEventType, "analysis_complete"),
		logging.Int("entries", result.Stats.TotalEntries),
		logging.Int("profane_entries", result.Stats.ProfaneEntries),
		logging.String("profanity_level", result.Stats.Level.String()),
		logging.Int("muting_ranges", len(result.MutingRanges)),
		logging.Duration("elapsed", time.Since(started)),
	)

	a.savePersisted(ctx, logger, Record{Key: key, Signature: sig, Result: result, SavedAt: time.Now().UTC()})
	return result, nil
}

func (a *Analyzer) loadPersisted(ctx context.Context, logger *slog.Logger, key Key, sig string) (*timeline.Result, bool) {
	if a.settings.persister == nil {
		return nil, false
	}
	record, err := a.settings.persister.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			logging.WarnWithContext(logger, "persisted analysis unavailable", "analysis_store_load_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "analysis recomputed without persistence"),
				logging.String(logging.FieldErrorHint, "check the data directory and store lock"),
			)
		}
		return nil, false
	}
	if record.Result == nil || record.Signature != sig {
		logger.Debug("persisted analysis is stale", logging.String(logging.FieldEventType, "analysis_store_stale"))
		return nil, false
	}
	logger.Debug("loaded persisted analysis", logging.String(logging.FieldEventType, "analysis_store_hit"))
	return record.Result, true
}

func (a *Analyzer) savePersisted(ctx context.Context, logger *slog.Logger, record Record) {
	if a.settings.persister == nil {
		return
	}
	if err := a.settings.persister.Save(ctx, record); err != nil {
		logging.WarnWithContext(logger, "failed to persist analysis", "analysis_store_save_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "result cached in memory only"),
			logging.String(logging.FieldErrorHint, "check the data directory and store lock"),
		)
	}
}
