// Package service orchestrates one chart computation: cache lookup, the
// external engine call, and the fortune derivations, in that order. The
// derivations themselves live in internal/fortune and stay pure; everything
// stateful (cache, metrics, audit) is injected here.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ziwei/internal/almanac"
	"ziwei/internal/audit"
	"ziwei/internal/chart/engineclient"
	chartmetrics "ziwei/internal/chart/metrics"
	"ziwei/internal/chart/models"
	"ziwei/internal/chart/store"
	"ziwei/internal/fortune"
	"ziwei/pkg/platform/sentinel"
	"ziwei/pkg/requestcontext"
)

// Service computes enriched charts.
type Service struct {
	engine   engineclient.Client
	cache    store.Cache
	fortune  *fortune.Engine
	cacheTTL time.Duration
	recentN  int

	publisher *audit.Publisher
	metrics   *chartmetrics.Metrics
	logger    *slog.Logger
}

type serviceConfig struct {
	publisher *audit.Publisher
	metrics   *chartmetrics.Metrics
	logger    *slog.Logger
}

// Option configures optional service collaborators.
type Option func(*serviceConfig)

func WithAuditPublisher(p *audit.Publisher) Option {
	return func(c *serviceConfig) { c.publisher = p }
}

func WithMetrics(m *chartmetrics.Metrics) Option {
	return func(c *serviceConfig) { c.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *serviceConfig) { c.logger = l }
}

func New(engine engineclient.Client, cache store.Cache, cacheTTL time.Duration, recentN int, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return &Service{
		engine:    engine,
		cache:     cache,
		fortune:   fortune.New(),
		cacheTTL:  cacheTTL,
		recentN:   recentN,
		publisher: cfg.publisher,
		metrics:   cfg.metrics,
		logger:    cfg.logger,
	}
}

// Compute returns the enriched chart for a birth record, serving a cached
// result when the same record was computed recently. The "as of" moment for
// every age- and year-dependent derivation is the request-scoped time.
func (s *Service) Compute(ctx context.Context, birth models.BirthRecord) (*Result, error) {
	if err := birth.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", sentinel.ErrInvalidInput, err)
	}

	key := birth.CacheKey()
	if payload, err := s.cache.Get(ctx, key); err == nil {
		var cached Result
		if err := json.Unmarshal(payload, &cached); err == nil {
			s.countCacheHit()
			// Name differs per submission even when the chart is shared.
			cached.Birth.Name = birth.Name
			return &cached, nil
		}
		s.logger.WarnContext(ctx, "discarding undecodable cache entry", "key", key, "error", err)
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.WarnContext(ctx, "chart cache read failed", "key", key, "error", err)
	}
	s.countCacheMiss()

	start := time.Now()
	skeleton, err := s.engine.BuildChart(ctx, birth)
	s.observeEngineCall(time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("chart engine: %w", err)
	}

	result, err := s.enrich(ctx, birth, skeleton)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
			s.logger.WarnContext(ctx, "chart cache write failed", "key", key, "error", err)
		}
	}

	s.countComputed()
	if s.publisher != nil {
		s.publisher.Emit(ctx, audit.Event{
			Action:  audit.ActionChartComputed,
			Subject: key,
			Detail:  result.FiveElementClass,
		})
	}
	return result, nil
}

// Recent returns the most recently computed charts, newest first.
func (s *Service) Recent(ctx context.Context) ([]Result, error) {
	payloads, err := s.cache.Recent(ctx, s.recentN)
	if err != nil {
		return nil, fmt.Errorf("recent charts: %w", err)
	}
	results := make([]Result, 0, len(payloads))
	for _, payload := range payloads {
		var r Result
		if err := json.Unmarshal(payload, &r); err != nil {
			s.logger.WarnContext(ctx, "skipping undecodable recent entry", "error", err)
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

// enrich applies the full derivation chain to an engine skeleton.
func (s *Service) enrich(ctx context.Context, birth models.BirthRecord, skeleton *engineclient.Skeleton) (*Result, error) {
	yearStem, yearBranch, err := parseYearPillar(skeleton.ChineseDate)
	if err != nil {
		return nil, err
	}

	class, ok := almanac.ParseFiveElementClass(skeleton.FiveElementsClass)
	if !ok {
		return nil, fmt.Errorf("chart engine returned unknown five element class %q", skeleton.FiveElementsClass)
	}

	bodyBranch, _ := almanac.ParseBranch(skeleton.BodyPalaceBranch)
	palaces := mapPalaces(skeleton.Palaces, bodyBranch)

	asOf := requestcontext.Now(ctx)
	ages := fortune.ComputeAge(birth.Year, birth.Month, birth.Day, asOf)

	periods, err := s.fortune.BuildDecadalPeriods(class, yearStem, birth.Gender, palaces)
	if err != nil {
		return nil, fmt.Errorf("decadal periods: %w", err)
	}
	var current *fortune.DecadalPeriod
	if p, ok := fortune.SelectCurrentDecadal(periods, ages.Traditional); ok {
		current = &p
	}

	yearly, err := s.fortune.ResolveYearlyPeriod(yearBranch, birth.Year, asOf.Year(), palaces)
	if err != nil {
		return nil, fmt.Errorf("yearly period: %w", err)
	}

	origin, err := s.fortune.ResolveOriginPalace(yearStem, palaces)
	if err != nil {
		return nil, fmt.Errorf("origin palace: %w", err)
	}

	return &Result{
		ID:               uuid.NewString(),
		Birth:            birth,
		ChineseDate:      skeleton.ChineseDate,
		YearStem:         yearStem.String(),
		YearBranch:       yearBranch.String(),
		FiveElementClass: class.String(),
		BodyPalaceBranch: bodyBranch.String(),
		Palaces:          palaces,
		Ages:             ages,
		DecadalPeriods:   periods,
		CurrentDecadal:   current,
		YearlyPeriod:     yearly,
		OriginPalace:     origin,
		ComputedAt:       asOf,
	}, nil
}

// parseYearPillar reads the birth-year stem and branch off the front of the
// engine's sexagenary date string.
func parseYearPillar(chineseDate string) (almanac.HeavenlyStem, almanac.EarthlyBranch, error) {
	runes := []rune(chineseDate)
	if len(runes) < 2 {
		return 0, 0, fmt.Errorf("chart engine returned malformed chinese date %q", chineseDate)
	}
	stem, ok := almanac.ParseStem(string(runes[0]))
	if !ok {
		return 0, 0, fmt.Errorf("chinese date %q does not start with a heavenly stem", chineseDate)
	}
	branch, ok := almanac.ParseBranch(string(runes[1]))
	if !ok {
		return 0, 0, fmt.Errorf("chinese date %q does not carry an earthly branch", chineseDate)
	}
	return stem, branch, nil
}

// mapPalaces converts engine DTOs to domain palaces, applying the brightness
// override to every star and deriving the life/body flags.
func mapPalaces(dtos []engineclient.PalaceDTO, bodyBranch almanac.EarthlyBranch) []models.Palace {
	palaces := make([]models.Palace, 0, len(dtos))
	for _, dto := range dtos {
		stem, _ := almanac.ParseStem(dto.HeavenlyStem)
		branch, _ := almanac.ParseBranch(dto.EarthlyBranch)

		stars := make([]models.StarPlacement, 0, len(dto.MajorStars)+len(dto.MinorStars)+len(dto.AdjectiveStars))
		stars = appendStars(stars, dto.MajorStars, models.StarMajor, branch)
		stars = appendStars(stars, dto.MinorStars, models.StarMinor, branch)
		stars = appendStars(stars, dto.AdjectiveStars, models.StarAdjective, branch)

		palaces = append(palaces, models.Palace{
			Name:         dto.Name,
			HeavenlyStem: stem,
			Branch:       branch,
			Stars:        stars,
			IsLifePalace: dto.Name == almanac.LifePalaceName,
			IsBodyPalace: branch == bodyBranch,
		})
	}
	return palaces
}

func appendStars(dst []models.StarPlacement, src []engineclient.StarDTO, category models.StarCategory, branch almanac.EarthlyBranch) []models.StarPlacement {
	for _, star := range src {
		dst = append(dst, models.StarPlacement{
			Name:       star.Name,
			Category:   category,
			Brightness: fortune.ResolveBrightness(star.Name, branch, models.Brightness(star.Brightness)),
			Mutagen:    models.Mutagen(star.Mutagen),
		})
	}
	return dst
}

func (s *Service) countCacheHit() {
	if s.metrics != nil {
		s.metrics.CacheHits.Inc()
	}
}

func (s *Service) countCacheMiss() {
	if s.metrics != nil {
		s.metrics.CacheMisses.Inc()
	}
}

func (s *Service) countComputed() {
	if s.metrics != nil {
		s.metrics.ChartsComputed.Inc()
	}
}

func (s *Service) observeEngineCall(d time.Duration) {
	if s.metrics != nil {
		s.metrics.EngineDuration.Observe(d.Seconds())
	}
}
