package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/noah-isme/wazai-maps/internal/dto"
	"github.com/noah-isme/wazai-maps/internal/models"
)

const (
	searchCachePrefix = "search:"
	providersCacheKey = "providers"
)

type searchRepository interface {
	Search(ctx context.Context, params models.SearchParams) ([]models.Event, error)
	Providers(ctx context.Context) ([]string, error)
}

// SearchConfig sets cache lifetimes for upstream responses.
type SearchConfig struct {
	SearchTTL    time.Duration
	ProvidersTTL time.Duration
}

// SearchService fetches events and providers from the search API, sharing
// identical in-flight queries and caching responses.
type SearchService struct {
	repo   searchRepository
	cache  *CacheService
	cfg    SearchConfig
	group  singleflight.Group
	logger *zap.Logger
}

// NewSearchService constructs a SearchService. cache may be nil.
func NewSearchService(repo searchRepository, cache *CacheService, cfg SearchConfig, logger *zap.Logger) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{repo: repo, cache: cache, cfg: cfg, logger: logger}
}

// Search returns events for params. The bool reports a cache hit.
//
// Identical concurrent queries share one upstream call, which is detached from
// any single caller's cancellation; a caller that gives up gets ctx.Err() while
// the others still receive the result.
func (s *SearchService) Search(ctx context.Context, params models.SearchParams) ([]models.Event, bool, error) {
	params = params.Normalize()
	key := searchCachePrefix + params.CacheKey()

	var cached []models.Event
	if s.cache.Get(ctx, key, &cached) {
		return cached, true, nil
	}

	ch := s.group.DoChan(key, func() (interface{}, error) {
		fetchCtx := context.WithoutCancel(ctx)
		events, err := s.repo.Search(fetchCtx, params)
		if err != nil {
			return nil, err
		}
		s.cache.Set(fetchCtx, key, events, s.cfg.SearchTTL)
		return events, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, false, res.Err
		}
		events := res.Val.([]models.Event)
		out := make([]models.Event, len(events))
		copy(out, events)
		return out, false, nil
	}
}

// Providers returns the provider picker options with ALL first. When the
// upstream call fails the options hold only ALL and Degraded is set.
func (s *SearchService) Providers(ctx context.Context) dto.ProviderOptions {
	var names []string
	if !s.cache.Get(ctx, providersCacheKey, &names) {
		v, err, _ := s.group.Do(providersCacheKey, func() (interface{}, error) {
			return s.repo.Providers(ctx)
		})
		if err != nil {
			s.logger.Warn("providers unavailable, serving ALL only", zap.Error(err))
			return dto.ProviderOptions{Options: providerOptions(nil), Degraded: true}
		}
		names = v.([]string)
		s.cache.Set(ctx, providersCacheKey, names, s.cfg.ProvidersTTL)
	}
	return dto.ProviderOptions{Options: providerOptions(names)}
}

func providerOptions(names []string) []dto.ProviderOption {
	out := make([]dto.ProviderOption, 0, len(names)+1)
	out = append(out, dto.ProviderOption{Value: models.FilterAll, Label: "All providers"})
	seen := map[string]struct{}{models.FilterAll: {}}
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, dto.ProviderOption{Value: name, Label: models.Label(name)})
	}
	return out
}

// Warm fetches the provider list and the default search concurrently so the
// first sessions are served from cache.
func (s *SearchService) Warm(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if opts := s.Providers(gctx); opts.Degraded {
			return fmt.Errorf("warm providers: upstream unavailable")
		}
		return nil
	})
	g.Go(func() error {
		if _, _, err := s.Search(gctx, models.DefaultSearchParams()); err != nil {
			return fmt.Errorf("warm default search: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// Invalidate drops every cached search and provider response.
func (s *SearchService) Invalidate(ctx context.Context) error {
	if err := s.cache.Invalidate(ctx, searchCachePrefix+"*"); err != nil {
		return err
	}
	return s.cache.Invalidate(ctx, providersCacheKey)
}
