// Package service provides the distribution service behind the /asset HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/okian/assetlens/internal/adapters/repository"
	"github.com/okian/assetlens/internal/asset"
	"github.com/okian/assetlens/pkg/logger"
	"github.com/okian/assetlens/pkg/metrics"
)

// DefaultSet is the distribution set served when a requested set is unknown.
const DefaultSet = "asset"

// Sentinel kinds for service errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
)

// Service serves distributions assembled from the configured sets.
type Service struct {
	store  repository.Store
	now    func() time.Time
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the backing store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Service. Without WithStore it serves an empty in-memory store.
func New(opts ...Option) *Service {
	s := &Service{
		store:  repository.NewMemoryStore(),
		now:    time.Now,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Distribution returns the named top-level set. Unknown sets fall back to DefaultSet.
func (s *Service) Distribution(ctx context.Context, set string) (asset.Distribution, error) {
	items, err := s.store.Get(ctx, repository.KindDistribution, set)
	if errors.Is(err, repository.ErrNotFound) && set != DefaultSet {
		s.logger.Debug(ctx, "distribution set not configured, using default",
			logger.String("set", set))
		set = DefaultSet
		items, err = s.store.Get(ctx, repository.KindDistribution, set)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return asset.Distribution{}, fmt.Errorf("%w: distribution %q", ErrNotFound, set)
		}
		return asset.Distribution{}, fmt.Errorf("get distribution %q: %w", set, err)
	}

	d := s.assemble(items)
	metrics.UpdateDistributionTotal(set, d.Total)
	return d, nil
}

// DistributionDetail returns the detail set of one category label.
func (s *Service) DistributionDetail(ctx context.Context, itemName string) (asset.Distribution, error) {
	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return asset.Distribution{}, fmt.Errorf("%w: itemName is required", ErrBadRequest)
	}
	items, err := s.store.Get(ctx, repository.KindDetail, itemName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return asset.Distribution{}, fmt.Errorf("%w: detail %q", ErrNotFound, itemName)
		}
		return asset.Distribution{}, fmt.Errorf("get detail %q: %w", itemName, err)
	}
	return s.assemble(items), nil
}

// Sets returns the configured top-level set names.
func (s *Service) Sets(ctx context.Context) []string {
	return s.store.Names(ctx, repository.KindDistribution)
}

func (s *Service) assemble(items []repository.Item) asset.Distribution {
	d := asset.Distribution{
		Items:     make([]asset.Item, 0, len(items)),
		Timestamp: s.now().Unix(),
	}
	for _, it := range items {
		d.Items = append(d.Items, asset.Item{Name: it.Name, Value: it.Value})
		d.Total += it.Value
	}
	return d
}
