// Package services holds the on-prem provider service layer and the screen
// session that drives the snapshot builder.
//
// Service wraps a domain.API with stale-while-revalidate caching for reads
// and audit recording for deletes. Session owns the fetched state and feeds
// every update through the builder.
package services

import (
	"context"
	"fmt"
	"time"

	"nathanbeddoewebdev/dcm/internal/auditlog"
	"nathanbeddoewebdev/dcm/internal/onprem/domain"
	"nathanbeddoewebdev/dcm/internal/swrcache"

	"github.com/rs/zerolog"
)

// Compile-time check that Service satisfies domain.API.
var _ domain.API = (*Service)(nil)

// Service is the on-prem business logic layer between commands and the
// platform client.
type Service struct {
	api   domain.API
	scope string
	cache *swrcache.Cache
	audit auditlog.Repository
	log   zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables stale-while-revalidate caching for read operations.
// scope separates cache entries per customer.
func WithCache(cache *swrcache.Cache, scope string) Option {
	return func(s *Service) {
		s.cache = cache
		s.scope = scope
	}
}

// WithAudit records deletes in repo.
func WithAudit(repo auditlog.Repository) Option {
	return func(s *Service) {
		s.audit = repo
	}
}

// WithLogger sets the service logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// New returns a Service backed by api.
func New(api domain.API, opts ...Option) *Service {
	svc := &Service{api: api, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func cached[T any](s *Service, ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, error) {
	if s.cache == nil {
		return fetch(ctx)
	}
	return swrcache.GetOrFetch(s.cache, ctx, key, fetch)
}

// ListProviders returns the customer's providers.
func (s *Service) ListProviders(ctx context.Context) ([]domain.Provider, error) {
	return cached(s, ctx, cacheKey(s.scope, "providers"), s.api.ListProviders)
}

// ListRegions returns the customer's regions.
func (s *Service) ListRegions(ctx context.Context) ([]domain.Region, error) {
	return cached(s, ctx, cacheKey(s.scope, "regions"), s.api.ListRegions)
}

// ListNodes returns the provider's node instances.
func (s *Service) ListNodes(ctx context.Context, providerUUID string) ([]domain.Node, error) {
	return cached(s, ctx, cacheKey(s.scope, "provider", providerUUID, "nodes"), func(ctx context.Context) ([]domain.Node, error) {
		return s.api.ListNodes(ctx, providerUUID)
	})
}

// ListInstanceTypes returns the provider's instance types.
func (s *Service) ListInstanceTypes(ctx context.Context, providerUUID string) ([]domain.InstanceType, error) {
	return cached(s, ctx, cacheKey(s.scope, "provider", providerUUID, "instance_types"), func(ctx context.Context) ([]domain.InstanceType, error) {
		return s.api.ListInstanceTypes(ctx, providerUUID)
	})
}

// ListAccessKeys returns the provider's access keys. Keys carry private
// key material and are never written to the cache.
func (s *Service) ListAccessKeys(ctx context.Context, providerUUID string) ([]domain.AccessKey, error) {
	return s.api.ListAccessKeys(ctx, providerUUID)
}

// ListUniverses returns the customer's universes. Always fetched fresh: a
// stale list could enable a delete that the platform must refuse.
func (s *Service) ListUniverses(ctx context.Context) ([]domain.Universe, error) {
	return s.api.ListUniverses(ctx)
}

// DeleteProvider deletes the provider configuration. It refuses with
// ErrProviderInUse while any universe is deployed on the provider.
func (s *Service) DeleteProvider(ctx context.Context, providerUUID string) error {
	start := time.Now()
	err := s.deleteProvider(ctx, providerUUID)

	entry := &auditlog.AuditEntry{
		Timestamp:    start,
		Command:      "dcm onprem delete",
		Provider:     domain.ProviderTypeOnPrem,
		ResourceType: "provider",
		ResourceID:   providerUUID,
	}
	auditlog.MetadataFromContext(ctx).Fill(entry)
	s.record(entry, start, err)

	return err
}

func (s *Service) deleteProvider(ctx context.Context, providerUUID string) error {
	universes, err := s.api.ListUniverses(ctx)
	if err != nil {
		return fmt.Errorf("failed to check universes: %w", err)
	}
	for _, u := range universes {
		if u.UsesProvider(providerUUID) {
			return fmt.Errorf("cannot delete provider %s: universe %q: %w", providerUUID, u.Name, domain.ErrProviderInUse)
		}
	}

	if err := s.api.DeleteProvider(ctx, providerUUID); err != nil {
		return err
	}

	s.Invalidate()
	s.log.Info().Str("provider_uuid", providerUUID).Msg("provider deleted")
	return nil
}

// Invalidate drops every cached read for the scope.
func (s *Service) Invalidate() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePrefix(cacheKey(s.scope)); err != nil {
		s.log.Warn().Err(err).Msg("failed to invalidate cache")
	}
}

func (s *Service) record(entry *auditlog.AuditEntry, start time.Time, err error) {
	if s.audit == nil {
		return
	}
	entry.Finish(start, err)
	if saveErr := s.audit.Save(entry); saveErr != nil {
		s.log.Warn().Err(saveErr).Msg("failed to write audit entry")
	}
}
