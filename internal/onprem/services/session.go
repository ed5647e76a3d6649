package services

import (
	"context"
	"fmt"
	"sync"

	"nathanbeddoewebdev/dcm/internal/onprem/domain"
	"nathanbeddoewebdev/dcm/internal/onprem/snapshot"
	"nathanbeddoewebdev/dcm/internal/onprem/topology"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Session is the lifetime of one provider screen: it mounts, receives
// fetch results and bootstrap events, and keeps the wizard seed in the
// store up to date.
type Session struct {
	api     domain.API
	store   *snapshot.Store
	builder *snapshot.Builder
	log     zerolog.Logger

	mu    sync.RWMutex
	state State

	// applyMu serializes builder runs so each sees the latest state.
	applyMu sync.Mutex

	// pubMu orders commit-and-publish in Receive, so observers see states
	// in the order they were committed. It is taken before mu.
	pubMu    sync.Mutex
	onChange func(State)
}

// NewSession returns a session reading through api and writing the seed
// into store.
func NewSession(api domain.API, store *snapshot.Store, log zerolog.Logger) *Session {
	log = log.With().Str("component", "session").Logger()
	return &Session{
		api:     api,
		store:   store,
		builder: snapshot.NewBuilder(store, log),
		log:     log,
	}
}

// OnChange registers fn to be called with every committed state, in
// commit order. fn must not call Receive. A nil fn unregisters.
func (s *Session) OnChange(fn func(State)) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	s.onChange = fn
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Store returns the seed store.
func (s *Session) Store() *snapshot.Store {
	return s.store
}

// Mount fetches the provider metadata and, when an on-prem provider
// exists, its access keys, nodes and instance types. Fetch failures are
// recorded on the collections; Mount returns the metadata error only,
// since nothing can render without it.
func (s *Session) Mount(ctx context.Context) error {
	if err := s.FetchMetadata(ctx); err != nil {
		return err
	}

	provider, ok := s.State().Provider()
	if !ok {
		s.log.Debug().Msg("no on-prem provider configured")
		return nil
	}
	s.FetchProviderData(ctx, provider.UUID)
	return nil
}

// FetchMetadata fetches providers, regions and universes concurrently.
func (s *Session) FetchMetadata(ctx context.Context) error {
	s.Receive(ctx, MetadataPending())

	var g errgroup.Group

	g.Go(func() error {
		data, err := s.api.ListProviders(ctx)
		s.Receive(ctx, ProvidersLoaded(data, err))
		return err
	})
	g.Go(func() error {
		data, err := s.api.ListRegions(ctx)
		s.Receive(ctx, RegionsLoaded(data, err))
		if err == nil {
			s.warnDuplicateZones(data)
		}
		return err
	})
	g.Go(func() error {
		data, err := s.api.ListUniverses(ctx)
		s.Receive(ctx, UniversesLoaded(data, err))
		if err != nil {
			s.log.Warn().Err(err).Msg("failed to list universes")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to fetch cloud metadata: %w", err)
	}
	return nil
}

// FetchProviderData fetches the provider-scoped collections concurrently.
// Each completion is received as soon as it arrives.
func (s *Session) FetchProviderData(ctx context.Context, providerUUID string) {
	s.Receive(ctx, ProviderDataPending())

	var g errgroup.Group
	g.Go(func() error {
		data, err := s.api.ListAccessKeys(ctx, providerUUID)
		s.Receive(ctx, AccessKeysLoaded(data, err))
		s.logFetchErr("access keys", err)
		return nil
	})
	g.Go(func() error {
		data, err := s.api.ListNodes(ctx, providerUUID)
		s.Receive(ctx, NodesLoaded(data, err))
		s.logFetchErr("nodes", err)
		return nil
	})
	g.Go(func() error {
		data, err := s.api.ListInstanceTypes(ctx, providerUUID)
		s.Receive(ctx, InstanceTypesLoaded(data, err))
		s.logFetchErr("instance types", err)
		return nil
	})
	_ = g.Wait()
}

// Receive applies an update and re-runs the builder. A bootstrap cleanup
// event with a response resets the seed and refetches the metadata.
func (s *Session) Receive(ctx context.Context, u Update) {
	s.pubMu.Lock()
	s.mu.Lock()
	prev := s.state
	next := prev
	u(&next)
	cleanup := next.Bootstrap != prev.Bootstrap && next.Bootstrap.CleanupDone()
	if cleanup {
		MetadataPending()(&next)
	}
	s.state = next
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange(next)
	}
	s.pubMu.Unlock()

	if cleanup {
		s.log.Info().Msg("provider cleanup finished, resetting wizard seed")
		s.store.Reset()
		if err := s.FetchMetadata(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to refetch cloud metadata")
		}
	}

	s.applyBuilder()
}

// applyBuilder runs the builder once providers and regions are loaded, so a
// seed is never built from a half-refreshed provider list.
func (s *Session) applyBuilder() {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	st := s.State()
	if !st.Loaded() {
		return
	}
	if _, err := s.builder.Apply(st.SnapshotInputs()); err != nil {
		s.log.Error().Err(err).Msg("failed to build wizard seed")
	}
}

// Delete deletes the provider configuration. It refuses when a loaded
// universe uses the provider. On success a cleanup event is received,
// which resets the seed.
func (s *Session) Delete(ctx context.Context, providerUUID string) error {
	for _, u := range s.State().Universes.Data {
		if u.UsesProvider(providerUUID) {
			return fmt.Errorf("cannot delete provider: universe %q: %w", u.Name, domain.ErrProviderInUse)
		}
	}

	if err := s.api.DeleteProvider(ctx, providerUUID); err != nil {
		return err
	}

	s.Receive(ctx, BootstrapReceived(domain.BootstrapEvent{
		Type:     domain.BootstrapTypeCleanup,
		Response: map[string]string{"providerUUID": providerUUID},
	}))
	return nil
}

func (s *Session) logFetchErr(what string, err error) {
	if err != nil {
		s.log.Warn().Err(err).Msgf("failed to list %s", what)
	}
}

func (s *Session) warnDuplicateZones(regions []domain.Region) {
	for _, ref := range topology.DuplicateZoneNames(regions) {
		s.log.Warn().
			Str("region", ref.Region).
			Str("zone", ref.Zone).
			Msg("duplicate zone name, nodes will be shown under every match")
	}
}
