package snapshot

import (
	"errors"

	"nathanbeddoewebdev/dcm/internal/onprem/domain"

	"github.com/rs/zerolog"
)

// Builder fires Build at most once per store lifecycle: only while the
// store is NotBuilt and only once the provider-scoped collections are ready.
type Builder struct {
	store *Store
	log   zerolog.Logger
}

// NewBuilder returns a builder writing into store.
func NewBuilder(store *Store, log zerolog.Logger) *Builder {
	return &Builder{store: store, log: log.With().Str("component", "snapshot").Logger()}
}

// Apply builds and stores the seed when the guard allows it. It reports
// whether a seed was stored on this call. A missing on-prem provider is
// logged and leaves the store NotBuilt.
func (b *Builder) Apply(in Inputs) (bool, error) {
	if b.store.State() == Built {
		return false, nil
	}
	if !in.Ready() {
		b.log.Debug().
			Stringer("nodes", in.Nodes.Status).
			Stringer("instance_types", in.InstanceTypes.Status).
			Stringer("access_keys", in.AccessKeys.Status).
			Msg("dependencies not ready")
		return false, nil
	}

	built, err := b.store.setIfNotBuilt(func() (*Snapshot, error) {
		b.warnDuplicateKeys(in)
		return Build(in)
	})
	if errors.Is(err, domain.ErrProviderNotFound) {
		b.log.Debug().Msg("no on-prem provider, seed not built")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if built {
		snap := b.store.Get()
		b.log.Info().
			Str("provider", snap.Provider.Name).
			Int("regions", len(snap.Regions)).
			Int("instance_types", len(snap.InstanceTypes)).
			Int("nodes", len(snap.Nodes)).
			Msg("wizard seed built")
	}
	return built, nil
}

func (b *Builder) warnDuplicateKeys(in Inputs) {
	provider, ok := domain.FindProvider(in.Providers, domain.ProviderTypeOnPrem)
	if !ok {
		return
	}
	if _, n := SelectAccessKey(in.AccessKeys.Data, provider.UUID); n > 1 {
		b.log.Warn().
			Str("provider_uuid", provider.UUID).
			Int("matches", n).
			Msg("multiple access keys for provider, using the first")
	}
}
