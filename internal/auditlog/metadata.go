package auditlog

import "context"

// Metadata describes what a command is acting on. Commands attach it to the
// context so that lower layers writing audit entries can fill in the
// resource and invocation details they do not know themselves.
type Metadata struct {
	Provider     string
	ResourceType string
	ResourceID   string
	ResourceName string
	// Args is the sanitized invocation, see JoinArgs.
	Args string
}

type metadataKey struct{}

// WithMetadata attaches meta to ctx. Empty fields keep any value already
// attached by an outer caller.
func WithMetadata(ctx context.Context, meta Metadata) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	existing := MetadataFromContext(ctx)
	return context.WithValue(ctx, metadataKey{}, Metadata{
		Provider:     pick(meta.Provider, existing.Provider),
		ResourceType: pick(meta.ResourceType, existing.ResourceType),
		ResourceID:   pick(meta.ResourceID, existing.ResourceID),
		ResourceName: pick(meta.ResourceName, existing.ResourceName),
		Args:         pick(meta.Args, existing.Args),
	})
}

// MetadataFromContext returns audit metadata stored in the context.
func MetadataFromContext(ctx context.Context) Metadata {
	if ctx == nil {
		return Metadata{}
	}
	meta, _ := ctx.Value(metadataKey{}).(Metadata)
	return meta
}

// Fill copies m into the empty fields of entry.
func (m Metadata) Fill(entry *AuditEntry) {
	entry.Provider = pick(entry.Provider, m.Provider)
	entry.ResourceType = pick(entry.ResourceType, m.ResourceType)
	entry.ResourceID = pick(entry.ResourceID, m.ResourceID)
	entry.ResourceName = pick(entry.ResourceName, m.ResourceName)
	entry.Args = pick(entry.Args, m.Args)
}

func pick(next, fallback string) string {
	if next != "" {
		return next
	}
	return fallback
}
