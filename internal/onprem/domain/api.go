package domain

import "context"

// API is the subset of the platform REST API the on-prem console consumes.
type API interface {
	ListProviders(ctx context.Context) ([]Provider, error)
	ListRegions(ctx context.Context) ([]Region, error)
	ListNodes(ctx context.Context, providerUUID string) ([]Node, error)
	ListInstanceTypes(ctx context.Context, providerUUID string) ([]InstanceType, error)
	ListAccessKeys(ctx context.Context, providerUUID string) ([]AccessKey, error)
	ListUniverses(ctx context.Context) ([]Universe, error)
	DeleteProvider(ctx context.Context, providerUUID string) error
}
