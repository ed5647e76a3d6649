package services

import (
	"context"
	"sync"
	"time"

	"nathanbeddoewebdev/dcm/internal/auditlog"
	"nathanbeddoewebdev/dcm/internal/onprem/domain"
)

const testProviderUUID = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"

// --- Mock API ---

type mockAPI struct {
	mu sync.Mutex

	providers     []domain.Provider
	regions       []domain.Region
	universes     []domain.Universe
	nodes         []domain.Node
	instanceTypes []domain.InstanceType
	accessKeys    []domain.AccessKey

	providersErr error
	nodesErr     error

	calls   map[string]int
	deleted []string
}

func newMockAPI() *mockAPI {
	return &mockAPI{
		providers: []domain.Provider{
			{UUID: "aws-uuid", Name: "aws", Code: "aws"},
			{UUID: testProviderUUID, Name: "dc-east", Code: domain.ProviderTypeOnPrem},
		},
		regions: []domain.Region{{
			UUID: "r-1", Code: "us", Name: "US", Longitude: -100, Latitude: 40,
			Provider: domain.ProviderRef{Code: domain.ProviderTypeOnPrem},
			Zones:    []domain.Zone{{UUID: "z-1", Code: "us-a", Name: "us-a"}},
		}},
		nodes: []domain.Node{
			{Details: domain.NodeDetails{IP: "10.0.0.1", Region: "US", Zone: "us-a", InstanceType: "small"}},
		},
		instanceTypes: []domain.InstanceType{{InstanceTypeCode: "small", NumCores: 2, MemSizeGB: 8}},
		accessKeys: []domain.AccessKey{{
			IDKey:   domain.AccessKeyID{KeyCode: "dc-key", ProviderUUID: testProviderUUID},
			KeyInfo: domain.AccessKeyInfo{PrivateKey: "pem", SSHUser: "centos"},
		}},
		calls: make(map[string]int),
	}
}

func (m *mockAPI) call(name string) {
	m.mu.Lock()
	m.calls[name]++
	m.mu.Unlock()
}

func (m *mockAPI) count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *mockAPI) ListProviders(ctx context.Context) ([]domain.Provider, error) {
	m.call("providers")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.providersErr != nil {
		return nil, m.providersErr
	}
	return append([]domain.Provider(nil), m.providers...), nil
}

func (m *mockAPI) ListRegions(ctx context.Context) ([]domain.Region, error) {
	m.call("regions")
	return m.regions, nil
}

func (m *mockAPI) ListNodes(ctx context.Context, providerUUID string) ([]domain.Node, error) {
	m.call("nodes")
	if m.nodesErr != nil {
		return nil, m.nodesErr
	}
	return m.nodes, nil
}

func (m *mockAPI) ListInstanceTypes(ctx context.Context, providerUUID string) ([]domain.InstanceType, error) {
	m.call("instance_types")
	return m.instanceTypes, nil
}

func (m *mockAPI) ListAccessKeys(ctx context.Context, providerUUID string) ([]domain.AccessKey, error) {
	m.call("access_keys")
	return m.accessKeys, nil
}

func (m *mockAPI) ListUniverses(ctx context.Context) ([]domain.Universe, error) {
	m.call("universes")
	return m.universes, nil
}

func (m *mockAPI) DeleteProvider(ctx context.Context, providerUUID string) error {
	m.call("delete")
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, providerUUID)
	kept := m.providers[:0:0]
	for _, p := range m.providers {
		if p.UUID != providerUUID {
			kept = append(kept, p)
		}
	}
	m.providers = kept
	return nil
}

// --- Mock audit repository ---

type mockAudit struct {
	entries []auditlog.AuditEntry
}

func (r *mockAudit) Save(entry *auditlog.AuditEntry) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *mockAudit) List(limit int) ([]auditlog.AuditEntry, error) { return r.entries, nil }

func (r *mockAudit) ListByCommand(command string, limit int) ([]auditlog.AuditEntry, error) {
	return r.entries, nil
}

func (r *mockAudit) CountBefore(time.Time) (int64, error) { return 0, nil }
func (r *mockAudit) PruneBefore(time.Time) (int64, error) { return 0, nil }

func (r *mockAudit) Close() error { return nil }

func (r *mockAudit) ListByResource(resourceType, resourceID string, limit int) ([]auditlog.AuditEntry, error) {
	var out []auditlog.AuditEntry
	for _, e := range r.entries {
		if e.ResourceType == resourceType && e.ResourceID == resourceID {
			out = append(out, e)
		}
	}
	return out, nil
}
