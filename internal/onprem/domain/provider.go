// Package domain holds the on-premises provider entities as returned by the
// platform API, plus the load-state wrapper used for every async collection.
package domain

// ProviderTypeOnPrem is the provider code of an on-premises datacenter
// provider configuration.
const ProviderTypeOnPrem = "onprem"

// Provider is a configured cloud provider.
type Provider struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
	Code string `json:"code"` // e.g. "onprem", "aws"
}

// FindProvider returns the first provider whose code equals code.
func FindProvider(providers []Provider, code string) (Provider, bool) {
	for _, p := range providers {
		if p.Code == code {
			return p, true
		}
	}
	return Provider{}, false
}

// Universe is a database cluster deployed on a provider. Only the provider
// reference is consumed here.
type Universe struct {
	UUID     string       `json:"universeUUID"`
	Name     string       `json:"name"`
	Provider *ProviderRef `json:"provider,omitempty"`
}

// UsesProvider reports whether the universe is deployed on the provider.
func (u Universe) UsesProvider(providerUUID string) bool {
	return u.Provider != nil && u.Provider.UUID == providerUUID
}
