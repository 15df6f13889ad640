package services

import (
	"fmt"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driving"
)

// ProviderRegistry serves provider descriptors to the driving adapters.
type ProviderRegistry struct {
	descriptors []domain.ProviderDescriptor
	byName      map[string]int
}

// Ensure ProviderRegistry implements the interface.
var _ driving.ProviderRegistry = (*ProviderRegistry)(nil)

// NewProviderRegistry creates a registry over descriptors, kept in the
// given order. A later descriptor with a repeated name is ignored.
func NewProviderRegistry(descriptors []domain.ProviderDescriptor) *ProviderRegistry {
	r := &ProviderRegistry{byName: make(map[string]int, len(descriptors))}
	for _, d := range descriptors {
		if _, dup := r.byName[d.Name]; dup {
			continue
		}
		r.byName[d.Name] = len(r.descriptors)
		r.descriptors = append(r.descriptors, d)
	}
	return r
}

// List returns every provider in pipeline order.
func (r *ProviderRegistry) List() []domain.ProviderDescriptor {
	// Return a copy to prevent modification
	out := make([]domain.ProviderDescriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Get returns the named provider.
func (r *ProviderRegistry) Get(name string) (domain.ProviderDescriptor, error) {
	i, ok := r.byName[name]
	if !ok {
		return domain.ProviderDescriptor{}, fmt.Errorf("%w: provider %q", domain.ErrNotFound, name)
	}
	return r.descriptors[i], nil
}

// Status reports each provider's readiness under creds.
func (r *ProviderRegistry) Status(creds domain.Credentials) []domain.ProviderStatus {
	out := make([]domain.ProviderStatus, len(r.descriptors))
	for i, d := range r.descriptors {
		out[i] = d.Status(creds)
	}
	return out
}

// ForKind returns the providers that produce items of kind k.
func (r *ProviderRegistry) ForKind(k domain.Kind) []domain.ProviderDescriptor {
	var out []domain.ProviderDescriptor
	for _, d := range r.descriptors {
		for _, kind := range d.Kinds {
			if kind == k {
				out = append(out, d)
				break
			}
		}
	}
	return out
}
