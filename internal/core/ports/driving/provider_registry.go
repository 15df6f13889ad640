package driving

import "github.com/custodia-labs/trustsearch/internal/core/domain"

// ProviderRegistry describes the configured source providers.
type ProviderRegistry interface {
	// List returns every provider in pipeline order.
	List() []domain.ProviderDescriptor

	// Get returns the named provider.
	Get(name string) (domain.ProviderDescriptor, error)

	// Status reports each provider's readiness under creds, in pipeline order.
	Status(creds domain.Credentials) []domain.ProviderStatus

	// ForKind returns the providers that produce items of kind k.
	ForKind(k domain.Kind) []domain.ProviderDescriptor
}
