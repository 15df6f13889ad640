package domain

// ProviderDescriptor describes a built-in source provider.
type ProviderDescriptor struct {
	// Name is the identifier used in logs and metrics (e.g., "wikipedia").
	Name string `json:"name"`

	// Label is the source label shown on items.
	Label string `json:"label"`

	// Description is a one-line summary.
	Description string `json:"description"`

	// Group is the toggle group: core, web or video.
	Group string `json:"group"`

	// Kinds lists the item kinds the provider produces.
	Kinds []Kind `json:"kinds"`

	// Backends lists the credential sets that enable the provider. One fully
	// set entry is enough. Empty means the provider needs no key.
	Backends [][]CredentialName `json:"backends,omitempty"`

	// Keyless reports whether the provider still runs when no backend is
	// configured (e.g., YouTube falls back to the public feed).
	Keyless bool `json:"keyless,omitempty"`
}

// Credentials returns every credential named by any backend, in order,
// without duplicates.
func (d ProviderDescriptor) Credentials() []CredentialName {
	var out []CredentialName
	seen := make(map[CredentialName]bool)
	for _, backend := range d.Backends {
		for _, name := range backend {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// Status reports whether the provider can run with creds.
func (d ProviderDescriptor) Status(creds Credentials) ProviderStatus {
	status := ProviderStatus{Provider: d}
	for _, backend := range d.Backends {
		if backendSet(backend, creds) {
			status.Ready = true
			status.Backend = backend
			return status
		}
	}
	status.Ready = len(d.Backends) == 0 || d.Keyless
	return status
}

func backendSet(backend []CredentialName, creds Credentials) bool {
	for _, name := range backend {
		if creds.Value(name) == "" {
			return false
		}
	}
	return len(backend) > 0
}

// ProviderStatus is a provider's readiness under a set of credentials.
type ProviderStatus struct {
	Provider ProviderDescriptor `json:"provider"`

	// Ready reports whether the provider contributes results.
	Ready bool `json:"ready"`

	// Backend is the credential set in use, nil when none is configured.
	Backend []CredentialName `json:"backend,omitempty"`
}
