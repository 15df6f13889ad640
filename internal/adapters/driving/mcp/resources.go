package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for trustsearch resources.
	uriScheme = "trustsearch://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "providers",
		Name:        "providers",
		Description: "Source providers and whether each is ready with the configured credentials",
		MIMEType:    "application/json",
	}, s.handleProvidersResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "providers/{name}",
		Name:        "provider",
		Description: "Description of a single source provider",
		MIMEType:    "application/json",
	}, s.handleProviderResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sections",
		Name:        "sections",
		Description: "Result sections in display order and the item kinds each collects",
		MIMEType:    "application/json",
	}, s.handleSectionsResource)
}

// handleProvidersResource returns every provider with its readiness.
func (s *Server) handleProvidersResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Providers == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	var creds domain.Credentials
	if s.ports.Settings != nil {
		settings, err := s.ports.Settings.Get()
		if err != nil {
			return nil, fmt.Errorf("loading settings: %w", err)
		}
		creds = settings.Credentials
	}

	type providerInfo struct {
		Name        string   `json:"name"`
		Label       string   `json:"label"`
		Description string   `json:"description"`
		Group       string   `json:"group"`
		Kinds       []string `json:"kinds"`
		Ready       bool     `json:"ready"`
	}

	statuses := s.ports.Providers.Status(creds)
	infos := make([]providerInfo, len(statuses))
	for i, st := range statuses {
		kinds := make([]string, len(st.Provider.Kinds))
		for j, k := range st.Provider.Kinds {
			kinds[j] = k.String()
		}
		infos[i] = providerInfo{
			Name:        st.Provider.Name,
			Label:       st.Provider.Label,
			Description: st.Provider.Description,
			Group:       st.Provider.Group,
			Kinds:       kinds,
			Ready:       st.Ready,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling providers: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleProviderResource returns the descriptor of one provider.
func (s *Server) handleProviderResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Providers == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract name from URI: trustsearch://providers/{name}
	name := extractProviderName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	d, err := s.ports.Providers.Get(name)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting provider: %w", err)
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling provider: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleSectionsResource returns the section layout.
func (s *Server) handleSectionsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type sectionInfo struct {
		Label string        `json:"label"`
		Kinds []domain.Kind `json:"kinds"`
	}

	specs := domain.DefaultSections()
	infos := make([]sectionInfo, len(specs))
	for i, spec := range specs {
		infos[i] = sectionInfo{Label: spec.Label, Kinds: spec.Kinds}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sections: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractProviderName extracts the provider name from a URI like trustsearch://providers/{name}.
func extractProviderName(uri string) string {
	const prefix = uriScheme + "providers/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name := strings.TrimPrefix(uri, prefix)
	if strings.Contains(name, "/") {
		return ""
	}
	return name
}
