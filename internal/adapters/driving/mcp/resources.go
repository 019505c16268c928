package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for zip2pdf resources.
	uriScheme = "zip2pdf://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sessions",
		Name:        "sessions",
		Description: "Saved editing sessions and their page counts",
		MIMEType:    "application/json",
	}, s.handleSessionsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sessions/{name}/pages",
		Name:        "session-pages",
		Description: "Ordered pages of a saved session",
		MIMEType:    "application/json",
	}, s.handleSessionPagesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Current PDF layout and import settings",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)
}

// handleSessionsResource returns every saved session.
func (s *Server) handleSessionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	sessions, err := s.ports.Sessions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	type sessionInfo struct {
		Name      string    `json:"name"`
		Pages     int       `json:"pages"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	infos := make([]sessionInfo, len(sessions))
	for i := range sessions {
		infos[i] = sessionInfo{
			Name:      sessions[i].Name,
			Pages:     len(sessions[i].Pages),
			UpdatedAt: sessions[i].UpdatedAt,
		}
	}

	return jsonResult(req.Params.URI, infos)
}

// handleSessionPagesResource returns the pages of one saved session. The
// session is looked up in the listing so reading never creates one.
func (s *Server) handleSessionPagesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractSessionName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	sessions, err := s.ports.Sessions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	for i := range sessions {
		if sessions[i].Name != name {
			continue
		}

		type pageInfo struct {
			Path string `json:"path"`
			Name string `json:"name"`
			Kind string `json:"kind"`
		}

		pages := sessions[i].Pages
		infos := make([]pageInfo, len(pages))
		for j, p := range pages {
			infos[j] = pageInfo{Path: p.Path, Name: p.Name(), Kind: p.Kind().String()}
		}
		return jsonResult(req.Params.URI, infos)
	}

	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

// handleSettingsResource returns the current settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings := domain.DefaultAppSettings()
	if s.ports.Settings != nil {
		current, err := s.ports.Settings.Get()
		if err != nil {
			return nil, fmt.Errorf("getting settings: %w", err)
		}
		settings = *current
	}

	info := map[string]any{
		"pdf": map[string]any{
			"page_size":      settings.PDF.PageSize.String(),
			"orientation":    settings.PDF.Orientation.String(),
			"margin_mm":      settings.PDF.MarginMM,
			"font_family":    settings.PDF.FontFamily,
			"font_size":      settings.PDF.FontSize,
			"line_height_mm": settings.PDF.LineHeightMM,
			"jpeg_quality":   settings.PDF.JPEGQuality,
			"max_image_px":   settings.PDF.MaxImagePx,
		},
		"import": map[string]any{
			"default_sort": settings.Import.DefaultSort.String(),
			"skip_hidden":  settings.Import.SkipHidden,
		},
	}

	return jsonResult(req.Params.URI, info)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSessionName extracts the session name from a URI like zip2pdf://sessions/{name}/pages.
func extractSessionName(uri string) string {
	const prefix = uriScheme + "sessions/"
	const suffix = "/pages"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
