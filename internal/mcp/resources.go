// ABOUTME: MCP resource providers for daterange
// ABOUTME: Exposes read-only views of saved presets, the selection, and the built-in menu

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/daterange/internal/daterange"
)

// ResourceData is the standard response format for all resources.
type ResourceData struct {
	Metadata ResourceMetadata  `json:"metadata"`
	Data     any               `json:"data"`
	Links    map[string]string `json:"links"`
}

// ResourceMetadata contains metadata about the resource response.
type ResourceMetadata struct {
	Timestamp   time.Time `json:"timestamp"`
	Count       int       `json:"count"`
	ResourceURI string    `json:"resource_uri"`
	Timezone    string    `json:"timezone"`
}

// MenuItem is one entry of the built-in preset menu. Separator items carry
// no range.
type MenuItem struct {
	Column    int          `json:"column"`
	Separator bool         `json:"separator,omitempty"`
	Range     *RangeOutput `json:"range,omitempty"`
}

const (
	presetsURI   = "daterange://presets"
	selectionURI = "daterange://selection"
	menuURI      = "daterange://menu"
)

var resourceLinks = map[string]string{
	"presets":   presetsURI,
	"selection": selectionURI,
	"menu":      menuURI,
}

func (s *Server) registerResources() {
	s.registerPresetsResource()
	s.registerSelectionResource()
	s.registerMenuResource()
}

func (s *Server) registerPresetsResource() {
	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         presetsURI,
			Name:        "Saved Presets",
			Description: "All saved range presets resolved against the current time",
			MIMEType:    "application/json",
		},
		s.readPresetsResource,
	)
}

func (s *Server) registerSelectionResource() {
	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         selectionURI,
			Name:        "Current Selection",
			Description: "The range currently selected from the command line or set_selection",
			MIMEType:    "application/json",
		},
		s.readSelectionResource,
	)
}

func (s *Server) registerMenuResource() {
	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         menuURI,
			Name:        "Preset Menu",
			Description: "The built-in menu of common ranges (past N days, this and last calendar units) in two columns",
			MIMEType:    "application/json",
		},
		s.readMenuResource,
	)
}

func (s *Server) readPresetsResource(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	presets, err := s.listPresets()
	if err != nil {
		return nil, err
	}
	return s.resourceContents(request.Params.URI, presets, len(presets))
}

func (s *Server) readSelectionResource(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	r, stored, err := s.selection()
	if err != nil {
		return nil, err
	}
	return s.resourceContents(request.Params.URI, SelectionOutput{Stored: stored, Range: s.output(r)}, 1)
}

func (s *Server) readMenuResource(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	var items []MenuItem
	count := 0
	for col, column := range daterange.Presets(s.hourShift) {
		for _, r := range column {
			if r == nil {
				items = append(items, MenuItem{Column: col, Separator: true})
				continue
			}
			out := s.output(r)
			items = append(items, MenuItem{Column: col, Range: &out})
			count++
		}
	}
	return s.resourceContents(request.Params.URI, items, count)
}

func (s *Server) resourceContents(uri string, data any, count int) ([]mcp.ResourceContents, error) {
	resourceData := ResourceData{
		Metadata: ResourceMetadata{
			Timestamp:   s.res.Now(),
			Count:       count,
			ResourceURI: uri,
			Timezone:    s.res.Calendar().Location().String(),
		},
		Data:  data,
		Links: resourceLinks,
	}

	jsonBytes, err := json.MarshalIndent(resourceData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
