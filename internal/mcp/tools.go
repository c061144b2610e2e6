// ABOUTME: MCP tool definitions and handlers for date range operations
// ABOUTME: Resolve, move, restrict, and describe ranges; manage presets and the saved selection

package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/daterange/internal/daterange"
	"github.com/harper/daterange/internal/models"
	"github.com/harper/daterange/internal/picker"
	"github.com/harper/daterange/internal/storage"
)

// Type definitions for input/output structures

type MoveRangeInput struct {
	RangeInput
	Steps *int `json:"steps,omitempty"`
}

type RestrictRangeInput struct {
	RangeInput
	Min *string `json:"min,omitempty"`
	Max *string `json:"max,omitempty"`
}

type DescribeRangeInput struct {
	RangeInput
	Format   *string `json:"format,omitempty"`
	Relative *bool   `json:"relative,omitempty"`
}

type DescribeRangeOutput struct {
	Label      string `json:"label"`
	Title      string `json:"title,omitempty"`
	ShortTitle string `json:"short_title,omitempty"`
	Spec       string `json:"spec"`
}

type PresetOutput struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description *string     `json:"description,omitempty"`
	Range       RangeOutput `json:"range"`
}

type ListPresetsOutput struct {
	Presets []PresetOutput `json:"presets"`
	Count   int            `json:"count"`
}

type SavePresetInput struct {
	RangeInput
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Overwrite   *bool   `json:"overwrite,omitempty"`
}

type SavePresetOutput struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Preset  PresetOutput `json:"preset"`
}

type DeletePresetInput struct {
	Preset string `json:"preset"`
}

type DeletePresetOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

type SelectionOutput struct {
	Stored bool        `json:"stored"`
	Range  RangeOutput `json:"range"`
}

// Tool registration

func (s *Server) registerTools() {
	s.registerResolveRangeTool()
	s.registerMoveRangeTool()
	s.registerRestrictRangeTool()
	s.registerDescribeRangeTool()
	s.registerListPresetsTool()
	s.registerSavePresetTool()
	s.registerDeletePresetTool()
	s.registerGetSelectionTool()
	s.registerSetSelectionTool()
}

func (s *Server) registerResolveRangeTool() {
	tool := mcp.Tool{
		Name:        "resolve_range",
		Description: "Resolve a relative or custom date range to concrete start and end instants in the configured time zone. Name the range by a saved preset, by an expression like 'last-quarter' or 'past-30', or by its fields. Returns the bounds, the day count, a display label, and the serialized record.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: rangeProperties(),
		},
	}
	s.mcpServer.AddTool(tool, s.handleResolveRange)
}

func (s *Server) registerMoveRangeTool() {
	tool := mcp.Tool{
		Name:        "move_range",
		Description: "Step a range forward or backward by its own length. Calendar units change their offset (last month becomes the month before). Other ranges shift by their day count and turn back into 'past N days' or 'today' when they end today.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: withProperties(map[string]any{
				"steps": map[string]any{
					"type":        "integer",
					"description": "Number of range lengths to move. Negative moves back. Defaults to 1.",
				},
			}),
		},
	}
	s.mcpServer.AddTool(tool, s.handleMoveRange)
}

func (s *Server) registerRestrictRangeTool() {
	tool := mcp.Tool{
		Name:        "restrict_range",
		Description: "Clamp a range to lie within optional minimum and maximum dates. A range that falls completely outside the bounds collapses to the nearest bound day.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: withProperties(map[string]any{
				"min": map[string]any{
					"type":        "string",
					"description": "Earliest allowed date (YYYY-MM-DD, RFC3339, today, yesterday)",
				},
				"max": map[string]any{
					"type":        "string",
					"description": "Latest allowed date (YYYY-MM-DD, RFC3339, today, yesterday)",
				},
			}),
		},
	}
	s.mcpServer.AddTool(tool, s.handleRestrictRange)
}

func (s *Server) registerDescribeRangeTool() {
	tool := mcp.Tool{
		Name:        "describe_range",
		Description: "Render a range as display text. Relative ranges read as their title ('This Month', 'Last 30 Days') unless relative is false; other ranges are formatted as 'start – end' or a single date.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: withProperties(map[string]any{
				"format": map[string]any{
					"type":        "string",
					"description": "Date format: 'short', 'medium' (default), 'iso', or a Go time layout",
				},
				"relative": map[string]any{
					"type":        "boolean",
					"description": "Use titles for relative ranges. Defaults to true.",
				},
			}),
		},
	}
	s.mcpServer.AddTool(tool, s.handleDescribeRange)
}

func (s *Server) registerListPresetsTool() {
	tool := mcp.Tool{
		Name:        "list_presets",
		Description: "List all saved range presets with their resolved bounds.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}
	s.mcpServer.AddTool(tool, s.handleListPresets)
}

func (s *Server) registerSavePresetTool() {
	tool := mcp.Tool{
		Name:        "save_preset",
		Description: "Save a range under a name for later use. Relative ranges stay relative: a preset of 'last-month' resolves to a different month next month. Names are unique; pass overwrite to replace an existing preset.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: withProperties(map[string]any{
				"name": map[string]any{
					"type":        "string",
					"description": "Preset name. Example: 'Fiscal Q'",
				},
				"description": map[string]any{
					"type":        "string",
					"description": "Optional note shown in listings",
				},
				"overwrite": map[string]any{
					"type":        "boolean",
					"description": "Replace a preset with the same name",
				},
			}),
			Required: []string{"name"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleSavePreset)
}

func (s *Server) registerDeletePresetTool() {
	tool := mcp.Tool{
		Name:        "delete_preset",
		Description: "Delete a saved preset by name, ID, or ID prefix.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"preset": map[string]any{
					"type":        "string",
					"description": "Preset name, ID, or ID prefix",
				},
			},
			Required: []string{"preset"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleDeletePreset)
}

func (s *Server) registerGetSelectionTool() {
	tool := mcp.Tool{
		Name:        "get_selection",
		Description: "Return the currently selected range shared with the command line. When nothing was selected yet, the default 'past 7 days' is returned with stored=false.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}
	s.mcpServer.AddTool(tool, s.handleGetSelection)
}

func (s *Server) registerSetSelectionTool() {
	tool := mcp.Tool{
		Name:        "set_selection",
		Description: "Select a range and persist it as the current selection.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: rangeProperties(),
		},
	}
	s.mcpServer.AddTool(tool, s.handleSetSelection)
}

// Tool handlers

func (s *Server) handleResolveRange(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input RangeInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	r, err := s.rangeFromInput(input)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("resolve_range", "range", r)

	return jsonResult(s.output(r))
}

func (s *Server) handleMoveRange(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input MoveRangeInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	r, err := s.rangeFromInput(input.RangeInput)
	if err != nil {
		return nil, err
	}
	steps := 1
	if input.Steps != nil {
		steps = *input.Steps
	}

	moved := s.res.MoveBy(r, steps)
	s.logger.Debug("move_range", "from", r, "steps", steps, "to", moved)

	return jsonResult(s.output(moved))
}

func (s *Server) handleRestrictRange(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input RestrictRangeInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	r, err := s.rangeFromInput(input.RangeInput)
	if err != nil {
		return nil, err
	}

	var minDate, maxDate *time.Time
	if input.Min != nil {
		t, err := s.parseDateString(*input.Min)
		if err != nil {
			return nil, fmt.Errorf("invalid min: %w", err)
		}
		minDate = &t
	}
	if input.Max != nil {
		t, err := s.parseDateString(*input.Max)
		if err != nil {
			return nil, fmt.Errorf("invalid max: %w", err)
		}
		maxDate = &t
	}
	if minDate != nil && maxDate != nil && maxDate.Before(*minDate) {
		return nil, fmt.Errorf("max %s is before min %s", *input.Max, *input.Min)
	}

	return jsonResult(s.output(s.res.RestrictTo(r, minDate, maxDate)))
}

func (s *Server) handleDescribeRange(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input DescribeRangeInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	r, err := s.rangeFromInput(input.RangeInput)
	if err != nil {
		return nil, err
	}

	format := ""
	if input.Format != nil {
		format = *input.Format
	}
	relative := true
	if input.Relative != nil {
		relative = *input.Relative
	}

	output := DescribeRangeOutput{
		Label: s.res.Describe(r, formatterFor(format), relative),
		Spec:  daterange.FormatSpec(r),
	}
	if title, ok := r.Title(); ok {
		output.Title = title
	}
	if short, ok := r.ShortTitle(); ok {
		output.ShortTitle = short
	}
	return jsonResult(output)
}

func (s *Server) handleListPresets(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	presets, err := s.listPresets()
	if err != nil {
		return nil, err
	}
	return jsonResult(ListPresetsOutput{Presets: presets, Count: len(presets)})
}

func (s *Server) handleSavePreset(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input SavePresetInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if input.Name == "" {
		return nil, errors.New("name is required")
	}

	r, err := s.rangeFromInput(input.RangeInput)
	if err != nil {
		return nil, err
	}

	s.storeMu.Lock()
	defer s.storeMu.Unlock()

	existing, err := s.store.GetPresetByName(input.Name)
	switch {
	case err == nil:
		if input.Overwrite == nil || !*input.Overwrite {
			return nil, fmt.Errorf("preset already exists: %s", input.Name)
		}
		existing.SetRange(r)
		if input.Description != nil {
			existing.SetDescription(*input.Description)
		}
		if err := s.store.UpdatePreset(existing); err != nil {
			return nil, fmt.Errorf("failed to update preset: %w", err)
		}
		s.logger.Info("preset updated", "name", existing.Name, "range", r)
		return jsonResult(SavePresetOutput{
			Success: true,
			Message: fmt.Sprintf("Preset '%s' updated", existing.Name),
			Preset:  s.presetOutput(existing, r),
		})
	case !errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("failed to look up preset: %w", err)
	}

	p := models.NewPreset(input.Name, r)
	if input.Description != nil {
		p.SetDescription(*input.Description)
	}
	if err := s.store.CreatePreset(p); err != nil {
		return nil, fmt.Errorf("failed to save preset: %w", err)
	}
	s.logger.Info("preset saved", "name", p.Name, "range", r)

	return jsonResult(SavePresetOutput{
		Success: true,
		Message: fmt.Sprintf("Preset '%s' saved", p.Name),
		Preset:  s.presetOutput(p, r),
	})
}

func (s *Server) handleDeletePreset(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input DeletePresetInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if input.Preset == "" {
		return nil, errors.New("preset is required")
	}

	s.storeMu.Lock()
	defer s.storeMu.Unlock()

	p, err := s.store.GetPresetByIDOrPrefix(input.Preset)
	if err != nil {
		return nil, fmt.Errorf("preset not found: %s", input.Preset)
	}
	if err := s.store.DeletePreset(p.ID); err != nil {
		return nil, fmt.Errorf("failed to delete preset: %w", err)
	}
	s.logger.Info("preset deleted", "name", p.Name)

	return jsonResult(DeletePresetOutput{
		Success: true,
		Message: fmt.Sprintf("Preset '%s' deleted", p.Name),
		ID:      p.ID,
	})
}

func (s *Server) handleGetSelection(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r, stored, err := s.selection()
	if err != nil {
		return nil, err
	}
	return jsonResult(SelectionOutput{Stored: stored, Range: s.output(r)})
}

func (s *Server) handleSetSelection(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input RangeInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	r, err := s.rangeFromInput(input)
	if err != nil {
		return nil, err
	}

	s.storeMu.Lock()
	err = s.store.SaveSelection(r.Record())
	s.storeMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to save selection: %w", err)
	}
	s.logger.Info("selection saved", "range", r)

	return jsonResult(SelectionOutput{Stored: true, Range: s.output(r)})
}

// selection returns the persisted selection or the default one.
func (s *Server) selection() (daterange.Range, bool, error) {
	s.storeMu.Lock()
	rec, ok, err := s.store.LoadSelection()
	s.storeMu.Unlock()
	if err != nil {
		return nil, false, fmt.Errorf("failed to load selection: %w", err)
	}
	if !ok {
		return picker.DefaultRange(s.hourShift), false, nil
	}
	r, err := daterange.FromRecord(rec)
	if err != nil {
		s.logger.Warn("ignoring malformed selection", "err", err)
		return picker.DefaultRange(s.hourShift), false, nil
	}
	return r, true, nil
}

func (s *Server) listPresets() ([]PresetOutput, error) {
	s.storeMu.Lock()
	presets, err := s.store.ListPresets()
	s.storeMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}

	out := make([]PresetOutput, 0, len(presets))
	for _, p := range presets {
		r, err := p.DateRange()
		if err != nil {
			s.logger.Warn("skipping malformed preset", "name", p.Name, "err", err)
			continue
		}
		out = append(out, s.presetOutput(p, r))
	}
	return out, nil
}

func (s *Server) presetOutput(p *models.Preset, r daterange.Range) PresetOutput {
	return PresetOutput{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Range:       s.output(r),
	}
}
