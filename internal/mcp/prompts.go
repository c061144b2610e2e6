// ABOUTME: MCP prompt definitions and handlers
// ABOUTME: Provides a workflow template for agreeing on a reporting period

package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.registerReportingPeriodPrompt()
}

func (s *Server) registerReportingPeriodPrompt() {
	s.mcpServer.AddPrompt(
		mcp.Prompt{
			Name:        "reporting-period",
			Description: "Pick, confirm, and save the date range a report should cover",
			Arguments: []mcp.PromptArgument{
				{
					Name:        "period",
					Description: "Rough description of the period, e.g. 'last quarter' or 'the past month' (default: last-month)",
					Required:    false,
				},
				{
					Name:        "purpose",
					Description: "What the report is for, used to name the saved preset (default: report)",
					Required:    false,
				},
			},
		},
		s.handleReportingPeriod,
	)
}

//nolint:funlen // Prompt handlers contain large template strings
func (s *Server) handleReportingPeriod(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	period := "last-month"
	purpose := "report"
	if req.Params.Arguments != nil {
		if p, ok := req.Params.Arguments["period"]; ok && p != "" {
			period = p
		}
		if p, ok := req.Params.Arguments["purpose"]; ok && p != "" {
			purpose = p
		}
	}

	template := fmt.Sprintf(`# Choose a Reporting Period

## Overview
Settle the exact dates a %[2]s should cover, starting from the request "%[1]s". Relative periods like "last quarter" depend on today's date, the configured time zone, the first day of the week, and the hour at which a day begins. Resolve them instead of guessing.

## Workflow Steps

### Step 1: Translate the Request
Map the request to a range expression.

**Common expressions:**
- today, yesterday
- this-week, last-week, this-month, last-month, this-quarter, last-quarter, this-year, last-year
- past-7, past-30, past-90 (ending today)
- unit:quarter:-2 (two quarters ago)
- 2015-06-01..2015-06-30 (explicit dates)

**Also check:**
- daterange://menu for the built-in choices
- daterange://presets for ranges the user already saved

### Step 2: Resolve It
Call resolve_range with the expression as spec.
- Read start, end, and days from the result
- Quote the label back to the user, e.g. "Q2 2015 (Apr 1, 2015 – Jun 30, 2015)"

### Step 3: Adjust if Needed
- One period earlier or later: move_range with steps -1 or 1
- Keep inside available data: restrict_range with min and max
- Night-shift style days that start at 06:00: pass hour_shift 6

### Step 4: Confirm and Save
Once the user agrees:
- set_selection so the command line shows the same period
- save_preset with a name such as "%[2]s" so the period can be reused
- Remember that a saved relative range moves with time; save explicit dates to pin it

## Output
State the final period as: label, start, end, number of days, and the preset name if saved.
`, period, purpose)

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Reporting period workflow for %q", period),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: template,
				},
			},
		},
	}, nil
}
