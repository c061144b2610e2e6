// ABOUTME: MCP server command for daterange CLI
// ABOUTME: Starts stdio-based MCP server for AI agent integration

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/daterange/internal/logging"
	"github.com/harper/daterange/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI agents",
	Long: `Start the Model Context Protocol (MCP) server on stdio.

This lets AI agents like Claude resolve, step, and restrict date ranges,
manage saved presets, and read or change the current selection through
structured tools.

The server communicates via JSON-RPC on stdin/stdout. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcp.NewServer(store, resolver, Version,
			mcp.WithHourShift(cfg.HourShift),
			mcp.WithLogger(logging.Named("mcp")),
		)

		if err := server.ServeStdio(); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
