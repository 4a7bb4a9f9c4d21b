package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/aellingwood/iconforge/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run MCP server over stdio",
	Long:  "Start an MCP (Model Context Protocol) server over stdio, enabling AI clients to inspect the icon plan and regenerate icons.",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	srv := mcpserver.New(cfg, version)
	return srv.Run(cmd.Context(), &mcp.StdioTransport{})
}

func init() {
	addSourceFlags(mcpCmd)
	rootCmd.AddCommand(mcpCmd)
}
