package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/storefront"
	"github.com/aretw0/storefront/internal/cli"
	"github.com/aretw0/storefront/pkg/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose the storefront as an MCP server",
	Long:  `Serves the storefront tools (start_session, view_page, dispatch_intent, list_catalog, get_graph) over stdio, or SSE with --sse.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		server := mcp.NewServer(app.Sessions, storefront.Version,
			mcp.WithLogger(app.Logger),
			mcp.WithMaxInputSize(app.Config.MaxInputSize),
		)

		sse, _ := cmd.Flags().GetBool("sse")
		if !sse {
			return server.ServeStdio()
		}

		port, _ := cmd.Flags().GetInt("port")
		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()
		return server.ServeSSE(sigCtx, port)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Bool("sse", false, "Serve over SSE instead of stdio")
	mcpCmd.Flags().Int("port", 8081, "Port for SSE mode")
}
