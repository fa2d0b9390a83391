package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/storefront/internal/presentation/graph"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the page navigation graph",
	Long:  `Outputs a Mermaid diagram (graph TD) of the pages and the actions that move between them. With --session the session's current page is highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		var overlay *graph.GraphOverlay
		if sessionID, _ := cmd.Flags().GetString("session"); sessionID != "" {
			state, err := app.Sessions.Load(cmd.Context(), sessionID)
			if err != nil {
				return fmt.Errorf("error loading session '%s': %w", sessionID, err)
			}
			overlay = &graph.GraphOverlay{
				CurrentPage: state.Page,
				CartCount:   state.Cart.TotalItemCount(),
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(app.Engine.Inspect(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("session", "", "Highlight the current page of this session")
}
