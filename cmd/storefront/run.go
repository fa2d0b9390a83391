package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/storefront/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Shop interactively in the terminal",
	Long: `Opens a shopping session on the landing page and reads one command per line.
Sessions are persisted, so running again with the same --session resumes the cart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		sessionID, _ := cmd.Flags().GetString("session")
		jsonMode, _ := cmd.Flags().GetBool("json")
		fresh, _ := cmd.Flags().GetBool("fresh")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		return cli.RunSession(sigCtx, app, cli.RunOptions{
			SessionID: sessionID,
			JSON:      jsonMode,
			Fresh:     fresh,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("session", "s", "", "Session ID to create or resume (generated when empty)")
	runCmd.Flags().Bool("json", false, "Run in JSON mode (JSON-Lines input/output)")
	runCmd.Flags().Bool("fresh", false, "Discard the stored session before starting")

	// 'run' is the default when no command is given.
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
