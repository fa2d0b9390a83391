package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/storefront"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of storefront",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "storefront version %s\n", storefront.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
