package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/storefront/internal/cli"
	"github.com/aretw0/storefront/pkg/domain"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the plant catalog",
	Long:  `Loads and validates the configured catalog (built-in, --catalog-file or --catalog-dir) and prints it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := cli.NewLogger(cfg)
		if err != nil {
			return err
		}
		engine, err := cli.NewEngine(cfg, logger, domain.LifecycleHooks{})
		if err != nil {
			return err
		}

		categories := engine.Catalog().Categories()
		out := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(categories)
		}

		for _, cat := range categories {
			fmt.Fprintln(out, cat.Name)
			for _, p := range cat.Products {
				fmt.Fprintf(out, "  [%d] %-20s $%s\n", p.ID, p.Name, p.Price)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().Bool("json", false, "Print the catalog as JSON")
}
