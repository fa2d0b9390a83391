package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/storefront/internal/cli"
	"github.com/aretw0/storefront/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Paradise Nursery storefront",
	Long: `Paradise Nursery is a small plant shop: browse the catalog, fill a cart
and check out. Shop from the terminal, or serve it over HTTP and MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a YAML config file")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (text, json)")
	flags.String("store", "", "Session store (memory, file, redis)")
	flags.String("store-dir", "", "Directory of the file store")
	flags.String("redis-addr", "", "Redis address for the redis store")
	flags.String("catalog-file", "", "YAML or JSON catalog file")
	flags.String("catalog-dir", "", "Directory of product documents")
}

// loadConfig resolves defaults, config file and environment, then applies flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	overrides := map[string]*string{
		"log-level":    &cfg.LogLevel,
		"log-format":   &cfg.LogFormat,
		"store":        &cfg.Store.Kind,
		"store-dir":    &cfg.Store.Dir,
		"redis-addr":   &cfg.Store.RedisAddr,
		"catalog-file": &cfg.Catalog.File,
		"catalog-dir":  &cfg.Catalog.Dir,
	}
	for name, dst := range overrides {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	return cfg, cfg.Validate()
}

// newApp loads the config and builds the application for cmd.
func newApp(cmd *cobra.Command) (*cli.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return cli.NewApp(cmd.Context(), cfg)
}
