// Package app implements the main application commands.
package app

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/product-reviews/product-reviews/internal/config"
)

var (
	configPath string // directory of main.toml
	envFile    string // optional dotenv file loaded before the config

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "product-reviews",
	Short: "product-reviews collects and serves product reviews for Shopify shops",
	Long: `product-reviews is the backend of an embedded Shopify reviews app.
It serves the storefront widget, accepts review submissions and gives
merchants moderation, replies, a dashboard and widget settings.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./etc/", "directory of main.toml")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config, if present")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads the optional dotenv file and reads the config.
func loadConfig() error {
	if envFile != "" {
		// a missing file is fine, the environment may be set otherwise
		_ = godotenv.Load(envFile) //nolint:errcheck
	}

	c, err := config.ReadConfig(configPath)
	if err != nil {
		return err
	}

	cfg = c

	return nil
}
