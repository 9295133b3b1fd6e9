// Package main provides the cropwise CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "cropwise",
		Short: "Crop suitability scoring and ranking",
		Long: `Cropwise scores a catalog of crop profiles against a farm's soil, moisture,
rainfall, sunlight and irrigation, ranks them, and renders recommendation
reports and comparison tables.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: search for .cropwise/config.yaml)")

	rootCmd.AddCommand(
		newRecommendCmd(&configPath),
		newCompareCmd(&configPath),
		newCatalogCmd(&configPath),
		newLocationsCmd(),
		newServeCmd(&configPath),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
