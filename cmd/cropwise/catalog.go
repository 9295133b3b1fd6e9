package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cropwise/cropwise/internal/catalogstore"
	"github.com/cropwise/cropwise/internal/platform"
	"github.com/cropwise/cropwise/pkg/catalog"
	"github.com/cropwise/cropwise/pkg/config"
	"github.com/cropwise/cropwise/pkg/crop"
	"github.com/cropwise/cropwise/pkg/report"
)

func newCatalogCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect, validate and publish crop catalogs",
	}
	cmd.AddCommand(
		newCatalogListCmd(configPath),
		newCatalogShowCmd(configPath),
		newCatalogValidateCmd(),
		newCatalogExportCmd(configPath),
		newCatalogPublishCmd(),
		newCatalogImportCmd(),
	)
	return cmd
}

func loadConfiguredCatalog(ctx context.Context, configPath string) (*catalog.Catalog, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return openCatalog(ctx, cfg)
}

func newCatalogListCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the crops in the configured catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadConfiguredCatalog(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			return printCatalog(cmd.OutOrStdout(), cat.All())
		},
	}
}

func printCatalog(w io.Writer, profiles []crop.CropProfile) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tNEED\tRAIN\tSUN\tHUMIDITY\tBASE\tPROFIT/ACRE\tMSP")
	for _, p := range profiles {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%dmm\t%gh\t%d%%\t%d\t₹%s\t₹%s\n",
			p.ID, p.Icon, p.Name, p.FertilizerNeed, p.RainfallRequirement, p.SunlightRequirement,
			p.SoilHumidityRequirement, p.BaseSuitability,
			report.FormatINR(p.ProfitForecastPerArea), report.FormatINR(p.MinimumSupportPrice))
	}
	return tw.Flush()
}

func newCatalogShowCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print one crop profile as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadConfiguredCatalog(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			p, err := cat.ByID(args[0])
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(p)
		},
	}
}

func newCatalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a catalog file for structural problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := crop.LoadCatalogFile(args[0])
			if err != nil {
				return err
			}
			if err := catalog.Validate(profiles); err != nil {
				return fmt.Errorf("%s is invalid:\n%w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d crops OK\n", args[0], len(profiles))
			return nil
		},
	}
}

func newCatalogExportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write the configured catalog to a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadConfiguredCatalog(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			if err := crop.SaveCatalogFile(args[0], cat.All()); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Catalog saved: %s (%d crops)\n", args[0], cat.Len())
			return nil
		},
	}
}

func newCatalogPublishCmd() *cobra.Command {
	var bc config.CatalogConfig

	cmd := &cobra.Command{
		Use:   "publish FILE",
		Short: "Upload a catalog file to blob storage",
		Long: `Validates a catalog file and uploads it to S3, GCS or a local directory, where
the daemon can load it with catalog.source set to the same backend.`,
		Example: `  cropwise catalog publish crops.yaml --source s3 --bucket farm-data --key catalogs/india.yaml
  cropwise catalog publish crops.json --source file --path /srv/cropwise/catalog.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := crop.LoadCatalogFile(args[0])
			if err != nil {
				return err
			}

			key := bc.Key
			if bc.Source == config.SourceFile {
				if bc.Path == "" {
					return fmt.Errorf("--path is required for the file backend")
				}
				key = filepath.Base(bc.Path)
			}
			if key == "" {
				return fmt.Errorf("--key is required for %s", bc.Source)
			}

			ctx := cmd.Context()
			store, err := catalogstore.OpenBlobStore(ctx, bc)
			if err != nil {
				return err
			}
			defer catalogstore.Close(store)

			if err := catalogstore.Publish(ctx, store, key, profiles); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Published %d crops to %s:%s\n", len(profiles), bc.Source, key)
			return nil
		},
	}

	cmd.Flags().StringVar(&bc.Source, "source", config.SourceS3, "Blob backend: s3, gcs or file")
	cmd.Flags().StringVar(&bc.Bucket, "bucket", "", "Bucket name (s3, gcs)")
	cmd.Flags().StringVar(&bc.Key, "key", "catalog.json", "Object key; the extension picks JSON or YAML")
	cmd.Flags().StringVar(&bc.Region, "region", "", "S3 region")
	cmd.Flags().StringVar(&bc.Endpoint, "endpoint", "", "S3-compatible endpoint, e.g. a MinIO URL")
	cmd.Flags().StringVar(&bc.Path, "path", "", "Destination file (file backend)")

	return cmd
}

func newCatalogImportCmd() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Load a catalog file into Postgres",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbURL := firstNonEmpty(databaseURL, os.Getenv("DATABASE_URL"))
			if dbURL == "" {
				return fmt.Errorf("--database-url or DATABASE_URL is required")
			}

			profiles, err := crop.LoadCatalogFile(args[0])
			if err != nil {
				return err
			}

			db, err := platform.OpenPostgres(dbURL)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := platform.AutoMigrate(db); err != nil {
				return err
			}
			if err := catalogstore.NewPostgresStore(db).ImportProfiles(cmd.Context(), profiles); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Imported %d crops\n", len(profiles))
			return nil
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Postgres connection string (default: $DATABASE_URL)")
	return cmd
}
