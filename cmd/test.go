package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/radarr"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to the catalog",
	Long:  `Test the connection to the catalog service and, when configured, to Radarr.`,
	Args:  cobra.NoArgs,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	fmt.Printf("Testing connection to catalog at %s...\n", cfg.API.URL)
	if err := catalogClient.Ping(ctx); err != nil {
		return fmt.Errorf("catalog connection failed: %w", err)
	}
	fmt.Println("✓ Connection successful!")

	movies, err := catalogClient.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog statistics: %w", err)
	}

	fmt.Printf("\nCatalog Statistics:\n")
	fmt.Printf("- Total movies: %d\n", len(movies))
	fmt.Printf("- Key casing: %s\n", catalogClient.Casing())
	fmt.Printf("- Dry run: %s\n", boolToStatus(cfg.Safety.DryRun))
	fmt.Printf("- Confirm delete: %s\n", boolToStatus(cfg.Safety.ConfirmDelete))

	if names := filters.ListFilters(); len(names) > 0 {
		fmt.Printf("\nFilter presets:\n")
		for _, name := range names {
			f, _ := filters.GetFilter(name)
			fmt.Printf("  • %s: %s\n", name, f.Expression())
		}
	}

	if cfg.Radarr.URL == "" {
		fmt.Println("\nRadarr import: Disabled")
		return nil
	}

	fmt.Printf("\nTesting connection to Radarr at %s...\n", cfg.Radarr.URL)
	radarrClient, err := radarr.NewClient(cfg.Radarr.URL, cfg.Radarr.APIKey, logger)
	if err != nil {
		return err
	}
	fmt.Println("✓ Radarr connection successful!")

	radarrMovies, err := radarrClient.GetAllMovies(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("- Radarr movies available for import: %d\n", len(radarrMovies))

	return nil
}
