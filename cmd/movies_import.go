package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/catalog"
	"github.com/s0up4200/marquee/radarr"
)

var (
	importFilter string
	importPreset string
)

// importRadarrCmd represents the movies import-radarr command
var importRadarrCmd = &cobra.Command{
	Use:   "import-radarr",
	Short: "Import movies from a Radarr library",
	Long: `Read every movie from the configured Radarr instance and add it to the
catalog. Each movie goes through the same validation and create path as
'movies add'; the catalog is reloaded once at the end.`,
	Args: cobra.NoArgs,
	RunE: runImportRadarr,
}

func init() {
	importRadarrCmd.Flags().StringVarP(&importFilter, "filter", "f", "", "only import movies matching this filter expression")
	importRadarrCmd.Flags().StringVarP(&importPreset, "preset", "p", "", "only import movies matching a preset filter from config")
}

func runImportRadarr(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if cfg.Radarr.URL == "" {
		return errors.New("radarr.url is not configured")
	}

	f, err := resolveFilter(filters, importFilter, importPreset)
	if err != nil {
		return err
	}

	radarrClient, err := radarr.NewClient(cfg.Radarr.URL, cfg.Radarr.APIKey, logger)
	if err != nil {
		return fmt.Errorf("failed to create Radarr client: %w", err)
	}

	imports, err := radarrClient.Drafts(ctx)
	if err != nil {
		return err
	}

	drafts := make([]catalog.Draft, 0, len(imports))
	for _, imp := range imports {
		if f != nil && !f.Evaluate(imp.Movie()) {
			continue
		}
		drafts = append(drafts, imp.Draft)
	}

	logger.Info().
		Int("library", len(imports)).
		Int("selected", len(drafts)).
		Msg("Loaded Radarr library")

	if len(drafts) == 0 {
		fmt.Println("No Radarr movies to import.")
		return nil
	}

	if cfg.Safety.DryRun {
		movies := make([]catalog.Movie, 0, len(drafts))
		for _, d := range drafts {
			if p, err := d.Payload(); err == nil {
				movies = append(movies, p.Movie(""))
			}
		}
		fmt.Printf("Dry run: %d movie(s) would be imported.\n", len(drafts))
		fmt.Print(operations.Formatter().FormatMovieTable(movies))
		return nil
	}

	result, err := operations.Import(ctx, drafts)
	if result != nil {
		fmt.Printf("✓ Imported %d of %d movie(s)\n", len(result.Created), result.Requested)
		for _, failure := range result.Failed {
			fmt.Printf("  ✗ %s: %v\n", failure.Title, failure.Err)
		}
	}
	return err
}
