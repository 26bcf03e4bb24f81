package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/s0up4200/marquee/admin"
	"github.com/s0up4200/marquee/catalog"
	"github.com/s0up4200/marquee/filter"
)

var (
	filterExpr string
	preset     string
	sortBy     string
	locale     string
	assumeYes  bool
)

// moviesCmd groups the movie catalog commands
var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "List, add and delete catalog movies",
}

// listCmd represents the movies list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List movies in the catalog",
	Long: `List every movie in the catalog, optionally narrowed by a filter
expression or a preset from the config file.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// deleteCmd represents the movies delete command
var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a single movie by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

// deleteAllCmd represents the movies delete-all command
var deleteAllCmd = &cobra.Command{
	Use:   "delete-all",
	Short: "Delete every movie in the catalog",
	Long: `Delete every movie currently on the server. The list is fetched fresh
before deleting, and the catalog is reloaded afterwards whether or not any
delete failed.`,
	Args: cobra.NoArgs,
	RunE: runDeleteAll,
}

func init() {
	moviesCmd.AddCommand(listCmd)
	moviesCmd.AddCommand(deleteCmd)
	moviesCmd.AddCommand(deleteAllCmd)
	moviesCmd.AddCommand(addCmd)
	moviesCmd.AddCommand(importRadarrCmd)

	listCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	listCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	listCmd.Flags().StringVar(&sortBy, "sort", "", "sort order (title)")
	listCmd.Flags().StringVar(&locale, "locale", "en", "locale used when sorting by title")

	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation prompt")
	deleteAllCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation prompt")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Resolve the filter before any request so a bad expression fails fast
	f, err := resolveFilter(filters, filterExpr, preset)
	if err != nil {
		return err
	}

	var sortLang language.Tag
	if sortBy != "" {
		if sortBy != "title" {
			return fmt.Errorf("invalid sort order: %s (must be 'title')", sortBy)
		}
		if sortLang, err = language.Parse(locale); err != nil {
			return fmt.Errorf("invalid locale %q: %w", locale, err)
		}
	}

	reloadErr := operations.Reload(ctx)
	view := operations.View()

	if reloadErr == nil {
		if f != nil {
			logger.Debug().Str("filter", f.Expression()).Msg("Filtering movies")
			if view.Movies, err = filterMovies(ctx, filters, f, filterExpr, preset, view.Movies); err != nil {
				return err
			}
		}
		if sortBy != "" {
			admin.SortByTitle(view.Movies, sortLang)
		}
	}

	if outputFormat != admin.OutputTable && reloadErr == nil {
		return admin.Encode(os.Stdout, outputFormat, view.Movies, "")
	}

	fmt.Print(operations.Formatter().FormatView(view))
	if reloadErr != nil {
		return reportedError{reloadErr}
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	id := catalog.ID(args[0])

	if cfg.Safety.DryRun {
		fmt.Printf("Dry run: movie %s would be deleted.\n", id)
		return nil
	}

	if !assumeYes && cfg.Safety.ConfirmDelete && !confirmSingle(id) {
		logger.Info().Msg("Deletion cancelled")
		return nil
	}

	if err := operations.DeleteOne(ctx, id); err != nil {
		return err
	}

	fmt.Printf("✓ Deleted movie %s\n", id)
	return nil
}

// confirmSingle confirms deletion of a movie by looking it up first
func confirmSingle(id catalog.ID) bool {
	movies, err := catalogClient.List(context.Background())
	if err != nil {
		logger.Warn().Err(err).Msg("Could not look up movie before deleting")
		movies = nil
	}

	for _, m := range movies {
		if m.ID == id {
			return confirmDeletion([]catalog.Movie{m}, false)
		}
	}
	return confirmDeletion([]catalog.Movie{{ID: id, Title: "(unknown)"}}, false)
}

func runDeleteAll(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	result, err := operations.DeleteAll(ctx, func(movies []catalog.Movie) bool {
		return confirmDeletion(movies, assumeYes)
	})
	if result != nil {
		switch {
		case result.Requested == 0:
			fmt.Println(admin.EmptyListMessage)
		case result.Cancelled:
			if !cfg.Safety.DryRun {
				fmt.Println("Deletion cancelled.")
			}
		case err == nil:
			fmt.Printf("✓ Deleted %d movie(s)\n", result.Requested)
		}
	}
	if err != nil {
		return err
	}

	if outputFormat == admin.OutputTable && !result.Cancelled {
		fmt.Print(operations.Formatter().FormatView(operations.View()))
	}
	return nil
}

// resolveFilter picks the ad-hoc expression over the preset; neither means no filter
func resolveFilter(m *filter.Manager, expression, presetName string) (filter.CompiledFilter, error) {
	if expression != "" {
		f, err := m.Compile(expression)
		if err != nil {
			return nil, fmt.Errorf("invalid filter expression: %w", err)
		}
		return f, nil
	}

	if presetName != "" {
		f, ok := m.GetFilter(presetName)
		if !ok {
			return nil, &filter.UnknownPresetError{Name: presetName}
		}
		return f, nil
	}

	return nil, nil
}

// filterMovies applies an ad-hoc expression directly and a preset by name
func filterMovies(ctx context.Context, m *filter.Manager, f filter.CompiledFilter, expression, presetName string, movies []catalog.Movie) ([]catalog.Movie, error) {
	if expression == "" && presetName != "" {
		return m.EvaluateFilter(ctx, presetName, movies)
	}
	return filter.Apply(ctx, f, movies)
}
