package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/admin"
	"github.com/s0up4200/marquee/catalog"
)

// addFlags maps draft fields to their command line flags
var addFlags = []struct {
	field string
	flag  string
	title string
	hint  string
}{
	{catalog.FieldTitle, "title", "Title", "Dune"},
	{catalog.FieldDirector, "director", "Director", "Denis Villeneuve"},
	{catalog.FieldGenre, "genre", "Genre", "Science Fiction"},
	{catalog.FieldLeadActor1, "lead-actor1", "Lead actor", "Timothée Chalamet"},
	{catalog.FieldLeadActor2, "lead-actor2", "Second lead actor", "Zendaya"},
	{catalog.FieldPosterURL, "poster-url", "Poster URL", "https://example.com/poster.jpg"},
	{catalog.FieldReleaseDate, "release-date", "Release date (YYYY-MM-DD)", "2021-10-22"},
	{catalog.FieldSalesMillions, "sales", "Box office sales (millions)", "402.0"},
}

var addValues = make(map[string]*string, len(addFlags))

// addCmd represents the movies add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a movie to the catalog",
	Long: `Add a movie to the catalog. Fields are taken from flags; when --title is
omitted on a terminal an interactive form is shown instead.`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	for _, f := range addFlags {
		addValues[f.field] = addCmd.Flags().String(f.flag, "", strings.ToLower(f.title))
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if !cmd.Flags().Changed("title") {
		if !isTerminal(os.Stdin) {
			return errors.New("--title is required when not running on a terminal")
		}
		if err := runAddForm(); err != nil {
			return err
		}
	}

	form := operations.Form()
	for _, f := range addFlags {
		if err := form.Set(f.field, *addValues[f.field]); err != nil {
			return err
		}
	}

	if cfg.Safety.DryRun {
		return printDryRunPayload(form.Draft())
	}

	created, err := operations.Submit(ctx)
	if err != nil {
		return err
	}

	if outputFormat != admin.OutputTable {
		return admin.Encode(os.Stdout, outputFormat, created, "")
	}

	fmt.Printf("✓ Created movie %q", created.Title)
	if created.ID != "" {
		fmt.Printf(" [ID: %s]", created.ID)
	}
	fmt.Println()
	fmt.Print(operations.Formatter().FormatView(operations.View()))
	return nil
}

// runAddForm fills the add flags through an interactive form
func runAddForm() error {
	fields := make([]huh.Field, 0, len(addFlags))
	for _, f := range addFlags {
		input := huh.NewInput().
			Title(f.title).
			Placeholder(f.hint).
			Value(addValues[f.field]).
			Validate(fieldValidator(f.field))
		fields = append(fields, input)
	}

	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

// fieldValidator validates one field the same way submit will
func fieldValidator(field string) func(string) error {
	return func(s string) error {
		draft := catalog.Draft{Title: "x"}
		if err := draft.Set(field, s); err != nil {
			return err
		}
		if err := draft.Validate(); err != nil {
			var ve *catalog.ValidationError
			if errors.As(err, &ve) {
				return fmt.Errorf("%s", ve.Reason)
			}
			return err
		}
		return nil
	}
}

// printDryRunPayload shows what would be sent without sending it
func printDryRunPayload(draft catalog.Draft) error {
	payload, err := draft.Payload()
	if err != nil {
		return err
	}

	body, err := payload.Encode(catalogClient.Casing())
	if err != nil {
		return err
	}

	fmt.Printf("Dry run: would POST %s\n%s\n", catalog.AdminMoviesPath, body)
	return nil
}
