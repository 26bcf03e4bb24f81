package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/s0up4200/marquee/catalog"
)

// confirmDeletion asks before destructive operations. Without a terminal the
// answer cannot be asked for, so --yes is required instead.
func confirmDeletion(movies []catalog.Movie, assumeYes bool) bool {
	fmt.Print(operations.Formatter().FormatMoviesToDelete(movies))

	if cfg.Safety.DryRun {
		fmt.Printf("Dry run: %d movie(s) would be deleted.\n", len(movies))
		return false
	}

	if assumeYes || !cfg.Safety.ConfirmDelete {
		return true
	}

	if !isTerminal(os.Stdin) {
		logger.Warn().Msg("Refusing to delete without a terminal to confirm on; pass --yes to proceed")
		return false
	}

	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %d movie(s)?", len(movies))).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		logger.Warn().Err(err).Msg("Confirmation aborted")
		return false
	}

	return confirmed
}
