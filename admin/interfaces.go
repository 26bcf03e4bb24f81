package admin

import (
	"context"

	"github.com/s0up4200/marquee/catalog"
)

// CatalogAPI defines the catalog operations the admin page depends on
type CatalogAPI interface {
	// List retrieves every movie in the catalog
	List(ctx context.Context) ([]catalog.Movie, error)

	// Create validates and submits a draft
	Create(ctx context.Context, draft catalog.Draft) (*catalog.Movie, error)

	// Delete deletes a single movie by ID
	Delete(ctx context.Context, id catalog.ID) error
}

// Deleter deletes a single movie by ID
type Deleter interface {
	Delete(ctx context.Context, id catalog.ID) error
}

// MovieFormatter defines the interface for formatting movie output
type MovieFormatter interface {
	FormatView(view View) string
	FormatMovieTable(movies []catalog.Movie) string
	FormatMoviesToDelete(movies []catalog.Movie) string
	FormatUsers(users []catalog.User) string
}
