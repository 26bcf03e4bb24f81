package radarr

import (
	"context"

	"golift.io/starr/radarr"
)

// RadarrAPI defines the Radarr API operations used for importing
type RadarrAPI interface {
	// Movie operations
	GetMovieContext(ctx context.Context, params *radarr.GetMovie) ([]*radarr.Movie, error)

	// Health check
	Ping() error
}
