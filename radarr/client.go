package radarr

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golift.io/starr"
	"golift.io/starr/radarr"
)

// DefaultTimeout is the request timeout used for Radarr calls
const DefaultTimeout = 30 * time.Second

// Client wraps the starr Radarr client for reading a library
type Client struct {
	api    RadarrAPI
	logger zerolog.Logger
}

// NewClient creates a new Radarr client and checks that it can connect
func NewClient(url, apiKey string, logger zerolog.Logger) (*Client, error) {
	config := starr.New(apiKey, url, DefaultTimeout)
	radarrClient := radarr.New(config)

	// Test the connection
	if err := radarrClient.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to Radarr: %w", err)
	}

	return NewClientWithAPI(radarrClient, logger), nil
}

// NewClientWithAPI creates a client over an existing API implementation
func NewClientWithAPI(api RadarrAPI, logger zerolog.Logger) *Client {
	return &Client{
		api:    api,
		logger: logger,
	}
}

// GetAllMovies retrieves all movies from Radarr
func (c *Client) GetAllMovies(ctx context.Context) ([]*radarr.Movie, error) {
	movies, err := c.api.GetMovieContext(ctx, &radarr.GetMovie{})
	if err != nil {
		return nil, fmt.Errorf("failed to get movies: %w", err)
	}

	c.logger.Debug().Msgf("Retrieved %d movies from Radarr", len(movies))
	return movies, nil
}

// Drafts retrieves the Radarr library as catalog drafts
func (c *Client) Drafts(ctx context.Context) ([]Import, error) {
	movies, err := c.GetAllMovies(ctx)
	if err != nil {
		return nil, err
	}

	imports := make([]Import, 0, len(movies))
	for _, movie := range movies {
		if movie == nil || movie.Title == "" {
			continue
		}
		imports = append(imports, NewImport(movie))
	}
	return imports, nil
}
