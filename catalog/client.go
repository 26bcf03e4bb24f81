package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Endpoint paths of the catalog API
const (
	MoviesPath      = "/api/movies"
	AdminMoviesPath = "/api/admin/movies"
	UsersPath       = "/users"
)

// RequestIDHeader carries a per-request identifier for log correlation
const RequestIDHeader = "X-Request-ID"

// Client represents a catalog API client
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	casing     Casing
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new catalog client
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: catalog URL is required", ErrInvalidConfig)
	}

	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid catalog URL %q", ErrInvalidConfig, baseURL)
	}

	client := &Client{
		baseURL:   baseURL,
		userAgent: "marquee",
		casing:    CasingCamel,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	if _, err := ParseCasing(string(client.casing)); err != nil {
		return nil, err
	}

	return client, nil
}

// Casing returns the key naming convention used for create payloads
func (c *Client) Casing() Casing {
	return c.casing
}

// response is a fully read HTTP response
type response struct {
	statusCode  int
	contentType string
	body        []byte
}

// doRequest performs an HTTP request and fails on any non-2xx status
func (c *Client) doRequest(ctx context.Context, method, path string, payload []byte) (*response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: request failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: failed to read response body: %w", method, path, err)
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Catalog API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       truncate(data),
		}
	}

	return &response{
		statusCode:  resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		body:        data,
	}, nil
}

// isJSON reports whether a Content-Type header names a JSON media type
func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// checkJSON rejects responses that declare a non-JSON content type
func checkJSON(path string, resp *response) error {
	if resp.contentType == "" || isJSON(resp.contentType) {
		return nil
	}
	return &FormatError{
		Path:        path,
		ContentType: resp.contentType,
		Body:        truncate(resp.body),
	}
}

// formatError wraps a decoding failure, sniffing the content type when the server sent none
func formatError(path string, resp *response, err error) error {
	contentType := resp.contentType
	if contentType == "" {
		contentType = http.DetectContentType(resp.body)
	}
	return &FormatError{
		Path:        path,
		ContentType: contentType,
		Body:        truncate(resp.body),
		Err:         err,
	}
}

// List retrieves every movie in the catalog
func (c *Client) List(ctx context.Context) ([]Movie, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, MoviesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	if err := checkJSON(MoviesPath, resp); err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	movies, err := decodeMovies(resp.body)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", formatError(MoviesPath, resp, err))
	}

	c.logger.Debug().Msgf("Retrieved %d movies from catalog", len(movies))
	return movies, nil
}

// Create validates the draft and submits it. Validation failures return
// before any request is made.
func (c *Client) Create(ctx context.Context, draft Draft) (*Movie, error) {
	payload, err := draft.Payload()
	if err != nil {
		return nil, err
	}

	body, err := payload.Encode(c.casing)
	if err != nil {
		return nil, fmt.Errorf("failed to encode movie: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, AdminMoviesPath, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create movie %q: %w", payload.Title, err)
	}

	// Some servers answer 201/204 with an empty body; the payload is then all we know
	if len(bytes.TrimSpace(resp.body)) == 0 {
		movie := payload.Movie("")
		return &movie, nil
	}

	if err := checkJSON(AdminMoviesPath, resp); err != nil {
		return nil, fmt.Errorf("failed to create movie %q: %w", payload.Title, err)
	}

	movie, err := decodeMovie(resp.body)
	if err != nil {
		return nil, fmt.Errorf("failed to create movie %q: %w", payload.Title, formatError(AdminMoviesPath, resp, err))
	}

	c.logger.Info().Str("id", movie.ID.String()).Str("title", movie.Title).Msg("Created movie")
	return &movie, nil
}

// Delete deletes a single movie by ID
func (c *Client) Delete(ctx context.Context, id ID) error {
	if id == "" {
		return fmt.Errorf("failed to delete movie: empty ID")
	}

	path := AdminMoviesPath + "/" + url.PathEscape(id.String())
	if _, err := c.doRequest(ctx, http.MethodDelete, path, nil); err != nil {
		return fmt.Errorf("failed to delete movie ID %s: %w", id, err)
	}

	c.logger.Info().Str("id", id.String()).Msg("Deleted movie")
	return nil
}

// ListUsers retrieves the registered users
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, UsersPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	if err := checkJSON(UsersPath, resp); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users, err := decodeUsers(resp.body)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", formatError(UsersPath, resp, err))
	}

	c.logger.Debug().Msgf("Retrieved %d users from catalog", len(users))
	return users, nil
}

// Ping checks that the catalog answers the public listing with JSON
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.List(ctx)
	return err
}
