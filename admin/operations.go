package admin

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/catalog"
)

// ErrBusy is returned when an operation starts while another is in flight
var ErrBusy = errors.New("another operation is in progress")

// ConfirmFunc is asked before a bulk delete; returning false cancels it
type ConfirmFunc func(movies []catalog.Movie) bool

// Operations is one admin page instance. It owns the fetched movie list and
// the form draft, and runs one operation at a time against the catalog.
type Operations struct {
	api            CatalogAPI
	logger         zerolog.Logger
	form           *Form
	formatter      MovieFormatter
	maxConcurrency int

	mu     sync.Mutex
	movies []catalog.Movie
	loaded bool
	errMsg string
	busy   bool
}

// NewOperations creates a new Operations instance
func NewOperations(api CatalogAPI, logger zerolog.Logger) *Operations {
	return &Operations{
		api:       api,
		logger:    logger,
		form:      NewForm(),
		formatter: NewConsoleFormatter(),
	}
}

// SetMaxConcurrency bounds bulk delete fan-out. Zero keeps the unbounded,
// first-error-wins behavior; a positive value reports every failure.
func (o *Operations) SetMaxConcurrency(n int) {
	o.maxConcurrency = n
}

// Form returns the page's movie form
func (o *Operations) Form() *Form {
	return o.form
}

// Formatter returns the formatter used for console output
func (o *Operations) Formatter() MovieFormatter {
	return o.formatter
}

// View returns a snapshot of the page state
func (o *Operations) View() View {
	o.mu.Lock()
	defer o.mu.Unlock()

	v := View{
		Movies: slices.Clone(o.movies),
		Error:  o.errMsg,
		Busy:   o.busy,
	}

	switch {
	case o.errMsg != "":
		v.State = ViewError
	case !o.loaded:
		v.State = ViewLoading
	default:
		v.State = ViewLoaded
	}
	return v
}

// begin marks an operation in flight and clears the previous error
func (o *Operations) begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.busy {
		return ErrBusy
	}
	o.busy = true
	o.errMsg = ""
	return nil
}

func (o *Operations) end() {
	o.mu.Lock()
	o.busy = false
	o.mu.Unlock()
}

func (o *Operations) fail(err error) {
	o.mu.Lock()
	o.errMsg = err.Error()
	o.mu.Unlock()
}

// failList records a list failure and drops the stale list
func (o *Operations) failList(err error) {
	o.mu.Lock()
	o.loaded = true
	o.movies = nil
	o.errMsg = err.Error()
	o.mu.Unlock()
}

// Reload fetches the movie list, replacing whatever was shown
func (o *Operations) Reload(ctx context.Context) error {
	if err := o.begin(); err != nil {
		return err
	}
	defer o.end()

	return o.reload(ctx)
}

// reload replaces the list wholesale. On failure the list is emptied rather
// than left stale.
func (o *Operations) reload(ctx context.Context) error {
	movies, err := o.api.List(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()

	o.loaded = true
	if err != nil {
		o.movies = nil
		o.errMsg = err.Error()
		return err
	}

	o.movies = movies
	return nil
}

// Submit sends the form draft to the catalog and reloads on success.
// The draft is kept when validation or the request fails.
func (o *Operations) Submit(ctx context.Context) (*catalog.Movie, error) {
	if err := o.begin(); err != nil {
		return nil, err
	}
	defer o.end()

	created, err := o.create(ctx)
	if err != nil {
		o.fail(err)
		return nil, err
	}

	if err := o.reload(ctx); err != nil {
		o.logger.Warn().Err(err).Msg("Movie created but reloading the list failed")
	}

	return created, nil
}

// create submits the current draft through the form
func (o *Operations) create(ctx context.Context) (*catalog.Movie, error) {
	var created *catalog.Movie
	err := o.form.Submit(ctx, func(ctx context.Context, draft catalog.Draft) error {
		movie, err := o.api.Create(ctx, draft)
		if err != nil {
			return err
		}
		created = movie
		return nil
	})
	return created, err
}

// DeleteOne deletes a movie and reloads on success. On failure the shown
// list is left untouched until the next reload.
func (o *Operations) DeleteOne(ctx context.Context, id catalog.ID) error {
	if err := o.begin(); err != nil {
		return err
	}
	defer o.end()

	if err := o.api.Delete(ctx, id); err != nil {
		o.fail(err)
		return err
	}

	if err := o.reload(ctx); err != nil {
		o.logger.Warn().Err(err).Msg("Movie deleted but reloading the list failed")
	}
	return nil
}

// DeleteAll deletes every movie currently on the server.
//
// The list is fetched fresh from the server, never taken from the page. If
// that fetch fails nothing is deleted. Otherwise all deletes are issued and
// awaited, and the list is reloaded whether or not any delete failed.
func (o *Operations) DeleteAll(ctx context.Context, confirm ConfirmFunc) (*BulkDeleteResult, error) {
	if err := o.begin(); err != nil {
		return nil, err
	}
	defer o.end()

	current, err := o.api.List(ctx)
	if err != nil {
		err = fmt.Errorf("failed to load movies for bulk delete: %w", err)
		o.failList(err)
		return nil, err
	}

	result := &BulkDeleteResult{Requested: len(current)}

	if len(current) == 0 {
		o.logger.Info().Msg("No movies to delete")
		return result, o.reload(ctx)
	}

	if confirm != nil && !confirm(current) {
		o.logger.Info().Msg("Deletion cancelled")
		result.Cancelled = true
		return result, nil
	}

	var deleteErr error
	if o.maxConcurrency > 0 {
		result = deleteBounded(ctx, o.api, current, o.maxConcurrency)
		deleteErr = result.Err()

		// Log individual failures
		for _, failure := range result.Failed {
			o.logger.Error().
				Err(failure.Err).
				Str("id", failure.MovieID.String()).
				Str("title", failure.MovieTitle).
				Msg("Failed to delete movie")
		}
	} else {
		deleteErr = deleteFanOut(ctx, o.api, current)
	}

	o.logger.Info().
		Int("requested", result.Requested).
		Bool("failed", deleteErr != nil).
		Msg("Bulk delete complete")

	reloadErr := o.reload(ctx)

	if deleteErr != nil {
		if reloadErr != nil {
			o.logger.Warn().Err(reloadErr).Msg("Reloading after bulk delete failed")
		}
		o.fail(deleteErr)
		return result, deleteErr
	}

	return result, reloadErr
}

// ImportResult contains the results of importing drafts
type ImportResult struct {
	Requested int
	Created   []catalog.Movie
	Failed    []ImportError
}

// ImportError describes a draft the catalog did not accept
type ImportError struct {
	Title string
	Err   error
}

// Error implements the error interface
func (e ImportError) Error() string {
	return fmt.Sprintf("failed to import %q: %v", e.Title, e.Err)
}

func (e ImportError) Unwrap() error {
	return e.Err
}

// Err aggregates per-draft failures, or returns nil when there were none
func (r *ImportResult) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}

	errs := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		errs = append(errs, f)
	}
	return fmt.Errorf("failed to import %d of %d movies: %w", len(r.Failed), r.Requested, errors.Join(errs...))
}

// Import submits each draft through the form, one after another, then
// reloads the list once.
func (o *Operations) Import(ctx context.Context, drafts []catalog.Draft) (*ImportResult, error) {
	if err := o.begin(); err != nil {
		return nil, err
	}
	defer o.end()

	result := &ImportResult{Requested: len(drafts)}

	for _, draft := range drafts {
		if err := o.form.Load(draft); err != nil {
			return result, err
		}

		created, err := o.create(ctx)
		if err != nil {
			result.Failed = append(result.Failed, ImportError{Title: draft.Title, Err: err})
			o.logger.Warn().Err(err).Str("title", draft.Title).Msg("Failed to import movie")
			if resetErr := o.form.Reset(); resetErr != nil {
				return result, resetErr
			}
			continue
		}
		result.Created = append(result.Created, *created)
	}

	o.logger.Info().
		Int("created", len(result.Created)).
		Int("failed", len(result.Failed)).
		Msg("Import complete")

	reloadErr := o.reload(ctx)

	if err := result.Err(); err != nil {
		o.fail(err)
		return result, err
	}
	return result, reloadErr
}
