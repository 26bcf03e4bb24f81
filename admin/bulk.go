package admin

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/marquee/catalog"
)

// BulkDeleteResult contains the results of a bulk delete operation
type BulkDeleteResult struct {
	Requested int
	// Cancelled is set when confirmation was declined; nothing was deleted
	Cancelled bool
	// Deleted and Failed are only filled in bounded mode
	Deleted []catalog.ID
	Failed  []DeleteError
}

// Err aggregates per-movie failures, or returns nil when there were none
func (r *BulkDeleteResult) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}

	errs := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		errs = append(errs, f)
	}
	return fmt.Errorf("failed to delete %d of %d movies: %w", len(r.Failed), r.Requested, errors.Join(errs...))
}

// DeleteError contains information about a failed delete operation
type DeleteError struct {
	MovieID    catalog.ID
	MovieTitle string
	Err        error
}

// Error implements the error interface
func (e DeleteError) Error() string {
	return fmt.Sprintf("failed to delete movie %s (ID: %s): %v", e.MovieTitle, e.MovieID, e.Err)
}

func (e DeleteError) Unwrap() error {
	return e.Err
}

// deleteFanOut starts one delete per movie, all at once, and waits for every
// one of them to finish. The first failure is returned; the others are not
// cancelled and their outcome is only visible through the next reload.
func deleteFanOut(ctx context.Context, api Deleter, movies []catalog.Movie) error {
	var g errgroup.Group

	for _, movie := range movies {
		g.Go(func() error {
			if err := api.Delete(ctx, movie.ID); err != nil {
				return DeleteError{MovieID: movie.ID, MovieTitle: movie.Title, Err: err}
			}
			return nil
		})
	}

	return g.Wait()
}

// deleteBounded deletes movies with at most limit requests in flight and
// records the outcome of every single delete.
func deleteBounded(ctx context.Context, api Deleter, movies []catalog.Movie, limit int) *BulkDeleteResult {
	result := &BulkDeleteResult{
		Requested: len(movies),
	}

	if len(movies) == 0 {
		return result
	}

	var g errgroup.Group
	g.SetLimit(limit)

	// Use channels for result collection
	successChan := make(chan catalog.ID, len(movies))
	errorChan := make(chan DeleteError, len(movies))

	for _, movie := range movies {
		g.Go(func() error {
			if err := api.Delete(ctx, movie.ID); err != nil {
				errorChan <- DeleteError{
					MovieID:    movie.ID,
					MovieTitle: movie.Title,
					Err:        err,
				}
			} else {
				successChan <- movie.ID
			}
			return nil // Don't stop on individual errors
		})
	}

	// Wait for all operations to complete
	_ = g.Wait()
	close(successChan)
	close(errorChan)

	// Collect results
	for id := range successChan {
		result.Deleted = append(result.Deleted, id)
	}
	for err := range errorChan {
		result.Failed = append(result.Failed, err)
	}

	return result
}
