package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/marquee/catalog"
	"github.com/s0up4200/marquee/filter"
)

func TestResolveFilter(t *testing.T) {
	m := filter.NewManager()
	require.NoError(t, m.RegisterFilter("villeneuve", `hasText(Director, "villeneuve")`))

	t.Run("no filter", func(t *testing.T) {
		f, err := resolveFilter(m, "", "")
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("expression wins over preset", func(t *testing.T) {
		f, err := resolveFilter(m, `HasPoster`, "villeneuve")
		require.NoError(t, err)
		assert.Equal(t, "HasPoster", f.Expression())
	})

	t.Run("preset", func(t *testing.T) {
		f, err := resolveFilter(m, "", "villeneuve")
		require.NoError(t, err)
		director := "Denis Villeneuve"
		assert.True(t, f.Evaluate(catalog.Movie{Title: "Dune", Director: &director}))
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, err := resolveFilter(m, "", "missing")
		var upe *filter.UnknownPresetError
		assert.ErrorAs(t, err, &upe)
	})

	t.Run("invalid expression", func(t *testing.T) {
		_, err := resolveFilter(m, `Year > 2000`, "")
		assert.ErrorContains(t, err, "invalid filter expression")
	})
}

func TestFilterMovies(t *testing.T) {
	m := filter.NewManager()
	require.NoError(t, m.RegisterFilter("villeneuve", `hasText(Director, "villeneuve")`))

	director := "Denis Villeneuve"
	movies := []catalog.Movie{
		{ID: "1", Title: "Dune", Director: &director},
		{ID: "2", Title: "Heat"},
	}

	t.Run("preset", func(t *testing.T) {
		f, err := resolveFilter(m, "", "villeneuve")
		require.NoError(t, err)

		matches, err := filterMovies(context.Background(), m, f, "", "villeneuve", movies)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Dune", matches[0].Title)
	})

	t.Run("expression", func(t *testing.T) {
		f, err := resolveFilter(m, `Title == "Heat"`, "villeneuve")
		require.NoError(t, err)

		matches, err := filterMovies(context.Background(), m, f, `Title == "Heat"`, "villeneuve", movies)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Heat", matches[0].Title)
	})

	t.Run("unknown preset", func(t *testing.T) {
		f, err := resolveFilter(m, `HasPoster`, "")
		require.NoError(t, err)

		_, err = filterMovies(context.Background(), m, f, "", "missing", movies)
		var upe *filter.UnknownPresetError
		assert.ErrorAs(t, err, &upe)
	})
}

func TestFieldValidator(t *testing.T) {
	assert.NoError(t, fieldValidator(catalog.FieldDirector)(""))
	assert.NoError(t, fieldValidator(catalog.FieldSalesMillions)("12.5"))
	assert.EqualError(t, fieldValidator(catalog.FieldSalesMillions)("lots"), "must be a number")
	assert.EqualError(t, fieldValidator(catalog.FieldTitle)("  "), "is required")
	assert.Error(t, fieldValidator(catalog.FieldReleaseDate)("22/10/2021"))
}
