package radarr

import (
	"strings"
	"time"

	"golift.io/starr/radarr"

	"github.com/s0up4200/marquee/catalog"
)

const posterCoverType = "poster"

// Import is a Radarr movie converted into a catalog draft
type Import struct {
	RadarrID int64
	Year     int
	Draft    catalog.Draft
}

// NewImport converts a Radarr movie into a draft
func NewImport(movie *radarr.Movie) Import {
	return Import{
		RadarrID: movie.ID,
		Year:     movie.Year,
		Draft:    ToDraft(movie),
	}
}

// Movie returns the record the draft would create, for filtering before import
func (i Import) Movie() catalog.Movie {
	payload, err := i.Draft.Payload()
	if err != nil {
		return catalog.Movie{Title: i.Draft.Title}
	}
	return payload.Movie("")
}

// ToDraft maps the Radarr fields that have a catalog counterpart
func ToDraft(movie *radarr.Movie) catalog.Draft {
	draft := catalog.Draft{
		Title:     strings.TrimSpace(movie.Title),
		PosterURL: posterURL(movie),
	}

	if len(movie.Genres) > 0 {
		draft.Genre = movie.Genres[0]
	}

	if released := releaseDate(movie); !released.IsZero() {
		draft.ReleaseDate = released.Format(catalog.DateLayout)
	}

	return draft
}

// releaseDate prefers the cinema release, then digital, then physical
func releaseDate(movie *radarr.Movie) time.Time {
	for _, t := range []time.Time{movie.InCinemas, movie.DigitalRelease, movie.PhysicalRelease} {
		if !t.IsZero() {
			return t
		}
	}
	return time.Time{}
}

func posterURL(movie *radarr.Movie) string {
	for _, image := range movie.Images {
		if image == nil || !strings.EqualFold(image.CoverType, posterCoverType) {
			continue
		}
		if image.RemoteURL != "" {
			return image.RemoteURL
		}
		return image.URL
	}
	return ""
}
