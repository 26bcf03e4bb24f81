package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// record is one raw JSON object as received from the server. Lookups take the
// accepted spellings of a field in priority order; a null value counts as absent.
type record map[string]json.RawMessage

func (r record) lookup(keys ...string) (json.RawMessage, string, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && string(v) != "null" {
			return v, k, true
		}
	}
	return nil, "", false
}

func (r record) id(keys ...string) (ID, error) {
	raw, key, ok := r.lookup(keys...)
	if !ok {
		return "", nil
	}
	var id ID
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", fmt.Errorf("field %q: %w", key, err)
	}
	return id, nil
}

func (r record) str(keys ...string) (*string, error) {
	raw, key, ok := r.lookup(keys...)
	if !ok {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("field %q: expected string, got %s", key, raw)
	}
	if s == "" {
		return nil, nil
	}
	return &s, nil
}

// number accepts both JSON numbers and numeric strings, since decimal
// columns are often serialized as strings.
func (r record) number(keys ...string) (*float64, error) {
	raw, key, ok := r.lookup(keys...)
	if !ok {
		return nil, nil
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err == nil {
		return &v, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("field %q: expected number, got %s", key, raw)
	}
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, fmt.Errorf("field %q: expected number, got %q", key, s)
	}
	return &v, nil
}

// timestampLayouts are tried in order when parsing server timestamps
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	DateLayout,
}

// timestamp returns the zero time when the field is absent or unparsable.
func (r record) timestamp(keys ...string) time.Time {
	s, err := r.str(keys...)
	if err != nil || s == nil {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, *s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// normalizeMovie maps any accepted server shape into the canonical Movie.
func normalizeMovie(r record) (Movie, error) {
	var (
		m   Movie
		err error
	)

	if m.ID, err = r.id("id", "movieId", "movie_id", "_id"); err != nil {
		return m, err
	}

	title, err := r.str("title", "Title")
	if err != nil {
		return m, err
	}
	if title != nil {
		m.Title = *title
	}

	fields := []struct {
		dst  **string
		keys []string
	}{
		{&m.Director, []string{"director"}},
		{&m.Genre, []string{"genre"}},
		{&m.LeadActor1, []string{"leadActor1", "lead_actor1", "lead_actor_1"}},
		{&m.LeadActor2, []string{"leadActor2", "lead_actor2", "lead_actor_2"}},
		{&m.PosterURL, []string{"posterUrl", "poster_url", "posterURL"}},
		{&m.ReleaseDate, []string{"releaseDate", "release_date"}},
	}
	for _, f := range fields {
		if *f.dst, err = r.str(f.keys...); err != nil {
			return m, err
		}
	}

	if m.SalesMillions, err = r.number("salesMillions", "sales_millions"); err != nil {
		return m, err
	}

	return m, nil
}

// decodeMovies decodes a JSON array of movie objects.
func decodeMovies(body []byte) ([]Movie, error) {
	var raw []record
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	movies := make([]Movie, 0, len(raw))
	for i, r := range raw {
		m, err := normalizeMovie(r)
		if err != nil {
			return nil, fmt.Errorf("movie %d: %w", i, err)
		}
		movies = append(movies, m)
	}
	return movies, nil
}

// decodeMovie decodes a single movie object.
func decodeMovie(body []byte) (Movie, error) {
	var r record
	if err := json.Unmarshal(body, &r); err != nil {
		return Movie{}, err
	}
	return normalizeMovie(r)
}
