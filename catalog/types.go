package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ID is an opaque server-assigned identifier. Servers send it either as a
// JSON number or a JSON string; both decode to the same ID.
type ID string

// UnmarshalJSON accepts numeric and string identifiers
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid identifier %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier as a string
func (id ID) String() string {
	return string(id)
}

// Movie is the canonical movie record. Optional fields are nil when absent.
type Movie struct {
	ID            ID       `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Director      *string  `json:"director" yaml:"director"`
	Genre         *string  `json:"genre" yaml:"genre"`
	LeadActor1    *string  `json:"leadActor1" yaml:"lead_actor1"`
	LeadActor2    *string  `json:"leadActor2" yaml:"lead_actor2"`
	PosterURL     *string  `json:"posterUrl" yaml:"poster_url"`
	ReleaseDate   *string  `json:"releaseDate" yaml:"release_date"`
	SalesMillions *float64 `json:"salesMillions" yaml:"sales_millions"`
}

// LeadActors returns the non-empty lead actors in billing order
func (m *Movie) LeadActors() []string {
	actors := make([]string, 0, 2)
	for _, a := range []*string{m.LeadActor1, m.LeadActor2} {
		if a != nil && *a != "" {
			actors = append(actors, *a)
		}
	}
	return actors
}

// Casing selects the key naming convention used when sending payloads.
type Casing string

const (
	// CasingCamel sends keys like "leadActor1" and "salesMillions"
	CasingCamel Casing = "camel"
	// CasingSnake sends keys like "lead_actor1" and "sales_millions"
	CasingSnake Casing = "snake"
)

// ParseCasing parses a casing name, accepting "camel" and "snake"
func ParseCasing(s string) (Casing, error) {
	switch Casing(strings.ToLower(strings.TrimSpace(s))) {
	case CasingCamel, "":
		return CasingCamel, nil
	case CasingSnake:
		return CasingSnake, nil
	default:
		return "", fmt.Errorf("%w: unknown casing %q (must be 'camel' or 'snake')", ErrInvalidConfig, s)
	}
}

// Payload is a validated draft, ready to be sent to the server.
// Empty optional fields are nil and serialize as JSON null.
type Payload struct {
	Title         string   `json:"title"`
	Director      *string  `json:"director"`
	Genre         *string  `json:"genre"`
	LeadActor1    *string  `json:"leadActor1"`
	LeadActor2    *string  `json:"leadActor2"`
	PosterURL     *string  `json:"posterUrl"`
	ReleaseDate   *string  `json:"releaseDate"`
	SalesMillions *float64 `json:"salesMillions"`
}

// snakePayload mirrors Payload field for field so the two convert directly.
type snakePayload struct {
	Title         string   `json:"title"`
	Director      *string  `json:"director"`
	Genre         *string  `json:"genre"`
	LeadActor1    *string  `json:"lead_actor1"`
	LeadActor2    *string  `json:"lead_actor2"`
	PosterURL     *string  `json:"poster_url"`
	ReleaseDate   *string  `json:"release_date"`
	SalesMillions *float64 `json:"sales_millions"`
}

// Encode serializes the payload using the given key casing
func (p Payload) Encode(casing Casing) ([]byte, error) {
	if casing == CasingSnake {
		return json.Marshal(snakePayload(p))
	}
	return json.Marshal(p)
}

// Movie returns the record the payload describes, under the given identifier
func (p Payload) Movie(id ID) Movie {
	return Movie{
		ID:            id,
		Title:         p.Title,
		Director:      p.Director,
		Genre:         p.Genre,
		LeadActor1:    p.LeadActor1,
		LeadActor2:    p.LeadActor2,
		PosterURL:     p.PosterURL,
		ReleaseDate:   p.ReleaseDate,
		SalesMillions: p.SalesMillions,
	}
}
