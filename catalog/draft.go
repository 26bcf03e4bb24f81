package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Draft field names, as accepted by Draft.Set and Draft.Get
const (
	FieldTitle         = "title"
	FieldDirector      = "director"
	FieldGenre         = "genre"
	FieldLeadActor1    = "leadActor1"
	FieldLeadActor2    = "leadActor2"
	FieldPosterURL     = "posterUrl"
	FieldReleaseDate   = "releaseDate"
	FieldSalesMillions = "salesMillions"
)

// DateLayout is the ISO date format used for release dates
const DateLayout = "2006-01-02"

// Fields lists every draft field in form order
var Fields = []string{
	FieldTitle,
	FieldDirector,
	FieldGenre,
	FieldLeadActor1,
	FieldLeadActor2,
	FieldPosterURL,
	FieldReleaseDate,
	FieldSalesMillions,
}

// Draft is the unsaved, all-string staging copy of a movie being edited.
// Numeric and date fields stay strings until Payload converts them.
type Draft struct {
	Title         string
	Director      string
	Genre         string
	LeadActor1    string
	LeadActor2    string
	PosterURL     string
	ReleaseDate   string
	SalesMillions string
}

// field returns a pointer to the named field
func (d *Draft) field(name string) (*string, error) {
	switch name {
	case FieldTitle:
		return &d.Title, nil
	case FieldDirector:
		return &d.Director, nil
	case FieldGenre:
		return &d.Genre, nil
	case FieldLeadActor1:
		return &d.LeadActor1, nil
	case FieldLeadActor2:
		return &d.LeadActor2, nil
	case FieldPosterURL:
		return &d.PosterURL, nil
	case FieldReleaseDate:
		return &d.ReleaseDate, nil
	case FieldSalesMillions:
		return &d.SalesMillions, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
}

// Set assigns a field by name
func (d *Draft) Set(name, value string) error {
	p, err := d.field(name)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

// Get returns a field by name
func (d Draft) Get(name string) (string, error) {
	p, err := d.field(name)
	if err != nil {
		return "", err
	}
	return *p, nil
}

// IsEmpty reports whether every field is blank
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

// Validate checks the draft without building a payload
func (d Draft) Validate() error {
	_, err := d.Payload()
	return err
}

// Payload validates the draft and converts it into its wire form.
// The title must be non-blank; blank optional fields become nil.
func (d Draft) Payload() (Payload, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return Payload{}, &ValidationError{Field: FieldTitle, Reason: "is required"}
	}

	p := Payload{
		Title:      title,
		Director:   optional(d.Director),
		Genre:      optional(d.Genre),
		LeadActor1: optional(d.LeadActor1),
		LeadActor2: optional(d.LeadActor2),
		PosterURL:  optional(d.PosterURL),
	}

	if date := strings.TrimSpace(d.ReleaseDate); date != "" {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return Payload{}, &ValidationError{Field: FieldReleaseDate, Reason: "must be a date in YYYY-MM-DD format"}
		}
		p.ReleaseDate = &date
	}

	if sales := strings.TrimSpace(d.SalesMillions); sales != "" {
		v, err := strconv.ParseFloat(sales, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Payload{}, &ValidationError{Field: FieldSalesMillions, Reason: "must be a number"}
		}
		p.SalesMillions = &v
	}

	return p, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
