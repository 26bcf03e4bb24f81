package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraft_SetGet(t *testing.T) {
	var d Draft
	for _, field := range Fields {
		require.NoError(t, d.Set(field, field+"-value"))
	}

	for _, field := range Fields {
		got, err := d.Get(field)
		require.NoError(t, err)
		assert.Equal(t, field+"-value", got)
	}

	err := d.Set("rating", "5")
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = d.Get("rating")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestDraft_Payload(t *testing.T) {
	tests := []struct {
		name      string
		draft     Draft
		wantField string
		check     func(t *testing.T, p Payload)
	}{
		{
			name:      "empty title",
			draft:     Draft{Director: "Nolan"},
			wantField: FieldTitle,
		},
		{
			name:      "whitespace title",
			draft:     Draft{Title: "   "},
			wantField: FieldTitle,
		},
		{
			name:      "bad release date",
			draft:     Draft{Title: "Dune", ReleaseDate: "21/10/2021"},
			wantField: FieldReleaseDate,
		},
		{
			name:      "non-numeric sales",
			draft:     Draft{Title: "Dune", SalesMillions: "lots"},
			wantField: FieldSalesMillions,
		},
		{
			name:      "NaN sales",
			draft:     Draft{Title: "Dune", SalesMillions: "NaN"},
			wantField: FieldSalesMillions,
		},
		{
			name:  "empty optionals become nil",
			draft: Draft{Title: "  Dune ", Director: "Villeneuve", Genre: " ", SalesMillions: ""},
			check: func(t *testing.T, p Payload) {
				assert.Equal(t, "Dune", p.Title)
				require.NotNil(t, p.Director)
				assert.Equal(t, "Villeneuve", *p.Director)
				assert.Nil(t, p.Genre)
				assert.Nil(t, p.LeadActor1)
				assert.Nil(t, p.LeadActor2)
				assert.Nil(t, p.PosterURL)
				assert.Nil(t, p.ReleaseDate)
				assert.Nil(t, p.SalesMillions)
			},
		},
		{
			name:  "numeric and date fields converted",
			draft: Draft{Title: "Heat", ReleaseDate: "1995-12-15", SalesMillions: "187.4"},
			check: func(t *testing.T, p Payload) {
				require.NotNil(t, p.ReleaseDate)
				assert.Equal(t, "1995-12-15", *p.ReleaseDate)
				require.NotNil(t, p.SalesMillions)
				assert.InDelta(t, 187.4, *p.SalesMillions, 0.0001)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.draft.Payload()
			if tt.wantField != "" {
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.wantField, vErr.Field)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func TestPayload_Encode(t *testing.T) {
	p, err := Draft{Title: "Dune", Director: "Villeneuve", LeadActor1: "Chalamet"}.Payload()
	require.NoError(t, err)

	camel, err := p.Encode(CasingCamel)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"title": "Dune",
		"director": "Villeneuve",
		"genre": null,
		"leadActor1": "Chalamet",
		"leadActor2": null,
		"posterUrl": null,
		"releaseDate": null,
		"salesMillions": null
	}`, string(camel))

	snake, err := p.Encode(CasingSnake)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"title": "Dune",
		"director": "Villeneuve",
		"genre": null,
		"lead_actor1": "Chalamet",
		"lead_actor2": null,
		"poster_url": null,
		"release_date": null,
		"sales_millions": null
	}`, string(snake))
}

func TestParseCasing(t *testing.T) {
	tests := []struct {
		in      string
		want    Casing
		wantErr bool
	}{
		{"camel", CasingCamel, false},
		{"", CasingCamel, false},
		{" Snake ", CasingSnake, false},
		{"kebab", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCasing(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestID_UnmarshalJSON(t *testing.T) {
	var ids []ID
	require.NoError(t, json.Unmarshal([]byte(`[1, "abc", 12345678901234, null]`), &ids))
	assert.Equal(t, []ID{"1", "abc", "12345678901234", ""}, ids)

	var bad ID
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &bad))
}
