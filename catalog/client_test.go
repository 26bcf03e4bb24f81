package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		opts    []Option
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			baseURL: "http://localhost:8080",
		},
		{
			name:    "trailing slash trimmed",
			baseURL: "http://localhost:8080/",
		},
		{
			name:    "missing URL",
			baseURL: "",
			wantErr: true,
			errMsg:  "URL is required",
		},
		{
			name:    "unsupported scheme",
			baseURL: "ftp://localhost",
			wantErr: true,
			errMsg:  "invalid catalog URL",
		},
		{
			name:    "unknown casing",
			baseURL: "http://localhost:8080",
			opts:    []Option{WithCasing("kebab")},
			wantErr: true,
			errMsg:  "unknown casing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, zerolog.Nop(), tt.opts...)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "http://localhost:8080", client.baseURL)
			assert.Equal(t, CasingCamel, client.Casing())
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("http://localhost:8080", logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("http://localhost:8080", logger, WithHTTPClient(custom))
		require.NoError(t, err)
		assert.Same(t, custom, client.httpClient)
	})

	t.Run("timeout does not mutate a shared client", func(t *testing.T) {
		shared := &http.Client{}
		client, err := NewClient("http://localhost:8080", logger, WithHTTPClient(shared), WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
		assert.Zero(t, shared.Timeout)
		assert.NotSame(t, shared, client.httpClient)
	})

	t.Run("with snake casing", func(t *testing.T) {
		client, err := NewClient("http://localhost:8080", logger, WithCasing(CasingSnake))
		require.NoError(t, err)
		assert.Equal(t, CasingSnake, client.Casing())
	})
}

func TestClient_List(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, MoviesPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		io.WriteString(w, `[
			{"id": 1, "title": "Dune", "director": "Villeneuve", "salesMillions": null},
			{"id": "b7f3", "title": "Heat", "lead_actor1": "Pacino", "sales_millions": "187.4", "release_date": "1995-12-15"}
		]`)
	})

	movies, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 2)

	assert.Equal(t, ID("1"), movies[0].ID)
	assert.Equal(t, "Dune", movies[0].Title)
	require.NotNil(t, movies[0].Director)
	assert.Equal(t, "Villeneuve", *movies[0].Director)
	assert.Nil(t, movies[0].SalesMillions)
	assert.Nil(t, movies[0].Genre)

	assert.Equal(t, ID("b7f3"), movies[1].ID)
	require.NotNil(t, movies[1].LeadActor1)
	assert.Equal(t, "Pacino", *movies[1].LeadActor1)
	require.NotNil(t, movies[1].SalesMillions)
	assert.InDelta(t, 187.4, *movies[1].SalesMillions, 0.0001)
	require.NotNil(t, movies[1].ReleaseDate)
	assert.Equal(t, "1995-12-15", *movies[1].ReleaseDate)
}

func TestClient_List_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		check       func(t *testing.T, err error)
	}{
		{
			name:        "server error with HTML body",
			status:      http.StatusInternalServerError,
			contentType: "text/html",
			body:        "<html><body>Internal Server Error</body></html>",
			check: func(t *testing.T, err error) {
				var statusErr *StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
				assert.Contains(t, err.Error(), "500")
				assert.Contains(t, err.Error(), "Internal Server Error")
			},
		},
		{
			name:        "HTML page with success status",
			status:      http.StatusOK,
			contentType: "text/html; charset=utf-8",
			body:        "<!doctype html><html><head><title>SPA</title></head></html>",
			check: func(t *testing.T, err error) {
				var formatErr *FormatError
				require.ErrorAs(t, err, &formatErr)
				assert.Equal(t, "text/html; charset=utf-8", formatErr.ContentType)
				assert.Contains(t, err.Error(), "<!doctype html>")
			},
		},
		{
			name:   "undeclared non-JSON body",
			status: http.StatusOK,
			body:   "<html>oops</html>",
			check: func(t *testing.T, err error) {
				var formatErr *FormatError
				require.ErrorAs(t, err, &formatErr)
				assert.Contains(t, formatErr.ContentType, "text/html")
			},
		},
		{
			name:        "object instead of array",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        `{"error": "nope"}`,
			check: func(t *testing.T, err error) {
				var formatErr *FormatError
				require.ErrorAs(t, err, &formatErr)
			},
		},
		{
			name:        "long body is truncated",
			status:      http.StatusBadGateway,
			contentType: "text/plain",
			body:        strings.Repeat("x", 1000),
			check: func(t *testing.T, err error) {
				var statusErr *StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Len(t, statusErr.Body, maxBodyPreview+len("..."))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			movies, err := client.List(context.Background())
			require.Error(t, err)
			assert.Nil(t, movies)
			tt.check(t, err)
		})
	}
}

func TestClient_Create(t *testing.T) {
	tests := []struct {
		name     string
		casing   Casing
		draft    Draft
		wantKeys map[string]any
	}{
		{
			name:   "camel casing with empty sales",
			casing: CasingCamel,
			draft:  Draft{Title: "Dune", Director: "Villeneuve", SalesMillions: ""},
			wantKeys: map[string]any{
				"title":         "Dune",
				"director":      "Villeneuve",
				"salesMillions": nil,
				"leadActor1":    nil,
				"posterUrl":     nil,
			},
		},
		{
			name:   "snake casing",
			casing: CasingSnake,
			draft:  Draft{Title: "Heat", LeadActor1: "Pacino", ReleaseDate: "1995-12-15", SalesMillions: "187.4"},
			wantKeys: map[string]any{
				"title":          "Heat",
				"lead_actor1":    "Pacino",
				"release_date":   "1995-12-15",
				"sales_millions": 187.4,
				"poster_url":     nil,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sent map[string]any
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, AdminMoviesPath, r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusCreated)
				sent["id"] = 42
				json.NewEncoder(w).Encode(sent)
			}, WithCasing(tt.casing))

			movie, err := client.Create(context.Background(), tt.draft)
			require.NoError(t, err)

			for key, want := range tt.wantKeys {
				got, ok := sent[key]
				require.True(t, ok, "payload missing key %q", key)
				assert.Equal(t, want, got, "key %q", key)
			}

			assert.Equal(t, ID("42"), movie.ID)
			assert.Equal(t, tt.draft.Title, movie.Title)
		})
	}
}

func TestClient_Create_ValidationSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	for _, title := range []string{"", "   ", "\t\n"} {
		movie, err := client.Create(context.Background(), Draft{Title: title, Director: "Someone"})
		require.Error(t, err)
		assert.Nil(t, movie)
		assert.ErrorIs(t, err, ErrValidation)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, FieldTitle, vErr.Field)
	}

	assert.Zero(t, calls.Load())
}

func TestClient_Create_Errors(t *testing.T) {
	t.Run("server rejects", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			io.WriteString(w, `{"error":"title already exists"}`)
		})

		_, err := client.Create(context.Background(), Draft{Title: "Dune"})
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
		assert.Contains(t, err.Error(), "422")
		assert.Contains(t, err.Error(), "title already exists")
	})

	t.Run("empty body falls back to payload", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		movie, err := client.Create(context.Background(), Draft{Title: " Dune ", Genre: "Sci-Fi"})
		require.NoError(t, err)
		assert.Equal(t, "Dune", movie.Title)
		require.NotNil(t, movie.Genre)
		assert.Equal(t, "Sci-Fi", *movie.Genre)
	})
}

func TestClient_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, AdminMoviesPath+"/17", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})

		require.NoError(t, client.Delete(context.Background(), "17"))
	})

	t.Run("not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})

		err := client.Delete(context.Background(), "missing")
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.True(t, statusErr.IsNotFound())
	})

	t.Run("empty id", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		require.Error(t, client.Delete(context.Background(), ""))
	})
}

func TestClient_Token(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[]`)
	}, WithToken("secret"))

	movies, err := client.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestClient_Ping(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, MoviesPath, r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `[{"id": 1, "title": "Dune"}]`)
		})

		require.NoError(t, client.Ping(context.Background()))
	})

	t.Run("server error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		err := client.Ping(context.Background())
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate([]byte("short")))

	// "é" is two bytes, so byte 200 falls inside a rune
	body := []byte("x" + strings.Repeat("é", maxBodyPreview))
	got := truncate(body)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len(got), maxBodyPreview+len("..."))
	assert.Equal(t, "x"+strings.Repeat("é", (maxBodyPreview-1)/2)+"...", got)
}

func TestStatusError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &StatusError{Method: "GET", Path: "/api/movies", StatusCode: 404, Body: "Not Found"}
		assert.Equal(t, "GET /api/movies failed with status 404: Not Found", err.Error())
	})

	t.Run("IsUnauthorized", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{401, true},
			{403, true},
			{404, false},
			{500, false},
		}

		for _, tt := range tests {
			err := &StatusError{StatusCode: tt.code}
			assert.Equal(t, tt.expected, err.IsUnauthorized())
		}
	})

	t.Run("wrapped", func(t *testing.T) {
		err := errors.Join(errors.New("context"), &StatusError{StatusCode: 404})
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.True(t, statusErr.IsNotFound())
	})
}
