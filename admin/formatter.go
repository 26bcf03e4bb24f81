package admin

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/s0up4200/marquee/catalog"
)

// Output formats accepted by Encode
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// EmptyListMessage is rendered instead of rows when the catalog is empty
const EmptyListMessage = "No movies in the catalog."

// ConsoleFormatter provides console output formatting for movies
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatView renders exactly one of the loading, error or loaded states
func (f *ConsoleFormatter) FormatView(view View) string {
	switch view.State {
	case ViewLoading:
		return "Loading movies...\n"
	case ViewError:
		return fmt.Sprintf("Error: %s\n", view.Error)
	default:
		return f.FormatMovieTable(view.Movies)
	}
}

// FormatMovieTable renders movies as a table, or a placeholder when there are none
func (f *ConsoleFormatter) FormatMovieTable(movies []catalog.Movie) string {
	if len(movies) == 0 {
		return EmptyListMessage + "\n"
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "DIRECTOR", "GENRE", "LEAD ACTORS", "RELEASED", "SALES ($M)")

	for _, m := range movies {
		t.Row(
			m.ID.String(),
			m.Title,
			deref(m.Director),
			deref(m.Genre),
			strings.Join(m.LeadActors(), ", "),
			formatDate(m.ReleaseDate),
			formatSales(m.SalesMillions),
		)
	}

	var sb strings.Builder
	sb.WriteString(t.String())
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%d movie", len(movies))
	if len(movies) != 1 {
		sb.WriteString("s")
	}
	sb.WriteString("\n")
	return sb.String()
}

// FormatMoviesToDelete formats movies for deletion confirmation
func (f *ConsoleFormatter) FormatMoviesToDelete(movies []catalog.Movie) string {
	if len(movies) == 0 {
		return ""
	}

	var sb strings.Builder

	// Header
	sb.WriteString("\nMovie")
	if len(movies) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " to be deleted (%d):\n\n", len(movies))

	for i, movie := range movies {
		isLast := i == len(movies)-1
		prefix := "├"
		if isLast {
			prefix = "╰"
		}

		fmt.Fprintf(&sb, "%s── %s", prefix, movie.Title)
		if movie.ReleaseDate != nil {
			fmt.Fprintf(&sb, " (%s)", formatDate(movie.ReleaseDate))
		}
		fmt.Fprintf(&sb, " [ID: %s]\n", movie.ID)

		indent := "│   "
		if isLast {
			indent = "    "
		}

		if movie.Director != nil {
			fmt.Fprintf(&sb, "%sDirector: %s\n", indent, *movie.Director)
		}
		if actors := movie.LeadActors(); len(actors) > 0 {
			fmt.Fprintf(&sb, "%sStarring: %s\n", indent, strings.Join(actors, ", "))
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatUsers renders users as a table
func (f *ConsoleFormatter) FormatUsers(users []catalog.User) string {
	if len(users) == 0 {
		return "No registered users.\n"
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "EMAIL", "ROLE", "STATUS", "CREATED")

	for _, u := range users {
		created := ""
		if !u.CreatedAt.IsZero() {
			created = u.CreatedAt.Format("2006-01-02 15:04")
		}
		t.Row(u.ID.String(), u.GetDisplayName(), u.Email, u.Role, u.Status, created)
	}

	return t.String() + "\n"
}

// Encode writes data as JSON or YAML; text is used for the table format
func Encode(w io.Writer, format string, data any, text string) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	case OutputTable, "":
		_, err := io.WriteString(w, text)
		return err
	default:
		return fmt.Errorf("unknown output format: %s (must be table, json or yaml)", format)
	}
}

// SortByTitle sorts movies by title using the collation rules of lang
func SortByTitle(movies []catalog.Movie, lang language.Tag) {
	c := collate.New(lang, collate.IgnoreCase, collate.Loose)
	slices.SortStableFunc(movies, func(a, b catalog.Movie) int {
		return c.CompareString(a.Title, b.Title)
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// formatDate shows the date part of a release date, whatever precision the server sent
func formatDate(s *string) string {
	if s == nil {
		return ""
	}
	if t, err := time.Parse(time.RFC3339Nano, *s); err == nil {
		return t.Format(catalog.DateLayout)
	}
	return *s
}

func formatSales(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
