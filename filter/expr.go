package filter

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/marquee/catalog"
)

// DefaultCacheSize is the number of compiled expressions kept by default
const DefaultCacheSize = 100

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	extra      map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		} else {
			c.cache = nil
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.extra, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		cache: newLRUCache[CompiledFilter](DefaultCacheSize),
		extra: make(map[string]any),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var defaultCompiler = NewExprCompiler()

// Compile compiles an expression with the shared, cached default compiler
func Compile(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// exprCompiler implements CachingCompiler for expr-based filters
type exprCompiler struct {
	cache *lruCache[CompiledFilter]
	extra map[string]any
}

// Compile compiles an expression into an executable filter. Field names are
// checked at compile time, so a typo fails here rather than matching nothing.
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Compile against an empty movie so every field and helper is typed
	program, err := expr.Compile(expression,
		expr.Env(newEnv(catalog.Movie{}, c.extra)),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		extra:      c.extra,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate evaluates the filter against a movie. Runtime errors count as no match.
func (f *exprFilter) Evaluate(movie catalog.Movie) bool {
	result, err := expr.Run(f.program, newEnv(movie, f.extra))
	if err != nil {
		return false
	}

	// Result is guaranteed to be bool due to AsBool() option during compilation
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// addHelperFunctions adds the movie-independent helpers to env
func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["yearsAgo"] = func(years int) time.Time {
		return time.Now().AddDate(-years, 0, 0)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse(catalog.DateLayout, dateStr)
		return t
	}
	// String helpers
	env["hasText"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["hasPrefix"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["hasSuffix"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["now"] = time.Now
}

// newEnv builds the evaluation environment for one movie. Absent optional
// fields show up as zero values; the Has* flags tell them apart.
func newEnv(movie catalog.Movie, extra map[string]any) map[string]any {
	env := make(map[string]any, 32)
	addHelperFunctions(env)

	released, hasRelease := releaseTime(movie.ReleaseDate)
	actors := movie.LeadActors()

	env["ID"] = movie.ID.String()
	env["Title"] = movie.Title
	env["Director"] = value(movie.Director)
	env["Genre"] = value(movie.Genre)
	env["LeadActors"] = actors
	env["PosterURL"] = value(movie.PosterURL)
	env["HasPoster"] = movie.PosterURL != nil && *movie.PosterURL != ""
	env["Released"] = released
	env["HasRelease"] = hasRelease
	env["Sales"] = 0.0
	env["HasSales"] = movie.SalesMillions != nil
	if movie.SalesMillions != nil {
		env["Sales"] = *movie.SalesMillions
	}

	env["starring"] = createStarringFunc(actors)
	env["releasedAfter"] = func(date time.Time) bool {
		return hasRelease && released.After(date)
	}
	env["releasedBefore"] = func(date time.Time) bool {
		return hasRelease && released.Before(date)
	}

	maps.Copy(env, extra)
	return env
}

func createStarringFunc(actors []string) func(string) bool {
	// Pre-convert to lowercase for case-insensitive comparison
	lowerActors := make([]string, len(actors))
	for i, actor := range actors {
		lowerActors[i] = strings.ToLower(actor)
	}
	return func(name string) bool {
		return slices.Contains(lowerActors, strings.ToLower(name))
	}
}

// releaseTime parses a release date in either date-only or RFC 3339 form
func releaseTime(s *string) (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	for _, layout := range []string{catalog.DateLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, *s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
