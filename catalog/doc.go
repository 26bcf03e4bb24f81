// Package catalog provides a client for the movie catalog REST API.
//
// The catalog backend exposes a public movie listing, two admin endpoints for
// creating and deleting movies, and a users listing. This package wraps those
// calls and normalizes every response into one canonical record type, no
// matter which field-naming convention the server answered with.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := catalog.NewClient(
//		"http://localhost:8080",
//		logger,
//		catalog.WithCasing(catalog.CasingSnake),
//		catalog.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	movies, err := client.List(ctx)
//
// # Error Handling
//
// Three error types describe every failure:
//
//   - ValidationError: a draft failed client-side validation; no request was sent
//   - StatusError: the server answered with a non-success status
//   - FormatError: the server answered with something other than the expected JSON
//
// Status and format errors carry a truncated copy of the response body:
//
//	var statusErr *catalog.StatusError
//	if errors.As(err, &statusErr) && statusErr.IsNotFound() {
//		// Handle missing movie
//	}
package catalog
