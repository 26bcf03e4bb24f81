package admin

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/s0up4200/marquee/catalog"
)

var errServer = errors.New("internal server error")

// fakeCatalog implements CatalogAPI over an in-memory list
type fakeCatalog struct {
	mu     sync.Mutex
	movies []catalog.Movie
	nextID int

	listErr   error
	createErr error
	// failDelete makes Delete fail for these IDs
	failDelete map[catalog.ID]error
	// block, when set, is waited on by every Delete
	block chan struct{}

	listCalls   int
	createCalls int
	deleteCalls int
	inFlight    int
	maxInFlight int
}

func newFakeCatalog(titles ...string) *fakeCatalog {
	f := &fakeCatalog{failDelete: map[catalog.ID]error{}}
	for _, title := range titles {
		f.add(title)
	}
	return f
}

func (f *fakeCatalog) add(title string) catalog.Movie {
	f.nextID++
	m := catalog.Movie{ID: catalog.ID(strconv.Itoa(f.nextID)), Title: title}
	f.movies = append(f.movies, m)
	return m
}

func (f *fakeCatalog) List(ctx context.Context) ([]catalog.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]catalog.Movie, len(f.movies))
	copy(out, f.movies)
	return out, nil
}

func (f *fakeCatalog) Create(ctx context.Context, draft catalog.Draft) (*catalog.Movie, error) {
	payload, err := draft.Payload()
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	m := payload.Movie(catalog.ID(strconv.Itoa(f.nextID)))
	f.movies = append(f.movies, m)
	return &m, nil
}

func (f *fakeCatalog) Delete(ctx context.Context, id catalog.ID) error {
	f.mu.Lock()
	f.deleteCalls++
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight--

	if err, ok := f.failDelete[id]; ok {
		return err
	}
	for i, m := range f.movies {
		if m.ID == id {
			f.movies = append(f.movies[:i], f.movies[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeCatalog) titles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, 0, len(f.movies))
	for _, m := range f.movies {
		out = append(out, m.Title)
	}
	return out
}
