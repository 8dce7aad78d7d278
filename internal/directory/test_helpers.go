package directory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"manoscerca.app/internal/geo"
	"manoscerca.app/internal/models"
	"manoscerca.app/internal/store"
)

// countingRecorder is a Recorder that remembers what it was told.
type countingRecorder struct {
	mu            sync.Mutex
	imports       map[string]int
	registrations map[string]int
	lastFilter    int
	lastProviders int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{imports: map[string]int{}, registrations: map[string]int{}}
}

func (r *countingRecorder) RecordImport(source, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.imports[source+":"+result]++
}

func (r *countingRecorder) RecordRegistration(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registrations[result]++
}

func (r *countingRecorder) RecordFilterResult(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = count
}

func (r *countingRecorder) RecordProviders(providers []models.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastProviders = len(providers)
}

// failingStore wraps a MemoryStore and fails writes on demand.
type failingStore struct {
	*store.MemoryStore
	failWrites bool
}

var errDiskFull = errors.New("disk full")

func (s *failingStore) Add(ctx context.Context, p models.Provider) (int64, error) {
	if s.failWrites {
		return 0, &store.WriteError{Op: "add", Err: errDiskFull}
	}
	return s.MemoryStore.Add(ctx, p)
}

func (s *failingStore) Update(ctx context.Context, p models.Provider) error {
	if s.failWrites {
		return &store.WriteError{Op: "update", Err: errDiskFull}
	}
	return s.MemoryStore.Update(ctx, p)
}

func (s *failingStore) Delete(ctx context.Context, id int64) error {
	if s.failWrites {
		return &store.WriteError{Op: "delete", Err: errDiskFull}
	}
	return s.MemoryStore.Delete(ctx, id)
}

// gatedStore pauses GetAll after it has read the records, until release is
// closed. entered is closed once the read has happened.
type gatedStore struct {
	*store.MemoryStore

	armed   bool
	entered chan struct{}
	release chan struct{}
}

func (s *gatedStore) GetAll(ctx context.Context) ([]models.Provider, error) {
	providers, err := s.MemoryStore.GetAll(ctx)
	if s.armed {
		s.armed = false
		close(s.entered)
		<-s.release
	}
	return providers, err
}

func (s *gatedStore) arm() {
	s.armed = true
	s.entered = make(chan struct{})
	s.release = make(chan struct{})
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestDirectory returns a loaded directory over a fresh memory store.
func newTestDirectory(t *testing.T, seed bool) (*Directory, *failingStore, *countingRecorder) {
	t.Helper()

	st := &failingStore{MemoryStore: store.NewMemoryStore()}
	rec := newCountingRecorder()
	d := New(st, testLogger(), Options{
		BaseURL:      "https://manoscerca.example/",
		MapCenter:    geo.Point{Lat: 40.4168, Lng: -3.7038},
		MapZoom:      12,
		ClusterLevel: geo.DefaultClusterLevel,
		Recorder:     rec,
	})
	if err := d.Load(context.Background(), seed); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return d, st, rec
}
