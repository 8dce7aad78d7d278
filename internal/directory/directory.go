// Package directory holds the provider directory's application logic: it
// keeps an in-memory view of the store, runs registrations and imports
// through the validator, and prepares the data the presentation layers
// render (filtered lists, detail views, share links, exports and map data).
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/getsentry/sentry-go"

	"manoscerca.app/internal/geo"
	"manoscerca.app/internal/models"
	"manoscerca.app/internal/report"
	"manoscerca.app/internal/share"
	"manoscerca.app/internal/store"
	"manoscerca.app/internal/utils"
	"manoscerca.app/internal/validation"
)

// Recorder receives directory activity for metrics.
type Recorder interface {
	RecordImport(source, result string)
	RecordRegistration(result string)
	RecordFilterResult(count int)
	RecordProviders(providers []models.Provider)
}

type nopRecorder struct{}

func (nopRecorder) RecordImport(string, string)       {}
func (nopRecorder) RecordRegistration(string)         {}
func (nopRecorder) RecordFilterResult(int)            {}
func (nopRecorder) RecordProviders([]models.Provider) {}

// Options configures a Directory.
type Options struct {
	// BaseURL is used for share links when the caller does not pass one.
	BaseURL      string
	MapCenter    geo.Point
	MapZoom      int
	ClusterLevel int
	Recorder     Recorder
}

// Directory is the provider directory service.
//
// It keeps a mirror of the store contents so list and filter requests do
// not hit the store. Every mutation made through the Directory updates the
// mirror after the store write succeeds. Writes made to the store by other
// processes are only picked up by Reload.
//
// writeMu pairs each store write with its mirror change, and a reload's
// read with its swap. mu guards the mirror; readers only take mu.
type Directory struct {
	Store  store.Store
	Logger *slog.Logger

	opts     Options
	recorder Recorder

	writeMu sync.Mutex

	mu        sync.RWMutex
	providers []models.Provider
	loaded    bool
}

// New creates a Directory on top of st. Call Load before serving requests.
func New(st store.Store, logger *slog.Logger, opts Options) *Directory {
	rec := opts.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}
	if opts.ClusterLevel == 0 {
		opts.ClusterLevel = geo.DefaultClusterLevel
	}
	return &Directory{
		Store:    st,
		Logger:   logger,
		opts:     opts,
		recorder: rec,
	}
}

// Load fills the mirror from the store. When seed is true and the store is
// empty, the sample providers are inserted first.
func (d *Directory) Load(ctx context.Context, seed bool) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	providers, err := d.Store.GetAll(ctx)
	if err != nil {
		d.reportFailure(err, "load", nil)
		return err
	}

	if len(providers) == 0 && seed {
		for _, sample := range SampleProviders() {
			id, err := d.Store.Add(ctx, sample)
			if err != nil {
				d.reportFailure(err, "seed", map[string]interface{}{"name": sample.Name})
				return err
			}
			sample.ID = id
			providers = append(providers, sample)
		}
		d.Logger.Info("seeded sample providers", "count", len(providers))
	}

	d.replaceMirror(providers)
	d.Logger.Info("provider directory loaded", "providers", len(providers))
	return nil
}

// Reload replaces the mirror with the current store contents. Unlike Load
// it does not report failures; the caller decides how to surface them.
func (d *Directory) Reload(ctx context.Context) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	providers, err := d.Store.GetAll(ctx)
	if err != nil {
		return err
	}

	d.replaceMirror(providers)
	d.Logger.Debug("provider directory reloaded", "providers", len(providers))
	return nil
}

func (d *Directory) replaceMirror(providers []models.Provider) {
	d.mu.Lock()
	d.providers = providers
	d.loaded = true
	d.mu.Unlock()

	d.recorder.RecordProviders(providers)
}

// Ready reports whether Load has completed.
func (d *Directory) Ready() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded
}

// Providers returns a copy of the mirrored provider list in insertion order.
func (d *Directory) Providers() []models.Provider {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.providers)
}

// Count returns the number of mirrored providers.
func (d *Directory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.providers)
}

// add stores p and appends it to the mirror.
func (d *Directory) add(ctx context.Context, p models.Provider) (models.Provider, error) {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	id, err := d.Store.Add(ctx, p.WithoutID())
	if err != nil {
		return models.Provider{}, err
	}
	p.ID = id

	d.mu.Lock()
	d.providers = append(d.providers, p)
	snapshot := slices.Clone(d.providers)
	d.mu.Unlock()

	d.recorder.RecordProviders(snapshot)
	return p, nil
}

// Get returns a single provider from the store.
func (d *Directory) Get(ctx context.Context, id int64) (models.Provider, error) {
	p, err := d.Store.Get(ctx, id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		d.reportFailure(err, "get", map[string]interface{}{"provider_id": id})
	}
	return p, err
}

// Update replaces the record with p.ID in the store and the mirror.
func (d *Directory) Update(ctx context.Context, p models.Provider) (models.Provider, error) {
	if p.ID == 0 {
		return models.Provider{}, &store.WriteError{Op: "update", Err: store.ErrMissingID}
	}
	validated, err := validation.ToProvider(models.PayloadFromProvider(p))
	if err != nil {
		return models.Provider{}, err
	}
	validated.ID = p.ID

	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	if err := d.Store.Update(ctx, validated); err != nil {
		d.reportFailure(err, "update", map[string]interface{}{"provider_id": p.ID})
		return models.Provider{}, err
	}

	d.mu.Lock()
	idx := slices.IndexFunc(d.providers, func(m models.Provider) bool { return m.ID == validated.ID })
	if idx >= 0 {
		d.providers[idx] = validated
	} else {
		d.providers = append(d.providers, validated)
	}
	snapshot := slices.Clone(d.providers)
	d.mu.Unlock()

	d.recorder.RecordProviders(snapshot)
	d.Logger.Info("provider updated", "provider_id", validated.ID)
	return validated, nil
}

// Delete removes the provider from the store and the mirror. Unknown ids
// are not an error.
func (d *Directory) Delete(ctx context.Context, id int64) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	if err := d.Store.Delete(ctx, id); err != nil {
		d.reportFailure(err, "delete", map[string]interface{}{"provider_id": id})
		return err
	}

	d.mu.Lock()
	d.providers = slices.DeleteFunc(d.providers, func(m models.Provider) bool { return m.ID == id })
	snapshot := slices.Clone(d.providers)
	d.mu.Unlock()

	d.recorder.RecordProviders(snapshot)
	d.Logger.Info("provider deleted", "provider_id", id)
	return nil
}

// Clear removes every provider.
func (d *Directory) Clear(ctx context.Context) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	if err := d.Store.Clear(ctx); err != nil {
		d.reportFailure(err, "clear", nil)
		return err
	}

	d.mu.Lock()
	d.providers = nil
	d.mu.Unlock()

	d.recorder.RecordProviders(nil)
	d.Logger.Info("provider directory cleared")
	return nil
}

// reportFailure logs err and forwards it to Sentry. Store failures are
// reported as errors, malformed input as warnings, and validation failures
// are only logged.
func (d *Directory) reportFailure(err error, flow string, extra map[string]interface{}) {
	var (
		validationErr *validation.ValidationError
		decodeErr     *share.DecodeError
	)

	switch {
	case errors.As(err, &validationErr):
		d.Logger.Info("rejected provider record", "flow", flow, "missing", validationErr.Missing)
		return
	case errors.As(err, &decodeErr):
		d.Logger.Warn("could not decode provider record", "flow", flow, "error", err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:         utils.MakeMap("flow", flow),
			ExtraContext: extra,
			Level:        sentry.LevelWarning,
		})
		return
	}

	level := sentry.LevelError
	if errors.Is(err, store.ErrStorageUnavailable) {
		level = sentry.LevelFatal
	}
	d.Logger.Error("provider directory operation failed", "flow", flow, "error", err)
	report.ReportErrorWithSentryOptions(fmt.Errorf("%s: %w", flow, err), report.SentryReportOptions{
		Tags:         utils.MakeMap("flow", flow),
		ExtraContext: extra,
		Level:        level,
	})
}
