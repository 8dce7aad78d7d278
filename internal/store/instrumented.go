package store

import (
	"context"
	"errors"
	"time"

	"manoscerca.app/internal/models"
)

// Observer receives the duration and outcome of every store operation.
type Observer interface {
	ObserveStoreOperation(operation, status string, duration time.Duration)
}

// instrumentedStore wraps another Store and reports each call to an
// Observer without changing its behavior.
type instrumentedStore struct {
	next Store
	obs  Observer
}

// Instrument returns a Store that reports operation latency to obs.
// A nil obs returns next unchanged.
func Instrument(next Store, obs Observer) Store {
	if obs == nil {
		return next
	}
	return &instrumentedStore{next: next, obs: obs}
}

func (s *instrumentedStore) observe(op string, start time.Time, err error) {
	status := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		status = "not_found"
	case err != nil:
		status = "error"
	}
	s.obs.ObserveStoreOperation(op, status, time.Since(start))
}

func (s *instrumentedStore) Add(ctx context.Context, p models.Provider) (id int64, err error) {
	defer func(start time.Time) { s.observe("add", start, err) }(time.Now())
	return s.next.Add(ctx, p)
}

func (s *instrumentedStore) GetAll(ctx context.Context) (ps []models.Provider, err error) {
	defer func(start time.Time) { s.observe("get_all", start, err) }(time.Now())
	return s.next.GetAll(ctx)
}

func (s *instrumentedStore) Get(ctx context.Context, id int64) (p models.Provider, err error) {
	defer func(start time.Time) { s.observe("get", start, err) }(time.Now())
	return s.next.Get(ctx, id)
}

func (s *instrumentedStore) Update(ctx context.Context, p models.Provider) (err error) {
	defer func(start time.Time) { s.observe("update", start, err) }(time.Now())
	return s.next.Update(ctx, p)
}

func (s *instrumentedStore) Delete(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { s.observe("delete", start, err) }(time.Now())
	return s.next.Delete(ctx, id)
}

func (s *instrumentedStore) Clear(ctx context.Context) (err error) {
	defer func(start time.Time) { s.observe("clear", start, err) }(time.Now())
	return s.next.Clear(ctx)
}

func (s *instrumentedStore) Close() error {
	return s.next.Close()
}
