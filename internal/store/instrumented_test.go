package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
}

func (o *recordingObserver) ObserveStoreOperation(operation, status string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, operation+":"+status)
}

func TestInstrumentReportsOperations(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	s := Instrument(NewMemoryStore(), obs)

	id, err := s.Add(ctx, sampleProvider("Ana López"))
	require.NoError(t, err)
	_, err = s.Get(ctx, id)
	require.NoError(t, err)
	_, err = s.Get(ctx, id+1)
	require.ErrorIs(t, err, ErrNotFound)
	require.Error(t, s.Update(ctx, sampleProvider("no id")))
	_, err = s.GetAll(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, id))
	require.NoError(t, s.Clear(ctx))

	require.Equal(t, []string{
		"add:ok",
		"get:ok",
		"get:not_found",
		"update:error",
		"get_all:ok",
		"delete:ok",
		"clear:ok",
	}, obs.calls)
}

func TestInstrumentNilObserver(t *testing.T) {
	s := NewMemoryStore()
	require.Same(t, s, Instrument(s, nil))
}
