package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"manoscerca.app/internal/config"
	"manoscerca.app/internal/store"
)

// newTestApplication returns an application over a seeded memory store.
func newTestApplication(t *testing.T) *Application {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Env = "testing"
	cfg.Storage = config.StorageMemory
	cfg.PublicBaseURL = "https://manoscerca.example/"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := New(cfg, store.NewMemoryStore(), logger, "test-version")
	if err := app.Directory.Load(context.Background(), true); err != nil {
		t.Fatalf("failed to load directory: %v", err)
	}
	return app
}

// newTestServer serves the application's routes for the duration of the test.
func newTestServer(t *testing.T, app *Application) *httptest.Server {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	ts := httptest.NewServer(app.Routes(ctx))
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return ts
}

type testResponse struct {
	status int
	header http.Header
	body   []byte
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, body []byte) testResponse {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatal(err)
	}

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return testResponse{status: resp.StatusCode, header: resp.Header, body: data}
}

func decodeJSON(t *testing.T, data []byte, dst any) {
	t.Helper()
	if err := json.Unmarshal(data, dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", data, err)
	}
}
