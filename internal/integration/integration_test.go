//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"manoscerca.app/internal/app"
	"manoscerca.app/internal/directory"
	"manoscerca.app/internal/store"
	"manoscerca.app/internal/utils"
	"manoscerca.app/internal/validation"
)

var integrationConfig string

func init() {
	flag.StringVar(&integrationConfig, "integration-config", "", "Path to a YAML configuration file for integration tests")
}

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func getCount(t *testing.T, ts *httptest.Server) int {
	t.Helper()

	resp, err := ts.Client().Get(ts.URL + "/v1/providers")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	return body.Count
}

// TestServerPicksUpExternalWrites runs the HTTP service on a SQLite file
// while a second handle on the same file, as the command-line client would
// open it, registers and imports providers.
func TestServerPicksUpExternalWrites(t *testing.T) {
	cfg := loadIntegrationConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := utils.CreateDataDirectory(cfg.DBPath, discardLogger()); err != nil {
		t.Fatal(err)
	}
	serverStore, err := store.OpenSQLite(ctx, cfg.DBPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer serverStore.Close()

	application := app.New(cfg, serverStore, discardLogger(), "integration")
	if err := application.Directory.Load(ctx, true); err != nil {
		t.Fatalf("failed to load directory: %v", err)
	}
	go application.StartMirrorRefresh(ctx, 50*time.Millisecond)

	ts := httptest.NewServer(application.Routes(ctx))
	defer ts.Close()

	if got := getCount(t, ts); got != 4 {
		t.Fatalf("Expected 4 seeded providers, got %d", got)
	}

	cliStore, err := store.OpenSQLite(ctx, cfg.DBPath)
	if err != nil {
		t.Fatalf("failed to open second store: %v", err)
	}
	defer cliStore.Close()

	cli := directory.New(cliStore, discardLogger(), directory.Options{BaseURL: cfg.PublicBaseURL})
	if err := cli.Load(ctx, false); err != nil {
		t.Fatal(err)
	}

	res, err := cli.Register(ctx, validation.Form{
		Name:        "Lucía Pérez",
		Email:       "lucia.perez@email.com",
		Phone:       "+34 656 789 012",
		Category:    "pintura",
		Description: "Pintura de interiores y fachadas.",
		Lat:         "40.4100",
		Lng:         "-3.7000",
	}.Payload())
	if err != nil {
		t.Fatalf("failed to register provider: %v", err)
	}
	if res.Provider.ID != 5 {
		t.Errorf("Expected id 5, got %d", res.Provider.ID)
	}

	link, err := cli.ShareLink(ctx, res.Provider.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(link.Link, cfg.PublicBaseURL) {
		t.Errorf("Expected link under %s, got %s", cfg.PublicBaseURL, link.Link)
	}

	resp, err := ts.Client().Post(ts.URL+"/v1/import/link", "application/json",
		strings.NewReader(`{"link":"`+link.Link+`"}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	deadline := time.Now().Add(2 * time.Second)
	for getCount(t, ts) != 6 {
		if time.Now().After(deadline) {
			t.Fatalf("Expected the server to see 6 providers, got %d", getCount(t, ts))
		}
		time.Sleep(20 * time.Millisecond)
	}
}

// TestReopenKeepsIdentifiers reopens the database and checks that ids are
// not handed out twice after a clear.
func TestReopenKeepsIdentifiers(t *testing.T) {
	cfg := loadIntegrationConfig(t)
	ctx := context.Background()

	if err := utils.CreateDataDirectory(cfg.DBPath, discardLogger()); err != nil {
		t.Fatal(err)
	}

	first, err := store.OpenSQLite(ctx, cfg.DBPath)
	if err != nil {
		t.Fatal(err)
	}
	d := directory.New(first, discardLogger(), directory.Options{})
	if err := d.Load(ctx, true); err != nil {
		t.Fatal(err)
	}
	if err := d.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := store.OpenSQLite(ctx, cfg.DBPath)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	id, err := second.Add(ctx, directory.SampleProviders()[0])
	if err != nil {
		t.Fatal(err)
	}
	if id != 5 {
		t.Errorf("Expected id 5 after clearing four seeded providers, got %d", id)
	}
}
