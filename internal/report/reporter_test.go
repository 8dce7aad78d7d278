package report

import (
	"errors"
	"sync"
	"testing"

	"github.com/getsentry/sentry-go"
)

// captureEvents points the global hub at a client that records events
// instead of sending them.
func captureEvents(t *testing.T) func() []*sentry.Event {
	t.Helper()

	var (
		mu     sync.Mutex
		events []*sentry.Event
	)
	err := sentry.Init(sentry.ClientOptions{
		Dsn: "https://public@sentry.example.com/1",
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			mu.Lock()
			events = append(events, event)
			mu.Unlock()
			return nil
		},
	})
	if err != nil {
		t.Fatalf("failed to init sentry: %v", err)
	}
	t.Cleanup(func() { _ = sentry.Init(sentry.ClientOptions{}) })

	return func() []*sentry.Event {
		mu.Lock()
		defer mu.Unlock()
		return append([]*sentry.Event(nil), events...)
	}
}

func TestReportErrorWithSentryOptions(t *testing.T) {
	events := captureEvents(t)
	ConfigureScope("test", "1.2.3")

	ReportErrorWithSentryOptions(errors.New("write failed"), SentryReportOptions{
		Tags:         map[string]string{"flow": "register"},
		ExtraContext: map[string]interface{}{"provider_id": int64(7)},
		Level:        sentry.LevelWarning,
	})
	ReportErrorWithSentryOptions(nil, SentryReportOptions{})

	got := events()
	if len(got) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(got))
	}
	ev := got[0]

	if ev.Level != sentry.LevelWarning {
		t.Errorf("Expected level warning, got %s", ev.Level)
	}
	if ev.Tags["flow"] != "register" || ev.Tags["service"] != "manoscerca" || ev.Tags["app_version"] != "1.2.3" {
		t.Errorf("unexpected tags %v", ev.Tags)
	}
	if ev.Contexts["directory"]["provider_id"] != int64(7) {
		t.Errorf("Expected provider_id in directory context, got %v", ev.Contexts["directory"])
	}
	if len(ev.Fingerprint) != 2 || ev.Fingerprint[1] != "register" {
		t.Errorf("Expected fingerprint grouped by flow, got %v", ev.Fingerprint)
	}
}

func TestReportErrorDefaultsToErrorLevel(t *testing.T) {
	events := captureEvents(t)

	ReportError(errors.New("boom"))
	ReportError(errors.New("down"), sentry.LevelFatal)

	got := events()
	if len(got) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(got))
	}
	if got[0].Level != sentry.LevelError {
		t.Errorf("Expected level error, got %s", got[0].Level)
	}
	if got[1].Level != sentry.LevelFatal {
		t.Errorf("Expected level fatal, got %s", got[1].Level)
	}
	if len(got[0].Fingerprint) != 0 {
		t.Errorf("Expected default grouping, got %v", got[0].Fingerprint)
	}
}
