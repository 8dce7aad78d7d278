package share

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"manoscerca.app/internal/models"
)

func TestBuildLink(t *testing.T) {
	p := accentedProvider()
	token, err := Encode(p)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	tests := []struct {
		base string
		want string
	}{
		{"https://manoscerca.example/", "https://manoscerca.example/?share=" + token},
		{"https://manoscerca.example/app?share=old&x=1", "https://manoscerca.example/app?share=" + token},
		{"http://localhost:4000/index.html#map", "http://localhost:4000/index.html?share=" + token},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			got, err := BuildLink(tt.base, p)
			if err != nil {
				t.Fatalf("BuildLink failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseLinkRoundTrip(t *testing.T) {
	p := accentedProvider()
	link, err := BuildLink("https://manoscerca.example/", p)
	if err != nil {
		t.Fatalf("BuildLink failed: %v", err)
	}

	token, err := ParseLink(link)
	if err != nil {
		t.Fatalf("ParseLink failed: %v", err)
	}
	got, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLinkWithoutToken(t *testing.T) {
	_, err := ParseLink("https://manoscerca.example/?other=1")
	if !errors.Is(err, ErrNoShareParam) {
		t.Errorf("Expected ErrNoShareParam, got %v", err)
	}

	_, err = ParseLink("http://[::1")
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("Expected DecodeError for malformed link, got %v", err)
	}
}

func TestPreviewLink(t *testing.T) {
	p := accentedProvider()
	link, err := BuildLink("https://manoscerca.example/mapa", p)
	if err != nil {
		t.Fatalf("BuildLink failed: %v", err)
	}

	preview, err := PreviewLink(link)
	if err != nil {
		t.Fatalf("PreviewLink failed: %v", err)
	}
	if preview.CleanURL != "https://manoscerca.example/mapa" {
		t.Errorf("Expected clean url without query, got %q", preview.CleanURL)
	}
	if diff := cmp.Diff(p, preview.Provider); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	loose := base64.RawURLEncoding.EncodeToString([]byte(`{"id":3,"name":" Ana ","email":"ana@email.com","phone":"1","category":"electricidad","description":"x","lat":"40.4198","lng":"-3.7078"}`))
	preview, err = PreviewLink("https://manoscerca.example/?share=" + loose)
	if err != nil {
		t.Fatalf("PreviewLink with numeric strings failed: %v", err)
	}
	want := models.Provider{ID: 3, Name: "Ana", Email: "ana@email.com", Phone: "1", Category: "electricidad", Description: "x", Lat: 40.4198, Lng: -3.7078}
	if diff := cmp.Diff(want, preview.Provider); diff != "" {
		t.Errorf("loose preview mismatch (-want +got):\n%s", diff)
	}

	if _, err := PreviewLink("https://manoscerca.example/?share=%%%"); err == nil {
		t.Error("Expected error for malformed token")
	}
	if _, err := PreviewLink("https://manoscerca.example/?share=" + strings.Repeat("A", 3)); err == nil {
		t.Error("Expected error for token that is not a record")
	}
}
