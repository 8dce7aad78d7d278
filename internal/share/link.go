package share

import (
	"fmt"
	"net/url"
	"strings"

	"manoscerca.app/internal/models"
)

// QueryParam is the query string key that carries a share token.
const QueryParam = "share"

// ErrNoShareParam is wrapped by ParseLink when the link has no token.
var ErrNoShareParam = &DecodeError{Reason: "link does not contain a profile"}

// CleanURL drops the query string and fragment from raw.
func CleanURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), nil
}

// BuildLink returns "<baseURL without query>?share=<token>" for p.
func BuildLink(baseURL string, p models.Provider) (string, error) {
	base, err := CleanURL(baseURL)
	if err != nil {
		return "", err
	}
	token, err := Encode(p)
	if err != nil {
		return "", err
	}
	return base + "?" + QueryParam + "=" + token, nil
}

// ParseLink extracts the share token from a full link.
func ParseLink(link string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", &DecodeError{Reason: "invalid link", Err: err}
	}
	token := u.Query().Get(QueryParam)
	if token == "" {
		return "", ErrNoShareParam
	}
	return token, nil
}

// Preview is a shared profile found in a visited URL, together with the URL
// the presentation layer should show once the token has been handled.
type Preview struct {
	Provider models.Provider `json:"provider"`
	CleanURL string          `json:"clean_url"`
}

// PreviewLink decodes the profile carried by link without importing it.
func PreviewLink(link string) (Preview, error) {
	token, err := ParseLink(link)
	if err != nil {
		return Preview{}, err
	}
	payload, err := DecodePayload(token)
	if err != nil {
		return Preview{}, err
	}
	p := payload.Provider()
	clean, err := CleanURL(link)
	if err != nil {
		return Preview{}, &DecodeError{Reason: "invalid link", Err: err}
	}
	return Preview{Provider: p, CleanURL: clean}, nil
}
