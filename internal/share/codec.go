// Package share turns provider records into portable forms: URL-safe tokens
// embedded in share links, and pretty-printed JSON files.
package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"manoscerca.app/internal/models"
)

// DecodeError reports a share token or file that could not be turned back
// into a record.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Encode serializes p to JSON and returns it as unpadded URL-safe base64.
// The token never contains '+', '/' or '=' and needs no further escaping
// inside a query string.
func Encode(p models.Provider) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode provider: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode reverses Encode.
func Decode(token string) (models.Provider, error) {
	data, err := decodeToken(token)
	if err != nil {
		return models.Provider{}, err
	}

	var p models.Provider
	if err := json.Unmarshal(data, &p); err != nil {
		return models.Provider{}, &DecodeError{Reason: "share token does not contain a provider record", Err: err}
	}
	return p, nil
}

// DecodePayload decodes a token into an untyped payload so that the import
// validator can report every missing field instead of failing on the first
// type mismatch.
func DecodePayload(token string) (models.Payload, error) {
	data, err := decodeToken(token)
	if err != nil {
		return nil, err
	}

	payload, err := models.ParsePayload(data)
	if err != nil {
		return nil, &DecodeError{Reason: "share token does not contain a provider record", Err: err}
	}
	return payload, nil
}

// decodeToken restores the standard alphabet and padding before decoding,
// so tokens produced by encoders that kept the padding are also accepted.
func decodeToken(token string) ([]byte, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, &DecodeError{Reason: "empty share token"}
	}

	std := strings.NewReplacer("-", "+", "_", "/").Replace(token)
	if rem := len(std) % 4; rem != 0 {
		std += strings.Repeat("=", 4-rem)
	}

	data, err := base64.StdEncoding.DecodeString(std)
	if err != nil {
		return nil, &DecodeError{Reason: "share token is not valid base64", Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &DecodeError{Reason: "share token is not UTF-8 text"}
	}
	return data, nil
}
