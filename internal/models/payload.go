package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Payload is an untyped provider record as it arrives from a share link or
// an imported file, before validation. Keys follow the Provider JSON names.
type Payload map[string]any

// ParsePayload decodes a single JSON object. Numbers are kept as
// json.Number so that coordinates are not rounded before validation.
func ParsePayload(data []byte) (Payload, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("record is not UTF-8 text")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var p Payload
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("expected a JSON object, got null")
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after the record object")
	}
	return p, nil
}

// Text returns the trimmed string value of field and whether it is a
// non-empty string.
func (p Payload) Text(field string) (string, bool) {
	v, ok := p[field]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// Number returns the value of field as a finite float64. Both JSON numbers
// and numeric strings are accepted.
func (p Payload) Number(field string) (float64, bool) {
	v, ok := p[field]
	if !ok || v == nil {
		return 0, false
	}

	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Provider coerces the payload into a record the same way the import
// validator does: text is trimmed, numbers may be JSON numbers or numeric
// strings. Fields that are missing or of the wrong type stay empty.
func (p Payload) Provider() Provider {
	var out Provider
	out.Name, _ = p.Text("name")
	out.Email, _ = p.Text("email")
	out.Phone, _ = p.Text("phone")
	out.Category, _ = p.Text("category")
	out.Description, _ = p.Text("description")
	out.Lat, _ = p.Number("lat")
	out.Lng, _ = p.Number("lng")
	if id, ok := p.Number("id"); ok && id == math.Trunc(id) && id > 0 {
		out.ID = int64(id)
	}
	return out
}

// PayloadFromProvider converts a typed record back into a payload.
func PayloadFromProvider(p Provider) Payload {
	payload := Payload{
		"name":        p.Name,
		"email":       p.Email,
		"phone":       p.Phone,
		"category":    p.Category,
		"description": p.Description,
		"lat":         p.Lat,
		"lng":         p.Lng,
	}
	if p.ID != 0 {
		payload["id"] = p.ID
	}
	return payload
}
