package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"manoscerca.app/internal/filter"
	"manoscerca.app/internal/geo"
	"manoscerca.app/internal/models"
)

// maxBodyBytes bounds request bodies, including imported files.
const maxBodyBytes = 1 << 20

type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

// readPayload decodes a single JSON object from the request body, keeping
// numbers as json.Number.
func readPayload(w http.ResponseWriter, r *http.Request) (models.Payload, error) {
	data, err := readBody(w, r)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, errors.New("body must not be empty")
	}
	payload, err := models.ParsePayload(data)
	if err != nil {
		return nil, fmt.Errorf("body must be a single JSON object: %w", err)
	}
	return payload, nil
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("body must not be larger than %d bytes", maxErr.Limit)
		}
		return nil, err
	}
	return data, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id parameter %q", s)
	}
	return id, nil
}

// readFilter parses the filter query parameters: category (repeatable or
// comma separated), radius ("all" or km), q, lat and lng.
func readFilter(r *http.Request) (filter.Spec, *geo.Point, error) {
	qs := r.URL.Query()

	var categories []string
	for _, v := range qs["category"] {
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				categories = append(categories, c)
			}
		}
	}

	radius, err := filter.ParseRadius(qs.Get("radius"))
	if err != nil {
		return filter.Spec{}, nil, err
	}

	from, err := geo.ParsePoint(qs.Get("lat"), qs.Get("lng"))
	if err != nil {
		return filter.Spec{}, nil, err
	}

	return filter.Spec{Categories: categories, Radius: radius, Keyword: qs.Get("q")}, from, nil
}
