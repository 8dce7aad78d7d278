package share

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"manoscerca.app/internal/models"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// FileName returns the download name for an exported profile,
// e.g. "perfil-María-González.json".
func FileName(p models.Provider) string {
	return "perfil-" + whitespaceRun.ReplaceAllString(p.Name, "-") + ".json"
}

// ExportFile renders p as pretty-printed JSON with two-space indentation.
func ExportFile(p models.Provider) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export provider: %w", err)
	}
	return data, nil
}

// ParseFile reads the contents of an exported file as a payload for the
// import validator.
func ParseFile(data []byte) (models.Payload, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, &DecodeError{Reason: "file is empty"}
	}
	payload, err := models.ParsePayload(data)
	if err != nil {
		return nil, &DecodeError{Reason: "file does not contain a provider record", Err: err}
	}
	return payload, nil
}
