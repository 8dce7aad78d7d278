// Package validation checks provider payloads before they reach the store.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"manoscerca.app/internal/models"
)

// RequiredFields lists the fields every record must carry, in the order
// missing fields are reported.
var RequiredFields = []string{"name", "email", "phone", "category", "lat", "lng", "description"}

var numericFields = map[string]bool{"lat": true, "lng": true}

// ValidationError lists the required fields that were missing or invalid.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Missing returns the required fields that are absent from payload, empty
// after trimming, or (for coordinates) not finite numbers. The result
// follows RequiredFields order and is empty when the payload is complete.
func Missing(payload models.Payload) []string {
	missing := []string{}
	for _, field := range RequiredFields {
		var ok bool
		if numericFields[field] {
			_, ok = payload.Number(field)
		} else {
			_, ok = payload.Text(field)
		}
		if !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

// Validate returns a *ValidationError when payload lacks required fields.
func Validate(payload models.Payload) error {
	if missing := Missing(payload); len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// ToProvider validates payload and converts it into a record ready for
// insertion. Text fields are trimmed and any incoming id is discarded so
// that the store alone decides identity.
func ToProvider(payload models.Payload) (models.Provider, error) {
	if err := Validate(payload); err != nil {
		return models.Provider{}, err
	}

	p := payload.Provider()
	p.ID = 0
	return p, nil
}

// Form is the free-text registration form as typed by a user.
type Form struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Lat         string `json:"lat"`
	Lng         string `json:"lng"`
}

// Payload converts the form into a payload for validation.
func (f Form) Payload() models.Payload {
	return models.Payload{
		"name":        f.Name,
		"email":       f.Email,
		"phone":       f.Phone,
		"category":    f.Category,
		"description": f.Description,
		"lat":         f.Lat,
		"lng":         f.Lng,
	}
}

var validate = validator.New()

// IsValidEmail reports whether email looks like an address. It is only used
// for warnings; records with odd emails are still accepted.
func IsValidEmail(email string) bool {
	return validate.Var(strings.TrimSpace(email), "required,email") == nil
}

var nonDigits = regexp.MustCompile(`\D`)

// FormatPhoneNumber renders an 11-digit number as "+CC XXX XXX XXX".
// Any other input is returned unchanged.
func FormatPhoneNumber(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	if len(digits) != 11 {
		return phone
	}
	return fmt.Sprintf("+%s %s %s %s", digits[0:2], digits[2:5], digits[5:8], digits[8:11])
}
