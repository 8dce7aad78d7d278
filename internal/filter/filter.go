// Package filter narrows the provider list by category, keyword and
// distance from the user.
package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"manoscerca.app/internal/geo"
	"manoscerca.app/internal/models"
)

// RadiusAll is the textual radius that disables distance filtering.
const RadiusAll = "all"

// Radius is either unlimited or a distance in kilometers.
type Radius struct {
	km      float64
	limited bool
}

// AllRadius returns a radius that does not restrict results.
func AllRadius() Radius { return Radius{} }

// KmRadius returns a radius of km kilometers.
func KmRadius(km float64) Radius { return Radius{km: km, limited: true} }

// ParseRadius accepts "all", an empty string (treated as "all") or a number
// of kilometers.
func ParseRadius(s string) (Radius, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, RadiusAll) {
		return AllRadius(), nil
	}
	km, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Radius{}, fmt.Errorf("invalid radius %q: expected %q or kilometers", s, RadiusAll)
	}
	if math.IsNaN(km) || math.IsInf(km, 0) {
		return Radius{}, fmt.Errorf("invalid radius %q: must be a finite number of kilometers", s)
	}
	if km < 0 {
		return Radius{}, fmt.Errorf("invalid radius %q: must not be negative", s)
	}
	return KmRadius(km), nil
}

// IsAll reports whether the radius is unlimited.
func (r Radius) IsAll() bool { return !r.limited }

// Kilometers returns the radius in kilometers. It is zero for "all".
func (r Radius) Kilometers() float64 { return r.km }

func (r Radius) String() string {
	if !r.limited {
		return RadiusAll
	}
	return strconv.FormatFloat(r.km, 'f', -1, 64)
}

// Spec describes the active filters. The zero value matches everything.
type Spec struct {
	// Categories restricts results to these codes. Empty means any category.
	Categories []string
	Radius     Radius
	// Keyword is matched case-insensitively against name and description.
	Keyword string
}

// Apply returns the providers that pass every active filter, in input
// order. from is the user's location; nil disables the radius filter.
func Apply(providers []models.Provider, spec Spec, from *geo.Point) []models.Provider {
	// A Caser holds state and cannot be shared between goroutines.
	fold := cases.Fold()
	categories := make(map[string]struct{}, len(spec.Categories))
	for _, c := range spec.Categories {
		categories[c] = struct{}{}
	}
	keyword := fold.String(spec.Keyword)
	useRadius := from != nil && !spec.Radius.IsAll()

	out := make([]models.Provider, 0, len(providers))
	for _, p := range providers {
		if len(categories) > 0 {
			if _, ok := categories[p.Category]; !ok {
				continue
			}
		}

		if keyword != "" &&
			!strings.Contains(fold.String(p.Name), keyword) &&
			!strings.Contains(fold.String(p.Description), keyword) {
			continue
		}

		if useRadius {
			d := geo.Between(from.Lat, from.Lng, p.Lat, p.Lng)
			if d.Kilometers() > spec.Radius.Kilometers() {
				continue
			}
		}

		out = append(out, p)
	}
	return out
}
