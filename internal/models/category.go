package models

// Category codes are the short identifiers persisted with each provider and
// embedded in share links. They must stay stable for old links to import.
const (
	CategoryPlumbing      = "gasfiteria"
	CategoryCarpentry     = "carpinteria"
	CategoryElectrical    = "electricidad"
	CategoryGardening     = "jardineria"
	CategoryGeneralRepair = "reparacion"
	CategoryElectronics   = "electronica"
	CategoryPainting      = "pintura"
	CategoryMechanics     = "mecanica"
)

// Category pairs a code with its display label.
type Category struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

var categories = []Category{
	{Code: CategoryPlumbing, Label: "Gasfitería"},
	{Code: CategoryCarpentry, Label: "Carpintería"},
	{Code: CategoryElectrical, Label: "Electricidad"},
	{Code: CategoryGardening, Label: "Jardinería"},
	{Code: CategoryGeneralRepair, Label: "Reparaciones generales"},
	{Code: CategoryElectronics, Label: "Electrónica"},
	{Code: CategoryPainting, Label: "Pintura"},
	{Code: CategoryMechanics, Label: "Mecánica"},
}

// Categories returns the fixed category table in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// CategoryLabel returns the label for code, or the code itself when it is
// not one of the known categories.
func CategoryLabel(code string) string {
	for _, c := range categories {
		if c.Code == code {
			return c.Label
		}
	}
	return code
}

// IsKnownCategory reports whether code belongs to the category table.
func IsKnownCategory(code string) bool {
	for _, c := range categories {
		if c.Code == code {
			return true
		}
	}
	return false
}
