package models

// Provider is a registered local service professional.
//
// ID is assigned by the store on creation. A zero ID means the record has
// not been persisted yet, and it is omitted from JSON so that freshly built
// records never carry a client-supplied identifier.
type Provider struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

// CategoryLabel returns the display label for the provider's category.
func (p Provider) CategoryLabel() string {
	return CategoryLabel(p.Category)
}

// WithoutID returns a copy of the provider with its identifier cleared.
func (p Provider) WithoutID() Provider {
	p.ID = 0
	return p
}
