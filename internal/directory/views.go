package directory

import (
	"context"

	"manoscerca.app/internal/filter"
	"manoscerca.app/internal/geo"
	"manoscerca.app/internal/models"
	"manoscerca.app/internal/share"
	"manoscerca.app/internal/validation"
)

// Filter applies spec to the mirrored providers.
func (d *Directory) Filter(spec filter.Spec, from *geo.Point) []models.Provider {
	result := filter.Apply(d.Providers(), spec, from)
	d.recorder.RecordFilterResult(len(result))
	return result
}

// Listing is a provider as shown in the result list.
type Listing struct {
	models.Provider
	CategoryLabel string `json:"category_label"`
	DistanceText  string `json:"distance_text"`
}

// Listings decorates providers with their category label and distance.
func Listings(providers []models.Provider, from *geo.Point) []Listing {
	out := make([]Listing, 0, len(providers))
	for _, p := range providers {
		out = append(out, Listing{
			Provider:      p,
			CategoryLabel: p.CategoryLabel(),
			DistanceText:  geo.Text(from, p.Lat, p.Lng),
		})
	}
	return out
}

// Details is the contact card for one provider.
type Details struct {
	Listing
	FormattedPhone string `json:"formatted_phone"`
}

// Details returns the contact card for the provider with the given id.
func (d *Directory) Details(ctx context.Context, id int64, from *geo.Point) (Details, error) {
	p, err := d.Get(ctx, id)
	if err != nil {
		return Details{}, err
	}
	return Details{
		Listing:        Listings([]models.Provider{p}, from)[0],
		FormattedPhone: validation.FormatPhoneNumber(p.Phone),
	}, nil
}

// ShareLink is a generated share token and the link that embeds it.
type ShareLink struct {
	Token string `json:"token"`
	Link  string `json:"link"`
}

// ShareLink builds a share link for the provider. An empty baseURL falls
// back to the configured public URL.
func (d *Directory) ShareLink(ctx context.Context, id int64, baseURL string) (ShareLink, error) {
	p, err := d.Get(ctx, id)
	if err != nil {
		return ShareLink{}, err
	}
	if baseURL == "" {
		baseURL = d.opts.BaseURL
	}

	token, err := share.Encode(p)
	if err != nil {
		return ShareLink{}, err
	}
	link, err := share.BuildLink(baseURL, p)
	if err != nil {
		return ShareLink{}, err
	}
	d.Logger.Info("share link generated", "provider_id", id)
	return ShareLink{Token: token, Link: link}, nil
}

// ExportedFile is a provider profile rendered for download.
type ExportedFile struct {
	Name string
	Data []byte
}

// Export renders the provider as a downloadable JSON file.
func (d *Directory) Export(ctx context.Context, id int64) (ExportedFile, error) {
	p, err := d.Get(ctx, id)
	if err != nil {
		return ExportedFile{}, err
	}
	data, err := share.ExportFile(p)
	if err != nil {
		return ExportedFile{}, err
	}
	return ExportedFile{Name: share.FileName(p), Data: data}, nil
}

// MapView is what the map needs to draw a set of providers.
type MapView struct {
	Center   geo.Point        `json:"center"`
	Zoom     int              `json:"zoom"`
	Bounds   *geo.BoundingBox `json:"bounds,omitempty"`
	Clusters []geo.Cluster    `json:"clusters"`
	Markers  []Listing        `json:"markers"`
}

// MapView prepares map data for providers, normally the current filter
// result. The configured center and zoom are used as the initial view.
func (d *Directory) MapView(providers []models.Provider, from *geo.Point) MapView {
	view := MapView{
		Center:   d.opts.MapCenter,
		Zoom:     d.opts.MapZoom,
		Clusters: geo.Clusters(providers, d.opts.ClusterLevel),
		Markers:  Listings(providers, from),
	}
	if bbox, err := geo.ComputeBoundingBox(providers); err == nil {
		view.Bounds = &bbox
	}
	return view
}
