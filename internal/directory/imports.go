package directory

import (
	"context"
	"errors"

	"manoscerca.app/internal/models"
	"manoscerca.app/internal/share"
	"manoscerca.app/internal/validation"
)

// Import sources, used as metric labels.
const (
	SourceLink = "link"
	SourceFile = "file"
)

// RegisterResult is a stored registration plus non-fatal remarks about it.
type RegisterResult struct {
	Provider models.Provider `json:"provider"`
	Warnings []string        `json:"warnings,omitempty"`
}

// Register validates a manually entered record and stores it as a new
// provider. Free-text forms are converted with validation.Form.Payload.
func (d *Directory) Register(ctx context.Context, payload models.Payload) (RegisterResult, error) {
	p, err := validation.ToProvider(payload)
	if err != nil {
		d.recorder.RecordRegistration("invalid")
		d.reportFailure(err, "register", nil)
		return RegisterResult{}, err
	}

	stored, err := d.add(ctx, p)
	if err != nil {
		d.recorder.RecordRegistration("store_error")
		d.reportFailure(err, "register", map[string]interface{}{"name": p.Name})
		return RegisterResult{}, err
	}

	d.recorder.RecordRegistration("ok")
	d.Logger.Info("provider registered", "provider_id", stored.ID, "category", stored.Category)
	return RegisterResult{Provider: stored, Warnings: warningsFor(stored)}, nil
}

func warningsFor(p models.Provider) []string {
	var warnings []string
	if !validation.IsValidEmail(p.Email) {
		warnings = append(warnings, "email does not look like a valid address")
	}
	if !models.IsKnownCategory(p.Category) {
		warnings = append(warnings, "unknown category "+p.Category)
	}
	return warnings
}

// Import validates an untyped record and stores it under a new id. Any id
// carried by the payload is discarded.
func (d *Directory) Import(ctx context.Context, source string, payload models.Payload) (models.Provider, error) {
	p, err := validation.ToProvider(payload)
	if err != nil {
		d.recorder.RecordImport(source, "invalid")
		d.reportFailure(err, "import_"+source, nil)
		return models.Provider{}, err
	}

	stored, err := d.add(ctx, p)
	if err != nil {
		d.recorder.RecordImport(source, "store_error")
		d.reportFailure(err, "import_"+source, map[string]interface{}{"name": p.Name})
		return models.Provider{}, err
	}

	d.recorder.RecordImport(source, "ok")
	d.Logger.Info("provider imported", "provider_id", stored.ID, "source", source)
	return stored, nil
}

// ImportFromLink imports the profile carried by a share link.
func (d *Directory) ImportFromLink(ctx context.Context, link string) (models.Provider, error) {
	token, err := share.ParseLink(link)
	if err != nil {
		return models.Provider{}, d.decodeFailed(SourceLink, err)
	}
	payload, err := share.DecodePayload(token)
	if err != nil {
		return models.Provider{}, d.decodeFailed(SourceLink, err)
	}
	return d.Import(ctx, SourceLink, payload)
}

// ImportFromFile imports the profile contained in an exported file.
func (d *Directory) ImportFromFile(ctx context.Context, data []byte) (models.Provider, error) {
	payload, err := share.ParseFile(data)
	if err != nil {
		return models.Provider{}, d.decodeFailed(SourceFile, err)
	}
	return d.Import(ctx, SourceFile, payload)
}

func (d *Directory) decodeFailed(source string, err error) error {
	d.recorder.RecordImport(source, "decode_error")
	if !errors.Is(err, share.ErrNoShareParam) {
		d.reportFailure(err, "import_"+source, nil)
	}
	return err
}

// PreviewShare decodes the profile in a visited link without storing it, so
// the presentation layer can ask for confirmation first.
func (d *Directory) PreviewShare(link string) (share.Preview, error) {
	preview, err := share.PreviewLink(link)
	if err != nil && !errors.Is(err, share.ErrNoShareParam) {
		d.reportFailure(err, "preview", nil)
	}
	return preview, err
}
