package app

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"manoscerca.app/internal/directory"
	"manoscerca.app/internal/geo"
	"manoscerca.app/internal/models"
	"manoscerca.app/internal/share"
	"manoscerca.app/internal/validation"
)

// HealthStatus defines the structure of the JSON response returned by the
// application's health check endpoint (/v1/healthcheck).
//
// Fields:
//   - Status: A high-level indicator of service availability (e.g., "available").
//   - Environment: The current environment in which the app is running.
//   - Version: The application version string, useful for deployment tracking.
//   - Storage: The storage engine in use ("sqlite" or "memory").
//   - Providers: The number of providers currently in the directory.
//   - Ready: Whether the directory has been loaded from the store.
type HealthStatus struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
	Storage     string `json:"storage"`
	Providers   int    `json:"providers"`
	Ready       bool   `json:"ready"`
}

// healthcheckHandler responds with a JSON representation of the application's health status.
// Until the directory has been loaded it answers 503 Service Unavailable.
func (app *Application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	ready := app.Directory.Ready()

	status := HealthStatus{
		Status:      "available",
		Environment: app.Config.Env,
		Version:     app.Version,
		Storage:     app.Config.Storage,
		Providers:   app.Directory.Count(),
		Ready:       ready,
	}

	code := http.StatusOK
	if !ready {
		code = http.StatusServiceUnavailable
	}
	if err := writeJSON(w, code, status, nil); err != nil {
		app.Logger.Error("failed to write healthcheck", "error", err)
	}
}

func (app *Application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, envelope{"categories": models.Categories()}, nil); err != nil {
		app.Logger.Error("failed to write categories", "error", err)
	}
}

func (app *Application) listProvidersHandler(w http.ResponseWriter, r *http.Request) {
	spec, from, err := readFilter(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	providers := app.Directory.Filter(spec, from)
	resp := envelope{
		"providers": directory.Listings(providers, from),
		"count":     len(providers),
		"radius":    spec.Radius.String(),
	}
	if err := writeJSON(w, http.StatusOK, resp, nil); err != nil {
		app.Logger.Error("failed to write providers", "error", err)
	}
}

func (app *Application) createProviderHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := readPayload(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	res, err := app.Directory.Register(r.Context(), payload)
	if err != nil {
		app.failedResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", "/v1/providers/"+strconv.FormatInt(res.Provider.ID, 10))
	if err := writeJSON(w, http.StatusCreated, res, headers); err != nil {
		app.Logger.Error("failed to write created provider", "error", err)
	}
}

func (app *Application) showProviderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}
	from, err := geo.ParsePoint(r.URL.Query().Get("lat"), r.URL.Query().Get("lng"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	details, err := app.Directory.Details(r.Context(), id, from)
	if err != nil {
		app.failedResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, envelope{"provider": details}, nil); err != nil {
		app.Logger.Error("failed to write provider", "error", err)
	}
}

func (app *Application) updateProviderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}
	payload, err := readPayload(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	p, err := validation.ToProvider(payload)
	if err != nil {
		app.failedResponse(w, r, err)
		return
	}
	p.ID = id

	updated, err := app.Directory.Update(r.Context(), p)
	if err != nil {
		app.failedResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, envelope{"provider": updated}, nil); err != nil {
		app.Logger.Error("failed to write provider", "error", err)
	}
}

func (app *Application) deleteProviderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}
	if err := app.Directory.Delete(r.Context(), id); err != nil {
		app.failedResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) shareProviderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	link, err := app.Directory.ShareLink(r.Context(), id, r.URL.Query().Get("base"))
	if err != nil {
		app.failedResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, link, nil); err != nil {
		app.Logger.Error("failed to write share link", "error", err)
	}
}

func (app *Application) exportProviderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	file, err := app.Directory.Export(r.Context(), id)
	if err != nil {
		app.failedResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		app.Logger.Error("failed to write export", "error", err, "provider_id", id)
	}
}

// sharePreviewHandler decodes the profile carried by a visited link. The
// page URL may be passed in "url"; otherwise the public base URL is used
// with the "share" token.
func (app *Application) sharePreviewHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	link := qs.Get("url")
	if link == "" {
		token := qs.Get(share.QueryParam)
		if token == "" {
			app.failedResponse(w, r, share.ErrNoShareParam)
			return
		}
		clean, err := share.CleanURL(app.Config.PublicBaseURL)
		if err != nil {
			app.failedResponse(w, r, err)
			return
		}
		link = clean + "?" + share.QueryParam + "=" + token
	}

	preview, err := app.Directory.PreviewShare(link)
	if err != nil {
		app.failedResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, preview, nil); err != nil {
		app.Logger.Error("failed to write share preview", "error", err)
	}
}

func (app *Application) importLinkHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := readPayload(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	link, ok := payload.Text("link")
	if !ok {
		app.badRequestResponse(w, r, errors.New(`body must contain a "link" string`))
		return
	}

	p, err := app.Directory.ImportFromLink(r.Context(), link)
	if err != nil {
		app.failedResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, envelope{"provider": p}, nil); err != nil {
		app.Logger.Error("failed to write imported provider", "error", err)
	}
}

func (app *Application) importFileHandler(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	p, err := app.Directory.ImportFromFile(r.Context(), data)
	if err != nil {
		app.failedResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, envelope{"provider": p}, nil); err != nil {
		app.Logger.Error("failed to write imported provider", "error", err)
	}
}

func (app *Application) mapHandler(w http.ResponseWriter, r *http.Request) {
	spec, from, err := readFilter(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	view := app.Directory.MapView(app.Directory.Filter(spec, from), from)
	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		app.Logger.Error("failed to write map view", "error", err)
	}
}
