package app

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"manoscerca.app/internal/share"
	"manoscerca.app/internal/store"
	"manoscerca.app/internal/validation"
)

// Error kinds reported in the JSON error envelope.
const (
	kindValidation  = "validation"
	kindDecode      = "decode"
	kindNotFound    = "not_found"
	kindBadRequest  = "bad_request"
	kindRead        = "read"
	kindWrite       = "write"
	kindUnavailable = "storage_unavailable"
	kindInternal    = "internal"
)

type errorBody struct {
	Kind    string   `json:"kind"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// classify maps an error from the directory to an HTTP status and envelope.
func classify(err error) (int, errorBody) {
	var (
		validationErr *validation.ValidationError
		decodeErr     *share.DecodeError
		readErr       *store.ReadError
		writeErr      *store.WriteError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, errorBody{Kind: kindValidation, Message: err.Error(), Fields: validationErr.Missing}
	case errors.As(err, &decodeErr):
		return http.StatusBadRequest, errorBody{Kind: kindDecode, Message: err.Error()}
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, errorBody{Kind: kindNotFound, Message: "provider not found"}
	case errors.Is(err, store.ErrMissingID):
		return http.StatusBadRequest, errorBody{Kind: kindBadRequest, Message: err.Error()}
	case errors.Is(err, store.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, errorBody{Kind: kindUnavailable, Message: "storage is unavailable"}
	case errors.As(err, &readErr):
		return http.StatusInternalServerError, errorBody{Kind: kindRead, Message: "could not read providers"}
	case errors.As(err, &writeErr):
		return http.StatusInternalServerError, errorBody{Kind: kindWrite, Message: "could not save provider"}
	default:
		return http.StatusInternalServerError, errorBody{Kind: kindInternal, Message: "the server encountered a problem and could not process your request"}
	}
}

func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, body errorBody) {
	if err := writeJSON(w, status, errorEnvelope{Error: body}, nil); err != nil {
		app.Logger.Error("failed to write error response", "error", err, "method", r.Method, "uri", r.URL.RequestURI())
	}
}

// failedResponse reports err from a directory call. The directory has
// already logged and reported it.
func (app *Application) failedResponse(w http.ResponseWriter, r *http.Request, err error) {
	status, body := classify(err)
	app.errorResponse(w, r, status, body)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, errorBody{Kind: kindBadRequest, Message: err.Error()})
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, errorBody{Kind: kindNotFound, Message: "the requested resource could not be found"})
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, errorBody{Kind: kindBadRequest, Message: "the " + r.Method + " method is not supported for this resource"})
}

func readIDParam(r *http.Request) (int64, error) {
	return parseID(httprouter.ParamsFromContext(r.Context()).ByName("id"))
}
