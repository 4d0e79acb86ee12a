package main

import (
	"net/http"

	"github.com/casaverde/comanda/internal/validation"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJsonError(w, http.StatusNotFound, "not found")
}

// validationFailedResponse reports field-level validation errors so the UI
// can render them next to the offending control.
func (app *application) validationFailedResponse(w http.ResponseWriter, r *http.Request, errs []validation.ValidationError) {
	type envelope struct {
		Errors []validation.ValidationError `json:"errors"`
	}

	if err := writeJson(w, http.StatusUnprocessableEntity, &envelope{Errors: errs}); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)
	writeJsonError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter)
}
