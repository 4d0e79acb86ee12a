package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/casaverde/comanda/internal/submit"
	"github.com/go-chi/chi"
)

// addOrUpdateDraftHandler godoc
//
//	@Summary		Finalize the in-progress draft
//	@Description	Validates, prices and stores the in-progress draft. In edit mode the edited entry is replaced in place.
//	@Tags			drafts
//	@Produce		json
//	@Param			session_id	path		string	true	"Session ID"
//	@Success		201			{object}	domain.DraftOrder
//	@Failure		404			{object}	error
//	@Failure		422			{object}	error
//	@Router			/sessions/{session_id}/drafts [post]
func (app *application) addOrUpdateDraftHandler(w http.ResponseWriter, r *http.Request) {
	draft, validationErrs, err := app.sessions.AddOrUpdateDraft(chi.URLParam(r, "session_id"))
	if err != nil {
		app.sessionError(w, r, err)
		return
	}

	if len(validationErrs) > 0 {
		app.validationFailedResponse(w, r, validationErrs)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, draft); err != nil {
		app.internalServerError(w, r, err)
	}
}

// editDraftHandler godoc
//
//	@Summary		Edit a stored draft
//	@Description	Copies a stored draft back into the in-progress selection for modification
//	@Tags			drafts
//	@Param			session_id	path	string	true	"Session ID"
//	@Param			index		path	int		true	"Draft index"
//	@Success		204
//	@Failure		400	{object}	error
//	@Failure		404	{object}	error
//	@Router			/sessions/{session_id}/drafts/{index}/edit [post]
func (app *application) editDraftHandler(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.sessions.EditDraft(chi.URLParam(r, "session_id"), index); err != nil {
		app.sessionError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// duplicateDraftHandler godoc
//
//	@Summary		Duplicate a stored draft
//	@Description	Appends a copy of a stored draft with a fresh identity
//	@Tags			drafts
//	@Produce		json
//	@Param			session_id	path		string	true	"Session ID"
//	@Param			index		path		int		true	"Draft index"
//	@Success		201			{object}	domain.DraftOrder
//	@Failure		400			{object}	error
//	@Failure		404			{object}	error
//	@Router			/sessions/{session_id}/drafts/{index}/duplicate [post]
func (app *application) duplicateDraftHandler(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	draft, err := app.sessions.DuplicateDraft(chi.URLParam(r, "session_id"), index)
	if err != nil {
		app.sessionError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, draft); err != nil {
		app.internalServerError(w, r, err)
	}
}

// removeDraftHandler godoc
//
//	@Summary		Remove a stored draft
//	@Description	Deletes a draft from the session
//	@Tags			drafts
//	@Param			session_id	path	string	true	"Session ID"
//	@Param			index		path	int		true	"Draft index"
//	@Success		204
//	@Failure		400	{object}	error
//	@Failure		404	{object}	error
//	@Router			/sessions/{session_id}/drafts/{index} [delete]
func (app *application) removeDraftHandler(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.sessions.RemoveDraft(chi.URLParam(r, "session_id"), index); err != nil {
		app.sessionError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// confirmSessionHandler godoc
//
//	@Summary		Confirm the session
//	@Description	Submits every pending draft concurrently. Accepted drafts are removed, failed ones stay with their error; on full success the session is destroyed.
//	@Tags			drafts
//	@Produce		json
//	@Param			session_id	path		string	true	"Session ID"
//	@Success		200			{object}	submit.Report
//	@Failure		400			{object}	error
//	@Failure		404			{object}	error
//	@Router			/sessions/{session_id}/confirm [post]
func (app *application) confirmSessionHandler(w http.ResponseWriter, r *http.Request) {
	report, err := app.coordinator.Confirm(r.Context(), chi.URLParam(r, "session_id"))
	if err != nil {
		switch {
		case errors.Is(err, submit.ErrNoDrafts), errors.Is(err, submit.ErrTableRequired):
			app.badRequestResponse(w, r, err)
		default:
			app.sessionError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, report); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getSessionAuditHandler godoc
//
//	@Summary		Get the submission audit trail
//	@Description	Returns the recorded submission outcomes for a session
//	@Tags			drafts
//	@Produce		json
//	@Param			session_id	path		string	true	"Session ID"
//	@Param			limit		query		int		false	"Maximum records to return"
//	@Success		200			{array}		domain.SubmissionRecord
//	@Failure		500			{object}	error
//	@Router			/sessions/{session_id}/audit [get]
func (app *application) getSessionAuditHandler(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			app.badRequestResponse(w, r, errors.New("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	records, err := app.auditService.GetSessionAudit(r.Context(), chi.URLParam(r, "session_id"), limit)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, records); err != nil {
		app.internalServerError(w, r, err)
	}
}
