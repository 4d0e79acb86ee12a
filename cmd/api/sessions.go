package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/casaverde/comanda/internal/domain"
	"github.com/casaverde/comanda/internal/session"
	"github.com/go-chi/chi"
)

// sessionError maps session manager errors onto HTTP responses.
func (app *application) sessionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		app.notFoundError(w, r, err)
	case errors.Is(err, session.ErrInvalidOrderType),
		errors.Is(err, session.ErrNoSnapshot),
		errors.Is(err, session.ErrUnknownComponent),
		errors.Is(err, session.ErrUnknownOption),
		errors.Is(err, session.ErrUnknownProtein),
		errors.Is(err, session.ErrUnknownItem),
		errors.Is(err, session.ErrInvalidIndex):
		app.badRequestResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}

type CreateSessionPayload struct {
	OrderType string `json:"order_type" validate:"required,oneof=dine_in takeout delivery"`
	TableID   string `json:"table_id"`
	MenuDate  string `json:"menu_date" validate:"omitempty,datetime=2006-01-02"`
}

// createSessionHandler godoc
//
//	@Summary		Open a composition session
//	@Description	Creates a session and attaches the catalog snapshot for the menu date
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateSessionPayload	true	"Session parameters"
//	@Success		201		{object}	domain.CompositionSession
//	@Failure		400		{object}	error
//	@Failure		500		{object}	error
//	@Router			/sessions [post]
func (app *application) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateSessionPayload
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	menuDate := payload.MenuDate
	if menuDate == "" {
		menuDate = time.Now().Format("2006-01-02")
	}

	snapshot, err := app.catalogReader.Snapshot(r.Context(), menuDate)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	sess, err := app.sessions.Create(domain.OrderType(payload.OrderType), payload.TableID)
	if err != nil {
		app.sessionError(w, r, err)
		return
	}

	if err := app.sessions.AttachSnapshot(sess.ID, snapshot); err != nil {
		app.sessionError(w, r, err)
		return
	}

	// re-read so the response reflects the reconciled selection
	sess, err = app.sessions.Get(sess.ID)
	if err != nil {
		app.sessionError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, sess); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getSessionHandler godoc
//
//	@Summary		Get a composition session
//	@Description	Returns the session with its drafts and in-progress selection
//	@Tags			sessions
//	@Produce		json
//	@Param			session_id	path		string	true	"Session ID"
//	@Success		200			{object}	domain.CompositionSession
//	@Failure		404			{object}	error
//	@Router			/sessions/{session_id} [get]
func (app *application) getSessionHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := app.sessions.Get(chi.URLParam(r, "session_id"))
	if err != nil {
		app.sessionError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, sess); err != nil {
		app.internalServerError(w, r, err)
	}
}

// cancelSessionHandler godoc
//
//	@Summary		Cancel a composition session
//	@Description	Discards the session and all of its pending drafts
//	@Tags			sessions
//	@Param			session_id	path	string	true	"Session ID"
//	@Success		204
//	@Failure		404	{object}	error
//	@Router			/sessions/{session_id} [delete]
func (app *application) cancelSessionHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.sessions.Destroy(chi.URLParam(r, "session_id")); err != nil {
		app.sessionError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type SetTablePayload struct {
	TableID string `json:"table_id" validate:"required"`
}

// setTableHandler godoc
//
//	@Summary		Assign a table
//	@Description	Assigns or changes the table of a session
//	@Tags			sessions
//	@Accept			json
//	@Param			session_id	path	string			true	"Session ID"
//	@Param			payload		body	SetTablePayload	true	"Table assignment"
//	@Success		204
//	@Failure		400	{object}	error
//	@Failure		404	{object}	error
//	@Router			/sessions/{session_id}/table [patch]
func (app *application) setTableHandler(w http.ResponseWriter, r *http.Request) {
	var payload SetTablePayload
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.sessions.SetTable(chi.URLParam(r, "session_id"), payload.TableID); err != nil {
		app.sessionError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type SetProteinPayload struct {
	ProteinID string `json:"protein_id"`
}

// setProteinHandler godoc
//
//	@Summary		Choose the combo protein
//	@Description	Sets the protein of the in-progress draft; an empty id clears it
//	@Tags			selection
//	@Accept			json
//	@Param			session_id	path	string				true	"Session ID"
//	@Param			payload		body	SetProteinPayload	true	"Protein choice"
//	@Success		204
//	@Failure		400	{object}	error
//	@Failure		404	{object}	error
//	@Router			/sessions/{session_id}/selection/protein [put]
func (app *application) setProteinHandler(w http.ResponseWriter, r *http.Request) {
	var payload SetProteinPayload
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.sessions.SetProtein(chi.URLParam(r, "session_id"), payload.ProteinID); err != nil {
		app.sessionError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type SetComponentPayload struct {
	OptionID string `json:"option_id"`
}

// setComponentHandler godoc
//
//	@Summary		Choose a component option
//	@Description	Sets one component slot of the in-progress draft; an empty id clears it
//	@Tags			selection
//	@Accept			json
//	@Param			session_id	path	string				true	"Session ID"
//	@Param			component	path	string				true	"Component name (soup, principle, salad, drink, extra, rice)"
//	@Param			payload		body	SetComponentPayload	true	"Option choice"
//	@Success		204
//	@Failure		400	{object}	error
//	@Failure		404	{object}	error
//	@Router			/sessions/{session_id}/selection/components/{component} [put]
func (app *application) setComponentHandler(w http.ResponseWriter, r *http.Request) {
	var payload SetComponentPayload
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err := app.sessions.SetComponent(chi.URLParam(r, "session_id"), chi.URLParam(r, "component"), payload.OptionID)
	if err != nil {
		app.sessionError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type SetNotesPayload struct {
	Notes string `json:"notes"`
}

// setNotesHandler godoc
//
//	@Summary		Set free-text notes
//	@Description	Sets the kitchen note on the in-progress draft
//	@Tags			selection
//	@Accept			json
//	@Param			session_id	path	string			true	"Session ID"
//	@Param			payload		body	SetNotesPayload	true	"Notes"
//	@Success		204
//	@Failure		404	{object}	error
//	@Router			/sessions/{session_id}/selection/notes [put]
func (app *application) setNotesHandler(w http.ResponseWriter, r *http.Request) {
	var payload SetNotesPayload
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.sessions.SetNotes(chi.URLParam(r, "session_id"), payload.Notes); err != nil {
		app.sessionError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type AddItemPayload struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity"`
}

// addItemHandler godoc
//
//	@Summary		Add a loose item
//	@Description	Adds a catalog item to the in-progress draft, merging quantities
//	@Tags			items
//	@Accept			json
//	@Param			session_id	path	string			true	"Session ID"
//	@Param			payload		body	AddItemPayload	true	"Item to add"
//	@Success		204
//	@Failure		400	{object}	error
//	@Failure		404	{object}	error
//	@Router			/sessions/{session_id}/items [post]
func (app *application) addItemHandler(w http.ResponseWriter, r *http.Request) {
	var payload AddItemPayload
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.sessions.AddItem(chi.URLParam(r, "session_id"), payload.ItemID, payload.Quantity); err != nil {
		app.sessionError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type SetItemQuantityPayload struct {
	Quantity int `json:"quantity"`
}

// setItemQuantityHandler godoc
//
//	@Summary		Change an item's quantity
//	@Description	Overwrites a line's quantity; zero or less removes the line
//	@Tags			items
//	@Accept			json
//	@Param			session_id	path	string					true	"Session ID"
//	@Param			item_id		path	string					true	"Item ID"
//	@Param			payload		body	SetItemQuantityPayload	true	"New quantity"
//	@Success		204
//	@Failure		400	{object}	error
//	@Failure		404	{object}	error
//	@Router			/sessions/{session_id}/items/{item_id} [patch]
func (app *application) setItemQuantityHandler(w http.ResponseWriter, r *http.Request) {
	var payload SetItemQuantityPayload
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err := app.sessions.SetItemQuantity(chi.URLParam(r, "session_id"), chi.URLParam(r, "item_id"), payload.Quantity)
	if err != nil {
		app.sessionError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type AddReplacementPayload struct {
	FromComponent string `json:"from_component" validate:"required"`
	FromOption    string `json:"from_option"`
	ToItemID      string `json:"to_item_id" validate:"required"`
}

// addReplacementHandler godoc
//
//	@Summary		Record a replacement
//	@Description	Annotates the in-progress combo with a substitution request for the kitchen
//	@Tags			replacements
//	@Accept			json
//	@Produce		json
//	@Param			session_id	path		string					true	"Session ID"
//	@Param			payload		body		AddReplacementPayload	true	"Replacement"
//	@Success		201			{object}	domain.Replacement
//	@Failure		400			{object}	error
//	@Failure		404			{object}	error
//	@Router			/sessions/{session_id}/replacements [post]
func (app *application) addReplacementHandler(w http.ResponseWriter, r *http.Request) {
	var payload AddReplacementPayload
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	replacement, err := app.sessions.AddReplacement(
		chi.URLParam(r, "session_id"),
		payload.FromComponent,
		payload.FromOption,
		payload.ToItemID,
	)
	if err != nil {
		app.sessionError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, replacement); err != nil {
		app.internalServerError(w, r, err)
	}
}

// removeReplacementHandler godoc
//
//	@Summary		Remove a replacement
//	@Description	Removes a substitution annotation from the in-progress combo
//	@Tags			replacements
//	@Param			session_id		path	string	true	"Session ID"
//	@Param			replacement_id	path	string	true	"Replacement ID"
//	@Success		204
//	@Failure		404	{object}	error
//	@Router			/sessions/{session_id}/replacements/{replacement_id} [delete]
func (app *application) removeReplacementHandler(w http.ResponseWriter, r *http.Request) {
	err := app.sessions.RemoveReplacement(chi.URLParam(r, "session_id"), chi.URLParam(r, "replacement_id"))
	if err != nil {
		app.sessionError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
