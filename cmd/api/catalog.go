package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// getCatalogHandler godoc
//
//	@Summary		Get catalog snapshot
//	@Description	Returns the day's menu configuration and the item catalog
//	@Tags			catalog
//	@Produce		json
//	@Param			menu_date	query		string	false	"Menu date (YYYY-MM-DD), defaults to today"
//	@Success		200			{object}	domain.CatalogSnapshot
//	@Failure		500			{object}	error
//	@Router			/catalog [get]
func (app *application) getCatalogHandler(w http.ResponseWriter, r *http.Request) {
	menuDate := r.URL.Query().Get("menu_date")
	if menuDate == "" {
		menuDate = time.Now().Format("2006-01-02")
	}

	snapshot, err := app.catalogReader.Snapshot(r.Context(), menuDate)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, snapshot); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getTablesHandler godoc
//
//	@Summary		List available tables
//	@Description	Returns the tables currently open for dine-in seating
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{array}		domain.Table
//	@Failure		500	{object}	error
//	@Router			/tables [get]
func (app *application) getTablesHandler(w http.ResponseWriter, r *http.Request) {
	tables, err := app.catalogReader.Tables(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, tables); err != nil {
		app.internalServerError(w, r, err)
	}
}

type CreateImportTaskPayload struct {
	SpreadsheetID string `json:"spreadsheet_id" validate:"required"`
	MenuDate      string `json:"menu_date" validate:"required,datetime=2006-01-02"`
}

type CreateImportTaskResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// createImportTaskHandler godoc
//
//	@Summary		Import the daily menu
//	@Description	Queues an asynchronous import of the daily menu from a Google spreadsheet
//	@Tags			daily-menu
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateImportTaskPayload	true	"Import request"
//	@Success		202		{object}	CreateImportTaskResponse
//	@Failure		400		{object}	error
//	@Failure		500		{object}	error
//	@Router			/daily-menu/import [post]
func (app *application) createImportTaskHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateImportTaskPayload
	if err := readJson(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	taskID, err := app.importService.CreateImportTask(r.Context(), payload.SpreadsheetID, payload.MenuDate)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := CreateImportTaskResponse{
		TaskID: taskID.Hex(),
		Status: "queued",
	}

	if err := app.jsonResponse(w, http.StatusAccepted, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getImportTaskHandler godoc
//
//	@Summary		Get import task status
//	@Description	Returns the status of a menu import task
//	@Tags			daily-menu
//	@Produce		json
//	@Param			task_id	path		string	true	"Task ID"
//	@Success		200		{object}	domain.ImportTask
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Router			/daily-menu/import/{task_id} [get]
func (app *application) getImportTaskHandler(w http.ResponseWriter, r *http.Request) {
	taskID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "task_id"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	task, err := app.importService.GetTaskStatus(r.Context(), taskID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, task); err != nil {
		app.internalServerError(w, r, err)
	}
}
