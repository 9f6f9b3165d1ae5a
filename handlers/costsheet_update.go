package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchtrack/services"
)

// updateBody wraps the payload the way the edit form submits it.
type updateBody struct {
	Data services.CostSheetPayload `json:"data"`
}

// HandleCostSheetUpdate returns a handler for PUT /cost-sheets/{id}.
// Updates are full-payload replaces: every row-set and the summary
// overrides are re-submitted together and persisted atomically, with
// all totals recomputed server-side. Last write wins.
func HandleCostSheetUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		record, err := app.FindRecordById("cost_sheets", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "cost sheet not found"})
		}

		var body updateBody
		if err := e.BindBody(&body); err != nil {
			log.Printf("costsheet_update: could not parse payload: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		payload := body.Data

		payload.Style = strings.TrimSpace(payload.Style)
		if payload.Style == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "style is required"})
		}

		// A renamed style must not collide with another sheet.
		if payload.Style != record.GetString("style") {
			existing, err := app.FindRecordsByFilter(
				"cost_sheets",
				"style = {:style} && id != {:id}",
				"",
				1,
				0,
				map[string]any{"style": payload.Style, "id": id},
			)
			if err != nil {
				log.Printf("costsheet_update: could not check style %q: %v", payload.Style, err)
				return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save cost sheet"})
			}
			if len(existing) > 0 {
				return e.JSON(http.StatusConflict, map[string]any{
					"error":       "a cost sheet for this style already exists",
					"creatorName": existing[0].GetString("created_by"),
				})
			}
		}

		if err := applyPayload(record, payload); err != nil {
			log.Printf("costsheet_update: could not apply payload: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}

		if err := app.Save(record); err != nil {
			log.Printf("costsheet_update: could not save cost sheet %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save cost sheet"})
		}

		updated, err := recordJSON(record)
		if err != nil {
			log.Printf("costsheet_update: could not project record %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load saved cost sheet"})
		}
		return e.JSON(http.StatusOK, updated)
	}
}
