package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchtrack/services"
)

// HandleCostSheetCreate returns a handler for POST /cost-sheets. The
// inbound payload's totals are recomputed server-side before
// persistence; an already-registered style blocks creation with a 409
// naming the original creator.
func HandleCostSheetCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload services.CostSheetPayload
		if err := e.BindBody(&payload); err != nil {
			log.Printf("costsheet_create: could not parse payload: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}

		payload.Style = strings.TrimSpace(payload.Style)
		if payload.Style == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "style is required"})
		}

		// An all-zero summary block is treated as absent and gets
		// the seeded defaults.
		if payload.Summary == (services.SummaryInputs{}) {
			payload.Summary = GetCostingDefaults(e.Request).Summary
		}

		existing, err := app.FindRecordsByFilter(
			"cost_sheets",
			"style = {:style}",
			"",
			1,
			0,
			map[string]any{"style": payload.Style},
		)
		if err != nil {
			log.Printf("costsheet_create: could not check style %q: %v", payload.Style, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save cost sheet"})
		}
		if len(existing) > 0 {
			return e.JSON(http.StatusConflict, map[string]any{
				"error":       "a cost sheet for this style already exists",
				"creatorName": existing[0].GetString("created_by"),
			})
		}

		col, err := app.FindCollectionByNameOrId("cost_sheets")
		if err != nil {
			log.Printf("costsheet_create: could not find cost_sheets collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save cost sheet"})
		}

		record := core.NewRecord(col)
		if err := applyPayload(record, payload); err != nil {
			log.Printf("costsheet_create: could not apply payload: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		record.Set("created_by", payload.CreatedBy)

		if err := app.Save(record); err != nil {
			log.Printf("costsheet_create: could not save cost sheet %q: %v", payload.Style, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save cost sheet"})
		}

		created, err := recordJSON(record)
		if err != nil {
			log.Printf("costsheet_create: could not project record %s: %v", record.Id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load saved cost sheet"})
		}
		return e.JSON(http.StatusCreated, created)
	}
}
