package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleCostSheetDelete returns a handler for DELETE /cost-sheets/{id}.
// Deletion removes the whole aggregate; row-sets are never deleted
// individually.
func HandleCostSheetDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		record, err := app.FindRecordById("cost_sheets", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "cost sheet not found"})
		}

		if err := app.Delete(record); err != nil {
			log.Printf("costsheet_delete: could not delete cost sheet %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete cost sheet"})
		}

		return e.JSON(http.StatusOK, map[string]bool{"deleted": true})
	}
}
