package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleCostSheetView returns a handler for GET /cost-sheets/{id}: the
// canonical record plus the derived summary chain. Show and edit modes
// both read totals from this response, computed through the same chain
// as every other path, so they cannot disagree.
func HandleCostSheetView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		record, err := app.FindRecordById("cost_sheets", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "cost sheet not found"})
		}

		payload, err := payloadFromRecord(record)
		if err != nil {
			log.Printf("costsheet_view: could not read record %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load cost sheet"})
		}

		sheet, err := recordJSON(record)
		if err != nil {
			log.Printf("costsheet_view: could not project record %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load cost sheet"})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"sheet": sheet,
			"chain": payload.Chain(),
		})
	}
}
