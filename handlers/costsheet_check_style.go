package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleCheckStyle returns a handler for
// GET /cost-sheets/check-style?style=<code>. An existing style is a
// workflow branch, never an error: the response names the creator so
// the caller can route to view/edit instead of create.
func HandleCheckStyle(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		style := strings.TrimSpace(e.Request.URL.Query().Get("style"))
		if style == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "style is required"})
		}

		existing, err := app.FindRecordsByFilter(
			"cost_sheets",
			"style = {:style}",
			"",
			1,
			0,
			map[string]any{"style": style},
		)
		if err != nil {
			log.Printf("costsheet_check_style: could not query cost_sheets: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to check style"})
		}

		if len(existing) == 0 {
			return e.JSON(http.StatusOK, map[string]any{"exists": false})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"exists":      true,
			"creatorName": existing[0].GetString("created_by"),
		})
	}
}
