package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

const defaultPageSize = 20

// HandleCostSheetList returns a handler for GET /cost-sheets?page&limit.
// Records come back newest first; the response reports the page window
// so a client can drive pagination.
func HandleCostSheetList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		page := queryInt(e.Request.URL.Query().Get("page"), 1)
		limit := queryInt(e.Request.URL.Query().Get("limit"), defaultPageSize)

		records, page, totalPages, err := listWindow(app, "cost_sheets", page, limit)
		if err != nil {
			log.Printf("costsheet_list: could not query cost_sheets: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load cost sheets"})
		}

		sanitized := make([]costSheetJSON, 0, len(records))
		for _, record := range records {
			item, err := recordJSON(record)
			if err != nil {
				log.Printf("costsheet_list: skipping unreadable record %s: %v", record.Id, err)
				continue
			}
			sanitized = append(sanitized, item)
		}

		return e.JSON(http.StatusOK, pageEnvelope(sanitized, page, totalPages))
	}
}

// queryInt parses a positive integer query param, falling back to def.
func queryInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
