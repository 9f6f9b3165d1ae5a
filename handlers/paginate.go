package handlers

import (
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// listWindow fetches one page of a collection, newest first, and
// returns the records with the clamped page and total page count.
func listWindow(app *pocketbase.PocketBase, collection string, page, limit int) ([]*core.Record, int, int, error) {
	total, err := app.CountRecords(collection)
	if err != nil {
		return nil, 0, 0, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	records, err := app.FindRecordsByFilter(collection, "", "-created", limit, (page-1)*limit, nil)
	if err != nil {
		return nil, 0, 0, err
	}
	return records, page, totalPages, nil
}

// pageEnvelope wraps one page of sanitized items in the standard list
// response shape.
func pageEnvelope(items any, page, totalPages int) map[string]any {
	return map[string]any{
		"sanitized":   items,
		"page":        page,
		"totalPages":  totalPages,
		"hasNextPage": page < totalPages,
	}
}
