package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type cadDesignBody struct {
	Style      string `json:"style"`
	DesignName string `json:"designName"`
	Remarks    string `json:"remarks"`
}

func cadDesignJSON(record *core.Record) map[string]any {
	return map[string]any{
		"id":         record.Id,
		"style":      record.GetString("style"),
		"designName": record.GetString("design_name"),
		"status":     record.GetString("status"),
		"approvedBy": record.GetString("approved_by"),
		"remarks":    record.GetString("remarks"),
	}
}

// HandleCADDesignList returns a handler for GET /cad-designs?page&limit.
func HandleCADDesignList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		page := queryInt(e.Request.URL.Query().Get("page"), 1)
		limit := queryInt(e.Request.URL.Query().Get("limit"), defaultPageSize)

		records, page, totalPages, err := listWindow(app, "cad_designs", page, limit)
		if err != nil {
			log.Printf("cad_design_list: could not query cad_designs: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load designs"})
		}

		items := make([]map[string]any, 0, len(records))
		for _, record := range records {
			items = append(items, cadDesignJSON(record))
		}
		return e.JSON(http.StatusOK, pageEnvelope(items, page, totalPages))
	}
}

// HandleCADDesignCreate returns a handler for POST /cad-designs. New
// designs start pending.
func HandleCADDesignCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var body cadDesignBody
		if err := e.BindBody(&body); err != nil {
			log.Printf("cad_design_create: could not parse payload: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}

		body.Style = strings.TrimSpace(body.Style)
		body.DesignName = strings.TrimSpace(body.DesignName)
		if body.Style == "" || body.DesignName == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "style and designName are required"})
		}

		col, err := app.FindCollectionByNameOrId("cad_designs")
		if err != nil {
			log.Printf("cad_design_create: could not find cad_designs collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save design"})
		}

		record := core.NewRecord(col)
		record.Set("style", body.Style)
		record.Set("design_name", body.DesignName)
		record.Set("status", "pending")
		record.Set("remarks", body.Remarks)

		if err := app.Save(record); err != nil {
			log.Printf("cad_design_create: could not save design: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save design"})
		}

		return e.JSON(http.StatusCreated, cadDesignJSON(record))
	}
}

// HandleCADDesignDecide returns a handler for POST /cad-designs/{id}/decide
// recording an approval or rejection.
func HandleCADDesignDecide(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		record, err := app.FindRecordById("cad_designs", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "design not found"})
		}

		var body struct {
			Status     string `json:"status"`
			ApprovedBy string `json:"approvedBy"`
			Remarks    string `json:"remarks"`
		}
		if err := e.BindBody(&body); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		if body.Status != "approved" && body.Status != "rejected" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "status must be approved or rejected"})
		}

		record.Set("status", body.Status)
		record.Set("approved_by", body.ApprovedBy)
		if body.Remarks != "" {
			record.Set("remarks", body.Remarks)
		}

		if err := app.Save(record); err != nil {
			log.Printf("cad_design_decide: could not save design %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save design"})
		}

		return e.JSON(http.StatusOK, cadDesignJSON(record))
	}
}

// HandleCADDesignDelete returns a handler for DELETE /cad-designs/{id}.
func HandleCADDesignDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		record, err := app.FindRecordById("cad_designs", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "design not found"})
		}

		if err := app.Delete(record); err != nil {
			log.Printf("cad_design_delete: could not delete design %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete design"})
		}

		return e.JSON(http.StatusOK, map[string]bool{"deleted": true})
	}
}
