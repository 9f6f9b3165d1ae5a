package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type sampleBody struct {
	Style        string `json:"style"`
	SampleType   string `json:"sampleType"`
	SentDate     string `json:"sentDate"`
	ApprovalDate string `json:"approvalDate"`
	Status       string `json:"status"`
	Comments     string `json:"comments"`
}

func sampleJSON(record *core.Record) map[string]any {
	return map[string]any{
		"id":           record.Id,
		"style":        record.GetString("style"),
		"sampleType":   record.GetString("sample_type"),
		"sentDate":     record.GetString("sent_date"),
		"approvalDate": record.GetString("approval_date"),
		"status":       record.GetString("status"),
		"comments":     record.GetString("comments"),
	}
}

// HandleSampleList returns a handler for GET /samples?page&limit.
func HandleSampleList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		page := queryInt(e.Request.URL.Query().Get("page"), 1)
		limit := queryInt(e.Request.URL.Query().Get("limit"), defaultPageSize)

		records, page, totalPages, err := listWindow(app, "samples", page, limit)
		if err != nil {
			log.Printf("sample_list: could not query samples: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load samples"})
		}

		items := make([]map[string]any, 0, len(records))
		for _, record := range records {
			items = append(items, sampleJSON(record))
		}
		return e.JSON(http.StatusOK, pageEnvelope(items, page, totalPages))
	}
}

// HandleSampleCreate returns a handler for POST /samples.
func HandleSampleCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var body sampleBody
		if err := e.BindBody(&body); err != nil {
			log.Printf("sample_create: could not parse payload: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}

		body.Style = strings.TrimSpace(body.Style)
		if body.Style == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "style is required"})
		}
		if body.Status == "" {
			body.Status = "pending"
		}

		col, err := app.FindCollectionByNameOrId("samples")
		if err != nil {
			log.Printf("sample_create: could not find samples collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save sample"})
		}

		record := core.NewRecord(col)
		record.Set("style", body.Style)
		record.Set("sample_type", body.SampleType)
		record.Set("sent_date", body.SentDate)
		record.Set("approval_date", body.ApprovalDate)
		record.Set("status", body.Status)
		record.Set("comments", body.Comments)

		if err := app.Save(record); err != nil {
			log.Printf("sample_create: could not save sample: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save sample"})
		}

		return e.JSON(http.StatusCreated, sampleJSON(record))
	}
}

// HandleSampleUpdate returns a handler for PUT /samples/{id}.
func HandleSampleUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		record, err := app.FindRecordById("samples", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "sample not found"})
		}

		var body sampleBody
		if err := e.BindBody(&body); err != nil {
			log.Printf("sample_update: could not parse payload: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}

		body.Style = strings.TrimSpace(body.Style)
		if body.Style == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "style is required"})
		}

		record.Set("style", body.Style)
		record.Set("sample_type", body.SampleType)
		record.Set("sent_date", body.SentDate)
		record.Set("approval_date", body.ApprovalDate)
		record.Set("status", body.Status)
		record.Set("comments", body.Comments)

		if err := app.Save(record); err != nil {
			log.Printf("sample_update: could not save sample %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save sample"})
		}

		return e.JSON(http.StatusOK, sampleJSON(record))
	}
}

// HandleSampleDelete returns a handler for DELETE /samples/{id}.
func HandleSampleDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		record, err := app.FindRecordById("samples", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "sample not found"})
		}

		if err := app.Delete(record); err != nil {
			log.Printf("sample_delete: could not delete sample %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete sample"})
		}

		return e.JSON(http.StatusOK, map[string]bool{"deleted": true})
	}
}
