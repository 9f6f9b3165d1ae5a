package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchtrack/services"
)

// buildExportData loads a cost sheet and flattens it for the Excel and
// PDF generators.
func buildExportData(app *pocketbase.PocketBase, sheetID string) (services.ExportData, error) {
	record, err := app.FindRecordById("cost_sheets", sheetID)
	if err != nil {
		return services.ExportData{}, fmt.Errorf("cost sheet not found: %w", err)
	}

	payload, err := payloadFromRecord(record)
	if err != nil {
		return services.ExportData{}, fmt.Errorf("unreadable cost sheet %s: %w", sheetID, err)
	}

	createdDate := "-"
	if dt := record.GetDateTime("created"); !dt.IsZero() {
		createdDate = dt.Time().Format("02 Jan 2006")
	}

	return services.BuildExportData(payload, createdDate), nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleCostSheetExportExcel returns a handler that generates and
// downloads the Excel rendering of a cost sheet.
func HandleCostSheetExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sheetID := e.Request.PathValue("id")
		if sheetID == "" {
			return e.String(http.StatusBadRequest, "Missing cost sheet ID")
		}

		data, err := buildExportData(app, sheetID)
		if err != nil {
			log.Printf("costsheet_export: %v", err)
			return e.String(http.StatusNotFound, "Cost sheet not found")
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("costsheet_export: failed to generate excel: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("CostSheet_%s.xlsx", sanitizeFilename(data.Style))

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleCostSheetExportPDF returns a handler that generates and
// downloads the PDF rendering of a cost sheet.
func HandleCostSheetExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sheetID := e.Request.PathValue("id")
		if sheetID == "" {
			return e.String(http.StatusBadRequest, "Missing cost sheet ID")
		}

		data, err := buildExportData(app, sheetID)
		if err != nil {
			log.Printf("costsheet_export: %v", err)
			return e.String(http.StatusNotFound, "Cost sheet not found")
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("costsheet_export: failed to generate pdf: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("CostSheet_%s.pdf", sanitizeFilename(data.Style))

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
