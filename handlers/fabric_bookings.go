package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchtrack/services"
)

var errNoCostSheet = errors.New("no cost sheet for style")

type fabricBookingBody struct {
	Style          string  `json:"style"`
	FabricType     string  `json:"fabricType"`
	GSM            string  `json:"gsm"`
	Color          string  `json:"color"`
	QuantityKg     float64 `json:"quantityKg"`
	WastagePercent float64 `json:"wastagePercent"`
	BookingDate    string  `json:"bookingDate"`
	DeliveryDate   string  `json:"deliveryDate"`
}

func fabricBookingJSON(record *core.Record) map[string]any {
	return map[string]any{
		"id":           record.Id,
		"style":        record.GetString("style"),
		"fabricType":   record.GetString("fabric_type"),
		"gsm":          record.GetString("gsm"),
		"color":        record.GetString("color"),
		"quantityKg":   record.GetFloat("quantity_kg"),
		"bookingDate":  record.GetString("booking_date"),
		"deliveryDate": record.GetString("delivery_date"),
		"status":       record.GetString("status"),
	}
}

// HandleFabricBookingList returns a handler for GET /fabric-bookings?page&limit.
func HandleFabricBookingList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		page := queryInt(e.Request.URL.Query().Get("page"), 1)
		limit := queryInt(e.Request.URL.Query().Get("limit"), defaultPageSize)

		records, page, totalPages, err := listWindow(app, "fabric_bookings", page, limit)
		if err != nil {
			log.Printf("fabric_booking_list: could not query fabric_bookings: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load bookings"})
		}

		items := make([]map[string]any, 0, len(records))
		for _, record := range records {
			items = append(items, fabricBookingJSON(record))
		}
		return e.JSON(http.StatusOK, pageEnvelope(items, page, totalPages))
	}
}

// HandleFabricBookingCreate returns a handler for POST /fabric-bookings.
// When quantityKg is omitted it is derived from the style's cost sheet:
// CAD consumption per dozen times the order quantity, plus wastage.
func HandleFabricBookingCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var body fabricBookingBody
		if err := e.BindBody(&body); err != nil {
			log.Printf("fabric_booking_create: could not parse payload: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}

		body.Style = strings.TrimSpace(body.Style)
		if body.Style == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "style is required"})
		}

		if body.QuantityKg <= 0 {
			qty, err := derivedBookingQty(app, body.Style, body.WastagePercent)
			if err != nil {
				return e.JSON(http.StatusBadRequest, map[string]string{
					"error": "quantityKg is required when the style has no cost sheet",
				})
			}
			body.QuantityKg = qty
		}

		col, err := app.FindCollectionByNameOrId("fabric_bookings")
		if err != nil {
			log.Printf("fabric_booking_create: could not find fabric_bookings collection: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save booking"})
		}

		record := core.NewRecord(col)
		record.Set("style", body.Style)
		record.Set("fabric_type", body.FabricType)
		record.Set("gsm", body.GSM)
		record.Set("color", body.Color)
		record.Set("quantity_kg", body.QuantityKg)
		record.Set("booking_date", body.BookingDate)
		record.Set("delivery_date", body.DeliveryDate)
		record.Set("status", "booked")

		if err := app.Save(record); err != nil {
			log.Printf("fabric_booking_create: could not save booking: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save booking"})
		}

		return e.JSON(http.StatusCreated, fabricBookingJSON(record))
	}
}

// HandleFabricBookingUpdateStatus returns a handler for
// PATCH /fabric-bookings/{id} moving a booking through its lifecycle.
func HandleFabricBookingUpdateStatus(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		record, err := app.FindRecordById("fabric_bookings", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "booking not found"})
		}

		var body struct {
			Status       string `json:"status"`
			DeliveryDate string `json:"deliveryDate"`
		}
		if err := e.BindBody(&body); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		switch body.Status {
		case "booked", "in_house", "cancelled":
		default:
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "status must be booked, in_house or cancelled"})
		}

		record.Set("status", body.Status)
		if body.DeliveryDate != "" {
			record.Set("delivery_date", body.DeliveryDate)
		}

		if err := app.Save(record); err != nil {
			log.Printf("fabric_booking_update: could not save booking %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save booking"})
		}

		return e.JSON(http.StatusOK, fabricBookingJSON(record))
	}
}

// HandleFabricBookingDelete returns a handler for DELETE /fabric-bookings/{id}.
func HandleFabricBookingDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		record, err := app.FindRecordById("fabric_bookings", id)
		if err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "booking not found"})
		}

		if err := app.Delete(record); err != nil {
			log.Printf("fabric_booking_delete: could not delete booking %s: %v", id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete booking"})
		}

		return e.JSON(http.StatusOK, map[string]bool{"deleted": true})
	}
}

// derivedBookingQty computes the fabric requirement for a style from
// its cost sheet's CAD consumption and order quantity.
func derivedBookingQty(app *pocketbase.PocketBase, style string, wastagePercent float64) (float64, error) {
	sheets, err := app.FindRecordsByFilter(
		"cost_sheets",
		"style = {:style}",
		"",
		1,
		0,
		map[string]any{"style": style},
	)
	if err != nil || len(sheets) == 0 {
		return 0, errNoCostSheet
	}

	payload, err := payloadFromRecord(sheets[0])
	if err != nil {
		return 0, err
	}

	return services.RequiredFabricWithWastage(
		payload.CadConsumption.Subtotal,
		payload.Quantity,
		wastagePercent,
	), nil
}
