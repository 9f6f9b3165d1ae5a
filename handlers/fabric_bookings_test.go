package handlers

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"merchtrack/testhelpers"
)

func TestHandleFabricBookingCreate_ExplicitQuantity(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleFabricBookingCreate(app)

	body := `{"style":"ST-100","fabricType":"Single Jersey","quantityKg":500,"bookingDate":"2026-02-01"}`
	req, rec := postJSON(t, "/fabric-bookings", body)
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		QuantityKg float64 `json:"quantityKg"`
		Status     string  `json:"status"`
	}
	testhelpers.DecodeJSON(t, rec.Body.String(), &resp)
	if resp.QuantityKg != 500 {
		t.Errorf("quantityKg = %v, want 500", resp.QuantityKg)
	}
	if resp.Status != "booked" {
		t.Errorf("status = %q, want booked", resp.Status)
	}
}

func TestHandleFabricBookingCreate_DerivesQuantityFromCostSheet(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	// Sample sheet: CAD 11 kg/dzn, order 1200 pcs.
	testhelpers.CreateTestCostSheet(t, app, "ST-100")

	handler := HandleFabricBookingCreate(app)

	body := `{"style":"ST-100","fabricType":"Single Jersey","wastagePercent":5}`
	req, rec := postJSON(t, "/fabric-bookings", body)
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		QuantityKg float64 `json:"quantityKg"`
	}
	testhelpers.DecodeJSON(t, rec.Body.String(), &resp)
	// 11 * 1200 / 12 = 1100, plus 5% wastage.
	if math.Abs(resp.QuantityKg-1155) > 1e-9 {
		t.Errorf("quantityKg = %v, want derived 1155", resp.QuantityKg)
	}
}

func TestHandleFabricBookingCreate_NoSheetNoQuantity(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleFabricBookingCreate(app)

	req, rec := postJSON(t, "/fabric-bookings", `{"style":"ST-404","fabricType":"Fleece"}`)
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 without sheet or explicit quantity, got %d", rec.Code)
	}
}

func TestHandleFabricBookingUpdateStatus(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	booking := testhelpers.CreateTestFabricBooking(t, app, "ST-100", 500)

	handler := HandleFabricBookingUpdateStatus(app)

	req := httptest.NewRequest(http.MethodPatch, "/fabric-bookings/"+booking.Id,
		strings.NewReader(`{"status":"in_house","deliveryDate":"2026-03-01"}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", booking.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	reloaded, err := app.FindRecordById("fabric_bookings", booking.Id)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if got := reloaded.GetString("status"); got != "in_house" {
		t.Errorf("status = %q, want in_house", got)
	}
	if got := reloaded.GetString("delivery_date"); got != "2026-03-01" {
		t.Errorf("delivery_date = %q, want 2026-03-01", got)
	}
}

func TestHandleFabricBookingUpdateStatus_InvalidStatus(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	booking := testhelpers.CreateTestFabricBooking(t, app, "ST-100", 500)

	handler := HandleFabricBookingUpdateStatus(app)

	req := httptest.NewRequest(http.MethodPatch, "/fabric-bookings/"+booking.Id,
		strings.NewReader(`{"status":"teleported"}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", booking.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleFabricBookingDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	booking := testhelpers.CreateTestFabricBooking(t, app, "ST-100", 500)

	handler := HandleFabricBookingDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/fabric-bookings/"+booking.Id, nil)
	req.SetPathValue("id", booking.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if _, err := app.FindRecordById("fabric_bookings", booking.Id); err == nil {
		t.Error("booking should have been deleted")
	}
}

func TestHandleFabricBookingList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestFabricBooking(t, app, "ST-100", 500)
	testhelpers.CreateTestFabricBooking(t, app, "ST-200", 800)

	handler := HandleFabricBookingList(app)

	req := httptest.NewRequest(http.MethodGet, "/fabric-bookings", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var resp struct {
		Sanitized []map[string]any `json:"sanitized"`
	}
	testhelpers.DecodeJSON(t, rec.Body.String(), &resp)
	if len(resp.Sanitized) != 2 {
		t.Errorf("len(sanitized) = %d, want 2", len(resp.Sanitized))
	}
}
