package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"merchtrack/services"
	"merchtrack/testhelpers"
)

func putJSON(t *testing.T, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req, httptest.NewRecorder()
}

func wrapData(t *testing.T, payload services.CostSheetPayload) string {
	t.Helper()
	return `{"data":` + testhelpers.MustJSON(t, payload) + `}`
}

func TestHandleCostSheetUpdate_FullReplace(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	record := testhelpers.CreateTestCostSheet(t, app, "ST-100")

	handler := HandleCostSheetUpdate(app)

	payload := testhelpers.SamplePayload("ST-100")
	payload.Item = "Crew Neck Tee"
	// Replace trims entirely with a single row.
	payload.TrimsAccessories = services.NewRowSetFromRows(
		services.TableTrims, "Trims & Accessories", []services.Row{
			{FieldName: "Care Label", Cost: "0.50"},
		}).Envelope()
	payload.Summary.ProfitPercent = 5

	req, rec := putJSON(t, "/cost-sheets/"+record.Id, wrapData(t, payload))
	req.SetPathValue("id", record.Id)
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated costSheetJSON
	testhelpers.DecodeJSON(t, rec.Body.String(), &updated)
	if updated.Item != "Crew Neck Tee" {
		t.Errorf("item = %q, want Crew Neck Tee", updated.Item)
	}
	if len(updated.TrimsAccessories.Rows) != 1 {
		t.Errorf("trims rows = %d, want full replace to 1", len(updated.TrimsAccessories.Rows))
	}
	if updated.TrimsAccessories.Subtotal != 0.50 {
		t.Errorf("trims subtotal = %v, want 0.50", updated.TrimsAccessories.Subtotal)
	}
	if updated.Summary.ProfitPercent != 5 {
		t.Errorf("profitPercent = %v, want 5", updated.Summary.ProfitPercent)
	}

	// The stored record reflects the replace too.
	reloaded, err := app.FindRecordById("cost_sheets", record.Id)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	stored, err := payloadFromRecord(reloaded)
	if err != nil {
		t.Fatalf("payloadFromRecord error: %v", err)
	}
	if len(stored.TrimsAccessories.Rows) != 1 {
		t.Errorf("stored trims rows = %d, want 1", len(stored.TrimsAccessories.Rows))
	}
}

func TestHandleCostSheetUpdate_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleCostSheetUpdate(app)

	req, rec := putJSON(t, "/cost-sheets/missing", wrapData(t, testhelpers.SamplePayload("ST-1")))
	req.SetPathValue("id", "missing")
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestHandleCostSheetUpdate_RenameCollision(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestCostSheet(t, app, "ST-100")
	record := testhelpers.CreateTestCostSheet(t, app, "ST-200")

	handler := HandleCostSheetUpdate(app)

	payload := testhelpers.SamplePayload("ST-100")
	req, rec := putJSON(t, "/cost-sheets/"+record.Id, wrapData(t, payload))
	req.SetPathValue("id", record.Id)
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}

	// Renamed record keeps its old style.
	reloaded, err := app.FindRecordById("cost_sheets", record.Id)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if got := reloaded.GetString("style"); got != "ST-200" {
		t.Errorf("style = %q, want unchanged ST-200", got)
	}
}

func TestHandleCostSheetUpdate_SameStyleNoCollision(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	record := testhelpers.CreateTestCostSheet(t, app, "ST-100")

	handler := HandleCostSheetUpdate(app)

	payload := testhelpers.SamplePayload("ST-100")
	req, rec := putJSON(t, "/cost-sheets/"+record.Id, wrapData(t, payload))
	req.SetPathValue("id", record.Id)
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200 for unchanged style, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleCostSheetUpdate_MissingStyle(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	record := testhelpers.CreateTestCostSheet(t, app, "ST-100")

	handler := HandleCostSheetUpdate(app)

	payload := testhelpers.SamplePayload("")
	req, rec := putJSON(t, "/cost-sheets/"+record.Id, wrapData(t, payload))
	req.SetPathValue("id", record.Id)
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}
