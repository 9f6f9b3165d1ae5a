package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"merchtrack/testhelpers"
)

func TestHandleSampleCreate_DefaultsToPending(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleSampleCreate(app)

	req, rec := postJSON(t, "/samples", `{"style":"ST-100","sampleType":"fit","sentDate":"2026-02-01"}`)
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	testhelpers.DecodeJSON(t, rec.Body.String(), &resp)
	if resp.Status != "pending" {
		t.Errorf("status = %q, want pending", resp.Status)
	}
}

func TestHandleSampleCreate_MissingStyle(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleSampleCreate(app)

	req, rec := postJSON(t, "/samples", `{"sampleType":"fit"}`)
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleSampleUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	sample := testhelpers.CreateTestSample(t, app, "ST-100", "pp")

	handler := HandleSampleUpdate(app)

	body := `{"style":"ST-100","sampleType":"pp","status":"approved","approvalDate":"2026-03-01","comments":"fits well"}`
	req := httptest.NewRequest(http.MethodPut, "/samples/"+sample.Id, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", sample.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	reloaded, err := app.FindRecordById("samples", sample.Id)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if got := reloaded.GetString("status"); got != "approved" {
		t.Errorf("status = %q, want approved", got)
	}
	if got := reloaded.GetString("approval_date"); got != "2026-03-01" {
		t.Errorf("approval_date = %q, want 2026-03-01", got)
	}
}

func TestHandleSampleDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	sample := testhelpers.CreateTestSample(t, app, "ST-100", "proto")

	handler := HandleSampleDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/samples/"+sample.Id, nil)
	req.SetPathValue("id", sample.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if _, err := app.FindRecordById("samples", sample.Id); err == nil {
		t.Error("sample should have been deleted")
	}
}

func TestHandleSampleList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestSample(t, app, "ST-100", "proto")
	testhelpers.CreateTestSample(t, app, "ST-100", "fit")

	handler := HandleSampleList(app)

	req := httptest.NewRequest(http.MethodGet, "/samples", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Sanitized []map[string]any `json:"sanitized"`
	}
	testhelpers.DecodeJSON(t, rec.Body.String(), &resp)
	if len(resp.Sanitized) != 2 {
		t.Errorf("len(sanitized) = %d, want 2", len(resp.Sanitized))
	}
}
