package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"merchtrack/testhelpers"
)

func TestHandleCADDesignCreate_StartsPending(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleCADDesignCreate(app)

	req, rec := postJSON(t, "/cad-designs", `{"style":"ST-100","designName":"Front Panel v2"}`)
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Status string `json:"status"`
	}
	testhelpers.DecodeJSON(t, rec.Body.String(), &resp)
	if resp.Status != "pending" {
		t.Errorf("status = %q, want pending", resp.Status)
	}
}

func TestHandleCADDesignCreate_RequiresStyleAndName(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing style", `{"designName":"Front Panel"}`},
		{"missing design name", `{"style":"ST-100"}`},
		{"blank design name", `{"style":"ST-100","designName":"  "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testhelpers.NewTestApp(t)
			handler := HandleCADDesignCreate(app)

			req, rec := postJSON(t, "/cad-designs", tt.body)
			e := newTestRequestEvent(app, req, rec)

			if err := handler(e); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandleCADDesignDecide_Approve(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	design := testhelpers.CreateTestCADDesign(t, app, "ST-100", "Front Panel")

	handler := HandleCADDesignDecide(app)

	body := `{"status":"approved","approvedBy":"chief merchandiser"}`
	req := httptest.NewRequest(http.MethodPost, "/cad-designs/"+design.Id+"/decide", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", design.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	reloaded, err := app.FindRecordById("cad_designs", design.Id)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if got := reloaded.GetString("status"); got != "approved" {
		t.Errorf("status = %q, want approved", got)
	}
	if got := reloaded.GetString("approved_by"); got != "chief merchandiser" {
		t.Errorf("approved_by = %q, want chief merchandiser", got)
	}
}

func TestHandleCADDesignDecide_RejectsOtherStatuses(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	design := testhelpers.CreateTestCADDesign(t, app, "ST-100", "Front Panel")

	handler := HandleCADDesignDecide(app)

	req := httptest.NewRequest(http.MethodPost, "/cad-designs/"+design.Id+"/decide",
		strings.NewReader(`{"status":"pending"}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", design.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleCADDesignDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	design := testhelpers.CreateTestCADDesign(t, app, "ST-100", "Front Panel")

	handler := HandleCADDesignDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/cad-designs/"+design.Id, nil)
	req.SetPathValue("id", design.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if _, err := app.FindRecordById("cad_designs", design.Id); err == nil {
		t.Error("design should have been deleted")
	}
}

func TestHandleCADDesignList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestCADDesign(t, app, "ST-100", "Front Panel")
	testhelpers.CreateTestCADDesign(t, app, "ST-200", "Back Panel")

	handler := HandleCADDesignList(app)

	req := httptest.NewRequest(http.MethodGet, "/cad-designs", nil)
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
