// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchtrack/collections"
	"merchtrack/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// SamplePayload builds a complete cost sheet payload whose totals match
// the worked numbers used across the handler tests:
// fabric 12.50, accessories 3.24, CM 14, others 0, commercial 15%,
// profit 10% -> FOB 37.6211, price/pc 3.1351.
func SamplePayload(style string) services.CostSheetPayload {
	cad := services.NewRowSetFromRows(services.TableCAD, "CAD Consumption", []services.Row{
		{FieldName: "Body", Weight: "10", Percent: "10"},
	})
	fabric := services.NewFabricCost()
	fabric.Yarn = services.NewRowSetFromRows(services.TableYarn, "Yarn Cost", []services.Row{
		{FieldName: "30/1 Cotton", Unit: "5", Rate: "2.50"},
	})
	trims := services.NewRowSetFromRows(services.TableTrims, "Trims & Accessories", []services.Row{
		{FieldName: "Main Label", Cost: "1.00"},
		{FieldName: "Sewing Thread", Cost: "2.00"},
	})
	others := services.NewRowSet(services.TableOthers, "Others")

	return services.Assemble(
		services.StyleInfo{
			Style:      style,
			Item:       "Polo Shirt",
			Group:      "Menswear",
			Size:       "M",
			FabricType: "Single Jersey",
			GSM:        "180",
			Color:      "Navy",
			Quantity:   1200,
		},
		cad, fabric, trims,
		services.SummaryInputs{FactoryCM: 14, CommercialPercent: 15, ProfitPercent: 10},
		others,
	)
}

// CreateTestCostSheet persists a sample payload and returns its record.
func CreateTestCostSheet(t *testing.T, app *pocketbase.PocketBase, style string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("cost_sheets")
	if err != nil {
		t.Fatalf("failed to find cost_sheets collection: %v", err)
	}

	payload := SamplePayload(style)

	record := core.NewRecord(col)
	record.Set("style", payload.Style)
	record.Set("item", payload.Item)
	record.Set("item_group", payload.Group)
	record.Set("size", payload.Size)
	record.Set("fabric_type", payload.FabricType)
	record.Set("gsm", payload.GSM)
	record.Set("color", payload.Color)
	record.Set("quantity", payload.Quantity)
	record.Set("cad_consumption", MustJSON(t, payload.CadConsumption))
	record.Set("fabric_cost", MustJSON(t, payload.FabricCost))
	record.Set("trims_accessories", MustJSON(t, payload.TrimsAccessories))
	record.Set("others", MustJSON(t, payload.Others))
	record.Set("factory_cm", payload.Summary.FactoryCM)
	record.Set("commercial_percent", payload.Summary.CommercialPercent)
	record.Set("profit_percent", payload.Summary.ProfitPercent)
	record.Set("created_by", "tester")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test cost sheet: %v", err)
	}

	return record
}

// CreateTestTNASchedule creates a schedule record with a 100-day lead.
func CreateTestTNASchedule(t *testing.T, app *pocketbase.PocketBase, style string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("tna_schedules")
	if err != nil {
		t.Fatalf("failed to find tna_schedules collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("style", style)
	record.Set("buyer", "Nordic Retail AB")
	record.Set("order_no", "ORD-1001")
	record.Set("order_date", "2026-01-01")
	record.Set("shipment_date", "2026-04-11")
	record.Set("order_qty", 3600)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test schedule: %v", err)
	}

	return record
}

// CreateTestTNATask creates a task under a schedule.
func CreateTestTNATask(t *testing.T, app *pocketbase.PocketBase, scheduleID, name, planDate string, sortOrder int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("tna_tasks")
	if err != nil {
		t.Fatalf("failed to find tna_tasks collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("schedule", scheduleID)
	record.Set("sort_order", sortOrder)
	record.Set("name", name)
	record.Set("plan_date", planDate)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test task: %v", err)
	}

	return record
}

// CreateTestSample creates a sample record for a style.
func CreateTestSample(t *testing.T, app *pocketbase.PocketBase, style, sampleType string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("samples")
	if err != nil {
		t.Fatalf("failed to find samples collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("style", style)
	record.Set("sample_type", sampleType)
	record.Set("status", "pending")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test sample: %v", err)
	}

	return record
}

// CreateTestCADDesign creates a pending CAD design record.
func CreateTestCADDesign(t *testing.T, app *pocketbase.PocketBase, style, designName string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("cad_designs")
	if err != nil {
		t.Fatalf("failed to find cad_designs collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("style", style)
	record.Set("design_name", designName)
	record.Set("status", "pending")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test CAD design: %v", err)
	}

	return record
}

// CreateTestFabricBooking creates a booked fabric booking record.
func CreateTestFabricBooking(t *testing.T, app *pocketbase.PocketBase, style string, quantityKg float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("fabric_bookings")
	if err != nil {
		t.Fatalf("failed to find fabric_bookings collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("style", style)
	record.Set("fabric_type", "Single Jersey")
	record.Set("quantity_kg", quantityKg)
	record.Set("status", "booked")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test fabric booking: %v", err)
	}

	return record
}

// MustJSON marshals v or fails the test.
func MustJSON(t *testing.T, v any) string {
	t.Helper()

	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal %T: %v", v, err)
	}
	return string(raw)
}

// DecodeJSON unmarshals a response body or fails the test.
func DecodeJSON(t *testing.T, body string, dst any) {
	t.Helper()

	if err := json.Unmarshal([]byte(body), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", truncate(body, 300), err)
	}
}

// AssertBodyContains checks that body contains all specified fragments.
func AssertBodyContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected body to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
