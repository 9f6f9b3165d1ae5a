package collections_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchtrack/collections"
	"merchtrack/services"
	"merchtrack/testhelpers"
)

// createLegacySheet stores a cost sheet whose row-set fields use
// pre-envelope shapes.
func createLegacySheet(t *testing.T, app *pocketbase.PocketBase, style string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("cost_sheets")
	if err != nil {
		t.Fatalf("failed to find cost_sheets: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("style", style)
	// Bare row array.
	record.Set("cad_consumption", `[{"id":"1","fieldName":"Body","weight":"10","percent":"10"}]`)
	// Legacy wrapper.
	record.Set("trims_accessories", `{"json":{"rows":[{"id":"1","fieldName":"Label","cost":"1"},{"id":"2","fieldName":"Thread","cost":"2"}]}}`)
	record.Set("others", `[]`)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save legacy sheet: %v", err)
	}
	return record
}

func TestMigrateLegacyEnvelopes_RewritesLegacyShapes(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	record := createLegacySheet(t, app, "LEGACY-1")

	if err := collections.MigrateLegacyEnvelopes(app); err != nil {
		t.Fatalf("MigrateLegacyEnvelopes() error = %v", err)
	}

	reloaded, err := app.FindRecordById("cost_sheets", record.Id)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}

	var cad services.TableEnvelope
	if err := json.Unmarshal([]byte(reloaded.GetString("cad_consumption")), &cad); err != nil {
		t.Fatalf("cad_consumption not an envelope: %v", err)
	}
	if math.Abs(cad.Subtotal-11) > 1e-9 {
		t.Errorf("cad subtotal = %v, want 11", cad.Subtotal)
	}

	var trims services.TableEnvelope
	if err := json.Unmarshal([]byte(reloaded.GetString("trims_accessories")), &trims); err != nil {
		t.Fatalf("trims_accessories not an envelope: %v", err)
	}
	if math.Abs(trims.Total-3.24) > 1e-9 {
		t.Errorf("trims total = %v, want 3.24", trims.Total)
	}
}

func TestMigrateLegacyEnvelopes_LeavesCanonicalRecordsAlone(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	record := testhelpers.CreateTestCostSheet(t, app, "ST-100")
	before := record.GetString("trims_accessories")

	if err := collections.MigrateLegacyEnvelopes(app); err != nil {
		t.Fatalf("MigrateLegacyEnvelopes() error = %v", err)
	}

	reloaded, err := app.FindRecordById("cost_sheets", record.Id)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if got := reloaded.GetString("trims_accessories"); got != before {
		t.Errorf("canonical field rewritten:\nbefore: %s\nafter:  %s", before, got)
	}
}

func TestMigrateLegacyEnvelopes_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	record := createLegacySheet(t, app, "LEGACY-2")

	if err := collections.MigrateLegacyEnvelopes(app); err != nil {
		t.Fatalf("first run error = %v", err)
	}
	first, err := app.FindRecordById("cost_sheets", record.Id)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	snapshot := first.GetString("trims_accessories")

	if err := collections.MigrateLegacyEnvelopes(app); err != nil {
		t.Fatalf("second run error = %v", err)
	}
	second, err := app.FindRecordById("cost_sheets", record.Id)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if got := second.GetString("trims_accessories"); got != snapshot {
		t.Error("second migration pass changed an already-migrated record")
	}
}
