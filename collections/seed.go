package collections

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchtrack/services"
)

// envFloat reads a float from the environment (typically loaded from
// .env), falling back to def when unset or unparseable.
func envFloat(key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("seed: ignoring invalid %s=%q", key, raw)
		return def
	}
	return f
}

// Seed ensures the settings singleton exists and, on a fresh database,
// creates one demo cost sheet so list/show pages have something to
// render. Safe to call on every startup.
func Seed(app *pocketbase.PocketBase) error {
	if err := seedSettings(app); err != nil {
		return err
	}
	return seedDemoCostSheet(app)
}

func seedSettings(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("settings")
	if err != nil {
		return fmt.Errorf("seed: could not find settings collection: %w", err)
	}

	existing, err := app.FindRecordsByFilter(col, "", "", 1, 0, nil)
	if err == nil && len(existing) > 0 {
		return nil
	}

	record := core.NewRecord(col)
	record.Set("factory_cm", envFloat("MERCHTRACK_FACTORY_CM", services.DefaultFactoryCM))
	record.Set("commercial_percent", envFloat("MERCHTRACK_COMMERCIAL_PERCENT", services.DefaultCommercialPercent))
	record.Set("profit_percent", envFloat("MERCHTRACK_PROFIT_PERCENT", services.DefaultProfitPercent))
	record.Set("adjustment_percent", envFloat("MERCHTRACK_ADJUSTMENT_PERCENT", services.DefaultAdjustmentPercent))

	if err := app.Save(record); err != nil {
		return fmt.Errorf("seed: could not save settings: %w", err)
	}
	log.Println("seed: created default costing settings")
	return nil
}

func seedDemoCostSheet(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("cost_sheets")
	if err != nil {
		return fmt.Errorf("seed: could not find cost_sheets collection: %w", err)
	}

	existing, err := app.FindRecordsByFilter(col, "", "", 1, 0, nil)
	if err == nil && len(existing) > 0 {
		return nil
	}

	cad := services.NewRowSetFromRows(services.TableCAD, "CAD Consumption", []services.Row{
		{FieldName: "Body", Weight: "2.10", Percent: "10"},
		{FieldName: "Rib", Weight: "0.25", Percent: "8"},
	})
	fabric := services.NewFabricCost()
	fabric.Yarn = services.NewRowSetFromRows(services.TableYarn, "Yarn Cost", []services.Row{
		{FieldName: "30/1 Combed Cotton", Unit: "2.58", Rate: "3.20"},
	})
	fabric.Knitting = services.NewRowSetFromRows(services.TableKnitting, "Knitting Cost", []services.Row{
		{FieldName: "Single Jersey", Unit: "2.58", Rate: "0.25"},
	})
	fabric.Dyeing = services.NewRowSetFromRows(services.TableDyeing, "Dyeing Cost", []services.Row{
		{FieldName: "Avg Color", Unit: "2.58", Rate: "1.10"},
	})
	trims := services.NewRowSetFromRows(services.TableTrims, "Trims & Accessories", []services.Row{
		{FieldName: "Main Label", Cost: "0.12"},
		{FieldName: "Care Label", Cost: "0.06"},
		{FieldName: "Sewing Thread", Cost: "0.35"},
		{FieldName: "Poly Bag", Cost: "0.18"},
	})
	others := services.NewRowSet(services.TableOthers, "Others")

	payload := services.Assemble(
		services.StyleInfo{
			Style:      "DEMO-1001",
			Item:       "Polo Shirt",
			Group:      "Menswear",
			Size:       "M",
			FabricType: "Single Jersey",
			GSM:        "180",
			Color:      "Navy",
			Quantity:   3600,
		},
		cad, fabric, trims, services.DefaultSummaryInputs(), others,
	)

	payload = payload.Recompute()

	record := core.NewRecord(col)
	record.Set("style", payload.Style)
	record.Set("item", payload.Item)
	record.Set("item_group", payload.Group)
	record.Set("size", payload.Size)
	record.Set("fabric_type", payload.FabricType)
	record.Set("gsm", payload.GSM)
	record.Set("color", payload.Color)
	record.Set("quantity", payload.Quantity)

	for _, field := range []struct {
		name string
		data any
	}{
		{"cad_consumption", payload.CadConsumption},
		{"fabric_cost", payload.FabricCost},
		{"trims_accessories", payload.TrimsAccessories},
		{"others", payload.Others},
	} {
		raw, err := json.Marshal(field.data)
		if err != nil {
			return fmt.Errorf("seed: marshal %s: %w", field.name, err)
		}
		record.Set(field.name, string(raw))
	}

	record.Set("factory_cm", payload.Summary.FactoryCM)
	record.Set("commercial_percent", payload.Summary.CommercialPercent)
	record.Set("profit_percent", payload.Summary.ProfitPercent)
	record.Set("created_by", "seed")

	if err := app.Save(record); err != nil {
		return fmt.Errorf("seed: could not save demo cost sheet: %w", err)
	}
	log.Printf("seed: created demo cost sheet %q", payload.Style)
	return nil
}
