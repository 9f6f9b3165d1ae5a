package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"merchtrack/services"
)

type contextKey string

const CostingDefaultsKey contextKey = "costingDefaults"

// CostingDefaults are the seeded scalar overrides applied when an
// inbound payload carries no summary at all.
type CostingDefaults struct {
	Summary           services.SummaryInputs
	AdjustmentPercent float64
}

// GetCostingDefaults extracts the costing defaults from the request
// context, falling back to the built-in constants.
func GetCostingDefaults(r *http.Request) CostingDefaults {
	if val, ok := r.Context().Value(CostingDefaultsKey).(CostingDefaults); ok {
		return val
	}
	return CostingDefaults{
		Summary:           services.DefaultSummaryInputs(),
		AdjustmentPercent: services.DefaultAdjustmentPercent,
	}
}

// CostingDefaultsMiddleware loads the settings record and stores the
// costing defaults in the request context so handlers can seed new
// sheets without re-querying.
func CostingDefaultsMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		defaults := CostingDefaults{
			Summary:           services.DefaultSummaryInputs(),
			AdjustmentPercent: services.DefaultAdjustmentPercent,
		}

		records, err := app.FindRecordsByFilter("settings", "", "", 1, 0, nil)
		if err != nil {
			log.Printf("middleware: could not load settings: %v", err)
		} else if len(records) > 0 {
			rec := records[0]
			defaults.Summary = services.SummaryInputs{
				FactoryCM:         rec.GetFloat("factory_cm"),
				CommercialPercent: rec.GetFloat("commercial_percent"),
				ProfitPercent:     rec.GetFloat("profit_percent"),
			}
			defaults.AdjustmentPercent = rec.GetFloat("adjustment_percent")
		}

		ctx := context.WithValue(e.Request.Context(), CostingDefaultsKey, defaults)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}
