// Package handlers binds the JSON REST surface to PocketBase request
// events. One file per cost-sheet operation, one file per adjacent
// workflow entity.
package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"merchtrack/services"
)

// costSheetJSON is the canonical record shape returned to clients.
type costSheetJSON struct {
	ID string `json:"id"`
	services.StyleInfo
	CadConsumption   services.TableEnvelope  `json:"cadConsumption"`
	FabricCost       services.FabricEnvelope `json:"fabricCost"`
	TrimsAccessories services.TableEnvelope  `json:"trimsAccessories"`
	Others           services.TableEnvelope  `json:"others"`
	Summary          services.SummaryInputs  `json:"summary"`
	CreatedBy        string                  `json:"createdBy,omitempty"`
	Created          string                  `json:"created,omitempty"`
	Updated          string                  `json:"updated,omitempty"`
}

// payloadFromRecord rebuilds the canonical payload from a persisted
// record. Row-set fields tolerate legacy shapes; every derived value
// is recomputed.
func payloadFromRecord(record *core.Record) (services.CostSheetPayload, error) {
	payload := services.CostSheetPayload{
		StyleInfo: services.StyleInfo{
			Style:      record.GetString("style"),
			Item:       record.GetString("item"),
			Group:      record.GetString("item_group"),
			Size:       record.GetString("size"),
			FabricType: record.GetString("fabric_type"),
			GSM:        record.GetString("gsm"),
			Color:      record.GetString("color"),
			Quantity:   record.GetFloat("quantity"),
		},
		Summary: services.SummaryInputs{
			FactoryCM:         record.GetFloat("factory_cm"),
			CommercialPercent: record.GetFloat("commercial_percent"),
			ProfitPercent:     record.GetFloat("profit_percent"),
		},
		CreatedBy: record.GetString("created_by"),
	}

	for _, field := range []struct {
		name string
		kind services.TableKind
		dst  *services.TableEnvelope
	}{
		{"cad_consumption", services.TableCAD, &payload.CadConsumption},
		{"trims_accessories", services.TableTrims, &payload.TrimsAccessories},
		{"others", services.TableOthers, &payload.Others},
	} {
		data, err := decodeRecordJSON(record, field.name)
		if err != nil {
			return payload, err
		}
		env, err := services.NormalizeTable(data, field.kind)
		if err != nil {
			return payload, fmt.Errorf("field %s: %w", field.name, err)
		}
		*field.dst = env
	}

	fabricData, err := decodeRecordJSON(record, "fabric_cost")
	if err != nil {
		return payload, err
	}
	fabric, err := services.NormalizeFabric(fabricData)
	if err != nil {
		return payload, fmt.Errorf("field fabric_cost: %w", err)
	}
	payload.FabricCost = fabric

	return payload, nil
}

// decodeRecordJSON decodes a JSON field into a generic value; an empty
// field decodes to nil.
func decodeRecordJSON(record *core.Record, field string) (any, error) {
	raw := record.GetString(field)
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("field %s: %w", field, err)
	}
	return data, nil
}

// applyPayload writes a recomputed payload onto a record. Only the
// three summary overrides are persisted from the summary; the derived
// chain never is.
func applyPayload(record *core.Record, payload services.CostSheetPayload) error {
	payload = payload.Recompute()

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
			return fmt.Errorf("marshal %s: %w", field.name, err)
		}
		record.Set(field.name, string(raw))
	}

	record.Set("factory_cm", payload.Summary.FactoryCM)
	record.Set("commercial_percent", payload.Summary.CommercialPercent)
	record.Set("profit_percent", payload.Summary.ProfitPercent)
	return nil
}

// recordJSON projects a record into the canonical client shape.
func recordJSON(record *core.Record) (costSheetJSON, error) {
	payload, err := payloadFromRecord(record)
	if err != nil {
		return costSheetJSON{}, err
	}
	return costSheetJSON{
		ID:               record.Id,
		StyleInfo:        payload.StyleInfo,
		CadConsumption:   payload.CadConsumption,
		FabricCost:       payload.FabricCost,
		TrimsAccessories: payload.TrimsAccessories,
		Others:           payload.Others,
		Summary:          payload.Summary,
		CreatedBy:        payload.CreatedBy,
		Created:          record.GetString("created"),
		Updated:          record.GetString("updated"),
	}, nil
}
