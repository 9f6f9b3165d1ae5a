package services

import (
	"encoding/json"
	"fmt"
)

// The same logical table can reach the aggregator as freshly edited
// state (a *RowSet or bare row slice) or as a persisted envelope
// (TableEnvelope, a generic map, or a {json: {...}} wrapper from older
// records). Everything funnels through NormalizeTable before any
// arithmetic so no caller ever branches on shape.

// NormalizeTable maps any accepted table shape to a canonical envelope
// with the subtotal recomputed from the rows.
func NormalizeTable(data any, kind TableKind) (TableEnvelope, error) {
	switch v := data.(type) {
	case nil:
		return emptyEnvelope(kind), nil
	case *RowSet:
		return v.Envelope(), nil
	case RowSet:
		return v.Envelope(), nil
	case TableEnvelope:
		return rebuildEnvelope(v, kind), nil
	case []Row:
		return NewRowSetFromRows(kind, "", v).Envelope(), nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return TableEnvelope{}, fmt.Errorf("normalize table: %w", err)
	}
	return normalizeRaw(raw, kind)
}

func normalizeRaw(raw []byte, kind TableKind) (TableEnvelope, error) {
	// Bare row array.
	var rows []Row
	if err := json.Unmarshal(raw, &rows); err == nil {
		return NewRowSetFromRows(kind, "", rows).Envelope(), nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return TableEnvelope{}, fmt.Errorf("normalize table: unsupported shape: %w", err)
	}

	// Legacy {json: {...}} wrapper.
	if inner, ok := obj["json"]; ok {
		return normalizeRaw(inner, kind)
	}

	var env TableEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return TableEnvelope{}, fmt.Errorf("normalize table: %w", err)
	}
	return rebuildEnvelope(env, kind), nil
}

// rebuildEnvelope recomputes every derived field from the rows. A
// persisted subtotal is never trusted.
func rebuildEnvelope(env TableEnvelope, kind TableKind) TableEnvelope {
	rs := NewRowSetFromRows(kind, env.TableName, env.Rows)
	if kind == TableTrims && env.AdjustmentPercent > 0 {
		rs.AdjustmentPercent = env.AdjustmentPercent
	}
	out := rs.Envelope()
	if env.TableName == "" {
		out.TableName = ""
		out.Columns = nil
	}
	return out
}

func emptyEnvelope(kind TableKind) TableEnvelope {
	rs := NewRowSet(kind, "")
	out := rs.Envelope()
	out.Columns = nil
	return out
}

// NormalizeFabric maps any accepted fabric shape to the canonical
// aggregate envelope with every sub-table subtotal recomputed. A flat
// table (bare rows or a single envelope) lands wholesale in the yarn
// sub-table.
func NormalizeFabric(data any) (FabricEnvelope, error) {
	switch v := data.(type) {
	case nil:
		return rebuildFabricEnvelope(FabricEnvelope{}), nil
	case *FabricCost:
		return v.Envelope(), nil
	case FabricEnvelope:
		return rebuildFabricEnvelope(v), nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return FabricEnvelope{}, fmt.Errorf("normalize fabric: %w", err)
	}
	return normalizeFabricRaw(raw)
}

func normalizeFabricRaw(raw []byte) (FabricEnvelope, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		if inner, ok := obj["json"]; ok {
			return normalizeFabricRaw(inner)
		}
		if _, ok := obj["yarn"]; ok {
			var env FabricEnvelope
			if err := json.Unmarshal(raw, &env); err != nil {
				return FabricEnvelope{}, fmt.Errorf("normalize fabric: %w", err)
			}
			return rebuildFabricEnvelope(env), nil
		}
	}

	// Flat shape: single table of fabric rows.
	yarn, err := normalizeRaw(raw, TableYarn)
	if err != nil {
		return FabricEnvelope{}, err
	}
	return rebuildFabricEnvelope(FabricEnvelope{Yarn: yarn}), nil
}

// NormalizeFabricTotal maps any accepted fabric shape to the flat
// yarn + knitting + dyeing total.
func NormalizeFabricTotal(data any) (float64, error) {
	env, err := NormalizeFabric(data)
	if err != nil {
		return 0, err
	}
	return env.TotalFabricCost, nil
}

func fabricEnvelopeTotal(env FabricEnvelope) float64 {
	var total float64
	for _, sub := range []struct {
		env  TableEnvelope
		kind TableKind
	}{
		{env.Yarn, TableYarn},
		{env.Knitting, TableKnitting},
		{env.Dyeing, TableDyeing},
	} {
		total += rebuildEnvelope(sub.env, sub.kind).Subtotal
	}
	return total
}
