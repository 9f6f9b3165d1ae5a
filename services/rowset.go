// Package services provides the cost computation core: row-set math,
// summary aggregation, payload assembly and export generation.
package services

import (
	"fmt"
	"regexp"
	"strconv"
)

// TableKind identifies which value formula a row-set uses.
type TableKind string

const (
	TableCAD      TableKind = "cad"
	TableYarn     TableKind = "yarn"
	TableKnitting TableKind = "knitting"
	TableDyeing   TableKind = "dyeing"
	TablePrintEmb TableKind = "printemb"
	TableTrims    TableKind = "trims"
	TableOthers   TableKind = "others"
)

// DefaultAdjustmentPercent is the trims & accessories cost adjustment
// applied on top of the trims subtotal.
const DefaultAdjustmentPercent = 8.0

// decimalPattern accepts digits with at most one decimal point.
// The empty string is allowed so a field can be cleared.
var decimalPattern = regexp.MustCompile(`^\d*\.?\d*$`)

// Row is one cost line. Numeric inputs stay as-entered strings until
// computation time so partially typed values ("3.") survive editing;
// Value is always a pure function of the row's own inputs.
type Row struct {
	ID        string  `json:"id"`
	FieldName string  `json:"fieldName"`
	Weight    string  `json:"weight,omitempty"`
	Percent   string  `json:"percent,omitempty"`
	Unit      string  `json:"unit,omitempty"`
	Rate      string  `json:"rate,omitempty"`
	Cost      string  `json:"cost,omitempty"`
	Value     float64 `json:"value"`
}

// RowSet is an ordered, editable list of rows belonging to one cost
// category. Row order matters for display only, never for totals.
type RowSet struct {
	TableName         string
	Kind              TableKind
	Rows              []Row
	AdjustmentPercent float64 // trims only
	nextID            int
}

// NewRowSet creates an empty row-set for the given kind.
func NewRowSet(kind TableKind, tableName string) *RowSet {
	rs := &RowSet{TableName: tableName, Kind: kind, nextID: 1}
	if kind == TableTrims {
		rs.AdjustmentPercent = DefaultAdjustmentPercent
	}
	return rs
}

// NewRowSetFromRows creates a row-set seeded with existing rows
// (e.g. a default template or a loaded record). Row values are
// recomputed so stale persisted values cannot leak through.
func NewRowSetFromRows(kind TableKind, tableName string, rows []Row) *RowSet {
	rs := NewRowSet(kind, tableName)
	for _, r := range rows {
		if r.ID == "" {
			r.ID = strconv.Itoa(rs.nextID)
		}
		r.Value = rowValue(kind, r)
		rs.Rows = append(rs.Rows, r)
		rs.nextID++
	}
	return rs
}

// Columns returns the editable column names for this table kind.
func (rs *RowSet) Columns() []string {
	switch rs.Kind {
	case TableCAD:
		return []string{"fieldName", "weight", "percent", "value"}
	case TableYarn, TableKnitting, TableDyeing, TablePrintEmb:
		return []string{"fieldName", "unit", "rate", "value"}
	default:
		return []string{"fieldName", "cost", "value"}
	}
}

// AddRow appends an empty row and returns it.
func (rs *RowSet) AddRow() Row {
	row := Row{ID: strconv.Itoa(rs.nextID)}
	rs.nextID++
	rs.Rows = append(rs.Rows, row)
	return row
}

// DeleteRow removes exactly one row by id. It reports whether a row
// was removed.
func (rs *RowSet) DeleteRow(id string) bool {
	for i, r := range rs.Rows {
		if r.ID == id {
			rs.Rows = append(rs.Rows[:i], rs.Rows[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateField sets a field on one row. Numeric fields are validated
// against the decimal pattern; non-matching input is rejected with no
// state change. The row value is recomputed synchronously whenever a
// contributing field changes.
func (rs *RowSet) UpdateField(id, field, raw string) error {
	idx := -1
	for i, r := range rs.Rows {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("row %q not found in %s", id, rs.TableName)
	}

	row := &rs.Rows[idx]
	if field == "fieldName" {
		row.FieldName = raw
		return nil
	}

	if !decimalPattern.MatchString(raw) {
		return fmt.Errorf("invalid numeric input %q for %s.%s", raw, rs.TableName, field)
	}

	switch field {
	case "weight":
		row.Weight = raw
	case "percent":
		row.Percent = raw
	case "unit":
		row.Unit = raw
	case "rate":
		row.Rate = raw
	case "cost":
		row.Cost = raw
	default:
		return fmt.Errorf("unknown field %q for %s", field, rs.TableName)
	}

	row.Value = rowValue(rs.Kind, *row)
	return nil
}

// Subtotal sums the row values.
func (rs *RowSet) Subtotal() float64 {
	var sum float64
	for _, r := range rs.Rows {
		sum += r.Value
	}
	return sum
}

// Adjustment is the trims cost adjustment (subtotal * percent / 100).
// Zero for every other table kind.
func (rs *RowSet) Adjustment() float64 {
	if rs.Kind != TableTrims {
		return 0
	}
	return rs.Subtotal() * rs.AdjustmentPercent / 100
}

// Total is the subtotal plus the trims adjustment where applicable.
func (rs *RowSet) Total() float64 {
	return rs.Subtotal() + rs.Adjustment()
}

// rowValue computes a row's value from its own inputs only.
func rowValue(kind TableKind, r Row) float64 {
	switch kind {
	case TableCAD:
		w := toNumber(r.Weight)
		return w + w*toNumber(r.Percent)/100
	case TableYarn, TableKnitting, TableDyeing, TablePrintEmb:
		return toNumber(r.Unit) * toNumber(r.Rate)
	default:
		return toNumber(r.Cost)
	}
}

// toNumber coerces an as-entered string to a float. Empty and
// unparseable input both count as zero.
func toNumber(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
