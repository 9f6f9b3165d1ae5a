package services

// TableEnvelope is the JSON projection of a row-set: the persisted wire
// shape and the shape handed to the summary aggregator. Subtotals are
// always recomputed from the rows before an envelope leaves this package.
type TableEnvelope struct {
	TableName string   `json:"tableName"`
	Columns   []string `json:"columns,omitempty"`
	Rows      []Row    `json:"rows"`
	Subtotal  float64  `json:"subtotal"`

	// Trims only.
	AdjustmentPercent float64 `json:"adjustmentPercent,omitempty"`
	Adjustment        float64 `json:"adjustment,omitempty"`
	Total             float64 `json:"total,omitempty"`
}

// Envelope projects the row-set into its wire shape.
func (rs *RowSet) Envelope() TableEnvelope {
	env := TableEnvelope{
		TableName: rs.TableName,
		Columns:   rs.Columns(),
		Rows:      rs.Rows,
		Subtotal:  rs.Subtotal(),
	}
	if rs.Rows == nil {
		env.Rows = []Row{}
	}
	if rs.Kind == TableTrims {
		env.AdjustmentPercent = rs.AdjustmentPercent
		env.Adjustment = rs.Adjustment()
		env.Total = rs.Total()
	}
	return env
}

// FabricCost groups the fabric sub-tables. PrintEmb rows round-trip
// with the record but do not contribute to the fabric total.
type FabricCost struct {
	Yarn     *RowSet
	Knitting *RowSet
	Dyeing   *RowSet
	PrintEmb *RowSet
}

// NewFabricCost creates the four empty fabric sub-tables.
func NewFabricCost() *FabricCost {
	return &FabricCost{
		Yarn:     NewRowSet(TableYarn, "Yarn Cost"),
		Knitting: NewRowSet(TableKnitting, "Knitting Cost"),
		Dyeing:   NewRowSet(TableDyeing, "Dyeing Cost"),
		PrintEmb: NewRowSet(TablePrintEmb, "Print & Emb Cost"),
	}
}

// TotalFabricCost sums yarn, knitting and dyeing.
func (fc *FabricCost) TotalFabricCost() float64 {
	return fc.Yarn.Subtotal() + fc.Knitting.Subtotal() + fc.Dyeing.Subtotal()
}

// FabricEnvelope is the persisted wire shape of the fabric aggregate.
type FabricEnvelope struct {
	TableName       string        `json:"tableName"`
	Yarn            TableEnvelope `json:"yarn"`
	Knitting        TableEnvelope `json:"knitting"`
	Dyeing          TableEnvelope `json:"dyeing"`
	PrintEmb        TableEnvelope `json:"printEmb"`
	TotalFabricCost float64       `json:"totalFabricCost"`
}

// Envelope projects the fabric aggregate into its wire shape.
func (fc *FabricCost) Envelope() FabricEnvelope {
	return FabricEnvelope{
		TableName:       "Fabric Cost",
		Yarn:            fc.Yarn.Envelope(),
		Knitting:        fc.Knitting.Envelope(),
		Dyeing:          fc.Dyeing.Envelope(),
		PrintEmb:        fc.PrintEmb.Envelope(),
		TotalFabricCost: fc.TotalFabricCost(),
	}
}
