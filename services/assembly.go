package services

// StyleInfo is the header block of a cost sheet.
type StyleInfo struct {
	Style      string  `json:"style"`
	Item       string  `json:"item"`
	Group      string  `json:"group"`
	Size       string  `json:"size"`
	FabricType string  `json:"fabricType"`
	GSM        string  `json:"gsm"`
	Color      string  `json:"color"`
	Quantity   float64 `json:"quantity"`
}

// CostSheetPayload is the canonical JSON envelope persisted for a cost
// sheet: the style header, the four row-set envelopes and the three
// scalar summary overrides. Derived summary values are never part of
// the payload.
type CostSheetPayload struct {
	StyleInfo
	CadConsumption   TableEnvelope  `json:"cadConsumption"`
	FabricCost       FabricEnvelope `json:"fabricCost"`
	TrimsAccessories TableEnvelope  `json:"trimsAccessories"`
	Others           TableEnvelope  `json:"others"`
	Summary          SummaryInputs  `json:"summary"`
	CreatedBy        string         `json:"createdBy,omitempty"`
}

// Assemble packages the current row-sets into the canonical payload.
// Every subtotal and total is recomputed here from the rows; cached
// totals are never trusted.
func Assemble(info StyleInfo, cad *RowSet, fabric *FabricCost, trims *RowSet, overrides SummaryInputs, others *RowSet) CostSheetPayload {
	return CostSheetPayload{
		StyleInfo:        info,
		CadConsumption:   cad.Envelope(),
		FabricCost:       fabric.Envelope(),
		TrimsAccessories: trims.Envelope(),
		Others:           others.Envelope(),
		Summary:          overrides,
	}
}

// Recompute rebuilds every derived field of a payload from its rows.
// Applied to every inbound payload before persistence so a client can
// never store a subtotal its rows do not add up to.
func (p CostSheetPayload) Recompute() CostSheetPayload {
	p.CadConsumption = rebuildEnvelope(p.CadConsumption, TableCAD)
	p.FabricCost = rebuildFabricEnvelope(p.FabricCost)
	p.TrimsAccessories = rebuildEnvelope(p.TrimsAccessories, TableTrims)
	p.Others = rebuildEnvelope(p.Others, TableOthers)
	return p
}

// Chain derives the summary cascade from the payload's row-sets and
// scalar overrides. Show and edit modes both read totals from here,
// which is what keeps them identical.
func (p CostSheetPayload) Chain() SummaryChain {
	trims := rebuildEnvelope(p.TrimsAccessories, TableTrims)
	others := rebuildEnvelope(p.Others, TableOthers)
	return ComputeSummary(
		fabricEnvelopeTotal(p.FabricCost),
		trims.Subtotal+trims.Subtotal*trims.AdjustmentPercent/100,
		others.Subtotal,
		p.Summary,
	)
}

func rebuildFabricEnvelope(env FabricEnvelope) FabricEnvelope {
	env.Yarn = rebuildEnvelope(env.Yarn, TableYarn)
	env.Knitting = rebuildEnvelope(env.Knitting, TableKnitting)
	env.Dyeing = rebuildEnvelope(env.Dyeing, TableDyeing)
	env.PrintEmb = rebuildEnvelope(env.PrintEmb, TablePrintEmb)
	env.TotalFabricCost = env.Yarn.Subtotal + env.Knitting.Subtotal + env.Dyeing.Subtotal
	if env.TableName == "" {
		env.TableName = "Fabric Cost"
	}
	return env
}
