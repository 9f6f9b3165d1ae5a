package services

// Default summary overrides. Factory CM and every other cost field in
// this system is quoted per dozen garments.
const (
	DefaultFactoryCM         = 14.0
	DefaultCommercialPercent = 15.0
	DefaultProfitPercent     = 0.0
)

// PiecesPerDozen converts the per-dozen FOB price to a per-piece price.
const PiecesPerDozen = 12.0

// SummaryInputs are the three scalar overrides. They are the only
// summary fields ever persisted; the chain is re-derived on every read.
type SummaryInputs struct {
	FactoryCM         float64 `json:"factoryCM"`
	CommercialPercent float64 `json:"commercialPercent"`
	ProfitPercent     float64 `json:"profitPercent"`
}

// DefaultSummaryInputs returns the seeded overrides for a new sheet.
func DefaultSummaryInputs() SummaryInputs {
	return SummaryInputs{
		FactoryCM:         DefaultFactoryCM,
		CommercialPercent: DefaultCommercialPercent,
		ProfitPercent:     DefaultProfitPercent,
	}
}

// SummaryChain is the full derived cost cascade. Profit is applied on
// the commercial-inclusive base.
type SummaryChain struct {
	FabricCost              float64 `json:"fabricCost"`
	AccessoriesCost         float64 `json:"accessoriesCost"`
	OthersTotal             float64 `json:"othersTotal"`
	FactoryCM               float64 `json:"factoryCM"`
	CommercialPercent       float64 `json:"commercialPercent"`
	ProfitPercent           float64 `json:"profitPercent"`
	TotalCost               float64 `json:"totalCost"`
	CommercialCost          float64 `json:"commercialCost"`
	TotalCostWithCommercial float64 `json:"totalCostWithCommercial"`
	ProfitCost              float64 `json:"profitCost"`
	FOBPrice                float64 `json:"fobPrice"`
	PricePerPiece           float64 `json:"pricePerPiece"`
}

// ComputeSummary derives the full chain from flat table totals and the
// scalar overrides:
//
//	totalCost               = fabricCost + accessoriesCost + factoryCM + othersTotal
//	commercialCost          = totalCost * commercialPercent/100
//	totalCostWithCommercial = totalCost + commercialCost
//	profitCost              = totalCostWithCommercial * profitPercent/100
//	fobPrice                = totalCostWithCommercial + profitCost
//	pricePerPiece           = fobPrice / 12
func ComputeSummary(fabricCost, accessoriesCost, othersTotal float64, in SummaryInputs) SummaryChain {
	totalCost := fabricCost + accessoriesCost + in.FactoryCM + othersTotal
	commercialCost := totalCost * in.CommercialPercent / 100
	withCommercial := totalCost + commercialCost
	profitCost := withCommercial * in.ProfitPercent / 100
	fob := withCommercial + profitCost

	return SummaryChain{
		FabricCost:              fabricCost,
		AccessoriesCost:         accessoriesCost,
		OthersTotal:             othersTotal,
		FactoryCM:               in.FactoryCM,
		CommercialPercent:       in.CommercialPercent,
		ProfitPercent:           in.ProfitPercent,
		TotalCost:               totalCost,
		CommercialCost:          commercialCost,
		TotalCostWithCommercial: withCommercial,
		ProfitCost:              profitCost,
		FOBPrice:                fob,
		PricePerPiece:           fob / PiecesPerDozen,
	}
}

// Aggregate normalizes the fabric, trims and others inputs (each may be
// a bare row array, a {rows: ...} envelope or a {json: {...}} wrapper)
// and derives the summary chain. The trims adjustment is taken from the
// trims envelope exactly once, never re-applied here.
func Aggregate(fabricData, trimsData, othersData any, in SummaryInputs) (SummaryChain, error) {
	fabricCost, err := NormalizeFabricTotal(fabricData)
	if err != nil {
		return SummaryChain{}, err
	}

	trims, err := NormalizeTable(trimsData, TableTrims)
	if err != nil {
		return SummaryChain{}, err
	}
	accessories := trims.Subtotal + trims.Subtotal*trims.AdjustmentPercent/100

	others, err := NormalizeTable(othersData, TableOthers)
	if err != nil {
		return SummaryChain{}, err
	}

	return ComputeSummary(fabricCost, accessories, others.Subtotal, in), nil
}
