package services

// RequiredFabricKg converts a cost sheet's CAD consumption (kg per
// dozen) into the fabric to book for an order quantity given in pieces.
func RequiredFabricKg(cadConsumptionPerDzn, orderQtyPieces float64) float64 {
	return cadConsumptionPerDzn * orderQtyPieces / PiecesPerDozen
}

// RequiredFabricWithWastage adds a wastage allowance percent on top of
// the base requirement.
func RequiredFabricWithWastage(cadConsumptionPerDzn, orderQtyPieces, wastagePercent float64) float64 {
	base := RequiredFabricKg(cadConsumptionPerDzn, orderQtyPieces)
	return base + base*wastagePercent/100
}
