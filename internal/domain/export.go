package domain

// ExportDocument bundles every persisted store into one JSON document.
// All fields are pointers: on import, a nil field means "key absent, leave
// that store untouched", while a present field replaces its store wholesale.
// Export always populates every field.
type ExportDocument struct {
	Records      *[]Record                `json:"records,omitempty"`
	Locations    *map[string]LocationInfo `json:"saved_locations,omitempty"`
	Fares        *[]RouteAmount           `json:"saved_fares,omitempty"`
	Distances    *[]RouteAmount           `json:"saved_distances,omitempty"`
	Costs        *[]RouteAmount           `json:"saved_costs,omitempty"`
	Centers      *[]string                `json:"logistics_centers,omitempty"`
	ExpenseItems *[]string                `json:"saved_expense_items,omitempty"`

	FuelSubsidyLimit  *float64 `json:"fuel_subsidy_limit,omitempty"`
	MileageCorrection *float64 `json:"mileage_correction,omitempty"`
}

// LocationInfo is the address/memo payload of a saved location, keyed by name
// in the export document.
type LocationInfo struct {
	Address string `json:"address,omitempty"`
	Memo    string `json:"memo,omitempty"`
}

// RouteAmount is one recalled value for a directional route. The endpoints
// are explicit fields rather than a joined "from-to" string, so names that
// themselves contain a hyphen round-trip safely.
type RouteAmount struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}
