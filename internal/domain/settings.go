package domain

// Settings are the two scalar knobs of the ledger.
type Settings struct {
	// FuelSubsidyLimit is the monthly subsidized-fuel allowance in litres.
	FuelSubsidyLimit float64 `json:"fuel_subsidy_limit"`
	// MileageCorrection is distance in km driven before record-keeping
	// started, added to the cumulative total.
	MileageCorrection float64 `json:"mileage_correction"`
}

// SettingsPatch is a partial settings update; nil fields are left unchanged.
type SettingsPatch struct {
	FuelSubsidyLimit  *float64 `json:"fuel_subsidy_limit,omitempty"`
	MileageCorrection *float64 `json:"mileage_correction,omitempty"`
}
