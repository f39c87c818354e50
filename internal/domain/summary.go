package domain

import "github.com/shopspring/decimal"

// Summary is the set of headline metrics computed over a record set.
// Sums are plain integers; the derived per-unit ratios are decimals so that
// rounding is explicit instead of an accident of float formatting.
type Summary struct {
	TotalIncome   int64   `json:"total_income"`   // won, money-counting types
	TotalExpense  int64   `json:"total_expense"`  // won, includes fuel
	NetIncome     int64   `json:"net_income"`     // income − expense
	TotalDistance float64 `json:"total_distance"` // km, trip records only
	TripCount     int     `json:"trip_count"`
	FuelCost      int64   `json:"fuel_cost"`   // won, fuel records only
	FuelLiters    float64 `json:"fuel_liters"` // L, fuel records only

	// FuelEconomy is distance/liters in km/L, zero when no fuel was logged.
	FuelEconomy decimal.Decimal `json:"fuel_economy"`
	// CostPerKm is expense/distance in won/km, zero when no distance was logged.
	CostPerKm decimal.Decimal `json:"cost_per_km"`
	// SubsidyUsedPct is min(100, 100·liters/limit) against the monthly
	// subsidy litre limit, zero when no limit is configured.
	SubsidyUsedPct decimal.Decimal `json:"subsidy_used_pct"`

	OperatingDays   int   `json:"operating_days"`
	DurationMinutes int64 `json:"duration_minutes"`
}

// BucketKind selects the aggregation granularity.
type BucketKind string

const (
	BucketDay   BucketKind = "day"   // one row per operating day of a month
	BucketWeek  BucketKind = "week"  // one row per week-of-month
	BucketMonth BucketKind = "month" // one row per month of a year
	BucketYear  BucketKind = "year"  // one row per year
)

// Valid reports whether k is a known bucket kind.
func (k BucketKind) Valid() bool {
	switch k {
	case BucketDay, BucketWeek, BucketMonth, BucketYear:
		return true
	}
	return false
}

// BucketRow is one aggregated row of a day/week/month/year table.
// Expense here excludes fuel; fuel is broken out so the net column matches
// what the driver settles against: income − expense − fuel.
type BucketRow struct {
	// Key names the bucket: "2024-03-01" (day), "3" (week of month),
	// "2024-03" (month), "2024" (year).
	Key             string  `json:"key"`
	Income          int64   `json:"income"`
	Expense         int64   `json:"expense"` // non-fuel
	Fuel            int64   `json:"fuel"`
	Net             int64   `json:"net"`
	Distance        float64 `json:"distance"`
	TripCount       int     `json:"trip_count"`
	DurationMinutes int64   `json:"duration_minutes"`
}

// SubsidyGauge reports monthly subsidy consumption for the gauge view.
type SubsidyGauge struct {
	LimitLiters     float64         `json:"limit_liters"`
	UsedLiters      float64         `json:"used_liters"`
	RemainingLiters float64         `json:"remaining_liters"`
	UsedPct         decimal.Decimal `json:"used_pct"`
}

// TripSeriesPoint is one month of the rolling trip-count series.
type TripSeriesPoint struct {
	Month string `json:"month"` // "2024-03"
	Trips int    `json:"trips"`
}

// MonthSnapshot is the live view of the current operating month: the summary
// plus the subsidy gauge.
type MonthSnapshot struct {
	Month   string       `json:"month"` // "2024-03"
	Summary Summary      `json:"summary"`
	Subsidy SubsidyGauge `json:"subsidy"`
}

// CumulativeSnapshot is the all-time view. CorrectedDistance adds the
// configured mileage correction (distance driven before record-keeping
// started) on top of the summed trip distance; the summary's per-km ratios
// are computed against the corrected figure.
type CumulativeSnapshot struct {
	Summary           Summary `json:"summary"`
	CorrectedDistance float64 `json:"corrected_distance"`
}

// FuelPage is one page of the fuel record history, newest first.
type FuelPage struct {
	Records []Record `json:"records"`
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
	Total   int64    `json:"total"`
}
