// Package domain contains the core data types for the Haulbook ledger.
// This package holds no business logic beyond pure calendar arithmetic and is
// imported by every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// RecordType is the closed set of ledger record kinds.
// Every switch over RecordType in service code handles all eight values;
// anything else is rejected at the validation boundary.
type RecordType string

const (
	// TypeTrip is a paid haul from one location to another.
	TypeTrip RecordType = "trip"
	// TypeWaiting is paid standby time at a location.
	TypeWaiting RecordType = "waiting"
	// TypeTripCancelled marks a dispatch that was called off. Excluded from
	// money totals but kept for listings and duration.
	TypeTripCancelled RecordType = "trip_cancelled"
	// TypeTripEnded marks the driver going off duty. The time gap that follows
	// it is not counted as working time.
	TypeTripEnded RecordType = "trip_ended"
	// TypeFuel is a refuelling stop.
	TypeFuel RecordType = "fuel"
	// TypeExpense is a general expense (tolls, repairs, meals...).
	TypeExpense RecordType = "expense"
	// TypeIncome is income not tied to a haul.
	TypeIncome RecordType = "income"
	// TypeSupply is a consumable purchase (urea, wiper blades...).
	TypeSupply RecordType = "supply"
)

// Valid reports whether t is one of the eight known record types.
func (t RecordType) Valid() bool {
	switch t {
	case TypeTrip, TypeWaiting, TypeTripCancelled, TypeTripEnded,
		TypeFuel, TypeExpense, TypeIncome, TypeSupply:
		return true
	}
	return false
}

// CountsForMoney reports whether records of this type contribute to income and
// expense totals. Cancelled and ended markers appear in listings and duration
// computation but never in money sums.
func (t RecordType) CountsForMoney() bool {
	return t != TypeTripCancelled && t != TypeTripEnded
}

// InDutyWindow reports whether this type participates in working-duration
// computation (the trip family of types).
func (t RecordType) InDutyWindow() bool {
	switch t {
	case TypeTrip, TypeWaiting, TypeTripCancelled, TypeTripEnded:
		return true
	}
	return false
}

// Record is a single ledger entry. Money amounts are integer won; distances
// and volumes are floating km / litres.
//
// A record is never implicitly mutated: updates replace every field except ID
// and, unless the caller re-stamps them, Date and Time.
type Record struct {
	ID   uuid.UUID          `json:"id"`
	Date openapi_types.Date `json:"date"`
	// Time is the wall-clock of the event as "HH:MM". It is kept separate
	// from Date because the operating-day rule needs the raw clock hour.
	Time string     `json:"time"`
	Type RecordType `json:"type"`

	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`

	Distance float64 `json:"distance"` // km
	Income   int64   `json:"income"`   // won
	Cost     int64   `json:"cost"`     // won

	// Fuel-type fields.
	Liters    float64 `json:"liters,omitempty"`
	UnitPrice int64   `json:"unit_price,omitempty"`
	Brand     string  `json:"brand,omitempty"`
	Subsidy   int64   `json:"subsidy,omitempty"` // won of subsidy applied

	// Expense / supply item labels, fed into the autocomplete vocabulary.
	ExpenseItem string `json:"expense_item,omitempty"`
	SupplyItem  string `json:"supply_item,omitempty"`

	// Mileage is the odometer reading at the time of the record, if noted.
	Mileage float64 `json:"mileage,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OccurredAt combines Date and Time into a single instant for ordering and
// duration arithmetic. A malformed or empty Time counts as midnight.
func (r Record) OccurredAt() time.Time {
	h, m := splitClock(r.Time)
	d := r.Date.Time
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, time.UTC)
}

// OperatingDate returns the operating day this record is bucketed under.
func (r Record) OperatingDate() time.Time {
	return OperatingDay(r.Date.Time, r.Time)
}

// RecordFilter narrows a record listing. Zero-value fields do not filter.
// From and To bound the operating day (inclusive on both ends).
type RecordFilter struct {
	From *time.Time
	To   *time.Time
	Type RecordType
}

// Matches reports whether r passes the filter.
func (f RecordFilter) Matches(r Record) bool {
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	day := r.OperatingDate()
	if f.From != nil && day.Before(*f.From) {
		return false
	}
	if f.To != nil && day.After(*f.To) {
		return false
	}
	return true
}
