package domain

import "time"

// RouteKey identifies a directional route. Direction matters: (A, B) and
// (B, A) recall independently. The pair is kept as two fields end to end —
// it is never joined into a single string, so a location name containing a
// separator character cannot collide with another route.
type RouteKey struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Zero reports whether either endpoint is missing.
func (k RouteKey) Zero() bool {
	return k.From == "" || k.To == ""
}

// RouteRecall is the remembered fare, distance and cost for a route. A zero
// field means "never recorded"; the three values are written and recalled
// independently.
type RouteRecall struct {
	Key       RouteKey  `json:"key"`
	Fare      int64     `json:"fare"`     // won
	Distance  float64   `json:"distance"` // km
	Cost      int64     `json:"cost"`     // won
	UpdatedAt time.Time `json:"updated_at"`
}
