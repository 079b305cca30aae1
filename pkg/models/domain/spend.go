package domain

import "time"

// SpendRecord is one day of billed usage for a service, as reported by the
// billing backend.
type SpendRecord struct {
	Date     time.Time
	Service  string
	Amount   float64
	Currency string
}
