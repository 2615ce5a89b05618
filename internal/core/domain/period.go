package domain

import "time"

// FinancialPeriod is an accounting period journal entries are posted into.
// Closed periods reject new postings.
type FinancialPeriod struct {
	PeriodID  string    `json:"periodID"` // Primary Key (UUID)
	Name      string    `json:"name"`     // e.g., "2026-08"
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsClosed  bool      `json:"isClosed"`
	AuditFields
}

// Contains reports whether the given date falls within the period bounds.
func (p *FinancialPeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}
