package dto

import (
	"time"

	"github.com/corebanking/gl_backend/internal/core/domain"
)

// CreatePeriodRequest defines the data needed to open a financial period.
type CreatePeriodRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required,gtfield=StartDate"`
}

// FinancialPeriodResponse defines the data returned for a financial period.
type FinancialPeriodResponse struct {
	PeriodID  string    `json:"periodID"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsClosed  bool      `json:"isClosed"`
}

// ToFinancialPeriodResponse converts a domain.FinancialPeriod to its DTO.
func ToFinancialPeriodResponse(p *domain.FinancialPeriod) FinancialPeriodResponse {
	return FinancialPeriodResponse{
		PeriodID:  p.PeriodID,
		Name:      p.Name,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		IsClosed:  p.IsClosed,
	}
}

// ToListFinancialPeriodResponse converts a slice of domain.FinancialPeriod to DTOs.
func ToListFinancialPeriodResponse(periods []domain.FinancialPeriod) []FinancialPeriodResponse {
	res := make([]FinancialPeriodResponse, len(periods))
	for i, p := range periods {
		res[i] = ToFinancialPeriodResponse(&p)
	}
	return res
}
