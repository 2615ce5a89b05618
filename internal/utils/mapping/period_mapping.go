package mapping

import (
	"github.com/corebanking/gl_backend/internal/core/domain"
	"github.com/corebanking/gl_backend/internal/models"
)

// PeriodToDomain converts a financial period model to the domain form.
func PeriodToDomain(m models.FinancialPeriod) domain.FinancialPeriod {
	return domain.FinancialPeriod{
		PeriodID:    m.PeriodID,
		Name:        m.Name,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		IsClosed:    m.IsClosed,
		AuditFields: auditToDomain(m.AuditFields),
	}
}

// PeriodToModel converts a domain financial period to its database form.
func PeriodToModel(p domain.FinancialPeriod) models.FinancialPeriod {
	return models.FinancialPeriod{
		PeriodID:    p.PeriodID,
		Name:        p.Name,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		IsClosed:    p.IsClosed,
		AuditFields: auditToModel(p.AuditFields),
	}
}
