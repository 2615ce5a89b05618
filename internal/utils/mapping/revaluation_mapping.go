package mapping

import (
	"github.com/corebanking/gl_backend/internal/core/domain"
	"github.com/corebanking/gl_backend/internal/models"
)

// RevaluationToModel converts a domain currency revaluation header to its
// database form. Details are mapped via RevaluationDetailsToModel.
func RevaluationToModel(r domain.CurrencyRevaluation) models.CurrencyRevaluation {
	return models.CurrencyRevaluation{
		RevaluationID:     r.RevaluationID,
		FinancialPeriodID: r.FinancialPeriodID,
		RevaluationDate:   r.RevaluationDate,
		CurrencyCode:      r.CurrencyCode,
		PreviousRate:      r.PreviousRate,
		CurrentRate:       r.CurrentRate,
		ForeignAmount:     r.ForeignAmount,
		PreviousBaseValue: r.PreviousBaseValue,
		CurrentBaseValue:  r.CurrentBaseValue,
		UnrealizedGain:    r.UnrealizedGain,
		UnrealizedLoss:    r.UnrealizedLoss,
		AuditFields:       auditToModel(r.AuditFields),
	}
}

// RevaluationToDomain converts a revaluation model plus its detail rows to
// the domain form.
func RevaluationToDomain(m models.CurrencyRevaluation, details []models.AccountRevaluationDetail) domain.CurrencyRevaluation {
	r := domain.CurrencyRevaluation{
		RevaluationID:     m.RevaluationID,
		FinancialPeriodID: m.FinancialPeriodID,
		RevaluationDate:   m.RevaluationDate,
		CurrencyCode:      m.CurrencyCode,
		PreviousRate:      m.PreviousRate,
		CurrentRate:       m.CurrentRate,
		ForeignAmount:     m.ForeignAmount,
		PreviousBaseValue: m.PreviousBaseValue,
		CurrentBaseValue:  m.CurrentBaseValue,
		UnrealizedGain:    m.UnrealizedGain,
		UnrealizedLoss:    m.UnrealizedLoss,
		AuditFields:       auditToDomain(m.AuditFields),
	}
	for _, d := range details {
		r.Details = append(r.Details, domain.AccountRevaluationDetail{
			AccountID:         d.AccountID,
			ForeignAmount:     d.ForeignAmount,
			PreviousBaseValue: d.PreviousBaseValue,
			CurrentBaseValue:  d.CurrentBaseValue,
			Effect:            d.Effect,
		})
	}
	return r
}

// RevaluationDetailsToModel converts domain per-account detail rows for one
// revaluation record to their database form.
func RevaluationDetailsToModel(revaluationID string, details []domain.AccountRevaluationDetail) []models.AccountRevaluationDetail {
	out := make([]models.AccountRevaluationDetail, 0, len(details))
	for _, d := range details {
		out = append(out, models.AccountRevaluationDetail{
			RevaluationID:     revaluationID,
			AccountID:         d.AccountID,
			ForeignAmount:     d.ForeignAmount,
			PreviousBaseValue: d.PreviousBaseValue,
			CurrentBaseValue:  d.CurrentBaseValue,
			Effect:            d.Effect,
		})
	}
	return out
}
