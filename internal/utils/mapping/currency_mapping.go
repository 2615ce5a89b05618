package mapping

import (
	"github.com/corebanking/gl_backend/internal/core/domain"
	"github.com/corebanking/gl_backend/internal/models"
)

// CurrencyToDomain converts a currency model to the domain form.
func CurrencyToDomain(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyCode: m.CurrencyCode,
		Symbol:       m.Symbol,
		Name:         m.Name,
		IsBase:       m.IsBase,
		AuditFields:  auditToDomain(m.AuditFields),
	}
}

// CurrencyToModel converts a domain currency to its database form.
func CurrencyToModel(c domain.Currency) models.Currency {
	return models.Currency{
		CurrencyCode: c.CurrencyCode,
		Symbol:       c.Symbol,
		Name:         c.Name,
		IsBase:       c.IsBase,
		AuditFields:  auditToModel(c.AuditFields),
	}
}

// ExchangeRateToDomain converts an exchange rate model to the domain form.
func ExchangeRateToDomain(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID:   m.ExchangeRateID,
		FromCurrencyCode: m.FromCurrencyCode,
		ToCurrencyCode:   m.ToCurrencyCode,
		Rate:             m.Rate,
		DateEffective:    m.DateEffective,
		AuditFields:      auditToDomain(m.AuditFields),
	}
}

// ExchangeRateToModel converts a domain exchange rate to its database form.
func ExchangeRateToModel(r domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID:   r.ExchangeRateID,
		FromCurrencyCode: r.FromCurrencyCode,
		ToCurrencyCode:   r.ToCurrencyCode,
		Rate:             r.Rate,
		DateEffective:    r.DateEffective,
		AuditFields:      auditToModel(r.AuditFields),
	}
}
