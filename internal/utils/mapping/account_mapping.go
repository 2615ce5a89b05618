package mapping

import (
	"github.com/corebanking/gl_backend/internal/core/domain"
	"github.com/corebanking/gl_backend/internal/models"
)

// AccountToDomain converts a database account model to its domain form,
// rehydrating the stored decimal balance into Money denominated in the
// account's currency.
func AccountToDomain(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		AccountNumber:   m.AccountNumber,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		Classification:  domain.AccountClassification(m.Classification),
		NormalBalance:   domain.NormalBalance(m.NormalBalance),
		CurrencyCode:    m.CurrencyCode,
		Balance:         domain.NewMoney(m.Balance, m.CurrencyCode),
		IsActive:        m.IsActive,
		ParentAccountID: m.ParentAccountID,
		Description:     m.Description,
		AuditFields:     auditToDomain(m.AuditFields),
	}
}

// AccountToModel converts a domain account to its database form.
func AccountToModel(a domain.Account) models.Account {
	return models.Account{
		AccountID:       a.AccountID,
		AccountNumber:   a.AccountNumber,
		Name:            a.Name,
		AccountType:     models.AccountType(a.AccountType),
		Classification:  models.AccountClassification(a.Classification),
		NormalBalance:   models.NormalBalance(a.NormalBalance),
		CurrencyCode:    a.CurrencyCode,
		Balance:         a.Balance.Amount,
		IsActive:        a.IsActive,
		ParentAccountID: a.ParentAccountID,
		Description:     a.Description,
		AuditFields:     auditToModel(a.AuditFields),
	}
}

// AccountsToDomain converts a slice of account models.
func AccountsToDomain(ms []models.Account) []domain.Account {
	out := make([]domain.Account, 0, len(ms))
	for _, m := range ms {
		out = append(out, AccountToDomain(m))
	}
	return out
}
