package accounting

import (
	"fmt"

	"github.com/corebanking/gl_backend/internal/apperrors"
	"github.com/corebanking/gl_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NetPosting is the collapsed effect of all same-account lines of one journal
// entry: a single positive magnitude plus the surviving direction.
type NetPosting struct {
	AccountID string
	Amount    domain.Money
	IsDebit   bool
}

// SignedAmount applies the correct sign to a posting magnitude based on the
// account's normal balance and the line direction.
// DEBIT to a debit-normal account  -> positive (+)
// CREDIT to a debit-normal account -> negative (-)
// DEBIT to a credit-normal account -> negative (-)
// CREDIT to a credit-normal account -> positive (+)
func SignedAmount(amount decimal.Decimal, isDebit bool, normal domain.NormalBalance) (decimal.Decimal, error) {
	switch normal {
	case domain.DebitNormal:
		if !isDebit {
			return amount.Neg(), nil
		}
	case domain.CreditNormal:
		if isDebit {
			return amount.Neg(), nil
		}
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown normal balance '%s'", apperrors.ErrValidation, normal)
	}
	return amount, nil
}

// NetPostings collapses an entry's lines into one net posting per account,
// processing lines in entry order. Same-direction lines add magnitudes;
// opposite-direction lines subtract the smaller from the larger, the larger
// side's direction winning. Equal magnitudes net to zero with the running
// direction unchanged. The returned slice preserves first-touch account order;
// zero-net accounts are kept so callers can decide to skip them.
//
// Netting two lines of different currencies on one account is a
// data-integrity fault and fails with ErrCurrencyMismatch.
func NetPostings(lines []domain.PostingLine) ([]NetPosting, error) {
	index := make(map[string]int, len(lines))
	var nets []NetPosting

	for _, line := range lines {
		i, seen := index[line.AccountID]
		if !seen {
			index[line.AccountID] = len(nets)
			nets = append(nets, NetPosting{
				AccountID: line.AccountID,
				Amount:    line.Amount,
				IsDebit:   line.IsDebit,
			})
			continue
		}

		running := nets[i]
		if running.Amount.CurrencyCode != line.Amount.CurrencyCode {
			return nil, fmt.Errorf("%w: account %s has lines in %s and %s within one entry",
				apperrors.ErrCurrencyMismatch, line.AccountID, running.Amount.CurrencyCode, line.Amount.CurrencyCode)
		}

		if running.IsDebit == line.IsDebit {
			sum, err := running.Amount.Add(line.Amount)
			if err != nil {
				return nil, err
			}
			running.Amount = sum
		} else {
			cmp, err := running.Amount.Cmp(line.Amount)
			if err != nil {
				return nil, err
			}
			switch {
			case cmp > 0:
				diff, err := running.Amount.Sub(line.Amount)
				if err != nil {
					return nil, err
				}
				running.Amount = diff
			case cmp < 0:
				diff, err := line.Amount.Sub(running.Amount)
				if err != nil {
					return nil, err
				}
				running.Amount = diff
				running.IsDebit = line.IsDebit
			default:
				// Direction is irrelevant once the amount is zero; keep the
				// running direction for the audit trail.
				running.Amount = domain.ZeroMoney(running.Amount.CurrencyCode)
			}
		}
		nets[i] = running
	}

	return nets, nil
}
