package calculator

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNoParticipants is returned when a split has nobody to divide the total between.
var ErrNoParticipants = errors.New("must have at least one participant")

// Share is one user's computed allocation of a bill.
type Share struct {
	UserID     string
	AmountDue  decimal.Decimal
	AmountPaid decimal.Decimal
}

// ComputeSplits divides total equally between participants and credits the payer.
//
// Algorithm:
//   - participants are de-duplicated, keeping first occurrence; n = len
//   - per_person = round(total / n, 2), half away from zero
//   - payer listed: every other participant owes per_person and the payer
//     is credited per_person × (n-1)
//   - payer not listed: every participant owes per_person and a payer row
//     crediting per_person × n is appended
//
// The payer absorbs all rounding error, so the credited amount can differ
// from total by a few cents (2 × 5.00 = 10.00 recorded for a 9.99 bill).
// The total is not validated: zero and negative totals are split as given.
func ComputeSplits(payerID string, participants []string, total decimal.Decimal) ([]Share, error) {
	ids := dedupe(participants)
	n := len(ids)
	if n == 0 {
		return nil, ErrNoParticipants
	}

	perPerson := total.Div(decimal.NewFromInt(int64(n))).Round(2)

	payerListed := false
	for _, id := range ids {
		if id == payerID {
			payerListed = true
			break
		}
	}

	shares := make([]Share, 0, n+1)
	if payerListed {
		for _, id := range ids {
			if id == payerID {
				shares = append(shares, Share{
					UserID:     id,
					AmountDue:  decimal.Zero,
					AmountPaid: perPerson.Mul(decimal.NewFromInt(int64(n - 1))),
				})
				continue
			}
			shares = append(shares, Share{UserID: id, AmountDue: perPerson, AmountPaid: decimal.Zero})
		}
		return shares, nil
	}

	for _, id := range ids {
		shares = append(shares, Share{UserID: id, AmountDue: perPerson, AmountPaid: decimal.Zero})
	}
	shares = append(shares, Share{
		UserID:     payerID,
		AmountDue:  decimal.Zero,
		AmountPaid: perPerson.Mul(decimal.NewFromInt(int64(n))),
	})
	return shares, nil
}

// dedupe drops repeated and empty IDs, keeping first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
