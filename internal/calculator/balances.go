package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Swagat404/SettleUp/internal/models"
)

// settleEpsilon is the smallest amount worth suggesting as a payment.
var settleEpsilon = decimal.New(1, -2)

// NetBalance aggregates a user's splits and direct payments into an
// owed/lent position.
//
//	owed = round(Σ amount_due  - Σ paidOut,  2)
//	lent = round(Σ amount_paid - Σ received, 2)
//
// Results may be negative (overpayment) and are not clamped. The function
// has no hidden inputs: the caller decides the scope by what it passes in.
func NetBalance(splits []models.Split, paidOut, received []models.PaymentTransaction) models.Balance {
	grossDue := decimal.Zero
	grossPaid := decimal.Zero
	for _, s := range splits {
		grossDue = grossDue.Add(s.AmountDue)
		grossPaid = grossPaid.Add(s.AmountPaid)
	}

	return models.Balance{
		Owed: grossDue.Sub(sumPayments(paidOut)).Round(2),
		Lent: grossPaid.Sub(sumPayments(received)).Round(2),
	}
}

func sumPayments(payments []models.PaymentTransaction) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// MemberPositions computes each user's net position from a group's splits
// and payments: what they are owed minus what they owe.
//
// Payments move positions the same way NetBalance does: paying reduces what
// the payer owes, receiving reduces what the payee is owed. Users are
// returned sorted by ID.
func MemberPositions(splits []models.Split, payments []models.PaymentTransaction) []models.MemberPosition {
	net := make(map[string]decimal.Decimal)
	add := func(id string, d decimal.Decimal) {
		net[id] = net[id].Add(d)
	}

	for _, s := range splits {
		add(s.UserID, s.AmountPaid.Sub(s.AmountDue))
	}
	for _, p := range payments {
		add(p.PayerID, p.Amount)
		add(p.PayeeID, p.Amount.Neg())
	}

	ids := make([]string, 0, len(net))
	for id := range net {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	positions := make([]models.MemberPosition, len(ids))
	for i, id := range ids {
		positions[i] = models.MemberPosition{UserID: id, Net: net[id].Round(2)}
	}
	return positions
}

// SimplifyDebts suggests payments that settle every position.
//
// Greedy matching: debtors and creditors are each ordered by amount
// (largest first); the largest debtor pays the largest creditor the smaller
// of the two amounts until one side is exhausted. Amounts under one cent
// are treated as settled.
func SimplifyDebts(positions []models.MemberPosition) []models.DebtEdge {
	var creditors, debtors []models.MemberPosition
	for _, p := range positions {
		switch {
		case p.Net.GreaterThanOrEqual(settleEpsilon):
			creditors = append(creditors, p)
		case p.Net.LessThanOrEqual(settleEpsilon.Neg()):
			debtors = append(debtors, models.MemberPosition{UserID: p.UserID, Net: p.Net.Neg()})
		}
	}
	byAmount := func(s []models.MemberPosition) {
		sort.SliceStable(s, func(i, j int) bool {
			if c := s[i].Net.Cmp(s[j].Net); c != 0 {
				return c > 0
			}
			return s[i].UserID < s[j].UserID
		})
	}
	byAmount(creditors)
	byAmount(debtors)

	var edges []models.DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtors[i].Net, creditors[j].Net)
		if amount.GreaterThanOrEqual(settleEpsilon) {
			edges = append(edges, models.DebtEdge{
				From:   debtors[i].UserID,
				To:     creditors[j].UserID,
				Amount: amount,
			})
		}

		debtors[i].Net = debtors[i].Net.Sub(amount)
		creditors[j].Net = creditors[j].Net.Sub(amount)

		// Move to next debtor/creditor if fully settled
		if debtors[i].Net.LessThan(settleEpsilon) {
			i++
		}
		if creditors[j].Net.LessThan(settleEpsilon) {
			j++
		}
	}
	return edges
}
