package service

import (
	"github.com/shopspring/decimal"

	"github.com/Swagat404/SettleUp/internal/ledger"
	"github.com/Swagat404/SettleUp/internal/models"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toUser(u *models.User) User {
	return User{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func toMember(m *models.Member) Member {
	return Member{UserID: m.UserID, Name: m.Name, Email: m.Email, JoinedAt: m.JoinedAt}
}

func toGroup(g *models.Group) Group {
	return Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedBy:   g.CreatedBy,
		CreatedAt:   g.CreatedAt,
	}
}

func toGroupDetails(d *ledger.GroupDetails) Group {
	g := toGroup(d.Group)
	g.Members = make([]Member, len(d.Members))
	for i, m := range d.Members {
		g.Members[i] = toMember(m)
	}
	return g
}

func toBill(b *models.Bill) Bill {
	out := Bill{
		ID:          b.ID,
		GroupID:     b.GroupID,
		UploadedBy:  b.UploadedBy,
		TotalAmount: money(b.TotalAmount),
		CreatedAt:   b.CreatedAt,
	}
	for _, item := range b.Items {
		out.Items = append(out.Items, Item{
			ID:         item.ID,
			Name:       item.Name,
			Quantity:   item.Quantity.String(),
			TotalPrice: money(item.TotalPrice),
		})
	}
	return out
}

func toSplits(splits []models.Split) []Split {
	out := make([]Split, len(splits))
	for i, s := range splits {
		out[i] = Split{UserID: s.UserID, AmountDue: money(s.AmountDue), AmountPaid: money(s.AmountPaid)}
	}
	return out
}

func toPayment(p *models.PaymentTransaction) Payment {
	return Payment{
		ID:        p.ID,
		GroupID:   p.GroupID,
		PayerID:   p.PayerID,
		PayeeID:   p.PayeeID,
		Amount:    money(p.Amount),
		CreatedAt: p.CreatedAt,
	}
}

func toBalance(b models.Balance) Balance {
	return Balance{Owed: money(b.Owed), Lent: money(b.Lent)}
}

func toParsedItems(items []ItemInput) []models.ParsedItem {
	out := make([]models.ParsedItem, len(items))
	for i, item := range items {
		out[i] = models.ParsedItem{
			Name:         item.Name,
			Quantity:     item.Quantity,
			PricePerUnit: item.PricePerUnit,
			TotalPrice:   item.TotalPrice,
		}
	}
	return out
}
