package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRecordPayment(t *testing.T) {
	f := newFixture(t)
	alice := f.user("Alice")
	bob := f.user("Bob")
	outsider := f.user("Outsider")
	g := f.group("Trip", alice, bob)

	p, err := f.ledger.RecordPayment(f.ctx, g.ID, bob.ID, alice.ID, dec("12.345"))
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if p.ID == "" || p.CreatedAt == 0 {
		t.Errorf("Expected ID and CreatedAt, got %+v", p)
	}
	if !p.Amount.Equal(dec("12.35")) {
		t.Errorf("Amount = %s, want 12.35", p.Amount)
	}

	tests := []struct {
		name   string
		group  string
		payer  string
		payee  string
		amount decimal.Decimal
		kind   Kind
	}{
		{name: "zero amount", group: g.ID, payer: bob.ID, payee: alice.ID, amount: decimal.Zero, kind: KindInvalidInput},
		{name: "negative amount", group: g.ID, payer: bob.ID, payee: alice.ID, amount: dec("-1"), kind: KindInvalidInput},
		{name: "paying yourself", group: g.ID, payer: bob.ID, payee: bob.ID, amount: dec("1"), kind: KindInvalidInput},
		{name: "unknown group", group: "missing", payer: bob.ID, payee: alice.ID, amount: dec("1"), kind: KindNotFound},
		{name: "payee not a member", group: g.ID, payer: bob.ID, payee: outsider.ID, amount: dec("1"), kind: KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ledger.RecordPayment(f.ctx, tt.group, tt.payer, tt.payee, tt.amount)
			requireKind(t, err, tt.kind)
		})
	}

	payments, err := f.ledger.ListPayments(f.ctx, g.ID)
	if err != nil {
		t.Fatalf("ListPayments failed: %v", err)
	}
	if len(payments) != 1 || payments[0].ID != p.ID {
		t.Errorf("ListPayments = %+v, want only the recorded payment", payments)
	}
}
