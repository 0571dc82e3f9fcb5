package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Swagat404/SettleUp/internal/models"
)

func TestNetBalance(t *testing.T) {
	tests := []struct {
		name     string
		splits   []models.Split
		paidOut  []models.PaymentTransaction
		received []models.PaymentTransaction
		wantOwed string
		wantLent string
	}{
		{
			name:     "nothing in scope",
			wantOwed: "0",
			wantLent: "0",
		},
		{
			name: "splits only",
			splits: []models.Split{
				{AmountDue: dec("10.00"), AmountPaid: dec("0")},
				{AmountDue: dec("0"), AmountPaid: dec("20.00")},
				{AmountDue: dec("3.33"), AmountPaid: dec("0")},
			},
			wantOwed: "13.33",
			wantLent: "20.00",
		},
		{
			name: "payments reduce both sides",
			splits: []models.Split{
				{AmountDue: dec("10.00"), AmountPaid: dec("25.00")},
			},
			paidOut:  []models.PaymentTransaction{{Amount: dec("4.00")}, {Amount: dec("1.50")}},
			received: []models.PaymentTransaction{{Amount: dec("5.00")}},
			wantOwed: "4.50",
			wantLent: "20.00",
		},
		{
			name: "overpayment goes negative",
			splits: []models.Split{
				{AmountDue: dec("10.00"), AmountPaid: dec("0")},
			},
			paidOut:  []models.PaymentTransaction{{Amount: dec("12.00")}},
			received: []models.PaymentTransaction{{Amount: dec("3.00")}},
			wantOwed: "-2.00",
			wantLent: "-3.00",
		},
		{
			name: "result is rounded to cents",
			splits: []models.Split{
				{AmountDue: dec("0.005"), AmountPaid: dec("0.004")},
			},
			wantOwed: "0.01",
			wantLent: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NetBalance(tt.splits, tt.paidOut, tt.received)
			if !got.Owed.Equal(dec(tt.wantOwed)) {
				t.Errorf("owed = %s, want %s", got.Owed, tt.wantOwed)
			}
			if !got.Lent.Equal(dec(tt.wantLent)) {
				t.Errorf("lent = %s, want %s", got.Lent, tt.wantLent)
			}
		})
	}
}

func TestNetBalanceIsRepeatable(t *testing.T) {
	splits := []models.Split{{AmountDue: dec("1.10"), AmountPaid: dec("2.20")}}
	payments := []models.PaymentTransaction{{Amount: dec("0.10")}}

	first := NetBalance(splits, payments, payments)
	second := NetBalance(splits, payments, payments)
	if !first.Owed.Equal(second.Owed) || !first.Lent.Equal(second.Lent) {
		t.Errorf("NetBalance not repeatable: %+v vs %+v", first, second)
	}
}

func TestMemberPositions(t *testing.T) {
	// Alice paid 30 for three; Bob then paid Alice 10 back.
	splits := []models.Split{
		{UserID: "alice", AmountDue: dec("0"), AmountPaid: dec("20.00")},
		{UserID: "bob", AmountDue: dec("10.00"), AmountPaid: dec("0")},
		{UserID: "charlie", AmountDue: dec("10.00"), AmountPaid: dec("0")},
	}
	payments := []models.PaymentTransaction{
		{PayerID: "bob", PayeeID: "alice", Amount: dec("10.00")},
	}

	got := MemberPositions(splits, payments)
	want := map[string]string{"alice": "10.00", "bob": "0", "charlie": "-10.00"}
	if len(got) != len(want) {
		t.Fatalf("got %d positions, want %d", len(got), len(want))
	}
	for _, p := range got {
		if !p.Net.Equal(dec(want[p.UserID])) {
			t.Errorf("%s net = %s, want %s", p.UserID, p.Net, want[p.UserID])
		}
	}
	if got[0].UserID != "alice" || got[2].UserID != "charlie" {
		t.Errorf("positions not sorted by user: %+v", got)
	}
}

func TestSimplifyDebts(t *testing.T) {
	tests := []struct {
		name      string
		positions []models.MemberPosition
		want      []models.DebtEdge
	}{
		{
			name: "everyone settled",
			positions: []models.MemberPosition{
				{UserID: "alice", Net: dec("0")},
				{UserID: "bob", Net: dec("0.004")},
			},
			want: nil,
		},
		{
			name: "two debtors one creditor",
			positions: []models.MemberPosition{
				{UserID: "alice", Net: dec("20.00")},
				{UserID: "bob", Net: dec("-10.00")},
				{UserID: "charlie", Net: dec("-10.00")},
			},
			want: []models.DebtEdge{
				{From: "bob", To: "alice", Amount: dec("10.00")},
				{From: "charlie", To: "alice", Amount: dec("10.00")},
			},
		},
		{
			name: "largest debtor pays largest creditor first",
			positions: []models.MemberPosition{
				{UserID: "alice", Net: dec("5.00")},
				{UserID: "bob", Net: dec("15.00")},
				{UserID: "charlie", Net: dec("-18.00")},
				{UserID: "dave", Net: dec("-2.00")},
			},
			want: []models.DebtEdge{
				{From: "charlie", To: "bob", Amount: dec("15.00")},
				{From: "charlie", To: "alice", Amount: dec("3.00")},
				{From: "dave", To: "alice", Amount: dec("2.00")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimplifyDebts(tt.positions)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d edges, want %d: %+v", len(got), len(tt.want), got)
			}
			for i, edge := range got {
				w := tt.want[i]
				if edge.From != w.From || edge.To != w.To || !edge.Amount.Equal(w.Amount) {
					t.Errorf("edge %d = %s->%s %s, want %s->%s %s",
						i, edge.From, edge.To, edge.Amount, w.From, w.To, w.Amount)
				}
			}
		})
	}
}

func TestSimplifyDebtsSettlesPositions(t *testing.T) {
	positions := []models.MemberPosition{
		{UserID: "a", Net: dec("7.50")},
		{UserID: "b", Net: dec("-3.25")},
		{UserID: "c", Net: dec("12.00")},
		{UserID: "d", Net: dec("-16.25")},
	}

	remaining := map[string]decimal.Decimal{}
	for _, p := range positions {
		remaining[p.UserID] = p.Net
	}
	for _, e := range SimplifyDebts(positions) {
		remaining[e.From] = remaining[e.From].Add(e.Amount)
		remaining[e.To] = remaining[e.To].Sub(e.Amount)
	}
	for id, left := range remaining {
		if !left.IsZero() {
			t.Errorf("%s left with %s after settling", id, left)
		}
	}
}
