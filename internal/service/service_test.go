package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/Swagat404/SettleUp/internal/ledger"
	"github.com/Swagat404/SettleUp/internal/models"
	"github.com/Swagat404/SettleUp/internal/storage/sqlite"
)

type stubParser struct {
	parsed *models.ParsedBill
	err    error
}

func (p *stubParser) Parse(context.Context, []byte) (*models.ParsedBill, error) {
	return p.parsed, p.err
}

func (p *stubParser) Translate(_ context.Context, bill *models.ParsedBill) (*models.ParsedBill, error) {
	return bill, nil
}

type stubMatcher struct {
	matches []string
}

func (m *stubMatcher) Match(context.Context, []byte, []string) ([]string, error) {
	return m.matches, nil
}

// setupTestServer serves all three services over a fresh database.
func setupTestServer(t *testing.T, opts ...ledger.Option) string {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "service.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	mux := http.NewServeMux()
	Register(mux, ledger.New(store, opts...))
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})
	return server.URL
}

func callUnary[Req, Res any](t *testing.T, baseURL, procedure string, req *Req) (*Res, error) {
	t.Helper()

	client := connect.NewClient[Req, Res](http.DefaultClient, baseURL+procedure, ClientOptions()...)
	res, err := client.CallUnary(context.Background(), connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}

func mustCall[Req, Res any](t *testing.T, baseURL, procedure string, req *Req) *Res {
	t.Helper()

	res, err := callUnary[Req, Res](t, baseURL, procedure, req)
	if err != nil {
		t.Fatalf("%s failed: %v", procedure, err)
	}
	return res
}

func requireCode(t *testing.T, err error, want connect.Code) {
	t.Helper()

	if err == nil {
		t.Fatalf("Expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("Expected code %v, got %v (%v)", want, got, err)
	}
}

func createUser(t *testing.T, url, name string) User {
	t.Helper()

	res := mustCall[CreateUserRequest, CreateUserResponse](t, url, UserServiceCreateUserProcedure,
		&CreateUserRequest{Name: name, Email: name + "@example.com"})
	return res.User
}

func createGroup(t *testing.T, url, name string, creator User, members ...User) Group {
	t.Helper()

	res := mustCall[CreateGroupRequest, CreateGroupResponse](t, url, GroupServiceCreateGroupProcedure,
		&CreateGroupRequest{Name: name, CreatorID: creator.ID})
	for _, m := range members {
		mustCall[AddMemberRequest, AddMemberResponse](t, url, GroupServiceAddMemberProcedure,
			&AddMemberRequest{GroupID: res.Group.ID, UserID: m.ID})
	}
	return res.Group
}

func TestUserService(t *testing.T) {
	url := setupTestServer(t)

	alice := createUser(t, url, "alice")
	bob := createUser(t, url, "bob")

	_, err := callUnary[CreateUserRequest, CreateUserResponse](t, url, UserServiceCreateUserProcedure,
		&CreateUserRequest{Name: "Alice Again", Email: "ALICE@example.com"})
	requireCode(t, err, connect.CodeAlreadyExists)

	_, err = callUnary[CreateUserRequest, CreateUserResponse](t, url, UserServiceCreateUserProcedure,
		&CreateUserRequest{Name: " ", Email: "blank@example.com"})
	requireCode(t, err, connect.CodeInvalidArgument)

	found := mustCall[FindUserRequest, FindUserResponse](t, url, UserServiceFindUserProcedure,
		&FindUserRequest{Email: "bob@example.com"})
	if found.User.ID != bob.ID {
		t.Errorf("FindUser returned %s, want %s", found.User.ID, bob.ID)
	}

	_, err = callUnary[GetUserRequest, GetUserResponse](t, url, UserServiceGetUserProcedure,
		&GetUserRequest{UserID: "missing"})
	requireCode(t, err, connect.CodeNotFound)

	mustCall[AddFriendRequest, AddFriendResponse](t, url, UserServiceAddFriendProcedure,
		&AddFriendRequest{UserID: alice.ID, FriendID: bob.ID})
	_, err = callUnary[AddFriendRequest, AddFriendResponse](t, url, UserServiceAddFriendProcedure,
		&AddFriendRequest{UserID: bob.ID, FriendID: alice.ID})
	requireCode(t, err, connect.CodeAlreadyExists)

	friends := mustCall[ListFriendsRequest, ListFriendsResponse](t, url, UserServiceListFriendsProcedure,
		&ListFriendsRequest{UserID: bob.ID})
	if len(friends.Friends) != 1 || friends.Friends[0].ID != alice.ID {
		t.Errorf("Expected bob's only friend to be alice, got %+v", friends.Friends)
	}
}

func TestBillSplitAndSettle(t *testing.T) {
	url := setupTestServer(t)

	alice := createUser(t, url, "alice")
	bob := createUser(t, url, "bob")
	carol := createUser(t, url, "carol")
	group := createGroup(t, url, "Dinner", alice, bob, carol)

	ingested := mustCall[IngestBillRequest, IngestBillResponse](t, url, BillServiceIngestBillProcedure,
		&IngestBillRequest{
			GroupID:    group.ID,
			UploaderID: alice.ID,
			Items: []ItemInput{
				{Name: "Pizza", Quantity: decimal.NewFromInt(1), TotalPrice: decimal.RequireFromString("18.50")},
				{Name: "Salad", Quantity: decimal.NewFromInt(1), TotalPrice: decimal.RequireFromString("11.50")},
			},
		})
	if ingested.Bill.TotalAmount != "30.00" {
		t.Errorf("Expected total 30.00, got %s", ingested.Bill.TotalAmount)
	}

	split := mustCall[AddSplitRequest, AddSplitResponse](t, url, BillServiceAddSplitProcedure,
		&AddSplitRequest{
			BillID:         ingested.Bill.ID,
			PayerID:        alice.ID,
			ParticipantIDs: []string{alice.ID, bob.ID, carol.ID},
		})
	want := map[string]Split{
		alice.ID: {UserID: alice.ID, AmountDue: "0.00", AmountPaid: "20.00"},
		bob.ID:   {UserID: bob.ID, AmountDue: "10.00", AmountPaid: "0.00"},
		carol.ID: {UserID: carol.ID, AmountDue: "10.00", AmountPaid: "0.00"},
	}
	if len(split.Splits) != len(want) {
		t.Fatalf("Expected %d splits, got %d", len(want), len(split.Splits))
	}
	for _, s := range split.Splits {
		if s != want[s.UserID] {
			t.Errorf("Split for %s = %+v, want %+v", s.UserID, s, want[s.UserID])
		}
	}

	bal := mustCall[GetGroupBalanceRequest, GetGroupBalanceResponse](t, url, GroupServiceGetGroupBalanceProcedure,
		&GetGroupBalanceRequest{GroupID: group.ID, UserID: bob.ID})
	if bal.Balance != (Balance{Owed: "10.00", Lent: "0.00"}) {
		t.Errorf("Bob's balance = %+v", bal.Balance)
	}

	mustCall[RecordPaymentRequest, RecordPaymentResponse](t, url, GroupServiceRecordPaymentProcedure,
		&RecordPaymentRequest{GroupID: group.ID, PayerID: bob.ID, PayeeID: alice.ID, Amount: decimal.RequireFromString("10")})

	total := mustCall[GetTotalBalanceRequest, GetTotalBalanceResponse](t, url, GroupServiceGetTotalBalanceProcedure,
		&GetTotalBalanceRequest{UserID: alice.ID})
	if total.Balance != (Balance{Owed: "0.00", Lent: "10.00"}) {
		t.Errorf("Alice's total balance = %+v", total.Balance)
	}

	plan := mustCall[GetSettlementPlanRequest, GetSettlementPlanResponse](t, url, GroupServiceGetSettlementPlanProcedure,
		&GetSettlementPlanRequest{GroupID: group.ID})
	if len(plan.Transfers) != 1 {
		t.Fatalf("Expected one transfer, got %+v", plan.Transfers)
	}
	if got := plan.Transfers[0]; got != (Transfer{From: carol.ID, To: alice.ID, Amount: "10.00"}) {
		t.Errorf("Transfer = %+v", got)
	}

	payments := mustCall[ListPaymentsRequest, ListPaymentsResponse](t, url, GroupServiceListPaymentsProcedure,
		&ListPaymentsRequest{GroupID: group.ID})
	if len(payments.Payments) != 1 || payments.Payments[0].Amount != "10.00" {
		t.Errorf("Payments = %+v", payments.Payments)
	}
}

func TestAddSplitErrors(t *testing.T) {
	url := setupTestServer(t)

	alice := createUser(t, url, "alice")
	group := createGroup(t, url, "Solo", alice)
	bill := mustCall[IngestBillRequest, IngestBillResponse](t, url, BillServiceIngestBillProcedure,
		&IngestBillRequest{
			GroupID:    group.ID,
			UploaderID: alice.ID,
			Items:      []ItemInput{{Name: "Tea", TotalPrice: decimal.RequireFromString("4")}},
		}).Bill

	_, err := callUnary[AddSplitRequest, AddSplitResponse](t, url, BillServiceAddSplitProcedure,
		&AddSplitRequest{BillID: bill.ID, PayerID: alice.ID})
	requireCode(t, err, connect.CodeInvalidArgument)

	_, err = callUnary[AddSplitRequest, AddSplitResponse](t, url, BillServiceAddSplitProcedure,
		&AddSplitRequest{BillID: "missing", PayerID: alice.ID, ParticipantIDs: []string{alice.ID}})
	requireCode(t, err, connect.CodeNotFound)

	// Participants must belong to the bill's group.
	_, err = callUnary[AddSplitRequest, AddSplitResponse](t, url, BillServiceAddSplitProcedure,
		&AddSplitRequest{BillID: bill.ID, PayerID: alice.ID, ParticipantIDs: []string{alice.ID, "ghost"}})
	requireCode(t, err, connect.CodeNotFound)

	mustCall[AddSplitRequest, AddSplitResponse](t, url, BillServiceAddSplitProcedure,
		&AddSplitRequest{BillID: bill.ID, PayerID: alice.ID, ParticipantIDs: []string{alice.ID}})
	_, err = callUnary[AddSplitRequest, AddSplitResponse](t, url, BillServiceAddSplitProcedure,
		&AddSplitRequest{BillID: bill.ID, PayerID: alice.ID, ParticipantIDs: []string{alice.ID}})
	requireCode(t, err, connect.CodeAlreadyExists)

	splits := mustCall[ListSplitsRequest, ListSplitsResponse](t, url, BillServiceListSplitsProcedure,
		&ListSplitsRequest{BillID: bill.ID})
	if len(splits.Splits) != 1 {
		t.Errorf("Expected one split row after the rejected re-split, got %+v", splits.Splits)
	}
}

func TestAddSplitTotalOverride(t *testing.T) {
	url := setupTestServer(t)

	alice := createUser(t, url, "alice")
	bob := createUser(t, url, "bob")
	group := createGroup(t, url, "Pair", alice, bob)
	bill := mustCall[IngestBillRequest, IngestBillResponse](t, url, BillServiceIngestBillProcedure,
		&IngestBillRequest{
			GroupID:    group.ID,
			UploaderID: alice.ID,
			Items:      []ItemInput{{Name: "Taxi", TotalPrice: decimal.RequireFromString("40")}},
		}).Bill

	res := mustCall[AddSplitRequest, AddSplitResponse](t, url, BillServiceAddSplitProcedure,
		&AddSplitRequest{
			BillID:         bill.ID,
			PayerID:        alice.ID,
			ParticipantIDs: []string{bob.ID},
			Total:          decimal.NewNullDecimal(decimal.RequireFromString("9.99")),
		})
	for _, s := range res.Splits {
		switch s.UserID {
		case bob.ID:
			if s.AmountDue != "9.99" {
				t.Errorf("Bob owes %s, want 9.99", s.AmountDue)
			}
		case alice.ID:
			if s.AmountPaid != "9.99" {
				t.Errorf("Alice paid %s, want 9.99", s.AmountPaid)
			}
		}
	}
}

func TestDeleteGroupPermissions(t *testing.T) {
	url := setupTestServer(t)

	alice := createUser(t, url, "alice")
	bob := createUser(t, url, "bob")
	group := createGroup(t, url, "Trip", alice, bob)

	_, err := callUnary[DeleteGroupRequest, DeleteGroupResponse](t, url, GroupServiceDeleteGroupProcedure,
		&DeleteGroupRequest{GroupID: group.ID, RequesterID: bob.ID})
	requireCode(t, err, connect.CodePermissionDenied)

	mustCall[DeleteGroupRequest, DeleteGroupResponse](t, url, GroupServiceDeleteGroupProcedure,
		&DeleteGroupRequest{GroupID: group.ID, RequesterID: alice.ID})

	_, err = callUnary[GetGroupRequest, GetGroupResponse](t, url, GroupServiceGetGroupProcedure,
		&GetGroupRequest{GroupID: group.ID})
	requireCode(t, err, connect.CodeNotFound)

	groups := mustCall[ListGroupsRequest, ListGroupsResponse](t, url, GroupServiceListGroupsProcedure,
		&ListGroupsRequest{UserID: bob.ID})
	if len(groups.Groups) != 0 {
		t.Errorf("Expected no groups after delete, got %d", len(groups.Groups))
	}
}

func TestGetGroupAndListGroups(t *testing.T) {
	url := setupTestServer(t)

	alice := createUser(t, url, "alice")
	bob := createUser(t, url, "bob")
	group := createGroup(t, url, "Flat", alice, bob)

	got := mustCall[GetGroupRequest, GetGroupResponse](t, url, GroupServiceGetGroupProcedure,
		&GetGroupRequest{GroupID: group.ID})
	if len(got.Group.Members) != 2 || got.Group.Members[0].UserID != alice.ID {
		t.Errorf("Expected creator first among 2 members, got %+v", got.Group.Members)
	}

	list := mustCall[ListGroupsRequest, ListGroupsResponse](t, url, GroupServiceListGroupsProcedure,
		&ListGroupsRequest{UserID: bob.ID})
	if len(list.Groups) != 1 || list.Groups[0].CreatorName != "alice" {
		t.Errorf("ListGroups = %+v", list.Groups)
	}

	_, err := callUnary[AddMemberRequest, AddMemberResponse](t, url, GroupServiceAddMemberProcedure,
		&AddMemberRequest{GroupID: group.ID, UserID: bob.ID})
	requireCode(t, err, connect.CodeAlreadyExists)
}

func TestScanAndIdentify(t *testing.T) {
	parser := &stubParser{parsed: &models.ParsedBill{
		Category: "restaurant",
		People:   []string{"alice"},
		Items: []models.ParsedItem{
			{Name: "Ramen", Quantity: decimal.NewFromInt(2), TotalPrice: decimal.RequireFromString("24.00")},
		},
	}}
	matcher := &stubMatcher{matches: []string{"bob", "alice", "bob"}}
	url := setupTestServer(t, ledger.WithBillParser(parser), ledger.WithVoiceMatcher(matcher))

	alice := createUser(t, url, "alice")
	bob := createUser(t, url, "bob")
	group := createGroup(t, url, "Lunch", alice, bob)

	scanned := mustCall[ScanBillRequest, ScanBillResponse](t, url, BillServiceScanBillProcedure,
		&ScanBillRequest{GroupID: group.ID, UploaderID: alice.ID, Image: []byte("png")})
	if scanned.Category != "restaurant" || scanned.Bill.TotalAmount != "24.00" {
		t.Errorf("ScanBill = %+v", scanned)
	}

	bill := mustCall[GetBillRequest, GetBillResponse](t, url, BillServiceGetBillProcedure,
		&GetBillRequest{BillID: scanned.Bill.ID})
	if len(bill.Bill.Items) != 1 || bill.Bill.Items[0].Name != "Ramen" {
		t.Errorf("GetBill items = %+v", bill.Bill.Items)
	}

	_, err := callUnary[ScanBillRequest, ScanBillResponse](t, url, BillServiceScanBillProcedure,
		&ScanBillRequest{GroupID: group.ID, UploaderID: alice.ID})
	requireCode(t, err, connect.CodeInvalidArgument)

	ids := mustCall[IdentifyParticipantsRequest, IdentifyParticipantsResponse](t, url, BillServiceIdentifyParticipantsProcedure,
		&IdentifyParticipantsRequest{GroupID: group.ID, Audio: []byte("ogg")})
	if len(ids.Participants) != 2 || ids.Participants[0].UserID != bob.ID || ids.Participants[1].UserID != alice.ID {
		t.Errorf("Participants = %+v", ids.Participants)
	}

	mustCall[DeleteBillRequest, DeleteBillResponse](t, url, BillServiceDeleteBillProcedure,
		&DeleteBillRequest{BillID: scanned.Bill.ID})
	bills := mustCall[ListBillsRequest, ListBillsResponse](t, url, BillServiceListBillsProcedure,
		&ListBillsRequest{GroupID: group.ID})
	if len(bills.Bills) != 0 {
		t.Errorf("Expected no bills after delete, got %d", len(bills.Bills))
	}
}

func TestUpstreamUnavailable(t *testing.T) {
	url := setupTestServer(t)

	alice := createUser(t, url, "alice")
	group := createGroup(t, url, "NoAI", alice)

	_, err := callUnary[ScanBillRequest, ScanBillResponse](t, url, BillServiceScanBillProcedure,
		&ScanBillRequest{GroupID: group.ID, UploaderID: alice.ID, Image: []byte("png")})
	requireCode(t, err, connect.CodeUnavailable)
}

func TestCodeFor(t *testing.T) {
	tests := []struct {
		kind ledger.Kind
		want connect.Code
	}{
		{ledger.KindNotFound, connect.CodeNotFound},
		{ledger.KindAlreadyExists, connect.CodeAlreadyExists},
		{ledger.KindUnauthorized, connect.CodePermissionDenied},
		{ledger.KindInvalidSplit, connect.CodeInvalidArgument},
		{ledger.KindInvalidInput, connect.CodeInvalidArgument},
		{ledger.KindPartialFailure, connect.CodeInternal},
		{ledger.KindUpstream, connect.CodeUnavailable},
		{ledger.KindOf(errors.New("plain")), connect.CodeInternal},
	}
	for _, tt := range tests {
		if got := codeFor(tt.kind); got != tt.want {
			t.Errorf("codeFor(%q) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestJSONCodecEmptyBody(t *testing.T) {
	var req GetUserRequest
	if err := (jsonCodec{}).Unmarshal(nil, &req); err != nil {
		t.Fatalf("Unmarshal(nil) failed: %v", err)
	}
	if err := (jsonCodec{}).Unmarshal([]byte("{"), &req); err == nil {
		t.Error("Expected error for truncated JSON")
	}
}
