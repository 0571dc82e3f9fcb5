package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/Swagat404/SettleUp/internal/ledger"
)

// GroupService exposes groups, balances and settlement payments.
type GroupService struct {
	ledger *ledger.Ledger
}

// NewGroupService creates a GroupService backed by l.
func NewGroupService(l *ledger.Ledger) *GroupService {
	return &GroupService{ledger: l}
}

// CreateGroup creates a group with the creator as its first member.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	slog.Info("CreateGroup request received", "name", req.Msg.Name, "creator_id", req.Msg.CreatorID)

	group, err := s.ledger.CreateGroup(ctx, req.Msg.Name, req.Msg.Description, req.Msg.CreatorID)
	if err != nil {
		return nil, fail("CreateGroup", err, "creator_id", req.Msg.CreatorID)
	}

	slog.Info("Group created", "group_id", group.ID)
	return connect.NewResponse(&CreateGroupResponse{Group: toGroup(group)}), nil
}

// GetGroup returns a group with its members.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	details, err := s.ledger.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, fail("GetGroup", err, "group_id", req.Msg.GroupID)
	}

	slog.Info("GetGroup successful", "group_id", details.Group.ID, "members", len(details.Members))
	return connect.NewResponse(&GetGroupResponse{Group: toGroupDetails(details)}), nil
}

// ListGroups returns the groups the user belongs to.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	slog.Info("ListGroups request received", "user_id", req.Msg.UserID)

	summaries, err := s.ledger.ListGroups(ctx, req.Msg.UserID)
	if err != nil {
		return nil, fail("ListGroups", err, "user_id", req.Msg.UserID)
	}

	groups := make([]Group, len(summaries))
	for i, sum := range summaries {
		groups[i] = toGroup(sum.Group)
		groups[i].CreatorName = sum.CreatorName
	}

	slog.Info("ListGroups successful", "count", len(groups))
	return connect.NewResponse(&ListGroupsResponse{Groups: groups}), nil
}

// AddMember adds a user to a group.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	slog.Info("AddMember request received", "group_id", req.Msg.GroupID, "user_id", req.Msg.UserID)

	m, err := s.ledger.AddMember(ctx, req.Msg.GroupID, req.Msg.UserID)
	if err != nil {
		return nil, fail("AddMember", err, "group_id", req.Msg.GroupID, "user_id", req.Msg.UserID)
	}
	return connect.NewResponse(&AddMemberResponse{
		Membership: Membership{GroupID: m.GroupID, UserID: m.UserID, JoinedAt: m.JoinedAt},
	}), nil
}

// DeleteGroup removes a group and everything that belongs to it. Only the
// creator may do this.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID, "requester_id", req.Msg.RequesterID)

	if err := s.ledger.DeleteGroup(ctx, req.Msg.GroupID, req.Msg.RequesterID); err != nil {
		return nil, fail("DeleteGroup", err, "group_id", req.Msg.GroupID)
	}

	slog.Info("Group deleted", "group_id", req.Msg.GroupID)
	return connect.NewResponse(&DeleteGroupResponse{}), nil
}

// GetGroupBalance returns what a user owes and is owed within one group.
func (s *GroupService) GetGroupBalance(ctx context.Context, req *connect.Request[GetGroupBalanceRequest]) (*connect.Response[GetGroupBalanceResponse], error) {
	slog.Info("GetGroupBalance request received", "group_id", req.Msg.GroupID, "user_id", req.Msg.UserID)

	bal, err := s.ledger.GroupBalance(ctx, req.Msg.GroupID, req.Msg.UserID)
	if err != nil {
		return nil, fail("GetGroupBalance", err, "group_id", req.Msg.GroupID, "user_id", req.Msg.UserID)
	}
	return connect.NewResponse(&GetGroupBalanceResponse{Balance: toBalance(bal)}), nil
}

// GetTotalBalance returns what a user owes and is owed across all their groups.
func (s *GroupService) GetTotalBalance(ctx context.Context, req *connect.Request[GetTotalBalanceRequest]) (*connect.Response[GetTotalBalanceResponse], error) {
	slog.Info("GetTotalBalance request received", "user_id", req.Msg.UserID)

	bal, err := s.ledger.TotalBalance(ctx, req.Msg.UserID)
	if err != nil {
		return nil, fail("GetTotalBalance", err, "user_id", req.Msg.UserID)
	}
	return connect.NewResponse(&GetTotalBalanceResponse{Balance: toBalance(bal)}), nil
}

// GetSettlementPlan returns each member's net position and a minimal set of
// transfers that clears them.
func (s *GroupService) GetSettlementPlan(ctx context.Context, req *connect.Request[GetSettlementPlanRequest]) (*connect.Response[GetSettlementPlanResponse], error) {
	slog.Info("GetSettlementPlan request received", "group_id", req.Msg.GroupID)

	plan, err := s.ledger.GroupSettlementPlan(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, fail("GetSettlementPlan", err, "group_id", req.Msg.GroupID)
	}

	res := &GetSettlementPlanResponse{
		Positions: make([]Position, len(plan.Positions)),
		Transfers: make([]Transfer, len(plan.Transfers)),
	}
	for i, p := range plan.Positions {
		res.Positions[i] = Position{UserID: p.UserID, Net: money(p.Net)}
	}
	for i, t := range plan.Transfers {
		res.Transfers[i] = Transfer{From: t.From, To: t.To, Amount: money(t.Amount)}
	}

	slog.Info("GetSettlementPlan successful", "group_id", req.Msg.GroupID, "transfers", len(res.Transfers))
	return connect.NewResponse(res), nil
}

// RecordPayment records a settlement payment between two group members.
func (s *GroupService) RecordPayment(ctx context.Context, req *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error) {
	slog.Info("RecordPayment request received",
		"group_id", req.Msg.GroupID,
		"payer_id", req.Msg.PayerID,
		"payee_id", req.Msg.PayeeID,
		"amount", req.Msg.Amount.String(),
	)

	p, err := s.ledger.RecordPayment(ctx, req.Msg.GroupID, req.Msg.PayerID, req.Msg.PayeeID, req.Msg.Amount)
	if err != nil {
		return nil, fail("RecordPayment", err, "group_id", req.Msg.GroupID)
	}

	slog.Info("Payment recorded", "payment_id", p.ID)
	return connect.NewResponse(&RecordPaymentResponse{Payment: toPayment(p)}), nil
}

// ListPayments returns a group's settlement payments, newest first.
func (s *GroupService) ListPayments(ctx context.Context, req *connect.Request[ListPaymentsRequest]) (*connect.Response[ListPaymentsResponse], error) {
	slog.Info("ListPayments request received", "group_id", req.Msg.GroupID)

	payments, err := s.ledger.ListPayments(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, fail("ListPayments", err, "group_id", req.Msg.GroupID)
	}

	out := make([]Payment, len(payments))
	for i := range payments {
		out[i] = toPayment(&payments[i])
	}
	return connect.NewResponse(&ListPaymentsResponse{Payments: out}), nil
}
