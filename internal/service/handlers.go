package service

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/Swagat404/SettleUp/internal/ledger"
)

const (
	UserServiceName  = "settleup.v1.UserService"
	GroupServiceName = "settleup.v1.GroupService"
	BillServiceName  = "settleup.v1.BillService"
)

const (
	UserServiceCreateUserProcedure  = "/" + UserServiceName + "/CreateUser"
	UserServiceGetUserProcedure     = "/" + UserServiceName + "/GetUser"
	UserServiceFindUserProcedure    = "/" + UserServiceName + "/FindUser"
	UserServiceAddFriendProcedure   = "/" + UserServiceName + "/AddFriend"
	UserServiceListFriendsProcedure = "/" + UserServiceName + "/ListFriends"

	GroupServiceCreateGroupProcedure       = "/" + GroupServiceName + "/CreateGroup"
	GroupServiceGetGroupProcedure          = "/" + GroupServiceName + "/GetGroup"
	GroupServiceListGroupsProcedure        = "/" + GroupServiceName + "/ListGroups"
	GroupServiceAddMemberProcedure         = "/" + GroupServiceName + "/AddMember"
	GroupServiceDeleteGroupProcedure       = "/" + GroupServiceName + "/DeleteGroup"
	GroupServiceGetGroupBalanceProcedure   = "/" + GroupServiceName + "/GetGroupBalance"
	GroupServiceGetTotalBalanceProcedure   = "/" + GroupServiceName + "/GetTotalBalance"
	GroupServiceGetSettlementPlanProcedure = "/" + GroupServiceName + "/GetSettlementPlan"
	GroupServiceRecordPaymentProcedure     = "/" + GroupServiceName + "/RecordPayment"
	GroupServiceListPaymentsProcedure      = "/" + GroupServiceName + "/ListPayments"

	BillServiceIngestBillProcedure           = "/" + BillServiceName + "/IngestBill"
	BillServiceScanBillProcedure             = "/" + BillServiceName + "/ScanBill"
	BillServiceGetBillProcedure              = "/" + BillServiceName + "/GetBill"
	BillServiceListBillsProcedure            = "/" + BillServiceName + "/ListBills"
	BillServiceDeleteBillProcedure           = "/" + BillServiceName + "/DeleteBill"
	BillServiceAddSplitProcedure             = "/" + BillServiceName + "/AddSplit"
	BillServiceListSplitsProcedure           = "/" + BillServiceName + "/ListSplits"
	BillServiceIdentifyParticipantsProcedure = "/" + BillServiceName + "/IdentifyParticipants"
)

func handle[Req, Res any](
	mux *http.ServeMux,
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) {
	mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, opts...))
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
}

// ClientOptions returns the options a Connect client needs to talk to these
// services.
func ClientOptions() []connect.ClientOption {
	return []connect.ClientOption{connect.WithCodec(jsonCodec{})}
}

// NewUserServiceHandler builds an HTTP handler for UserService. It returns
// the path prefix to mount the handler on.
func NewUserServiceHandler(svc *UserService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, UserServiceCreateUserProcedure, svc.CreateUser, opts)
	handle(mux, UserServiceGetUserProcedure, svc.GetUser, opts)
	handle(mux, UserServiceFindUserProcedure, svc.FindUser, opts)
	handle(mux, UserServiceAddFriendProcedure, svc.AddFriend, opts)
	handle(mux, UserServiceListFriendsProcedure, svc.ListFriends, opts)
	return "/" + UserServiceName + "/", mux
}

// NewGroupServiceHandler builds an HTTP handler for GroupService.
func NewGroupServiceHandler(svc *GroupService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, GroupServiceCreateGroupProcedure, svc.CreateGroup, opts)
	handle(mux, GroupServiceGetGroupProcedure, svc.GetGroup, opts)
	handle(mux, GroupServiceListGroupsProcedure, svc.ListGroups, opts)
	handle(mux, GroupServiceAddMemberProcedure, svc.AddMember, opts)
	handle(mux, GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts)
	handle(mux, GroupServiceGetGroupBalanceProcedure, svc.GetGroupBalance, opts)
	handle(mux, GroupServiceGetTotalBalanceProcedure, svc.GetTotalBalance, opts)
	handle(mux, GroupServiceGetSettlementPlanProcedure, svc.GetSettlementPlan, opts)
	handle(mux, GroupServiceRecordPaymentProcedure, svc.RecordPayment, opts)
	handle(mux, GroupServiceListPaymentsProcedure, svc.ListPayments, opts)
	return "/" + GroupServiceName + "/", mux
}

// NewBillServiceHandler builds an HTTP handler for BillService.
func NewBillServiceHandler(svc *BillService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, BillServiceIngestBillProcedure, svc.IngestBill, opts)
	handle(mux, BillServiceScanBillProcedure, svc.ScanBill, opts)
	handle(mux, BillServiceGetBillProcedure, svc.GetBill, opts)
	handle(mux, BillServiceListBillsProcedure, svc.ListBills, opts)
	handle(mux, BillServiceDeleteBillProcedure, svc.DeleteBill, opts)
	handle(mux, BillServiceAddSplitProcedure, svc.AddSplit, opts)
	handle(mux, BillServiceListSplitsProcedure, svc.ListSplits, opts)
	handle(mux, BillServiceIdentifyParticipantsProcedure, svc.IdentifyParticipants, opts)
	return "/" + BillServiceName + "/", mux
}

// Register mounts all three services on mux.
func Register(mux *http.ServeMux, l *ledger.Ledger, opts ...connect.HandlerOption) {
	mux.Handle(NewUserServiceHandler(NewUserService(l), opts...))
	mux.Handle(NewGroupServiceHandler(NewGroupService(l), opts...))
	mux.Handle(NewBillServiceHandler(NewBillService(l), opts...))
}
