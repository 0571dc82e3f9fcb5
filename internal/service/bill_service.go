package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/Swagat404/SettleUp/internal/ledger"
)

// BillService exposes bill ingestion, scanning and splitting.
type BillService struct {
	ledger *ledger.Ledger
}

// NewBillService creates a BillService backed by l.
func NewBillService(l *ledger.Ledger) *BillService {
	return &BillService{ledger: l}
}

// IngestBill stores a bill from already-structured line items.
func (s *BillService) IngestBill(ctx context.Context, req *connect.Request[IngestBillRequest]) (*connect.Response[IngestBillResponse], error) {
	slog.Info("IngestBill request received",
		"group_id", req.Msg.GroupID,
		"uploader_id", req.Msg.UploaderID,
		"items_count", len(req.Msg.Items),
	)

	bill, err := s.ledger.IngestBill(ctx, req.Msg.GroupID, req.Msg.UploaderID, toParsedItems(req.Msg.Items))
	if err != nil {
		return nil, fail("IngestBill", err, "group_id", req.Msg.GroupID)
	}

	slog.Info("Bill ingested", "bill_id", bill.ID, "total", money(bill.TotalAmount))
	return connect.NewResponse(&IngestBillResponse{Bill: toBill(bill)}), nil
}

// ScanBill reads a bill image, translates its item names and stores it.
func (s *BillService) ScanBill(ctx context.Context, req *connect.Request[ScanBillRequest]) (*connect.Response[ScanBillResponse], error) {
	slog.Info("ScanBill request received",
		"group_id", req.Msg.GroupID,
		"uploader_id", req.Msg.UploaderID,
		"image_bytes", len(req.Msg.Image),
	)

	scanned, err := s.ledger.ScanBill(ctx, req.Msg.GroupID, req.Msg.UploaderID, req.Msg.Image)
	if err != nil {
		return nil, fail("ScanBill", err, "group_id", req.Msg.GroupID)
	}

	slog.Info("Bill scanned", "bill_id", scanned.Bill.ID, "items", len(scanned.Bill.Items), "category", scanned.Category)
	return connect.NewResponse(&ScanBillResponse{
		Bill:     toBill(scanned.Bill),
		Category: scanned.Category,
		People:   scanned.People,
	}), nil
}

// GetBill returns a bill with its items.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[GetBillRequest]) (*connect.Response[GetBillResponse], error) {
	slog.Info("GetBill request received", "bill_id", req.Msg.BillID)

	bill, err := s.ledger.GetBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, fail("GetBill", err, "bill_id", req.Msg.BillID)
	}
	return connect.NewResponse(&GetBillResponse{Bill: toBill(bill)}), nil
}

// ListBills returns a group's bills, newest first.
func (s *BillService) ListBills(ctx context.Context, req *connect.Request[ListBillsRequest]) (*connect.Response[ListBillsResponse], error) {
	slog.Info("ListBills request received", "group_id", req.Msg.GroupID)

	bills, err := s.ledger.ListBills(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, fail("ListBills", err, "group_id", req.Msg.GroupID)
	}

	out := make([]Bill, len(bills))
	for i, b := range bills {
		out[i] = toBill(b)
	}

	slog.Info("ListBills successful", "group_id", req.Msg.GroupID, "count", len(out))
	return connect.NewResponse(&ListBillsResponse{Bills: out}), nil
}

// DeleteBill removes a bill with its items and splits.
func (s *BillService) DeleteBill(ctx context.Context, req *connect.Request[DeleteBillRequest]) (*connect.Response[DeleteBillResponse], error) {
	slog.Info("DeleteBill request received", "bill_id", req.Msg.BillID)

	if err := s.ledger.DeleteBill(ctx, req.Msg.BillID); err != nil {
		return nil, fail("DeleteBill", err, "bill_id", req.Msg.BillID)
	}

	slog.Info("Bill deleted", "bill_id", req.Msg.BillID)
	return connect.NewResponse(&DeleteBillResponse{}), nil
}

// AddSplit divides a bill evenly between the payer and the participants.
func (s *BillService) AddSplit(ctx context.Context, req *connect.Request[AddSplitRequest]) (*connect.Response[AddSplitResponse], error) {
	slog.Info("AddSplit request received",
		"bill_id", req.Msg.BillID,
		"payer_id", req.Msg.PayerID,
		"participants_count", len(req.Msg.ParticipantIDs),
	)

	splits, err := s.ledger.SplitBill(ctx, ledger.SplitRequest{
		BillID:         req.Msg.BillID,
		PayerID:        req.Msg.PayerID,
		ParticipantIDs: req.Msg.ParticipantIDs,
		Total:          req.Msg.Total,
	})
	if err != nil {
		return nil, fail("AddSplit", err, "bill_id", req.Msg.BillID)
	}

	slog.Info("Split recorded", "bill_id", req.Msg.BillID, "rows", len(splits))
	return connect.NewResponse(&AddSplitResponse{Splits: toSplits(splits)}), nil
}

// ListSplits returns a bill's split rows in insertion order.
func (s *BillService) ListSplits(ctx context.Context, req *connect.Request[ListSplitsRequest]) (*connect.Response[ListSplitsResponse], error) {
	slog.Info("ListSplits request received", "bill_id", req.Msg.BillID)

	splits, err := s.ledger.ListSplits(ctx, req.Msg.BillID)
	if err != nil {
		return nil, fail("ListSplits", err, "bill_id", req.Msg.BillID)
	}
	return connect.NewResponse(&ListSplitsResponse{Splits: toSplits(splits)}), nil
}

// IdentifyParticipants maps names spoken in a voice note to group members.
func (s *BillService) IdentifyParticipants(ctx context.Context, req *connect.Request[IdentifyParticipantsRequest]) (*connect.Response[IdentifyParticipantsResponse], error) {
	slog.Info("IdentifyParticipants request received", "group_id", req.Msg.GroupID, "audio_bytes", len(req.Msg.Audio))

	members, err := s.ledger.IdentifyParticipants(ctx, req.Msg.GroupID, req.Msg.Audio)
	if err != nil {
		return nil, fail("IdentifyParticipants", err, "group_id", req.Msg.GroupID)
	}

	out := make([]Member, len(members))
	for i, m := range members {
		out[i] = toMember(m)
	}

	slog.Info("Participants identified", "group_id", req.Msg.GroupID, "count", len(out))
	return connect.NewResponse(&IdentifyParticipantsResponse{Participants: out}), nil
}
