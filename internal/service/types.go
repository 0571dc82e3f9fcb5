package service

import "github.com/shopspring/decimal"

// Wire messages. Money is sent as a string with two decimal places and
// accepted as either a JSON number or a string.

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"created_at"`
}

type Member struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	JoinedAt int64  `json:"joined_at"`
}

type Group struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CreatedBy   string   `json:"created_by"`
	CreatorName string   `json:"creator_name,omitempty"`
	CreatedAt   int64    `json:"created_at"`
	Members     []Member `json:"members,omitempty"`
}

type Membership struct {
	GroupID  string `json:"group_id"`
	UserID   string `json:"user_id"`
	JoinedAt int64  `json:"joined_at"`
}

type Item struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Quantity   string `json:"quantity"`
	TotalPrice string `json:"total_price"`
}

type Bill struct {
	ID          string `json:"id"`
	GroupID     string `json:"group_id"`
	UploadedBy  string `json:"uploaded_by"`
	TotalAmount string `json:"total_amount"`
	CreatedAt   int64  `json:"created_at"`
	Items       []Item `json:"items,omitempty"`
}

type Split struct {
	UserID     string `json:"user_id"`
	AmountDue  string `json:"amount_due"`
	AmountPaid string `json:"amount_paid"`
}

type Payment struct {
	ID        string `json:"id"`
	GroupID   string `json:"group_id"`
	PayerID   string `json:"payer_id"`
	PayeeID   string `json:"payee_id"`
	Amount    string `json:"amount"`
	CreatedAt int64  `json:"created_at"`
}

type Balance struct {
	Owed string `json:"owed"`
	Lent string `json:"lent"`
}

type Position struct {
	UserID string `json:"user_id"`
	Net    string `json:"net"`
}

type Transfer struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// UserService messages.

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateUserResponse struct {
	User User `json:"user"`
}

type GetUserRequest struct {
	UserID string `json:"user_id"`
}

type GetUserResponse struct {
	User User `json:"user"`
}

type FindUserRequest struct {
	Email string `json:"email"`
}

type FindUserResponse struct {
	User User `json:"user"`
}

type AddFriendRequest struct {
	UserID   string `json:"user_id"`
	FriendID string `json:"friend_id"`
}

type AddFriendResponse struct{}

type ListFriendsRequest struct {
	UserID string `json:"user_id"`
}

type ListFriendsResponse struct {
	Friends []User `json:"friends"`
}

// GroupService messages.

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatorID   string `json:"creator_id"`
}

type CreateGroupResponse struct {
	Group Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	Group Group `json:"group"`
}

type ListGroupsRequest struct {
	UserID string `json:"user_id"`
}

type ListGroupsResponse struct {
	Groups []Group `json:"groups"`
}

type AddMemberRequest struct {
	GroupID string `json:"group_id"`
	UserID  string `json:"user_id"`
}

type AddMemberResponse struct {
	Membership Membership `json:"membership"`
}

type DeleteGroupRequest struct {
	GroupID     string `json:"group_id"`
	RequesterID string `json:"requester_id"`
}

type DeleteGroupResponse struct{}

type GetGroupBalanceRequest struct {
	GroupID string `json:"group_id"`
	UserID  string `json:"user_id"`
}

type GetGroupBalanceResponse struct {
	Balance Balance `json:"balance"`
}

type GetTotalBalanceRequest struct {
	UserID string `json:"user_id"`
}

type GetTotalBalanceResponse struct {
	Balance Balance `json:"balance"`
}

type GetSettlementPlanRequest struct {
	GroupID string `json:"group_id"`
}

type GetSettlementPlanResponse struct {
	Positions []Position `json:"positions"`
	Transfers []Transfer `json:"transfers"`
}

type RecordPaymentRequest struct {
	GroupID string          `json:"group_id"`
	PayerID string          `json:"payer_id"`
	PayeeID string          `json:"payee_id"`
	Amount  decimal.Decimal `json:"amount"`
}

type RecordPaymentResponse struct {
	Payment Payment `json:"payment"`
}

type ListPaymentsRequest struct {
	GroupID string `json:"group_id"`
}

type ListPaymentsResponse struct {
	Payments []Payment `json:"payments"`
}

// BillService messages.

type ItemInput struct {
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

type IngestBillRequest struct {
	GroupID    string      `json:"group_id"`
	UploaderID string      `json:"uploader_id"`
	Items      []ItemInput `json:"items"`
}

type IngestBillResponse struct {
	Bill Bill `json:"bill"`
}

type ScanBillRequest struct {
	GroupID    string `json:"group_id"`
	UploaderID string `json:"uploader_id"`
	Image      []byte `json:"image"` // base64 in JSON
}

type ScanBillResponse struct {
	Bill     Bill     `json:"bill"`
	Category string   `json:"category"`
	People   []string `json:"people"`
}

type GetBillRequest struct {
	BillID string `json:"bill_id"`
}

type GetBillResponse struct {
	Bill Bill `json:"bill"`
}

type ListBillsRequest struct {
	GroupID string `json:"group_id"`
}

type ListBillsResponse struct {
	Bills []Bill `json:"bills"`
}

type DeleteBillRequest struct {
	BillID string `json:"bill_id"`
}

type DeleteBillResponse struct{}

type AddSplitRequest struct {
	BillID         string   `json:"bill_id"`
	PayerID        string   `json:"payer_id"`
	ParticipantIDs []string `json:"participant_ids"`
	// Total overrides the bill total when present.
	Total decimal.NullDecimal `json:"total"`
}

type AddSplitResponse struct {
	Splits []Split `json:"splits"`
}

type ListSplitsRequest struct {
	BillID string `json:"bill_id"`
}

type ListSplitsResponse struct {
	Splits []Split `json:"splits"`
}

type IdentifyParticipantsRequest struct {
	GroupID string `json:"group_id"`
	Audio   []byte `json:"audio"` // base64 in JSON
}

type IdentifyParticipantsResponse struct {
	Participants []Member `json:"participants"`
}
