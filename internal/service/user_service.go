package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/Swagat404/SettleUp/internal/ledger"
)

// UserService exposes user registration and friend links.
type UserService struct {
	ledger *ledger.Ledger
}

// NewUserService creates a UserService backed by l.
func NewUserService(l *ledger.Ledger) *UserService {
	return &UserService{ledger: l}
}

// CreateUser registers a new user.
func (s *UserService) CreateUser(ctx context.Context, req *connect.Request[CreateUserRequest]) (*connect.Response[CreateUserResponse], error) {
	slog.Info("CreateUser request received", "email", req.Msg.Email)

	user, err := s.ledger.CreateUser(ctx, req.Msg.Name, req.Msg.Email)
	if err != nil {
		return nil, fail("CreateUser", err, "email", req.Msg.Email)
	}

	slog.Info("User created", "user_id", user.ID)
	return connect.NewResponse(&CreateUserResponse{User: toUser(user)}), nil
}

// GetUser looks a user up by ID.
func (s *UserService) GetUser(ctx context.Context, req *connect.Request[GetUserRequest]) (*connect.Response[GetUserResponse], error) {
	slog.Info("GetUser request received", "user_id", req.Msg.UserID)

	user, err := s.ledger.GetUser(ctx, req.Msg.UserID)
	if err != nil {
		return nil, fail("GetUser", err, "user_id", req.Msg.UserID)
	}
	return connect.NewResponse(&GetUserResponse{User: toUser(user)}), nil
}

// FindUser looks a user up by email.
func (s *UserService) FindUser(ctx context.Context, req *connect.Request[FindUserRequest]) (*connect.Response[FindUserResponse], error) {
	slog.Info("FindUser request received", "email", req.Msg.Email)

	user, err := s.ledger.FindUserByEmail(ctx, req.Msg.Email)
	if err != nil {
		return nil, fail("FindUser", err, "email", req.Msg.Email)
	}
	return connect.NewResponse(&FindUserResponse{User: toUser(user)}), nil
}

// AddFriend links two users in both directions.
func (s *UserService) AddFriend(ctx context.Context, req *connect.Request[AddFriendRequest]) (*connect.Response[AddFriendResponse], error) {
	slog.Info("AddFriend request received", "user_id", req.Msg.UserID, "friend_id", req.Msg.FriendID)

	if err := s.ledger.AddFriend(ctx, req.Msg.UserID, req.Msg.FriendID); err != nil {
		return nil, fail("AddFriend", err, "user_id", req.Msg.UserID, "friend_id", req.Msg.FriendID)
	}
	return connect.NewResponse(&AddFriendResponse{}), nil
}

// ListFriends returns the user's friends.
func (s *UserService) ListFriends(ctx context.Context, req *connect.Request[ListFriendsRequest]) (*connect.Response[ListFriendsResponse], error) {
	slog.Info("ListFriends request received", "user_id", req.Msg.UserID)

	friends, err := s.ledger.ListFriends(ctx, req.Msg.UserID)
	if err != nil {
		return nil, fail("ListFriends", err, "user_id", req.Msg.UserID)
	}

	out := make([]User, len(friends))
	for i, f := range friends {
		out[i] = toUser(f)
	}

	slog.Info("ListFriends successful", "user_id", req.Msg.UserID, "count", len(out))
	return connect.NewResponse(&ListFriendsResponse{Friends: out}), nil
}
