package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Swagat404/SettleUp/internal/models"
	"github.com/Swagat404/SettleUp/internal/storage"
)

// CreateUser registers a user. Emails are compared case-insensitively and
// must be unique.
func (l *Ledger) CreateUser(ctx context.Context, name, email string) (*models.User, error) {
	const op = "CreateUser"

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, newError(KindInvalidInput, op, "", errors.New("name and email are required"))
	}

	_, err := l.store.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, newError(KindAlreadyExists, op, email, errors.New("email already registered"))
	case !errors.Is(err, storage.ErrNotFound):
		return nil, newError(KindUpstream, op, email, err)
	}

	user := &models.User{Name: name, Email: email}
	if err := l.store.CreateUser(ctx, user); err != nil {
		return nil, newError(KindUpstream, op, email, err)
	}
	return user, nil
}

// GetUser returns the user with the given ID.
func (l *Ledger) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := l.store.GetUser(ctx, id)
	if err != nil {
		return nil, fromStore("GetUser", id, err)
	}
	return user, nil
}

// FindUserByEmail looks a user up by email.
func (l *Ledger) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := l.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fromStore("FindUserByEmail", email, err)
	}
	return user, nil
}

// AddFriend links two users in both directions.
func (l *Ledger) AddFriend(ctx context.Context, userID, friendID string) error {
	const op = "AddFriend"

	if userID == friendID {
		return newError(KindInvalidInput, op, userID, errors.New("cannot befriend yourself"))
	}

	users, err := l.store.GetUsersByIDs(ctx, []string{userID, friendID})
	if err != nil {
		return newError(KindUpstream, op, userID, err)
	}
	for _, id := range []string{userID, friendID} {
		if _, ok := users[id]; !ok {
			return newError(KindNotFound, op, id, fmt.Errorf("user %s: %w", id, storage.ErrNotFound))
		}
	}

	exists, err := l.store.FriendshipExists(ctx, userID, friendID)
	if err != nil {
		return newError(KindUpstream, op, userID, err)
	}
	if exists {
		return newError(KindAlreadyExists, op, friendID, errors.New("already friends"))
	}

	if err := l.store.CreateFriendship(ctx, userID, friendID); err != nil {
		return newError(KindUpstream, op, userID, err)
	}
	return nil
}

// ListFriends returns the user's friends in the order they were added.
func (l *Ledger) ListFriends(ctx context.Context, userID string) ([]*models.User, error) {
	const op = "ListFriends"

	if _, err := l.store.GetUser(ctx, userID); err != nil {
		return nil, fromStore(op, userID, err)
	}

	ids, err := l.store.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, newError(KindUpstream, op, userID, err)
	}
	users, err := l.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, newError(KindUpstream, op, userID, err)
	}

	friends := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := users[id]; ok {
			friends = append(friends, u)
		}
	}
	return friends, nil
}
