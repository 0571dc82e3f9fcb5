package ledger

import (
	"testing"
)

func TestUsers(t *testing.T) {
	f := newFixture(t)

	alice, err := f.ledger.CreateUser(f.ctx, " Alice ", "Alice@Example.com")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if alice.Name != "Alice" || alice.Email != "alice@example.com" {
		t.Errorf("Expected trimmed name and lowercased email, got %+v", alice)
	}

	t.Run("duplicate email", func(t *testing.T) {
		_, err := f.ledger.CreateUser(f.ctx, "Other Alice", "ALICE@example.com")
		requireKind(t, err, KindAlreadyExists)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := f.ledger.CreateUser(f.ctx, "", "x@example.com")
		requireKind(t, err, KindInvalidInput)
	})

	t.Run("find by email", func(t *testing.T) {
		got, err := f.ledger.FindUserByEmail(f.ctx, "alice@EXAMPLE.com")
		if err != nil {
			t.Fatalf("FindUserByEmail failed: %v", err)
		}
		if got.ID != alice.ID {
			t.Errorf("ID = %s, want %s", got.ID, alice.ID)
		}
		_, err = f.ledger.FindUserByEmail(f.ctx, "nobody@example.com")
		requireKind(t, err, KindNotFound)
	})

	t.Run("get user", func(t *testing.T) {
		if _, err := f.ledger.GetUser(f.ctx, alice.ID); err != nil {
			t.Errorf("GetUser failed: %v", err)
		}
		_, err := f.ledger.GetUser(f.ctx, "nobody")
		requireKind(t, err, KindNotFound)
	})
}

func TestFriends(t *testing.T) {
	f := newFixture(t)
	alice := f.user("Alice")
	bob := f.user("Bob")
	charlie := f.user("Charlie")

	if err := f.ledger.AddFriend(f.ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("AddFriend failed: %v", err)
	}
	if err := f.ledger.AddFriend(f.ctx, charlie.ID, alice.ID); err != nil {
		t.Fatalf("AddFriend failed: %v", err)
	}

	t.Run("links are symmetric", func(t *testing.T) {
		friends, err := f.ledger.ListFriends(f.ctx, bob.ID)
		if err != nil {
			t.Fatalf("ListFriends failed: %v", err)
		}
		if len(friends) != 1 || friends[0].ID != alice.ID {
			t.Errorf("Bob's friends = %+v, want Alice", friends)
		}

		friends, _ = f.ledger.ListFriends(f.ctx, alice.ID)
		if len(friends) != 2 {
			t.Errorf("Expected Alice to have 2 friends, got %d", len(friends))
		}
	})

	tests := []struct {
		name   string
		user   string
		friend string
		kind   Kind
	}{
		{name: "same direction again", user: alice.ID, friend: bob.ID, kind: KindAlreadyExists},
		{name: "reverse direction", user: bob.ID, friend: alice.ID, kind: KindAlreadyExists},
		{name: "self", user: alice.ID, friend: alice.ID, kind: KindInvalidInput},
		{name: "unknown friend", user: alice.ID, friend: "nobody", kind: KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.ledger.AddFriend(f.ctx, tt.user, tt.friend)
			e := requireKind(t, err, tt.kind)
			if tt.kind == KindNotFound && e.EntityID != tt.friend {
				t.Errorf("EntityID = %s, want %s", e.EntityID, tt.friend)
			}
		})
	}

	t.Run("unknown user has no friend list", func(t *testing.T) {
		_, err := f.ledger.ListFriends(f.ctx, "nobody")
		requireKind(t, err, KindNotFound)
	})
}
