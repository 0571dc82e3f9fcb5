// Package ledger implements the settlement ledger: group and bill
// lifecycles, split persistence and balance aggregation on top of a
// storage.Store.
//
// Multi-step operations are not transactional. Group creation compensates
// a failed membership insert by deleting the group; deletions run forward
// only and report the step that failed. Every failure is returned as an
// *Error whose Kind tells callers how to react.
package ledger

import (
	"context"

	"github.com/Swagat404/SettleUp/internal/models"
	"github.com/Swagat404/SettleUp/internal/storage"
)

// BillParser turns a bill image into structured items.
type BillParser interface {
	Parse(ctx context.Context, image []byte) (*models.ParsedBill, error)
	// Translate returns a copy of bill with item names in the target language.
	Translate(ctx context.Context, bill *models.ParsedBill) (*models.ParsedBill, error)
}

// VoiceMatcher finds which candidate names are spoken in an audio clip.
// The result is a deduplicated subset of candidates.
type VoiceMatcher interface {
	Match(ctx context.Context, audio []byte, candidates []string) ([]string, error)
}

// Ledger runs ledger operations against a store. It holds no state between
// calls and is safe for concurrent use if its collaborators are.
type Ledger struct {
	store   storage.Store
	parser  BillParser
	matcher VoiceMatcher
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithBillParser sets the collaborator used by ScanBill.
func WithBillParser(p BillParser) Option {
	return func(l *Ledger) { l.parser = p }
}

// WithVoiceMatcher sets the collaborator used by IdentifyParticipants.
func WithVoiceMatcher(m VoiceMatcher) Option {
	return func(l *Ledger) { l.matcher = m }
}

// New creates a Ledger backed by store.
func New(store storage.Store, opts ...Option) *Ledger {
	l := &Ledger{store: store}
	for _, opt := range opts {
		opt(l)
	}
	return l
}
