package ledger

import (
	"context"
	"errors"
	"strings"

	"github.com/Swagat404/SettleUp/internal/models"
)

var (
	errNoParser  = errors.New("bill parser not configured")
	errNoMatcher = errors.New("voice matcher not configured")
)

// ScannedBill is a bill ingested from an image, with what the parser read
// besides the items.
type ScannedBill struct {
	Bill     *models.Bill
	Category string
	People   []string
}

// ScanBill parses a bill image, translates its item names and ingests it.
func (l *Ledger) ScanBill(ctx context.Context, groupID, uploaderID string, image []byte) (*ScannedBill, error) {
	const op = "ScanBill"

	if l.parser == nil {
		return nil, newError(KindUpstream, op, groupID, errNoParser)
	}
	if len(image) == 0 {
		return nil, newError(KindInvalidInput, op, groupID, errors.New("image is empty"))
	}
	if _, err := l.store.GetGroup(ctx, groupID); err != nil {
		return nil, fromStore(op, groupID, err)
	}

	parsed, err := l.parser.Parse(ctx, image)
	if err != nil {
		e := newError(KindUpstream, op, groupID, err)
		e.Step = "parse"
		return nil, e
	}
	translated, err := l.parser.Translate(ctx, parsed)
	if err != nil {
		e := newError(KindUpstream, op, groupID, err)
		e.Step = "translate"
		return nil, e
	}

	bill, err := l.IngestBill(ctx, groupID, uploaderID, translated.Items)
	if err != nil {
		return nil, err
	}
	return &ScannedBill{
		Bill:     bill,
		Category: translated.Category,
		People:   translated.People,
	}, nil
}

// IdentifyParticipants returns the group members whose names are spoken in
// the audio clip, in the order the matcher found them. Members sharing a
// name resolve to the one who joined first.
func (l *Ledger) IdentifyParticipants(ctx context.Context, groupID string, audio []byte) ([]*models.Member, error) {
	const op = "IdentifyParticipants"

	if l.matcher == nil {
		return nil, newError(KindUpstream, op, groupID, errNoMatcher)
	}
	if len(audio) == 0 {
		return nil, newError(KindInvalidInput, op, groupID, errors.New("audio is empty"))
	}

	members, err := l.store.ListMembers(ctx, groupID)
	if err != nil {
		return nil, newError(KindUpstream, op, groupID, err)
	}
	if len(members) == 0 {
		if _, err := l.store.GetGroup(ctx, groupID); err != nil {
			return nil, fromStore(op, groupID, err)
		}
		return nil, nil
	}

	byName := make(map[string]*models.Member, len(members))
	names := make([]string, 0, len(members))
	for _, m := range members {
		key := strings.ToLower(m.Name)
		if _, ok := byName[key]; ok {
			continue
		}
		byName[key] = m
		names = append(names, m.Name)
	}

	matched, err := l.matcher.Match(ctx, audio, names)
	if err != nil {
		e := newError(KindUpstream, op, groupID, err)
		e.Step = "match"
		return nil, e
	}

	found := make([]*models.Member, 0, len(matched))
	seen := make(map[string]bool, len(matched))
	for _, name := range matched {
		m, ok := byName[strings.ToLower(name)]
		if !ok || seen[m.UserID] {
			continue
		}
		seen[m.UserID] = true
		found = append(found, m)
	}
	return found, nil
}
