// Package conversation persists the ordered log of conversation turns.
//
// The whole log is stored as one JSON array under a single key and is
// rewritten on every append, matching what the chat page reads back from
// local storage.
package conversation

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/pricofy/voice-translator/internal/domain"
	"github.com/pricofy/voice-translator/internal/kv"
)

// ErrEmptyUtterance is returned when appending a turn without user text.
var ErrEmptyUtterance = errors.New("conversation: turn has no user text")

// Store reads, appends to and clears the conversation log.
// It is safe for a single writer; concurrent appends may lose turns.
type Store struct {
	kv  kv.Store
	key string
}

// NewStore creates a Store keeping the log under domain.ConversationKey.
func NewStore(s kv.Store) *Store {
	return &Store{kv: s, key: domain.ConversationKey}
}

// Read returns the current log, or an empty log when none is persisted.
func (s *Store) Read(ctx context.Context) (domain.Log, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return domain.Log{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "conversation: read")
	}
	if len(raw) == 0 || string(raw) == "null" {
		return domain.Log{}, nil
	}

	var log domain.Log
	if err := json.Unmarshal(raw, &log); err != nil {
		return nil, errors.Wrap(err, "conversation: decode persisted log")
	}
	if log == nil {
		log = domain.Log{}
	}
	return log, nil
}

// Append adds turn to the end of the log and writes the whole log back.
// It returns the updated log.
func (s *Store) Append(ctx context.Context, turn domain.Turn) (domain.Log, error) {
	if turn.User == "" {
		return nil, ErrEmptyUtterance
	}

	log, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	log = append(log, turn)

	raw, err := json.Marshal(log)
	if err != nil {
		return nil, errors.Wrap(err, "conversation: encode log")
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return nil, errors.Wrap(err, "conversation: write")
	}
	return log, nil
}

// Clear deletes the persisted log.
func (s *Store) Clear(ctx context.Context) error {
	return errors.Wrap(s.kv.Delete(ctx, s.key), "conversation: clear")
}
