package badger

import (
	"context"
	"time"

	"github.com/civiclens/civiclens/core"
	"github.com/civiclens/civiclens/storage"
	"github.com/dgraph-io/badger/v4"
)

// ChatRepository implements storage.ChatRepository for BadgerDB.
//
// Turn keys embed the sequence-assigned ID in BigEndian order, so iterating
// the turn prefix forwards yields the conversation in append order without a
// secondary index.
type ChatRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ChatRepository = (*ChatRepository)(nil)

// NewChatRepository creates a new ChatRepository.
func NewChatRepository(backend *Backend) (*ChatRepository, error) {
	idSeq, err := backend.GetSequence(chatTurnIDSeq)
	if err != nil {
		return nil, err
	}

	return &ChatRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ChatRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ChatRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AppendTurns appends turns to the conversation history in order.
func (r *ChatRepository) AppendTurns(ctx context.Context, turns ...*core.ChatTurn) ([]*core.ChatTurn, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, turn := range turns {
			if turn.Id == 0 {
				nextID, err := r.idSeq.Next()
				if err != nil {
					return err
				}
				// BadgerDB sequences can return 0 on first call, so we skip it
				if nextID == 0 {
					nextID, err = r.idSeq.Next()
					if err != nil {
						return err
					}
				}
				turn.Id = core.ID(nextID)
			}

			if turn.InsertedAt.IsZero() {
				turn.InsertedAt = time.Now().UTC()
			}
			if turn.Timestamp.IsZero() {
				turn.Timestamp = turn.InsertedAt
			}

			key := makeChatTurnKey(turn.Id)
			if err := tx.Set(key, storage.MarshalChatTurn(turn)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return turns, err
}

// RecentTurns retrieves the N most recently appended turns in append order.
func (r *ChatRepository) RecentTurns(ctx context.Context, limit int) ([]*core.ChatTurn, error) {
	var window []*core.ChatTurn
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Walk backwards from the newest turn, then reverse the window.
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(chatTurnPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek past the highest possible turn key
		startKey := makeChatTurnKey(core.ID(^uint64(0)))

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			if limit > 0 && len(window) >= limit {
				break
			}
			var turn *core.ChatTurn
			err := iter.Item().Value(func(val []byte) error {
				var err error
				turn, err = storage.UnmarshalChatTurn(val)
				return err
			})
			if err != nil {
				return err
			}
			window = append(window, turn)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Oldest of the window first
	for i, j := 0, len(window)-1; i < j; i, j = i+1, j-1 {
		window[i], window[j] = window[j], window[i]
	}

	return window, nil
}

// CountTurns returns the number of stored turns.
func (r *ChatRepository) CountTurns(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chatTurnPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// ClearTurns removes the entire conversation history.
func (r *ChatRepository) ClearTurns(ctx context.Context) (int, error) {
	removed := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chatTurnPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)

		var keys [][]byte
		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
			removed++
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return 0, err
	}
	return removed, nil
}
