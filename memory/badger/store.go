// Package badger provides a persistent conversation history store on BadgerDB.
package badger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/dalil/core"
	"github.com/poiesic/dalil/memory"
	"github.com/tmc/langchaingo/llms"
)

const defaultSequenceBandwidth = 100

// Transcript prefixes, matching the in-memory conversation buffer format so
// the two store implementations are interchangeable.
const (
	humanPrefix = "Human"
	aiPrefix    = "AI"
)

// Store implements memory.Store on a BadgerDB database.
// Turns are keyed by user id plus a monotonic sequence number, so iteration
// in key order replays each user's conversation in insertion order.
type Store struct {
	db     *badger.DB
	seq    *badger.Sequence
	logger *slog.Logger
}

var _ memory.Store = (*Store)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenStore opens a conversation store at the specified path.
// Creates the directory if it doesn't exist.
func OpenStore(filePath string, inMemory bool) (*Store, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	seq, err := db.GetSequence([]byte(turnIDSeq), defaultSequenceBandwidth)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		seq:    seq,
		logger: slog.Default().With("component", "badger-memory"),
	}, nil
}

// History renders the user's stored turns as a transcript string.
// A user with no stored turns gets an empty string; nothing is written.
func (s *Store) History(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", core.ErrEmptyUserID
	}

	turns, err := s.Turns(ctx, userID)
	if err != nil {
		return "", err
	}

	messages := make([]llms.ChatMessage, 0, len(turns)*2)
	for _, turn := range turns {
		messages = append(messages,
			llms.HumanChatMessage{Content: turn.Question},
			llms.AIChatMessage{Content: turn.Answer},
		)
	}

	return llms.GetBufferString(messages, humanPrefix, aiPrefix)
}

// Turns returns the user's stored turns in insertion order.
func (s *Store) Turns(ctx context.Context, userID string) ([]core.Turn, error) {
	if userID == "" {
		return nil, core.ErrEmptyUserID
	}

	var turns []core.Turn
	err := s.db.View(func(tx *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = makeTurnPrefix(userID)

		it := tx.NewIterator(iterOpts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				turn, err := unmarshalTurn(val)
				if err != nil {
					return err
				}
				turns = append(turns, *turn)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("error reading turns", "user", userID, "err", err)
		return nil, err
	}

	return turns, nil
}

// SaveTurn appends one turn to the user's history.
// Sequence numbers come from a database sequence, so concurrent saves for
// the same user land on distinct keys and none is lost.
func (s *Store) SaveTurn(ctx context.Context, userID, question, answer string) error {
	if userID == "" {
		return core.ErrEmptyUserID
	}

	seq, err := s.seq.Next()
	if err != nil {
		return err
	}

	turn := &core.Turn{
		Question:  question,
		Answer:    answer,
		Timestamp: time.Now().UTC(),
	}

	err = s.db.Update(func(tx *badger.Txn) error {
		return tx.Set(makeTurnKey(userID, seq), marshalTurn(turn))
	})
	if err != nil {
		s.logger.Error("error saving turn", "user", userID, "err", err)
		return err
	}

	s.logger.Debug("saved turn", "user", userID, "seq", seq)
	return nil
}

// Close releases the sequence and closes the database.
func (s *Store) Close() error {
	if err := s.seq.Release(); err != nil {
		s.logger.Error("error releasing turn sequence", "err", err)
	}
	return s.db.Close()
}
