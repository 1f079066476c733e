// Package inmem provides a process-local conversation history store.
package inmem

import (
	"context"
	"log/slog"
	"sync"

	"github.com/poiesic/dalil/core"
	"github.com/poiesic/dalil/memory"
	lcmemory "github.com/tmc/langchaingo/memory"
)

// userMemory holds one user's conversation buffer.
// The mutex serializes reads and appends for that user.
type userMemory struct {
	mu     sync.Mutex
	buffer *lcmemory.ConversationBuffer
}

// Store implements memory.Store with in-process conversation buffers,
// created lazily per user. Histories grow without bound unless a max-turns
// cap is configured.
type Store struct {
	mu       sync.Mutex
	users    map[string]*userMemory
	maxTurns int
	logger   *slog.Logger
}

var _ memory.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithMaxTurns caps each user's history at the given number of turns,
// discarding the oldest turns first. Zero (the default) means unbounded.
func WithMaxTurns(max int) Option {
	return func(s *Store) {
		if max < 0 {
			max = 0
		}
		s.maxTurns = max
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewStore creates an empty in-memory conversation store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		users:  make(map[string]*userMemory),
		logger: slog.Default().With("component", "inmem-memory"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// getUser returns the user's memory record, creating an empty one for an
// unseen user. Creation is idempotent under concurrency.
func (s *Store) getUser(userID string) *userMemory {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		user = &userMemory{buffer: lcmemory.NewConversationBuffer()}
		s.users[userID] = user
		s.logger.Debug("created memory record", "user", userID)
	}
	return user
}

// History returns the user's transcript, empty for a fresh user.
func (s *Store) History(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", core.ErrEmptyUserID
	}

	user := s.getUser(userID)
	user.mu.Lock()
	defer user.mu.Unlock()

	vars, err := user.buffer.LoadMemoryVariables(ctx, map[string]any{})
	if err != nil {
		return "", err
	}

	history, _ := vars[user.buffer.GetMemoryKey(ctx)].(string)
	return history, nil
}

// SaveTurn appends one turn to the user's history.
func (s *Store) SaveTurn(ctx context.Context, userID, question, answer string) error {
	if userID == "" {
		return core.ErrEmptyUserID
	}

	user := s.getUser(userID)
	user.mu.Lock()
	defer user.mu.Unlock()

	err := user.buffer.SaveContext(ctx,
		map[string]any{"question": question},
		map[string]any{"answer": answer},
	)
	if err != nil {
		return err
	}

	if s.maxTurns > 0 {
		if err := s.prune(ctx, user); err != nil {
			return err
		}
	}
	return nil
}

// prune drops the oldest messages beyond the per-user turn cap.
// Caller holds the user lock.
func (s *Store) prune(ctx context.Context, user *userMemory) error {
	messages, err := user.buffer.ChatHistory.Messages(ctx)
	if err != nil {
		return err
	}

	// One turn is a human message plus an AI message.
	limit := s.maxTurns * 2
	if len(messages) <= limit {
		return nil
	}
	return user.buffer.ChatHistory.SetMessages(ctx, messages[len(messages)-limit:])
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}
