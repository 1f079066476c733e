package memory

import "context"

// Store keeps per-user conversation history.
// Implementations must be thread-safe: concurrent access for different users
// must not interfere, and get-or-create plus append for the same user must be
// serialized so no turn is lost.
type Store interface {
	// History returns the user's prior turns rendered as a single transcript
	// string, empty for a user with no history. Looking up an unseen user is
	// an idempotent get-or-create: it may create an empty record as a side
	// effect and never fails for that reason.
	History(ctx context.Context, userID string) (string, error)

	// SaveTurn appends one question/answer turn to the user's history,
	// creating the record if absent.
	SaveTurn(ctx context.Context, userID, question, answer string) error

	// Close releases resources held by the store.
	Close() error
}
