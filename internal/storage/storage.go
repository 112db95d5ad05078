// Package storage defines persistence contracts for accounts, commitments,
// and web sessions.
package storage

import (
	"context"
	"time"

	"github.com/trothapp/troth/internal/commitment"
	"github.com/trothapp/troth/internal/platform/errors"
	"github.com/trothapp/troth/internal/user"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New(errors.CodeNotFound, "record not found")

// UserStore persists account records.
type UserStore interface {
	// PutUser inserts a user. A username collision returns an error with
	// code USER_ALREADY_EXISTS.
	PutUser(ctx context.Context, u user.User) error
	GetUser(ctx context.Context, userID string) (user.User, error)
	GetUserByUsername(ctx context.Context, username string) (user.User, error)
}

// CommitmentStore persists commitment records.
type CommitmentStore interface {
	PutCommitment(ctx context.Context, c commitment.Commitment) error
	GetCommitment(ctx context.Context, commitmentID string) (commitment.Commitment, error)
	// ListCommitmentsByUser returns the user's commitments ordered by
	// deadline ascending, then creation time.
	ListCommitmentsByUser(ctx context.Context, userID string) ([]commitment.Commitment, error)
	// UpdateCommitmentResolution persists the resolution fields of an
	// already-resolved commitment.
	UpdateCommitmentResolution(ctx context.Context, c commitment.Commitment) error
}

// WebSession stores a durable authenticated browser session.
type WebSession struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionStore persists web session records.
type SessionStore interface {
	PutWebSession(ctx context.Context, session WebSession) error
	GetWebSession(ctx context.Context, sessionID string) (WebSession, error)
	DeleteWebSession(ctx context.Context, sessionID string) error
	// DeleteExpiredWebSessions removes sessions whose expiry is at or
	// before now and reports how many rows were deleted.
	DeleteExpiredWebSessions(ctx context.Context, now time.Time) (int64, error)
}

// UserStatistics contains aggregate commitment counts for one user.
type UserStatistics struct {
	Open      int64
	Completed int64
	Failed    int64
	// AvgDeclaredConfidencePct averages declared confidence across all of
	// the user's commitments; zero when the user has none.
	AvgDeclaredConfidencePct float64
	// AvgConfidenceCompleted and AvgConfidenceFailed average declared
	// confidence within each resolved bucket.
	AvgConfidenceCompleted float64
	AvgConfidenceFailed    float64
}

// Resolved returns the number of commitments that left the open status.
func (s UserStatistics) Resolved() int64 {
	return s.Completed + s.Failed
}

// KeptRatePct returns the share of resolved commitments that completed,
// as a percentage. Zero when nothing has been resolved yet.
func (s UserStatistics) KeptRatePct() float64 {
	resolved := s.Resolved()
	if resolved == 0 {
		return 0
	}
	return float64(s.Completed) / float64(resolved) * 100
}

// StatisticsStore provides aggregate commitment statistics.
type StatisticsStore interface {
	GetUserStatistics(ctx context.Context, userID string) (UserStatistics, error)
}

// Store combines every persistence contract backed by one database.
type Store interface {
	UserStore
	CommitmentStore
	SessionStore
	StatisticsStore
	Close() error
}
