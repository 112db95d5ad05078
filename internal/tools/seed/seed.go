// Package seed populates a database with demo data for local development.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/trothapp/troth/internal/commitment"
	"github.com/trothapp/troth/internal/storage"
	"github.com/trothapp/troth/internal/user"
)

// Store is the slice of storage the seeder writes through.
type Store interface {
	storage.UserStore
	storage.CommitmentStore
}

// Config controls the demo account the seeder creates.
type Config struct {
	Username string
	Password string
	// Now anchors fixture deadlines; defaults to time.Now.
	Now func() time.Time
}

// DefaultConfig returns the demo account settings.
func DefaultConfig() Config {
	return Config{
		Username: "demo",
		Password: "demo-password",
	}
}

// Result reports what a seed run created.
type Result struct {
	UserID             string
	UserCreated        bool
	CommitmentsCreated int
}

// fixture describes one demo commitment relative to the seeding moment.
type fixture struct {
	text          string
	confidencePct int
	// deadlineIn places the deadline relative to now; negative means past.
	deadlineIn time.Duration
	status     commitment.Status
	notes      string
}

// fixtures spread demo commitments across every status, including one
// overdue entry, so the dashboard and statistics render with real variety.
var fixtures = []fixture{
	{
		text:          "Ship the quarterly report",
		confidencePct: 85,
		deadlineIn:    72 * time.Hour,
		status:        commitment.StatusOpen,
	},
	{
		text:          "Run three times this week",
		confidencePct: 60,
		deadlineIn:    -24 * time.Hour,
		status:        commitment.StatusOpen,
	},
	{
		text:          "Read one paper and write notes",
		confidencePct: 90,
		deadlineIn:    -7 * 24 * time.Hour,
		status:        commitment.StatusCompleted,
		notes:         "Finished with a day to spare.",
	},
	{
		text:          "Reach inbox zero",
		confidencePct: 40,
		deadlineIn:    -14 * 24 * time.Hour,
		status:        commitment.StatusFailed,
		notes:         "Underestimated the backlog again.",
	},
	{
		text:          "Publish the blog post",
		confidencePct: 75,
		deadlineIn:    -3 * 24 * time.Hour,
		status:        commitment.StatusCompleted,
	},
}

// Run ensures the demo account exists and carries a spread of open,
// completed, and failed commitments. A second run against the same database
// changes nothing, so the seeder is safe to wire into environment boots.
func Run(ctx context.Context, store Store, cfg Config) (Result, error) {
	if store == nil {
		return Result{}, errors.New("store is required")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	account, created, err := ensureUser(ctx, store, cfg)
	if err != nil {
		return Result{}, err
	}
	result := Result{UserID: account.ID, UserCreated: created}

	existing, err := store.ListCommitmentsByUser(ctx, account.ID)
	if err != nil {
		return Result{}, fmt.Errorf("list commitments: %w", err)
	}
	if len(existing) > 0 {
		return result, nil
	}

	anchor := now().UTC()
	for _, fx := range fixtures {
		declared, err := buildFixture(account.ID, fx, anchor)
		if err != nil {
			return result, fmt.Errorf("build fixture %q: %w", fx.text, err)
		}
		if err := store.PutCommitment(ctx, declared); err != nil {
			return result, fmt.Errorf("put fixture %q: %w", fx.text, err)
		}
		result.CommitmentsCreated++
	}
	return result, nil
}

// ensureUser looks the demo account up by username and creates it when
// missing. An existing account is reused as-is, password included.
func ensureUser(ctx context.Context, store Store, cfg Config) (user.User, bool, error) {
	username := strings.ToLower(strings.TrimSpace(cfg.Username))
	existing, err := store.GetUserByUsername(ctx, username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return user.User{}, false, fmt.Errorf("look up account %q: %w", username, err)
	}

	created, err := user.CreateUser(user.CreateUserInput{
		Username: cfg.Username,
		Password: cfg.Password,
	}, nil, nil)
	if err != nil {
		return user.User{}, false, fmt.Errorf("create account %q: %w", username, err)
	}
	if err := store.PutUser(ctx, created); err != nil {
		return user.User{}, false, fmt.Errorf("put account %q: %w", username, err)
	}
	return created, true, nil
}

// buildFixture runs a fixture through the regular domain constructors so
// seeded rows are indistinguishable from organic usage: declared a week
// before the deadline, resolved shortly around it.
func buildFixture(userID string, fx fixture, anchor time.Time) (commitment.Commitment, error) {
	deadline := anchor.Add(fx.deadlineIn)
	declaredAt := deadline.Add(-7 * 24 * time.Hour)

	declared, err := commitment.Declare(commitment.DeclareInput{
		UserID:                userID,
		Text:                  fx.text,
		DeclaredConfidencePct: fx.confidencePct,
		Deadline:              deadline,
	}, fixedClock(declaredAt), nil)
	if err != nil {
		return commitment.Commitment{}, err
	}

	if fx.status != commitment.StatusOpen {
		resolvedAt := deadline.Add(-2 * time.Hour)
		if fx.status == commitment.StatusFailed {
			resolvedAt = deadline.Add(6 * time.Hour)
		}
		if err := declared.Resolve(fx.status, fx.notes, fixedClock(resolvedAt)); err != nil {
			return commitment.Commitment{}, err
		}
	}
	return declared, nil
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
