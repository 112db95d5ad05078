package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/trothapp/troth/internal/commitment"
	"github.com/trothapp/troth/internal/storage"
)

const commitmentColumns = `id, user_id, commitment_text, declared_confidence_pct, deadline, status, outcome_notes, created_at, updated_at, resolved_at`

// PutCommitment inserts a commitment record.
func (s *Store) PutCommitment(ctx context.Context, c commitment.Commitment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("commitment id is required")
	}
	if strings.TrimSpace(c.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	if !c.Status.Valid() {
		return fmt.Errorf("commitment status %q is invalid", c.Status)
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO commitments (`+commitmentColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID,
		c.UserID,
		c.Text,
		c.DeclaredConfidencePct,
		toMillis(c.Deadline),
		string(c.Status),
		nullableText(c.OutcomeNotes),
		toMillis(c.CreatedAt),
		toMillis(c.UpdatedAt),
		nullableMillis(c.ResolvedAt),
	)
	if err != nil {
		return fmt.Errorf("put commitment: %w", err)
	}
	return nil
}

// GetCommitment fetches one commitment by ID.
func (s *Store) GetCommitment(ctx context.Context, commitmentID string) (commitment.Commitment, error) {
	if err := ctx.Err(); err != nil {
		return commitment.Commitment{}, err
	}
	if s == nil || s.sqlDB == nil {
		return commitment.Commitment{}, fmt.Errorf("storage is not configured")
	}
	commitmentID = strings.TrimSpace(commitmentID)
	if commitmentID == "" {
		return commitment.Commitment{}, fmt.Errorf("commitment id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT `+commitmentColumns+`
FROM commitments
WHERE id = $1`,
		commitmentID,
	)
	found, err := scanCommitment(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return commitment.Commitment{}, storage.ErrNotFound
		}
		return commitment.Commitment{}, fmt.Errorf("get commitment: %w", err)
	}
	return found, nil
}

// ListCommitmentsByUser returns the user's commitments ordered by deadline
// ascending, then creation time.
func (s *Store) ListCommitmentsByUser(ctx context.Context, userID string) ([]commitment.Commitment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT `+commitmentColumns+`
FROM commitments
WHERE user_id = $1
ORDER BY deadline ASC, created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list commitments: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []commitment.Commitment
	for rows.Next() {
		item, err := scanCommitment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan commitment: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate commitments: %w", err)
	}
	return out, nil
}

// UpdateCommitmentResolution persists the resolution fields of a resolved
// commitment. The row-level status guard keeps a concurrent double resolve
// from overwriting the first outcome.
func (s *Store) UpdateCommitmentResolution(ctx context.Context, c commitment.Commitment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("commitment id is required")
	}
	if !c.Resolved() {
		return commitment.ErrInvalidStatus
	}

	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE commitments
SET status = $2, outcome_notes = $3, resolved_at = $4, updated_at = $5
WHERE id = $1 AND status = 'open'`,
		c.ID,
		string(c.Status),
		nullableText(c.OutcomeNotes),
		nullableMillis(c.ResolvedAt),
		toMillis(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("update commitment resolution: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update commitment resolution rows: %w", err)
	}
	if affected == 0 {
		return commitment.ErrNotOpen
	}
	return nil
}

type scanFunc func(dest ...any) error

func scanCommitment(scan scanFunc) (commitment.Commitment, error) {
	var c commitment.Commitment
	var status string
	var outcomeNotes sql.NullString
	var deadline int64
	var createdAt int64
	var updatedAt int64
	var resolvedAt sql.NullInt64
	if err := scan(
		&c.ID,
		&c.UserID,
		&c.Text,
		&c.DeclaredConfidencePct,
		&deadline,
		&status,
		&outcomeNotes,
		&createdAt,
		&updatedAt,
		&resolvedAt,
	); err != nil {
		return commitment.Commitment{}, err
	}
	c.Status = commitment.Status(status)
	if outcomeNotes.Valid {
		c.OutcomeNotes = outcomeNotes.String
	}
	c.Deadline = fromMillis(deadline)
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	if resolvedAt.Valid {
		value := fromMillis(resolvedAt.Int64)
		c.ResolvedAt = &value
	}
	return c, nil
}

func nullableText(value string) sql.NullString {
	if strings.TrimSpace(value) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
