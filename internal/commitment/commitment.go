// Package commitment models declared commitments and their resolution lifecycle.
package commitment

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/trothapp/troth/internal/platform/errors"
	"github.com/trothapp/troth/internal/platform/id"
)

// Status describes the commitment lifecycle label.
type Status string

const (
	StatusUnspecified Status = ""
	StatusOpen        Status = "open"
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
)

var (
	// ErrTextRequired indicates a missing commitment text.
	ErrTextRequired = apperrors.New(apperrors.CodeCommitmentTextRequired, "commitment text is required")
	// ErrInvalidDeadline indicates an unparseable or missing deadline.
	ErrInvalidDeadline = apperrors.New(apperrors.CodeCommitmentDeadlineInvalid, "deadline format is invalid")
	// ErrUserMissing indicates a commitment without an owner.
	ErrUserMissing = apperrors.New(apperrors.CodeCommitmentUserMissing, "commitment owner is required")
	// ErrNotOpen indicates a resolve attempt on a commitment that is not open.
	ErrNotOpen = apperrors.New(apperrors.CodeCommitmentNotOpen, "only open commitments can be resolved")
	// ErrInvalidStatus indicates a resolution status outside completed/failed.
	ErrInvalidStatus = apperrors.New(apperrors.CodeCommitmentStatusInvalid, "resolution status is invalid")
)

// deadlineLayouts are the accepted deadline shapes. Browsers submit
// datetime-local values with or without a seconds component.
var deadlineLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Commitment represents one declared commitment.
type Commitment struct {
	ID     string
	UserID string
	// Text is the commitment statement as entered by its owner.
	Text string
	// DeclaredConfidencePct is the owner's stated confidence in [0,100].
	DeclaredConfidencePct int
	Deadline              time.Time
	Status                Status
	// OutcomeNotes holds optional notes recorded at resolution; empty means none.
	OutcomeNotes string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	// ResolvedAt is set when the commitment leaves the open status.
	ResolvedAt *time.Time
}

// DeclareInput describes the data needed to declare a commitment.
type DeclareInput struct {
	UserID                string
	Text                  string
	DeclaredConfidencePct int
	Deadline              time.Time
}

// Declare creates a new open commitment with a generated ID and timestamps.
func Declare(input DeclareInput, now func() time.Time, idGenerator func() (string, error)) (Commitment, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeDeclareInput(input)
	if err != nil {
		return Commitment{}, err
	}

	commitmentID, err := idGenerator()
	if err != nil {
		return Commitment{}, fmt.Errorf("generate commitment id: %w", err)
	}

	createdAt := now().UTC()
	return Commitment{
		ID:                    commitmentID,
		UserID:                normalized.UserID,
		Text:                  normalized.Text,
		DeclaredConfidencePct: normalized.DeclaredConfidencePct,
		Deadline:              normalized.Deadline.UTC(),
		Status:                StatusOpen,
		CreatedAt:             createdAt,
		UpdatedAt:             createdAt,
	}, nil
}

// NormalizeDeclareInput trims and clamps input before validation.
func NormalizeDeclareInput(input DeclareInput) (DeclareInput, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return DeclareInput{}, ErrUserMissing
	}
	input.Text = strings.TrimSpace(input.Text)
	if input.Text == "" {
		return DeclareInput{}, ErrTextRequired
	}
	input.DeclaredConfidencePct = ClampConfidencePct(input.DeclaredConfidencePct)
	if input.Deadline.IsZero() {
		return DeclareInput{}, ErrInvalidDeadline
	}
	return input, nil
}

// Resolve transitions an open commitment to completed or failed.
func (c *Commitment) Resolve(target Status, notes string, now func() time.Time) error {
	if now == nil {
		now = time.Now
	}
	if c.Status != StatusOpen {
		return ErrNotOpen
	}
	if target != StatusCompleted && target != StatusFailed {
		return ErrInvalidStatus
	}

	resolvedAt := now().UTC()
	c.Status = target
	c.OutcomeNotes = strings.TrimSpace(notes)
	c.ResolvedAt = &resolvedAt
	c.UpdatedAt = resolvedAt
	return nil
}

// Overdue reports whether an open commitment has passed its deadline.
func (c Commitment) Overdue(now time.Time) bool {
	return c.Status == StatusOpen && c.Deadline.Before(now)
}

// Resolved reports whether the commitment has left the open status.
func (c Commitment) Resolved() bool {
	return c.Status == StatusCompleted || c.Status == StatusFailed
}

// StatusFromLabel parses a form or tool label into a Status.
func StatusFromLabel(value string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "open":
		return StatusOpen, nil
	case "completed":
		return StatusCompleted, nil
	case "failed":
		return StatusFailed, nil
	default:
		return StatusUnspecified, ErrInvalidStatus
	}
}

// Valid reports whether the status is one of the known lifecycle labels.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// ParseConfidencePct converts a raw form value into a clamped percentage.
// Blank or unparseable input becomes zero rather than an error.
func ParseConfidencePct(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return ClampConfidencePct(value)
}

// ClampConfidencePct forces a percentage into [0,100].
func ClampConfidencePct(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}

// ParseDeadline converts a datetime-local form value into a UTC timestamp.
func ParseDeadline(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, ErrInvalidDeadline
	}
	for _, layout := range deadlineLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDeadline
}
