// Package domain defines the MCP tools that expose commitment tracking
// to model-driven clients.
package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/trothapp/troth/internal/commitment"
	"github.com/trothapp/troth/internal/storage"
	"github.com/trothapp/troth/internal/user"
)

// ActorResolver yields the user tool calls act on behalf of.
type ActorResolver func(ctx context.Context) (user.User, error)

// CommitmentListInput represents the MCP tool input for listing commitments.
type CommitmentListInput struct {
	Status string `json:"status,omitempty" jsonschema:"optional status filter (open, completed, failed)"`
}

// CommitmentEntry represents one commitment in MCP responses.
type CommitmentEntry struct {
	ID            string `json:"id" jsonschema:"commitment identifier"`
	Text          string `json:"text" jsonschema:"commitment statement"`
	ConfidencePct int    `json:"declared_confidence_pct" jsonschema:"declared confidence percentage (0-100)"`
	Deadline      string `json:"deadline" jsonschema:"RFC3339 deadline in UTC"`
	Status        string `json:"status" jsonschema:"commitment status (open, completed, failed)"`
	Overdue       bool   `json:"overdue" jsonschema:"whether an open commitment is past its deadline"`
	OutcomeNotes  string `json:"outcome_notes,omitempty" jsonschema:"notes recorded at resolution"`
	CreatedAt     string `json:"created_at" jsonschema:"RFC3339 timestamp when the commitment was declared"`
	ResolvedAt    string `json:"resolved_at,omitempty" jsonschema:"RFC3339 timestamp when the commitment was resolved"`
}

// CommitmentListResult represents the MCP tool output for listing commitments.
type CommitmentListResult struct {
	Commitments []CommitmentEntry `json:"commitments" jsonschema:"commitments ordered by deadline"`
}

// CommitmentDeclareInput represents the MCP tool input for declaring a commitment.
type CommitmentDeclareInput struct {
	Text          string `json:"text" jsonschema:"commitment statement"`
	ConfidencePct int    `json:"declared_confidence_pct" jsonschema:"declared confidence percentage, clamped to 0-100"`
	Deadline      string `json:"deadline" jsonschema:"deadline as RFC3339 or YYYY-MM-DDTHH:MM, treated as UTC"`
}

// CommitmentDeclareResult represents the MCP tool output for declaring a commitment.
type CommitmentDeclareResult struct {
	Commitment CommitmentEntry `json:"commitment" jsonschema:"the declared commitment"`
}

// CommitmentResolveInput represents the MCP tool input for resolving a commitment.
type CommitmentResolveInput struct {
	CommitmentID string `json:"commitment_id" jsonschema:"commitment identifier"`
	Status       string `json:"status" jsonschema:"resolution status (completed, failed)"`
	Notes        string `json:"notes,omitempty" jsonschema:"optional outcome notes"`
}

// CommitmentResolveResult represents the MCP tool output for resolving a commitment.
type CommitmentResolveResult struct {
	Commitment CommitmentEntry `json:"commitment" jsonschema:"the resolved commitment"`
}

// CommitmentStatsInput represents the MCP tool input for calibration statistics.
type CommitmentStatsInput struct{}

// CommitmentStatsResult represents the MCP tool output for calibration statistics.
type CommitmentStatsResult struct {
	Open                     int64   `json:"open" jsonschema:"number of open commitments"`
	Completed                int64   `json:"completed" jsonschema:"number of completed commitments"`
	Failed                   int64   `json:"failed" jsonschema:"number of failed commitments"`
	AvgDeclaredConfidencePct float64 `json:"avg_declared_confidence_pct" jsonschema:"average declared confidence across all commitments"`
	KeptRatePct              float64 `json:"kept_rate_pct" jsonschema:"share of resolved commitments that completed, as a percentage"`
	AvgConfidenceCompleted   float64 `json:"avg_confidence_completed" jsonschema:"average declared confidence among completed commitments"`
	AvgConfidenceFailed      float64 `json:"avg_confidence_failed" jsonschema:"average declared confidence among failed commitments"`
}

// CommitmentListTool defines the MCP tool schema for listing commitments.
func CommitmentListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "commitment_list",
		Description: "Lists the acting user's commitments ordered by deadline, optionally filtered by status.",
	}
}

// CommitmentListHandler executes a commitment list request.
func CommitmentListHandler(store storage.Store, actor ActorResolver) mcp.ToolHandlerFor[CommitmentListInput, CommitmentListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CommitmentListInput) (*mcp.CallToolResult, CommitmentListResult, error) {
		acting, err := actor(ctx)
		if err != nil {
			return nil, CommitmentListResult{}, err
		}

		filter := commitment.StatusUnspecified
		if strings.TrimSpace(input.Status) != "" {
			filter, err = commitment.StatusFromLabel(input.Status)
			if err != nil {
				return nil, CommitmentListResult{}, fmt.Errorf("status %q is not one of open, completed, failed", input.Status)
			}
		}

		list, err := store.ListCommitmentsByUser(ctx, acting.ID)
		if err != nil {
			return nil, CommitmentListResult{}, fmt.Errorf("commitment list failed: %w", err)
		}

		now := time.Now().UTC()
		result := CommitmentListResult{Commitments: make([]CommitmentEntry, 0, len(list))}
		for _, c := range list {
			if filter != commitment.StatusUnspecified && c.Status != filter {
				continue
			}
			result.Commitments = append(result.Commitments, commitmentEntry(c, now))
		}
		return nil, result, nil
	}
}

// CommitmentDeclareTool defines the MCP tool schema for declaring a commitment.
func CommitmentDeclareTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "commitment_declare",
		Description: "Declares a new open commitment with a statement, a confidence percentage, and a deadline.",
	}
}

// CommitmentDeclareHandler executes a commitment declare request.
func CommitmentDeclareHandler(store storage.Store, actor ActorResolver) mcp.ToolHandlerFor[CommitmentDeclareInput, CommitmentDeclareResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CommitmentDeclareInput) (*mcp.CallToolResult, CommitmentDeclareResult, error) {
		acting, err := actor(ctx)
		if err != nil {
			return nil, CommitmentDeclareResult{}, err
		}

		deadline, err := parseDeadline(input.Deadline)
		if err != nil {
			return nil, CommitmentDeclareResult{}, err
		}

		declared, err := commitment.Declare(commitment.DeclareInput{
			UserID:                acting.ID,
			Text:                  input.Text,
			DeclaredConfidencePct: input.ConfidencePct,
			Deadline:              deadline,
		}, nil, nil)
		if err != nil {
			return nil, CommitmentDeclareResult{}, fmt.Errorf("commitment declare failed: %w", err)
		}
		if err := store.PutCommitment(ctx, declared); err != nil {
			return nil, CommitmentDeclareResult{}, fmt.Errorf("commitment declare failed: %w", err)
		}

		return nil, CommitmentDeclareResult{Commitment: commitmentEntry(declared, time.Now().UTC())}, nil
	}
}

// CommitmentResolveTool defines the MCP tool schema for resolving a commitment.
func CommitmentResolveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "commitment_resolve",
		Description: "Resolves an open commitment as completed or failed, with optional outcome notes.",
	}
}

// CommitmentResolveHandler executes a commitment resolve request.
func CommitmentResolveHandler(store storage.Store, actor ActorResolver) mcp.ToolHandlerFor[CommitmentResolveInput, CommitmentResolveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CommitmentResolveInput) (*mcp.CallToolResult, CommitmentResolveResult, error) {
		acting, err := actor(ctx)
		if err != nil {
			return nil, CommitmentResolveResult{}, err
		}

		commitmentID := strings.TrimSpace(input.CommitmentID)
		if commitmentID == "" {
			return nil, CommitmentResolveResult{}, fmt.Errorf("commitment_id is required")
		}
		target, err := commitment.StatusFromLabel(input.Status)
		if err != nil {
			return nil, CommitmentResolveResult{}, fmt.Errorf("status %q is not one of completed, failed", input.Status)
		}

		c, err := store.GetCommitment(ctx, commitmentID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, CommitmentResolveResult{}, fmt.Errorf("commitment resolve failed: %w", err)
		}
		// Foreign commitments look identical to missing ones.
		if errors.Is(err, storage.ErrNotFound) || c.UserID != acting.ID {
			return nil, CommitmentResolveResult{}, fmt.Errorf("commitment %q not found", commitmentID)
		}

		if err := c.Resolve(target, input.Notes, nil); err != nil {
			return nil, CommitmentResolveResult{}, err
		}
		if err := store.UpdateCommitmentResolution(ctx, c); err != nil {
			return nil, CommitmentResolveResult{}, fmt.Errorf("commitment resolve failed: %w", err)
		}

		return nil, CommitmentResolveResult{Commitment: commitmentEntry(c, time.Now().UTC())}, nil
	}
}

// CommitmentStatsTool defines the MCP tool schema for calibration statistics.
func CommitmentStatsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "commitment_stats",
		Description: "Reports calibration statistics for the acting user: status counts, kept rate, and declared-confidence averages.",
	}
}

// CommitmentStatsHandler executes a calibration statistics request.
func CommitmentStatsHandler(store storage.Store, actor ActorResolver) mcp.ToolHandlerFor[CommitmentStatsInput, CommitmentStatsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ CommitmentStatsInput) (*mcp.CallToolResult, CommitmentStatsResult, error) {
		acting, err := actor(ctx)
		if err != nil {
			return nil, CommitmentStatsResult{}, err
		}

		stats, err := store.GetUserStatistics(ctx, acting.ID)
		if err != nil {
			return nil, CommitmentStatsResult{}, fmt.Errorf("commitment stats failed: %w", err)
		}

		return nil, CommitmentStatsResult{
			Open:                     stats.Open,
			Completed:                stats.Completed,
			Failed:                   stats.Failed,
			AvgDeclaredConfidencePct: stats.AvgDeclaredConfidencePct,
			KeptRatePct:              stats.KeptRatePct(),
			AvgConfidenceCompleted:   stats.AvgConfidenceCompleted,
			AvgConfidenceFailed:      stats.AvgConfidenceFailed,
		}, nil
	}
}

// parseDeadline accepts RFC3339 or the bare datetime-local shape, both
// treated as UTC.
func parseDeadline(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("deadline is required")
	}
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return parsed.UTC(), nil
	}
	return commitment.ParseDeadline(trimmed)
}

func commitmentEntry(c commitment.Commitment, now time.Time) CommitmentEntry {
	entry := CommitmentEntry{
		ID:            c.ID,
		Text:          c.Text,
		ConfidencePct: c.DeclaredConfidencePct,
		Deadline:      c.Deadline.UTC().Format(time.RFC3339),
		Status:        string(c.Status),
		Overdue:       c.Overdue(now),
		OutcomeNotes:  c.OutcomeNotes,
		CreatedAt:     c.CreatedAt.UTC().Format(time.RFC3339),
	}
	if c.ResolvedAt != nil {
		entry.ResolvedAt = c.ResolvedAt.UTC().Format(time.RFC3339)
	}
	return entry
}
