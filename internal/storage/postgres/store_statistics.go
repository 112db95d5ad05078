package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/trothapp/troth/internal/storage"
)

const userStatisticsQuery = `
SELECT
    COUNT(*) FILTER (WHERE status = 'open'),
    COUNT(*) FILTER (WHERE status = 'completed'),
    COUNT(*) FILTER (WHERE status = 'failed'),
    COALESCE(AVG(declared_confidence_pct), 0)::float8,
    COALESCE(AVG(declared_confidence_pct) FILTER (WHERE status = 'completed'), 0)::float8,
    COALESCE(AVG(declared_confidence_pct) FILTER (WHERE status = 'failed'), 0)::float8
FROM commitments
WHERE user_id = $1;
`

// GetUserStatistics returns aggregate commitment counts and declared
// confidence averages for one user in a single query.
func (s *Store) GetUserStatistics(ctx context.Context, userID string) (storage.UserStatistics, error) {
	if err := ctx.Err(); err != nil {
		return storage.UserStatistics{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.UserStatistics{}, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return storage.UserStatistics{}, fmt.Errorf("user id is required")
	}

	var stats storage.UserStatistics
	row := s.sqlDB.QueryRowContext(ctx, userStatisticsQuery, userID)
	if err := row.Scan(
		&stats.Open,
		&stats.Completed,
		&stats.Failed,
		&stats.AvgDeclaredConfidencePct,
		&stats.AvgConfidenceCompleted,
		&stats.AvgConfidenceFailed,
	); err != nil {
		return storage.UserStatistics{}, fmt.Errorf("get user statistics: %w", err)
	}
	return stats, nil
}
