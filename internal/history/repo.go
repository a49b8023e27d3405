// Package history persists finished generations so the UI can hydrate its
// job list across restarts. The in-memory registry remains the source of
// truth for live jobs; history only sees terminal cards.
package history

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"studio/internal/domain"
)

// Record is one persisted generation.
type Record struct {
	LocalID     string    `json:"localId"`
	RemoteID    string    `json:"remoteId,omitempty"`
	ModelID     string    `json:"modelId"`
	Mode        string    `json:"mode"`
	Status      string    `json:"status"`
	ResultRef   string    `json:"resultRef,omitempty"`
	Error       string    `json:"error,omitempty"`
	Credits     int       `json:"credits"`
	RequestJSON []byte    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RepositoryPG stores generation history in PostgreSQL.
type RepositoryPG struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRepository creates a history repository backed by PostgreSQL.
func NewRepository(pool *pgxpool.Pool, logger zerolog.Logger) *RepositoryPG {
	return &RepositoryPG{pool: pool, logger: logger}
}

// Refresh upserts the terminal card. It is fire-and-forget from the
// orchestrator's point of view; persistence failures are logged, never
// propagated back into the job lifecycle.
func (r *RepositoryPG) Refresh(ctx context.Context, card domain.JobCard) {
	reqJSON, err := json.Marshal(card.Request)
	if err != nil {
		r.logger.Error().Err(err).Str("local_id", card.LocalID).Msg("history: marshal request")
		return
	}

	query := `
INSERT INTO generations (local_id, remote_id, model_id, mode, status, result_ref, error_message, credits, request_json)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (local_id) DO UPDATE
SET status = EXCLUDED.status,
    result_ref = EXCLUDED.result_ref,
    error_message = EXCLUDED.error_message,
    updated_at = NOW();
`
	_, err = r.pool.Exec(ctx, query,
		card.LocalID,
		nullableString(card.RemoteID),
		card.Request.ModelID,
		string(card.Request.Mode),
		string(card.Status),
		nullableString(card.ResultRef),
		nullableString(card.Error),
		card.Credits,
		reqJSON,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("local_id", card.LocalID).Msg("history: persist terminal card")
	}
}

// ListRecent returns the newest records first, capped at limit.
func (r *RepositoryPG) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT local_id, COALESCE(remote_id, ''), model_id, mode, status, COALESCE(result_ref, ''), COALESCE(error_message, ''), credits, request_json, created_at
FROM generations
ORDER BY created_at DESC
LIMIT $1;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.LocalID,
			&rec.RemoteID,
			&rec.ModelID,
			&rec.Mode,
			&rec.Status,
			&rec.ResultRef,
			&rec.Error,
			&rec.Credits,
			&rec.RequestJSON,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
