// Package archive persists finished interview reports to Postgres. Archival
// is best-effort supporting infrastructure: the interview flow never fails
// because a row could not be written.
package archive

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rehearse-ai/rehearse/internal/report"
)

type Archive struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Archive, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Archive{pool: pool}, nil
}

func (a *Archive) Close() {
	if a == nil {
		return
	}
	a.pool.Close()
}

// SaveReport writes one row to interview_reports with the report as JSONB.
// Safe on a nil receiver so unconfigured archival is a no-op.
func (a *Archive) SaveReport(ctx context.Context, sessionID, candidate, roleTitle string, rep report.Report) error {
	if a == nil {
		return nil
	}

	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = a.pool.Exec(ctx, `
		INSERT INTO interview_reports (id, session_id, candidate_name, role_title, overall_score, report, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())`,
		uuid.New(), sessionID, candidate, roleTitle, rep.OverallScore, payload,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}
