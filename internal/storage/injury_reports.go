package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/claude/fitcoach/internal/models"
)

// InsertInjuryReport stores an assessment. The risk level is duplicated into
// its own column so reports can be filtered without decoding JSON.
func (db *DB) InsertInjuryReport(ctx context.Context, r models.InjuryReport) error {
	assessment, err := json.Marshal(r.Assessment)
	if err != nil {
		return fmt.Errorf("encoding assessment: %w", err)
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO injury_reports (id, user_id, risk_level, assessment, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		r.ID, r.UserID, string(r.Assessment.RiskLevel), assessment, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting injury report: %w", err)
	}
	return nil
}

// ListInjuryReports returns the user's most recent reports, newest first.
func (db *DB) ListInjuryReports(ctx context.Context, userID, limit int) ([]models.InjuryReport, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, assessment, created_at
		 FROM injury_reports
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying injury reports: %w", err)
	}
	defer rows.Close()

	var result []models.InjuryReport
	for rows.Next() {
		var (
			r    models.InjuryReport
			data []byte
		)
		if err := rows.Scan(&r.ID, &r.UserID, &data, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning injury report: %w", err)
		}
		if err := json.Unmarshal(data, &r.Assessment); err != nil {
			return nil, fmt.Errorf("decoding assessment: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
