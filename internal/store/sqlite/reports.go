// Package sqlite provides SQLite database operations for quizdedup.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/thebtf/quizdedup/pkg/models"
)

// ErrReportNotFound is returned when no report exists for the given id.
var ErrReportNotFound = errors.New("report not found")

// ReportStore persists analysis reports as JSON payloads.
type ReportStore struct {
	store *Store
}

// NewReportStore creates a new report store.
func NewReportStore(store *Store) *ReportStore {
	return &ReportStore{store: store}
}

// SaveReport stores a report keyed by its run id.
func (s *ReportStore) SaveReport(ctx context.Context, rep *models.Report) error {
	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	stmt, err := s.store.GetStmt(`INSERT OR REPLACE INTO reports (id, channel, generated_at, generated_at_epoch, payload)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	_, err = stmt.ExecContext(ctx, rep.RunID, rep.ChannelID, rep.GeneratedAt, time.Now().UnixMilli(), string(payload))
	if err != nil {
		return fmt.Errorf("save report %s: %w", rep.RunID, err)
	}
	return nil
}

// GetReport loads a report by run id.
func (s *ReportStore) GetReport(ctx context.Context, runID string) (*models.Report, error) {
	stmt, err := s.store.GetStmt(`SELECT payload FROM reports WHERE id = ?`)
	if err != nil {
		return nil, err
	}

	var payload string
	if err := stmt.QueryRowContext(ctx, runID).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("get report %s: %w", runID, err)
	}

	var rep models.Report
	if err := json.Unmarshal([]byte(payload), &rep); err != nil {
		return nil, fmt.Errorf("unmarshal report %s: %w", runID, err)
	}
	return &rep, nil
}

// LatestReport returns the most recently generated report, or
// ErrReportNotFound when none exist.
func (s *ReportStore) LatestReport(ctx context.Context) (*models.Report, error) {
	stmt, err := s.store.GetStmt(`SELECT payload FROM reports ORDER BY generated_at_epoch DESC, generated_at DESC LIMIT 1`)
	if err != nil {
		return nil, err
	}

	var payload string
	if err := stmt.QueryRowContext(ctx).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("latest report: %w", err)
	}

	var rep models.Report
	if err := json.Unmarshal([]byte(payload), &rep); err != nil {
		return nil, fmt.Errorf("unmarshal latest report: %w", err)
	}
	return &rep, nil
}
