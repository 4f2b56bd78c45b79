package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

// SQLiteStore persists reports through database/sql. It implements the same
// contract as MemoryStore so the processor works unchanged against either.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Insert(ctx context.Context, r Report) error {
	detection, err := marshalDetection(r.Detection)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (
			id, category, latitude, longitude, location_name, detection,
			submitted_at, status, reason, confidence, verified_at, reward
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Category, r.Latitude, r.Longitude, r.LocationName, detection,
		r.SubmittedAt.UTC().Format(time.RFC3339Nano), string(r.Status), r.Reason,
		r.Confidence, formatNullableTime(r.VerifiedAt), r.Reward)
	if err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Report, error) {
	var (
		r           Report
		detection   sql.NullString
		submittedAt string
		status      string
		verifiedAt  sql.NullString
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, category, latitude, longitude, location_name, detection,
		       submitted_at, status, reason, confidence, verified_at, reward
		FROM reports WHERE id = ?
	`, id).Scan(&r.ID, &r.Category, &r.Latitude, &r.Longitude, &r.LocationName,
		&detection, &submittedAt, &status, &r.Reason, &r.Confidence, &verifiedAt, &r.Reward)
	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}
	if err != nil {
		return Report{}, fmt.Errorf("loading report: %w", err)
	}

	r.Status = Status(status)

	if r.SubmittedAt, err = time.Parse(time.RFC3339Nano, submittedAt); err != nil {
		return Report{}, fmt.Errorf("parsing submitted_at: %w", err)
	}
	if verifiedAt.Valid {
		ts, err := time.Parse(time.RFC3339Nano, verifiedAt.String)
		if err != nil {
			return Report{}, fmt.Errorf("parsing verified_at: %w", err)
		}
		r.VerifiedAt = &ts
	}
	if detection.Valid {
		var d Detection
		if err := json.Unmarshal([]byte(detection.String), &d); err != nil {
			return Report{}, fmt.Errorf("parsing detection: %w", err)
		}
		r.Detection = &d
	}

	return r, nil
}

func (s *SQLiteStore) Update(ctx context.Context, r Report) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE reports
		SET status = ?, reason = ?, confidence = ?, verified_at = ?, reward = ?
		WHERE id = ?
	`, string(r.Status), r.Reason, r.Confidence, formatNullableTime(r.VerifiedAt), r.Reward, r.ID)
	if err != nil {
		return fmt.Errorf("updating report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrReportNotFound, r.ID)
	}
	return nil
}

func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(status = 'verified'), 0),
		       COALESCE(SUM(status = 'needs-review'), 0),
		       COALESCE(SUM(status = 'rejected'), 0)
		FROM reports
	`).Scan(&stats.Total, &stats.Verified, &stats.Pending, &stats.Rejected)
	if err != nil {
		return Stats{}, fmt.Errorf("aggregating reports: %w", err)
	}
	if stats.Total == 0 {
		return stats, nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM reports GROUP BY category`)
	if err != nil {
		return Stats{}, fmt.Errorf("aggregating categories: %w", err)
	}
	defer rows.Close()

	stats.Categories = make(map[string]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return Stats{}, err
		}
		stats.Categories[category] = n
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}

	stats.VerificationRate = math.Round(float64(stats.Verified)/float64(stats.Total)*1000) / 10
	return stats, nil
}

func marshalDetection(d *Detection) (any, error) {
	if d == nil {
		return nil, nil
	}
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encoding detection: %w", err)
	}
	return string(data), nil
}

func formatNullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}
