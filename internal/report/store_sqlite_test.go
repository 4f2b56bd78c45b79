package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicair/enviro-api/internal/database"
	"github.com/civicair/enviro-api/internal/migrations"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	return NewSQLiteStore(db)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	rec := Report{
		ID:           "RPT-20260315103000-0badf00d",
		Category:     "garbage",
		Latitude:     19.076,
		Longitude:    72.8777,
		LocationName: "Deonar, Mumbai",
		Detection: &Detection{
			Category:   "garbage",
			Confidence: 0.82,
			Scores:     map[string]float64{"garbage": 0.82, "air": 0.18},
			Objects:    []string{"trash_pile", "litter"},
		},
		SubmittedAt: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		Status:      StatusValidating,
		Reason:      "High AI confidence. Visual indicators strongly match reported category.",
		Confidence:  0.82,
	}
	require.NoError(t, store.Insert(ctx, rec))

	got, err := store.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Category, got.Category)
	assert.Equal(t, rec.Status, got.Status)
	assert.Equal(t, rec.Confidence, got.Confidence)
	assert.True(t, got.SubmittedAt.Equal(rec.SubmittedAt))
	require.NotNil(t, got.Detection)
	assert.Equal(t, rec.Detection.Objects, got.Detection.Objects)
	assert.Nil(t, got.VerifiedAt)
	assert.Zero(t, got.Reward)

	// Resolve and re-read.
	verifiedAt := time.Date(2026, 3, 15, 10, 31, 0, 0, time.UTC)
	got.Status = StatusVerified
	got.VerifiedAt = &verifiedAt
	got.Reward = 15
	require.NoError(t, store.Update(ctx, got))

	resolved, err := store.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusVerified, resolved.Status)
	require.NotNil(t, resolved.VerifiedAt)
	assert.True(t, resolved.VerifiedAt.Equal(verifiedAt))
	assert.Equal(t, 15, resolved.Reward)
}

func TestSQLiteStoreNotFound(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "RPT-does-not-exist")
	assert.ErrorIs(t, err, ErrReportNotFound)

	err = store.Update(ctx, Report{ID: "RPT-does-not-exist", Status: StatusVerified})
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestSQLiteStoreWithoutDetection(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	rec := Report{
		ID:           "RPT-20260315103000-00000001",
		Category:     "air",
		LocationName: "ITO, Delhi",
		SubmittedAt:  time.Now().UTC(),
		Status:       StatusRejected,
		Reason:       "Low AI confidence. Visual conditions unclear or ambiguous.",
	}
	require.NoError(t, store.Insert(ctx, rec))

	got, err := store.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Detection)
}

func TestSQLiteStoreStats(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	empty, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, empty)

	seed := []struct {
		id       string
		category string
		status   Status
	}{
		{"RPT-1", "water", StatusVerified},
		{"RPT-2", "water", StatusNeedsReview},
		{"RPT-3", "air", StatusRejected},
		{"RPT-4", "air", StatusValidating},
	}
	for _, s := range seed {
		require.NoError(t, store.Insert(ctx, Report{
			ID:          s.id,
			Category:    s.category,
			Status:      s.status,
			SubmittedAt: time.Now().UTC(),
		}))
	}

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Verified)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Rejected)
	assert.InDelta(t, 25.0, stats.VerificationRate, 1e-9)
	assert.Equal(t, map[string]int{"water": 2, "air": 2}, stats.Categories)
}

func TestProcessorAgainstSQLiteStore(t *testing.T) {
	store := setupSQLiteStore(t)
	p := NewProcessor(store, WithHotspots(staticHotspots(false)))
	ctx := context.Background()

	res, err := p.Submit(ctx, submitInput("construction", 0.9))
	require.NoError(t, err)

	status, err := p.Status(ctx, res.ReportID)
	require.NoError(t, err)
	assert.NotEqual(t, StatusValidating, status.Status)
}
