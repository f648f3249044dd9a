package baseline

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/docrecon/internal/contrast"
	"github.com/roach88/docrecon/internal/testutil"
)

var (
	modalFinding = contrast.Finding{
		Path: "src/components/Modal.tsx", Line: 3, Column: 20,
		ClassName: "fixed inset-0 bg-black bg-opacity-50", Background: "bg-black",
	}
	cardFinding = contrast.Finding{
		Path: "src/components/Card.tsx", Line: 1, Column: 40,
		ClassName: "bg-white text-gray-900 dark:bg-gray-900", Background: "dark:bg-gray-900", Variant: "dark",
	}
)

func TestRecordRun_AssignsIDAndSeq(t *testing.T) {
	s := createTestStore(t, WithRunIDGenerator(testutil.NewSequentialRunIDs("scan")))
	ctx := context.Background()
	started := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	first, err := s.RecordRun(ctx, Run{Root: "web", StartedAt: started}, []contrast.Finding{modalFinding})
	require.NoError(t, err)
	assert.Equal(t, "scan-0001", first.ID)
	assert.Equal(t, int64(1), first.Seq)
	assert.Equal(t, 1, first.Findings)

	second, err := s.RecordRun(ctx, Run{Root: "web", StartedAt: started.Add(time.Hour)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "scan-0002", second.ID)
	assert.Greater(t, second.Seq, first.Seq)
	assert.Equal(t, 0, second.Findings)
}

func TestRecordRun_DefaultUUIDv7(t *testing.T) {
	s := createTestStore(t)

	run, err := s.RecordRun(context.Background(), Run{Root: ".", StartedAt: time.Now()}, nil)
	require.NoError(t, err)

	parsed, err := uuid.Parse(run.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestRecordRun_KeepsExplicitID(t *testing.T) {
	s := createTestStore(t)

	run, err := s.RecordRun(context.Background(), Run{ID: "fixed-id", Root: ".", StartedAt: time.Now()}, nil)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", run.ID)
}

func TestRecordRun_DuplicateIDFails(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.RecordRun(ctx, Run{ID: "dup", Root: ".", StartedAt: time.Now()}, nil)
	require.NoError(t, err)
	_, err = s.RecordRun(ctx, Run{ID: "dup", Root: ".", StartedAt: time.Now()}, nil)
	require.Error(t, err)

	runs, err := s.Runs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRecordRun_DuplicateFingerprintsStoredOnce(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	again := modalFinding
	again.Line = 30

	run, err := s.RecordRun(ctx, Run{Root: ".", StartedAt: time.Now()}, []contrast.Finding{modalFinding, again})
	require.NoError(t, err)

	stored, err := s.Findings(ctx, run.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
	assert.Equal(t, 1, run.Findings, "count reflects stored rows")

	runs, err := s.Runs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 1, runs[0].Findings)
}

func TestRun_Lookup(t *testing.T) {
	s := createTestStore(t, WithRunIDGenerator(testutil.NewSequentialRunIDs("scan")))
	ctx := context.Background()
	started := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	recorded, err := s.RecordRun(ctx, Run{Root: "web", StartedAt: started}, []contrast.Finding{modalFinding, cardFinding})
	require.NoError(t, err)

	got, err := s.Run(ctx, "scan-0001")
	require.NoError(t, err)
	assert.Equal(t, recorded.Seq, got.Seq)
	assert.Equal(t, "web", got.Root)
	assert.Equal(t, 2, got.Findings)
	assert.True(t, got.StartedAt.Equal(started))
}

func TestRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Run(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.Contains(t, err.Error(), "missing")
}

func TestAccepted_Empty(t *testing.T) {
	s := createTestStore(t)

	accepted, err := s.Accepted(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, accepted)
	assert.Empty(t, accepted)
}

func TestAccepted_LatestRunOnly(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	_, err := s.RecordRun(ctx, Run{Root: ".", StartedAt: now}, []contrast.Finding{modalFinding, cardFinding})
	require.NoError(t, err)
	_, err = s.RecordRun(ctx, Run{Root: ".", StartedAt: now.Add(time.Minute)}, []contrast.Finding{cardFinding})
	require.NoError(t, err)

	accepted, err := s.Accepted(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{cardFinding.Fingerprint(): true}, accepted)
}

func TestRuns_NewestFirstWithLimit(t *testing.T) {
	s := createTestStore(t, WithRunIDGenerator(testutil.NewSequentialRunIDs("r")))
	ctx := context.Background()
	start := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := s.RecordRun(ctx, Run{Root: "web", StartedAt: start.Add(time.Duration(i) * time.Hour)}, nil)
		require.NoError(t, err)
	}

	runs, err := s.Runs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "r-0003", runs[0].ID)
	assert.Equal(t, "r-0002", runs[1].ID)
	assert.True(t, runs[0].StartedAt.Equal(start.Add(2*time.Hour)))

	all, err := s.Runs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRuns_Empty(t *testing.T) {
	s := createTestStore(t)

	runs, err := s.Runs(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestFindings_RoundTripOrdered(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run, err := s.RecordRun(ctx, Run{Root: ".", StartedAt: time.Now()}, []contrast.Finding{modalFinding, cardFinding})
	require.NoError(t, err)

	stored, err := s.Findings(ctx, run.ID)
	require.NoError(t, err)
	// Card.tsx sorts before Modal.tsx
	assert.Equal(t, []contrast.Finding{cardFinding, modalFinding}, stored)
}

func TestUUIDv7Generator_Unique(t *testing.T) {
	gen := UUIDv7Generator{}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.Generate()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
