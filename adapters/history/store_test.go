package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courserank/domain/survey"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history", "courserank.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_SaveAndGetRun(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run := RunRecord{
		ID:              "run-1",
		InputFile:       "survey.csv",
		Mode:            "label",
		RelevantColumns: 4,
		SkippedColumns:  1,
		Conflicts:       0,
		CreatedAt:       time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	aggregates := []survey.CourseAggregate{
		{Course: "Tax I", Mean: 2.5, Count: 2},
		{Course: "Auditing", Mean: 2.0, Count: 1},
	}
	require.NoError(t, store.SaveRun(ctx, run, aggregates))

	got, gotAggs, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run.InputFile, got.InputFile)
	assert.Equal(t, run.RelevantColumns, got.RelevantColumns)

	require.Len(t, gotAggs, 2)
	// Rank order is the stored sort order, 1-based.
	assert.Equal(t, 1, gotAggs[0].RankOrder)
	assert.Equal(t, "Tax I", gotAggs[0].Course)
	assert.InDelta(t, 2.5, gotAggs[0].MeanScore, 1e-9)
	assert.Equal(t, 2, gotAggs[0].SampleCount)
	assert.Equal(t, "Auditing", gotAggs[1].Course)
}

func TestStore_ListRunsNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		run := RunRecord{
			ID:        id,
			InputFile: "survey.csv",
			Mode:      "presence",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, store.SaveRun(ctx, run, []survey.CourseAggregate{{Course: "Tax I", Mean: 3, Count: 1}}))
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-c", runs[0].ID)
	assert.Equal(t, "run-b", runs[1].ID)
}

func TestStore_LatestRun(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run, aggs, err := store.LatestRun(ctx)
	require.NoError(t, err)
	assert.Nil(t, run)
	assert.Nil(t, aggs)

	record := RunRecord{
		ID:        "run-1",
		InputFile: "survey.xlsx",
		Mode:      "presence",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.SaveRun(ctx, record, []survey.CourseAggregate{{Course: "Tax I", Mean: 3, Count: 1}}))

	run, aggs, err = store.LatestRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "run-1", run.ID)
	require.Len(t, aggs, 1)
}
