// SPDX-License-Identifier: MIT

package results_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/strongbirthday/internal/results"
)

func record(run, strategy string, m, n, k int, text string) *results.Record {
	return &results.Record{
		ID:       results.RecordID(run, strategy, m, n, k),
		RunID:    run,
		Strategy: strategy,
		M:        m, N: n, K: k,
		Text:    text,
		Digest:  results.Digest(text),
		Elapsed: 3 * time.Millisecond,
		States:  42,
	}
}

func TestDigest(t *testing.T) {
	assert.Equal(t, results.Digest("0.25"), results.Digest("0.25"))
	assert.NotEqual(t, results.Digest("0.25"), results.Digest("0.250000001"))
	assert.Equal(t, "ff", results.DigestHex(255))
	assert.Equal(t, "run/direct/10:41:0", results.RecordID("run", "direct", 10, 41, 0))
}

func TestTable_Indexes(t *testing.T) {
	tbl, err := results.NewTable()
	require.NoError(t, err)

	require.NoError(t, tbl.Insert(
		record("r1", "direct", 10, 41, 0, "0.5"),
		record("r1", "stirling-topdown", 10, 41, 0, "0.5"),
		record("r1", "direct", 50, 304, 0, "0.7"),
		record("r1", "direct", 10, 41, 2, "0.1"),
	))
	assert.Equal(t, 4, tbl.Len())

	got, err := tbl.ForCase(10, 41, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "direct", got[0].Strategy)
	assert.Equal(t, "stirling-topdown", got[1].Strategy)

	got, err = tbl.ForStrategy("direct")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	r, err := tbl.Get(results.RecordID("r1", "direct", 50, 304, 0))
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "0.7", r.Text)

	r, err = tbl.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestTable_ReplaceAndReject(t *testing.T) {
	tbl, err := results.NewTable()
	require.NoError(t, err)

	require.NoError(t, tbl.Insert(record("r1", "direct", 2, 4, 0, "0.5")))
	require.NoError(t, tbl.Insert(record("r1", "direct", 2, 4, 0, "0.50")))
	all, err := tbl.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "0.50", all[0].Text)

	err = tbl.Insert(&results.Record{Strategy: "direct"})
	assert.ErrorIs(t, err, results.ErrEmptyID)
	assert.Equal(t, 1, tbl.Len(), "a rejected batch is not committed")
}

func TestSQLite_RequiresPath(t *testing.T) {
	_, err := results.OpenSQLite("  ")
	assert.ErrorIs(t, err, results.ErrNoPath)
}

func TestSQLite_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := results.OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	ctx := context.Background()
	older := results.Run{ID: "r1", StartedAt: time.UnixMilli(1_000).UTC(), Digits: 1000}
	newer := results.Run{ID: "r2", StartedAt: time.UnixMilli(2_000).UTC(), Digits: 60}

	failed := record("r1", "occupancy-topdown", 10, 41, 0, "")
	failed.Err = "sbp: resource exhausted"
	require.NoError(t, store.Save(ctx, older, []*results.Record{
		record("r1", "direct", 10, 41, 0, "0.123"),
		failed,
	}))
	require.NoError(t, store.Save(ctx, newer, []*results.Record{
		record("r2", "direct", 2, 4, 0, "0.5"),
	}))

	runs, err := store.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "r2", runs[0].ID)
	assert.Equal(t, 1, runs[0].Records)
	assert.Equal(t, uint(60), runs[0].Digits)
	assert.Equal(t, "r1", runs[1].ID)
	assert.Equal(t, 2, runs[1].Records)
	assert.True(t, older.StartedAt.Equal(runs[1].StartedAt))

	recs, err := store.Records(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "direct", recs[0].Strategy)
	assert.Equal(t, results.Digest("0.123"), recs[0].Digest)
	assert.Equal(t, 3*time.Millisecond, recs[0].Elapsed)
	assert.Equal(t, 42, recs[0].States)
	assert.True(t, recs[1].Failed())
	assert.Equal(t, results.RecordID("r1", "occupancy-topdown", 10, 41, 0), recs[1].ID)
}

func TestSQLite_DuplicateRunRollsBack(t *testing.T) {
	store, err := results.OpenSQLite(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	ctx := context.Background()
	run := results.Run{ID: "dup", StartedAt: time.Now(), Digits: 10}
	require.NoError(t, store.Save(ctx, run, []*results.Record{record("dup", "direct", 2, 2, 0, "0.5")}))
	assert.Error(t, store.Save(ctx, run, []*results.Record{record("dup", "direct", 3, 3, 0, "0.1")}))

	recs, err := store.Records(ctx, "dup")
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}
