// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doc-converter/internal/synth"
	"github.com/pdiddy/doc-converter/pkg/types"
)

func openJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open()
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func convertedSnapshot(t *testing.T, runID string, mode types.Mode) types.Snapshot {
	t.Helper()
	result, err := synth.Synthesize(mode)
	require.NoError(t, err)
	return types.Snapshot{
		Mode:     mode,
		Status:   types.StatusConverted,
		Progress: 100,
		File:     &types.UploadedFile{Name: "contract.pdf", Size: 2048, MimeType: "application/pdf"},
		Result:   &result,
		RunID:    runID,
	}
}

func TestRecordRunAndList(t *testing.T) {
	j := openJournal(t)
	ctx := context.Background()

	require.NoError(t, j.RecordRun(ctx, convertedSnapshot(t, "run-1", types.ModePro)))
	require.NoError(t, j.RecordRun(ctx, convertedSnapshot(t, "run-2", types.ModeAcademic)))
	require.NoError(t, j.RecordRun(ctx, convertedSnapshot(t, "run-3", types.ModeSecure)))

	entries, err := j.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "run-3", entries[0].RunID, "newest first")
	assert.Equal(t, types.ModeSecure, entries[0].Mode)
	assert.True(t, entries[0].Result.Complete)
	assert.Empty(t, entries[0].Result.Metrics)

	pro := entries[2]
	assert.Equal(t, "run-1", pro.RunID)
	assert.Equal(t, "contract.pdf", pro.FileName)
	assert.Equal(t, int64(2048), pro.SizeBytes)
	accuracy, ok := pro.Result.Value("accuracy")
	require.True(t, ok)
	assert.Equal(t, 98.5, accuracy)
	assert.False(t, pro.CompletedAt.IsZero())
}

func TestRecord_KeepsCompletionTime(t *testing.T) {
	j := openJournal(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, j.Record(ctx, Entry{RunID: "r", Mode: types.ModePro, CompletedAt: at}))

	entries, err := j.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, at.Equal(entries[0].CompletedAt))
}

func TestRecordRun_RejectsUnconverted(t *testing.T) {
	j := openJournal(t)
	err := j.RecordRun(context.Background(), types.Snapshot{Mode: types.ModePro, Status: types.StatusConverting})
	assert.Error(t, err)
}

func TestRecord_DuplicateRunID(t *testing.T) {
	j := openJournal(t)
	ctx := context.Background()
	snap := convertedSnapshot(t, "dup", types.ModePro)

	require.NoError(t, j.RecordRun(ctx, snap))
	assert.Error(t, j.RecordRun(ctx, snap))
}

func TestOpen_JournalsAreIndependent(t *testing.T) {
	a := openJournal(t)
	b := openJournal(t)
	ctx := context.Background()

	require.NoError(t, a.RecordRun(ctx, convertedSnapshot(t, "only-in-a", types.ModePro)))

	entries, err := b.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpen_ForeignKeysOff(t *testing.T) {
	j := openJournal(t)
	var on int
	require.NoError(t, j.db.QueryRowContext(context.Background(), "PRAGMA foreign_keys").Scan(&on))
	assert.Zero(t, on)
}
