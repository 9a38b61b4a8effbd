package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typetest/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func record(mode model.Mode, target string, wpm, acc int, endedAt time.Time) model.Record {
	return model.Record{
		StartedAt: endedAt.Add(-30 * time.Second),
		EndedAt:   endedAt,
		Mode:      mode,
		Target:    target,
		Result: model.Result{
			WPM:          wpm,
			RawWPM:       wpm + 5,
			Accuracy:     acc,
			CorrectChars: wpm * 2,
			TotalChars:   wpm*2 + 3,
			Errors:       3,
			Elapsed:      30,
			Consistency:  80,
			WPMHistory:   []int{wpm - 1, wpm, wpm + 1},
		},
	}
}

func TestInsertAndListResults(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	id, err := st.InsertResult(ctx, record(model.ModeTime, "60", 70, 96, base.Add(time.Minute)))
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	_, err = st.InsertResult(ctx, record(model.ModeWords, "25", 80, 98, base))
	require.NoError(t, err)

	records, err := st.ListResults(ctx, model.StatsConfig{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, model.ModeWords, records[0].Mode)
	assert.Equal(t, id, records[1].ID)
	assert.Equal(t, []int{69, 70, 71}, records[1].WPMHistory)
	assert.Equal(t, "time_60", records[1].Category())
	assert.True(t, records[1].EndedAt.Equal(base.Add(time.Minute)))

	timeOnly, err := st.ListResults(ctx, model.StatsConfig{Mode: "time"})
	require.NoError(t, err)
	require.Len(t, timeOnly, 1)
	assert.Equal(t, 70, timeOnly[0].WPM)

	since := base.Add(30 * time.Second)
	recent, err := st.ListResults(ctx, model.StatsConfig{Since: &since})
	require.NoError(t, err)
	assert.Len(t, recent, 1)

	last, err := st.ListResults(ctx, model.StatsConfig{Last: 1})
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, id, last[0].ID)
}

func TestInsertKeepsGivenIDAndEmptyHistory(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	rec := record(model.ModeCustom, "custom", 40, 90, time.Now())
	rec.ID = "fixed-id"
	rec.WPMHistory = nil

	id, err := st.InsertResult(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)

	records, err := st.ListResults(ctx, model.StatsConfig{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].WPMHistory)

	_, err = st.InsertResult(ctx, rec)
	assert.Error(t, err, "duplicate id must be rejected")
}

func TestLeaderboardOrdersByWPM(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i, wpm := range []int{50, 90, 70, 90} {
		_, err := st.InsertResult(ctx, record(model.ModeTime, "30", wpm, 90+i, base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}
	_, err := st.InsertResult(ctx, record(model.ModeWords, "50", 150, 99, base))
	require.NoError(t, err)

	board, err := st.Leaderboard(ctx, "time_30", 3)
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, 90, board[0].WPM)
	assert.Equal(t, 93, board[0].Accuracy)
	assert.Equal(t, 90, board[1].WPM)
	assert.Equal(t, 70, board[2].WPM)
	assert.Equal(t, 3, board[2].Rank)

	categories, err := st.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"time_30", "words_50"}, categories)
}

func TestOpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "typetest.db")
	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	records, err := st.ListResults(context.Background(), model.StatsConfig{})
	require.NoError(t, err)
	assert.Empty(t, records)
}
