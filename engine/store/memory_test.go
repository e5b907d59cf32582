package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/sales-simulator/engine"
	"github.com/warp/sales-simulator/engine/store"
)

func testRun(t *testing.T, id string, at time.Time) engine.Run {
	t.Helper()
	units := []engine.Unit{{ID: 1, Value: decimal.NewFromInt(250000), Phase: 0}}
	res, err := engine.Simulate(units, engine.Config{EntradaPct: decimal.NewFromInt(100), EntradaMonths: 1})
	require.NoError(t, err)
	return engine.NewRun(id, "run "+id, len(units), res, `{"units":[]}`, at)
}

func TestMemory_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	run := testRun(t, "run-1", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, m.SaveRun(ctx, run))

	got, err := m.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run run-1", got.Name)
	assert.Equal(t, 1, got.UnitCount)
}

func TestMemory_GetMissing_NotFound(t *testing.T) {
	_, err := store.NewMemory().GetRun(context.Background(), "nope")
	assert.ErrorIs(t, err, engine.ErrRunNotFound)
	assert.True(t, engine.IsNotFound(err))
}

func TestMemory_ListRuns_NewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, m.SaveRun(ctx, testRun(t, id, base.Add(time.Duration(i)*time.Hour))))
	}

	all, err := m.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})

	limited, err := m.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestMemory_DeleteRun(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.SaveRun(ctx, testRun(t, "x", time.Now())))

	require.NoError(t, m.DeleteRun(ctx, "x"))
	assert.ErrorIs(t, m.DeleteRun(ctx, "x"), engine.ErrRunNotFound)

	m.Reset()
	runs, err := m.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
