package goal_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrasnov/kopilka/internal/goal"
	"github.com/dkrasnov/kopilka/internal/store/memory"
)

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc := goal.NewService(memory.New())

	g, err := svc.Create(ctx, 1, "Car", 10000)
	require.NoError(t, err)
	assert.Equal(t, int64(1), g.ID)
	assert.Equal(t, float64(0), g.CurrentAmount)
	assert.False(t, g.Completed())
}

func TestService_AddAmount(t *testing.T) {
	ctx := context.Background()
	svc := goal.NewService(memory.New())

	g, err := svc.Create(ctx, 1, "Holiday", 100)
	require.NoError(t, err)

	require.NoError(t, svc.AddAmount(ctx, g.ID, 40))
	require.NoError(t, svc.AddAmount(ctx, g.ID, 70))

	goals, err := svc.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, float64(110), goals[0].CurrentAmount)
	assert.True(t, goals[0].Completed())

	t.Run("NegativeAmountReducesProgress", func(t *testing.T) {
		require.NoError(t, svc.AddAmount(ctx, g.ID, -50))

		goals, err := svc.ListByOwner(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, float64(60), goals[0].CurrentAmount)
		assert.False(t, goals[0].Completed())
	})

	t.Run("NotFound", func(t *testing.T) {
		err := svc.AddAmount(ctx, 9999, 10)
		assert.ErrorIs(t, err, goal.ErrNotFound)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc := goal.NewService(memory.New())

	g, err := svc.Create(ctx, 1, "Holiday", 100)
	require.NoError(t, err)
	require.NoError(t, svc.AddAmount(ctx, g.ID, 120))

	t.Run("KeepsCurrentAmount", func(t *testing.T) {
		require.NoError(t, svc.Update(ctx, g.ID, "Long holiday", 200))

		goals, err := svc.ListByOwner(ctx, 1)
		require.NoError(t, err)
		require.Len(t, goals, 1)
		assert.Equal(t, "Long holiday", goals[0].Title)
		assert.Equal(t, float64(200), goals[0].TargetAmount)
		assert.Equal(t, float64(120), goals[0].CurrentAmount)
	})

	t.Run("RaisingTargetUncompletesGoal", func(t *testing.T) {
		// 120 saved was complete against 100, not against 200.
		goals, err := svc.ListByOwner(ctx, 1)
		require.NoError(t, err)
		assert.False(t, goals[0].Completed())
	})

	t.Run("NotFound", func(t *testing.T) {
		err := svc.Update(ctx, 9999, "X", 1)
		assert.ErrorIs(t, err, goal.ErrNotFound)
	})
}

func TestService_Delete_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc := goal.NewService(memory.New())

	g, err := svc.Create(ctx, 1, "Car", 10000)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, g.ID))
	require.NoError(t, svc.Delete(ctx, g.ID))
	require.NoError(t, svc.Delete(ctx, 9999))
}

func TestService_ListByOwner(t *testing.T) {
	ctx := context.Background()
	svc := goal.NewService(memory.New())

	_, err := svc.Create(ctx, 1, "Car", 10000)
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, "Holiday", 500)
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, "House", 90000)
	require.NoError(t, err)

	mine, err := svc.ListByOwner(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	theirs, err := svc.ListByOwner(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)

	nobody, err := svc.ListByOwner(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, nobody)
}
