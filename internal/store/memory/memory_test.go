package memory_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrasnov/kopilka/internal/account"
	"github.com/dkrasnov/kopilka/internal/goal"
	"github.com/dkrasnov/kopilka/internal/store/memory"
	"github.com/dkrasnov/kopilka/internal/transaction"
)

func TestStore_AccountLifecycle(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	a := &account.Account{Email: "a@x.com", Password: "p", Name: "Ann", Role: account.RoleUser}
	require.NoError(t, s.CreateAccount(ctx, a))
	assert.Equal(t, int64(1), a.ID)

	b := &account.Account{Email: "b@x.com", Password: "p", Name: "Bob", Role: account.RoleAdmin}
	require.NoError(t, s.CreateAccount(ctx, b))
	assert.Equal(t, int64(2), b.ID, "ids are assigned sequentially")

	got, err := s.GetAccount(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, *a, *got)

	byEmail, err := s.GetAccountByEmail(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, b.ID, byEmail.ID)

	_, err = s.GetAccount(ctx, 99)
	assert.ErrorIs(t, err, account.ErrNotFound)

	all, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, s.DeleteAccount(ctx, a.ID))
	require.NoError(t, s.DeleteAccount(ctx, a.ID), "delete is idempotent")

	_, err = s.GetAccount(ctx, a.ID)
	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestStore_EmailUniqueness(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	a := &account.Account{Email: "a@x.com", Name: "Ann"}
	require.NoError(t, s.CreateAccount(ctx, a))

	b := &account.Account{Email: "b@x.com", Name: "Bob"}
	require.NoError(t, s.CreateAccount(ctx, b))

	t.Run("CreateRejectsHeldEmail", func(t *testing.T) {
		err := s.CreateAccount(ctx, &account.Account{Email: "a@x.com", Name: "Imposter"})
		assert.ErrorIs(t, err, account.ErrDuplicateEmail)

		all, err := s.ListAccounts(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2, "rejected create must not insert")
	})

	t.Run("UpdateRejectsOtherAccountsEmail", func(t *testing.T) {
		moved := *b
		moved.Email = "a@x.com"

		err := s.UpdateAccount(ctx, &moved)
		assert.ErrorIs(t, err, account.ErrDuplicateEmail)

		got, err := s.GetAccount(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "b@x.com", got.Email, "rejected update must not apply")
	})

	t.Run("UpdateKeepingOwnEmail", func(t *testing.T) {
		renamed := *b
		renamed.Name = "Robert"

		assert.NoError(t, s.UpdateAccount(ctx, &renamed))
	})

	t.Run("ConcurrentCreatesOneWinner", func(t *testing.T) {
		fresh := memory.New()

		const attempts = 50

		var (
			wg        sync.WaitGroup
			successes atomic.Int64
		)

		for range attempts {
			wg.Add(1)

			go func() {
				defer wg.Done()

				err := fresh.CreateAccount(ctx, &account.Account{Email: "race@x.com"})
				if err == nil {
					successes.Add(1)
				}
			}()
		}

		wg.Wait()

		assert.Equal(t, int64(1), successes.Load(), "exactly one create may pass the email scan")
	})
}

func TestStore_IDsNotReused(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	a := &account.Account{Email: "a@x.com"}
	require.NoError(t, s.CreateAccount(ctx, a))
	require.NoError(t, s.DeleteAccount(ctx, a.ID))

	b := &account.Account{Email: "b@x.com"}
	require.NoError(t, s.CreateAccount(ctx, b))
	assert.Greater(t, b.ID, a.ID)
}

func TestStore_IndependentCounters(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	a := &account.Account{Email: "a@x.com"}
	require.NoError(t, s.CreateAccount(ctx, a))

	tx := &transaction.Transaction{OwnerID: a.ID, Amount: 10, Type: transaction.TypeIncome}
	require.NoError(t, s.CreateTransaction(ctx, tx))

	g := &goal.Goal{OwnerID: a.ID, Title: "Car", TargetAmount: 100}
	require.NoError(t, s.CreateGoal(ctx, g))

	// Each entity type has its own id space.
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(1), tx.ID)
	assert.Equal(t, int64(1), g.ID)
}

func TestStore_ReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	g := &goal.Goal{OwnerID: 1, Title: "Car", TargetAmount: 100}
	require.NoError(t, s.CreateGoal(ctx, g))

	got, err := s.GetGoal(ctx, g.ID)
	require.NoError(t, err)

	got.CurrentAmount = 9000

	again, err := s.GetGoal(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), again.CurrentAmount, "mutating a read result must not touch the store")
}

func TestStore_UpdateRequiresExistence(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	err := s.UpdateAccount(ctx, &account.Account{ID: 5, Email: "x@x.com"})
	assert.ErrorIs(t, err, account.ErrNotFound)

	err = s.UpdateTransaction(ctx, &transaction.Transaction{ID: 5})
	assert.ErrorIs(t, err, transaction.ErrNotFound)

	err = s.UpdateGoal(ctx, &goal.Goal{ID: 5})
	assert.ErrorIs(t, err, goal.ErrNotFound)

	err = s.AddToGoal(ctx, 5, 10)
	assert.ErrorIs(t, err, goal.ErrNotFound)

	// and none of the misses created anything
	all, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_DeleteAccountDoesNotCascade(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	a := &account.Account{Email: "a@x.com"}
	require.NoError(t, s.CreateAccount(ctx, a))

	tx := &transaction.Transaction{OwnerID: a.ID, Amount: 10, Date: time.Now(), Type: transaction.TypeIncome}
	require.NoError(t, s.CreateTransaction(ctx, tx))

	g := &goal.Goal{OwnerID: a.ID, Title: "Car", TargetAmount: 100}
	require.NoError(t, s.CreateGoal(ctx, g))

	require.NoError(t, s.DeleteAccount(ctx, a.ID))

	orphanTxs, err := s.ListTransactionsByOwner(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, orphanTxs, 1)

	orphanGoals, err := s.ListGoalsByOwner(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, orphanGoals, 1)
}

func TestStore_ConcurrentAddToGoal(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	g := &goal.Goal{OwnerID: 1, Title: "Car", TargetAmount: 1000000}
	require.NoError(t, s.CreateGoal(ctx, g))

	const workers = 50

	const addsPerWorker = 20

	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range addsPerWorker {
				_ = s.AddToGoal(ctx, g.ID, 1)
			}
		}()
	}

	wg.Wait()

	got, err := s.GetGoal(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(workers*addsPerWorker), got.CurrentAmount, "no increments may be lost")
}
