package account_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrasnov/kopilka/internal/account"
	"github.com/dkrasnov/kopilka/internal/store/memory"
)

func newService() *account.Service {
	return account.NewService(memory.New())
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	a, err := svc.Register(ctx, "a@x.com", "p", "Ann", account.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, "a@x.com", a.Email)
	assert.Equal(t, account.RoleUser, a.Role)

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := svc.Register(ctx, "a@x.com", "other", "Bob", account.RoleUser)
		assert.ErrorIs(t, err, account.ErrDuplicateEmail)
	})

	t.Run("CaseSensitiveEmails", func(t *testing.T) {
		// Uniqueness is an exact string match, so a different casing is a
		// different email.
		_, err := svc.Register(ctx, "A@x.com", "p", "Ann2", account.RoleUser)
		assert.NoError(t, err)
	})

	t.Run("EmailFreeAgainAfterDelete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, a.ID))

		_, err := svc.Register(ctx, "a@x.com", "p2", "Cara", account.RoleUser)
		assert.NoError(t, err)
	})
}

func TestService_Register_ConcurrentSameEmail(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	const attempts = 50

	var (
		wg        sync.WaitGroup
		successes atomic.Int64
	)

	for range attempts {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := svc.Register(ctx, "race@x.com", "p", "Ann", account.RoleUser)
			if err == nil {
				successes.Add(1)
				return
			}

			assert.ErrorIs(t, err, account.ErrDuplicateEmail)
		}()
	}

	wg.Wait()

	assert.Equal(t, int64(1), successes.Load())

	accounts, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	registered, err := svc.Register(ctx, "a@x.com", "p", "Ann", account.RoleUser)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		a, err := svc.Login(ctx, "a@x.com", "p")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, a.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := svc.Login(ctx, "a@x.com", "wrong")
		assert.ErrorIs(t, err, account.ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@x.com", "p")
		assert.ErrorIs(t, err, account.ErrInvalidCredentials)
	})

	t.Run("PasswordIsExactMatch", func(t *testing.T) {
		_, err := svc.Login(ctx, "a@x.com", "P")
		assert.ErrorIs(t, err, account.ErrInvalidCredentials)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	ann, err := svc.Register(ctx, "ann@x.com", "p", "Ann", account.RoleUser)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "bob@x.com", "p", "Bob", account.RoleUser)
	require.NoError(t, err)

	t.Run("ReplacesFields", func(t *testing.T) {
		require.NoError(t, svc.Update(ctx, ann.ID, "ann2@x.com", "p2", "Anna"))

		a, err := svc.Login(ctx, "ann2@x.com", "p2")
		require.NoError(t, err)
		assert.Equal(t, "Anna", a.Name)
		assert.Equal(t, account.RoleUser, a.Role)
	})

	t.Run("OwnEmailIsNotConflict", func(t *testing.T) {
		assert.NoError(t, svc.Update(ctx, ann.ID, "ann2@x.com", "p3", "Anna"))
	})

	t.Run("TakenEmail", func(t *testing.T) {
		err := svc.Update(ctx, ann.ID, "bob@x.com", "p", "Anna")
		assert.ErrorIs(t, err, account.ErrDuplicateEmail)

		// failed update leaves the account unchanged
		_, err = svc.Login(ctx, "ann2@x.com", "p3")
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		err := svc.Update(ctx, 9999, "x@x.com", "p", "X")
		assert.ErrorIs(t, err, account.ErrNotFound)
	})
}

func TestService_Delete_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	a, err := svc.Register(ctx, "a@x.com", "p", "Ann", account.RoleUser)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))
	require.NoError(t, svc.Delete(ctx, a.ID))
	require.NoError(t, svc.Delete(ctx, 9999))
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.Register(ctx, "a@x.com", "p", "Ann", account.RoleUser)
	require.NoError(t, err)
	_, err = svc.Register(ctx, "b@x.com", "p", "Bob", account.RoleAdmin)
	require.NoError(t, err)

	accounts, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}

func TestService_IsAdmin(t *testing.T) {
	svc := newService()

	assert.True(t, svc.IsAdmin(&account.Account{Role: account.RoleAdmin}))
	assert.False(t, svc.IsAdmin(&account.Account{Role: account.RoleUser}))
	assert.False(t, svc.IsAdmin(nil))
}
