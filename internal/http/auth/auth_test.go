package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrasnov/kopilka/internal/account"
	"github.com/dkrasnov/kopilka/internal/http/auth"
)

func TestIssuer_TokenRoundTrip(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)

	a := &account.Account{ID: 7, Email: "a@x.com", Role: account.RoleAdmin}

	token, err := issuer.Token(a)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), identity.AccountID)
	assert.Equal(t, account.RoleAdmin, identity.Role)
}

func TestIssuer_Verify(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)

	t.Run("Garbage", func(t *testing.T) {
		_, err := issuer.Verify("not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := auth.NewIssuer("other-secret", time.Hour)

		token, err := other.Token(&account.Account{ID: 1, Role: account.RoleUser})
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := auth.NewIssuer("test-secret", -time.Minute)

		token, err := expired.Token(&account.Account{ID: 1, Role: account.RoleUser})
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestMiddleware(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)

	var gotIdentity auth.Identity

	handler := issuer.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("ValidToken", func(t *testing.T) {
		token, err := issuer.Token(&account.Account{ID: 3, Role: account.RoleUser})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(3), gotIdentity.AccountID)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)

	handler := issuer.Middleware(auth.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	t.Run("AdminAllowed", func(t *testing.T) {
		token, err := issuer.Token(&account.Account{ID: 1, Role: account.RoleAdmin})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("UserForbidden", func(t *testing.T) {
		token, err := issuer.Token(&account.Account{ID: 2, Role: account.RoleUser})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
