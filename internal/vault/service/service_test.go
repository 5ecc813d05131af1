package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/passman/internal/vault/domain"
	"github.com/aussiebroadwan/passman/internal/vault/store/drivers/sqlite"
	"github.com/aussiebroadwan/passman/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store    *sqlite.Store
	hasher   *cryptox.Hasher
	accounts *AccountService
	auth     *AuthService
	vault    *VaultService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	h := cryptox.NewHasher(cryptox.AlgorithmArgon2id, "test-pepper")
	return &testEnv{
		store:    s,
		hasher:   h,
		accounts: &AccountService{Store: s, Hasher: h},
		auth:     &AuthService{Store: s, Hasher: h},
		vault:    &VaultService{Store: s, Scope: domain.ScopeOwner},
	}
}

func (e *testEnv) mustCreate(t *testing.T, username, password string) domain.User {
	t.Helper()

	u, err := e.accounts.Create(context.Background(), domain.AccountDraft{
		Username:     username,
		Password:     password,
		Confirmation: password,
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) mustLogin(t *testing.T, username, password string) domain.Session {
	t.Helper()

	s, err := e.auth.Login(context.Background(), username, password)
	require.NoError(t, err)
	require.True(t, s.Authenticated())
	return s
}

func requireReasons(t *testing.T, err error, reasons ...string) {
	t.Helper()

	ve, ok := domain.AsValidation(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	require.Equal(t, reasons, ve.Reasons)
}
