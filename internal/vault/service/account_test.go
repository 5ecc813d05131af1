package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/passman/internal/vault/domain"
	"github.com/stretchr/testify/require"
)

func TestAccountCreateThenLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	exists, err := env.accounts.Exists(ctx)
	require.NoError(t, err)
	require.False(t, exists)

	alice := env.mustCreate(t, "alice", "pw1")
	require.NotEmpty(t, alice.ID)
	require.NotEqual(t, "pw1", alice.PasswordHash)
	require.Contains(t, alice.PasswordHash, "$argon2id$")

	exists, err = env.accounts.Exists(ctx)
	require.NoError(t, err)
	require.True(t, exists)

	session := env.mustLogin(t, "alice", "pw1")
	require.Equal(t, alice.ID, session.UserID())
}

func TestAccountCreateDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.mustCreate(t, "alice", "pw1")

	_, err := env.accounts.Create(ctx, domain.AccountDraft{
		Username:     "alice",
		Password:     "pw2",
		Confirmation: "pw2",
	})
	requireReasons(t, err, domain.ReasonUsernameUnavailable)

	count, err := env.accounts.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	// Only the first password works
	env.mustLogin(t, "alice", "pw1")
	_, err = env.auth.Login(ctx, "alice", "pw2")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAccountCreateIsCaseSensitive(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreate(t, "alice", "pw1")
	env.mustCreate(t, "Alice", "pw2")

	count, err := env.accounts.Count(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}

func TestAccountCreateCollectsEveryReason(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.mustCreate(t, "alice", "pw1")

	tests := []struct {
		name    string
		draft   domain.AccountDraft
		reasons []string
	}{
		{
			name:  "all empty",
			draft: domain.AccountDraft{},
			reasons: []string{
				domain.ReasonMissingUsername,
				domain.ReasonMissingPassword,
				domain.ReasonMissingConfirmation,
			},
		},
		{
			name:    "mismatch and taken username",
			draft:   domain.AccountDraft{Username: "alice", Password: "a", Confirmation: "b"},
			reasons: []string{domain.ReasonPasswordMismatch, domain.ReasonUsernameUnavailable},
		},
		{
			name:  "missing confirmation",
			draft: domain.AccountDraft{Username: "bob", Password: "a"},
			reasons: []string{
				domain.ReasonMissingConfirmation,
				domain.ReasonPasswordMismatch,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.accounts.Create(ctx, tt.draft)
			requireReasons(t, err, tt.reasons...)
		})
	}

	count, err := env.accounts.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestFindByUsername(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.mustCreate(t, "alice", "pw1")

	got, err := env.accounts.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, alice.ID, got.ID)

	_, err = env.accounts.FindByUsername(ctx, "nobody")
	require.ErrorIs(t, err, ErrUserNotFound)
}
