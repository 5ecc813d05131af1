package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccountDraftValidate(t *testing.T) {
	t.Run("collects every missing field", func(t *testing.T) {
		err := AccountDraft{}.Validate()
		require.Equal(t, []string{
			ReasonMissingUsername,
			ReasonMissingPassword,
			ReasonMissingConfirmation,
		}, err.Reasons)
	})

	t.Run("mismatch reported alongside missing username", func(t *testing.T) {
		err := AccountDraft{Password: "a", Confirmation: "b"}.Validate()
		require.Equal(t, []string{ReasonMissingUsername, ReasonPasswordMismatch}, err.Reasons)
	})

	t.Run("valid draft has no error", func(t *testing.T) {
		require.NoError(t, AccountDraft{Username: "alice", Password: "pw", Confirmation: "pw"}.Validate().Err())
	})
}

func TestCredentialDraftValidate(t *testing.T) {
	err := CredentialDraft{Application: "github", Login: "a", Secret: "a", Confirmation: "b"}.Validate()
	require.Equal(t, []string{ReasonPasswordMismatch}, err.Reasons)

	err = CredentialDraft{Secret: "x"}.Validate()
	require.True(t, err.Has(ReasonMissingApplication))
	require.True(t, err.Has(ReasonMissingLogin))
	require.True(t, err.Has(ReasonMissingConfirmation))
	require.True(t, err.Has(ReasonPasswordMismatch))
	require.False(t, err.Has(ReasonMissingPassword))

	require.NoError(t, CredentialDraft{Application: "a", Login: "b", Secret: "c", Confirmation: "c"}.Validate().Err())
}

func TestAsValidationThroughWrapping(t *testing.T) {
	ve := &ValidationError{}
	ve.Add(ReasonMissingLogin)
	wrapped := fmt.Errorf("add record: %w", ve.Err())

	got, ok := AsValidation(wrapped)
	require.True(t, ok)
	require.Equal(t, []string{ReasonMissingLogin}, got.Reasons)

	_, ok = AsValidation(errors.New("other"))
	require.False(t, ok)
}

func TestSession(t *testing.T) {
	var s Session
	require.False(t, s.Authenticated())
	require.Empty(t, s.UserID())

	s = NewSession(User{ID: "u1", Username: "alice"})
	require.True(t, s.Authenticated())
	require.Equal(t, "u1", s.UserID())
	require.Equal(t, "alice", s.Username())
}

func TestParseScope(t *testing.T) {
	s, err := ParseScope("")
	require.NoError(t, err)
	require.Equal(t, ScopeOwner, s)

	s, err = ParseScope("shared")
	require.NoError(t, err)
	require.Equal(t, ScopeShared, s)

	_, err = ParseScope("everyone")
	require.Error(t, err)
}
