package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/passman/internal/vault/domain"
	"github.com/aussiebroadwan/passman/internal/vault/store"
	"github.com/aussiebroadwan/passman/pkg/idx"
	"github.com/aussiebroadwan/passman/pkg/slogx"
)

type AccountService struct {
	Store  store.Store
	Hasher PasswordHasher
}

// Exists reports whether at least one account has been created.
func (s *AccountService) Exists(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

func (s *AccountService) Count(ctx context.Context) (int64, error) {
	return s.Store.Users().CountUsers(ctx)
}

// Create validates the draft and stores a new account. Every broken rule,
// including a taken username, is returned together in a
// *domain.ValidationError.
func (s *AccountService) Create(ctx context.Context, draft domain.AccountDraft) (domain.User, error) {
	l := slogx.FromContext(ctx)

	ve := draft.Validate()

	var user domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if draft.Username != "" {
			_, err := tx.Users().GetUserByUsername(ctx, draft.Username)
			switch {
			case err == nil:
				ve.Add(domain.ReasonUsernameUnavailable)
			case !errors.Is(err, store.ErrNotFound):
				return err
			}
		}
		if err := ve.Err(); err != nil {
			return err
		}

		hash, err := s.Hasher.Hash(draft.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		now := time.Now().UTC()
		user = domain.User{
			ID:           idx.New().String(),
			Username:     draft.Username,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		err = tx.Users().CreateUser(ctx, user)
		if errors.Is(err, store.ErrAlreadyExists) {
			ve.Add(domain.ReasonUsernameUnavailable)
			return ve
		}
		return err
	})
	if err != nil {
		if _, ok := domain.AsValidation(err); !ok {
			l.Error("failed to create account", slog.String("username", draft.Username), slog.Any("error", err))
		}
		return domain.User{}, err
	}

	l.Info("account created", slog.String("user_id", user.ID), slog.String("username", user.Username))
	return user, nil
}

// FindByUsername returns the account with exactly this username.
func (s *AccountService) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}
