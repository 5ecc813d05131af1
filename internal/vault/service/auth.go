package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/passman/internal/vault/domain"
	"github.com/aussiebroadwan/passman/internal/vault/store"
	"github.com/aussiebroadwan/passman/pkg/slogx"
	"golang.org/x/time/rate"
)

// AuthService verifies master passwords and hands out Sessions.
//
// Unknown usernames and wrong passwords fail with different errors
// (ErrUserNotFound, ErrInvalidCredentials). Callers showing the result to a
// person should render both the same way so account existence is not leaked.
type AuthService struct {
	Store  store.Store
	Hasher PasswordHasher

	// Limiter throttles login attempts. Nil means unlimited.
	Limiter *rate.Limiter
}

// NewLoginLimiter allows attemptsPerMinute login attempts per minute, all
// available as a burst. Zero or negative disables throttling (nil).
func NewLoginLimiter(attemptsPerMinute int) *rate.Limiter {
	if attemptsPerMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(attemptsPerMinute)), attemptsPerMinute)
}

// Login checks password against the stored hash for username and returns
// an authenticated Session on success.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	l := slogx.FromContext(ctx).With(slog.String("username", username))

	if s.Limiter != nil && !s.Limiter.Allow() {
		l.Warn("login throttled")
		return domain.Session{}, ErrTooManyAttempts
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Warn("login failed", slog.String("reason", "unknown user"))
			return domain.Session{}, ErrUserNotFound
		}
		return domain.Session{}, err
	}

	if !s.Hasher.Verify(password, user.PasswordHash) {
		l.Warn("login failed", slog.String("reason", "password mismatch"), slog.String("user_id", user.ID))
		return domain.Session{}, ErrInvalidCredentials
	}

	if s.Hasher.NeedsRehash(user.PasswordHash) {
		s.upgradeHash(ctx, l, &user, password)
	}

	l.Info("login succeeded", slog.String("user_id", user.ID))
	return domain.NewSession(user), nil
}

// upgradeHash re-hashes a verified password with the current algorithm.
// Failure leaves the old, still valid hash in place.
func (s *AuthService) upgradeHash(ctx context.Context, l *slog.Logger, user *domain.User, password string) {
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		l.Error("failed to rehash password", slog.Any("error", err))
		return
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		l.Error("failed to store upgraded password hash", slog.Any("error", err))
		return
	}
	user.PasswordHash = hash
	l.Info("password hash upgraded", slog.String("user_id", user.ID))
}
