package service

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"slices"
	"time"

	"github.com/aussiebroadwan/passman/internal/vault/domain"
	"github.com/aussiebroadwan/passman/internal/vault/store"
	"github.com/aussiebroadwan/passman/pkg/idx"
	"github.com/aussiebroadwan/passman/pkg/slogx"
)

// VaultService manages credentials on behalf of an authenticated Session.
type VaultService struct {
	Store store.Store
	Scope domain.Scope

	// Now overrides the clock in tests.
	Now func() time.Time
}

func (s *VaultService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// AddRecord validates draft and stores it as a credential owned by the
// session user. All broken rules come back together in a
// *domain.ValidationError.
func (s *VaultService) AddRecord(
	ctx context.Context,
	session domain.Session,
	draft domain.CredentialDraft,
) (domain.Credential, error) {
	if !session.Authenticated() {
		return domain.Credential{}, ErrUnauthenticated
	}
	if err := draft.Validate().Err(); err != nil {
		return domain.Credential{}, err
	}

	now := s.now()
	c := domain.Credential{
		ID:          idx.New().String(),
		OwnerID:     session.UserID(),
		Application: draft.Application,
		Login:       draft.Login,
		Secret:      draft.Secret,
		Notes:       draft.Notes,
		CreatedAt:   now,
		ModifiedAt:  now,
	}
	if err := s.Store.Credentials().CreateCredential(ctx, c); err != nil {
		if errors.Is(err, store.ErrInvalidReference) {
			return domain.Credential{}, ErrUnauthenticated
		}
		return domain.Credential{}, err
	}

	slogx.FromContext(ctx).Info("credential added",
		slog.String("credential_id", c.ID),
		slog.String("user_id", c.OwnerID),
	)
	return c, nil
}

// GetRecord returns one credential visible to the session.
func (s *VaultService) GetRecord(ctx context.Context, session domain.Session, id string) (domain.Credential, error) {
	if !session.Authenticated() {
		return domain.Credential{}, ErrUnauthenticated
	}
	if _, err := idx.Parse(id); err != nil {
		return domain.Credential{}, ErrRecordNotFound
	}
	c, err := s.Store.Credentials().GetCredentialByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Credential{}, ErrRecordNotFound
		}
		return domain.Credential{}, err
	}
	if s.Scope != domain.ScopeShared && c.OwnerID != session.UserID() {
		return domain.Credential{}, ErrForbidden
	}
	return c, nil
}

// ListAll returns the credentials visible to the session, most recently
// modified first (ties by id ascending). A non-empty filter keeps only
// applications containing it, ignoring case. The filter is matched as
// given, whitespace included.
//
// The sequence iterates a snapshot taken during the call and can be ranged
// over any number of times; call ListAll again to see newer changes.
func (s *VaultService) ListAll(
	ctx context.Context,
	session domain.Session,
	filter string,
) (iter.Seq[domain.Credential], error) {
	if !session.Authenticated() {
		return nil, ErrUnauthenticated
	}

	f := store.CredentialFilter{Application: filter, OwnerID: s.visibleOwner(session)}

	snapshot, err := s.Store.Credentials().ListCredentials(ctx, f)
	if err != nil {
		return nil, err
	}
	return slices.Values(snapshot), nil
}

// Count returns how many credentials the session can list.
func (s *VaultService) Count(ctx context.Context, session domain.Session) (int64, error) {
	if !session.Authenticated() {
		return 0, ErrUnauthenticated
	}
	return s.Store.Credentials().CountCredentials(ctx, s.visibleOwner(session))
}

// visibleOwner is the owner filter for reads: the session user, or
// everyone in the shared scope.
func (s *VaultService) visibleOwner(session domain.Session) string {
	if s.Scope == domain.ScopeShared {
		return ""
	}
	return session.UserID()
}

// UpdateRecord replaces the fields of a credential the session owns and
// bumps its modification time.
func (s *VaultService) UpdateRecord(
	ctx context.Context,
	session domain.Session,
	id string,
	draft domain.CredentialDraft,
) (domain.Credential, error) {
	if !session.Authenticated() {
		return domain.Credential{}, ErrUnauthenticated
	}
	if err := draft.Validate().Err(); err != nil {
		return domain.Credential{}, err
	}

	var updated domain.Credential
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := ownedCredential(ctx, tx, session, id)
		if err != nil {
			return err
		}

		c.Application = draft.Application
		c.Login = draft.Login
		c.Secret = draft.Secret
		c.Notes = draft.Notes
		c.ModifiedAt = s.now()

		if err := tx.Credentials().UpdateCredential(ctx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return domain.Credential{}, err
	}

	slogx.FromContext(ctx).Info("credential updated", slog.String("credential_id", id))
	return updated, nil
}

// DeleteRecord removes a credential owned by the session user. Other
// users' credentials fail with ErrForbidden whatever the listing scope.
func (s *VaultService) DeleteRecord(ctx context.Context, session domain.Session, id string) error {
	if !session.Authenticated() {
		return ErrUnauthenticated
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := ownedCredential(ctx, tx, session, id); err != nil {
			return err
		}
		return tx.Credentials().DeleteCredential(ctx, id)
	})
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			slogx.FromContext(ctx).Warn("refused to delete credential of another user",
				slog.String("credential_id", id),
				slog.String("user_id", session.UserID()),
			)
		}
		return err
	}

	slogx.FromContext(ctx).Info("credential deleted", slog.String("credential_id", id))
	return nil
}

func ownedCredential(ctx context.Context, tx store.Tx, session domain.Session, id string) (domain.Credential, error) {
	if _, err := idx.Parse(id); err != nil {
		return domain.Credential{}, ErrRecordNotFound
	}
	c, err := tx.Credentials().GetCredentialByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Credential{}, ErrRecordNotFound
		}
		return domain.Credential{}, err
	}
	if c.OwnerID != session.UserID() {
		return domain.Credential{}, ErrForbidden
	}
	return c, nil
}
