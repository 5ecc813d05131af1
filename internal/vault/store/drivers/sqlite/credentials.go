package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/passman/internal/vault/domain"
	"github.com/aussiebroadwan/passman/internal/vault/store"
	"github.com/aussiebroadwan/passman/internal/vault/store/drivers/sqlite/gen"
	"golang.org/x/text/cases"
)

type credentialsRepo struct {
	q *gen.Queries
}

func (r *credentialsRepo) CreateCredential(ctx context.Context, c domain.Credential) error {
	err := r.q.CreateCredential(ctx, gen.CreateCredentialParams{
		ID:          c.ID,
		UserID:      c.OwnerID,
		Application: c.Application,
		Login:       c.Login,
		Secret:      c.Secret,
		Notes:       c.Notes,
		CreatedAt:   toUnix(c.CreatedAt),
		ModifiedAt:  toUnix(c.ModifiedAt),
	})
	return mapConstraint(err)
}

func (r *credentialsRepo) GetCredentialByID(ctx context.Context, id string) (domain.Credential, error) {
	row, err := r.q.GetCredentialByID(ctx, id)
	if err != nil {
		return domain.Credential{}, mapNotFound(err)
	}
	return mapCredential(row), nil
}

// ListCredentials orders in SQL and matches the application filter in Go:
// SQLite's LIKE and lower() only fold ASCII.
func (r *credentialsRepo) ListCredentials(
	ctx context.Context,
	f store.CredentialFilter,
) ([]domain.Credential, error) {
	var (
		rows []gen.Credential
		err  error
	)
	if f.OwnerID != "" {
		rows, err = r.q.ListCredentialsByUser(ctx, f.OwnerID)
	} else {
		rows, err = r.q.ListCredentials(ctx)
	}
	if err != nil {
		return nil, err
	}

	match := containsFold(f.Application)
	out := make([]domain.Credential, 0, len(rows))
	for _, row := range rows {
		if !match(row.Application) {
			continue
		}
		out = append(out, mapCredential(row))
	}
	return out, nil
}

func (r *credentialsRepo) UpdateCredential(ctx context.Context, c domain.Credential) error {
	n, err := r.q.UpdateCredential(ctx, gen.UpdateCredentialParams{
		Application: c.Application,
		Login:       c.Login,
		Secret:      c.Secret,
		Notes:       c.Notes,
		ModifiedAt:  toUnix(c.ModifiedAt),
		ID:          c.ID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *credentialsRepo) DeleteCredential(ctx context.Context, id string) error {
	n, err := r.q.DeleteCredential(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *credentialsRepo) CountCredentials(ctx context.Context, ownerID string) (int64, error) {
	if ownerID != "" {
		return r.q.CountCredentialsByUser(ctx, ownerID)
	}
	return r.q.CountCredentials(ctx)
}

// containsFold returns a predicate reporting whether s contains needle
// under Unicode case folding. An empty needle matches everything.
func containsFold(needle string) func(string) bool {
	if needle == "" {
		return func(string) bool { return true }
	}
	fold := cases.Fold()
	folded := fold.String(needle)
	return func(s string) bool {
		return strings.Contains(fold.String(s), folded)
	}
}
