// Package repository persists sealed credentials in PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	credentialDomain "github.com/allisson/credseal/internal/credential/domain"
	"github.com/allisson/credseal/internal/database"
	apperrors "github.com/allisson/credseal/internal/errors"
)

// PostgreSQLCredentialRepository implements Credential persistence for PostgreSQL.
type PostgreSQLCredentialRepository struct {
	db *sql.DB
}

// Create inserts a new Credential. Returns ErrCredentialAlreadyExists if the
// name is taken.
func (p *PostgreSQLCredentialRepository) Create(ctx context.Context, credential *credentialDomain.Credential) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO credentials (id, name, kind, ciphertext, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		credential.ID,
		credential.Name,
		string(credential.Kind),
		credential.Ciphertext,
		credential.CreatedAt,
		credential.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return credentialDomain.ErrCredentialAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create credential")
	}
	return nil
}

// Update overwrites the kind and ciphertext of an existing Credential.
func (p *PostgreSQLCredentialRepository) Update(ctx context.Context, credential *credentialDomain.Credential) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE credentials SET kind = $1, ciphertext = $2, updated_at = $3 WHERE id = $4`

	result, err := querier.ExecContext(
		ctx,
		query,
		string(credential.Kind),
		credential.Ciphertext,
		credential.UpdatedAt,
		credential.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update credential")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return credentialDomain.ErrCredentialNotFound
	}
	return nil
}

// GetByName retrieves a Credential by name.
func (p *PostgreSQLCredentialRepository) GetByName(
	ctx context.Context,
	name string,
) (*credentialDomain.Credential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, kind, ciphertext, created_at, updated_at
			  FROM credentials WHERE name = $1`

	var (
		credential credentialDomain.Credential
		kind       string
	)
	err := querier.QueryRowContext(ctx, query, name).Scan(
		&credential.ID,
		&credential.Name,
		&kind,
		&credential.Ciphertext,
		&credential.CreatedAt,
		&credential.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, credentialDomain.ErrCredentialNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential")
	}

	credential.Kind = credentialDomain.Kind(kind)
	return &credential, nil
}

// List returns credentials ordered by name.
func (p *PostgreSQLCredentialRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*credentialDomain.Credential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, kind, ciphertext, created_at, updated_at
			  FROM credentials ORDER BY name ASC LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list credentials")
	}
	defer func() {
		_ = rows.Close()
	}()

	credentials := make([]*credentialDomain.Credential, 0)
	for rows.Next() {
		var (
			credential credentialDomain.Credential
			kind       string
		)
		if err := rows.Scan(
			&credential.ID,
			&credential.Name,
			&kind,
			&credential.Ciphertext,
			&credential.CreatedAt,
			&credential.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan credential")
		}
		credential.Kind = credentialDomain.Kind(kind)
		credentials = append(credentials, &credential)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate credentials")
	}
	return credentials, nil
}

// Delete removes a Credential by name.
func (p *PostgreSQLCredentialRepository) Delete(ctx context.Context, name string) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM credentials WHERE name = $1`, name)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete credential")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return credentialDomain.ErrCredentialNotFound
	}
	return nil
}

// NewPostgreSQLCredentialRepository creates a new PostgreSQL Credential repository.
func NewPostgreSQLCredentialRepository(db *sql.DB) *PostgreSQLCredentialRepository {
	return &PostgreSQLCredentialRepository{db: db}
}
