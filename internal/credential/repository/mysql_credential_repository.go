package repository

import (
	"context"
	"database/sql"
	"errors"

	credentialDomain "github.com/allisson/credseal/internal/credential/domain"
	"github.com/allisson/credseal/internal/database"
	apperrors "github.com/allisson/credseal/internal/errors"
)

// MySQLCredentialRepository implements Credential persistence for MySQL.
// IDs are stored as BINARY(16).
type MySQLCredentialRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMySQLCredential(row rowScanner) (*credentialDomain.Credential, error) {
	var (
		credential credentialDomain.Credential
		id         []byte
		kind       string
	)
	if err := row.Scan(
		&id,
		&credential.Name,
		&kind,
		&credential.Ciphertext,
		&credential.CreatedAt,
		&credential.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := credential.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal credential id")
	}
	credential.Kind = credentialDomain.Kind(kind)
	return &credential, nil
}

// Create inserts a new Credential. Returns ErrCredentialAlreadyExists if the
// name is taken.
func (m *MySQLCredentialRepository) Create(ctx context.Context, credential *credentialDomain.Credential) error {
	querier := database.GetTx(ctx, m.db)

	id, err := credential.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential id")
	}

	query := `INSERT INTO credentials (id, name, kind, ciphertext, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
//
// A fresh envelope always differs from the stored one, so RowsAffected is
// reliable here even under MySQL's changed-rows semantics.
func (m *MySQLCredentialRepository) Update(ctx context.Context, credential *credentialDomain.Credential) error {
	querier := database.GetTx(ctx, m.db)

	id, err := credential.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential id")
	}

	query := `UPDATE credentials SET kind = ?, ciphertext = ?, updated_at = ? WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		string(credential.Kind),
		credential.Ciphertext,
		credential.UpdatedAt,
		id,
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
func (m *MySQLCredentialRepository) GetByName(
	ctx context.Context,
	name string,
) (*credentialDomain.Credential, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, kind, ciphertext, created_at, updated_at
			  FROM credentials WHERE name = ?`

	credential, err := scanMySQLCredential(querier.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, credentialDomain.ErrCredentialNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential")
	}
	return credential, nil
}

// List returns credentials ordered by name.
func (m *MySQLCredentialRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*credentialDomain.Credential, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, kind, ciphertext, created_at, updated_at
			  FROM credentials ORDER BY name ASC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list credentials")
	}
	defer func() {
		_ = rows.Close()
	}()

	credentials := make([]*credentialDomain.Credential, 0)
	for rows.Next() {
		credential, err := scanMySQLCredential(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan credential")
		}
		credentials = append(credentials, credential)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate credentials")
	}
	return credentials, nil
}

// Delete removes a Credential by name.
func (m *MySQLCredentialRepository) Delete(ctx context.Context, name string) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM credentials WHERE name = ?`, name)
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

// NewMySQLCredentialRepository creates a new MySQL Credential repository.
func NewMySQLCredentialRepository(db *sql.DB) *MySQLCredentialRepository {
	return &MySQLCredentialRepository{db: db}
}
