package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/credseal/internal/auth/domain"
	"github.com/allisson/credseal/internal/database"
	apperrors "github.com/allisson/credseal/internal/errors"
)

// MySQLTokenRepository implements Token persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLTokenRepository struct {
	db *sql.DB
}

// Create inserts a new Token.
func (m *MySQLTokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO access_tokens (id, name, token_hash, created_at, revoked_at)
			  VALUES (?, ?, ?, ?, ?)`

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		token.Name,
		token.TokenHash,
		token.CreatedAt,
		token.RevokedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create token")
	}
	return nil
}

// GetByHash retrieves a Token by its digest. Returns ErrTokenNotFound if no
// token has that digest.
func (m *MySQLTokenRepository) GetByHash(ctx context.Context, tokenHash string) (*authDomain.Token, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, token_hash, created_at, revoked_at
			  FROM access_tokens WHERE token_hash = ?`

	var (
		token authDomain.Token
		id    []byte
	)
	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&id,
		&token.Name,
		&token.TokenHash,
		&token.CreatedAt,
		&token.RevokedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get token")
	}

	if err := token.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal token id")
	}

	return &token, nil
}

// Revoke marks a token as revoked, keeping any earlier revocation time.
// Returns ErrTokenNotFound if the ID is unknown.
func (m *MySQLTokenRepository) Revoke(ctx context.Context, tokenID uuid.UUID, revokedAt time.Time) error {
	querier := database.GetTx(ctx, m.db)

	id, err := tokenID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token id")
	}

	// MySQL reports zero affected rows when the value is unchanged, so existence
	// is checked separately instead of relying on RowsAffected.
	var exists bool
	if err := querier.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM access_tokens WHERE id = ?)`, id).
		Scan(&exists); err != nil {
		return apperrors.Wrap(err, "failed to check token")
	}
	if !exists {
		return authDomain.ErrTokenNotFound
	}

	_, err = querier.ExecContext(ctx, `UPDATE access_tokens SET revoked_at = COALESCE(revoked_at, ?) WHERE id = ?`,
		revokedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke token")
	}
	return nil
}

// NewMySQLTokenRepository creates a new MySQL Token repository.
func NewMySQLTokenRepository(db *sql.DB) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db}
}
