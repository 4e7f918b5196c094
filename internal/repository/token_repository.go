package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// TokenRepository tracks revoked access tokens by jti until they expire.
type TokenRepository struct {
	db *sqlx.DB
}

// NewTokenRepository constructs a TokenRepository.
func NewTokenRepository(db *sqlx.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Revoke records a token id. Revoking twice is a no-op.
func (r *TokenRepository) Revoke(ctx context.Context, jti, subject string, expiresAt time.Time) error {
	const query = `INSERT INTO revoked_tokens (jti, subject, expires_at) VALUES ($1, $2, $3) ON CONFLICT (jti) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, jti, subject, expiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id was revoked.
func (r *TokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var found int
	err := r.db.GetContext(ctx, &found, `SELECT 1 FROM revoked_tokens WHERE jti = $1`, jti)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return true, nil
}

// PurgeExpired drops revocations whose tokens can no longer be used anyway.
func (r *TokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("purge revoked tokens: %w", err)
	}
	return res.RowsAffected()
}
