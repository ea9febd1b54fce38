package storage

import (
	"context"

	"github.com/georgysavva/scany/sqlscan"
	"github.com/pkg/errors"
)

// UpsertUser creates the user on first sign-in and refreshes the profile
// fields afterwards. The role is never touched here.
func (db *DB) UpsertUser(ctx context.Context, id UserIdentity) (*User, error) {
	var u User
	err := sqlscan.Get(ctx, db.connection, &u, `
		INSERT INTO users (external_uid, name, email, picture)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (external_uid) DO UPDATE
			SET name = EXCLUDED.name,
				email = EXCLUDED.email,
				picture = EXCLUDED.picture
		RETURNING id::text AS id, external_uid, name, email, picture, role, created_at`,
		id.ExternalUID, id.Name, id.Email, id.Picture,
	)
	if err != nil {
		return nil, errors.Wrap(err, "upserting user")
	}
	return &u, nil
}

func (db *DB) GetUserByExternalUID(ctx context.Context, uid string) (*User, error) {
	var u User
	err := sqlscan.Get(ctx, db.connection, &u, `
		SELECT id::text AS id, external_uid, name, email, picture, role, created_at
		FROM users WHERE external_uid = $1`, uid)
	if sqlscan.NotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "getting user")
	}
	return &u, nil
}
