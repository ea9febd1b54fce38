package storage

import (
	"context"
	"database/sql"

	"github.com/georgysavva/scany/sqlscan"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const candidateColumns = `id, initials, profile_image_url, full_name, title, location, skills,
	experience_years, bio, education, availability, contact_email, contact_phone,
	COALESCE(certifications, '{}') AS certifications, bill_rate, pay_rate, is_active, created_at`

// ListCandidates returns candidates ordered by id. With activeOnly, inactive
// candidates are left out.
func (db *DB) ListCandidates(ctx context.Context, activeOnly bool) ([]Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY id`

	candidates := []Candidate{}
	if err := sqlscan.Select(ctx, db.connection, &candidates, query); err != nil {
		return nil, errors.Wrap(err, "listing candidates")
	}
	return candidates, nil
}

func (db *DB) GetCandidate(ctx context.Context, id int64) (*Candidate, error) {
	var c Candidate
	err := sqlscan.Get(ctx, db.connection, &c, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
	if sqlscan.NotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "getting candidate %d", id)
	}
	return &c, nil
}

func (db *DB) CreateCandidate(ctx context.Context, in NewCandidate) (*Candidate, error) {
	query := `INSERT INTO candidates (initials, profile_image_url, full_name, title, location, skills,
			experience_years, bio, education, availability, contact_email, contact_phone,
			certifications, bill_rate, pay_rate, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + candidateColumns

	certs := in.Certifications
	if certs == nil {
		certs = []string{}
	}

	var c Candidate
	err := sqlscan.Get(ctx, db.connection, &c, query,
		in.Initials,
		in.ProfileImageURL,
		in.FullName,
		in.Title,
		in.Location,
		pq.Array(NormalizeSkills(in.Skills)),
		in.ExperienceYears,
		in.Bio,
		in.Education,
		in.Availability,
		in.ContactEmail,
		in.ContactPhone,
		pq.Array(certs),
		in.BillRate,
		in.PayRate,
		in.IsActive,
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating candidate")
	}
	return &c, nil
}

// UpdateCandidate applies patch to the stored row inside a transaction.
// The row is locked while the patch is merged so concurrent partial updates
// do not lose each other's fields.
func (db *DB) UpdateCandidate(ctx context.Context, id int64, patch CandidatePatch) (*Candidate, error) {
	var updated Candidate
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		var existing Candidate
		err := sqlscan.Get(ctx, tx, &existing,
			`SELECT `+candidateColumns+` FROM candidates WHERE id = $1 FOR UPDATE`, id)
		if sqlscan.NotFound(err) {
			return ErrNotFound
		}
		if err != nil {
			return errors.Wrapf(err, "loading candidate %d", id)
		}

		if patch.Empty() {
			updated = existing
			return nil
		}

		c := patch.Apply(existing)
		err = sqlscan.Get(ctx, tx, &updated, `UPDATE candidates SET
				initials = $2, profile_image_url = $3, full_name = $4, title = $5, location = $6,
				skills = $7, experience_years = $8, bio = $9, education = $10, availability = $11,
				contact_email = $12, contact_phone = $13, certifications = $14, bill_rate = $15,
				pay_rate = $16, is_active = $17
			WHERE id = $1
			RETURNING `+candidateColumns,
			id,
			c.Initials,
			c.ProfileImageURL,
			c.FullName,
			c.Title,
			c.Location,
			pq.Array([]string(c.Skills)),
			c.ExperienceYears,
			c.Bio,
			c.Education,
			c.Availability,
			c.ContactEmail,
			c.ContactPhone,
			pq.Array([]string(c.Certifications)),
			c.BillRate,
			c.PayRate,
			c.IsActive,
		)
		return errors.Wrapf(err, "updating candidate %d", id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCandidate reports whether a row was removed. Interests and views
// referencing the candidate are kept.
func (db *DB) DeleteCandidate(ctx context.Context, id int64) (bool, error) {
	res, err := db.connection.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return false, errors.Wrapf(err, "deleting candidate %d", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "reading affected rows")
	}
	return n > 0, nil
}
