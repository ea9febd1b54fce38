package storage

import (
	"context"

	"github.com/georgysavva/scany/sqlscan"
	"github.com/pkg/errors"
)

const interestColumns = `id, candidate_id, company_name, contact_name, email, phone, message, status, created_at`

// Listings fall back to a synthetic name when the candidate row is gone.
const interestListingQuery = `SELECT i.id, i.candidate_id, i.company_name, i.contact_name, i.email,
		i.phone, i.message, i.status, i.created_at,
		COALESCE(c.full_name, 'Candidate #' || i.candidate_id::text) AS candidate_name
	FROM interests i
	LEFT JOIN candidates c ON c.id = i.candidate_id`

// CreateInterest stores a new lead. Status always starts as "new".
func (db *DB) CreateInterest(ctx context.Context, in NewInterest) (*Interest, error) {
	var i Interest
	err := sqlscan.Get(ctx, db.connection, &i,
		`INSERT INTO interests (candidate_id, company_name, contact_name, email, phone, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+interestColumns,
		in.CandidateID, in.CompanyName, in.ContactName, in.Email, in.Phone, in.Message, InterestStatusNew,
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating interest")
	}
	return &i, nil
}

func (db *DB) GetInterest(ctx context.Context, id int64) (*InterestListing, error) {
	var l InterestListing
	err := sqlscan.Get(ctx, db.connection, &l, interestListingQuery+` WHERE i.id = $1`, id)
	if sqlscan.NotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "getting interest %d", id)
	}
	return &l, nil
}

// ListInterests returns every interest, newest first.
func (db *DB) ListInterests(ctx context.Context) ([]InterestListing, error) {
	listings := []InterestListing{}
	err := sqlscan.Select(ctx, db.connection, &listings, interestListingQuery+` ORDER BY i.created_at DESC, i.id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "listing interests")
	}
	return listings, nil
}

func (db *DB) ListInterestsByCandidate(ctx context.Context, candidateID int64) ([]Interest, error) {
	interests := []Interest{}
	err := sqlscan.Select(ctx, db.connection, &interests,
		`SELECT `+interestColumns+` FROM interests WHERE candidate_id = $1 ORDER BY created_at DESC, id DESC`,
		candidateID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "listing interests for candidate %d", candidateID)
	}
	return interests, nil
}

func (db *DB) UpdateInterestStatus(ctx context.Context, id int64, status string) (*Interest, error) {
	var i Interest
	err := sqlscan.Get(ctx, db.connection, &i,
		`UPDATE interests SET status = $2 WHERE id = $1 RETURNING `+interestColumns,
		id, status,
	)
	if sqlscan.NotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "updating interest %d", id)
	}
	return &i, nil
}
