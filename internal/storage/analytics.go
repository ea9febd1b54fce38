package storage

import (
	"context"

	"github.com/georgysavva/scany/sqlscan"
	"github.com/pkg/errors"
)

const (
	searchStatsLimit    = 50
	topViewedLimit      = 10
	recentSearchesLimit = 20
)

func (db *DB) InsertCandidateView(ctx context.Context, v CandidateView) error {
	_, err := db.connection.ExecContext(ctx,
		`INSERT INTO candidate_views (candidate_id, user_agent, ip_address) VALUES ($1, $2, $3)`,
		v.CandidateID, nullString(v.Meta.UserAgent), nullString(v.Meta.IPAddress),
	)
	return errors.Wrap(err, "inserting candidate view")
}

func (db *DB) InsertSearch(ctx context.Context, s SearchEvent) error {
	_, err := db.connection.ExecContext(ctx,
		`INSERT INTO search_activity (search_query, search_type, results_count, user_agent, ip_address)
		VALUES ($1, $2, $3, $4, $5)`,
		s.Query, s.SearchType, s.ResultsCount, nullString(s.Meta.UserAgent), nullString(s.Meta.IPAddress),
	)
	return errors.Wrap(err, "inserting search activity")
}

// CandidateViewStats groups views per candidate, most viewed first. Views of
// deleted candidates still appear with empty profile columns.
func (db *DB) CandidateViewStats(ctx context.Context) ([]CandidateViewStat, error) {
	stats := []CandidateViewStat{}
	err := sqlscan.Select(ctx, db.connection, &stats, `
		SELECT v.candidate_id, c.initials, c.title,
			count(v.id) AS view_count, max(v.viewed_at) AS last_viewed
		FROM candidate_views v
		LEFT JOIN candidates c ON c.id = v.candidate_id
		GROUP BY v.candidate_id, c.initials, c.title
		ORDER BY view_count DESC, v.candidate_id`)
	if err != nil {
		return nil, errors.Wrap(err, "querying candidate view stats")
	}
	return stats, nil
}

func (db *DB) SearchStats(ctx context.Context) ([]SearchStat, error) {
	stats := []SearchStat{}
	err := sqlscan.Select(ctx, db.connection, &stats, `
		SELECT search_query, count(id) AS search_count,
			avg(results_count)::float8 AS avg_results, max(searched_at) AS last_searched
		FROM search_activity
		GROUP BY search_query
		ORDER BY search_count DESC, search_query
		LIMIT $1`, searchStatsLimit)
	if err != nil {
		return nil, errors.Wrap(err, "querying search stats")
	}
	return stats, nil
}

func (db *DB) TopViewedCandidates(ctx context.Context) ([]TopViewedCandidate, error) {
	top := []TopViewedCandidate{}
	err := sqlscan.Select(ctx, db.connection, &top, `
		SELECT v.candidate_id, c.initials, c.title, c.location, count(v.id) AS view_count
		FROM candidate_views v
		LEFT JOIN candidates c ON c.id = v.candidate_id
		GROUP BY v.candidate_id, c.initials, c.title, c.location
		ORDER BY view_count DESC, v.candidate_id
		LIMIT $1`, topViewedLimit)
	if err != nil {
		return nil, errors.Wrap(err, "querying top viewed candidates")
	}
	return top, nil
}

func (db *DB) RecentSearches(ctx context.Context) ([]RecentSearch, error) {
	recent := []RecentSearch{}
	err := sqlscan.Select(ctx, db.connection, &recent, `
		SELECT search_query, search_type, results_count, searched_at
		FROM search_activity
		ORDER BY searched_at DESC, id DESC
		LIMIT $1`, recentSearchesLimit)
	if err != nil {
		return nil, errors.Wrap(err, "querying recent searches")
	}
	return recent, nil
}

func (db *DB) TotalViews(ctx context.Context) (int64, error) {
	var n int64
	err := db.connection.QueryRowContext(ctx, `SELECT count(*) FROM candidate_views`).Scan(&n)
	return n, errors.Wrap(err, "counting views")
}

func (db *DB) TotalSearches(ctx context.Context) (int64, error) {
	var n int64
	err := db.connection.QueryRowContext(ctx, `SELECT count(*) FROM search_activity`).Scan(&n)
	return n, errors.Wrap(err, "counting searches")
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
