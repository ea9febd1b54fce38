package analytics

import (
	"context"

	"golang.org/x/sync/errgroup"

	"talent-search/internal/apperr"
	"talent-search/internal/storage"
)

// StatsStore is the aggregate side of the analytics tables.
type StatsStore interface {
	CandidateViewStats(ctx context.Context) ([]storage.CandidateViewStat, error)
	SearchStats(ctx context.Context) ([]storage.SearchStat, error)
	TopViewedCandidates(ctx context.Context) ([]storage.TopViewedCandidate, error)
	RecentSearches(ctx context.Context) ([]storage.RecentSearch, error)
	TotalViews(ctx context.Context) (int64, error)
	TotalSearches(ctx context.Context) (int64, error)
}

type Dashboard struct {
	CandidateViewStats  []storage.CandidateViewStat  `json:"candidateViewStats"`
	SearchStats         []storage.SearchStat         `json:"searchStats"`
	TopViewedCandidates []storage.TopViewedCandidate `json:"topViewedCandidates"`
	RecentSearches      []storage.RecentSearch       `json:"recentSearches"`
	TotalViews          int64                        `json:"totalViews"`
	TotalSearches       int64                        `json:"totalSearches"`
}

// BuildDashboard runs every aggregate query. Nothing is cached.
func BuildDashboard(ctx context.Context, store StatsStore) (*Dashboard, error) {
	d := &Dashboard{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.CandidateViewStats, err = store.CandidateViewStats(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.SearchStats, err = store.SearchStats(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.TopViewedCandidates, err = store.TopViewedCandidates(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.RecentSearches, err = store.RecentSearches(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.TotalViews, err = store.TotalViews(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.TotalSearches, err = store.TotalSearches(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, apperr.Internal("Failed to fetch analytics", err)
	}
	return d, nil
}
