package api

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"talent-search/internal/analytics"
	"talent-search/internal/auth"
	"talent-search/internal/cv"
	"talent-search/internal/search"
	"talent-search/internal/storage"
)

// Store is every persistence call the handlers make.
type Store interface {
	ListCandidates(ctx context.Context, activeOnly bool) ([]storage.Candidate, error)
	GetCandidate(ctx context.Context, id int64) (*storage.Candidate, error)
	CreateCandidate(ctx context.Context, in storage.NewCandidate) (*storage.Candidate, error)
	UpdateCandidate(ctx context.Context, id int64, patch storage.CandidatePatch) (*storage.Candidate, error)
	DeleteCandidate(ctx context.Context, id int64) (bool, error)

	CreateInterest(ctx context.Context, in storage.NewInterest) (*storage.Interest, error)
	GetInterest(ctx context.Context, id int64) (*storage.InterestListing, error)
	ListInterests(ctx context.Context) ([]storage.InterestListing, error)
	ListInterestsByCandidate(ctx context.Context, candidateID int64) ([]storage.Interest, error)
	UpdateInterestStatus(ctx context.Context, id int64, status string) (*storage.Interest, error)

	analytics.StatsStore

	Ping(ctx context.Context) error
}

type Searcher interface {
	Search(ctx context.Context, query string) ([]storage.Candidate, error)
	Explain(query string) search.Criteria
	Filter(ctx context.Context, fc search.FilterCriteria) ([]storage.Candidate, error)
}

type Tracker interface {
	TrackView(ctx context.Context, candidateID int64, meta storage.RequestMeta)
	TrackSearch(ctx context.Context, query, searchType string, resultsCount int, meta storage.RequestMeta)
}

type ResumeImporter interface {
	Import(ctx context.Context, text string) (*storage.NewCandidate, error)
}

type Auth interface {
	SyncUser(ctx context.Context, token string) (*storage.User, error)
	RequireAdmin(enabled bool, writeError auth.ErrorWriter) func(http.Handler) http.Handler
}

type Deps struct {
	Store          Store
	Search         Searcher
	Tracker        Tracker
	Documents      cv.TextExtractor
	Importer       ResumeImporter
	Auth           Auth
	RequireAdmin   bool
	MaxUploadBytes int64
}

type API struct {
	store          Store
	search         Searcher
	tracker        Tracker
	documents      cv.TextExtractor
	importer       ResumeImporter
	auth           Auth
	requireAdmin   bool
	maxUploadBytes int64
	logger         *zap.Logger
}

const defaultMaxUpload = 10 << 20

func NewAPI(deps Deps, logger *zap.Logger) *API {
	maxUpload := deps.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}
	return &API{
		store:          deps.Store,
		search:         deps.Search,
		tracker:        deps.Tracker,
		documents:      deps.Documents,
		importer:       deps.Importer,
		auth:           deps.Auth,
		requireAdmin:   deps.RequireAdmin,
		maxUploadBytes: maxUpload,
		logger:         logger,
	}
}
