package storage

import (
	"time"

	"github.com/lib/pq"
)

// SkillsPlaceholder stands in for a blank skill list so skills are never empty.
const SkillsPlaceholder = "None"

// Interest statuses. The store accepts any string; these are the ones the UI knows.
const (
	InterestStatusNew       = "new"
	InterestStatusContacted = "contacted"
	InterestStatusAccepted  = "accepted"
	InterestStatusRejected  = "rejected"
)

// KnownInterestStatus reports whether status is one of the enumerated values.
func KnownInterestStatus(status string) bool {
	switch status {
	case InterestStatusNew, InterestStatusContacted, InterestStatusAccepted, InterestStatusRejected:
		return true
	}
	return false
}

// Candidate is a talent profile. Contact fields and full name are admin data.
type Candidate struct {
	ID              int64          `db:"id" json:"id"`
	Initials        string         `db:"initials" json:"initials"`
	ProfileImageURL *string        `db:"profile_image_url" json:"profileImageUrl"`
	FullName        string         `db:"full_name" json:"fullName"`
	Title           string         `db:"title" json:"title"`
	Location        string         `db:"location" json:"location"`
	Skills          pq.StringArray `db:"skills" json:"skills" swaggertype:"array,string"`
	ExperienceYears int            `db:"experience_years" json:"experienceYears"`
	Bio             string         `db:"bio" json:"bio"`
	Education       string         `db:"education" json:"education"`
	Availability    string         `db:"availability" json:"availability"`
	ContactEmail    *string        `db:"contact_email" json:"contactEmail"`
	ContactPhone    *string        `db:"contact_phone" json:"contactPhone"`
	Certifications  pq.StringArray `db:"certifications" json:"certifications" swaggertype:"array,string"`
	BillRate        *int           `db:"bill_rate" json:"billRate"`
	PayRate         *int           `db:"pay_rate" json:"payRate"`
	IsActive        bool           `db:"is_active" json:"isActive"`
	CreatedAt       time.Time      `db:"created_at" json:"createdAt"`
}

// NewCandidate is the normalized input for CreateCandidate.
type NewCandidate struct {
	Initials        string   `json:"initials"`
	ProfileImageURL *string  `json:"profileImageUrl"`
	FullName        string   `json:"fullName"`
	Title           string   `json:"title"`
	Location        string   `json:"location"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experienceYears"`
	Bio             string   `json:"bio"`
	Education       string   `json:"education"`
	Availability    string   `json:"availability"`
	ContactEmail    *string  `json:"contactEmail"`
	ContactPhone    *string  `json:"contactPhone"`
	Certifications  []string `json:"certifications"`
	BillRate        *int     `json:"billRate"`
	PayRate         *int     `json:"payRate"`
	IsActive        bool     `json:"isActive"`
}

type Interest struct {
	ID          int64     `db:"id" json:"id"`
	CandidateID int64     `db:"candidate_id" json:"candidateId"`
	CompanyName string    `db:"company_name" json:"companyName"`
	ContactName string    `db:"contact_name" json:"contactName"`
	Email       string    `db:"email" json:"email"`
	Phone       *string   `db:"phone" json:"phone"`
	Message     *string   `db:"message" json:"message"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// InterestListing is an Interest joined with the candidate's display name.
type InterestListing struct {
	ID            int64     `db:"id" json:"id"`
	CandidateID   int64     `db:"candidate_id" json:"candidateId"`
	CompanyName   string    `db:"company_name" json:"companyName"`
	ContactName   string    `db:"contact_name" json:"contactName"`
	Email         string    `db:"email" json:"email"`
	Phone         *string   `db:"phone" json:"phone"`
	Message       *string   `db:"message" json:"message"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	CandidateName string    `db:"candidate_name" json:"candidateName"`
}

type NewInterest struct {
	CandidateID int64
	CompanyName string
	ContactName string
	Email       string
	Phone       *string
	Message     *string
}

// RequestMeta is the optional requester information attached to analytics events.
type RequestMeta struct {
	UserAgent string
	IPAddress string
}

type CandidateView struct {
	CandidateID int64
	Meta        RequestMeta
}

type SearchEvent struct {
	Query        string
	SearchType   string
	ResultsCount int
	Meta         RequestMeta
}

type CandidateViewStat struct {
	CandidateID int64      `db:"candidate_id" json:"candidateId"`
	Initials    *string    `db:"initials" json:"initials"`
	Title       *string    `db:"title" json:"title"`
	ViewCount   int64      `db:"view_count" json:"viewCount"`
	LastViewed  *time.Time `db:"last_viewed" json:"lastViewed"`
}

type SearchStat struct {
	SearchQuery  string     `db:"search_query" json:"searchQuery"`
	SearchCount  int64      `db:"search_count" json:"searchCount"`
	AvgResults   float64    `db:"avg_results" json:"avgResults"`
	LastSearched *time.Time `db:"last_searched" json:"lastSearched"`
}

type TopViewedCandidate struct {
	CandidateID int64   `db:"candidate_id" json:"candidateId"`
	Initials    *string `db:"initials" json:"initials"`
	Title       *string `db:"title" json:"title"`
	Location    *string `db:"location" json:"location"`
	ViewCount   int64   `db:"view_count" json:"viewCount"`
}

type RecentSearch struct {
	SearchQuery  string    `db:"search_query" json:"searchQuery"`
	SearchType   string    `db:"search_type" json:"searchType"`
	ResultsCount int       `db:"results_count" json:"resultsCount"`
	SearchedAt   time.Time `db:"searched_at" json:"searchedAt"`
}

// User is an admin-panel identity synced from the external identity provider.
type User struct {
	ID          string    `db:"id" json:"id"`
	ExternalUID string    `db:"external_uid" json:"externalUid"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email"`
	Picture     *string   `db:"picture" json:"picture"`
	Role        string    `db:"role" json:"role"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// IsAdmin reports whether the user may use the admin panel.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// UserIdentity is the verified identity used to upsert a User.
type UserIdentity struct {
	ExternalUID string
	Name        string
	Email       string
	Picture     *string
}
