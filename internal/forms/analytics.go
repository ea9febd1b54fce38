package forms

import (
	"strings"

	"talent-search/internal/apperr"
)

type CandidateViewForm struct {
	CandidateID int64 `json:"candidateId" validate:"required,gt=0"`
}

type SearchActivityForm struct {
	Query        string `json:"query"`
	SearchType   string `json:"searchType"`
	ResultsCount int    `json:"resultsCount" validate:"gte=0"`
}

func DecodeCandidateView(data []byte) (CandidateViewForm, error) {
	var f CandidateViewForm
	if err := DecodeJSON(data, &f); err != nil {
		return f, err
	}
	return f, ValidateStruct("Invalid analytics data", f)
}

// DecodeSearchActivity defaults the search type to "general".
func DecodeSearchActivity(data []byte) (SearchActivityForm, error) {
	var f SearchActivityForm
	if err := DecodeJSON(data, &f); err != nil {
		return f, err
	}
	f.Query = strings.TrimSpace(f.Query)
	if f.SearchType = strings.TrimSpace(f.SearchType); f.SearchType == "" {
		f.SearchType = "general"
	}
	return f, ValidateStruct("Invalid analytics data", f)
}

// SyncForm carries the identity token. firebaseIdToken is the key older
// clients send.
type SyncForm struct {
	ExternalIDToken string `json:"externalIdToken"`
	FirebaseIDToken string `json:"firebaseIdToken"`
}

func DecodeSync(data []byte) (string, error) {
	var f SyncForm
	if err := DecodeJSON(data, &f); err != nil {
		return "", err
	}
	token := strings.TrimSpace(f.ExternalIDToken)
	if token == "" {
		token = strings.TrimSpace(f.FirebaseIDToken)
	}
	if token == "" {
		return "", apperr.Validation("Invalid sync request", []apperr.FieldError{
			{Field: "externalIdToken", Message: "is required"},
		})
	}
	return token, nil
}
