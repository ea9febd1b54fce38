package forms

import (
	"strings"

	"talent-search/internal/apperr"
	"talent-search/internal/storage"
)

type InterestForm struct {
	CandidateID int64   `json:"candidateId" validate:"required,gt=0"`
	CompanyName string  `json:"companyName" validate:"required"`
	ContactName string  `json:"contactName" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       *string `json:"phone"`
	Message     *string `json:"message"`
}

func DecodeInterest(data []byte) (storage.NewInterest, error) {
	var f InterestForm
	if err := DecodeJSON(data, &f); err != nil {
		return storage.NewInterest{}, err
	}
	f.CompanyName = strings.TrimSpace(f.CompanyName)
	f.ContactName = strings.TrimSpace(f.ContactName)
	f.Email = strings.TrimSpace(f.Email)

	if err := ValidateStruct("Invalid interest data", f); err != nil {
		return storage.NewInterest{}, err
	}

	return storage.NewInterest{
		CandidateID: f.CandidateID,
		CompanyName: f.CompanyName,
		ContactName: f.ContactName,
		Email:       f.Email,
		Phone:       blankToNil(f.Phone),
		Message:     blankToNil(f.Message),
	}, nil
}

type StatusForm struct {
	Status string `json:"status" validate:"required"`
}

func DecodeStatus(data []byte) (string, error) {
	var f StatusForm
	if err := DecodeJSON(data, &f); err != nil {
		return "", err
	}
	f.Status = strings.TrimSpace(f.Status)
	if f.Status == "" {
		return "", apperr.InvalidInput("Status is required", nil)
	}
	return f.Status, nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	return storage.NullIfBlank(*s)
}
