package api

import (
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"talent-search/internal/apperr"
)

const multipartOverhead = 1 << 20

// ParseResumeHandler creates a candidate from an uploaded resume. Initials
// and the default commercial rates are filled in by the importer.
// @Summary Create candidate from resume
// @Description Upload a PDF or TXT resume (field "resume", max 10MB). The parsed candidate is saved and returned.
// @Tags candidates
// @Accept multipart/form-data
// @Produce json
// @Param resume formData file true "Resume file (PDF or TXT)"
// @Success 201 {object} storage.Candidate
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/candidates/parse-resume [post]
func (a *API) ParseResumeHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, a.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(a.maxUploadBytes); err != nil {
		a.writeError(w, r, apperr.InvalidInput("File too large or invalid upload (max 10MB)", err))
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		file, header, err = r.FormFile("file")
	}
	if err != nil {
		a.writeError(w, r, apperr.InvalidInput("No file uploaded", nil))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, a.maxUploadBytes+1))
	if err != nil {
		a.writeError(w, r, apperr.InvalidInput("Failed to read uploaded file", err))
		return
	}

	text, err := a.documents.Extract(header.Filename, data)
	if err != nil {
		a.fail(w, r, "Failed to read resume", err)
		return
	}

	draft, err := a.importer.Import(r.Context(), text)
	if err != nil {
		a.fail(w, r, "Failed to parse resume", err)
		return
	}

	candidate, err := a.store.CreateCandidate(r.Context(), *draft)
	if err != nil {
		a.fail(w, r, "Failed to create candidate", err)
		return
	}

	a.logger.Info("Candidate created from resume",
		zap.Int64("id", candidate.ID),
		zap.String("filename", header.Filename),
		zap.Int("bytes", len(data)),
		zap.Int("skills", len(candidate.Skills)),
		zap.Duration("elapsed", time.Since(start)))
	writeJSON(w, http.StatusCreated, candidate)
}
