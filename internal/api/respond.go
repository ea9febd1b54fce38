package api

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"talent-search/internal/apperr"
	"talent-search/internal/storage"
)

const maxJSONBody = 1 << 20

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(t apperr.ErrorType) int {
	switch t {
	case apperr.ErrTypeInvalidInput:
		return http.StatusBadRequest
	case apperr.ErrTypeUnauthorized:
		return http.StatusUnauthorized
	case apperr.ErrTypeForbidden:
		return http.StatusForbidden
	case apperr.ErrTypeNotFound:
		return http.StatusNotFound
	case apperr.ErrTypeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err. Causes and stacks go to the log only.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	de, ok := apperr.As(err)
	if !ok {
		de = apperr.Internal("Internal server error", err)
	}
	status := statusFor(de.Type)

	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("request_id", requestIDFrom(r.Context())),
	}
	if status >= http.StatusInternalServerError {
		if de.Err != nil {
			fields = append(fields, zap.Error(de.Err))
		}
		fields = append(fields, zap.ByteString("stack", de.StackTrace()))
		a.logger.Error(de.Message, fields...)
	} else {
		a.logger.Debug(de.Message, fields...)
	}

	writeJSON(w, status, ErrorResponse{Message: de.Message, Errors: de.Fields})
}

// fail reports err, replacing the message of internal errors with message.
func (a *API) fail(w http.ResponseWriter, r *http.Request, message string, err error) {
	if de, ok := apperr.As(err); ok && de.Type != apperr.ErrTypeInternal {
		a.writeError(w, r, err)
		return
	}
	a.writeError(w, r, apperr.Internal(message, err))
}

func pathID(r *http.Request, message string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, apperr.InvalidInput(message, nil)
	}
	return id, nil
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		return nil, apperr.InvalidInput("Request body is too large", err)
	}
	return body, nil
}

func requestMeta(r *http.Request) storage.RequestMeta {
	return storage.RequestMeta{
		UserAgent: r.UserAgent(),
		IPAddress: clientIP(r),
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
