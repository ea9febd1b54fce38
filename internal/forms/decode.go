// Package forms decodes and validates request payloads.
package forms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"talent-search/internal/apperr"
	"talent-search/internal/optional"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator. Field names in errors are the json names.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// DecodeJSON strictly decodes data into dst. Type mismatches come back as
// field-level validation errors.
func DecodeJSON(data []byte, dst interface{}) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return apperr.InvalidInput("request body is required", nil)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return apperr.Validation("invalid request body", []apperr.FieldError{{
				Field:   typeErr.Field,
				Message: "must be a " + typeErr.Type.String(),
			}})
		}
		return apperr.InvalidInput("invalid JSON body", err)
	}
	return nil
}

// ValidateStruct runs struct tags and converts failures to field errors.
func ValidateStruct(message string, v interface{}) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Internal("validation failed", err)
	}
	return apperr.Validation(message, FieldErrors(verrs))
}

func FieldErrors(verrs validator.ValidationErrors) []apperr.FieldError {
	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperr.FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return fields
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "Please enter a valid email address"
	case "gte":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// The helpers below decode one raw JSON field into a tri-state value. A
// non-empty message means the field was rejected.

func decodeString(raw json.RawMessage) (optional.Value[string], string) {
	if isNull(raw) {
		return optional.Null[string](), ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return optional.Value[string]{}, "must be a string"
	}
	return optional.Of(s), ""
}

// decodeList accepts an array of strings or a comma-separated string.
func decodeList(raw json.RawMessage) (optional.Value[[]string], string) {
	if isNull(raw) {
		return optional.Null[[]string](), ""
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return optional.Of(list), ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return optional.Value[[]string]{}, "must be a list of strings or a comma-separated string"
	}
	return optional.Of(SplitList(s)), ""
}

// decodeInt accepts a number or a numeric string. A blank string is null.
func decodeInt(raw json.RawMessage) (optional.Value[int], string) {
	if isNull(raw) {
		return optional.Null[int](), ""
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return optional.Value[int]{}, "must be a whole number"
	}
	switch t := v.(type) {
	case json.Number:
		n = t
	case string:
		t = strings.TrimSpace(t)
		if t == "" {
			return optional.Null[int](), ""
		}
		n = json.Number(t)
	default:
		return optional.Value[int]{}, "must be a whole number"
	}
	i, err := strconv.Atoi(n.String())
	if err != nil {
		return optional.Value[int]{}, "must be a whole number"
	}
	return optional.Of(i), ""
}

// decodeBool accepts true/false or "true"/"false".
func decodeBool(raw json.RawMessage) (optional.Value[bool], string) {
	if isNull(raw) {
		return optional.Null[bool](), ""
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return optional.Value[bool]{}, "must be true or false"
	}
	switch t := v.(type) {
	case bool:
		return optional.Of(t), ""
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true":
			return optional.Of(true), ""
		case "false":
			return optional.Of(false), ""
		}
	}
	return optional.Value[bool]{}, "must be true or false"
}

// SplitList splits a comma-separated string, trimming entries and dropping blanks.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
