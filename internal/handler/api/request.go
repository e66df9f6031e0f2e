// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/olegiv/studio-cms/internal/service"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON reads a JSON body into dst, rejecting unknown fields and
// trailing data, then checks dst's validate tags. On failure it writes a
// 400 response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteBadRequest(w, describeDecodeError(err), nil)
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		WriteBadRequest(w, "Request body must contain a single JSON object", nil)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := validationFields(verrs)
			WriteBadRequest(w, (&service.ValidationError{Fields: fields}).Error(), fields)
			return false
		}
		WriteBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

func describeDecodeError(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return "Request body is empty"
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("Malformed JSON at position %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		return fmt.Sprintf("Field %q has the wrong type", typeErr.Field)
	case errors.As(err, &maxErr):
		return "Request body is too large"
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return "Unknown field " + strings.TrimPrefix(err.Error(), "json: unknown field ")
	default:
		return "Invalid JSON body"
	}
}

// validationFields turns validator errors into field -> message pairs keyed
// by the JSON path, e.g. "slides[0].titleLines".
func validationFields(verrs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		// Drop the top-level struct name.
		if _, rest, ok := strings.Cut(ns, "."); ok {
			ns = rest
		}
		if _, exists := fields[ns]; !exists {
			fields[ns] = fieldMessage(fe)
		}
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "len":
		return fmt.Sprintf("Must contain exactly %s items", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "url":
		return "Must be a valid URL"
	default:
		return "Is invalid"
	}
}

// parseIDParam parses the {id} URL parameter. On failure it writes a 400
// response and returns false.
func parseIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		WriteBadRequest(w, "Invalid id", map[string]string{"id": "Must be a positive integer"})
		return 0, false
	}
	return id, true
}

// parsePagination reads page and perPage query parameters. Bad values fall
// back to the defaults.
func parsePagination(r *http.Request) service.Pagination {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("perPage"))
	return service.Pagination{Page: page, PerPage: perPage}.Normalize()
}

// queryBool parses an optional boolean query parameter. An empty value is
// nil; an unparsable one writes a 400 response and returns false.
func queryBool(w http.ResponseWriter, r *http.Request, name string) (*bool, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		WriteBadRequest(w, "Invalid "+name, map[string]string{name: "Must be true or false"})
		return nil, false
	}
	return &v, true
}

func boolValue(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
