// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/validation"
)

// Query parameter defaults for the catalog endpoints.
const (
	defaultPageSize    = 10
	defaultRandomCount = 5
)

// RecommendRequest holds the validated query parameters of a
// recommendation request. A nil Limit selects the engine default; an
// explicit limit must be positive.
type RecommendRequest struct {
	BookID int    `query:"book_id" validate:"required,min=1"`
	Method string `query:"method" validate:"omitempty,method"`
	Limit  *int   `query:"limit" validate:"omitempty,min=1"`
	Expand string `query:"expand" validate:"omitempty,oneof=books"`
}

// HistoryRequest holds the query parameters of /api/v1/index/history.
type HistoryRequest struct {
	Limit *int `query:"limit" validate:"omitempty,min=1,max=500"`
}

// PageRequest holds page-based pagination parameters.
type PageRequest struct {
	Page  *int `query:"page" validate:"omitempty,min=1"`
	Limit *int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// SearchRequest holds the query parameters of /api/v1/books/search.
type SearchRequest struct {
	Query string `query:"query" validate:"required,max=200"`
	PageRequest
}

// RandomRequest holds the query parameters of /api/v1/books/random.
type RandomRequest struct {
	Count *int `query:"count" validate:"omitempty,min=1,max=50"`
}

// recommendParams is a parsed recommendation request.
type recommendParams struct {
	query       recommend.Query
	expandBooks bool
}

// paramError is a parameter that could not be parsed.
type paramError struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Issue string `json:"message"`
}

func (e *paramError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Issue)
}

// intParam parses an integer query parameter; absent yields 0.
func intParam(r *http.Request, name string) (int, *paramError) {
	v, perr := optionalInt(r, name)
	if perr != nil || v == nil {
		return 0, perr
	}
	return *v, nil
}

// optionalInt parses an optional integer query parameter; absent yields nil.
func optionalInt(r *http.Request, name string) (*int, *paramError) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, perr := parseInt(name, raw)
	if perr != nil {
		return nil, perr
	}
	return &v, nil
}

func parseInt(name, raw string) (int, *paramError) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{Field: name, Value: raw, Issue: "must be an integer"}
	}
	return v, nil
}

func valueOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// parseRecommendRequest reads and validates a recommendation query. The
// returned details are suitable for a 400 response body.
func parseRecommendRequest(r *http.Request, maxLimit int) (recommendParams, interface{}, bool) {
	bookID, perr := intParam(r, "book_id")
	if perr != nil {
		return recommendParams{}, perr, false
	}
	limit, perr := optionalInt(r, "limit")
	if perr != nil {
		return recommendParams{}, perr, false
	}

	req := RecommendRequest{
		BookID: bookID,
		Method: r.URL.Query().Get("method"),
		Limit:  limit,
		Expand: strings.ToLower(strings.TrimSpace(r.URL.Query().Get("expand"))),
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		return recommendParams{}, verr.ToAPIError().Details, false
	}
	if maxLimit > 0 && req.Limit != nil {
		if verr := validation.ValidateVar("limit", *req.Limit, fmt.Sprintf("max=%d", maxLimit)); verr != nil {
			return recommendParams{}, verr.ToAPIError().Details, false
		}
	}

	method, err := recommend.ParseMethod(req.Method)
	if err != nil {
		return recommendParams{}, &paramError{Field: "method", Value: req.Method, Issue: err.Error()}, false
	}

	return recommendParams{
		query:       recommend.Query{BookID: req.BookID, Method: method, Limit: valueOr(req.Limit, 0)},
		expandBooks: req.Expand == "books",
	}, nil, true
}

// readPageRequest parses page and limit without validating them.
func readPageRequest(r *http.Request) (PageRequest, *paramError) {
	var req PageRequest
	var perr *paramError
	if req.Page, perr = optionalInt(r, "page"); perr != nil {
		return PageRequest{}, perr
	}
	if req.Limit, perr = optionalInt(r, "limit"); perr != nil {
		return PageRequest{}, perr
	}
	return req, nil
}

// resolve applies the defaults and returns page, limit and row offset.
func (p PageRequest) resolve() (page, limit, offset int) {
	page = valueOr(p.Page, 1)
	limit = valueOr(p.Limit, defaultPageSize)
	return page, limit, (page - 1) * limit
}
