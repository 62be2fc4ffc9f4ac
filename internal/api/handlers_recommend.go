// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/recommend"
)

// RecommendationBooks is the /api/v1/recommendations payload with
// expand=books: the ranked ids and their catalog records in the same order.
type RecommendationBooks struct {
	*recommend.Response
	Books []catalog.Book `json:"books"`
}

// Recommend handles GET /recommend with the plain wire format: a bare JSON
// array of book ids on success.
//
// @Summary Recommend books (plain format)
// @Description Returns a bare JSON array of recommended book ids. Errors use {"error": ...}; an empty result is 404 {"message": "No recommendations found"}.
// @Tags Recommendations
// @Produce json
// @Param book_id query int true "Seed book id" minimum(1)
// @Param method query string false "content, collaborative or hybrid (labels Content-Based, Collaborative, Hybrid accepted)" default(content)
// @Param limit query int false "Result cap for collaborative and hybrid" minimum(1)
// @Success 200 {array} int "Recommended book ids"
// @Failure 400 {object} map[string]interface{} "Invalid request parameters"
// @Failure 404 {object} map[string]string "No recommendations found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Failure 503 {object} map[string]string "Index not ready"
// @Router /recommend [get]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	params, details, ok := parseRecommendRequest(r, h.maxLimit)
	if !ok {
		metrics.RecordRecommendation("unknown", metrics.OutcomeInvalid, 0, 0)
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   msgInvalidParams,
			"details": details,
		})
		return
	}

	resp, err := h.recommend(r.Context(), params.query)
	if err != nil {
		status, _, message := errorStatus(err)
		h.logFailure(r, status, err)
		if status == http.StatusNotFound {
			writeJSON(w, status, map[string]string{"message": message})
			return
		}
		writeJSON(w, status, map[string]string{"error": message})
		return
	}

	writeJSON(w, http.StatusOK, resp.BookIDs)
}

// Recommendations handles GET /api/v1/recommendations.
//
// @Summary Recommend books
// @Description Returns recommended book ids in the standard envelope. expand=books adds the catalog record of each id.
// @Tags Recommendations
// @Produce json
// @Param book_id query int true "Seed book id" minimum(1)
// @Param method query string false "content, collaborative or hybrid" default(content)
// @Param limit query int false "Result cap for collaborative and hybrid" minimum(1)
// @Param expand query string false "Set to books to include book records" Enums(books)
// @Success 200 {object} APIResponse{data=RecommendationBooks} "Recommendations"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Failure 404 {object} APIResponse "No recommendations found"
// @Failure 503 {object} APIResponse "Index not ready"
// @Router /api/v1/recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	params, details, ok := parseRecommendRequest(r, h.maxLimit)
	if !ok {
		metrics.RecordRecommendation("unknown", metrics.OutcomeInvalid, 0, 0)
		rw.ValidationError(msgInvalidParams, details)
		return
	}

	resp, err := h.recommend(r.Context(), params.query)
	if err != nil {
		status, _, _ := errorStatus(err)
		h.logFailure(r, status, err)
		rw.FromError(err)
		return
	}

	meta := &APIMeta{Generation: resp.Generation, Count: len(resp.BookIDs)}
	if !params.expandBooks {
		rw.SuccessWithMeta(resp, meta)
		return
	}
	rw.SuccessWithMeta(RecommendationBooks{Response: resp, Books: h.lookupBooks(resp.BookIDs)}, meta)
}

// lookupBooks returns the catalog records of ids in order. Ids missing
// from the active generation are skipped.
func (h *Handler) lookupBooks(ids []int) []catalog.Book {
	books := make([]catalog.Book, 0, len(ids))
	bundle, _ := h.engine.Current()
	if bundle == nil {
		return books
	}
	for _, id := range ids {
		if book, ok := bundle.Catalog.Get(id); ok {
			books = append(books, book)
		}
	}
	return books
}

// logFailure logs server-side failures at error level; client errors and
// empty results are routine.
func (h *Handler) logFailure(r *http.Request, status int, err error) {
	if status < http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		return
	}
	h.logger.Error().
		Err(err).
		Str("request_id", logging.RequestIDFromContext(r.Context())).
		Str("query", r.URL.RawQuery).
		Msg("Recommendation failed")
}
