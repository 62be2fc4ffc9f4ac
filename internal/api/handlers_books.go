// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/validation"
)

// Book handles GET /api/v1/books/{id}.
//
// @Summary Get a book
// @Description Returns one catalog record of the active index generation.
// @Tags Books
// @Produce json
// @Param id path int true "Book id" minimum(1)
// @Success 200 {object} APIResponse{data=catalog.Book} "Book record"
// @Failure 400 {object} APIResponse "Invalid id"
// @Failure 404 {object} APIResponse "Book not found"
// @Failure 503 {object} APIResponse "Index not ready"
// @Router /api/v1/books/{id} [get]
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, perr := pathID(r, "id")
	if perr != nil {
		rw.ValidationError(msgInvalidParams, perr)
		return
	}

	bundle, generation := h.engine.Current()
	if bundle == nil {
		rw.ServiceUnavailable(msgNotReady)
		return
	}

	book, found := bundle.Catalog.Get(id)
	if !found {
		rw.NotFound("book not found")
		return
	}
	rw.SuccessWithMeta(book, &APIMeta{Generation: generation})
}

// Books handles GET /api/v1/books, listing the catalog in source order.
//
// @Summary List books
// @Description Pages through the catalog of the active index generation in source order.
// @Tags Books
// @Produce json
// @Param page query int false "Page number" default(1) minimum(1)
// @Param limit query int false "Books per page" default(10) minimum(1) maximum(100)
// @Success 200 {object} APIResponse{data=[]catalog.Book} "Page of books with pagination metadata"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Failure 503 {object} APIResponse "Index not ready"
// @Router /api/v1/books [get]
func (h *Handler) Books(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, perr := readPageRequest(r)
	if perr != nil {
		rw.ValidationError(msgInvalidParams, perr)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(msgInvalidParams, verr.ToAPIError().Details)
		return
	}

	bundle, generation := h.engine.Current()
	if bundle == nil {
		rw.ServiceUnavailable(msgNotReady)
		return
	}

	page, limit, offset := req.resolve()
	books := bundle.Catalog.Page(offset, limit)
	rw.SuccessWithPagination(books, generation, paginate(r, page, limit, offset, len(books), bundle.Catalog.Len()))
}

// SearchBooks handles GET /api/v1/books/search: a case-insensitive title
// substring match ranked by TF-IDF relevance.
//
// @Summary Search books by title
// @Description Matches titles containing the query, ignoring case, ordered by TF-IDF relevance of the query to each book's content.
// @Tags Books
// @Produce json
// @Param query query string true "Title substring" maxlength(200)
// @Param page query int false "Page number" default(1) minimum(1)
// @Param limit query int false "Results per page" default(10) minimum(1) maximum(100)
// @Success 200 {object} APIResponse{data=[]catalog.Book} "Matching books with pagination metadata"
// @Failure 400 {object} APIResponse "Missing query or invalid parameters"
// @Failure 404 {object} APIResponse "No books found matching the query"
// @Failure 503 {object} APIResponse "Index not ready"
// @Router /api/v1/books/search [get]
func (h *Handler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	page, perr := readPageRequest(r)
	if perr != nil {
		rw.ValidationError(msgInvalidParams, perr)
		return
	}
	req := SearchRequest{
		Query:       strings.TrimSpace(r.URL.Query().Get("query")),
		PageRequest: page,
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(msgInvalidParams, verr.ToAPIError().Details)
		return
	}

	bundle, generation := h.engine.Current()
	if bundle == nil {
		rw.ServiceUnavailable(msgNotReady)
		return
	}

	matches := recommend.SearchTitles(bundle, req.Query)
	pageNum, limit, offset := req.resolve()
	results := pageOf(matches, offset, limit)
	if len(results) == 0 {
		rw.NotFound(msgNoBooksFound)
		return
	}
	rw.SuccessWithPagination(results, generation, paginate(r, pageNum, limit, offset, len(results), len(matches)))
}

// RandomBooks handles GET /api/v1/books/random.
//
// @Summary Random books
// @Description Returns distinct books drawn uniformly from the active catalog.
// @Tags Books
// @Produce json
// @Param count query int false "Number of books" default(5) minimum(1) maximum(50)
// @Success 200 {object} APIResponse{data=[]catalog.Book} "Random books"
// @Failure 400 {object} APIResponse "Invalid parameters"
// @Failure 503 {object} APIResponse "Index not ready"
// @Router /api/v1/books/random [get]
func (h *Handler) RandomBooks(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	count, perr := optionalInt(r, "count")
	if perr != nil {
		rw.ValidationError(msgInvalidParams, perr)
		return
	}
	req := RandomRequest{Count: count}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(msgInvalidParams, verr.ToAPIError().Details)
		return
	}

	bundle, generation := h.engine.Current()
	if bundle == nil {
		rw.ServiceUnavailable(msgNotReady)
		return
	}

	books := bundle.Catalog.Sample(valueOr(req.Count, defaultRandomCount), nil)
	rw.SuccessWithMeta(books, &APIMeta{Generation: generation, Count: len(books)})
}

func pathID(r *http.Request, name string) (int, *paramError) {
	raw := chi.URLParam(r, name)
	id, perr := parseInt(name, raw)
	if perr != nil {
		return 0, perr
	}
	if id < 1 {
		return 0, &paramError{Field: name, Value: raw, Issue: "must be positive"}
	}
	return id, nil
}

// pageOf returns books[offset:offset+limit], clamped.
func pageOf(books []catalog.Book, offset, limit int) []catalog.Book {
	if offset >= len(books) {
		return []catalog.Book{}
	}
	return books[offset:min(offset+limit, len(books))]
}

// paginate builds the pagination metadata of one page of a total-row listing.
func paginate(r *http.Request, page, limit, offset, count, total int) *PaginationMeta {
	p := &PaginationMeta{
		Total:   int64(total),
		Count:   count,
		Page:    page,
		Offset:  offset,
		Limit:   limit,
		HasMore: offset+count < total,
	}
	if p.HasMore {
		p.Next = pageLink(r, page+1, limit)
	}
	if page > 1 {
		p.Prev = pageLink(r, page-1, limit)
	}
	return p
}

// pageLink returns the request URI with page and limit replaced.
func pageLink(r *http.Request, page, limit int) string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()
	return u.RequestURI()
}
