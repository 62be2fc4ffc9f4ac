// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := DefaultConfig(srv.URL)
	cfg.RequestsPerSecond = 0
	cfg.BreakerName = t.Name()
	cfg.FailureThreshold = 3
	cfg.OpenTimeout = time.Minute
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, &calls
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:5000", "://bad"} {
		if _, err := New(DefaultConfig(raw)); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("New(%q) error = %v, want ErrInvalidRequest", raw, err)
		}
	}
}

func TestRecommend_Success(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recommend" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("book_id") != "42" || q.Get("method") != "Hybrid" || q.Get("limit") != "5" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[7,3,9]`))
	})

	ids, err := c.Recommend(context.Background(), RecommendRequest{BookID: 42, Method: "Hybrid", Limit: 5})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	want := []int{7, 3, 9}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %d, want %d", i, ids[i], want[i])
		}
	}
}

func TestRecommend_DefaultLimit(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Errorf("limit = %s, want 10", got)
		}
		if r.URL.Query().Has("method") {
			t.Error("method should be omitted when empty")
		}
		_, _ = w.Write([]byte(`[]`))
	})
	if _, err := c.Recommend(context.Background(), RecommendRequest{BookID: 1}); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
}

func TestRecommend_Validation(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	tests := []struct {
		name string
		req  RecommendRequest
	}{
		{"book id zero", RecommendRequest{BookID: 0, Limit: 5}},
		{"book id too large", RecommendRequest{BookID: 10001, Limit: 5}},
		{"limit too small", RecommendRequest{BookID: 1, Limit: 4}},
		{"limit too large", RecommendRequest{BookID: 1, Limit: 21}},
		{"unknown method", RecommendRequest{BookID: 1, Method: "Popular", Limit: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Recommend(context.Background(), tt.req)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("error = %v, want ErrInvalidRequest", err)
			}
		})
	}
	if n := atomic.LoadInt32(calls); n != 0 {
		t.Errorf("server called %d times for invalid requests", n)
	}
}

func TestRecommend_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{"not found", http.StatusNotFound, `{"message":"No recommendations found"}`, ErrNoRecommendations, ""},
		{"not ready", http.StatusServiceUnavailable, `{"error":"not ready"}`, ErrNotReady, ""},
		{"bad request", http.StatusBadRequest, `{"error":"invalid method"}`, nil, "invalid method"},
		{"internal", http.StatusInternalServerError, `{"error":"boom"}`, nil, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.Recommend(context.Background(), RecommendRequest{BookID: 1, Limit: 5})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			var se *StatusError
			if !errors.As(err, &se) {
				t.Fatalf("error = %v, want *StatusError", err)
			}
			if se.StatusCode != tt.status || se.Message != tt.wantMsg {
				t.Errorf("StatusError = %+v", se)
			}
		})
	}
}

func TestCircuitBreaker_OpensOnServerErrors(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})

	for i := 0; i < 3; i++ {
		var se *StatusError
		if _, err := c.Recommend(context.Background(), RecommendRequest{BookID: 1, Limit: 5}); !errors.As(err, &se) {
			t.Fatalf("call %d error = %v, want *StatusError", i, err)
		}
	}
	if c.BreakerState() != gobreaker.StateOpen {
		t.Fatalf("BreakerState() = %s, want open", c.BreakerState())
	}

	_, err := c.Recommend(context.Background(), RecommendRequest{BookID: 1, Limit: 5})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("error = %v, want ErrCircuitOpen", err)
	}
	if n := atomic.LoadInt32(calls); n != 3 {
		t.Errorf("server calls = %d, want 3", n)
	}
}

func TestCircuitBreaker_IgnoresClientErrors(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"No recommendations found"}`))
	})
	for i := 0; i < 5; i++ {
		_, _ = c.Recommend(context.Background(), RecommendRequest{BookID: 1, Limit: 5})
	}
	if c.BreakerState() != gobreaker.StateClosed {
		t.Errorf("BreakerState() = %s, want closed", c.BreakerState())
	}
}

func TestRateLimiter_RespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cfg := DefaultConfig(srv.URL)
	cfg.BreakerName = t.Name()
	cfg.RequestsPerSecond = 0.001
	cfg.Burst = 1
	c, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Recommend(context.Background(), RecommendRequest{BookID: 1, Limit: 5}); err != nil {
		t.Fatalf("first call error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.Recommend(ctx, RecommendRequest{BookID: 1, Limit: 5}); err == nil {
		t.Error("second call should fail waiting for the limiter")
	}
}

func TestIndexStatusAndBook(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/index":
			_, _ = w.Write([]byte(`{"success":true,"data":{"ready":true,"generation":4,"rebuilding":false,"stats":{},"last_build":{"id":"m-4","generation":4,"trigger":"refresh"}}}`))
		case "/api/v1/books/3":
			_, _ = w.Write([]byte(`{"success":true,"data":{"book_id":3,"title":"Dune","authors":["Frank Herbert"]}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"error":{"code":"NOT_FOUND","message":"book not found"}}`))
		}
	})
	ctx := context.Background()

	status, err := c.IndexStatus(ctx)
	if err != nil {
		t.Fatalf("IndexStatus() error = %v", err)
	}
	if !status.Ready || status.Generation != 4 {
		t.Errorf("status = %+v", status)
	}
	if status.LastBuild == nil || status.LastBuild.ID != "m-4" {
		t.Errorf("LastBuild = %+v, want m-4", status.LastBuild)
	}

	book, err := c.Book(ctx, 3)
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if book.Title != "Dune" || len(book.Authors) != 1 {
		t.Errorf("book = %+v", book)
	}

	if _, err := c.Book(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Book(99) error = %v, want ErrNotFound", err)
	}
}

func TestRebuild(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/index/rebuild" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"success":true,"data":{"event_id":"ev-1","request_id":"req-1"}}`))
	})

	accepted, err := c.Rebuild(context.Background(), "manual")
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if accepted.EventID != "ev-1" || accepted.RequestID != "req-1" {
		t.Errorf("accepted = %+v", accepted)
	}
}

func TestRebuild_SendsToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"success":true,"data":{"event_id":"ev-2"}}`))
	}))
	t.Cleanup(srv.Close)

	cfg := DefaultConfig(srv.URL)
	cfg.RequestsPerSecond = 0
	cfg.BreakerName = t.Name()
	cfg.Token = "signed.jwt.token"
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := c.Rebuild(context.Background(), "manual"); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if got != "Bearer signed.jwt.token" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestRebuild_Unauthorized(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("Authorization sent without a token")
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"UNAUTHORIZED","message":"missing bearer token"}}`))
	})
	_, err := c.Rebuild(context.Background(), "")
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusUnauthorized {
		t.Errorf("error = %v, want 401 StatusError", err)
	}
	if se != nil && se.Temporary() {
		t.Error("401 reported as temporary")
	}
}

func TestSearchBooks(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/books/search" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		q := r.URL.Query()
		if q.Get("query") != "dune" || q.Get("page") != "2" || q.Get("limit") != "1" {
			t.Errorf("query = %v", q)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[{"book_id":4,"title":"Dune Messiah"}],` +
			`"meta":{"count":1,"pagination":{"total":3,"count":1,"page":2,"has_more":true}}}`))
	})

	page, err := c.SearchBooks(context.Background(), "dune", 2, 1)
	if err != nil {
		t.Fatalf("SearchBooks() error = %v", err)
	}
	if len(page.Books) != 1 || page.Books[0].ID != 4 {
		t.Errorf("Books = %+v", page.Books)
	}
	if page.Total != 3 || page.Page != 2 || !page.HasMore {
		t.Errorf("page = %+v", page)
	}

	if _, err := c.SearchBooks(context.Background(), "  ", 0, 0); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("blank query error = %v, want ErrInvalidRequest", err)
	}
}

func TestRandomBooks(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("count") != "2" {
			t.Errorf("count = %q", r.URL.Query().Get("count"))
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[{"book_id":1},{"book_id":7}]}`))
	})

	books, err := c.RandomBooks(context.Background(), 2)
	if err != nil {
		t.Fatalf("RandomBooks() error = %v", err)
	}
	if len(books) != 2 || books[1].ID != 7 {
		t.Errorf("books = %+v", books)
	}
}

func TestRebuild_Conflict(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"CONFLICT","message":"rebuild already in progress"}}`))
	})
	_, err := c.Rebuild(context.Background(), "")
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusConflict || se.Message != "rebuild already in progress" {
		t.Errorf("error = %v", err)
	}
}
