// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/folio/internal/catalog"
	"github.com/tomtom215/folio/internal/events"
	"github.com/tomtom215/folio/internal/metrics"
	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/recommend/storage"
)

var _ suture.Service = (*IndexService)(nil)

type fixedSource struct{}

func (fixedSource) LoadBooks(context.Context) ([]catalog.Book, error) {
	return []catalog.Book{
		{ID: 1, Title: "Dune", Genres: []string{"science fiction"}, AverageRating: 4.2, RatingsCount: 10},
		{ID: 2, Title: "Foundation", Genres: []string{"science fiction"}, AverageRating: 4.1, RatingsCount: 10},
		{ID: 3, Title: "Hyperion", Genres: []string{"science fiction"}, AverageRating: 4.0, RatingsCount: 10},
	}, nil
}

func (fixedSource) LoadRatings(context.Context) ([]catalog.Rating, error) {
	return []catalog.Rating{
		{UserID: 1, BookID: 1, Value: 5},
		{UserID: 1, BookID: 2, Value: 4},
		{UserID: 2, BookID: 3, Value: 3},
	}, nil
}

// fakeEngine counts rebuilds and fails the first failures of them.
type fakeEngine struct {
	mu         sync.Mutex
	ready      bool
	failures   int
	inProgress bool
	rebuilds   atomic.Int32
	generation uint64
}

func (f *fakeEngine) Rebuild(ctx context.Context, source recommend.DataSource) (*recommend.IndexBundle, uint64, error) {
	f.rebuilds.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inProgress {
		return nil, 0, recommend.ErrRebuildInProgress
	}
	if f.failures > 0 {
		f.failures--
		return nil, 0, errors.New("load books: csv missing")
	}
	bundle, err := recommend.BuildFrom(ctx, source, nil, zerolog.Nop())
	if err != nil {
		return nil, 0, err
	}
	f.ready = true
	f.generation++
	return bundle, f.generation, nil
}

func (f *fakeEngine) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ready
}

type memManifests struct {
	mu    sync.Mutex
	saved []*storage.Manifest
}

func (m *memManifests) Save(_ context.Context, manifest *storage.Manifest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, manifest)
	return nil
}

func (m *memManifests) list() []*storage.Manifest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*storage.Manifest(nil), m.saved...)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func runService(t *testing.T, svc *IndexService) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()
	t.Cleanup(cancel)
	return cancel, errCh
}

func TestIndexService_StartupBuild(t *testing.T) {
	engine := &fakeEngine{}
	manifests := &memManifests{}
	svc := NewIndexService(engine, fixedSource{}, nil, manifests, IndexServiceConfig{}, zerolog.Nop())

	startup := metrics.IndexRebuilds.WithLabelValues("startup", "success")
	before := testutil.ToFloat64(startup)

	cancel, errCh := runService(t, svc)
	waitFor(t, "startup manifest", func() bool { return len(manifests.list()) == 1 })

	m := manifests.list()[0]
	if m.Trigger != storage.TriggerStartup || m.Generation != 1 || m.Stats.Books != 3 {
		t.Errorf("manifest = %+v", m)
	}
	if got := testutil.ToFloat64(startup) - before; got != 1 {
		t.Errorf("startup success delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.CatalogBooks); got != 3 {
		t.Errorf("catalog books gauge = %v, want 3", got)
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve = %v, want context.Canceled", err)
	}
}

func TestIndexService_StartupFailureReturnsError(t *testing.T) {
	engine := &fakeEngine{failures: 1}
	svc := NewIndexService(engine, fixedSource{}, nil, nil, IndexServiceConfig{}, zerolog.Nop())

	err := svc.Serve(context.Background())
	if err == nil {
		t.Fatal("expected startup error")
	}
	if engine.Ready() {
		t.Error("engine ready after failed build")
	}
}

func TestIndexService_SkipsBuildWhenReady(t *testing.T) {
	engine := &fakeEngine{ready: true}
	svc := NewIndexService(engine, fixedSource{}, nil, nil, IndexServiceConfig{}, zerolog.Nop())

	cancel, errCh := runService(t, svc)
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-errCh

	if n := engine.rebuilds.Load(); n != 0 {
		t.Errorf("rebuilds = %d, want 0", n)
	}
}

func TestIndexService_Refresh(t *testing.T) {
	engine := &fakeEngine{}
	manifests := &memManifests{}
	svc := NewIndexService(engine, fixedSource{}, nil, manifests, IndexServiceConfig{
		RefreshInterval: 20 * time.Millisecond,
	}, zerolog.Nop())

	runService(t, svc)
	waitFor(t, "refresh manifests", func() bool { return len(manifests.list()) >= 3 })

	saved := manifests.list()
	if saved[1].Trigger != storage.TriggerRefresh {
		t.Errorf("second trigger = %q, want refresh", saved[1].Trigger)
	}
	if saved[2].Generation <= saved[1].Generation {
		t.Error("generations not increasing")
	}
}

func TestIndexService_RebuildRequestEvent(t *testing.T) {
	bus := events.NewGoChannelBus(events.Config{Topic: "test.index.rebuild"}, zerolog.Nop())
	t.Cleanup(func() { _ = bus.Close() })

	engine := &fakeEngine{}
	manifests := &memManifests{}
	svc := NewIndexService(engine, fixedSource{}, bus, manifests, IndexServiceConfig{}, zerolog.Nop())

	runService(t, svc)
	waitFor(t, "startup build", func() bool { return len(manifests.list()) == 1 })

	// The subscription is registered after the startup build; publish until
	// the request is picked up.
	req := events.NewRebuildRequest("new ratings", "req-9")
	waitFor(t, "requested build", func() bool {
		if err := bus.PublishRebuild(context.Background(), req); err != nil {
			t.Fatalf("PublishRebuild: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
		return len(manifests.list()) >= 2
	})

	m := manifests.list()[1]
	if m.Trigger != storage.TriggerRequest || m.RequestID != "req-9" {
		t.Errorf("manifest = %+v", m)
	}
}

func TestIndexService_RebuildInProgress(t *testing.T) {
	engine := &fakeEngine{ready: true, inProgress: true}
	svc := NewIndexService(engine, fixedSource{}, nil, nil, IndexServiceConfig{}, zerolog.Nop())

	skipped := metrics.IndexRebuilds.WithLabelValues("request", "in_progress")
	before := testutil.ToFloat64(skipped)

	err := svc.handleRebuildRequest(context.Background(), events.NewRebuildRequest("", ""))
	if !errors.Is(err, recommend.ErrRebuildInProgress) {
		t.Errorf("error = %v, want ErrRebuildInProgress", err)
	}
	if got := testutil.ToFloat64(skipped) - before; got != 1 {
		t.Errorf("in_progress delta = %v, want 1", got)
	}
}

func TestIndexService_WithRealEngine(t *testing.T) {
	engine, err := recommend.NewEngine(recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	svc := NewIndexService(engine, fixedSource{}, nil, nil, IndexServiceConfig{}, zerolog.Nop())

	runService(t, svc)
	waitFor(t, "engine ready", engine.Ready)

	resp, err := engine.Recommend(context.Background(), recommend.Query{BookID: 1})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(resp.BookIDs) == 0 {
		t.Error("no recommendations from installed generation")
	}
}
