package dashboard_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"climate-dashboard/internal/domain/entity"
	"climate-dashboard/internal/handler/http/dashboard"
	"climate-dashboard/internal/registry"
	feedUC "climate-dashboard/internal/usecase/feed"
	updateUC "climate-dashboard/internal/usecase/update"
)

/* ───────── スタブ実装 ───────── */

type stubRepo struct {
	mu        sync.Mutex
	state     map[string][]entity.ManualUpdate
	loadErr   error
	appendErr error
	appended  []entity.ManualUpdate
}

func (s *stubRepo) Load(_ context.Context) (map[string][]entity.ManualUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	out := make(map[string][]entity.ManualUpdate, len(s.state))
	for k, v := range s.state {
		out[k] = append([]entity.ManualUpdate(nil), v...)
	}
	return out, nil
}

func (s *stubRepo) Append(_ context.Context, u entity.ManualUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	if s.state == nil {
		s.state = map[string][]entity.ManualUpdate{}
	}
	s.state[u.Company] = append(s.state[u.Company], u)
	s.appended = append(s.appended, u)
	return nil
}

type stubNews struct {
	items map[string][]entity.NewsItem
	fail  map[string]bool
}

func (s stubNews) Fetch(_ context.Context, c entity.Company) ([]entity.NewsItem, error) {
	if s.fail[c.Name] {
		return nil, &feedUC.FetchError{Company: c.Name, Cause: fmt.Errorf("upstream unavailable")}
	}
	return s.items[c.Name], nil
}

var testCompanies = []entity.Company{
	{Name: "Talus Renewables", Group: "2023 Cohort", Description: "Modular green ammonia"},
	{Name: "Amini.ai", Group: "2024 Cohort", Description: "Environmental data for Africa"},
	{Name: "Mombak", Group: "2023 Cohort", Description: "Reforestation carbon removal", CEO: "Peter Fernandez"},
}

var fixedNow = time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

type fixture struct {
	repo    *stubRepo
	news    stubNews
	roster  *registry.Registry
	updates *updateUC.Service
	mux     *http.ServeMux
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	roster, err := registry.New(testCompanies)
	if err != nil {
		t.Fatalf("registry.New: %v", err)
	}

	f := &fixture{
		repo:   &stubRepo{},
		news:   stubNews{items: map[string][]entity.NewsItem{}, fail: map[string]bool{}},
		roster: roster,
	}
	f.updates = &updateUC.Service{Repo: f.repo, Roster: roster, Now: func() time.Time { return fixedNow }}
	feed := feedUC.NewService(f.repo, f.news, "stub", time.Second)

	f.mux = http.NewServeMux()
	dashboard.Register(f.mux, roster, feed, f.updates)
	return f
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	f.mux.ServeHTTP(rr, req)
	return rr
}
