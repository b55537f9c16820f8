package dashboard_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"climate-dashboard/internal/domain/entity"
	"climate-dashboard/internal/handler/http/dashboard"
	feedUC "climate-dashboard/internal/usecase/feed"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupsHandler(t *testing.T) {
	f := newFixture(t)

	rr := f.do(httptest.NewRequest(http.MethodGet, "/api/groups", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var got dashboard.GroupsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, []string{"All", "2023 Cohort", "2024 Cohort"}, got.Groups)
}

func TestCompaniesHandler(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"no filter", "", []string{"Talus Renewables", "Amini.ai", "Mombak"}},
		{"all sentinel", "?group=All", []string{"Talus Renewables", "Amini.ai", "Mombak"}},
		{"one group keeps roster order", "?group=2023+Cohort", []string{"Talus Renewables", "Mombak"}},
		{"unknown group", "?group=2030+Cohort", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rr := f.do(httptest.NewRequest(http.MethodGet, "/api/companies"+tt.query, nil))
			require.Equal(t, http.StatusOK, rr.Code)

			var got dashboard.CompaniesResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			names := make([]string, 0, len(got.Companies))
			for _, c := range got.Companies {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFeedHandler_MergesManualAndNews(t *testing.T) {
	f := newFixture(t)
	f.repo.state = map[string][]entity.ManualUpdate{
		"Mombak": {{Company: "Mombak", Category: entity.CategoryFunding, Title: "Series B", Description: "Raised $100M", Date: "March 01, 2024"}},
	}
	f.news.items["Mombak"] = []entity.NewsItem{
		{Title: "Mombak expands", Description: "Brazil", URL: "https://news.example/mombak", PublishedAt: "Tue, 05 Mar 2024 08:00:00 GMT", SourceName: "Reuters"},
	}

	// 選択順は無視され、登録順で返る
	rr := f.do(httptest.NewRequest(http.MethodGet, "/api/feed?company=Mombak&company=Talus+Renewables&company=Nope", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var got []feedUC.EntityFeed
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Talus Renewables", got[0].Company.Name)
	assert.Equal(t, "Mombak", got[1].Company.Name)

	assert.Equal(t, entity.CardKindPlaceholder, got[0].Cards[0].Kind)

	want := []entity.DisplayCard{
		{Kind: entity.CardKindManual, Title: "Series B", Description: "Raised $100M", FormattedDate: "March 01, 2024", SourceLabel: "Company Update"},
		{Kind: entity.CardKindNews, Title: "Mombak expands", Description: "Brazil", FormattedDate: "March 05, 2024", SourceLabel: "Reuters", Link: "https://news.example/mombak"},
	}
	if diff := cmp.Diff(want, got[1].Cards); diff != "" {
		t.Errorf("Mombak cards mismatch (-want +got):\n%s", diff)
	}
}

func TestFeedHandler_FetchFailureIsNotice(t *testing.T) {
	f := newFixture(t)
	f.news.fail["Amini.ai"] = true

	rr := f.do(httptest.NewRequest(http.MethodGet, "/api/feed?group=2024+Cohort", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var got []feedUC.EntityFeed
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Notice, "upstream unavailable")
	require.Len(t, got[0].Cards, 1)
	assert.Equal(t, entity.CardKindPlaceholder, got[0].Cards[0].Kind)
}

func TestFeedHandler_EmptySelection(t *testing.T) {
	f := newFixture(t)
	rr := f.do(httptest.NewRequest(http.MethodGet, "/api/feed?group=2030+Cohort", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestFeedHandler_StoreErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"corrupt state", fmt.Errorf("parse /data/company_updates.json: %w", entity.ErrCorruptState), "stored updates could not be read"},
		{"other failure", fmt.Errorf("dial tcp 10.0.0.5:5432: connection refused"), "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.loadErr = tt.err

			rr := f.do(httptest.NewRequest(http.MethodGet, "/api/feed", nil))
			assert.Equal(t, http.StatusInternalServerError, rr.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["error"])
			assert.NotContains(t, rr.Body.String(), "/data/")
			assert.NotContains(t, rr.Body.String(), "10.0.0.5")
		})
	}
}
