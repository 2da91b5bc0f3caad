package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investa/finserve/internal/config"
	"github.com/investa/finserve/internal/contact"
	"github.com/investa/finserve/internal/domain"
	"github.com/investa/finserve/internal/navdata"
	"github.com/investa/finserve/internal/server"
	"github.com/investa/finserve/internal/tracker"
)

// mfapi serves a two-year history for every scheme except 404404.
type mfapi struct {
	hits atomic.Int32
}

func (m *mfapi) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.hits.Add(1)
	code := strings.TrimPrefix(r.URL.Path, "/mf/")
	if code == "404404" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{
  "meta": {"fund_house": "Test AMC", "scheme_code": %s, "scheme_name": "Scheme %s"},
  "data": [
    {"date": "14-06-2024", "nav": "110.00000"},
    {"date": "13-06-2024", "nav": "109.50000"},
    {"date": "14-06-2023", "nav": "100.00000"},
    {"date": "14-06-2022", "nav": "90.00000"}
  ],
  "status": "SUCCESS"
}`, code, code)
}

type stack struct {
	feed    *mfapi
	tracker *tracker.Tracker
	api     *httptest.Server
}

func newStack(t *testing.T, funds []domain.Fund) *stack {
	t.Helper()
	feed := &mfapi{}
	upstream := httptest.NewServer(feed)
	t.Cleanup(upstream.Close)

	client := navdata.NewClient(
		navdata.WithBaseURL(upstream.URL+"/mf"),
		navdata.WithTimeout(5*time.Second),
	)
	source := navdata.NewCachedSource(client, navdata.NewMemoryCache(), time.Hour, nil)
	tr := tracker.New(source, tracker.WithFunds(funds))

	cfg := config.NewDefaultConfig()
	srv := server.NewServer(cfg, server.Deps{
		Tracker: tr,
		Contact: contact.NewService("leads@investa.example", contact.LogSender{}, nil),
	})
	api := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		api.Close()
		_ = srv.Shutdown(context.Background())
	})

	return &stack{feed: feed, tracker: tr, api: api}
}

func (s *stack) getJSON(t *testing.T, path string, out any) int {
	t.Helper()
	resp, err := http.Get(s.api.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func (s *stack) postJSON(t *testing.T, path, body string, out any) int {
	t.Helper()
	resp, err := http.Post(s.api.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

type fundList struct {
	Title  string `json:"title"`
	Window string `json:"window"`
	Funds  []struct {
		Code       int                 `json:"code"`
		CurrentNAV *float64            `json:"current_nav"`
		Return     *float64            `json:"return"`
		Returns    map[string]*float64 `json:"returns"`
		Loading    bool                `json:"loading"`
		Error      bool                `json:"error"`
	} `json:"funds"`
}

func TestFundTrackingOverLiveFeed(t *testing.T) {
	s := newStack(t, tracker.Funds(tracker.ListPopular))

	var before fundList
	require.Equal(t, http.StatusOK, s.getJSON(t, "/api/funds?list=popular", &before))
	require.NotEmpty(t, before.Funds)
	for _, f := range before.Funds {
		assert.True(t, f.Loading)
		assert.Nil(t, f.CurrentNAV)
	}

	require.NoError(t, s.tracker.Refresh(context.Background()))
	fetched := s.feed.hits.Load()
	assert.EqualValues(t, len(before.Funds), fetched)

	var after fundList
	require.Equal(t, http.StatusOK, s.getJSON(t, "/api/funds?list=popular&window=1Y", &after))
	assert.Equal(t, "Popular", after.Title)
	assert.Equal(t, "1Y", after.Window)
	for _, f := range after.Funds {
		assert.False(t, f.Loading)
		assert.False(t, f.Error)
		require.NotNil(t, f.CurrentNAV)
		assert.InDelta(t, 110.0, *f.CurrentNAV, 1e-9)
		require.NotNil(t, f.Return)
		assert.InDelta(t, 10.0, *f.Return, 1e-9)
		require.NotNil(t, f.Returns["1Y"])
		assert.Nil(t, f.Returns["3Y"])
	}

	// Second pass is answered from the cache.
	require.NoError(t, s.tracker.Refresh(context.Background()))
	assert.Equal(t, fetched, s.feed.hits.Load())
}

func TestFundRefreshFailureFlagsError(t *testing.T) {
	s := newStack(t, []domain.Fund{
		{Code: 122639, Name: "Parag Parikh Flexi Cap", Category: "Flexi Cap Fund"},
		{Code: 404404, Name: "Wound up scheme", Category: "Other"},
	})

	err := s.tracker.Refresh(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, navdata.ErrNotFound)

	var good, bad map[string]any
	require.Equal(t, http.StatusOK, s.getJSON(t, "/api/funds/122639?window=1Y", &good))
	assert.Equal(t, false, good["error"])
	assert.InDelta(t, 10.0, good["return"].(float64), 1e-9)

	require.Equal(t, http.StatusOK, s.getJSON(t, "/api/funds/404404", &bad))
	assert.Equal(t, true, bad["error"])
	assert.Nil(t, bad["current_nav"])

	var missing map[string]any
	assert.Equal(t, http.StatusNotFound, s.getJSON(t, "/api/funds/1", &missing))
}

func TestCalculatorAndContactOverHTTP(t *testing.T) {
	s := newStack(t, nil)

	var calc struct {
		Kind      string  `json:"kind"`
		Total     float64 `json:"total"`
		Breakdown []struct {
			Label string  `json:"label"`
			Value float64 `json:"value"`
		} `json:"breakdown"`
	}
	status := s.postJSON(t, "/api/calculators/lumpsum",
		`{"principal": 100000, "annual_rate_percent": 12, "years": 10}`, &calc)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "lumpsum", calc.Kind)
	assert.InDelta(t, 310584.82, calc.Total, 0.01)
	require.Len(t, calc.Breakdown, 2)
	assert.InDelta(t, calc.Total, calc.Breakdown[0].Value+calc.Breakdown[1].Value, 1e-6)

	var sent map[string]any
	status = s.postJSON(t, "/api/contact",
		`{"name": "Asha", "email": "asha@example.com", "enquiryType": "gold", "query": "Is SGB open?"}`, &sent)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Email sent successfully", sent["message"])
	assert.NotEmpty(t, sent["reference"])

	var rejected map[string]any
	status = s.postJSON(t, "/api/contact", `{"name": "Asha", "email": "not-an-email"}`, &rejected)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, rejected["fields"], "email")
}
