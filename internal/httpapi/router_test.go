package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chris-regnier/wellnessctl/internal/httpapi"
	"github.com/chris-regnier/wellnessctl/internal/journal"
	"github.com/chris-regnier/wellnessctl/internal/mood"
	"github.com/chris-regnier/wellnessctl/internal/recommend"
	"github.com/chris-regnier/wellnessctl/internal/sentiment"
	"github.com/chris-regnier/wellnessctl/internal/session"
	"github.com/chris-regnier/wellnessctl/internal/storage/markdown"
	"github.com/chris-regnier/wellnessctl/internal/wellness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiError struct {
	Error   bool              `json:"error"`
	Message string            `json:"message"`
	Code    int               `json:"code"`
	Fields  map[string]string `json:"fields"`
}

type testAPI struct {
	t       *testing.T
	handler http.Handler
	writes  int
}

func newAPI(t *testing.T, fallback session.User) *testAPI {
	t.Helper()
	store, err := markdown.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	api := &testAPI{t: t}
	svc := wellness.New(store, nil, wellness.Options{})
	rt := httpapi.NewRouter(svc, session.NewLocal("", fallback), nil,
		httpapi.WithAllowedOrigins([]string{"http://localhost:3000"}),
		httpapi.WithWriteHook(func() { api.writes++ }),
	)
	api.handler = rt.Setup()
	return api
}

func (a *testAPI) do(method, path, user string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(httpapi.UserHeader, user)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	api := newAPI(t, session.User{})
	rec := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestScoreSentiment(t *testing.T) {
	api := newAPI(t, session.User{})

	rec := api.do(http.MethodPost, "/api/v1/sentiment", "", httpapi.SentimentRequest{Text: "I feel happy and calm"})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeJSON[sentiment.Result](t, rec)
	assert.Equal(t, sentiment.Positive, res.Label)
	assert.Greater(t, res.Score, 0.0)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sentiment", bytes.NewBufferString(`{"text": 3}`))
	bad := httptest.NewRecorder()
	api.handler.ServeHTTP(bad, req)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestCheckInLifecycle(t *testing.T) {
	api := newAPI(t, session.User{ID: "sam"})

	rec := api.do(http.MethodPost, "/api/v1/checkins/", "", httpapi.CheckInRequest{
		Mood: 3, Energy: 2, Stress: 4, Activities: []string{"work"}, Notes: "long day",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decodeJSON[wellness.CheckInResult](t, rec)
	assert.Equal(t, "sam", res.Sample.UserID)
	assert.Equal(t, 3, res.Sample.Mood)
	require.Len(t, res.Recommendations, recommend.MaxResults)
	assert.Equal(t, "low-mood-1", res.Recommendations[0].ID)
	assert.Equal(t, 1, api.writes)

	rec = api.do(http.MethodGet, "/api/v1/checkins/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	samples := decodeJSON[[]mood.Sample](t, rec)
	require.Len(t, samples, 1)
	assert.Equal(t, res.Sample.ID, samples[0].ID)

	rec = api.do(http.MethodGet, "/api/v1/checkins/", "other", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeJSON[[]mood.Sample](t, rec))

	rec = api.do(http.MethodGet, "/api/v1/checkins/days", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	days := decodeJSON[[]httpapi.DayResponse](t, rec)
	require.Len(t, days, 1)
	assert.Equal(t, time.Now().Format("2006-01-02"), days[0].Date)
	assert.Equal(t, 3.0, days[0].AvgMood)
}

func TestCheckInValidation(t *testing.T) {
	api := newAPI(t, session.User{ID: "sam"})

	rec := api.do(http.MethodPost, "/api/v1/checkins/", "", httpapi.CheckInRequest{Mood: 0, Energy: 6, Stress: 3})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeJSON[apiError](t, rec)
	assert.True(t, body.Error)
	assert.Contains(t, body.Fields, "mood")
	assert.Contains(t, body.Fields, "energy")

	rec = api.do(http.MethodPost, "/api/v1/checkins/", "", httpapi.CheckInRequest{Mood: 5, Energy: 3, Stress: 3, Date: "10/03/2026"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/checkins/?from=yesterday", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, api.writes)
}

func TestNoUser(t *testing.T) {
	api := newAPI(t, session.User{})
	rec := api.do(http.MethodGet, "/api/v1/trend", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/trend", "jo", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRejectsPathLikeUserHeader(t *testing.T) {
	api := newAPI(t, session.User{})
	for _, user := range []string{".", "..", "../other", "a/b", `a\b`} {
		rec := api.do(http.MethodPost, "/api/v1/recommendations/low-mood-1/complete", user, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, user)
		body := decodeJSON[apiError](t, rec)
		assert.True(t, body.Error)
	}
	assert.Zero(t, api.writes)
}

func TestJournalLifecycle(t *testing.T) {
	api := newAPI(t, session.User{ID: "sam"})

	rec := api.do(http.MethodPost, "/api/v1/journal/", "", httpapi.JournalRequest{
		Title: "Evening", Content: "A wonderful calm evening", Tags: []string{"Gratitude"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	e := decodeJSON[journal.Entry](t, rec)
	assert.Equal(t, sentiment.Positive, e.Sentiment.Label)
	assert.Equal(t, []string{"gratitude"}, e.Tags)

	rec = api.do(http.MethodPost, "/api/v1/journal/", "", httpapi.JournalRequest{Content: "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/journal/?tag=gratitude&limit=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeJSON[[]journal.Entry](t, rec), 1)

	rec = api.do(http.MethodGet, "/api/v1/journal/?tag=work", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/v1/journal/?limit=-1", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/journal/"+e.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Evening", decodeJSON[journal.Entry](t, rec).Title)

	// Another user cannot see or delete the entry.
	rec = api.do(http.MethodGet, "/api/v1/journal/"+e.ID, "intruder", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = api.do(http.MethodDelete, "/api/v1/journal/"+e.ID, "intruder", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodDelete, "/api/v1/journal/"+e.ID, "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = api.do(http.MethodGet, "/api/v1/journal/"+e.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 2, api.writes)
}

func TestTrend(t *testing.T) {
	api := newAPI(t, session.User{ID: "sam"})
	today := time.Now()
	for i, m := range []int{4, 6, 8} {
		rec := api.do(http.MethodPost, "/api/v1/checkins/", "", httpapi.CheckInRequest{
			Date: today.AddDate(0, 0, i-2).Format("2006-01-02"), Mood: m, Energy: 3, Stress: 2,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := api.do(http.MethodGet, "/api/v1/trend?days=7&window=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rep := decodeJSON[wellness.Report](t, rec)
	assert.Equal(t, 7, rep.Days)
	assert.Equal(t, 3, rep.Summary.Count)
	assert.InDelta(t, 6.0, rep.Summary.CurrentAvg, 1e-9)
	assert.InDelta(t, 5.0, rep.Summary.PreviousAvg, 1e-9)
	assert.Len(t, rep.Points, 3)

	rec = api.do(http.MethodGet, "/api/v1/trend?days=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = api.do(http.MethodGet, "/api/v1/trend?days=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendations(t *testing.T) {
	api := newAPI(t, session.User{ID: "sam"})

	rec := api.do(http.MethodGet, "/api/v1/recommendations/?mood=8&stress=5&energy=4&activities=social,exercise", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	recs := decodeJSON[[]recommend.Recommendation](t, rec)
	require.Len(t, recs, 3)
	assert.Equal(t, "high-stress-1", recs[0].ID)

	rec = api.do(http.MethodGet, "/api/v1/recommendations/?mood=11&stress=3&energy=3", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = api.do(http.MethodGet, "/api/v1/recommendations/?mood=5&stress=3&energy=3&activities=napping", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/recommendations/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/v1/checkins/", "", httpapi.CheckInRequest{Mood: 2, Energy: 3, Stress: 2})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(http.MethodPost, "/api/v1/recommendations/low-mood-2/complete", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, httpapi.CompletionResponse{ID: "low-mood-2", Completed: true}, decodeJSON[httpapi.CompletionResponse](t, rec))

	rec = api.do(http.MethodGet, "/api/v1/recommendations/", "", nil)
	recs = decodeJSON[[]recommend.Recommendation](t, rec)
	require.Len(t, recs, 3)
	assert.False(t, recs[0].Completed)
	assert.True(t, recs[1].Completed)

	rec = api.do(http.MethodDelete, "/api/v1/recommendations/low-mood-2/complete", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(http.MethodGet, "/api/v1/recommendations/", "", nil)
	assert.Zero(t, recommend.CompletedCount(decodeJSON[[]recommend.Recommendation](t, rec)))

	rec = api.do(http.MethodPost, "/api/v1/recommendations/bogus/complete", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboard(t *testing.T) {
	api := newAPI(t, session.User{ID: "sam"})
	rec := api.do(http.MethodPost, "/api/v1/checkins/", "", httpapi.CheckInRequest{Mood: 7, Energy: 4, Stress: 2, Activities: []string{"social"}})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/dashboard", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	d := decodeJSON[wellness.Dashboard](t, rec)
	assert.True(t, d.CheckedInToday)
	assert.Equal(t, 1, d.Streak)
	assert.Equal(t, 1, d.TotalCheckIns)
	require.NotNil(t, d.Latest)
	assert.Equal(t, 7, d.Latest.Mood)
}

func TestCORSPreflight(t *testing.T) {
	api := newAPI(t, session.User{ID: "sam"})
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/trend", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
