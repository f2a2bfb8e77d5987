package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chris-regnier/wellnessctl/internal/journal"
	"github.com/chris-regnier/wellnessctl/internal/mood"
	"github.com/chris-regnier/wellnessctl/internal/recommend"
	"github.com/chris-regnier/wellnessctl/internal/storage"
	"github.com/chris-regnier/wellnessctl/internal/validation"
	"github.com/go-chi/chi/v5"
)

const (
	dateLayout       = "2006-01-02"
	defaultTrendDays = 30
	maxBodyBytes     = 1 << 20
)

// SentimentRequest is the body of POST /sentiment.
type SentimentRequest struct {
	Text string `json:"text"`
}

// CheckInRequest is the body of POST /checkins.
type CheckInRequest struct {
	Date       string   `json:"date,omitempty"`
	Mood       int      `json:"mood"`
	Energy     int      `json:"energy"`
	Stress     int      `json:"stress"`
	Activities []string `json:"activities,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	SleepHours *float64 `json:"sleep_hours,omitempty"`
}

// JournalRequest is the body of POST /journal.
type JournalRequest struct {
	Title   string   `json:"title,omitempty"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
	Private bool     `json:"private,omitempty"`
}

// cardQuery holds explicit values for stateless recommendations.
type cardQuery struct {
	Mood   int `json:"mood" validate:"gte=1,lte=10"`
	Stress int `json:"stress" validate:"gte=1,lte=5"`
	Energy int `json:"energy" validate:"gte=1,lte=5"`
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return validation.Field("body", "invalid JSON: "+err.Error())
	}
	return nil
}

func userID(r *http.Request) string {
	id, _ := UserFromContext(r.Context())
	return id
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, validation.Field(field, "must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

// dateRange reads the optional from and to query parameters.
func dateRange(r *http.Request) (storage.DateRange, error) {
	var dr storage.DateRange
	q := r.URL.Query()
	if s := q.Get("from"); s != "" {
		t, err := parseDate("from", s)
		if err != nil {
			return dr, err
		}
		dr.Start = &t
	}
	if s := q.Get("to"); s != "" {
		t, err := parseDate("to", s)
		if err != nil {
			return dr, err
		}
		dr.End = &t
	}
	return dr, nil
}

// intParam reads an optional integer query parameter.
func intParam(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, validation.Field(name, "must be an integer")
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (rt *Router) scoreSentiment(w http.ResponseWriter, r *http.Request) {
	var req SentimentRequest
	if err := decode(w, r, &req); err != nil {
		rt.fail(w, r, err)
		return
	}
	res, err := rt.svc.ScoreSentiment(r.Context(), req.Text)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	rt.respondJSON(w, http.StatusOK, res)
}

func (rt *Router) createCheckIn(w http.ResponseWriter, r *http.Request) {
	var req CheckInRequest
	if err := decode(w, r, &req); err != nil {
		rt.fail(w, r, err)
		return
	}
	in := mood.Input{
		UserID:     userID(r),
		Mood:       req.Mood,
		Energy:     req.Energy,
		Stress:     req.Stress,
		Activities: req.Activities,
		Notes:      req.Notes,
		SleepHours: req.SleepHours,
	}
	if req.Date != "" {
		date, err := parseDate("date", req.Date)
		if err != nil {
			rt.fail(w, r, err)
			return
		}
		in.Date = date
	}

	res, err := rt.svc.CheckIn(r.Context(), in)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	rt.onWrite()
	rt.respondJSON(w, http.StatusCreated, res)
}

func (rt *Router) listCheckIns(w http.ResponseWriter, r *http.Request) {
	dr, err := dateRange(r)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	samples, err := rt.svc.Store().LoadSamples(r.Context(), userID(r), dr)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	rt.respondJSON(w, http.StatusOK, samples)
}

// DayResponse is one entry of GET /checkins/days.
type DayResponse struct {
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	AvgMood float64 `json:"avg_mood"`
}

func (rt *Router) listDays(w http.ResponseWriter, r *http.Request) {
	dr, err := dateRange(r)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	days, err := rt.svc.Store().ListDays(r.Context(), userID(r), dr)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	out := make([]DayResponse, len(days))
	for i, d := range days {
		out[i] = DayResponse{Date: d.Date.Format(dateLayout), Count: d.Count, AvgMood: d.AvgMood}
	}
	rt.respondJSON(w, http.StatusOK, out)
}

func (rt *Router) createJournal(w http.ResponseWriter, r *http.Request) {
	var req JournalRequest
	if err := decode(w, r, &req); err != nil {
		rt.fail(w, r, err)
		return
	}
	e, err := rt.svc.SubmitJournal(r.Context(), journal.Input{
		UserID:  userID(r),
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
		Private: req.Private,
	})
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	rt.onWrite()
	rt.respondJSON(w, http.StatusCreated, e)
}

func (rt *Router) listJournal(w http.ResponseWriter, r *http.Request) {
	dr, err := dateRange(r)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	limit, err := intParam(r, "limit", 0)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	if limit < 0 || offset < 0 {
		rt.fail(w, r, validation.Field("limit", "limit and offset must not be negative"))
		return
	}

	entries, err := rt.svc.Store().ListJournalEntries(r.Context(), userID(r), storage.JournalListOptions{
		Range:  dr,
		Tag:    r.URL.Query().Get("tag"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	rt.respondJSON(w, http.StatusOK, entries)
}

// ownedEntry loads an entry and hides entries of other users.
func (rt *Router) ownedEntry(r *http.Request) (journal.Entry, error) {
	id := chi.URLParam(r, "entryID")
	e, err := rt.svc.Store().GetJournalEntry(r.Context(), id)
	if err != nil {
		return journal.Entry{}, err
	}
	if e.UserID != userID(r) {
		return journal.Entry{}, fmt.Errorf("%w: journal entry %s", storage.ErrNotFound, id)
	}
	return e, nil
}

func (rt *Router) getJournal(w http.ResponseWriter, r *http.Request) {
	e, err := rt.ownedEntry(r)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	rt.respondJSON(w, http.StatusOK, e)
}

func (rt *Router) deleteJournal(w http.ResponseWriter, r *http.Request) {
	e, err := rt.ownedEntry(r)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	if err := rt.svc.Store().DeleteJournalEntry(r.Context(), e.ID); err != nil {
		rt.fail(w, r, err)
		return
	}
	rt.onWrite()
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) getTrend(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r, "days", defaultTrendDays)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	window, err := intParam(r, "window", 0)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	rep, err := rt.svc.Trend(r.Context(), userID(r), days, window)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	rt.respondJSON(w, http.StatusOK, rep)
}

// getRecommendations computes cards from explicit mood, stress and energy
// query values when mood is given, otherwise from the user's latest check-in.
func (rt *Router) getRecommendations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("mood") == "" {
		recs, err := rt.svc.Recommendations(r.Context(), userID(r))
		if err != nil {
			rt.fail(w, r, err)
			return
		}
		rt.respondJSON(w, http.StatusOK, recs)
		return
	}

	var cq cardQuery
	var err error
	if cq.Mood, err = intParam(r, "mood", 0); err != nil {
		rt.fail(w, r, err)
		return
	}
	if cq.Stress, err = intParam(r, "stress", 0); err != nil {
		rt.fail(w, r, err)
		return
	}
	if cq.Energy, err = intParam(r, "energy", 0); err != nil {
		rt.fail(w, r, err)
		return
	}
	if err := validation.Struct(cq); err != nil {
		rt.fail(w, r, err)
		return
	}
	acts, err := mood.NewActivitySet(splitList(q.Get("activities"))...)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	rt.respondJSON(w, http.StatusOK, recommend.Cards(cq.Mood, cq.Stress, cq.Energy, acts))
}

// CompletionResponse is returned by the completion endpoints.
type CompletionResponse struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
}

func (rt *Router) completeRecommendation(done bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recID := chi.URLParam(r, "recID")
		if err := rt.svc.CompleteRecommendation(r.Context(), userID(r), recID, done); err != nil {
			rt.fail(w, r, err)
			return
		}
		rt.onWrite()
		rt.respondJSON(w, http.StatusOK, CompletionResponse{ID: recID, Completed: done})
	}
}

func (rt *Router) getDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := rt.svc.Dashboard(r.Context(), userID(r))
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	rt.respondJSON(w, http.StatusOK, d)
}
