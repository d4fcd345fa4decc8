// Package testutil provides a scriptable fake of the EdgeOS API for
// tests: canned fixtures, per-application failure injection, and call
// counters for asserting how many requests a workflow dispatched.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"edgeos-client/internal/domain"
)

// ReviewCall records one review submission the fake server received.
type ReviewCall struct {
	ApplicationID int64
	Decision      domain.ReviewDecision
}

type failure struct {
	status int
	body   string
}

// Server is an in-process EdgeOS API double.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	applications map[int64]domain.Application
	summaries    map[int64]domain.ReviewSummary
	strategies   map[int64]domain.ApprovalStrategy
	schemas      map[int64]domain.ApplicationSchema
	stats        map[int64]domain.DashboardStats
	reviewFail   map[int64]failure
	reviewCalls  []ReviewCall
	// resourceBody is returned verbatim for every passthrough resource
	// route (templates, payments, humans, tenants, coupons).
	resourceBody string
	lastRequest  *http.Request
}

func NewServer() *Server {
	s := &Server{
		applications: make(map[int64]domain.Application),
		summaries:    make(map[int64]domain.ReviewSummary),
		strategies:   make(map[int64]domain.ApprovalStrategy),
		schemas:      make(map[int64]domain.ApplicationSchema),
		stats:        make(map[int64]domain.DashboardStats),
		reviewFail:   make(map[int64]failure),
		resourceBody: `{"ok":true}`,
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/applications", s.handleListApplications).Methods(http.MethodGet)
	api.HandleFunc("/applications/{id}", s.handleGetApplication).Methods(http.MethodGet)
	api.HandleFunc("/applications/{id}/reviews", s.handleSubmitReview).Methods(http.MethodPost)
	api.HandleFunc("/applications/{id}/review-summary", s.handleReviewSummary).Methods(http.MethodGet)
	api.HandleFunc("/popups/{id}/approval-strategy", s.handleStrategy).Methods(http.MethodGet)
	api.HandleFunc("/popups/{id}/application-schema", s.handleSchema).Methods(http.MethodGet)
	api.HandleFunc("/popups/{id}/dashboard-stats", s.handleStats).Methods(http.MethodGet)
	for _, resource := range []string{"templates", "payments", "humans", "tenants", "coupons"} {
		api.PathPrefix("/" + resource).HandlerFunc(s.handleResource)
	}

	s.Server = httptest.NewServer(r)
	return s
}

// AddApplication seeds an application fixture.
func (s *Server) AddApplication(app domain.Application) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applications[app.ID] = app
}

// SetSummary seeds a review summary fixture.
func (s *Server) SetSummary(summary domain.ReviewSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries[summary.ApplicationID] = summary
}

// SetStrategy seeds an approval strategy fixture.
func (s *Server) SetStrategy(strategy domain.ApprovalStrategy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strategies[strategy.PopupID] = strategy
}

// SetSchema seeds an application schema fixture.
func (s *Server) SetSchema(schema domain.ApplicationSchema) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schemas[schema.PopupID] = schema
}

// FailReview makes review submissions for the application fail with the
// given status and raw error body.
func (s *Server) FailReview(applicationID int64, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviewFail[applicationID] = failure{status: status, body: body}
}

// ReviewCalls returns every review submission received so far.
func (s *Server) ReviewCalls() []ReviewCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ReviewCall, len(s.reviewCalls))
	copy(out, s.reviewCalls)
	return out
}

// SetResourceBody sets the canned body returned by passthrough routes.
func (s *Server) SetResourceBody(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resourceBody = body
}

// LastRequest returns the last request a passthrough route received.
func (s *Server) LastRequest() *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRequest
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	popupID, _ := strconv.ParseInt(r.URL.Query().Get("popup_id"), 10, 64)
	statusFilter := r.URL.Query().Get("status_filter")

	page := domain.ApplicationPage{Items: []domain.Application{}}
	for _, app := range s.applications {
		if popupID != 0 && app.PopupID != popupID {
			continue
		}
		if statusFilter != "" && string(app.Status) != statusFilter {
			continue
		}
		page.Items = append(page.Items, app)
	}
	page.Total = len(page.Items)
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.applications[pathID(r)]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Application not found")
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := pathID(r)
	var body struct {
		Decision domain.ReviewDecision `json:"decision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}
	s.reviewCalls = append(s.reviewCalls, ReviewCall{ApplicationID: id, Decision: body.Decision})

	if f, ok := s.reviewFail[id]; ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		w.Write([]byte(f.body))
		return
	}
	app, ok := s.applications[id]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Application not found")
		return
	}
	app.Status = domain.StatusForDecision(body.Decision)
	s.applications[id] = app
	writeJSON(w, http.StatusOK, domain.Review{ApplicationID: id, Decision: body.Decision})
}

func (s *Server) handleReviewSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary, ok := s.summaries[pathID(r)]
	if !ok {
		writeJSON(w, http.StatusOK, domain.ReviewSummary{ApplicationID: pathID(r)})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleStrategy(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	strategy, ok := s.strategies[pathID(r)]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Approval strategy not found")
		return
	}
	writeJSON(w, http.StatusOK, strategy)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	schema, ok := s.schemas[pathID(r)]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Application schema not found")
		return
	}
	writeJSON(w, http.StatusOK, schema)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.stats[pathID(r)])
}

func (s *Server) handleResource(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRequest = r
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(s.resourceBody))
}
