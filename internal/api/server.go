package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/geosight/geosight/internal/analysis"
	"github.com/geosight/geosight/internal/audit"
	"github.com/geosight/geosight/internal/models"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes caps request bodies; analyzed texts are full platform answers
const maxBodyBytes = 1 << 20

// AuditService is what the API needs from the audit service
type AuditService interface {
	RunAudit(ctx context.Context, req models.AuditRequest) (*models.AuditResult, error)
	GetAudit(ctx context.Context, id string) (*models.AuditResult, error)
	DeleteAudit(ctx context.Context, id string) error
	ListAudits(ctx context.Context, brand string, limit int) ([]models.AuditSummary, error)
	RunWatchlist(ctx context.Context) error
	GetMetrics() string
}

// PlatformModes reports whether each platform is queried live or simulated
type PlatformModes interface {
	Modes() map[models.Platform]string
}

// Server exposes audits over HTTP. Watchlist runs started through /trigger live
// on the server context, which Close cancels.
type Server struct {
	audits   AuditService
	modes    PlatformModes
	detector *analysis.Detector
	router   *mux.Router

	ctx    context.Context
	cancel context.CancelFunc

	mu            sync.Mutex
	watchlistDone chan struct{} // nil while no triggered run is active
}

// NewServer creates the HTTP API and registers its routes
func NewServer(audits AuditService, modes PlatformModes) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		audits:   audits,
		modes:    modes,
		detector: analysis.NewDetector(analysis.DefaultContextWindow),
		router:   mux.NewRouter(),
		ctx:      ctx,
		cancel:   cancel,
	}

	s.router.HandleFunc("/health", s.healthCheckHandler).Methods("GET")
	s.router.HandleFunc("/metrics", s.metricsHandler).Methods("GET")
	s.router.HandleFunc("/trigger", s.triggerHandler).Methods("POST")

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/audit/run", s.runAuditHandler).Methods("POST")
	api.HandleFunc("/audit/quick", s.quickAuditHandler).Methods("POST")
	api.HandleFunc("/audit", s.listAuditsHandler).Methods("GET")
	api.HandleFunc("/audit/{id}", s.getAuditHandler).Methods("GET")
	api.HandleFunc("/audit/{id}", s.deleteAuditHandler).Methods("DELETE")
	api.HandleFunc("/analyze", s.analyzeHandler).Methods("POST")

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close cancels a triggered watchlist run and waits for it to return or for ctx to expire
func (s *Server) Close(ctx context.Context) error {
	s.cancel()

	s.mu.Lock()
	done := s.watchlistDone
	s.mu.Unlock()
	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type healthResponse struct {
	Status    string                     `json:"status"`
	Timestamp string                     `json:"timestamp"`
	Platforms map[models.Platform]string `json:"platforms"`
}

func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if s.modes != nil {
		resp.Platforms = s.modes.Modes()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s.audits.GetMetrics()))
}

func (s *Server) triggerHandler(w http.ResponseWriter, r *http.Request) {
	if s.ctx.Err() != nil {
		writeError(w, http.StatusServiceUnavailable, "server is shutting down")
		return
	}

	s.mu.Lock()
	if s.watchlistDone != nil {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "a watchlist audit is already running")
		return
	}
	done := make(chan struct{})
	s.watchlistDone = done
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.watchlistDone = nil
			s.mu.Unlock()
			close(done)
		}()
		if err := s.audits.RunWatchlist(s.ctx); err != nil {
			logrus.Errorf("Manual watchlist trigger failed: %v", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"message": "Watchlist audit triggered"})
}

func (s *Server) runAuditHandler(w http.ResponseWriter, r *http.Request) {
	var req models.AuditRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, ok := s.runAudit(w, r, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// quickAuditResponse is the condensed view returned by quick audits
type quickAuditResponse struct {
	ID                string                   `json:"id"`
	BrandName         string                   `json:"brand_name"`
	VisibilityScore   int                      `json:"visibility_score"`
	VisibilityGrade   string                   `json:"visibility_grade"`
	PlatformMentioned map[models.Platform]bool `json:"platform_mentioned"`
	PlatformsPositive int                      `json:"platforms_positive"`
	TotalActions      int                      `json:"total_actions"`
	CriticalActions   int                      `json:"critical_actions"`
	MockResponses     int                      `json:"mock_responses"`
}

func (s *Server) quickAuditHandler(w http.ResponseWriter, r *http.Request) {
	var req models.AuditRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Mode = models.ModeQuick

	result, ok := s.runAudit(w, r, req)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, quickAuditResponse{
		ID:                result.ID,
		BrandName:         result.BrandName,
		VisibilityScore:   result.VisibilityScore,
		VisibilityGrade:   result.VisibilityGrade,
		PlatformMentioned: result.PlatformMentioned,
		PlatformsPositive: result.PlatformsPositive,
		TotalActions:      result.TotalActions,
		CriticalActions:   result.CriticalActions,
		MockResponses:     result.MockResponses,
	})
}

func (s *Server) runAudit(w http.ResponseWriter, r *http.Request, req models.AuditRequest) (*models.AuditResult, bool) {
	result, err := s.audits.RunAudit(r.Context(), req)
	switch {
	case err == nil:
		return result, true
	case errors.Is(err, audit.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled):
		logrus.Warnf("Audit for %s cancelled by client", req.BrandName)
		writeError(w, http.StatusServiceUnavailable, "audit cancelled")
	default:
		logrus.Errorf("Audit for %s failed: %v", req.BrandName, err)
		writeError(w, http.StatusInternalServerError, "audit failed")
	}
	return nil, false
}

func (s *Server) listAuditsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	summaries, err := s.audits.ListAudits(r.Context(), strings.TrimSpace(query.Get("brand")), limit)
	if err != nil {
		logrus.Errorf("Failed to list audits: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list audits")
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) getAuditHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result, err := s.audits.GetAudit(r.Context(), id)
	if err != nil {
		if errors.Is(err, audit.ErrAuditNotFound) {
			writeError(w, http.StatusNotFound, "audit not found")
			return
		}
		logrus.Errorf("Failed to get audit %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to get audit")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) deleteAuditHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.audits.DeleteAudit(r.Context(), id); err != nil {
		if errors.Is(err, audit.ErrAuditNotFound) {
			writeError(w, http.StatusNotFound, "audit not found")
			return
		}
		logrus.Errorf("Failed to delete audit %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to delete audit")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type analyzeRequest struct {
	Text        string   `json:"text"`
	BrandName   string   `json:"brand_name"`
	Competitors []string `json:"competitors"`
}

type analyzeResponse struct {
	Sentiment            models.SentimentResult     `json:"sentiment"`
	Mentioned            bool                       `json:"brand_mentioned"`
	Contexts             []string                   `json:"mention_contexts"`
	SentimentAroundBrand models.Sentiment           `json:"sentiment_around_brand"`
	Lexicon              models.LexiconMatches      `json:"lexicon"`
	Competitors          []models.CompetitorMention `json:"competitors_mentioned"`
}

func (s *Server) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	mention := s.detector.Detect(req.Text, req.BrandName)
	writeJSON(w, http.StatusOK, analyzeResponse{
		Sentiment:            analysis.Classify(req.Text),
		Mentioned:            mention.Mentioned,
		Contexts:             mention.Contexts,
		SentimentAroundBrand: mention.SentimentAroundBrand,
		Lexicon:              mention.Lexicon,
		Competitors:          s.detector.DetectCompetitors(req.Text, req.Competitors),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
