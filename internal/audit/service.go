package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/geosight/geosight/internal/config"
	"github.com/geosight/geosight/internal/models"
	"github.com/geosight/geosight/internal/notifications"
	"github.com/geosight/geosight/internal/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const auditPrefix = "audits/"

// ErrAuditNotFound is returned when no archived audit has the requested id
var ErrAuditNotFound = errors.New("audit not found")

// Service runs audits on behalf of the API and the scheduler, archives their
// results and raises alerts for critical findings
type Service struct {
	config              *config.Config
	engine              *Engine
	storage             storage.StorageInterface
	notificationService notifications.NotificationInterface
	metrics             *Metrics
	mu                  sync.RWMutex
}

// Metrics holds audit run metrics
type Metrics struct {
	AuditsRun         int            `json:"audits_run"`
	FailedAudits      int            `json:"failed_audits"`
	QueriesRun        int            `json:"queries_run"`
	MockResponses     int            `json:"mock_responses"`
	FallbackResponses int            `json:"fallback_responses"`
	GradeDistribution map[string]int `json:"grade_distribution"`
	ModeBreakdown     map[string]int `json:"mode_breakdown"`
	AlertsSent        int            `json:"alerts_sent"`
	LastRun           time.Time      `json:"last_run"`
	LastRunDuration   string         `json:"last_run_duration"`
	LastWatchlistRun  time.Time      `json:"last_watchlist_run"`
}

// NewService creates a new audit service
func NewService(cfg *config.Config, engine *Engine, store storage.StorageInterface, notificationService notifications.NotificationInterface) *Service {
	return &Service{
		config:              cfg,
		engine:              engine,
		storage:             store,
		notificationService: notificationService,
		metrics: &Metrics{
			GradeDistribution: make(map[string]int),
			ModeBreakdown:     make(map[string]int),
		},
	}
}

// RunAudit runs and archives one audit. Archive and alert failures are logged
// and do not fail the audit.
func (s *Service) RunAudit(ctx context.Context, req models.AuditRequest) (*models.AuditResult, error) {
	start := time.Now()

	result, err := s.engine.Run(ctx, req)
	if err != nil {
		s.recordFailure()
		return nil, err
	}

	if err := s.storeResult(ctx, result); err != nil {
		logrus.Errorf("Failed to archive audit %s: %v", result.ID, err)
	}

	alerts := s.sendCriticalAlerts(ctx, result)
	s.updateMetrics(result, time.Since(start), alerts)

	return result, nil
}

func (s *Service) storeResult(ctx context.Context, result *models.AuditResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal audit: %w", err)
	}
	return s.storage.Store(ctx, auditKey(result.ID), data)
}

func auditKey(id string) string {
	return auditPrefix + id + ".json"
}

// GetAudit returns an archived audit
func (s *Service) GetAudit(ctx context.Context, id string) (*models.AuditResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAuditNotFound, id)
	}

	data, err := s.storage.Retrieve(ctx, auditKey(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAuditNotFound, id)
		}
		return nil, fmt.Errorf("failed to retrieve audit %s: %w", id, err)
	}

	var result models.AuditResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode audit %s: %w", id, err)
	}

	return &result, nil
}

// DeleteAudit removes an archived audit
func (s *Service) DeleteAudit(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrAuditNotFound, id)
	}

	if err := s.storage.Delete(ctx, auditKey(id)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrAuditNotFound, id)
		}
		return fmt.Errorf("failed to delete audit %s: %w", id, err)
	}

	logrus.Infof("Deleted audit %s", id)
	return nil
}

// ListAudits returns summaries of the archived audits, newest first. A
// non-empty brand filters by brand name, case-insensitively.
func (s *Service) ListAudits(ctx context.Context, brand string, limit int) ([]models.AuditSummary, error) {
	names, err := s.storage.List(ctx, auditPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list audits: %w", err)
	}

	summaries := make([]models.AuditSummary, 0, len(names))
	for _, name := range names {
		id := strings.TrimSuffix(path.Base(name), ".json")
		result, err := s.GetAudit(ctx, id)
		if err != nil {
			logrus.Warnf("Skipping unreadable audit %s: %v", name, err)
			continue
		}
		if brand != "" && !strings.EqualFold(result.BrandName, brand) {
			continue
		}
		summaries = append(summaries, result.Summary())
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})

	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}

	return summaries, nil
}

// sendCriticalAlerts raises one alert per critical hallucination and returns how many were sent
func (s *Service) sendCriticalAlerts(ctx context.Context, result *models.AuditResult) int {
	if s.notificationService == nil {
		return 0
	}

	sent := 0
	for _, hallucination := range result.HallucinationAlerts {
		if hallucination.Severity != models.PriorityCritical {
			continue
		}

		alert := &models.Alert{
			ID:        uuid.NewString(),
			Type:      "critical",
			Title:     fmt.Sprintf("Critical hallucination about %s", result.BrandName),
			Message:   fmt.Sprintf("%s claims: %s. Correct information: %s", hallucination.Platform, hallucination.IncorrectClaim, hallucination.CorrectInformation),
			AuditID:   result.ID,
			BrandName: result.BrandName,
			CreatedAt: time.Now().UTC(),
		}

		if err := s.notificationService.SendAlert(ctx, alert); err != nil {
			logrus.Errorf("Failed to send alert for audit %s: %v", result.ID, err)
			continue
		}
		sent++
	}

	return sent
}

// RunWatchlist audits every brand of the configured watchlist and sends a report for each
func (s *Service) RunWatchlist(ctx context.Context) error {
	if s.config.WatchlistFile == "" {
		return fmt.Errorf("no watchlist configured")
	}

	watchlist, err := config.LoadWatchlist(s.config.WatchlistFile)
	if err != nil {
		return err
	}

	start := time.Now()
	logrus.Infof("Starting watchlist run for %d brands", len(watchlist.Brands))

	var failures []string
	for _, req := range watchlist.Brands {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := s.RunAudit(ctx, req)
		if err != nil {
			logrus.Errorf("Watchlist audit for %s failed: %v", req.BrandName, err)
			failures = append(failures, req.BrandName)
			continue
		}

		if s.notificationService != nil {
			if err := s.notificationService.SendReport(ctx, result); err != nil {
				logrus.Errorf("Failed to send report for %s: %v", req.BrandName, err)
			}
		}
	}

	s.mu.Lock()
	s.metrics.LastWatchlistRun = time.Now()
	s.mu.Unlock()

	logrus.Infof("Watchlist run completed in %v", time.Since(start))

	if len(failures) > 0 {
		return fmt.Errorf("watchlist audits failed for: %s", strings.Join(failures, ", "))
	}
	return nil
}

func (s *Service) recordFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.FailedAudits++
}

func (s *Service) updateMetrics(result *models.AuditResult, duration time.Duration, alerts int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.AuditsRun++
	s.metrics.QueriesRun += len(result.Mentions)
	s.metrics.MockResponses += result.MockResponses
	for _, m := range result.Mentions {
		if m.Error != "" {
			s.metrics.FallbackResponses++
		}
	}
	s.metrics.GradeDistribution[result.VisibilityGrade]++
	s.metrics.ModeBreakdown[string(result.Mode)]++
	s.metrics.AlertsSent += alerts
	s.metrics.LastRun = time.Now()
	s.metrics.LastRunDuration = duration.String()
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
