package audit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/geosight/geosight/internal/analysis"
	"github.com/geosight/geosight/internal/insights"
	"github.com/geosight/geosight/internal/models"
	"github.com/geosight/geosight/internal/platforms"
	"github.com/geosight/geosight/internal/scoring"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidRequest is returned for audit requests that cannot be run
var ErrInvalidRequest = errors.New("invalid audit request")

const (
	defaultIndustry     = "software"
	defaultUseCase      = "business operations"
	defaultQueryTimeout = 30 * time.Second
	defaultConcurrency  = 8
)

// EngineOptions tunes the query plan of an engine. Zero values select defaults.
type EngineOptions struct {
	// Platforms asked by comprehensive audits, all platforms by default
	Platforms []models.Platform
	// Templates is how many catalog templates comprehensive audits ask (1-15)
	Templates    int
	QueryTimeout time.Duration
	// Concurrency caps in-flight platform queries
	Concurrency   int
	ContextWindow int
}

// Engine runs audits: it fans the query plan out to the platforms, analyzes
// every answer, scores the aggregate and derives the action items.
type Engine struct {
	fetcher     platforms.Fetcher
	detector    *analysis.Detector
	generator   *insights.Generator
	platforms   []models.Platform
	templates   int
	timeout     time.Duration
	concurrency int
	now         func() time.Time
	newID       func() string
}

// NewEngine creates an audit engine
func NewEngine(fetcher platforms.Fetcher, generator *insights.Generator, opts EngineOptions) *Engine {
	if generator == nil {
		generator = insights.NewGenerator(nil)
	}

	engine := &Engine{
		fetcher:     fetcher,
		detector:    analysis.NewDetector(opts.ContextWindow),
		generator:   generator,
		platforms:   opts.Platforms,
		templates:   opts.Templates,
		timeout:     opts.QueryTimeout,
		concurrency: opts.Concurrency,
		now:         time.Now,
		newID:       uuid.NewString,
	}

	if len(engine.platforms) == 0 {
		engine.platforms = models.AllPlatforms
	}
	if engine.templates <= 0 || engine.templates > len(QueryTemplates) {
		engine.templates = DefaultTemplateCount
	}
	if engine.timeout <= 0 {
		engine.timeout = defaultQueryTimeout
	}
	if engine.concurrency <= 0 {
		engine.concurrency = defaultConcurrency
	}

	return engine
}

// WithClock overrides the clock used for timestamps and the {year} placeholder.
// The insight generator shares it for alert timestamps.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	e.generator.WithClock(now)
	return e
}

// PlanSize returns how many answers an audit in the given mode collects
func (e *Engine) PlanSize(mode models.AuditMode) int {
	if mode == models.ModeQuick {
		return len(models.PrimaryPlatforms) * len(quickTemplates)
	}
	return len(e.platforms) * e.templates
}

// Run executes one audit. Platform failures are replaced by fallback answers;
// the run only fails on an invalid request or when ctx is cancelled.
func (e *Engine) Run(ctx context.Context, req models.AuditRequest) (*models.AuditResult, error) {
	req, err := normalizeRequest(req)
	if err != nil {
		return nil, err
	}

	result := &models.AuditResult{
		ID:        e.newID(),
		BrandName: req.BrandName,
		Industry:  req.Industry,
		URL:       req.URL,
		Mode:      req.Mode,
		CreatedAt: e.now().UTC(),
	}

	log := logrus.WithFields(logrus.Fields{
		"audit_id": result.ID,
		"brand":    req.BrandName,
		"mode":     req.Mode,
	})

	plan := e.plan(req, result.CreatedAt.Year())
	log.Infof("Starting audit with %d platform queries", len(plan))

	responses, err := e.collect(ctx, plan, log)
	if err != nil {
		log.Errorf("Audit aborted: %v", err)
		return nil, err
	}

	competitors := req.Competitors
	if len(competitors) == 0 {
		competitors = insights.CompetitorsFor(req.Industry)
	}

	result.Mentions = make([]models.MentionResult, len(responses))
	for i, resp := range responses {
		result.Mentions[i] = e.analyze(resp, req.BrandName, competitors)
	}

	e.aggregate(result, req)

	completed := e.now().UTC()
	result.CompletedAt = &completed

	log.Infof("Audit completed: score %d (%s), %d/%d answers mention the brand, %d simulated",
		result.VisibilityScore, result.VisibilityGrade, countMentioned(result.Mentions), len(result.Mentions), result.MockResponses)

	return result, nil
}

func normalizeRequest(req models.AuditRequest) (models.AuditRequest, error) {
	req.BrandName = strings.TrimSpace(req.BrandName)
	if req.BrandName == "" {
		return req, fmt.Errorf("%w: brand_name is required", ErrInvalidRequest)
	}

	req.Industry = strings.TrimSpace(req.Industry)
	if req.Industry == "" {
		req.Industry = defaultIndustry
	}

	req.UseCase = strings.TrimSpace(req.UseCase)
	if req.UseCase == "" {
		req.UseCase = defaultUseCase
	}

	switch req.Mode {
	case "":
		req.Mode = models.ModeComprehensive
	case models.ModeComprehensive, models.ModeQuick:
	default:
		return req, fmt.Errorf("%w: unknown mode %q", ErrInvalidRequest, req.Mode)
	}

	var competitors []string
	for _, competitor := range req.Competitors {
		if competitor = strings.TrimSpace(competitor); competitor != "" {
			competitors = append(competitors, competitor)
		}
	}
	req.Competitors = competitors

	return req, nil
}

// plan lists the queries of an audit, platform-major
func (e *Engine) plan(req models.AuditRequest, year int) []models.PlatformQuery {
	targets, templates := e.platforms, QueryTemplates[:e.templates]
	if req.Mode == models.ModeQuick {
		targets, templates = models.PrimaryPlatforms, quickTemplates
	}

	plan := make([]models.PlatformQuery, 0, len(targets)*len(templates))
	for _, platform := range targets {
		for _, tmpl := range templates {
			plan = append(plan, models.PlatformQuery{
				Platform:    platform,
				Category:    tmpl.Category,
				Text:        tmpl.render(req, year),
				BrandName:   req.BrandName,
				Industry:    req.Industry,
				Competitors: req.Competitors,
			})
		}
	}
	return plan
}

// collect fetches every query of the plan concurrently. Results keep plan order.
func (e *Engine) collect(ctx context.Context, plan []models.PlatformQuery, log *logrus.Entry) ([]models.PlatformResponse, error) {
	responses := make([]models.PlatformResponse, len(plan))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, q := range plan {
		i, q := i, q
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			responses[i] = e.fetch(gctx, q, log)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("audit cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("audit cancelled: %w", err)
	}

	return responses, nil
}

type fetchResult struct {
	resp models.PlatformResponse
	err  error
}

// fetch asks one query under its own timeout and falls back to a canned answer on
// failure. The timeout holds even when the fetcher ignores its context: a late
// answer is abandoned.
func (e *Engine) fetch(ctx context.Context, q models.PlatformQuery, log *logrus.Entry) models.PlatformResponse {
	qctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	done := make(chan fetchResult, 1)
	go func() {
		resp, err := e.fetcher.Fetch(qctx, q)
		done <- fetchResult{resp: resp, err: err}
	}()

	var resp models.PlatformResponse
	var err error
	select {
	case result := <-done:
		resp, err = result.resp, result.err
	case <-qctx.Done():
		err = qctx.Err()
	}

	if err != nil {
		if ctx.Err() == nil {
			log.Warnf("Query to %s failed, using fallback answer: %v", q.Platform, err)
		}
		return platforms.FallbackResponse(q, err)
	}

	if resp.Platform == "" {
		resp.Platform = q.Platform
	}
	if resp.Category == "" {
		resp.Category = q.Category
	}
	if resp.Query == "" {
		resp.Query = q.Text
	}

	log.Debugf("%s answered %q (%d chars, mock=%t)", q.Platform, q.Text, len(resp.Response), resp.IsMock)
	return resp
}

// analyze turns one answer into a mention result
func (e *Engine) analyze(resp models.PlatformResponse, brand string, competitors []string) models.MentionResult {
	mention := e.detector.Detect(resp.Response, brand)
	overall := analysis.Classify(resp.Response)

	mention.Platform = resp.Platform
	mention.QueryCategory = resp.Category
	mention.Query = resp.Query
	mention.ResponsePreview = preview(resp.Response)
	mention.Sentiment = overall.Label
	mention.SentimentScore = overall.Polarity
	mention.Competitors = e.detector.DetectCompetitors(resp.Response, competitors)
	mention.Citations = extractCitations(resp.Citations, resp.Response)
	mention.IsMock = resp.IsMock
	mention.Error = resp.Error

	if mention.Mentioned {
		mention.RankingPosition = rankingPosition(resp.Response, brand)
		mention.IsRecommended = isRecommended(mention.Contexts, mention.RankingPosition)
	}

	mention.CitationQuality = scoring.CitationQuality(mention)
	return mention
}

// aggregate fills the scores and action items of result from its mentions
func (e *Engine) aggregate(result *models.AuditResult, req models.AuditRequest) {
	mentions := result.Mentions

	result.OverallSentiment = majoritySentiment(mentions)
	result.PlatformMentioned = make(map[models.Platform]bool)
	positive := make(map[models.Platform]bool)
	citations := make(map[string]bool)

	var mentioned, qualitySum int
	var polaritySum float64

	for _, m := range mentions {
		if _, ok := result.PlatformMentioned[m.Platform]; !ok {
			result.PlatformMentioned[m.Platform] = false
		}
		if m.IsMock {
			result.MockResponses++
		}
		for _, citation := range m.Citations {
			citations[citation] = true
		}
		if !m.Mentioned {
			continue
		}
		mentioned++
		polaritySum += m.SentimentScore
		qualitySum += m.CitationQuality
		result.PlatformMentioned[m.Platform] = true
		if m.SentimentAroundBrand == models.SentimentPositive {
			positive[m.Platform] = true
		}
	}

	result.PlatformsPositive = len(positive)
	if mentioned > 0 {
		result.SentimentScore = math.Round(polaritySum/float64(mentioned)*1000) / 1000
		result.CitationQualityScore = int(math.Round(float64(qualitySum) / float64(mentioned)))
	}

	strategy := scoring.ForMode(result.Mode)
	result.ScoringStrategy = strategy.Name()
	result.VisibilityScore = strategy.Score(scoring.Input{
		Mentions:         mentions,
		OverallSentiment: result.OverallSentiment,
		CitationCount:    len(citations),
	})
	result.VisibilityGrade = scoring.Grade(result.VisibilityScore)

	ictx := insights.Context{
		BrandName:         req.BrandName,
		Industry:          req.Industry,
		URL:               req.URL,
		Competitors:       req.Competitors,
		OverallSentiment:  result.OverallSentiment,
		PlatformMentioned: result.PlatformMentioned,
	}

	result.CitationGaps = e.generator.CitationGaps(ictx)
	result.HallucinationAlerts = e.generator.HallucinationAlerts(ictx)
	result.CompetitorInsights = e.generator.CompetitorInsights(ictx)
	result.ContentRecommendations = insights.ContentRecommendations(ictx)
	result.SchemaRecommendations = insights.SchemaRecommendations(ictx)

	result.TotalActions, result.CriticalActions = insights.ActionCounts(
		result.CitationGaps,
		result.HallucinationAlerts,
		result.ContentRecommendations,
		result.SchemaRecommendations,
	)
	result.CompletedActions = 0
}

// majoritySentiment votes over the per-answer labels. Neutral answers do not
// vote and a tie is neutral.
func majoritySentiment(mentions []models.MentionResult) models.Sentiment {
	var positive, negative int
	for _, m := range mentions {
		switch m.Sentiment {
		case models.SentimentPositive:
			positive++
		case models.SentimentNegative:
			negative++
		}
	}

	switch {
	case positive > negative:
		return models.SentimentPositive
	case negative > positive:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func countMentioned(mentions []models.MentionResult) int {
	count := 0
	for _, m := range mentions {
		if m.Mentioned {
			count++
		}
	}
	return count
}
