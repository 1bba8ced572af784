package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/geosight/geosight/internal/config"
	"github.com/geosight/geosight/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// Service handles sending notifications via various channels
type Service struct {
	config *config.Config
	client *resty.Client
	sender mailSender
}

var _ NotificationInterface = (*Service)(nil)

// TeamsMessage represents a Microsoft Teams message
type TeamsMessage struct {
	Type       string         `json:"@type"`
	Context    string         `json:"@context"`
	ThemeColor string         `json:"themeColor,omitempty"`
	Title      string         `json:"title"`
	Text       string         `json:"text"`
	Sections   []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle    string      `json:"activityTitle,omitempty"`
	ActivitySubtitle string      `json:"activitySubtitle,omitempty"`
	ActivityText     string      `json:"activityText,omitempty"`
	Facts            []TeamsFact `json:"facts,omitempty"`
	Markdown         bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
		sender: smtpSender{cfg: cfg},
	}
}

// SendReport sends an audit summary via the configured channels
func (s *Service) SendReport(ctx context.Context, result *models.AuditResult) error {
	subject := fmt.Sprintf("GEO Visibility Report - %s (%d/100, %s)",
		result.BrandName, result.VisibilityScore, result.VisibilityGrade)

	return s.dispatch(ctx, "report", s.buildReportCard(result), func() (string, string, string, error) {
		html, err := buildReportHTML(result)
		return subject, buildReportText(result), html, err
	})
}

// SendAlert sends an urgent alert via the configured channels
func (s *Service) SendAlert(ctx context.Context, alert *models.Alert) error {
	card := &TeamsMessage{
		Type:       "MessageCard",
		Context:    "https://schema.org/extensions",
		ThemeColor: "D13438",
		Title:      alert.Title,
		Text:       alert.Message,
		Sections: []TeamsSection{{
			Facts: []TeamsFact{
				{Name: "Brand", Value: alert.BrandName},
				{Name: "Audit", Value: alert.AuditID},
				{Name: "Type", Value: alert.Type},
				{Name: "Raised", Value: alert.CreatedAt.Format("2006-01-02 15:04:05 UTC")},
			},
		}},
	}

	return s.dispatch(ctx, "alert", card, func() (string, string, string, error) {
		text := fmt.Sprintf("%s\n\n%s\n\nBrand: %s\nAudit: %s\n", alert.Title, alert.Message, alert.BrandName, alert.AuditID)
		return "[" + strings.ToUpper(alert.Type) + "] " + alert.Title, text, "", nil
	})
}

// dispatch posts card to Teams and mails the built email, collecting failures
func (s *Service) dispatch(ctx context.Context, kind string, card *TeamsMessage, email func() (subject, text, html string, err error)) error {
	var errors []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.sendToTeams(ctx, card); err != nil {
			logrus.Errorf("Failed to send Teams %s: %v", kind, err)
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Infof("Successfully sent %s to Teams", kind)
		}
	}

	if s.config.NotificationEmail != "" {
		subject, text, html, err := email()
		if err == nil {
			err = s.sender.Send(subject, text, html)
		}
		if err != nil {
			logrus.Errorf("Failed to send email %s: %v", kind, err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Infof("Successfully sent %s via email", kind)
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (s *Service) sendToTeams(ctx context.Context, message *TeamsMessage) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.TeamsWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) buildReportCard(result *models.AuditResult) *TeamsMessage {
	message := &TeamsMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   fmt.Sprintf("GEO Visibility Report - %s", result.BrandName),
		Text: fmt.Sprintf("Visibility %d/100 (%s) across %d AI answers, overall sentiment %s",
			result.VisibilityScore, result.VisibilityGrade, len(result.Mentions), result.OverallSentiment),
	}

	facts := []TeamsFact{
		{Name: "Industry", Value: result.Industry},
		{Name: "Mode", Value: string(result.Mode)},
		{Name: "Citation Quality", Value: fmt.Sprintf("%d/100", result.CitationQualityScore)},
		{Name: "Simulated Answers", Value: fmt.Sprintf("%d", result.MockResponses)},
		{Name: "Generated", Value: result.CreatedAt.Format("2006-01-02 15:04:05 UTC")},
	}
	for _, platform := range models.AllPlatforms {
		mentioned, ok := result.PlatformMentioned[platform]
		if !ok {
			continue
		}
		value := "not mentioned"
		if mentioned {
			value = "mentioned"
		}
		facts = append(facts, TeamsFact{Name: title(string(platform)), Value: value})
	}

	message.Sections = append(message.Sections, TeamsSection{
		ActivityTitle: "Summary",
		Facts:         facts,
		Markdown:      true,
	})

	actions := []string{
		fmt.Sprintf("**%d** action items, **%d** critical", result.TotalActions, result.CriticalActions),
		fmt.Sprintf("**%d** citation gaps to close", len(result.CitationGaps)),
		fmt.Sprintf("**%d** hallucination alerts to correct", len(result.HallucinationAlerts)),
	}
	message.Sections = append(message.Sections, TeamsSection{
		ActivityTitle: "Action Center",
		ActivityText:  strings.Join(actions, "\n\n"),
		Markdown:      true,
	})

	return message
}
