package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/geosight/geosight/internal/config"
	"github.com/geosight/geosight/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/gomail.v2"
)

type mailSender interface {
	Send(subject, text, html string) error
}

type smtpSender struct {
	cfg *config.Config
}

func (s smtpSender) Send(subject, text, html string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.SMTPUsername)
	m.SetHeader("To", s.cfg.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	if html != "" {
		m.AddAlternative("text/html", html)
	}

	d := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUsername, s.cfg.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func title(s string) string {
	return cases.Title(language.English).String(s)
}

const reportTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>GEO Visibility Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #4b3fd1; color: white; padding: 20px; border-radius: 5px; }
        .summary { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
        .item { border-left: 4px solid #4b3fd1; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        .critical { border-left-color: #d13438; }
        .high { border-left-color: #ff8c00; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.BrandName}}: {{.VisibilityScore}}/100 ({{.VisibilityGrade}})</h1>
        <p>{{.Mode | title}} audit generated on {{.CreatedAt.Format "January 2, 2006 at 3:04 PM UTC"}}</p>
    </div>

    <div class="summary">
        <h2>Summary</h2>
        <p><strong>Overall Sentiment:</strong> {{.OverallSentiment | title}}</p>
        <p><strong>Citation Quality:</strong> {{.CitationQualityScore}}/100</p>
        <p><strong>AI Answers Analyzed:</strong> {{len .Mentions}} ({{.MockResponses}} simulated)</p>
        {{range $platform, $mentioned := .PlatformMentioned}}
            <p><strong>{{$platform | title}}:</strong> {{if $mentioned}}mentioned{{else}}not mentioned{{end}}</p>
        {{end}}
    </div>

    {{if .HallucinationAlerts}}
    <h2>Hallucination Alerts</h2>
    {{range .HallucinationAlerts}}
        <div class="item {{.Severity}}">
            <p><strong>{{.Platform | title}}:</strong> {{.IncorrectClaim}}</p>
            <p>Correct: {{.CorrectInformation}}</p>
        </div>
    {{end}}
    {{end}}

    {{if .CitationGaps}}
    <h2>Citation Gaps</h2>
    {{range $index, $gap := .CitationGaps}}
        {{if lt $index 5}}
        <div class="item {{$gap.Priority}}">
            <a href="{{$gap.URL}}" target="_blank">{{$gap.Platform}}</a> ({{$gap.Priority}}, impact {{$gap.EstimatedImpact}}/10)
        </div>
        {{end}}
    {{end}}
    {{end}}

    <hr>
    <p><small>This report was generated automatically by GEO-Sight.</small></p>
</body>
</html>
`

func buildReportHTML(result *models.AuditResult) (string, error) {
	t, err := template.New("email").Funcs(template.FuncMap{
		"title": func(v interface{}) string { return title(fmt.Sprint(v)) },
	}).Parse(reportTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, result); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func buildReportText(result *models.AuditResult) string {
	var text strings.Builder

	text.WriteString(fmt.Sprintf("GEO Visibility Report - %s\n", result.BrandName))
	text.WriteString(fmt.Sprintf("Generated: %s\n\n", result.CreatedAt.Format("2006-01-02 15:04:05 UTC")))

	text.WriteString("SUMMARY\n")
	text.WriteString("=======\n")
	text.WriteString(fmt.Sprintf("Visibility Score: %d/100 (%s)\n", result.VisibilityScore, result.VisibilityGrade))
	text.WriteString(fmt.Sprintf("Overall Sentiment: %s\n", title(string(result.OverallSentiment))))
	text.WriteString(fmt.Sprintf("Citation Quality: %d/100\n", result.CitationQualityScore))
	text.WriteString(fmt.Sprintf("AI Answers Analyzed: %d (%d simulated)\n", len(result.Mentions), result.MockResponses))

	for _, platform := range models.AllPlatforms {
		mentioned, ok := result.PlatformMentioned[platform]
		if !ok {
			continue
		}
		status := "not mentioned"
		if mentioned {
			status = "mentioned"
		}
		text.WriteString(fmt.Sprintf("%s: %s\n", title(string(platform)), status))
	}

	if len(result.HallucinationAlerts) > 0 {
		text.WriteString("\nHALLUCINATION ALERTS\n")
		text.WriteString("====================\n")
		for i, alert := range result.HallucinationAlerts {
			text.WriteString(fmt.Sprintf("\n%d. [%s] %s\n", i+1, alert.Severity, alert.IncorrectClaim))
			text.WriteString(fmt.Sprintf("   Platform: %s | Correct: %s\n", alert.Platform, alert.CorrectInformation))
		}
	}

	text.WriteString(fmt.Sprintf("\nACTIONS: %d total, %d critical\n", result.TotalActions, result.CriticalActions))
	text.WriteString("\n---\nThis report was generated automatically by GEO-Sight.\n")

	return text.String()
}
