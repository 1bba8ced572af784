package notifications

import (
	"context"

	"github.com/geosight/geosight/internal/models"
)

// NotificationInterface defines the contract for notification services
type NotificationInterface interface {
	SendReport(ctx context.Context, result *models.AuditResult) error
	SendAlert(ctx context.Context, alert *models.Alert) error
}
