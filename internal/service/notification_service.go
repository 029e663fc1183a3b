package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/suraksha-setu/relief-service/internal/config"
	"github.com/suraksha-setu/relief-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventIncidentReported, n.handleIncidentReported)
	n.dispatcher.Subscribe(events.EventIncidentStatusChanged, n.handleIncidentStatusChanged)
	n.dispatcher.Subscribe(events.EventIncidentAssigned, n.handleIncidentAssigned)
	n.dispatcher.Subscribe(events.EventBroadcastSent, n.handleBroadcastSent)
	n.dispatcher.Subscribe(events.EventSafetyCheckRecorded, n.handleSafetyCheckRecorded)
}

func (n *NotificationService) handleIncidentReported(ctx context.Context, event events.Event) error {
	n.logger.Info("IncidentReported", zap.String("incident_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleIncidentStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("IncidentStatusChanged", zap.String("incident_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleIncidentAssigned(ctx context.Context, event events.Event) error {
	n.logger.Info("IncidentAssigned", zap.String("incident_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleBroadcastSent(ctx context.Context, event events.Event) error {
	n.logger.Info("BroadcastSent", zap.String("broadcast_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSafetyCheckRecorded(ctx context.Context, event events.Event) error {
	n.logger.Info("SafetyCheckRecorded", zap.String("check_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
