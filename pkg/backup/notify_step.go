package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// OpStatusNotification is the operation name recorded by NotifyStep.
const OpStatusNotification = "status_notification"

// notifyMessage is the webhook payload posted after a run. The shape is
// Slack-compatible but any webhook receiver that accepts JSON works.
type notifyMessage struct {
	Text        string             `json:"text"`
	Attachments []notifyAttachment `json:"attachments,omitempty"`
}

type notifyAttachment struct {
	Color  string        `json:"color,omitempty"`
	Title  string        `json:"title,omitempty"`
	Fields []notifyField `json:"fields,omitempty"`
}

type notifyField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// NotifyStep posts the run status to a configured webhook. It runs after
// metadata upload; the status it reports is derived from the step results
// recorded so far.
type NotifyStep struct {
	webhookURL  string
	environment string
	clusterName string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewNotifyStep creates a webhook notification step.
func NewNotifyStep(webhookURL, environment, clusterName string, logger *zap.Logger) *NotifyStep {
	return &NotifyStep{
		webhookURL:  webhookURL,
		environment: environment,
		clusterName: clusterName,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Name returns the operation name.
func (s *NotifyStep) Name() string { return OpStatusNotification }

// Run posts the notification and records the delivery outcome.
func (s *NotifyStep) Run(ctx context.Context, rep *Report) StepResult {
	status := EvaluateHealth(rep.Steps)

	color := "good"
	switch status {
	case StatusWarning:
		color = "warning"
	case StatusFailed:
		color = "danger"
	}

	msg := notifyMessage{
		Text: fmt.Sprintf("Backup orchestration finished with status %s", status),
		Attachments: []notifyAttachment{{
			Color: color,
			Title: "Backup Report",
			Fields: []notifyField{
				{Title: "Environment", Value: s.environment, Short: true},
				{Title: "Cluster", Value: s.clusterName, Short: true},
				{Title: "Status", Value: string(status), Short: true},
				{Title: "Operations", Value: fmt.Sprintf("%d", len(rep.Steps)), Short: true},
			},
		}},
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return FailedResult(OpStatusNotification, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewBuffer(payload))
	if err != nil {
		return FailedResult(OpStatusNotification, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("status notification failed", zap.Error(err))
		return FailedResult(OpStatusNotification, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("webhook returned status %d", resp.StatusCode)
		s.logger.Error("status notification failed", zap.Error(err))
		return FailedResult(OpStatusNotification, err)
	}

	s.logger.Info("status notification sent", zap.String("status", string(status)))
	return StepResult{
		Operation: OpStatusNotification,
		Status:    StatusSuccess,
		Detail:    Detail{"notified_status": string(status)},
	}
}
