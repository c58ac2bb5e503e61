// Package jobs defines the background tasks and the Asynq worker hosting
// them.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/cemyet/summare-sub001/internal/filing"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskExportRender renders a filing export asynchronously.
	TaskExportRender = "filing:export"
	// TaskTypeSendEmail is the task type for sending transactional emails.
	TaskTypeSendEmail = "mail:send"
)

// ExportRenderPayload wraps the export request for queue transport.
type ExportRenderPayload struct {
	Request filing.ExportRequest `json:"request"`
}

// NewExportRenderTask constructs an Asynq task for one export.
func NewExportRenderTask(req filing.ExportRequest) (*asynq.Task, error) {
	data, err := json.Marshal(ExportRenderPayload{Request: req})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskExportRender, data), nil
}

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// HandleSendEmailTask processes TaskTypeSendEmail tasks.
func HandleSendEmailTask(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	// Placeholder: delivery goes through SMTP once the notification flow
	// is wired.
	fmt.Printf("[jobs] send email to %s subject=%s\n", payload.To, payload.Subject)
	return nil
}
