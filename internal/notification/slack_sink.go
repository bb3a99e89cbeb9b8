package notification

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

var slackColors = map[Severity]string{
	SeveritySuccess: "good",
	SeverityError:   "danger",
	SeverityInfo:    "#1f6feb",
}

// WebhookPoster dipenuhi oleh slack.PostWebhookContext.
type WebhookPoster func(ctx context.Context, url string, msg *slack.WebhookMessage) error

type slackSink struct {
	url  string
	post WebhookPoster
}

func NewSlackSink(webhookURL string) Sink {
	return &slackSink{url: webhookURL, post: slack.PostWebhookContext}
}

// NewSlackSinkWithPoster dipakai test untuk mengganti pemanggilan HTTP.
func NewSlackSinkWithPoster(webhookURL string, post WebhookPoster) Sink {
	return &slackSink{url: webhookURL, post: post}
}

func (s *slackSink) Notify(ctx context.Context, message string, severity Severity) error {
	msg := &slack.WebhookMessage{
		Text: fmt.Sprintf("[PayrollPro] %s", message),
		Attachments: []slack.Attachment{{
			Color:  slackColors[severity],
			Footer: string(severity),
		}},
	}
	if err := s.post(ctx, s.url, msg); err != nil {
		return fmt.Errorf("post slack webhook: %w", err)
	}
	return nil
}
