package events

import "time"

const NotificationRaisedTopic = "payroll.notification.raised.v1"

type NotificationRaisedEvent struct {
	EventType  string    `json:"event_type"`
	Message    string    `json:"message"`
	Severity   string    `json:"severity"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
