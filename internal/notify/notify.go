// Package notify delivers the short status messages the bookmark store
// emits after each operation.
package notify

import (
	"github.com/rs/zerolog"

	"github.com/MKhiriev/study-marks/internal/logger"
	"github.com/MKhiriev/study-marks/models"
)

// LogNotifier writes notifications to the log. The CLI uses it; the TUI
// uses a [ChannelNotifier].
type LogNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(logger *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(msg models.Notification) {
	var event *zerolog.Event
	switch msg.Severity {
	case models.SeverityError:
		event = n.logger.Error()
	default:
		event = n.logger.Info()
	}

	event.
		Str("severity", msg.Severity.String()).
		Str("description", msg.Description).
		Msg(msg.Title)
}

// ChannelNotifier hands notifications to a single reader. Notify never
// blocks: when the buffer is full the notification is dropped.
type ChannelNotifier struct {
	ch chan models.Notification
}

func NewChannelNotifier(buffer int) *ChannelNotifier {
	if buffer < 1 {
		buffer = 1
	}
	return &ChannelNotifier{ch: make(chan models.Notification, buffer)}
}

func (n *ChannelNotifier) Notify(msg models.Notification) {
	select {
	case n.ch <- msg:
	default:
	}
}

// C returns the channel notifications are delivered on.
func (n *ChannelNotifier) C() <-chan models.Notification {
	return n.ch
}

// Multi fans a notification out to every notifier.
type Multi []interface{ Notify(models.Notification) }

func (m Multi) Notify(msg models.Notification) {
	for _, n := range m {
		n.Notify(msg)
	}
}
