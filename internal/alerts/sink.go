package alerts

import (
	"context"
	"errors"
	"strings"
	"time"

	"ghostie/internal/config"
)

// AppName is the title shown on every alert.
const AppName = "Ghostie"

// Sink delivers a short message to the user within timeout.
type Sink interface {
	Send(ctx context.Context, message string, timeout time.Duration) error
}

// NewSink selects the channels enabled in cfg. With nothing enabled it
// returns Noop.
func NewSink(cfg *config.Config) Sink {
	if cfg == nil {
		return Noop{}
	}
	var sinks []Sink
	if cfg.EnableOSNotifications {
		sinks = append(sinks, NewDesktop())
	}
	if topic := strings.TrimSpace(cfg.Notifications.NtfyTopic); topic != "" {
		sinks = append(sinks, NewNtfy(topic, cfg.NtfyTimeout()))
	}
	switch len(sinks) {
	case 0:
		return Noop{}
	case 1:
		return sinks[0]
	default:
		return Multi(sinks)
	}
}

// Noop discards alerts.
type Noop struct{}

func (Noop) Send(context.Context, string, time.Duration) error { return nil }

// Multi sends to every sink and joins their errors.
type Multi []Sink

func (m Multi) Send(ctx context.Context, message string, timeout time.Duration) error {
	var errs []error
	for _, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.Send(ctx, message, timeout); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
