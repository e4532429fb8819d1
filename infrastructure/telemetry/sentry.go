package telemetry

import (
	"fmt"
	"time"

	"cdn-service/infrastructure/logger"

	"github.com/getsentry/sentry-go"
)

const serviceName = "cdn-service"

// InitSentry initializes the Sentry SDK. An empty dsn disables Sentry and is not an error.
func InitSentry(dsn, environment, release string, tracesSampleRate float64) error {
	if dsn == "" {
		logger.GetLogger().Info("SENTRY_DSN not set, Sentry disabled")
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          release,
		TracesSampleRate: tracesSampleRate,
		AttachStacktrace: true,
		Tags: map[string]string{
			"service": serviceName,
		},
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			return scrubSecrets(event)
		},
	})
	if err != nil {
		return fmt.Errorf("sentry.Init: %w", err)
	}
	logger.GetLogger().WithField("environment", environment).Info("Sentry initialized")
	return nil
}

// CaptureError sends err to Sentry with tags. Safe to call when Sentry is disabled.
func CaptureError(err error, tags map[string]string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureException(err)
	})
}

// Flush waits for buffered events to be sent.
func Flush() {
	sentry.Flush(2 * time.Second)
}

// scrubSecrets drops upstream credentials and client addresses from an event.
func scrubSecrets(event *sentry.Event) *sentry.Event {
	if event == nil {
		return nil
	}
	event.User.IPAddress = ""
	if event.Request != nil {
		for k := range event.Request.Headers {
			switch k {
			case "Authorization", "Cookie", "Accesskey", "AccessKey":
				event.Request.Headers[k] = "[redacted]"
			}
		}
		event.Request.QueryString = ""
	}
	return event
}
