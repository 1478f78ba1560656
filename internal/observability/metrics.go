// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridgeforum_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ReminderEmails counts reminder emails by result (sent, failed).
	ReminderEmails = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridgeforum_reminder_emails_total",
		Help: "Reminder emails attempted, by result",
	}, []string{"result"})

	// ReminderRunDuration records how long one reminder batch takes.
	ReminderRunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bridgeforum_reminder_run_seconds",
		Help:    "Duration of reminder batches in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// ImageUploads counts processed uploads by result (stored, rejected, failed).
	ImageUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridgeforum_image_uploads_total",
		Help: "Image uploads processed, by result",
	}, []string{"result"})

	// FeedbackSubmissions counts feedback form submissions.
	FeedbackSubmissions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridgeforum_feedback_submissions_total",
		Help: "Feedback submissions stored",
	})

	// MailDeliveries counts outgoing mail by driver and result.
	MailDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridgeforum_mail_deliveries_total",
		Help: "Outgoing emails by driver and result",
	}, []string{"driver", "result"})
)
