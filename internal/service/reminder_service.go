package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"bridgeforum/internal/featureflags"
	"bridgeforum/internal/mailer"
	"bridgeforum/internal/middleware"
	"bridgeforum/internal/observability"
	"bridgeforum/internal/repository"
)

// ReminderService emails every student a reminder to fill in the weekly feedback.
type ReminderService struct {
	users     repository.UserRepository
	mail      mailer.Mailer
	templates *mailer.Templates
	flags     *featureflags.Manager
	homeURL   string
}

// ReminderResult counts one batch.
type ReminderResult struct {
	Sent    int
	Failed  int
	Skipped int
}

func NewReminderService(
	users repository.UserRepository,
	mail mailer.Mailer,
	templates *mailer.Templates,
	flags *featureflags.Manager,
	homeURL string,
) *ReminderService {
	return &ReminderService{users: users, mail: mail, templates: templates, flags: flags, homeURL: homeURL}
}

// SendReminders mails every non-admin user. A failed delivery is logged and counted; it does not
// stop the batch. Only a failure to list users or a cancelled context returns an error.
func (s *ReminderService) SendReminders(ctx context.Context) (ReminderResult, error) {
	var res ReminderResult
	if !s.flags.EnabledGlobally(featureflags.ReminderEmails) {
		middleware.Logger.InfoContext(ctx, "reminder emails disabled by feature flag")
		return res, nil
	}

	start := time.Now()
	defer func() { observability.ReminderRunDuration.Observe(time.Since(start).Seconds()) }()

	users, err := s.users.ListNonAdmins(ctx)
	if err != nil {
		return res, err
	}

	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if strings.TrimSpace(u.Email) == "" {
			res.Skipped++
			continue
		}

		msg, err := s.templates.Reminder(u.Email, mailer.ReminderData{HomeURL: s.homeURL})
		if err == nil {
			err = s.mail.Send(ctx, msg)
		}
		if err != nil {
			res.Failed++
			observability.ReminderEmails.WithLabelValues("failed").Inc()
			logWarn(ctx, "reminder email failed", err, slog.Uint64("user_id", uint64(u.ID)))
			continue
		}
		res.Sent++
		observability.ReminderEmails.WithLabelValues("sent").Inc()
		middleware.Logger.DebugContext(ctx, "reminder email sent", slog.String("username", u.DisplayName()))
	}

	middleware.Logger.InfoContext(ctx, "reminder batch finished",
		slog.Int("sent", res.Sent),
		slog.Int("failed", res.Failed),
		slog.Int("skipped", res.Skipped),
		slog.Duration("duration", time.Since(start)),
	)
	observability.RecordJobResult(ctx, map[string]int{"sent": res.Sent, "failed": res.Failed, "skipped": res.Skipped})
	return res, nil
}
