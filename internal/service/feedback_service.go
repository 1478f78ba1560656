package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"bridgeforum/internal/featureflags"
	"bridgeforum/internal/mailer"
	"bridgeforum/internal/middleware"
	"bridgeforum/internal/models"
	"bridgeforum/internal/observability"
	"bridgeforum/internal/repository"
)

const (
	reportPageSize      = 200
	notificationTimeout = 15 * time.Second
)

// FeedbackService stores weekly feedback as posts and tells the staff about it.
type FeedbackService struct {
	posts     repository.PostRepository
	users     repository.UserRepository
	mail      mailer.Mailer
	templates *mailer.Templates
	flags     *featureflags.Manager
	notifyTo  string
	publicURL string

	inflight sync.WaitGroup
}

type FeedbackOptions struct {
	NotifyTo  string
	PublicURL string
}

type SubmitFeedbackInput struct {
	User             *models.User
	FrustrationLevel int
	Body             string
}

func NewFeedbackService(
	posts repository.PostRepository,
	users repository.UserRepository,
	mail mailer.Mailer,
	templates *mailer.Templates,
	flags *featureflags.Manager,
	opts FeedbackOptions,
) *FeedbackService {
	return &FeedbackService{
		posts:     posts,
		users:     users,
		mail:      mail,
		templates: templates,
		flags:     flags,
		notifyTo:  strings.TrimSpace(opts.NotifyTo),
		publicURL: strings.TrimSuffix(opts.PublicURL, "/"),
	}
}

// Submit stores the feedback. The staff notification is sent in the background; its failures are
// logged and never fail the submission.
func (s *FeedbackService) Submit(ctx context.Context, in SubmitFeedbackInput) (*models.Post, error) {
	if in.User == nil || in.User.ID == 0 {
		return nil, models.NewUnauthorizedError("Login required")
	}
	body, err := validateBody(in.Body, false)
	if err != nil {
		return nil, err
	}
	if !models.ValidFrustrationLevel(in.FrustrationLevel) {
		return nil, models.NewValidationError("frustration level must be between 1 and 10")
	}

	post := &models.Post{Body: body, FrustrationLevel: in.FrustrationLevel, UserID: in.User.ID}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.FeedbackSubmissions.Inc()

	if s.flags.Enabled(featureflags.FeedbackNotifications, in.User.ID) {
		s.inflight.Add(1)
		go func() {
			defer s.inflight.Done()
			s.notify(ctx, in.User, post)
		}()
	}
	return post, nil
}

// Wait blocks until every background notification has finished.
func (s *FeedbackService) Wait() {
	s.inflight.Wait()
}

func (s *FeedbackService) notify(ctx context.Context, author *models.User, post *models.Post) {
	if s.mail == nil || s.templates == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notificationTimeout)
	defer cancel()

	recipients, err := s.recipients(ctx)
	if err != nil {
		logWarn(ctx, "failed to resolve feedback recipients", err)
		return
	}

	data := mailer.FeedbackData{
		Username:         author.DisplayName(),
		Photo:            s.absoluteURL(author.Photo),
		Body:             post.Body,
		FrustrationLevel: post.FrustrationLevel,
	}
	for _, to := range recipients {
		msg, err := s.templates.Feedback(to, data)
		if err != nil {
			logWarn(ctx, "failed to render feedback email", err)
			return
		}
		if err := s.mail.Send(ctx, msg); err != nil {
			logWarn(ctx, "failed to send feedback notification", err, slog.String("to", to))
			continue
		}
		middleware.Logger.InfoContext(ctx, "feedback notification sent",
			slog.String("to", to),
			slog.Uint64("post_id", uint64(post.ID)),
		)
	}
}

// recipients is FEEDBACK_NOTIFY_EMAIL, or every admin when it is unset.
func (s *FeedbackService) recipients(ctx context.Context) ([]string, error) {
	if s.notifyTo != "" {
		return []string{s.notifyTo}, nil
	}
	admins, err := s.users.ListAdmins(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(admins))
	for _, a := range admins {
		if a.Email != "" {
			out = append(out, a.Email)
		}
	}
	return out, nil
}

func (s *FeedbackService) absoluteURL(u string) string {
	if strings.HasPrefix(u, "/") {
		return s.publicURL + u
	}
	return u
}

// Report lists every feedback entry with its author for the admin view.
func (s *FeedbackService) Report(ctx context.Context) ([]*models.Post, error) {
	var all []*models.Post
	for offset := 0; ; offset += reportPageSize {
		page, err := s.posts.List(ctx, reportPageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < reportPageSize {
			return all, nil
		}
	}
}
