package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bridgeforum/internal/featureflags"
	"bridgeforum/internal/mailer"
	"bridgeforum/internal/models"
	"bridgeforum/internal/repository"
	"bridgeforum/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFeedbackService(t *testing.T, db *gorm.DB, mail mailer.Mailer, flags string, opts FeedbackOptions) *FeedbackService {
	t.Helper()
	tpl, err := mailer.NewTemplates()
	require.NoError(t, err)
	return NewFeedbackService(
		repository.NewPostRepository(db),
		repository.NewUserRepository(db),
		mail,
		tpl,
		featureflags.NewManager(flags),
		opts,
	)
}

func TestFeedbackService_SubmitNotifiesConfiguredAddress(t *testing.T) {
	db := testutil.NewTestDB(t)
	mail := testutil.NewMailerStub()
	svc := newFeedbackService(t, db, mail, "feedback_notifications=on", FeedbackOptions{
		NotifyTo:  "staff@example.com",
		PublicURL: "https://forum.example.com/",
	})

	ana := testutil.CreateUser(t, db, "ana", "ana@example.com", false)
	ana.Photo = "/uploads/profiles/ana.jpg"

	post, err := svc.Submit(context.Background(), SubmitFeedbackInput{User: ana, FrustrationLevel: 8, Body: "Semana dura"})
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, ana.ID, post.UserID)

	svc.Wait()
	require.Len(t, mail.Sent, 1)
	msg := mail.Sent[0]
	assert.Equal(t, "staff@example.com", msg.To)
	assert.Equal(t, "Feedback", msg.Subject)
	assert.Contains(t, msg.HTML, "ana")
	assert.Contains(t, msg.HTML, "Semana dura")
	assert.Contains(t, msg.HTML, "https://forum.example.com/uploads/profiles/ana.jpg")
	assert.Contains(t, msg.HTML, "8")
}

func TestFeedbackService_SubmitFallsBackToAdmins(t *testing.T) {
	db := testutil.NewTestDB(t)
	mail := testutil.NewMailerStub()
	svc := newFeedbackService(t, db, mail, "feedback_notifications=on", FeedbackOptions{})

	testutil.CreateUser(t, db, "admin", "admin@example.com", true)
	testutil.CreateUser(t, db, "coach", "coach@example.com", true)
	ana := testutil.CreateUser(t, db, "ana", "ana@example.com", false)

	_, err := svc.Submit(context.Background(), SubmitFeedbackInput{User: ana, FrustrationLevel: 2, Body: "bien"})
	require.NoError(t, err)
	svc.Wait()
	assert.ElementsMatch(t, []string{"admin@example.com", "coach@example.com"}, mail.Recipients())
}

func TestFeedbackService_MailFailureDoesNotFailSubmission(t *testing.T) {
	db := testutil.NewTestDB(t)
	mail := testutil.NewMailerStub()
	mail.FailFor["staff@example.com"] = errors.New("smtp unavailable")
	svc := newFeedbackService(t, db, mail, "feedback_notifications=on", FeedbackOptions{NotifyTo: "staff@example.com"})

	ana := testutil.CreateUser(t, db, "ana", "ana@example.com", false)
	post, err := svc.Submit(context.Background(), SubmitFeedbackInput{User: ana, FrustrationLevel: 5, Body: "ok"})
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	svc.Wait()
	assert.Empty(t, mail.Sent)
}

func TestFeedbackService_FlagOffSkipsNotification(t *testing.T) {
	db := testutil.NewTestDB(t)
	mail := testutil.NewMailerStub()
	svc := newFeedbackService(t, db, mail, "feedback_notifications=off", FeedbackOptions{NotifyTo: "staff@example.com"})

	ana := testutil.CreateUser(t, db, "ana", "ana@example.com", false)
	_, err := svc.Submit(context.Background(), SubmitFeedbackInput{User: ana, FrustrationLevel: 5, Body: "ok"})
	require.NoError(t, err)
	svc.Wait()
	assert.Empty(t, mail.Sent)
}

func TestFeedbackService_SubmitValidation(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newFeedbackService(t, db, testutil.NewMailerStub(), "", FeedbackOptions{})
	ana := testutil.CreateUser(t, db, "ana", "ana@example.com", false)
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitFeedbackInput{User: ana, FrustrationLevel: 0, Body: "x"})
	assertValidationError(t, err)

	_, err = svc.Submit(ctx, SubmitFeedbackInput{User: ana, FrustrationLevel: 3, Body: ""})
	assertValidationError(t, err)

	_, err = svc.Submit(ctx, SubmitFeedbackInput{FrustrationLevel: 3, Body: "x"})
	assertAppError(t, err, models.CodeUnauthorized)
}

func TestFeedbackService_Report(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newFeedbackService(t, db, testutil.NewMailerStub(), "", FeedbackOptions{})
	ana := testutil.CreateUser(t, db, "ana", "ana@example.com", false)
	testutil.CreatePost(t, db, ana, "semana 1", 4)
	testutil.CreatePost(t, db, ana, "semana 2", 6)

	report, err := svc.Report(context.Background())
	require.NoError(t, err)
	require.Len(t, report, 2)
	assert.Equal(t, "ana@example.com", report[0].User.Email)
}

func TestFeedbackService_ReportIncludesEveryEntry(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newFeedbackService(t, db, testutil.NewMailerStub(), "", FeedbackOptions{})
	ana := testutil.CreateUser(t, db, "ana", "ana@example.com", false)

	total := 2*reportPageSize + 3
	posts := make([]*models.Post, total)
	for i := range posts {
		posts[i] = &models.Post{Body: fmt.Sprintf("semana %d", i), FrustrationLevel: 5, UserID: ana.ID}
	}
	require.NoError(t, db.CreateInBatches(posts, 100).Error)

	report, err := svc.Report(context.Background())
	require.NoError(t, err)
	require.Len(t, report, total)

	seen := make(map[uint]bool, total)
	for _, p := range report {
		assert.False(t, seen[p.ID], "post %d listed twice", p.ID)
		seen[p.ID] = true
	}
}

type blockingMailer struct {
	*testutil.MailerStub
	release chan struct{}
}

func (m blockingMailer) Send(ctx context.Context, msg mailer.Message) error {
	<-m.release
	return m.MailerStub.Send(ctx, msg)
}

func TestFeedbackService_SubmitDoesNotWaitForMail(t *testing.T) {
	db := testutil.NewTestDB(t)
	mail := blockingMailer{MailerStub: testutil.NewMailerStub(), release: make(chan struct{})}
	svc := newFeedbackService(t, db, mail, "feedback_notifications=on", FeedbackOptions{NotifyTo: "staff@example.com"})
	ana := testutil.CreateUser(t, db, "ana", "ana@example.com", false)

	post, err := svc.Submit(context.Background(), SubmitFeedbackInput{User: ana, FrustrationLevel: 7, Body: "semana larga"})
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Empty(t, mail.Recipients())

	close(mail.release)
	svc.Wait()
	assert.Equal(t, []string{"staff@example.com"}, mail.Recipients())
}
