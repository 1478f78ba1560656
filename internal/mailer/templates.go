package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

// Subjects of the application emails.
const (
	ReminderSubject = "Feedback"
	FeedbackSubject = "Feedback"
)

// Templates renders the application emails.
type Templates struct {
	engine *html.Engine
}

// NewTemplates loads the embedded email templates.
func NewTemplates() (*Templates, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("load email templates: %w", err)
	}
	return &Templates{engine: engine}, nil
}

// ReminderData fills the weekly reminder.
type ReminderData struct {
	HomeURL string
}

// FeedbackData fills the notification sent when a student submits feedback.
type FeedbackData struct {
	Username         string
	Photo            string
	Body             string
	FrustrationLevel int
}

// Reminder builds the reminder message for to.
func (t *Templates) Reminder(to string, data ReminderData) (Message, error) {
	body, err := t.render("reminder", data)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: ReminderSubject,
		HTML:    body,
		Text:    "Recuerda que tienes que completar el feedback: " + data.HomeURL,
	}, nil
}

// Feedback builds the admin notification for a feedback submission.
func (t *Templates) Feedback(to string, data FeedbackData) (Message, error) {
	body, err := t.render("feedback", data)
	if err != nil {
		return Message{}, err
	}
	text := fmt.Sprintf("%s ha escrito esto:\n\n%s\n\nNivel de frustración: %d",
		data.Username, strings.TrimSpace(data.Body), data.FrustrationLevel)
	return Message{To: to, Subject: FeedbackSubject, HTML: body, Text: text}, nil
}

func (t *Templates) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.engine.Render(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", name, err)
	}
	return buf.String(), nil
}
