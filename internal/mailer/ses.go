package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
)

// SESMailer delivers through Amazon SES using the default AWS credential chain.
type SESMailer struct {
	svc  *ses.SES
	from string
}

func NewSESMailer(region, from string) (*SESMailer, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	return &SESMailer{svc: ses.New(sess), from: from}, nil
}

func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	if _, err := m.svc.SendEmailWithContext(ctx, sesInput(m.from, msg)); err != nil {
		return fmt.Errorf("ses send to %s: %w", msg.To, err)
	}
	return nil
}

func sesInput(from string, msg Message) *ses.SendEmailInput {
	body := &ses.Body{
		Html: &ses.Content{Charset: aws.String("UTF-8"), Data: aws.String(msg.HTML)},
	}
	if msg.Text != "" {
		body.Text = &ses.Content{Charset: aws.String("UTF-8"), Data: aws.String(msg.Text)}
	}
	return &ses.SendEmailInput{
		Destination: &ses.Destination{ToAddresses: []*string{aws.String(msg.To)}},
		Message: &ses.Message{
			Body:    body,
			Subject: &ses.Content{Charset: aws.String("UTF-8"), Data: aws.String(msg.Subject)},
		},
		Source: aws.String(from),
	}
}
