package testutil

import (
	"context"
	"sync"

	"bridgeforum/internal/mailer"
)

// MailerStub records messages instead of sending them. FailFor makes delivery to the listed
// addresses fail.
type MailerStub struct {
	mu      sync.Mutex
	Sent    []mailer.Message
	FailFor map[string]error
}

// NewMailerStub creates an empty recorder.
func NewMailerStub() *MailerStub {
	return &MailerStub{FailFor: make(map[string]error)}
}

// Send records msg.
func (m *MailerStub) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.FailFor[msg.To]; ok {
		return err
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

// Recipients returns the To address of every recorded message in send order.
func (m *MailerStub) Recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Sent))
	for i, msg := range m.Sent {
		out[i] = msg.To
	}
	return out
}
