// Package mailx delivers transactional email. Callers depend on the Mailer
// interface; the concrete transport is picked once at startup.
package mailx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
)

// ErrNoRecipient is returned when a message has no usable To address.
var ErrNoRecipient = errors.New("mailx: message has no recipient")

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Validate checks the recipient address.
func (m Message) Validate() error {
	if strings.TrimSpace(m.To) == "" {
		return ErrNoRecipient
	}
	if _, err := mail.ParseAddress(m.To); err != nil {
		return fmt.Errorf("mailx: invalid recipient %q: %w", m.To, err)
	}
	return nil
}

// Mailer sends messages.
type Mailer interface {
	Deliver(ctx context.Context, msg Message) error
}

// LogMailer writes messages to Out instead of sending them. It is the
// development transport: the rendered message (including any codes or
// links it carries) goes to Out, while the structured log only records
// the recipient and subject.
type LogMailer struct {
	From   string
	Out    io.Writer
	Logger *slog.Logger

	mu sync.Mutex
}

func (l *LogMailer) Deliver(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Out != nil {
		_, err := fmt.Fprintf(l.Out, "From: %s\nTo: %s\nSubject: %s\n\n%s\n\n",
			l.From, msg.To, msg.Subject, msg.Text)
		if err != nil {
			return fmt.Errorf("mailx: write: %w", err)
		}
	}
	if l.Logger != nil {
		l.Logger.InfoContext(ctx, "mail delivered to log transport",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject),
		)
	}
	return nil
}

// Recorder keeps delivered messages in memory. Useful in tests.
type Recorder struct {
	// Err, when set, is returned from every Deliver call and nothing is
	// recorded.
	Err error

	mu   sync.Mutex
	sent []Message
}

func (r *Recorder) Deliver(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	r.sent = append(r.sent, msg)
	return nil
}

// Sent returns a copy of the recorded messages.
func (r *Recorder) Sent() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.sent...)
}

// Last returns the most recent message, if any.
func (r *Recorder) Last() (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return Message{}, false
	}
	return r.sent[len(r.sent)-1], true
}
