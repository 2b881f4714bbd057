// Package mail sends email through a provider independent interface.
package mail

import (
	"context"
	"io"
	"log/slog"
)

// Message is a provider independent email. TextBody, HTMLBody or both may
// be set; both produce multipart/alternative.
type Message struct {
	From     string
	To       []string
	Cc       []string
	Bcc      []string
	Subject  string
	TextBody string
	HTMLBody string
}

type Mail interface {
	io.Closer
	Send(ctx context.Context, msg Message) error
}

// Log writes messages to the logger instead of sending them. It backs the
// "log" driver used in local development.
type Log struct{}

func (Log) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "mail not sent, log driver active",
		"to", msg.To,
		"subject", msg.Subject,
		"text_body", msg.TextBody,
	)
	return nil
}

func (Log) Close() error { return nil }
