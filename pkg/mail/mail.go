// Package mail delivers HTML email over SMTP, or logs it when no server is configured.
package mail

import (
	"context"
	"errors"
)

// ErrNoRecipient is returned for a message without a To address.
var ErrNoRecipient = errors.New("mail: recipient required")

// Message is a single HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
