// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// EmailSender is the outbound email provider. The queue worker is its only
// caller; use cases never send directly.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// SendEmailInput is a fully rendered message ready for the provider.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult carries the provider's message id for tracing.
type SendEmailResult struct {
	ResendID string
}

// EmailService enqueues emails for asynchronous delivery.
type EmailService interface {
	QueuePasswordResetEmail(ctx context.Context, input QueuePasswordResetInput) error
}

// QueuePasswordResetInput describes a password reset email to enqueue.
type QueuePasswordResetInput struct {
	UserID    string
	UserEmail string
	UserName  string
	ResetURL  string
	ExpiresIn string
}
