// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// EmailSender delivers a single rendered email through the configured
// provider. Implementations translate provider failures into typed email
// errors so the queue worker can tell retryable failures from permanent ones.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// SendEmailInput is one fully rendered email ready for delivery.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult carries the provider's delivery identifier.
type SendEmailResult struct {
	ResendID string
}
