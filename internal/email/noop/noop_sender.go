package noop

import (
	"context"
	"log"

	"billdesk/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs notifications to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendApprovalNotice(_ context.Context, toEmail, toName, itemTitle string) error {
	log.Printf("[NOOP EMAIL] Approval notice for %s (%s): %q has been approved", toName, toEmail, itemTitle)
	return nil
}

func (s *noopSender) SendRejectionNotice(_ context.Context, toEmail, toName, itemTitle, reason string) error {
	log.Printf("[NOOP EMAIL] Rejection notice for %s (%s): %q rejected: %s", toName, toEmail, itemTitle, reason)
	return nil
}
