package port

import "context"

// EmailSender defines the contract for sending approval notifications.
type EmailSender interface {
	SendApprovalNotice(ctx context.Context, toEmail, toName, itemTitle string) error
	SendRejectionNotice(ctx context.Context, toEmail, toName, itemTitle, reason string) error
}
