package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendApprovalNotice(ctx context.Context, toEmail, toName, itemTitle string) error {
	args := m.Called(ctx, toEmail, toName, itemTitle)
	return args.Error(0)
}

func (m *MockEmailSender) SendRejectionNotice(ctx context.Context, toEmail, toName, itemTitle, reason string) error {
	args := m.Called(ctx, toEmail, toName, itemTitle, reason)
	return args.Error(0)
}
