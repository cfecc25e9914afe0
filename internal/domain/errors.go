package domain

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUserInactive          = errors.New("user account is deactivated")
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrDuplicateRegistration = errors.New("registration number already in use")
	ErrAdminExists           = errors.New("an admin account already exists")
	ErrSoleAdmin             = errors.New("cannot remove the only admin")
	ErrSelfDeletion          = errors.New("cannot delete your own account")
	ErrInvalidRole           = errors.New("invalid role")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrNotPending            = errors.New("resource is not pending approval")
	ErrNoDeletionRequest     = errors.New("no deletion request on this report")
	ErrDeletionRequested     = errors.New("report already has a pending deletion request")
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrFileTooLarge          = errors.New("file exceeds maximum allowed size")
	ErrTooManyFiles          = errors.New("too many files in upload")
	ErrUploadFailed          = errors.New("file upload to storage failed")
)
