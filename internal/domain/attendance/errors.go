package attendance

import "errors"

// Attendance domain errors
var (
	// Event errors
	ErrInvalidAction           = errors.New("invalid attendance action")
	ErrRegularizationViaRecord = errors.New("regularization must be submitted through the regularization endpoint")
	ErrEventNotFound           = errors.New("attendance event not found")

	// Regularization errors
	ErrNotRegularization = errors.New("attendance event is not a regularization")
	ErrAlreadyReviewed   = errors.New("regularization has already been approved or rejected")

	// Query errors
	ErrInvalidRange         = errors.New("invalid date range")
	ErrForbiddenWorkerScope = errors.New("only managers can view another worker's attendance")
)
