package services

import "errors"

// Common service errors. The AI pipeline's internal failure kinds
// (no JSON, malformed JSON, incomplete response, upstream failure) are
// logged with diagnostics and folded into the single generic error for the
// operation; the user is asked to resubmit, nothing is retried.
var (
	ErrNotFound            = errors.New("record not found")
	ErrUnauthorized        = errors.New("not authorized")
	ErrInvalidPassword     = errors.New("current password is incorrect")
	ErrInvalidRecoveryCode = errors.New("invalid or expired recovery code")
	ErrReportLimitReached  = errors.New("report limit reached, upgrade to premium to generate more reports")
	ErrAnalysisFailed      = errors.New("failed to analyze niche, please try again")
	ErrReportFailed        = errors.New("failed to generate validation report, please try again")
)
