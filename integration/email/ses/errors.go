package ses

import (
	"errors"

	"github.com/aws/smithy-go"
)

// ErrorCode returns the SES API error code carried by err, or an empty string
// when err did not come from the API (transport failures, cancellation).
// Deliver returns SDK errors unchanged; this lets callers branch on them.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// IsThrottled reports whether err is an SES rate or quota rejection.
func IsThrottled(err error) bool {
	switch ErrorCode(err) {
	case "TooManyRequestsException", "LimitExceededException", "Throttling", "ThrottlingException":
		return true
	}
	return false
}
