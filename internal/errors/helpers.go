package errors

import (
	"context"
	"errors"
)

// GetCode extracts the code from err. Context cancellation and deadline
// errors that were never wrapped map to their own codes; anything else
// unknown is CodeInternal.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return CodeDeadlineExceeded
	case errors.Is(err, context.Canceled):
		return CodeCanceled
	}
	return CodeInternal
}

// GetMessage returns the user-facing message of err.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Message
	}
	return err.Error()
}

// IsUnavailable reports whether err is a catalog or upstream availability
// failure, including timeouts.
func IsUnavailable(err error) bool {
	code := GetCode(err)
	return code == CodeUnavailable || code == CodeDeadlineExceeded
}
