package errors

import (
	stderrors "errors"
)

// ErrorResponse is the JSON structure used when an error is reported to a
// caller outside the process, such as seqstat's --json error output.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains the serialized error details.
type ErrorBody struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ToResponse converts an AppError to an ErrorResponse for JSON serialization.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:    e.Code,
			Message: e.Message,
			Details: e.Details,
		},
	}
}

// ResponseFor converts any error to an ErrorResponse. Errors that are not
// AppErrors are reported under ErrCodeInternal.
func ResponseFor(err error) ErrorResponse {
	if appErr, ok := AsAppError(err); ok {
		return appErr.ToResponse()
	}
	return New(ErrCodeInternal, err.Error()).ToResponse()
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is (or wraps) an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// IsEmptySequence reports whether err is an EMPTY_SEQUENCE error.
func IsEmptySequence(err error) bool { return HasCode(err, ErrCodeEmptySequence) }

// IsMultipleMatch reports whether err is a MULTIPLE_MATCH error.
func IsMultipleMatch(err error) bool { return HasCode(err, ErrCodeMultipleMatch) }

// IsDuplicateKey reports whether err is a DUPLICATE_KEY error.
func IsDuplicateKey(err error) bool { return HasCode(err, ErrCodeDuplicateKey) }

// IsIndexOutOfRange reports whether err is an INDEX_OUT_OF_RANGE error.
func IsIndexOutOfRange(err error) bool { return HasCode(err, ErrCodeIndexOutOfRange) }

// IsOverflow reports whether err is an ARITHMETIC_OVERFLOW error.
func IsOverflow(err error) bool { return HasCode(err, ErrCodeOverflow) }

// IsBufferLimit reports whether err is a BUFFER_LIMIT error.
func IsBufferLimit(err error) bool { return HasCode(err, ErrCodeBufferLimit) }

// IsArgument reports whether err is an INVALID_ARGUMENT or MISSING_ARGUMENT error.
func IsArgument(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && IsArgumentCode(appErr.Code)
}
