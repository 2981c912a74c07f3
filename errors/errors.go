package errors

import (
	"fmt"
)

// AppError is the unified error type returned by seqkit operations.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an *AppError with the same code, so that
// stderrors.Is(err, errors.New(code, "")) matches any error of that kind.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// --- Sequence Error Constructors ---

// EmptySequence creates a new AppError for an operation that requires at least one element.
func EmptySequence(op string) *AppError {
	return &AppError{
		Code: ErrCodeEmptySequence, Message: "Sequence contains no elements.",
		Details: map[string]any{"operation": op},
	}
}

// NoMatch creates a new AppError for a predicate that matched no element.
func NoMatch(op string) *AppError {
	return &AppError{
		Code: ErrCodeEmptySequence, Message: "Sequence contains no matching element.",
		Details: map[string]any{"operation": op},
	}
}

// MultipleMatch creates a new AppError for more than one qualifying element.
func MultipleMatch(op string) *AppError {
	return &AppError{
		Code: ErrCodeMultipleMatch, Message: "Sequence contains more than one matching element.",
		Details: map[string]any{"operation": op},
	}
}

// InvalidArgument creates a new AppError for an argument with an invalid value.
func InvalidArgument(param, reason string) *AppError {
	details := make(map[string]any)
	if param != "" {
		details["param"] = param
	}
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("Invalid argument: %s", reason),
		Details: details,
	}
}

// MissingArgument creates a new AppError for a required argument that was nil.
func MissingArgument(param string) *AppError {
	return &AppError{
		Code: ErrCodeMissingArgument, Message: fmt.Sprintf("Missing required argument: %s", param),
		Details: map[string]any{"param": param},
	}
}

// DuplicateKey creates a new AppError for a key inserted twice into a unique collection.
func DuplicateKey(key any) *AppError {
	return &AppError{
		Code: ErrCodeDuplicateKey, Message: fmt.Sprintf("An element with the same key has already been added: %v", key),
		Details: map[string]any{"key": key},
	}
}

// IndexOutOfRange creates a new AppError for a position outside [0, length].
// A negative length means the length was not known when the error was raised.
func IndexOutOfRange(index any, length int) *AppError {
	details := map[string]any{"index": index}
	if length >= 0 {
		details["length"] = length
	}
	return &AppError{
		Code: ErrCodeIndexOutOfRange, Message: fmt.Sprintf("Index %v was out of range.", index),
		Details: details,
	}
}

// InvalidCast creates a new AppError for an element that is not of the target type.
func InvalidCast(value any, target string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidCast, Message: fmt.Sprintf("Unable to cast value of type %T to %s.", value, target),
		Details: map[string]any{"target": target},
	}
}

// BufferLimit creates a new AppError for a buffering operator that outgrew its limit.
func BufferLimit(op string, limit int) *AppError {
	return &AppError{
		Code: ErrCodeBufferLimit, Message: fmt.Sprintf("%s buffered more than %d elements.", op, limit),
		Details: map[string]any{"operation": op, "limit": limit},
	}
}

// Overflow creates a new AppError for a sum that does not fit its numeric kind.
func Overflow(kind string) *AppError {
	return &AppError{
		Code: ErrCodeOverflow, Message: fmt.Sprintf("Arithmetic operation resulted in an overflow of %s.", kind),
		Details: map[string]any{"kind": kind},
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeValidation, Message: message,
	}
}
