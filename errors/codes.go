package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Consumption errors
const (
	// ErrCodeEmptySequence indicates an operation needed at least one element.
	ErrCodeEmptySequence ErrorCode = "EMPTY_SEQUENCE"
	// ErrCodeMultipleMatch indicates more than one element qualified where exactly one was expected.
	ErrCodeMultipleMatch ErrorCode = "MULTIPLE_MATCH"
	// ErrCodeDuplicateKey indicates two comparer-equal keys were inserted into a unique collection.
	ErrCodeDuplicateKey ErrorCode = "DUPLICATE_KEY"
	// ErrCodeIndexOutOfRange indicates a position outside the resolved bounds of a sequence.
	ErrCodeIndexOutOfRange ErrorCode = "INDEX_OUT_OF_RANGE"
	// ErrCodeInvalidCast indicates an element could not be converted to the requested type.
	ErrCodeInvalidCast ErrorCode = "INVALID_CAST"
	// ErrCodeBufferLimit indicates a buffering operator exceeded its configured element limit.
	ErrCodeBufferLimit ErrorCode = "BUFFER_LIMIT"
	// ErrCodeOverflow indicates an integer sum left the range of its type.
	ErrCodeOverflow ErrorCode = "ARITHMETIC_OVERFLOW"
)

// Argument errors
const (
	// ErrCodeInvalidArgument indicates an argument value is invalid.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeMissingArgument indicates a required argument (projection, predicate) was nil.
	ErrCodeMissingArgument ErrorCode = "MISSING_ARGUMENT"
	// ErrCodeValidation indicates a configuration struct failed validation.
	ErrCodeValidation ErrorCode = "VALIDATION_FAILED"
)

// General errors
const (
	// ErrCodeInternal reports an error that carries no code of its own.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// argumentCodes are the codes reported as argument errors.
var argumentCodes = map[ErrorCode]bool{
	ErrCodeInvalidArgument: true,
	ErrCodeMissingArgument: true,
}

// IsArgumentCode returns true if the code describes a caller-supplied argument problem.
func IsArgumentCode(code ErrorCode) bool {
	return argumentCodes[code]
}
