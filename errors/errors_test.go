package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeEmptySequence, "empty")
	if err.Code != ErrCodeEmptySequence {
		t.Errorf("expected code %s, got %s", ErrCodeEmptySequence, err.Code)
	}
	if err.Message != "empty" {
		t.Errorf("expected message 'empty', got %q", err.Message)
	}
}

func TestAppError_EmptySequence_Success(t *testing.T) {
	err := EmptySequence("First")
	if err.Code != ErrCodeEmptySequence {
		t.Errorf("expected EMPTY_SEQUENCE, got %s", err.Code)
	}
	if err.Details["operation"] != "First" {
		t.Errorf("expected operation=First, got %v", err.Details["operation"])
	}
}

func TestAppError_InvalidArgument_EmptyParam(t *testing.T) {
	err := InvalidArgument("", "negative")
	if _, ok := err.Details["param"]; ok {
		t.Error("expected no 'param' key in details when param is empty")
	}
}

func TestAppError_IndexOutOfRange_UnknownLength(t *testing.T) {
	err := IndexOutOfRange(7, -1)
	if _, ok := err.Details["length"]; ok {
		t.Error("expected no 'length' key when length is unknown")
	}
	err = IndexOutOfRange(7, 3)
	if err.Details["length"] != 3 {
		t.Errorf("expected length=3, got %v", err.Details["length"])
	}
}

func TestAppError_InvalidCast_Message(t *testing.T) {
	err := InvalidCast("x", "int")
	if !strings.Contains(err.Message, "string") {
		t.Errorf("expected source type in message, got %q", err.Message)
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := DuplicateKey(1).WithCause(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set via WithCause")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := MultipleMatch("Single").WithDetails(map[string]any{"extra": "info"})
	if err.Details["extra"] != "info" {
		t.Errorf("expected extra=info in details")
	}
	if err.Details["operation"] != "Single" {
		t.Error("expected original details to be preserved")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details == nil {
		t.Fatal("expected Details map to be initialized")
	}
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code ErrorCode
	}{
		{"EmptySequence", EmptySequence("Last"), ErrCodeEmptySequence},
		{"NoMatch", NoMatch("First"), ErrCodeEmptySequence},
		{"MultipleMatch", MultipleMatch("Single"), ErrCodeMultipleMatch},
		{"InvalidArgument", InvalidArgument("size", "must be positive"), ErrCodeInvalidArgument},
		{"MissingArgument", MissingArgument("selector"), ErrCodeMissingArgument},
		{"DuplicateKey", DuplicateKey("a"), ErrCodeDuplicateKey},
		{"IndexOutOfRange", IndexOutOfRange(3, 2), ErrCodeIndexOutOfRange},
		{"InvalidCast", InvalidCast(1, "string"), ErrCodeInvalidCast},
		{"BufferLimit", BufferLimit("OrderBy", 10), ErrCodeBufferLimit},
		{"Overflow", Overflow("int8"), ErrCodeOverflow},
		{"Validation", Validation("bad config"), ErrCodeValidation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.Error() == "" {
				t.Error("Error() should not be empty")
			}
		})
	}
}

func TestErrorCode_IsArgumentCode_Table(t *testing.T) {
	for _, code := range []ErrorCode{ErrCodeInvalidArgument, ErrCodeMissingArgument} {
		if !IsArgumentCode(code) {
			t.Errorf("expected %s to be an argument code", code)
		}
	}
	for _, code := range []ErrorCode{ErrCodeEmptySequence, ErrCodeDuplicateKey, ErrCodeIndexOutOfRange} {
		if IsArgumentCode(code) {
			t.Errorf("expected %s to NOT be an argument code", code)
		}
	}
}

func TestAppError_Predicates_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", DuplicateKey(1))
	if !IsDuplicateKey(wrapped) {
		t.Error("expected IsDuplicateKey to see through wrapping")
	}
	if IsEmptySequence(wrapped) {
		t.Error("expected IsEmptySequence to be false for DUPLICATE_KEY")
	}
	if !IsArgument(MissingArgument("p")) {
		t.Error("expected IsArgument for MISSING_ARGUMENT")
	}
	if IsIndexOutOfRange(fmt.Errorf("plain")) {
		t.Error("expected plain error to match no code")
	}
	if !IsOverflow(Overflow("int")) || !IsBufferLimit(BufferLimit("Reverse", 1)) {
		t.Error("expected IsOverflow and IsBufferLimit")
	}
	if !IsMultipleMatch(MultipleMatch("x")) {
		t.Error("expected IsMultipleMatch")
	}
}

func TestAppError_Is_MatchesByCode(t *testing.T) {
	err := fmt.Errorf("wrap: %w", EmptySequence("Min"))
	if !stderrors.Is(err, New(ErrCodeEmptySequence, "")) {
		t.Error("expected errors.Is to match on code")
	}
	if stderrors.Is(err, New(ErrCodeDuplicateKey, "")) {
		t.Error("expected errors.Is to reject a different code")
	}
}

func TestAppError_ToResponse_Success(t *testing.T) {
	resp := DuplicateKey("k").ToResponse()
	if resp.Error.Code != ErrCodeDuplicateKey {
		t.Errorf("expected code DUPLICATE_KEY in response, got %s", resp.Error.Code)
	}
	if resp.Error.Details["key"] != "k" {
		t.Error("expected key=k in response details")
	}
}

func TestResponseFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code ErrorCode
		msg  string
	}{
		{"app error", BufferLimit("Reverse", 3), ErrCodeBufferLimit, ""},
		{"wrapped", fmt.Errorf("task: %w", Overflow("int64")), ErrCodeOverflow, ""},
		{"plain", stderrors.New("disk gone"), ErrCodeInternal, "disk gone"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := ResponseFor(tc.err)
			if resp.Error.Code != tc.code {
				t.Errorf("got code %s, want %s", resp.Error.Code, tc.code)
			}
			if tc.msg != "" && resp.Error.Message != tc.msg {
				t.Errorf("got message %q, want %q", resp.Error.Message, tc.msg)
			}
		})
	}
}

func TestAppError_AsAppError_Success(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", EmptySequence("First"))

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed for wrapped AppError")
	}
	if got.Code != ErrCodeEmptySequence {
		t.Errorf("expected EMPTY_SEQUENCE, got %s", got.Code)
	}

	if _, ok = AsAppError(fmt.Errorf("not an app error")); ok {
		t.Error("expected AsAppError to return false for non-AppError")
	}
	if IsAppError(fmt.Errorf("plain")) {
		t.Error("expected IsAppError to return false for plain error")
	}
}
