package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/seqkit/errors"
)

type logging struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn"`
}

type settings struct {
	Name      string  `mapstructure:"name" validate:"required"`
	MaxBuffer int     `mapstructure:"max_buffer" validate:"gte=0"`
	Rate      float64 `yaml:"sample_rate" validate:"gte=0,lte=1"`
	Logging   logging `mapstructure:"logging"`
	Internal  string  `mapstructure:"-" validate:"required"`
}

func validSettings() settings {
	return settings{Name: "seqstat", Rate: 0.5, Logging: logging{Level: "info"}, Internal: "x"}
}

func TestValidate_OK(t *testing.T) {
	if err := Validate(validSettings()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_FieldPaths(t *testing.T) {
	s := validSettings()
	s.Name = ""
	s.MaxBuffer = -1
	s.Rate = 2
	s.Logging.Level = "loud"

	err := Validate(s)
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeValidation {
		t.Fatalf("expected validation AppError, got %v", err)
	}

	fields, _ := appErr.Details["fields"].([]FieldError)
	got := make(map[string]string, len(fields))
	for _, f := range fields {
		got[f.Field] = f.Message
	}
	want := map[string]string{
		"name":          "is required",
		"max_buffer":    "must be at least 0",
		"sample_rate":   "must be at most 1",
		"logging.level": "must be one of: debug info warn",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("field %s: got %q, want %q", field, got[field], msg)
		}
	}
	if !strings.Contains(appErr.Message, "logging.level: must be one of") {
		t.Errorf("message %q does not name logging.level", appErr.Message)
	}
}

func TestValidate_NotAStruct(t *testing.T) {
	if err := Validate(nil); !errors.IsArgument(err) {
		t.Errorf("expected argument error, got %v", err)
	}
}

func TestValidatorRequired(t *testing.T) {
	if New().Required("file", "in.txt").HasErrors() {
		t.Error("expected no errors for valid input")
	}
	if !New().Required("file", "   ").HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorBounds(t *testing.T) {
	tests := []struct {
		name    string
		check   func(v *Validator)
		wantErr bool
	}{
		{"min ok", func(v *Validator) { v.Min("top", 0, 0) }, false},
		{"min below", func(v *Validator) { v.Min("top", -1, 0) }, true},
		{"max ok", func(v *Validator) { v.Max("top", 10, 10) }, false},
		{"max above", func(v *Validator) { v.Max("top", 11, 10) }, true},
		{"range inside", func(v *Validator) { v.Range("rate", 5, 1, 10) }, false},
		{"range outside", func(v *Validator) { v.Range("rate", 11, 1, 10) }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := New()
			tc.check(v)
			if v.HasErrors() != tc.wantErr {
				t.Errorf("HasErrors = %v, want %v (%v)", v.HasErrors(), tc.wantErr, v.Errors())
			}
		})
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"json", "console"}
	if New().OneOf("format", "json", allowed).HasErrors() {
		t.Error("expected no error for allowed value")
	}
	if New().OneOf("format", "", allowed).HasErrors() {
		t.Error("expected empty value to pass")
	}
	v := New().OneOf("format", "xml", allowed)
	if !v.HasErrors() || v.Errors()[0].Message != "must be one of: json, console" {
		t.Errorf("got %v", v.Errors())
	}
}

func TestValidatorErr(t *testing.T) {
	if err := New().Err(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	v := New().Custom(false, "range", "is malformed")
	v.AddError("top", "must be at least 0")
	err := v.Err()
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Message != "range: is malformed; top: must be at least 0" {
		t.Errorf("got %q", appErr.Message)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"MaxBuffer":  "max_buffer",
		"Name":       "name",
		"sampleRate": "sample_rate",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
