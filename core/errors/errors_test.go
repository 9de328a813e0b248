package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name    string
		err     *NotFoundError
		wantMsg string
	}{
		{
			name:    "with ID",
			err:     &NotFoundError{Resource: "document", ID: "5f0c"},
			wantMsg: "document not found: 5f0c",
		},
		{
			name:    "without ID",
			err:     &NotFoundError{Resource: "attribute"},
			wantMsg: "attribute not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrNotFound) {
				t.Errorf("errors.Is(%v, ErrNotFound) = false", tt.err)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("no rows")
		err := &NotFoundError{Resource: "document", ID: "x", Err: underlyingErr}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ValidationError
		wantMsg string
	}{
		{
			name:    "with field",
			err:     &ValidationError{Field: "range", Message: "end before start"},
			wantMsg: "validation failed for range: end before start",
		},
		{
			name:    "without field",
			err:     &ValidationError{Message: "empty text"},
			wantMsg: "validation failed: empty text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrInvalidInput) {
				t.Errorf("errors.Is(%v, ErrInvalidInput) = false", tt.err)
			}
		})
	}
}

func TestIOError(t *testing.T) {
	baseErr := fmt.Errorf("permission denied")
	tests := []struct {
		name    string
		err     *IOError
		wantMsg string
	}{
		{
			name:    "with path",
			err:     &IOError{Operation: "open", Path: "/tmp/docs.db", Err: baseErr},
			wantMsg: "failed to open /tmp/docs.db: permission denied",
		},
		{
			name:    "without path",
			err:     &IOError{Operation: "write", Err: baseErr},
			wantMsg: "failed to write: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, baseErr) {
				t.Errorf("Unwrap() = %v, want %v", got, baseErr)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ParseError
		wantMsg string
	}{
		{
			name:    "with path",
			err:     &ParseError{Format: "JSON", Path: "text.default", Message: "expected string"},
			wantMsg: "failed to parse JSON at text.default: expected string",
		},
		{
			name:    "without path",
			err:     &ParseError{Format: "markup", Message: "unexpected token"},
			wantMsg: "failed to parse markup: unexpected token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrInvalidInput) {
				t.Errorf("errors.Is(%v, ErrInvalidInput) = false", tt.err)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("json: unexpected token")
		err := &ParseError{Format: "JSON", Message: "invalid syntax", Err: underlyingErr}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestUnsupportedError(t *testing.T) {
	tests := []struct {
		name    string
		err     *UnsupportedError
		wantMsg string
	}{
		{
			name:    "with reason",
			err:     &UnsupportedError{Feature: "element", Reason: "rtc is not modeled"},
			wantMsg: "unsupported element: rtc is not modeled",
		},
		{
			name:    "without reason",
			err:     &UnsupportedError{Feature: "format"},
			wantMsg: "unsupported format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrUnsupported) {
				t.Errorf("errors.Is(%v, ErrUnsupported) = false", tt.err)
			}
		})
	}
}

func TestContractError(t *testing.T) {
	err := &ContractError{Operation: "encode native", Message: "custom content is empty"}
	want := "contract violation in encode native: custom content is empty"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrContract) {
		t.Error("ContractError does not unwrap to ErrContract")
	}

	bare := &ContractError{Message: "boom"}
	if got := bare.Error(); got != "contract violation: boom" {
		t.Errorf("Error() = %q, want %q", got, "contract violation: boom")
	}
}

func TestPrecondition(t *testing.T) {
	t.Run("holds", func(t *testing.T) {
		Precondition(true, "op", "never raised")
	})

	t.Run("violated", func(t *testing.T) {
		defer func() {
			r := recover()
			ce, ok := r.(*ContractError)
			if !ok {
				t.Fatalf("recover() = %v, want *ContractError", r)
			}
			if ce.Operation != "decode native" {
				t.Errorf("Operation = %q, want %q", ce.Operation, "decode native")
			}
		}()
		Precondition(false, "decode native", "no slot text")
		t.Fatal("Precondition(false) did not panic")
	})
}

func TestHelperFunctions(t *testing.T) {
	t.Run("NewNotFound", func(t *testing.T) {
		err := NewNotFound("document", "test-id")
		if err.Resource != "document" || err.ID != "test-id" {
			t.Errorf("NewNotFound() = %+v, want Resource=document, ID=test-id", err)
		}
	})

	t.Run("NewValidation", func(t *testing.T) {
		err := NewValidation("range", "out of bounds")
		if err.Field != "range" || err.Message != "out of bounds" {
			t.Errorf("NewValidation() = %+v, unexpected values", err)
		}
	})

	t.Run("NewIO", func(t *testing.T) {
		baseErr := fmt.Errorf("disk full")
		err := NewIO("write", "/tmp/test", baseErr)
		if err.Operation != "write" || err.Path != "/tmp/test" || err.Err != baseErr {
			t.Errorf("NewIO() = %+v, unexpected values", err)
		}
	})

	t.Run("NewParse", func(t *testing.T) {
		err := NewParse("markup", "ruby", "expected string")
		if err.Format != "markup" || err.Path != "ruby" || err.Message != "expected string" {
			t.Errorf("NewParse() = %+v, unexpected values", err)
		}
	})

	t.Run("NewUnsupported", func(t *testing.T) {
		err := NewUnsupported("element", "rtc")
		if err.Feature != "element" || err.Reason != "rtc" {
			t.Errorf("NewUnsupported() = %+v, unexpected values", err)
		}
	})
}

func TestWrap(t *testing.T) {
	t.Run("wraps error", func(t *testing.T) {
		baseErr := fmt.Errorf("base error")
		wrapped := Wrap(baseErr, "context message")
		if wrapped == nil {
			t.Fatal("Wrap() returned nil")
		}
		if !errors.Is(wrapped, baseErr) {
			t.Errorf("Wrap() error does not unwrap to base error")
		}
		wantMsg := "context message: base error"
		if wrapped.Error() != wantMsg {
			t.Errorf("Wrap() = %q, want %q", wrapped.Error(), wantMsg)
		}
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		if got := Wrap(nil, "context"); got != nil {
			t.Errorf("Wrap(nil) = %v, want nil", got)
		}
	})
}

func TestWrapf(t *testing.T) {
	baseErr := fmt.Errorf("base error")
	wrapped := Wrapf(baseErr, "failed to decode %s", "ruby")
	wantMsg := "failed to decode ruby: base error"
	if wrapped == nil || wrapped.Error() != wantMsg {
		t.Errorf("Wrapf() = %v, want %q", wrapped, wantMsg)
	}
	if got := Wrapf(nil, "context %s", "test"); got != nil {
		t.Errorf("Wrapf(nil) = %v, want nil", got)
	}
}

func TestIsAs(t *testing.T) {
	err := Wrap(&NotFoundError{Resource: "document", ID: "123"}, "get")
	if !Is(err, ErrNotFound) {
		t.Error("Is() failed to match NotFoundError to ErrNotFound")
	}
	var nfErr *NotFoundError
	if !As(err, &nfErr) {
		t.Fatal("As() failed to match NotFoundError")
	}
	if nfErr.ID != "123" {
		t.Errorf("As() nfErr.ID = %q, want %q", nfErr.ID, "123")
	}
}
