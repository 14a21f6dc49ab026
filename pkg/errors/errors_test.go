package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "plain",
			err:  New(ErrCodeInvalidSection, "unknown section %q", "returns"),
			want: `INVALID_SECTION: unknown section "returns"`,
		},
		{
			name: "wrapped",
			err:  Wrap(ErrCodeInvalidConfig, errors.New("toml: line 3"), "read %s", "labelkit.toml"),
			want: "INVALID_CONFIG: read labelkit.toml: toml: line 3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "write label.png")
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap did not return the cause")
	}
}

func TestCodeLookup(t *testing.T) {
	inner := New(ErrCodeInvalidOrder, "order has 4 sections, want 5")
	tests := []struct {
		name     string
		err      error
		wantCode Code
		wantMsg  string
	}{
		{"coded", inner, ErrCodeInvalidOrder, "order has 4 sections, want 5"},
		{"outer code wins", Wrap(ErrCodeInvalidScript, inner, "line 2: order"), ErrCodeInvalidScript, "line 2: order"},
		{"behind fmt wrap", fmt.Errorf("build: %w", inner), ErrCodeInvalidOrder, "order has 4 sections, want 5"},
		{"plain", errors.New("boom"), "", "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q", got, tt.wantCode)
			}
			if tt.wantCode != "" && !Is(tt.err, tt.wantCode) {
				t.Errorf("Is(%q) = false", tt.wantCode)
			}
			if Is(tt.err, ErrCodeNotFound) {
				t.Error("Is(NOT_FOUND) = true")
			}
			if got := UserMessage(tt.err); got != tt.wantMsg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantMsg)
			}
		})
	}

	if GetCode(nil) != "" || Is(nil, ErrCodeInternal) {
		t.Error("nil error has a code")
	}
}
