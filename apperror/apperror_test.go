package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without internal err",
			err:  Validation("Missing required fields"),
			want: "code=2001, message=Missing required fields",
		},
		{
			name: "error with internal err",
			err:  Internal("render failed", errors.New("template missing")),
			want: "code=5001, message=render failed, err=template missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConstructorDefaults(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantStatus int
		wantCode   int
		wantMsg    string
	}{
		{"validation", Validation(""), http.StatusBadRequest, CodeValidation, "invalid input"},
		{"not found", NotFound(""), http.StatusNotFound, CodeNotFound, "resource not found"},
		{"conflict", Conflict(""), http.StatusConflict, CodeConflict, "current state does not allow operation"},
		{"unauthorized", Unauthorized(""), http.StatusUnauthorized, CodeUnauthorized, "unauthorized"},
		{"forbidden", Forbidden(""), http.StatusForbidden, CodeForbidden, "forbidden"},
		{"internal", Internal("", nil), http.StatusInternalServerError, CodeInternal, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.HTTPStatus != tt.wantStatus {
				t.Errorf("HTTPStatus = %d, want %d", tt.err.HTTPStatus, tt.wantStatus)
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.wantMsg)
			}
		})
	}
}

func TestAsAndStatusOf(t *testing.T) {
	wrapped := fmt.Errorf("approve: %w", NotFound("Request not found"))

	if got := StatusOf(wrapped); got != http.StatusNotFound {
		t.Errorf("StatusOf(wrapped) = %d, want 404", got)
	}
	if !IsCode(wrapped, CodeNotFound) {
		t.Error("IsCode(wrapped, CodeNotFound) = false")
	}

	plain := errors.New("connection reset")
	appErr := As(plain)
	if appErr.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("As(plain).HTTPStatus = %d, want 500", appErr.HTTPStatus)
	}
	if !errors.Is(appErr, plain) {
		t.Error("As(plain) should unwrap to the original error")
	}
	if StatusOf(nil) != http.StatusOK {
		t.Error("StatusOf(nil) should be 200")
	}
}

func TestWithData(t *testing.T) {
	fields := map[string]string{"student_name": "Only letters and spaces are allowed"}
	err := Validation("Invalid fields").WithData(fields)
	got, ok := err.Data.(map[string]string)
	if !ok || got["student_name"] == "" {
		t.Errorf("Data = %v, want field map", err.Data)
	}
}
