package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewErrorUsesTemplate(t *testing.T) {
	err := NewError(ErrForbidden)

	if err.Code != ErrForbidden {
		t.Fatalf("expected code %d, got %d", ErrForbidden, err.Code)
	}
	if err.Status != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", err.Status)
	}
}

func TestNewErrorUnknownCodeFallsBack(t *testing.T) {
	err := NewError(9999)

	if err.Code != ErrUnknown {
		t.Fatalf("expected ErrUnknown, got %d", err.Code)
	}
}

func TestErrorsIsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("delete pin: %w", NewError(ErrPinNotFound))

	if !errors.Is(wrapped, NewError(ErrPinNotFound)) {
		t.Fatalf("expected wrapped error to match ErrPinNotFound")
	}
	if errors.Is(wrapped, NewError(ErrForbidden)) {
		t.Fatalf("did not expect match with ErrForbidden")
	}
	if !HasCode(wrapped, ErrPinNotFound) {
		t.Fatalf("expected HasCode to see ErrPinNotFound")
	}
}

func TestFromKeepsCustomErrorVerbatim(t *testing.T) {
	original := NewError(ErrUnauthenticated)

	if got := From(fmt.Errorf("gate: %w", original)); got != original {
		t.Fatalf("expected the same *CustomError instance back")
	}
	if got := From(errors.New("boom")); got.Code != ErrUnknown {
		t.Fatalf("expected plain errors to map to ErrUnknown, got %d", got.Code)
	}
	if From(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestFromCodeKeepsServerMessage(t *testing.T) {
	err := FromCode(ErrForbidden, "nope")

	if err.Message != "nope" || err.Status != http.StatusForbidden {
		t.Fatalf("unexpected error %+v", err)
	}

	unknown := FromCode(7777, "")
	if unknown.Code != 7777 || unknown.Status != http.StatusInternalServerError {
		t.Fatalf("unexpected error for unknown code %+v", unknown)
	}
}
