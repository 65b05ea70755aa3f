package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{Validationf("total required"), Validation},
		{NotFoundf("order %s not found", "x"), NotFound},
		{E(Conflict, "email taken"), Conflict},
		{fmt.Errorf("handler: %w", E(Unauthorized, "bad creds")), Unauthorized},
		{errors.New("boom"), Internal},
		{Wrap(errors.New("db down"), "list orders"), Internal},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Errorf("KindOf(%v)=%s, want %s", tc.err, got, tc.want)
		}
	}
}

func TestMessageHidesInternalDetail(t *testing.T) {
	err := Wrap(errors.New("pq: connection refused"), "list orders")
	if got := Message(err); got != "internal error" {
		t.Fatalf("message=%q", got)
	}
	if got := Message(Validationf("detail is required")); got != "detail is required" {
		t.Fatalf("message=%q", got)
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("cause")
	if !errors.Is(Wrap(cause, "x"), cause) {
		t.Fatal("expected errors.Is to reach the cause")
	}
}
