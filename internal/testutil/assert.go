// Package testutil provides test assertion helpers and fixture loading.
package testutil

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
)

// Equal fails the test if got != want.
func Equal[T comparable](t testing.TB, want, got T, msgAndArgs ...any) {
	t.Helper()
	if got != want {
		t.Fatalf("%s\n  got:  %v\n  want: %v", formatMsg(msgAndArgs), got, want)
	}
}

// InDelta fails the test if got differs from want by more than delta.
func InDelta(t testing.TB, want, got, delta float64, msgAndArgs ...any) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > delta {
		t.Fatalf("%s\n  got:  %v\n  want: %v (within %v)", formatMsg(msgAndArgs), got, want, delta)
	}
}

// Same fails the test if got and want are not the same pointer.
func Same[T any](t testing.TB, want, got *T, msgAndArgs ...any) {
	t.Helper()
	if want != got {
		t.Fatalf("%s: expected identical pointers, got %p and %p", formatMsg(msgAndArgs), want, got)
	}
}

// NotNil fails the test if v is nil.
func NotNil[T any](t testing.TB, v *T, msgAndArgs ...any) {
	t.Helper()
	if v == nil {
		t.Fatalf("%s: expected non-nil, got nil", formatMsg(msgAndArgs))
	}
}

// Nil fails the test if v is not nil.
func Nil[T any](t testing.TB, v *T, msgAndArgs ...any) {
	t.Helper()
	if v != nil {
		t.Fatalf("%s: expected nil, got %v", formatMsg(msgAndArgs), v)
	}
}

// Len fails the test if len(s) != want.
func Len[T any](t testing.TB, s []T, want int, msgAndArgs ...any) {
	t.Helper()
	if len(s) != want {
		t.Fatalf("%s: expected len %d, got %d", formatMsg(msgAndArgs), want, len(s))
	}
}

// True fails the test if cond is false.
func True(t testing.TB, cond bool, msgAndArgs ...any) {
	t.Helper()
	if !cond {
		t.Fatalf("%s: expected true, got false", formatMsg(msgAndArgs))
	}
}

// False fails the test if cond is true.
func False(t testing.TB, cond bool, msgAndArgs ...any) {
	t.Helper()
	if cond {
		t.Fatalf("%s: expected false, got true", formatMsg(msgAndArgs))
	}
}

// Contains fails the test if s does not contain substr.
func Contains(t testing.TB, s, substr string, msgAndArgs ...any) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Fatalf("%s: expected %q to contain %q", formatMsg(msgAndArgs), s, substr)
	}
}

// ContainsElem fails the test if s has no element equal to v.
func ContainsElem[T comparable](t testing.TB, s []T, v T, msgAndArgs ...any) {
	t.Helper()
	for _, e := range s {
		if e == v {
			return
		}
	}
	t.Fatalf("%s: expected %v to contain %v", formatMsg(msgAndArgs), s, v)
}

// NoError fails the test if err is non-nil.
func NoError(t testing.TB, err error, msgAndArgs ...any) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", formatMsg(msgAndArgs), err)
	}
}

// ErrorIs fails the test if err does not wrap target.
func ErrorIs(t testing.TB, err, target error, msgAndArgs ...any) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("%s: expected error wrapping %v, got %v", formatMsg(msgAndArgs), target, err)
	}
}

func formatMsg(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return "assertion failed"
	}
	msg, ok := msgAndArgs[0].(string)
	if !ok {
		return "assertion failed"
	}
	if len(msgAndArgs) == 1 {
		return msg
	}
	return fmt.Sprintf(msg, msgAndArgs[1:]...)
}
