package testutil

import (
	"errors"
	"fmt"
	"testing"
)

// mockTB captures whether a test failure occurred.
type mockTB struct {
	testing.TB // embedded for unimplemented methods
	failed     bool
}

func (m *mockTB) Helper()                           {}
func (m *mockTB) Fatal(args ...any)                 { m.failed = true }
func (m *mockTB) Fatalf(format string, args ...any) { m.failed = true }

func TestEqual(t *testing.T) {
	m := &mockTB{}

	Equal(m, "metre", "metre")
	if m.failed {
		t.Error("Equal(metre, metre) should pass")
	}

	m.failed = false
	Equal(m, 4326, 4152)
	if !m.failed {
		t.Error("Equal(4326, 4152) should fail")
	}
}

func TestInDelta(t *testing.T) {
	m := &mockTB{}

	InDelta(m, 0.02104, 0.021040000000000003, 1e-12)
	if m.failed {
		t.Error("InDelta within tolerance should pass")
	}

	m.failed = false
	InDelta(m, 1, 1.1, 0.01)
	if !m.failed {
		t.Error("InDelta outside tolerance should fail")
	}
}

func TestSame(t *testing.T) {
	m := &mockTB{}
	a, b := new(int), new(int)

	Same(m, a, a)
	if m.failed {
		t.Error("Same(a, a) should pass")
	}

	m.failed = false
	Same(m, a, b)
	if !m.failed {
		t.Error("Same(a, b) should fail")
	}
}

func TestErrorIs(t *testing.T) {
	m := &mockTB{}
	sentinel := errors.New("sentinel")

	ErrorIs(m, fmt.Errorf("wrapped: %w", sentinel), sentinel)
	if m.failed {
		t.Error("ErrorIs on wrapped sentinel should pass")
	}

	m.failed = false
	ErrorIs(m, errors.New("other"), sentinel)
	if !m.failed {
		t.Error("ErrorIs on unrelated error should fail")
	}
}
