package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"0", 0, true}, // zero magnitude is allowed
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Cents: 6000}
	b := Money{Cents: 5000}

	if got := a.Sub(b); got.Cents != 1000 {
		t.Fatalf("expected 1000, got %d", got.Cents)
	}
	if got := b.Sub(a); got.Cents != -1000 || !got.IsNegative() {
		t.Fatalf("expected -1000 negative, got %d", got.Cents)
	}
	if got := a.Add(b); got.Cents != 11000 {
		t.Fatalf("expected 11000, got %d", got.Cents)
	}
}
