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
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"$45", 4500, true},
		{"1,200.50", 120050, true},
		{"$1,200", 120000, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"-5", 0, false},
		{"+3", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"$", 0, false},
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

func TestCentsFromDollars(t *testing.T) {
	cases := []struct {
		in  float64
		out int64
	}{
		{0, 0},
		{12.34, 1234},
		{0.1, 10},
		{199.999, 20000},
		{-50.25, -5025},
	}
	for _, tc := range cases {
		if got := CentsFromDollars(tc.in); got != tc.out {
			t.Errorf("CentsFromDollars(%v) = %d, want %d", tc.in, got, tc.out)
		}
	}
}

func TestDollars(t *testing.T) {
	if got := (Money{Cents: 1234}).Dollars(); got != 12.34 {
		t.Fatalf("Dollars = %v", got)
	}
}
