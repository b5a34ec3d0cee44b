package monthkey

import (
	"testing"
	"time"
)

// fixClock pins the package clock to June 15, 2025 for the duration of
// a test.
func fixClock(t *testing.T) {
	t.Helper()
	prev := now
	now = func() time.Time {
		return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
	t.Cleanup(func() { now = prev })
}

func TestDecode(t *testing.T) {
	fixClock(t)

	cases := []struct {
		name  string
		key   string
		month int
		year  int
	}{
		{"plain key", "January-2025", 1, 2025},
		{"case-insensitive", "dEcEmBeR-2024", 12, 2024},
		{"empty defaults to current", "", 6, 2025},
		{"unknown month falls back to current month", "Smarch-2024", 6, 2024},
		{"missing year falls back to current year", "March", 3, 2025},
		{"garbage year falls back to current year", "March-banana", 3, 2025},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, y := Decode(tc.key)
			if m != tc.month || y != tc.year {
				t.Fatalf("Decode(%q) = (%d, %d), want (%d, %d)", tc.key, m, y, tc.month, tc.year)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	if got := Encode(1, 2025); got != "January-2025" {
		t.Fatalf("Encode(1, 2025) = %q", got)
	}
	// Out-of-range months degrade to a year-only string.
	if got := Encode(0, 2025); got != "2025" {
		t.Fatalf("Encode(0, 2025) = %q", got)
	}
	if got := Encode(13, 2025); got != "2025" {
		t.Fatalf("Encode(13, 2025) = %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	fixClock(t)
	for m := 1; m <= 12; m++ {
		for _, y := range []int{1999, 2024, 2025, 2100} {
			gm, gy := Decode(Encode(m, y))
			if gm != m || gy != y {
				t.Fatalf("round trip (%d, %d) -> (%d, %d)", m, y, gm, gy)
			}
		}
	}
}

func TestCurrent(t *testing.T) {
	fixClock(t)
	if got := Current(); got != "June-2025" {
		t.Fatalf("Current = %q", got)
	}
}

func TestDisplayLabel(t *testing.T) {
	fixClock(t)
	if got := DisplayLabel("January-2025"); got != "January 2025" {
		t.Fatalf("DisplayLabel = %q", got)
	}
	if got := DisplayLabel(""); got != "June 2025" {
		t.Fatalf("DisplayLabel(\"\") = %q", got)
	}
}

func TestNavigation(t *testing.T) {
	if m, y := Next(Decode("December-2024")); Encode(m, y) != "January-2025" {
		t.Fatalf("next of December-2024 = %s", Encode(m, y))
	}
	if m, y := Previous(Decode("January-2025")); Encode(m, y) != "December-2024" {
		t.Fatalf("previous of January-2025 = %s", Encode(m, y))
	}
	if m, y := Next(6, 2025); m != 7 || y != 2025 {
		t.Fatalf("Next(6, 2025) = (%d, %d)", m, y)
	}
	if m, y := Previous(6, 2025); m != 5 || y != 2025 {
		t.Fatalf("Previous(6, 2025) = (%d, %d)", m, y)
	}

	// Next and Previous are inverses across a full cycle.
	m, y := 1, 2025
	for i := 0; i < 24; i++ {
		m, y = Next(m, y)
	}
	if m != 1 || y != 2027 {
		t.Fatalf("24 steps forward = (%d, %d)", m, y)
	}
	for i := 0; i < 24; i++ {
		m, y = Previous(m, y)
	}
	if m != 1 || y != 2025 {
		t.Fatalf("24 steps back = (%d, %d)", m, y)
	}
}
