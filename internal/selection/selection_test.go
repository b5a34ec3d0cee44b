package selection

import (
	"sync"
	"testing"

	"budget/internal/monthkey"
)

func TestNavigationWrapsYears(t *testing.T) {
	s := New()
	s.Set("December-2024")

	if got := s.Next(); got != "January-2025" {
		t.Fatalf("Next = %q", got)
	}
	if got := s.Previous(); got != "December-2024" {
		t.Fatalf("Previous = %q", got)
	}
	if got := s.Previous(); got != "November-2024" {
		t.Fatalf("second Previous = %q", got)
	}
}

func TestReset(t *testing.T) {
	s := New()
	s.Set("January-1999")
	if got := s.Reset(); got != monthkey.Current() {
		t.Fatalf("Reset = %q, want %q", got, monthkey.Current())
	}
	if got := s.Current(); got != monthkey.Current() {
		t.Fatalf("Current after Reset = %q", got)
	}
}

func TestNewStartsAtCurrentMonth(t *testing.T) {
	if got := New().Current(); got != monthkey.Current() {
		t.Fatalf("New selection = %q, want %q", got, monthkey.Current())
	}
}

func TestConcurrentNavigation(t *testing.T) {
	s := New()
	s.Set("January-2020")

	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); s.Next() }()
		go func() { defer wg.Done(); s.Previous() }()
	}
	wg.Wait()

	// Equal numbers of steps in both directions land back where we
	// started, whatever the interleaving.
	if got := s.Current(); got != "January-2020" {
		t.Fatalf("Current = %q, want January-2020", got)
	}
}
