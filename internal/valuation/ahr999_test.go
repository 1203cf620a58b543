package valuation

import (
	"errors"
	"math"
	"testing"
	"time"

	"market-pulse/internal/domain"
)

var testNow = time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)

func constantCloses(n int, price float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = price
	}
	return out
}

func TestAgeDays(t *testing.T) {
	if got := AgeDays(time.Date(2009, time.January, 4, 23, 0, 0, 0, time.UTC), Genesis); got != 1 {
		t.Fatalf("expected 1 day, got %d", got)
	}
	if got := AgeDays(Genesis, Genesis); got != 0 {
		t.Fatalf("expected 0 days, got %d", got)
	}
}

func TestAHR999KnownValue(t *testing.T) {
	fair := FairValue(AgeDays(testNow, Genesis))
	closes := constantCloses(SampleSize, fair*0.5)

	got, err := AHR999(closes, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-0.5) > 1e-4 {
		t.Fatalf("expected 0.5, got %v", got)
	}
}

func TestAHR999UsesLastTwoHundredCloses(t *testing.T) {
	fair := FairValue(AgeDays(testNow, Genesis))
	closes := append(constantCloses(10, fair*100), constantCloses(200, fair)...)

	got, err := AHR999(closes, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Fatalf("older closes should fall outside the window, got %v", got)
	}
}

func TestAHR999Idempotent(t *testing.T) {
	closes := make([]float64, SampleSize)
	for i := range closes {
		closes[i] = 60000 + float64(i*37%500)
	}

	first, err := AHR999(closes, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := AHR999(closes, testNow)
		if err != nil || again != first {
			t.Fatalf("expected %v on repeat, got %v (%v)", first, again, err)
		}
	}
}

func TestAHR999InsufficientData(t *testing.T) {
	_, err := AHR999(constantCloses(MAWindow-1, 50000), testNow)
	if !errors.Is(err, domain.ErrInsufficientData) {
		t.Fatalf("expected insufficient data, got %v", err)
	}
}

func TestAHR999DiscardsInvalidSamples(t *testing.T) {
	closes := constantCloses(SampleSize, 50000)
	for i := 0; i < 11; i++ {
		closes[i*2] = math.NaN()
	}
	closes[1] = -1
	if _, err := AHR999(closes, testNow); !errors.Is(err, domain.ErrInsufficientData) {
		t.Fatalf("expected insufficient data after discarding invalid closes, got %v", err)
	}
}

func TestAHR999NonPositiveFairValue(t *testing.T) {
	closes := constantCloses(SampleSize, 50000)
	if _, err := AHR999From(closes, Genesis, Genesis); err == nil {
		t.Fatal("expected error for zero network age")
	}
	if _, err := AHR999From(closes, Genesis, testNow); err == nil {
		t.Fatal("expected error when origin is after now")
	}
}
