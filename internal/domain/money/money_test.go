package money

import (
	"errors"
	"testing"
)

func TestMillionsRoundTrip(t *testing.T) {
	for _, m := range []int64{0, 1, 7, 45, 120, 999, 1_000_000, MaxMillions} {
		a, err := ParseMillions(m)
		if err != nil {
			t.Fatalf("parse %d: %v", m, err)
		}
		if got := a.Millions(); got != m {
			t.Fatalf("expected %d millions to round-trip, got %d", m, got)
		}
	}
}

func TestParseMillionsRejectsOutOfRange(t *testing.T) {
	for _, m := range []int64{-1, MaxMillions + 1, 27_670_116_110_564} {
		if _, err := ParseMillions(m); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("expected %d to be out of range, got %v", m, err)
		}
	}
}

func TestFromMillionsScalesExactly(t *testing.T) {
	if got := FromMillions(35); got != 35_000_000 {
		t.Fatalf("expected 35000000 base units, got %d", got)
	}
}

func TestMillionsTruncatesRemainder(t *testing.T) {
	if got := Amount(2_750_000).Millions(); got != 2 {
		t.Fatalf("expected truncation to 2, got %d", got)
	}
}

func TestAmountString(t *testing.T) {
	if got := Amount(12_500_000).String(); got != "€12.5M" {
		t.Fatalf("unexpected format %q", got)
	}
}
