package format

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

func TestCurrencyUSD(t *testing.T) {
	got := Currency(decimal.RequireFromString("150.5"), "usd", language.English)
	if !strings.Contains(got, "$") {
		t.Fatalf("expected dollar symbol in %q", got)
	}
	if !strings.HasSuffix(got, "150.50") {
		t.Fatalf("expected two fraction digits in %q", got)
	}
}

func TestCurrencyZeroFractionDigits(t *testing.T) {
	got := Currency(decimal.RequireFromString("1500.4"), "JPY", language.English)
	if strings.Contains(got, ".") {
		t.Fatalf("expected no fraction digits for JPY, got %q", got)
	}
	if !strings.HasSuffix(got, "500") {
		t.Fatalf("unexpected JPY rendering %q", got)
	}
}

func TestCurrencyUnknownCodeFallsBack(t *testing.T) {
	got := Currency(decimal.RequireFromString("12.5"), "zz1", language.English)
	if got != "12.50 ZZ1" {
		t.Fatalf("Currency fallback = %q, want %q", got, "12.50 ZZ1")
	}
}

func TestRoundToPrecision(t *testing.T) {
	tests := []struct {
		v      float64
		digits int
		want   float64
	}{
		{1.25, 1, 1.3},
		{1.24, 1, 1.2},
		{33.1249, 2, 33.12},
		{0.96, 1, 1.0},
		{7, 0, 7},
	}

	for _, tt := range tests {
		if got := RoundToPrecision(tt.v, tt.digits); got != tt.want {
			t.Errorf("RoundToPrecision(%v, %d) = %v, want %v", tt.v, tt.digits, got, tt.want)
		}
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		miles float64
		want  string
	}{
		{1.0, "1.0 mile"},
		{0.96, "1.0 mile"},
		{1.23, "1.2 miles"},
		{0, "0.0 miles"},
		{12.36, "12.4 miles"},
	}

	for _, tt := range tests {
		if got := Distance(tt.miles); got != tt.want {
			t.Errorf("Distance(%v) = %q, want %q", tt.miles, got, tt.want)
		}
	}
}

func TestOrdinalSuffix(t *testing.T) {
	tests := map[int]string{
		1: "st", 2: "nd", 3: "rd", 4: "th", 11: "th", 12: "th", 13: "th",
		21: "st", 22: "nd", 23: "rd", 24: "th", 30: "th", 31: "st",
	}
	for day, want := range tests {
		if got := OrdinalSuffix(day); got != want {
			t.Errorf("OrdinalSuffix(%d) = %q, want %q", day, got, want)
		}
	}
}

func TestBriefDate(t *testing.T) {
	ts := time.Date(2017, time.August, 10, 17, 0, 0, 0, time.UTC)

	if got, want := BriefDate(ts, "after"), "Aug 10th after 5:00 PM"; got != want {
		t.Errorf("BriefDate = %q, want %q", got, want)
	}
	if got, want := BriefDate(ts, ""), "Aug 10th 5:00 PM"; got != want {
		t.Errorf("BriefDate without separator = %q, want %q", got, want)
	}
}

func TestShortInterval(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       string
	}{
		{
			name:  "same month",
			start: time.Date(2017, time.August, 4, 9, 0, 0, 0, time.UTC),
			end:   time.Date(2017, time.August, 12, 17, 0, 0, 0, time.UTC),
			want:  "Aug 4 – 12",
		},
		{
			name:  "month boundary",
			start: time.Date(2017, time.August, 30, 9, 0, 0, 0, time.UTC),
			end:   time.Date(2017, time.September, 2, 17, 0, 0, 0, time.UTC),
			want:  "Aug 30 – Sep 2",
		},
		{
			name:  "year boundary",
			start: time.Date(2017, time.January, 4, 9, 0, 0, 0, time.UTC),
			end:   time.Date(2018, time.January, 6, 17, 0, 0, 0, time.UTC),
			want:  "Jan 4 – Jan 6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortInterval(tt.start, tt.end); got != tt.want {
				t.Errorf("ShortInterval = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithTime(t *testing.T) {
	loc := time.FixedZone("test", -7*3600)
	day := time.Date(2017, time.August, 4, 23, 45, 12, 500, loc)

	got := WithTime(day, 9, 0)
	want := time.Date(2017, time.August, 4, 9, 0, 0, 0, loc)
	if !got.Equal(want) || got.Location() != loc {
		t.Fatalf("WithTime = %v, want %v", got, want)
	}
}
