package http

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0,00"},
		{45, "R$ 0,45"},
		{12345, "R$ 123,45"},
		{123456, "R$ 1.234,56"},
		{123456789, "R$ 1.234.567,89"},
		{-500000, "-R$ 5.000,00"},
	}
	for _, tt := range tests {
		if got := formatBRL(tt.cents); got != tt.want {
			t.Errorf("formatBRL(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestParseYearMonth(t *testing.T) {
	now := time.Now()

	r := httptest.NewRequest("GET", "/dashboard?year=2023&month=7", nil)
	year, month := parseYearMonth(r)
	if year != 2023 || month != 7 {
		t.Errorf("got %d-%d, want 2023-7", year, month)
	}

	r = httptest.NewRequest("GET", "/dashboard", nil)
	year, month = parseYearMonth(r)
	if year != now.Year() || month != int(now.Month()) {
		t.Errorf("defaults = %d-%d, want current %d-%d", year, month, now.Year(), int(now.Month()))
	}

	r = httptest.NewRequest("GET", "/dashboard?year=abc&month=13", nil)
	year, month = parseYearMonth(r)
	if year != now.Year() || month != int(now.Month()) {
		t.Errorf("invalid params = %d-%d, want current defaults", year, month)
	}
}

func TestMonthName(t *testing.T) {
	if got := monthName(1); got != "Janeiro" {
		t.Errorf("monthName(1) = %q", got)
	}
	if got := monthName(12); got != "Dezembro" {
		t.Errorf("monthName(12) = %q", got)
	}
	if got := monthName(0); got != "" {
		t.Errorf("monthName(0) = %q, want empty", got)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("  Mercado\x00\x01  "); got != "Mercado" {
		t.Errorf("sanitizeInput = %q", got)
	}
	if got := sanitizeInput("linha1\nlinha2"); got != "linha1\nlinha2" {
		t.Errorf("sanitizeInput stripped newline: %q", got)
	}
}

func TestParseCheckbox(t *testing.T) {
	for _, v := range []string{"on", "true", "1", " ON "} {
		if !parseCheckbox(v) {
			t.Errorf("parseCheckbox(%q) = false", v)
		}
	}
	for _, v := range []string{"", "off", "false", "0"} {
		if parseCheckbox(v) {
			t.Errorf("parseCheckbox(%q) = true", v)
		}
	}
}
