package mathutil

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Round up at midpoint", "1.235", "1.24"},
		{"Round down below midpoint", "1.234", "1.23"},
		{"No rounding needed", "1.23", "1.23"},
		{"Large number", "12345.678", "12345.68"},
		{"Negative number midpoint away from zero", "-1.235", "-1.24"},
		{"Negative number round down", "-1.234", "-1.23"},
		{"Zero", "0", "0"},
		{"Very small positive", "0.001", "0"},
		{"Exactly one cent", "0.01", "0.01"},
		{"Nearly two cents", "0.019", "0.02"},
		{"Half cent", "0.005", "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(d(tt.input))
			if !result.Equal(d(tt.expected)) {
				t.Errorf("Round(%s) = %s, expected %s", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"0", true},
		{"0.004", true},
		{"-0.004", true},
		{"0.005", false},
		{"1", false},
	}

	for _, tt := range tests {
		if got := IsZero(d(tt.input)); got != tt.expected {
			t.Errorf("IsZero(%s) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(d("100.00"), d("100.01"), d("0.01")) {
		t.Error("expected values one cent apart to be within one cent")
	}
	if WithinTolerance(d("100.00"), d("100.02"), d("0.01")) {
		t.Error("expected values two cents apart to fall outside one cent")
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		total    string
		expected string
	}{
		{"Ten percent", "50000", "500000", "10"},
		{"Nine percent", "45000", "500000", "9"},
		{"Fifteen percent", "75000", "500000", "15"},
		{"Zero total", "100", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePercentage(d(tt.value), d(tt.total))
			if !result.Equal(d(tt.expected)) {
				t.Errorf("CalculatePercentage(%s, %s) = %s, expected %s", tt.value, tt.total, result, tt.expected)
			}
		})
	}
}

func TestApplyPercentage(t *testing.T) {
	if got := ApplyPercentage(d("500000"), d("5")); !got.Equal(d("25000")) {
		t.Errorf("ApplyPercentage() = %s, expected 25000", got)
	}
	if got := ApplyPercentage(d("100000"), d("10")); !got.Equal(d("10000")) {
		t.Errorf("ApplyPercentage() = %s, expected 10000", got)
	}
}

func TestPercentConversions(t *testing.T) {
	if got := PercentToFraction(d("5.25")); !got.Equal(d("0.0525")) {
		t.Errorf("PercentToFraction() = %s, expected 0.0525", got)
	}
	if got := FractionToPercent(d("0.0310")); !got.Equal(d("3.1")) {
		t.Errorf("FractionToPercent() = %s, expected 3.1", got)
	}
}
