package utils

import (
	"testing"
)

func TestMoneyCreation(t *testing.T) {
	t.Run("Dollars", func(t *testing.T) {
		m := Dollars(100)
		if int64(m) != 10000 {
			t.Errorf("Expected 10000 cents, got %d", m)
		}
	})

	t.Run("FromFloat", func(t *testing.T) {
		if m := FromFloat(19.99); int64(m) != 1999 {
			t.Errorf("Expected 1999 cents, got %d", m)
		}
		if m := FromFloat(-5.75); int64(m) != -575 {
			t.Errorf("Expected -575 cents, got %d", m)
		}
		if m := FromFloat(0.125); int64(m) != 13 {
			t.Errorf("Expected half-up rounding to 13 cents, got %d", m)
		}
	})
}

func TestMoneyMulRate(t *testing.T) {
	tests := []struct {
		amount Money
		rate   float64
		want   Money
	}{
		{Dollars(100), 0.02, Dollars(2)},
		{FromFloat(123.45), 0.015, FromFloat(1.85)},
		{FromFloat(10.00), 0.005, FromFloat(0.05)},
		{Dollars(500), 0, 0},
	}

	for _, tt := range tests {
		if got := tt.amount.MulRate(tt.rate); got != tt.want {
			t.Errorf("%s.MulRate(%v) = %s, want %s", tt.amount, tt.rate, got, tt.want)
		}
	}
}

func TestMoneyDivInt(t *testing.T) {
	if got := Dollars(299).DivInt(12); got != FromFloat(24.92) {
		t.Errorf("Expected 24.92, got %s", got)
	}
	if got := Dollars(5).DivInt(0); got != Dollars(5) {
		t.Errorf("DivInt(0) should return the value unchanged, got %s", got)
	}
}

func TestMoneyString(t *testing.T) {
	if str := FromFloat(1234.56).String(); str != "1234.56" {
		t.Errorf("Expected '1234.56', got '%s'", str)
	}
	if str := Money(-5075).String(); str != "-50.75" {
		t.Errorf("Expected '-50.75', got '%s'", str)
	}
	if str := Dollars(500).String(); str != "500.00" {
		t.Errorf("Expected '500.00', got '%s'", str)
	}
}

func TestMoneyFormat(t *testing.T) {
	m := FromFloat(1234567.89)

	t.Run("USD", func(t *testing.T) {
		if str := m.Format("USD"); str != "$1,234,567.89" {
			t.Errorf("Expected '$1,234,567.89', got '%s'", str)
		}
	})

	t.Run("EUR", func(t *testing.T) {
		if str := m.Format("EUR"); str != "€1.234.567,89" {
			t.Errorf("Expected '€1.234.567,89', got '%s'", str)
		}
	})

	t.Run("SEK", func(t *testing.T) {
		if str := m.Format("SEK"); str != "1 234 567,89 kr" {
			t.Errorf("Expected '1 234 567,89 kr', got '%s'", str)
		}
	})

	t.Run("unknown falls back to USD", func(t *testing.T) {
		if str := Money(-150).Format("XXX"); str != "-$1.50" {
			t.Errorf("Expected '-$1.50', got '%s'", str)
		}
	})
}
