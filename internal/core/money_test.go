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
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"5000", 500000, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
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

func TestFormatINR(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "₹0"},
		{100, "₹1"},
		{123456, "₹1,234.56"},
		{500000, "₹5,000"},
		{380000, "₹3,800"},
		{123456700, "₹12,34,567"},
		{-120000, "-₹1,200"},
		{99, "₹0.99"},
	}
	for _, tc := range cases {
		if got := FormatINR(tc.cents); got != tc.want {
			t.Fatalf("%d expected %s, got %s", tc.cents, tc.want, got)
		}
	}
}

func TestSignedINR(t *testing.T) {
	in := Transaction{Amount: Money{Cents: 500000}, Kind: Income}
	if got := SignedINR(in); got != "+₹5,000" {
		t.Fatalf("income expected +₹5,000, got %s", got)
	}
	out := Transaction{Amount: Money{Cents: 120000}, Kind: Expense}
	if got := SignedINR(out); got != "-₹1,200" {
		t.Fatalf("expense expected -₹1,200, got %s", got)
	}
}

func TestDateDisplay(t *testing.T) {
	if got := NewDate(2024, 1, 6).Display(); got != "06/01/2024" {
		t.Fatalf("expected 06/01/2024, got %s", got)
	}
}
