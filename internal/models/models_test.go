package models

import "testing"

func TestSlugID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Cup Cake", "cup-cake"},
		{"cup  cake", "cup-cake"},
		{"  Parfait!  ", "parfait"},
		{"Zobo (Large)", "zobo-large"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := SlugID(tt.in); got != tt.want {
			t.Errorf("SlugID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidPaymentMode(t *testing.T) {
	for _, m := range PaymentModes {
		if !ValidPaymentMode(m) {
			t.Errorf("%q rejected", m)
		}
	}
	for _, m := range []string{"pos", "Card", ""} {
		if ValidPaymentMode(m) {
			t.Errorf("%q accepted", m)
		}
	}
}
