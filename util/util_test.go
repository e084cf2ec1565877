package util

import "testing"

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "fallback", "later"); got != "fallback" {
		t.Errorf("Coalesce = %q, want %q", got, "fallback")
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("Coalesce all-zero = %d, want 0", got)
	}
	if got := Coalesce(3, 5); got != 3 {
		t.Errorf("Coalesce = %d, want 3", got)
	}
}

func TestStringInSlice(t *testing.T) {
	list := []string{"development", "staging", "production"}
	if !StringInSlice("staging", list) {
		t.Error("StringInSlice should find staging")
	}
	if StringInSlice("qa", list) {
		t.Error("StringInSlice should not find qa")
	}
	if StringInSlice("", nil) {
		t.Error("StringInSlice on nil list should be false")
	}
}
