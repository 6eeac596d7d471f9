package domain

import "testing"

func TestValidAddress(t *testing.T) {
	valid := []string{
		"0x40ceeEdE9fA9ee09e594aFFb63CFc4994aF5B14e",
		"0x0000000000000000000000000000000000000000",
		"40ceeEdE9fA9ee09e594aFFb63CFc4994aF5B14e", // prefix optional
	}
	for _, addr := range valid {
		if !ValidAddress(addr) {
			t.Errorf("Expected %s to be valid", addr)
		}
	}

	invalid := []string{"", "0x123", "0xZZceeEdE9fA9ee09e594aFFb63CFc4994aF5B14e", "not-an-address"}
	for _, addr := range invalid {
		if ValidAddress(addr) {
			t.Errorf("Expected %s to be invalid", addr)
		}
	}
}

func TestNormalizeAddress(t *testing.T) {
	lower := "0x40ceeede9fa9ee09e594affb63cfc4994af5b14e"
	want := "0x40ceeEdE9fA9ee09e594aFFb63CFc4994aF5B14e"
	if got := NormalizeAddress(lower); got != want {
		t.Errorf("NormalizeAddress(%s) = %s, want %s", lower, got, want)
	}

	// Invalid input passes through unchanged
	if got := NormalizeAddress("bogus"); got != "bogus" {
		t.Errorf("Expected passthrough for invalid input, got %s", got)
	}
}

func TestSameAddress(t *testing.T) {
	a := "0x40ceeEdE9fA9ee09e594aFFb63CFc4994aF5B14e"
	b := "0x40CEEEDE9FA9EE09E594AFFB63CFC4994AF5B14E"
	if !SameAddress(a, b) {
		t.Error("Expected case-insensitive match")
	}
	if SameAddress(a, "0x0000000000000000000000000000000000000000") {
		t.Error("Expected mismatch for different addresses")
	}
}

func TestShortAddress(t *testing.T) {
	got := ShortAddress("0x40ceeEdE9fA9ee09e594aFFb63CFc4994aF5B14e")
	if got != "0x40ce...B14e" {
		t.Errorf("ShortAddress = %s", got)
	}
	if ShortAddress("0x1234") != "0x1234" {
		t.Error("Short input should pass through")
	}
}
