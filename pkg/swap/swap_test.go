package swap

import "testing"

func TestIdentifier_OrderIDTakesPrecedence(t *testing.T) {
	id := Identifier{OrderID: "abc", InitiatorAddress: "0x1111111111111111111111111111111111111111"}
	if !id.ByOrderID() {
		t.Fatalf("expected order id to be the lookup key")
	}
	if got, want := id.String(), "create_id 'abc'"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestIdentifier_AddressOnly(t *testing.T) {
	id := Identifier{InitiatorAddress: "bc1qxyz"}
	if id.ByOrderID() {
		t.Fatalf("expected address lookup")
	}
	if id.IsZero() {
		t.Fatalf("expected non-zero identifier")
	}
	if got, want := id.String(), "initiator_source_address 'bc1qxyz'"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestIdentifier_BlankIsZero(t *testing.T) {
	if !(Identifier{OrderID: "  ", InitiatorAddress: ""}).IsZero() {
		t.Fatalf("expected whitespace-only identifier to be zero")
	}
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0xAbCdEf0123456789aBcDeF0123456789AbCdEf01", "0xabcdef0123456789abcdef0123456789abcdef01"},
		{" 0xabcdef0123456789abcdef0123456789abcdef01 ", "0xabcdef0123456789abcdef0123456789abcdef01"},
		{"tb1qexampleaddress", "tb1qexampleaddress"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeAddress(tt.in); got != tt.want {
			t.Fatalf("NormalizeAddress(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
