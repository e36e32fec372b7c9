package store

import "testing"

func TestNormalizeIdentity(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"0123456789ABCDEF0123456789abcdef", "0123456789abcdef0123456789abcdef", true},
		{"01234567-89ab-cdef-0123-456789abcdef", "0123456789abcdef0123456789abcdef", true},
		{"0123456789abcdef0123456789abcde", "", false},
		{"0123456789abcdef0123456789abcdef0", "", false},
		{"g123456789abcdef0123456789abcdef", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := NormalizeIdentity(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("NormalizeIdentity(%q) = %q, %v", tc.in, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("NormalizeIdentity(%q) expected error", tc.in)
		}
	}
}

func TestValidUsername(t *testing.T) {
	if ValidUsername("x") {
		t.Fatal("one rune accepted")
	}
	if !ValidUsername("Fritz") {
		t.Fatal("Fritz rejected")
	}
	if !ValidUsername("ÄäÖöÜüßß") {
		t.Fatal("multi-byte runes miscounted")
	}
	if ValidUsername("abcdefghijklmnopq") {
		t.Fatal("17 runes accepted")
	}
}
