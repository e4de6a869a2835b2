package model

import "testing"

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"first_name":  "First Name",
		"first-name":  "First Name",
		"firstName":   "First Name",
		"zipCode2":    "Zip Code 2",
		"EMAIL":       "Email",
		"  spaced  ":  "Spaced",
		"":            "",
		"address__ln": "Address Ln",
	}
	for in, want := range cases {
		if got := DefaultLabeler(in); got != want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", in, got, want)
		}
	}
}
