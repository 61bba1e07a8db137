package slug_test

import (
	"strings"
	"testing"

	"shopfront/internal/slug"
)

func TestMake(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Game Boy Color", "game-boy-color"},
		{"  Super  Nintendo!!  ", "super-nintendo"},
		{"100% Cotton T-Shirt", "100-cotton-t-shirt"},
		{"Café au Lait", "caf-au-lait"},
		{"---", ""},
		{"", ""},
		{"already-a-slug", "already-a-slug"},
	}
	for _, c := range cases {
		if got := slug.Make(c.in); got != c.want {
			t.Errorf("Make(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMakeIdempotent(t *testing.T) {
	names := []string{"Game Boy Color", "Zenith Royal 500 (1960s)", "a  b  c", "X"}
	for _, n := range names {
		once := slug.Make(n)
		if twice := slug.Make(once); twice != once {
			t.Errorf("Make not idempotent for %q: %q -> %q", n, once, twice)
		}
	}
}

func TestMakeAlphabet(t *testing.T) {
	for _, n := range []string{"Philco 1939!", "a_b__c", "--lead trail--", "UPPER lower 42"} {
		s := slug.Make(n)
		if strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") || strings.Contains(s, "--") {
			t.Errorf("Make(%q) = %q has bad hyphens", n, s)
		}
		for _, r := range s {
			ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			if !ok {
				t.Errorf("Make(%q) = %q contains %q", n, s, r)
			}
		}
	}
}
