package core

import "testing"

func TestColorANSI(t *testing.T) {
	if ColorDefault.ANSI() != "" {
		t.Error("default color should have no code")
	}
	if Color(200).ANSI() != "" {
		t.Error("unknown color should have no code")
	}

	seen := make(map[string]Color)
	for _, c := range Colors() {
		code := c.ANSI()
		if code == "" {
			t.Errorf("color %d has no code", c)
		}
		if prev, ok := seen[code]; ok {
			t.Errorf("colors %d and %d share code %s", prev, c, code)
		}
		seen[code] = c
	}
	if ColorBrown.ANSI() != "94" {
		t.Errorf("ColorBrown.ANSI() = %q, expected 94", ColorBrown.ANSI())
	}
}
