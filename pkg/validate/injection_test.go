package validate

import "testing"

func TestCheckSearchTerm_AllowsNormalInput(t *testing.T) {
	for _, value := range []string{"", "oat", "chicken breast", "crème fraîche", "O'Brien's stew"} {
		if result := CheckSearchTerm("search", value); result != nil {
			t.Errorf("expected %q to pass, got fingerprint %s", value, result.Fingerprint)
		}
	}
}

func TestCheckSearchTerm_FlagsInjection(t *testing.T) {
	for _, value := range []string{
		"' OR '1'='1",
		"1; DROP TABLE ingredients--",
		"' UNION SELECT password FROM users--",
	} {
		result := CheckSearchTerm("search", value)
		if result == nil {
			t.Errorf("expected %q to be flagged", value)
			continue
		}
		if !result.IsSQLi {
			t.Errorf("expected IsSQLi for %q", value)
		}
		if result.ParamName != "search" {
			t.Errorf("expected param name to round-trip, got %q", result.ParamName)
		}
	}
}
