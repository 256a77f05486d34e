package database

import "testing"

func TestRemoveDiacritics(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Žižkov", "Zizkov"},
		{"café", "cafe"},
		{"plain", "plain"},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := RemoveDiacritics(tc.input); got != tc.expected {
				t.Errorf("RemoveDiacritics(%q) = %q; want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "Main Station", "main station"},
		{"diacritics", "Náměstí Míru", "namesti miru"},
		{"whitespace", "  central   park ", "central park"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeText(tc.input); got != tc.expected {
				t.Errorf("NormalizeText(%q) = %q; want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestMatchesLocation(t *testing.T) {
	tests := []struct {
		name     string
		location string
		filter   string
		expected bool
	}{
		{"empty filter matches", "anywhere", "", true},
		{"exact", "Main Station", "main station", true},
		{"substring", "Main Station, platform 2", "station", true},
		{"diacritics folded", "Náměstí Míru", "namesti", true},
		{"no match", "Main Station", "airport", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MatchesLocation(tc.location, tc.filter); got != tc.expected {
				t.Errorf("MatchesLocation(%q, %q) = %v; want %v", tc.location, tc.filter, got, tc.expected)
			}
		})
	}
}
