package naming

import "testing"

func TestPluralize(t *testing.T) {
	tests := []struct {
		singular string
		plural   string
	}{
		// Suffix rules
		{"user", "users"},
		{"category", "categories"},
		{"bus", "buses"},
		{"fox", "foxes"},
		{"watch", "watches"},
		{"dish", "dishes"},
		{"quiz", "quizes"},
		{"day", "days"}, // vowel + y just takes "s"

		// Irregulars
		{"person", "people"},
		{"child", "children"},
		{"man", "men"},
		{"woman", "women"},
		{"tooth", "teeth"},
		{"mouse", "mice"},

		// Case preservation on irregulars
		{"Person", "People"},
		{"PERSON", "PEOPLE"},

		{"", ""},
	}

	for _, tt := range tests {
		if got := Pluralize(tt.singular); got != tt.plural {
			t.Errorf("Pluralize(%q) = %q, want %q", tt.singular, got, tt.plural)
		}
	}
}
