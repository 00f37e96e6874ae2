package setlang

import (
	"reflect"
	"testing"
)

func TestValidateAccepts(t *testing.T) {
	tests := []struct {
		source string
		want   []string
	}{
		{"a∪b", []string{"a", "∪", "b"}},
		{"a ∪ b", []string{"a", "∪", "b"}},
		{"alpha∩beta2", []string{"alpha", "∩", "beta2"}},
		{"a-b", []string{"a", "-", "b"}},
		{"a⊕b", []string{"a", "⊕", "b"}},
		{"(a∪b)∩c", []string{"(", "a", "∪", "b", ")", "∩", "c"}},
		{"!a∪b", []string{"!", "a", "∪", "b"}},
		{"!(a⊕b)", []string{"!", "(", "a", "⊕", "b", ")"}},
		{"Ω-a", []string{"Ω", "-", "a"}},
		{"a∪∅", []string{"a", "∪", "∅"}},
		{"!a-b", []string{"!", "a", "-", "b"}},
	}
	for _, tt := range tests {
		got, err := Validate(tt.source)
		if err != nil {
			t.Errorf("Validate(%q) failed: %v", tt.source, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Validate(%q) = %v, want %v", tt.source, got, tt.want)
		}
	}
}

func TestValidateSimplifies(t *testing.T) {
	tests := []struct {
		source string
		want   []string
	}{
		{"!!a", []string{"a"}},
		{"!!!a", []string{"!", "a"}},
		{"!Ω", []string{"∅"}},
		{"!∅", []string{"Ω"}},
		{"(a∪b)", []string{"a", "∪", "b"}},
		{"((a∪b))", []string{"a", "∪", "b"}},
		{"a∪!!b", []string{"a", "∪", "b"}},
		{"a∪!Ω", []string{"a", "∪", "∅"}},
	}
	for _, tt := range tests {
		got, err := Validate(tt.source)
		if err != nil {
			t.Errorf("Validate(%q) failed: %v", tt.source, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Validate(%q) = %v, want %v", tt.source, got, tt.want)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		source string
		want   error
	}{
		{"a∪B", InvalidCharacterError{}},
		{"a+b", InvalidCharacterError{}},
		{"a∪", InvalidNegationError{}},
		{"a-", InvalidNegationError{}},
		{"a!", InvalidNegationError{}},
		{"(a", UnbalancedGroupingError{}},
		{"a)", UnbalancedGroupingError{}},
		{"(a∪b))", UnbalancedGroupingError{}},
		{"!-a", InvalidNegationError{}},
		{"!⊕a", InvalidNegationError{}},
		{"(!)", InvalidNegationError{}},
		{"!a⊕b", InvalidNegationError{}},
		{"!(a∪b)⊕c", InvalidNegationError{}},
		{"()", InvalidJunctionError{}},
		{"a∪(b∪)", InvalidJunctionError{}},
		{"∪a", InvalidJunctionError{}},
		{"a∪∪b", InvalidJunctionError{}},
		{"Ω∅", InvalidJunctionError{}},
		{"aΩ", InvalidJunctionError{}},
		{"a(b∪c)", InvalidJunctionError{}},
		{"(a)(b)", InvalidJunctionError{}},
		{"", InvalidJunctionError{}},
		{"   ", InvalidJunctionError{}},
	}
	for _, tt := range tests {
		_, err := Validate(tt.source)
		if err == nil {
			t.Errorf("Validate(%q) succeeded, want error", tt.source)
			continue
		}
		if reflect.TypeOf(err) != reflect.TypeOf(tt.want) {
			t.Errorf("Validate(%q) error = %T (%v), want %T", tt.source, err, err, tt.want)
		}
	}
}
