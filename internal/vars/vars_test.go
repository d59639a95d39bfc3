package vars

import "testing"

func TestRefs(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want []string
	}{
		{name: "plain reference", cell: "${index}", want: []string{"index"}},
		{name: "inside text", cell: "user ${name} logged in", want: []string{"name"}},
		{name: "multiple kinds", cell: "${a} @{b} &{c}", want: []string{"a", "b", "c"}},
		{name: "spaces in name", cell: "${TEST STATUS}", want: []string{"TEST STATUS"}},
		{name: "item access", cell: "${items[0]}", want: []string{"items"}},
		{name: "number literal skipped", cell: "${0}", want: nil},
		{name: "hex literal skipped", cell: "${0xFF}", want: nil},
		{name: "expression skipped", cell: "${index + 1}", want: nil},
		{name: "no references", cell: "plain text", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Refs(tt.cell)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	for input, want := range map[string]string{
		"Open Session":   "opensession",
		"open_session":   "opensession",
		"OPEN  SESSION":  "opensession",
		"already":        "already",
		"Mixed_Case One": "mixedcaseone",
	} {
		if got := Normalize(input); got != want {
			t.Errorf("Normalize(%q) = %q, expected %q", input, got, want)
		}
	}
}

func TestIsBuiltin(t *testing.T) {
	for name, want := range map[string]bool{
		"EMPTY":      true,
		"CURDIR":     true,
		"TEST NAME":  true,
		"TEST TAGS":  true,
		"MY OWN VAR": false,
	} {
		if got := IsBuiltin(name); got != want {
			t.Errorf("IsBuiltin(%q) = %v, expected %v", name, got, want)
		}
	}
}

func TestIsTeardownOnly(t *testing.T) {
	for name, want := range map[string]bool{
		"TEST STATUS":   true,
		"TEST MESSAGE":  true,
		"SUITE STATUS":  true,
		"SUITE MESSAGE": true,
		"test_status":   true,
		"TEST NAME":     false,
	} {
		if got := IsTeardownOnly(name); got != want {
			t.Errorf("IsTeardownOnly(%q) = %v, expected %v", name, got, want)
		}
	}
}
