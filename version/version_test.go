package version

import "testing"

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.2.3", "1.2.3", 0},
		{"1.2.3", "1.2.4", -1},
		{"1.2.4", "1.2.3", 1},
		{"1.0", "1.0.0", -1},
		{"1.0.0", "1.0", 1},
		{"1.02b1", "1.02", -1},
		{"1.02", "1.02b1", 1},
		{"1.02a1", "1.02b1", -1},
		{"1.02b1", "1.02rc1", -1},
		{"1.02rc1", "1.02rc2", -1},
		{"1.0.1h", "1.0.1", 1},
		{"1.0.1", "1.0.1h", -1},
		{"1.0.1h", "1.0.1h", 0},
		{"2.0", "10.0", -1},
	}

	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}

		// L4: compare(a, b) = -compare(b, a)
		if got, inv := Compare(tt.a, tt.b), Compare(tt.b, tt.a); got != -inv {
			t.Errorf("Compare(%q, %q)=%d not symmetric with Compare(%q, %q)=%d", tt.a, tt.b, got, tt.b, tt.a, inv)
		}
	}
}

func TestCompareTotality(t *testing.T) {
	versions := []string{"0.9", "1.0", "1.0.1", "1.0.1h", "1.02a1", "1.02b1", "1.02rc1", "1.02", "2.0"}
	for _, v := range versions {
		if got := Compare(v, v); got != 0 {
			t.Errorf("Compare(%q, %q) = %d, want 0", v, v, got)
		}
	}

	// versions is listed in ascending order, so every pair is comparable
	// and ordered by its position in the list.
	for i := range versions {
		for j := i + 1; j < len(versions); j++ {
			if got := Compare(versions[i], versions[j]); got != -1 {
				t.Errorf("Compare(%q, %q) = %d, want -1", versions[i], versions[j], got)
			}
			if got := Compare(versions[j], versions[i]); got != 1 {
				t.Errorf("Compare(%q, %q) = %d, want 1", versions[j], versions[i], got)
			}
		}
	}
}

func TestSatisfies(t *testing.T) {
	tests := []struct {
		installed, op, constraint string
		want                      bool
	}{
		{"1.0.1h", Equal, "1.0.1h", true},
		{"1.0.1", Equal, "1.0.1h", false},
		{"1.5", GreaterOrEqual, "2.0", false},
		{"2.5", GreaterOrEqual, "2.0", true},
		{"1.02b1", LessOrEqual, "1.02", true},
		{"1.02", NotEqual, "1.02b1", true},
	}

	for _, tt := range tests {
		got, err := Satisfies(tt.installed, tt.op, tt.constraint)
		if err != nil {
			t.Fatalf("Satisfies(%q, %q, %q): %v", tt.installed, tt.op, tt.constraint, err)
		}
		if got != tt.want {
			t.Errorf("Satisfies(%q, %q, %q) = %v, want %v", tt.installed, tt.op, tt.constraint, got, tt.want)
		}
	}
}

func TestSatisfiesUnknownOperator(t *testing.T) {
	if _, err := Satisfies("1.0", "~=", "1.0"); err == nil {
		t.Fatal("expected an error for an unknown operator")
	}
}
