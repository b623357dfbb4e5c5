package vis

import "testing"

func TestFlattenTargets(t *testing.T) {
	flat := FlattenTargets(TargetMap{
		"rna":   {"TP53": 1, "MYC": -1},
		"prot":  {"EGFR": 1},
		"assay": {"AKT1": -1},
	})

	want := map[string]float64{"TP53": 1, "MYC": -1, "EGFR": 1, "AKT1": -1}
	if len(flat) != len(want) {
		t.Fatalf("flattened size = %d, want %d", len(flat), len(want))
	}
	for id, v := range want {
		if flat[id] != v {
			t.Errorf("flat[%q] = %v, want %v", id, flat[id], v)
		}
	}
}

func TestFlattenTargetsCollision(t *testing.T) {
	// Groups fold in sorted key order, so the later group wins.
	flat := FlattenTargets(TargetMap{
		"b_late":  {"TP53": -1},
		"a_early": {"TP53": 1},
	})

	if flat["TP53"] != -1 {
		t.Errorf("collision resolved to %v, want -1 (last sorted group)", flat["TP53"])
	}
}

func TestFlattenTargetsEmpty(t *testing.T) {
	if flat := FlattenTargets(nil); len(flat) != 0 {
		t.Errorf("flatten of nil = %v, want empty", flat)
	}
	if flat := FlattenTargets(TargetMap{}); len(flat) != 0 {
		t.Errorf("flatten of empty = %v, want empty", flat)
	}
}

func TestClassifyRoles(t *testing.T) {
	c := Classify(
		SourceMap{"EGF": 1, "TNF": -1},
		TargetMap{"grp": {"TP53": 1, "MYC": -1}},
	)

	tests := []struct {
		id   string
		want Role
	}{
		{"EGF", RoleSource},
		{"TNF", RoleSource},
		{"TP53", RoleTarget},
		{"MYC", RoleTarget},
		{"RAF1", RoleOther},
	}
	for _, tt := range tests {
		if got := c.Role(tt.id); got != tt.want {
			t.Errorf("Role(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}

	if c.Sources() != 2 {
		t.Errorf("Sources() = %d, want 2", c.Sources())
	}
	if c.Targets() != 2 {
		t.Errorf("Targets() = %d, want 2", c.Targets())
	}
}

func TestClassifySourceWinsOverTarget(t *testing.T) {
	c := Classify(
		SourceMap{"EGFR": 1},
		TargetMap{"grp": {"EGFR": -1}},
	)

	if got := c.Role("EGFR"); got != RoleSource {
		t.Errorf("Role of node in both maps = %v, want RoleSource", got)
	}

	// The signed value must come from the source map, not the target map.
	val, ok := c.SignedValue("EGFR")
	if !ok || val != 1 {
		t.Errorf("SignedValue = (%v, %v), want (1, true)", val, ok)
	}
}

func TestSignedValue(t *testing.T) {
	c := Classify(
		SourceMap{"EGF": 1, "TNF": -1, "IL6": 0},
		TargetMap{"grp": {"TP53": -1}},
	)

	tests := []struct {
		id     string
		want   float64
		wantOK bool
	}{
		{"EGF", 1, true},
		{"TNF", -1, true},
		{"IL6", 0, true},
		{"TP53", -1, true},
		{"RAF1", 0, false},
	}
	for _, tt := range tests {
		got, ok := c.SignedValue(tt.id)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("SignedValue(%q) = (%v, %v), want (%v, %v)", tt.id, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRoleString(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleSource, "source"},
		{RoleTarget, "target"},
		{RoleOther, "other"},
	}
	for _, tt := range tests {
		if got := tt.role.String(); got != tt.want {
			t.Errorf("Role(%d).String() = %q, want %q", tt.role, got, tt.want)
		}
	}
}
