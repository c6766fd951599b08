package types

import "testing"

func TestTable_Append(t *testing.T) {
	tbl := NewTable("Compound", "Normalized name", "MolecularWeight")

	if err := tbl.Append(Row{Text("aspirin"), Text("ASPIRIN"), Float(180.16)}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := tbl.Append(Row{Text("caffeine"), Text("CAFFEINE"), Float(194.19)}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}
	if tbl.Index[0] != 0 || tbl.Index[1] != 1 {
		t.Errorf("Index = %v, want [0 1]", tbl.Index)
	}
}

func TestTable_Append_WrongArity(t *testing.T) {
	tbl := NewTable("Compound", "Normalized name")
	if err := tbl.Append(Row{Text("aspirin")}); err == nil {
		t.Fatal("expected error for short row, got nil")
	}
	if tbl.Len() != 0 {
		t.Errorf("rejected row was stored, Len() = %d", tbl.Len())
	}
}

func TestTable_Column(t *testing.T) {
	tbl := NewTable("Compound", "Normalized name", "TPSA")
	if i, ok := tbl.Column("TPSA"); !ok || i != 2 {
		t.Errorf("Column(TPSA) = %d, %v, want 2, true", i, ok)
	}
	if _, ok := tbl.Column("XLogP"); ok {
		t.Error("Column(XLogP) found in table without it")
	}
}

func TestTable_Clone_Independent(t *testing.T) {
	tbl := NewTable("Compound")
	_ = tbl.Append(Row{Text("aspirin")})

	cp := tbl.Clone()
	cp.Rows[0][0] = Text("changed")
	cp.Columns[0] = "Other"

	if tbl.Rows[0][0].Text() != "aspirin" {
		t.Errorf("original row mutated through clone: %v", tbl.Rows[0][0])
	}
	if tbl.Columns[0] != "Compound" {
		t.Errorf("original columns mutated through clone: %v", tbl.Columns)
	}
}

func TestValue_Numeric(t *testing.T) {
	tests := []struct {
		name   string
		v      Value
		want   float64
		wantOK bool
	}{
		{"int", Int(12), 12, true},
		{"float", Float(3.14), 3.14, true},
		{"text", Text("abc"), 0, false},
		{"zero value is empty text", Value{}, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.v.Numeric()
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("Numeric() = %v, %v, want %v, %v", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Int(-3), "-3"},
		{Float(180.16), "180.16"},
		{Float(2), "2"},
		{Text("C9H8O4"), "C9H8O4"},
	}
	for _, tc := range tests {
		if got := tc.v.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}
