package services

import "testing"

func TestEditor_CreateAndEditAllowMutation(t *testing.T) {
	for _, mode := range []Mode{ModeCreate, ModeEdit} {
		t.Run(string(mode), func(t *testing.T) {
			ed := NewEditor(mode, NewRowSet(TableOthers, "Others"))

			row, err := ed.AddRow()
			if err != nil {
				t.Fatalf("AddRow() error = %v", err)
			}
			if err := ed.UpdateField(row.ID, "cost", "2.50"); err != nil {
				t.Fatalf("UpdateField() error = %v", err)
			}
			if err := ed.DeleteRow(row.ID); err != nil {
				t.Fatalf("DeleteRow() error = %v", err)
			}
		})
	}
}

func TestEditor_ShowModeIsReadOnly(t *testing.T) {
	rs := NewRowSetFromRows(TableOthers, "Others", []Row{
		{FieldName: "Freight", Cost: "1"},
	})
	ed := NewEditor(ModeShow, rs)

	if ed.Editable() {
		t.Error("show mode should start read-only")
	}
	if _, err := ed.AddRow(); err == nil {
		t.Error("AddRow should fail in show mode")
	}
	if err := ed.UpdateField(rs.Rows[0].ID, "cost", "9"); err == nil {
		t.Error("UpdateField should fail in show mode")
	}
	if err := ed.DeleteRow(rs.Rows[0].ID); err == nil {
		t.Error("DeleteRow should fail in show mode")
	}
	if rs.Rows[0].Cost != "1" {
		t.Errorf("row mutated in read-only mode: cost = %q", rs.Rows[0].Cost)
	}
}

func TestEditor_ToggleEditUnlocksShowMode(t *testing.T) {
	rs := NewRowSetFromRows(TableOthers, "Others", []Row{
		{FieldName: "Freight", Cost: "1"},
	})
	ed := NewEditor(ModeShow, rs)

	ed.ToggleEdit()
	if !ed.Editable() {
		t.Fatal("expected editor editable after toggle")
	}
	if err := ed.UpdateField(rs.Rows[0].ID, "cost", "4"); err != nil {
		t.Fatalf("UpdateField() after toggle error = %v", err)
	}
	if !almostEqual(rs.Subtotal(), 4) {
		t.Errorf("Subtotal() = %v, want 4", rs.Subtotal())
	}

	ed.ToggleEdit()
	if ed.Editable() {
		t.Error("expected editor read-only after second toggle")
	}
}

func TestEditor_ToggleDoesNotAffectOtherEditors(t *testing.T) {
	rs := NewRowSet(TableOthers, "Others")
	a := NewEditor(ModeShow, rs)
	b := NewEditor(ModeShow, rs)

	a.ToggleEdit()
	if b.Editable() {
		t.Error("toggle leaked between editors")
	}
}
