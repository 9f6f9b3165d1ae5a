package services

import "fmt"

// Mode is the interaction mode a row-set is rendered in. One
// mode-parameterized editor replaces separate create/edit/show
// implementations so totals cannot drift between them.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
	ModeShow   Mode = "show"
)

// Editor wraps a row-set with mode gating. Create and edit modes allow
// all mutations; show mode is read-only until ToggleEdit is called.
// The toggle is local state and is never persisted.
type Editor struct {
	Mode   Mode
	RowSet *RowSet

	editToggled bool
}

func NewEditor(mode Mode, rs *RowSet) *Editor {
	return &Editor{Mode: mode, RowSet: rs}
}

// Editable reports whether mutations are currently allowed.
func (ed *Editor) Editable() bool {
	if ed.Mode == ModeShow {
		return ed.editToggled
	}
	return true
}

// ToggleEdit flips the local show-mode edit toggle.
func (ed *Editor) ToggleEdit() {
	ed.editToggled = !ed.editToggled
}

// AddRow appends a row when the editor is editable.
func (ed *Editor) AddRow() (Row, error) {
	if !ed.Editable() {
		return Row{}, ed.readOnlyErr()
	}
	return ed.RowSet.AddRow(), nil
}

// DeleteRow removes a row when the editor is editable.
func (ed *Editor) DeleteRow(id string) error {
	if !ed.Editable() {
		return ed.readOnlyErr()
	}
	if !ed.RowSet.DeleteRow(id) {
		return fmt.Errorf("row %q not found in %s", id, ed.RowSet.TableName)
	}
	return nil
}

// UpdateField updates a row field when the editor is editable.
func (ed *Editor) UpdateField(id, field, raw string) error {
	if !ed.Editable() {
		return ed.readOnlyErr()
	}
	return ed.RowSet.UpdateField(id, field, raw)
}

func (ed *Editor) readOnlyErr() error {
	return fmt.Errorf("%s is read-only in %s mode", ed.RowSet.TableName, ed.Mode)
}
