package services

import (
	"testing"

	"github.com/femi-tobi/dandeb-schools/app/models"
)

func testRoster() []*models.Student {
	return []*models.Student{
		{StudentID: "JSS1-0001", FullName: "Ada Obi", Class: "JSS1"},
		{StudentID: "JSS1-0002", FullName: "Bola Ade", Class: "JSS1"},
		{StudentID: "JSS2-0003", FullName: "Ada Okafor", Class: "JSS2"},
	}
}

func TestResolveStudent(t *testing.T) {
	roster := testRoster()
	tests := []struct {
		name  string
		rName string
		seat  string
		class string
		want  string
	}{
		{"exact name", "Ada Obi", "", "", "JSS1-0001"},
		{"name case and space insensitive", "  ada obi ", "", "", "JSS1-0001"},
		{"seat token when name unknown", "Unknown Person", "JSS1-0002", "", "JSS1-0002"},
		{"seat token alone", "", "JSS2-0003", "", "JSS2-0003"},
		{"prefix within class", "Ada", "", "JSS2", "JSS2-0003"},
		{"prefix needs class", "Ada", "", "", ""},
		{"no match", "Chinedu Eze", "", "JSS1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveStudent(roster, tt.rName, tt.seat, tt.class)
			gotID := ""
			if got != nil {
				gotID = got.StudentID
			}
			if gotID != tt.want {
				t.Errorf("ResolveStudent(%q, %q, %q) = %q, want %q", tt.rName, tt.seat, tt.class, gotID, tt.want)
			}
		})
	}
}

func TestResolveStudentExactNameWinsOverSeat(t *testing.T) {
	roster := testRoster()
	got := ResolveStudent(roster, "Bola Ade", "JSS1-0001", "")
	if got == nil || got.StudentID != "JSS1-0002" {
		t.Errorf("expected name match to win over seat token, got %+v", got)
	}
}

func TestBlockPatch(t *testing.T) {
	patch, err := blockPatch([]string{"10", "", "55.5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !patch.CA1.Valid || patch.CA1.Value != 10 {
		t.Errorf("CA1 = %+v, want value 10", patch.CA1)
	}
	if !patch.CA2.Set || patch.CA2.Valid {
		t.Errorf("CA2 = %+v, want explicit null", patch.CA2)
	}
	if !patch.Exam.Valid || patch.Exam.Value != 55.5 {
		t.Errorf("Exam = %+v, want value 55.5", patch.Exam)
	}
}

func TestBlockPatchRejectsGarbage(t *testing.T) {
	if _, err := blockPatch([]string{"10", "abc", "55"}); err == nil {
		t.Error("expected error for non-numeric cell")
	}
}

func TestBlockPatchShortBlock(t *testing.T) {
	patch, err := blockPatch([]string{"10"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patch.CA2.Set || patch.Exam.Set {
		t.Error("cells beyond the block must stay unset")
	}
}

func TestStripHeaderRows(t *testing.T) {
	data := [][]string{{"Ada Obi", "JSS1-0001", "10", "10", "50"}}

	tests := []struct {
		name string
		rows [][]string
		want int
	}{
		{"no header", data, 1},
		{"header only", append([][]string{{"Name", "ID", "CA1", "CA2", "Exam"}}, data...), 1},
		{
			"header and weights row",
			append([][]string{
				{"Name", "ID", "CA1", "CA2", "Exam"},
				{"", "", "10", "10", "80"},
			}, data...),
			1,
		},
		{"empty input", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripHeaderRows(tt.rows)
			if len(got) != tt.want {
				t.Errorf("kept %d rows, want %d", len(got), tt.want)
			}
		})
	}
}

func TestStripHeaderRowsKeepsDataRows(t *testing.T) {
	rows := [][]string{
		{"Name", "ID", "CA1"},
		{"Ada Obi", "JSS1-0001", "10"},
		{"Bola Ade", "JSS1-0002", "12"},
	}
	got := StripHeaderRows(rows)
	if len(got) != 2 || got[0][0] != "Ada Obi" {
		t.Errorf("unexpected rows after strip: %v", got)
	}
}

func TestCellHelpers(t *testing.T) {
	cells := []string{"a", " b ", "c"}
	if got := cellAt(cells, 1); got != "b" {
		t.Errorf("cellAt trimmed = %q, want b", got)
	}
	if got := cellAt(cells, -1); got != "" {
		t.Errorf("cellAt(-1) = %q, want empty", got)
	}
	if got := cellAt(cells, 5); got != "" {
		t.Errorf("cellAt(5) = %q, want empty", got)
	}

	if got := blockCells(cells, 1, 5); len(got) != 2 {
		t.Errorf("blockCells past end kept %d cells, want 2", len(got))
	}
	if got := blockCells(cells, 9, 3); got != nil {
		t.Errorf("blockCells out of range = %v, want nil", got)
	}

	if !allEmpty([]string{"", "  ", ""}) {
		t.Error("allEmpty should treat whitespace as empty")
	}
	if allEmpty([]string{"", "x"}) {
		t.Error("allEmpty should detect populated cells")
	}
}

func TestDefaultGridLayout(t *testing.T) {
	layout := DefaultGridLayout([]string{"English", "Mathematics"})
	if layout.NameCol != 0 || layout.SeatCol != 1 || layout.ClassCol != -1 {
		t.Errorf("unexpected identity columns: %+v", layout)
	}
	if layout.FirstBlockCol != 2 || layout.BlockWidth != 3 {
		t.Errorf("unexpected block geometry: %+v", layout)
	}
	if len(layout.Subjects) != 2 {
		t.Errorf("got %d subjects, want 2", len(layout.Subjects))
	}
}
