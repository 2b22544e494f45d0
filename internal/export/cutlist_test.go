package export

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/BoxForge/internal/model"
	"github.com/xuri/excelize/v2"
)

// readCutList opens a written workbook and returns its rows.
func readCutList(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot open written workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("cannot read workbook rows: %v", err)
	}
	return rows
}

func TestExportCutListXLSX_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cutlist.xlsx")

	if err := ExportCutListXLSX(path, buildTestBox()); err != nil {
		t.Fatalf("ExportCutListXLSX returned error: %v", err)
	}

	rows := readCutList(t, path)

	// Header + 3 panels + totals
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	if rows[0][0] != "Panel" {
		t.Errorf("expected header 'Panel', got %q", rows[0][0])
	}
	if rows[0][3] != "Area (mm²)" {
		t.Errorf("expected area header, got %q", rows[0][3])
	}
	if rows[1][0] != "front" {
		t.Errorf("expected first panel 'front', got %q", rows[1][0])
	}
	if rows[1][1] != "100" {
		t.Errorf("expected front width '100', got %q", rows[1][1])
	}
	if rows[3][1] != "106.1" {
		t.Errorf("expected bottom width '106.1', got %q", rows[3][1])
	}
	if rows[4][0] != "Total (3 panels)" {
		t.Errorf("expected totals row label, got %q", rows[4][0])
	}
}

func TestExportCutListXLSX_EmptyBox(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.xlsx")

	if err := ExportCutListXLSX(path, model.Box{}); err == nil {
		t.Fatal("expected error for empty box, got nil")
	}
}

func TestExportCutListXLSX_Totals(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "totals.xlsx")

	box := model.Box{
		Panels: []model.Panel{
			{ID: "a", Label: "a", Outline: rectOutline(0, 0, 10, 10)},
			{ID: "b", Label: "b", Outline: rectOutline(20, 0, 10, 10)},
		},
	}

	if err := ExportCutListXLSX(path, box); err != nil {
		t.Fatalf("ExportCutListXLSX returned error: %v", err)
	}

	rows := readCutList(t, path)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	// Second panel sits at x=20 in the layout
	if rows[2][5] != "20" {
		t.Errorf("expected panel b at X 20, got %q", rows[2][5])
	}

	totals := rows[3]
	if len(totals) < 5 {
		t.Fatalf("totals row too short: %v", totals)
	}
	if totals[0] != "Total (2 panels)" {
		t.Errorf("unexpected totals label %q", totals[0])
	}
	if totals[3] != "200" {
		t.Errorf("expected total area '200', got %q", totals[3])
	}
	if totals[4] != "80" {
		t.Errorf("expected total cut length '80', got %q", totals[4])
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.2345, 1.23},
		{5.678, 5.68},
		{10, 10},
	}
	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
