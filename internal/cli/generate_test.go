package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/BoxForge/internal/engine"
	"github.com/piwi3910/BoxForge/internal/model"
)

func testBox(t *testing.T) model.Box {
	t.Helper()
	box, err := engine.New(model.DefaultLayoutConfig()).Generate(model.DefaultBoxParameters())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return box
}

func TestSheetPath(t *testing.T) {
	tests := []struct {
		path  string
		index int
		want  string
	}{
		{"out.svg", 0, "out-sheet1.svg"},
		{"dir/out.gcode", 1, "dir/out-sheet2.gcode"},
		{"out", 0, "out-sheet1"},
	}

	for _, tt := range tests {
		if got := sheetPath(tt.path, tt.index); got != tt.want {
			t.Errorf("sheetPath(%q, %d) = %q, want %q", tt.path, tt.index, got, tt.want)
		}
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"dir/box.gcode", "box"},
		{"crate.nc", "crate"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		if got := outputName(tt.path); got != tt.want {
			t.Errorf("outputName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestWriteBoxOutputSVG(t *testing.T) {
	box := testBox(t)
	path := filepath.Join(t.TempDir(), "box.svg")

	if err := writeBoxOutput(path, box, model.DefaultLaserSettings()); err != nil {
		t.Fatalf("writeBoxOutput: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("output should contain an svg element")
	}
}

func TestWriteBoxOutputDXF(t *testing.T) {
	box := testBox(t)
	path := filepath.Join(t.TempDir(), "box.dxf")

	if err := writeBoxOutput(path, box, model.DefaultLaserSettings()); err != nil {
		t.Fatalf("writeBoxOutput: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("DXF output should not be empty")
	}
}

func TestWriteBoxOutputGCode(t *testing.T) {
	box := testBox(t)
	path := filepath.Join(t.TempDir(), "box.gcode")

	if err := writeBoxOutput(path, box, model.DefaultLaserSettings()); err != nil {
		t.Fatalf("writeBoxOutput: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	code := string(data)
	if !strings.Contains(code, "G21") {
		t.Error("G-code should contain the metric mode word")
	}
	if !strings.Contains(code, "M4 S800") {
		t.Error("G-code should use the default Grbl laser-on command")
	}
}

func TestWriteBoxOutputExtensionCaseInsensitive(t *testing.T) {
	box := testBox(t)
	path := filepath.Join(t.TempDir(), "box.NC")

	if err := writeBoxOutput(path, box, model.DefaultLaserSettings()); err != nil {
		t.Fatalf("writeBoxOutput: %v", err)
	}
}

func TestWriteBoxOutputUnsupported(t *testing.T) {
	box := testBox(t)
	path := filepath.Join(t.TempDir(), "box.txt")

	err := writeBoxOutput(path, box, model.DefaultLaserSettings())
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
	if !strings.Contains(err.Error(), "unsupported output extension") {
		t.Errorf("error = %v, want unsupported extension message", err)
	}
}

func TestGenerateCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "crate.svg")

	cmd := newGenerateCmd()
	cmd.SetArgs([]string{"-o", out, "--width", "120", "--depth", "80", "--height", "60", "--verify"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("output should contain an svg element")
	}
}

func TestGenerateCommandNest(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "box.svg")

	cmd := newGenerateCmd()
	cmd.SetArgs([]string{"-o", out, "--nest", "--bed-width", "200", "--bed-height", "200"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "box-sheet1.svg")); err != nil {
		t.Errorf("first sheet file should exist: %v", err)
	}
	if _, err := os.Stat(out); err == nil {
		t.Error("plain output path should not be written in nest mode")
	}
}

func TestGenerateCommandExtras(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "crate.gcode")
	labels := filepath.Join(dir, "labels.pdf")
	cutlist := filepath.Join(dir, "cuts.xlsx")

	cmd := newGenerateCmd()
	cmd.SetArgs([]string{"-o", out, "--labels", labels, "--cutlist", cutlist})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	for _, path := range []string{out, labels, cutlist} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s should exist: %v", filepath.Base(path), err)
		}
	}
}

func TestGenerateCommandBadExtension(t *testing.T) {
	cmd := newGenerateCmd()
	cmd.SetArgs([]string{"-o", filepath.Join(t.TempDir(), "box.txt")})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestGenerateCommandInvalidDimensions(t *testing.T) {
	cmd := newGenerateCmd()
	cmd.SetArgs([]string{"-o", filepath.Join(t.TempDir(), "box.svg"), "--width", "5"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected validation error for tiny width")
	}
}
