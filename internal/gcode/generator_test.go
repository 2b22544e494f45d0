package gcode

import (
	"strings"
	"testing"

	"github.com/piwi3910/BoxForge/internal/model"
)

// newTestLaser returns LaserSettings suitable for testing with
// predictable output.
func newTestLaser() model.LaserSettings {
	s := model.DefaultLaserSettings()
	s.FeedRate = 1000.0
	s.LaserPower = 500
	s.LaserPasses = 1
	s.HomeFirst = false
	s.GCodeProfile = "Generic"
	return s
}

// squarePanel returns a closed 10x10 panel at (5, 5).
func squarePanel() model.Panel {
	return model.Panel{
		ID:    "test1",
		Label: "front",
		Outline: model.Outline{
			{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 15, Y: 15}, {X: 5, Y: 15}, {X: 5, Y: 5},
		},
	}
}

func newTestBox() model.Box {
	return model.Box{
		Params: model.DefaultBoxParameters(),
		Panels: []model.Panel{squarePanel()},
	}
}

func TestGenerate_HeaderAndFooter(t *testing.T) {
	gen := New(newTestLaser())
	code := gen.Generate("test-box", newTestBox())

	for _, want := range []string{"BoxForge GCode - test-box", "Profile: Generic", "G90", "G21", "M2"} {
		if !strings.Contains(code, want) {
			t.Errorf("expected generated code to contain %q", want)
		}
	}
	if !strings.HasSuffix(strings.TrimSpace(code), "M2") {
		t.Error("expected program to end with the profile end code")
	}
}

func TestGenerate_LaserWrapsEachPanel(t *testing.T) {
	gen := New(newTestLaser())
	code := gen.Generate("test-box", newTestBox())

	if got := strings.Count(code, "M3 S500"); got != 1 {
		t.Errorf("expected exactly one laser-on command, got %d", got)
	}
	// One M5 after the panel, one more from the Generic end code.
	if got := strings.Count(code, "M5"); got != 2 {
		t.Errorf("expected panel and footer laser-off commands, got %d", got)
	}
	onIdx := strings.Index(code, "M3 S500")
	cutIdx := strings.Index(code, "G1 ")
	if cutIdx < onIdx {
		t.Error("laser must be on before the first feed move")
	}
}

func TestGenerate_MultiPassRepeatsOutlineWithoutRetoggling(t *testing.T) {
	laser := newTestLaser()
	laser.LaserPasses = 3
	gen := New(laser)

	code := gen.Generate("test-box", newTestBox())

	// A closed square is 4 feed moves per pass.
	if got := strings.Count(code, "G1 "); got != 12 {
		t.Errorf("expected 12 feed moves for 3 passes, got %d", got)
	}
	if !strings.Contains(code, "Pass 2/3") {
		t.Error("expected pass comments on multi-pass jobs")
	}
	if got := strings.Count(code, "M3 S500"); got != 1 {
		t.Errorf("laser should stay on between passes, got %d on commands", got)
	}
}

func TestGenerate_HomeFirst(t *testing.T) {
	laser := newTestLaser()
	laser.HomeFirst = true
	gen := New(laser)

	code := gen.Generate("test-box", newTestBox())
	if !strings.Contains(code, "G28 X0 Y0") {
		t.Error("expected Generic homing command when HomeFirst is set")
	}

	gen = New(newTestLaser())
	code = gen.Generate("test-box", newTestBox())
	if strings.Contains(code, "G28") {
		t.Error("expected no homing command by default")
	}
}

func TestGenerate_ProfileSwitchChangesDialect(t *testing.T) {
	laser := newTestLaser()
	laser.GCodeProfile = "Grbl"
	laser.HomeFirst = true

	code := New(laser).Generate("test-box", newTestBox())
	for _, want := range []string{"M4 S500", "M5", "$H"} {
		if !strings.Contains(code, want) {
			t.Errorf("expected Grbl output to contain %q", want)
		}
	}
	if strings.Contains(code, "M3 S500") {
		t.Error("Grbl dynamic mode must not emit the constant-power on command")
	}
	if strings.Contains(code, "G28") {
		t.Error("Grbl homes with $H, not G28")
	}
}

func TestGenerate_CoordinateFormatting(t *testing.T) {
	gen := New(newTestLaser())
	code := gen.Generate("test-box", newTestBox())

	// Generic profile formats with 3 decimal places.
	if !strings.Contains(code, "X5.000 Y5.000") {
		t.Error("expected coordinates formatted to the profile decimal places")
	}
}

func TestGenerate_SkipsDegenerateOutline(t *testing.T) {
	box := model.Box{Panels: []model.Panel{{
		ID:      "bad",
		Label:   "segment",
		Outline: model.Outline{{X: 0, Y: 0}, {X: 10, Y: 0}},
	}}}
	gen := New(newTestLaser())

	code := gen.Generate("test-box", box)

	if !strings.Contains(code, "WARNING") {
		t.Error("expected a warning comment for a degenerate outline")
	}
	if strings.Contains(code, "M3 S500") {
		t.Error("laser must never fire for a skipped panel")
	}
}

func TestGenerate_ClosesOpenOutlines(t *testing.T) {
	open := model.Panel{
		ID:    "open1",
		Label: "imported",
		Outline: model.Outline{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		},
	}
	gen := New(newTestLaser())

	code := gen.Generate("test-box", model.Box{Panels: []model.Panel{open}})

	// 3 vertex moves plus the synthesized closing move.
	if got := strings.Count(code, "G1 "); got != 4 {
		t.Errorf("expected closing feed move for open outline, got %d moves", got)
	}
	lines := strings.Split(code, "\n")
	last := ""
	for _, line := range lines {
		if strings.HasPrefix(line, "G1 ") {
			last = line
		}
	}
	if !strings.Contains(last, "X0.000 Y0.000") {
		t.Errorf("expected final feed move back to the start, got %q", last)
	}
}

func TestGeneratePanels_BareList(t *testing.T) {
	gen := New(newTestLaser())
	code := gen.GeneratePanels("sheet-2", []model.Panel{squarePanel()})

	if !strings.Contains(code, "sheet-2") {
		t.Error("expected sheet name in header")
	}
	if !strings.Contains(code, "Panels: 1") {
		t.Error("expected panel count in header")
	}
}
