package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/BoxForge/internal/model"
)

func writePreset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "box.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write preset: %v", err)
	}
	return path
}

func TestLoadPresetFull(t *testing.T) {
	path := writePreset(t, `
[box]
x = 120.0
y = 80.0
h = 50.0
thickness = 6.0
outside = true
type = "open top"
burn = 0.15
dividers_x = 2
dividers_y = 1
optimize = true

[joint]
finger = 3.0
space = 1.5
play = 0.05
style = "dogbone"
dimple_height = 0.4

[laser]
feed_rate = 450.0
power = 700
passes = 2
home_first = true
bed_width = 400.0
bed_height = 300.0
profile = "Marlin"
`)

	preset, err := loadPreset(path)
	if err != nil {
		t.Fatalf("loadPreset: %v", err)
	}

	params := model.DefaultBoxParameters()
	laser := model.DefaultLaserSettings()
	if err := preset.apply(&params, &laser); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if params.X != 120 || params.Y != 80 || params.H != 50 {
		t.Errorf("dimensions = %v/%v/%v, want 120/80/50", params.X, params.Y, params.H)
	}
	if params.Thickness != 6.0 {
		t.Errorf("Thickness = %v, want 6", params.Thickness)
	}
	if !params.Outside {
		t.Error("Outside should be true")
	}
	if params.BoxType != model.NoTop {
		t.Errorf("BoxType = %v, want NoTop", params.BoxType)
	}
	if params.Burn != 0.15 {
		t.Errorf("Burn = %v, want 0.15", params.Burn)
	}
	if params.DividersX != 2 || params.DividersY != 1 {
		t.Errorf("dividers = %d/%d, want 2/1", params.DividersX, params.DividersY)
	}
	if !params.OptimizeLayout {
		t.Error("OptimizeLayout should be true")
	}

	if params.FingerJoint.Finger != 3.0 {
		t.Errorf("Finger = %v, want 3", params.FingerJoint.Finger)
	}
	if params.FingerJoint.Space != 1.5 {
		t.Errorf("Space = %v, want 1.5", params.FingerJoint.Space)
	}
	if params.FingerJoint.Play != 0.05 {
		t.Errorf("Play = %v, want 0.05", params.FingerJoint.Play)
	}
	if params.FingerJoint.Style != model.JointDogbone {
		t.Errorf("Style = %v, want Dogbone", params.FingerJoint.Style)
	}
	if params.FingerJoint.DimpleHeight != 0.4 {
		t.Errorf("DimpleHeight = %v, want 0.4", params.FingerJoint.DimpleHeight)
	}
	// Keys absent from the file keep their defaults.
	if params.FingerJoint.SurroundingSpaces != 2.0 {
		t.Errorf("SurroundingSpaces = %v, want default 2", params.FingerJoint.SurroundingSpaces)
	}

	if laser.FeedRate != 450 {
		t.Errorf("FeedRate = %v, want 450", laser.FeedRate)
	}
	if laser.LaserPower != 700 {
		t.Errorf("LaserPower = %d, want 700", laser.LaserPower)
	}
	if laser.LaserPasses != 2 {
		t.Errorf("LaserPasses = %d, want 2", laser.LaserPasses)
	}
	if !laser.HomeFirst {
		t.Error("HomeFirst should be true")
	}
	if laser.BedWidth != 400 || laser.BedHeight != 300 {
		t.Errorf("bed = %vx%v, want 400x300", laser.BedWidth, laser.BedHeight)
	}
	if laser.GCodeProfile != "Marlin" {
		t.Errorf("GCodeProfile = %q, want Marlin", laser.GCodeProfile)
	}
}

func TestLoadPresetPartial(t *testing.T) {
	path := writePreset(t, "[box]\nx = 150.0\n")

	preset, err := loadPreset(path)
	if err != nil {
		t.Fatalf("loadPreset: %v", err)
	}

	params := model.DefaultBoxParameters()
	laser := model.DefaultLaserSettings()
	if err := preset.apply(&params, &laser); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if params.X != 150 {
		t.Errorf("X = %v, want 150", params.X)
	}
	defaults := model.DefaultBoxParameters()
	if params.Y != defaults.Y || params.H != defaults.H {
		t.Errorf("Y/H = %v/%v, want defaults %v/%v", params.Y, params.H, defaults.Y, defaults.H)
	}
	if params.Thickness != defaults.Thickness {
		t.Errorf("Thickness = %v, want default %v", params.Thickness, defaults.Thickness)
	}
	if laser.FeedRate != model.DefaultLaserSettings().FeedRate {
		t.Errorf("FeedRate = %v, should be untouched", laser.FeedRate)
	}
}

func TestLoadPresetMissingFile(t *testing.T) {
	_, err := loadPreset(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadPresetBadTOML(t *testing.T) {
	path := writePreset(t, "[box\nx = ")
	_, err := loadPreset(path)
	if err == nil {
		t.Fatal("expected error for malformed TOML")
	}
	if !strings.Contains(err.Error(), "parse preset") {
		t.Errorf("error = %v, want parse preset context", err)
	}
}

func TestPresetApplyBadBoxType(t *testing.T) {
	path := writePreset(t, "[box]\ntype = \"pyramid\"\n")
	preset, err := loadPreset(path)
	if err != nil {
		t.Fatalf("loadPreset: %v", err)
	}

	params := model.DefaultBoxParameters()
	laser := model.DefaultLaserSettings()
	if err := preset.apply(&params, &laser); err == nil {
		t.Fatal("expected error for unknown box type")
	}
}

func TestPresetApplyBadJointStyle(t *testing.T) {
	path := writePreset(t, "[joint]\nstyle = \"wiggly\"\n")
	preset, err := loadPreset(path)
	if err != nil {
		t.Fatalf("loadPreset: %v", err)
	}

	params := model.DefaultBoxParameters()
	laser := model.DefaultLaserSettings()
	if err := preset.apply(&params, &laser); err == nil {
		t.Fatal("expected error for unknown joint style")
	}
}

func TestParseBoxTypeName(t *testing.T) {
	tests := []struct {
		in      string
		want    model.BoxType
		wantErr bool
	}{
		{"Full Box", model.FullBox, false},
		{"full box", model.FullBox, false},
		{"OPEN TOP", model.NoTop, false},
		{"No Left/Right", model.NoLeftRight, false},
		{"no front/back", model.NoFrontBack, false},
		{"  Open Top  ", model.NoTop, false},
		{"0", model.FullBox, false},
		{"1", model.NoTop, false},
		{"3", model.NoFrontBack, false},
		{"7", model.FullBox, true},
		{"pyramid", model.FullBox, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseBoxTypeName(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseBoxTypeName(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseBoxTypeName(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseJointStyleName(t *testing.T) {
	tests := []struct {
		in      string
		want    model.JointStyle
		wantErr bool
	}{
		{"Rectangular", model.JointRectangular, false},
		{"dogbone", model.JointDogbone, false},
		{"SNAP", model.JointSnap, false},
		{"Springs", model.JointSprings, false},
		{"2", model.JointBarbs, false},
		{"9", model.JointRectangular, true},
		{"wiggly", model.JointRectangular, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseJointStyleName(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseJointStyleName(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseJointStyleName(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
