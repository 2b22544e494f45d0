package model

import (
	"errors"
	"testing"
)

func TestBoxTypeFromCode(t *testing.T) {
	for code := 0; code <= 3; code++ {
		bt, err := BoxTypeFromCode(code)
		if err != nil {
			t.Errorf("code %d: unexpected error %v", code, err)
		}
		if int(bt) != code {
			t.Errorf("code %d mapped to %v", code, bt)
		}
	}
}

func TestBoxTypeFromCodeRejectsUnknown(t *testing.T) {
	for _, code := range []int{-1, 4, 99} {
		_, err := BoxTypeFromCode(code)
		if err == nil {
			t.Errorf("code %d: expected error", code)
		}
		if !errors.Is(err, ErrUnknownBoxType) {
			t.Errorf("code %d: error %v is not ErrUnknownBoxType", code, err)
		}
	}
}

func TestJointStyleFromCodeRejectsUnknown(t *testing.T) {
	if _, err := JointStyleFromCode(4); err != nil {
		t.Errorf("code 4 (dogbone) should be valid, got %v", err)
	}
	_, err := JointStyleFromCode(5)
	if !errors.Is(err, ErrUnknownJointStyle) {
		t.Errorf("code 5: error %v is not ErrUnknownJointStyle", err)
	}
	_, err = JointStyleFromCode(-1)
	if !errors.Is(err, ErrUnknownJointStyle) {
		t.Errorf("code -1: error %v is not ErrUnknownJointStyle", err)
	}
}

func TestBoxTypeWalls(t *testing.T) {
	tests := []struct {
		bt   BoxType
		want WallSet
	}{
		{FullBox, WallSet{Top: true, Bottom: true, Front: true, Back: true, Left: true, Right: true}},
		{NoTop, WallSet{Top: false, Bottom: true, Front: true, Back: true, Left: true, Right: true}},
		{NoLeftRight, WallSet{Top: true, Bottom: true, Front: true, Back: true, Left: false, Right: false}},
		{NoFrontBack, WallSet{Top: true, Bottom: true, Front: false, Back: false, Left: true, Right: true}},
	}
	for _, tt := range tests {
		if got := tt.bt.Walls(); got != tt.want {
			t.Errorf("%v walls = %+v, want %+v", tt.bt, got, tt.want)
		}
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := DefaultBoxParameters().Validate(); err != nil {
		t.Fatalf("default parameters should validate, got %v", err)
	}
}

func TestValidateDimensionTooSmall(t *testing.T) {
	p := DefaultBoxParameters()
	p.Y = 19.9
	err := p.Validate()
	if !errors.Is(err, ErrDimensionTooSmall) {
		t.Errorf("error %v is not ErrDimensionTooSmall", err)
	}
}

func TestValidateThicknessOutOfRange(t *testing.T) {
	p := DefaultBoxParameters()
	p.Thickness = 0.5
	if err := p.Validate(); !errors.Is(err, ErrThicknessOutOfRange) {
		t.Errorf("thin: error %v is not ErrThicknessOutOfRange", err)
	}
	p.Thickness = 25
	if err := p.Validate(); !errors.Is(err, ErrThicknessOutOfRange) {
		t.Errorf("thick: error %v is not ErrThicknessOutOfRange", err)
	}
}

func TestValidateDegenerateJoint(t *testing.T) {
	p := DefaultBoxParameters()
	p.FingerJoint.Finger = 1.0
	p.FingerJoint.Space = -1.0
	if err := p.Validate(); !errors.Is(err, ErrDegenerateJoint) {
		t.Errorf("error %v is not ErrDegenerateJoint", err)
	}
}

func TestMaterialPresetApply(t *testing.T) {
	m := NewMaterialPreset("Test Ply", 6.0, 0.2, 450, 900, 2)
	if len(m.ID) != 8 {
		t.Errorf("expected 8-char ID, got %q", m.ID)
	}

	p := DefaultBoxParameters()
	m.ApplyToParameters(&p)
	if p.Thickness != 6.0 || p.Burn != 0.2 {
		t.Errorf("parameters after apply: thickness %v burn %v", p.Thickness, p.Burn)
	}

	s := DefaultLaserSettings()
	m.ApplyToLaser(&s)
	if s.FeedRate != 450 || s.LaserPower != 900 || s.LaserPasses != 2 {
		t.Errorf("laser after apply: %+v", s)
	}
}

func TestDefaultMaterialsHaveUniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range DefaultMaterials() {
		if seen[m.Name] {
			t.Errorf("duplicate material name %q", m.Name)
		}
		seen[m.Name] = true
		if m.Thickness <= 0 {
			t.Errorf("material %q has non-positive thickness", m.Name)
		}
	}
}
