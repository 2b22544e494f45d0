package model

import "fmt"

// LaserSettings holds machine configuration for toolpath emission.
type LaserSettings struct {
	FeedRate   float64 `json:"feed_rate"`   // Cutting feed rate mm/min
	LaserPower int     `json:"laser_power"` // S value passed to the laser-on command
	// LaserPasses repeats every panel outline. Thick stock on weak diodes
	// cuts in several passes at full feed instead of one slow pass.
	LaserPasses  int     `json:"laser_passes"`
	HomeFirst    bool    `json:"home_first"`    // Emit the profile home command before cutting
	BedWidth     float64 `json:"bed_width"`     // Work area X in mm, used for fit warnings
	BedHeight    float64 `json:"bed_height"`    // Work area Y in mm
	GCodeProfile string  `json:"gcode_profile"` // Name of the dialect profile to use
}

func DefaultLaserSettings() LaserSettings {
	return LaserSettings{
		FeedRate:     600.0,
		LaserPower:   800,
		LaserPasses:  1,
		HomeFirst:    false,
		BedWidth:     600.0,
		BedHeight:    400.0,
		GCodeProfile: "Grbl",
	}
}

// GCodeProfile defines a post-processor configuration for different
// laser controllers.
type GCodeProfile struct {
	Name        string `json:"name"`        // Profile name
	Description string `json:"description"` // Profile description
	IsBuiltIn   bool   `json:"is_built_in"` // Built-in profiles cannot be edited or deleted
	Units       string `json:"units"`       // "mm" or "inches"

	// Startup codes
	StartCode []string `json:"start_code"` // Commands at start of file
	LaserOn   string   `json:"laser_on"`   // Laser on command (e.g., "M4 S%d")
	LaserOff  string   `json:"laser_off"`  // Laser off command
	HomeAll   string   `json:"home_all"`   // Homing command, empty to skip

	// Motion settings
	AbsoluteMode string `json:"absolute_mode"` // G90 or equivalent
	FeedMode     string `json:"feed_mode"`     // Feed rate mode
	RapidMove    string `json:"rapid_move"`    // G0 or equivalent
	FeedMove     string `json:"feed_move"`     // G1 or equivalent

	// End codes
	EndCode []string `json:"end_code"` // Commands at end of file

	// Comment style
	CommentPrefix string `json:"comment_prefix"` // Comment start (e.g., ";")
	CommentSuffix string `json:"comment_suffix"` // Comment end (if needed, e.g., ")" for Fanuc)

	// Number formatting
	DecimalPlaces int  `json:"decimal_places"` // Number of decimal places for coordinates
	LeadingZeros  bool `json:"leading_zeros"`  // Whether to pad with leading zeros
}

// Built-in GCode profiles. Generic stays last: it is the fallback.
var GCodeProfiles = []GCodeProfile{
	{
		Name:          "Grbl",
		Description:   "Grbl 1.1 in dynamic laser mode ($32=1, M4)",
		IsBuiltIn:     true,
		Units:         "mm",
		StartCode:     []string{"G90", "G21", "G17"},
		LaserOn:       "M4 S%d",
		LaserOff:      "M5",
		HomeAll:       "$H",
		AbsoluteMode:  "G90",
		FeedMode:      "G94",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		CommentSuffix: "",
		DecimalPlaces: 3,
		LeadingZeros:  false,
	},
	{
		Name:          "Grbl-M3",
		Description:   "Grbl 1.1 constant power mode (M3, engravers without $32)",
		IsBuiltIn:     true,
		Units:         "mm",
		StartCode:     []string{"G90", "G21", "G17"},
		LaserOn:       "M3 S%d",
		LaserOff:      "M5",
		HomeAll:       "$H",
		AbsoluteMode:  "G90",
		FeedMode:      "G94",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		CommentSuffix: "",
		DecimalPlaces: 3,
		LeadingZeros:  false,
	},
	{
		Name:          "Marlin",
		Description:   "Marlin 2.x laser/CNC build",
		IsBuiltIn:     true,
		Units:         "mm",
		StartCode:     []string{"G90", "G21"},
		LaserOn:       "M3 S%d",
		LaserOff:      "M5",
		HomeAll:       "G28 X Y",
		AbsoluteMode:  "G90",
		FeedMode:      "G94",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0", "M400"},
		CommentPrefix: ";",
		CommentSuffix: "",
		DecimalPlaces: 3,
		LeadingZeros:  false,
	},
	{
		Name:          "Generic",
		Description:   "Generic standard GCode",
		IsBuiltIn:     true,
		Units:         "mm",
		StartCode:     []string{"G90", "G21"},
		LaserOn:       "M3 S%d",
		LaserOff:      "M5",
		HomeAll:       "G28 X0 Y0",
		AbsoluteMode:  "G90",
		FeedMode:      "G94",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		CommentSuffix: "",
		DecimalPlaces: 3,
		LeadingZeros:  false,
	},
}

// CustomProfiles holds user-defined profiles loaded from the profile
// store at startup. Built-ins always win name clashes.
var CustomProfiles []GCodeProfile

// AllProfiles returns the built-in profiles followed by any custom ones.
func AllProfiles() []GCodeProfile {
	all := make([]GCodeProfile, 0, len(GCodeProfiles)+len(CustomProfiles))
	all = append(all, GCodeProfiles...)
	all = append(all, CustomProfiles...)
	return all
}

// GetProfile returns a GCode profile by name, searching built-in then
// custom profiles, or the Generic profile if not found.
func GetProfile(name string) GCodeProfile {
	for _, p := range AllProfiles() {
		if p.Name == name {
			return p
		}
	}
	return GCodeProfiles[len(GCodeProfiles)-1] // Return Generic (last one)
}

// GetProfileNames returns the names of all available profiles.
func GetProfileNames() []string {
	var names []string
	for _, p := range AllProfiles() {
		names = append(names, p.Name)
	}
	return names
}

// NewCustomProfile returns a new custom profile inheriting the Generic
// dialect as a starting point.
func NewCustomProfile(name string) GCodeProfile {
	p := GCodeProfiles[len(GCodeProfiles)-1]
	p.Name = name
	p.Description = "Custom profile"
	p.IsBuiltIn = false
	p.StartCode = append([]string(nil), p.StartCode...)
	p.EndCode = append([]string(nil), p.EndCode...)
	return p
}

// AddCustomProfile adds or updates a custom profile. Built-in names are
// reserved; adding a profile with an existing custom name replaces it.
func AddCustomProfile(p GCodeProfile) error {
	for _, b := range GCodeProfiles {
		if b.Name == p.Name {
			return fmt.Errorf("profile name %q is reserved by a built-in profile", p.Name)
		}
	}
	p.IsBuiltIn = false
	for i := range CustomProfiles {
		if CustomProfiles[i].Name == p.Name {
			CustomProfiles[i] = p
			return nil
		}
	}
	CustomProfiles = append(CustomProfiles, p)
	return nil
}

// RemoveCustomProfile removes a custom profile by name. Built-in
// profiles cannot be removed.
func RemoveCustomProfile(name string) error {
	for _, b := range GCodeProfiles {
		if b.Name == name {
			return fmt.Errorf("built-in profile %q cannot be removed", name)
		}
	}
	for i := range CustomProfiles {
		if CustomProfiles[i].Name == name {
			CustomProfiles = append(CustomProfiles[:i], CustomProfiles[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("custom profile %q not found", name)
}
