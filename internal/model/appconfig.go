package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default box and laser settings applied to new projects
	DefaultThickness    float64 `json:"default_thickness"`
	DefaultBurn         float64 `json:"default_burn"`
	DefaultFeedRate     float64 `json:"default_feed_rate"`
	DefaultLaserPower   int     `json:"default_laser_power"`
	DefaultLaserPasses  int     `json:"default_laser_passes"`
	DefaultGCodeProfile string  `json:"default_gcode_profile"`
	DefaultMaterial     string  `json:"default_material"` // Material preset name, empty for none

	// Application preferences
	AutoSaveInterval int      `json:"auto_save_interval"` // minutes, 0 = disabled
	RecentProjects   []string `json:"recent_projects"`
	Theme            string   `json:"theme"` // "light", "dark", "system"
}

const maxRecentProjects = 10

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching DefaultBoxParameters and DefaultLaserSettings.
func DefaultAppConfig() AppConfig {
	params := DefaultBoxParameters()
	laser := DefaultLaserSettings()
	return AppConfig{
		DefaultThickness:    params.Thickness,
		DefaultBurn:         params.Burn,
		DefaultFeedRate:     laser.FeedRate,
		DefaultLaserPower:   laser.LaserPower,
		DefaultLaserPasses:  laser.LaserPasses,
		DefaultGCodeProfile: laser.GCodeProfile,
		DefaultMaterial:     "",
		AutoSaveInterval:    0,
		RecentProjects:      []string{},
		Theme:               "system",
	}
}

// ApplyToParameters copies the default stock values into box parameters.
// This is used when creating a new project so it inherits the user's
// saved defaults.
func (c AppConfig) ApplyToParameters(p *BoxParameters) {
	p.Thickness = c.DefaultThickness
	p.Burn = c.DefaultBurn
}

// ApplyToLaser copies the default machine values into laser settings.
func (c AppConfig) ApplyToLaser(s *LaserSettings) {
	s.FeedRate = c.DefaultFeedRate
	s.LaserPower = c.DefaultLaserPower
	s.LaserPasses = c.DefaultLaserPasses
	s.GCodeProfile = c.DefaultGCodeProfile
}

// AddRecentProject records a project path at the front of the recent list,
// dropping duplicates and truncating to the newest ten.
func (c *AppConfig) AddRecentProject(path string) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentProjects {
		recent = recent[:maxRecentProjects]
	}
	c.RecentProjects = recent
}
