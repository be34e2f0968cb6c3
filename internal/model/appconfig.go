package model

// AppConfig holds user-wide defaults applied to every pack invocation before
// command-line flags are considered.
type AppConfig struct {
	// Default packer settings
	DefaultAlgorithm       Algorithm `toml:"default_algorithm"`
	DefaultPreferredWidth  int       `toml:"default_preferred_width"`
	DefaultPreferredHeight int       `toml:"default_preferred_height"`
	DefaultTrim            bool      `toml:"default_trim"`
	DefaultFormat          string    `toml:"default_format"`
	DefaultEncoding        string    `toml:"default_encoding"`
	DefaultPretty          bool      `toml:"default_pretty"`

	// Output preferences
	OutputBase    string   `toml:"output_base"`    // File name stem for sheets, without extension
	WriteManifest bool     `toml:"write_manifest"` // Emit <base>.manifest.json next to the sheets
	Reports       []string `toml:"reports"`        // Extra reports: "pdf", "xlsx", "dxf"
}

// DefaultAppConfig returns an AppConfig populated with defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultAlgorithm:       defaults.Algorithm,
		DefaultPreferredWidth:  defaults.PreferredWidth,
		DefaultPreferredHeight: defaults.PreferredHeight,
		DefaultTrim:            defaults.Trim,
		DefaultFormat:          defaults.Format,
		DefaultEncoding:        defaults.Encoding,
		DefaultPretty:          defaults.Pretty,
		OutputBase:             DefaultOutput,
		WriteManifest:          false,
		Reports:                []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a PackSettings struct.
// Zero values in the config leave the corresponding setting untouched so a
// partially written config file only overrides what it names.
func (c AppConfig) ApplyToSettings(s *PackSettings) {
	if c.DefaultAlgorithm != "" {
		s.Algorithm = c.DefaultAlgorithm
	}
	if c.DefaultPreferredWidth > 0 {
		s.PreferredWidth = c.DefaultPreferredWidth
	}
	if c.DefaultPreferredHeight > 0 {
		s.PreferredHeight = c.DefaultPreferredHeight
	}
	if c.DefaultFormat != "" {
		s.Format = c.DefaultFormat
	}
	if c.DefaultEncoding != "" {
		s.Encoding = c.DefaultEncoding
	}
	s.Trim = s.Trim || c.DefaultTrim
	s.Pretty = s.Pretty || c.DefaultPretty
}
