package layout

// Config holds the tunable defaults the layout engine falls back to when a
// document leaves a size or spacing unspecified. It is YAML-decodable so a
// document can be accompanied by a sibling config file, mirroring the
// donor's own YAML-driven configuration.
type Config struct {
	DefaultRectWidth    float64 `yaml:"default_rect_width"`
	DefaultRectHeight   float64 `yaml:"default_rect_height"`
	DefaultCircleRadius float64 `yaml:"default_circle_radius"`
	DefaultLineWidth    float64 `yaml:"default_line_width"`
	DefaultEllipseWidth float64 `yaml:"default_ellipse_width"`
	DefaultEllipseHeight float64 `yaml:"default_ellipse_height"`
	ElementSpacing      float64 `yaml:"element_spacing"`
	ContainerPadding    float64 `yaml:"container_padding"`
	ConnectionSpacing   float64 `yaml:"connection_spacing"`
	ViewboxPadding      float64 `yaml:"viewbox_padding"`
	ClassPrefix         string  `yaml:"class_prefix"`
}

// DefaultConfig returns the engine's built-in defaults.
func DefaultConfig() Config {
	return Config{
		DefaultRectWidth:     80,
		DefaultRectHeight:    30,
		DefaultCircleRadius:  25,
		DefaultLineWidth:     80,
		DefaultEllipseWidth:  80,
		DefaultEllipseHeight: 45,
		ElementSpacing:       4.0,
		ContainerPadding:     5.0,
		ConnectionSpacing:    10.0,
		ViewboxPadding:       60.0,
		ClassPrefix:          "ai-",
	}
}
