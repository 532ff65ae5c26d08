package lumen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Config bundles every engine's tuning in one YAML document:
//
//	field:
//	  population: 80
//	  connect_distance: 120
//	typewriter:
//	  texts: ["Hello", "World"]
//	  type_speed: 80ms
//	tilt:
//	  glow_color: "#3b82f6"
//
// Missing keys keep their defaults.
type Config struct {
	Field      FieldConfig       `yaml:"field"`
	Typewriter TypewriterConfig  `yaml:"typewriter"`
	Rotator    WordRotatorConfig `yaml:"rotator"`
	CountUp    CountUpConfig     `yaml:"count_up"`
	Tilt       TiltConfig        `yaml:"tilt"`
	Magnet     MagnetConfig      `yaml:"magnet"`
}

// DefaultConfig returns every engine's defaults.
func DefaultConfig() Config {
	return Config{
		Field:      DefaultFieldConfig(),
		Typewriter: DefaultTypewriterConfig(),
		Rotator:    DefaultWordRotatorConfig(),
		CountUp:    DefaultCountUpConfig(),
		Tilt:       DefaultTiltConfig(),
		Magnet:     DefaultMagnetConfig(),
	}
}

// Validate checks every section. Text engines are only checked when they
// have candidates, since a document may configure just some engines.
func (c Config) Validate() error {
	if err := c.Field.Validate(); err != nil {
		return fmt.Errorf("field: %w", err)
	}
	if len(c.Typewriter.Texts) > 0 {
		if err := c.Typewriter.Validate(); err != nil {
			return fmt.Errorf("typewriter: %w", err)
		}
	}
	if len(c.Rotator.Words) > 0 {
		if err := c.Rotator.Validate(); err != nil {
			return fmt.Errorf("rotator: %w", err)
		}
	}
	if err := c.CountUp.Validate(); err != nil {
		return fmt.Errorf("count_up: %w", err)
	}
	if err := c.Tilt.Validate(); err != nil {
		return fmt.Errorf("tilt: %w", err)
	}
	if err := c.Magnet.Validate(); err != nil {
		return fmt.Errorf("magnet: %w", err)
	}
	return nil
}

// LoadConfig decodes a YAML document over DefaultConfig and validates the
// result. Unknown keys are rejected.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("lumen: unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("lumen: config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads and decodes a YAML config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("lumen: load %s: %w", path, err)
	}
	cfg, err := LoadConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// UnmarshalYAML accepts a hex string ("#3b82f6", "#fff"), a CSS color name
// ("royalblue"), either optionally followed by "/alpha", or a mapping with
// r, g, b, a keys in [0, 1].
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode {
		var m struct {
			R, G, B float64
			A       *float64
		}
		if err := value.Decode(&m); err != nil {
			return err
		}
		*c = Color{R: m.R, G: m.G, B: m.B, A: 1}
		if m.A != nil {
			c.A = *m.A
		}
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// ParseColor parses "#rgb", "#rrggbb", or a CSS color name, with an optional
// "/alpha" suffix: "#3b82f6/0.5", "white/0.1".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	alpha := 1.0
	if base, a, ok := strings.Cut(s, "/"); ok {
		if _, err := fmt.Sscanf(strings.TrimSpace(a), "%g", &alpha); err != nil {
			return Color{}, fmt.Errorf("%w: color %q: bad alpha", ErrInvalidConfig, s)
		}
		s = strings.TrimSpace(base)
	}
	if strings.HasPrefix(s, "#") {
		c, err := ParseHex(s)
		if err != nil {
			return Color{}, fmt.Errorf("%w: color %q: %v", ErrInvalidConfig, s, err)
		}
		return c.WithAlpha(alpha), nil
	}
	named, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return Color{}, fmt.Errorf("%w: unknown color %q", ErrInvalidConfig, s)
	}
	return Color{
		R: float64(named.R) / 255,
		G: float64(named.G) / 255,
		B: float64(named.B) / 255,
		A: alpha,
	}, nil
}
