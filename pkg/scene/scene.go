// Package scene loads and saves the YAML description of a conversion:
// the input footage, the output .dat path, and the strip layout drawn
// over the footage.
package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ledworks/go-leddat/pkg/sampler"
)

type PointCfg struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type PortCfg struct {
	LedCount  int        `yaml:"led_count"`
	TrimStart int        `yaml:"trim_start"`
	TrimEnd   int        `yaml:"trim_end"`
	Points    []PointCfg `yaml:"points"`
}

type Scene struct {
	Input          string    `yaml:"input"`
	Output         string    `yaml:"output"`
	FPS            int       `yaml:"fps,omitempty"`
	Frames         int       `yaml:"frames,omitempty"` // still image inputs only
	TemplateHeader string    `yaml:"template_header,omitempty"`
	Ports          []PortCfg `yaml:"ports"`
}

func Load(path string) (*Scene, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scene
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parsing scene %s: %w", path, err)
	}
	return &s, nil
}

func Save(path string, s *Scene) error {
	b, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate checks the scene for errors the converter cannot work around.
// A port trimmed down to zero active LEDs is allowed; it simply renders
// black.
func (s *Scene) Validate() error {
	if s.Input == "" {
		return fmt.Errorf("scene has no input")
	}
	if s.Output == "" {
		return fmt.Errorf("scene has no output")
	}
	if len(s.Ports) == 0 {
		return fmt.Errorf("scene has no ports")
	}
	for i, p := range s.Ports {
		if p.LedCount <= 0 {
			return fmt.Errorf("port %d: led_count must be positive, got %d", i, p.LedCount)
		}
		if p.TrimStart < 0 || p.TrimEnd < 0 {
			return fmt.Errorf("port %d: trim values must not be negative", i)
		}
		if len(p.Points) < 2 {
			return fmt.Errorf("port %d: needs at least 2 points, got %d", i, len(p.Points))
		}
	}
	return nil
}

// Port converts the config entry into the sampler's port type.
func (p PortCfg) Port() sampler.Port {
	points := make([]sampler.Point, len(p.Points))
	for i, pt := range p.Points {
		points[i] = sampler.Point{X: pt.X, Y: pt.Y}
	}
	return sampler.Port{
		LedCount:  p.LedCount,
		TrimStart: p.TrimStart,
		TrimEnd:   p.TrimEnd,
		Points:    points,
	}
}

// SamplerPorts converts every configured port.
func (s *Scene) SamplerPorts() []sampler.Port {
	ports := make([]sampler.Port, len(s.Ports))
	for i, p := range s.Ports {
		ports[i] = p.Port()
	}
	return ports
}
