package scene

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/avandyke/spectrace/pkg/core"
	"github.com/avandyke/spectrace/pkg/geometry"
	"github.com/avandyke/spectrace/pkg/logging"
	"github.com/avandyke/spectrace/pkg/material"
)

// Load reads a YAML scene description from path and builds a Scene from
// it, logging a warning and dropping any degenerate (zero-area) triangle
// rather than failing the whole load (spec.md section 7,
// "DegenerateGeometry"). This is the core's one concrete model-loader
// implementation (spec.md section 6 leaves the file format to the
// loader); the map-driven yaml-to-domain-struct conversion pattern is
// grounded in the teacher pack's gazed-vu/load/shd.go (Shd reads a
// private yaml-tagged config struct, validates each field against a
// lookup table, and returns a domain type or a wrapped error).
func Load(path string) (*Scene, error) {
	return LoadWithLogger(path, logging.Default())
}

// LoadWithLogger is Load with an explicit core.Logger for degenerate-
// geometry warnings, letting callers (tests, the CLI) supply their own.
func LoadWithLogger(path string, logger core.Logger) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.NewSceneLoadError(path, err)
	}

	var cfg sceneConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, core.NewSceneLoadError(path, errors.Wrap(err, "yaml"))
	}

	spectrum, err := cfg.Spectrum.build()
	if err != nil {
		return nil, core.NewSceneLoadError(path, err)
	}

	materials, err := buildMaterials(cfg.Materials, spectrum.Count)
	if err != nil {
		return nil, core.NewSceneLoadError(path, err)
	}

	primitives, err := buildPrimitives(cfg.Primitives, materials, logger)
	if err != nil {
		return nil, core.NewSceneLoadError(path, err)
	}
	if len(primitives) == 0 {
		return nil, core.NewSceneLoadError(path, core.ErrEmptyScene)
	}

	camera, err := cfg.Camera.build()
	if err != nil {
		return nil, core.NewSceneLoadError(path, err)
	}

	return New(primitives, camera, spectrum), nil
}

type sceneConfig struct {
	Spectrum   spectrumConfig    `yaml:"spectrum"`
	Camera     cameraConfig      `yaml:"camera"`
	Materials  []materialConfig  `yaml:"materials"`
	Primitives []primitiveConfig `yaml:"primitives"`
}

type spectrumConfig struct {
	Count int     `yaml:"count"`
	MinNM float32 `yaml:"min_nm"`
	MaxNM float32 `yaml:"max_nm"`
}

func (c spectrumConfig) build() (core.Spectrum, error) {
	if c.Count <= 0 {
		return core.Spectrum{}, fmt.Errorf("scene: spectrum.count must be positive, got %d", c.Count)
	}
	if c.MaxNM <= c.MinNM {
		return core.Spectrum{}, fmt.Errorf("scene: spectrum.max_nm must exceed min_nm")
	}
	return core.NewUniformSpectrum(c.Count, c.MinNM, c.MaxNM), nil
}

type cameraConfig struct {
	Origin  [3]float32 `yaml:"origin"`
	Dir     [3]float32 `yaml:"dir"`
	Up      [3]float32 `yaml:"up"`
	Focal   float32    `yaml:"focal"`
	Center  [2]float32 `yaml:"center"`
	Size    [2]float32 `yaml:"size"`
}

func (c cameraConfig) build() (*Camera, error) {
	if c.Focal <= 0 {
		return nil, fmt.Errorf("scene: camera.focal must be positive")
	}
	if c.Size[0] <= 0 || c.Size[1] <= 0 {
		return nil, fmt.Errorf("scene: camera.size must be positive")
	}
	return NewCamera(
		vec3(c.Origin), vec3(c.Dir), vec3(c.Up),
		c.Focal, c.Center[0], c.Center[1], c.Size[0], c.Size[1],
	), nil
}

func vec3(v [3]float32) core.Vec3 { return core.Vec3{X: v[0], Y: v[1], Z: v[2]} }

type materialConfig struct {
	Name      string    `yaml:"name"`
	Kind      string    `yaml:"kind"` // "diffuse", "mirror", "emissive", "mix"
	Albedo    []float32 `yaml:"albedo"`
	Emission  []float32 `yaml:"emission"`
	Prob      float32   `yaml:"prob"`
	Of        []string  `yaml:"of"` // for kind "mix": two material names to combine
}

// expandBins broadcasts a single-element spectrum config to every bin, or
// validates an explicit per-bin list, matching how the rest of this
// package lets a scene author write one shared value rather than one per
// wavelength.
func expandBins(values []float32, bins int, field string) ([]float32, error) {
	switch len(values) {
	case 0:
		return make([]float32, bins), nil
	case 1:
		out := make([]float32, bins)
		for i := range out {
			out[i] = values[0]
		}
		return out, nil
	case bins:
		out := make([]float32, bins)
		copy(out, values)
		return out, nil
	default:
		return nil, fmt.Errorf("scene: %s has %d entries, want 1 or %d", field, len(values), bins)
	}
}

func buildMaterials(configs []materialConfig, bins int) (map[string]core.Material, error) {
	byName := make(map[string]core.Material, len(configs))
	var deferred []materialConfig

	for _, mc := range configs {
		if mc.Name == "" {
			return nil, fmt.Errorf("scene: material with no name")
		}
		if mc.Kind == "mix" {
			deferred = append(deferred, mc)
			continue
		}

		m, err := buildMaterial(mc, bins)
		if err != nil {
			return nil, err
		}
		byName[mc.Name] = m
	}

	for _, mc := range deferred {
		if len(mc.Of) != 2 {
			return nil, fmt.Errorf("scene: material %q kind mix requires exactly 2 names in 'of'", mc.Name)
		}
		a, ok := byName[mc.Of[0]]
		if !ok {
			return nil, fmt.Errorf("scene: material %q references undefined material %q", mc.Name, mc.Of[0])
		}
		b, ok := byName[mc.Of[1]]
		if !ok {
			return nil, fmt.Errorf("scene: material %q references undefined material %q", mc.Name, mc.Of[1])
		}
		byName[mc.Name] = material.NewMix(a, b)
	}

	return byName, nil
}

func buildMaterial(mc materialConfig, bins int) (core.Material, error) {
	switch mc.Kind {
	case "diffuse":
		albedo, err := expandBins(mc.Albedo, bins, "materials[].albedo")
		if err != nil {
			return nil, err
		}
		return material.NewDiffuse(albedo, mc.Prob), nil
	case "mirror":
		albedo, err := expandBins(mc.Albedo, bins, "materials[].albedo")
		if err != nil {
			return nil, err
		}
		return material.NewMirror(albedo, mc.Prob), nil
	case "emissive":
		emission, err := expandBins(mc.Emission, bins, "materials[].emission")
		if err != nil {
			return nil, err
		}
		return material.NewEmissive(emission), nil
	default:
		return nil, fmt.Errorf("scene: material %q has unsupported kind %q", mc.Name, mc.Kind)
	}
}

type primitiveConfig struct {
	Kind     string       `yaml:"kind"` // "triangle" or "mesh"
	Material string       `yaml:"material"`
	V0       [3]float32   `yaml:"v0"`
	V1       [3]float32   `yaml:"v1"`
	V2       [3]float32   `yaml:"v2"`
	Outline  [][3]float32 `yaml:"outline"`
	Holes    [][][3]float32 `yaml:"holes"`
}

func buildPrimitives(configs []primitiveConfig, materials map[string]core.Material, logger core.Logger) ([]core.Primitive, error) {
	var out []core.Primitive
	for _, pc := range configs {
		mat, ok := materials[pc.Material]
		if !ok {
			return nil, fmt.Errorf("scene: primitive references undefined material %q", pc.Material)
		}

		switch pc.Kind {
		case "triangle":
			v0, v1, v2 := vec3(pc.V0), vec3(pc.V1), vec3(pc.V2)
			if v1.Subtract(v0).Cross(v2.Subtract(v0)).LengthSquared() < core.Epsilon*core.Epsilon {
				logger.Printf("scene: dropping degenerate triangle at %v", v0)
				continue
			}
			out = append(out, geometry.NewTriangle(v0, v1, v2, mat))
		case "mesh":
			if len(pc.Outline) < 3 {
				return nil, fmt.Errorf("scene: mesh primitive needs at least 3 outline vertices")
			}
			outline := make([]core.Vec3, len(pc.Outline))
			for i, v := range pc.Outline {
				outline[i] = vec3(v)
			}
			holes := make([][]core.Vec3, len(pc.Holes))
			for i, hole := range pc.Holes {
				h := make([]core.Vec3, len(hole))
				for j, v := range hole {
					h[j] = vec3(v)
				}
				holes[i] = h
			}
			out = append(out, geometry.NewTriangleMesh(outline, holes, mat))
		default:
			return nil, fmt.Errorf("scene: primitive has unsupported kind %q", pc.Kind)
		}
	}
	return out, nil
}
