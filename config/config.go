// Package config loads the YAML settings of a speg scene.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/akmonengine/speg/vehicle"
	"github.com/akmonengine/speg/vm"
)

var ErrInvalid = errors.New("config: invalid value")

// HierarchyInstances is the node count of the scene's transform hierarchy demo.
const HierarchyInstances = 7

type Config struct {
	Viewport Viewport `yaml:"viewport"`
	Camera   Camera   `yaml:"camera"`
	Scene    Scene    `yaml:"scene"`
	Physics  Physics  `yaml:"physics"`
	Vehicle  Vehicle  `yaml:"vehicle"`
	Log      Log      `yaml:"log"`
}

type Viewport struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Near   float32 `yaml:"near"`
	Far    float32 `yaml:"far"`
}

func (v Viewport) Aspect() float32 {
	return float32(v.Width) / float32(v.Height)
}

type Camera struct {
	Position vm.Vec3 `yaml:"position"`
	Speed    float32 `yaml:"speed"` // units per second
	// SimulateOffset pulls the drawn view back along +Z in camera-simulate
	// mode so culled objects become visible.
	SimulateOffset float32 `yaml:"simulate_offset"`
}

type Scene struct {
	Seed            uint32  `yaml:"seed"`
	StaticCubes     int     `yaml:"static_cubes"`
	StaticRange     float32 `yaml:"static_range"`
	DynamicCubes    int     `yaml:"dynamic_cubes"`
	DynamicRange    float32 `yaml:"dynamic_range"`
	CullEpsilon     float32 `yaml:"cull_epsilon"`
	GridCellSize    float32 `yaml:"grid_cell_size"`
	GridCells       int     `yaml:"grid_cells"`
	StaticCapacity  int     `yaml:"static_capacity"`
	DynamicCapacity int     `yaml:"dynamic_capacity"`
	Hierarchy       bool    `yaml:"hierarchy"`
}

type Physics struct {
	Gravity       float32 `yaml:"gravity"`
	Substeps      int     `yaml:"substeps"`
	Workers       int     `yaml:"workers"`
	GroundHeight  float32 `yaml:"ground_height"`
	RestThreshold float32 `yaml:"rest_threshold"`
}

type Vehicle struct {
	Enabled         bool    `yaml:"enabled"`
	Spawn           vm.Vec3 `yaml:"spawn"`
	Mass            float32 `yaml:"mass"`
	Inertia         float32 `yaml:"inertia"`
	WheelBase       float32 `yaml:"wheel_base"`
	TrackWidth      float32 `yaml:"track_width"`
	WheelRadius     float32 `yaml:"wheel_radius"`
	RestLength      float32 `yaml:"rest_length"`
	MaxTravel       float32 `yaml:"max_travel"`
	SpringStiffness float32 `yaml:"spring_stiffness"`
	SpringDamping   float32 `yaml:"spring_damping"`
	Grip            float32 `yaml:"grip"`
	BaseTorque      float32 `yaml:"base_torque"`
	MaxSpeed        float32 `yaml:"max_speed"`
	MaxSteerDegrees float32 `yaml:"max_steer_degrees"`
}

// Params converts the section to vehicle parameters. Fields not exposed here
// keep their vehicle defaults.
func (v Vehicle) Params() vehicle.Params {
	p := vehicle.DefaultParams()
	p.Mass = v.Mass
	p.Inertia = v.Inertia
	p.WheelBase = v.WheelBase
	p.TrackWidth = v.TrackWidth
	p.WheelRadius = v.WheelRadius
	p.RestLength = v.RestLength
	p.MaxTravel = v.MaxTravel
	p.SpringStiffness = v.SpringStiffness
	p.SpringDamping = v.SpringDamping
	p.Grip = v.Grip
	p.Drive = vehicle.DriveCurve{
		BaseTorque: v.BaseTorque,
		MaxSpeed:   v.MaxSpeed,
		MaxSteer:   vm.Radians(v.MaxSteerDegrees),
	}
	return p
}

type Log struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

func Default() Config {
	p := vehicle.DefaultParams()

	return Config{
		Viewport: Viewport{Width: 1280, Height: 720, Near: 0.1, Far: 1000},
		Camera: Camera{
			Position:       vm.Vec3{Z: 13},
			Speed:          10,
			SimulateOffset: 10,
		},
		Scene: Scene{
			Seed:            12345,
			StaticCubes:     20000,
			StaticRange:     100,
			DynamicCubes:    1000,
			DynamicRange:    20,
			CullEpsilon:     0.15,
			GridCellSize:    8,
			GridCells:       1024,
			StaticCapacity:  22000,
			DynamicCapacity: 1024,
			Hierarchy:       true,
		},
		Physics: Physics{
			Gravity:       9.81,
			Substeps:      4,
			Workers:       1,
			GroundHeight:  -25,
			RestThreshold: 0.01,
		},
		Vehicle: Vehicle{
			Enabled:         true,
			Spawn:           vm.Vec3{Y: -24},
			Mass:            p.Mass,
			Inertia:         p.Inertia,
			WheelBase:       p.WheelBase,
			TrackWidth:      p.TrackWidth,
			WheelRadius:     p.WheelRadius,
			RestLength:      p.RestLength,
			MaxTravel:       p.MaxTravel,
			SpringStiffness: p.SpringStiffness,
			SpringDamping:   p.SpringDamping,
			Grip:            p.Grip,
			BaseTorque:      p.Drive.BaseTorque,
			MaxSpeed:        p.Drive.MaxSpeed,
			MaxSteerDegrees: 30,
		},
		Log: Log{Level: "info", Encoding: "json"},
	}
}

// Load decodes YAML over the defaults and validates the result. Unknown keys
// are rejected. An empty document yields the defaults.
func Load(r io.Reader) (Config, error) {
	c := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// MinDynamicCapacity is the worst-case dynamic instance count of one frame.
// Camera-simulate mode draws every cube, culled ones included, then the
// hierarchy demo and the configured car.
func (c Config) MinDynamicCapacity() int {
	n := max(c.Scene.DynamicCubes, 0)
	if c.Scene.Hierarchy {
		n += HierarchyInstances
	}
	if c.Vehicle.Enabled {
		n += vehicle.Instances
	}
	return max(n, 1)
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalid))
		}
	}

	check(c.Viewport.Width > 0 && c.Viewport.Height > 0, "viewport: size %dx%d", c.Viewport.Width, c.Viewport.Height)
	check(c.Viewport.Near > 0 && c.Viewport.Far > c.Viewport.Near, "viewport: clip planes %v..%v", c.Viewport.Near, c.Viewport.Far)

	check(c.Camera.Speed >= 0, "camera: speed %v", c.Camera.Speed)

	check(c.Scene.StaticCubes >= 0, "scene: static_cubes %d", c.Scene.StaticCubes)
	check(c.Scene.DynamicCubes >= 0, "scene: dynamic_cubes %d", c.Scene.DynamicCubes)
	check(c.Scene.CullEpsilon >= 0, "scene: cull_epsilon %v", c.Scene.CullEpsilon)
	check(c.Scene.GridCellSize > 0, "scene: grid_cell_size %v", c.Scene.GridCellSize)
	check(c.Scene.GridCells > 0, "scene: grid_cells %d", c.Scene.GridCells)
	check(c.Scene.StaticCapacity >= c.Scene.StaticCubes+3,
		"scene: static_capacity %d below %d cubes and 3 axes", c.Scene.StaticCapacity, c.Scene.StaticCubes)
	check(c.Scene.DynamicCapacity >= c.MinDynamicCapacity(),
		"scene: dynamic_capacity %d below %d instances", c.Scene.DynamicCapacity, c.MinDynamicCapacity())

	check(c.Physics.Substeps > 0, "physics: substeps %d", c.Physics.Substeps)
	check(c.Physics.Workers > 0, "physics: workers %d", c.Physics.Workers)
	check(c.Physics.RestThreshold >= 0, "physics: rest_threshold %v", c.Physics.RestThreshold)

	if c.Vehicle.Enabled {
		if err := c.Vehicle.Params().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("vehicle: %w: %w", err, ErrInvalid))
		}
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log: %w: %w", err, ErrInvalid))
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		check(false, "log: encoding %q", c.Log.Encoding)
	}

	return errors.Join(errs...)
}
