package speg

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akmonengine/speg/actor"
	"github.com/akmonengine/speg/config"
	"github.com/akmonengine/speg/culling"
	"github.com/akmonengine/speg/input"
	"github.com/akmonengine/speg/internal/logging"
	"github.com/akmonengine/speg/render"
	"github.com/akmonengine/speg/vehicle"
	"github.com/akmonengine/speg/vm"
)

const (
	StaticDrawCall  = "cube_static"
	DynamicDrawCall = "cube_dynamic"

	axisLength    = 160
	axisThickness = 0.04
	// degrees per second of the hierarchy demo's parent
	hierarchySpeed = 100
)

var (
	colorRed       = vm.Vec3{X: 1}
	colorChild     = vm.Vec3{X: 1, Y: 0.8745}
	colorGreen     = vm.Vec3{Y: 1}
	colorCarBody   = vm.Vec3{X: 0.2, Y: 0.4, Z: 0.9}
	colorCarWheel  = vm.Vec3{X: 0.1, Y: 0.1, Z: 0.1}
	cubeHalfExtent = vm.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	cubeSpinAxis   = vm.Vec3{X: 1, Y: 0.3, Z: 0.5}.Normalize()
)

// Stats counts the instances of one frame.
type Stats struct {
	Rendered int
	Culled   int
}

type cube struct {
	position vm.Vec3
	color    vm.Vec3
}

type demoNode struct {
	id    actor.TransformID
	color vm.Vec3
}

// Scene owns the draw calls and the per-frame pipeline: camera, matrices,
// frustum, visibility, instance buffers and submission.
type Scene struct {
	ID        uuid.UUID
	Camera    *render.Camera
	Static    *render.DrawCall
	Dynamic   *render.DrawCall
	Hierarchy *actor.Hierarchy

	config  config.Config
	logger  *zap.Logger
	grid    *culling.Grid
	cubes   []cube
	visible []bool

	// hierarchy demo
	nodes    []demoNode
	rotation float32
}

func NewScene(cfg config.Config, logger *zap.Logger) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scene{
		ID:        uuid.New(),
		Camera:    render.NewCamera(cfg.Camera.Position),
		Static:    render.NewDrawCallWithCapacity(StaticDrawCall, cfg.Scene.StaticCapacity),
		Dynamic:   render.NewDrawCallWithCapacity(DynamicDrawCall, cfg.Scene.DynamicCapacity),
		Hierarchy: actor.NewHierarchy(),
		config:    cfg,
		grid:      culling.NewGrid(cfg.Scene.GridCellSize, cfg.Scene.GridCells),
		rotation:  90,
	}
	s.logger = logging.OrNop(logger).With(zap.Stringer("scene", s.ID))

	start := time.Now()
	if err := s.buildStatic(); err != nil {
		return nil, err
	}
	s.logger.Info("static scene built",
		zap.Int("instances", s.Static.Count),
		zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	s.spawnDynamicCubes()
	s.logger.Info("dynamic cubes binned",
		zap.Int("cubes", len(s.cubes)),
		zap.Duration("elapsed", time.Since(start)))

	if cfg.Scene.Hierarchy {
		if err := s.buildHierarchy(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// spawnRandomCube derives a deterministic color from the index and draws a
// position from r. Cube 0 is white at the origin and consumes no randomness.
func spawnRandomCube(i int, scatter float32, r *vm.Rand) (vm.Vec3, vm.Vec3) {
	if i == 0 {
		return vm.Vec3{}, vm.Vec3One
	}

	const colorScale = 1.0 / 255.0
	c := uint32(i) * 10000000
	color := vm.Vec3{
		X: float32(((c>>16)&0xFF)>>1) * colorScale,
		Y: float32((c>>8)&0xFF) * colorScale,
		Z: float32(c&0xFF) * colorScale,
	}
	position := vm.Vec3{
		X: r.Range(-scatter, scatter),
		Y: r.Range(-scatter, scatter),
		Z: r.Range(-scatter, scatter),
	}
	return position, color
}

func (s *Scene) buildStatic() error {
	axes := [3]struct {
		size  vm.Vec3
		color vm.Vec3
	}{
		{vm.Vec3{X: axisLength, Y: axisThickness, Z: axisThickness}, vm.Vec3{X: 1}},
		{vm.Vec3{X: axisThickness, Y: axisLength, Z: axisThickness}, vm.Vec3{Y: 1}},
		{vm.Vec3{X: axisThickness, Y: axisThickness, Z: axisLength}, vm.Vec3{Z: 1}},
	}
	for _, axis := range axes {
		if err := s.Static.Append(vm.Scaling(axis.size), axis.color, render.DefaultTexture); err != nil {
			return fmt.Errorf("scene: axes: %w", err)
		}
	}

	r := vm.NewRand(s.config.Scene.Seed + 1)
	for i := 0; i < s.config.Scene.StaticCubes; i++ {
		position, color := spawnRandomCube(i, s.config.Scene.StaticRange, r)
		if err := s.Static.Append(vm.Translation(position), color, render.DefaultTexture); err != nil {
			return fmt.Errorf("scene: static cube %d: %w", i, err)
		}
	}

	return nil
}

func (s *Scene) spawnDynamicCubes() {
	r := vm.NewRand(s.config.Scene.Seed)
	s.cubes = make([]cube, s.config.Scene.DynamicCubes)
	s.visible = make([]bool, len(s.cubes))
	s.grid.Clear()

	for i := range s.cubes {
		position, color := spawnRandomCube(i, s.config.Scene.DynamicRange, r)
		if i == 0 {
			// the billboard sits beside the origin so it never hides the axes
			position = vm.Vec3{X: -2}
		}
		s.cubes[i] = cube{position: position, color: color}
		s.grid.Insert(i, culling.AABBFromCenter(position, cubeHalfExtent))
	}
}

func (s *Scene) buildHierarchy() error {
	add := func(position vm.Vec3, parent actor.TransformID, color vm.Vec3) (actor.TransformID, error) {
		t := actor.NewTransform()
		t.Position = position
		id, err := s.Hierarchy.Add(t, parent)
		if err != nil {
			return 0, fmt.Errorf("scene: hierarchy: %w", err)
		}
		s.nodes = append(s.nodes, demoNode{id: id, color: color})
		return id, nil
	}

	parent, err := add(vm.Vec3{X: 4}, actor.NoParent, colorRed)
	if err != nil {
		return err
	}
	for _, p := range []vm.Vec3{{X: 3}, {X: -3}, {Z: 3}} {
		if _, err := add(p, parent, colorChild); err != nil {
			return err
		}
	}
	child4, err := add(vm.Vec3{Z: -3}, parent, colorChild)
	if err != nil {
		return err
	}
	child41, err := add(vm.Vec3{Z: -2}, child4, colorGreen)
	if err != nil {
		return err
	}
	_, err = add(vm.Vec3{Z: -2}, child41, vm.Vec3{})
	return err
}

// spinHierarchy sets the demo rotations for the current angle: the parent
// turns about Y, the fourth child and its child counter-rotate faster.
func (s *Scene) spinHierarchy(dt float32) error {
	if len(s.nodes) == 0 {
		return nil
	}
	s.rotation += hierarchySpeed * dt

	up := vm.Vec3{Y: 1}
	spins := [...]struct {
		node  int
		angle float32
	}{
		{0, vm.Radians(s.rotation)},
		{4, -vm.Radians(s.rotation * 2)},
		{5, -vm.Radians(s.rotation * 4)},
	}
	for _, spin := range spins {
		id := s.nodes[spin.node].id
		t, err := s.Hierarchy.Local(id)
		if err != nil {
			return err
		}
		t.Rotation = vm.QuatFromAxisAngle(up, spin.angle)
		if err := s.Hierarchy.SetLocal(id, t); err != nil {
			return err
		}
	}
	return nil
}

// Frame runs one frame against in and submits the draw calls to platform.
// world may be nil.
func (s *Scene) Frame(in *input.State, dt float32, world *World, platform render.Platform) (Stats, error) {
	var stats Stats

	s.Camera.Move(in, s.config.Camera.Speed*dt)

	viewport := s.config.Viewport
	projection := s.Camera.Projection(viewport.Aspect(), viewport.Near, viewport.Far)
	cullView := s.Camera.View()
	drawView := cullView

	simulate := in.Down(input.KeyCameraSimulate)
	if simulate {
		// pull the drawn view back to show what the real camera discards
		eye := s.Camera.Position
		eye.Z += s.config.Camera.SimulateOffset
		drawView = s.Camera.ViewFrom(eye)
	}

	projectionView := projection.Mul(drawView)
	frustum := culling.ExtractPlanes(projection.Mul(cullView))

	s.Dynamic.Reset()

	culled, err := s.appendCubes(&frustum, simulate)
	if err != nil {
		return stats, err
	}
	stats.Culled = culled

	if err := s.spinHierarchy(dt); err != nil {
		return stats, err
	}
	if err := s.appendHierarchy(); err != nil {
		return stats, err
	}

	if world != nil {
		if err := s.appendCars(world); err != nil {
			return stats, err
		}
	}

	s.Static.Seal()
	s.Dynamic.Seal()
	stats.Rendered = s.Static.Count + s.Dynamic.Count

	pv := projectionView.Mgl()
	for _, call := range []*render.DrawCall{s.Static, s.Dynamic} {
		if err := platform.Draw(call, pv); err != nil {
			return stats, fmt.Errorf("scene: draw %s: %w", call.Name, err)
		}
	}

	if ce := s.logger.Check(zap.DebugLevel, "frame"); ce != nil {
		ce.Write(zap.Int("rendered", stats.Rendered), zap.Int("culled", stats.Culled),
			zap.Bool("static_changed", s.Static.Changed))
	}

	return stats, nil
}

func (s *Scene) appendCubes(frustum *culling.Frustum, simulate bool) (int, error) {
	clear(s.visible)
	s.grid.Cull(frustum, s.config.Scene.CullEpsilon, func(index int) {
		s.visible[index] = true
	})

	culled := 0
	for i, c := range s.cubes {
		color := c.color
		if !s.visible[i] {
			culled++
			if !simulate {
				continue
			}
			color = colorRed
		}

		var model vm.Mat4
		if i == 0 {
			model = vm.LookAtModel(c.position, s.Camera.Position, s.Camera.WorldUp)
		} else {
			model = vm.Translation(c.position).Rotate(vm.Radians(20*float32(i)), cubeSpinAxis)
		}

		if err := s.Dynamic.Append(model, color, render.DefaultTexture); err != nil {
			return culled, fmt.Errorf("scene: cube %d: %w", i, err)
		}
	}

	return culled, nil
}

func (s *Scene) appendHierarchy() error {
	for _, n := range s.nodes {
		model, err := s.Hierarchy.WorldMatrix(n.id)
		if err != nil {
			return err
		}
		if err := s.Dynamic.Append(model, n.color, render.DefaultTexture); err != nil {
			return fmt.Errorf("scene: hierarchy: %w", err)
		}
	}
	return nil
}

func (s *Scene) appendCars(world *World) error {
	for _, car := range world.Cars {
		body := car.Body.Matrix().Scale(car.HalfExtents.MulScalar(2))
		if err := s.Dynamic.Append(body, colorCarBody, render.DefaultTexture); err != nil {
			return fmt.Errorf("scene: car: %w", err)
		}
		for i := range car.Wheels {
			wheel := car.WheelMatrix(vehicle.WheelPosition(i))
			if err := s.Dynamic.Append(wheel, colorCarWheel, render.DefaultTexture); err != nil {
				return fmt.Errorf("scene: wheel: %w", err)
			}
		}
	}
	return nil
}
