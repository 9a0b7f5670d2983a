package vehicle

import (
	"errors"
	"fmt"

	"github.com/akmonengine/speg/actor"
	"github.com/akmonengine/speg/input"
	"github.com/akmonengine/speg/vm"
)

var ErrInvalidParams = errors.New("vehicle: invalid parameters")

// DriveCurve is the longitudinal power model: driven wheels push with
// BaseTorque * (1 - speed/MaxSpeed), scaled by the throttle.
type DriveCurve struct {
	BaseTorque float32 // N at standstill, per driven wheel
	MaxSpeed   float32 // m/s where the available force reaches zero
	MaxSteer   float32 // radians at full steering input
}

func (d DriveCurve) available(speed float32) float32 {
	normalized := vm.Clamp(vm.Abs(speed)/d.MaxSpeed, 0, 1)
	return d.BaseTorque * (1 - normalized)
}

// Params describes a car body and its four identical wheels.
type Params struct {
	Mass        float32
	Inertia     float32
	HalfExtents vm.Vec3 // chassis box, used for drawing

	WheelBase   float32 // distance between the axles
	TrackWidth  float32 // distance between left and right wheels
	MountHeight float32 // mount offset along the body Y axis

	WheelRadius     float32
	RestLength      float32
	MaxTravel       float32
	SpringStiffness float32
	SpringDamping   float32
	Grip            float32

	Drive DriveCurve
}

// DefaultParams is a 1.5t car whose suspension settles 0.1m under its own weight.
func DefaultParams() Params {
	return Params{
		Mass:        1500,
		Inertia:     2250,
		HalfExtents: vm.Vec3{X: 0.9, Y: 0.35, Z: 2},

		WheelBase:   2.6,
		TrackWidth:  1.6,
		MountHeight: 0,

		WheelRadius:     0.35,
		RestLength:      0.5,
		MaxTravel:       0.3,
		SpringStiffness: 36790,
		SpringDamping:   2200,
		Grip:            0.6,

		Drive: DriveCurve{
			BaseTorque: 2000,
			MaxSpeed:   30,
			MaxSteer:   vm.Radians(30),
		},
	}
}

// Validate reports every out-of-range field at once.
func (p Params) Validate() error {
	var errs []error
	positive := func(name string, v float32) {
		if !(v > 0) {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v: %w", name, v, ErrInvalidParams))
		}
	}

	positive("mass", p.Mass)
	positive("inertia", p.Inertia)
	positive("wheel radius", p.WheelRadius)
	positive("rest length", p.RestLength)
	positive("spring stiffness", p.SpringStiffness)
	positive("max speed", p.Drive.MaxSpeed)

	if p.MaxTravel < 0 {
		errs = append(errs, fmt.Errorf("max travel must not be negative, got %v: %w", p.MaxTravel, ErrInvalidParams))
	}
	if p.SpringDamping < 0 {
		errs = append(errs, fmt.Errorf("spring damping must not be negative, got %v: %w", p.SpringDamping, ErrInvalidParams))
	}
	if p.Grip < 0 || p.Grip > 1 {
		errs = append(errs, fmt.Errorf("grip must be in [0, 1], got %v: %w", p.Grip, ErrInvalidParams))
	}

	return errors.Join(errs...)
}

// Controls are the driver inputs, both in [-1, 1]. Positive Steer turns
// towards the body's Right axis; negative Throttle drives backwards.
type Controls struct {
	Throttle float32
	Steer    float32
}

func (c Controls) Clamp() Controls {
	return Controls{
		Throttle: vm.Clamp(c.Throttle, -1, 1),
		Steer:    vm.Clamp(c.Steer, -1, 1),
	}
}

// ControlsFromInput maps the throttle, brake and steering keys to Controls.
// Opposite keys held together cancel out.
func ControlsFromInput(in *input.State) Controls {
	var c Controls
	if in.Down(input.KeyThrottle) {
		c.Throttle++
	}
	if in.Down(input.KeyBrake) {
		c.Throttle--
	}
	if in.Down(input.KeySteerRight) {
		c.Steer++
	}
	if in.Down(input.KeySteerLeft) {
		c.Steer--
	}
	return c
}

// Car is a rigid body carried by four raycast wheels. The front wheels steer
// and the rear wheels drive.
type Car struct {
	Body        *actor.RigidBody
	Wheels      [wheelCount]Wheel
	Controls    Controls
	HalfExtents vm.Vec3
	Drive       DriveCurve
}

func NewCar(position vm.Vec3, orientation vm.Quat, p Params) (*Car, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	c := &Car{
		Body:        actor.NewRigidBody(position, orientation, p.Mass, p.Inertia),
		HalfExtents: p.HalfExtents,
		Drive:       p.Drive,
	}

	halfTrack := p.TrackWidth * 0.5
	halfBase := p.WheelBase * 0.5
	offsets := [wheelCount]vm.Vec3{
		FrontLeft:  {X: -halfTrack, Y: p.MountHeight, Z: halfBase},
		FrontRight: {X: halfTrack, Y: p.MountHeight, Z: halfBase},
		RearLeft:   {X: -halfTrack, Y: p.MountHeight, Z: -halfBase},
		RearRight:  {X: halfTrack, Y: p.MountHeight, Z: -halfBase},
	}

	for i := range c.Wheels {
		position := WheelPosition(i)
		c.Wheels[i] = Wheel{
			Offset:          offsets[i],
			Radius:          p.WheelRadius,
			RestLength:      p.RestLength,
			MaxTravel:       p.MaxTravel,
			SpringStiffness: p.SpringStiffness,
			SpringDamping:   p.SpringDamping,
			Grip:            p.Grip,
			Mass:            p.Mass / float32(wheelCount),
			Steerable:       position == FrontLeft || position == FrontRight,
			Driven:          position == RearLeft || position == RearRight,
		}
	}

	return c, nil
}

func (c *Car) Wheel(p WheelPosition) *Wheel {
	return &c.Wheels[p]
}

// SetControls stores clamped driver inputs for the next Update.
func (c *Car) SetControls(controls Controls) {
	c.Controls = controls.Clamp()
}

// Update recomputes every wheel against ground and accumulates suspension, grip
// and drive forces on the body. It does not integrate. Grip divides by dt, so
// a dt that is not positive leaves the car untouched.
func (c *Car) Update(dt float32, ground actor.Plane) {
	if !(dt > 0) {
		return
	}
	for i := range c.Wheels {
		c.Wheels[i].update(c.Body, ground, c.Controls, c.Drive, dt)
	}
}

// Speed is the body velocity along its forward axis.
func (c *Car) Speed() float32 {
	return c.Body.Velocity.Dot(c.Body.Forward())
}

func (c *Car) GroundedWheels() int {
	n := 0
	for i := range c.Wheels {
		if c.Wheels[i].Grounded {
			n++
		}
	}
	return n
}

// WheelMatrix is the model matrix of a wheel drawn as a box at its contact
// height: translation * rotation * scale(radius).
func (c *Car) WheelMatrix(p WheelPosition) vm.Mat4 {
	w := &c.Wheels[p]
	center := w.WorldPosition.Sub(c.Body.Up().MulScalar(w.CurrentLength))
	return vm.Translation(center).Mul(w.WorldRotation.Mat4()).ScaleUniform(w.Radius)
}
