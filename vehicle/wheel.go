package vehicle

import (
	"github.com/akmonengine/speg/actor"
	"github.com/akmonengine/speg/vm"
)

// WheelPosition indexes the four wheels of a Car.
type WheelPosition int

const (
	FrontLeft WheelPosition = iota
	FrontRight
	RearLeft
	RearRight
	wheelCount
)

// Instances is the number of boxes a car is drawn with: its body and one per wheel.
const Instances = 1 + int(wheelCount)

func (p WheelPosition) String() string {
	switch p {
	case FrontLeft:
		return "front_left"
	case FrontRight:
		return "front_right"
	case RearLeft:
		return "rear_left"
	case RearRight:
		return "rear_right"
	}
	return "unknown"
}

// Wheel is a suspension ray mounted on the car body. The tunables are set once;
// everything below them is recomputed on every Update.
type Wheel struct {
	Offset          vm.Vec3 // mount point in body space
	Radius          float32
	RestLength      float32
	MaxTravel       float32 // extra ray length past RestLength
	SpringStiffness float32 // N/m
	SpringDamping   float32 // N·s/m
	Grip            float32 // fraction of side velocity removed per step, in [0, 1]
	Mass            float32
	Steerable       bool
	Driven          bool

	WorldPosition   vm.Vec3
	WorldRotation   vm.Quat
	SteerAngle      float32
	Hit             bool
	GroundDistance  float32
	CurrentLength   float32
	Grounded        bool
	SuspensionForce vm.Vec3
	GripForce       vm.Vec3
	DriveForce      vm.Vec3
}

func (w *Wheel) rayLength() float32 {
	return w.Radius + w.RestLength + w.MaxTravel
}

func (w *Wheel) resetForces() {
	w.SuspensionForce = vm.Vec3{}
	w.GripForce = vm.Vec3{}
	w.DriveForce = vm.Vec3{}
}

// update places the wheel from the body pose, casts its suspension ray and
// applies the resulting forces to body.
func (w *Wheel) update(body *actor.RigidBody, ground actor.Plane, controls Controls, drive DriveCurve, dt float32) {
	w.resetForces()

	w.SteerAngle = 0
	if w.Steerable {
		w.SteerAngle = controls.Steer * drive.MaxSteer
	}

	w.WorldPosition = body.LocalToWorld(w.Offset)
	steer := vm.QuatFromAxisAngle(vm.Vec3{Y: 1}, w.SteerAngle)
	w.WorldRotation = body.Orientation.Mul(steer)

	up := body.Up()
	distance, hit := ground.Raycast(w.WorldPosition, up.Negate(), w.rayLength())
	w.Hit = hit
	if !hit {
		w.GroundDistance = 0
		w.CurrentLength = w.RestLength + w.MaxTravel
		w.Grounded = false
		return
	}

	w.GroundDistance = distance
	w.CurrentLength = distance - w.Radius
	w.Grounded = w.CurrentLength <= w.RestLength

	pointVelocity := body.PointVelocity(w.WorldPosition)

	// ========== SUSPENSION ==========
	compression := w.RestLength - w.CurrentLength
	springForce := w.SpringStiffness*compression - w.SpringDamping*pointVelocity.Dot(up)
	w.SuspensionForce = up.MulScalar(springForce)
	body.ApplyForceAtPosition(w.SuspensionForce, w.WorldPosition)

	if !w.Grounded {
		return
	}

	// ========== LATERAL GRIP ==========
	right := w.WorldRotation.Right()
	sideVelocity := pointVelocity.Dot(right)
	w.GripForce = right.MulScalar(w.Mass * (-sideVelocity * w.Grip) / dt)
	body.ApplyForceAtPosition(w.GripForce, w.WorldPosition)

	// ========== DRIVE ==========
	if !w.Driven || controls.Throttle == 0 {
		return
	}
	forward := w.WorldRotation.Forward()
	available := drive.available(body.Velocity.Dot(forward))
	w.DriveForce = forward.MulScalar(available * controls.Throttle)
	body.ApplyForceAtPosition(w.DriveForce, w.WorldPosition)
}
