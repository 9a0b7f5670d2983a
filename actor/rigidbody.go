package actor

import "github.com/akmonengine/speg/vm"

// BodyType represents the type of rigid body
type BodyType int

const (
	// BodyTypeDynamic bodies are affected by forces and gravity
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies never move and ignore applied forces (e.g., ground, props)
	BodyTypeStatic
)

// rotationThreshold is the smallest per-step rotation angle, in radians, that
// updates the orientation.
const rotationThreshold = 1e-4

// RigidBody is a point mass with a scalar moment of inertia.
type RigidBody struct {
	Position    vm.Vec3
	Orientation vm.Quat

	Velocity        vm.Vec3 // m/s
	AngularVelocity vm.Vec3 // rad/s, world space

	Mass     float32
	Inertia  float32
	BodyType BodyType

	accumulatedForce  vm.Vec3
	accumulatedTorque vm.Vec3
}

// NewRigidBody creates a dynamic body. mass and inertia must be positive.
func NewRigidBody(position vm.Vec3, orientation vm.Quat, mass, inertia float32) *RigidBody {
	return &RigidBody{
		Position:    position,
		Orientation: orientation,
		Mass:        mass,
		Inertia:     inertia,
		BodyType:    BodyTypeDynamic,
	}
}

func NewStaticBody(position vm.Vec3, orientation vm.Quat) *RigidBody {
	return &RigidBody{
		Position:    position,
		Orientation: orientation,
		BodyType:    BodyTypeStatic,
	}
}

// AddForce accumulates a force through the centre of mass.
func (rb *RigidBody) AddForce(force vm.Vec3) {
	if rb.BodyType == BodyTypeStatic {
		return
	}
	rb.accumulatedForce = rb.accumulatedForce.Add(force)
}

func (rb *RigidBody) AddTorque(torque vm.Vec3) {
	if rb.BodyType == BodyTypeStatic {
		return
	}
	rb.accumulatedTorque = rb.accumulatedTorque.Add(torque)
}

// ApplyForceAtPosition accumulates force, and the torque it produces about the
// centre of mass, for a force applied at a world-space point.
func (rb *RigidBody) ApplyForceAtPosition(force, point vm.Vec3) {
	if rb.BodyType == BodyTypeStatic {
		return
	}
	rb.accumulatedForce = rb.accumulatedForce.Add(force)
	rb.accumulatedTorque = rb.accumulatedTorque.Add(point.Sub(rb.Position).Cross(force))
}

// PointVelocity is the velocity of a world-space point rigidly attached to the body.
func (rb *RigidBody) PointVelocity(point vm.Vec3) vm.Vec3 {
	return rb.Velocity.Add(rb.AngularVelocity.Cross(point.Sub(rb.Position)))
}

// Integrate advances the body by dt with semi-implicit Euler and clears the
// accumulators. Forces must be applied again before the next call.
func (rb *RigidBody) Integrate(dt float32) {
	if rb.BodyType == BodyTypeStatic {
		rb.ClearForces()
		return
	}

	// ========== LINEAR ==========
	rb.Velocity = rb.Velocity.Add(rb.accumulatedForce.MulScalar(dt / rb.Mass))
	rb.Position = rb.Position.Add(rb.Velocity.MulScalar(dt))

	// ========== ANGULAR ==========
	rb.AngularVelocity = rb.AngularVelocity.Add(rb.accumulatedTorque.MulScalar(dt / rb.Inertia))

	speed := rb.AngularVelocity.Length()
	if angle := speed * dt; angle > rotationThreshold {
		axis := rb.AngularVelocity.MulScalar(1 / speed)
		delta := vm.QuatFromAxisAngle(axis, angle)
		rb.Orientation = delta.Mul(rb.Orientation).Normalize()
	}

	rb.ClearForces()
}

func (rb *RigidBody) ClearForces() {
	rb.accumulatedForce = vm.Vec3{}
	rb.accumulatedTorque = vm.Vec3{}
}

// Force returns the force accumulated since the last integration.
func (rb *RigidBody) Force() vm.Vec3 {
	return rb.accumulatedForce
}

// Torque returns the torque accumulated since the last integration.
func (rb *RigidBody) Torque() vm.Vec3 {
	return rb.accumulatedTorque
}

func (rb *RigidBody) Forward() vm.Vec3 { return rb.Orientation.Forward() }
func (rb *RigidBody) Right() vm.Vec3   { return rb.Orientation.Right() }
func (rb *RigidBody) Up() vm.Vec3      { return rb.Orientation.Up() }

// LocalToWorld maps a body-space offset to a world-space point.
func (rb *RigidBody) LocalToWorld(offset vm.Vec3) vm.Vec3 {
	return rb.Position.Add(rb.Orientation.Rotate(offset))
}

// Matrix is the model matrix translation * rotation.
func (rb *RigidBody) Matrix() vm.Mat4 {
	return vm.Translation(rb.Position).Mul(rb.Orientation.Mat4())
}

// AtRest reports whether both linear and angular speed are below threshold.
func (rb *RigidBody) AtRest(threshold float32) bool {
	return rb.Velocity.LengthSquared() < threshold*threshold &&
		rb.AngularVelocity.LengthSquared() < threshold*threshold
}
