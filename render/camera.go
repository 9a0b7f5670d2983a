package render

import (
	"github.com/akmonengine/speg/input"
	"github.com/akmonengine/speg/vm"
)

const (
	DefaultYaw       = -90
	DefaultFov       = 45
	MouseSensitivity = 0.1
	maxPitch         = 89
	minFov, maxFov   = 1, 179
	scrollZoomFactor = 2
)

// Camera is a yaw/pitch fly camera. Angles are stored in degrees.
type Camera struct {
	Position vm.Vec3
	Front    vm.Vec3
	Up       vm.Vec3
	Right    vm.Vec3
	WorldUp  vm.Vec3

	Yaw   float32
	Pitch float32
	Fov   float32

	// ResetPosition is where KeyCameraReset puts the camera back.
	ResetPosition vm.Vec3
}

// NewCamera returns a camera at position looking down -Z.
func NewCamera(position vm.Vec3) *Camera {
	c := &Camera{ResetPosition: position}
	c.Reset()
	return c
}

func (c *Camera) Reset() {
	*c = Camera{
		Position:      c.ResetPosition,
		WorldUp:       vm.Vec3{Y: 1},
		Yaw:           DefaultYaw,
		Fov:           DefaultFov,
		ResetPosition: c.ResetPosition,
	}
	c.UpdateVectors()
}

// UpdateVectors recomputes Front, Right and Up from Yaw and Pitch.
func (c *Camera) UpdateVectors() {
	yaw := vm.Radians(c.Yaw)
	pitch := vm.Radians(c.Pitch)
	pitchCos := vm.Cos(pitch)

	c.Front = vm.Vec3{
		X: vm.Cos(yaw) * pitchCos,
		Y: vm.Sin(pitch),
		Z: vm.Sin(yaw) * pitchCos,
	}.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

// Move applies one frame of input: reset, translation by speed along the
// camera axes, mouse look and scroll zoom.
func (c *Camera) Move(in *input.State, speed float32) {
	if in.Down(input.KeyCameraReset) {
		c.Reset()
	}

	if in.Down(input.KeyMoveForward) {
		c.Position = c.Position.Add(c.Front.MulScalar(speed))
	}
	if in.Down(input.KeyMoveBackward) {
		c.Position = c.Position.Sub(c.Front.MulScalar(speed))
	}
	if in.Down(input.KeyMoveLeft) {
		c.Position = c.Position.Sub(c.Right.MulScalar(speed))
	}
	if in.Down(input.KeyMoveRight) {
		c.Position = c.Position.Add(c.Right.MulScalar(speed))
	}
	if in.Down(input.KeyMoveUp) {
		c.Position = c.Position.Add(c.WorldUp.MulScalar(speed))
	}
	if in.Down(input.KeyMoveDown) {
		c.Position = c.Position.Sub(c.WorldUp.MulScalar(speed))
	}

	if in.Mouse.Attached {
		c.Yaw += vm.Clamp(in.Mouse.OffsetX*MouseSensitivity, -maxPitch, maxPitch)
		c.Pitch += vm.Clamp(in.Mouse.OffsetY*MouseSensitivity, -maxPitch, maxPitch)
		c.Pitch = vm.Clamp(c.Pitch, -maxPitch, maxPitch)
	}

	if in.Mouse.Scroll != 0 {
		c.Fov = vm.Clamp(c.Fov-in.Mouse.Scroll*scrollZoomFactor, minFov, maxFov)
	}

	c.UpdateVectors()
}

func (c *Camera) View() vm.Mat4 {
	return c.ViewFrom(c.Position)
}

// ViewFrom is the camera's view as seen from another position, keeping its
// orientation.
func (c *Camera) ViewFrom(position vm.Vec3) vm.Mat4 {
	return vm.LookAt(position, position.Add(c.Front), c.Up)
}

func (c *Camera) Projection(aspect, near, far float32) vm.Mat4 {
	return vm.Perspective(vm.Radians(c.Fov), aspect, near, far)
}
