package vehicle

import (
	"go.uber.org/zap/zapcore"

	"github.com/akmonengine/speg/vm"
)

type WheelTelemetry struct {
	Position        WheelPosition
	Grounded        bool
	SteerAngle      float32
	GroundDistance  float32
	CurrentLength   float32
	SuspensionForce vm.Vec3
	GripForce       vm.Vec3
	DriveForce      vm.Vec3
}

// Telemetry is a snapshot of the raw car state for debug overlays and logs.
type Telemetry struct {
	Position        vm.Vec3
	Velocity        vm.Vec3
	Orientation     vm.Quat
	AngularVelocity vm.Vec3
	Speed           float32
	Controls        Controls
	Wheels          [wheelCount]WheelTelemetry
}

func (c *Car) Telemetry() Telemetry {
	t := Telemetry{
		Position:        c.Body.Position,
		Velocity:        c.Body.Velocity,
		Orientation:     c.Body.Orientation,
		AngularVelocity: c.Body.AngularVelocity,
		Speed:           c.Speed(),
		Controls:        c.Controls,
	}

	for i := range c.Wheels {
		w := &c.Wheels[i]
		t.Wheels[i] = WheelTelemetry{
			Position:        WheelPosition(i),
			Grounded:        w.Grounded,
			SteerAngle:      w.SteerAngle,
			GroundDistance:  w.GroundDistance,
			CurrentLength:   w.CurrentLength,
			SuspensionForce: w.SuspensionForce,
			GripForce:       w.GripForce,
			DriveForce:      w.DriveForce,
		}
	}

	return t
}

type vec3Array vm.Vec3

func (v vec3Array) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	enc.AppendFloat32(v.X)
	enc.AppendFloat32(v.Y)
	enc.AppendFloat32(v.Z)
	return nil
}

func (w WheelTelemetry) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("wheel", w.Position.String())
	enc.AddBool("grounded", w.Grounded)
	enc.AddFloat32("steer", w.SteerAngle)
	enc.AddFloat32("length", w.CurrentLength)
	if err := enc.AddArray("suspension", vec3Array(w.SuspensionForce)); err != nil {
		return err
	}
	if err := enc.AddArray("grip", vec3Array(w.GripForce)); err != nil {
		return err
	}
	return enc.AddArray("drive", vec3Array(w.DriveForce))
}

type wheelsArray [wheelCount]WheelTelemetry

func (ws wheelsArray) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, w := range ws {
		if err := enc.AppendObject(w); err != nil {
			return err
		}
	}
	return nil
}

func (t Telemetry) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if err := enc.AddArray("position", vec3Array(t.Position)); err != nil {
		return err
	}
	if err := enc.AddArray("velocity", vec3Array(t.Velocity)); err != nil {
		return err
	}
	if err := enc.AddArray("angular_velocity", vec3Array(t.AngularVelocity)); err != nil {
		return err
	}
	enc.AddFloat32("speed", t.Speed)
	enc.AddFloat32("throttle", t.Controls.Throttle)
	enc.AddFloat32("steer", t.Controls.Steer)
	return enc.AddArray("wheels", wheelsArray(t.Wheels))
}
