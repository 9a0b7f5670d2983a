// Package speg steps rigid bodies and raycast cars, and turns the simulated
// scene into instanced draw calls.
package speg

import (
	"go.uber.org/zap"

	"github.com/akmonengine/speg/actor"
	"github.com/akmonengine/speg/config"
	"github.com/akmonengine/speg/internal/logging"
	"github.com/akmonengine/speg/vehicle"
	"github.com/akmonengine/speg/vm"
)

const DEFAULT_WORKERS = 1

type World struct {
	// List of all rigid bodies in the world, car bodies included
	Bodies []*actor.RigidBody
	Cars   []*vehicle.Car
	Ground actor.Plane
	// Gravity acceleration (m/s², or N/kg)
	Gravity  vm.Vec3
	Substeps int
	Workers  int
	// Speed below which a body counts as at rest
	RestThreshold float32

	Events Events
	Logger *zap.Logger
}

// NewWorld builds an empty world from the physics settings.
func NewWorld(cfg config.Physics, logger *zap.Logger) *World {
	w := &World{
		Ground:        actor.GroundPlane(cfg.GroundHeight),
		Gravity:       vm.Vec3{Y: -cfg.Gravity},
		Substeps:      cfg.Substeps,
		Workers:       cfg.Workers,
		RestThreshold: cfg.RestThreshold,
		Events:        NewEvents(),
		Logger:        logging.OrNop(logger),
	}
	w.Events.logger = w.Logger.Named("events")
	return w
}

// AddBody adds a rigid body to the world
func (w *World) AddBody(body *actor.RigidBody) {
	w.Bodies = append(w.Bodies, body)
}

// RemoveBody removes a rigid body from the world
func (w *World) RemoveBody(body *actor.RigidBody) {
	k := -1
	for i, b := range w.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k != -1 {
		w.Bodies = append(w.Bodies[:k], w.Bodies[k+1:]...)
	}

	w.Events.forgetBody(body)
}

// AddCar adds a car and its body to the world
func (w *World) AddCar(car *vehicle.Car) {
	w.Cars = append(w.Cars, car)
	w.AddBody(car.Body)
}

// RemoveCar removes a car and its body from the world
func (w *World) RemoveCar(car *vehicle.Car) {
	k := -1
	for i, c := range w.Cars {
		if c == car {
			k = i
			break
		}
	}

	if k != -1 {
		w.Cars = append(w.Cars[:k], w.Cars[k+1:]...)
	}

	w.RemoveBody(car.Body)
	w.Events.forgetCar(car)
}

// Step advances the world by dt, split into Substeps equal substeps. Events
// are dispatched once, after the last substep. A dt that is not positive is a
// paused frame and leaves the world untouched.
func (w *World) Step(dt float32) {
	if !(dt > 0) {
		return
	}

	w.Workers = max(DEFAULT_WORKERS, w.Workers)
	w.Substeps = max(1, w.Substeps)
	h := dt / float32(w.Substeps)

	for i := 0; i < w.Substeps; i++ {
		// Phase 1: wheel raycasts, suspension, grip and drive forces
		w.updateCars(h)

		// Phase 2: gravity at each centre of mass
		w.applyGravity()

		// Phase 3: semi-implicit Euler, clears the accumulators
		w.integrate(h)

		w.Events.recordWheelContacts(w.Cars)
	}

	w.Events.processRestEvents(w.Bodies, w.RestThreshold)
	w.Events.flush()
}

func (w *World) updateCars(h float32) {
	task(w.Workers, w.Cars, func(car *vehicle.Car) {
		car.Update(h, w.Ground)
	})
}

func (w *World) applyGravity() {
	task(w.Workers, w.Bodies, func(body *actor.RigidBody) {
		body.AddForce(w.Gravity.MulScalar(body.Mass))
	})
}

func (w *World) integrate(h float32) {
	task(w.Workers, w.Bodies, func(body *actor.RigidBody) {
		body.Integrate(h)
	})
}
