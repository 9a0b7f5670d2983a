package speg

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/akmonengine/speg/actor"
	"github.com/akmonengine/speg/config"
	"github.com/akmonengine/speg/vehicle"
	"github.com/akmonengine/speg/vm"
)

func testPhysics() config.Physics {
	p := config.Default().Physics
	p.GroundHeight = 0
	return p
}

func TestTask_VisitsEachElementOnce(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 8, 64} {
		data := make([]int, 37)
		for i := range data {
			data[i] = i
		}
		counts := make([]int32, len(data))

		task(workers, data, func(i int) {
			atomic.AddInt32(&counts[i], 1)
		})

		for i, c := range counts {
			assert.Equal(t, int32(1), c, "workers=%d element %d", workers, i)
		}
	}

	assert.NotPanics(t, func() {
		task(4, []int(nil), func(int) { t.Error("called on empty input") })
	})
}

func TestWorld_AddRemove(t *testing.T) {
	w := NewWorld(testPhysics(), nil)

	body := actor.NewRigidBody(vm.Vec3{}, vm.QuatIdent(), 1, 1)
	w.AddBody(body)
	car, err := vehicle.NewCar(vm.Vec3{Y: 1}, vm.QuatIdent(), vehicle.DefaultParams())
	require.NoError(t, err)
	w.AddCar(car)

	require.Len(t, w.Bodies, 2)
	require.Len(t, w.Cars, 1)
	assert.Same(t, car.Body, w.Bodies[1], "car bodies are stepped with the rest")

	w.RemoveCar(car)
	assert.Empty(t, w.Cars)
	assert.Equal(t, []*actor.RigidBody{body}, w.Bodies)

	w.RemoveBody(body)
	assert.Empty(t, w.Bodies)

	assert.NotPanics(t, func() { w.RemoveBody(body) }, "removing twice is a no-op")
}

func TestWorld_FreeFall(t *testing.T) {
	p := testPhysics()
	p.Substeps = 1
	p.GroundHeight = -1000
	w := NewWorld(p, nil)

	body := actor.NewRigidBody(vm.Vec3{}, vm.QuatIdent(), 2, 1)
	w.AddBody(body)

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60.0)
	}

	assert.InDelta(t, -9.81, body.Velocity.Y, 1e-3)
	assert.InDelta(t, -4.95, body.Position.Y, 0.06)
	assert.Equal(t, vm.Vec3{}, body.Force(), "accumulators are cleared after integration")
}

func TestWorld_StaticBodyDoesNotFall(t *testing.T) {
	w := NewWorld(testPhysics(), nil)
	ground := actor.NewStaticBody(vm.Vec3{Y: 3}, vm.QuatIdent())
	w.AddBody(ground)

	for i := 0; i < 10; i++ {
		w.Step(1.0 / 60.0)
	}

	assert.Equal(t, vm.Vec3{Y: 3}, ground.Position)
}

func TestWorld_CarSettlesAndReportsContacts(t *testing.T) {
	w := NewWorld(testPhysics(), nil)
	car, err := vehicle.NewCar(vm.Vec3{Y: 0.9}, vm.QuatIdent(), vehicle.DefaultParams())
	require.NoError(t, err)
	w.AddCar(car)

	capture := &eventCapture{}
	capture.subscribeAll(&w.Events)

	// 5 seconds, 4 substeps of 1/120s per step
	for i := 0; i < 150; i++ {
		w.Step(1.0 / 30.0)
	}

	assert.InDelta(t, 0.75, car.Body.Position.Y, 0.02)
	assert.Equal(t, 4, car.GroundedWheels())
	assert.Equal(t, 4, capture.countType(WHEEL_CONTACT_ENTER))
	assert.Equal(t, 0, capture.countType(WHEEL_CONTACT_EXIT), "the suspension never lifts a wheel while settling")
	// the body may brush the threshold at a turning point, but ends at rest
	assert.GreaterOrEqual(t, capture.countType(BODY_AT_REST), 1)
	assert.Equal(t, capture.countType(BODY_MOVING)+1, capture.countType(BODY_AT_REST))
}

func TestWorld_NonPositiveStepIsPaused(t *testing.T) {
	w := NewWorld(testPhysics(), nil)
	car, err := vehicle.NewCar(vm.Vec3{Y: 0.9}, vm.QuatIdent(), vehicle.DefaultParams())
	require.NoError(t, err)
	w.AddCar(car)

	for i := 0; i < 300; i++ {
		w.Step(1.0 / 60.0)
	}
	require.Equal(t, 4, car.GroundedWheels())
	position, velocity := car.Body.Position, car.Body.Velocity

	for _, dt := range []float32{0, -1.0 / 60.0, float32(math.NaN())} {
		w.Step(dt)
		assert.Equal(t, position, car.Body.Position, "dt=%v", dt)
		assert.Equal(t, velocity, car.Body.Velocity, "dt=%v", dt)
	}

	w.Step(1.0 / 60.0)
	position, velocity = car.Body.Position, car.Body.Velocity
	for _, v := range []float32{position.X, position.Y, position.Z, velocity.X, velocity.Y, velocity.Z} {
		assert.False(t, math.IsNaN(float64(v)) || math.IsInf(float64(v), 0), "state %v %v is not finite", position, velocity)
	}
	assert.InDelta(t, 0.75, car.Body.Position.Y, 0.05)
	assert.Equal(t, 4, car.GroundedWheels())
}

func TestWorld_WorkersAreDeterministic(t *testing.T) {
	run := func(workers int) []vm.Vec3 {
		p := testPhysics()
		p.Workers = workers
		w := NewWorld(p, nil)

		for i := 0; i < 3; i++ {
			car, err := vehicle.NewCar(vm.Vec3{X: float32(i) * 5, Y: 0.9}, vm.QuatIdent(), vehicle.DefaultParams())
			require.NoError(t, err)
			car.SetControls(vehicle.Controls{Throttle: 1, Steer: float32(i-1) * 0.5})
			w.AddCar(car)
		}
		for i := 0; i < 5; i++ {
			w.AddBody(actor.NewRigidBody(vm.Vec3{Y: float32(i)}, vm.QuatIdent(), 1, 1))
		}

		for i := 0; i < 120; i++ {
			w.Step(1.0 / 60.0)
		}

		positions := make([]vm.Vec3, len(w.Bodies))
		for i, b := range w.Bodies {
			positions[i] = b.Position
		}
		return positions
	}

	assert.Equal(t, run(1), run(4))
}

func TestWorld_LogsEventsAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	w := NewWorld(testPhysics(), zap.New(core))

	car, err := vehicle.NewCar(vm.Vec3{Y: 0.7}, vm.QuatIdent(), vehicle.DefaultParams())
	require.NoError(t, err)
	w.AddCar(car)

	w.Step(1.0 / 60.0)

	entries := logs.FilterMessage("event").Filter(func(e observer.LoggedEntry) bool {
		return e.ContextMap()["type"] == "wheel_contact_enter"
	}).All()
	require.Len(t, entries, 4)
	assert.Equal(t, "events", entries[0].LoggerName)
}

func TestWorld_ZeroValueDefaults(t *testing.T) {
	w := &World{Events: NewEvents()}
	w.AddBody(actor.NewRigidBody(vm.Vec3{}, vm.QuatIdent(), 1, 1))

	assert.NotPanics(t, func() { w.Step(1.0 / 60.0) })
	assert.Equal(t, DEFAULT_WORKERS, w.Workers)
	assert.Equal(t, 1, w.Substeps)
}
