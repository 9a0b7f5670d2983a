package speg

import (
	"go.uber.org/zap"

	"github.com/akmonengine/speg/actor"
	"github.com/akmonengine/speg/vehicle"
)

const (
	WHEEL_CONTACT_ENTER EventType = iota
	WHEEL_CONTACT_EXIT
	BODY_AT_REST
	BODY_MOVING
)

type EventType uint8

func (t EventType) String() string {
	switch t {
	case WHEEL_CONTACT_ENTER:
		return "wheel_contact_enter"
	case WHEEL_CONTACT_EXIT:
		return "wheel_contact_exit"
	case BODY_AT_REST:
		return "body_at_rest"
	case BODY_MOVING:
		return "body_moving"
	}
	return "unknown"
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

type wheelKey struct {
	car   *vehicle.Car
	wheel vehicle.WheelPosition
}

// Wheel contact events
type WheelContactEnterEvent struct {
	Car   *vehicle.Car
	Wheel vehicle.WheelPosition
}

func (e WheelContactEnterEvent) Type() EventType { return WHEEL_CONTACT_ENTER }

type WheelContactExitEvent struct {
	Car   *vehicle.Car
	Wheel vehicle.WheelPosition
}

func (e WheelContactExitEvent) Type() EventType { return WHEEL_CONTACT_EXIT }

// Rest/motion events
type AtRestEvent struct {
	Body *actor.RigidBody
}

func (e AtRestEvent) Type() EventType { return BODY_AT_REST }

type MovingEvent struct {
	Body *actor.RigidBody
}

func (e MovingEvent) Type() EventType { return BODY_MOVING }

// EventListener - callback for events
type EventListener func(event Event)

// Events buffers what happens during a Step and dispatches it once at the end.
type Events struct {
	listeners map[EventType][]EventListener

	buffer []Event

	// Wheel contact tracking for Enter/Exit detection
	previousContacts map[wheelKey]bool
	currentContacts  map[wheelKey]bool

	restStates map[*actor.RigidBody]bool

	logger *zap.Logger
}

func NewEvents() Events {
	return Events{
		listeners:        make(map[EventType][]EventListener),
		buffer:           make([]Event, 0, 64),
		previousContacts: make(map[wheelKey]bool),
		currentContacts:  make(map[wheelKey]bool),
		restStates:       make(map[*actor.RigidBody]bool),
		logger:           zap.NewNop(),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordWheelContacts is called during substeps. A wheel grounded in any
// substep counts as touching for the whole Step.
func (e *Events) recordWheelContacts(cars []*vehicle.Car) {
	for _, car := range cars {
		for i := range car.Wheels {
			if car.Wheels[i].Grounded {
				e.currentContacts[wheelKey{car: car, wheel: vehicle.WheelPosition(i)}] = true
			}
		}
	}
}

// processContactEvents compares current and previous contacts.
// Should be called after all substeps
func (e *Events) processContactEvents() {
	for key := range e.currentContacts {
		if !e.previousContacts[key] {
			e.buffer = append(e.buffer, WheelContactEnterEvent{Car: key.car, Wheel: key.wheel})
		}
	}

	for key := range e.previousContacts {
		if !e.currentContacts[key] {
			e.buffer = append(e.buffer, WheelContactExitEvent{Car: key.car, Wheel: key.wheel})
		}
	}

	// Swap for next step and clear current
	e.previousContacts, e.currentContacts = e.currentContacts, e.previousContacts
	clear(e.currentContacts)
}

// processRestEvents emits a transition when a dynamic body drops below or
// rises above threshold. The first sighting of a body only records its state.
func (e *Events) processRestEvents(bodies []*actor.RigidBody, threshold float32) {
	for _, body := range bodies {
		if body.BodyType == actor.BodyTypeStatic {
			continue
		}

		atRest := body.AtRest(threshold)
		trackedState, exists := e.restStates[body]
		if !exists {
			e.restStates[body] = atRest
			continue
		}

		if !trackedState && atRest {
			e.buffer = append(e.buffer, AtRestEvent{Body: body})
			e.restStates[body] = true
		} else if trackedState && !atRest {
			e.buffer = append(e.buffer, MovingEvent{Body: body})
			e.restStates[body] = false
		}
	}
}

func (e *Events) forgetBody(body *actor.RigidBody) {
	delete(e.restStates, body)
}

func (e *Events) forgetCar(car *vehicle.Car) {
	for key := range e.previousContacts {
		if key.car == car {
			delete(e.previousContacts, key)
		}
	}
	for key := range e.currentContacts {
		if key.car == car {
			delete(e.currentContacts, key)
		}
	}
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processContactEvents()

	for _, event := range e.buffer {
		if ce := e.logger.Check(zap.DebugLevel, "event"); ce != nil {
			ce.Write(eventFields(event)...)
		}

		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}

func eventFields(event Event) []zap.Field {
	fields := []zap.Field{zap.Stringer("type", event.Type())}
	switch ev := event.(type) {
	case WheelContactEnterEvent:
		fields = append(fields, zap.Stringer("wheel", ev.Wheel))
	case WheelContactExitEvent:
		fields = append(fields, zap.Stringer("wheel", ev.Wheel))
	case AtRestEvent:
		fields = append(fields, zap.Float32("y", ev.Body.Position.Y))
	case MovingEvent:
		fields = append(fields, zap.Float32("speed", ev.Body.Velocity.Length()))
	}
	return fields
}
