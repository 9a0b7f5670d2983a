package input

// Key names a logical control. The platform layer maps physical keys onto it.
type Key int

const (
	KeyMoveForward Key = iota
	KeyMoveBackward
	KeyMoveLeft
	KeyMoveRight
	KeyMoveUp
	KeyMoveDown
	KeyCameraSimulate
	KeyCameraReset
	KeyThrottle
	KeyBrake
	KeySteerLeft
	KeySteerRight
	keyCount
)

var keyNames = [keyCount]string{
	KeyMoveForward:    "move_forward",
	KeyMoveBackward:   "move_backward",
	KeyMoveLeft:       "move_left",
	KeyMoveRight:      "move_right",
	KeyMoveUp:         "move_up",
	KeyMoveDown:       "move_down",
	KeyCameraSimulate: "camera_simulate",
	KeyCameraReset:    "camera_reset",
	KeyThrottle:       "throttle",
	KeyBrake:          "brake",
	KeySteerLeft:      "steer_left",
	KeySteerRight:     "steer_right",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// Keys lists every defined key in declaration order.
func Keys() []Key {
	keys := make([]Key, 0, keyCount)
	for k := Key(0); k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// ButtonState records how often a button flipped during the frame and where it ended.
type ButtonState struct {
	HalfTransitionCount int
	EndedDown           bool
}

// Mouse holds the pointer position and the per-frame deltas.
type Mouse struct {
	Attached bool
	X, Y     float32
	OffsetX  float32
	OffsetY  float32
	Scroll   float32
}

// State is the input snapshot handed to one frame.
type State struct {
	buttons map[Key]ButtonState
	Mouse   Mouse
}

func NewState() *State {
	return &State{buttons: make(map[Key]ButtonState, keyCount)}
}

// Set records the button level for k, counting a transition when it changes.
func (s *State) Set(k Key, down bool) {
	b := s.buttons[k]
	if b.EndedDown != down {
		b.HalfTransitionCount++
		b.EndedDown = down
	}
	s.buttons[k] = b
}

func (s *State) Press(k Key) {
	s.Set(k, true)
}

func (s *State) Release(k Key) {
	s.Set(k, false)
}

func (s *State) Button(k Key) ButtonState {
	return s.buttons[k]
}

func (s *State) Down(k Key) bool {
	return s.buttons[k].EndedDown
}

// Pressed reports a button that went down during this frame.
func (s *State) Pressed(k Key) bool {
	b := s.buttons[k]
	return b.EndedDown && b.HalfTransitionCount > 0
}

func (s *State) Transitions(k Key) int {
	return s.buttons[k].HalfTransitionCount
}

// MoveMouse sets the pointer position and accumulates the delta since the last
// position. The first call after attaching only records the position.
func (s *State) MoveMouse(x, y float32) {
	if s.Mouse.Attached {
		s.Mouse.OffsetX += x - s.Mouse.X
		s.Mouse.OffsetY += s.Mouse.Y - y
	}
	s.Mouse.Attached = true
	s.Mouse.X = x
	s.Mouse.Y = y
}

// DetachMouse stops delta tracking until the next MoveMouse.
func (s *State) DetachMouse() {
	s.Mouse.Attached = false
}

func (s *State) ScrollBy(offset float32) {
	s.Mouse.Scroll += offset
}

// EndFrame clears transition counts and mouse deltas, keeping button levels
// and the pointer position.
func (s *State) EndFrame() {
	for k, b := range s.buttons {
		b.HalfTransitionCount = 0
		s.buttons[k] = b
	}
	s.Mouse.OffsetX = 0
	s.Mouse.OffsetY = 0
	s.Mouse.Scroll = 0
}
