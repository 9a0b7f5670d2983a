package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyString(t *testing.T) {
	assert.Equal(t, "move_forward", KeyMoveForward.String())
	assert.Equal(t, "steer_right", KeySteerRight.String())
	assert.Equal(t, "unknown", Key(-1).String())
	assert.Equal(t, "unknown", keyCount.String())

	keys := Keys()
	require.Len(t, keys, int(keyCount))
	for _, k := range keys {
		assert.NotEqual(t, "", k.String(), "key %d has no name", int(k))
	}
}

func TestPressRelease(t *testing.T) {
	s := NewState()

	assert.False(t, s.Down(KeyThrottle))
	assert.Equal(t, ButtonState{}, s.Button(KeyThrottle))

	s.Press(KeyThrottle)
	assert.True(t, s.Down(KeyThrottle))
	assert.True(t, s.Pressed(KeyThrottle))
	assert.Equal(t, 1, s.Transitions(KeyThrottle))

	// Repeated presses without a release are not transitions.
	s.Press(KeyThrottle)
	assert.Equal(t, 1, s.Transitions(KeyThrottle))

	s.Release(KeyThrottle)
	s.Press(KeyThrottle)
	assert.Equal(t, 3, s.Transitions(KeyThrottle))
	assert.True(t, s.Down(KeyThrottle))

	assert.False(t, s.Down(KeyBrake), "other keys stay untouched")
}

func TestEndFrame(t *testing.T) {
	s := NewState()

	s.Press(KeyMoveForward)
	s.Press(KeyCameraReset)
	s.Release(KeyCameraReset)
	s.MoveMouse(100, 100)
	s.MoveMouse(110, 95)
	s.ScrollBy(2)

	require.Equal(t, float32(10), s.Mouse.OffsetX)
	require.Equal(t, float32(5), s.Mouse.OffsetY)
	require.Equal(t, float32(2), s.Mouse.Scroll)

	s.EndFrame()

	assert.True(t, s.Down(KeyMoveForward), "held keys stay down")
	assert.False(t, s.Pressed(KeyMoveForward), "no transition in the new frame")
	assert.Equal(t, 0, s.Transitions(KeyCameraReset))
	assert.Zero(t, s.Mouse.OffsetX)
	assert.Zero(t, s.Mouse.OffsetY)
	assert.Zero(t, s.Mouse.Scroll)
	assert.Equal(t, float32(110), s.Mouse.X)
	assert.Equal(t, float32(95), s.Mouse.Y)
}

func TestMouseAttach(t *testing.T) {
	s := NewState()

	s.MoveMouse(50, 50)
	assert.True(t, s.Mouse.Attached)
	assert.Zero(t, s.Mouse.OffsetX, "first sample only records the position")

	s.DetachMouse()
	s.MoveMouse(500, 10)
	assert.Zero(t, s.Mouse.OffsetX, "no jump after re-attaching")
	assert.Zero(t, s.Mouse.OffsetY)

	s.MoveMouse(490, 20)
	assert.Equal(t, float32(-10), s.Mouse.OffsetX)
	assert.Equal(t, float32(-10), s.Mouse.OffsetY)
}
