package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/akmonengine/speg/vm"
)

const (
	ModelStride   = 16
	ColorStride   = 3
	TextureStride = 1

	// DefaultTexture tells the sink to use the plain vertex color.
	DefaultTexture int32 = -1
)

var (
	ErrCapacityExceeded = errors.New("render: draw call capacity exceeded")
	ErrBufferMismatch   = errors.New("render: instance buffers disagree on capacity")
)

// DrawCall accumulates per-instance attributes for one instanced draw. The
// buffers are owned by the caller and never reallocated: Models holds 16
// column-major floats per instance, Colors 3 and TextureIndices 1.
type DrawCall struct {
	Name           string
	Models         []float32
	Colors         []float32
	TextureIndices []int32
	Count          int
	Is2D           bool

	// Changed is set by Seal when the active region differs from the last
	// sealed content. Sinks may skip re-uploading unchanged buffers.
	Changed bool

	sealed  bool
	sum     uint64
	scratch []byte
}

// NewDrawCall wraps caller-provided buffers. The three slices must describe the
// same number of instances.
func NewDrawCall(name string, models, colors []float32, textures []int32) (*DrawCall, error) {
	if len(models)%ModelStride != 0 {
		return nil, fmt.Errorf("%s: %d model floats is not a multiple of %d: %w", name, len(models), ModelStride, ErrBufferMismatch)
	}
	capacity := len(models) / ModelStride
	if len(colors) != capacity*ColorStride || len(textures) != capacity*TextureStride {
		return nil, fmt.Errorf("%s: %d models, %d colors, %d textures: %w",
			name, capacity, len(colors)/ColorStride, len(textures), ErrBufferMismatch)
	}

	return &DrawCall{
		Name:           name,
		Models:         models,
		Colors:         colors,
		TextureIndices: textures,
	}, nil
}

// NewDrawCallWithCapacity allocates buffers for capacity instances.
func NewDrawCallWithCapacity(name string, capacity int) *DrawCall {
	return &DrawCall{
		Name:           name,
		Models:         make([]float32, capacity*ModelStride),
		Colors:         make([]float32, capacity*ColorStride),
		TextureIndices: make([]int32, capacity*TextureStride),
	}
}

func (d *DrawCall) Cap() int {
	return len(d.TextureIndices)
}

// Append copies one instance into the next free slot. A full draw call is
// left untouched and ErrCapacityExceeded is returned.
func (d *DrawCall) Append(model vm.Mat4, color vm.Vec3, texture int32) error {
	if d.Count >= d.Cap() {
		return fmt.Errorf("%s: %d instances: %w", d.Name, d.Cap(), ErrCapacityExceeded)
	}

	copy(d.Models[d.Count*ModelStride:], model[:])
	c := d.Colors[d.Count*ColorStride:]
	c[0], c[1], c[2] = color.X, color.Y, color.Z
	d.TextureIndices[d.Count] = texture
	d.Count++

	return nil
}

// Reset empties the draw call. The buffers and the last sealed checksum are kept.
func (d *DrawCall) Reset() {
	d.Count = 0
}

// Instance returns the model, color and texture of instance i.
func (d *DrawCall) Instance(i int) (vm.Mat4, vm.Vec3, int32) {
	var m vm.Mat4
	copy(m[:], d.Models[i*ModelStride:(i+1)*ModelStride])
	c := d.Colors[i*ColorStride:]
	return m, vm.Vec3{X: c[0], Y: c[1], Z: c[2]}, d.TextureIndices[i]
}

// ActiveModels is the filled part of Models.
func (d *DrawCall) ActiveModels() []float32 {
	return d.Models[:d.Count*ModelStride]
}

func (d *DrawCall) ActiveColors() []float32 {
	return d.Colors[:d.Count*ColorStride]
}

func (d *DrawCall) ActiveTextures() []int32 {
	return d.TextureIndices[:d.Count]
}

// Seal hashes the active region and updates Changed. The first Seal always
// reports a change.
func (d *DrawCall) Seal() bool {
	sum := d.checksum()
	d.Changed = !d.sealed || sum != d.sum
	d.sum = sum
	d.sealed = true
	return d.Changed
}

func (d *DrawCall) checksum() uint64 {
	d.scratch = d.scratch[:0]
	d.scratch = binary.LittleEndian.AppendUint32(d.scratch, uint32(d.Count))
	for _, f := range d.ActiveModels() {
		d.scratch = binary.LittleEndian.AppendUint32(d.scratch, math.Float32bits(f))
	}
	for _, f := range d.ActiveColors() {
		d.scratch = binary.LittleEndian.AppendUint32(d.scratch, math.Float32bits(f))
	}
	for _, t := range d.ActiveTextures() {
		d.scratch = binary.LittleEndian.AppendUint32(d.scratch, uint32(t))
	}
	return xxhash.Sum64(d.scratch)
}
