package actor

import (
	"errors"
	"fmt"

	"github.com/akmonengine/speg/vm"
)

var (
	ErrCycle            = errors.New("actor: parent would create a cycle")
	ErrZeroScale        = errors.New("actor: scale is zero")
	ErrUnknownTransform = errors.New("actor: unknown transform")
)

// Transform represents a position, rotation and scale relative to a parent space
type Transform struct {
	Position vm.Vec3
	Rotation vm.Quat
	Scale    vm.Vec3
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Rotation: vm.QuatIdent(),
		Scale:    vm.Vec3One,
	}
}

// LocalMatrix composes translation * rotation * scale.
func (t Transform) LocalMatrix() vm.Mat4 {
	return vm.Translation(t.Position).Mul(t.Rotation.Mat4()).Scale(t.Scale)
}

func (t Transform) validate() error {
	if t.Scale.Equal(vm.Vec3Zero) {
		return ErrZeroScale
	}
	return nil
}

// TransformID addresses a transform inside a Hierarchy.
type TransformID int

// NoParent marks a root transform.
const NoParent TransformID = -1

type node struct {
	local  Transform
	parent TransformID
}

// Hierarchy stores transforms in a flat arena. Parents are referenced by id and
// the parent graph is kept acyclic: Add only accepts existing parents, and
// SetParent walks the chain before re-linking.
type Hierarchy struct {
	nodes []node
}

func NewHierarchy() *Hierarchy {
	return &Hierarchy{}
}

func (h *Hierarchy) Len() int {
	return len(h.nodes)
}

func (h *Hierarchy) exists(id TransformID) bool {
	return id >= 0 && int(id) < len(h.nodes)
}

// Add appends t under parent, which is NoParent or an existing id.
func (h *Hierarchy) Add(t Transform, parent TransformID) (TransformID, error) {
	if err := t.validate(); err != nil {
		return NoParent, err
	}
	if parent != NoParent && !h.exists(parent) {
		return NoParent, fmt.Errorf("parent %d: %w", parent, ErrUnknownTransform)
	}

	h.nodes = append(h.nodes, node{local: t, parent: parent})
	return TransformID(len(h.nodes) - 1), nil
}

// SetParent re-links id under parent. It fails with ErrCycle when parent is id
// itself or one of its descendants.
func (h *Hierarchy) SetParent(id, parent TransformID) error {
	if !h.exists(id) {
		return fmt.Errorf("transform %d: %w", id, ErrUnknownTransform)
	}
	if parent != NoParent && !h.exists(parent) {
		return fmt.Errorf("parent %d: %w", parent, ErrUnknownTransform)
	}

	for p := parent; p != NoParent; p = h.nodes[p].parent {
		if p == id {
			return fmt.Errorf("transform %d under %d: %w", id, parent, ErrCycle)
		}
	}

	h.nodes[id].parent = parent
	return nil
}

func (h *Hierarchy) Parent(id TransformID) (TransformID, error) {
	if !h.exists(id) {
		return NoParent, fmt.Errorf("transform %d: %w", id, ErrUnknownTransform)
	}
	return h.nodes[id].parent, nil
}

func (h *Hierarchy) Local(id TransformID) (Transform, error) {
	if !h.exists(id) {
		return Transform{}, fmt.Errorf("transform %d: %w", id, ErrUnknownTransform)
	}
	return h.nodes[id].local, nil
}

func (h *Hierarchy) SetLocal(id TransformID, t Transform) error {
	if !h.exists(id) {
		return fmt.Errorf("transform %d: %w", id, ErrUnknownTransform)
	}
	if err := t.validate(); err != nil {
		return fmt.Errorf("transform %d: %w", id, err)
	}
	h.nodes[id].local = t
	return nil
}

// Rotate turns the local rotation of id by angle radians about a unit axis,
// applied after the current rotation.
func (h *Hierarchy) Rotate(id TransformID, axis vm.Vec3, angle float32) error {
	if !h.exists(id) {
		return fmt.Errorf("transform %d: %w", id, ErrUnknownTransform)
	}
	local := &h.nodes[id].local
	local.Rotation = vm.QuatFromAxisAngle(axis, angle).Mul(local.Rotation).Normalize()
	return nil
}

// WorldMatrix returns parent_world * local for id, walking up to the root.
func (h *Hierarchy) WorldMatrix(id TransformID) (vm.Mat4, error) {
	if !h.exists(id) {
		return vm.Mat4{}, fmt.Errorf("transform %d: %w", id, ErrUnknownTransform)
	}

	n := h.nodes[id]
	world := n.local.LocalMatrix()
	for p := n.parent; p != NoParent; p = h.nodes[p].parent {
		world = h.nodes[p].local.LocalMatrix().Mul(world)
	}

	return world, nil
}

// WorldPosition is the translation part of WorldMatrix.
func (h *Hierarchy) WorldPosition(id TransformID) (vm.Vec3, error) {
	world, err := h.WorldMatrix(id)
	if err != nil {
		return vm.Vec3{}, err
	}
	return world.Position(), nil
}
