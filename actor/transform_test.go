package actor

import (
	"errors"
	"testing"

	"github.com/akmonengine/speg/vm"
)

// =============================================================================
// Transform Tests
// =============================================================================

func TestNewTransform(t *testing.T) {
	tr := NewTransform()

	if !tr.Position.Equal(vm.Vec3{}) {
		t.Errorf("Position = %v, want zero", tr.Position)
	}
	if !tr.Rotation.Equal(vm.QuatIdent()) {
		t.Errorf("Rotation = %v, want identity", tr.Rotation)
	}
	if !tr.Scale.Equal(vm.Vec3One) {
		t.Errorf("Scale = %v, want one", tr.Scale)
	}
	if m := tr.LocalMatrix(); !m.Equal(vm.Ident()) {
		t.Errorf("LocalMatrix() = %v, want identity", m)
	}
}

func TestTransform_LocalMatrixOrder(t *testing.T) {
	tr := NewTransform()
	tr.Position = vm.Vec3{X: 10}
	tr.Rotation = vm.QuatFromAxisAngle(vm.Vec3{Y: 1}, vm.HalfPi)
	tr.Scale = vm.Vec3{X: 2, Y: 2, Z: 2}

	// Scale first, then rotate +X onto -Z, then translate.
	got := tr.LocalMatrix().TransformPoint(vm.Vec3{X: 1})
	want := vm.Vec3{X: 10, Z: -2}
	if !got.ApproxEqual(want, 1e-3) {
		t.Errorf("LocalMatrix() applied to {1 0 0} = %v, want %v", got, want)
	}
}

// =============================================================================
// Hierarchy Tests
// =============================================================================

func TestHierarchy_ChildInheritsParentTranslation(t *testing.T) {
	h := NewHierarchy()

	parent := NewTransform()
	parent.Position = vm.Vec3{X: 5}
	parentID, err := h.Add(parent, NoParent)
	if err != nil {
		t.Fatalf("Add(parent) error = %v", err)
	}

	child := NewTransform()
	child.Position = vm.Vec3{X: 1}
	childID, err := h.Add(child, parentID)
	if err != nil {
		t.Fatalf("Add(child) error = %v", err)
	}

	got, err := h.WorldPosition(childID)
	if err != nil {
		t.Fatalf("WorldPosition() error = %v", err)
	}
	if want := (vm.Vec3{X: 6}); !got.Equal(want) {
		t.Errorf("WorldPosition() = %v, want %v", got, want)
	}
}

func TestHierarchy_GrandchildChain(t *testing.T) {
	h := NewHierarchy()

	root := NewTransform()
	root.Rotation = vm.QuatFromAxisAngle(vm.Vec3{Y: 1}, vm.HalfPi)
	rootID, _ := h.Add(root, NoParent)

	middle := NewTransform()
	middle.Position = vm.Vec3{X: 2}
	middle.Scale = vm.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	middleID, _ := h.Add(middle, rootID)

	leaf := NewTransform()
	leaf.Position = vm.Vec3{X: 2}
	leafID, _ := h.Add(leaf, middleID)

	// root rotates +X onto -Z; middle sits at 2 along it and halves the leaf offset.
	got, err := h.WorldPosition(leafID)
	if err != nil {
		t.Fatalf("WorldPosition() error = %v", err)
	}
	if want := (vm.Vec3{Z: -3}); !got.ApproxEqual(want, 1e-3) {
		t.Errorf("WorldPosition() = %v, want %v", got, want)
	}

	world, _ := h.WorldMatrix(leafID)
	rootM, _ := h.WorldMatrix(rootID)
	expected := rootM.Mul(middle.LocalMatrix()).Mul(leaf.LocalMatrix())
	if !world.ApproxEqual(expected, 1e-5) {
		t.Errorf("WorldMatrix() = %v, want %v", world, expected)
	}
}

func TestHierarchy_ZeroScale(t *testing.T) {
	h := NewHierarchy()

	zero := NewTransform()
	zero.Scale = vm.Vec3{}

	if _, err := h.Add(zero, NoParent); !errors.Is(err, ErrZeroScale) {
		t.Errorf("Add(zero scale) error = %v, want ErrZeroScale", err)
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d after rejected Add, want 0", h.Len())
	}

	id, _ := h.Add(NewTransform(), NoParent)
	if err := h.SetLocal(id, zero); !errors.Is(err, ErrZeroScale) {
		t.Errorf("SetLocal(zero scale) error = %v, want ErrZeroScale", err)
	}

	flat := NewTransform()
	flat.Scale = vm.Vec3{X: 1, Y: 0, Z: 1}
	if err := h.SetLocal(id, flat); err != nil {
		t.Errorf("SetLocal(partially zero scale) error = %v, want nil", err)
	}
}

func TestHierarchy_Cycle(t *testing.T) {
	h := NewHierarchy()

	a, _ := h.Add(NewTransform(), NoParent)
	b, _ := h.Add(NewTransform(), a)
	c, _ := h.Add(NewTransform(), b)

	tests := []struct {
		name    string
		id      TransformID
		parent  TransformID
		wantErr error
	}{
		{"self", a, a, ErrCycle},
		{"descendant", a, c, ErrCycle},
		{"direct child", b, c, ErrCycle},
		{"unknown parent", a, 42, ErrUnknownTransform},
		{"unknown id", 42, a, ErrUnknownTransform},
		{"reparent to root", c, NoParent, nil},
		{"reparent sideways", c, a, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.SetParent(tt.id, tt.parent)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SetParent(%d, %d) error = %v, want %v", tt.id, tt.parent, err, tt.wantErr)
			}
		})
	}

	if p, _ := h.Parent(c); p != a {
		t.Errorf("Parent(c) = %d, want %d", p, a)
	}
	if p, _ := h.Parent(a); p != NoParent {
		t.Errorf("Parent(a) = %d, want NoParent", p)
	}
}

func TestHierarchy_UnknownTransform(t *testing.T) {
	h := NewHierarchy()

	if _, err := h.Add(NewTransform(), 3); !errors.Is(err, ErrUnknownTransform) {
		t.Errorf("Add() under missing parent error = %v, want ErrUnknownTransform", err)
	}
	if _, err := h.WorldMatrix(0); !errors.Is(err, ErrUnknownTransform) {
		t.Errorf("WorldMatrix(0) error = %v, want ErrUnknownTransform", err)
	}
	if _, err := h.Local(-1); !errors.Is(err, ErrUnknownTransform) {
		t.Errorf("Local(-1) error = %v, want ErrUnknownTransform", err)
	}
	if err := h.Rotate(7, vm.Vec3{Y: 1}, 1); !errors.Is(err, ErrUnknownTransform) {
		t.Errorf("Rotate(7) error = %v, want ErrUnknownTransform", err)
	}
}

func TestHierarchy_Rotate(t *testing.T) {
	h := NewHierarchy()

	id, _ := h.Add(NewTransform(), NoParent)
	for i := 0; i < 4; i++ {
		if err := h.Rotate(id, vm.Vec3{Y: 1}, vm.HalfPi/2); err != nil {
			t.Fatalf("Rotate() error = %v", err)
		}
	}

	local, _ := h.Local(id)
	if l := local.Rotation.Length(); vm.Abs(l-1) > 1e-4 {
		t.Errorf("rotation length = %v, want 1", l)
	}

	// Four eighth turns make a half turn: +X ends on -X.
	if got := local.Rotation.Rotate(vm.Vec3{X: 1}); !got.ApproxEqual(vm.Vec3{X: -1}, 1e-2) {
		t.Errorf("rotated +X = %v, want {-1 0 0}", got)
	}
}
