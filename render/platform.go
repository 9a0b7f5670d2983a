package render

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Platform is the external draw sink. Draw must not retain call after it
// returns; the buffers are rewritten on the next frame.
type Platform interface {
	Draw(call *DrawCall, projectionView mgl32.Mat4) error
}

// PlatformFunc adapts a function to Platform.
type PlatformFunc func(call *DrawCall, projectionView mgl32.Mat4) error

func (f PlatformFunc) Draw(call *DrawCall, projectionView mgl32.Mat4) error {
	return f(call, projectionView)
}

// Submission is what a Recorder keeps of one Draw.
type Submission struct {
	Name           string
	Count          int
	Changed        bool
	Is2D           bool
	ProjectionView mgl32.Mat4
	Models         []float32
	Colors         []float32
}

// Recorder is a Platform that copies every submission. It backs headless runs
// and tests.
type Recorder struct {
	mu          sync.Mutex
	submissions []Submission
}

func (r *Recorder) Draw(call *DrawCall, projectionView mgl32.Mat4) error {
	s := Submission{
		Name:           call.Name,
		Count:          call.Count,
		Changed:        call.Changed,
		Is2D:           call.Is2D,
		ProjectionView: projectionView,
		Models:         append([]float32(nil), call.ActiveModels()...),
		Colors:         append([]float32(nil), call.ActiveColors()...),
	}

	r.mu.Lock()
	r.submissions = append(r.submissions, s)
	r.mu.Unlock()
	return nil
}

func (r *Recorder) Submissions() []Submission {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Submission(nil), r.submissions...)
}

// Last returns the most recent submission of the named draw call.
func (r *Recorder) Last(name string) (Submission, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.submissions) - 1; i >= 0; i-- {
		if r.submissions[i].Name == name {
			return r.submissions[i], true
		}
	}
	return Submission{}, false
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.submissions = r.submissions[:0]
	r.mu.Unlock()
}
