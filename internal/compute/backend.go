package compute

import "fmt"

// DefaultFieldCapacity sizes the GL point buffers for the largest batch
// the callers submit.
const DefaultFieldCapacity = 1 << 16

// Backend evaluates the quaternion Julia distance field over batches of
// points. points holds xyz triples; the result has one distance per
// point in the same order.
type Backend interface {
	Name() string
	Available() bool
	EvalField(points []float64, slice float64, c [4]float64, maxIter int) []float64
	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = AutoSelectBackend()
}

func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}

// AutoSelectBackend prefers an initialized OpenGL backend; without a GL
// context the CPU backend is the only one available.
func AutoSelectBackend() Backend {
	return NewCPUBackend()
}

// ForName builds the backend a config names. "opengl" and "auto" try to
// initialize the GL compute path and need a current GL context; on
// failure both fall back to the CPU backend, with an error only when GL
// was requested explicitly. The returned backend is always usable.
func ForName(name string, capacity int) (Backend, error) {
	switch name {
	case "", "cpu":
		return NewCPUBackend(), nil
	case "auto", "opengl":
		b := NewOpenGLBackend(capacity)
		if err := b.Init(); err != nil {
			if name == "opengl" {
				return NewCPUBackend(), fmt.Errorf("opengl backend: %w", err)
			}
			return NewCPUBackend(), nil
		}
		return b, nil
	}
	return NewCPUBackend(), fmt.Errorf("unknown backend %q", name)
}
