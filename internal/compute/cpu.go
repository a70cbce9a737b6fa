package compute

import (
	"runtime"
	"sync"

	"github.com/san-kum/qjulia/internal/fractal"
	"github.com/san-kum/qjulia/internal/qmath"
)

type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{
		workers: runtime.NumCPU(),
	}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}

func (c *CPUBackend) EvalField(points []float64, slice float64, cc [4]float64, maxIter int) []float64 {
	n := len(points) / 3
	out := make([]float64, n)
	cv := qmath.Vec4{X: cc[0], Y: cc[1], Z: cc[2], W: cc[3]}

	if n < 1024 {
		c.evalSerial(points, slice, cv, maxIter, out)
		return out
	}
	c.evalParallel(points, slice, cv, maxIter, out)
	return out
}

func (c *CPUBackend) evalSerial(points []float64, slice float64, cv qmath.Vec4, maxIter int, out []float64) {
	for i := range out {
		p := qmath.Vec3{X: points[i*3], Y: points[i*3+1], Z: points[i*3+2]}
		out[i] = fractal.Estimate(p, slice, cv, maxIter)
	}
}

func (c *CPUBackend) evalParallel(points []float64, slice float64, cv qmath.Vec4, maxIter int, out []float64) {
	n := len(out)
	var wg sync.WaitGroup
	chunkSize := (n + c.workers - 1) / c.workers

	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			start := worker * chunkSize
			end := start + chunkSize
			if end > n {
				end = n
			}
			for i := start; i < end; i++ {
				p := qmath.Vec3{X: points[i*3], Y: points[i*3+1], Z: points[i*3+2]}
				out[i] = fractal.Estimate(p, slice, cv, maxIter)
			}
		}(w)
	}
	wg.Wait()
}
