// Package compute provides bulk distance-field evaluation backends.
//
// The package automatically selects the best available backend:
//
//   - OpenGL: compute-shader evaluation of the distance field over
//     point batches, brought up by the GUI once a GL context exists
//   - CPU: parallel fallback for systems without a GPU context
//
// # GPU Acceleration
//
// Batch field queries go through the active backend:
//
//	backend := compute.GetBackend()
//	dists := backend.EvalField(points, slice, c, maxIter)
//
// The OpenGL backend only becomes available after Init is called with a
// live GL context; until then AutoSelectBackend returns the CPU backend.
package compute
