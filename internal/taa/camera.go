package taa

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/qjulia/internal/qmath"
)

// The fractal itself is drawn by a fullscreen-quad shader; the matrices
// here belong to a secondary synthetic camera used only for the TAA
// reprojection math. Near/far bracket the marcher's reachable range.
const (
	reprojNear = 0.05
	reprojFar  = 200.0
)

// Projection builds the synthetic perspective matrix for the reprojection
// camera from the renderer's focal length and the target aspect ratio.
func Projection(focalLength float64, aspect float32) mgl32.Mat4 {
	fovy := 2 * math.Atan(1/focalLength)
	return mgl32.Perspective(float32(fovy), aspect, reprojNear, reprojFar)
}

// View builds the world-to-camera matrix from the camera position and its
// forward/up basis.
func View(pos, forward, up qmath.Vec3) mgl32.Mat4 {
	eye := mgl32.Vec3{float32(pos.X), float32(pos.Y), float32(pos.Z)}
	center := mgl32.Vec3{
		float32(pos.X + forward.X),
		float32(pos.Y + forward.Y),
		float32(pos.Z + forward.Z),
	}
	upv := mgl32.Vec3{float32(up.X), float32(up.Y), float32(up.Z)}
	return mgl32.LookAtV(eye, center, upv)
}

// Jittered offsets the projection by a sub-pixel amount in NDC. Only the
// projection handed to the render pass is jittered; the resolve pass and
// the stored previous view-projection always use the clean matrix.
func Jittered(proj mgl32.Mat4, jx, jy float64, w, h int) mgl32.Mat4 {
	dx := float32(2 * jx / float64(w))
	dy := float32(2 * jy / float64(h))
	return mgl32.Translate3D(dx, dy, 0).Mul4(proj)
}
