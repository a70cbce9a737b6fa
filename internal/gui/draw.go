package gui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/qjulia/internal/state"
	"github.com/san-kum/qjulia/internal/taa"
)

// Draw runs the fixed GPU frame sequence: march into the main target,
// TAA-resolve against history, copy the raw main frame into history,
// present, then commit this frame's matrices for the next resolve.
// History holds the unblended frame, so reprojection reaches exactly one
// frame back.
func (a *App) Draw() {
	w := int(a.MainTex.Texture.Width)
	h := int(a.MainTex.Texture.Height)
	aspect := float32(w) / float32(h)

	proj := taa.Projection(a.Camera.FocalLength, aspect)
	forward, _, up := a.Camera.Basis()
	view := taa.View(a.Camera.Position, forward, up)

	var jx, jy float64
	if a.State.TAA.Enabled {
		jx, jy = taa.Jitter(uint64(a.frame))
	}

	// The march output carries depth in alpha, so both passes that write
	// it must overwrite instead of alpha-blending.
	a.uploadMarchUniforms(w, h, jx, jy, proj, view)
	rl.BeginTextureMode(a.MainTex)
	rl.DisableColorBlend()
	rl.BeginShaderMode(a.MarchShader)
	rl.DrawRectangle(0, 0, int32(w), int32(h), rl.White)
	rl.EndShaderMode()
	rl.EnableColorBlend()
	rl.EndTextureMode()

	a.uploadResolveUniforms(w, h, proj, view)
	rl.BeginTextureMode(a.ResolvedTex)
	rl.BeginShaderMode(a.TAAShader)
	rl.SetShaderValueTexture(a.TAAShader,
		rl.GetShaderLocation(a.TAAShader, "historyTex"), a.HistoryTex.Texture)
	drawTarget(a.MainTex, w, h)
	rl.EndShaderMode()
	rl.EndTextureMode()

	rl.BeginTextureMode(a.HistoryTex)
	rl.DisableColorBlend()
	drawTarget(a.MainTex, w, h)
	rl.EnableColorBlend()
	rl.EndTextureMode()

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	a.present(w, h)
	a.drawHUD()
	rl.EndDrawing()

	if a.Recording != nil {
		if err := a.Recording.WriteFrame(a.snapshotImage()); err != nil {
			a.Recording = nil
			a.notify("Recording failed: %v", err)
		}
	}

	a.PrevViewProj = proj.Mul4(view)
	a.hasHistory = true
	a.frame++
	a.fps.Tick(time.Now())
}

// drawTarget blits a render texture at 1:1. Render textures are stored
// bottom-up, hence the negative source height.
func drawTarget(t rl.RenderTexture2D, w, h int) {
	src := rl.NewRectangle(0, 0, float32(w), -float32(h))
	rl.DrawTextureRec(t.Texture, src, rl.NewVector2(0, 0), rl.White)
}

// present scales the resolved target to the window.
func (a *App) present(w, h int) {
	src := rl.NewRectangle(0, 0, float32(w), -float32(h))
	dst := rl.NewRectangle(0, 0,
		float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	rl.DrawTexturePro(a.ResolvedTex.Texture, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

func setFloat(sh rl.Shader, name string, v float64) {
	rl.SetShaderValue(sh, rl.GetShaderLocation(sh, name),
		[]float32{float32(v)}, rl.ShaderUniformFloat)
}

func setFlag(sh rl.Shader, name string, b bool) {
	v := float64(0)
	if b {
		v = 1
	}
	setFloat(sh, name, v)
}

func setVec2(sh rl.Shader, name string, x, y float32) {
	rl.SetShaderValue(sh, rl.GetShaderLocation(sh, name),
		[]float32{x, y}, rl.ShaderUniformVec2)
}

func setVec3(sh rl.Shader, name string, x, y, z float64) {
	rl.SetShaderValue(sh, rl.GetShaderLocation(sh, name),
		[]float32{float32(x), float32(y), float32(z)}, rl.ShaderUniformVec3)
}

func setVec4(sh rl.Shader, name string, x, y, z, w float64) {
	rl.SetShaderValue(sh, rl.GetShaderLocation(sh, name),
		[]float32{float32(x), float32(y), float32(z), float32(w)}, rl.ShaderUniformVec4)
}

func setMatrix(sh rl.Shader, name string, m mgl32.Mat4) {
	rl.SetShaderValueMatrix(sh, rl.GetShaderLocation(sh, name), toRlMatrix(m))
}

// toRlMatrix converts an mgl32 matrix to raylib's. Both store column-major
// with index = 4*col + row, so the mapping is direct.
func toRlMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func (a *App) uploadMarchUniforms(w, h int, jx, jy float64, proj, view mgl32.Mat4) {
	sh := a.MarchShader
	st := a.State
	cam := a.Camera
	forward, right, up := cam.Basis()

	setVec2(sh, "resolution", float32(w), float32(h))
	setVec2(sh, "jitter", float32(jx), float32(jy))
	setFloat(sh, "elapsed", a.elapsed)

	setVec3(sh, "camPos", cam.Position.X, cam.Position.Y, cam.Position.Z)
	setVec3(sh, "camForward", forward.X, forward.Y, forward.Z)
	setVec3(sh, "camRight", right.X, right.Y, right.Z)
	setVec3(sh, "camUp", up.X, up.Y, up.Z)
	setFloat(sh, "focal", cam.FocalLength)
	setMatrix(sh, "viewProj", proj.Mul4(view))

	setVec4(sh, "c", st.Fractal.C.X, st.Fractal.C.Y, st.Fractal.C.Z, st.Fractal.C.W)
	setFloat(sh, "slice", st.Slice.Value)
	setFloat(sh, "maxIter", float64(st.Quality.MaxIter))

	setFlag(sh, "shadows", st.Quality.Shadows)
	setFlag(sh, "aoOn", st.Quality.AO)
	setFlag(sh, "specular", st.Quality.Specular)
	setFlag(sh, "smoothColor", st.Quality.SmoothColor)
	setFlag(sh, "adaptiveStep", st.Quality.AdaptiveStep)

	setFloat(sh, "clipMode", float64(st.Clip.Mode))
	setFloat(sh, "clipDistance", st.Clip.Distance)

	setFloat(sh, "palette", float64(st.Color.Palette))
	dyn := st.Color.Dynamics
	setFloat(sh, "saturation", dyn.Saturation)
	setFloat(sh, "brightness", dyn.Brightness)
	setFloat(sh, "contrast", dyn.Contrast)
	phase := dyn.PhaseShift
	if dyn.Animate {
		phase += a.elapsed * dyn.AnimSpeed
	}
	setFloat(sh, "phaseShift", phase)

	setFloat(sh, "effectKind", float64(st.Color.Effect.Kind))
	switch st.Color.Effect.Kind {
	case state.EffectOrbitTrap:
		p := st.Color.Effect.OrbitTrap
		setFloat(sh, "trapType", float64(p.Type))
		setFloat(sh, "trapRadius", p.Radius)
		setFloat(sh, "trapIntensity", p.Intensity)
	case state.EffectPhysics:
		p := st.Color.Effect.Physics
		setFloat(sh, "physType", float64(p.Type))
		setFloat(sh, "physFrequency", p.Frequency)
		setFloat(sh, "physWaves", p.Waves)
		setFloat(sh, "physIntensity", p.Intensity)
		setFloat(sh, "physBalance", p.Balance)
	}
}

func (a *App) uploadResolveUniforms(w, h int, proj, view mgl32.Mat4) {
	sh := a.TAAShader
	setVec2(sh, "resolution", float32(w), float32(h))
	setMatrix(sh, "projInv", proj.Inv())
	setMatrix(sh, "viewInv", view.Inv())
	setMatrix(sh, "prevViewProj", a.PrevViewProj)
	setFloat(sh, "blendFactor", float64(a.State.TAA.BlendFactor))
	setFlag(sh, "taaEnabled", a.State.TAA.Enabled)
	setFlag(sh, "hasHistory", a.hasHistory)
}

func (a *App) drawHUD() {
	st := a.State
	cam := a.Camera

	lines := []string{
		fmt.Sprintf("c = (%.3f, %.3f, %.3f, %.3f)",
			st.Fractal.C.X, st.Fractal.C.Y, st.Fractal.C.Z, st.Fractal.C.W),
		fmt.Sprintf("slice %.3f  iter %d  palette %d",
			st.Slice.Value, st.Quality.MaxIter, st.Color.Palette),
		fmt.Sprintf("focal %.2f  radius %.2f", cam.FocalLength, cam.Radius),
	}
	y := int32(10)
	for _, l := range lines {
		rl.DrawText(l, 10, y, 10, ColText)
		y += 14
	}

	if fps := a.fps.FPS(); fps > 0 {
		txt := fmt.Sprintf("%.0f fps", fps)
		rl.DrawText(txt, int32(rl.GetScreenWidth())-60, 10, 10, ColTextDim)
	}
	if a.Recording != nil {
		rl.DrawText(fmt.Sprintf("REC %d", a.Recording.Frames()),
			int32(rl.GetScreenWidth())-60, 26, 10, ColAccent)
	}

	if banner := a.Player.Banner(); banner != "" {
		fw := rl.MeasureText(banner, 20)
		x := (int32(rl.GetScreenWidth()) - fw) / 2
		rl.DrawText(banner, x, int32(rl.GetScreenHeight())-48, 20, ColSelect)
	}
	if a.Notice != "" {
		rl.DrawText(a.Notice, 10, int32(rl.GetScreenHeight())-24, 10, ColAccent)
	}
}
