package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/qjulia/internal/config"
	"github.com/san-kum/qjulia/internal/fractal"
	"github.com/san-kum/qjulia/internal/march"
	"github.com/san-kum/qjulia/internal/shade"
	"github.com/san-kum/qjulia/internal/state"
	"github.com/san-kum/qjulia/internal/tour"
)

// quicksaveName is the state slot behind F5/F9.
const quicksaveName = "quicksave"

func (a *App) Update() {
	dt := float64(rl.GetFrameTime())
	a.elapsed += dt
	if a.noticeT > 0 {
		a.noticeT -= dt
		if a.noticeT <= 0 {
			a.Notice = ""
		}
	}

	a.handleResize()

	if a.Player.Playing() {
		// Everything except the stop key is suppressed during playback.
		if rl.IsKeyPressed(rl.KeyEscape) {
			a.Player.Stop()
			a.notify("Tour stopped")
		}
	} else {
		a.handleInput(dt)
	}

	a.State.Slice.Advance(dt)
	a.Camera.Update(dt)
	a.Player.Update(dt, a.State, a.Camera)
}

func (a *App) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	if a.Recording != nil {
		a.notify("Resolution locked while recording")
		return
	}
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if w > 0 && h > 0 {
		a.resize(w, h)
	}
}

func (a *App) handleInput(dt float64) {
	a.handleCamera(dt)
	a.handleMouse()
	a.handleFractal()
	a.handleQuality()
	a.handleColor()
	a.handleSession()
}

func (a *App) handleCamera(dt float64) {
	rate := rotateRate * dt
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		rate *= shiftFactor
	}
	var dYaw, dPitch float64
	if rl.IsKeyDown(rl.KeyLeft) {
		dYaw -= rate
	}
	if rl.IsKeyDown(rl.KeyRight) {
		dYaw += rate
	}
	if rl.IsKeyDown(rl.KeyUp) {
		dPitch += rate
	}
	if rl.IsKeyDown(rl.KeyDown) {
		dPitch -= rate
	}
	if dYaw != 0 || dPitch != 0 {
		a.Camera.Rotate(dYaw, dPitch)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Camera.AddVelocity(float64(wheel) * wheelDolly)
	}
	a.Camera.HoldVelocity = rl.IsKeyDown(rl.KeyLeftControl)

	if rl.IsKeyPressed(rl.KeyEqual) {
		a.Camera.SetFocal(a.Camera.FocalLength + focalStep)
	}
	if rl.IsKeyPressed(rl.KeyMinus) {
		a.Camera.SetFocal(a.Camera.FocalLength - focalStep)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		a.Camera.Reset(a.State.Animations)
	}
}

func (a *App) handleMouse() {
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		a.dragging = true
		a.dragMoved = 0
	}
	if a.dragging && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		a.dragMoved += float32(math.Abs(float64(d.X)) + math.Abs(float64(d.Y)))
		if d.X != 0 || d.Y != 0 {
			a.Camera.Rotate(float64(d.X)*dragRate, -float64(d.Y)*dragRate)
		}
	}
	if a.dragging && rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		a.dragging = false
		// Under a few pixels of travel this was a click, not a drag.
		if a.dragMoved < 5 {
			a.clickTarget(rl.GetMousePosition())
		}
	}
}

// clickTarget raycasts through the clicked pixel and starts a camera
// transition toward the result. A miss still yields a navigable point.
func (a *App) clickTarget(m rl.Vector2) {
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	aspect := w / h
	px := ((float64(m.X)+0.5)/w*2 - 1) * aspect
	py := 1 - (float64(m.Y)+0.5)/h*2

	forward, right, up := a.Camera.Basis()
	dir := forward.Scale(a.Camera.FocalLength).
		Add(right.Scale(px)).
		Add(up.Scale(py)).
		Normalize()

	p, _ := march.Raycast(a.Camera.Position, dir,
		a.State.Slice.Value, a.State.Fractal.C, a.State.Quality.MaxIter,
		a.Camera.Radius)
	a.Camera.MoveToTarget(p, a.State.Animations)
}

func (a *App) handleFractal() {
	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	presetKeys := []int32{
		rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour,
		rl.KeyFive, rl.KeySix, rl.KeySeven, rl.KeyEight,
	}
	for i, k := range presetKeys {
		if !rl.IsKeyPressed(k) {
			continue
		}
		if shift {
			names := config.ListQualityPresets()
			if i < len(names) {
				a.applyQualityPreset(names[i])
			}
			continue
		}
		if i < len(fractal.Presets) {
			a.State.Fractal.C = fractal.Presets[i].C
			a.notify("Preset: %s", fractal.Presets[i].Name)
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.State.Fractal.Randomize(a.Rng)
		a.notify("Randomized c")
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.State.Slice.Animate = !a.State.Slice.Animate
	}
}

func (a *App) applyQualityPreset(name string) {
	if a.Recording != nil {
		a.notify("Quality locked while recording")
		return
	}
	q, ok := config.GetQualityPreset(name)
	if !ok {
		return
	}
	a.State.Quality.SetMaxIter(q.MaxIter)
	a.State.Quality.Shadows = q.Shadows
	a.State.Quality.AO = q.AO
	a.State.Quality.Specular = q.Specular
	a.State.Quality.AdaptiveStep = q.Adaptive
	a.State.TAA.Enabled = q.TAA
	a.State.TAA.BlendFactor = float32(q.TAABlend)
	a.State.TAA.Clamp()
	a.hasHistory = false
	a.notify("Quality: %s", name)
}

func (a *App) handleQuality() {
	if rl.IsKeyPressed(rl.KeyI) || rl.IsKeyPressed(rl.KeyK) {
		if a.Recording != nil {
			a.notify("Quality locked while recording")
			return
		}
		if rl.IsKeyPressed(rl.KeyI) {
			a.State.Quality.AddMaxIter(iterStep)
		} else {
			a.State.Quality.AddMaxIter(-iterStep)
		}
		a.notify("Max iterations: %d", a.State.Quality.MaxIter)
	}

	toggles := []struct {
		key  int32
		flag *bool
		name string
	}{
		{rl.KeyH, &a.State.Quality.Shadows, "Shadows"},
		{rl.KeyO, &a.State.Quality.AO, "Ambient occlusion"},
		{rl.KeyG, &a.State.Quality.Specular, "Specular"},
		{rl.KeyV, &a.State.Quality.AdaptiveStep, "Adaptive step"},
		{rl.KeyM, &a.State.Quality.SmoothColor, "Smooth color"},
	}
	for _, tg := range toggles {
		if !rl.IsKeyPressed(tg.key) {
			continue
		}
		if a.Recording != nil {
			a.notify("Quality locked while recording")
			return
		}
		*tg.flag = !*tg.flag
		a.notify("%s: %v", tg.name, *tg.flag)
	}

	if rl.IsKeyPressed(rl.KeyT) {
		a.State.TAA.Enabled = !a.State.TAA.Enabled
		a.hasHistory = false
		a.notify("TAA: %v", a.State.TAA.Enabled)
	}

	if rl.IsKeyPressed(rl.KeyC) {
		a.State.Clip.Mode = a.State.Clip.Mode.Cycle()
		a.notify("Clip mode: %d", int(a.State.Clip.Mode))
	}
	if rl.IsKeyPressed(rl.KeyComma) {
		a.State.Clip.SetDistance(a.State.Clip.Distance - clipStep)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		a.State.Clip.SetDistance(a.State.Clip.Distance + clipStep)
	}
}

func (a *App) handleColor() {
	if rl.IsKeyPressed(rl.KeyZero) {
		a.State.Color.SetPalette(0)
		a.notify("Palette off")
	}
	if rl.IsKeyPressed(rl.KeyP) {
		next := a.State.Color.Palette + 1
		if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
			next = a.State.Color.Palette + 10 // -1 mod 11
		}
		a.State.Color.SetPalette(next % 11)
		a.notify("Palette: %d", a.State.Color.Palette)
	}
	if rl.IsKeyPressed(rl.KeyE) {
		a.State.Color.Effect = nextEffect(a.State.Color.Effect)
		a.notify("Effect: %s", effectName(a.State.Color.Effect))
	}
	if rl.IsKeyPressed(rl.KeyB) {
		a.State.Color.Dynamics.Animate = !a.State.Color.Dynamics.Animate
	}
}

// nextEffect cycles none -> orbit trap -> physics -> none with stock
// parameters.
func nextEffect(e state.Effect) state.Effect {
	switch e.Kind {
	case state.EffectNone:
		return state.WithOrbitTrap(shade.OrbitTrapParams{
			Type: fractal.TrapPoint, Radius: 1.0, Intensity: 0.7,
		})
	case state.EffectOrbitTrap:
		return state.WithPhysics(shade.PhysicsParams{
			Frequency: 3.0, Waves: 4.0, Intensity: 0.6, Balance: 0.5,
		})
	default:
		return state.NoEffect()
	}
}

func effectName(e state.Effect) string {
	switch e.Kind {
	case state.EffectOrbitTrap:
		return "orbit trap"
	case state.EffectPhysics:
		return "physics"
	}
	return "none"
}

func (a *App) handleSession() {
	if rl.IsKeyPressed(rl.KeyF2) {
		a.screenshot()
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		a.toggleRecording()
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		snap := state.Capture(a.State, a.Camera)
		if err := a.Store.SaveState(quicksaveName, snap); err != nil {
			a.notify("Save failed: %v", err)
		} else {
			a.notify("State saved")
		}
	}
	if rl.IsKeyPressed(rl.KeyF9) {
		snap, err := a.Store.LoadState(quicksaveName)
		if err != nil {
			a.notify("Load failed: %v", err)
		} else if err := snap.Apply(a.State, a.Camera); err != nil {
			a.notify("Load failed: %v", err)
		} else {
			a.hasHistory = false
			a.notify("State loaded")
		}
	}
	a.handleTourKeys()
}

func (a *App) handleTourKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyF6):
		if a.Player.Phase() == tour.Recording {
			rec := a.Player.FinishRecording()
			if err := rec.Validate(); err != nil {
				a.notify("Recording discarded: %v", err)
				return
			}
			name, err := a.Store.SaveTour(rec)
			if err != nil {
				a.notify("Tour save failed: %v", err)
				return
			}
			a.notify("Tour saved: %s", name)
		} else {
			a.Player.StartRecording("untitled")
			a.Player.RecordPoint(a.State, a.Camera)
		}
	case rl.IsKeyPressed(rl.KeyEnter):
		a.Player.RecordPoint(a.State, a.Camera)
	case rl.IsKeyPressed(rl.KeyF7):
		a.playLatestTour()
	}
}

func (a *App) playLatestTour() {
	names, err := a.Store.ListTours()
	if err != nil || len(names) == 0 {
		a.notify("No tours found")
		return
	}
	name := names[len(names)-1]
	t, err := a.Store.LoadTour(name)
	if err != nil {
		a.notify("Tour load failed: %v", err)
		return
	}
	if err := a.Player.Start(t, a.State, a.Camera); err != nil {
		a.notify("Tour invalid: %v", err)
		return
	}
	a.hasHistory = false
}

func (a *App) screenshot() {
	snap := state.Capture(a.State, a.Camera)
	name, err := a.Store.SaveScreenshot(a.snapshotImage(), snap)
	if err != nil {
		a.notify("Screenshot failed: %v", err)
		return
	}
	a.notify("Screenshot: %s", name)
}

func (a *App) toggleRecording() {
	if a.Recording != nil {
		n := a.Recording.Frames()
		a.Recording = nil
		a.notify("Recording stopped: %d frames", n)
		return
	}
	rec, err := a.Store.StartRecording()
	if err != nil {
		a.notify("Recording failed: %v", err)
		return
	}
	a.Recording = rec
	a.notify("Recording to %s", rec.Dir())
}
