// Package gui is the raylib frontend: the GPU ray-march pipeline on two
// offscreen render textures, the TAA resolve pass, and the full input
// surface driving the camera, state, and tour machines.
package gui

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/qjulia/internal/camera"
	"github.com/san-kum/qjulia/internal/compute"
	"github.com/san-kum/qjulia/internal/config"
	"github.com/san-kum/qjulia/internal/fractal"
	"github.com/san-kum/qjulia/internal/qmath"
	"github.com/san-kum/qjulia/internal/render"
	"github.com/san-kum/qjulia/internal/state"
	"github.com/san-kum/qjulia/internal/storage"
	"github.com/san-kum/qjulia/internal/tour"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

const (
	rotateRate  = 1.2 // rad/s for arrow-key rotation
	shiftFactor = 3.0
	dragRate    = 0.005 // rad per pixel of mouse drag
	wheelDolly  = 0.3
	focalStep   = 0.25
	iterStep    = 50
	clipStep    = 0.1
	noticeHold  = 2.5
)

type App struct {
	Cfg    *config.Config
	State  *state.App
	Camera *camera.State
	Player *tour.Player
	Store  *storage.Store
	Rng    *rand.Rand

	// Render-target pair plus the resolve destination; written every
	// frame in the fixed order march -> resolve -> history blit.
	MainTex     rl.RenderTexture2D
	HistoryTex  rl.RenderTexture2D
	ResolvedTex rl.RenderTexture2D

	MarchShader rl.Shader
	TAAShader   rl.Shader

	PrevViewProj mgl32.Mat4
	hasHistory   bool
	frame        int
	elapsed      float64

	Recording *storage.Recording
	Notice    string
	noticeT   float64

	fps render.FPSCounter

	// Drag-vs-click discrimination for the raycast.
	dragging  bool
	dragMoved float32
}

func initWindow(cfg *config.Config) {
	flags := uint32(0)
	if cfg.Window.Resizable {
		flags |= rl.FlagWindowResizable
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), "qjulia")
	rl.SetTargetFPS(int32(cfg.Window.TargetFPS))
	rl.SetExitKey(0)
}

func NewApp(cfg *config.Config) *App {
	// The window's GL context is current now, so the configured compute
	// backend can come up.
	backend, err := compute.ForName(cfg.Render.Backend, compute.DefaultFieldCapacity)
	if err != nil {
		fmt.Printf("compute: %v (using %s)\n", err, backend.Name())
	}
	compute.SetBackend(backend)

	st := state.NewApp()
	applyConfig(st, cfg)

	cam := camera.New()
	cam.SetFocal(cfg.Render.FocalLength)

	store := storage.New(dataDir(cfg))
	if err := store.Init(); err != nil {
		fmt.Printf("storage init: %v\n", err)
	}

	w, h := int32(cfg.Window.Width), int32(cfg.Window.Height)
	app := &App{
		Cfg:         cfg,
		State:       st,
		Camera:      cam,
		Player:      tour.NewPlayer(),
		Store:       store,
		Rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		MainTex:     rl.LoadRenderTexture(w, h),
		HistoryTex:  rl.LoadRenderTexture(w, h),
		ResolvedTex: rl.LoadRenderTexture(w, h),
		MarchShader: rl.LoadShaderFromMemory("", raymarchFS),
		TAAShader:   rl.LoadShaderFromMemory("", taaFS),
	}
	return app
}

// applyConfig seeds the state aggregate from the loaded configuration.
func applyConfig(st *state.App, cfg *config.Config) {
	if len(cfg.Fractal.C) == 4 {
		st.Fractal.C = qmath.Vec4{
			X: cfg.Fractal.C[0], Y: cfg.Fractal.C[1],
			Z: cfg.Fractal.C[2], W: cfg.Fractal.C[3],
		}
	} else if p, ok := fractal.PresetByName(cfg.Fractal.Preset); ok {
		st.Fractal.C = p.C
	}
	st.Slice.SetAmplitude(cfg.Fractal.SliceAmplitude)
	st.Slice.Speed = cfg.Fractal.SliceSpeed
	st.Slice.Animate = cfg.Fractal.SliceAnimate
	st.Quality.SetMaxIter(cfg.Render.MaxIter)
	st.Quality.Shadows = cfg.Render.Shadows
	st.Quality.AO = cfg.Render.AO
	st.Quality.Specular = cfg.Render.Specular
	st.Quality.SmoothColor = cfg.Render.SmoothColor
	st.Quality.AdaptiveStep = cfg.Render.Adaptive
	st.Color.SetPalette(cfg.Render.Palette)
	st.TAA.Enabled = cfg.Render.TAA
	st.TAA.BlendFactor = float32(cfg.Render.TAABlend)
	st.TAA.Clamp()
}

func dataDir(cfg *config.Config) string {
	if cfg.DataDir != "" {
		return cfg.DataDir
	}
	return storage.DefaultDir()
}

// Run opens the window and blocks in the frame loop until close.
func Run(cfg *config.Config) {
	initWindow(cfg)
	defer rl.CloseWindow()
	app := NewApp(cfg)
	defer app.unload()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.safeFrame()
	}
}

// safeFrame runs one update/draw cycle. A panic in a single frame is
// logged and the loop continues on the next one.
func (a *App) safeFrame() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("frame error: %v\n", r)
		}
	}()
	a.Update()
	a.Draw()
}

func (a *App) unload() {
	// Release GL compute resources while the context is still current.
	compute.SetBackend(compute.NewCPUBackend())
	rl.UnloadRenderTexture(a.MainTex)
	rl.UnloadRenderTexture(a.HistoryTex)
	rl.UnloadRenderTexture(a.ResolvedTex)
	rl.UnloadShader(a.MarchShader)
	rl.UnloadShader(a.TAAShader)
}

// notify shows a transient HUD notice.
func (a *App) notify(format string, args ...any) {
	a.Notice = fmt.Sprintf(format, args...)
	a.noticeT = noticeHold
}

// resize rebuilds all three render targets together and drops TAA
// history; reprojecting across a resize samples garbage.
func (a *App) resize(w, h int32) {
	rl.UnloadRenderTexture(a.MainTex)
	rl.UnloadRenderTexture(a.HistoryTex)
	rl.UnloadRenderTexture(a.ResolvedTex)
	a.MainTex = rl.LoadRenderTexture(w, h)
	a.HistoryTex = rl.LoadRenderTexture(w, h)
	a.ResolvedTex = rl.LoadRenderTexture(w, h)
	a.hasHistory = false
	a.frame = 0
}

// snapshotImage reads the resolved target back into a Go image. Render
// textures are stored bottom-up, so rows are flipped on the way out.
func (a *App) snapshotImage() *image.RGBA {
	img := rl.LoadImageFromTexture(a.ResolvedTex.Texture)
	defer rl.UnloadImage(img)
	pixels := rl.LoadImageColors(img)

	w, h := int(img.Width), int(img.Height)
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := (h - 1 - y) * w
		for x := 0; x < w; x++ {
			c := pixels[src+x]
			out.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return out
}
