package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/qjulia/internal/camera"
	"github.com/san-kum/qjulia/internal/compute"
	"github.com/san-kum/qjulia/internal/config"
	"github.com/san-kum/qjulia/internal/fractal"
	"github.com/san-kum/qjulia/internal/gui"
	"github.com/san-kum/qjulia/internal/march"
	"github.com/san-kum/qjulia/internal/qmath"
	"github.com/san-kum/qjulia/internal/render"
	"github.com/san-kum/qjulia/internal/state"
	"github.com/san-kum/qjulia/internal/storage"
	"github.com/san-kum/qjulia/internal/tui"
)

var (
	configFile string
	dataDir    string
	preset     string
	quality    string
	// Offline render parameters
	width     int
	height    int
	numFrames int
	outPath   string
	gifOut    bool
	// State import name
	stateName string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "qjulia",
		Short: "interactive quaternion Julia set explorer",
		Run: func(cmd *cobra.Command, args []string) {
			gui.Run(loadConfig())
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "named fractal preset")
	rootCmd.PersistentFlags().StringVar(&quality, "quality", "", "quality preset (preview/balanced/quality/ultra)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the explorer window",
		Run: func(cmd *cobra.Command, args []string) {
			gui.Run(loadConfig())
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "terminal live preview",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(loadConfig())
		},
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render frames offline",
		RunE:  renderFrames,
	}
	renderCmd.Flags().IntVar(&width, "width", 640, "frame width")
	renderCmd.Flags().IntVar(&height, "height", 480, "frame height")
	renderCmd.Flags().IntVar(&numFrames, "frames", 1, "number of frames")
	renderCmd.Flags().StringVar(&outPath, "out", "frame.png", "output path")
	renderCmd.Flags().BoolVar(&gifOut, "gif", false, "write an animated GIF instead of PNGs")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list fractal and quality presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("fractal presets:")
			for _, p := range fractal.Presets {
				fmt.Printf("  %-10s (%.3f, %.3f, %.3f, %.3f)\n",
					p.Name, p.C.X, p.C.Y, p.C.Z, p.C.W)
			}
			fmt.Println("\nquality presets:")
			for _, name := range config.ListQualityPresets() {
				p := config.QualityPresets[name]
				fmt.Printf("  %-10s iter=%d shadows=%v ao=%v taa=%v\n",
					name, p.MaxIter, p.Shadows, p.AO, p.TAA)
			}
		},
	}

	toursCmd := &cobra.Command{
		Use:   "tours",
		Short: "list and validate stored tours",
		RunE:  listTours,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the distance estimator and marcher",
		RunE:  runBench,
	}

	stateCmd := &cobra.Command{
		Use:   "state",
		Short: "saved state utilities",
	}
	exportCmd := &cobra.Command{
		Use:   "export [name]",
		Short: "print a saved state as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportState,
	}
	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "validate a state file and store it",
		Args:  cobra.ExactArgs(1),
		RunE:  importState,
	}
	importCmd.Flags().StringVar(&stateName, "name", "imported", "name to store the state under")
	stateCmd.AddCommand(exportCmd, importCmd)

	rootCmd.AddCommand(guiCmd, liveCmd, renderCmd, presetsCmd, toursCmd, benchCmd, stateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: defaults, then the
// config file, then CLI flags.
func loadConfig() *config.Config {
	cfg := config.DefaultConfig()
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			fmt.Printf("config: %v\n", err)
			os.Exit(1)
		}
		cfg = c
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if preset != "" {
		if _, ok := fractal.PresetByName(preset); !ok {
			fmt.Printf("unknown preset: %s\n", preset)
			os.Exit(1)
		}
		cfg.Fractal.Preset = preset
		cfg.Fractal.C = nil
	}
	if quality != "" {
		q, ok := config.GetQualityPreset(quality)
		if !ok {
			fmt.Printf("unknown quality preset: %s (available: %v)\n",
				quality, config.ListQualityPresets())
			os.Exit(1)
		}
		q.FocalLength = cfg.Render.FocalLength
		cfg.Render = q
	}
	return cfg
}

// sceneFromConfig builds the core state and camera an offline run needs.
func sceneFromConfig(cfg *config.Config) (*state.App, *camera.State) {
	a := state.NewApp()
	if len(cfg.Fractal.C) == 4 {
		a.Fractal.C = qmath.Vec4{
			X: cfg.Fractal.C[0], Y: cfg.Fractal.C[1],
			Z: cfg.Fractal.C[2], W: cfg.Fractal.C[3],
		}
	} else if p, ok := fractal.PresetByName(cfg.Fractal.Preset); ok {
		a.Fractal.C = p.C
	}
	a.Slice.SetAmplitude(cfg.Fractal.SliceAmplitude)
	a.Slice.Speed = cfg.Fractal.SliceSpeed
	a.Slice.Animate = cfg.Fractal.SliceAnimate
	a.Quality.SetMaxIter(cfg.Render.MaxIter)
	a.Quality.Shadows = cfg.Render.Shadows
	a.Quality.AO = cfg.Render.AO
	a.Quality.Specular = cfg.Render.Specular
	a.Quality.SmoothColor = cfg.Render.SmoothColor
	a.Quality.AdaptiveStep = cfg.Render.Adaptive
	a.Color.SetPalette(cfg.Render.Palette)
	a.TAA.Enabled = cfg.Render.TAA
	a.TAA.BlendFactor = float32(cfg.Render.TAABlend)
	a.TAA.Clamp()

	cam := camera.New()
	cam.SetFocal(cfg.Render.FocalLength)
	return a, cam
}

func renderFrames(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	a, cam := sceneFromConfig(cfg)
	pipe := render.NewPipeline(width, height, a.TAA)

	fmt.Printf("rendering %d frame(s) at %dx%d...\n", numFrames, width, height)
	start := time.Now()

	const frameDt = 1.0 / 30
	if gifOut {
		var g render.GIFBuilder
		for i := 0; i < numFrames; i++ {
			elapsed := float64(i) * frameDt
			a.Slice.Advance(frameDt)
			cam.Update(frameDt)
			g.Add(pipe.Frame(a, cam, elapsed), 100/30)
		}
		if err := g.Save(outPath); err != nil {
			return fmt.Errorf("gif save: %w", err)
		}
	} else {
		for i := 0; i < numFrames; i++ {
			elapsed := float64(i) * frameDt
			a.Slice.Advance(frameDt)
			cam.Update(frameDt)
			t := pipe.Frame(a, cam, elapsed)

			path := outPath
			if numFrames > 1 {
				path = fmt.Sprintf("%s.%04d.png", outPath, i)
			}
			if err := render.WritePNG(path, t); err != nil {
				return fmt.Errorf("png save: %w", err)
			}
		}
	}

	fmt.Printf("completed in %v -> %s\n", time.Since(start), outPath)
	return nil
}

func listTours(cmd *cobra.Command, args []string) error {
	st := openStore()
	names, err := st.ListTours()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("no tours found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPOINTS\tCREATED\tVALID")
	for _, name := range names {
		t, err := st.LoadTour(name)
		if err != nil {
			fmt.Fprintf(w, "%s\t-\t-\tload error: %v\n", name, err)
			continue
		}
		valid := "yes"
		if err := t.Validate(); err != nil {
			valid = err.Error()
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			name, len(t.Points), t.Created.Format("2006-01-02 15:04"), valid)
	}
	return w.Flush()
}

func runBench(cmd *cobra.Command, args []string) error {
	c := fractal.Default().C
	backend := compute.GetBackend()
	fmt.Printf("backend: %s\n\n", backend.Name())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BENCH\tITER\tN\tTIME\tRATE")

	// Bulk field evaluation through the compute backend.
	for _, maxIter := range []int{50, 200, 500} {
		const n = 64 * 64 * 16
		points := make([]float64, n*3)
		i := 0
		for z := 0; z < 16; z++ {
			for y := 0; y < 64; y++ {
				for x := 0; x < 64; x++ {
					points[i] = float64(x)/32 - 1
					points[i+1] = float64(y)/32 - 1
					points[i+2] = float64(z)/8 - 1
					i += 3
				}
			}
		}
		start := time.Now()
		backend.EvalField(points, 0, [4]float64{c.X, c.Y, c.Z, c.W}, maxIter)
		elapsed := time.Since(start)
		fmt.Fprintf(w, "field\t%d\t%d\t%v\t%.0f pts/s\n",
			maxIter, n, elapsed.Round(time.Millisecond),
			float64(n)/elapsed.Seconds())
	}

	// Full marches through the scene.
	for _, maxIter := range []int{50, 200} {
		const rays = 4096
		cfg := march.Config{
			Slice: 0, C: c, MaxIter: maxIter, AdaptiveStep: true,
		}
		origin := qmath.Vec3{Z: 3}
		steps := 0
		start := time.Now()
		for i := 0; i < rays; i++ {
			px := float64(i%64)/32 - 1
			py := float64(i/64)/32 - 1
			dir := qmath.Vec3{X: px, Y: py, Z: -2}.Normalize()
			hit := march.March(origin, dir, cfg)
			steps += hit.Steps
		}
		elapsed := time.Since(start)
		fmt.Fprintf(w, "march\t%d\t%d\t%v\t%.0f steps/s\n",
			maxIter, rays, elapsed.Round(time.Millisecond),
			float64(steps)/elapsed.Seconds())
	}
	return w.Flush()
}

func exportState(cmd *cobra.Command, args []string) error {
	st := openStore()
	snap, err := st.LoadState(args[0])
	if err != nil {
		return err
	}
	data, err := snap.Encode()
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func importState(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	snap, err := state.DecodeSnapshot(data)
	if err != nil {
		return fmt.Errorf("invalid state file: %w", err)
	}
	st := openStore()
	if err := st.SaveState(stateName, snap); err != nil {
		return err
	}
	fmt.Printf("stored as %s\n", stateName)
	return nil
}

func openStore() *storage.Store {
	dir := dataDir
	if dir == "" {
		dir = storage.DefaultDir()
	}
	st := storage.New(dir)
	if err := st.Init(); err != nil {
		fmt.Printf("storage init: %v\n", err)
	}
	return st
}
