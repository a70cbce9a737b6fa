// Package storage manages the data directory: tour files, saved state
// snapshots, screenshots, and recording frame dumps.
package storage

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/qjulia/internal/state"
	"github.com/san-kum/qjulia/internal/tour"
)

// tourFileRE is the auto-discovery pattern; anything else in the tours
// directory is ignored.
var tourFileRE = regexp.MustCompile(`^tour\d{2}\.json$`)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// DefaultDir resolves the per-user data directory.
func DefaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "qjulia")
}

func (s *Store) Init() error {
	for _, sub := range []string{"tours", "states", "screenshots", "recordings"} {
		if err := os.MkdirAll(filepath.Join(s.baseDir, sub), 0755); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) toursDir() string       { return filepath.Join(s.baseDir, "tours") }
func (s *Store) statesDir() string      { return filepath.Join(s.baseDir, "states") }
func (s *Store) screenshotsDir() string { return filepath.Join(s.baseDir, "screenshots") }
func (s *Store) recordingsDir() string  { return filepath.Join(s.baseDir, "recordings") }

// checkTourName enforces the discovery pattern, which also rules out
// path traversal: no separators or dots can match.
func checkTourName(name string) error {
	if !tourFileRE.MatchString(name) {
		return fmt.Errorf("invalid tour filename %q", name)
	}
	return nil
}

// SaveTour validates the tour and writes it to the next free tourNN
// slot, returning the filename used.
func (s *Store) SaveTour(t *tour.Tour) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	data, err := t.Encode()
	if err != nil {
		return "", err
	}
	for i := 0; i < 100; i++ {
		name := fmt.Sprintf("tour%02d.json", i)
		path := filepath.Join(s.toursDir(), name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return "", err
		}
		return name, nil
	}
	return "", fmt.Errorf("all 100 tour slots are taken")
}

// LoadTour reads and validates one tour by filename.
func (s *Store) LoadTour(name string) (*tour.Tour, error) {
	if err := checkTourName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.toursDir(), name))
	if err != nil {
		return nil, err
	}
	return tour.Decode(data)
}

// ListTours returns the discoverable tour filenames in order.
func (s *Store) ListTours() ([]string, error) {
	entries, err := os.ReadDir(s.toursDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !tourFileRE.MatchString(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// SaveState writes a named snapshot. The name is restricted to a flat
// identifier so it cannot escape the states directory.
func (s *Store) SaveState(name string, snap state.Snapshot) error {
	if err := checkFlatName(name); err != nil {
		return err
	}
	data, err := snap.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.statesDir(), name+".json"), data, 0644)
}

// LoadState reads and validates a named snapshot.
func (s *Store) LoadState(name string) (state.Snapshot, error) {
	if err := checkFlatName(name); err != nil {
		return state.Snapshot{}, err
	}
	data, err := os.ReadFile(filepath.Join(s.statesDir(), name+".json"))
	if err != nil {
		return state.Snapshot{}, err
	}
	return state.DecodeSnapshot(data)
}

// ListStates returns the saved snapshot names without extension.
func (s *Store) ListStates() ([]string, error) {
	entries, err := os.ReadDir(s.statesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

var flatNameRE = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func checkFlatName(name string) error {
	if !flatNameRE.MatchString(name) {
		return fmt.Errorf("invalid name %q", name)
	}
	return nil
}

// SaveScreenshot writes a timestamped PNG plus a sibling JSON snapshot
// so the exact state behind a shot can be restored later.
func (s *Store) SaveScreenshot(img image.Image, snap state.Snapshot) (string, error) {
	name := fmt.Sprintf("shot_%s", time.Now().Format("20060102_150405"))
	pngPath := filepath.Join(s.screenshotsDir(), name+".png")

	f, err := os.Create(pngPath)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	data, err := snap.Encode()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.screenshotsDir(), name+".json"), data, 0644); err != nil {
		return "", err
	}
	return name, nil
}

// Recording is an open frame-capture session writing numbered PNGs
// into its own directory.
type Recording struct {
	dir    string
	frames int
}

// StartRecording opens a new timestamped recording directory.
func (s *Store) StartRecording() (*Recording, error) {
	dir := filepath.Join(s.recordingsDir(), time.Now().Format("rec_20060102_150405"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Recording{dir: dir}, nil
}

// WriteFrame appends the next numbered frame.
func (r *Recording) WriteFrame(img image.Image) error {
	path := filepath.Join(r.dir, fmt.Sprintf("frame_%06d.png", r.frames))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	r.frames++
	return f.Close()
}

// Frames reports how many frames were captured so far.
func (r *Recording) Frames() int { return r.frames }

// Dir exposes the session directory for the finished-recording notice.
func (r *Recording) Dir() string { return r.dir }
