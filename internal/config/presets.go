package config

import "sort"

// QualityPresets are named render-quality bundles selectable from the
// CLI and the GUI number row with shift held.
var QualityPresets = map[string]RenderConfig{
	"preview": {
		Backend: "auto", MaxIter: 60, Shadows: false, AO: false,
		Specular: true, SmoothColor: true, Adaptive: true, Palette: DefaultPalette,
		TAA: false, TAABlend: DefaultBlend, FocalLength: DefaultFocal,
	},
	"balanced": {
		Backend: "auto", MaxIter: DefaultMaxIter, Shadows: true, AO: true,
		Specular: true, SmoothColor: true, Adaptive: true, Palette: DefaultPalette,
		TAA: true, TAABlend: DefaultBlend, FocalLength: DefaultFocal,
	},
	"quality": {
		Backend: "auto", MaxIter: 500, Shadows: true, AO: true,
		Specular: true, SmoothColor: true, Adaptive: true, Palette: DefaultPalette,
		TAA: true, TAABlend: DefaultBlend, FocalLength: DefaultFocal,
	},
	"ultra": {
		Backend: "auto", MaxIter: 1200, Shadows: true, AO: true,
		Specular: true, SmoothColor: true, Adaptive: false, Palette: DefaultPalette,
		TAA: true, TAABlend: 0.95, FocalLength: DefaultFocal,
	},
}

func GetQualityPreset(name string) (RenderConfig, bool) {
	p, ok := QualityPresets[name]
	return p, ok
}

func ListQualityPresets() []string {
	names := make([]string, 0, len(QualityPresets))
	for name := range QualityPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
