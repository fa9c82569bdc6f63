package config

// Presets mirror the basic benchmark family: each fixes the reference
// distribution and the plotting ranges that suit its shape.
var Presets = map[string]*Config{
	"basic-pareto": {
		Name: "basic-pareto", Reference: "pareto",
		XMin: 0, XMax: 10, YMin: 0, YMax: 1,
		DataCounts: []int{40, 60, 220},
		KLD:        KLDConfig{Max: 0.25, CountMin: 40, CountMax: 500, RearrStart: 50, RearrPeriod: 100},
		Anim:       AnimConfig{Start: 10, End: 500, Step: 10, FPS: 4},
		Generate:   GenConfig{Seed: DefaultSeed, Bins: DefaultBins},
	},
	"basic-normal": {
		Name: "basic-normal", Reference: "normal",
		XMin: -4, XMax: 4, YMin: 0, YMax: 0.6,
		DataCounts: []int{40, 60, 220},
		KLD:        KLDConfig{Max: 0.25, CountMin: 40, CountMax: 500, RearrStart: 50, RearrPeriod: 100},
		Anim:       AnimConfig{Start: 10, End: 500, Step: 10, FPS: 4},
		Generate:   GenConfig{Seed: DefaultSeed, Bins: DefaultBins},
	},
	"basic-lognormal": {
		Name: "basic-lognormal", Reference: "lognormal",
		XMin: 0, XMax: 6, YMin: 0, YMax: 0.8,
		DataCounts: []int{40, 60, 220},
		KLD:        KLDConfig{Max: 0.25, CountMin: 40, CountMax: 500, RearrStart: 50, RearrPeriod: 100},
		Anim:       AnimConfig{Start: 10, End: 500, Step: 10, FPS: 4},
		Generate:   GenConfig{Seed: DefaultSeed, Bins: DefaultBins},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	out.DataCounts = append([]int(nil), cfg.DataCounts...)
	out.DataDir = "."
	out.OutDir = "."
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
