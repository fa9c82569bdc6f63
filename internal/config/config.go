package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultName        = "basic-pareto"
	DefaultReference   = "pareto"
	DefaultXMin        = 0.0
	DefaultXMax        = 10.0
	DefaultYMin        = 0.0
	DefaultYMax        = 1.0
	DefaultKLDMax      = 0.25
	DefaultCountMin    = 40
	DefaultCountMax    = 500
	DefaultRearrStart  = 50
	DefaultRearrPeriod = 100
	DefaultAnimStart   = 10
	DefaultAnimEnd     = 500
	DefaultAnimStep    = 10
	DefaultAnimFPS     = 4
	DefaultSeed        = 42
	DefaultBins        = 20
)

// Config describes one experiment: where its output lives, which
// closed-form distribution it is compared against, and the plotting
// ranges for the static figure, the divergence panel and the
// animations.
type Config struct {
	Name      string `yaml:"name"`
	DataDir   string `yaml:"data_dir"`
	OutDir    string `yaml:"out_dir"`
	Reference string `yaml:"reference"`

	XMin float64 `yaml:"x_min"`
	XMax float64 `yaml:"x_max"`
	YMin float64 `yaml:"y_min"`
	YMax float64 `yaml:"y_max"`

	// DataCounts are the update counts shown as static panels.
	DataCounts []int `yaml:"data_counts"`

	KLD      KLDConfig  `yaml:"kld"`
	Anim     AnimConfig `yaml:"anim"`
	Generate GenConfig  `yaml:"generate"`
}

// KLDConfig controls the divergence panel: the plotted count range,
// the y-axis clamp and the rearrangement schedule markers.
type KLDConfig struct {
	Max         float64 `yaml:"max"`
	CountMin    int     `yaml:"count_min"`
	CountMax    int     `yaml:"count_max"`
	RearrStart  int     `yaml:"rearr_start"`
	RearrPeriod int     `yaml:"rearr_period"`
}

// AnimConfig controls the snapshot sweep of the animated outputs.
type AnimConfig struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
	Step  int `yaml:"step"`
	FPS   int `yaml:"fps"`
}

// GenConfig controls synthetic experiment generation.
type GenConfig struct {
	Seed uint64 `yaml:"seed"`
	Bins int    `yaml:"bins"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:       DefaultName,
		DataDir:    ".",
		OutDir:     ".",
		Reference:  DefaultReference,
		XMin:       DefaultXMin,
		XMax:       DefaultXMax,
		YMin:       DefaultYMin,
		YMax:       DefaultYMax,
		DataCounts: []int{40, 60, 220},
		KLD: KLDConfig{
			Max:         DefaultKLDMax,
			CountMin:    DefaultCountMin,
			CountMax:    DefaultCountMax,
			RearrStart:  DefaultRearrStart,
			RearrPeriod: DefaultRearrPeriod,
		},
		Anim: AnimConfig{
			Start: DefaultAnimStart,
			End:   DefaultAnimEnd,
			Step:  DefaultAnimStep,
			FPS:   DefaultAnimFPS,
		},
		Generate: GenConfig{
			Seed: DefaultSeed,
			Bins: DefaultBins,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config: name must not be empty")
	}
	if c.XMax <= c.XMin {
		return fmt.Errorf("config: x_max (%g) must exceed x_min (%g)", c.XMax, c.XMin)
	}
	if c.YMax <= c.YMin {
		return fmt.Errorf("config: y_max (%g) must exceed y_min (%g)", c.YMax, c.YMin)
	}
	if len(c.DataCounts) == 0 {
		return fmt.Errorf("config: data_counts must not be empty")
	}
	if c.KLD.CountMax <= c.KLD.CountMin {
		return fmt.Errorf("config: kld count range [%d, %d] is empty", c.KLD.CountMin, c.KLD.CountMax)
	}
	if c.Anim.Step <= 0 {
		return fmt.Errorf("config: anim step must be positive")
	}
	if c.Anim.FPS <= 0 {
		return fmt.Errorf("config: anim fps must be positive")
	}
	return nil
}
