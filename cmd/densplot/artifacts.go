package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/denslab/densplot/internal/anim"
	"github.com/denslab/densplot/internal/config"
	"github.com/denslab/densplot/internal/figure"
	"github.com/denslab/densplot/internal/plotviz"
	"github.com/denslab/densplot/internal/refdist"
	"github.com/denslab/densplot/internal/sketch"
	"github.com/denslab/densplot/internal/snapshot"
)

const (
	panelSize   = 5 * vg.Inch
	frameWidth  = 5 * vg.Inch
	frameHeight = 4 * vg.Inch
)

func panelTitle(i, count int) string {
	return fmt.Sprintf("(%c) pdf at update count: %d", 'a'+i, count)
}

// renderFigure writes <name>.pdf and <name>.png: one bar panel per
// configured update count plus the divergence panel.
func renderFigure(cfg *config.Config, withSVG bool) error {
	store := snapshot.New(cfg.DataDir, cfg.Name)
	dist, err := refdist.New(cfg.Reference, cfg.Generate.Seed)
	if err != nil {
		return err
	}
	bounds := plotviz.Bounds{XMin: cfg.XMin, XMax: cfg.XMax, YMin: cfg.YMin, YMax: cfg.YMax}

	plots := make([]*plot.Plot, 0, len(cfg.DataCounts)+1)
	for i, count := range cfg.DataCounts {
		snap, err := store.LoadSnapshot(count)
		if err != nil {
			return err
		}
		p, err := plotviz.DensityBars(snap, dist.Prob, bounds)
		if err != nil {
			return err
		}
		p.Title.Text = panelTitle(i, count)
		plots = append(plots, p)
	}

	series, err := store.LoadDivergence()
	if err != nil {
		return err
	}
	kp, err := plotviz.Divergence(series, cfg.KLD)
	if err != nil {
		return err
	}
	kp.Title.Text = fmt.Sprintf("(%c) KL-divergence", 'a'+len(cfg.DataCounts))
	plots = append(plots, kp)

	width := vg.Length(len(plots)) * panelSize
	pdfPath := filepath.Join(cfg.OutDir, cfg.Name+".pdf")
	if err := figure.SavePDF(plots, width, panelSize, pdfPath); err != nil {
		return err
	}
	pngPath := filepath.Join(cfg.OutDir, cfg.Name+".png")
	if err := figure.SavePNG(plots, width, panelSize, pngPath); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", pdfPath)
	fmt.Printf("wrote %s\n", pngPath)

	if withSVG {
		svgPath := filepath.Join(cfg.OutDir, cfg.Name+"-kld.svg")
		if err := figure.SaveSVG(kp, panelSize, panelSize, svgPath); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}
	return nil
}

// renderAnimations writes the animated sweeps. Missing snapshot
// indices inside the sweep are skipped; a sweep with no snapshot at
// all fails.
func renderAnimations(cfg *config.Config, style string) error {
	store := snapshot.New(cfg.DataDir, cfg.Name)
	dist, err := refdist.New(cfg.Reference, cfg.Generate.Seed)
	if err != nil {
		return err
	}
	bounds := plotviz.Bounds{XMin: cfg.XMin, XMax: cfg.XMax, YMin: cfg.YMin, YMax: cfg.YMax}

	opts := anim.Options{
		Start:  cfg.Anim.Start,
		End:    cfg.Anim.End,
		Step:   cfg.Anim.Step,
		FPS:    cfg.Anim.FPS,
		Width:  frameWidth,
		Height: frameHeight,
	}

	type builder func(*snapshot.Snapshot, func(float64) float64, plotviz.Bounds) (*plot.Plot, error)
	frame := func(build builder) anim.FrameFunc {
		return func(count int) (*plot.Plot, error) {
			snap, err := store.LoadSnapshot(count)
			if errors.Is(err, fs.ErrNotExist) {
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			p, err := build(snap, dist.Prob, bounds)
			if err != nil {
				return nil, err
			}
			p.Title.Text = fmt.Sprintf("pdf at update count: %d", count)
			return p, nil
		}
	}

	if style == "errorbar" || style == "both" {
		path := filepath.Join(cfg.OutDir, cfg.Name+"-errorbar.gif")
		if err := anim.SaveGIF(path, opts, frame(plotviz.DensityErrorBars)); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}
	if style == "histo" || style == "both" {
		path := filepath.Join(cfg.OutDir, cfg.Name+"-histo.gif")
		if err := anim.SaveGIF(path, opts, frame(plotviz.DensityBars)); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}

// generateExperiment draws seeded samples from the reference
// distribution, feeds them to the sketch estimator and writes the
// snapshot and divergence files the plotting pipeline reads.
func generateExperiment(cfg *config.Config, samples int) (int, error) {
	dist, err := refdist.New(cfg.Reference, cfg.Generate.Seed)
	if err != nil {
		return 0, err
	}
	sk, err := sketch.New(cfg.XMin, cfg.XMax, cfg.Generate.Bins, cfg.KLD.RearrStart, cfg.KLD.RearrPeriod)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return 0, err
	}
	store := snapshot.New(cfg.DataDir, cfg.Name)

	snapAt := make(map[int]bool)
	for _, c := range cfg.DataCounts {
		snapAt[c] = true
	}
	for c := cfg.Anim.Start; c <= cfg.Anim.End; c += cfg.Anim.Step {
		snapAt[c] = true
	}

	total := samples
	if total <= 0 {
		total = cfg.Anim.End
		if cfg.KLD.CountMax > total {
			total = cfg.KLD.CountMax
		}
		for _, c := range cfg.DataCounts {
			if c > total {
				total = c
			}
		}
	}

	var kldCounts []int
	var kldValues []float64
	for i := 1; i <= total; i++ {
		sk.Observe(dist.Rand())
		if snapAt[i] {
			xs, densities := sk.PDF()
			if err := store.WriteSnapshot(i, xs, densities); err != nil {
				return 0, err
			}
		}
		if i >= cfg.KLD.CountMin && i <= cfg.KLD.CountMax {
			kldCounts = append(kldCounts, i)
			kldValues = append(kldValues, sk.Divergence(dist.Prob))
		}
	}

	if err := store.WriteDivergence(kldCounts, kldValues); err != nil {
		return 0, err
	}
	return total, nil
}
