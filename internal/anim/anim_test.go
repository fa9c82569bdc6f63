package anim

import (
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func framePlot(t *testing.T, count int) *plot.Plot {
	t.Helper()
	p := plot.New()
	line, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: float64(count)}})
	if err != nil {
		t.Fatal(err)
	}
	p.Add(line)
	return p
}

func TestSaveGIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.gif")
	opts := Options{Start: 10, End: 30, Step: 10, FPS: 4, Width: 2 * vg.Inch, Height: 2 * vg.Inch}

	err := SaveGIF(path, opts, func(count int) (*plot.Plot, error) {
		return framePlot(t, count), nil
	})
	if err != nil {
		t.Fatalf("save gif failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(g.Image) != 3 {
		t.Errorf("expected 3 frames, got %d", len(g.Image))
	}
	// 4 fps -> 25/100 s per frame.
	for i, d := range g.Delay {
		if d != 25 {
			t.Errorf("frame %d: expected delay 25, got %d", i, d)
		}
	}
}

func TestSaveGIFSkipsMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse.gif")
	opts := Options{Start: 10, End: 50, Step: 10, FPS: 4, Width: vg.Inch, Height: vg.Inch}

	err := SaveGIF(path, opts, func(count int) (*plot.Plot, error) {
		if count%20 != 0 {
			return nil, nil
		}
		return framePlot(t, count), nil
	})
	if err != nil {
		t.Fatalf("save gif failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(g.Image) != 2 {
		t.Errorf("expected 2 frames (counts 20 and 40), got %d", len(g.Image))
	}
}

func TestSaveGIFNoFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.gif")
	opts := Options{Start: 10, End: 50, Step: 10, FPS: 4, Width: vg.Inch, Height: vg.Inch}

	err := SaveGIF(path, opts, func(count int) (*plot.Plot, error) {
		return nil, nil
	})
	if err == nil {
		t.Fatal("expected error when no frame is renderable")
	}
	if _, statErr := os.Stat(path); statErr == nil {
		t.Error("no gif file should be written without frames")
	}
}

func TestSaveGIFBadOptions(t *testing.T) {
	opts := Options{Start: 0, End: 10, Step: 0, FPS: 4, Width: vg.Inch, Height: vg.Inch}
	if err := SaveGIF("x.gif", opts, nil); err == nil {
		t.Error("expected error for zero step")
	}

	opts = Options{Start: 0, End: 10, Step: 10, FPS: 0, Width: vg.Inch, Height: vg.Inch}
	if err := SaveGIF("x.gif", opts, nil); err == nil {
		t.Error("expected error for zero fps")
	}
}
