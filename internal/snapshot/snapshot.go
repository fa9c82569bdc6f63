// Package snapshot reads and writes the output directory of a
// file-based density estimator experiment: per-update-count density
// snapshots and a divergence-over-time series, all named by a fixed
// convention under one directory.
package snapshot

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Store gives access to one experiment's output directory.
type Store struct {
	dir  string
	name string
}

func New(dir, name string) *Store {
	return &Store{dir: dir, name: name}
}

func (s *Store) Name() string { return s.name }

// SnapshotPath is <dir>/<name>-pdf-<i>.out.
func (s *Store) SnapshotPath(i int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s-pdf-%d.out", s.name, i))
}

// DivergencePath is <dir>/<name>-kld.out.
func (s *Store) DivergencePath() string {
	return filepath.Join(s.dir, fmt.Sprintf("%s-kld.out", s.name))
}

// Point is one density sample: the estimated density at position X.
type Point struct {
	X       float64
	Density float64
}

// Snapshot is the estimator state captured after Count updates.
type Snapshot struct {
	Count  int
	Points []Point
}

// Series is the divergence metric sampled over update counts.
type Series struct {
	Counts []float64
	Values []float64
}

// LoadSnapshot reads and parses the snapshot taken at update count i.
// Records are sorted by position.
func (s *Store) LoadSnapshot(i int) (*Snapshot, error) {
	path := s.SnapshotPath(i)
	points, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	sort.Slice(points, func(a, b int) bool { return points[a].X < points[b].X })
	return &Snapshot{Count: i, Points: points}, nil
}

// LoadDivergence reads the divergence series, sorted by update count.
func (s *Store) LoadDivergence() (*Series, error) {
	points, err := readRecords(s.DivergencePath())
	if err != nil {
		return nil, err
	}
	sort.Slice(points, func(a, b int) bool { return points[a].X < points[b].X })
	series := &Series{
		Counts: make([]float64, len(points)),
		Values: make([]float64, len(points)),
	}
	for i, p := range points {
		series.Counts[i] = p.X
		series.Values[i] = p.Density
	}
	return series, nil
}

// List scans the directory for snapshot files of this experiment and
// returns their update counts in ascending order.
func (s *Store) List() ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	prefix := s.name + "-pdf-"
	counts := make([]int, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fname := entry.Name()
		if !strings.HasPrefix(fname, prefix) || !strings.HasSuffix(fname, ".out") {
			continue
		}
		idx := strings.TrimSuffix(strings.TrimPrefix(fname, prefix), ".out")
		n, err := strconv.Atoi(idx)
		if err != nil {
			continue
		}
		counts = append(counts, n)
	}

	sort.Ints(counts)
	return counts, nil
}

// Widths returns per-point bin widths derived from consecutive
// positions. The last bin reuses the previous width; a single-record
// snapshot gets width 1.
func (sn *Snapshot) Widths() []float64 {
	n := len(sn.Points)
	widths := make([]float64, n)
	if n == 0 {
		return widths
	}
	if n == 1 {
		widths[0] = 1
		return widths
	}
	for i := 0; i < n-1; i++ {
		widths[i] = sn.Points[i+1].X - sn.Points[i].X
	}
	widths[n-1] = widths[n-2]
	return widths
}

// StdErrs estimates the sampling standard error of each density value,
// treating it as a bin-frequency estimate from Count observations.
func (sn *Snapshot) StdErrs() []float64 {
	widths := sn.Widths()
	errs := make([]float64, len(sn.Points))
	if sn.Count <= 0 {
		return errs
	}
	n := float64(sn.Count)
	for i, pt := range sn.Points {
		w := widths[i]
		if w <= 0 {
			continue
		}
		p := pt.Density * w
		if p < 0 {
			p = 0
		}
		if p > 1 {
			p = 1
		}
		errs[i] = math.Sqrt(p*(1-p)/n) / w
	}
	return errs
}

// readRecords parses a line-oriented numeric file: two fields per
// record separated by whitespace or a comma, blank lines and #
// comments ignored.
func readRecords(path string) ([]Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var points []Point
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
		if len(fields) < 2 {
			return nil, fmt.Errorf("%s:%d: expected 2 fields, got %d", path, lineno, len(fields))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad position %q", path, lineno, fields[0])
		}
		d, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad density %q", path, lineno, fields[1])
		}
		points = append(points, Point{X: x, Density: d})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return points, nil
}
