package snapshot

import (
	"bufio"
	"fmt"
	"os"
)

// WriteSnapshot writes the snapshot for update count i in the same
// format LoadSnapshot reads.
func (s *Store) WriteSnapshot(i int, xs, densities []float64) error {
	if len(xs) != len(densities) {
		return fmt.Errorf("write snapshot %d: %d positions vs %d densities", i, len(xs), len(densities))
	}
	return writeRecords(s.SnapshotPath(i), xs, densities)
}

// WriteDivergence writes the divergence series file.
func (s *Store) WriteDivergence(counts []int, values []float64) error {
	if len(counts) != len(values) {
		return fmt.Errorf("write divergence: %d counts vs %d values", len(counts), len(values))
	}
	xs := make([]float64, len(counts))
	for i, c := range counts {
		xs[i] = float64(c)
	}
	return writeRecords(s.DivergencePath(), xs, values)
}

func writeRecords(path string, xs, ys []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := range xs {
		fmt.Fprintf(w, "%g %g\n", xs[i], ys[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}
