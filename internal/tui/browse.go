// Package tui is an interactive terminal browser for stepping through
// the density snapshots of an experiment.
package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/denslab/densplot/internal/snapshot"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type model struct {
	store  *snapshot.Store
	counts []int
	idx    int

	ref        func(float64) float64
	xmin, xmax float64

	snap *snapshot.Snapshot
	kld  map[int]float64
	err  error

	width  int
	height int
}

// Run opens the browser over the given snapshot counts. The divergence
// series is optional; when present its value is shown per snapshot.
func Run(store *snapshot.Store, counts []int, ref func(float64) float64, xmin, xmax float64) error {
	if len(counts) == 0 {
		return fmt.Errorf("no snapshots to browse")
	}

	m := &model{
		store:  store,
		counts: counts,
		ref:    ref,
		xmin:   xmin,
		xmax:   xmax,
		kld:    map[int]float64{},
		width:  80,
		height: 24,
	}

	if series, err := store.LoadDivergence(); err == nil {
		for i := range series.Counts {
			m.kld[int(series.Counts[i])] = series.Values[i]
		}
	}

	m.load()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *model) load() {
	snap, err := m.store.LoadSnapshot(m.counts[m.idx])
	m.snap, m.err = snap, err
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			if m.idx > 0 {
				m.idx--
				m.load()
			}
		case "right", "l":
			if m.idx < len(m.counts)-1 {
				m.idx++
				m.load()
			}
		case "g", "home":
			m.idx = 0
			m.load()
		case "G", "end":
			m.idx = len(m.counts) - 1
			m.load()
		case "r":
			m.load()
		}
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder

	count := m.counts[m.idx]
	b.WriteString(cyan.Render(m.store.Name()))
	b.WriteString(dim.Render(fmt.Sprintf("  snapshot %d/%d", m.idx+1, len(m.counts))))
	b.WriteString(yellow.Render(fmt.Sprintf("  update count: %d", count)))
	if v, ok := m.kld[count]; ok {
		b.WriteString(green.Render(fmt.Sprintf("  kld: %.4f", v)))
	}
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(red.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
	} else {
		graphWidth := m.width - 12
		if graphWidth < 20 {
			graphWidth = 20
		}
		graphHeight := m.height - 8
		if graphHeight < 5 {
			graphHeight = 5
		}
		if graphHeight > 20 {
			graphHeight = 20
		}

		est := sampleDensity(m.snap, m.xmin, m.xmax, graphWidth)
		want := make([]float64, graphWidth)
		step := (m.xmax - m.xmin) / float64(graphWidth)
		for i := range want {
			want[i] = m.ref(m.xmin + (float64(i)+0.5)*step)
		}

		graph := asciigraph.PlotMany(
			[][]float64{want, est},
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green),
			asciigraph.Caption(fmt.Sprintf("estimate (green) vs reference (red), x in [%g, %g]", m.xmin, m.xmax)),
		)
		b.WriteString(graph)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("←/→ step   g/G first/last   r reload   q quit"))
	b.WriteString("\n")
	return b.String()
}

// sampleDensity evaluates the snapshot's step estimate at n positions
// across [xmin, xmax].
func sampleDensity(snap *snapshot.Snapshot, xmin, xmax float64, n int) []float64 {
	out := make([]float64, n)
	if snap == nil || len(snap.Points) == 0 {
		return out
	}

	centers := make([]float64, len(snap.Points))
	for i, pt := range snap.Points {
		centers[i] = pt.X
	}
	widths := snap.Widths()

	step := (xmax - xmin) / float64(n)
	for i := range out {
		x := xmin + (float64(i)+0.5)*step
		j := sort.SearchFloat64s(centers, x)
		// Nearest of the two neighboring records.
		if j == len(centers) || (j > 0 && x-centers[j-1] < centers[j]-x) {
			j--
		}
		if x >= centers[j]-widths[j]/2 && x <= centers[j]+widths[j]/2 {
			out[i] = snap.Points[j].Density
		}
	}
	return out
}
