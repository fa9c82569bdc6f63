package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/denslab/densplot/internal/config"
	"github.com/denslab/densplot/internal/refdist"
	"github.com/denslab/densplot/internal/snapshot"
	"github.com/denslab/densplot/internal/summary"
	"github.com/denslab/densplot/internal/tui"
)

var (
	configFile string
	preset     string
	dataDir    string
	outDir     string
	expName    string
	reference  string
	dataCounts []int

	xmin float64
	xmax float64
	ymin float64
	ymax float64

	kldMax      float64
	countMin    int
	countMax    int
	rearrStart  int
	rearrPeriod int

	animStart int
	animEnd   int
	animStep  int
	animFPS   int
	animStyle string

	genSeed    uint64
	genSamples int
	genBins    int

	withSVG    bool
	previewKLD bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "densplot",
		Short: "density estimator experiment visualization",
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "experiment config file (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset experiment configuration")
	pf.StringVar(&dataDir, "data", ".", "experiment output directory")
	pf.StringVar(&outDir, "out", ".", "directory for rendered artifacts")
	pf.StringVar(&expName, "name", config.DefaultName, "experiment name")
	pf.StringVar(&reference, "reference", config.DefaultReference, "reference distribution")
	pf.IntSliceVar(&dataCounts, "counts", []int{40, 60, 220}, "update counts for static panels")
	pf.Float64Var(&xmin, "x-min", config.DefaultXMin, "density panel x minimum")
	pf.Float64Var(&xmax, "x-max", config.DefaultXMax, "density panel x maximum")
	pf.Float64Var(&ymin, "y-min", config.DefaultYMin, "density panel y minimum")
	pf.Float64Var(&ymax, "y-max", config.DefaultYMax, "density panel y maximum")
	pf.Float64Var(&kldMax, "kld-max", config.DefaultKLDMax, "divergence panel y maximum")
	pf.IntVar(&countMin, "count-min", config.DefaultCountMin, "divergence panel first count")
	pf.IntVar(&countMax, "count-max", config.DefaultCountMax, "divergence panel last count")
	pf.IntVar(&rearrStart, "rearr-start", config.DefaultRearrStart, "first rearrangement count")
	pf.IntVar(&rearrPeriod, "rearr-period", config.DefaultRearrPeriod, "rearrangement period")
	pf.IntVar(&animStart, "anim-start", config.DefaultAnimStart, "first animated count")
	pf.IntVar(&animEnd, "anim-end", config.DefaultAnimEnd, "last animated count")
	pf.IntVar(&animStep, "anim-step", config.DefaultAnimStep, "animated count step")
	pf.IntVar(&animFPS, "fps", config.DefaultAnimFPS, "animation frame rate")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "render the comparison figure and both animations",
		RunE:  runReport,
	}
	reportCmd.Flags().BoolVar(&withSVG, "svg", false, "also export the divergence panel as svg")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render the static comparison figure (pdf and png)",
		RunE:  runRender,
	}
	renderCmd.Flags().BoolVar(&withSVG, "svg", false, "also export the divergence panel as svg")

	animateCmd := &cobra.Command{
		Use:   "animate",
		Short: "render the animated density sweeps",
		RunE:  runAnimate,
	}
	animateCmd.Flags().StringVar(&animStyle, "style", "both", "animation style: errorbar, histo or both")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "synthesize experiment output from the reference distribution",
		RunE:  runGenerate,
	}
	generateCmd.Flags().Uint64Var(&genSeed, "seed", config.DefaultSeed, "random seed")
	generateCmd.Flags().IntVar(&genSamples, "samples", 0, "samples to draw (0: enough for all panels)")
	generateCmd.Flags().IntVar(&genBins, "bins", config.DefaultBins, "estimator bins")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list snapshots in the experiment directory",
		RunE:  listSnapshots,
	}

	statsCmd := &cobra.Command{
		Use:   "stats [count]",
		Short: "summarize one snapshot",
		Args:  cobra.MaximumNArgs(1),
		RunE:  statsSnapshot,
	}

	previewCmd := &cobra.Command{
		Use:   "preview [count]",
		Short: "plot a snapshot in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  previewSnapshot,
	}
	previewCmd.Flags().BoolVar(&previewKLD, "kld", false, "plot the divergence series instead")

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "step through snapshots interactively",
		RunE:  browseSnapshots,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list experiment presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, n := range names {
				fmt.Printf("%s (reference: %s)\n", n, config.Presets[n].Reference)
			}
		},
	}

	rootCmd.AddCommand(reportCmd, renderCmd, animateCmd, generateCmd, listCmd, statsCmd, previewCmd, browseCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves preset, config file and flags into one config,
// with flags winning over the file and the file over the preset.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		cfg.Name = expName
	}
	if flags.Changed("reference") {
		cfg.Reference = reference
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("out") {
		cfg.OutDir = outDir
	}
	if flags.Changed("counts") {
		cfg.DataCounts = dataCounts
	}
	if flags.Changed("x-min") {
		cfg.XMin = xmin
	}
	if flags.Changed("x-max") {
		cfg.XMax = xmax
	}
	if flags.Changed("y-min") {
		cfg.YMin = ymin
	}
	if flags.Changed("y-max") {
		cfg.YMax = ymax
	}
	if flags.Changed("kld-max") {
		cfg.KLD.Max = kldMax
	}
	if flags.Changed("count-min") {
		cfg.KLD.CountMin = countMin
	}
	if flags.Changed("count-max") {
		cfg.KLD.CountMax = countMax
	}
	if flags.Changed("rearr-start") {
		cfg.KLD.RearrStart = rearrStart
	}
	if flags.Changed("rearr-period") {
		cfg.KLD.RearrPeriod = rearrPeriod
	}
	if flags.Changed("anim-start") {
		cfg.Anim.Start = animStart
	}
	if flags.Changed("anim-end") {
		cfg.Anim.End = animEnd
	}
	if flags.Changed("anim-step") {
		cfg.Anim.Step = animStep
	}
	if flags.Changed("fps") {
		cfg.Anim.FPS = animFPS
	}
	if flags.Changed("seed") {
		cfg.Generate.Seed = genSeed
	}
	if flags.Changed("bins") {
		cfg.Generate.Bins = genBins
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := renderFigure(cfg, withSVG); err != nil {
		return err
	}
	return renderAnimations(cfg, "both")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return renderFigure(cfg, withSVG)
}

func runAnimate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	switch animStyle {
	case "errorbar", "histo", "both":
	default:
		return fmt.Errorf("unknown animation style: %s", animStyle)
	}
	return renderAnimations(cfg, animStyle)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	n, err := generateExperiment(cfg, genSamples)
	if err != nil {
		return err
	}
	fmt.Printf("generated %s: %d samples into %s\n", cfg.Name, n, cfg.DataDir)
	return nil
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store := snapshot.New(cfg.DataDir, cfg.Name)
	counts, err := store.List()
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		fmt.Println("no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COUNT\tRECORDS\tXMIN\tXMAX\tFILE")
	for _, count := range counts {
		snap, err := store.LoadSnapshot(count)
		if err != nil {
			return err
		}
		xlo, xhi := 0.0, 0.0
		if len(snap.Points) > 0 {
			xlo = snap.Points[0].X
			xhi = snap.Points[len(snap.Points)-1].X
		}
		fmt.Fprintf(w, "%d\t%d\t%.3f\t%.3f\t%s\n",
			count, len(snap.Points), xlo, xhi, store.SnapshotPath(count))
	}
	return w.Flush()
}

func statsSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store := snapshot.New(cfg.DataDir, cfg.Name)
	count, err := pickCount(store, args)
	if err != nil {
		return err
	}

	snap, err := store.LoadSnapshot(count)
	if err != nil {
		return err
	}
	dist, err := refdist.New(cfg.Reference, cfg.Generate.Seed)
	if err != nil {
		return err
	}

	s := summary.Describe(snap, dist.Prob)
	fmt.Printf("snapshot: %s\n", store.SnapshotPath(count))
	fmt.Printf("update count: %d\n", s.Count)
	fmt.Printf("records: %d\n", s.Records)
	fmt.Printf("x range: [%.4f, %.4f]\n", s.XMin, s.XMax)
	fmt.Printf("mass: %.4f\n", s.Mass)
	fmt.Printf("mean: %.4f\n", s.Mean)
	fmt.Printf("std dev: %.4f\n", s.StdDev)
	fmt.Printf("quartiles: %.4f / %.4f / %.4f\n", s.Q25, s.Median, s.Q75)
	fmt.Printf("kld vs %s: %.6f\n", cfg.Reference, s.KLD)
	return nil
}

func previewSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store := snapshot.New(cfg.DataDir, cfg.Name)

	if previewKLD {
		series, err := store.LoadDivergence()
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(series.Values,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s KL-divergence over update counts", cfg.Name)),
		)
		fmt.Println(graph)
		return nil
	}

	count, err := pickCount(store, args)
	if err != nil {
		return err
	}
	snap, err := store.LoadSnapshot(count)
	if err != nil {
		return err
	}

	data := make([]float64, len(snap.Points))
	for i, pt := range snap.Points {
		data[i] = pt.Density
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s density at update count %d", cfg.Name, count)),
	)
	fmt.Println(graph)
	return nil
}

func browseSnapshots(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store := snapshot.New(cfg.DataDir, cfg.Name)
	counts, err := store.List()
	if err != nil {
		return err
	}
	dist, err := refdist.New(cfg.Reference, cfg.Generate.Seed)
	if err != nil {
		return err
	}
	return tui.Run(store, counts, dist.Prob, cfg.XMin, cfg.XMax)
}

// pickCount parses the optional count argument, defaulting to the
// latest snapshot on disk.
func pickCount(store *snapshot.Store, args []string) (int, error) {
	if len(args) > 0 {
		count, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, fmt.Errorf("bad update count %q", args[0])
		}
		return count, nil
	}
	counts, err := store.List()
	if err != nil {
		return 0, err
	}
	if len(counts) == 0 {
		return 0, fmt.Errorf("no snapshots found for experiment %s", store.Name())
	}
	return counts[len(counts)-1], nil
}
