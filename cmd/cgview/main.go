package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cgview/internal/config"
	"github.com/san-kum/cgview/internal/diag"
	"github.com/san-kum/cgview/internal/fileio"
	"github.com/san-kum/cgview/internal/pbc"
	"github.com/san-kum/cgview/internal/snapshot"
	"github.com/san-kum/cgview/internal/stats"
	"github.com/san-kum/cgview/internal/store"
	"github.com/san-kum/cgview/internal/structure"
	"github.com/san-kum/cgview/internal/topology"
	"github.com/san-kum/cgview/internal/tui"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	axisName   string
	bins       int
	shiftStep  float64
	quiet      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cgview",
		Short: "coarse-grained structure viewer core",
		Long: "cgview reconciles a topology file and a per-timestep configuration file\n" +
			"into one structure graph and lets you inspect it under periodic boundaries.",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress diagnostics")

	infoCmd := &cobra.Command{
		Use:   "info [topology] [configuration]",
		Short: "load both files and print a summary of the combined structure",
		Args:  cobra.ExactArgs(2),
		RunE:  runInfo,
	}

	statsCmd := &cobra.Command{
		Use:   "stats [topology] [configuration]",
		Short: "per-axis position statistics and histogram",
		Args:  cobra.ExactArgs(2),
		RunE:  runStats,
	}
	statsCmd.Flags().StringVar(&axisName, "axis", "x", "axis (x, y or z)")
	statsCmd.Flags().IntVar(&bins, "bins", config.DefaultBins, "histogram bins")

	viewCmd := &cobra.Command{
		Use:   "view [topology] [configuration]",
		Short: "interactive viewer with box-shift controls",
		Args:  cobra.ExactArgs(2),
		RunE:  runView,
	}
	viewCmd.Flags().Float64Var(&shiftStep, "step", config.DefaultShiftStep, "box shift per key press")

	exportCmd := &cobra.Command{
		Use:   "export [topology] [configuration]",
		Short: "save the combined structure as a session under the data dir",
		Args:  cobra.ExactArgs(2),
		RunE:  runExport,
	}

	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "list saved sessions",
		RunE:  runSessions,
	}

	rootCmd.AddCommand(infoCmd, statsCmd, viewCmd, exportCmd, sessionsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadGraph runs the full pipeline: read both files, parse, combine.
func loadGraph(topPath, confPath string) (*structure.Graph, []diag.Diagnostic, error) {
	topText, err := fileio.ReadText(topPath)
	if err != nil {
		return nil, nil, err
	}
	confText, err := fileio.ReadText(confPath)
	if err != nil {
		return nil, nil, err
	}

	topDoc, diags, err := topology.Parse(topText)
	if err != nil {
		return nil, diags, fmt.Errorf("parse %s: %w", topPath, err)
	}
	snapDoc, snapDiags := snapshot.Parse(confText)
	diags = append(diags, snapDiags...)

	graph, combDiags := structure.Combine(topDoc, snapDoc)
	diags = append(diags, combDiags...)
	return graph, diags, nil
}

func reportDiags(diags []diag.Diagnostic) {
	if quiet {
		return
	}
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "warning: %s\n", d)
	}
}

func loadConfig() *config.Config {
	if configFile == "" {
		return config.DefaultConfig()
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: config %s: %v, using defaults\n", configFile, err)
		return config.DefaultConfig()
	}
	return cfg
}

func runInfo(cmd *cobra.Command, args []string) error {
	graph, diags, err := loadGraph(args[0], args[1])
	if err != nil {
		return err
	}
	reportDiags(diags)

	sum := graph.Summary()
	meta := graph.Meta

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "timestep\t%d\n", meta.Timestep)
	fmt.Fprintf(w, "box\t%.4f %.4f %.4f\n", meta.Box.X, meta.Box.Y, meta.Box.Z)
	fmt.Fprintf(w, "energy\ttotal %.4f potential %.4f kinetic %.4f\n",
		meta.Energy.Total, meta.Energy.Potential, meta.Energy.Kinetic)
	fmt.Fprintf(w, "particles\t%d\n", sum.Particles)
	fmt.Fprintf(w, "bonds\t%d (%d with spring)\n", sum.Bonds, sum.SpringBonds)
	fmt.Fprintf(w, "strands\t%d\n", sum.Strands)
	fmt.Fprintf(w, "patches\t%d resolved\n", sum.Patches)

	for _, typ := range sortedKeys(sum.ByType) {
		fmt.Fprintf(w, "type %d\t%d particles\n", typ, sum.ByType[typ])
	}
	return w.Flush()
}

func runStats(cmd *cobra.Command, args []string) error {
	axis, err := parseAxis(axisName)
	if err != nil {
		return err
	}

	graph, diags, err := loadGraph(args[0], args[1])
	if err != nil {
		return err
	}
	reportDiags(diags)

	m := pbc.NewModel(graph.Meta.Box, graph.Positions(), graph.BondIndexPairs())
	positions := make([]float64, m.Len())
	for i := range positions {
		switch axis {
		case pbc.AxisX:
			positions[i] = m.Position(i).X
		case pbc.AxisY:
			positions[i] = m.Position(i).Y
		case pbc.AxisZ:
			positions[i] = m.Position(i).Z
		}
	}

	sum := stats.Summarize(positions)
	fmt.Printf("%s: min %.4f  max %.4f  mean %.4f  std %.4f\n",
		axis, sum.Min, sum.Max, sum.Mean, sum.Std)

	lo, hi := 0.0, graph.Meta.Box.Size(axis)
	if hi == 0 {
		lo, hi = sum.Min, sum.Max
	}
	counts := stats.Histogram(positions, lo, hi, bins)
	fmt.Println(asciigraph.Plot(counts,
		asciigraph.Height(10),
		asciigraph.Caption(fmt.Sprintf("particles per %s bin [%.2f, %.2f]", axis, lo, hi))))
	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	step := shiftStep
	if !cmd.Flags().Changed("step") && cfg.Display.ShiftStep > 0 {
		step = cfg.Display.ShiftStep
	}

	graph, diags, err := loadGraph(args[0], args[1])
	if err != nil {
		return err
	}
	reportDiags(diags)

	m := pbc.NewModel(graph.Meta.Box, graph.Positions(), graph.BondIndexPairs())
	return tui.Run(graph, m, diags, step)
}

func runExport(cmd *cobra.Command, args []string) error {
	graph, diags, err := loadGraph(args[0], args[1])
	if err != nil {
		return err
	}
	reportDiags(diags)

	m := pbc.NewModel(graph.Meta.Box, graph.Positions(), graph.BondIndexPairs())

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(args[0], args[1], graph, m)
	if err != nil {
		return err
	}
	fmt.Printf("saved %s\n", id)
	return nil
}

func runSessions(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	sessions, err := st.List()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no sessions")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\ttimestep\tparticles\tbonds\tsaved")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n",
			s.ID, s.Timestep, s.NumParticles, s.NumBonds, s.Timestamp.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func parseAxis(name string) (pbc.Axis, error) {
	switch name {
	case "x":
		return pbc.AxisX, nil
	case "y":
		return pbc.AxisY, nil
	case "z":
		return pbc.AxisZ, nil
	}
	return 0, fmt.Errorf("unknown axis %q (want x, y or z)", name)
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
