package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/avelent/mingle/internal/config"
	"github.com/avelent/mingle/internal/metrics"
	"github.com/avelent/mingle/internal/recorder"
	"github.com/avelent/mingle/internal/sim"
	"github.com/avelent/mingle/internal/storage"
	"github.com/avelent/mingle/internal/stream"
	"github.com/avelent/mingle/internal/tui"
	"github.com/avelent/mingle/internal/viz"
)

var (
	dataDir     string
	agents      int
	seed        int64
	ticks       int
	greetRadius float64
	moveMin     float64
	moveMax     float64
	xMin        float64
	xMax        float64
	yMin        float64
	yMax        float64
	indexName   string
	configFile  string
	preset      string
	live        bool
	frameRate   int
	addr        string
	interval    time.Duration
	outPath     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mingle",
		Short: "agent-based wander-and-greet simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mingle", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the results",
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().BoolVar(&live, "live", false, "render the plane while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --live")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "run interactively in the terminal",
		RunE:  watchSimulation,
	}
	addConfigFlags(watchCmd)
	watchCmd.Flags().IntVar(&frameRate, "fps", 10, "ticks per second")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run and stream tick snapshots over websocket",
		RunE:  serveSimulation,
	}
	addConfigFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", ":8791", "listen address")
	serveCmd.Flags().DurationVar(&interval, "interval", 100*time.Millisecond, "wall-clock time per tick")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot greeted agents per tick",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, watchCmd, serveCmd, listCmd, plotCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&agents, "agents", config.DefaultAgents, "agent count")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "tick limit (0 = unlimited)")
	cmd.Flags().Float64Var(&greetRadius, "radius", config.DefaultGreetRadius, "greet radius")
	cmd.Flags().Float64Var(&moveMin, "move-min", config.DefaultMoveMin, "minimum per-axis displacement")
	cmd.Flags().Float64Var(&moveMax, "move-max", config.DefaultMoveMax, "maximum per-axis displacement")
	cmd.Flags().Float64Var(&xMin, "xmin", -config.DefaultExtent, "placement bound")
	cmd.Flags().Float64Var(&xMax, "xmax", config.DefaultExtent, "placement bound")
	cmd.Flags().Float64Var(&yMin, "ymin", -config.DefaultExtent, "placement bound")
	cmd.Flags().Float64Var(&yMax, "ymax", config.DefaultExtent, "placement bound")
	cmd.Flags().StringVar(&indexName, "index", "quadtree", "proximity index backend (quadtree, linear)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves preset, config file, and flags into one config.
// Precedence: explicit flags > config file > preset > defaults.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("agents") {
		cfg.Agents = agents
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("ticks") {
		cfg.Ticks = ticks
	}
	if cmd.Flags().Changed("radius") {
		cfg.GreetRadius = greetRadius
	}
	if cmd.Flags().Changed("move-min") {
		cfg.Move.Min = moveMin
	}
	if cmd.Flags().Changed("move-max") {
		cfg.Move.Max = moveMax
	}
	if cmd.Flags().Changed("xmin") {
		cfg.Bounds.XMin = xMin
	}
	if cmd.Flags().Changed("xmax") {
		cfg.Bounds.XMax = xMax
	}
	if cmd.Flags().Changed("ymin") {
		cfg.Bounds.YMin = yMin
	}
	if cmd.Flags().Changed("ymax") {
		cfg.Bounds.YMax = yMax
	}
	if cmd.Flags().Changed("index") {
		cfg.Index = indexName
	}

	return cfg, nil
}

func buildModel(cfg *config.Config) (*sim.Model, *recorder.Recorder, error) {
	model, err := sim.New(cfg.Sim())
	if err != nil {
		return nil, nil, err
	}

	rec := recorder.New()
	model.AddObserver(rec)
	model.AddMetric(metrics.NewGreetedFraction())
	model.AddMetric(metrics.NewGreetedCount())
	model.AddMetric(metrics.NewMeanStep())

	if err := model.Populate(model.WalkerFactory(), cfg.Agents); err != nil {
		return nil, nil, err
	}
	return model, rec, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	model, rec, err := buildModel(cfg)
	if err != nil {
		return err
	}

	if live {
		model.AddObserver(tui.NewLiveRenderer(frameRate))
	}

	fmt.Printf("running %d agents for %d ticks (seed %d)...\n", cfg.Agents, cfg.Ticks, cfg.Seed)
	start := time.Now()

	if err := model.Run(context.Background(), cfg.Ticks); err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(model.Config(), model.Tick(), model.MetricValues(), rec.Records(), rec.Greets())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", model.Tick())
	fmt.Printf("greet events: %d\n", len(rec.Greets()))
	fmt.Println("\nmetrics:")
	for name, val := range model.MetricValues() {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func watchSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	model, _, err := buildModel(cfg)
	if err != nil {
		return err
	}

	return viz.Run(model, cfg.Ticks, frameRate)
}

func serveSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	model, _, err := buildModel(cfg)
	if err != nil {
		return err
	}

	srv := stream.NewServer(log)
	model.AddObserver(srv)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			if cfg.Ticks > 0 && model.Tick() >= cfg.Ticks {
				log.Info("tick limit reached", "ticks", model.Tick())
				return
			}
			if err := model.Step(); err != nil {
				log.Error("step failed", "err", err)
				return
			}
		}
	}()

	return srv.ListenAndServe(addr)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tAGENTS\tTICKS\tRADIUS\tINDEX\tGREETS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2f\t%s\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Agents,
			run.Ticks,
			run.GreetRadius,
			run.Index,
			run.Greets,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	records, err := st.LoadRecords(runID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no data to plot")
	}

	// One sample per tick: how many agents have greeted by then.
	greetedByTick := make(map[int]int)
	lastTick := 0
	for _, r := range records {
		if r.Greeted {
			greetedByTick[r.Tick]++
		}
		if r.Tick > lastTick {
			lastTick = r.Tick
		}
	}
	data := make([]float64, lastTick)
	for t := 1; t <= lastTick; t++ {
		data[t-1] = float64(greetedByTick[t])
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("agents: %d\n", meta.Agents)
	fmt.Printf("ticks: %d\n\n", meta.Ticks)

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("greeted agents per tick"),
	)
	fmt.Println(graph)

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	records, err := st.LoadRecords(runID)
	if err != nil {
		return err
	}

	if outPath != "" {
		return storage.ExportJSONFile(outPath, *meta, records)
	}
	return storage.ExportJSON(os.Stdout, *meta, records)
}
