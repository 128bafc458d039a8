package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/mcsim/internal/analytics"
	"github.com/san-kum/mcsim/internal/config"
	"github.com/san-kum/mcsim/internal/experiment"
	"github.com/san-kum/mcsim/internal/stats"
	"github.com/san-kum/mcsim/internal/storage"
	"github.com/san-kum/mcsim/internal/store"
	"github.com/san-kum/mcsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	model      string
	rngName    string
	spot       float64
	strike     float64
	vol        float64
	barrier    float64
	maturity   float64
	fixings    int
	paths      int
	antithetic bool
	parallel   bool
	seed       uint64
	// Jump parameters for the analytic command
	jumpIntens float64
	jumpMean   float64
	jumpStd    float64
	// Config file
	configFile string
	// Preset name
	preset string
	// Export payoffs alongside the summary
	withPayoffs bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mcsim",
		Short: "monte carlo pricing and risk lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mcsim", "data directory")

	priceCmd := &cobra.Command{
		Use:   "price [product]",
		Short: "price a product by simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runPrice,
	}
	addPricingFlags(priceCmd)

	greeksCmd := &cobra.Command{
		Use:   "greeks [product]",
		Short: "price and differentiate in one sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  runGreeks,
	}
	addPricingFlags(greeksCmd)

	convergeCmd := &cobra.Command{
		Use:   "converge [product]",
		Short: "price at doubling path counts against the closed form",
		Args:  cobra.ExactArgs(1),
		RunE:  runConverge,
	}
	addPricingFlags(convergeCmd)

	liveCmd := &cobra.Command{
		Use:   "live [product]",
		Short: "watch a pricing run converge",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addPricingFlags(liveCmd)

	analyticCmd := &cobra.Command{
		Use:   "analytic [product]",
		Short: "closed-form price and sensitivities",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalytic,
	}
	addPricingFlags(analyticCmd)
	analyticCmd.Flags().Float64Var(&jumpIntens, "jump-intensity", 0, "merton jump intensity")
	analyticCmd.Flags().Float64Var(&jumpMean, "jump-mean", 0, "merton mean log jump")
	analyticCmd.Flags().Float64Var(&jumpStd, "jump-std", 0, "merton log jump stddev")

	benchCmd := &cobra.Command{
		Use:   "bench [product]",
		Short: "benchmark the simulation drivers",
		Args:  cobra.ExactArgs(1),
		RunE:  runBench,
	}
	addPricingFlags(benchCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the payoff distribution of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().BoolVar(&withPayoffs, "payoffs", false, "include per-path payoffs")

	presetsCmd := &cobra.Command{
		Use:   "presets [product]",
		Short: "list available presets for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for product: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(priceCmd, greeksCmd, convergeCmd, liveCmd, analyticCmd, benchCmd, listCmd, plotCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPricingFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&model, "model", "blackscholes", "pricing model")
	cmd.Flags().StringVar(&rngName, "rng", "pcg", "random number generator")
	cmd.Flags().Float64Var(&spot, "spot", config.DefaultSpot, "initial spot")
	cmd.Flags().Float64Var(&strike, "strike", config.DefaultStrike, "strike")
	cmd.Flags().Float64Var(&vol, "vol", config.DefaultVol, "volatility")
	cmd.Flags().Float64Var(&barrier, "barrier", config.DefaultBarrier, "barrier level")
	cmd.Flags().Float64Var(&maturity, "maturity", config.DefaultMaturity, "maturity in years")
	cmd.Flags().IntVar(&fixings, "fixings", config.DefaultFixings, "fixings or monitoring dates")
	cmd.Flags().IntVar(&paths, "paths", config.DefaultPaths, "number of paths")
	cmd.Flags().BoolVar(&antithetic, "antithetic", true, "antithetic sampling")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "use the parallel driver")
	cmd.Flags().Uint64Var(&seed, "seed", 12345, "random seed")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig assembles the run configuration: defaults, then preset, then
// config file, then explicitly set flags.
func buildConfig(cmd *cobra.Command, product string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Product = product

	if preset != "" {
		p := config.GetPreset(product, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(product))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
		cfg.Product = product
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Model = model
	}
	if flags.Changed("rng") {
		cfg.RNG = rngName
	}
	if flags.Changed("spot") {
		cfg.Spot = spot
	}
	if flags.Changed("strike") {
		cfg.Strike = strike
	}
	if flags.Changed("vol") {
		cfg.Vol = vol
	}
	if flags.Changed("barrier") {
		cfg.Barrier = barrier
	}
	if flags.Changed("maturity") {
		cfg.Maturity = maturity
	}
	if flags.Changed("fixings") {
		cfg.Fixings = fixings
	}
	if flags.Changed("paths") {
		cfg.Paths = paths
	}
	if flags.Changed("antithetic") {
		cfg.Antithetic = antithetic
	}
	if flags.Changed("parallel") {
		cfg.Parallel = parallel
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, nil
}

func runPrice(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("pricing %s under %s with %d paths...\n", cfg.Product, cfg.Model, cfg.Paths)
	result, err := experiment.Price(cfg)
	if err != nil {
		return err
	}

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed.Round(time.Microsecond))
	fmt.Printf("run id: %s\n\n", runID)
	fmt.Printf("price:  %.6f\n", result.Summary.Mean)
	fmt.Printf("stderr: %.6f\n", result.Summary.StdErr)
	if ref, ok := experiment.Reference(cfg); ok {
		fmt.Printf("closed: %.6f (error %+.6f)\n", ref, result.Summary.Mean-ref)
	}
	return nil
}

func runGreeks(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("differentiating %s under %s with %d paths...\n", cfg.Product, cfg.Model, cfg.Paths)
	result, err := experiment.Greeks(cfg)
	if err != nil {
		return err
	}

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed.Round(time.Microsecond))
	fmt.Printf("run id: %s\n\n", runID)
	fmt.Printf("price:  %.6f (stderr %.6f)\n\n", result.Summary.Mean, result.Summary.StdErr)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GREEK\tVALUE")
	for _, g := range result.Greeks {
		fmt.Fprintf(w, "%s\t%.6f\n", g.Label, g.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if cfg.Product == "european" && cfg.Model == "blackscholes" {
		fmt.Printf("\nclosed-form delta: %.6f\n", analytics.BlackScholesDelta(cfg.Spot, cfg.Strike, cfg.Vol, cfg.Maturity))
		fmt.Printf("closed-form vega:  %.6f\n", analytics.BlackScholesVega(cfg.Spot, cfg.Strike, cfg.Vol, cfg.Maturity))
	}
	return nil
}

func runConverge(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	ref, hasRef := experiment.Reference(cfg)

	fmt.Printf("convergence of %s under %s\n\n", cfg.Product, cfg.Model)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if hasRef {
		fmt.Fprintln(w, "PATHS\tPRICE\tSTDERR\tERROR\tTIME")
	} else {
		fmt.Fprintln(w, "PATHS\tPRICE\tSTDERR\tTIME")
	}

	var errors []float64
	for n := 1000; n <= cfg.Paths; n *= 4 {
		runCfg := *cfg
		runCfg.Paths = n
		result, err := experiment.Price(&runCfg)
		if err != nil {
			return err
		}
		if hasRef {
			errors = append(errors, result.Summary.Mean-ref)
			fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%+.6f\t%v\n",
				n, result.Summary.Mean, result.Summary.StdErr, result.Summary.Mean-ref,
				result.Elapsed.Round(time.Microsecond))
		} else {
			fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%v\n",
				n, result.Summary.Mean, result.Summary.StdErr,
				result.Elapsed.Round(time.Microsecond))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if hasRef && len(errors) > 1 {
		fmt.Println()
		graph := asciigraph.Plot(errors,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("error vs closed form %.6f", ref)),
		)
		fmt.Println(graph)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runAnalytic(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	if cfg.Product != "european" && cfg.Product != "european-put" {
		return fmt.Errorf("no closed form for product: %s", cfg.Product)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	switch cfg.Model {
	case "blackscholes":
		call := analytics.BlackScholes(cfg.Spot, cfg.Strike, cfg.Vol, cfg.Maturity)
		price := call
		if cfg.Product == "european-put" {
			price = call - cfg.Spot + cfg.Strike
		}
		fmt.Fprintf(w, "price\t%.6f\n", price)
		fmt.Fprintf(w, "delta\t%.6f\n", analytics.BlackScholesDelta(cfg.Spot, cfg.Strike, cfg.Vol, cfg.Maturity))
		fmt.Fprintf(w, "vega\t%.6f\n", analytics.BlackScholesVega(cfg.Spot, cfg.Strike, cfg.Vol, cfg.Maturity))
		fmt.Fprintf(w, "ivol\t%.6f\n", analytics.BlackScholesImpliedVol(cfg.Spot, cfg.Strike, call, cfg.Maturity))
		if jumpIntens > 0 {
			fmt.Fprintf(w, "merton\t%.6f\n", analytics.Merton(cfg.Spot, cfg.Strike, cfg.Vol, cfg.Maturity, jumpIntens, jumpMean, jumpStd))
		}
	case "bachelier":
		call := analytics.Bachelier(cfg.Spot, cfg.Strike, cfg.Vol, cfg.Maturity)
		price := call
		if cfg.Product == "european-put" {
			price = call - cfg.Spot + cfg.Strike
		}
		fmt.Fprintf(w, "price\t%.6f\n", price)
		fmt.Fprintf(w, "vega\t%.6f\n", analytics.BachelierVega(cfg.Spot, cfg.Strike, cfg.Vol, cfg.Maturity))
	default:
		return fmt.Errorf("no closed form for model: %s", cfg.Model)
	}
	return w.Flush()
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	pathCounts := []int{10000, 100000, 500000}

	fmt.Printf("benchmarking %s under %s\n\n", cfg.Product, cfg.Model)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATHS\tDRIVER\tPRICE\tTIME\tPATHS/SEC")

	for _, n := range pathCounts {
		if n > cfg.Paths {
			break
		}
		for _, mode := range []struct {
			name     string
			parallel bool
			aad      bool
		}{
			{"sequential", false, false},
			{"parallel", true, false},
			{"aad", false, true},
			{"aad-parallel", true, true},
		} {
			runCfg := *cfg
			runCfg.Paths = n
			runCfg.Parallel = mode.parallel

			var result *experiment.Result
			var err error
			if mode.aad {
				result, err = experiment.Greeks(&runCfg)
			} else {
				result, err = experiment.Price(&runCfg)
			}
			if err != nil {
				return err
			}

			perSec := float64(n) / result.Elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%s\t%.6f\t%v\t%.0f\n",
				n, mode.name, result.Summary.Mean,
				result.Elapsed.Round(time.Microsecond), perSec)
		}
	}

	return w.Flush()
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
	fmt.Fprintln(w, "ID\tPRODUCT\tMODEL\tTIME\tPATHS\tPRICE\tSTDERR")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.6f\t%.6f\n",
			run.ID,
			run.Product,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Paths,
			run.Price,
			run.StdErr,
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

	payoffs, err := st.LoadPayoffs(runID)
	if err != nil {
		return err
	}
	if len(payoffs) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("product: %s / %s\n", meta.Product, meta.Model)
	fmt.Printf("paths: %d\n\n", len(payoffs))

	counts, lo, hi := stats.Histogram(payoffs, 40)
	graph := asciigraph.Plot(counts,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("payoff distribution [%.2f, %.2f]", lo, hi)),
	)
	fmt.Println(graph)
	fmt.Println()

	means := stats.RunningMean(payoffs, 80)
	graph = asciigraph.Plot(means,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("running mean"),
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

	payoffs, err := st.LoadPayoffs(runID)
	if err != nil {
		return err
	}

	cfg := &config.Config{
		Product:    meta.Product,
		Model:      meta.Model,
		RNG:        meta.RNG,
		Seed:       meta.Seed,
		Paths:      meta.Paths,
		Antithetic: meta.Antithetic,
		Parallel:   meta.Parallel,
	}
	result := &experiment.Result{
		Payoffs: payoffs,
		Summary: stats.Describe(payoffs),
	}
	for label, value := range meta.Greeks {
		result.Greeks = append(result.Greeks, experiment.Greek{Label: label, Value: value})
	}

	return store.ExportJSONStdout(cfg, result, withPayoffs)
}
