package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/longsim/internal/config"
	"github.com/san-kum/longsim/internal/driver"
	"github.com/san-kum/longsim/internal/metrics"
	"github.com/san-kum/longsim/internal/sim"
	"github.com/san-kum/longsim/internal/storage"
	"github.com/san-kum/longsim/internal/vehicle"
	"github.com/san-kum/longsim/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	throttle   float64
	incline    float64
	driverName string
	configFile string
	preset     string
	outFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "longsim",
		Short: "forward longitudinal vehicle dynamics lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".longsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "sample time")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().Float64Var(&throttle, "throttle", config.DefaultThrottle, "constant throttle in [0,1]")
	runCmd.Flags().Float64Var(&incline, "incline", config.DefaultIncline, "constant incline angle (rad)")
	runCmd.Flags().StringVar(&driverName, "driver", "constant", "input driver (constant, coast, ramp)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	rampCmd := &cobra.Command{
		Use:   "ramp",
		Short: "run the scripted slope-climb scenario",
		RunE:  runRamp,
	}
	rampCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "sample time")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	gradeCmd := &cobra.Command{
		Use:   "grade [run_id]",
		Short: "write the (time, position) grading table",
		Args:  cobra.ExactArgs(1),
		RunE:  gradeRun,
	}
	gradeCmd.Flags().StringVar(&outFile, "out", "xdata.txt", "output path")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark stepping throughput",
		RunE:  benchModel,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "sample time")
	liveCmd.Flags().Float64Var(&throttle, "throttle", config.DefaultThrottle, "constant throttle in [0,1]")
	liveCmd.Flags().Float64Var(&incline, "incline", config.DefaultIncline, "constant incline angle (rad)")
	liveCmd.Flags().StringVar(&driverName, "driver", "constant", "input driver (constant, coast, ramp)")

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

	rootCmd.AddCommand(runCmd, rampCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, gradeCmd, benchCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig applies preset, then config file, then explicit CLI
// flags, in increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
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

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("driver") {
		cfg.Driver = driverName
	}
	if cmd.Flags().Changed("throttle") {
		cfg.Inputs.Throttle = throttle
	}
	if cmd.Flags().Changed("incline") {
		cfg.Inputs.Incline = incline
	}
	if cfg.Dt == 0 {
		cfg.Dt = config.DefaultDt
	}

	return cfg, nil
}

func buildVehicle(cfg *config.Config) (*vehicle.Vehicle, error) {
	car := vehicle.NewWithSampleTime(cfg.Dt)
	for name, val := range cfg.Vehicle {
		if err := car.SetParam(name, val); err != nil {
			return nil, err
		}
	}
	return car, nil
}

func buildDriver(cfg *config.Config) (sim.Driver, error) {
	switch cfg.Driver {
	case "ramp":
		ramp := driver.TrapezoidThrottle{
			Start:   cfg.Ramp.Start,
			Peak:    cfg.Ramp.Peak,
			RampEnd: cfg.Ramp.RampEnd,
			HoldEnd: cfg.Ramp.HoldEnd,
			End:     cfg.Ramp.End,
		}
		grade := make(driver.GradeProfile, 0, len(cfg.Grade))
		for _, seg := range cfg.Grade {
			grade = append(grade, driver.GradeSegment{
				Until: seg.Until,
				Angle: math.Atan(seg.Rise / seg.Run),
			})
		}
		return driver.Profile{Throttle: ramp.At, Incline: grade.At}, nil
	default:
		return driver.FromName(cfg.Driver, map[string]float64{
			"throttle": cfg.Inputs.Throttle,
			"incline":  cfg.Inputs.Incline,
		})
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	car, err := buildVehicle(cfg)
	if err != nil {
		return err
	}

	drv, err := buildDriver(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.New(car)
	for _, m := range metrics.Default(car.GearRatio, car.WheelRadius) {
		runner.AddMetric(m)
	}

	fmt.Printf("running %s simulation...\n", cfg.Driver)
	start := time.Now()

	result, err := runner.Run(context.Background(), drv, sim.Config{Duration: cfg.Duration})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Driver, cfg.Dt, cfg.Duration, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runRamp(cmd *cobra.Command, args []string) error {
	preset = "slope"
	configFile = ""
	return runSimulation(cmd, args)
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
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tDT\tDRIVER")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%.4fs\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Driver,
		)
	}

	return w.Flush()
}

var plotCaptions = map[string]string{
	"x":        "position (m)",
	"v":        "velocity (m/s)",
	"a":        "acceleration (m/s^2)",
	"w_e":      "engine speed (rad/s)",
	"w_e_dot":  "engine accel (rad/s^2)",
	"throttle": "throttle",
	"incline":  "incline (rad)",
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("driver: %s\n", meta.Driver)
	fmt.Printf("samples: %d\n\n", len(states))

	for varIdx, col := range storage.StateColumns {
		if varIdx >= len(states[0]) {
			break
		}

		data := make([]float64, len(states))
		for i := range states {
			if varIdx < len(states[i]) {
				data[i] = states[i][varIdx]
			}
		}

		caption := col
		if c, ok := plotCaptions[col]; ok {
			caption = c
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := append([]string{"time"}, storage.StateColumns...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, times, states)
}

func gradeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	positions := make([]float64, len(states))
	for i := range states {
		positions[i] = states[i][0]
	}

	ts, xs, err := storage.XDataTable(times, positions)
	if err != nil {
		return err
	}

	if err := storage.SaveXData(outFile, ts, xs); err != nil {
		return err
	}

	fmt.Printf("wrote %d rows to %s\n", len(ts), outFile)
	return nil
}

func benchModel(cmd *cobra.Command, args []string) error {
	durations := []float64{1.0, 10.0, 100.0}
	dts := []float64{0.001, 0.01, 0.1}

	fmt.Println("benchmarking vehicle model")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, dt := range dts {
			car := vehicle.NewWithSampleTime(dt)
			runner := sim.New(car)
			drv := driver.Constant{Throttle: 0.2}

			start := time.Now()
			result, err := runner.Run(context.Background(), drv, sim.Config{Duration: dur})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
				dur, dt, result.StepsTaken, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	car, err := buildVehicle(cfg)
	if err != nil {
		return err
	}

	drv, err := buildDriver(cfg)
	if err != nil {
		return err
	}

	m := viz.NewModel(car, drv)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
