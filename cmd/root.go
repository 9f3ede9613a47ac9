package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fleetsim/fleetsim/config"
	"github.com/fleetsim/fleetsim/simulator"
	"github.com/fleetsim/fleetsim/trace"
)

var (
	scenarioPath     string
	logLevel         string
	traceLevel       string
	untilDuration    time.Duration
	horizonDuration  time.Duration
	decisionInterval time.Duration
	decisionHorizon  time.Duration
	stepDuration     time.Duration
	bias             float64
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "fleetsim",
	Short: "Decision engine and discrete-event simulator for RPA/human/AI fleets",
}

// runCmd drives the live simulator to completion (or --until) and prints
// the final observability snapshot as JSON.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the live simulation to completion or a time limit",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		sf, err := LoadScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("loading scenario: %v", err)
		}
		state, waves, start := sf.Build()

		cfg := buildConfig()
		worker := simulator.NewWorker(cfg.DecisionInterval, cfg.DecisionHorizon, cfg.Bias, cfg.EngineOverrides())
		if t := buildTrace(); t != nil {
			worker.Trace = t
		}

		sim := simulator.NewSimulator(state, start, cfg.Step, worker, waves)

		until := start.Add(24 * time.Hour)
		if untilDuration > 0 {
			until = start.Add(untilDuration)
		}
		sim.RunUntil(until)

		snap := sim.Snapshot(sim.Clock.Now().Sub(start))
		printJSON(snap)

		if worker.Trace != nil {
			logrus.WithField("summary", trace.Summarize(worker.Trace)).Info("decision trace summary")
		}
	},
}

// forecastCmd runs a single bounded-horizon forecast from the same
// scenario shape and prints the resulting timeline segments as JSON.
var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Run one forecast to a horizon and print the projected timeline",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		sf, err := LoadScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("loading scenario: %v", err)
		}
		state, waves, start := sf.Build()

		cfg := buildConfig()
		horizon := cfg.ForecastHorizon
		if horizonDuration > 0 {
			horizon = horizonDuration
		}

		worker := simulator.NewWorker(cfg.DecisionInterval, cfg.DecisionHorizon, cfg.Bias, cfg.EngineOverrides())
		sim := simulator.NewSimulator(state, start, cfg.Step, worker, waves)

		runner := simulator.NewForecastRunner(horizon)
		runner.Start(sim)

		result := waitForForecast(runner)
		printJSON(result)
	},
}

// validateCmd parses and config-checks a scenario file without running
// anything, the quickest way to catch a typo'd scenario.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse and validate a scenario file without simulating",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		sf, err := LoadScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("loading scenario: %v", err)
		}
		cfg := buildConfig()
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("invalid configuration: %v", err)
		}
		state, _, _ := sf.Build()
		logrus.Infof("scenario valid: %d agents, %d queues", len(state.Agents), len(state.Queues))
	},
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// buildConfig layers CLI-flag overrides onto config.Default().
func buildConfig() config.Config {
	cfg := config.Default()
	if decisionInterval > 0 {
		cfg.DecisionInterval = decisionInterval
	}
	if decisionHorizon > 0 {
		cfg.DecisionHorizon = decisionHorizon
	}
	if stepDuration > 0 {
		cfg.Step = stepDuration
	}
	if bias >= 0 {
		cfg.Bias = bias
	}
	return cfg
}

func buildTrace() *trace.SimulationTrace {
	if !trace.IsValidTraceLevel(traceLevel) {
		logrus.Fatalf("invalid trace level: %s", traceLevel)
	}
	if traceLevel == "" || trace.TraceLevel(traceLevel) == trace.TraceLevelNone {
		return nil
	}
	return trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
}

// waitForForecast blocks (briefly, since RunUntil-style forecasts run as
// fast as possible) until the forecast runner publishes a result.
func waitForForecast(runner *simulator.ForecastRunner) *simulator.ForecastResult {
	for {
		if r := runner.Latest(); r != nil {
			return r
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logrus.Fatalf("encoding output: %v", err)
	}
}

// Execute runs the CLI root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&scenarioPath, "scenario", "", "Path to a scenario YAML file")
	rootCmd.PersistentFlags().DurationVar(&decisionInterval, "decision-interval", 0, "Override the worker's minimum decision interval")
	rootCmd.PersistentFlags().DurationVar(&decisionHorizon, "decision-horizon", 0, "Override the engine's real-capacity decision horizon")
	rootCmd.PersistentFlags().DurationVar(&stepDuration, "step", 0, "Override the simulator's clock step")
	rootCmd.PersistentFlags().Float64Var(&bias, "bias", -1, "Override the SLA-failure bias weight (0..1)")

	runCmd.Flags().DurationVar(&untilDuration, "until", 0, "Stop the run after this much simulated time (default: run to completion, capped at 24h)")
	runCmd.Flags().StringVar(&traceLevel, "trace", "", "Decision trace level (none, decisions)")

	forecastCmd.Flags().DurationVar(&horizonDuration, "horizon", 0, "Forecast horizon (default: config's ForecastHorizon)")

	rootCmd.AddCommand(runCmd, forecastCmd, validateCmd)
}
