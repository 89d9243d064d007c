package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tturner/sadecode/internal/app"
	"github.com/tturner/sadecode/internal/config"
	"github.com/tturner/sadecode/internal/errors"
	"github.com/tturner/sadecode/internal/logging"
	"github.com/tturner/sadecode/internal/metrics"
	"github.com/tturner/sadecode/internal/report"
)

// globalFlags are the persistent flags shared by every command. Flags the
// user sets override the config file.
type globalFlags struct {
	configPath  string
	logLevel    string
	logFile     string
	format      string
	order       string
	noColor     bool
	hexDump     bool
	metrics     bool
	metricsFile string
}

func (g *globalFlags) register(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&g.configPath, "config", config.DefaultPath, "Config file (optional unless set explicitly)")
	f.StringVar(&g.logLevel, "log-level", "info", "Log level: silent, error, info, verbose, debug")
	f.StringVar(&g.logFile, "log-file", "", "Also write logs to this file")
	f.StringVar(&g.format, "format", "text", "Output format: text, json, yaml")
	f.StringVar(&g.order, "order", "big", "Byte order of the input: big or little")
	f.BoolVar(&g.noColor, "no-color", false, "Disable styled text output")
	f.BoolVar(&g.hexDump, "hex-dump", false, "Include the raw bytes of every decoded record")
	f.BoolVar(&g.metrics, "metrics", false, "Print decode counters (Prometheus text) and a summary to stderr")
	f.StringVar(&g.metricsFile, "metrics-file", "", "Write per-record decode metrics to this CSV file")
}

func (g *globalFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	cfg, err := config.LoadConfig(g.configPath, !flags.Changed("config"))
	if err != nil {
		return nil, err
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = g.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = g.logFile
	}
	if flags.Changed("format") {
		cfg.Output.Format = g.format
	}
	if flags.Changed("order") {
		cfg.ByteOrder = g.order
	}
	if g.noColor {
		cfg.Output.Color = false
	}
	if g.hexDump {
		cfg.Output.HexDump = true
	}
	if g.metrics {
		cfg.Metrics.Enable = true
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, errors.WrapConfigError(err, g.configPath)
	}
	return cfg, nil
}

// run builds the environment for cmd, calls fn and then flushes metrics
// and closes the logger.
func (g *globalFlags) run(cmd *cobra.Command, input string, fn func(env *app.Env) error) error {
	cfg, err := g.loadConfig(cmd)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logger, err := logging.NewLoggerWithOptions(level, cfg.Logging.File, cfg.Logging.Format, cfg.Logging.LogEveryN)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Close()
	logger.SetConsole(cmd.ErrOrStderr())

	env := &app.Env{
		Out:     cmd.OutOrStdout(),
		Logger:  logger,
		Metrics: metrics.NewSink(),
		Order:   cfg.Order(),
		Format:  cfg.Output.Format,
		Render:  report.Options{Color: cfg.Output.Color, HexDump: cfg.Output.HexDump},
		Version: version,
	}
	logger.LogStartup(cmd.Name(), input, cfg.ByteOrder, g.configPath)

	runErr := fn(env)

	if cfg.Metrics.Enable {
		errOut := cmd.ErrOrStderr()
		if err := app.FinishMetrics(env, errOut, g.metricsFile); err != nil {
			logger.Error("%v", err)
		}
		fmt.Fprint(errOut, metrics.FormatSummary(env.Metrics.GetSummary()))
	} else if g.metricsFile != "" {
		if err := app.FinishMetrics(env, nil, g.metricsFile); err != nil {
			logger.Error("%v", err)
		}
	}
	return runErr
}
