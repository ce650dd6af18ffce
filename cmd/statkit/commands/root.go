// Package commands implements the statkit command line.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/statkit/pkg/config"
	"github.com/Sumatoshi-tech/statkit/pkg/observability"
	"github.com/Sumatoshi-tech/statkit/pkg/render"
	"github.com/Sumatoshi-tech/statkit/pkg/statset"
	"github.com/Sumatoshi-tech/statkit/pkg/version"
)

// Metric components.
const (
	componentSet        = "set"
	componentRegression = "regression"
)

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	logLevel   string
	logFormat  string
	format     string
	precision  int
	noColor    bool
	metrics    bool
}

// NewRootCommand creates the statkit command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "statkit",
		Short: "Descriptive statistics and linear regression for numeric data sets",
		Long: `statkit reads numbers from files or stdin and reports their statistics.

Commands:
  summary   Describe one or more data sets
  regress   Fit a least squares line through paired data
  compare   Compare the statistics of two data sets
  plot      Draw box plots, histograms and regressions as HTML`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: statkit.yaml in ., ./config or /etc/statkit)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: text, json")
	flags.StringVarP(&opts.format, "format", "f", "", "Output format: text, json, yaml")
	flags.IntVar(&opts.precision, "precision", 0, "Decimals printed in text output")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&opts.metrics, "metrics", false, "Write computation metrics in Prometheus text format to stderr")

	root.AddCommand(
		newSummaryCommand(opts),
		newRegressCommand(opts),
		newCompareCommand(opts),
		newPlotCommand(opts),
		newVersionCommand(),
	)

	return root
}

// session is the state of one command run.
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  *observability.CalcMetrics
	renderer *render.Renderer
	stdin    io.Reader
	stdout   io.Writer
}

// loadConfig reads the configuration and applies flag overrides.
func (o *options) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}

	if flags.Changed("log-format") {
		cfg.Logging.Format = o.logFormat
	}

	if flags.Changed("format") {
		cfg.Output.Format = o.format
	}

	if flags.Changed("precision") {
		cfg.Output.Precision = o.precision
	}

	if flags.Changed("no-color") {
		cfg.Output.NoColor = o.noColor
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// run executes fn inside a traced session and flushes telemetry afterwards.
func (o *options) run(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return err
	}

	level, err := observability.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Command = cmd.Name()
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Logging.Format == config.LogFormatJSON
	obsCfg.LogOutput = cmd.ErrOrStderr()
	obsCfg.Metrics = o.metrics
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Telemetry.OTLPHeaders)

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.Background())
		if shutdownErr != nil {
			providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
		}
	}()

	renderer, err := render.New(cfg.Output.Format, cfg.Output.Precision, cfg.Output.NoColor)
	if err != nil {
		return err
	}

	ctx, span := providers.Tracer.Start(cmd.Context(), cmd.Name(),
		trace.WithAttributes(attribute.String("output.format", cfg.Output.Format)))
	defer span.End()

	err = fn(ctx, &session{
		cfg:      cfg,
		logger:   providers.Logger,
		tracer:   providers.Tracer,
		metrics:  providers.Metrics,
		renderer: renderer,
		stdin:    cmd.InOrStdin(),
		stdout:   cmd.OutOrStdout(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		providers.Logger.DebugContext(ctx, "command failed", "error", err)

		return err
	}

	providers.Logger.DebugContext(ctx, "command finished")

	if providers.Prometheus != nil {
		err = providers.Prometheus.WriteText(cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	return nil
}

// setOptions returns the Set options of a data set loaded in this session.
func (s *session) setOptions(label string, population bool) ([]statset.Option, error) {
	quartileOpts, err := s.cfg.QuartileOptions()
	if err != nil {
		return nil, err
	}

	opts := []statset.Option{
		statset.WithLabel(label),
		statset.WithLogger(s.logger),
		statset.WithRecorder(s.metrics.Recorder(componentSet)),
		statset.WithQuartileOptions(quartileOpts...),
	}

	if population {
		opts = append(opts, statset.Population())
	}

	return opts, nil
}

// loadSet reads the data set at path ("-" for stdin).
func (s *session) loadSet(ctx context.Context, path, label string, population bool) (*statset.Set, error) {
	ctx, span := s.tracer.Start(ctx, "load "+label, trace.WithAttributes(attribute.String("path", path)))
	defer span.End()

	values, err := readValues(path, s.stdin)
	if err != nil {
		span.RecordError(err)

		return nil, err
	}

	opts, err := s.setOptions(label, population)
	if err != nil {
		return nil, err
	}

	set, err := statset.New(values, opts...)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("values", set.Len()))
	s.logger.InfoContext(ctx, "data set loaded", "label", label, "path", path, "values", set.Len())

	return set, nil
}
