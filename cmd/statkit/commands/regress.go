package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/statkit/pkg/alg/regression"
	"github.com/Sumatoshi-tech/statkit/pkg/render"
	"github.com/Sumatoshi-tech/statkit/pkg/statset"
)

// ErrRegressInputs is returned when regress gets neither two files nor --pairs.
var ErrRegressInputs = errors.New("regress needs <x-file> <y-file> or --pairs <file>")

type regressCommand struct {
	opts *options

	pairs      string
	population bool
	predict    []float64
}

func newRegressCommand(opts *options) *cobra.Command {
	rc := &regressCommand{opts: opts}

	cmd := &cobra.Command{
		Use:   "regress [x-file y-file]",
		Short: "Fit a least squares line through paired data",
		Long: `Fit y = slope·x + intercept by ordinary least squares and report the
correlation coefficient and the standard errors of the fit.

The independent and dependent values come from two files of equal length, or
from one file of "x y" lines given with --pairs ("-" reads stdin).`,
		Args: func(_ *cobra.Command, args []string) error {
			if (rc.pairs == "" && len(args) != pairColumns) || (rc.pairs != "" && len(args) != 0) {
				return ErrRegressInputs
			}

			return nil
		},
		RunE: rc.run,
	}

	cmd.Flags().StringVar(&rc.pairs, "pairs", "", "File of x y pairs, one per line")
	cmd.Flags().BoolVar(&rc.population, "population", false, "Treat the data as a whole population instead of a sample")
	cmd.Flags().Float64SliceVar(&rc.predict, "predict", nil, "Report the fitted y at these x values")

	return cmd
}

func (rc *regressCommand) run(cmd *cobra.Command, args []string) error {
	return rc.opts.run(cmd, func(ctx context.Context, s *session) error {
		x, y, err := rc.load(ctx, s, args)
		if err != nil {
			return err
		}

		linear, err := regression.NewLinear(x, y,
			regression.WithLogger(s.logger),
			regression.WithRecorder(s.metrics.Recorder(componentRegression)),
		)
		if err != nil {
			return err
		}

		_, span := s.tracer.Start(ctx, "fit")
		report, err := render.NewRegression(linear, rc.predict...)
		span.End()

		if err != nil {
			return fmt.Errorf("regress %s on %s: %w", y.Label(), x.Label(), err)
		}

		return s.renderer.Regression(s.stdout, report)
	})
}

func (rc *regressCommand) load(ctx context.Context, s *session, args []string) (x, y *statset.Set, err error) {
	if rc.pairs == "" {
		x, err = s.loadSet(ctx, args[0], labelFor("", args[0]), rc.population)
		if err != nil {
			return nil, nil, err
		}

		y, err = s.loadSet(ctx, args[1], labelFor("", args[1]), rc.population)
		if err != nil {
			return nil, nil, err
		}

		return x, y, nil
	}

	xs, ys, err := readPairs(rc.pairs, s.stdin)
	if err != nil {
		return nil, nil, err
	}

	x, err = rc.newSet(s, xs, "x")
	if err != nil {
		return nil, nil, err
	}

	y, err = rc.newSet(s, ys, "y")
	if err != nil {
		return nil, nil, err
	}

	return x, y, nil
}

func (rc *regressCommand) newSet(s *session, values []float64, label string) (*statset.Set, error) {
	opts, err := s.setOptions(label, rc.population)
	if err != nil {
		return nil, err
	}

	return statset.New(values, opts...)
}
