package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/statkit/pkg/render"
)

// ErrSetsDiffer is returned by compare --fail-on-difference when a statistic differs.
var ErrSetsDiffer = errors.New("data sets differ")

type compareCommand struct {
	opts *options

	tolerance        float64
	population       bool
	failOnDifference bool
}

func newCompareCommand(opts *options) *cobra.Command {
	cc := &compareCommand{opts: opts}

	cmd := &cobra.Command{
		Use:   "compare <a-file> <b-file>",
		Short: "Compare the statistics of two data sets",
		Long: `Compute the statistics of both inputs and report, for each statistic, the
relative difference of b from a in percent. A statistic is equal when the
magnitude of that difference is within the tolerance.`,
		Args: cobra.ExactArgs(pairColumns),
		RunE: cc.run,
	}

	cmd.Flags().Float64Var(&cc.tolerance, "tolerance", 0, "Tolerance in percent (default: comparison.tolerance_percent)")
	cmd.Flags().BoolVar(&cc.population, "population", false, "Treat both inputs as whole populations instead of samples")
	cmd.Flags().BoolVar(&cc.failOnDifference, "fail-on-difference", false, "Exit with an error when any statistic differs")

	return cmd
}

func (cc *compareCommand) run(cmd *cobra.Command, args []string) error {
	return cc.opts.run(cmd, func(ctx context.Context, s *session) error {
		tolerance := s.cfg.Comparison.TolerancePercent
		if cmd.Flags().Changed("tolerance") {
			tolerance = cc.tolerance
		}

		a, err := s.loadSet(ctx, args[0], labelFor("", args[0]), cc.population)
		if err != nil {
			return err
		}

		b, err := s.loadSet(ctx, args[1], labelFor("", args[1]), cc.population)
		if err != nil {
			return err
		}

		comparison, err := render.NewComparison(render.NewSummary(a), render.NewSummary(b), tolerance)
		if err != nil {
			return err
		}

		err = s.renderer.Comparison(s.stdout, comparison)
		if err != nil {
			return err
		}

		differing := 0

		for _, row := range comparison.Rows {
			if !row.Equal {
				differing++
			}
		}

		s.logger.InfoContext(ctx, "data sets compared", "statistics", len(comparison.Rows), "differing", differing)

		if cc.failOnDifference && differing > 0 {
			return fmt.Errorf("%w: %d of %d statistics", ErrSetsDiffer, differing, len(comparison.Rows))
		}

		return nil
	})
}
