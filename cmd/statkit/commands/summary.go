package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/statkit/pkg/render"
)

// ErrLabelWithManyInputs is returned when --label is given for more than one input.
var ErrLabelWithManyInputs = errors.New("--label needs exactly one input")

type summaryCommand struct {
	opts *options

	population bool
	label      string
}

func newSummaryCommand(opts *options) *cobra.Command {
	sc := &summaryCommand{opts: opts}

	cmd := &cobra.Command{
		Use:   "summary [file...]",
		Short: "Describe one or more data sets",
		Long: `Print the descriptive statistics of each input side by side.

Inputs hold numbers separated by whitespace, commas or semicolons; text after
'#' is ignored. With no file, or "-", numbers are read from stdin.`,
		RunE: sc.run,
	}

	cmd.Flags().BoolVar(&sc.population, "population", false, "Treat every input as a whole population instead of a sample")
	cmd.Flags().StringVar(&sc.label, "label", "", "Label of the data set (default: file name)")

	return cmd
}

func (sc *summaryCommand) run(cmd *cobra.Command, args []string) error {
	paths := inputPaths(args)
	if sc.label != "" && len(paths) > 1 {
		return ErrLabelWithManyInputs
	}

	return sc.opts.run(cmd, func(ctx context.Context, s *session) error {
		summaries := make([]render.Summary, 0, len(paths))

		for _, path := range paths {
			set, err := s.loadSet(ctx, path, labelFor(sc.label, path), sc.population)
			if err != nil {
				return err
			}

			summary := render.NewSummary(set)
			if len(summary.Errors) > 0 {
				s.logger.WarnContext(ctx, "some statistics are unavailable",
					"label", set.Label(), "count", len(summary.Errors))
			}

			summaries = append(summaries, summary)
		}

		return s.renderer.Summaries(s.stdout, summaries...)
	})
}
