package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/statkit/pkg/alg/regression"
	"github.com/Sumatoshi-tech/statkit/pkg/plot"
	"github.com/Sumatoshi-tech/statkit/pkg/statset"
)

const defaultPlotOutput = "statkit.html"

// ErrRegressPlotInputs is returned when plot --regress does not get exactly two inputs.
var ErrRegressPlotInputs = errors.New("--regress needs exactly two inputs")

type plotCommand struct {
	opts *options

	output     string
	title      string
	theme      string
	population bool
	histogram  bool
	regress    bool
}

func newPlotCommand(opts *options) *cobra.Command {
	pc := &plotCommand{opts: opts}

	cmd := &cobra.Command{
		Use:   "plot <file...>",
		Short: "Draw box plots, histograms and regressions as HTML",
		Long: `Write an interactive HTML page with a box plot of every input.

--histogram adds the value frequencies of each input; --regress adds the
scatter of the first input against the second with its least squares line.`,
		Args: cobra.MinimumNArgs(1),
		RunE: pc.run,
	}

	cmd.Flags().StringVarP(&pc.output, "output", "o", defaultPlotOutput, `HTML output file ("-" for stdout)`)
	cmd.Flags().StringVar(&pc.title, "title", "statkit", "Page title")
	cmd.Flags().StringVar(&pc.theme, "theme", string(plot.ThemeLight), "Chart theme: light, dark")
	cmd.Flags().BoolVar(&pc.population, "population", false, "Treat every input as a whole population instead of a sample")
	cmd.Flags().BoolVar(&pc.histogram, "histogram", false, "Add a frequency histogram per input")
	cmd.Flags().BoolVar(&pc.regress, "regress", false, "Add the regression of the second input on the first")

	return cmd
}

func (pc *plotCommand) run(cmd *cobra.Command, args []string) error {
	if pc.regress && len(args) != pairColumns {
		return ErrRegressPlotInputs
	}

	theme, err := plot.ParseTheme(pc.theme)
	if err != nil {
		return err
	}

	return pc.opts.run(cmd, func(ctx context.Context, s *session) error {
		sets := make([]*statset.Set, 0, len(args))

		for _, path := range args {
			set, err := s.loadSet(ctx, path, labelFor("", path), pc.population)
			if err != nil {
				return err
			}

			sets = append(sets, set)
		}

		chartList, err := pc.charts(plot.New(theme), sets, s)
		if err != nil {
			return err
		}

		return pc.write(ctx, s, chartList)
	})
}

func (pc *plotCommand) charts(p *plot.Plotter, sets []*statset.Set, s *session) ([]components.Charter, error) {
	box, err := p.BoxPlot("Distribution", sets...)
	if err != nil {
		return nil, err
	}

	chartList := []components.Charter{box}

	if pc.histogram {
		for _, set := range sets {
			chartList = append(chartList, p.Histogram("Frequencies of "+set.Label(), set))
		}
	}

	if pc.regress {
		linear, err := regression.NewLinear(sets[0], sets[1],
			regression.WithLogger(s.logger),
			regression.WithRecorder(s.metrics.Recorder(componentRegression)),
		)
		if err != nil {
			return nil, err
		}

		scatter, err := p.Regression(fmt.Sprintf("%s on %s", sets[1].Label(), sets[0].Label()), linear)
		if err != nil {
			return nil, err
		}

		chartList = append(chartList, scatter)
	}

	return chartList, nil
}

func (pc *plotCommand) write(ctx context.Context, s *session, chartList []components.Charter) error {
	var w io.Writer = s.stdout

	if pc.output != stdinPath {
		f, err := os.Create(pc.output)
		if err != nil {
			return fmt.Errorf("create plot output: %w", err)
		}
		defer f.Close()

		w = f
	}

	err := plot.Render(w, pc.title, chartList...)
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "plot written", "output", pc.output, "charts", len(chartList))

	return nil
}
