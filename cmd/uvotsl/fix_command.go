package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"uvotsl/internal/discovery"
	"uvotsl/internal/fitloop"
	"uvotsl/internal/logging"
	"uvotsl/internal/pipeline"
	"uvotsl/internal/preview"
	"uvotsl/internal/sltransform"
)

func newFixCommand(ctx *commandContext) *cobra.Command {
	var filters []string
	var redo bool
	var dataDir string
	var outputPrefix string

	cmd := &cobra.Command{
		Use:   "fix <observation>...",
		Short: "Fit and apply scattered light corrections to observation folders",
		Long: `Fit scattered light parameters for each observation folder and write the
corrected sky image stacks. Snapshots with recorded parameters are skipped
unless --redo is set. Fitting is interactive: each snapshot renders a
side-by-side preview and prompts for new exp/flat values until confirmed
with a single token.

Examples:
  uvotsl fix 00032766002                  # All filters present in the folder
  uvotsl fix 00032766002 -f w2,m2         # Only the uvw2 and uvm2 bands
  uvotsl fix 00032766002 00032766003 --redo`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if strings.TrimSpace(dataDir) == "" {
				dataDir = cfg.Paths.DataDir
			}
			if len(filters) == 0 {
				filters = discovery.Filters
			}

			logger, closeLog, err := ctx.newLogger(cfg)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}
			defer func() { _ = closeLog() }()

			if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				logger.Warn("stdin is not a terminal, interactive fits will read piped input")
			}
			if strings.TrimSpace(outputPrefix) != "" {
				logger.Info("output prefix noted", logging.String("output_prefix", outputPrefix))
			}

			ledger, err := ctx.openLedger(cfg)
			if err != nil {
				return fmt.Errorf("open run ledger: %w", err)
			}
			defer func() { _ = ledger.Close() }()

			driver := &pipeline.Driver{
				Prompter: fitloop.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
				NewRenderer: func(pair discovery.Pair) fitloop.Renderer {
					return &preview.PNGRenderer{
						Dir:         cfg.Paths.PreviewDir,
						Observation: pair.Observation,
						Filter:      pair.Filter,
						Logger:      logger,
					}
				},
				Defaults: sltransform.Params{Exp: cfg.Fit.ExpSeed, Flat: cfg.Fit.FlatSeed},
				Settings: fitloop.Settings{
					SmoothSigma: cfg.Fit.SmoothSigma,
					ClipSigma:   cfg.Fit.ClipSigma,
					ClipIters:   cfg.Fit.ClipIters,
				},
				Ledger: ledger,
				Logger: logger,
			}

			return driver.Run(cmd.Context(), dataDir, args, filters, redo)
		},
	}

	cmd.Flags().StringSliceVarP(&filters, "filters", "f", nil, "Filter codes to process (default: all of w2,m2,w1,uu,bb,vv)")
	cmd.Flags().BoolVar(&redo, "redo", false, "Refit snapshots that already have recorded parameters")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory holding the observation folders (default: configured data_dir)")
	cmd.Flags().StringVar(&outputPrefix, "output-prefix", "", "Prefix recorded for downstream stacking tools")

	return cmd
}
