package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"uvotsl/internal/discovery"
	"uvotsl/internal/pipeline"
)

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "apply <observation> <filter>",
		Short: "Apply recorded parameters without refitting",
		Long: `Correct one observation/filter pair using the parameters already recorded
in its parameter file. Every extension must have a row; run "uvotsl fix"
first if any are missing.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if strings.TrimSpace(dataDir) == "" {
				dataDir = cfg.Paths.DataDir
			}

			filt := strings.ToLower(strings.TrimSpace(args[1]))
			if !discovery.IsSupportedFilter(filt) {
				return fmt.Errorf("unsupported filter code %q", filt)
			}

			logger, closeLog, err := ctx.newLogger(cfg)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}
			defer func() { _ = closeLog() }()

			driver := &pipeline.Driver{Logger: logger}
			pair := discovery.Pair{DataDir: dataDir, Observation: args[0], Filter: filt}
			return driver.ApplyPair(pair)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory holding the observation folders (default: configured data_dir)")

	return cmd
}
