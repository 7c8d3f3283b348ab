package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"uvotsl/internal/discovery"
	"uvotsl/internal/params"
)

func newParamsCommand(ctx *commandContext) *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "params <observation> <filter>",
		Short: "Show the recorded fit parameters for a pair",
		Args:  cobra.ExactArgs(2),
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

			pair := discovery.Pair{DataDir: dataDir, Observation: args[0], Filter: filt}
			table, err := params.Load(pair.ParamsPath())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if table.Len() == 0 {
				fmt.Fprintf(out, "No recorded parameters for %s\n", pair)
				return nil
			}

			rows := make([][]string, 0, table.Len())
			for i, rec := range table.Rows() {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					formatValue(rec.TStart),
					formatValue(rec.Params.Exp),
					formatValue(rec.Params.Flat),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Ext", "TStart", "Exp", "Flat"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory holding the observation folders (default: configured data_dir)")

	return cmd
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
