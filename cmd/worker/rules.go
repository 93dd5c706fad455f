package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
)

func newRulesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List rules and effective thresholds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.rules()
			if err != nil {
				return err
			}
			cfg = cfg.WithDefaults()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RULE\tENABLED")
			for _, d := range detection.All() {
				fmt.Fprintf(tw, "%s\t%t\n", d.Name(), cfg.Enabled(d.Name()))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nmax_responsibilities=%d max_body_size=%d max_nesting_depth=%d\n",
				cfg.MaxResponsibilities, cfg.MaxBodySize, cfg.MaxNestingDepth)
			fmt.Fprintf(cmd.OutOrStdout(), "heavy_work_threshold=%d min_drill_depth=%d min_duplicates=%d large_list_threshold=%d\n",
				cfg.HeavyWorkThreshold, cfg.MinDrillDepth, cfg.MinDuplicates, cfg.LargeListThreshold)
			return nil
		},
	}
}
