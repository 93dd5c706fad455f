package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/ingest/loader"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/report"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/scoring"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/service"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		format    string
		outDir    string
		top       int
		workers   int
		artifacts bool
		svg       bool
	)
	cmd := &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Analyse component graph documents and report smells",
		Long: "Analyse every *.acg.yaml, *.acg.yml and *.acg.json document under the given\n" +
			"paths. Exits 0 when clean, 1 when any finding is at warning or above and\n" +
			"2 when a document could not be read as a component graph.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			rules, err := a.rules()
			if err != nil {
				return err
			}
			if workers <= 0 {
				workers = a.cfg.Worker.Concurrency
			}

			units, err := loader.New().Load(cmd.Context(), args...)
			if err != nil {
				return err
			}
			a.log.WithField("units", len(units)).Debug("documents loaded")

			svc := service.New(service.WithLogger(a.log))
			res, err := svc.AnalyzeBatch(cmd.Context(), units, rules, workers)
			if err != nil {
				return err
			}

			reports := res.Reports
			for _, d := range res.Diagnostics {
				reports = append(reports, report.Build(d.Unit, "", nil, []domain.Diagnostic{d}))
			}
			if err := report.Write(cmd.OutOrStdout(), f, reports, res.ExitCode); err != nil {
				return err
			}

			if top > 0 && f == report.FormatText {
				fmt.Fprintf(cmd.OutOrStdout(), "\ntop %d by risk:\n", top)
				for _, finding := range scoring.Top(res.Reports, top) {
					fmt.Fprintf(cmd.OutOrStdout(), "  %3d  %s:%d [%s] %s\n",
						scoring.ScoreFinding(finding), finding.File, finding.StartLine, finding.RuleID, finding.Rationale)
				}
			}

			if artifacts {
				if outDir == "" {
					outDir = a.cfg.Worker.OutDir
				}
				for i, r := range res.Results {
					dir := filepath.Join(outDir, fmt.Sprintf("%03d-%s", i+1, filepath.Base(r.Report.Unit)))
					arts, err := service.WriteArtifacts(cmd.Context(), dir, r.Graph, &r.Report, service.ArtifactOptions{
						SVG:    svg,
						DotBin: a.cfg.Worker.DotBin,
					})
					if err != nil {
						return err
					}
					a.log.WithField("dir", dir).WithField("dot", arts.DOTPath).Info("artifacts written")
				}
			}

			if res.ExitCode != report.ExitClean {
				return exitError(res.ExitCode)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text|json|yaml")
	cmd.Flags().IntVar(&top, "top", 0, "Also list the N highest risk findings (text format)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Units analysed concurrently (default WORKER_CONCURRENCY or CPU count)")
	cmd.Flags().BoolVar(&artifacts, "artifacts", false, "Write graph.dot and report files per unit")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Artifact directory (default WORKER_OUT_DIR)")
	cmd.Flags().BoolVar(&svg, "svg", false, "Render graph.svg with Graphviz (with --artifacts)")
	return cmd
}
