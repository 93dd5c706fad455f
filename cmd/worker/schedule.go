package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/duis-detector/internal/bootstrap"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/ingest/loader"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/repository"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/service"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/worker"
)

func newScheduleCmd(a *app) *cobra.Command {
	var (
		spec    string
		now     bool
		workers int
		top     int
	)
	cmd := &cobra.Command{
		Use:   "schedule <paths...>",
		Short: "Re-scan documents on a cron schedule",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := a.rules()
			if err != nil {
				return err
			}
			if spec == "" {
				spec = a.cfg.Worker.Schedule
			}
			if workers <= 0 {
				workers = a.cfg.Worker.Concurrency
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			opts := []service.Option{service.WithLogger(a.log)}
			rdb, err := bootstrap.OpenRedis(ctx, a.cfg.Redis)
			if err != nil {
				return err
			}
			if rdb != nil {
				defer rdb.Close()
				opts = append(opts, service.WithCache(repository.NewReportCache(rdb, a.cfg.Redis.ReportTTL)))
			}
			db, err := bootstrap.OpenDB(ctx, a.cfg.Database)
			if err != nil {
				return err
			}
			if db != nil {
				defer db.Close()
				opts = append(opts, service.WithRuns(repository.NewRunRepository(db)))
			}

			job := &worker.ScanJob{
				Service: service.New(opts...),
				Loader:  loader.New(),
				Roots:   args,
				Rules:   rules,
				Workers: workers,
				OutDir:  a.cfg.Worker.OutDir,
				Top:     top,
				Log:     a.log,
			}
			run := func(ctx context.Context) error {
				_, err := job.Run(ctx)
				return err
			}

			s := worker.NewScheduler(a.log)
			if err := s.Add("scan", spec, run); err != nil {
				return err
			}
			if now {
				if err := run(ctx); err != nil {
					a.log.WithError(err).Error("initial scan failed")
				}
			}
			s.Start()

			<-ctx.Done()
			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			s.Stop(stopCtx)
			return nil
		},
	}
	cmd.Flags().StringVar(&spec, "cron", "", "Cron spec, e.g. \"@every 1h\" (default WORKER_SCHEDULE)")
	cmd.Flags().BoolVar(&now, "now", false, "Run one scan before waiting for the schedule")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Units analysed concurrently")
	cmd.Flags().IntVar(&top, "top", 5, "Log the N highest risk findings of each scan")
	return cmd
}
