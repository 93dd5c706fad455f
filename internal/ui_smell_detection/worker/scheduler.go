package worker

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs scan jobs on cron schedules. Overlapping runs of the same
// job are skipped.
type Scheduler struct {
	c      *cron.Cron
	log    logrus.FieldLogger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewScheduler(log logrus.FieldLogger) *Scheduler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		c: cron.New(
			cron.WithParser(cron.NewParser(cron.SecondOptional|cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Add schedules job under spec, e.g. "@every 1h" or "0 0 0 * * *".
func (s *Scheduler) Add(name, spec string, job func(ctx context.Context) error) error {
	_, err := s.c.AddFunc(spec, func() {
		log := s.log.WithField("job", name)
		log.Info("job started")
		if err := job(s.ctx); err != nil {
			log.WithError(err).Error("job failed")
			return
		}
		log.Info("job completed")
	})
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	return nil
}

func (s *Scheduler) Len() int { return len(s.c.Entries()) }

func (s *Scheduler) Start() {
	s.log.WithField("jobs", s.Len()).Info("cron scheduler started")
	s.c.Start()
}

// Stop cancels running jobs and waits for them or for ctx, whichever ends
// first.
func (s *Scheduler) Stop(ctx context.Context) {
	s.cancel()

	select {
	case <-s.c.Stop().Done():
	case <-ctx.Done():
	}
}
