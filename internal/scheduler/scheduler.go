package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/teniee/installment-service/internal/service"
)

// Scheduler runs the month-end budget redistribution on a cron schedule.
type Scheduler struct {
	cron *cron.Cron
	svc  *service.Service
	log  *logrus.Logger
	spec string
}

// New creates a scheduler with the given cron spec (standard 5-field form,
// e.g. "0 3 1 * *" for 03:00 on the first of each month).
func New(svc *service.Service, log *logrus.Logger, spec string) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		svc:  svc,
		log:  log,
		spec: spec,
	}
}

// Start registers the job and launches the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.run); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Infof("Budget redistribution scheduled: %q", s.spec)
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// run reconciles the month that just ended.
func (s *Scheduler) run() {
	month := time.Now().AddDate(0, -1, 0).Format("2006-01")
	s.log.Infof("Running month-end budget redistribution for %s", month)
	s.svc.RedistributeAll(month)
}
