package scheduler

import (
	"fmt"

	"github.com/amaumene/movieshelf/internal/controllers"
	"github.com/amaumene/movieshelf/internal/services/catalog"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StatsSchedule is how often catalog gauges are refreshed
const StatsSchedule = "*/15 * * * *"

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron             *cron.Cron
	featuredCtrl     *controllers.FeaturedController
	catalog          *catalog.Service
	featuredSchedule string
	logger           *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(
	featuredCtrl *controllers.FeaturedController,
	catalogSvc *catalog.Service,
	featuredSchedule string,
	logger *logrus.Logger,
) *Scheduler {
	return &Scheduler{
		cron:             cron.New(),
		featuredCtrl:     featuredCtrl,
		catalog:          catalogSvc,
		featuredSchedule: featuredSchedule,
		logger:           logger,
	}
}

// Start registers the jobs, runs each once and starts the cron loop
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	if _, err := s.cron.AddFunc(s.featuredSchedule, s.runRotateFeatured); err != nil {
		return fmt.Errorf("failed to add featured rotation job: %w", err)
	}

	if _, err := s.cron.AddFunc(StatsSchedule, s.runRefreshStats); err != nil {
		return fmt.Errorf("failed to add stats job: %w", err)
	}

	// Prime both jobs so /api/featured and /metrics are populated at startup
	s.runRotateFeatured()
	s.runRefreshStats()

	s.cron.Start()
	s.logger.WithField("featured_schedule", s.featuredSchedule).Info("Scheduler started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
}

// Entries returns the number of registered jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// runRotateFeatured executes the featured rotation job
func (s *Scheduler) runRotateFeatured() {
	s.logger.Debug("Running featured rotation")
	s.featuredCtrl.Rotate()
}

// runRefreshStats executes the stats job
func (s *Scheduler) runRefreshStats() {
	stats := s.catalog.RefreshGauges()
	s.logger.WithFields(logrus.Fields{
		"movies":  stats.Movies,
		"genres":  stats.Genres,
		"reviews": stats.Reviews,
		"users":   stats.Users,
	}).Info("Catalog stats refreshed")
}
