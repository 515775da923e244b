// Package scheduler runs periodic storage maintenance: expired refresh
// tokens and abandoned study sessions are purged on a cron schedule.
package scheduler

import (
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/deckoracle/backend/internal/database/study"
	"github.com/deckoracle/backend/internal/database/users"
)

// Sessions untouched for this long are considered abandoned.
const abandonedSessionAge = 24 * time.Hour

// MaintenanceScheduler manages the periodic cleanup job.
type MaintenanceScheduler struct {
	users *users.Repository
	study *study.Repository

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

// NewMaintenanceScheduler creates a new scheduler instance.
func NewMaintenanceScheduler(userRepo *users.Repository, studyRepo *study.Repository) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		users: userRepo,
		study: studyRepo,
		cron:  cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start schedules the cleanup job with the given cron expression.
func (s *MaintenanceScheduler) Start(schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(schedule, s.runCleanup)
	if err != nil {
		return err
	}
	s.entryID = entryID
	s.cron.Start()
	s.isRunning = true
	log.Printf("Maintenance scheduler started with schedule %q", schedule)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	s.cron.Remove(s.entryID)
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	log.Printf("Maintenance scheduler stopped")
}

func (s *MaintenanceScheduler) runCleanup() {
	tokens, err := s.users.PurgeExpiredTokens()
	if err != nil {
		log.Printf("Maintenance: failed to purge expired refresh tokens: %v", err)
	} else if tokens > 0 {
		log.Printf("Maintenance: purged %d expired refresh tokens", tokens)
	}

	sessions, err := s.study.PurgeAbandonedSessions(abandonedSessionAge)
	if err != nil {
		log.Printf("Maintenance: failed to purge abandoned study sessions: %v", err)
	} else if sessions > 0 {
		log.Printf("Maintenance: purged %d abandoned study sessions", sessions)
	}
}
