package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Daily schedules, evaluated in the attendance calendar location
const (
	SessionSweepSchedule = "5 0 * * *"
	DailySummarySchedule = "55 23 * * *"
)

// CronService runs the daily background jobs
type CronService struct {
	cron             *cron.Cron
	authService      *AuthService
	dashboardService *DashboardService
}

// NewCronService creates a new cron service
func NewCronService(authService *AuthService, dashboardService *DashboardService, loc *time.Location) *CronService {
	if loc == nil {
		loc = time.Local
	}
	return &CronService{
		cron:             cron.New(cron.WithLocation(loc)),
		authService:      authService,
		dashboardService: dashboardService,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(SessionSweepSchedule, func() { s.SweepExpiredSessions(context.Background()) }); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(DailySummarySchedule, func() { s.LogDailySummary(context.Background()) }); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("🚀 CronService started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 CronService stopped")
}

// Entries returns the number of scheduled jobs
func (s *CronService) Entries() int {
	return len(s.cron.Entries())
}

// SweepExpiredSessions clears refresh tokens past their expiry
func (s *CronService) SweepExpiredSessions(ctx context.Context) int64 {
	n, err := s.authService.ClearExpiredSessions(ctx)
	if err != nil {
		log.Printf("❌ Session sweep error: %v", err)
		return 0
	}
	if n > 0 {
		log.Printf("🧹 Cleared %d expired sessions", n)
	}
	return n
}

// LogDailySummary logs today's attendance counts
func (s *CronService) LogDailySummary(ctx context.Context) *DailySummary {
	summary, err := s.dashboardService.DailySummary(ctx, "", "")
	if err != nil {
		log.Printf("❌ Daily summary error: %v", err)
		return nil
	}
	log.Printf("📊 Attendance %s: total=%d present=%d absent=%d late=%d",
		summary.Date, summary.TotalEmployees, summary.Present, summary.Absent, summary.LateCount)
	return summary
}
