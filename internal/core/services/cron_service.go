package services

import (
	"context"
	"log"
	"time"

	"revendapro/internal/adapters/gateway/wppconnect"
	"revendapro/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService owns the scheduled jobs: the midnight quota reset and the
// periodic session-status sweep.
type CronService struct {
	cron      *cron.Cron
	connRepo  *repositories.ConnectionRepository
	tokenRepo *repositories.RefreshTokenRepository
	client    *wppconnect.Client
}

// NewCronService creates a new cron service
func NewCronService(connRepo *repositories.ConnectionRepository, tokenRepo *repositories.RefreshTokenRepository, client *wppconnect.Client) *CronService {
	return &CronService{
		cron:      cron.New(),
		connRepo:  connRepo,
		tokenRepo: tokenRepo,
		client:    client,
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc("0 0 * * *", s.resetDailyCounters); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("*/10 * * * *", s.sweepSessionStatus); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("30 3 * * *", s.purgeExpiredTokens); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Cron scheduler started (quota reset 00:00, status sweep every 10m)")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Cron scheduler stopped")
}

func (s *CronService) resetDailyCounters() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.connRepo.ResetDailyCounters(ctx); err != nil {
		log.Printf("❌ Daily counter reset failed: %v", err)
		return
	}
	log.Println("✅ Daily message counters reset")
}

// sweepSessionStatus mirrors the gateway's view of every session into
// the local rows, so a phone unpaired out-of-band stops accepting sends
// within ten minutes.
func (s *CronService) sweepSessionStatus() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conns, err := s.connRepo.List(ctx)
	if err != nil {
		log.Printf("❌ Session sweep failed to list connections: %v", err)
		return
	}

	updated := 0
	for _, conn := range conns {
		status := s.client.GetStatus(ctx, conn.SessionID)
		if status == conn.Status {
			continue
		}
		if err := s.connRepo.UpdateStatus(ctx, conn.ID, status); err != nil {
			log.Printf("❌ Session sweep failed to update connection #%d: %v", conn.ID, err)
			continue
		}
		log.Printf("⚠️ Session %s status drifted: %s -> %s", conn.SessionID, conn.Status, status)
		updated++
	}

	if updated > 0 {
		log.Printf("✅ Session sweep updated %d connection(s)", updated)
	}
}

func (s *CronService) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.tokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Expired token purge failed: %v", err)
		return
	}
	log.Println("✅ Expired refresh tokens purged")
}
