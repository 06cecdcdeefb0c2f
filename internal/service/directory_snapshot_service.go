package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DirectoryKey is the Redis key holding the doctor directory snapshot.
const DirectoryKey = "directory:doctors"

// DirectorySnapshotService caches the active doctor roster (profile, account
// and weekly availability) in Redis so the calendar and slot endpoints do not
// hit PostgreSQL on every public request.
//
// The cache degrades gracefully: any Redis failure falls back to a direct
// DB read, and a background goroutine refreshes the snapshot so the TTL
// rarely expires under traffic. Mutating usecases call Invalidate after
// changing a doctor or their availability.
type DirectorySnapshotService struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger
	doctorRepo  repository.DoctorProfileRepository

	ttl          time.Duration
	refreshEvery time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// NewDirectorySnapshotService creates the snapshot cache and starts its
// background refresh goroutine. Call Stop() during graceful shutdown.
func NewDirectorySnapshotService(
	db *gorm.DB,
	redisClient *redis.Client,
	log *logrus.Logger,
	doctorRepo repository.DoctorProfileRepository,
	ttl time.Duration,
	refreshEvery time.Duration,
) *DirectorySnapshotService {
	svc := &DirectorySnapshotService{
		db:           db,
		redisClient:  redisClient,
		log:          log,
		doctorRepo:   doctorRepo,
		ttl:          ttl,
		refreshEvery: refreshEvery,
		stopChan:     make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.refreshLoop()

	return svc
}

// Stop gracefully shuts down the refresh goroutine. Safe to call multiple
// times.
func (s *DirectorySnapshotService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("DirectorySnapshotService stopped")
	}
}

// GetDoctors returns the active doctor roster, preferring the Redis snapshot
// and falling back to PostgreSQL when the snapshot is missing or unreadable.
func (s *DirectorySnapshotService) GetDoctors(ctx context.Context) ([]entity.DoctorProfile, error) {
	raw, err := s.redisClient.Get(ctx, DirectoryKey).Bytes()
	if err == nil {
		var doctors []entity.DoctorProfile
		if err := json.Unmarshal(raw, &doctors); err == nil {
			return doctors, nil
		}
		s.log.Warnf("Failed to decode directory snapshot, falling back to DB: %+v", err)
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warnf("Failed to read directory snapshot, falling back to DB: %+v", err)
	}

	return s.Refresh(ctx)
}

// Refresh reloads the roster from PostgreSQL and rewrites the snapshot.
// Returns the fresh roster so callers can use it directly.
func (s *DirectorySnapshotService) Refresh(ctx context.Context) ([]entity.DoctorProfile, error) {
	doctors, err := s.doctorRepo.FindAllActive(s.db.WithContext(ctx))
	if err != nil {
		s.log.Warnf("Failed to load doctor directory: %+v", err)
		return nil, err
	}

	raw, err := json.Marshal(doctors)
	if err != nil {
		s.log.Warnf("Failed to encode directory snapshot: %+v", err)
		return doctors, nil
	}

	if err := s.redisClient.Set(ctx, DirectoryKey, raw, s.ttl).Err(); err != nil {
		// Cache write failure is non-fatal, the roster is still served.
		s.log.Warnf("Failed to store directory snapshot: %+v", err)
	}

	return doctors, nil
}

// Invalidate drops the snapshot so the next read rebuilds it. Called after
// doctor or availability mutations.
func (s *DirectorySnapshotService) Invalidate(ctx context.Context) {
	if err := s.redisClient.Del(ctx, DirectoryKey).Err(); err != nil {
		s.log.Warnf("Failed to invalidate directory snapshot: %+v", err)
	}
}

func (s *DirectorySnapshotService) refreshLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.refreshEvery)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Directory refresh goroutine stopping")
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if _, err := s.Refresh(ctx); err != nil {
				s.log.Warnf("Periodic directory refresh failed: %+v", err)
			}
			cancel()
		}
	}
}
