package scheduler

import (
	"context"
	"sync"
	"time"

	"devicelicense/logger"
	"devicelicense/utils"
)

// ExpiryCounter 만료된 라이선스 수 조회
type ExpiryCounter interface {
	CountExpiredLicenses(ctx context.Context, now time.Time) (int, error)
}

// Sweeper 레이트 리미터의 만료 키 정리
type Sweeper interface {
	Sweep() int
}

// Options 스케줄러 주기 설정. 0 이면 해당 작업을 실행하지 않습니다.
type Options struct {
	ReportInterval time.Duration
	SweepInterval  time.Duration
}

// Scheduler 주기적인 유지보수 작업 실행기
type Scheduler struct {
	store   ExpiryCounter
	sweeper Sweeper
	opts    Options
	now     func() time.Time
	wg      sync.WaitGroup
}

// New 스케줄러 생성. sweeper 가 nil 이면 리미터 정리는 건너뜁니다 (Redis 는 키 TTL 로 정리됨).
func New(store ExpiryCounter, sweeper Sweeper, opts Options) *Scheduler {
	return &Scheduler{store: store, sweeper: sweeper, opts: opts, now: utils.NowUTC}
}

// Start 스케줄러 시작. ctx 가 취소되면 모든 작업이 멈추고 Wait 가 반환됩니다.
func (s *Scheduler) Start(ctx context.Context) {
	logger.Info("Scheduler started")

	if s.opts.ReportInterval > 0 && s.store != nil {
		// 서버 시작 시 즉시 한 번 실행
		s.ReportExpiredLicenses(ctx)
		s.every(ctx, s.opts.ReportInterval, func() { s.ReportExpiredLicenses(ctx) })
	}
	if s.opts.SweepInterval > 0 && s.sweeper != nil {
		s.every(ctx, s.opts.SweepInterval, func() { s.SweepLimiter() })
	}
}

// Wait Start 로 시작한 고루틴이 모두 끝날 때까지 대기
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) every(ctx context.Context, interval time.Duration, task func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				task()
			}
		}
	}()
}

// ReportExpiredLicenses 만료일이 지났지만 status 가 active 인 라이선스 수를 기록합니다.
// 만료는 조회 시점에 판단하므로 상태를 바꾸지 않습니다.
func (s *Scheduler) ReportExpiredLicenses(ctx context.Context) (int, error) {
	now := s.now()
	count, err := s.store.CountExpiredLicenses(ctx, now)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Error("Failed to count expired licenses")
		return 0, err
	}

	logger.WithFields(map[string]interface{}{
		"count": count,
		"now":   utils.FormatDateTimeForDB(now),
	}).Info("Expired licenses report")
	return count, nil
}

// SweepLimiter 윈도우가 지난 리미터 키 제거
func (s *Scheduler) SweepLimiter() int {
	removed := s.sweeper.Sweep()
	if removed > 0 {
		logger.WithFields(map[string]interface{}{
			"removed": removed,
		}).Debug("Rate limiter keys swept")
	}
	return removed
}
