package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/72tommy72/HRMate/internal/repository"
)

type CleanupJob struct {
	sessionRepo repository.QRSessionRepository
	tokenRepo   repository.RefreshTokenRepository
	interval    time.Duration
	done        chan struct{}
}

func NewCleanupJob(
	sessionRepo repository.QRSessionRepository,
	tokenRepo repository.RefreshTokenRepository,
	interval time.Duration,
) *CleanupJob {
	return &CleanupJob{
		sessionRepo: sessionRepo,
		tokenRepo:   tokenRepo,
		interval:    interval,
		done:        make(chan struct{}),
	}
}

func (j *CleanupJob) Start() {
	go j.run()
	log.Info().Dur("interval", j.interval).Msg("cleanup job started")
}

func (j *CleanupJob) Stop() {
	close(j.done)
	log.Info().Msg("cleanup job stopped")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.cleanup()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.cleanup()
		}
	}
}

// cleanup sweeps records that lazy read-time expiry never got to: pairing
// sessions nobody polls anymore and refresh tokens past their deadline.
func (j *CleanupJob) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	j.runCleanup(ctx, "qr sessions", j.sessionRepo.SweepExpired)
	j.runCleanup(ctx, "refresh tokens", j.tokenRepo.DeleteExpired)
}

func (j *CleanupJob) runCleanup(ctx context.Context, name string, fn func(context.Context) (int64, error)) {
	count, err := fn(ctx)
	if err != nil {
		log.Error().Err(err).Msgf("failed to cleanup %s", name)
	} else if count > 0 {
		log.Info().Int64("count", count).Msgf("cleaned up %s", name)
	}
}
