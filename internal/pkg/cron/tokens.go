package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/carebridge/evv-backend-go/internal/pkg/jwt"
)

// RegisterTokenPurgeJob drops revocation entries for tokens that have aged
// past their validity window. Revoked tokens only need tracking while a
// still-valid copy could be replayed.
func RegisterTokenPurgeJob(s *Scheduler, jwtService jwt.Service, tokenLifetime time.Duration) {
	s.AddJob("revoked-token-purge", 1*time.Hour, func(ctx context.Context) error {
		purged := jwtService.PurgeRevoked(tokenLifetime)
		if purged > 0 {
			slog.Info("Purged expired token revocations", "count", purged)
		}
		return nil
	})
}
